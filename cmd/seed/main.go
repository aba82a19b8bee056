package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/zWyrm/rewear-teamtan/internal/config"
	"github.com/zWyrm/rewear-teamtan/internal/db"
	"github.com/zWyrm/rewear-teamtan/internal/model"
	"github.com/zWyrm/rewear-teamtan/internal/repository"
)

// Development fixtures: a moderator, a regular member, and a handful of
// approved listings to browse straight away. Safe to run repeatedly.
func main() {
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Item{}, &model.Swap{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	itemRepo := repository.NewItemRepository(gormDB)

	admin := seedUser(ctx, userRepo, &model.User{
		Username:    "admin",
		Email:       "admin@rewear.com",
		FirstName:   "Admin",
		LastName:    "User",
		PhoneNumber: "+15550100000",
		Role:        model.RoleAdmin,
		Points:      0,
	}, "admin123")

	sarah := seedUser(ctx, userRepo, &model.User{
		Username:    "sarah_fashion",
		Email:       "sarah@example.com",
		FirstName:   "Sarah",
		LastName:    "Johnson",
		PhoneNumber: "+15550100001",
		Role:        model.RoleUser,
		Points:      150,
	}, "password123")

	_ = admin

	items := []model.Item{
		{
			Title:       "Vintage Denim Jacket",
			Description: "Classic vintage denim jacket in excellent condition. Perfect for layering.",
			Category:    model.CategoryOuterwear,
			Condition:   model.ConditionExcellent,
			Size:        "M",
			Value:       1200,
			ImageURLs:   model.StringList{"https://images.unsplash.com/photo-1544441893-675973e31985"},
			Tags:        model.StringList{"vintage", "denim", "casual"},
		},
		{
			Title:       "Floral Summer Dress",
			Description: "Beautiful floral print dress, worn only a few times.",
			Category:    model.CategoryDresses,
			Condition:   model.ConditionGood,
			Size:        "S",
			Value:       800,
			ImageURLs:   model.StringList{"https://images.unsplash.com/photo-1515372039744-b8f02a3ae446"},
			Tags:        model.StringList{"floral", "summer", "dress"},
		},
		{
			Title:       "Designer Leather Handbag",
			Description: "Authentic designer handbag with minimal wear.",
			Category:    model.CategoryAccessories,
			Condition:   model.ConditionExcellent,
			Size:        "One Size",
			Value:       2500,
			ImageURLs:   model.StringList{"https://images.unsplash.com/photo-1584917865442-de89df76afd3"},
			Tags:        model.StringList{"designer", "leather", "handbag"},
		},
		{
			Title:       "High-Waisted Jeans",
			Description: "Trendy high-waisted jeans, great fit.",
			Category:    model.CategoryBottoms,
			Condition:   model.ConditionGood,
			Size:        "28",
			Value:       600,
			ImageURLs:   model.StringList{"https://images.unsplash.com/photo-1541099649105-f69ad21f3246"},
			Tags:        model.StringList{"jeans", "high-waisted", "casual"},
		},
		{
			Title:       "Black Leather Boots",
			Description: "Sturdy black leather ankle boots, barely worn.",
			Category:    model.CategoryShoes,
			Condition:   model.ConditionExcellent,
			Size:        "8",
			Value:       1500,
			ImageURLs:   model.StringList{"https://images.unsplash.com/photo-1543163521-1bf539c55dd2"},
			Tags:        model.StringList{"boots", "leather", "winter"},
		},
		{
			Title:       "Cozy Knit Sweater",
			Description: "Warm oversized knit sweater in cream.",
			Category:    model.CategoryTops,
			Condition:   model.ConditionGood,
			Size:        "L",
			Value:       900,
			ImageURLs:   model.StringList{"https://images.unsplash.com/photo-1576871337622-98d48d1cf531"},
			Tags:        model.StringList{"knit", "sweater", "cozy"},
		},
		{
			Title:       "Silk Blouse",
			Description: "Elegant silk blouse, dry cleaned and ready to wear.",
			Category:    model.CategoryTops,
			Condition:   model.ConditionExcellent,
			Size:        "M",
			Value:       1100,
			ImageURLs:   model.StringList{"https://images.unsplash.com/photo-1564257631407-4deb1f99d992"},
			Tags:        model.StringList{"silk", "blouse", "formal"},
		},
	}

	existing, err := itemRepo.List(ctx, repository.ItemFilter{OwnerID: &sarah.ID})
	if err != nil {
		log.Fatalf("list items: %v", err)
	}
	have := make(map[string]bool, len(existing))
	for _, it := range existing {
		have[it.Title] = true
	}

	for i := range items {
		if have[items[i].Title] {
			continue
		}
		items[i].OwnerID = sarah.ID
		items[i].IsApproved = true
		items[i].IsAvailable = true
		if err := itemRepo.Create(ctx, &items[i]); err != nil {
			log.Fatalf("create item %q: %v", items[i].Title, err)
		}
		log.Printf("seeded item %q", items[i].Title)
	}

	log.Println("seed complete")
}

func seedUser(ctx context.Context, repo repository.UserRepository, u *model.User, password string) *model.User {
	existing, err := repo.FindByUsername(ctx, u.Username)
	if err == nil {
		log.Printf("user %q already present", u.Username)
		return existing
	}
	if err != repository.ErrNotFound {
		log.Fatalf("lookup %q: %v", u.Username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}
	hashStr := string(hash)
	u.PasswordHash = &hashStr

	if err := repo.Create(ctx, u); err != nil {
		log.Fatalf("create user %q: %v", u.Username, err)
	}
	log.Printf("seeded user %q", u.Username)
	return u
}
