package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/zWyrm/rewear-teamtan/internal/model"
)

// ItemRepository defines item persistence operations.
type ItemRepository interface {
	Create(ctx context.Context, item *model.Item) error
	FindByID(ctx context.Context, id uint) (*model.Item, error)
	FindByIDWithOwner(ctx context.Context, id uint) (*model.Item, *model.OwnerSummary, error)
	List(ctx context.Context, filter ItemFilter) ([]model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	Delete(ctx context.Context, id uint) error
	ListPending(ctx context.Context) ([]model.Item, error)
	Approve(ctx context.Context, id uint) error
}

type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository builds a GORM-backed item repository.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *itemRepository) FindByID(ctx context.Context, id uint) (*model.Item, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, translate(err)
	}
	return &item, nil
}

// FindByIDWithOwner loads the item and a public summary of its owner for the
// item detail page. A dangling owner reference yields a nil summary.
func (r *itemRepository) FindByIDWithOwner(ctx context.Context, id uint) (*model.Item, *model.OwnerSummary, error) {
	var item model.Item
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, nil, translate(err)
	}

	var owner model.User
	if err := r.db.WithContext(ctx).First(&owner, item.OwnerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &item, nil, nil
		}
		return nil, nil, err
	}
	return &item, &model.OwnerSummary{Username: owner.Username, MemberSince: owner.CreatedAt}, nil
}

func (r *itemRepository) List(ctx context.Context, filter ItemFilter) ([]model.Item, error) {
	q := r.db.WithContext(ctx).Model(&model.Item{})
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.OwnerID != nil {
		q = q.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.IsApproved != nil {
		q = q.Where("is_approved = ?", *filter.IsApproved)
	}
	if filter.IsAvailable != nil {
		q = q.Where("is_available = ?", *filter.IsAvailable)
	}
	if filter.Search != "" {
		needle := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	var items []model.Item
	if err := q.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) Update(ctx context.Context, item *model.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *itemRepository) ListPending(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	if err := r.db.WithContext(ctx).
		Where("is_approved = ?", false).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Approve flips is_approved to true. The flip is one-way: nothing in the
// repository surface writes it back to false.
func (r *itemRepository) Approve(ctx context.Context, id uint) error {
	var item model.Item
	if err := r.db.WithContext(ctx).Select("id").First(&item, id).Error; err != nil {
		return translate(err)
	}
	return r.db.WithContext(ctx).Model(&model.Item{}).
		Where("id = ?", id).
		Update("is_approved", true).Error
}
