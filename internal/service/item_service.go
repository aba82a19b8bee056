package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/zWyrm/rewear-teamtan/internal/cache"
	apperrors "github.com/zWyrm/rewear-teamtan/internal/errors"
	"github.com/zWyrm/rewear-teamtan/internal/model"
	"github.com/zWyrm/rewear-teamtan/internal/repository"
)

const itemCacheTTL = 5 * time.Minute

// CreateItemInput carries validated listing data. Approval and availability
// are not inputs: new listings always start unapproved and available.
type CreateItemInput struct {
	Title       string
	Description string
	Category    model.ItemCategory
	Condition   model.ItemCondition
	Size        string
	Value       int
	ImageURLs   []string
	Tags        []string
}

// UpdateItemInput is a partial update; nil fields are left untouched.
// Ownership and approval cannot be changed through it.
type UpdateItemInput struct {
	Title       *string
	Description *string
	Category    *model.ItemCategory
	Condition   *model.ItemCondition
	Size        *string
	Value       *int
	ImageURLs   *[]string
	Tags        *[]string
	IsAvailable *bool
}

// ItemDetail is an item with the public owner summary embedded.
type ItemDetail struct {
	model.Item
	Owner *model.OwnerSummary `json:"owner,omitempty"`
}

// ItemService handles the catalog: browsing, listing creation and updates.
type ItemService interface {
	ListItems(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error)
	MyItems(ctx context.Context, ownerID uint) ([]model.Item, error)
	GetItem(ctx context.Context, id uint) (*ItemDetail, error)
	CreateItem(ctx context.Context, ownerID uint, in CreateItemInput) (*model.Item, error)
	UpdateItem(ctx context.Context, callerID uint, callerRole string, id uint, in UpdateItemInput) (*model.Item, error)
}

type itemService struct {
	itemRepo repository.ItemRepository
	cache    *cache.Client
}

// NewItemService creates a new catalog service.
func NewItemService(itemRepo repository.ItemRepository, cache *cache.Client) ItemService {
	return &itemService{
		itemRepo: itemRepo,
		cache:    cache,
	}
}

func itemCacheKey(id uint) string {
	return fmt.Sprintf("item:%d", id)
}

// ListItems returns the public catalog. Availability is always forced on;
// everything else comes from the caller's filter.
func (s *itemService) ListItems(ctx context.Context, filter repository.ItemFilter) ([]model.Item, error) {
	available := true
	filter.IsAvailable = &available
	return s.itemRepo.List(ctx, filter)
}

// MyItems returns the owner's listings regardless of approval or availability.
func (s *itemService) MyItems(ctx context.Context, ownerID uint) ([]model.Item, error) {
	return s.itemRepo.List(ctx, repository.ItemFilter{OwnerID: &ownerID})
}

// GetItem retrieves an item with its owner summary, cached for a short TTL.
func (s *itemService) GetItem(ctx context.Context, id uint) (*ItemDetail, error) {
	if data, _ := s.cache.Get(ctx, itemCacheKey(id)); data != nil {
		var cached ItemDetail
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	item, owner, err := s.itemRepo.FindByIDWithOwner(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}

	detail := &ItemDetail{Item: *item, Owner: owner}
	if payload, err := json.Marshal(detail); err == nil {
		_ = s.cache.Set(ctx, itemCacheKey(id), payload, itemCacheTTL)
	}
	return detail, nil
}

// CreateItem creates a pending listing owned by the caller. The owner id is
// never taken from the payload.
func (s *itemService) CreateItem(ctx context.Context, ownerID uint, in CreateItemInput) (*model.Item, error) {
	item := &model.Item{
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Condition:   in.Condition,
		Size:        in.Size,
		Value:       in.Value,
		ImageURLs:   model.StringList(in.ImageURLs),
		Tags:        model.StringList(in.Tags),
		OwnerID:     ownerID,
		IsApproved:  false,
		IsAvailable: true,
	}
	if item.ImageURLs == nil {
		item.ImageURLs = model.StringList{}
	}
	if item.Tags == nil {
		item.Tags = model.StringList{}
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

// UpdateItem applies a partial update. Only the owner or an admin may update.
func (s *itemService) UpdateItem(ctx context.Context, callerID uint, callerRole string, id uint, in UpdateItemInput) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.ErrItemNotFound
		}
		return nil, err
	}

	if item.OwnerID != callerID && callerRole != model.RoleAdmin {
		return nil, apperrors.ErrNotAuthorized
	}

	if in.Title != nil {
		item.Title = *in.Title
	}
	if in.Description != nil {
		item.Description = *in.Description
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Condition != nil {
		item.Condition = *in.Condition
	}
	if in.Size != nil {
		item.Size = *in.Size
	}
	if in.Value != nil {
		item.Value = *in.Value
	}
	if in.ImageURLs != nil {
		item.ImageURLs = model.StringList(*in.ImageURLs)
	}
	if in.Tags != nil {
		item.Tags = model.StringList(*in.Tags)
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	_ = s.cache.Delete(ctx, itemCacheKey(id))
	return item, nil
}
