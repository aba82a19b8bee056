package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/zWyrm/rewear-teamtan/internal/errors"
	"github.com/zWyrm/rewear-teamtan/internal/model"
	"github.com/zWyrm/rewear-teamtan/internal/repository"
)

func seedItem(t *testing.T, items repository.ItemRepository, ownerID uint, title string, approved, available bool) *model.Item {
	t.Helper()
	item := &model.Item{
		Title:       title,
		Description: "test item",
		Category:    model.CategoryTops,
		Condition:   model.ConditionGood,
		Size:        "M",
		Value:       500,
		OwnerID:     ownerID,
		IsApproved:  approved,
		IsAvailable: available,
	}
	require.NoError(t, items.Create(context.Background(), item))
	return item
}

func TestItemService_CreateItem(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewItemService(store.Items(), nil)

	item, err := svc.CreateItem(ctx, 7, CreateItemInput{
		Title:       "Vintage Denim Jacket",
		Description: "Classic.",
		Category:    model.CategoryOuterwear,
		Condition:   model.ConditionExcellent,
		Size:        "M",
		Value:       1200,
	})
	require.NoError(t, err)

	assert.Equal(t, uint(7), item.OwnerID)
	assert.False(t, item.IsApproved, "new listings start unapproved")
	assert.True(t, item.IsAvailable)
	assert.NotNil(t, item.ImageURLs)
	assert.NotNil(t, item.Tags)
}

func TestItemService_ListItems(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	items := store.Items()
	svc := NewItemService(items, nil)

	approved := seedItem(t, items, 1, "Silk Blouse", true, true)
	seedItem(t, items, 1, "Pending Coat", false, true)
	seedItem(t, items, 2, "Taken Dress", true, false)

	isApproved := true
	got, err := svc.ListItems(ctx, repository.ItemFilter{IsApproved: &isApproved})
	require.NoError(t, err)
	require.Len(t, got, 1, "only approved and available items are public")
	assert.Equal(t, approved.ID, got[0].ID)
}

func TestItemService_ListItemsSearch(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	items := store.Items()
	svc := NewItemService(items, nil)

	jacket := seedItem(t, items, 1, "Vintage Denim Jacket", true, true)
	seedItem(t, items, 1, "Silk Blouse", true, true)

	got, err := svc.ListItems(ctx, repository.ItemFilter{Search: "denim"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, jacket.ID, got[0].ID)
}

func TestItemService_MyItems(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	items := store.Items()
	svc := NewItemService(items, nil)

	seedItem(t, items, 1, "Mine Approved", true, true)
	seedItem(t, items, 1, "Mine Pending", false, true)
	seedItem(t, items, 2, "Someone Else's", true, true)

	got, err := svc.MyItems(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, got, 2, "own listings include unapproved ones")
}

func TestItemService_GetItem(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	owner := &model.User{Username: "sarah_fashion", Email: "sarah@example.com", Role: model.RoleUser}
	require.NoError(t, store.Users().Create(ctx, owner))
	item := seedItem(t, store.Items(), owner.ID, "Silk Blouse", true, true)

	svc := NewItemService(store.Items(), nil)

	detail, err := svc.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Title, detail.Title)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, "sarah_fashion", detail.Owner.Username)

	_, err = svc.GetItem(ctx, 999)
	assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
}

func TestItemService_UpdateItem(t *testing.T) {
	ctx := context.Background()

	newTitle := "Renamed"
	unavailable := false

	t.Run("owner can update", func(t *testing.T) {
		store := repository.NewMemoryStore()
		item := seedItem(t, store.Items(), 1, "Old Title", true, true)
		svc := NewItemService(store.Items(), nil)

		updated, err := svc.UpdateItem(ctx, 1, model.RoleUser, item.ID, UpdateItemInput{
			Title:       &newTitle,
			IsAvailable: &unavailable,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)
		assert.False(t, updated.IsAvailable)
	})

	t.Run("admin can update another user's item", func(t *testing.T) {
		store := repository.NewMemoryStore()
		item := seedItem(t, store.Items(), 1, "Old Title", true, true)
		svc := NewItemService(store.Items(), nil)

		_, err := svc.UpdateItem(ctx, 99, model.RoleAdmin, item.ID, UpdateItemInput{Title: &newTitle})
		assert.NoError(t, err)
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		store := repository.NewMemoryStore()
		item := seedItem(t, store.Items(), 1, "Old Title", true, true)
		svc := NewItemService(store.Items(), nil)

		_, err := svc.UpdateItem(ctx, 99, model.RoleUser, item.ID, UpdateItemInput{Title: &newTitle})
		assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	})

	t.Run("missing item", func(t *testing.T) {
		store := repository.NewMemoryStore()
		svc := NewItemService(store.Items(), nil)

		_, err := svc.UpdateItem(ctx, 1, model.RoleUser, 999, UpdateItemInput{Title: &newTitle})
		assert.ErrorIs(t, err, apperrors.ErrItemNotFound)
	})
}
