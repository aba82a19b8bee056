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

type swapFixture struct {
	store     *repository.MemoryStore
	svc       SwapService
	requester *model.User
	owner     *model.User
	ownerItem *model.Item
	myItem    *model.Item
}

// newSwapFixture seeds two members and one approved item on each side.
// The requester starts with 150 points, the owner with 50.
func newSwapFixture(t *testing.T) *swapFixture {
	t.Helper()
	ctx := context.Background()
	store := repository.NewMemoryStore()
	users := store.Users()
	items := store.Items()

	requester := &model.User{Username: "sarah_fashion", Email: "sarah@example.com", Role: model.RoleUser, Points: 150, PhoneNumber: "+15550100001"}
	owner := &model.User{Username: "mike_threads", Email: "mike@example.com", Role: model.RoleUser, Points: 50, PhoneNumber: "+15550100002"}
	require.NoError(t, users.Create(ctx, requester))
	require.NoError(t, users.Create(ctx, owner))

	ownerItem := &model.Item{
		Title: "Vintage Denim Jacket", Description: "Classic denim.",
		Category: model.CategoryOuterwear, Condition: model.ConditionExcellent,
		Size: "M", Value: 1200, OwnerID: owner.ID,
		IsApproved: true, IsAvailable: true,
	}
	myItem := &model.Item{
		Title: "Silk Blouse", Description: "Elegant blouse.",
		Category: model.CategoryTops, Condition: model.ConditionExcellent,
		Size: "M", Value: 1100, OwnerID: requester.ID,
		IsApproved: true, IsAvailable: true,
	}
	require.NoError(t, items.Create(ctx, ownerItem))
	require.NoError(t, items.Create(ctx, myItem))

	return &swapFixture{
		store:     store,
		svc:       NewSwapService(store.Swaps(), items, users, nil),
		requester: requester,
		owner:     owner,
		ownerItem: ownerItem,
		myItem:    myItem,
	}
}

func (f *swapFixture) points(t *testing.T, id uint) int {
	t.Helper()
	u, err := f.store.Users().FindByID(context.Background(), id)
	require.NoError(t, err)
	return u.Points
}

func TestSwapService_CreateSwap(t *testing.T) {
	ctx := context.Background()

	t.Run("item for item", func(t *testing.T) {
		f := newSwapFixture(t)
		swap, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{
			RequesterItemID: &f.myItem.ID,
			OwnerItemID:     f.ownerItem.ID,
			Message:         "trade?",
		})
		require.NoError(t, err)
		assert.Equal(t, model.SwapStatusPending, swap.Status)
		assert.Equal(t, f.owner.ID, swap.OwnerID)
		assert.False(t, swap.IsPointsOnly())
	})

	t.Run("points only", func(t *testing.T) {
		f := newSwapFixture(t)
		swap, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{
			OwnerItemID:      f.ownerItem.ID,
			PointsDifference: 100,
		})
		require.NoError(t, err)
		assert.True(t, swap.IsPointsOnly())
	})

	t.Run("offering someone else's item", func(t *testing.T) {
		f := newSwapFixture(t)
		_, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{
			RequesterItemID: &f.ownerItem.ID,
			OwnerItemID:     f.ownerItem.ID,
		})
		assert.ErrorIs(t, err, apperrors.ErrNotItemOwner)
	})

	t.Run("target item missing", func(t *testing.T) {
		f := newSwapFixture(t)
		_, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{OwnerItemID: 999})
		assert.ErrorIs(t, err, apperrors.ErrItemUnavailable)
	})

	t.Run("target item unavailable", func(t *testing.T) {
		f := newSwapFixture(t)
		f.ownerItem.IsAvailable = false
		require.NoError(t, f.store.Items().Update(ctx, f.ownerItem))

		_, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{OwnerItemID: f.ownerItem.ID})
		assert.ErrorIs(t, err, apperrors.ErrItemUnavailable)
	})
}

func TestSwapService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("only the owner decides", func(t *testing.T) {
		f := newSwapFixture(t)
		swap, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{OwnerItemID: f.ownerItem.ID, PointsDifference: 100})
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(ctx, f.requester.ID, swap.ID, model.SwapStatusAccepted)
		assert.ErrorIs(t, err, apperrors.ErrNotAuthorized)
	})

	t.Run("accepting a points swap settles the balance", func(t *testing.T) {
		f := newSwapFixture(t)
		swap, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{OwnerItemID: f.ownerItem.ID, PointsDifference: 100})
		require.NoError(t, err)

		decision, err := f.svc.UpdateStatus(ctx, f.owner.ID, swap.ID, model.SwapStatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, model.SwapStatusAccepted, decision.Status)

		assert.Equal(t, 50, f.points(t, f.requester.ID))
		assert.Equal(t, 150, f.points(t, f.owner.ID))
	})

	t.Run("negative difference pays the requester", func(t *testing.T) {
		f := newSwapFixture(t)
		swap, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{OwnerItemID: f.ownerItem.ID, PointsDifference: -30})
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(ctx, f.owner.ID, swap.ID, model.SwapStatusAccepted)
		require.NoError(t, err)

		assert.Equal(t, 180, f.points(t, f.requester.ID))
		assert.Equal(t, 20, f.points(t, f.owner.ID))
	})

	t.Run("balances may go negative", func(t *testing.T) {
		f := newSwapFixture(t)
		swap, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{OwnerItemID: f.ownerItem.ID, PointsDifference: 200})
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(ctx, f.owner.ID, swap.ID, model.SwapStatusAccepted)
		require.NoError(t, err)

		assert.Equal(t, -50, f.points(t, f.requester.ID))
		assert.Equal(t, 250, f.points(t, f.owner.ID))
	})

	t.Run("item for item moves no points", func(t *testing.T) {
		f := newSwapFixture(t)
		swap, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{
			RequesterItemID:  &f.myItem.ID,
			OwnerItemID:      f.ownerItem.ID,
			PointsDifference: 100,
		})
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(ctx, f.owner.ID, swap.ID, model.SwapStatusAccepted)
		require.NoError(t, err)

		assert.Equal(t, 150, f.points(t, f.requester.ID))
		assert.Equal(t, 50, f.points(t, f.owner.ID))
	})

	t.Run("declining moves no points", func(t *testing.T) {
		f := newSwapFixture(t)
		swap, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{OwnerItemID: f.ownerItem.ID, PointsDifference: 100})
		require.NoError(t, err)

		decision, err := f.svc.UpdateStatus(ctx, f.owner.ID, swap.ID, model.SwapStatusDeclined)
		require.NoError(t, err)
		assert.Equal(t, model.SwapStatusDeclined, decision.Status)
		assert.Nil(t, decision.ContactDetails)

		assert.Equal(t, 150, f.points(t, f.requester.ID))
		assert.Equal(t, 50, f.points(t, f.owner.ID))
	})

	t.Run("second decision is rejected and not settled twice", func(t *testing.T) {
		f := newSwapFixture(t)
		swap, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{OwnerItemID: f.ownerItem.ID, PointsDifference: 100})
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(ctx, f.owner.ID, swap.ID, model.SwapStatusAccepted)
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(ctx, f.owner.ID, swap.ID, model.SwapStatusAccepted)
		assert.ErrorIs(t, err, apperrors.ErrSwapAlreadyDecided)
		_, err = f.svc.UpdateStatus(ctx, f.owner.ID, swap.ID, model.SwapStatusDeclined)
		assert.ErrorIs(t, err, apperrors.ErrSwapAlreadyDecided)

		assert.Equal(t, 50, f.points(t, f.requester.ID))
		assert.Equal(t, 150, f.points(t, f.owner.ID))
	})

	t.Run("contact details disclosed on acceptance", func(t *testing.T) {
		f := newSwapFixture(t)
		swap, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{OwnerItemID: f.ownerItem.ID, PointsDifference: 100})
		require.NoError(t, err)

		decision, err := f.svc.UpdateStatus(ctx, f.owner.ID, swap.ID, model.SwapStatusAccepted)
		require.NoError(t, err)
		require.NotNil(t, decision.ContactDetails)
		assert.Equal(t, "sarah@example.com", decision.ContactDetails.Requester.Email)
		assert.Equal(t, "mike@example.com", decision.ContactDetails.Owner.Email)
	})

	t.Run("invalid status value", func(t *testing.T) {
		f := newSwapFixture(t)
		swap, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{OwnerItemID: f.ownerItem.ID})
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(ctx, f.owner.ID, swap.ID, model.SwapStatus("shipped"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("missing swap", func(t *testing.T) {
		f := newSwapFixture(t)
		_, err := f.svc.UpdateStatus(ctx, f.owner.ID, 999, model.SwapStatusAccepted)
		assert.ErrorIs(t, err, apperrors.ErrSwapNotFound)
	})
}

func TestSwapService_ListMySwaps(t *testing.T) {
	ctx := context.Background()
	f := newSwapFixture(t)

	pending, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{OwnerItemID: f.ownerItem.ID, PointsDifference: 40, Message: "hi"})
	require.NoError(t, err)
	accepted, err := f.svc.CreateSwap(ctx, f.requester.ID, CreateSwapInput{RequesterItemID: &f.myItem.ID, OwnerItemID: f.ownerItem.ID})
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, f.owner.ID, accepted.ID, model.SwapStatusAccepted)
	require.NoError(t, err)

	mine, err := f.svc.ListMySwaps(ctx, f.requester.ID)
	require.NoError(t, err)
	require.Len(t, mine.Requested, 2)
	assert.Empty(t, mine.Received)

	for _, view := range mine.Requested {
		require.NotNil(t, view.OwnerItem)
		assert.Equal(t, "Vintage Denim Jacket", view.OwnerItem.Title)
		switch view.ID {
		case pending.ID:
			assert.Nil(t, view.OtherUserContact, "pending swap must not reveal contact details")
		case accepted.ID:
			require.NotNil(t, view.OtherUserContact)
			assert.Equal(t, "mike_threads", view.OtherUserContact.Username)
			require.NotNil(t, view.RequesterItem)
			assert.Equal(t, "Silk Blouse", view.RequesterItem.Title)
		}
	}

	theirs, err := f.svc.ListMySwaps(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs.Requested)
	assert.Len(t, theirs.Received, 2)
}
