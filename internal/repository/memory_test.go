package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zWyrm/rewear-teamtan/internal/model"
)

func TestMemoryUserRepo(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	u := &model.User{Username: "sarah_fashion", Email: "sarah@example.com", Points: 150}
	require.NoError(t, users.Create(ctx, u))
	assert.NotZero(t, u.ID)

	byName, err := users.FindByUsername(ctx, "sarah_fashion")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	byEither, err := users.FindByUsernameOrEmail(ctx, "sarah@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEither.ID)

	_, err = users.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, users.AdjustPoints(ctx, u.ID, -40))
	got, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 110, got.Points)

	// adjusting a missing user is a silent no-op
	assert.NoError(t, users.AdjustPoints(ctx, 999, 10))
}

func TestMemoryUserRepoReturnsCopies(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	u := &model.User{Username: "sarah_fashion", Email: "sarah@example.com", Points: 150}
	require.NoError(t, users.Create(ctx, u))

	got, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	got.Points = 9999

	again, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 150, again.Points, "mutating a returned record must not touch the store")
}

func TestMemoryItemRepoFilters(t *testing.T) {
	ctx := context.Background()
	items := NewMemoryStore().Items()

	mk := func(title string, cat model.ItemCategory, owner uint, approved, available bool, desc string) *model.Item {
		it := &model.Item{
			Title: title, Description: desc, Category: cat,
			Condition: model.ConditionGood, Size: "M", Value: 500,
			OwnerID: owner, IsApproved: approved, IsAvailable: available,
		}
		require.NoError(t, items.Create(ctx, it))
		return it
	}

	jacket := mk("Vintage Denim Jacket", model.CategoryOuterwear, 1, true, true, "classic denim layer")
	mk("Silk Blouse", model.CategoryTops, 2, true, true, "elegant")
	pendingBoots := mk("Black Boots", model.CategoryShoes, 1, false, true, "sturdy")

	cat := model.CategoryOuterwear
	got, err := items.List(ctx, ItemFilter{Category: &cat})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, jacket.ID, got[0].ID)

	owner := uint(1)
	got, err = items.List(ctx, ItemFilter{OwnerID: &owner})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = items.List(ctx, ItemFilter{Search: "DENIM"})
	require.NoError(t, err)
	require.Len(t, got, 1, "search is case-insensitive")
	assert.Equal(t, jacket.ID, got[0].ID)

	got, err = items.List(ctx, ItemFilter{Search: "elegant"})
	require.NoError(t, err)
	assert.Len(t, got, 1, "search also matches descriptions")

	pending, err := items.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, pendingBoots.ID, pending[0].ID)

	require.NoError(t, items.Approve(ctx, pendingBoots.ID))
	pending, err = items.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.NoError(t, items.Delete(ctx, jacket.ID))
	assert.ErrorIs(t, items.Delete(ctx, jacket.ID), ErrNotFound)
}

func TestMemorySwapRepoDecide(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	users := store.Users()
	swaps := store.Swaps()

	requester := &model.User{Username: "sarah_fashion", Email: "sarah@example.com", Points: 100}
	owner := &model.User{Username: "mike_threads", Email: "mike@example.com", Points: 100}
	require.NoError(t, users.Create(ctx, requester))
	require.NoError(t, users.Create(ctx, owner))

	sw := &model.Swap{RequesterID: requester.ID, OwnerID: owner.ID, OwnerItemID: 1, PointsDifference: 30}
	require.NoError(t, swaps.Create(ctx, sw))
	assert.Equal(t, model.SwapStatusPending, sw.Status)

	decided, err := swaps.Decide(ctx, sw.ID, model.SwapStatusAccepted, []PointsTransfer{
		{UserID: requester.ID, Delta: -30},
		{UserID: owner.ID, Delta: 30},
	})
	require.NoError(t, err)
	assert.Equal(t, model.SwapStatusAccepted, decided.Status)

	_, err = swaps.Decide(ctx, sw.ID, model.SwapStatusDeclined, nil)
	assert.ErrorIs(t, err, ErrAlreadyDecided)

	_, err = swaps.Decide(ctx, 999, model.SwapStatusAccepted, nil)
	assert.ErrorIs(t, err, ErrNotFound)

	r, err := users.FindByID(ctx, requester.ID)
	require.NoError(t, err)
	o, err := users.FindByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, r.Points)
	assert.Equal(t, 130, o.Points)
}

// Concurrent deciders race on the same pending swap. Exactly one must win
// and the transfers must apply exactly once.
func TestMemorySwapRepoDecideConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	users := store.Users()
	swaps := store.Swaps()

	requester := &model.User{Username: "sarah_fashion", Email: "sarah@example.com", Points: 100}
	owner := &model.User{Username: "mike_threads", Email: "mike@example.com", Points: 100}
	require.NoError(t, users.Create(ctx, requester))
	require.NoError(t, users.Create(ctx, owner))

	sw := &model.Swap{RequesterID: requester.ID, OwnerID: owner.ID, OwnerItemID: 1, PointsDifference: 30}
	require.NoError(t, swaps.Create(ctx, sw))

	const workers = 16
	var wg sync.WaitGroup
	wins := make(chan struct{}, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := swaps.Decide(ctx, sw.ID, model.SwapStatusAccepted, []PointsTransfer{
				{UserID: requester.ID, Delta: -30},
				{UserID: owner.ID, Delta: 30},
			})
			if err == nil {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)

	assert.Len(t, wins, 1, "exactly one decision must succeed")

	r, err := users.FindByID(ctx, requester.ID)
	require.NoError(t, err)
	o, err := users.FindByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, r.Points)
	assert.Equal(t, 130, o.Points)
	assert.Equal(t, 200, r.Points+o.Points, "points are conserved")
}
