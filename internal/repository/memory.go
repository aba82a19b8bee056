package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zWyrm/rewear-teamtan/internal/model"
)

// MemoryStore is a process-local implementation of the repository contract:
// explicit maps keyed by generated sequential ids behind one mutex. It backs
// tests and the "memory" storage driver; a deployment selects either this or
// the database driver at start, never both. The shared mutex makes Decide as
// atomic as the database transaction it mirrors.
type MemoryStore struct {
	mu         sync.Mutex
	users      map[uint]*model.User
	items      map[uint]*model.Item
	swaps      map[uint]*model.Swap
	nextUserID uint
	nextItemID uint
	nextSwapID uint
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uint]*model.User),
		items:      make(map[uint]*model.Item),
		swaps:      make(map[uint]*model.Swap),
		nextUserID: 1,
		nextItemID: 1,
		nextSwapID: 1,
	}
}

// Users returns the store's UserRepository view.
func (s *MemoryStore) Users() UserRepository { return &memoryUserRepo{s} }

// Items returns the store's ItemRepository view.
func (s *MemoryStore) Items() ItemRepository { return &memoryItemRepo{s} }

// Swaps returns the store's SwapRepository view.
func (s *MemoryStore) Swaps() SwapRepository { return &memorySwapRepo{s} }

func copyUser(u *model.User) *model.User {
	c := *u
	if u.SuspendedUntil != nil {
		t := *u.SuspendedUntil
		c.SuspendedUntil = &t
	}
	return &c
}

func copyItem(i *model.Item) *model.Item {
	c := *i
	c.ImageURLs = append(model.StringList{}, i.ImageURLs...)
	c.Tags = append(model.StringList{}, i.Tags...)
	return &c
}

func copySwap(sw *model.Swap) *model.Swap {
	c := *sw
	if sw.RequesterItemID != nil {
		id := *sw.RequesterItemID
		c.RequesterItemID = &id
	}
	return &c
}

type memoryUserRepo struct{ s *MemoryStore }

func (r *memoryUserRepo) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = r.s.nextUserID
	r.s.nextUserID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.s.users[user.ID] = copyUser(user)
	return nil
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool { return u.Username == username })
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool { return u.Email == email })
}

func (r *memoryUserRepo) FindByUsernameOrEmail(_ context.Context, usernameOrEmail string) (*model.User, error) {
	return r.findBy(func(u *model.User) bool {
		return u.Username == usernameOrEmail || u.Email == usernameOrEmail
	})
}

func (r *memoryUserRepo) findBy(match func(*model.User) bool) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepo) List(_ context.Context) ([]model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, *copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *memoryUserRepo) AdjustPoints(_ context.Context, id uint, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		u.Points += delta
		u.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memoryUserRepo) Suspend(_ context.Context, id uint, until time.Time) error {
	return r.mutate(id, func(u *model.User) { u.SuspendedUntil = &until })
}

func (r *memoryUserRepo) CancelSuspension(_ context.Context, id uint) error {
	return r.mutate(id, func(u *model.User) { u.SuspendedUntil = nil })
}

func (r *memoryUserRepo) Ban(_ context.Context, id uint) error {
	return r.mutate(id, func(u *model.User) { u.IsBanned = true })
}

func (r *memoryUserRepo) mutate(id uint, fn func(*model.User)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now()
	return nil
}

type memoryItemRepo struct{ s *MemoryStore }

func (r *memoryItemRepo) Create(_ context.Context, item *model.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item.ID = r.s.nextItemID
	r.s.nextItemID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	r.s.items[item.ID] = copyItem(item)
	return nil
}

func (r *memoryItemRepo) FindByID(_ context.Context, id uint) (*model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyItem(it), nil
}

func (r *memoryItemRepo) FindByIDWithOwner(_ context.Context, id uint) (*model.Item, *model.OwnerSummary, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil, ErrNotFound
	}
	var summary *model.OwnerSummary
	if owner, ok := r.s.users[it.OwnerID]; ok {
		summary = &model.OwnerSummary{Username: owner.Username, MemberSince: owner.CreatedAt}
	}
	return copyItem(it), summary, nil
}

func (r *memoryItemRepo) List(_ context.Context, filter ItemFilter) ([]model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := make([]model.Item, 0)
	for _, it := range r.s.items {
		if filter.Category != nil && it.Category != *filter.Category {
			continue
		}
		if filter.OwnerID != nil && it.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.IsApproved != nil && it.IsApproved != *filter.IsApproved {
			continue
		}
		if filter.IsAvailable != nil && it.IsAvailable != *filter.IsAvailable {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(it.Title), needle) &&
				!strings.Contains(strings.ToLower(it.Description), needle) {
				continue
			}
		}
		items = append(items, *copyItem(it))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID > items[j].ID })
	return items, nil
}

func (r *memoryItemRepo) Update(_ context.Context, item *model.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[item.ID]; !ok {
		return ErrNotFound
	}
	item.UpdatedAt = time.Now()
	r.s.items[item.ID] = copyItem(item)
	return nil
}

func (r *memoryItemRepo) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.items, id)
	return nil
}

func (r *memoryItemRepo) ListPending(_ context.Context) ([]model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := make([]model.Item, 0)
	for _, it := range r.s.items {
		if !it.IsApproved {
			items = append(items, *copyItem(it))
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *memoryItemRepo) Approve(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it, ok := r.s.items[id]
	if !ok {
		return ErrNotFound
	}
	it.IsApproved = true
	it.UpdatedAt = time.Now()
	return nil
}

type memorySwapRepo struct{ s *MemoryStore }

func (r *memorySwapRepo) Create(_ context.Context, swap *model.Swap) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	swap.ID = r.s.nextSwapID
	r.s.nextSwapID++
	if swap.Status == "" {
		swap.Status = model.SwapStatusPending
	}
	swap.CreatedAt = time.Now()
	swap.UpdatedAt = swap.CreatedAt
	r.s.swaps[swap.ID] = copySwap(swap)
	return nil
}

func (r *memorySwapRepo) FindByID(_ context.Context, id uint) (*model.Swap, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sw, ok := r.s.swaps[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copySwap(sw), nil
}

func (r *memorySwapRepo) List(_ context.Context, filter SwapFilter) ([]model.Swap, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	swaps := make([]model.Swap, 0)
	for _, sw := range r.s.swaps {
		if filter.RequesterID != nil && sw.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.OwnerID != nil && sw.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && sw.Status != *filter.Status {
			continue
		}
		swaps = append(swaps, *copySwap(sw))
	}
	sort.Slice(swaps, func(i, j int) bool { return swaps[i].ID > swaps[j].ID })
	return swaps, nil
}

// Decide performs the status compare-and-swap and the points transfers under
// the store mutex, giving the same at-most-once settlement guarantee as the
// database transaction.
func (r *memorySwapRepo) Decide(_ context.Context, id uint, status model.SwapStatus, transfers []PointsTransfer) (*model.Swap, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sw, ok := r.s.swaps[id]
	if !ok {
		return nil, ErrNotFound
	}
	if sw.Status != model.SwapStatusPending {
		return nil, ErrAlreadyDecided
	}
	sw.Status = status
	sw.UpdatedAt = time.Now()
	for _, t := range transfers {
		if u, ok := r.s.users[t.UserID]; ok {
			u.Points += t.Delta
		}
	}
	return copySwap(sw), nil
}
