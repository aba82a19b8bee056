package service

import (
	"context"
	"fmt"
	"time"

	"github.com/zWyrm/rewear-teamtan/internal/auth"
	"github.com/zWyrm/rewear-teamtan/internal/cache"
	apperrors "github.com/zWyrm/rewear-teamtan/internal/errors"
	"github.com/zWyrm/rewear-teamtan/internal/model"
	"github.com/zWyrm/rewear-teamtan/internal/queue"
	"github.com/zWyrm/rewear-teamtan/internal/repository"
)

// SuspendInput is the duration of a suspension. Months count as 30 days,
// matching the admin console's arithmetic.
type SuspendInput struct {
	Months int
	Days   int
	Hours  int
}

// Duration converts the input into a time.Duration.
func (in SuspendInput) Duration() time.Duration {
	return time.Duration(in.Months)*30*24*time.Hour +
		time.Duration(in.Days)*24*time.Hour +
		time.Duration(in.Hours)*time.Hour
}

// ModerationService implements the admin surface: the listing approval queue
// and user trust-state management. Trust changes also maintain the token
// revocation list so outstanding 7-day tokens stop working immediately.
type ModerationService interface {
	PendingItems(ctx context.Context) ([]model.Item, error)
	ApproveItem(ctx context.Context, id uint) error
	RejectItem(ctx context.Context, id uint) error
	ListUsers(ctx context.Context) ([]model.User, error)
	SuspendUser(ctx context.Context, id uint, in SuspendInput) error
	CancelSuspension(ctx context.Context, id uint) error
	BanUser(ctx context.Context, id uint) error
}

type moderationService struct {
	itemRepo   repository.ItemRepository
	userRepo   repository.UserRepository
	revocation auth.RevocationStore
	cache      *cache.Client
	publisher  *queue.Publisher
}

// NewModerationService creates a new moderation service.
func NewModerationService(
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	revocation auth.RevocationStore,
	cache *cache.Client,
	publisher *queue.Publisher,
) ModerationService {
	return &moderationService{
		itemRepo:   itemRepo,
		userRepo:   userRepo,
		revocation: revocation,
		cache:      cache,
		publisher:  publisher,
	}
}

// PendingItems returns the moderation queue: every unapproved item across all
// owners.
func (s *moderationService) PendingItems(ctx context.Context) ([]model.Item, error) {
	return s.itemRepo.ListPending(ctx)
}

// ApproveItem makes a listing visible in the catalog. One-way: there is no
// un-approve.
func (s *moderationService) ApproveItem(ctx context.Context, id uint) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return apperrors.ErrItemNotFound
		}
		return err
	}
	if err := s.itemRepo.Approve(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperrors.ErrItemNotFound
		}
		return fmt.Errorf("approve item: %w", err)
	}
	_ = s.cache.Delete(ctx, itemCacheKey(id))
	_ = s.publisher.PublishItemModerated(ctx, queue.ItemModeratedEvent{
		ItemID:  id,
		OwnerID: item.OwnerID,
		Action:  "approved",
	})
	return nil
}

// RejectItem hard-deletes a listing. The current moderation policy keeps no
// rejected state.
func (s *moderationService) RejectItem(ctx context.Context, id uint) error {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return apperrors.ErrItemNotFound
		}
		return err
	}
	if err := s.itemRepo.Delete(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperrors.ErrItemNotFound
		}
		return fmt.Errorf("reject item: %w", err)
	}
	_ = s.cache.Delete(ctx, itemCacheKey(id))
	_ = s.publisher.PublishItemModerated(ctx, queue.ItemModeratedEvent{
		ItemID:  id,
		OwnerID: item.OwnerID,
		Action:  "rejected",
	})
	return nil
}

// ListUsers returns every user record for the admin console.
func (s *moderationService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// SuspendUser blocks login until now + duration and deny-lists outstanding
// tokens for the same window.
func (s *moderationService) SuspendUser(ctx context.Context, id uint, in SuspendInput) error {
	duration := in.Duration()
	until := time.Now().Add(duration)
	if err := s.userRepo.Suspend(ctx, id, until); err != nil {
		if err == repository.ErrNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("suspend user: %w", err)
	}
	_ = s.revocation.Revoke(ctx, id, duration)
	_ = s.publisher.PublishUserTrust(ctx, queue.UserTrustEvent{
		UserID: id,
		Action: "suspended",
		Until:  &until,
	})
	return nil
}

// CancelSuspension clears the suspension and reinstates outstanding tokens.
func (s *moderationService) CancelSuspension(ctx context.Context, id uint) error {
	if err := s.userRepo.CancelSuspension(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("cancel suspension: %w", err)
	}
	_ = s.revocation.Reinstate(ctx, id)
	_ = s.publisher.PublishUserTrust(ctx, queue.UserTrustEvent{
		UserID: id,
		Action: "suspension_cancelled",
	})
	return nil
}

// BanUser permanently blocks login and deny-lists outstanding tokens for the
// full token lifetime.
func (s *moderationService) BanUser(ctx context.Context, id uint) error {
	if err := s.userRepo.Ban(ctx, id); err != nil {
		if err == repository.ErrNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("ban user: %w", err)
	}
	_ = s.revocation.Revoke(ctx, id, auth.TokenExpiry)
	_ = s.publisher.PublishUserTrust(ctx, queue.UserTrustEvent{
		UserID: id,
		Action: "banned",
	})
	return nil
}
