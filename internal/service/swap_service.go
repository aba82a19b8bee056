package service

import (
	"context"
	"fmt"

	apperrors "github.com/zWyrm/rewear-teamtan/internal/errors"
	"github.com/zWyrm/rewear-teamtan/internal/model"
	"github.com/zWyrm/rewear-teamtan/internal/queue"
	"github.com/zWyrm/rewear-teamtan/internal/repository"
)

// CreateSwapInput carries a validated swap request. RequesterItemID nil means
// a pure points offer.
type CreateSwapInput struct {
	RequesterItemID  *uint
	OwnerItemID      uint
	PointsDifference int
	Message          string
}

// ItemRef is the lightweight item reference embedded in swap listings.
type ItemRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// ContactDetails is the one-time disclosure revealed to both parties of an
// accepted swap. It must never be attached to a pending or declined swap.
type ContactDetails struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Username    string `json:"username"`
}

// SwapView is a swap enriched for the my-swaps listing.
type SwapView struct {
	model.Swap
	OwnerItem        *ItemRef        `json:"owner_item"`
	RequesterItem    *ItemRef        `json:"requester_item"`
	OtherUserContact *ContactDetails `json:"other_user_contact,omitempty"`
}

// MySwaps splits the caller's swaps by side.
type MySwaps struct {
	Requested []SwapView `json:"requested"`
	Received  []SwapView `json:"received"`
}

// SwapDecision is the response to an accept/decline. ContactDetails is set
// only on acceptance with both parties still present.
type SwapDecision struct {
	model.Swap
	ContactDetails *SwapContacts `json:"contact_details,omitempty"`
}

// SwapContacts pairs both parties' contact blocks.
type SwapContacts struct {
	Requester ContactDetails `json:"requester"`
	Owner     ContactDetails `json:"owner"`
}

// SwapService implements the swap negotiation state machine and points
// settlement.
type SwapService interface {
	CreateSwap(ctx context.Context, requesterID uint, in CreateSwapInput) (*model.Swap, error)
	ListMySwaps(ctx context.Context, userID uint) (*MySwaps, error)
	UpdateStatus(ctx context.Context, callerID, swapID uint, status model.SwapStatus) (*SwapDecision, error)
}

type swapService struct {
	swapRepo  repository.SwapRepository
	itemRepo  repository.ItemRepository
	userRepo  repository.UserRepository
	publisher *queue.Publisher
}

// NewSwapService creates a new swap service.
func NewSwapService(
	swapRepo repository.SwapRepository,
	itemRepo repository.ItemRepository,
	userRepo repository.UserRepository,
	publisher *queue.Publisher,
) SwapService {
	return &swapService{
		swapRepo:  swapRepo,
		itemRepo:  itemRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// CreateSwap records a pending swap request. The offered item, if any, must
// belong to the requester; the target item must exist and be available. The
// swap's owner side is resolved from the target item's current owner, never
// from the caller's payload.
func (s *swapService) CreateSwap(ctx context.Context, requesterID uint, in CreateSwapInput) (*model.Swap, error) {
	if in.RequesterItemID != nil {
		offered, err := s.itemRepo.FindByID(ctx, *in.RequesterItemID)
		if err != nil || offered.OwnerID != requesterID {
			return nil, apperrors.ErrNotItemOwner
		}
	}

	target, err := s.itemRepo.FindByID(ctx, in.OwnerItemID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.ErrItemUnavailable
		}
		return nil, fmt.Errorf("find target item: %w", err)
	}
	if !target.IsAvailable {
		return nil, apperrors.ErrItemUnavailable
	}

	swap := &model.Swap{
		RequesterID:      requesterID,
		OwnerID:          target.OwnerID,
		RequesterItemID:  in.RequesterItemID,
		OwnerItemID:      in.OwnerItemID,
		PointsDifference: in.PointsDifference,
		Status:           model.SwapStatusPending,
		Message:          in.Message,
	}
	if err := s.swapRepo.Create(ctx, swap); err != nil {
		return nil, fmt.Errorf("create swap: %w", err)
	}
	return swap, nil
}

// ListMySwaps returns the caller's swaps on both sides, each enriched with
// item references and, for accepted swaps only, the counterparty's contact
// details.
func (s *swapService) ListMySwaps(ctx context.Context, userID uint) (*MySwaps, error) {
	requested, err := s.swapRepo.List(ctx, repository.SwapFilter{RequesterID: &userID})
	if err != nil {
		return nil, fmt.Errorf("list requested swaps: %w", err)
	}
	received, err := s.swapRepo.List(ctx, repository.SwapFilter{OwnerID: &userID})
	if err != nil {
		return nil, fmt.Errorf("list received swaps: %w", err)
	}

	out := &MySwaps{
		Requested: make([]SwapView, 0, len(requested)),
		Received:  make([]SwapView, 0, len(received)),
	}
	for _, sw := range requested {
		out.Requested = append(out.Requested, s.enrich(ctx, sw, sw.OwnerID))
	}
	for _, sw := range received {
		out.Received = append(out.Received, s.enrich(ctx, sw, sw.RequesterID))
	}
	return out, nil
}

// enrich builds a SwapView. counterpartyID is the user on the other side of
// the swap from the caller's perspective; their contact block is disclosed
// only once the swap is accepted.
func (s *swapService) enrich(ctx context.Context, sw model.Swap, counterpartyID uint) SwapView {
	view := SwapView{Swap: sw}
	if item, err := s.itemRepo.FindByID(ctx, sw.OwnerItemID); err == nil {
		view.OwnerItem = &ItemRef{ID: item.ID, Title: item.Title}
	}
	if sw.RequesterItemID != nil {
		if item, err := s.itemRepo.FindByID(ctx, *sw.RequesterItemID); err == nil {
			view.RequesterItem = &ItemRef{ID: item.ID, Title: item.Title}
		}
	}
	if sw.Status == model.SwapStatusAccepted {
		if other, err := s.userRepo.FindByID(ctx, counterpartyID); err == nil {
			view.OtherUserContact = contactOf(other)
		}
	}
	return view
}

// UpdateStatus transitions a swap out of pending. Only the item owner may
// accept or decline. Acceptance settles points and the status flip in one
// transaction; the compare-and-swap in the repository guarantees a swap is
// settled at most once even under concurrent or retried requests.
func (s *swapService) UpdateStatus(ctx context.Context, callerID, swapID uint, status model.SwapStatus) (*SwapDecision, error) {
	if !model.ValidSwapStatus(status) {
		return nil, apperrors.ErrInvalidTransition
	}

	swap, err := s.swapRepo.FindByID(ctx, swapID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.ErrSwapNotFound
		}
		return nil, fmt.Errorf("find swap: %w", err)
	}

	// The item owner decides, not the requester.
	if status == model.SwapStatusAccepted || status == model.SwapStatusDeclined {
		if swap.OwnerID != callerID {
			return nil, apperrors.ErrNotAuthorized
		}
	}

	if !model.CanTransition(swap.Status, status) {
		if swap.Status != model.SwapStatusPending {
			return nil, apperrors.ErrSwapAlreadyDecided
		}
		return nil, apperrors.ErrInvalidTransition
	}

	// Resolve both parties up front. A missing party means the bare status
	// flip still applies but settlement and disclosure are skipped.
	requester, reqErr := s.userRepo.FindByID(ctx, swap.RequesterID)
	owner, ownErr := s.userRepo.FindByID(ctx, swap.OwnerID)
	bothPresent := reqErr == nil && ownErr == nil

	var transfers []repository.PointsTransfer
	settled := false
	if status == model.SwapStatusAccepted && bothPresent &&
		swap.IsPointsOnly() && swap.PointsDifference != 0 {
		// Positive difference: requester pays owner. Negative applies the
		// symmetric inverse. No floor at zero.
		transfers = []repository.PointsTransfer{
			{UserID: swap.RequesterID, Delta: -swap.PointsDifference},
			{UserID: swap.OwnerID, Delta: swap.PointsDifference},
		}
		settled = true
	}

	decided, err := s.swapRepo.Decide(ctx, swapID, status, transfers)
	if err != nil {
		switch err {
		case repository.ErrNotFound:
			return nil, apperrors.ErrSwapNotFound
		case repository.ErrAlreadyDecided:
			return nil, apperrors.ErrSwapAlreadyDecided
		default:
			return nil, fmt.Errorf("decide swap: %w", err)
		}
	}

	_ = s.publisher.PublishSwapDecided(ctx, queue.SwapDecidedEvent{
		SwapID:           decided.ID,
		RequesterID:      decided.RequesterID,
		OwnerID:          decided.OwnerID,
		Status:           string(decided.Status),
		PointsDifference: decided.PointsDifference,
		PointsSettled:    settled,
	})

	decision := &SwapDecision{Swap: *decided}
	if status == model.SwapStatusAccepted && bothPresent {
		decision.ContactDetails = &SwapContacts{
			Requester: *contactOf(requester),
			Owner:     *contactOf(owner),
		}
	}
	return decision, nil
}

func contactOf(u *model.User) *ContactDetails {
	return &ContactDetails{
		Name:        u.FullName(),
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		Username:    u.Username,
	}
}
