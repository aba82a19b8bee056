package queue

import "time"

// Queue names for published domain events.
const (
	QueueSwapDecided   = "swap.decided"
	QueueItemModerated = "item.moderated"
	QueueUserTrust     = "user.trust"
)

// SwapDecidedEvent is emitted when a swap leaves the pending state.
type SwapDecidedEvent struct {
	SwapID           uint   `json:"swap_id"`
	RequesterID      uint   `json:"requester_id"`
	OwnerID          uint   `json:"owner_id"`
	Status           string `json:"status"`
	PointsDifference int    `json:"points_difference"`
	PointsSettled    bool   `json:"points_settled"`
}

// ItemModeratedEvent is emitted when an admin approves or rejects a listing.
type ItemModeratedEvent struct {
	ItemID  uint   `json:"item_id"`
	OwnerID uint   `json:"owner_id"`
	Action  string `json:"action"` // "approved" or "rejected"
}

// UserTrustEvent is emitted when an admin changes a user's trust state.
type UserTrustEvent struct {
	UserID uint       `json:"user_id"`
	Action string     `json:"action"` // "suspended", "suspension_cancelled" or "banned"
	Until  *time.Time `json:"until,omitempty"`
}
