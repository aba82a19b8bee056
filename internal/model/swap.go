package model

import "time"

// SwapStatus represents the lifecycle state of a swap request.
type SwapStatus string

const (
	SwapStatusPending  SwapStatus = "pending"
	SwapStatusAccepted SwapStatus = "accepted"
	SwapStatusDeclined SwapStatus = "declined"
	SwapStatusComplete SwapStatus = "completed"
)

// swapTransitions is the allowed-transition table. Completed currently has no
// inbound edge: nothing in the product drives it yet, so a swap stays accepted
// until that behavior is confirmed.
var swapTransitions = map[SwapStatus][]SwapStatus{
	SwapStatusPending:  {SwapStatusAccepted, SwapStatusDeclined},
	SwapStatusAccepted: {},
	SwapStatusDeclined: {},
	SwapStatusComplete: {},
}

// ValidSwapStatus reports whether s is a known status value.
func ValidSwapStatus(s SwapStatus) bool {
	_, ok := swapTransitions[s]
	return ok
}

// CanTransition reports whether the status machine permits from -> to.
func CanTransition(from, to SwapStatus) bool {
	for _, next := range swapTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Swap represents a proposed exchange between two users: the requester offers
// either one of their own items (RequesterItemID set) or points for the
// owner's item. PointsDifference is signed, positive meaning the requester
// pays the owner; it is informational only once a counter-item is offered.
type Swap struct {
	ID               uint       `json:"id" gorm:"primaryKey"`
	RequesterID      uint       `json:"requester_id" gorm:"not null;index"`
	OwnerID          uint       `json:"owner_id" gorm:"not null;index"`
	RequesterItemID  *uint      `json:"requester_item_id"`
	OwnerItemID      uint       `json:"owner_item_id" gorm:"not null"`
	PointsDifference int        `json:"points_difference" gorm:"not null;default:0"`
	Status           SwapStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	Message          string     `json:"message,omitempty" gorm:"type:text"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Relations
	Requester     User  `json:"-" gorm:"foreignKey:RequesterID"`
	Owner         User  `json:"-" gorm:"foreignKey:OwnerID"`
	RequesterItem *Item `json:"-" gorm:"foreignKey:RequesterItemID"`
	OwnerItem     Item  `json:"-" gorm:"foreignKey:OwnerItemID"`
}

// IsPointsOnly reports whether the swap is a pure points offer with no
// counter-item, the only form that settles a transfer on acceptance.
func (s *Swap) IsPointsOnly() bool {
	return s.RequesterItemID == nil
}
