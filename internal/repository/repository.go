package repository

import (
	"errors"

	"github.com/zWyrm/rewear-teamtan/internal/model"
)

// Sentinel errors shared by every storage driver. GORM-backed repositories
// translate gorm.ErrRecordNotFound into ErrNotFound so services never depend
// on a specific driver.
var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyDecided is returned when a conditional status update loses
	// the race because the swap is no longer pending.
	ErrAlreadyDecided = errors.New("swap is not pending")
)

// ItemFilter narrows item listings. Nil fields are ignored. Search is a
// case-insensitive substring match against title and description.
type ItemFilter struct {
	Category    *model.ItemCategory
	OwnerID     *uint
	IsApproved  *bool
	IsAvailable *bool
	Search      string
}

// SwapFilter narrows swap listings. Nil fields are ignored.
type SwapFilter struct {
	RequesterID *uint
	OwnerID     *uint
	Status      *model.SwapStatus
}

// PointsTransfer is one signed ledger delta applied during settlement.
type PointsTransfer struct {
	UserID uint
	Delta  int
}
