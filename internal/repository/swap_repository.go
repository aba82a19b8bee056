package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/zWyrm/rewear-teamtan/internal/model"
)

// SwapRepository defines swap persistence operations. Decide is the only
// write path out of pending: it performs the status compare-and-swap and the
// points settlement in a single transaction so settlement runs at most once
// and can never half-apply.
type SwapRepository interface {
	Create(ctx context.Context, swap *model.Swap) error
	FindByID(ctx context.Context, id uint) (*model.Swap, error)
	List(ctx context.Context, filter SwapFilter) ([]model.Swap, error)
	Decide(ctx context.Context, id uint, status model.SwapStatus, transfers []PointsTransfer) (*model.Swap, error)
}

type swapRepository struct {
	db *gorm.DB
}

// NewSwapRepository builds a GORM-backed swap repository.
func NewSwapRepository(db *gorm.DB) SwapRepository {
	return &swapRepository{db: db}
}

func (r *swapRepository) Create(ctx context.Context, swap *model.Swap) error {
	return r.db.WithContext(ctx).Create(swap).Error
}

func (r *swapRepository) FindByID(ctx context.Context, id uint) (*model.Swap, error) {
	var swap model.Swap
	if err := r.db.WithContext(ctx).First(&swap, id).Error; err != nil {
		return nil, translate(err)
	}
	return &swap, nil
}

func (r *swapRepository) List(ctx context.Context, filter SwapFilter) ([]model.Swap, error) {
	q := r.db.WithContext(ctx).Model(&model.Swap{})
	if filter.RequesterID != nil {
		q = q.Where("requester_id = ?", *filter.RequesterID)
	}
	if filter.OwnerID != nil {
		q = q.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var swaps []model.Swap
	if err := q.Order("created_at DESC").Find(&swaps).Error; err != nil {
		return nil, err
	}
	return swaps, nil
}

// Decide sets the status only while the swap is still pending, then applies
// the given points transfers as relative increments inside the same
// transaction. Losing the compare-and-swap returns ErrAlreadyDecided; a
// transfer against a missing user affects zero rows and is ignored.
func (r *swapRepository) Decide(ctx context.Context, id uint, status model.SwapStatus, transfers []PointsTransfer) (*model.Swap, error) {
	var decided model.Swap
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Swap{}).
			Where("id = ? AND status = ?", id, model.SwapStatusPending).
			Update("status", status)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&model.Swap{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrAlreadyDecided
		}

		for _, t := range transfers {
			if t.Delta == 0 {
				continue
			}
			if err := tx.Model(&model.User{}).
				Where("id = ?", t.UserID).
				Update("points", gorm.Expr("points + ?", t.Delta)).Error; err != nil {
				return err
			}
		}

		return tx.First(&decided, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &decided, nil
}
