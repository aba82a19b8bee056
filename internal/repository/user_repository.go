package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/zWyrm/rewear-teamtan/internal/model"
)

// UserRepository defines user persistence operations. Points are only ever
// mutated through AdjustPoints, an atomic relative increment, never by
// writing an absolute balance.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	AdjustPoints(ctx context.Context, id uint, delta int) error
	Suspend(ctx context.Context, id uint, until time.Time) error
	CancelSuspension(ctx context.Context, id uint) error
	Ban(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// AdjustPoints applies a signed delta with a single atomic UPDATE. A missing
// user affects zero rows and is silently ignored, matching settlement's
// skip-on-missing-party behavior.
func (r *userRepository) AdjustPoints(ctx context.Context, id uint, delta int) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("points", gorm.Expr("points + ?", delta)).Error
}

func (r *userRepository) Suspend(ctx context.Context, id uint, until time.Time) error {
	return r.updateTrust(ctx, id, map[string]interface{}{"suspended_until": until})
}

func (r *userRepository) CancelSuspension(ctx context.Context, id uint) error {
	return r.updateTrust(ctx, id, map[string]interface{}{"suspended_until": nil})
}

func (r *userRepository) Ban(ctx context.Context, id uint) error {
	return r.updateTrust(ctx, id, map[string]interface{}{"is_banned": true})
}

// updateTrust verifies existence before updating so a no-op write (banning an
// already banned user) still reads as success rather than not-found.
func (r *userRepository) updateTrust(ctx context.Context, id uint, fields map[string]interface{}) error {
	var user model.User
	if err := r.db.WithContext(ctx).Select("id").First(&user, id).Error; err != nil {
		return translate(err)
	}
	return r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// translate maps GORM errors to driver-neutral sentinels.
func translate(err error) error {
	if err == gorm.ErrRecordNotFound {
		return ErrNotFound
	}
	return err
}
