package repository

import (
	"context"
	"errors"

	"github.com/inboxlane/inboxlane/internal/entity"
	"gorm.io/gorm"
)

// AccountRepo is the repository for account operations
type AccountRepo struct {
	db *gorm.DB
}

// NewAccountRepo creates a new AccountRepo
func NewAccountRepo(db *gorm.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Create creates a new account
func (r *AccountRepo) Create(ctx context.Context, acc *entity.Account) error {
	now := entity.NowUnixMilli()
	acc.CreatedAt = now
	acc.UpdatedAt = now
	return r.db.WithContext(ctx).Create(acc).Error
}

// GetById gets an account by id
func (r *AccountRepo) GetById(ctx context.Context, accountId string) (*entity.Account, error) {
	var acc entity.Account
	err := r.db.WithContext(ctx).Where("id = ?", accountId).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &acc, nil
}

// Exists checks if an account exists
func (r *AccountRepo) Exists(ctx context.Context, accountId string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Account{}).
		Where("id = ?", accountId).
		Count(&count).Error
	return count > 0, err
}
