package repo

import (
	"context"
	"errors"
	"time"

	"github.com/avelinov/shop_api/internal/models"
)

var ErrUserAlreadyExist = errors.New("user already exist")

func (r *GormRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) CreateUserIfNotExists(ctx context.Context, u *models.User) error {
	tx := r.DB.WithContext(ctx).Where("username = ?", u.Username).FirstOrCreate(u)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrUserAlreadyExist
	}
	return nil
}

func (r *GormRepo) AddRefreshToken(ctx context.Context, tokenHash string, userID uint, expiresAt time.Time) error {
	refreshModel := models.RefreshToken{
		Token:     tokenHash,
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	return r.DB.WithContext(ctx).Create(&refreshModel).Error
}

func (r *GormRepo) GetRefreshToken(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	var stored models.RefreshToken
	if err := r.DB.WithContext(ctx).Where("token = ?", tokenHash).First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *GormRepo) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	result := r.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", tokenHash).
		Update("revoked", true)
	return result.Error
}
