package repo

import (
	"context"
	"time"

	"github.com/vaishnavicode/rentagora/internal/models"
)

func (r *GormRepo) DeactivateUserTokens(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Model(&models.UserAccessToken{}).
		Where("user_id = ? AND active = ?", userID, true).
		Update("active", false).Error
}

func (r *GormRepo) CreateToken(ctx context.Context, t *models.UserAccessToken) error {
	return r.DB.WithContext(ctx).Create(t).Error
}

func (r *GormRepo) FindActiveToken(ctx context.Context, tokenHash string) (*models.UserAccessToken, error) {
	var token models.UserAccessToken
	err := r.DB.WithContext(ctx).
		Where("token_hash = ? AND active = ?", tokenHash, true).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *GormRepo) TouchToken(ctx context.Context, id uint) error {
	now := time.Now().UTC()
	return r.DB.WithContext(ctx).Model(&models.UserAccessToken{}).
		Where("id = ?", id).
		Update("last_used_at", now).Error
}

// DeactivateToken flips the matching active record and reports whether one
// existed.
func (r *GormRepo) DeactivateToken(ctx context.Context, tokenHash string) (bool, error) {
	result := r.DB.WithContext(ctx).Model(&models.UserAccessToken{}).
		Where("token_hash = ? AND active = ?", tokenHash, true).
		Update("active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
