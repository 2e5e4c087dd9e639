package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/vaishnavicode/rentagora/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart increments the row keyed by (user, product, window) when one
// exists and creates it otherwise.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("user_id = ? AND product_id = ? AND timestamp_from = ? AND timestamp_to = ?",
				item.UserID, item.ProductID, item.TimestampFrom, item.TimestampTo).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return tx.Where("user_id = ? AND product_id = ? AND timestamp_from = ? AND timestamp_to = ?",
				item.UserID, item.ProductID, item.TimestampFrom, item.TimestampTo).
				First(item).Error
		}

		return tx.Create(item).Error
	})
}

// RemoveFromCart deletes every cart row the user holds for the product and
// reports how many rows went away.
func (r *GormRepo) RemoveFromCart(ctx context.Context, userID, productID uint) (int64, error) {
	result := r.DB.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}
