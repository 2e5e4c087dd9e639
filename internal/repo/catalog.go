package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/vaishnavicode/rentagora/internal/models"
)

func (r *GormRepo) ListProducts(ctx context.Context, offset, limit int) ([]models.Product, int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.Product
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Order("id ASC").Offset(offset).Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormRepo) FindProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}

func (r *GormRepo) ListPrices(ctx context.Context, productID uint, offset, limit int) ([]models.ProductPrice, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.ProductPrice{}).Where("product_id = ?", productID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var prices []models.ProductPrice
	if err := q.Order("id ASC").Offset(offset).Limit(limit).Find(&prices).Error; err != nil {
		return nil, 0, err
	}
	return prices, total, nil
}

func (r *GormRepo) ActivePrices(ctx context.Context, productID uint) ([]models.ProductPrice, error) {
	var prices []models.ProductPrice
	err := r.DB.WithContext(ctx).
		Where("product_id = ? AND active = ?", productID, true).
		Order("id ASC").
		Find(&prices).Error
	if err != nil {
		return nil, err
	}
	return prices, nil
}

func (r *GormRepo) FindPrice(ctx context.Context, productID, priceID uint) (*models.ProductPrice, error) {
	var price models.ProductPrice
	err := r.DB.WithContext(ctx).
		Where("id = ? AND product_id = ?", priceID, productID).
		First(&price).Error
	if err != nil {
		return nil, err
	}
	return &price, nil
}

// ActivePriceForTier reports whether the product already carries an active
// price row for the duration tier.
func (r *GormRepo) ActivePriceForTier(ctx context.Context, productID uint, tier string) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.ProductPrice{}).
		Where("product_id = ? AND LOWER(time_duration) = LOWER(?) AND active = ?", productID, tier, true).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRepo) CreatePrice(ctx context.Context, p *models.ProductPrice) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) SavePrice(ctx context.Context, p *models.ProductPrice) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeletePrice(ctx context.Context, productID, priceID uint) error {
	return r.DB.WithContext(ctx).
		Where("id = ? AND product_id = ?", priceID, productID).
		Delete(&models.ProductPrice{}).Error
}

// ToggleLike flips the caller's like for the product. The counter moves
// with an atomic expression so concurrent likes never lose updates.
func (r *GormRepo) ToggleLike(ctx context.Context, userID, productID uint) (liked bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like models.ProductLike
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).Limit(1).Find(&like)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			if err := tx.Delete(&like).Error; err != nil {
				return err
			}
			liked = false
			return tx.Model(&models.Product{}).Where("id = ?", productID).
				Update("likes", gorm.Expr("likes - 1")).Error
		}

		if err := tx.Create(&models.ProductLike{UserID: userID, ProductID: productID}).Error; err != nil {
			return err
		}
		liked = true
		return tx.Model(&models.Product{}).Where("id = ?", productID).
			Update("likes", gorm.Expr("likes + 1")).Error
	})
	return liked, err
}

func (r *GormRepo) ToggleWishlist(ctx context.Context, userID, productID uint) (added bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Wishlist
		res := tx.Where("user_id = ? AND product_id = ?", userID, productID).Limit(1).Find(&item)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected > 0 {
			added = false
			return tx.Delete(&item).Error
		}

		added = true
		return tx.Create(&models.Wishlist{UserID: userID, ProductID: productID}).Error
	})
	return added, err
}

func (r *GormRepo) WishlistProducts(ctx context.Context, userID uint, offset, limit int) ([]models.Product, int64, error) {
	base := r.DB.WithContext(ctx).Model(&models.Wishlist{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	err := r.DB.WithContext(ctx).Model(&models.Product{}).
		Joins("JOIN wishlists ON wishlists.product_id = products.id").
		Where("wishlists.user_id = ?", userID).
		Order("wishlists.id ASC").Offset(offset).Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}
