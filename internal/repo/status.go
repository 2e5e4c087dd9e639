package repo

import (
	"context"

	"github.com/vaishnavicode/rentagora/internal/models"
)

func (r *GormRepo) AllStatuses(ctx context.Context) ([]models.Status, error) {
	var statuses []models.Status
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

func (r *GormRepo) InvoiceTypeByName(ctx context.Context, name string) (*models.InvoiceType, error) {
	var it models.InvoiceType
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *GormRepo) AllCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) GetOrCreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := models.Category{Name: name}
	err := r.DB.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		FirstOrCreate(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}
