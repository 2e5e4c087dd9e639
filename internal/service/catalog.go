package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"
	"gorm.io/gorm"

	"github.com/vaishnavicode/rentagora/internal/logging"
	"github.com/vaishnavicode/rentagora/internal/models"
	"github.com/vaishnavicode/rentagora/internal/mykafka"
	"github.com/vaishnavicode/rentagora/internal/pricing"
	"github.com/vaishnavicode/rentagora/internal/repo"
	"github.com/vaishnavicode/rentagora/internal/util"
)

type CatalogService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	ESIndex  string
}

type ProductParams struct {
	Name         string
	Description  string
	Qty          *int
	CategoryName string
	Active       *bool
}

type PriceParams struct {
	Price        *int
	TimeDuration string
	Active       *bool
}

type PageMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
	HasPrev    bool  `json:"has_prev"`
	HasNext    bool  `json:"has_next"`
}

func NewPageMeta(page, size int, total int64) PageMeta {
	offset, limit := util.Calculate(page, size)
	if page < 1 {
		page = 1
	}
	return PageMeta{
		Page:       page,
		Size:       limit,
		Total:      total,
		TotalPages: (total + int64(limit) - 1) / int64(limit),
		HasPrev:    page > 1,
		HasNext:    int64(offset+limit) < total,
	}
}

func (s *CatalogService) ListProducts(ctx context.Context, page, size int) ([]models.Product, PageMeta, error) {
	offset, limit := util.Calculate(page, size)
	items, total, err := s.Repo.ListProducts(ctx, offset, limit)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return items, NewPageMeta(page, size, total), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.FindProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, owner *models.User, p ProductParams) (*models.Product, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrValidation)
	}

	categoryName := p.CategoryName
	if categoryName == "" {
		categoryName = "General"
	}
	category, err := s.Repo.GetOrCreateCategory(ctx, categoryName)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  category.ID,
		CreatedByID: owner.ID,
		Active:      true,
	}
	if p.Qty != nil {
		if *p.Qty < 0 {
			return nil, fmt.Errorf("%w: qty must be >= 0", ErrValidation)
		}
		product.Qty = *p.Qty
	}

	if err := s.Repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.indexProduct(ctx, product)
	s.publish(ctx, map[string]interface{}{
		"type":       "product_created",
		"product_id": product.ID,
		"user_id":    owner.ID,
	})
	return product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, caller *models.User, id uint, p ProductParams) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.CreatedByID != caller.ID {
		return nil, fmt.Errorf("%w: not the product owner", ErrForbidden)
	}

	if p.Name != "" {
		product.Name = p.Name
	}
	if p.Description != "" {
		product.Description = p.Description
	}
	if p.Qty != nil {
		if *p.Qty < 0 {
			return nil, fmt.Errorf("%w: qty must be >= 0", ErrValidation)
		}
		product.Qty = *p.Qty
	}
	if p.Active != nil {
		product.Active = *p.Active
	}
	if p.CategoryName != "" {
		category, err := s.Repo.GetOrCreateCategory(ctx, p.CategoryName)
		if err != nil {
			return nil, err
		}
		product.CategoryID = category.ID
	}

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	s.indexProduct(ctx, product)
	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, caller *models.User, id uint) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if product.CreatedByID != caller.ID {
		return fmt.Errorf("%w: not the product owner", ErrForbidden)
	}

	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.deindexProduct(ctx, id)
	s.publish(ctx, map[string]interface{}{
		"type":       "product_deleted",
		"product_id": id,
		"user_id":    caller.ID,
	})
	return nil
}

func (s *CatalogService) ListPrices(ctx context.Context, productID uint, page, size int) ([]models.ProductPrice, PageMeta, error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return nil, PageMeta{}, err
	}

	offset, limit := util.Calculate(page, size)
	prices, total, err := s.Repo.ListPrices(ctx, productID, offset, limit)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return prices, NewPageMeta(page, size, total), nil
}

func (s *CatalogService) GetPrice(ctx context.Context, productID, priceID uint) (*models.ProductPrice, error) {
	price, err := s.Repo.FindPrice(ctx, productID, priceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: price %d", ErrNotFound, priceID)
		}
		return nil, err
	}
	return price, nil
}

// CreatePrice keeps the one-active-price-per-tier invariant: a second
// active row for the same duration is refused.
func (s *CatalogService) CreatePrice(ctx context.Context, caller *models.User, productID uint, p PriceParams) (*models.ProductPrice, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.CreatedByID != caller.ID {
		return nil, fmt.Errorf("%w: not the product owner", ErrForbidden)
	}

	if !pricing.ValidTier(p.TimeDuration) {
		return nil, fmt.Errorf("%w: invalid or missing time duration", ErrValidation)
	}
	if p.Price == nil || *p.Price < 0 {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	exists, err := s.Repo.ActivePriceForTier(ctx, productID, p.TimeDuration)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: active price for this duration already exists", ErrConflict)
	}

	price := &models.ProductPrice{
		ProductID:    productID,
		Price:        *p.Price,
		TimeDuration: p.TimeDuration,
		Active:       true,
	}
	if err := s.Repo.CreatePrice(ctx, price); err != nil {
		return nil, err
	}
	return price, nil
}

func (s *CatalogService) UpdatePrice(ctx context.Context, caller *models.User, productID, priceID uint, p PriceParams) (*models.ProductPrice, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.CreatedByID != caller.ID {
		return nil, fmt.Errorf("%w: not the product owner", ErrForbidden)
	}

	price, err := s.GetPrice(ctx, productID, priceID)
	if err != nil {
		return nil, err
	}

	if p.TimeDuration != "" {
		if !pricing.ValidTier(p.TimeDuration) {
			return nil, fmt.Errorf("%w: invalid time duration", ErrValidation)
		}
		price.TimeDuration = p.TimeDuration
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
		}
		price.Price = *p.Price
	}
	if p.Active != nil {
		price.Active = *p.Active
	}

	if err := s.Repo.SavePrice(ctx, price); err != nil {
		return nil, err
	}
	return price, nil
}

func (s *CatalogService) DeletePrice(ctx context.Context, caller *models.User, productID, priceID uint) error {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product.CreatedByID != caller.ID {
		return fmt.Errorf("%w: not the product owner", ErrForbidden)
	}
	if _, err := s.GetPrice(ctx, productID, priceID); err != nil {
		return err
	}
	return s.Repo.DeletePrice(ctx, productID, priceID)
}

func (s *CatalogService) ToggleLike(ctx context.Context, caller *models.User, productID uint) (liked bool, likes int, err error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return false, 0, err
	}

	liked, err = s.Repo.ToggleLike(ctx, caller.ID, productID)
	if err != nil {
		return false, 0, err
	}

	product, err := s.Repo.FindProduct(ctx, productID)
	if err != nil {
		return liked, 0, err
	}
	return liked, product.Likes, nil
}

func (s *CatalogService) ToggleWishlist(ctx context.Context, caller *models.User, productID uint) (added bool, err error) {
	if _, err := s.GetProduct(ctx, productID); err != nil {
		return false, err
	}
	return s.Repo.ToggleWishlist(ctx, caller.ID, productID)
}

func (s *CatalogService) Wishlist(ctx context.Context, userID uint, page, size int) ([]models.Product, PageMeta, error) {
	offset, limit := util.Calculate(page, size)
	products, total, err := s.Repo.WishlistProducts(ctx, userID, offset, limit)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return products, NewPageMeta(page, size, total), nil
}

// Index writes are best effort: a search lag never fails the request.
func (s *CatalogService) indexProduct(ctx context.Context, product *models.Product) {
	if s.ES == nil {
		return
	}

	body, err := json.Marshal(product)
	if err != nil {
		return
	}
	res, err := s.ES.Index(
		s.ESIndex,
		bytes.NewReader(body),
		s.ES.Index.WithContext(ctx),
		s.ES.Index.WithDocumentID(strconv.FormatUint(uint64(product.ID), 10)),
	)
	if err != nil {
		logging.FromContext(ctx).Warn("es_index_failed", "product_id", product.ID, "error", err)
		return
	}
	res.Body.Close()
}

func (s *CatalogService) deindexProduct(ctx context.Context, id uint) {
	if s.ES == nil {
		return
	}

	res, err := s.ES.Delete(
		s.ESIndex,
		strconv.FormatUint(uint64(id), 10),
		s.ES.Delete.WithContext(ctx),
	)
	if err != nil {
		logging.FromContext(ctx).Warn("es_delete_failed", "product_id", id, "error", err)
		return
	}
	res.Body.Close()
}

func (s *CatalogService) publish(ctx context.Context, event map[string]interface{}) {
	key := fmt.Sprint(event["user_id"])
	if err := s.Producer.PublishEvent(ctx, mykafka.TopicProductEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}
