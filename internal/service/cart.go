package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vaishnavicode/rentagora/internal/models"
	"github.com/vaishnavicode/rentagora/internal/pricing"
	"github.com/vaishnavicode/rentagora/internal/repo"
)

type CartService struct {
	Repo *repo.GormRepo
}

// CartLine is a cart row with its rental cost computed at read time.
type CartLine struct {
	models.CartItem
	Price float64 `json:"price"`
}

func validWindow(from, to time.Time) bool {
	return !from.IsZero() && !to.IsZero() && to.After(from)
}

func (s *CartService) Add(ctx context.Context, userID, productID uint, quantity uint, from, to time.Time) (*models.CartItem, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}
	if !validWindow(from, to) {
		return nil, fmt.Errorf("%w: invalid rental window", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.Repo.FindProduct(ctx, productID)
	if err != nil || !product.Active {
		return nil, fmt.Errorf("%w: product missing or inactive", ErrValidation)
	}

	item := &models.CartItem{
		UserID:        userID,
		ProductID:     productID,
		Quantity:      quantity,
		TimestampFrom: from,
		TimestampTo:   to,
	}
	if err := s.Repo.AddToCart(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *CartService) Remove(ctx context.Context, userID, productID uint) error {
	removed, err := s.Repo.RemoveFromCart(ctx, userID, productID)
	if err != nil {
		return err
	}
	if removed == 0 {
		return fmt.Errorf("%w: product not in cart", ErrNotFound)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}

func (s *CartService) List(ctx context.Context, userID uint) ([]CartLine, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	priceCache := make(map[uint][]models.ProductPrice)
	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		prices, ok := priceCache[item.ProductID]
		if !ok {
			prices, err = s.Repo.ActivePrices(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			priceCache[item.ProductID] = prices
		}

		cost := pricing.Cost(item.TimestampFrom, item.TimestampTo, int(item.Quantity), prices)
		lines = append(lines, CartLine{CartItem: item, Price: cost.InexactFloat64()})
	}
	return lines, nil
}
