package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vaishnavicode/rentagora/internal/models"
)

var ErrEmptyCart = errors.New("cart is empty")

type OrderParams struct {
	UserID        uint
	ProductID     uint
	From          time.Time
	To            time.Time
	StatusID      uint
	InvoiceTypeID uint
}

func createPaymentAndOrder(tx *gorm.DB, p OrderParams) (*models.Order, *models.Payment, error) {
	// The payment row goes first; the order references it. Both live or
	// die with the surrounding transaction.
	payment := &models.Payment{
		Reference:         uuid.NewString(),
		InvoiceTypeID:     p.InvoiceTypeID,
		StatusID:          p.StatusID,
		PaymentPercentage: 0,
		Active:            true,
	}
	if err := tx.Create(payment).Error; err != nil {
		return nil, nil, err
	}

	order := &models.Order{
		ProductID:     p.ProductID,
		UserID:        p.UserID,
		PaymentID:     payment.ID,
		StatusID:      p.StatusID,
		TimestampFrom: p.From,
		TimestampTo:   p.To,
	}
	if err := tx.Create(order).Error; err != nil {
		return nil, nil, err
	}
	return order, payment, nil
}

func (r *GormRepo) CreateOrderWithPayment(ctx context.Context, p OrderParams) (*models.Order, *models.Payment, error) {
	var (
		order   *models.Order
		payment *models.Payment
	)
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		order, payment, err = createPaymentAndOrder(tx, p)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return order, payment, nil
}

// Checkout turns every cart row of the user into a payment+order pair in a
// single transaction and clears the cart. Any line failing rolls back the
// whole checkout, cart included.
func (r *GormRepo) Checkout(ctx context.Context, userID, statusID, invoiceTypeID uint) ([]models.Order, error) {
	var orders []models.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var items []models.CartItem
		if err := tx.Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				return err
			}

			order, _, err := createPaymentAndOrder(tx, OrderParams{
				UserID:        userID,
				ProductID:     item.ProductID,
				From:          item.TimestampFrom,
				To:            item.TimestampTo,
				StatusID:      statusID,
				InvoiceTypeID: invoiceTypeID,
			})
			if err != nil {
				return err
			}
			orders = append(orders, *order)
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) FindUserOrder(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) OrdersForUser(ctx context.Context, userID uint, offset, limit int) ([]models.Order, int64, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ConfirmOrder moves the order to the confirmed status and creates its
// delivery row atomically.
func (r *GormRepo) ConfirmOrder(ctx context.Context, order *models.Order, confirmedID, deliveryStatusID uint, address string) (*models.Delivery, error) {
	delivery := &models.Delivery{
		OrderID:  order.ID,
		Address:  address,
		StatusID: deliveryStatusID,
		Active:   true,
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("status_id", confirmedID)
		if res.Error != nil {
			return res.Error
		}
		return tx.Create(delivery).Error
	})
	if err != nil {
		return nil, err
	}
	order.StatusID = confirmedID
	return delivery, nil
}

// CancelOrder cascades the cancelled status to the order, its deliveries
// and its payment in one transaction. Deliveries and payment also lose
// their active flag.
func (r *GormRepo) CancelOrder(ctx context.Context, order *models.Order, cancelledID uint) (int64, error) {
	var deliveriesUpdated int64

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status_id", cancelledID).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Delivery{}).Where("order_id = ?", order.ID).
			Updates(map[string]interface{}{"status_id": cancelledID, "active": false})
		if res.Error != nil {
			return res.Error
		}
		deliveriesUpdated = res.RowsAffected

		return tx.Model(&models.Payment{}).Where("id = ?", order.PaymentID).
			Updates(map[string]interface{}{"status_id": cancelledID, "active": false}).Error
	})
	if err != nil {
		return 0, err
	}
	order.StatusID = cancelledID
	return deliveriesUpdated, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, orderID, statusID uint) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status_id", statusID).Error
}

func (r *GormRepo) RescheduleOrder(ctx context.Context, orderID, statusID uint, from, to time.Time) error {
	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status_id":      statusID,
			"timestamp_from": from,
			"timestamp_to":   to,
		}).Error
}

func (r *GormRepo) CreateNotification(ctx context.Context, n *models.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}
