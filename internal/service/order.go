package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vaishnavicode/rentagora/internal/logging"
	"github.com/vaishnavicode/rentagora/internal/models"
	"github.com/vaishnavicode/rentagora/internal/mykafka"
	"github.com/vaishnavicode/rentagora/internal/repo"
	"github.com/vaishnavicode/rentagora/internal/util"
)

const (
	StatusPlaced      = "placed"
	StatusConfirmed   = "confirmed"
	StatusCancelled   = "cancelled"
	StatusCompleted   = "completed"
	StatusReturned    = "returned"
	StatusPickedUp    = "picked_up"
	StatusRescheduled = "rescheduled"
)

// orderTransitions declares the legal moves per current status. Anything
// not listed is rejected instead of overwritten.
var orderTransitions = map[string][]string{
	StatusPlaced:      {StatusConfirmed, StatusCancelled},
	StatusConfirmed:   {StatusCancelled, StatusPickedUp, StatusRescheduled},
	StatusPickedUp:    {StatusReturned, StatusCompleted, StatusRescheduled},
	StatusRescheduled: {StatusCancelled, StatusPickedUp},
	StatusReturned:    {StatusCompleted},
	StatusCancelled:   {},
	StatusCompleted:   {},
}

func canTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer

	statusID      map[string]uint
	statusName    map[uint]string
	invoiceTypeID uint
}

// LoadLookups resolves the status and invoice-type names into a stable id
// mapping once, at startup. Ids are never hardcoded elsewhere.
func (s *OrderService) LoadLookups(ctx context.Context) error {
	statuses, err := s.Repo.AllStatuses(ctx)
	if err != nil {
		return err
	}

	s.statusID = make(map[string]uint, len(statuses))
	s.statusName = make(map[uint]string, len(statuses))
	for _, status := range statuses {
		s.statusID[status.Name] = status.ID
		s.statusName[status.ID] = status.Name
	}

	it, err := s.Repo.InvoiceTypeByName(ctx, "standard")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: invoice type %q missing", ErrMisconfigured, "standard")
		}
		return err
	}
	s.invoiceTypeID = it.ID
	return nil
}

func (s *OrderService) statusIDByName(name string) (uint, error) {
	id, ok := s.statusID[name]
	if !ok {
		return 0, fmt.Errorf("%w: status %q missing from the status table", ErrMisconfigured, name)
	}
	return id, nil
}

func (s *OrderService) statusNameByID(id uint) (string, error) {
	name, ok := s.statusName[id]
	if !ok {
		return "", fmt.Errorf("%w: unknown status id %d", ErrMisconfigured, id)
	}
	return name, nil
}

func (s *OrderService) Create(ctx context.Context, userID, productID uint, from, to time.Time) (*models.Order, *models.Payment, error) {
	l := logging.FromContext(ctx).With("svc", "order.create", "user_id", userID)

	if _, err := s.Repo.FindProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
		}
		return nil, nil, err
	}
	if !validWindow(from, to) {
		return nil, nil, fmt.Errorf("%w: invalid rental window", ErrValidation)
	}

	placedID, err := s.statusIDByName(StatusPlaced)
	if err != nil {
		return nil, nil, err
	}

	order, payment, err := s.Repo.CreateOrderWithPayment(ctx, repo.OrderParams{
		UserID:        userID,
		ProductID:     productID,
		From:          from,
		To:            to,
		StatusID:      placedID,
		InvoiceTypeID: s.invoiceTypeID,
	})
	if err != nil {
		return nil, nil, err
	}

	s.notify(ctx, userID, productID, fmt.Sprintf("Order #%d placed", order.ID))
	s.publish(ctx, map[string]interface{}{
		"type":     "order_placed",
		"order_id": order.ID,
		"user_id":  userID,
	})

	l.Info("order_created", "order_id", order.ID)
	return order, payment, nil
}

// Checkout converts the whole cart in one transaction; a single bad line
// rolls everything back and leaves the cart untouched.
func (s *OrderService) Checkout(ctx context.Context, userID uint) ([]models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.checkout", "user_id", userID)

	placedID, err := s.statusIDByName(StatusPlaced)
	if err != nil {
		return nil, err
	}

	orders, err := s.Repo.Checkout(ctx, userID, placedID, s.invoiceTypeID)
	if err != nil {
		if errors.Is(err, repo.ErrEmptyCart) {
			return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cart references a missing product", ErrNotFound)
		}
		return nil, err
	}

	for _, order := range orders {
		s.notify(ctx, userID, order.ProductID, fmt.Sprintf("Order #%d placed", order.ID))
		s.publish(ctx, map[string]interface{}{
			"type":     "order_placed",
			"order_id": order.ID,
			"user_id":  userID,
		})
	}

	l.Info("checkout_success", "orders", len(orders))
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	order, err := s.Repo.FindUserOrder(ctx, userID, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, userID uint, page, size int) ([]models.Order, PageMeta, error) {
	offset, limit := util.Calculate(page, size)
	orders, total, err := s.Repo.OrdersForUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, PageMeta{}, err
	}
	return orders, NewPageMeta(page, size, total), nil
}

// Confirm requires a delivery address on file and creates the delivery row
// atomically with the status change.
func (s *OrderService) Confirm(ctx context.Context, caller *models.User, orderID uint) (*models.Order, *models.Delivery, error) {
	order, err := s.Get(ctx, caller.ID, orderID)
	if err != nil {
		return nil, nil, err
	}

	if err := s.checkTransition(order, StatusConfirmed); err != nil {
		return nil, nil, err
	}

	if caller.Address == "" {
		return nil, nil, fmt.Errorf("%w: delivery address not found, please update your address", ErrPrecondition)
	}

	confirmedID, err := s.statusIDByName(StatusConfirmed)
	if err != nil {
		return nil, nil, err
	}
	placedID, err := s.statusIDByName(StatusPlaced)
	if err != nil {
		return nil, nil, err
	}

	delivery, err := s.Repo.ConfirmOrder(ctx, order, confirmedID, placedID, caller.Address)
	if err != nil {
		return nil, nil, err
	}

	s.notify(ctx, caller.ID, order.ProductID, fmt.Sprintf("Order #%d confirmed", order.ID))
	s.publish(ctx, map[string]interface{}{
		"type":     "order_confirmed",
		"order_id": order.ID,
		"user_id":  caller.ID,
	})
	return order, delivery, nil
}

// Cancel is idempotent in effect: cancelling an already cancelled order
// succeeds without touching deliveries or payment again.
func (s *OrderService) Cancel(ctx context.Context, caller *models.User, orderID uint) (*models.Order, int64, error) {
	order, err := s.Get(ctx, caller.ID, orderID)
	if err != nil {
		return nil, 0, err
	}

	current, err := s.statusNameByID(order.StatusID)
	if err != nil {
		return nil, 0, err
	}
	if current == StatusCancelled {
		return order, 0, nil
	}
	if !canTransition(current, StatusCancelled) {
		return nil, 0, fmt.Errorf("%w: cannot cancel a %s order", ErrConflict, current)
	}

	cancelledID, err := s.statusIDByName(StatusCancelled)
	if err != nil {
		return nil, 0, err
	}

	deliveriesUpdated, err := s.Repo.CancelOrder(ctx, order, cancelledID)
	if err != nil {
		return nil, 0, err
	}

	s.notify(ctx, caller.ID, order.ProductID, fmt.Sprintf("Order #%d cancelled", order.ID))
	s.publish(ctx, map[string]interface{}{
		"type":     "order_cancelled",
		"order_id": order.ID,
		"user_id":  caller.ID,
	})
	return order, deliveriesUpdated, nil
}

func (s *OrderService) Reschedule(ctx context.Context, caller *models.User, orderID uint, from, to time.Time) (*models.Order, error) {
	order, err := s.Get(ctx, caller.ID, orderID)
	if err != nil {
		return nil, err
	}
	if !validWindow(from, to) {
		return nil, fmt.Errorf("%w: invalid rental window", ErrValidation)
	}
	if err := s.checkTransition(order, StatusRescheduled); err != nil {
		return nil, err
	}

	rescheduledID, err := s.statusIDByName(StatusRescheduled)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RescheduleOrder(ctx, order.ID, rescheduledID, from, to); err != nil {
		return nil, err
	}

	order.StatusID = rescheduledID
	order.TimestampFrom = from
	order.TimestampTo = to
	return order, nil
}

func (s *OrderService) Return(ctx context.Context, caller *models.User, orderID uint) (*models.Order, error) {
	return s.transition(ctx, caller, orderID, StatusReturned)
}

func (s *OrderService) PickUp(ctx context.Context, caller *models.User, orderID uint) (*models.Order, error) {
	return s.transition(ctx, caller, orderID, StatusPickedUp)
}

func (s *OrderService) Complete(ctx context.Context, caller *models.User, orderID uint) (*models.Order, error) {
	return s.transition(ctx, caller, orderID, StatusCompleted)
}

func (s *OrderService) transition(ctx context.Context, caller *models.User, orderID uint, target string) (*models.Order, error) {
	order, err := s.Get(ctx, caller.ID, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTransition(order, target); err != nil {
		return nil, err
	}

	targetID, err := s.statusIDByName(target)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateOrderStatus(ctx, order.ID, targetID); err != nil {
		return nil, err
	}

	order.StatusID = targetID
	return order, nil
}

func (s *OrderService) checkTransition(order *models.Order, target string) error {
	current, err := s.statusNameByID(order.StatusID)
	if err != nil {
		return err
	}
	if !canTransition(current, target) {
		return fmt.Errorf("%w: illegal transition %s -> %s", ErrConflict, current, target)
	}
	return nil
}

func (s *OrderService) notify(ctx context.Context, userID, productID uint, content string) {
	n := &models.Notification{UserID: userID, ProductID: productID, Content: content}
	if err := s.Repo.CreateNotification(ctx, n); err != nil {
		logging.FromContext(ctx).Warn("notification_write_failed", "error", err)
	}
}

func (s *OrderService) publish(ctx context.Context, event map[string]interface{}) {
	key := fmt.Sprint(event["order_id"])
	if err := s.Producer.PublishEvent(ctx, mykafka.TopicOrderEvents, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}
