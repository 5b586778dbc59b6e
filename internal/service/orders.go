package service

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tribalarts/storefront-service/internal/config"
	"github.com/tribalarts/storefront-service/internal/events"
	"github.com/tribalarts/storefront-service/internal/metrics"
	"github.com/tribalarts/storefront-service/internal/models"
	"github.com/tribalarts/storefront-service/internal/repository"
)

// OrderService owns reads of the ledger and the admin status machine.
type OrderService struct {
	orders    repository.OrderRepository
	cache     repository.OrderCache
	publisher events.OrderEventPublisher
	cfg       *config.Config
	logger    *log.Entry
}

func NewOrderService(
	orders repository.OrderRepository,
	cache repository.OrderCache,
	publisher events.OrderEventPublisher,
	cfg *config.Config,
) *OrderService {
	return &OrderService{
		orders:    orders,
		cache:     cache,
		publisher: publisher,
		cfg:       cfg,
		logger:    log.WithField("component", "order-service"),
	}
}

// GetOrder retrieves an order, cache first.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	if s.cfg.Features.EnableOrderCaching && s.cache != nil {
		if order, err := s.cache.Get(ctx, id); err == nil && order != nil {
			return order, nil
		}
	}

	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cfg.Features.EnableOrderCaching && s.cache != nil {
		if err := s.cache.Set(ctx, order); err != nil {
			s.logger.WithFields(log.Fields{
				"order_id": id,
				"error":    err.Error(),
			}).Warn("Failed to cache order")
		}
	}

	return order, nil
}

// GetOrdersByEmail lists a customer's orders, newest first.
func (s *OrderService) GetOrdersByEmail(ctx context.Context, email string) ([]*models.Order, error) {
	return s.orders.GetByEmail(ctx, email)
}

// ListOrders returns every order for the back office.
func (s *OrderService) ListOrders(ctx context.Context) ([]*models.Order, error) {
	return s.orders.List(ctx)
}

// UpdateStatus applies an admin transition. Any status may move to any other,
// terminal states included; moving out of completed or cancelled is left to
// operator judgement. Every transition bumps updated_at.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	if err := ValidateStatusUpdate(req); err != nil {
		return nil, err
	}

	existing, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previousStatus := existing.Status

	order, err := s.orders.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}

	metrics.OrderStatusTransitions.WithLabelValues(string(previousStatus), string(req.Status)).Inc()

	if previousStatus.IsTerminal() {
		s.logger.WithFields(log.Fields{
			"order_id": id,
			"from":     previousStatus,
			"to":       req.Status,
		}).Warn("Order moved out of terminal status")
	}

	if s.cfg.Features.EnableOrderCaching && s.cache != nil {
		if err := s.cache.Set(ctx, order); err != nil {
			s.logger.WithFields(log.Fields{
				"order_id": id,
				"error":    err.Error(),
			}).Warn("Failed to refresh cached order")
		}
	}

	if s.cfg.Features.EnableOrderEvents && s.publisher != nil {
		if err := s.publisher.PublishOrderStatusChanged(ctx, order, previousStatus); err != nil {
			s.logger.WithFields(log.Fields{
				"order_id": id,
				"error":    err.Error(),
			}).Warn("Failed to publish status changed event")
		}
	}

	return order, nil
}

// CreateManualOrder writes an order with no payment reference, for
// back-office entry. The total is always recomputed server-side from the item
// snapshot; a client-supplied total is ignored.
func (s *OrderService) CreateManualOrder(ctx context.Context, items []models.CartItem, customer *models.Customer, userEmail string) (*models.Order, error) {
	if err := ValidateCheckout(items, customer); err != nil {
		return nil, err
	}

	quote := ComputeQuote(items, s.cfg.Pricing)
	now := time.Now()

	order := &models.Order{
		ID:        repository.GenerateOrderID(),
		Items:     freezeItems(items),
		Subtotal:  quote.Subtotal,
		Shipping:  quote.Shipping,
		Tax:       quote.Tax,
		Total:     quote.Total,
		Currency:  s.cfg.Pricing.Currency,
		Customer:  *customer,
		UserEmail: userEmail,
		Status:    models.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	if s.cfg.Features.EnableOrderEvents && s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			s.logger.WithFields(log.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			}).Warn("Failed to publish order created event")
		}
	}

	return order, nil
}
