package service

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/clients"
	"github.com/tribalarts/storefront-service/internal/config"
	"github.com/tribalarts/storefront-service/internal/events"
	"github.com/tribalarts/storefront-service/internal/metrics"
	"github.com/tribalarts/storefront-service/internal/models"
	"github.com/tribalarts/storefront-service/internal/repository"
)

// CheckoutService drives a cart through payment-order creation, signature
// verification, and the single durable order write. The ordering is the core
// correctness property: an order is written only after the gateway's
// signature has been verified, and never more than once per payment.
type CheckoutService struct {
	gateway   clients.PaymentGateway
	orders    repository.OrderRepository
	catalog   repository.ProductRepository
	carts     repository.CartStore
	cache     repository.OrderCache
	publisher events.OrderEventPublisher
	cfg       *config.Config
	logger    *log.Entry
}

func NewCheckoutService(
	gateway clients.PaymentGateway,
	orders repository.OrderRepository,
	catalog repository.ProductRepository,
	carts repository.CartStore,
	cache repository.OrderCache,
	publisher events.OrderEventPublisher,
	cfg *config.Config,
) *CheckoutService {
	return &CheckoutService{
		gateway:   gateway,
		orders:    orders,
		catalog:   catalog,
		carts:     carts,
		cache:     cache,
		publisher: publisher,
		cfg:       cfg,
		logger:    log.WithField("component", "checkout-service"),
	}
}

// CompleteCheckoutRequest carries the gateway's authorization proof together
// with the cart snapshot and customer details the order is built from.
type CompleteCheckoutRequest struct {
	Proof     models.PaymentProof `json:"proof"`
	Items     []models.CartItem   `json:"items"`
	Customer  models.Customer     `json:"customer"`
	UserEmail string              `json:"user_email"`
}

// BeginCheckout prices the cart and registers a payment order with the
// gateway. Retrying after a gateway failure creates a fresh gateway order;
// abandoned ones are left to the gateway's own expiry.
func (s *CheckoutService) BeginCheckout(ctx context.Context, items []models.CartItem, customer *models.Customer) (*models.PendingPayment, error) {
	if err := ValidateCheckout(items, customer); err != nil {
		metrics.CheckoutsTotal.WithLabelValues("begin", "validation_error").Inc()
		return nil, err
	}

	items = s.trustedItems(ctx, items)
	quote := ComputeQuote(items, s.cfg.Pricing)

	s.logger.WithFields(log.Fields{
		"subtotal": quote.Subtotal,
		"shipping": quote.Shipping,
		"tax":      quote.Tax,
		"total":    quote.Total,
		"currency": s.cfg.Pricing.Currency,
	}).Info("Beginning checkout")

	pending, err := s.gateway.CreateRemoteOrder(ctx, ToMinorUnits(quote.Total), s.cfg.Pricing.Currency)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("begin", "gateway_error").Inc()
		return nil, err
	}

	metrics.CheckoutsTotal.WithLabelValues("begin", "ok").Inc()
	return pending, nil
}

// CompleteCheckout turns a verified payment into exactly one durable order.
// Steps in strict sequence: verify signature, build the order from the
// server-priced snapshot, atomic insert-or-find by gateway payment id, clear
// the cart. A signature mismatch writes nothing; a store failure after
// verification is surfaced as ErrPersistenceFailed with the payment id logged
// for reconciliation.
func (s *CheckoutService) CompleteCheckout(ctx context.Context, req *CompleteCheckoutRequest) (*models.Order, error) {
	if err := ValidateCheckout(req.Items, &req.Customer); err != nil {
		metrics.CheckoutsTotal.WithLabelValues("complete", "validation_error").Inc()
		return nil, err
	}
	if req.Proof.GatewayOrderID == "" || req.Proof.GatewayPaymentID == "" || req.Proof.Signature == "" {
		metrics.CheckoutsTotal.WithLabelValues("complete", "validation_error").Inc()
		return nil, apperrors.NewValidationError("proof", "payment proof is incomplete")
	}

	if !s.gateway.VerifySignature(req.Proof.GatewayOrderID, req.Proof.GatewayPaymentID, req.Proof.Signature) {
		metrics.CheckoutsTotal.WithLabelValues("complete", "verification_failed").Inc()
		s.logger.WithFields(log.Fields{
			"gateway_order_id": req.Proof.GatewayOrderID,
		}).Warn("Rejected checkout with invalid payment signature")
		return nil, apperrors.ErrPaymentVerificationFailed
	}

	items := s.trustedItems(ctx, req.Items)
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
		Customer:  req.Customer,
		UserEmail: req.UserEmail,
		Status:    models.OrderStatusConfirmed,
		Payment: &models.PaymentReference{
			GatewayOrderID:   req.Proof.GatewayOrderID,
			GatewayPaymentID: req.Proof.GatewayPaymentID,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	persisted, created, err := s.orders.CreateOrFind(ctx, order)
	if err != nil {
		// The payment is captured but unrecorded. Log the payment id so an
		// operator can reconcile; the caller must not retry the charge.
		metrics.CheckoutsTotal.WithLabelValues("complete", "persistence_failed").Inc()
		metrics.UnrecordedPayments.Inc()
		s.logger.WithFields(log.Fields{
			"gateway_order_id":   req.Proof.GatewayOrderID,
			"gateway_payment_id": req.Proof.GatewayPaymentID,
			"error":              err.Error(),
		}).Error("Payment captured but order write failed; needs reconciliation")
		return nil, apperrors.ErrPersistenceFailed
	}

	if created {
		metrics.CheckoutsTotal.WithLabelValues("complete", "ok").Inc()
		s.afterOrderCreated(ctx, persisted)
	} else {
		metrics.CheckoutsTotal.WithLabelValues("complete", "duplicate").Inc()
	}

	if req.UserEmail != "" {
		if err := s.carts.ClearCart(ctx, req.UserEmail); err != nil {
			s.logger.WithFields(log.Fields{
				"user_email": req.UserEmail,
				"error":      err.Error(),
			}).Warn("Failed to clear cart after checkout")
		}
	}

	return persisted, nil
}

// trustedItems re-resolves unit prices from the catalog where the product can
// be found, so a tampered client snapshot cannot lower the charge. Items the
// catalog cannot resolve keep their snapshot price.
func (s *CheckoutService) trustedItems(ctx context.Context, items []models.CartItem) []models.CartItem {
	if s.catalog == nil {
		return items
	}

	trusted := make([]models.CartItem, len(items))
	copy(trusted, items)

	for i := range trusted {
		product, err := s.catalog.GetByID(ctx, trusted[i].ProductID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.logger.WithFields(log.Fields{
					"product_id": trusted[i].ProductID,
					"error":      err.Error(),
				}).Warn("Catalog lookup failed; keeping price snapshot")
			}
			continue
		}
		if product.Price != trusted[i].UnitPrice {
			s.logger.WithFields(log.Fields{
				"product_id":     trusted[i].ProductID,
				"snapshot_price": trusted[i].UnitPrice,
				"catalog_price":  product.Price,
			}).Warn("Cart price snapshot differs from catalog; using catalog price")
			trusted[i].UnitPrice = product.Price
		}
		trusted[i].Name = product.Name
	}

	return trusted
}

func (s *CheckoutService) afterOrderCreated(ctx context.Context, order *models.Order) {
	if s.cfg.Features.EnableOrderCaching && s.cache != nil {
		if err := s.cache.Set(ctx, order); err != nil {
			s.logger.WithFields(log.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			}).Warn("Failed to cache order")
		}
	}

	if s.cfg.Features.EnableOrderEvents && s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			s.logger.WithFields(log.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			}).Warn("Failed to publish order created event")
		}
	}
}

func freezeItems(items []models.CartItem) []models.OrderLineItem {
	frozen := make([]models.OrderLineItem, len(items))
	for i, item := range items {
		frozen[i] = models.OrderLineItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Image:     item.Image,
		}
	}
	return frozen
}
