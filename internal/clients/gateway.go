package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/config"
	"github.com/tribalarts/storefront-service/internal/metrics"
	"github.com/tribalarts/storefront-service/internal/models"
)

// PaymentGateway isolates all interaction with the external payment provider.
type PaymentGateway interface {
	// CreateRemoteOrder registers a payment order with the provider for the
	// given amount in the currency's smallest unit.
	CreateRemoteOrder(ctx context.Context, amountMinorUnits int64, currency string) (*models.PendingPayment, error)

	// VerifySignature recomputes the provider's HMAC over the order and
	// payment ids and compares it against the provided signature. This is the
	// sole authoritative proof of payment.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool
}

// RazorpayGateway implements PaymentGateway against the Razorpay orders API.
type RazorpayGateway struct {
	client    *resty.Client
	keySecret string
	breaker   *gobreaker.CircuitBreaker
	logger    *log.Entry
}

type remoteOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type remoteOrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Status   string `json:"status"`
}

// NewRazorpayGateway creates a gateway client with a circuit breaker around
// the provider's HTTP API.
func NewRazorpayGateway(cfg config.GatewayConfig) *RazorpayGateway {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetBasicAuth(cfg.KeyID, cfg.KeySecret).
		SetHeader("Content-Type", "application/json")

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "payment-gateway",
		MaxRequests: 3,
		Interval:    15 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			state := float64(0)
			switch to {
			case gobreaker.StateOpen:
				state = 1
			case gobreaker.StateHalfOpen:
				state = 2
			}
			metrics.CircuitBreakerState.WithLabelValues(name).Set(state)

			log.WithFields(log.Fields{
				"circuit": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Info("Circuit breaker state changed")
		},
	})

	metrics.CircuitBreakerState.WithLabelValues("payment-gateway").Set(0)

	return &RazorpayGateway{
		client:    client,
		keySecret: cfg.KeySecret,
		breaker:   breaker,
		logger:    log.WithField("component", "razorpay-gateway"),
	}
}

// CreateRemoteOrder registers a gateway order. A non-positive amount is
// rejected before any network call.
func (g *RazorpayGateway) CreateRemoteOrder(ctx context.Context, amountMinorUnits int64, currency string) (*models.PendingPayment, error) {
	if amountMinorUnits <= 0 {
		return nil, apperrors.ErrGatewayRejected
	}

	req := remoteOrderRequest{
		Amount:   amountMinorUnits,
		Currency: currency,
		Receipt:  "rcpt_" + uuid.NewString(),
	}

	result, err := g.breaker.Execute(func() (interface{}, error) {
		var remote remoteOrderResponse
		resp, err := g.client.R().
			SetContext(ctx).
			SetBody(req).
			SetResult(&remote).
			Post("/v1/orders")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			// 4xx means the provider understood and refused; only 5xx counts
			// as the provider being down.
			if resp.StatusCode() < 500 {
				return nil, fmt.Errorf("gateway returned status %d: %w", resp.StatusCode(), apperrors.ErrGatewayRejected)
			}
			return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode())
		}
		return &remote, nil
	})
	if err != nil {
		g.logger.WithFields(log.Fields{
			"amount_minor_units": amountMinorUnits,
			"currency":           currency,
			"error":              err.Error(),
		}).Error("Failed to create gateway order")

		if errors.Is(err, apperrors.ErrGatewayRejected) {
			metrics.GatewayCallsTotal.WithLabelValues("create_order", "rejected").Inc()
			return nil, apperrors.ErrGatewayRejected
		}
		metrics.GatewayCallsTotal.WithLabelValues("create_order", "error").Inc()
		return nil, apperrors.ErrGatewayUnavailable
	}

	remote := result.(*remoteOrderResponse)
	metrics.GatewayCallsTotal.WithLabelValues("create_order", "ok").Inc()

	g.logger.WithFields(log.Fields{
		"gateway_order_id":   remote.ID,
		"amount_minor_units": remote.Amount,
		"currency":           remote.Currency,
	}).Info("Gateway order created")

	return &models.PendingPayment{
		GatewayOrderID:   remote.ID,
		AmountMinorUnits: remote.Amount,
		Currency:         remote.Currency,
		CreatedAt:        time.Now(),
	}, nil
}

// VerifySignature checks the HMAC-SHA256 of "orderID|paymentID" against the
// provided hex signature using a constant-time comparison.
func (g *RazorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) bool {
	expected := ComputeSignature(g.keySecret, gatewayOrderID, gatewayPaymentID)

	ok := hmac.Equal([]byte(expected), []byte(signature))
	if !ok {
		metrics.GatewayCallsTotal.WithLabelValues("verify_signature", "mismatch").Inc()
		g.logger.WithFields(log.Fields{
			"gateway_order_id":   gatewayOrderID,
			"gateway_payment_id": gatewayPaymentID,
		}).Warn("Payment signature mismatch")
	}
	return ok
}

// ComputeSignature returns the hex HMAC-SHA256 the gateway issues for a
// completed payment. Exposed for signing test fixtures.
func ComputeSignature(secret, gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
