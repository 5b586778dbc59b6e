package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/config"
	"github.com/tribalarts/storefront-service/internal/repository"
	"github.com/tribalarts/storefront-service/internal/service"
)

// Handlers holds all HTTP handlers for the storefront service.
type Handlers struct {
	checkoutService *service.CheckoutService
	orderService    *service.OrderService
	accountService  *service.AccountService
	contactService  *service.ContactService
	dashboard       *service.DashboardService
	products        repository.ProductRepository
	carts           repository.CartStore
	config          *config.Config
	logger          *log.Entry
}

func NewHandlers(
	checkoutService *service.CheckoutService,
	orderService *service.OrderService,
	accountService *service.AccountService,
	contactService *service.ContactService,
	dashboard *service.DashboardService,
	products repository.ProductRepository,
	carts repository.CartStore,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		checkoutService: checkoutService,
		orderService:    orderService,
		accountService:  accountService,
		contactService:  contactService,
		dashboard:       dashboard,
		products:        products,
		carts:           carts,
		config:          cfg,
		logger:          log.WithField("component", "handlers"),
	}
}

// handleError translates the domain error taxonomy into HTTP responses. Raw
// provider and store errors never reach the client.
func handleError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, apperrors.ErrGatewayUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "payment service unavailable, please try again",
			"retryable": true,
		})
	case errors.Is(err, apperrors.ErrGatewayRejected):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":     "payment could not be initiated, please try again",
			"retryable": true,
		})
	case errors.Is(err, apperrors.ErrPaymentVerificationFailed):
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":     "payment verification failed",
			"retryable": false,
		})
	case errors.Is(err, apperrors.ErrPersistenceFailed):
		// The charge went through but the order record did not. Retrying
		// would double-charge, so direct the customer to support.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "your payment was received but the order could not be recorded; please contact support",
			"retryable": false,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
