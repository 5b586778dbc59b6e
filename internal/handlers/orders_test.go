package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/config"
	"github.com/tribalarts/storefront-service/internal/middleware"
	"github.com/tribalarts/storefront-service/internal/models"
	"github.com/tribalarts/storefront-service/internal/service"
)

type stubOrderRepo struct {
	orders []*models.Order
}

func (r *stubOrderRepo) CreateOrFind(_ context.Context, order *models.Order) (*models.Order, bool, error) {
	r.orders = append(r.orders, order)
	return order, true, nil
}

func (r *stubOrderRepo) Create(_ context.Context, order *models.Order) error {
	r.orders = append(r.orders, order)
	return nil
}

func (r *stubOrderRepo) GetByID(_ context.Context, id string) (*models.Order, error) {
	for _, order := range r.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *stubOrderRepo) GetByEmail(_ context.Context, email string) ([]*models.Order, error) {
	result := make([]*models.Order, 0)
	for _, order := range r.orders {
		if order.UserEmail == email {
			result = append(result, order)
		}
	}
	return result, nil
}

func (r *stubOrderRepo) List(_ context.Context) ([]*models.Order, error) {
	return r.orders, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	order, err := r.GetByID(context.Background(), id)
	if err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

func ordersHandlers() *Handlers {
	cfg := &config.Config{}
	repo := &stubOrderRepo{orders: []*models.Order{
		{ID: "ord_1", UserEmail: "asha@example.com", Total: 226, Status: models.OrderStatusConfirmed},
	}}
	return NewHandlers(nil, service.NewOrderService(repo, nil, nil, cfg), nil, nil, nil, nil, nil, cfg)
}

func TestListOrders_OwnershipRequired(t *testing.T) {
	h := ordersHandlers()

	tests := []struct {
		name       string
		query      string
		authEmail  string
		authRole   string
		wantCode   int
		wantOrders int
	}{
		{"anonymous querying an email", "?email=asha@example.com", "", "", http.StatusUnauthorized, 0},
		{"customer querying someone else", "?email=asha@example.com", "other@example.com", "customer", http.StatusUnauthorized, 0},
		{"customer's own orders, no query", "", "asha@example.com", "customer", http.StatusOK, 1},
		{"customer's own email as query", "?email=asha@example.com", "asha@example.com", "customer", http.StatusOK, 1},
		{"admin querying any email", "?email=asha@example.com", "admin@tribalarts.com", "admin", http.StatusOK, 1},
		{"anonymous with no email", "", "", "", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/orders"+tt.query, nil)
			if tt.authEmail != "" {
				c.Set(middleware.ContextEmailKey, tt.authEmail)
				c.Set(middleware.ContextRoleKey, tt.authRole)
			}

			h.ListOrders(c)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var body struct {
				Orders []*models.Order `json:"orders"`
				Count  int             `json:"count"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if body.Count != tt.wantOrders {
				t.Errorf("count = %d, want %d", body.Count, tt.wantOrders)
			}
		})
	}
}
