package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/tribalarts/storefront-service/internal/apperrors"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestHealthEndpoints(t *testing.T) {
	h := &Handlers{}

	tests := []struct {
		name       string
		handler    gin.HandlerFunc
		wantStatus string
	}{
		{"health", h.Health, "healthy"},
		{"ready", h.Ready, "ready"},
		{"live", h.Live, "alive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/"+tt.name, nil)

			tt.handler(c)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", w.Code)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if body["status"] != tt.wantStatus {
				t.Errorf("status field = %v, want %s", body["status"], tt.wantStatus)
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantCode      int
		wantRetryable *bool
	}{
		{"validation", apperrors.NewValidationError("items", "cart is empty"), http.StatusBadRequest, nil},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, nil},
		{"unauthorized", apperrors.ErrUnauthorized, http.StatusUnauthorized, nil},
		{"gateway unavailable", apperrors.ErrGatewayUnavailable, http.StatusBadGateway, boolPtr(true)},
		{"gateway rejected", apperrors.ErrGatewayRejected, http.StatusBadGateway, boolPtr(true)},
		{"verification failed", apperrors.ErrPaymentVerificationFailed, http.StatusPaymentRequired, boolPtr(false)},
		{"persistence failed", apperrors.ErrPersistenceFailed, http.StatusInternalServerError, boolPtr(false)},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			handleError(c, tt.err)

			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}

			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if body["error"] == "" {
				t.Error("response has no error message")
			}
			if tt.wantRetryable != nil {
				if got, ok := body["retryable"].(bool); !ok || got != *tt.wantRetryable {
					t.Errorf("retryable = %v, want %v", body["retryable"], *tt.wantRetryable)
				}
			}
		})
	}
}

func TestHandleError_ValidationIncludesField(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handleError(c, apperrors.NewValidationError("customer.email", "email is required"))

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body["field"] != "customer.email" {
		t.Errorf("field = %v, want customer.email", body["field"])
	}
}

func TestHandleError_NeverLeaksInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	handleError(c, errors.New("pq: connection refused host=10.0.0.5"))

	if got := w.Body.String(); got != `{"error":"internal server error"}` {
		t.Errorf("unexpected body %s", got)
	}
}

func boolPtr(b bool) *bool { return &b }
