package clients

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/config"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testGateway(baseURL string) *RazorpayGateway {
	return NewRazorpayGateway(config.GatewayConfig{
		BaseURL:   baseURL,
		KeyID:     "rzp_test_key",
		KeySecret: "test-secret",
		Timeout:   5 * time.Second,
	})
}

func TestComputeSignature(t *testing.T) {
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_1|pay_1"))
	want := hex.EncodeToString(mac.Sum(nil))

	got := ComputeSignature("secret", "order_1", "pay_1")
	if got != want {
		t.Errorf("ComputeSignature() = %s, want %s", got, want)
	}

	if ComputeSignature("secret", "order_1", "pay_1") != got {
		t.Error("signature is not deterministic")
	}
	if ComputeSignature("other-secret", "order_1", "pay_1") == got {
		t.Error("different secrets produced the same signature")
	}
}

func TestVerifySignature(t *testing.T) {
	g := testGateway("http://localhost:0")
	valid := ComputeSignature("test-secret", "order_abc", "pay_xyz")

	tests := []struct {
		name      string
		orderID   string
		paymentID string
		signature string
		want      bool
	}{
		{"valid", "order_abc", "pay_xyz", valid, true},
		{"tampered signature", "order_abc", "pay_xyz", valid[:10] + "0000000000" + valid[20:], false},
		{"different order id", "order_def", "pay_xyz", valid, false},
		{"different payment id", "order_abc", "pay_other", valid, false},
		{"empty signature", "order_abc", "pay_xyz", "", false},
		{"truncated signature", "order_abc", "pay_xyz", valid[:32], false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.VerifySignature(tt.orderID, tt.paymentID, tt.signature); got != tt.want {
				t.Errorf("VerifySignature() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCreateRemoteOrder(t *testing.T) {
	var gotBody remoteOrderRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "rzp_test_key" || pass != "test-secret" {
			t.Errorf("missing or wrong basic auth: %s/%s", user, pass)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(remoteOrderResponse{
			ID:       "order_remote_1",
			Amount:   gotBody.Amount,
			Currency: gotBody.Currency,
			Status:   "created",
		})
	}))
	defer srv.Close()

	g := testGateway(srv.URL)

	pending, err := g.CreateRemoteOrder(context.Background(), 22600, "INR")
	if err != nil {
		t.Fatalf("CreateRemoteOrder() error = %v", err)
	}

	if pending.GatewayOrderID != "order_remote_1" {
		t.Errorf("gateway order id = %s, want order_remote_1", pending.GatewayOrderID)
	}
	if pending.AmountMinorUnits != 22600 {
		t.Errorf("amount = %d, want 22600", pending.AmountMinorUnits)
	}
	if gotBody.Amount != 22600 || gotBody.Currency != "INR" {
		t.Errorf("request body = %+v", gotBody)
	}
	if gotBody.Receipt == "" {
		t.Error("expected a generated receipt id")
	}
}

func TestCreateRemoteOrder_RejectsNonPositiveAmount(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	g := testGateway(srv.URL)

	for _, amount := range []int64{0, -1, -22600} {
		if _, err := g.CreateRemoteOrder(context.Background(), amount, "INR"); !errors.Is(err, apperrors.ErrGatewayRejected) {
			t.Errorf("amount %d: expected ErrGatewayRejected, got %v", amount, err)
		}
	}
	if called {
		t.Error("gateway was called for a non-positive amount")
	}
}

func TestCreateRemoteOrder_ProviderRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	g := testGateway(srv.URL)

	// a 4xx is the provider refusing, not the provider being down
	if _, err := g.CreateRemoteOrder(context.Background(), 100, "INR"); !errors.Is(err, apperrors.ErrGatewayRejected) {
		t.Errorf("expected ErrGatewayRejected, got %v", err)
	}
}

func TestCreateRemoteOrder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	g := testGateway(srv.URL)

	if _, err := g.CreateRemoteOrder(context.Background(), 100, "INR"); !errors.Is(err, apperrors.ErrGatewayUnavailable) {
		t.Errorf("expected ErrGatewayUnavailable, got %v", err)
	}
}

func TestCreateRemoteOrder_BreakerOpensAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := testGateway(srv.URL)

	for i := 0; i < 5; i++ {
		if _, err := g.CreateRemoteOrder(context.Background(), 100, "INR"); !errors.Is(err, apperrors.ErrGatewayUnavailable) {
			t.Fatalf("call %d: expected ErrGatewayUnavailable, got %v", i, err)
		}
	}

	// the breaker is open now; calls fail fast without reaching the server
	srv.Close()
	if _, err := g.CreateRemoteOrder(context.Background(), 100, "INR"); !errors.Is(err, apperrors.ErrGatewayUnavailable) {
		t.Errorf("expected ErrGatewayUnavailable from open breaker, got %v", err)
	}
}
