package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/models"
)

func testCustomer() models.Customer {
	return models.Customer{
		Name:    "Asha Patel",
		Email:   "asha@example.com",
		Phone:   "+911234567890",
		Address: "14 MG Road, Bengaluru",
	}
}

func testItems() []models.CartItem {
	return []models.CartItem{
		{ProductID: "prod_1", Name: "Dhokra Figurine", UnitPrice: 100, Quantity: 2},
	}
}

func newCheckoutFixture() (*CheckoutService, *fakeGateway, *memoryOrderRepo, *memoryCartStore, *stubPublisher) {
	gateway := &fakeGateway{secret: "test-secret"}
	repo := newMemoryOrderRepo()
	carts := newMemoryCartStore()
	publisher := &stubPublisher{}

	svc := NewCheckoutService(gateway, repo, nil, carts, nil, publisher, testConfig())
	return svc, gateway, repo, carts, publisher
}

func completeRequest(gateway *fakeGateway) *CompleteCheckoutRequest {
	return &CompleteCheckoutRequest{
		Proof: models.PaymentProof{
			GatewayOrderID:   "order_fake_1",
			GatewayPaymentID: "pay_abc123",
			Signature:        gateway.sign("order_fake_1", "pay_abc123"),
		},
		Items:     testItems(),
		Customer:  testCustomer(),
		UserEmail: "asha@example.com",
	}
}

func TestBeginCheckout(t *testing.T) {
	svc, gateway, _, _, _ := newCheckoutFixture()

	customer := testCustomer()
	pending, err := svc.BeginCheckout(context.Background(), testItems(), &customer)
	if err != nil {
		t.Fatalf("BeginCheckout() error = %v", err)
	}

	if pending.GatewayOrderID == "" {
		t.Error("expected a gateway order id")
	}
	// 200 subtotal + 10 shipping + 16 tax = 226.00, charged as 22600 paise
	if gateway.lastAmount != 22600 {
		t.Errorf("charged %d minor units, want 22600", gateway.lastAmount)
	}
	if gateway.lastCurrency != "INR" {
		t.Errorf("charged in %s, want INR", gateway.lastCurrency)
	}
}

func TestBeginCheckout_ValidationErrors(t *testing.T) {
	svc, gateway, _, _, _ := newCheckoutFixture()
	customer := testCustomer()

	tests := []struct {
		name     string
		items    []models.CartItem
		customer *models.Customer
	}{
		{"empty cart", nil, &customer},
		{"zero quantity", []models.CartItem{{ProductID: "prod_1", UnitPrice: 10, Quantity: 0}}, &customer},
		{"negative price", []models.CartItem{{ProductID: "prod_1", UnitPrice: -5, Quantity: 1}}, &customer},
		{"missing customer", testItems(), nil},
		{"missing address", testItems(), &models.Customer{Name: "A", Email: "a@b.c", Phone: "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BeginCheckout(context.Background(), tt.items, tt.customer)
			if !apperrors.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if gateway.createCalls != 0 {
		t.Errorf("gateway was called %d times for invalid requests", gateway.createCalls)
	}
}

func TestBeginCheckout_GatewayUnavailable(t *testing.T) {
	svc, gateway, _, _, _ := newCheckoutFixture()
	gateway.createErr = apperrors.ErrGatewayUnavailable

	customer := testCustomer()
	_, err := svc.BeginCheckout(context.Background(), testItems(), &customer)
	if !errors.Is(err, apperrors.ErrGatewayUnavailable) {
		t.Errorf("expected ErrGatewayUnavailable, got %v", err)
	}
}

func TestCompleteCheckout(t *testing.T) {
	svc, gateway, repo, carts, publisher := newCheckoutFixture()

	order, err := svc.CompleteCheckout(context.Background(), completeRequest(gateway))
	if err != nil {
		t.Fatalf("CompleteCheckout() error = %v", err)
	}

	if order.Status != models.OrderStatusConfirmed {
		t.Errorf("order status = %s, want confirmed", order.Status)
	}
	if order.Total != 226 {
		t.Errorf("order total = %v, want 226", order.Total)
	}
	if order.Payment == nil || order.Payment.GatewayPaymentID != "pay_abc123" {
		t.Errorf("order payment reference = %+v", order.Payment)
	}
	if repo.count() != 1 {
		t.Errorf("ledger holds %d orders, want 1", repo.count())
	}
	if !carts.clearedFor("asha@example.com") {
		t.Error("cart was not cleared after checkout")
	}
	if publisher.createdCount() != 1 {
		t.Errorf("published %d created events, want 1", publisher.createdCount())
	}
}

func TestCompleteCheckout_InvalidSignatureWritesNothing(t *testing.T) {
	svc, gateway, repo, carts, publisher := newCheckoutFixture()

	tests := []struct {
		name   string
		mutate func(*CompleteCheckoutRequest)
	}{
		{
			"tampered signature",
			func(req *CompleteCheckoutRequest) { req.Proof.Signature = "deadbeef" + req.Proof.Signature[8:] },
		},
		{
			"signature for a different payment",
			func(req *CompleteCheckoutRequest) {
				req.Proof.Signature = gateway.sign("order_fake_1", "pay_other")
			},
		},
		{
			"swapped order id",
			func(req *CompleteCheckoutRequest) { req.Proof.GatewayOrderID = "order_fake_2" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := completeRequest(gateway)
			tt.mutate(req)

			_, err := svc.CompleteCheckout(context.Background(), req)
			if !errors.Is(err, apperrors.ErrPaymentVerificationFailed) {
				t.Fatalf("expected ErrPaymentVerificationFailed, got %v", err)
			}
		})
	}

	if repo.count() != 0 {
		t.Errorf("ledger holds %d orders after rejected signatures, want 0", repo.count())
	}
	if len(carts.cleared) != 0 {
		t.Error("cart was cleared despite rejected signature")
	}
	if publisher.createdCount() != 0 {
		t.Error("event published despite rejected signature")
	}
}

func TestCompleteCheckout_IncompleteProof(t *testing.T) {
	svc, gateway, repo, _, _ := newCheckoutFixture()

	for _, mutate := range []func(*CompleteCheckoutRequest){
		func(req *CompleteCheckoutRequest) { req.Proof.GatewayOrderID = "" },
		func(req *CompleteCheckoutRequest) { req.Proof.GatewayPaymentID = "" },
		func(req *CompleteCheckoutRequest) { req.Proof.Signature = "" },
	} {
		req := completeRequest(gateway)
		mutate(req)

		_, err := svc.CompleteCheckout(context.Background(), req)
		if !apperrors.IsValidation(err) {
			t.Errorf("expected validation error for incomplete proof, got %v", err)
		}
	}

	if repo.count() != 0 {
		t.Errorf("ledger holds %d orders, want 0", repo.count())
	}
}

func TestCompleteCheckout_DuplicateSubmission(t *testing.T) {
	svc, gateway, repo, _, publisher := newCheckoutFixture()

	first, err := svc.CompleteCheckout(context.Background(), completeRequest(gateway))
	if err != nil {
		t.Fatalf("first CompleteCheckout() error = %v", err)
	}

	second, err := svc.CompleteCheckout(context.Background(), completeRequest(gateway))
	if err != nil {
		t.Fatalf("second CompleteCheckout() error = %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("duplicate submission produced a different order: %s vs %s", first.ID, second.ID)
	}
	if repo.count() != 1 {
		t.Errorf("ledger holds %d orders after duplicate submission, want 1", repo.count())
	}
	if publisher.createdCount() != 1 {
		t.Errorf("published %d created events for one payment, want 1", publisher.createdCount())
	}
}

func TestCompleteCheckout_ConcurrentDuplicates(t *testing.T) {
	svc, gateway, repo, _, _ := newCheckoutFixture()

	const workers = 16

	var wg sync.WaitGroup
	ids := make([]string, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order, err := svc.CompleteCheckout(context.Background(), completeRequest(gateway))
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = order.ID
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("worker %d got order %s, want %s", i, ids[i], ids[0])
		}
	}
	if repo.count() != 1 {
		t.Errorf("ledger holds %d orders after concurrent submissions, want 1", repo.count())
	}
}

func TestCompleteCheckout_PersistenceFailure(t *testing.T) {
	svc, gateway, repo, carts, _ := newCheckoutFixture()
	repo.failErr = errors.New("connection reset by peer")

	_, err := svc.CompleteCheckout(context.Background(), completeRequest(gateway))
	if !errors.Is(err, apperrors.ErrPersistenceFailed) {
		t.Fatalf("expected ErrPersistenceFailed, got %v", err)
	}
	if len(carts.cleared) != 0 {
		t.Error("cart was cleared although the order was never recorded")
	}
}

func TestCompleteCheckout_CatalogOverridesSnapshotPrice(t *testing.T) {
	gateway := &fakeGateway{secret: "test-secret"}
	repo := newMemoryOrderRepo()
	catalog := &memoryCatalog{products: map[string]*models.Product{
		"prod_1": {ID: "prod_1", Name: "Dhokra Figurine", Price: 100, InStock: true},
	}}

	svc := NewCheckoutService(gateway, repo, catalog, newMemoryCartStore(), nil, &stubPublisher{}, testConfig())

	req := completeRequest(gateway)
	// client claims a lower unit price than the catalog holds
	req.Items[0].UnitPrice = 1

	order, err := svc.CompleteCheckout(context.Background(), req)
	if err != nil {
		t.Fatalf("CompleteCheckout() error = %v", err)
	}

	if order.Items[0].UnitPrice != 100 {
		t.Errorf("frozen unit price = %v, want catalog price 100", order.Items[0].UnitPrice)
	}
	if order.Total != 226 {
		t.Errorf("order total = %v, want 226", order.Total)
	}
}
