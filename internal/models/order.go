package models

import "time"

// OrderStatus is the admin-managed lifecycle state of a persisted order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// AllOrderStatuses lists every valid status. Transitions between any pair are
// allowed, terminal states included; the business does not require a strict
// workflow ordering for this catalog.
var AllOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// IsValid reports whether s is one of the enumerated statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether s is a state with no defined outgoing transition.
// Moving out of a terminal state is still permitted but is an operator-level
// decision, e.g. correcting a mistaken cancellation.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// OrderLineItem is a frozen snapshot of a cart line at purchase time. Prices
// never follow the live catalog after the order is written.
type OrderLineItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image,omitempty"`
}

// Customer holds the contact details captured at checkout.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// PaymentReference links an order to the gateway transaction that paid for it.
// GatewayPaymentID doubles as the dedup key for duplicate checkout submissions.
type PaymentReference struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
}

// Order is the durable record written by checkout. Items and Total are
// immutable after creation; only Status and UpdatedAt change. Orders are never
// deleted, cancellation is a status transition.
type Order struct {
	ID        string            `json:"id"`
	Items     []OrderLineItem   `json:"items"`
	Subtotal  float64           `json:"subtotal"`
	Shipping  float64           `json:"shipping"`
	Tax       float64           `json:"tax"`
	Total     float64           `json:"total"`
	Currency  string            `json:"currency"`
	Customer  Customer          `json:"customer"`
	UserEmail string            `json:"user_email"`
	Status    OrderStatus       `json:"status"`
	Payment   *PaymentReference `json:"payment,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// ItemsSubtotal recomputes the subtotal from the frozen line items.
func (o *Order) ItemsSubtotal() float64 {
	var subtotal float64
	for _, item := range o.Items {
		subtotal += item.UnitPrice * float64(item.Quantity)
	}
	return subtotal
}

// UpdateOrderStatusRequest is the admin payload for a status transition.
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status"`
}
