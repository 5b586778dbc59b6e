package models

import "time"

// PendingPayment references a gateway order awaiting user authorization. It
// lives only for the duration of one checkout attempt and is never persisted;
// an abandoned attempt simply expires on the gateway side.
type PendingPayment struct {
	GatewayOrderID   string    `json:"gateway_order_id"`
	AmountMinorUnits int64     `json:"amount_minor_units"`
	Currency         string    `json:"currency"`
	CreatedAt        time.Time `json:"created_at"`
}

// PaymentProof is the authorization evidence returned by the gateway's payment
// UI. Signature is the sole authoritative proof of payment; a bare "success"
// flag from the client is never trusted.
type PaymentProof struct {
	GatewayOrderID   string `json:"gateway_order_id"`
	GatewayPaymentID string `json:"gateway_payment_id"`
	Signature        string `json:"signature"`
}
