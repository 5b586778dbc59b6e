package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/models"
)

// Ensure PostgresOrderRepository implements OrderRepository.
var _ OrderRepository = (*PostgresOrderRepository)(nil)

// PostgresOrderRepository implements the order ledger on PostgreSQL. The
// orders table carries a unique index on gateway_payment_id; that constraint
// is what makes CreateOrFind safe under concurrent duplicate submissions.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *log.Entry
}

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:     db,
		logger: log.WithField("component", "order-repository"),
	}
}

const orderColumns = `
	id, items, customer, user_email,
	subtotal, shipping, tax, total, currency,
	status, gateway_order_id, gateway_payment_id,
	created_at, updated_at
`

// CreateOrFind inserts the order unless its gateway payment id is already
// recorded. ON CONFLICT DO NOTHING keeps the insert-or-find atomic; two
// concurrent calls with the same payment id collapse to one row and both
// callers get that row back.
func (r *PostgresOrderRepository) CreateOrFind(ctx context.Context, order *models.Order) (*models.Order, bool, error) {
	itemsJSON, customerJSON, err := marshalOrderDocs(order)
	if err != nil {
		return nil, false, err
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (gateway_payment_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, query,
		order.ID, itemsJSON, customerJSON, order.UserEmail,
		order.Subtotal, order.Shipping, order.Tax, order.Total, order.Currency,
		order.Status, order.Payment.GatewayOrderID, order.Payment.GatewayPaymentID,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.WithFields(log.Fields{
			"order_id":           order.ID,
			"gateway_payment_id": order.Payment.GatewayPaymentID,
			"error":              err.Error(),
		}).Error("Failed to insert order")
		return nil, false, err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		r.logger.WithFields(log.Fields{
			"order_id": order.ID,
			"total":    order.Total,
		}).Info("Order created")
		return order, true, nil
	}

	existing, err := r.getByPaymentID(ctx, order.Payment.GatewayPaymentID)
	if err != nil {
		return nil, false, err
	}

	r.logger.WithFields(log.Fields{
		"order_id":           existing.ID,
		"gateway_payment_id": order.Payment.GatewayPaymentID,
	}).Info("Duplicate checkout collapsed to existing order")

	return existing, false, nil
}

// Create writes an order with no payment reference.
func (r *PostgresOrderRepository) Create(ctx context.Context, order *models.Order) error {
	itemsJSON, customerJSON, err := marshalOrderDocs(order)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NULL, NULL, $11, $12)
	`

	_, err = r.db.ExecContext(ctx, query,
		order.ID, itemsJSON, customerJSON, order.UserEmail,
		order.Subtotal, order.Shipping, order.Tax, order.Total, order.Currency,
		order.Status, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		r.logger.WithFields(log.Fields{
			"order_id": order.ID,
			"error":    err.Error(),
		}).Error("Failed to insert order")
		return err
	}

	r.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"total":    order.Total,
	}).Info("Order created")
	return nil
}

func (r *PostgresOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.scanOrderRow(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresOrderRepository) getByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE gateway_payment_id = $1`
	return r.scanOrderRow(r.db.QueryRowContext(ctx, query, paymentID))
}

func (r *PostgresOrderRepository) GetByEmail(ctx context.Context, email string) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_email = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectOrders(rows)
}

func (r *PostgresOrderRepository) List(ctx context.Context) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.collectOrders(rows)
}

// UpdateStatus applies a transition and bumps updated_at. Any enumerated
// status may move to any other; ordering is not enforced at this layer.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	query := `
		UPDATE orders
		SET status = $2, updated_at = $3
		WHERE id = $1
		RETURNING id
	`

	var returnedID string
	err := r.db.QueryRowContext(ctx, query, id, status, time.Now()).Scan(&returnedID)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.WithFields(log.Fields{
			"order_id": id,
			"error":    err.Error(),
		}).Error("Failed to update order status")
		return nil, err
	}

	r.logger.WithFields(log.Fields{
		"order_id":   id,
		"new_status": status,
	}).Info("Order status updated")

	return r.GetByID(ctx, id)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *PostgresOrderRepository) scanOrderRow(row rowScanner) (*models.Order, error) {
	var order models.Order
	var itemsJSON, customerJSON []byte
	var gatewayOrderID, gatewayPaymentID sql.NullString

	err := row.Scan(
		&order.ID, &itemsJSON, &customerJSON, &order.UserEmail,
		&order.Subtotal, &order.Shipping, &order.Tax, &order.Total, &order.Currency,
		&order.Status, &gatewayOrderID, &gatewayPaymentID,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(customerJSON, &order.Customer); err != nil {
		return nil, err
	}

	if gatewayPaymentID.Valid {
		order.Payment = &models.PaymentReference{
			GatewayOrderID:   gatewayOrderID.String,
			GatewayPaymentID: gatewayPaymentID.String,
		}
	}

	return &order, nil
}

func (r *PostgresOrderRepository) collectOrders(rows *sql.Rows) ([]*models.Order, error) {
	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := r.scanOrderRow(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func marshalOrderDocs(order *models.Order) (items, customer []byte, err error) {
	items, err = json.Marshal(order.Items)
	if err != nil {
		return nil, nil, err
	}
	customer, err = json.Marshal(order.Customer)
	if err != nil {
		return nil, nil, err
	}
	return items, customer, nil
}

// GenerateOrderID returns a time-sortable opaque order identifier.
func GenerateOrderID() string {
	return "ord_" + uuid.Must(uuid.NewV7()).String()
}
