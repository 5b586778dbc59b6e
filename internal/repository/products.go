package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tribalarts/storefront-service/internal/apperrors"
	"github.com/tribalarts/storefront-service/internal/models"
)

var _ ProductRepository = (*PostgresProductRepository)(nil)

// PostgresProductRepository implements the catalog store.
type PostgresProductRepository struct {
	db     *sql.DB
	logger *log.Entry
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{
		db:     db,
		logger: log.WithField("component", "product-repository"),
	}
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	query := `
		SELECT id, name, description, price, category, image, in_stock, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var p models.Product
	var image sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
		&image, &p.InStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if image.Valid {
		p.Image = image.String
	}
	return &p, nil
}

func (r *PostgresProductRepository) List(ctx context.Context) ([]*models.Product, error) {
	query := `
		SELECT id, name, description, price, category, image, in_stock, created_at, updated_at
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]*models.Product, 0)
	for rows.Next() {
		var p models.Product
		var image sql.NullString
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Category,
			&image, &p.InStock, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if image.Valid {
			p.Image = image.String
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) Create(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = "prod_" + uuid.NewString()
	}
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	query := `
		INSERT INTO products (id, name, description, price, category, image, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Category, product.Image, product.InStock,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		r.logger.WithFields(log.Fields{
			"product_id": product.ID,
			"error":      err.Error(),
		}).Error("Failed to create product")
		return err
	}

	r.logger.WithField("product_id", product.ID).Info("Product created")
	return nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, category = $5,
		    image = $6, in_stock = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Category, product.Image, product.InStock, time.Now(),
	)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return apperrors.ErrNotFound
	}

	r.logger.WithField("product_id", id).Info("Product deleted")
	return nil
}
