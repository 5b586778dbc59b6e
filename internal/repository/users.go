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

var _ UserRepository = (*PostgresUserRepository)(nil)

// PostgresUserRepository stores storefront accounts.
type PostgresUserRepository struct {
	db     *sql.DB
	logger *log.Entry
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{
		db:     db,
		logger: log.WithField("component", "user-repository"),
	}
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, phone, address, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u models.User
	var phone, address sql.NullString
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &phone, &address,
		&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if phone.Valid {
		u.Phone = phone.String
	}
	if address.Valid {
		u.Address = address.String
	}
	return &u, nil
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "usr_" + uuid.NewString()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (id, name, email, phone, address, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Phone, user.Address,
		user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		r.logger.WithFields(log.Fields{
			"email": user.Email,
			"error": err.Error(),
		}).Error("Failed to create user")
		return err
	}

	r.logger.WithField("email", user.Email).Info("User created")
	return nil
}

func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, email string, req *models.UpdateProfileRequest) (*models.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE(NULLIF($2, ''), name),
		    phone = COALESCE(NULLIF($3, ''), phone),
		    address = COALESCE(NULLIF($4, ''), address),
		    updated_at = $5
		WHERE email = $1
		RETURNING id
	`

	var id string
	err := r.db.QueryRowContext(ctx, query, email, req.Name, req.Phone, req.Address, time.Now()).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return r.GetByEmail(ctx, email)
}

func (r *PostgresUserRepository) List(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, name, email, phone, address, password_hash, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		var u models.User
		var phone, address sql.NullString
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &phone, &address,
			&u.PasswordHash, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if phone.Valid {
			u.Phone = phone.String
		}
		if address.Valid {
			u.Address = address.String
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *PostgresUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
