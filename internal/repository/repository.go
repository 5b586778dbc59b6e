package repository

import (
	"context"

	"github.com/tribalarts/storefront-service/internal/models"
)

// OrderRepository is the durable ledger of orders. Records are append-mostly:
// after creation only status and updated_at ever change, and nothing is
// deleted.
type OrderRepository interface {
	// CreateOrFind writes the order unless one already exists with the same
	// gateway payment id, in which case the existing record is returned. The
	// insert-or-find must be atomic; it is the dedup mechanism for duplicate
	// checkout submissions. created reports whether a new row was written.
	CreateOrFind(ctx context.Context, order *models.Order) (result *models.Order, created bool, err error)

	// Create writes an order without a payment reference, e.g. a
	// manually-created back-office order.
	Create(ctx context.Context, order *models.Order) error

	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByEmail(ctx context.Context, email string) ([]*models.Order, error)
	List(ctx context.Context) ([]*models.Order, error)

	// UpdateStatus applies a status transition and bumps updated_at.
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}

// OrderCache defines caching operations for orders.
type OrderCache interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	Set(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id string) error
}

// ProductRepository is the catalog store. Reads are the trusted price source
// for checkout; writes are admin-only.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context) ([]*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
}

// UserRepository stores storefront accounts.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, email string, req *models.UpdateProfileRequest) (*models.User, error)

	// List returns every account, newest first.
	List(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int, error)
}

// MessageRepository stores contact messages and their reply threads.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	List(ctx context.Context) ([]*models.ContactMessage, error)

	// ListByEmail returns the messages a customer submitted, newest first,
	// replies included.
	ListByEmail(ctx context.Context, email string) ([]*models.ContactMessage, error)
	GetByID(ctx context.Context, id string) (*models.ContactMessage, error)
	Update(ctx context.Context, id string, status models.MessageStatus, reply *models.MessageReply) (*models.ContactMessage, error)
}

// CartStore syncs per-user cart and wishlist item lists. Carts are
// per-session data, not ledger records, so they live in Redis.
type CartStore interface {
	GetCart(ctx context.Context, userEmail string) (*models.Cart, error)
	SetCart(ctx context.Context, cart *models.Cart) error
	ClearCart(ctx context.Context, userEmail string) error

	GetWishlist(ctx context.Context, userEmail string) (*models.Wishlist, error)
	SetWishlist(ctx context.Context, wishlist *models.Wishlist) error
	ClearWishlist(ctx context.Context, userEmail string) error
}
