package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/tribalarts/storefront-service/internal/models"
)

const (
	cartKeyPrefix     = "cart:"
	wishlistKeyPrefix = "wishlist:"
)

var _ CartStore = (*RedisCartStore)(nil)

// RedisCartStore syncs per-user cart and wishlist lists. Entries have no TTL;
// an explicit clear (checkout, user action) removes them.
type RedisCartStore struct {
	client *redis.Client
	logger *log.Entry
}

func NewRedisCartStore(client *redis.Client) *RedisCartStore {
	return &RedisCartStore{
		client: client,
		logger: log.WithField("component", "cart-store"),
	}
}

// GetCart returns the user's synced cart, or an empty cart if none exists.
func (s *RedisCartStore) GetCart(ctx context.Context, userEmail string) (*models.Cart, error) {
	data, err := s.client.Get(ctx, cartKeyPrefix+userEmail).Bytes()
	if err == redis.Nil {
		return &models.Cart{UserEmail: userEmail, Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *RedisCartStore) SetCart(ctx context.Context, cart *models.Cart) error {
	cart.Normalize()
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKeyPrefix+cart.UserEmail, data, 0).Err()
}

func (s *RedisCartStore) ClearCart(ctx context.Context, userEmail string) error {
	s.logger.WithField("user_email", userEmail).Debug("Clearing cart")
	return s.client.Del(ctx, cartKeyPrefix+userEmail).Err()
}

func (s *RedisCartStore) GetWishlist(ctx context.Context, userEmail string) (*models.Wishlist, error) {
	data, err := s.client.Get(ctx, wishlistKeyPrefix+userEmail).Bytes()
	if err == redis.Nil {
		return &models.Wishlist{UserEmail: userEmail, Items: []models.WishlistItem{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var wishlist models.Wishlist
	if err := json.Unmarshal(data, &wishlist); err != nil {
		return nil, err
	}
	return &wishlist, nil
}

func (s *RedisCartStore) SetWishlist(ctx context.Context, wishlist *models.Wishlist) error {
	wishlist.UpdatedAt = time.Now()

	data, err := json.Marshal(wishlist)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, wishlistKeyPrefix+wishlist.UserEmail, data, 0).Err()
}

func (s *RedisCartStore) ClearWishlist(ctx context.Context, userEmail string) error {
	return s.client.Del(ctx, wishlistKeyPrefix+userEmail).Err()
}
