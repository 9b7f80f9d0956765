package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rosewoodpk/storefront/internal/domain"
)

// Storage key prefixes; the suffix is the profile ID that owns the state.
const (
	cartKeyPrefix     = "cart:"
	wishlistKeyPrefix = "wishlist:"
)

// StoreRepository implements repository.StoreRepository using Redis.
//
// Values are the full JSON-serialized sequences with no schema or version tag.
// Saves are plain SETs: there is no version check and no merge, so concurrent
// writers on the same profile overwrite each other (last-writer-wins).
type StoreRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewStoreRepository creates a new Redis-backed store repository. A ttl of 0
// keeps state until it is externally cleared.
func NewStoreRepository(client *redis.Client, ttl time.Duration, logger *slog.Logger) *StoreRepository {
	return &StoreRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetCart loads the cart for a profile. A missing key or a value that fails
// to parse both yield an empty cart; malformed state is logged and discarded,
// never surfaced.
func (r *StoreRepository) GetCart(ctx context.Context, profileID string) (domain.Cart, error) {
	data, err := r.get(ctx, cartKeyPrefix+profileID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if data == nil {
		return domain.Cart{}, nil
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		r.logger.WarnContext(ctx, "discarding malformed cart state",
			slog.String("profile_id", profileID),
			slog.String("error", err.Error()),
		)
		return domain.Cart{}, nil
	}
	return cart, nil
}

// SaveCart replaces the persisted cart with the full serialized sequence.
func (r *StoreRepository) SaveCart(ctx context.Context, profileID string, cart domain.Cart) error {
	if err := r.set(ctx, cartKeyPrefix+profileID, cart); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// GetWishlist loads the wishlist for a profile, with the same degradation
// contract as GetCart.
func (r *StoreRepository) GetWishlist(ctx context.Context, profileID string) (domain.Wishlist, error) {
	data, err := r.get(ctx, wishlistKeyPrefix+profileID)
	if err != nil {
		return nil, fmt.Errorf("get wishlist: %w", err)
	}
	if data == nil {
		return domain.Wishlist{}, nil
	}

	var wishlist domain.Wishlist
	if err := json.Unmarshal(data, &wishlist); err != nil {
		r.logger.WarnContext(ctx, "discarding malformed wishlist state",
			slog.String("profile_id", profileID),
			slog.String("error", err.Error()),
		)
		return domain.Wishlist{}, nil
	}
	return wishlist, nil
}

// SaveWishlist replaces the persisted wishlist with the full serialized sequence.
func (r *StoreRepository) SaveWishlist(ctx context.Context, profileID string, wishlist domain.Wishlist) error {
	if err := r.set(ctx, wishlistKeyPrefix+profileID, wishlist); err != nil {
		return fmt.Errorf("save wishlist: %w", err)
	}
	return nil
}

// get returns the raw stored bytes, or nil when the key is absent.
func (r *StoreRepository) get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (r *StoreRepository) set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
