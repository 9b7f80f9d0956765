package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosewoodpk/storefront/internal/domain"
)

func setupTestRedis(t *testing.T) (*StoreRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	repo := NewStoreRepository(client, 0, logger)
	return repo, mr
}

func sampleCart() domain.Cart {
	return domain.Cart{
		{
			Product:  domain.Product{ID: "p1", Title: "Wooden Chair", Price: 59.99},
			Quantity: 2,
		},
	}
}

// ---------------------------------------------------------------------------
// Cart
// ---------------------------------------------------------------------------

func TestStoreRepository_GetCart_Missing(t *testing.T) {
	repo, _ := setupTestRedis(t)

	cart, err := repo.GetCart(context.Background(), "profile-1")

	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestStoreRepository_GetCart_Malformed(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("cart:profile-1", "not valid json {"))

	cart, err := repo.GetCart(context.Background(), "profile-1")

	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestStoreRepository_SaveCart_RoundTrip(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveCart(ctx, "profile-1", sampleCart()))

	got, err := repo.GetCart(ctx, "profile-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "Wooden Chair", got[0].Title)
	assert.Equal(t, 2, got[0].Quantity)
	assert.InDelta(t, 59.99, got[0].Price, 1e-9)
}

func TestStoreRepository_SaveCart_FullReplace(t *testing.T) {
	repo, mr := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveCart(ctx, "profile-1", sampleCart()))

	// A second save fully overwrites the first: last-writer-wins, no merge.
	replacement := domain.Cart{
		{Product: domain.Product{ID: "p9", Title: "Steel Lamp", Price: 24.50}, Quantity: 1},
	}
	require.NoError(t, repo.SaveCart(ctx, "profile-1", replacement))

	got, err := repo.GetCart(ctx, "profile-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p9", got[0].ID)

	// The stored value is the plain JSON sequence, no envelope or version tag.
	raw, err := mr.Get("cart:profile-1")
	require.NoError(t, err)
	var stored []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Len(t, stored, 1)
	assert.Equal(t, "p9", stored[0]["_id"])
}

func TestStoreRepository_Carts_ScopedByProfile(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveCart(ctx, "profile-1", sampleCart()))

	other, err := repo.GetCart(ctx, "profile-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

// ---------------------------------------------------------------------------
// Wishlist
// ---------------------------------------------------------------------------

func TestStoreRepository_GetWishlist_Missing(t *testing.T) {
	repo, _ := setupTestRedis(t)

	wishlist, err := repo.GetWishlist(context.Background(), "profile-1")

	require.NoError(t, err)
	assert.Empty(t, wishlist)
}

func TestStoreRepository_GetWishlist_Malformed(t *testing.T) {
	repo, mr := setupTestRedis(t)

	require.NoError(t, mr.Set("wishlist:profile-1", `{"oops": true}`))

	wishlist, err := repo.GetWishlist(context.Background(), "profile-1")

	require.NoError(t, err)
	assert.Empty(t, wishlist)
}

func TestStoreRepository_SaveWishlist_RoundTrip(t *testing.T) {
	repo, _ := setupTestRedis(t)
	ctx := context.Background()

	wishlist := domain.Wishlist{
		{ID: "p1", Title: "Wooden Chair", Price: 59.99},
		{ID: "p2", Title: "Steel Lamp", Price: 24.50},
	}
	require.NoError(t, repo.SaveWishlist(ctx, "profile-1", wishlist))

	got, err := repo.GetWishlist(ctx, "profile-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)
}
