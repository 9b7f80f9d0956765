package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rosewoodpk/storefront/internal/domain"
	"github.com/rosewoodpk/storefront/internal/event"
	pkgkafka "github.com/rosewoodpk/storefront/pkg/kafka"
)

// --- Mock Repository ---

type mockStoreRepository struct {
	mock.Mock
}

func (m *mockStoreRepository) GetCart(ctx context.Context, profileID string) (domain.Cart, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *mockStoreRepository) SaveCart(ctx context.Context, profileID string, cart domain.Cart) error {
	args := m.Called(ctx, profileID, cart)
	return args.Error(0)
}

func (m *mockStoreRepository) GetWishlist(ctx context.Context, profileID string) (domain.Wishlist, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Wishlist), args.Error(1)
}

func (m *mockStoreRepository) SaveWishlist(ctx context.Context, profileID string, wishlist domain.Wishlist) error {
	args := m.Called(ctx, profileID, wishlist)
	return args.Error(0)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestStoreService(repo *mockStoreRepository) *StoreService {
	logger := newTestLogger()
	// Create a Kafka producer that will fail silently in tests (no real broker).
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	producer := event.NewProducer(kafkaProducer, logger)
	return NewStoreService(repo, producer, logger)
}

func chairProduct() domain.Product {
	return domain.Product{
		ID:    "prod-chair",
		Title: "Wooden Chair",
		Price: 89.99,
		Tags:  []string{"furniture", "wood"},
	}
}

func lampProduct() domain.Product {
	return domain.Product{
		ID:    "prod-lamp",
		Title: "Brass Lamp",
		Price: 45.50,
		Tags:  []string{"lighting"},
	}
}

// --- Cart ---

func TestGetCart_Empty(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)
	ctx := context.Background()

	repo.On("GetCart", ctx, "profile-1").Return(domain.Cart{}, nil)

	cart, err := svc.GetCart(ctx, "profile-1")

	require.NoError(t, err)
	assert.Empty(t, cart)

	repo.AssertExpectations(t)
}

func TestGetCart_MissingProfileID(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)

	_, err := svc.GetCart(context.Background(), "")

	require.Error(t, err)
	repo.AssertNotCalled(t, "GetCart")
}

func TestAddToCart_NewLine(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)
	ctx := context.Background()

	repo.On("GetCart", ctx, "profile-1").Return(domain.Cart{}, nil)
	repo.On("SaveCart", ctx, "profile-1", mock.AnythingOfType("domain.Cart")).Return(nil)

	cart, addedNewLine, err := svc.AddToCart(ctx, "profile-1", chairProduct(), 1)

	require.NoError(t, err)
	assert.True(t, addedNewLine)
	require.Len(t, cart, 1)
	assert.Equal(t, "prod-chair", cart[0].ID)
	assert.Equal(t, 1, cart[0].Quantity)

	repo.AssertExpectations(t)
}

func TestAddToCart_MergesExistingLine(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)
	ctx := context.Background()

	existing := domain.Cart{{Product: chairProduct(), Quantity: 2}}
	repo.On("GetCart", ctx, "profile-1").Return(existing, nil)
	repo.On("SaveCart", ctx, "profile-1", mock.AnythingOfType("domain.Cart")).Return(nil)

	cart, addedNewLine, err := svc.AddToCart(ctx, "profile-1", chairProduct(), 3)

	require.NoError(t, err)
	assert.False(t, addedNewLine)
	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)

	repo.AssertExpectations(t)
}

func TestAddToCart_DefaultsIncrementToOne(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)
	ctx := context.Background()

	repo.On("GetCart", ctx, "profile-1").Return(domain.Cart{}, nil)
	repo.On("SaveCart", ctx, "profile-1", mock.AnythingOfType("domain.Cart")).Return(nil)

	cart, _, err := svc.AddToCart(ctx, "profile-1", chairProduct(), 0)

	require.NoError(t, err)
	require.Len(t, cart, 1)
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestAddToCart_PersistsFullSequence(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)
	ctx := context.Background()

	existing := domain.Cart{{Product: chairProduct(), Quantity: 1}}
	repo.On("GetCart", ctx, "profile-1").Return(existing, nil)

	var saved domain.Cart
	repo.On("SaveCart", ctx, "profile-1", mock.AnythingOfType("domain.Cart")).
		Run(func(args mock.Arguments) {
			saved = args.Get(2).(domain.Cart)
		}).
		Return(nil)

	_, _, err := svc.AddToCart(ctx, "profile-1", lampProduct(), 2)

	require.NoError(t, err)
	require.Len(t, saved, 2)
	assert.Equal(t, "prod-chair", saved[0].ID)
	assert.Equal(t, "prod-lamp", saved[1].ID)
	assert.Equal(t, 2, saved[1].Quantity)
}

func TestAddToCart_SaveError(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)
	ctx := context.Background()

	repo.On("GetCart", ctx, "profile-1").Return(domain.Cart{}, nil)
	repo.On("SaveCart", ctx, "profile-1", mock.AnythingOfType("domain.Cart")).
		Return(errors.New("redis down"))

	_, _, err := svc.AddToCart(ctx, "profile-1", chairProduct(), 1)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist cart")
}

func TestAddToCart_MissingProductID(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)

	_, _, err := svc.AddToCart(context.Background(), "profile-1", domain.Product{}, 1)

	require.Error(t, err)
	repo.AssertNotCalled(t, "GetCart")
}

// --- Wishlist ---

func TestGetWishlist_Empty(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)
	ctx := context.Background()

	repo.On("GetWishlist", ctx, "profile-1").Return(domain.Wishlist{}, nil)

	wishlist, err := svc.GetWishlist(ctx, "profile-1")

	require.NoError(t, err)
	assert.Empty(t, wishlist)

	repo.AssertExpectations(t)
}

func TestToggleWishlist_Adds(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)
	ctx := context.Background()

	repo.On("GetWishlist", ctx, "profile-1").Return(domain.Wishlist{}, nil)
	repo.On("SaveWishlist", ctx, "profile-1", mock.AnythingOfType("domain.Wishlist")).Return(nil)

	wishlist, err := svc.ToggleWishlist(ctx, "profile-1", chairProduct())

	require.NoError(t, err)
	require.Len(t, wishlist, 1)
	assert.True(t, wishlist.Contains("prod-chair"))

	repo.AssertExpectations(t)
}

func TestToggleWishlist_Removes(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)
	ctx := context.Background()

	existing := domain.Wishlist{chairProduct(), lampProduct()}
	repo.On("GetWishlist", ctx, "profile-1").Return(existing, nil)
	repo.On("SaveWishlist", ctx, "profile-1", mock.AnythingOfType("domain.Wishlist")).Return(nil)

	wishlist, err := svc.ToggleWishlist(ctx, "profile-1", chairProduct())

	require.NoError(t, err)
	require.Len(t, wishlist, 1)
	assert.False(t, wishlist.Contains("prod-chair"))
	assert.True(t, wishlist.Contains("prod-lamp"))

	repo.AssertExpectations(t)
}

func TestToggleWishlist_SaveError(t *testing.T) {
	repo := new(mockStoreRepository)
	svc := newTestStoreService(repo)
	ctx := context.Background()

	repo.On("GetWishlist", ctx, "profile-1").Return(domain.Wishlist{}, nil)
	repo.On("SaveWishlist", ctx, "profile-1", mock.AnythingOfType("domain.Wishlist")).
		Return(errors.New("redis down"))

	_, err := svc.ToggleWishlist(ctx, "profile-1", chairProduct())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist wishlist")
}
