package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rosewoodpk/storefront/internal/domain"
	"github.com/rosewoodpk/storefront/internal/event"
	"github.com/rosewoodpk/storefront/internal/repository"
	apperrors "github.com/rosewoodpk/storefront/pkg/errors"
)

// StoreService is the single mutation path for cart and wishlist state. Every
// page surface loads, mutates, and persists through this service so the merge
// and toggle semantics cannot diverge between consumers.
//
// Each operation is a full load-mutate-save cycle over the profile's
// snapshot: the save replaces the entire persisted sequence (write-through)
// with no version check. Two storefront instances mutating the same profile
// concurrently are last-writer-wins; the losing instance's view is silently
// overwritten. Events notify downstream consumers but are never used to
// reconcile that race.
type StoreService struct {
	repo     repository.StoreRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewStoreService creates a new store service.
func NewStoreService(repo repository.StoreRepository, producer *event.Producer, logger *slog.Logger) *StoreService {
	return &StoreService{
		repo:     repo,
		producer: producer,
		logger:   logger,
	}
}

// GetCart rehydrates the cart for a profile. Absent or malformed persisted
// state loads as an empty cart.
func (s *StoreService) GetCart(ctx context.Context, profileID string) (domain.Cart, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("profile id is required")
	}

	cart, err := s.repo.GetCart(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

// GetWishlist rehydrates the wishlist for a profile, with the same
// degradation contract as GetCart.
func (s *StoreService) GetWishlist(ctx context.Context, profileID string) (domain.Wishlist, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("profile id is required")
	}

	wishlist, err := s.repo.GetWishlist(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	return wishlist, nil
}

// AddToCart merges the product into the profile's cart and persists the full
// updated sequence. An incrementBy below 1 falls back to the default of 1.
// Returns the updated cart and whether a new line was appended (as opposed to
// an existing line's quantity growing).
func (s *StoreService) AddToCart(ctx context.Context, profileID string, product domain.Product, incrementBy int) (domain.Cart, bool, error) {
	if profileID == "" {
		return nil, false, apperrors.InvalidInput("profile id is required")
	}
	if product.ID == "" {
		return nil, false, apperrors.InvalidInput("product id is required")
	}
	if incrementBy < 1 {
		incrementBy = 1
	}

	cart, err := s.repo.GetCart(ctx, profileID)
	if err != nil {
		return nil, false, fmt.Errorf("load cart: %w", err)
	}

	updated, addedNewLine := cart.AddItem(product, incrementBy)

	if err := s.repo.SaveCart(ctx, profileID, updated); err != nil {
		return nil, false, fmt.Errorf("persist cart: %w", err)
	}

	if err := s.producer.PublishCartUpdated(ctx, profileID, updated); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("profile_id", profileID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("profile_id", profileID),
		slog.String("product_id", product.ID),
		slog.Int("increment_by", incrementBy),
		slog.Bool("added_new_line", addedNewLine),
	)

	return updated, addedNewLine, nil
}

// ToggleWishlist flips the product's wishlist membership for the profile and
// persists the full updated sequence.
func (s *StoreService) ToggleWishlist(ctx context.Context, profileID string, product domain.Product) (domain.Wishlist, error) {
	if profileID == "" {
		return nil, apperrors.InvalidInput("profile id is required")
	}
	if product.ID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	wishlist, err := s.repo.GetWishlist(ctx, profileID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}

	updated := wishlist.Toggle(product)

	if err := s.repo.SaveWishlist(ctx, profileID, updated); err != nil {
		return nil, fmt.Errorf("persist wishlist: %w", err)
	}

	if err := s.producer.PublishWishlistUpdated(ctx, profileID, updated); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish wishlist.updated event",
			slog.String("profile_id", profileID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "wishlist toggled",
		slog.String("profile_id", profileID),
		slog.String("product_id", product.ID),
		slog.Bool("now_present", updated.Contains(product.ID)),
	)

	return updated, nil
}
