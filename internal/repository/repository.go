package repository

import (
	"context"

	"github.com/rosewoodpk/storefront/internal/domain"
)

// StoreRepository defines the persisted mirror of the cart and wishlist
// sequences, keyed by browser profile.
//
// Reads degrade rather than fail: a missing or malformed stored value loads
// as an empty sequence. Writes replace the full serialized sequence with no
// version check; two writers racing on the same profile are last-writer-wins.
type StoreRepository interface {
	// GetCart loads the cart for a profile. Absent or unparsable state yields
	// an empty cart, never an error.
	GetCart(ctx context.Context, profileID string) (domain.Cart, error)

	// SaveCart replaces the persisted cart for a profile with the full
	// serialized sequence.
	SaveCart(ctx context.Context, profileID string, cart domain.Cart) error

	// GetWishlist loads the wishlist for a profile, with the same degradation
	// contract as GetCart.
	GetWishlist(ctx context.Context, profileID string) (domain.Wishlist, error)

	// SaveWishlist replaces the persisted wishlist for a profile.
	SaveWishlist(ctx context.Context, profileID string, wishlist domain.Wishlist) error
}
