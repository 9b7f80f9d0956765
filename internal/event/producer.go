package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rosewoodpk/storefront/internal/domain"
	pkgkafka "github.com/rosewoodpk/storefront/pkg/kafka"
)

// Kafka topic constants for storefront domain events.
const (
	TopicCartUpdated     = "storefront.cart.updated"
	TopicWishlistUpdated = "storefront.wishlist.updated"
)

// Aggregate type constants.
const (
	AggregateTypeCart     = "cart"
	AggregateTypeWishlist = "wishlist"
)

// Source identifier for events originating from the storefront service.
const SourceStorefront = "storefront"

// CartUpdatedData is the payload for a cart.updated event.
//
// These events are notifications only. Open storefront instances do NOT
// consume them to reconcile state: concurrent writers on the same profile
// remain last-writer-wins at the storage layer.
type CartUpdatedData struct {
	ProfileID string         `json:"profile_id"`
	Lines     []CartLineData `json:"lines"`
	ItemCount int            `json:"item_count"`
	Subtotal  float64        `json:"subtotal"`
}

// CartLineData is the line payload within cart events.
type CartLineData struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// WishlistUpdatedData is the payload for a wishlist.updated event.
type WishlistUpdatedData struct {
	ProfileID  string   `json:"profile_id"`
	ProductIDs []string `json:"product_ids"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates a new event producer for the storefront service.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, profileID string, cart domain.Cart) error {
	lines := make([]CartLineData, len(cart))
	for i, line := range cart {
		lines[i] = CartLineData{
			ProductID: line.ID,
			Title:     line.Title,
			Price:     line.Price,
			Quantity:  line.EffectiveQuantity(),
		}
	}

	data := CartUpdatedData{
		ProfileID: profileID,
		Lines:     lines,
		ItemCount: cart.ItemCount(),
		Subtotal:  cart.Subtotal(),
	}

	event, err := pkgkafka.NewEvent(TopicCartUpdated, profileID, AggregateTypeCart, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, event); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("profile_id", profileID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishWishlistUpdated publishes a wishlist.updated event.
func (p *Producer) PublishWishlistUpdated(ctx context.Context, profileID string, wishlist domain.Wishlist) error {
	ids := make([]string, len(wishlist))
	for i, entry := range wishlist {
		ids[i] = entry.ID
	}

	data := WishlistUpdatedData{ProfileID: profileID, ProductIDs: ids}

	event, err := pkgkafka.NewEvent(TopicWishlistUpdated, profileID, AggregateTypeWishlist, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create wishlist.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicWishlistUpdated, event); err != nil {
		return fmt.Errorf("publish wishlist.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published wishlist.updated event",
		slog.String("profile_id", profileID),
		slog.Int("entries", len(wishlist)),
	)

	return nil
}
