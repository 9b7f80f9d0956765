package service

import (
	"context"
	"log/slog"

	"github.com/rosewoodpk/storefront/internal/domain"
	apperrors "github.com/rosewoodpk/storefront/pkg/errors"
)

// ContentClient is the slice of the CMS client the catalog service needs.
type ContentClient interface {
	AllProducts(ctx context.Context) ([]domain.Product, error)
	ProductByID(ctx context.Context, id string) (*domain.Product, error)
	RelatedProducts(ctx context.Context, id string, tags []string) ([]domain.Product, error)
}

// ShopPage is one page of the shop grid, along with the pagination totals
// the grid renders its page controls from.
type ShopPage struct {
	Products   []domain.Product
	Total      int
	TotalPages int
	Page       int
	PageSize   int
}

// ProductDetail is a product together with the related items that share at
// least one of its tags.
type ProductDetail struct {
	Product domain.Product
	Related []domain.Product
}

// CatalogService serves the read-side catalog surfaces. Every operation
// fetches from the CMS on demand; sorting, pagination, and search filtering
// all happen in memory over the full catalog rather than being pushed down
// to the content API.
type CatalogService struct {
	cms    ContentClient
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(cms ContentClient, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		cms:    cms,
		logger: logger,
	}
}

// ListProducts returns the full catalog in CMS order.
func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.cms.AllProducts(ctx)
	if err != nil {
		return nil, apperrors.ContentFetch(err)
	}
	return products, nil
}

// BrowseProducts fetches the full catalog, applies the requested sort mode,
// and slices out the requested page. Unknown sort modes leave the CMS order
// untouched.
func (s *CatalogService) BrowseProducts(ctx context.Context, sortMode string, page, pageSize int) (*ShopPage, error) {
	products, err := s.cms.AllProducts(ctx)
	if err != nil {
		return nil, apperrors.ContentFetch(err)
	}

	sorted := domain.SortProducts(products, sortMode)

	return &ShopPage{
		Products:   domain.Paginate(sorted, pageSize, page),
		Total:      len(sorted),
		TotalPages: domain.TotalPages(len(sorted), pageSize),
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

// GetProduct returns the product with its related items. Related items are
// the ones sharing at least one tag, never including the product itself.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*ProductDetail, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	product, err := s.cms.ProductByID(ctx, id)
	if err != nil {
		return nil, apperrors.ContentFetch(err)
	}
	if product == nil {
		return nil, apperrors.NotFound("product", id)
	}

	related, err := s.cms.RelatedProducts(ctx, product.ID, product.Tags)
	if err != nil {
		return nil, apperrors.ContentFetch(err)
	}

	return &ProductDetail{
		Product: *product,
		Related: related,
	}, nil
}

// SearchProducts fetches the full catalog and filters it to titles containing
// the query, case-insensitively. An empty query matches everything.
func (s *CatalogService) SearchProducts(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := s.cms.AllProducts(ctx)
	if err != nil {
		return nil, apperrors.ContentFetch(err)
	}
	return domain.SearchByTitle(products, query), nil
}
