package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rosewoodpk/storefront/internal/domain"
	apperrors "github.com/rosewoodpk/storefront/pkg/errors"
)

// --- Mock CMS Client ---

type mockContentClient struct {
	mock.Mock
}

func (m *mockContentClient) AllProducts(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *mockContentClient) ProductByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockContentClient) RelatedProducts(ctx context.Context, id string, tags []string) ([]domain.Product, error) {
	args := m.Called(ctx, id, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func newTestCatalogService(cms *mockContentClient) *CatalogService {
	return NewCatalogService(cms, newTestLogger())
}

func catalogFixture() []domain.Product {
	return []domain.Product{
		{ID: "p1", Title: "Wooden Chair", Price: 89.99, Tags: []string{"furniture"}},
		{ID: "p2", Title: "Brass Lamp", Price: 45.50, Tags: []string{"lighting"}},
		{ID: "p3", Title: "Oak Table", Price: 250.00, Tags: []string{"furniture"}},
		{ID: "p4", Title: "Desk Lamp", Price: 45.50, Tags: []string{"lighting", "office"}},
	}
}

// --- Tests ---

func TestListProducts(t *testing.T) {
	cms := new(mockContentClient)
	svc := newTestCatalogService(cms)
	ctx := context.Background()

	cms.On("AllProducts", ctx).Return(catalogFixture(), nil)

	products, err := svc.ListProducts(ctx)

	require.NoError(t, err)
	assert.Len(t, products, 4)
	assert.Equal(t, "p1", products[0].ID)

	cms.AssertExpectations(t)
}

func TestListProducts_FetchError(t *testing.T) {
	cms := new(mockContentClient)
	svc := newTestCatalogService(cms)
	ctx := context.Background()

	cms.On("AllProducts", ctx).Return(nil, errors.New("connection refused"))

	_, err := svc.ListProducts(ctx)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrContentFetch))
}

func TestBrowseProducts_SortedAndPaged(t *testing.T) {
	cms := new(mockContentClient)
	svc := newTestCatalogService(cms)
	ctx := context.Background()

	cms.On("AllProducts", ctx).Return(catalogFixture(), nil)

	page, err := svc.BrowseProducts(ctx, domain.SortPriceLowHigh, 1, 2)

	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Products, 2)
	// Two products tie at 45.50; CMS order breaks the tie.
	assert.Equal(t, "p2", page.Products[0].ID)
	assert.Equal(t, "p4", page.Products[1].ID)
}

func TestBrowseProducts_OutOfRangePage(t *testing.T) {
	cms := new(mockContentClient)
	svc := newTestCatalogService(cms)
	ctx := context.Background()

	cms.On("AllProducts", ctx).Return(catalogFixture(), nil)

	page, err := svc.BrowseProducts(ctx, domain.SortDefault, 9, 16)

	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, 4, page.Total)
	assert.Equal(t, 1, page.TotalPages)
}

func TestBrowseProducts_UnknownSortKeepsOrder(t *testing.T) {
	cms := new(mockContentClient)
	svc := newTestCatalogService(cms)
	ctx := context.Background()

	cms.On("AllProducts", ctx).Return(catalogFixture(), nil)

	page, err := svc.BrowseProducts(ctx, "alphabetical", 1, 16)

	require.NoError(t, err)
	require.Len(t, page.Products, 4)
	assert.Equal(t, "p1", page.Products[0].ID)
	assert.Equal(t, "p4", page.Products[3].ID)
}

func TestGetProduct(t *testing.T) {
	cms := new(mockContentClient)
	svc := newTestCatalogService(cms)
	ctx := context.Background()

	chair := &domain.Product{ID: "p1", Title: "Wooden Chair", Tags: []string{"furniture"}}
	related := []domain.Product{{ID: "p3", Title: "Oak Table", Tags: []string{"furniture"}}}

	cms.On("ProductByID", ctx, "p1").Return(chair, nil)
	cms.On("RelatedProducts", ctx, "p1", []string{"furniture"}).Return(related, nil)

	detail, err := svc.GetProduct(ctx, "p1")

	require.NoError(t, err)
	assert.Equal(t, "Wooden Chair", detail.Product.Title)
	require.Len(t, detail.Related, 1)
	assert.Equal(t, "p3", detail.Related[0].ID)

	cms.AssertExpectations(t)
}

func TestGetProduct_NotFound(t *testing.T) {
	cms := new(mockContentClient)
	svc := newTestCatalogService(cms)
	ctx := context.Background()

	cms.On("ProductByID", ctx, "missing").Return(nil, nil)

	_, err := svc.GetProduct(ctx, "missing")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	cms.AssertNotCalled(t, "RelatedProducts")
}

func TestGetProduct_RelatedFetchError(t *testing.T) {
	cms := new(mockContentClient)
	svc := newTestCatalogService(cms)
	ctx := context.Background()

	chair := &domain.Product{ID: "p1", Title: "Wooden Chair", Tags: []string{"furniture"}}
	cms.On("ProductByID", ctx, "p1").Return(chair, nil)
	cms.On("RelatedProducts", ctx, "p1", []string{"furniture"}).
		Return(nil, errors.New("timeout"))

	_, err := svc.GetProduct(ctx, "p1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrContentFetch))
}

func TestSearchProducts(t *testing.T) {
	cms := new(mockContentClient)
	svc := newTestCatalogService(cms)
	ctx := context.Background()

	cms.On("AllProducts", ctx).Return(catalogFixture(), nil)

	results, err := svc.SearchProducts(ctx, "LAMP")

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "p2", results[0].ID)
	assert.Equal(t, "p4", results[1].ID)
}

func TestSearchProducts_EmptyQueryMatchesAll(t *testing.T) {
	cms := new(mockContentClient)
	svc := newTestCatalogService(cms)
	ctx := context.Background()

	cms.On("AllProducts", ctx).Return(catalogFixture(), nil)

	results, err := svc.SearchProducts(ctx, "")

	require.NoError(t, err)
	assert.Len(t, results, 4)
}

func TestSearchProducts_FetchError(t *testing.T) {
	cms := new(mockContentClient)
	svc := newTestCatalogService(cms)
	ctx := context.Background()

	cms.On("AllProducts", ctx).Return(nil, errors.New("dns failure"))

	_, err := svc.SearchProducts(ctx, "chair")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrContentFetch))
}
