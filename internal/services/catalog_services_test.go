package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
)

func TestFilterByCategory(t *testing.T) {
	products := testProducts()

	assert.Len(t, FilterByCategory(products, "All"), 3)

	got := FilterByCategory(products, "Womens")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	assert.Empty(t, FilterByCategory(products, "womens"), "category match is case sensitive")
}

func TestSearchProducts(t *testing.T) {
	products := testProducts()

	assert.Equal(t, products, SearchProducts(products, "   "))

	got := SearchProducts(products, "  SILK ")
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	got = SearchProducts(products, "decor")
	require.Len(t, got, 1)
	assert.Equal(t, "3", got[0].ID)

	got = SearchProducts(products, "eid")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestBrowseProducts_FilterThenSearch(t *testing.T) {
	products := testProducts()

	assert.Empty(t, BrowseProducts(products, "Mens", "saree"))
	got := BrowseProducts(products, "All", "o")
	assert.Len(t, got, 3)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "3", got[2].ID)
	assert.Len(t, products, 3)
}

func TestCatalogService(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewProductRepository(newTestStore())
	repo.Seed = testProducts
	svc := NewCatalogService(repo)

	assert.Len(t, svc.List(ctx, "", ""), 3)
	assert.Len(t, svc.List(ctx, "Mens", ""), 1)

	p, err := svc.Get(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Silk Saree", p.Name)

	_, err = svc.Get(ctx, "404")
	assert.ErrorIs(t, err, ErrProductNotFound)

	cats := svc.Categories()
	assert.Equal(t, "All", cats[0])
	assert.Len(t, cats, 7)
}
