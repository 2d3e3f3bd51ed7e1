package services

import (
	"context"
	"strings"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
)

// FilterByCategory keeps products whose category equals category exactly.
// model.CategoryAll returns the input unchanged.
func FilterByCategory(products []model.Product, category string) []model.Product {
	if category == model.CategoryAll {
		return products
	}
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// SearchProducts matches query case-insensitively against name,
// description and category. A blank query returns the input unchanged.
func SearchProducts(products []model.Product, query string) []model.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products
	}
	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Category), q) {
			out = append(out, p)
		}
	}
	return out
}

// BrowseProducts applies the category filter, then the text search.
func BrowseProducts(products []model.Product, category, query string) []model.Product {
	return SearchProducts(FilterByCategory(products, category), query)
}

type CatalogService struct {
	Repo *repository.ProductRepository
}

func NewCatalogService(r *repository.ProductRepository) *CatalogService {
	return &CatalogService{Repo: r}
}

// List returns the catalog narrowed by category and query.
// An empty category means all products.
func (s *CatalogService) List(ctx context.Context, category, query string) []model.Product {
	if category == "" {
		category = model.CategoryAll
	}
	return BrowseProducts(s.Repo.List(ctx), category, query)
}

func (s *CatalogService) Get(ctx context.Context, id string) (*model.Product, error) {
	p, ok := s.Repo.GetByID(ctx, id)
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (s *CatalogService) Categories() []string {
	return Categories()
}

// Categories returns the browse choices, "All" first.
func Categories() []string {
	return append([]string{model.CategoryAll}, model.Categories...)
}
