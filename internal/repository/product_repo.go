package repository

import (
	"context"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

type ProductRepository struct {
	Store *Store
	Seed  func() []model.Product
}

func NewProductRepository(s *Store) *ProductRepository {
	return &ProductRepository{Store: s, Seed: SeedProducts}
}

// List returns the catalog in stored order, or the seed catalog.
func (r *ProductRepository) List(ctx context.Context) []model.Product {
	return Load(ctx, r.Store, KeyProducts, r.Seed())
}

// GetByID returns the product with the given id.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (model.Product, bool) {
	for _, p := range r.List(ctx) {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// Update applies fn to the current catalog and saves the result.
// Nothing is written when fn returns an error.
func (r *ProductRepository) Update(ctx context.Context, fn func([]model.Product) ([]model.Product, error)) ([]model.Product, error) {
	unlock := r.Store.Lock(KeyProducts)
	defer unlock()

	next, err := fn(r.List(ctx))
	if err != nil {
		return nil, err
	}
	r.Store.Save(ctx, KeyProducts, next)
	return next, nil
}
