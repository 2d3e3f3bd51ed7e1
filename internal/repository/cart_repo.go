package repository

import (
	"context"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

// CartRepository stores one cart per session.
type CartRepository struct {
	Store *Store
}

func NewCartRepository(s *Store) *CartRepository {
	return &CartRepository{Store: s}
}

// Get returns the session's cart lines, empty when none were saved.
func (r *CartRepository) Get(ctx context.Context, sessionID string) []model.CartItem {
	return Load(ctx, r.Store, SessionKey(sessionID, KeyCart), []model.CartItem{})
}

// Update applies fn to the current cart and saves the result.
func (r *CartRepository) Update(ctx context.Context, sessionID string, fn func([]model.CartItem) ([]model.CartItem, error)) ([]model.CartItem, error) {
	key := SessionKey(sessionID, KeyCart)
	unlock := r.Store.Lock(key)
	defer unlock()

	next, err := fn(r.Get(ctx, sessionID))
	if err != nil {
		return nil, err
	}
	r.Store.Save(ctx, key, next)
	return next, nil
}

// Clear empties the session's cart.
func (r *CartRepository) Clear(ctx context.Context, sessionID string) {
	key := SessionKey(sessionID, KeyCart)
	unlock := r.Store.Lock(key)
	defer unlock()
	r.Store.Save(ctx, key, []model.CartItem{})
}
