package repository

import (
	"context"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

// OrderRepository stores the shop's order history, most recent first.
type OrderRepository struct {
	Store *Store
	Carts *CartRepository
}

func NewOrderRepository(s *Store, carts *CartRepository) *OrderRepository {
	return &OrderRepository{Store: s, Carts: carts}
}

// List returns every order, most recent first.
func (r *OrderRepository) List(ctx context.Context) []model.Order {
	return Load(ctx, r.Store, KeyOrders, []model.Order{})
}

// GetByID returns the order with the given id.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (model.Order, bool) {
	for _, o := range r.List(ctx) {
		if o.ID == id {
			return o, true
		}
	}
	return model.Order{}, false
}

// SessionOrderIDs returns the ids of orders placed from a session,
// most recent first.
func (r *OrderRepository) SessionOrderIDs(ctx context.Context, sessionID string) []string {
	return Load(ctx, r.Store, SessionKey(sessionID, KeyOrderIDs), []string{})
}

// Update applies fn to the order history and saves the result.
func (r *OrderRepository) Update(ctx context.Context, fn func([]model.Order) ([]model.Order, error)) ([]model.Order, error) {
	unlock := r.Store.Lock(KeyOrders)
	defer unlock()

	next, err := fn(r.List(ctx))
	if err != nil {
		return nil, err
	}
	r.Store.Save(ctx, KeyOrders, next)
	return next, nil
}

// PlaceFromCart builds an order from the session's cart, prepends it to the
// history, records it against the session and empties the cart. All
// entries are written in one SetMany.
func (r *OrderRepository) PlaceFromCart(
	ctx context.Context,
	sessionID string,
	build func(cart []model.CartItem, orders []model.Order) (model.Order, error),
) (model.Order, error) {
	cartKey := SessionKey(sessionID, KeyCart)
	idsKey := SessionKey(sessionID, KeyOrderIDs)
	unlock := r.Store.Lock(cartKey, idsKey, KeyOrders)
	defer unlock()

	orders := r.List(ctx)
	order, err := build(r.Carts.Get(ctx, sessionID), orders)
	if err != nil {
		return model.Order{}, err
	}

	next := make([]model.Order, 0, len(orders)+1)
	next = append(next, order)
	next = append(next, orders...)

	ids := append([]string{order.ID}, r.SessionOrderIDs(ctx, sessionID)...)

	r.Store.SaveAll(ctx, map[string]any{
		KeyOrders: next,
		idsKey:    ids,
		cartKey:   []model.CartItem{},
	})
	return order, nil
}
