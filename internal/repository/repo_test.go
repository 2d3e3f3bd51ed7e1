package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

func newTestStore() *Store {
	return NewStore(NewMemoryKV(), quietLogger())
}

func TestProductRepository_SeedUntilSaved(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(newTestStore())

	list := repo.List(ctx)
	require.Len(t, list, 1)

	_, err := repo.Update(ctx, func(p []model.Product) ([]model.Product, error) {
		return []model.Product{}, nil
	})
	require.NoError(t, err)
	assert.Empty(t, repo.List(ctx))

	_, ok := repo.GetByID(ctx, "1")
	assert.False(t, ok)
}

func TestProductRepository_UpdateErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(newTestStore())
	boom := errors.New("boom")

	_, err := repo.Update(ctx, func(p []model.Product) ([]model.Product, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Len(t, repo.List(ctx), 1)
}

func TestCartRepository_SessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewCartRepository(newTestStore())

	_, err := repo.Update(ctx, "a", func(items []model.CartItem) ([]model.CartItem, error) {
		return append(items, model.CartItem{ID: "1", Quantity: 2}), nil
	})
	require.NoError(t, err)

	assert.Len(t, repo.Get(ctx, "a"), 1)
	assert.Empty(t, repo.Get(ctx, "b"))

	repo.Clear(ctx, "a")
	assert.Empty(t, repo.Get(ctx, "a"))
}

func TestOrderRepository_PlaceFromCartPrependsAndClears(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	carts := NewCartRepository(s)
	orders := NewOrderRepository(s, carts)

	_, err := orders.Update(ctx, func([]model.Order) ([]model.Order, error) {
		return []model.Order{{ID: "MELA-OLD001"}}, nil
	})
	require.NoError(t, err)
	_, err = carts.Update(ctx, "sess", func([]model.CartItem) ([]model.CartItem, error) {
		return []model.CartItem{{ID: "1", Price: 10, Quantity: 2}}, nil
	})
	require.NoError(t, err)

	placed, err := orders.PlaceFromCart(ctx, "sess", func(cart []model.CartItem, existing []model.Order) (model.Order, error) {
		assert.Len(t, existing, 1)
		return model.Order{ID: "MELA-NEW001", Items: cart}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "MELA-NEW001", placed.ID)

	list := orders.List(ctx)
	require.Len(t, list, 2)
	assert.Equal(t, "MELA-NEW001", list[0].ID)
	assert.Equal(t, "MELA-OLD001", list[1].ID)
	assert.Empty(t, carts.Get(ctx, "sess"))
	assert.Equal(t, []string{"MELA-NEW001"}, orders.SessionOrderIDs(ctx, "sess"))
	assert.Empty(t, orders.SessionOrderIDs(ctx, "other"))
}

func TestOrderRepository_PlaceFromCartBuildErrorKeepsState(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	carts := NewCartRepository(s)
	orders := NewOrderRepository(s, carts)
	_, _ = carts.Update(ctx, "sess", func([]model.CartItem) ([]model.CartItem, error) {
		return []model.CartItem{{ID: "1", Quantity: 1}}, nil
	})

	_, err := orders.PlaceFromCart(ctx, "sess", func([]model.CartItem, []model.Order) (model.Order, error) {
		return model.Order{}, errors.New("rejected")
	})
	assert.Error(t, err)
	assert.Len(t, carts.Get(ctx, "sess"), 1)
	assert.Empty(t, orders.List(ctx))
}

func TestSettingsRepository_LogoDefaultAndRaw(t *testing.T) {
	ctx := context.Background()
	s := newTestStore()
	repo := NewSettingsRepository(s, "")
	assert.Equal(t, DefaultLogo, repo.Logo(ctx))

	repo.SetLogo(ctx, "data:image/png;base64,AAAA")
	assert.Equal(t, "data:image/png;base64,AAAA", repo.Logo(ctx))

	raw, ok, err := s.KV.Get(ctx, KeyLogo)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AAAA", raw)
}

func TestDraftRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewDraftRepository(newTestStore())

	_, ok := repo.Get(ctx, "s")
	assert.False(t, ok)
	_, err := repo.Update(ctx, "s", func(d model.ProductDraft) (model.ProductDraft, error) { return d, nil })
	assert.ErrorIs(t, err, ErrDraftNotFound)

	repo.Put(ctx, "s", model.ProductDraft{Name: "Saree"})
	d, err := repo.Update(ctx, "s", func(d model.ProductDraft) (model.ProductDraft, error) {
		d.Images = append(d.Images, "img")
		return d, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"img"}, d.Images)

	repo.Delete(ctx, "s")
	_, ok = repo.Get(ctx, "s")
	assert.False(t, ok)
}

func TestProfileRepository_DefaultsToEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository(newTestStore())
	assert.True(t, repo.Get(ctx, "s").IsEmpty())

	repo.Save(ctx, "s", model.UserProfile{Phone: "01700000000"})
	assert.Equal(t, "01700000000", repo.Get(ctx, "s").Phone)
}
