package repository

import (
	"context"
	"errors"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

var ErrDraftNotFound = errors.New("no product draft in progress")

// DraftRepository keeps the admin's in-progress product edit per session.
type DraftRepository struct {
	Store *Store
}

func NewDraftRepository(s *Store) *DraftRepository {
	return &DraftRepository{Store: s}
}

func (r *DraftRepository) Get(ctx context.Context, sessionID string) (model.ProductDraft, bool) {
	d := Load[*model.ProductDraft](ctx, r.Store, SessionKey(sessionID, KeyDraft), nil)
	if d == nil {
		return model.ProductDraft{}, false
	}
	return *d, true
}

func (r *DraftRepository) Put(ctx context.Context, sessionID string, d model.ProductDraft) {
	key := SessionKey(sessionID, KeyDraft)
	unlock := r.Store.Lock(key)
	defer unlock()
	r.Store.Save(ctx, key, d)
}

// Update applies fn to the current draft. It fails with ErrDraftNotFound
// when no draft was started.
func (r *DraftRepository) Update(ctx context.Context, sessionID string, fn func(model.ProductDraft) (model.ProductDraft, error)) (model.ProductDraft, error) {
	key := SessionKey(sessionID, KeyDraft)
	unlock := r.Store.Lock(key)
	defer unlock()

	d, ok := r.Get(ctx, sessionID)
	if !ok {
		return model.ProductDraft{}, ErrDraftNotFound
	}
	next, err := fn(d)
	if err != nil {
		return model.ProductDraft{}, err
	}
	r.Store.Save(ctx, key, next)
	return next, nil
}

func (r *DraftRepository) Delete(ctx context.Context, sessionID string) {
	key := SessionKey(sessionID, KeyDraft)
	unlock := r.Store.Lock(key)
	defer unlock()
	r.Store.Delete(ctx, key)
}
