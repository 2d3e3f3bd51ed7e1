package repository

import (
	"context"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

type ProfileRepository struct {
	Store *Store
}

func NewProfileRepository(s *Store) *ProfileRepository {
	return &ProfileRepository{Store: s}
}

func (r *ProfileRepository) Get(ctx context.Context, sessionID string) model.UserProfile {
	return Load(ctx, r.Store, SessionKey(sessionID, KeyProfile), model.UserProfile{})
}

func (r *ProfileRepository) Save(ctx context.Context, sessionID string, p model.UserProfile) {
	r.Store.Save(ctx, SessionKey(sessionID, KeyProfile), p)
}
