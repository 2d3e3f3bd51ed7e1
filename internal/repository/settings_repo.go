package repository

import "context"

// SettingsRepository holds shop-wide settings. The logo is stored raw.
type SettingsRepository struct {
	Store       *Store
	DefaultLogo string
}

func NewSettingsRepository(s *Store, defaultLogo string) *SettingsRepository {
	if defaultLogo == "" {
		defaultLogo = DefaultLogo
	}
	return &SettingsRepository{Store: s, DefaultLogo: defaultLogo}
}

func (r *SettingsRepository) Logo(ctx context.Context) string {
	return r.Store.LoadRaw(ctx, KeyLogo, r.DefaultLogo)
}

func (r *SettingsRepository) SetLogo(ctx context.Context, logo string) {
	r.Store.SaveRaw(ctx, KeyLogo, logo)
}
