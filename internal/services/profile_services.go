package services

import (
	"context"
	"strings"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
)

type ProfileService struct {
	Repo *repository.ProfileRepository
}

func NewProfileService(r *repository.ProfileRepository) *ProfileService {
	return &ProfileService{Repo: r}
}

func (s *ProfileService) Get(ctx context.Context, sessionID string) model.UserProfile {
	return s.Repo.Get(ctx, sessionID)
}

func (s *ProfileService) Save(ctx context.Context, sessionID string, p model.UserProfile) model.UserProfile {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Address = strings.TrimSpace(p.Address)
	s.Repo.Save(ctx, sessionID, p)
	return p
}

// Prefill returns the checkout fields from the saved profile. ok is false
// when nothing was saved.
func (s *ProfileService) Prefill(ctx context.Context, sessionID string) (form model.CheckoutForm, ok bool) {
	p := s.Repo.Get(ctx, sessionID)
	if p.IsEmpty() {
		return model.CheckoutForm{}, false
	}
	return model.CheckoutForm{Name: p.Name, Phone: p.Phone, Address: p.Address}, true
}
