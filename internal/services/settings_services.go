package services

import (
	"context"
	"strings"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
)

// ShopInfo is the static contact data shown on the storefront.
type ShopInfo struct {
	StoreName     string
	WhatsApp      string
	OfficialEmail string
	BKashNumber   string
	FacebookPage  string
}

type SettingsService struct {
	Repo *repository.SettingsRepository
	Info ShopInfo
	Fees DeliveryFees
}

func NewSettingsService(r *repository.SettingsRepository, info ShopInfo, fees DeliveryFees) *SettingsService {
	if fees == nil {
		fees = DefaultDeliveryFees()
	}
	return &SettingsService{Repo: r, Info: info, Fees: fees}
}

// Settings assembles the public storefront settings.
func (s *SettingsService) Settings(ctx context.Context) *model.ShopSettings {
	fees := make(map[model.DeliveryArea]float64, len(s.Fees))
	for k, v := range s.Fees {
		fees[k] = v
	}
	return &model.ShopSettings{
		StoreName:     s.Info.StoreName,
		Logo:          s.Repo.Logo(ctx),
		WhatsApp:      MaskPhone(s.Info.WhatsApp),
		OfficialEmail: s.Info.OfficialEmail,
		BKashNumber:   s.Info.BKashNumber,
		FacebookPage:  s.Info.FacebookPage,
		DeliveryFees:  fees,
		Categories:    Categories(),
	}
}

func (s *SettingsService) Logo(ctx context.Context) string {
	return s.Repo.Logo(ctx)
}

// SetLogo stores a logo URL or data URL.
func (s *SettingsService) SetLogo(ctx context.Context, logo string) error {
	logo = strings.TrimSpace(logo)
	if logo == "" {
		return invalid("logo", "logo is required")
	}
	s.Repo.SetLogo(ctx, logo)
	return nil
}

// MaskPhone hides the middle of an international number, e.g.
// 8801981500986 becomes +880 19******86. Short input is returned as is.
func MaskPhone(phone string) string {
	digits := []rune(phone)
	if len(digits) < 10 {
		return phone
	}
	code, body := digits[:3], digits[3:]
	return "+" + string(code) + " " + string(body[:2]) + strings.Repeat("*", len(body)-4) + string(body[len(body)-2:])
}
