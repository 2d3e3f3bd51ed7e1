package services

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
)

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "+880 19******86", MaskPhone("8801981500986"))
	assert.Equal(t, "+017 98****44", MaskPhone("01798712944"))
	assert.Equal(t, "+123 45***90", MaskPhone("1234567890"))
	assert.Equal(t, "123456789", MaskPhone("123456789"))
	assert.Equal(t, "", MaskPhone(""))

	bn := MaskPhone("৮৮০১৯৮১৫০০৯৮৬")
	assert.Equal(t, "+৮৮০ ১৯******৮৬", bn)
	assert.True(t, utf8.ValidString(bn))
	assert.Equal(t, "০১৭৯", MaskPhone("০১৭৯"), "short by digits even when long in bytes")
}

func TestSettingsService(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSettingsRepository(newTestStore(), "default.png")
	svc := NewSettingsService(repo, ShopInfo{StoreName: "Mela Shop", WhatsApp: "8801981500986"}, nil)

	s := svc.Settings(ctx)
	assert.Equal(t, "default.png", s.Logo)
	assert.Equal(t, "+880 19******86", s.WhatsApp)
	assert.Equal(t, 70.0, s.DeliveryFees[model.DeliveryInside])
	assert.Equal(t, "All", s.Categories[0])

	require.NoError(t, svc.SetLogo(ctx, " data:image/png;base64,AAAA "))
	assert.Equal(t, "data:image/png;base64,AAAA", svc.Logo(ctx))

	var verr *ValidationError
	assert.ErrorAs(t, svc.SetLogo(ctx, " "), &verr)
}

func TestProfileService_Prefill(t *testing.T) {
	ctx := context.Background()
	svc := NewProfileService(repository.NewProfileRepository(newTestStore()))

	_, ok := svc.Prefill(ctx, "s1")
	assert.False(t, ok)

	saved := svc.Save(ctx, "s1", model.UserProfile{Phone: " 01711000000 "})
	assert.Equal(t, "01711000000", saved.Phone)

	form, ok := svc.Prefill(ctx, "s1")
	require.True(t, ok)
	assert.Equal(t, "01711000000", form.Phone)
	assert.Empty(t, form.Name)

	assert.True(t, svc.Get(ctx, "s2").IsEmpty())
}

func TestAuthService_Login(t *testing.T) {
	svc, err := NewAuthService("mela-secret", quietLogger())
	require.NoError(t, err)

	assert.NoError(t, svc.Login(context.Background(), "mela-secret"))
	assert.ErrorIs(t, svc.Login(context.Background(), "wrong"), ErrInvalidPassphrase)
	assert.ErrorIs(t, svc.Login(context.Background(), ""), ErrInvalidPassphrase)

	_, err = NewAuthService("", nil)
	assert.Error(t, err)
}
