package repository

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

// failingKV rejects every call.
type failingKV struct{}

var errBoom = errors.New("quota exceeded")

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, errBoom }
func (failingKV) Set(context.Context, string, string) error { return errBoom }
func (failingKV) SetMany(context.Context, map[string]string) error { return errBoom }
func (failingKV) Delete(context.Context, string) error { return errBoom }

func TestLoad_MissingKeyReturnsDefault(t *testing.T) {
	s := NewStore(NewMemoryKV(), quietLogger())
	got := Load(context.Background(), s, KeyOrders, []model.Order{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoad_CorruptEntryReturnsDefault(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, KeyProducts, "{not json"))
	s := NewStore(kv, quietLogger())

	got := Load(ctx, s, KeyProducts, SeedProducts())
	require.Len(t, got, 1)
	assert.Equal(t, "Classic Panjabi", got[0].Name)
}

func TestLoad_BackendErrorReturnsDefault(t *testing.T) {
	s := NewStore(failingKV{}, quietLogger())
	got := Load(context.Background(), s, KeyProfile, model.UserProfile{Name: "fallback"})
	assert.Equal(t, "fallback", got.Name)
	assert.Equal(t, "dflt", s.LoadRaw(context.Background(), KeyLogo, "dflt"))
}

func TestSave_FailuresAreSwallowed(t *testing.T) {
	s := NewStore(failingKV{}, quietLogger())
	ctx := context.Background()
	assert.NotPanics(t, func() {
		s.Save(ctx, KeyCart, []model.CartItem{{ID: "1", Quantity: 1}})
		s.SaveAll(ctx, map[string]any{KeyCart: []model.CartItem{}})
		s.Delete(ctx, KeyCart)
	})
}

func TestSaveAndLoad_RoundTripThroughMemory(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryKV(), quietLogger())
	s.Save(ctx, KeyProfile, model.UserProfile{Name: "Rahim", Phone: "017", Address: "Dhaka"})

	got := Load(ctx, s, KeyProfile, model.UserProfile{})
	assert.Equal(t, model.UserProfile{Name: "Rahim", Phone: "017", Address: "Dhaka"}, got)
}

func TestSaveAll_WritesEveryKey(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := NewStore(kv, quietLogger())
	s.SaveAll(ctx, map[string]any{"a": 1, "b": []string{"x"}})

	a, ok, _ := kv.Get(ctx, "a")
	assert.True(t, ok)
	assert.Equal(t, "1", a)
	b, ok, _ := kv.Get(ctx, "b")
	assert.True(t, ok)
	assert.Equal(t, `["x"]`, b)
}

func TestLock_SerialisesUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewStore(NewMemoryKV(), quietLogger())
	carts := NewCartRepository(s)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := carts.Update(ctx, "sess", func(items []model.CartItem) ([]model.CartItem, error) {
				if len(items) == 0 {
					return []model.CartItem{{ID: "1", Quantity: 1}}, nil
				}
				items[0].Quantity++
				return items, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got := carts.Get(ctx, "sess")
	require.Len(t, got, 1)
	assert.Equal(t, 50, got[0].Quantity)
}

func TestLock_DuplicateKeysDoNotDeadlock(t *testing.T) {
	s := NewStore(NewMemoryKV(), quietLogger())
	unlock := s.Lock("a", "a", "b")
	unlock()
	unlock = s.Lock("b", "a")
	unlock()
}
