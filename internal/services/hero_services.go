package services

import (
	"context"
	"sync"
	"time"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

// DefaultHeroPeriod is how long each hero image is shown.
const DefaultHeroPeriod = 5 * time.Second

// HeroImages returns each product's primary image, or fallback when the
// catalog is empty.
func HeroImages(products []model.Product, fallback string) []string {
	if len(products) == 0 {
		return []string{fallback}
	}
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Image
	}
	return out
}

// HeroState is what the storefront banner shows right now.
type HeroState struct {
	Images  []string `json:"images"`
	Index   int      `json:"index"`
	Current string   `json:"current"`
}

// HeroRotator cycles through the banner images on a fixed period.
type HeroRotator struct {
	Period time.Duration
	// Refresh, when set, reloads the images before every step.
	Refresh func(ctx context.Context) []string

	mu     sync.RWMutex
	images []string
	index  int
}

func NewHeroRotator(period time.Duration, refresh func(ctx context.Context) []string) *HeroRotator {
	if period <= 0 {
		period = DefaultHeroPeriod
	}
	return &HeroRotator{Period: period, Refresh: refresh}
}

// Reset swaps the image list. The index restarts when it no longer fits.
func (h *HeroRotator) Reset(images []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.images = append([]string(nil), images...)
	if h.index >= len(h.images) {
		h.index = 0
	}
}

// Advance moves to the next image. A single image never rotates.
func (h *HeroRotator) Advance() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.images) > 1 {
		h.index = (h.index + 1) % len(h.images)
	}
}

func (h *HeroRotator) Index() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.index
}

func (h *HeroRotator) State() HeroState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	st := HeroState{Images: append([]string{}, h.images...), Index: h.index}
	if h.index < len(h.images) {
		st.Current = h.images[h.index]
	}
	return st
}

// Run steps the rotator every Period until ctx is done.
func (h *HeroRotator) Run(ctx context.Context) {
	if h.Refresh != nil {
		h.Reset(h.Refresh(ctx))
	}
	t := time.NewTicker(h.Period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if h.Refresh != nil {
				h.Reset(h.Refresh(ctx))
			}
			h.Advance()
		}
	}
}
