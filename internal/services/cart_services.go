package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
)

// AddItem merges item into cart. A line with the same identity key gets
// its quantity increased; otherwise item is appended. cart is not modified.
func AddItem(cart []model.CartItem, item model.CartItem) []model.CartItem {
	out := make([]model.CartItem, len(cart), len(cart)+1)
	copy(out, cart)

	key := item.Key()
	for i := range out {
		if out[i].Key() == key {
			out[i].Quantity += item.Quantity
			return out
		}
	}
	return append(out, item)
}

// UpdateQuantity shifts the quantity of the line identified by key by delta,
// flooring at zero. Lines that reach zero are dropped. cart is not modified.
func UpdateQuantity(cart []model.CartItem, key model.LineKey, delta int) []model.CartItem {
	out := make([]model.CartItem, 0, len(cart))
	for _, it := range cart {
		if it.Key() == key {
			it.Quantity = max(0, it.Quantity+delta)
		}
		if it.Quantity > 0 {
			out = append(out, it)
		}
	}
	return out
}

// Subtotal sums price × quantity using each line's snapshot price.
func Subtotal(cart []model.CartItem) float64 {
	sum := decimal.Zero
	for _, it := range cart {
		line := decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity)))
		sum = sum.Add(line)
	}
	return sum.InexactFloat64()
}

func containsKey(cart []model.CartItem, key model.LineKey) bool {
	for _, it := range cart {
		if it.Key() == key {
			return true
		}
	}
	return false
}

// CartService owns the per-session cart.
type CartService struct {
	Repo     *repository.CartRepository
	Products *repository.ProductRepository
}

func NewCartService(r *repository.CartRepository, pr *repository.ProductRepository) *CartService {
	return &CartService{Repo: r, Products: pr}
}

// Get returns the cart (items + subtotal)
func (s *CartService) Get(ctx context.Context, sessionID string) *model.CartResponse {
	return summarize(s.Repo.Get(ctx, sessionID))
}

func summarize(items []model.CartItem) *model.CartResponse {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}
	return &model.CartResponse{Items: items, Subtotal: Subtotal(items), Count: count}
}

// Add merges a prepared line into the cart. The returned flag tells the
// client whether to open the cart view; silent adds (buy now) do not.
func (s *CartService) Add(ctx context.Context, sessionID string, item model.CartItem, silent bool) (*model.CartResponse, bool, error) {
	if item.Quantity < 1 {
		return nil, false, ErrInvalidQuantity
	}
	if item.ID == "" {
		return nil, false, invalid("id", "product id is required")
	}
	items, err := s.Repo.Update(ctx, sessionID, func(cart []model.CartItem) ([]model.CartItem, error) {
		return AddItem(cart, item), nil
	})
	if err != nil {
		return nil, false, err
	}
	return summarize(items), !silent, nil
}

// ProductSelection is what the shopper picked on a product page. Image,
// when set, must be one of the product's images and wins over ImageIndex.
type ProductSelection struct {
	Quantity   int    `json:"quantity"`
	Size       string `json:"selectedSize"`
	Color      string `json:"selectedColor"`
	Image      string `json:"selectedImage"`
	ImageIndex int    `json:"imageIndex"`
	Silent     bool   `json:"silent"`
}

// AddProduct snapshots the catalog product into a cart line and adds it.
// Name, price and image always come from the catalog.
func (s *CartService) AddProduct(ctx context.Context, sessionID, productID string, sel ProductSelection) (*model.CartResponse, bool, error) {
	p, ok := s.Products.GetByID(ctx, productID)
	if !ok {
		return nil, false, ErrProductNotFound
	}
	if sel.Quantity == 0 {
		sel.Quantity = 1
	}
	if sel.Size != "" && !contains(p.Sizes, sel.Size) {
		return nil, false, ErrInvalidOption
	}
	if sel.Color != "" && !contains(p.Colors, sel.Color) {
		return nil, false, ErrInvalidOption
	}
	image := p.ImageAt(sel.ImageIndex)
	if sel.Image != "" {
		if sel.Image != p.Image && !contains(p.Images, sel.Image) {
			return nil, false, ErrInvalidOption
		}
		image = sel.Image
	}
	item := model.CartItem{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Image:         p.Image,
		Quantity:      sel.Quantity,
		SelectedSize:  sel.Size,
		SelectedColor: sel.Color,
		SelectedImage: image,
	}
	return s.Add(ctx, sessionID, item, sel.Silent)
}

// UpdateQuantity applies delta to the line identified by key.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, key model.LineKey, delta int) (*model.CartResponse, error) {
	items, err := s.Repo.Update(ctx, sessionID, func(cart []model.CartItem) ([]model.CartItem, error) {
		if !containsKey(cart, key) {
			return nil, ErrCartItemNotFound
		}
		return UpdateQuantity(cart, key, delta), nil
	})
	if err != nil {
		return nil, err
	}
	return summarize(items), nil
}

// Clear clears the cart (removes items)
func (s *CartService) Clear(ctx context.Context, sessionID string) {
	s.Repo.Clear(ctx, sessionID)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
