package model

import (
	"encoding/json"
	"strings"
)

// CategoryAll is the browse sentinel that matches every product.
const CategoryAll = "All"

// Categories is the fixed set a product may belong to, in display order.
var Categories = []string{"Mens", "Womens", "Kids", "Home Decor", "Accessories", "Electronics"}

// DefaultCategory is used when a draft is saved without a category.
const DefaultCategory = "Mens"

// IsCategory reports whether c is one of the fixed product categories.
func IsCategory(c string) bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// Product is a catalog entry. The first entry of Images doubles as Image.
type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
}

// ImageAt returns the image the shopper was viewing at index i,
// falling back to the primary image.
func (p Product) ImageAt(i int) string {
	if i >= 0 && i < len(p.Images) && p.Images[i] != "" {
		return p.Images[i]
	}
	return p.Image
}

// ProductDraft is an in-progress admin edit. An empty ID means a new product.
type ProductDraft struct {
	ID          string    `json:"id,omitempty"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	Images      []string  `json:"images"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	Sizes       LabelList `json:"sizes"`
	Colors      LabelList `json:"colors"`
}

// DraftFromProduct starts an edit of an existing product.
func DraftFromProduct(p Product) ProductDraft {
	return ProductDraft{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		Images:      append([]string(nil), p.Images...),
		Category:    p.Category,
		Stock:       p.Stock,
		Sizes:       append(LabelList(nil), p.Sizes...),
		Colors:      append(LabelList(nil), p.Colors...),
	}
}

// LabelList holds size or color labels. On input it accepts either a JSON
// list or a single comma-separated string such as "M, L,XL".
type LabelList []string

func (l *LabelList) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*l = SplitLabels(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

// SplitLabels splits on commas, trims each token and drops empty ones.
func SplitLabels(s string) LabelList {
	out := LabelList{}
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
