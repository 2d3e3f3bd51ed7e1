package repository

import "github.com/MelaShop/Mela-Shop-bd/internal/model"

// DefaultLogo is shown until the admin uploads a logo.
const DefaultLogo = "https://i.ibb.co/vzR0yFp/mela-logo.png"

// SeedProducts returns the catalog used when no products have been saved.
func SeedProducts() []model.Product {
	return []model.Product{
		{
			ID:          "1",
			Name:        "Classic Panjabi",
			Description: "High-quality cotton panjabi for festive occasions. Made with premium fabric and intricate embroidery. Perfect for any traditional event or celebration.",
			Price:       1200,
			Image:       "https://images.unsplash.com/photo-1597931289177-24539cb55be4?auto=format&fit=crop&q=80&w=800",
			Images: []string{
				"https://images.unsplash.com/photo-1597931289177-24539cb55be4?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1529139513477-3235a8ad0739?auto=format&fit=crop&q=80&w=800",
			},
			Category: "Mens",
			Stock:    10,
			Sizes:    []string{"M", "L", "XL"},
			Colors:   []string{"White", "Navy Blue", "Maroon"},
		},
	}
}
