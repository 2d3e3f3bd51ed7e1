package services

import (
	"io"

	"github.com/labstack/gommon/log"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
)

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func newTestStore() *repository.Store {
	return repository.NewStore(repository.NewMemoryKV(), quietLogger())
}

func line(id string, price float64, qty int, size, color string) model.CartItem {
	return model.CartItem{ID: id, Name: "Item " + id, Price: price, Quantity: qty, SelectedSize: size, SelectedColor: color}
}

func testProducts() []model.Product {
	return []model.Product{
		{ID: "1", Name: "Classic Panjabi", Description: "Cotton panjabi for Eid", Price: 1200, Image: "a.jpg", Images: []string{"a.jpg", "b.jpg"}, Category: "Mens", Stock: 10, Sizes: []string{"M", "L"}, Colors: []string{"White"}},
		{ID: "2", Name: "Silk Saree", Description: "Red silk saree", Price: 3500, Image: "s.jpg", Images: []string{"s.jpg"}, Category: "Womens", Stock: 5},
		{ID: "3", Name: "Wall Clock", Description: "Wooden clock", Price: 800, Image: "c.jpg", Category: "Home Decor", Stock: 2},
	}
}
