package model

// CartItem is a cart line. Name, Price and Image are copied from the
// product when the line is added and are never re-synced to the catalog.
type CartItem struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
	SelectedSize  string  `json:"selectedSize,omitempty"`
	SelectedColor string  `json:"selectedColor,omitempty"`
	SelectedImage string  `json:"selectedImage,omitempty"`
}

// LineKey identifies a cart line. Two lines with the same key are merged.
type LineKey struct {
	ID    string `json:"id"`
	Size  string `json:"selectedSize,omitempty"`
	Color string `json:"selectedColor,omitempty"`
	Image string `json:"selectedImage,omitempty"`
}

// Key returns the identity key of the line.
func (c CartItem) Key() LineKey {
	return LineKey{ID: c.ID, Size: c.SelectedSize, Color: c.SelectedColor, Image: c.SelectedImage}
}

// CartResponse is returned when calling GET /cart
type CartResponse struct {
	Items    []CartItem `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Count    int        `json:"count"`
}
