package model

// UserProfile caches the shopper's contact details to prefill checkout.
type UserProfile struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// IsEmpty reports whether no field has been filled in.
func (p UserProfile) IsEmpty() bool {
	return p.Name == "" && p.Phone == "" && p.Address == ""
}

// ShopSettings is the public storefront configuration.
type ShopSettings struct {
	StoreName     string                   `json:"storeName"`
	Logo          string                   `json:"logo"`
	WhatsApp      string                   `json:"whatsapp"`
	OfficialEmail string                   `json:"officialEmail"`
	BKashNumber   string                   `json:"bkashNumber"`
	FacebookPage  string                   `json:"facebookPage"`
	DeliveryFees  map[DeliveryArea]float64 `json:"deliveryFees"`
	Categories    []string                 `json:"categories"`
}
