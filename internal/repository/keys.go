package repository

// Keys of the persisted entries.
const (
	KeyProducts = "products"
	KeyCart     = "cart"
	KeyOrders   = "orders"
	KeyLogo     = "logo"
	KeyProfile  = "user_profile"
	KeyDraft    = "product_draft"
	KeyOrderIDs = "order_ids"
)

// SessionKey namespaces a per-shopper entry.
func SessionKey(sessionID, key string) string {
	return "session:" + sessionID + ":" + key
}
