package model

// PaymentMethod is how the customer pays for an order.
type PaymentMethod string

const (
	PaymentCOD   PaymentMethod = "COD"
	PaymentBKash PaymentMethod = "bKash"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentBKash
}

// RequiresTrxID reports whether the method is a full prepayment that
// must carry a transaction reference.
func (m PaymentMethod) RequiresTrxID() bool {
	return m == PaymentBKash
}

// Label is the human readable payment text used in order summaries.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentBKash:
		return "bKash (full payment)"
	case PaymentCOD:
		return "Cash on delivery"
	}
	return string(m)
}

// DeliveryArea selects the flat delivery fee.
type DeliveryArea string

const (
	DeliveryInside  DeliveryArea = "inside"
	DeliveryOutside DeliveryArea = "outside"
)
