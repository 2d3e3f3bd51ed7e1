package services

import (
	"errors"
	"fmt"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
)

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrInvalidOption       = errors.New("option not offered for this product")
	ErrInvalidCategory     = errors.New("unknown category")
	ErrInvalidDeliveryArea = errors.New("unknown delivery area")
	ErrInvalidPayment      = errors.New("unknown payment method")
	ErrInvalidStatus       = errors.New("unknown order status")
	ErrInvalidTransition   = errors.New("order status transition not allowed")
	ErrInvalidPassphrase   = errors.New("invalid admin passphrase")
	ErrImageIndex          = errors.New("image index out of range")
	ErrNoDraft             = repository.ErrDraftNotFound
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// TransitionError reports a status change the lifecycle does not allow.
type TransitionError struct {
	OrderID string
	From    model.OrderStatus
	To      model.OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("order %s: cannot move from %s to %s", e.OrderID, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// IsNotFound reports whether err means the addressed entity does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrCartItemNotFound) ||
		errors.Is(err, ErrNoDraft)
}
