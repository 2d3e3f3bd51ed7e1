package model

import "time"

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// OrderStatuses lists the statuses in forward order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// Order is an immutable checkout record; only Status changes after creation.
type Order struct {
	ID            string        `json:"id"`
	CustomerName  string        `json:"customerName"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	Items         []CartItem    `json:"items"`
	Subtotal      float64       `json:"subtotal"`
	DeliveryArea  DeliveryArea  `json:"deliveryArea,omitempty"`
	DeliveryFee   float64       `json:"deliveryFee"`
	Total         float64       `json:"total"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	TrxID         string        `json:"trxId,omitempty"`
	Status        OrderStatus   `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// CheckoutForm is what the shopper submits at checkout.
type CheckoutForm struct {
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	Address       string        `json:"address"`
	TrxID         string        `json:"trxId"`
	DeliveryArea  DeliveryArea  `json:"deliveryArea"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}
