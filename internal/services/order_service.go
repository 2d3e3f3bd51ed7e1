package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
)

var tracer = otel.Tracer("github.com/MelaShop/Mela-Shop-bd/internal/services")

// DeliveryFees maps a delivery area to its flat fee.
type DeliveryFees map[model.DeliveryArea]float64

// DefaultDeliveryFees are the inside/outside city rates.
func DefaultDeliveryFees() DeliveryFees {
	return DeliveryFees{
		model.DeliveryInside:  70,
		model.DeliveryOutside: 130,
	}
}

func (f DeliveryFees) Fee(area model.DeliveryArea) (float64, error) {
	fee, ok := f[area]
	if !ok {
		return 0, ErrInvalidDeliveryArea
	}
	return fee, nil
}

// ComputeTotal returns the delivery fee and grand total for a subtotal.
func (f DeliveryFees) ComputeTotal(subtotal float64, area model.DeliveryArea) (fee, total float64, err error) {
	fee, err = f.Fee(area)
	if err != nil {
		return 0, 0, err
	}
	sum := decimal.NewFromFloat(subtotal).Add(decimal.NewFromFloat(fee))
	return fee, sum.InexactFloat64(), nil
}

// ValidateCheckout checks the submitted form. The cart itself is checked
// when the order is built.
func ValidateCheckout(form model.CheckoutForm, fees DeliveryFees) error {
	if strings.TrimSpace(form.Name) == "" {
		return invalid("name", "name is required")
	}
	if strings.TrimSpace(form.Phone) == "" {
		return invalid("phone", "phone is required")
	}
	if strings.TrimSpace(form.Address) == "" {
		return invalid("address", "address is required")
	}
	if !form.PaymentMethod.Valid() {
		return ErrInvalidPayment
	}
	if form.PaymentMethod.RequiresTrxID() && strings.TrimSpace(form.TrxID) == "" {
		return invalid("trxId", "transaction id is required for "+string(form.PaymentMethod))
	}
	if _, err := fees.Fee(form.DeliveryArea); err != nil {
		return err
	}
	return nil
}

const (
	orderIDPrefix   = "MELA-"
	orderIDLength   = 6
	orderIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	orderIDAttempts = 32
)

// NewOrderID returns MELA- followed by six random base-36 characters.
// Ids for which exists reports true are drawn again.
func NewOrderID(exists func(string) bool) (string, error) {
	base := big.NewInt(int64(len(orderIDAlphabet)))
	buf := make([]byte, orderIDLength)
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		for i := range buf {
			n, err := rand.Int(rand.Reader, base)
			if err != nil {
				return "", fmt.Errorf("order id: %w", err)
			}
			buf[i] = orderIDAlphabet[n.Int64()]
		}
		id := orderIDPrefix + string(buf)
		if exists == nil || !exists(id) {
			return id, nil
		}
	}
	return "", errors.New("order id: no free id found")
}

// BuildOrder snapshots cart and form into a pending order. The form is
// expected to be validated already.
func BuildOrder(id string, cart []model.CartItem, form model.CheckoutForm, fees DeliveryFees, now time.Time) (model.Order, error) {
	if len(cart) == 0 {
		return model.Order{}, ErrEmptyCart
	}
	items := make([]model.CartItem, len(cart))
	copy(items, cart)

	subtotal := Subtotal(items)
	fee, total, err := fees.ComputeTotal(subtotal, form.DeliveryArea)
	if err != nil {
		return model.Order{}, err
	}
	return model.Order{
		ID:            id,
		CustomerName:  strings.TrimSpace(form.Name),
		Phone:         strings.TrimSpace(form.Phone),
		Address:       strings.TrimSpace(form.Address),
		Items:         items,
		Subtotal:      subtotal,
		DeliveryArea:  form.DeliveryArea,
		DeliveryFee:   fee,
		Total:         total,
		PaymentMethod: form.PaymentMethod,
		TrxID:         strings.TrimSpace(form.TrxID),
		Status:        model.OrderStatusPending,
		CreatedAt:     now.UTC(),
	}, nil
}

// SearchCustomerOrders matches the query against order id and phone.
func SearchCustomerOrders(orders []model.Order, query string) []model.Order {
	return searchOrders(orders, query, false)
}

// SearchAdminOrders also matches the customer name.
func SearchAdminOrders(orders []model.Order, query string) []model.Order {
	return searchOrders(orders, query, true)
}

func searchOrders(orders []model.Order, query string, byName bool) []model.Order {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return orders
	}
	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if strings.Contains(strings.ToLower(o.ID), q) ||
			strings.Contains(strings.ToLower(o.Phone), q) ||
			(byName && strings.Contains(strings.ToLower(o.CustomerName), q)) {
			out = append(out, o)
		}
	}
	return out
}

// PlacedOrder is returned to the shopper after checkout.
type PlacedOrder struct {
	Order     model.Order `json:"order"`
	Summary   string      `json:"summary"`
	NotifyURL string      `json:"notifyUrl,omitempty"`
	Next      string      `json:"next"`
}

type OrderService struct {
	Repo      *repository.OrderRepository
	Fees      DeliveryFees
	Notifier  OrderNotifier
	Linker    MessageLinker
	StoreName string
	Logger    echo.Logger
	Now       func() time.Time
}

func NewOrderService(r *repository.OrderRepository, fees DeliveryFees, n OrderNotifier, linker MessageLinker, storeName string, logger echo.Logger) *OrderService {
	if fees == nil {
		fees = DefaultDeliveryFees()
	}
	if logger == nil {
		logger = log.New("orders")
	}
	return &OrderService{
		Repo:      r,
		Fees:      fees,
		Notifier:  n,
		Linker:    linker,
		StoreName: storeName,
		Logger:    logger,
		Now:       time.Now,
	}
}

// PlaceOrder turns the session's cart into an order. The order is
// prepended to the history and the cart emptied in a single write; the
// summary is then handed to the notifiers.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionID string, form model.CheckoutForm) (*PlacedOrder, error) {
	ctx, span := tracer.Start(ctx, "OrderService.PlaceOrder")
	defer span.End()

	if err := ValidateCheckout(form, s.Fees); err != nil {
		return nil, err
	}

	order, err := s.Repo.PlaceFromCart(ctx, sessionID, func(cart []model.CartItem, orders []model.Order) (model.Order, error) {
		taken := make(map[string]struct{}, len(orders))
		for _, o := range orders {
			taken[o.ID] = struct{}{}
		}
		id, err := NewOrderID(func(id string) bool {
			_, ok := taken[id]
			return ok
		})
		if err != nil {
			return model.Order{}, err
		}
		return BuildOrder(id, cart, form, s.Fees, s.Now())
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Int("order.items", len(order.Items)),
		attribute.String("order.payment", string(order.PaymentMethod)),
	)
	s.Logger.Infoj(log.JSON{"op": "place_order", "order_id": order.ID, "total": order.Total, "payment": order.PaymentMethod})

	placed := &PlacedOrder{
		Order:   order,
		Summary: FormatOrderSummary(s.StoreName, order),
		Next:    "orders",
	}
	if s.Linker != nil {
		placed.NotifyURL = s.Linker.MessageLink(placed.Summary)
	}
	if s.Notifier != nil {
		if err := s.Notifier.NotifyOrder(ctx, order, placed.Summary); err != nil {
			s.Logger.Warnj(log.JSON{"op": "notify_order", "order_id": order.ID, "error": err.Error()})
		}
	}
	return placed, nil
}

func (s *OrderService) List(ctx context.Context) []model.Order {
	return s.Repo.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id string) (*model.Order, error) {
	o, ok := s.Repo.GetByID(ctx, id)
	if !ok {
		return nil, ErrOrderNotFound
	}
	return &o, nil
}

// CustomerOrders lists the orders placed from this session, filtered by query.
func (s *OrderService) CustomerOrders(ctx context.Context, sessionID, query string) []model.Order {
	mine := make(map[string]struct{})
	for _, id := range s.Repo.SessionOrderIDs(ctx, sessionID) {
		mine[id] = struct{}{}
	}
	own := make([]model.Order, 0, len(mine))
	for _, o := range s.Repo.List(ctx) {
		if _, ok := mine[o.ID]; ok {
			own = append(own, o)
		}
	}
	return SearchCustomerOrders(own, query)
}

// AdminOrders lists every order, filtered by query.
func (s *OrderService) AdminOrders(ctx context.Context, query string) []model.Order {
	return SearchAdminOrders(s.Repo.List(ctx), query)
}

// UpdateStatus moves an order along its lifecycle.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, to model.OrderStatus) (*model.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.UpdateStatus")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", orderID), attribute.String("order.status", string(to)))

	var updated model.Order
	_, err := s.Repo.Update(ctx, func(orders []model.Order) ([]model.Order, error) {
		for i := range orders {
			if orders[i].ID != orderID {
				continue
			}
			from := orders[i].Status
			if !CanTransition(from, to) {
				return nil, &TransitionError{OrderID: orderID, From: from, To: to}
			}
			orders[i].Status = to
			updated = orders[i]
			return orders, nil
		}
		return nil, ErrOrderNotFound
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.Logger.Infoj(log.JSON{"op": "update_status", "order_id": orderID, "status": to})
	return &updated, nil
}

// DeleteOrder removes an order from the history.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID string) error {
	_, err := s.Repo.Update(ctx, func(orders []model.Order) ([]model.Order, error) {
		for i, o := range orders {
			if o.ID == orderID {
				out := make([]model.Order, 0, len(orders)-1)
				out = append(out, orders[:i]...)
				return append(out, orders[i+1:]...), nil
			}
		}
		return nil, ErrOrderNotFound
	})
	if err != nil {
		return err
	}
	s.Logger.Infoj(log.JSON{"op": "delete_order", "order_id": orderID})
	return nil
}
