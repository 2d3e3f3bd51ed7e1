package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

// OrderNotifier hands a placed order to an outbound channel.
type OrderNotifier interface {
	NotifyOrder(ctx context.Context, order model.Order, summary string) error
}

// MessageLinker builds a link that opens a chat prefilled with text.
type MessageLinker interface {
	MessageLink(text string) string
}

// MultiNotifier notifies every channel and joins their errors.
type MultiNotifier []OrderNotifier

func (m MultiNotifier) NotifyOrder(ctx context.Context, order model.Order, summary string) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.NotifyOrder(ctx, order, summary); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

const summaryRule = "------------------------------"

// FormatOrderSummary renders the plain-text order message sent to the shop.
func FormatOrderSummary(storeName string, o model.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*New order (%s)*\n", storeName)
	b.WriteString(summaryRule + "\n")
	fmt.Fprintf(&b, "Order ID: %s\n", o.ID)
	fmt.Fprintf(&b, "Name: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Phone: %s\n", o.Phone)
	fmt.Fprintf(&b, "Address: %s\n", o.Address)

	b.WriteString("\nItems:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- *%s*\n", it.Name)
		fmt.Fprintf(&b, "  Qty: %d x ৳%s\n", it.Quantity, formatMoney(it.Price))
		if it.SelectedSize != "" {
			fmt.Fprintf(&b, "  Size: %s\n", it.SelectedSize)
		}
		if it.SelectedColor != "" {
			fmt.Fprintf(&b, "  Color: %s\n", it.SelectedColor)
		}
	}

	b.WriteString("\nPayment:\n")
	fmt.Fprintf(&b, "Method: %s\n", o.PaymentMethod.Label())
	if o.TrxID != "" {
		fmt.Fprintf(&b, "Transaction ID: %s\n", o.TrxID)
	}

	b.WriteString("\nTotals:\n")
	fmt.Fprintf(&b, "Subtotal: ৳%s\n", formatMoney(o.Subtotal))
	fmt.Fprintf(&b, "Delivery charge: ৳%s\n", formatMoney(o.DeliveryFee))
	b.WriteString(summaryRule + "\n")
	fmt.Fprintf(&b, "*Total: ৳%s*", formatMoney(o.Total))

	return b.String()
}

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).String()
}
