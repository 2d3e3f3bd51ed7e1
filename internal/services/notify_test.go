package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
)

func sampleOrder() model.Order {
	return model.Order{
		ID:           "MELA-7K2Q9Z",
		CustomerName: "Rahim",
		Phone:        "01711000000",
		Address:      "Mirpur, Dhaka",
		Items: []model.CartItem{
			{ID: "1", Name: "Classic Panjabi", Price: 1200, Quantity: 2, SelectedSize: "M", SelectedColor: "White"},
			{ID: "3", Name: "Wall Clock", Price: 800.5, Quantity: 1},
		},
		Subtotal:      3200.5,
		DeliveryArea:  model.DeliveryInside,
		DeliveryFee:   70,
		Total:         3270.5,
		PaymentMethod: model.PaymentBKash,
		TrxID:         "9XK2L1",
		Status:        model.OrderStatusPending,
		CreatedAt:     time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestFormatOrderSummary(t *testing.T) {
	s := FormatOrderSummary("Mela Shop", sampleOrder())

	for _, want := range []string{
		"*New order (Mela Shop)*",
		"Order ID: MELA-7K2Q9Z",
		"Name: Rahim",
		"Phone: 01711000000",
		"Address: Mirpur, Dhaka",
		"- *Classic Panjabi*\n  Qty: 2 x ৳1200\n  Size: M\n  Color: White\n",
		"- *Wall Clock*\n  Qty: 1 x ৳800.5\n",
		"Method: bKash (full payment)",
		"Transaction ID: 9XK2L1",
		"Subtotal: ৳3200.5",
		"Delivery charge: ৳70",
		"*Total: ৳3270.5*",
	} {
		assert.Contains(t, s, want)
	}
	assert.NotContains(t, s, "Wall Clock*\n  Qty: 1 x ৳800.5\n  Size")
}

func TestFormatOrderSummary_CODHasNoTrx(t *testing.T) {
	o := sampleOrder()
	o.PaymentMethod = model.PaymentCOD
	o.TrxID = ""
	s := FormatOrderSummary("Mela Shop", o)
	assert.Contains(t, s, "Method: Cash on delivery")
	assert.NotContains(t, s, "Transaction ID")
}

func TestMultiNotifier_JoinsErrors(t *testing.T) {
	errA := errors.New("mail down")
	ok := &recordingNotifier{}
	bad := &recordingNotifier{err: errA}

	err := MultiNotifier{ok, nil, bad}.NotifyOrder(context.Background(), sampleOrder(), "x")
	assert.ErrorIs(t, err, errA)
	assert.Len(t, ok.orders, 1)
	assert.Len(t, bad.orders, 1)

	assert.NoError(t, MultiNotifier{ok}.NotifyOrder(context.Background(), sampleOrder(), "x"))
}

type fakeSender struct {
	to, subject, text string
}

func (f *fakeSender) SendOrderEmail(_ context.Context, to, subject, text string) error {
	f.to, f.subject, f.text = to, subject, text
	return nil
}

func TestMailNotifier(t *testing.T) {
	sender := &fakeSender{}
	n := NewMailNotifier(sender, "shop@example.com")

	require.NoError(t, n.NotifyOrder(context.Background(), sampleOrder(), "summary"))
	assert.Equal(t, "shop@example.com", sender.to)
	assert.Contains(t, sender.subject, "MELA-7K2Q9Z")
	assert.Equal(t, "summary", sender.text)
}

func TestOrderFeed_Broadcast(t *testing.T) {
	feed := NewOrderFeed(quietLogger())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = feed.Serve(w, r)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return feed.Clients() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, feed.NotifyOrder(context.Background(), sampleOrder(), ""))

	var ev FeedEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, "order.created", ev.Type)
	assert.Equal(t, "MELA-7K2Q9Z", ev.Order.ID)

	conn.Close()
	require.Eventually(t, func() bool { return feed.Clients() == 0 }, time.Second, 5*time.Millisecond)
}

func TestWriteOrdersWorkbook(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersWorkbook(&buf, []model.Order{sampleOrder()}))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, f.Sheets, 2)

	orders := f.Sheets[0]
	require.Len(t, orders.Rows, 2)
	assert.Equal(t, "Order ID", orders.Rows[0].Cells[0].Value)
	assert.Equal(t, "MELA-7K2Q9Z", orders.Rows[1].Cells[0].Value)
	assert.Equal(t, "3", orders.Rows[1].Cells[5].Value)

	items := f.Sheets[1]
	assert.Len(t, items.Rows, 3)
}

func TestWriteProductsWorkbook(t *testing.T) {
	products := testProducts()
	products[0].Image = "data:image/png;base64,AAAA"

	var buf bytes.Buffer
	require.NoError(t, WriteProductsWorkbook(&buf, products))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet := f.Sheets[0]
	require.Len(t, sheet.Rows, 4)
	assert.Equal(t, "Classic Panjabi", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "M,L", sheet.Rows[1].Cells[5].Value)
	assert.Equal(t, "data:image/png;base64,...", sheet.Rows[1].Cells[7].Value)
}
