package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportService struct {
	Orders   *repository.OrderRepository
	Products *repository.ProductRepository
}

func NewReportService(or *repository.OrderRepository, pr *repository.ProductRepository) *ReportService {
	return &ReportService{Orders: or, Products: pr}
}

func (s *ReportService) ExportOrders(ctx context.Context, w io.Writer) error {
	return WriteOrdersWorkbook(w, s.Orders.List(ctx))
}

func (s *ReportService) ExportProducts(ctx context.Context, w io.Writer) error {
	return WriteProductsWorkbook(w, s.Products.List(ctx))
}

func addHeader(sheet *xlsx.Sheet, headers ...string) {
	row := sheet.AddRow()
	for _, h := range headers {
		row.AddCell().SetString(h)
	}
}

// WriteOrdersWorkbook writes an "Orders" sheet with one row per order and
// an "Items" sheet with one row per ordered line.
func WriteOrdersWorkbook(w io.Writer, orders []model.Order) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return err
	}
	addHeader(sheet, "Order ID", "Created", "Customer", "Phone", "Address", "Items",
		"Subtotal", "Delivery fee", "Total", "Payment", "Trx ID", "Status")
	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetString(o.ID)
		row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(o.CustomerName)
		row.AddCell().SetString(o.Phone)
		row.AddCell().SetString(o.Address)
		row.AddCell().SetInt(itemCount(o.Items))
		row.AddCell().SetFloat(o.Subtotal)
		row.AddCell().SetFloat(o.DeliveryFee)
		row.AddCell().SetFloat(o.Total)
		row.AddCell().SetString(string(o.PaymentMethod))
		row.AddCell().SetString(o.TrxID)
		row.AddCell().SetString(string(o.Status))
	}

	items, err := file.AddSheet("Items")
	if err != nil {
		return err
	}
	addHeader(items, "Order ID", "Product ID", "Name", "Size", "Color", "Quantity", "Price")
	for _, o := range orders {
		for _, it := range o.Items {
			row := items.AddRow()
			row.AddCell().SetString(o.ID)
			row.AddCell().SetString(it.ID)
			row.AddCell().SetString(it.Name)
			row.AddCell().SetString(it.SelectedSize)
			row.AddCell().SetString(it.SelectedColor)
			row.AddCell().SetInt(it.Quantity)
			row.AddCell().SetFloat(it.Price)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write orders workbook: %w", err)
	}
	return nil
}

func itemCount(items []model.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

// WriteProductsWorkbook writes the catalog as a single "Products" sheet.
func WriteProductsWorkbook(w io.Writer, products []model.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}
	addHeader(sheet, "ID", "Name", "Category", "Price", "Stock", "Sizes", "Colors", "Image", "Images")
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetString(strings.Join(p.Sizes, ","))
		row.AddCell().SetString(strings.Join(p.Colors, ","))
		row.AddCell().SetString(shortRef(p.Image))
		row.AddCell().SetInt(len(p.Images))
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("write products workbook: %w", err)
	}
	return nil
}

// shortRef keeps data URLs from blowing past the cell size limit.
func shortRef(ref string) string {
	if strings.HasPrefix(ref, "data:") {
		if i := strings.IndexByte(ref, ','); i > 0 {
			return ref[:i] + ",..."
		}
	}
	return ref
}
