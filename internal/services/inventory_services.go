package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	"github.com/MelaShop/Mela-Shop-bd/internal/model"
	"github.com/MelaShop/Mela-Shop-bd/internal/repository"
)

// MaxImageBytes caps a single uploaded image.
const MaxImageBytes = 5 << 20

var ErrNotImage = errors.New("file is not an image")

// SaveProduct writes draft into products. A draft with an id replaces that
// product in place; a new draft gets a millisecond timestamp id and is
// appended. products is not modified.
func SaveProduct(products []model.Product, d model.ProductDraft, now time.Time) ([]model.Product, model.Product, error) {
	if strings.TrimSpace(d.Name) == "" {
		return nil, model.Product{}, invalid("name", "name is required")
	}
	if d.Price < 0 {
		return nil, model.Product{}, invalid("price", "price cannot be negative")
	}
	if d.Stock < 0 {
		return nil, model.Product{}, invalid("stock", "stock cannot be negative")
	}
	category := d.Category
	if category == "" {
		category = model.DefaultCategory
	}
	if !model.IsCategory(category) {
		return nil, model.Product{}, ErrInvalidCategory
	}

	images := append([]string{}, d.Images...)
	image := d.Image
	if len(images) > 0 {
		image = images[0]
	}

	p := model.Product{
		ID:          d.ID,
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		Price:       d.Price,
		Image:       image,
		Images:      images,
		Category:    category,
		Stock:       d.Stock,
		Sizes:       cleanLabels(d.Sizes),
		Colors:      cleanLabels(d.Colors),
	}

	out := make([]model.Product, len(products), len(products)+1)
	copy(out, products)

	if p.ID != "" {
		for i := range out {
			if out[i].ID == p.ID {
				out[i] = p
				return out, p, nil
			}
		}
		return nil, model.Product{}, ErrProductNotFound
	}

	taken := make(map[string]struct{}, len(out))
	for _, x := range out {
		taken[x.ID] = struct{}{}
	}
	ms := now.UnixMilli()
	for {
		id := strconv.FormatInt(ms, 10)
		if _, ok := taken[id]; !ok {
			p.ID = id
			break
		}
		ms++
	}
	return append(out, p), p, nil
}

func cleanLabels(l model.LabelList) []string {
	out := []string{}
	for _, s := range l {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DeleteProduct removes the product with id. Orders keep their own snapshots.
func DeleteProduct(products []model.Product, id string) ([]model.Product, error) {
	for i, p := range products {
		if p.ID == id {
			out := make([]model.Product, 0, len(products)-1)
			out = append(out, products[:i]...)
			return append(out, products[i+1:]...), nil
		}
	}
	return nil, ErrProductNotFound
}

// AppendImages adds refs to the end of the draft's images.
func AppendImages(d model.ProductDraft, refs []string) model.ProductDraft {
	images := make([]string, 0, len(d.Images)+len(refs))
	images = append(images, d.Images...)
	d.Images = append(images, refs...)
	return d
}

// RemoveImage drops the image at index.
func RemoveImage(d model.ProductDraft, index int) (model.ProductDraft, error) {
	if index < 0 || index >= len(d.Images) {
		return d, ErrImageIndex
	}
	images := make([]string, 0, len(d.Images)-1)
	images = append(images, d.Images[:index]...)
	d.Images = append(images, d.Images[index+1:]...)
	return d, nil
}

// ImageSource is one uploaded file.
type ImageSource struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// ReadImages reads every source concurrently and returns the data URLs in
// input order. If any read fails the whole batch fails.
func ReadImages(ctx context.Context, sources []ImageSource) ([]string, error) {
	refs := make([]string, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ref, err := readImage(src)
			if err != nil {
				return fmt.Errorf("read %q: %w", src.Name, err)
			}
			refs[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return refs, nil
}

func readImage(src ImageSource) (string, error) {
	rc, err := src.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	b, err := io.ReadAll(io.LimitReader(rc, MaxImageBytes+1))
	if err != nil {
		return "", err
	}
	if len(b) > MaxImageBytes {
		return "", invalid("images", "image exceeds 5MB")
	}
	return EncodeImageDataURL(b)
}

// EncodeImageDataURL turns raw image bytes into a data: URL.
func EncodeImageDataURL(b []byte) (string, error) {
	mime := http.DetectContentType(b)
	if !strings.HasPrefix(mime, "image/") {
		return "", ErrNotImage
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(b), nil
}

// InventoryService drives the admin product editor.
type InventoryService struct {
	Products *repository.ProductRepository
	Drafts   *repository.DraftRepository
	Logger   echo.Logger
	Now      func() time.Time
}

func NewInventoryService(pr *repository.ProductRepository, dr *repository.DraftRepository, logger echo.Logger) *InventoryService {
	if logger == nil {
		logger = log.New("inventory")
	}
	return &InventoryService{Products: pr, Drafts: dr, Logger: logger, Now: time.Now}
}

// StartDraft opens an edit of productID, or of a new product when empty.
// Any draft already in progress for the session is replaced.
func (s *InventoryService) StartDraft(ctx context.Context, sessionID, productID string) (*model.ProductDraft, error) {
	d := model.ProductDraft{
		Category: model.DefaultCategory,
		Images:   []string{},
		Sizes:    model.LabelList{},
		Colors:   model.LabelList{},
	}
	if productID != "" {
		p, ok := s.Products.GetByID(ctx, productID)
		if !ok {
			return nil, ErrProductNotFound
		}
		d = model.DraftFromProduct(p)
	}
	s.Drafts.Put(ctx, sessionID, d)
	return &d, nil
}

func (s *InventoryService) Draft(ctx context.Context, sessionID string) (*model.ProductDraft, error) {
	d, ok := s.Drafts.Get(ctx, sessionID)
	if !ok {
		return nil, ErrNoDraft
	}
	return &d, nil
}

// UpdateDraft replaces the editable fields. The draft keeps the product
// it was started for, and keeps its images unless fields carries some.
func (s *InventoryService) UpdateDraft(ctx context.Context, sessionID string, fields model.ProductDraft) (*model.ProductDraft, error) {
	d, err := s.Drafts.Update(ctx, sessionID, func(cur model.ProductDraft) (model.ProductDraft, error) {
		fields.ID = cur.ID
		if fields.Images == nil {
			fields.Images = cur.Images
		}
		return fields, nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// UploadImages encodes sources and appends them to the draft.
func (s *InventoryService) UploadImages(ctx context.Context, sessionID string, sources []ImageSource) (*model.ProductDraft, error) {
	if _, ok := s.Drafts.Get(ctx, sessionID); !ok {
		return nil, ErrNoDraft
	}
	refs, err := ReadImages(ctx, sources)
	if err != nil {
		s.Logger.Warnj(log.JSON{"op": "upload_images", "files": len(sources), "error": err.Error()})
		return nil, err
	}
	d, err := s.Drafts.Update(ctx, sessionID, func(cur model.ProductDraft) (model.ProductDraft, error) {
		return AppendImages(cur, refs), nil
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *InventoryService) RemoveDraftImage(ctx context.Context, sessionID string, index int) (*model.ProductDraft, error) {
	d, err := s.Drafts.Update(ctx, sessionID, func(cur model.ProductDraft) (model.ProductDraft, error) {
		return RemoveImage(cur, index)
	})
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// SaveDraft commits the draft to the catalog and closes it.
func (s *InventoryService) SaveDraft(ctx context.Context, sessionID string) (*model.Product, error) {
	ctx, span := tracer.Start(ctx, "InventoryService.SaveDraft")
	defer span.End()

	d, ok := s.Drafts.Get(ctx, sessionID)
	if !ok {
		return nil, ErrNoDraft
	}
	var saved model.Product
	_, err := s.Products.Update(ctx, func(products []model.Product) ([]model.Product, error) {
		next, p, err := SaveProduct(products, d, s.Now())
		saved = p
		return next, err
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	s.Drafts.Delete(ctx, sessionID)

	span.SetAttributes(attribute.String("product.id", saved.ID), attribute.Bool("product.new", d.ID == ""))
	s.Logger.Infoj(log.JSON{"op": "save_product", "product_id": saved.ID, "new": d.ID == ""})
	return &saved, nil
}

func (s *InventoryService) DiscardDraft(ctx context.Context, sessionID string) {
	s.Drafts.Delete(ctx, sessionID)
}

// Delete removes a product from the catalog.
func (s *InventoryService) Delete(ctx context.Context, productID string) error {
	_, err := s.Products.Update(ctx, func(products []model.Product) ([]model.Product, error) {
		return DeleteProduct(products, productID)
	})
	if err != nil {
		return err
	}
	s.Logger.Infoj(log.JSON{"op": "delete_product", "product_id": productID})
	return nil
}
