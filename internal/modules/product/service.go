package product

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mboloapp/mbolo-backend/internal/modules/store"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service defines product listing business logic.
type Service interface {
	// CreateProduct validates the owner's store, uploads media, and persists
	// the listing. Uploaded blobs are removed again if persistence fails.
	CreateProduct(ctx context.Context, ownerID string, req CreateProductRequest, imagePaths, videoPaths []string) (*Product, error)

	// GetProduct retrieves a product by hex id.
	GetProduct(ctx context.Context, id string) (*Product, error)

	// ListByStore returns a store's listings.
	ListByStore(ctx context.Context, storeID string) ([]*Product, error)

	// ListByCategory returns all listings in a category.
	ListByCategory(ctx context.Context, categoryID string) ([]*Product, error)

	// Search runs a text search over the catalog.
	Search(ctx context.Context, query string) ([]*Product, error)

	// UpdateProduct edits listing fields, including stock and price.
	UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error)

	// DeleteProduct removes a listing, its blob assets and its store reference.
	DeleteProduct(ctx context.Context, id string) error

	// AddComment appends a buyer comment to a product.
	AddComment(ctx context.Context, productID, userID, text string) error
}

type service struct {
	repo      Repository
	storeRepo store.Repository
	uploader  storage.Uploader
}

// NewService creates a new product service.
func NewService(repo Repository, storeRepo store.Repository, uploader storage.Uploader) Service {
	return &service{repo: repo, storeRepo: storeRepo, uploader: uploader}
}

const assetFolder = "productos_mbolo"

func (s *service) CreateProduct(ctx context.Context, ownerID string, req CreateProductRequest, imagePaths, videoPaths []string) (*Product, error) {
	if req.Title == "" || req.Supplier == "" || req.Description == "" {
		return nil, fmt.Errorf("title, supplier and description are required")
	}
	if req.Price <= 0 {
		return nil, fmt.Errorf("price must be greater than zero")
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}
	if len(req.Sizes) > 0 && len(req.ShoeSizes) > 0 {
		return nil, fmt.Errorf("a product declares either apparel sizes or shoe sizes, not both")
	}

	oid, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id")
	}
	categoryID, err := primitive.ObjectIDFromHex(req.Category)
	if err != nil {
		return nil, fmt.Errorf("invalid category id")
	}
	subcategoryID, err := primitive.ObjectIDFromHex(req.Subcategory)
	if err != nil {
		return nil, fmt.Errorf("invalid subcategory id")
	}

	st, err := s.storeRepo.GetStoreByOwner(ctx, oid)
	if err != nil {
		return nil, fmt.Errorf("user does not have an associated store")
	}

	var uploaded []storage.Asset
	cleanup := func() {
		for _, a := range uploaded {
			if err := s.uploader.Delete(ctx, a.PublicID); err != nil {
				log.Printf("product create: cleanup %s: %v", a.PublicID, err)
			}
		}
	}

	var images, videos []storage.Asset
	for _, path := range imagePaths {
		a, err := s.uploader.Upload(ctx, path, assetFolder)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("upload image: %w", err)
		}
		uploaded = append(uploaded, a)
		images = append(images, a)
	}
	for _, path := range videoPaths {
		a, err := s.uploader.Upload(ctx, path, assetFolder)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("upload video: %w", err)
		}
		uploaded = append(uploaded, a)
		videos = append(videos, a)
	}

	stock := req.Stock
	if stock == 0 {
		stock = 1
	}

	p := &Product{
		Title:        req.Title,
		Supplier:     req.Supplier,
		Price:        req.Price,
		Stock:        stock,
		Description:  req.Description,
		Images:       images,
		Videos:       videos,
		Category:     categoryID,
		Subcategory:  subcategoryID,
		StoreID:      st.ID,
		Colors:       req.Colors,
		Sizes:        req.Sizes,
		ShoeSizes:    req.ShoeSizes,
		CustomFields: req.CustomFields,
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		cleanup()
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.storeRepo.AppendProduct(ctx, st.ID, p.ID); err != nil {
		return nil, fmt.Errorf("link product to store: %w", err)
	}
	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *service) ListByStore(ctx context.Context, storeID string) ([]*Product, error) {
	oid, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return nil, fmt.Errorf("invalid store id")
	}
	return s.repo.ListProductsByStore(ctx, oid)
}

func (s *service) ListByCategory(ctx context.Context, categoryID string) ([]*Product, error) {
	oid, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id")
	}
	return s.repo.ListProductsByCategory(ctx, oid)
}

func (s *service) Search(ctx context.Context, query string) ([]*Product, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	return s.repo.SearchProducts(ctx, query)
}

func (s *service) UpdateProduct(ctx context.Context, id string, req UpdateProductRequest) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Supplier != "" {
		p.Supplier = req.Supplier
	}
	if req.Description != "" {
		p.Description = req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, fmt.Errorf("price must be greater than zero")
		}
		p.Price = *req.Price
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative")
		}
		p.Stock = *req.Stock
	}
	if req.Colors != nil {
		p.Colors = req.Colors
	}
	if req.Sizes != nil {
		p.Sizes = req.Sizes
	}
	if req.ShoeSizes != nil {
		p.ShoeSizes = req.ShoeSizes
	}
	if len(p.Sizes) > 0 && len(p.ShoeSizes) > 0 {
		return nil, fmt.Errorf("a product declares either apparel sizes or shoe sizes, not both")
	}

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return fmt.Errorf("product not found: %w", err)
	}

	for _, a := range append(append([]storage.Asset{}, p.Images...), p.Videos...) {
		if a.PublicID == "" {
			continue
		}
		if err := s.uploader.Delete(ctx, a.PublicID); err != nil {
			log.Printf("product delete: remove asset %s: %v", a.PublicID, err)
		}
	}

	if err := s.storeRepo.RemoveProduct(ctx, p.StoreID, p.ID); err != nil {
		return fmt.Errorf("unlink product from store: %w", err)
	}
	return s.repo.DeleteProduct(ctx, p.ID)
}

func (s *service) AddComment(ctx context.Context, productID, userID, text string) error {
	if text == "" {
		return fmt.Errorf("comment text is required")
	}
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return fmt.Errorf("invalid product id")
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("invalid user id")
	}
	return s.repo.AddComment(ctx, pid, Comment{User: uid, Comment: text, CreatedAt: time.Now().UTC()})
}
