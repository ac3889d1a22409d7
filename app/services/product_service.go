package services

import (
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/app/repositories"
	"github.com/ordena/ordena/pkg/cache"
	"github.com/ordena/ordena/pkg/orm"
	"github.com/ordena/ordena/pkg/storage"
	"gorm.io/gorm"
)

// ProductInput carries the writable product fields from the API layer.
type ProductInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=255"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"min=0"`
	Stock       int     `json:"stock" validate:"min=0"`
	Category    string  `json:"category" validate:"max=100"`
	Active      *bool   `json:"active"`
}

// ProductService owns catalog reads and staff-side catalog mutations.
type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService() *ProductService {
	return &ProductService{products: repositories.NewProductRepository()}
}

// List returns one page of the catalog under the given filter.
func (s *ProductService) List(f repositories.ProductFilter) ([]models.Product, orm.Pagination, error) {
	return s.products.List(f)
}

// Categories returns the distinct category names.
func (s *ProductService) Categories() ([]string, error) {
	return s.products.Categories()
}

// Find loads one product.
func (s *ProductService) Find(id uint) (models.Product, error) {
	product, err := s.products.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("product: load %d: %w", id, err)
	}
	return product, nil
}

// Create adds a product to the catalog.
func (s *ProductService) Create(in ProductInput) (models.Product, error) {
	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Active:      true,
	}
	if in.Active != nil {
		product.Active = *in.Active
	}

	if err := s.products.Create(&product); err != nil {
		return models.Product{}, fmt.Errorf("product: create: %w", err)
	}
	s.invalidateCatalogCache()
	return product, nil
}

// Update replaces the writable fields of an existing product.
func (s *ProductService) Update(id uint, in ProductInput) (models.Product, error) {
	product, err := s.Find(id)
	if err != nil {
		return models.Product{}, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock
	product.Category = in.Category
	if in.Active != nil {
		product.Active = *in.Active
	}

	if err := s.products.Update(&product); err != nil {
		return models.Product{}, fmt.Errorf("product: update %d: %w", id, err)
	}
	s.invalidateCatalogCache()
	return product, nil
}

// Delete removes a product and its stored image.
func (s *ProductService) Delete(id uint) error {
	product, err := s.Find(id)
	if err != nil {
		return err
	}

	if err := s.products.Delete(&product); err != nil {
		return fmt.Errorf("product: delete %d: %w", id, err)
	}
	if product.ImagePath != "" {
		_ = storage.Delete(product.ImagePath)
	}
	s.invalidateCatalogCache()
	return nil
}

// AttachImage stores an uploaded image on the configured disk and records
// its path on the product. Returns the public URL of the stored file.
func (s *ProductService) AttachImage(id uint, filename string, r io.Reader) (string, error) {
	product, err := s.Find(id)
	if err != nil {
		return "", err
	}

	dst := fmt.Sprintf("products/%d/%s", product.ID, sanitizeFilename(filename))
	if err := storage.PutStream(dst, r); err != nil {
		return "", fmt.Errorf("product: store image: %w", err)
	}

	if product.ImagePath != "" && product.ImagePath != dst {
		_ = storage.Delete(product.ImagePath)
	}
	product.ImagePath = dst
	if err := s.products.Update(&product); err != nil {
		return "", fmt.Errorf("product: save image path: %w", err)
	}

	return storage.URL(dst), nil
}

func (s *ProductService) invalidateCatalogCache() {
	_ = cache.Forget("ordena:catalog:categories")
}

// sanitizeFilename keeps only the base name and flattens path separators
// so uploads cannot escape the product's directory.
func sanitizeFilename(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		return "upload"
	}
	return base
}
