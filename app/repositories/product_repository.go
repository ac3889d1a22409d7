package repositories

import (
	"time"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/pkg/collection"
	"github.com/ordena/ordena/pkg/orm"
	"gorm.io/gorm"
)

// catalogCacheTTL bounds how stale the cached category list may get.
const catalogCacheTTL = 5 * time.Minute

// ProductFilter narrows List results. Zero values mean "no constraint".
type ProductFilter struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
	Page     int
	Limit    int
}

// ProductRepository handles database operations for Product, including the
// conditional stock decrement used by checkout.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// FindByIDTx is FindByID inside a caller-owned transaction.
func (r *ProductRepository) FindByIDTx(tx *gorm.DB, id uint) (models.Product, error) {
	var product models.Product
	err := orm.Tx(tx).Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}

// List applies the filter and returns one page of products ordered by name.
func (r *ProductRepository) List(f ProductFilter) ([]models.Product, orm.Pagination, error) {
	q := orm.DB().Model(&models.Product{})

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}

	var products []models.Product
	pagination, err := q.Order("name asc").GetWithPagination(&products, f.Page, f.Limit)
	return products, pagination, err
}

// Categories returns the distinct non-empty category names, read through
// the cache since the list changes rarely.
func (r *ProductRepository) Categories() ([]string, error) {
	var rows []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Select("category").
		Where("category <> ''").
		Order("category asc").
		Cache("ordena:catalog:categories", catalogCacheTTL, &rows)
	if err != nil {
		return nil, err
	}
	names := collection.Map(rows, func(p models.Product) string { return p.Category })
	return dedupe(names), nil
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return orm.DB().Create(product)
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return orm.DB().Save(product)
}

// Delete removes a product.
func (r *ProductRepository) Delete(product *models.Product) error {
	return orm.DB().Delete(product)
}

// DecrementStock atomically subtracts qty from the product's stock inside
// the given transaction. The WHERE clause makes the database serialise
// competing decrements: when the remaining stock cannot cover qty no row
// matches, nothing is mutated, and (false, nil) is returned.
func (r *ProductRepository) DecrementStock(tx *gorm.DB, id uint, qty int) (bool, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// dedupe collapses adjacent duplicates from an ordered list.
func dedupe(sorted []string) []string {
	out := sorted[:0]
	var last string
	for _, s := range sorted {
		if s == last && len(out) > 0 {
			continue
		}
		out = append(out, s)
		last = s
	}
	return out
}
