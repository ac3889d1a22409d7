package repositories

import (
	"time"

	"github.com/ordena/ordena/app/models"
	"github.com/ordena/ordena/pkg/orm"
	"gorm.io/gorm"
)

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateTx inserts the order inside a caller-owned transaction.
func (r *OrderRepository) CreateTx(tx *gorm.DB, order *models.Order) error {
	return orm.Tx(tx).Create(order)
}

// CreateItemTx inserts one order item inside a caller-owned transaction.
func (r *OrderRepository) CreateItemTx(tx *gorm.DB, item *models.OrderItem) error {
	return orm.Tx(tx).Create(item)
}

// FindByID loads an order with its items.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).Preload("Items").Where("id = ?", id).First(&order)
	return order, err
}

// ListByUser returns the given user's orders, newest first, with items.
func (r *OrderRepository) ListByUser(userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("id desc").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// ListAll returns every order, newest first, with items and owner. Staff only.
func (r *OrderRepository) ListAll(page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := orm.DB().
		Model(&models.Order{}).
		Preload("Items").
		Preload("User").
		Order("id desc").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, err
}

// UpdateStatus persists a status change for the given order.
func (r *OrderRepository) UpdateStatus(id uint, status string) error {
	return orm.DB().Model(&models.Order{}).Where("id = ?", id).Gorm().
		UpdateColumn("status", status).Error
}

// CountPendingOlderThan counts orders still pending that were created
// before cutoff. Used by the scheduled stale-order sweep.
func (r *OrderRepository) CountPendingOlderThan(cutoff time.Time) (int64, error) {
	var count int64
	err := orm.DB().
		Model(&models.Order{}).
		Where("status = ? AND created_at < ?", models.StatusPending, cutoff).
		Count(&count)
	return count, err
}
