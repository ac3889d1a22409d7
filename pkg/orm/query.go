// Package orm is a thin chainable wrapper over GORM used by the
// repositories. It adds read-through caching and pagination on top of the
// raw *gorm.DB held by pkg/database.
package orm

import (
	"time"

	"github.com/ordena/ordena/pkg/database"
	"gorm.io/gorm"
)

// Cacher is the cache hook used by Query.Cache. It is satisfied by
// pkg/cache and injected at boot so orm and cache never import each other.
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
}

// CacheStore is set once during server boot. Nil disables caching.
var CacheStore Cacher

// Pagination carries page metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type Query struct {
	db *gorm.DB
}

// DB returns a fresh Query rooted at the global database handle.
func DB() *Query {
	return &Query{db: database.DB}
}

// Tx wraps an existing transaction handle so repository helpers can run
// inside a caller-owned transaction.
func Tx(tx *gorm.DB) *Query {
	return &Query{db: tx}
}

// Gorm exposes the underlying handle for operations the wrapper does not
// cover (expressions, conditional updates).
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Select(query interface{}, args ...interface{}) *Query {
	return &Query{db: q.db.Select(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Preload(association string, args ...interface{}) *Query {
	return &Query{db: q.db.Preload(association, args...)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count(count *int64) error {
	return q.db.Count(count).Error
}

func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

func (q *Query) Delete(value interface{}) error {
	return q.db.Delete(value).Error
}

func (q *Query) Pluck(column string, dest interface{}) error {
	return q.db.Pluck(column, dest).Error
}

// GetWithPagination loads one page of results into dest and returns the
// page metadata. page and limit are clamped to sensible values.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// Cache is a read-through helper: on a cache hit dest is filled from the
// cache, otherwise the query runs and the result is stored under key.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		return CacheStore.Set(key, dest, ttl)
	}
	return nil
}
