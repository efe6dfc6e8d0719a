package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dineflow/table-orders-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter selects orders in a Scan. Nil fields do not filter; set fields combine with AND.
type OrderFilter struct {
	Status        *models.OrderStatus
	PaymentStatus *models.PaymentStatus
	CreatedFrom   *time.Time // inclusive
	CreatedTo     *time.Time // inclusive
}

// OrderMutator edits an order in place inside an atomic Update
type OrderMutator func(order *models.Order) error

// OrderStore is the persistent collection of orders
type OrderStore interface {
	Insert(ctx context.Context, order models.Order) (models.Order, error)
	Get(ctx context.Context, id string) (models.Order, error)
	Scan(ctx context.Context, filter OrderFilter) ([]models.Order, error)
	Update(ctx context.Context, id string, mutate OrderMutator) (models.Order, error)
	Delete(ctx context.Context, id string) error
}

// GormOrderStore implements OrderStore on top of gorm (postgres in production, sqlite in tests)
type GormOrderStore struct {
	db  *gorm.DB
	now func() time.Time
}

// StoreOption configures a GormOrderStore
type StoreOption func(*GormOrderStore)

// WithClock overrides the clock used to stamp createdAt
func WithClock(now func() time.Time) StoreOption {
	return func(s *GormOrderStore) {
		s.now = now
	}
}

// NewGormOrderStore creates an order store over db
func NewGormOrderStore(db *gorm.DB, opts ...StoreOption) *GormOrderStore {
	s := &GormOrderStore{
		db:  db,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Migrate creates or updates the order tables
func (s *GormOrderStore) Migrate() error {
	if err := s.db.AutoMigrate(&models.Order{}, &models.OrderLineItem{}); err != nil {
		return &StoreError{Op: "migrate", Err: err}
	}
	return nil
}

// Insert persists a new order with its items, assigning id and createdAt.
// createdAt is kept in UTC at millisecond precision.
func (s *GormOrderStore) Insert(ctx context.Context, order models.Order) (models.Order, error) {
	if len(order.Items) == 0 {
		return models.Order{}, newValidationError("items", "order must have at least one item")
	}

	order.ID = ""
	order.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	items := make([]models.OrderLineItem, len(order.Items))
	for i, item := range order.Items {
		item.ID = 0
		item.OrderID = ""
		item.Position = i
		items[i] = item
	}
	order.Items = items

	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return models.Order{}, &StoreError{Op: "insert", Err: err}
	}

	return order, nil
}

// Get loads a single order with its items
func (s *GormOrderStore) Get(ctx context.Context, id string) (models.Order, error) {
	return s.get(s.db.WithContext(ctx), id)
}

// Scan returns the orders matching filter, newest first. Orders created at the
// same instant keep insertion order (ids are time-ordered).
func (s *GormOrderStore) Scan(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	query := withItems(s.db.WithContext(ctx))

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", filter.CreatedFrom.UTC())
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", filter.CreatedTo.UTC())
	}

	orders := make([]models.Order, 0)
	if err := query.Order("created_at DESC").Order("id ASC").Find(&orders).Error; err != nil {
		return nil, &StoreError{Op: "scan", Err: err}
	}

	return orders, nil
}

// Update loads the order under a row lock, applies mutate and writes the whole
// record back in one transaction. Concurrent updates of the same id are
// serialized; the last one to commit wins.
func (s *GormOrderStore) Update(ctx context.Context, id string, mutate OrderMutator) (models.Order, error) {
	var updated models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.get(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id)
		if err != nil {
			return err
		}

		order := current
		if err := mutate(&order); err != nil {
			return err
		}

		// immutable fields always come from the stored row
		order.ID = current.ID
		order.CreatedAt = current.CreatedAt
		order.TotalAmount = current.TotalAmount
		order.Items = current.Items

		if err := tx.Omit(clause.Associations).Save(&order).Error; err != nil {
			return &StoreError{Op: "update", Err: err}
		}

		updated = order
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	return updated, nil
}

// Delete permanently removes the order and its items
func (s *GormOrderStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Order{})
		if result.Error != nil {
			return &StoreError{Op: "delete", Err: result.Error}
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("delete %s: %w", id, ErrOrderNotFound)
		}

		if err := tx.Where("order_id = ?", id).Delete(&models.OrderLineItem{}).Error; err != nil {
			return &StoreError{Op: "delete items", Err: err}
		}
		return nil
	})
}

// Count returns the number of stored orders
func (s *GormOrderStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, &StoreError{Op: "count", Err: err}
	}
	return count, nil
}

func (s *GormOrderStore) get(db *gorm.DB, id string) (models.Order, error) {
	var order models.Order
	if err := withItems(db).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, fmt.Errorf("get %s: %w", id, ErrOrderNotFound)
		}
		return models.Order{}, &StoreError{Op: "get", Err: err}
	}
	return order, nil
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}
