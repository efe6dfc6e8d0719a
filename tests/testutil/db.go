package testutil

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dineflow/table-orders-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a migrated in-memory sqlite database that is closed when the test ends.
// A single connection keeps every query on the same in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := db.AutoMigrate(&models.Order{}, &models.OrderLineItem{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// FixedClock returns a clock that yields times in order, repeating the last one
func FixedClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

// RandomLineItems returns between 1 and 5 valid line items
func RandomLineItems() []models.OrderLineItem {
	items := make([]models.OrderLineItem, gofakeit.Number(1, 5))
	for i := range items {
		items[i] = RandomLineItem()
	}
	return items
}

// RandomLineItem returns a valid line item with a two-decimal price
func RandomLineItem() models.OrderLineItem {
	return models.OrderLineItem{
		Name:     gofakeit.Lunch(),
		Quantity: gofakeit.Number(1, 4),
		Price:    decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2),
	}
}

// LineItem builds a line item from a decimal string price
func LineItem(name string, quantity int, price string) models.OrderLineItem {
	return models.OrderLineItem{
		Name:     name,
		Quantity: quantity,
		Price:    decimal.RequireFromString(price),
	}
}
