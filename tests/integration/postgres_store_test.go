//go:build postgres

package integration

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dineflow/table-orders-api/config"
	"github.com/dineflow/table-orders-api/models"
	"github.com/dineflow/table-orders-api/services"
	"github.com/dineflow/table-orders-api/tests/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"gorm.io/gorm"
)

// postgresStoreSuite runs the order store against a real postgres server
type postgresStoreSuite struct {
	suite.Suite

	container testcontainers.Container
	db        *gorm.DB
	store     *services.GormOrderStore
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(postgresStoreSuite))
}

// before all tests in the suite
func (suite *postgresStoreSuite) SetupSuite() {
	ctx := suite.T().Context()

	container, connStr, err := testutil.StartPostgres(ctx)
	suite.Require().NoError(err)
	suite.container = container

	suite.Require().NoError(config.ConnectDatabase(connStr))
	suite.db = config.GetDB()

	suite.store = services.NewGormOrderStore(suite.db)
	suite.Require().NoError(suite.store.Migrate())
}

// after all tests in the suite
func (suite *postgresStoreSuite) TearDownSuite() {
	if suite.db != nil {
		if sqlDB, err := suite.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		config.SetDB(nil)
	}
	if suite.container != nil {
		suite.NoError(testcontainers.TerminateContainer(suite.container))
	}
}

// before each test
func (suite *postgresStoreSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE order_items, orders").Error)
}

func (suite *postgresStoreSuite) insert(store *services.GormOrderStore, items ...models.OrderLineItem) models.Order {
	if len(items) == 0 {
		items = testutil.RandomLineItems()
	}
	order, err := store.Insert(suite.T().Context(), models.Order{
		TableNumber:   gofakeit.Number(1, 30),
		CustomerName:  gofakeit.FirstName(),
		Items:         items,
		TotalAmount:   lo.Must(services.ComputeTotal(items)),
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
	})
	suite.Require().NoError(err)
	return order
}

func (suite *postgresStoreSuite) TestRoundTripKeepsMoneyExact() {
	order := suite.insert(suite.store,
		testutil.LineItem("Espresso", 3, "0.10"),
		testutil.LineItem("Croissant", 1, "0.20"),
	)

	stored, err := suite.store.Get(suite.T().Context(), order.ID)
	suite.Require().NoError(err)

	suite.Empty(cmp.Diff(order, stored))
	suite.Equal("0.50", stored.TotalAmount.StringFixed(2))
	suite.True(decimal.RequireFromString("0.10").Equal(stored.Items[0].Price))
}

func (suite *postgresStoreSuite) TestScanNewestFirstWithinDay() {
	zone := time.FixedZone("UTC-0500", -5*3600)
	day := time.Date(2024, 7, 4, 0, 0, 0, 0, zone)
	store := services.NewGormOrderStore(suite.db, services.WithClock(testutil.FixedClock(
		day.Add(-time.Millisecond),
		day,
		day.Add(24*time.Hour-time.Millisecond),
		day.Add(24*time.Hour),
	)))

	var orders []models.Order
	for i := 0; i < 4; i++ {
		orders = append(orders, suite.insert(store))
	}

	queries := services.NewOrderQueryService(store, zone)
	got, err := queries.List(suite.T().Context(), services.ListFilter{Date: "2024-07-04"})
	suite.Require().NoError(err)

	suite.Equal([]string{orders[2].ID, orders[1].ID}, lo.Map(got, func(o models.Order, _ int) string { return o.ID }))
}

func (suite *postgresStoreSuite) TestConcurrentUpdatesAreSerialized() {
	order := suite.insert(suite.store)

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := suite.store.Update(suite.T().Context(), order.ID, func(o *models.Order) error {
				o.TableNumber = i + 1
				o.Notes = fmt.Sprintf("writer %d", i)
				return nil
			})
			suite.NoError(err)
		}(i)
	}
	wg.Wait()

	stored, err := suite.store.Get(suite.T().Context(), order.ID)
	suite.Require().NoError(err)
	suite.Equal(fmt.Sprintf("writer %d", stored.TableNumber-1), stored.Notes)
	suite.True(order.TotalAmount.Equal(stored.TotalAmount))
	suite.Len(stored.Items, len(order.Items))
}

func (suite *postgresStoreSuite) TestDeleteCascadesToItems() {
	order := suite.insert(suite.store)
	suite.Require().NoError(suite.store.Delete(suite.T().Context(), order.ID))

	var items int64
	suite.Require().NoError(suite.db.Model(&models.OrderLineItem{}).Where("order_id = ?", order.ID).Count(&items).Error)
	suite.Zero(items)

	suite.ErrorIs(suite.store.Delete(suite.T().Context(), order.ID), services.ErrOrderNotFound)
}

func (suite *postgresStoreSuite) TestCheckConstraintsAreEnforced() {
	_, err := suite.store.Insert(suite.T().Context(), models.Order{
		TableNumber:  0,
		CustomerName: "Nobody",
		Items:        []models.OrderLineItem{testutil.LineItem("Water", 1, "0")},
	})

	suite.True(services.IsStoreError(err), "got %v", err)

	count, err := suite.store.Count(suite.T().Context())
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *postgresStoreSuite) TestLargestStorableAmountRoundTrips() {
	order := suite.insert(suite.store, testutil.LineItem("Banquet", 1, "9999999999.99"))

	stored, err := suite.store.Get(suite.T().Context(), order.ID)
	suite.Require().NoError(err)
	suite.True(services.MaxMoneyAmount.Equal(stored.TotalAmount))
	suite.True(services.MaxMoneyAmount.Equal(stored.Items[0].Price))
}

func (suite *postgresStoreSuite) TestInputTheSchemaRefusesIsAValidationError() {
	orders := services.NewOrderService(suite.store, services.NewOrderQueryService(suite.store, time.UTC), nil, nil)

	inputs := map[string]services.CreateOrderInput{
		"price overflow": {
			TableNumber: 1, CustomerName: "Big spender",
			Items: []models.OrderLineItem{testutil.LineItem("Caviar", 1000, "99999999999.00")},
		},
		"total overflow": {
			TableNumber: 1, CustomerName: "Big spender",
			Items: []models.OrderLineItem{testutil.LineItem("Caviar", 2, "9999999999.99")},
		},
		"NUL in customer name": {
			TableNumber: 1, CustomerName: "Nu\x00ll",
			Items: []models.OrderLineItem{testutil.LineItem("Tea", 1, "2.00")},
		},
		"NUL in item name": {
			TableNumber: 1, CustomerName: "Lee",
			Items: []models.OrderLineItem{testutil.LineItem("T\x00ea", 1, "2.00")},
		},
		"NUL in notes": {
			TableNumber: 1, CustomerName: "Lee", Notes: "\x00",
			Items: []models.OrderLineItem{testutil.LineItem("Tea", 1, "2.00")},
		},
	}

	for name, input := range inputs {
		_, err := orders.Create(suite.T().Context(), input)
		suite.True(services.IsValidationError(err), "%s: got %v", name, err)
		suite.False(services.IsStoreError(err), name)
	}

	order := suite.insert(suite.store)
	_, err := orders.Update(suite.T().Context(), order.ID, services.OrderPatch{Notes: lo.ToPtr("a\x00b")})
	suite.True(services.IsValidationError(err), "got %v", err)

	count, err := suite.store.Count(suite.T().Context())
	suite.Require().NoError(err)
	suite.EqualValues(1, count)
}
