package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dineflow/table-orders-api/services"
	"github.com/dineflow/table-orders-api/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testApp wires the order endpoints over an in-memory database
type testApp struct {
	db       *gorm.DB
	orders   *services.OrderService
	storage  *services.MockS3Service
	exporter *services.BillExportService
	router   *gin.Engine
}

// testDay is the service day every test order is placed on
var testDay = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// tickingClock advances one second per call so creation order is unambiguous
func tickingClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewTestDB(t)
	store := services.NewGormOrderStore(db, services.WithClock(tickingClock(testDay)))
	orders := services.NewOrderService(store, services.NewOrderQueryService(store, time.UTC), nil, nil)
	storage := services.NewMockS3Service()
	exporter := services.NewBillExportService(storage, time.UTC)

	router := setupTestRouter()
	RegisterOrderRoutes(router.Group("/api/v1"), NewOrderController(orders), NewBillController(orders, exporter, time.UTC))

	return &testApp{
		db:       db,
		orders:   orders,
		storage:  storage,
		exporter: exporter,
		router:   router,
	}
}

// do sends a request with an optional JSON body and decodes the envelope
func (a *testApp) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return w, response
}

// createOrder submits a single-line order and returns its id
func (a *testApp) createOrder(t *testing.T, table int, name string, quantity int, price string) string {
	t.Helper()

	w, response := a.do(t, http.MethodPost, "/api/v1/orders", map[string]interface{}{
		"tableNumber":  table,
		"customerName": "Guest",
		"items": []map[string]interface{}{
			{"name": name, "quantity": quantity, "price": price},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return response["data"].(map[string]interface{})["id"].(string)
}

func assertErrorCode(t *testing.T, response map[string]interface{}, code string) {
	t.Helper()

	assert.False(t, response["success"].(bool))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, code, errorData["code"])
}

func assertMoney(t *testing.T, want string, got interface{}) {
	t.Helper()

	value, ok := got.(string)
	require.True(t, ok, "money should be a decimal string, got %T", got)
	assert.True(t, decimal.RequireFromString(want).Equal(decimal.RequireFromString(value)), "want %s, got %s", want, value)
}
