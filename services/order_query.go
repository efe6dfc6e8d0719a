package services

import (
	"context"
	"time"

	"github.com/dineflow/table-orders-api/models"
	"github.com/dineflow/table-orders-api/utils"
	"github.com/samber/lo"
)

// ListFilter is the staff dashboard's filter request. Empty or "all" means unfiltered.
type ListFilter struct {
	Status        string `form:"status"`
	PaymentStatus string `form:"paymentStatus"`
	Date          string `form:"date"` // YYYY-MM-DD, server local calendar day
}

// OrderQueryService translates dashboard filters into store scans
type OrderQueryService struct {
	store    OrderStore
	location *time.Location
}

// NewOrderQueryService creates a query service. loc is the zone calendar-date
// filters are interpreted in; nil means the server's local zone.
func NewOrderQueryService(store OrderStore, loc *time.Location) *OrderQueryService {
	if loc == nil {
		loc = time.Local
	}
	return &OrderQueryService{store: store, location: loc}
}

// Location returns the zone used for calendar-date filters
func (q *OrderQueryService) Location() *time.Location {
	return q.location
}

// List returns the orders matching filter, most recent first. No match is an empty slice.
func (q *OrderQueryService) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	storeFilter, err := q.toStoreFilter(filter)
	if err != nil {
		return nil, err
	}

	return q.store.Scan(ctx, storeFilter)
}

// Get returns a single order
func (q *OrderQueryService) Get(ctx context.Context, id string) (models.Order, error) {
	return q.store.Get(ctx, id)
}

func (q *OrderQueryService) toStoreFilter(filter ListFilter) (OrderFilter, error) {
	var storeFilter OrderFilter

	if isFiltered(filter.Status) {
		status, err := models.ToOrderStatus(filter.Status)
		if err != nil {
			return OrderFilter{}, newValidationError("status", "%v", err)
		}
		storeFilter.Status = lo.ToPtr(status)
	}

	if isFiltered(filter.PaymentStatus) {
		paymentStatus, err := models.ToPaymentStatus(filter.PaymentStatus)
		if err != nil {
			return OrderFilter{}, newValidationError("paymentStatus", "%v", err)
		}
		storeFilter.PaymentStatus = lo.ToPtr(paymentStatus)
	}

	if filter.Date != "" {
		day, err := utils.ParseCalendarDate(filter.Date, q.location)
		if err != nil {
			return OrderFilter{}, newValidationError("date", "%v", err)
		}
		start, end := utils.DayBounds(day)
		storeFilter.CreatedFrom = &start
		storeFilter.CreatedTo = &end
	}

	return storeFilter, nil
}

func isFiltered(value string) bool {
	return value != "" && value != models.FilterAll
}
