package services

import (
	"context"
	"strings"
	"time"

	"github.com/dineflow/table-orders-api/models"
	"go.uber.org/zap"
)

// CreateOrderInput is a cart submission. Items are taken verbatim from the cart.
type CreateOrderInput struct {
	TableNumber  int
	CustomerName string
	Items        []models.OrderLineItem
	Notes        string
}

// OrderService orchestrates order mutations against the store. All writes go
// through it; reads are delegated to the query service.
type OrderService struct {
	store     OrderStore
	queries   *OrderQueryService
	publisher OrderEventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewOrderService creates an order service. A nil publisher disables events.
func NewOrderService(store OrderStore, queries *OrderQueryService, publisher OrderEventPublisher, logger *zap.Logger) *OrderService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		store:     store,
		queries:   queries,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Create validates the submission and persists a pending, unpaid order
func (s *OrderService) Create(ctx context.Context, input CreateOrderInput) (models.Order, error) {
	if input.TableNumber < 1 {
		return models.Order{}, newValidationError("tableNumber", "table number must be at least 1")
	}

	customerName := strings.TrimSpace(input.CustomerName)
	if customerName == "" {
		return models.Order{}, newValidationError("customerName", "customer name is required")
	}
	if containsNUL(customerName) {
		return models.Order{}, newValidationError("customerName", "customer name must not contain NUL characters")
	}
	if containsNUL(input.Notes) {
		return models.Order{}, newValidationError("notes", "notes must not contain NUL characters")
	}

	total, err := ComputeTotal(input.Items)
	if err != nil {
		return models.Order{}, err
	}

	order, err := s.store.Insert(ctx, models.Order{
		TableNumber:   input.TableNumber,
		CustomerName:  customerName,
		Items:         input.Items,
		TotalAmount:   total,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusUnpaid,
		Notes:         input.Notes,
	})
	if err != nil {
		s.logger.Error("failed to create order", zap.Int("table_number", input.TableNumber), zap.Error(err))
		return models.Order{}, err
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.Int("table_number", order.TableNumber),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalAmount.StringFixed(currencyPlaces)))
	s.publish(ctx, OrderCreated, order)

	return order, nil
}

// Update applies a sparse patch. Items and totalAmount are never affected.
// An empty patch writes nothing and publishes nothing.
func (s *OrderService) Update(ctx context.Context, id string, patch OrderPatch) (models.Order, error) {
	if patch.IsEmpty() {
		return s.queries.Get(ctx, id)
	}

	var previous models.OrderStatus
	order, err := s.store.Update(ctx, id, func(order *models.Order) error {
		updated, err := ApplyUpdate(*order, patch)
		if err != nil {
			return err
		}
		previous = order.Status
		*order = updated
		return nil
	})
	if err != nil {
		if IsStoreError(err) {
			s.logger.Error("failed to update order", zap.String("order_id", id), zap.Error(err))
		}
		return models.Order{}, err
	}

	if previous.IsTerminal() && !order.Status.IsTerminal() {
		s.logger.Info("order reopened",
			zap.String("order_id", order.ID),
			zap.String("from", string(previous)),
			zap.String("to", string(order.Status)))
	}

	s.logger.Info("order updated",
		zap.String("order_id", order.ID),
		zap.String("status", string(order.Status)),
		zap.String("payment_status", string(order.PaymentStatus)),
		zap.Int("table_number", order.TableNumber))
	s.publish(ctx, OrderUpdated, order)

	return order, nil
}

// Delete permanently removes an order
func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if IsStoreError(err) {
			s.logger.Error("failed to delete order", zap.String("order_id", id), zap.Error(err))
		}
		return err
	}

	s.logger.Info("order deleted", zap.String("order_id", id))
	s.publish(ctx, OrderDeleted, models.Order{ID: id})

	return nil
}

// Get returns a single order
func (s *OrderService) Get(ctx context.Context, id string) (models.Order, error) {
	return s.queries.Get(ctx, id)
}

// List returns the orders matching filter, newest first
func (s *OrderService) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	return s.queries.List(ctx, filter)
}

// publish is best effort: the mutation is already committed, so a broker
// failure is logged and not returned
func (s *OrderService) publish(ctx context.Context, eventType OrderEventType, order models.Order) {
	if err := s.publisher.Publish(ctx, newOrderEvent(eventType, order, s.now())); err != nil {
		s.logger.Warn("failed to publish order event",
			zap.String("type", string(eventType)),
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}
