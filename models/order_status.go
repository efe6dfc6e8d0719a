package models

import "fmt"

// OrderStatus is the kitchen/service progress stage of an order
type OrderStatus string

// remember to add new statuses to orderStatusLabels
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// PaymentStatus records whether the order's bill has been settled
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// FilterAll is the filter value meaning "do not filter on this field"
const FilterAll = "all"

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:   "Pending",
	OrderStatusPreparing: "Preparing",
	OrderStatusReady:     "Ready",
	OrderStatusServed:    "Served",
	OrderStatusCompleted: "Completed",
	OrderStatusCancelled: "Cancelled",
}

var paymentStatusLabels = map[PaymentStatus]string{
	PaymentStatusUnpaid: "Unpaid",
	PaymentStatusPaid:   "Paid",
}

// ToOrderStatus parses s into an OrderStatus, rejecting values outside the enumeration
func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := orderStatusLabels[status]; ok {
		return status, nil
	}

	return "", fmt.Errorf("invalid order status %q", s)
}

// ToPaymentStatus parses s into a PaymentStatus, rejecting values outside the enumeration
func ToPaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(s)
	if _, ok := paymentStatusLabels[status]; ok {
		return status, nil
	}

	return "", fmt.Errorf("invalid payment status %q", s)
}

// OrderStatuses returns every order status in workflow order
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusServed,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

// PaymentStatuses returns every payment status
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentStatusUnpaid, PaymentStatusPaid}
}

// Label returns the display label for the status
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Label returns the display label for the payment status
func (s PaymentStatus) Label() string {
	if label, ok := paymentStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsTerminal reports whether the status ends the service workflow.
// Terminal statuses are not absorbing: staff may still move an order out of them.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}
