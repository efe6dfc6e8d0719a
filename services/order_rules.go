package services

import (
	"strings"

	"github.com/dineflow/table-orders-api/models"
	"github.com/shopspring/decimal"
)

const currencyPlaces = models.MoneyPlaces

// MaxMoneyAmount is the largest price or total a numeric(12,2) column holds
var MaxMoneyAmount = decimal.RequireFromString("9999999999.99")

// OrderPatch is a sparse update. Nil, empty-string and zero values mean "leave unchanged".
type OrderPatch struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
	TableNumber   *int    `json:"tableNumber"`
	Notes         *string `json:"notes"`
}

// IsEmpty reports whether the patch would change nothing
func (p OrderPatch) IsEmpty() bool {
	return isBlank(p.Status) && isBlank(p.PaymentStatus) && isBlank(p.Notes) &&
		(p.TableNumber == nil || *p.TableNumber == 0)
}

// ComputeTotal returns Σ price × quantity over items, rounded to currency precision
func ComputeTotal(items []models.OrderLineItem) (decimal.Decimal, error) {
	if len(items) == 0 {
		return decimal.Zero, newValidationError("items", "order must have at least one item")
	}

	total := decimal.Zero
	for i, item := range items {
		if err := validateLineItem(i, item); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(item.Subtotal())
	}

	if total.GreaterThan(MaxMoneyAmount) {
		return decimal.Zero, newValidationError("items", "order total must not exceed %s", MaxMoneyAmount.StringFixed(currencyPlaces))
	}

	return total.Round(currencyPlaces), nil
}

func validateLineItem(i int, item models.OrderLineItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return newValidationError("items", "item %d: name is required", i)
	}
	if containsNUL(item.Name) {
		return newValidationError("items", "item %d: name must not contain NUL characters", i)
	}
	if item.Quantity < 1 {
		return newValidationError("items", "item %d: quantity must be at least 1", i)
	}
	if item.Price.IsNegative() {
		return newValidationError("items", "item %d: price must not be negative", i)
	}
	if !item.Price.Equal(item.Price.Round(currencyPlaces)) {
		return newValidationError("items", "item %d: price must have at most %d decimal places", i, currencyPlaces)
	}
	if item.Price.GreaterThan(MaxMoneyAmount) {
		return newValidationError("items", "item %d: price must not exceed %s", i, MaxMoneyAmount.StringFixed(currencyPlaces))
	}
	return nil
}

// ApplyUpdate returns a copy of existing with the patch applied. Items and
// TotalAmount are never touched. Any status may move to any other status.
func ApplyUpdate(existing models.Order, patch OrderPatch) (models.Order, error) {
	updated := existing

	if !isBlank(patch.Status) {
		status, err := models.ToOrderStatus(*patch.Status)
		if err != nil {
			return existing, newValidationError("status", "%v", err)
		}
		updated.Status = status
	}

	if !isBlank(patch.PaymentStatus) {
		paymentStatus, err := models.ToPaymentStatus(*patch.PaymentStatus)
		if err != nil {
			return existing, newValidationError("paymentStatus", "%v", err)
		}
		updated.PaymentStatus = paymentStatus
	}

	if patch.TableNumber != nil && *patch.TableNumber != 0 {
		if *patch.TableNumber < 0 {
			return existing, newValidationError("tableNumber", "table number must be at least 1")
		}
		updated.TableNumber = *patch.TableNumber
	}

	if !isBlank(patch.Notes) {
		if containsNUL(*patch.Notes) {
			return existing, newValidationError("notes", "notes must not contain NUL characters")
		}
		updated.Notes = *patch.Notes
	}

	return updated, nil
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

// text columns cannot store U+0000
func containsNUL(s string) bool {
	return strings.ContainsRune(s, 0)
}
