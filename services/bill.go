package services

import (
	"strings"
	"time"

	"github.com/dineflow/table-orders-api/models"
	"github.com/samber/lo"
)

// referenceLength is how many trailing id characters form the display reference
const referenceLength = 6

// BillLine is one printable line of a bill
type BillLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
}

// BillView is the data a printable bill is rendered from
type BillView struct {
	Reference     string               `json:"reference"`
	OrderID       string               `json:"orderId"`
	TableNumber   int                  `json:"tableNumber"`
	CustomerName  string               `json:"customerName"`
	Lines         []BillLine           `json:"lines"`
	Total         string               `json:"total"`
	Status        models.OrderStatus   `json:"status"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
	PaymentLabel  string               `json:"paymentLabel"`
	Notes         string               `json:"notes,omitempty"`
	Date          string               `json:"date"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// ProjectBill builds the bill for order. It reports the stored total rather than
// recomputing it, so any drift between items and total shows on the bill.
// loc is the zone the bill date is rendered in.
func ProjectBill(order models.Order, loc *time.Location) BillView {
	return BillView{
		Reference:    OrderReference(order.ID),
		OrderID:      order.ID,
		TableNumber:  order.TableNumber,
		CustomerName: order.CustomerName,
		Lines: lo.Map(order.Items, func(item models.OrderLineItem, _ int) BillLine {
			return BillLine{
				Name:     item.Name,
				Quantity: item.Quantity,
				Price:    item.Price.StringFixed(currencyPlaces),
				Subtotal: item.Subtotal().StringFixed(currencyPlaces),
			}
		}),
		Total:         order.TotalAmount.StringFixed(currencyPlaces),
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		PaymentLabel:  order.PaymentStatus.Label(),
		Notes:         order.Notes,
		Date:          formatBillDate(order.CreatedAt, loc),
		CreatedAt:     order.CreatedAt,
	}
}

// OrderReference is the short upper-cased reference staff and diners see
func OrderReference(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > referenceLength {
		id = id[len(id)-referenceLength:]
	}
	return strings.ToUpper(id)
}

func formatBillDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("2006-01-02 15:04")
}
