package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order represents a table's placed order in the system
type Order struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"` // UUIDv7, time-ordered
	TableNumber   int             `gorm:"not null;check:table_number > 0" json:"tableNumber"`
	CustomerName  string          `gorm:"not null" json:"customerName"`
	Items         []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalAmount"` // derived from Items once, at creation
	Status        OrderStatus     `gorm:"not null;default:'pending';index" json:"status"`
	PaymentStatus PaymentStatus   `gorm:"not null;default:'unpaid';index" json:"paymentStatus"`
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime:false;not null;index" json:"createdAt"`
}

// OrderLineItem is one menu entry within an order. It has no identity outside its order.
type OrderLineItem struct {
	ID       uint            `gorm:"primaryKey" json:"-"`
	OrderID  string          `gorm:"not null;index;size:36" json:"-"`
	Position int             `gorm:"not null" json:"-"` // preserves submission order
	Name     string          `gorm:"not null" json:"name"`
	Quantity int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
}

// MoneyPlaces is the precision prices and totals are kept and rendered at
const MoneyPlaces = 2

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// TableName specifies the table name for the OrderLineItem model
func (OrderLineItem) TableName() string {
	return "order_items"
}

// BeforeCreate assigns a server-generated id when none is set
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID != "" {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("uuid.NewV7: %w", err)
	}
	o.ID = id.String()

	return nil
}

// Subtotal returns price × quantity for the line
func (i OrderLineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// MarshalJSON renders totalAmount with exactly MoneyPlaces decimals
func (o Order) MarshalJSON() ([]byte, error) {
	type order Order
	return json.Marshal(struct {
		order
		TotalAmount string `json:"totalAmount"`
	}{order(o), o.TotalAmount.StringFixed(MoneyPlaces)})
}

// MarshalJSON renders price with exactly MoneyPlaces decimals
func (i OrderLineItem) MarshalJSON() ([]byte, error) {
	type lineItem OrderLineItem
	return json.Marshal(struct {
		lineItem
		Price string `json:"price"`
	}{lineItem(i), i.Price.StringFixed(MoneyPlaces)})
}
