package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID          string   `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uint     `json:"user_id" gorm:"not null;index"`
	User        User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Address     string   `json:"address" gorm:"not null"` // delivery address snapshot, not a live reference
	OrderType   string   `json:"order_type"`
	OrderStatus string   `json:"order_status"` // free text, set once at creation
	TotalPrice  int64    `json:"total_price"`
	Payment     *Payment `json:"payment,omitempty" gorm:"foreignKey:OrderID"`

	MenuOrders []MenuOrder `json:"menu_orders,omitempty" gorm:"foreignKey:OrderID"`

	Audit
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// MenuOrder is an order line item. Price is snapshotted from the menu at
// creation time; later menu price changes do not affect historical orders.
type MenuOrder struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID  string `json:"order_id" gorm:"type:uuid;not null;index"`
	MenuID   string `json:"menu_id" gorm:"type:uuid;not null"`
	Menu     Menu   `json:"menu,omitempty" gorm:"foreignKey:MenuID"`
	Quantity int    `json:"quantity" gorm:"not null"`
	Price    int64  `json:"price" gorm:"not null"`

	Audit
}

func (mo *MenuOrder) BeforeCreate(tx *gorm.DB) error {
	if mo.ID == "" {
		mo.ID = uuid.NewString()
	}
	return nil
}
