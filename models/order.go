package models

import "time"

// OrderStatus represents all possible states of a delivery order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusAssigned  OrderStatus = "assigned"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

type DeliveryOrder struct {
	ID           uint                `json:"id" gorm:"primaryKey"`
	OrderCode    string              `json:"order_code" gorm:"uniqueIndex;not null"`
	UserID       uint                `json:"user_id" gorm:"not null;index"`
	User         *User               `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CourierID    *uint               `json:"courier_id" gorm:"index"`
	Courier      *User               `json:"courier,omitempty" gorm:"foreignKey:CourierID"`
	Status       OrderStatus         `json:"status" gorm:"not null;default:'pending'"`
	TotalAmount  float64             `json:"total_amount"`
	Address      string              `json:"address" gorm:"not null"`
	ContactPhone string              `json:"contact_phone"`
	Notes        string              `json:"notes"`
	Items        []DeliveryOrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	AcceptedAt   *time.Time          `json:"accepted_at"`
	DeliveredAt  *time.Time          `json:"delivered_at"`
	CancelledAt  *time.Time          `json:"cancelled_at"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type DeliveryOrderItem struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	OrderID    uint    `json:"order_id" gorm:"not null;index"`
	ProductID  uint    `json:"product_id" gorm:"not null"`
	Name       string  `json:"name"` // snapshot name at order time
	Quantity   int     `json:"quantity" gorm:"not null"`
	UnitPrice  float64 `json:"unit_price" gorm:"not null"` // snapshot price at order time
	TotalPrice float64 `json:"total_price"`
}
