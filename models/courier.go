package models

import "time"

// CourierProfile holds courier working state and earnings counters,
// 1:1 with a User that has the courier role.
type CourierProfile struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	User            *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Status          string    `json:"status" gorm:"not null;default:'available'"`
	Rating          float64   `json:"rating" gorm:"default:5"`
	CompletedOrders int       `json:"completed_orders" gorm:"default:0"`
	CompletedToday  int       `json:"completed_today" gorm:"default:0"`
	TotalEarnings   float64   `json:"total_earnings" gorm:"default:0"`
	TodayEarnings   float64   `json:"today_earnings" gorm:"default:0"`
	DailyGoal       float64   `json:"daily_goal" gorm:"default:5000"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CourierMessage is an inbox entry. A nil CourierID means the message
// is a broadcast visible to every courier.
type CourierMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CourierID *uint     `json:"courier_id" gorm:"index"`
	Title     string    `json:"title"`
	Text      string    `json:"text" gorm:"not null"`
	IsRead    bool      `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}

// ChatMessage is one entry in a courier's 1:1 transcript with dispatch.
type ChatMessage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CourierID   uint      `json:"courier_id" gorm:"not null;index"`
	FromCourier bool      `json:"from_courier"`
	Text        string    `json:"text" gorm:"not null"`
	IsRead      bool      `json:"is_read" gorm:"default:false"`
	CreatedAt   time.Time `json:"created_at"`
}
