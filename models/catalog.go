package models

import "time"

type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
}

type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	Manufacturer  string    `json:"manufacturer"`
	Price         float64   `json:"price" gorm:"not null"`
	OldPrice      float64   `json:"old_price"`
	Image         string    `json:"image"`
	CategoryID    uint      `json:"category_id" gorm:"index"`
	Category      *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	StockQuantity int       `json:"stock_quantity" gorm:"default:0"`
	IsPopular     bool      `json:"is_popular" gorm:"default:false"`
	IsNew         bool      `json:"is_new" gorm:"default:false"`
	InStock       bool      `json:"in_stock" gorm:"default:true"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
