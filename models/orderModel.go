package models

import "time"

type Order struct {
	ID          uint        `json:"_id" gorm:"primaryKey"`
	UserID      uint        `json:"user" gorm:"index;not null"`
	Items       []OrderItem `json:"products" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount float64     `json:"totalAmount" gorm:"not null"`
	Reference   string      `json:"reference" gorm:"size:64;uniqueIndex;not null"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   uint    `json:"-" gorm:"index"`
	ProductID uint    `json:"product"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// DailySales is one day of aggregated order data.
type DailySales struct {
	Date    string  `json:"date"`
	Sales   int64   `json:"sales"`
	Revenue float64 `json:"revenue"`
}
