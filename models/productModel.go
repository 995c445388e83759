package models

import (
	"time"

	"gorm.io/datatypes"
)

const MaxProductImages = 3

type Product struct {
	ID          uint                        `json:"_id" gorm:"primaryKey"`
	Name        string                      `json:"name" gorm:"size:200;not null"`
	Description string                      `json:"description" gorm:"type:text"`
	Price       float64                     `json:"price" gorm:"not null"`
	Images      datatypes.JSONSlice[string] `json:"images"`
	Category    string                      `json:"category" gorm:"size:100;index"`
	IsFeatured  bool                        `json:"isFeatured" gorm:"index"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// ProductInput is the admin payload for creating or updating a product.
// Images are either data URIs or http(s) URLs.
type ProductInput struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
}

// CartProduct is a product joined with its cart quantity.
type CartProduct struct {
	Product
	Quantity int `json:"quantity"`
}
