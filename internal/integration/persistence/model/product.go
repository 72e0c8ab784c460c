// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/chrisemayers/pos-backoffice/internal/domain/entity"
)

// ProductModel represents the products table in the database.
type ProductModel struct {
	Key       string    `gorm:"type:varchar(64);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Category  string    `gorm:"type:varchar(100);index"`
	Barcode   string    `gorm:"type:varchar(64);index"`
	Active    bool      `gorm:"default:true"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the ProductModel.
func (ProductModel) TableName() string {
	return "products"
}

// ProductFromEntity creates a ProductModel from a domain Product entity.
func ProductFromEntity(product *entity.Product) *ProductModel {
	return &ProductModel{
		Key:       product.Key,
		Name:      product.Name,
		Category:  product.Category,
		Barcode:   product.Barcode,
		Active:    product.Active,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
}
