// Package model defines database models for persistence layer.
package model

import (
	"time"
)

// SaleDocumentModel represents the sale_documents table in the database.
// Upstream registers push sale receipts as JSON documents with loosely
// typed fields, so the payload is kept verbatim and only the columns
// needed for range scans are promoted.
type SaleDocumentModel struct {
	ID          string    `gorm:"type:varchar(64);primaryKey"`
	OccurredAt  time.Time `gorm:"type:timestamp;not null;index"`
	PaymentType string    `gorm:"type:varchar(32);index"`
	Payload     string    `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the SaleDocumentModel.
func (SaleDocumentModel) TableName() string {
	return "sale_documents"
}

// ReturnDocumentModel represents the return_documents table in the database.
type ReturnDocumentModel struct {
	ID         string    `gorm:"type:varchar(64);primaryKey"`
	SaleID     string    `gorm:"type:varchar(64);index"`
	OccurredAt time.Time `gorm:"type:timestamp;not null;index"`
	Payload    string    `gorm:"type:jsonb;not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the ReturnDocumentModel.
func (ReturnDocumentModel) TableName() string {
	return "return_documents"
}
