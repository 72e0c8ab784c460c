// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Product represents a catalog entry used to resolve display names for
// aggregated report rows. The catalog is maintained by the back-office CRUD
// surface; the analytics engine only ever reads it.
type Product struct {
	Key       string // canonical key, same normalization as sale records
	Name      string
	Category  string
	Barcode   string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
