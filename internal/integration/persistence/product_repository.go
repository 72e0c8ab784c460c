// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/chrisemayers/pos-backoffice/internal/application/usecase/analytics"
	"github.com/chrisemayers/pos-backoffice/internal/domain/entity"
	"github.com/chrisemayers/pos-backoffice/internal/integration/persistence/model"
)

// ProductRepository resolves product display names and maintains the catalog
// rows that ingestion writes. It implements reports.ProductCatalog.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository instance.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		db: db,
	}
}

// DisplayName resolves the catalog name for a product key. A missing row is
// (_, false, nil); only infrastructure failures surface as errors. Keys are
// normalized before lookup so numeric and string writes of the same product
// land on the same row.
func (r *ProductRepository) DisplayName(ctx context.Context, key string) (string, bool, error) {
	normalized, err := analytics.ProductKeyOf(key)
	if err != nil {
		return "", false, nil
	}

	var productModel model.ProductModel
	result := r.db.WithContext(ctx).Where("key = ?", normalized).First(&productModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, result.Error
	}
	return productModel.Name, true, nil
}

// Upsert writes a catalog row, normalizing the key the same way sale records
// are normalized.
func (r *ProductRepository) Upsert(ctx context.Context, product *entity.Product) error {
	normalized, err := analytics.ProductKeyOf(product.Key)
	if err != nil {
		return err
	}

	productModel := model.ProductFromEntity(product)
	productModel.Key = normalized

	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "category", "barcode", "active", "updated_at"}),
	}).Create(productModel)
	return result.Error
}
