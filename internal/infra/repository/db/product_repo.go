package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

type ProductRepo struct {
	db *DbDao
}

func NewProductRepo(db *DbDao) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create - 只建立商品本身, 選項與 variant 另外寫入
func (s *ProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Omit("Options", "Variants").Create(product).Error
}

// Create - 建立選項, 連同選項內的 items
func (s *ProductRepo) CreateProductOption(ctx context.Context, option *model.ProductOption) error {
	return s.db.WithContext(ctx).Create(option).Error
}

func (s *ProductRepo) CreateProductVariants(ctx context.Context, variants []model.ProductVariant) error {
	if len(variants) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&variants).Error
}

// Read - 商品與選項, variant 一起載入
func (s *ProductRepo) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Options.Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Read - 最新的商品在前
func (s *ProductRepo) ListProducts(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	query := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&products).Error
	return products, err
}

func (s *ProductRepo) GetVariantByID(ctx context.Context, id uint) (*model.ProductVariant, error) {
	var variant model.ProductVariant
	err := s.db.WithContext(ctx).First(&variant, id).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

// Delete - 軟刪除商品
func (s *ProductRepo) DeleteProduct(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&model.Product{ID: id})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
