package db

import (
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// cart_items 的 variant 可為 NULL, 需要兩個 partial unique index 才能涵蓋
var cartItemUniqueIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_cart_items_with_variant
		ON cart_items (cart_id, product_id, variant_id) WHERE variant_id IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_cart_items_without_variant
		ON cart_items (cart_id, product_id) WHERE variant_id IS NULL`,
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	err := d.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.ProductOption{},
		&model.ProductOptionItem{},
		&model.ProductVariant{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.Payment{},
	)
	if err != nil {
		return err
	}

	for _, stmt := range cartItemUniqueIndexes {
		if err := d.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
