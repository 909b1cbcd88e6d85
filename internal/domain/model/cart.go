package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart 每個使用者一台, 結帳後只清空 items, cart 本身保留
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;uniqueIndex" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem 同一台 cart 的 (product, variant) 只會有一筆
type CartItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CartID    uint            `gorm:"not null;index" json:"cart_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	VariantID *uint           `json:"variant_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"-"`
	Variant   *ProductVariant `gorm:"foreignKey:VariantID" json:"-"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// 需要先 preload Product 與 Variant
func (i *CartItem) UnitPrice() decimal.Decimal {
	return UnitPrice(i.Product, i.Variant)
}

func (i *CartItem) Subtotal() decimal.Decimal {
	return i.UnitPrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SameLine 判斷是否為同一個 (product, variant) 組合
func (i *CartItem) SameLine(productID uint, variantID *uint) bool {
	if i.ProductID != productID {
		return false
	}
	if i.VariantID == nil || variantID == nil {
		return i.VariantID == nil && variantID == nil
	}
	return *i.VariantID == *variantID
}
