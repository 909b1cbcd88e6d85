package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusArchived ProductStatus = "archived"
	ProductStatusDraft    ProductStatus = "draft"
)

// ParseProductStatus 不認得的狀態一律當作 draft
func ParseProductStatus(s string) ProductStatus {
	switch ProductStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ProductStatusActive:
		return ProductStatusActive
	case ProductStatusArchived:
		return ProductStatusArchived
	default:
		return ProductStatusDraft
	}
}

// 每個商品最多三組選項, 對應 variant 的 option1..option3
const MaxProductOptions = 3

type Product struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	ProductName string           `gorm:"not null;type:varchar(255)" json:"product_name"`
	Description string           `gorm:"type:text" json:"description"`
	Status      ProductStatus    `gorm:"not null;type:varchar(20);default:draft" json:"status"`
	Price       decimal.Decimal  `gorm:"not null;type:numeric(10,2)" json:"price"`
	PublishedAt *time.Time       `json:"published_at"`
	Options     []ProductOption  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"options"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	BaseModel
}

type ProductOption struct {
	ID         uint                `gorm:"primaryKey" json:"option_id"`
	ProductID  uint                `gorm:"not null;index" json:"product_id"`
	OptionName string              `gorm:"not null;type:varchar(100)" json:"option_name"`
	Items      []ProductOptionItem `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE" json:"items"`
}

type ProductOptionItem struct {
	ID       uint   `gorm:"primaryKey" json:"item_id"`
	OptionID uint   `gorm:"not null;index" json:"option_id"`
	ItemName string `gorm:"not null;type:varchar(100)" json:"item_name"`
}

// ProductVariant 可購買的商品組合, option 欄位存 ProductOptionItem.ID
type ProductVariant struct {
	ID        uint            `gorm:"primaryKey" json:"variant_id"`
	ProductID uint            `gorm:"not null;index" json:"product_id"`
	Option1   *uint           `json:"option1"`
	Option2   *uint           `json:"option2"`
	Option3   *uint           `json:"option3"`
	Price     decimal.Decimal `gorm:"not null;type:numeric(10,2)" json:"price"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UnitPrice 有選 variant 用 variant 價格, 否則用商品基本價
func UnitPrice(product *Product, variant *ProductVariant) decimal.Decimal {
	if variant != nil {
		return variant.Price
	}
	if product == nil {
		return decimal.Zero
	}
	return product.Price
}
