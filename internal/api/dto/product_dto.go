package dto

import (
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	vm "github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/shopspring/decimal"
)

type ProductOptionDTO struct {
	OptionName string   `json:"option_name"`
	Items      []string `json:"items"`
}

// CreateProductDTO price 可以是字串或數字
type CreateProductDTO struct {
	ProductName string             `json:"product_name"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	Price       decimal.Decimal    `json:"price"`
	Stock       int                `json:"stock"`
	Options     []ProductOptionDTO `json:"options"`
}

type OptionItemDTO struct {
	ItemID   uint   `json:"item_id"`
	ItemName string `json:"item_name"`
}

type OptionDTO struct {
	OptionID   uint            `json:"option_id"`
	OptionName string          `json:"option_name"`
	Items      []OptionItemDTO `json:"items"`
}

type VariantDTO struct {
	VariantID uint   `json:"variant_id"`
	Option1   *uint  `json:"option1"`
	Option2   *uint  `json:"option2"`
	Option3   *uint  `json:"option3"`
	Price     string `json:"price"`
	Stock     int    `json:"stock"`
}

type ProductDTO struct {
	ID          uint         `json:"id"`
	ProductName string       `json:"product_name"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Price       string       `json:"price"`
	PublishedAt *time.Time   `json:"published_at"`
	Options     []OptionDTO  `json:"options"`
	Variants    []VariantDTO `json:"variants"`
	CreatedAt   time.Time    `json:"created_at"`
}

func NewProductDTO(p *model.Product) ProductDTO {
	out := ProductDTO{
		ID:          p.ID,
		ProductName: p.ProductName,
		Description: p.Description,
		Status:      string(p.Status),
		Price:       vm.Money(p.Price),
		PublishedAt: p.PublishedAt,
		Options:     make([]OptionDTO, 0, len(p.Options)),
		Variants:    make([]VariantDTO, 0, len(p.Variants)),
		CreatedAt:   p.CreatedAt,
	}
	for _, opt := range p.Options {
		o := OptionDTO{OptionID: opt.ID, OptionName: opt.OptionName, Items: make([]OptionItemDTO, 0, len(opt.Items))}
		for _, item := range opt.Items {
			o.Items = append(o.Items, OptionItemDTO{ItemID: item.ID, ItemName: item.ItemName})
		}
		out.Options = append(out.Options, o)
	}
	for _, v := range p.Variants {
		out.Variants = append(out.Variants, VariantDTO{
			VariantID: v.ID,
			Option1:   v.Option1,
			Option2:   v.Option2,
			Option3:   v.Option3,
			Price:     vm.Money(v.Price),
			Stock:     v.Stock,
		})
	}
	return out
}

func NewProductDTOs(products []model.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(products))
	for i := range products {
		out = append(out, NewProductDTO(&products[i]))
	}
	return out
}
