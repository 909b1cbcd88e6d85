package dto

import (
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

// AddCartItemDTO quantity 沒帶時為 1
type AddCartItemDTO struct {
	ProductID uint  `json:"product_id"`
	VariantID *uint `json:"variant_id"`
	Quantity  *int  `json:"quantity"`
}

type UpdateCartItemDTO struct {
	Quantity int `json:"quantity"`
}

type CartItemDTO struct {
	ID        uint  `json:"id"`
	CartID    uint  `json:"cart_id"`
	ProductID uint  `json:"product_id"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity"`
}

func NewCartItemDTO(item *model.CartItem) CartItemDTO {
	return CartItemDTO{
		ID:        item.ID,
		CartID:    item.CartID,
		ProductID: item.ProductID,
		VariantID: item.VariantID,
		Quantity:  item.Quantity,
	}
}
