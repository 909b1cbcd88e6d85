package model

import (
	dm "github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
)

// 金額一律輸出兩位小數字串
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type CartItemView struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	VariantID   *uint  `json:"variant_id"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Subtotal    string `json:"subtotal"`
	// 商品已下架時為 false, 不計入總額也無法結帳
	Available   bool   `json:"available"`
}

type CartView struct {
	CartID   uint           `json:"cart_id"`
	Items    []CartItemView `json:"items"`
	Total    string         `json:"total"`
	Currency string         `json:"currency"`
}

func EmptyCartView() *CartView {
	return &CartView{
		Items:    []CartItemView{},
		Total:    Money(decimal.Zero),
		Currency: dm.DefaultCurrency,
	}
}

// NewCartView cart 需要 preload items 的 Product 與 Variant
func NewCartView(cart *dm.Cart) *CartView {
	view := EmptyCartView()
	if cart == nil {
		return view
	}
	view.CartID = cart.ID

	total := decimal.Zero
	for i := range cart.Items {
		item := &cart.Items[i]
		line := CartItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: UnknownProductName,
			VariantID:   item.VariantID,
			Quantity:    item.Quantity,
			Price:       Money(decimal.Zero),
			Subtotal:    Money(decimal.Zero),
		}
		// 軟刪除的商品 preload 不到
		if item.Product != nil {
			subtotal := item.Subtotal()
			total = total.Add(subtotal)
			line.ProductName = item.Product.ProductName
			line.Price = Money(item.UnitPrice())
			line.Subtotal = Money(subtotal)
			line.Available = true
		}
		view.Items = append(view.Items, line)
	}
	view.Total = Money(total)
	return view
}
