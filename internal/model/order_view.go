package model

import (
	"time"

	dm "github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

// 商品被刪除時顯示的名稱
const UnknownProductName = "Unknown Product"

// 結帳回應中的付款結果
const MockPaymentResult = "mock_success"

type OrderUserView struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type PaymentView struct {
	ID                uint      `json:"id"`
	Amount            string    `json:"amount"`
	Status            string    `json:"status"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	CreatedAt         time.Time `json:"created_at"`
}

type OrderItemView struct {
	ID          uint   `json:"id"`
	ProductID   uint   `json:"product_id"`
	ProductName string `json:"product_name"`
	VariantID   *uint  `json:"variant_id"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Subtotal    string `json:"subtotal"`
}

type OrderDetail struct {
	OrderID     uint            `json:"order_id"`
	User        *OrderUserView  `json:"user"`
	AddressID   uint            `json:"address_id"`
	TotalAmount string          `json:"total_amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	Payment     *PaymentView    `json:"payment"`
	Items       []OrderItemView `json:"items"`
}

// NewOrderDetail 只取第一筆付款
func NewOrderDetail(order *dm.Order) OrderDetail {
	detail := OrderDetail{
		OrderID:     order.ID,
		AddressID:   order.AddressID,
		TotalAmount: Money(order.TotalAmount),
		Currency:    order.Currency,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		Items:       make([]OrderItemView, 0, len(order.Items)),
	}

	if order.User != nil {
		detail.User = &OrderUserView{
			ID:        order.User.ID,
			Email:     order.User.Email,
			FirstName: order.User.FirstName,
			LastName:  order.User.LastName,
		}
	}

	if len(order.Payments) > 0 {
		p := order.Payments[0]
		detail.Payment = &PaymentView{
			ID:                p.ID,
			Amount:            Money(p.Amount),
			Status:            string(p.Status),
			RazorpayOrderID:   p.GatewayOrderID,
			RazorpayPaymentID: p.GatewayPaymentID,
			CreatedAt:         p.CreatedAt,
		}
	}

	for i := range order.Items {
		item := &order.Items[i]
		name := UnknownProductName
		if item.Product != nil {
			name = item.Product.ProductName
		}
		detail.Items = append(detail.Items, OrderItemView{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: name,
			VariantID:   item.VariantID,
			Quantity:    item.Quantity,
			Price:       Money(item.Price),
			Subtotal:    Money(item.Subtotal()),
		})
	}
	return detail
}

func NewOrderDetails(orders []dm.Order) []OrderDetail {
	out := make([]OrderDetail, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderDetail(&orders[i]))
	}
	return out
}

type CheckoutResult struct {
	OrderID     uint   `json:"order_id"`
	Status      string `json:"status"`
	TotalAmount string `json:"total_amount"`
	Currency    string `json:"currency"`
	Payment     string `json:"payment"`
}
