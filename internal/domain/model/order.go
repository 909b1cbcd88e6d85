package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// 目前只支援單一幣別
const DefaultCurrency = "INR"

type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	UserID      uint            `gorm:"not null;index" json:"user_id"`
	AddressID   uint            `gorm:"not null" json:"address_id"`
	Currency    string          `gorm:"not null;type:varchar(3);default:INR" json:"currency"`
	TotalAmount decimal.Decimal `gorm:"not null;type:numeric(10,2);default:0" json:"total_amount"`
	Status      OrderStatus     `gorm:"not null;type:varchar(32);index" json:"status"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Payments    []Payment       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"payments"`
	User        *User           `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderItem 下單當下的快照, 建立後不再變動
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	VariantID *uint           `json:"variant_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:numeric(10,2)" json:"price"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"-"`
}

func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Payment struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	OrderID          uint            `gorm:"not null;index" json:"order_id"`
	GatewayOrderID   string          `gorm:"type:varchar(100)" json:"razorpay_order_id"`
	GatewayPaymentID string          `gorm:"type:varchar(100)" json:"razorpay_payment_id"`
	Amount           decimal.Decimal `gorm:"not null;type:numeric(10,2)" json:"amount"`
	Status           PaymentStatus   `gorm:"not null;type:varchar(20)" json:"status"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewMockPayment 模擬金流, 一律成功
func NewMockPayment(order *Order) *Payment {
	return &Payment{
		OrderID:          order.ID,
		GatewayOrderID:   fmt.Sprintf("mock_order_%d", order.ID),
		GatewayPaymentID: fmt.Sprintf("mock_payment_%d", order.ID),
		Amount:           order.TotalAmount,
		Status:           PaymentStatusSuccess,
	}
}

// SumItems 依快照重算總額
func SumItems(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].Subtotal())
	}
	return total
}
