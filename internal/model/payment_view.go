package model

import (
	"time"

	dm "github.com/RoyceAzure/lab/storefront/internal/domain/model"
)

type PaymentRecord struct {
	ID                uint      `json:"id"`
	OrderID           uint      `json:"order_id"`
	RazorpayOrderID   string    `json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	Amount            string    `json:"amount"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

// PaymentList total 是全部付款筆數, 與分頁無關
type PaymentList struct {
	Payments []PaymentRecord `json:"payments"`
	Total    int64           `json:"total"`
}

func NewPaymentList(payments []dm.Payment, total int64) *PaymentList {
	list := &PaymentList{
		Payments: make([]PaymentRecord, 0, len(payments)),
		Total:    total,
	}
	for i := range payments {
		p := &payments[i]
		list.Payments = append(list.Payments, PaymentRecord{
			ID:                p.ID,
			OrderID:           p.OrderID,
			RazorpayOrderID:   p.GatewayOrderID,
			RazorpayPaymentID: p.GatewayPaymentID,
			Amount:            Money(p.Amount),
			Status:            string(p.Status),
			CreatedAt:         p.CreatedAt,
		})
	}
	return list
}
