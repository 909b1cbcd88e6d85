package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestCartItemSameLine(t *testing.T) {
	item := CartItem{ProductID: 1}
	require.True(t, item.SameLine(1, nil))
	require.False(t, item.SameLine(1, uintPtr(3)))
	require.False(t, item.SameLine(2, nil))

	withVariant := CartItem{ProductID: 1, VariantID: uintPtr(3)}
	require.True(t, withVariant.SameLine(1, uintPtr(3)))
	require.False(t, withVariant.SameLine(1, uintPtr(4)))
	require.False(t, withVariant.SameLine(1, nil))
}

func TestCartItemUnitPrice(t *testing.T) {
	product := &Product{ID: 1, Price: decimal.RequireFromString("10.00")}
	variant := &ProductVariant{ID: 3, ProductID: 1, Price: decimal.RequireFromString("5.50")}

	item := CartItem{ProductID: 1, Quantity: 2, Product: product}
	require.True(t, item.UnitPrice().Equal(decimal.RequireFromString("10.00")))
	require.True(t, item.Subtotal().Equal(decimal.RequireFromString("20.00")))

	item = CartItem{ProductID: 1, VariantID: uintPtr(3), Quantity: 3, Product: product, Variant: variant}
	require.True(t, item.UnitPrice().Equal(decimal.RequireFromString("5.50")))
	require.True(t, item.Subtotal().Equal(decimal.RequireFromString("16.50")))

	require.True(t, UnitPrice(nil, nil).IsZero())
}

func TestParseProductStatus(t *testing.T) {
	require.Equal(t, ProductStatusActive, ParseProductStatus("ACTIVE"))
	require.Equal(t, ProductStatusArchived, ParseProductStatus("archived"))
	require.Equal(t, ProductStatusDraft, ParseProductStatus("published"))
	require.Equal(t, ProductStatusDraft, ParseProductStatus(""))
}

func TestMockPaymentAndSumItems(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Quantity: 2, Price: decimal.RequireFromString("10.00")},
		{ProductID: 2, VariantID: uintPtr(3), Quantity: 1, Price: decimal.RequireFromString("5.50")},
	}
	total := SumItems(items)
	require.True(t, total.Equal(decimal.RequireFromString("25.50")))

	order := &Order{ID: 42, TotalAmount: total}
	payment := NewMockPayment(order)
	require.Equal(t, uint(42), payment.OrderID)
	require.Equal(t, "mock_order_42", payment.GatewayOrderID)
	require.Equal(t, "mock_payment_42", payment.GatewayPaymentID)
	require.Equal(t, PaymentStatusSuccess, payment.Status)
	require.True(t, payment.Amount.Equal(total))
}
