package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/event"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/metrics"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	vm "github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	checkoutResultSuccess   = "success"
	checkoutResultEmptyCart = "empty_cart"
	checkoutResultFailed    = "failed"
)

type ICheckoutService interface {
	Checkout(ctx context.Context, userID, addressID uint) (*vm.CheckoutResult, error)
}

type CheckoutService struct {
	dbDao     db.UnifiedDB
	publisher producer.OrderEventProducer
	metrics   *metrics.ServerMetrics
	logger    *zerolog.Logger
}

func NewCheckoutService(dbDao db.UnifiedDB, publisher producer.OrderEventProducer, m *metrics.ServerMetrics, logger *zerolog.Logger) *CheckoutService {
	if dbDao == nil || publisher == nil || logger == nil {
		panic("checkout service init failed, missing dependency")
	}
	return &CheckoutService{
		dbDao:     dbDao,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

/*
Checkout 購物車轉成訂單
建立訂單(PLACED, 總額0) => 逐筆寫入訂單明細並累加 => 寫回總額 => 模擬付款 => 清空購物車
全部在同一個 transaction, 任何一步失敗購物車都不變
*/
func (s *CheckoutService) Checkout(ctx context.Context, userID, addressID uint) (*vm.CheckoutResult, error) {
	if addressID == 0 {
		return nil, ErrInvalidAddress
	}

	var order *model.Order
	err := s.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		// 鎖住 cart, 同一台購物車同時結帳只有一個會成功
		cart, err := tx.LockCartByUserID(ctx, userID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrEmptyCart
			}
			return err
		}
		if len(cart.Items) == 0 {
			return ErrEmptyCart
		}

		order = &model.Order{
			UserID:      userID,
			AddressID:   addressID,
			Currency:    model.DefaultCurrency,
			TotalAmount: decimal.Zero,
			Status:      model.OrderStatusPlaced,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		items := make([]model.OrderItem, 0, len(cart.Items))
		total := decimal.Zero
		for i := range cart.Items {
			cartItem := &cart.Items[i]
			if cartItem.Product == nil {
				return ErrProductNotFound
			}
			if cartItem.VariantID != nil && cartItem.Variant == nil {
				return ErrInvalidVariant
			}
			orderItem := model.OrderItem{
				OrderID:   order.ID,
				ProductID: cartItem.ProductID,
				VariantID: cartItem.VariantID,
				Quantity:  cartItem.Quantity,
				Price:     cartItem.UnitPrice(),
			}
			total = total.Add(orderItem.Subtotal())
			items = append(items, orderItem)
		}
		if err := tx.CreateOrderItems(ctx, items); err != nil {
			return err
		}
		order.Items = items

		if err := tx.UpdateOrderTotal(ctx, order.ID, total); err != nil {
			return err
		}
		order.TotalAmount = total

		payment := model.NewMockPayment(order)
		if err := tx.CreatePayment(ctx, payment); err != nil {
			return err
		}
		order.Payments = []model.Payment{*payment}

		_, err = tx.ClearCartItems(ctx, cart.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) {
			s.metrics.ObserveCheckout(checkoutResultEmptyCart)
		} else {
			s.metrics.ObserveCheckout(checkoutResultFailed)
			s.logger.Error().Err(err).Uint("user_id", userID).Msg("checkout failed")
		}
		return nil, err
	}

	s.metrics.ObserveCheckout(checkoutResultSuccess)
	// 訂單已經 commit, 事件發送失敗只記錄
	if err := s.publisher.Publish(ctx, event.NewOrderPlacedEvent(order)); err != nil {
		s.logger.Warn().Err(err).Uint("order_id", order.ID).Msg("publish order placed event failed")
	}
	s.logger.Info().
		Uint("user_id", userID).
		Uint("order_id", order.ID).
		Str("total_amount", vm.Money(order.TotalAmount)).
		Int("items", len(order.Items)).
		Msg("order placed")

	return &vm.CheckoutResult{
		OrderID:     order.ID,
		Status:      string(order.Status),
		TotalAmount: vm.Money(order.TotalAmount),
		Currency:    order.Currency,
		Payment:     vm.MockPaymentResult,
	}, nil
}

var _ ICheckoutService = (*CheckoutService)(nil)
