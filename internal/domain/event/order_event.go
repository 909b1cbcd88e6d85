package event

import (
	"strconv"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
)

type OrderItemData struct {
	ProductID uint            `json:"product_id"`
	VariantID *uint           `json:"variant_id,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type OrderPlacedEvent struct {
	BaseEvent
	OrderID     uint              `json:"order_id"`
	UserID      uint              `json:"user_id"`
	AddressID   uint              `json:"address_id"`
	Currency    string            `json:"currency"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	Status      model.OrderStatus `json:"status"`
	Items       []OrderItemData   `json:"items"`
}

func (e *OrderPlacedEvent) Type() EventType {
	return OrderPlacedEventName
}

func NewOrderPlacedEvent(order *model.Order) *OrderPlacedEvent {
	items := make([]OrderItemData, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemData{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return &OrderPlacedEvent{
		BaseEvent:   NewBaseEvent(OrderPlacedEventName, strconv.FormatUint(uint64(order.ID), 10)),
		OrderID:     order.ID,
		UserID:      order.UserID,
		AddressID:   order.AddressID,
		Currency:    order.Currency,
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		Items:       items,
	}
}

type OrderStatusChangedEvent struct {
	BaseEvent
	OrderID   uint              `json:"order_id"`
	UserID    uint              `json:"user_id"`
	From      model.OrderStatus `json:"from"`
	To        model.OrderStatus `json:"to"`
	ChangedBy uint              `json:"changed_by"`
	Role      model.ActorRole   `json:"role"`
}

func (e *OrderStatusChangedEvent) Type() EventType {
	return OrderStatusChangedEventName
}

func NewOrderStatusChangedEvent(order *model.Order, from model.OrderStatus, actorID uint, role model.ActorRole) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseEvent: NewBaseEvent(OrderStatusChangedEventName, strconv.FormatUint(uint64(order.ID), 10)),
		OrderID:   order.ID,
		UserID:    order.UserID,
		From:      from,
		To:        order.Status,
		ChangedBy: actorID,
		Role:      role,
	}
}
