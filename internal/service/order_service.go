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
)

// Actor 發出請求的人
type Actor struct {
	UserID uint
	Role   model.ActorRole
}

type IOrderService interface {
	ListUserOrders(ctx context.Context, userID uint) ([]vm.OrderDetail, error)
	GetUserOrder(ctx context.Context, userID, orderID uint) (*vm.OrderDetail, error)
	ListAllOrders(ctx context.Context) ([]vm.OrderDetail, error)
	GetOrder(ctx context.Context, orderID uint) (*vm.OrderDetail, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID uint, status string) (*vm.OrderDetail, error)
}

type OrderService struct {
	dbDao     db.UnifiedDB
	publisher producer.OrderEventProducer
	metrics   *metrics.ServerMetrics
	logger    *zerolog.Logger
}

func NewOrderService(dbDao db.UnifiedDB, publisher producer.OrderEventProducer, m *metrics.ServerMetrics, logger *zerolog.Logger) *OrderService {
	if dbDao == nil || publisher == nil || logger == nil {
		panic("order service init failed, missing dependency")
	}
	return &OrderService{
		dbDao:     dbDao,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
	}
}

// ListUserOrders 最新的在前
func (s *OrderService) ListUserOrders(ctx context.Context, userID uint) ([]vm.OrderDetail, error) {
	orders, err := s.dbDao.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return vm.NewOrderDetails(orders), nil
}

// GetUserOrder 不是本人的訂單一律當作不存在
func (s *OrderService) GetUserOrder(ctx context.Context, userID, orderID uint) (*vm.OrderDetail, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrOrderNotFound
	}
	detail := vm.NewOrderDetail(order)
	return &detail, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context) ([]vm.OrderDetail, error) {
	orders, err := s.dbDao.GetAllOrders(ctx)
	if err != nil {
		return nil, err
	}
	return vm.NewOrderDetails(orders), nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID uint) (*vm.OrderDetail, error) {
	order, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	detail := vm.NewOrderDetail(order)
	return &detail, nil
}

/*
UpdateStatus 檢查順序:
狀態是否合法(ErrInvalidStatus) => 訂單是否存在, 一般使用者需是本人(ErrOrderNotFound) => 轉移表(ErrForbidden)
*/
func (s *OrderService) UpdateStatus(ctx context.Context, actor Actor, orderID uint, status string) (*vm.OrderDetail, error) {
	target, ok := model.ParseOrderStatus(status)
	if !ok {
		s.metrics.ObserveStatusTransition(string(actor.Role), "invalid", "invalid_status")
		return nil, ErrInvalidStatus
	}

	var (
		order *model.Order
		from  model.OrderStatus
	)
	err := s.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		var err error
		order, err = tx.LockOrderByID(ctx, orderID)
		if err != nil {
			if db.IsNotFound(err) {
				return ErrOrderNotFound
			}
			return err
		}
		if actor.Role != model.ActorAdmin && order.UserID != actor.UserID {
			return ErrOrderNotFound
		}
		if !model.CanTransition(actor.Role, order.Status, target) {
			return ErrForbidden
		}

		from = order.Status
		if err := tx.UpdateOrderStatus(ctx, order.ID, target); err != nil {
			return err
		}
		order.Status = target
		return nil
	})
	if err != nil {
		s.metrics.ObserveStatusTransition(string(actor.Role), string(target), transitionResult(err))
		return nil, err
	}
	s.metrics.ObserveStatusTransition(string(actor.Role), string(target), "success")

	if err := s.publisher.Publish(ctx, event.NewOrderStatusChangedEvent(order, from, actor.UserID, actor.Role)); err != nil {
		s.logger.Warn().Err(err).Uint("order_id", order.ID).Msg("publish order status event failed")
	}
	s.logger.Info().
		Uint("order_id", order.ID).
		Uint("actor_id", actor.UserID).
		Str("role", string(actor.Role)).
		Str("from", string(from)).
		Str("to", string(target)).
		Msg("order status updated")

	return s.GetOrder(ctx, order.ID)
}

func (s *OrderService) loadOrder(ctx context.Context, orderID uint) (*model.Order, error) {
	order, err := s.dbDao.GetOrderByID(ctx, orderID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func transitionResult(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "error"
	}
}

var _ IOrderService = (*OrderService)(nil)
