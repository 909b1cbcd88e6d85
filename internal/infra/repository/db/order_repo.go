package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepo struct {
	db *DbDao
}

func NewOrderRepo(db *DbDao) *OrderRepo {
	return &OrderRepo{db: db}
}

// 訂單明細需要的關聯, 已下架商品也要能顯示名稱
func preloadOrderDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("id") })
}

// Create - 只建立訂單本身
func (s *OrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	return s.db.WithContext(ctx).Omit("Items", "Payments", "User").Create(order).Error
}

func (s *OrderRepo) CreateOrderItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Omit("Product").Create(&items).Error
}

// Update - 寫入訂單總額
func (s *OrderRepo) UpdateOrderTotal(ctx context.Context, orderID uint, total decimal.Decimal) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", orderID).Update("total_amount", total)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Read - 根據ID查詢訂單
func (s *OrderRepo) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := preloadOrderDetail(s.db.WithContext(ctx)).First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Read - 使用者的訂單, 最新的在前
func (s *OrderRepo) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := preloadOrderDetail(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error
	return orders, err
}

// Read - 查詢所有訂單
func (s *OrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	err := preloadOrderDetail(s.db.WithContext(ctx)).
		Order("created_at DESC").Order("id DESC").
		Find(&orders).Error
	return orders, err
}

// LockOrderByID 需在 transaction 內呼叫
func (s *OrderRepo) LockOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update - 更新訂單狀態
func (s *OrderRepo) UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	result := s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
