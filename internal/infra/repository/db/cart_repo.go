package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepo struct {
	db *DbDao
}

func NewCartRepo(db *DbDao) *CartRepo {
	return &CartRepo{db: db}
}

func preloadCartItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.Product").
		Preload("Items.Variant")
}

// Read - 使用者的 cart 與 items
func (s *CartRepo) GetCartByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := preloadCartItems(s.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// 不存在就建立, 同時建立時以 unique user_id 為準
func (s *CartRepo) GetOrCreateCart(ctx context.Context, userID uint) (*model.Cart, error) {
	cart := model.Cart{UserID: userID}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&cart).Error
	if err != nil {
		return nil, err
	}
	return s.LockCartByUserID(ctx, userID)
}

// LockCartByUserID 需在 transaction 內呼叫, 鎖住 cart 直到 commit
func (s *CartRepo) LockCartByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := s.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}

	// 只鎖 cart 本身, items 另外查
	var items []model.CartItem
	err = s.db.WithContext(ctx).
		Preload("Product").
		Preload("Variant").
		Where("cart_id = ?", cart.ID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return &cart, nil
}

// GetUserCartItem item 必須屬於該使用者的 cart
func (s *CartRepo) GetUserCartItem(ctx context.Context, userID, itemID uint) (*model.CartItem, error) {
	var item model.CartItem
	err := s.db.WithContext(ctx).
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.user_id = ?", itemID, userID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartRepo) FindCartItem(ctx context.Context, cartID, productID uint, variantID *uint) (*model.CartItem, error) {
	var item model.CartItem
	query := s.db.WithContext(ctx).Where("cart_id = ? AND product_id = ?", cartID, productID)
	if variantID == nil {
		query = query.Where("variant_id IS NULL")
	} else {
		query = query.Where("variant_id = ?", *variantID)
	}
	err := query.First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartRepo) CreateCartItem(ctx context.Context, item *model.CartItem) error {
	return translateError(s.db.WithContext(ctx).Omit("Product", "Variant").Create(item).Error)
}

func (s *CartRepo) UpdateCartItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	result := s.db.WithContext(ctx).Model(&model.CartItem{}).Where("id = ?", itemID).Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *CartRepo) DeleteCartItem(ctx context.Context, itemID uint) error {
	result := s.db.WithContext(ctx).Delete(&model.CartItem{}, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ClearCartItems 清空 items, cart 保留
func (s *CartRepo) ClearCartItems(ctx context.Context, cartID uint) (int64, error) {
	result := s.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&model.CartItem{})
	return result.RowsAffected, result.Error
}
