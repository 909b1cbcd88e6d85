package db

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	// 基礎操作
	InitMigrate() error
	// ExecTx fn 內拿到的 UnifiedDB 綁在同一個 transaction, fn 回傳錯誤就 rollback
	ExecTx(ctx context.Context, fn func(tx UnifiedDB) error) error

	IProductRepository
	ICartRepository
	IOrderRepository
	IPaymentRepository
	IUserRepository
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	CreateProductOption(ctx context.Context, option *model.ProductOption) error
	CreateProductVariants(ctx context.Context, variants []model.ProductVariant) error
	GetProductByID(ctx context.Context, id uint) (*model.Product, error)
	ListProducts(ctx context.Context, limit int) ([]model.Product, error)
	GetVariantByID(ctx context.Context, id uint) (*model.ProductVariant, error)
	DeleteProduct(ctx context.Context, id uint) error
}

// ICartRepository Cart 相關操作介面
type ICartRepository interface {
	GetCartByUserID(ctx context.Context, userID uint) (*model.Cart, error)
	GetOrCreateCart(ctx context.Context, userID uint) (*model.Cart, error)
	LockCartByUserID(ctx context.Context, userID uint) (*model.Cart, error)
	GetUserCartItem(ctx context.Context, userID, itemID uint) (*model.CartItem, error)
	FindCartItem(ctx context.Context, cartID, productID uint, variantID *uint) (*model.CartItem, error)
	CreateCartItem(ctx context.Context, item *model.CartItem) error
	UpdateCartItemQuantity(ctx context.Context, itemID uint, quantity int) error
	DeleteCartItem(ctx context.Context, itemID uint) error
	ClearCartItems(ctx context.Context, cartID uint) (int64, error)
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	CreateOrderItems(ctx context.Context, items []model.OrderItem) error
	UpdateOrderTotal(ctx context.Context, orderID uint, total decimal.Decimal) error
	GetOrderByID(ctx context.Context, id uint) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	LockOrderByID(ctx context.Context, id uint) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error
}

// IPaymentRepository Payment 相關操作介面
type IPaymentRepository interface {
	CreatePayment(ctx context.Context, payment *model.Payment) error
	ListPayments(ctx context.Context, offset, limit int) ([]model.Payment, int64, error)
}

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id uint) (*model.User, error)
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*ProductRepo
	*CartRepo
	*OrderRepo
	*PaymentRepo
	*UserRepo
}

// NewUnifiedDB 創建新的統一資料庫實例
func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		db:          db,
		dbDao:       dbDao,
		ProductRepo: NewProductRepo(dbDao),
		CartRepo:    NewCartRepo(dbDao),
		OrderRepo:   NewOrderRepo(dbDao),
		PaymentRepo: NewPaymentRepo(dbDao),
		UserRepo:    NewUserRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}

func (u *UnifiedDBImpl) ExecTx(ctx context.Context, fn func(tx UnifiedDB) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnifiedDB(tx))
	})
}

var (
	_ UnifiedDB          = (*UnifiedDBImpl)(nil)
	_ IProductRepository = (*UnifiedDBImpl)(nil)
	_ ICartRepository    = (*UnifiedDBImpl)(nil)
	_ IOrderRepository   = (*UnifiedDBImpl)(nil)
	_ IPaymentRepository = (*UnifiedDBImpl)(nil)
	_ IUserRepository    = (*UnifiedDBImpl)(nil)
)
