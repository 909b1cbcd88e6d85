package service

import (
	"context"
	"math"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	vm "github.com/RoyceAzure/lab/storefront/internal/model"
	"github.com/rs/zerolog"
)

type ICartService interface {
	AddItem(ctx context.Context, userID uint, params AddCartItemParams) (*model.CartItem, error)
	GetCart(ctx context.Context, userID uint) (*vm.CartView, error)
	UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*model.CartItem, error)
	DeleteItem(ctx context.Context, userID, itemID uint) error
}

type AddCartItemParams struct {
	ProductID uint
	VariantID *uint
	// nil 代表 1
	Quantity *int
}

func (p AddCartItemParams) quantity() int {
	if p.Quantity == nil {
		return 1
	}
	return *p.Quantity
}

// quantity 欄位是 INTEGER
const maxCartQuantity = math.MaxInt32

func validQuantity(quantity int) bool {
	return quantity > 0 && quantity <= maxCartQuantity
}

type CartService struct {
	dbDao  db.UnifiedDB
	logger *zerolog.Logger
}

func NewCartService(dbDao db.UnifiedDB, logger *zerolog.Logger) *CartService {
	if dbDao == nil || logger == nil {
		panic("cart service init failed, missing dependency")
	}
	return &CartService{dbDao: dbDao, logger: logger}
}

// AddItem 同一個 (product, variant) 已在購物車內就累加數量
func (s *CartService) AddItem(ctx context.Context, userID uint, params AddCartItemParams) (*model.CartItem, error) {
	quantity := params.quantity()
	if !validQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}

	var result *model.CartItem
	err := s.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		if _, err := tx.GetProductByID(ctx, params.ProductID); err != nil {
			if db.IsNotFound(err) {
				return ErrProductNotFound
			}
			return err
		}

		if params.VariantID != nil {
			variant, err := tx.GetVariantByID(ctx, *params.VariantID)
			if err != nil {
				if db.IsNotFound(err) {
					return ErrInvalidVariant
				}
				return err
			}
			if variant.ProductID != params.ProductID {
				return ErrInvalidVariant
			}
		}

		// 鎖住 cart, 同一使用者的加入請求依序執行
		cart, err := tx.GetOrCreateCart(ctx, userID)
		if err != nil {
			return err
		}

		existing, err := tx.FindCartItem(ctx, cart.ID, params.ProductID, params.VariantID)
		switch {
		case err == nil:
			if existing.Quantity > maxCartQuantity-quantity {
				return ErrInvalidQuantity
			}
			existing.Quantity += quantity
			if err := tx.UpdateCartItemQuantity(ctx, existing.ID, existing.Quantity); err != nil {
				return err
			}
			result = existing
			return nil
		case db.IsNotFound(err):
			item := &model.CartItem{
				CartID:    cart.ID,
				ProductID: params.ProductID,
				VariantID: params.VariantID,
				Quantity:  quantity,
			}
			if err := tx.CreateCartItem(ctx, item); err != nil {
				return err
			}
			result = item
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Uint("user_id", userID).
		Uint("cart_item_id", result.ID).
		Int("quantity", result.Quantity).
		Msg("cart item added")
	return result, nil
}

// GetCart 沒有購物車時回傳空的內容
func (s *CartService) GetCart(ctx context.Context, userID uint) (*vm.CartView, error) {
	cart, err := s.dbDao.GetCartByUserID(ctx, userID)
	if err != nil {
		if db.IsNotFound(err) {
			return vm.EmptyCartView(), nil
		}
		return nil, err
	}
	return vm.NewCartView(cart), nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*model.CartItem, error) {
	if !validQuantity(quantity) {
		return nil, ErrInvalidQuantity
	}

	item, err := s.dbDao.GetUserCartItem(ctx, userID, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}

	if err := s.dbDao.UpdateCartItemQuantity(ctx, item.ID, quantity); err != nil {
		if db.IsNotFound(err) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

func (s *CartService) DeleteItem(ctx context.Context, userID, itemID uint) error {
	item, err := s.dbDao.GetUserCartItem(ctx, userID, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return ErrCartItemNotFound
		}
		return err
	}

	if err := s.dbDao.DeleteCartItem(ctx, item.ID); err != nil {
		if db.IsNotFound(err) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}

var _ ICartService = (*CartService)(nil)
