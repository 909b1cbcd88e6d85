package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/constants"
	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ICatalogService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (*model.Product, error)
	RetrieveProduct(ctx context.Context, productID uint) (*model.Product, error)
	ListProducts(ctx context.Context, limit int) ([]model.Product, error)
	DeleteProduct(ctx context.Context, productID uint) error
}

type ProductOptionParams struct {
	OptionName string
	Items      []string
}

type CreateProductParams struct {
	ProductName string
	Description string
	Status      string
	Price       decimal.Decimal
	Stock       int
	Options     []ProductOptionParams
}

func (p CreateProductParams) validate() error {
	if strings.TrimSpace(p.ProductName) == "" {
		return fmt.Errorf("%w: product_name is required", ErrInvalidProduct)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	if len(p.Options) > model.MaxProductOptions {
		return fmt.Errorf("%w: at most %d options", ErrInvalidProduct, model.MaxProductOptions)
	}
	for _, opt := range p.Options {
		if strings.TrimSpace(opt.OptionName) == "" {
			return fmt.Errorf("%w: option_name is required", ErrInvalidProduct)
		}
		if len(opt.Items) == 0 {
			return fmt.Errorf("%w: option %s has no items", ErrInvalidProduct, opt.OptionName)
		}
	}
	return nil
}

type CatalogService struct {
	dbDao  db.UnifiedDB
	logger *zerolog.Logger
}

func NewCatalogService(dbDao db.UnifiedDB, logger *zerolog.Logger) *CatalogService {
	if dbDao == nil || logger == nil {
		panic("catalog service init failed, missing dependency")
	}
	return &CatalogService{dbDao: dbDao, logger: logger}
}

// CreateProduct 商品, 選項, variant 在同一個 transaction 內建立
func (s *CatalogService) CreateProduct(ctx context.Context, params CreateProductParams) (*model.Product, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	var created *productCreation
	err := s.dbDao.ExecTx(ctx, func(tx db.UnifiedDB) error {
		created = newProductCreation(params)
		if err := created.createProduct(ctx, tx); err != nil {
			return err
		}
		if err := created.createOptions(ctx, tx); err != nil {
			return err
		}
		return created.createVariants(ctx, tx)
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.Info().
		Uint("product_id", created.product.ID).
		Int("options", len(created.options)).
		Int("variants", len(created.variants)).
		Msg("product created")
	return created.result(), nil
}

func (s *CatalogService) RetrieveProduct(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := s.dbDao.GetProductByID(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) ListProducts(ctx context.Context, limit int) ([]model.Product, error) {
	if limit <= 0 {
		limit = constants.DefaultProductListSize
	}
	if limit > constants.MaxProductListSize {
		limit = constants.MaxProductListSize
	}
	return s.dbDao.ListProducts(ctx, limit)
}

// DeleteProduct 軟刪除, 已成立的訂單仍保留快照
func (s *CatalogService) DeleteProduct(ctx context.Context, productID uint) error {
	err := s.dbDao.DeleteProduct(ctx, productID)
	if err != nil {
		if db.IsNotFound(err) {
			return ErrProductNotFound
		}
		return err
	}
	s.logger.Info().Uint("product_id", productID).Msg("product deleted")
	return nil
}

// productCreation 單次建立商品的中間狀態, 每個 request 各自一份
type productCreation struct {
	params   CreateProductParams
	product  *model.Product
	options  []model.ProductOption
	variants []model.ProductVariant
}

func newProductCreation(params CreateProductParams) *productCreation {
	return &productCreation{params: params}
}

func (c *productCreation) createProduct(ctx context.Context, tx db.UnifiedDB) error {
	status := model.ParseProductStatus(c.params.Status)
	product := &model.Product{
		ProductName: strings.TrimSpace(c.params.ProductName),
		Description: c.params.Description,
		Status:      status,
		Price:       c.params.Price,
	}
	if status == model.ProductStatusActive {
		now := time.Now().UTC()
		product.PublishedAt = &now
	}
	if err := tx.CreateProduct(ctx, product); err != nil {
		return err
	}
	c.product = product
	return nil
}

func (c *productCreation) createOptions(ctx context.Context, tx db.UnifiedDB) error {
	if c.product == nil {
		return errors.New("product must be created before options")
	}
	c.options = make([]model.ProductOption, 0, len(c.params.Options))
	for _, opt := range c.params.Options {
		option := model.ProductOption{
			ProductID:  c.product.ID,
			OptionName: strings.TrimSpace(opt.OptionName),
			Items:      make([]model.ProductOptionItem, 0, len(opt.Items)),
		}
		for _, name := range opt.Items {
			option.Items = append(option.Items, model.ProductOptionItem{ItemName: strings.TrimSpace(name)})
		}
		if err := tx.CreateProductOption(ctx, &option); err != nil {
			return err
		}
		c.options = append(c.options, option)
	}
	return nil
}

func (c *productCreation) createVariants(ctx context.Context, tx db.UnifiedDB) error {
	c.variants = c.buildVariants()
	return tx.CreateProductVariants(ctx, c.variants)
}

// buildVariants 所有選項 item 的笛卡兒積, 沒有選項時建立一個預設 variant
func (c *productCreation) buildVariants() []model.ProductVariant {
	combos := [][]uint{{}}
	for _, opt := range c.options {
		next := make([][]uint, 0, len(combos)*len(opt.Items))
		for _, combo := range combos {
			for _, item := range opt.Items {
				extended := make([]uint, len(combo), len(combo)+1)
				copy(extended, combo)
				next = append(next, append(extended, item.ID))
			}
		}
		combos = next
	}

	variants := make([]model.ProductVariant, 0, len(combos))
	for _, combo := range combos {
		v := model.ProductVariant{
			ProductID: c.product.ID,
			Price:     c.params.Price,
			Stock:     c.params.Stock,
		}
		slots := []**uint{&v.Option1, &v.Option2, &v.Option3}
		for i, itemID := range combo {
			id := itemID
			*slots[i] = &id
		}
		variants = append(variants, v)
	}
	return variants
}

func (c *productCreation) result() *model.Product {
	product := *c.product
	product.Options = c.options
	product.Variants = c.variants
	return &product
}

var _ ICatalogService = (*CatalogService)(nil)
