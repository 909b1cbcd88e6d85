package service

import (
	"context"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/metrics"
	mock_producer "github.com/RoyceAzure/lab/storefront/internal/infra/producer/mock"
	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ServiceTestSuite 共用的假資料庫與 mock publisher
type ServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	db        *fakeDB
	ctrl      *gomock.Controller
	publisher *mock_producer.MockOrderEventProducer
	metrics   *metrics.ServerMetrics
	logger    zerolog.Logger

	catalog  *CatalogService
	cart     *CartService
	checkout *CheckoutService
	orders   *OrderService
	payments *PaymentService
	users    *UserService
}

func (suite *ServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = newFakeDB()
	suite.ctrl = gomock.NewController(suite.T())
	suite.publisher = mock_producer.NewMockOrderEventProducer(suite.ctrl)
	suite.metrics = metrics.NewServerMetrics()
	suite.logger = zerolog.Nop()

	suite.catalog = NewCatalogService(suite.db, &suite.logger)
	suite.cart = NewCartService(suite.db, &suite.logger)
	suite.checkout = NewCheckoutService(suite.db, suite.publisher, suite.metrics, &suite.logger)
	suite.orders = NewOrderService(suite.db, suite.publisher, suite.metrics, &suite.logger)
	suite.payments = NewPaymentService(suite.db, &suite.logger)
	suite.users = NewUserService(suite.db)
}

func (suite *ServiceTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *ServiceTestSuite) createUser(email string, admin bool) *model.User {
	user := &model.User{Email: email, FirstName: "Test", LastName: "User", IsActive: true, IsSuperuser: admin}
	require.NoError(suite.T(), suite.db.CreateUser(suite.ctx, user))
	return user
}

// createProduct 建立一個沒有選項的商品, 回傳商品與預設 variant
func (suite *ServiceTestSuite) createProduct(name, price string) *model.Product {
	product, err := suite.catalog.CreateProduct(suite.ctx, CreateProductParams{
		ProductName: name,
		Status:      "active",
		Price:       decimal.RequireFromString(price),
		Stock:       10,
	})
	require.NoError(suite.T(), err)
	return product
}

func (suite *ServiceTestSuite) createVariant(productID uint, price string) *model.ProductVariant {
	variants := []model.ProductVariant{{ProductID: productID, Price: decimal.RequireFromString(price), Stock: 5}}
	require.NoError(suite.T(), suite.db.CreateProductVariants(suite.ctx, variants))
	return &variants[0]
}

func (suite *ServiceTestSuite) addItem(userID, productID uint, variantID *uint, quantity int) *model.CartItem {
	item, err := suite.cart.AddItem(suite.ctx, userID, AddCartItemParams{ProductID: productID, VariantID: variantID, Quantity: &quantity})
	require.NoError(suite.T(), err)
	return item
}

func intPtr(v int) *int {
	return &v
}

func uintPtr(v uint) *uint {
	return &v
}
