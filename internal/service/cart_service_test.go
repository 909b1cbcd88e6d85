package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CartServiceTestSuite struct {
	ServiceTestSuite
}

func (s *CartServiceTestSuite) TestAddItemDefaultsToOne() {
	user := s.createUser("a@example.com", false)
	product := s.createProduct("Soap", "10.00")

	item, err := s.cart.AddItem(s.ctx, user.ID, AddCartItemParams{ProductID: product.ID})
	require.NoError(s.T(), err)
	require.Equal(s.T(), 1, item.Quantity)
	require.Nil(s.T(), item.VariantID)
}

func (s *CartServiceTestSuite) TestAddSameLineIncrementsQuantity() {
	user := s.createUser("a@example.com", false)
	product := s.createProduct("Soap", "10.00")
	variant := s.createVariant(product.ID, "5.50")

	first := s.addItem(user.ID, product.ID, nil, 2)
	second := s.addItem(user.ID, product.ID, nil, 3)
	require.Equal(s.T(), first.ID, second.ID)
	require.Equal(s.T(), 5, second.Quantity)

	// 不同 variant 是不同的一筆
	withVariant := s.addItem(user.ID, product.ID, &variant.ID, 1)
	require.NotEqual(s.T(), first.ID, withVariant.ID)
	again := s.addItem(user.ID, product.ID, &variant.ID, 1)
	require.Equal(s.T(), withVariant.ID, again.ID)
	require.Equal(s.T(), 2, again.Quantity)

	require.Equal(s.T(), 2, s.db.countCartItems(user.ID))
}

func (s *CartServiceTestSuite) TestAddItemValidation() {
	user := s.createUser("a@example.com", false)
	product := s.createProduct("Soap", "10.00")
	other := s.createProduct("Towel", "3.00")
	otherVariant := s.createVariant(other.ID, "4.00")
	tooMany := int64(math.MaxInt32) + 1

	testCases := []struct {
		name   string
		params AddCartItemParams
		err    error
	}{
		{name: "zero quantity", params: AddCartItemParams{ProductID: product.ID, Quantity: intPtr(0)}, err: ErrInvalidQuantity},
		{name: "negative quantity", params: AddCartItemParams{ProductID: product.ID, Quantity: intPtr(-2)}, err: ErrInvalidQuantity},
		{name: "quantity over column range", params: AddCartItemParams{ProductID: product.ID, Quantity: intPtr(int(tooMany))}, err: ErrInvalidQuantity},
		{name: "missing product", params: AddCartItemParams{ProductID: 9999}, err: ErrProductNotFound},
		{name: "missing variant", params: AddCartItemParams{ProductID: product.ID, VariantID: uintPtr(9999)}, err: ErrInvalidVariant},
		{name: "variant of other product", params: AddCartItemParams{ProductID: product.ID, VariantID: &otherVariant.ID}, err: ErrInvalidVariant},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.cart.AddItem(s.ctx, user.ID, tc.params)
			require.ErrorIs(s.T(), err, tc.err)
		})
	}
	require.Equal(s.T(), 0, s.db.countCartItems(user.ID))
}

func (s *CartServiceTestSuite) TestAddItemMergedQuantityOverflow() {
	user := s.createUser("a@example.com", false)
	product := s.createProduct("Soap", "10.00")
	item := s.addItem(user.ID, product.ID, nil, math.MaxInt32-1)

	_, err := s.cart.AddItem(s.ctx, user.ID, AddCartItemParams{ProductID: product.ID, Quantity: intPtr(2)})
	require.ErrorIs(s.T(), err, ErrInvalidQuantity)
	require.ErrorIs(s.T(), err, ErrValidation)
	require.Equal(s.T(), math.MaxInt32-1, s.db.state.cartItems[item.ID].Quantity)

	// 剛好到上限可以
	full := s.addItem(user.ID, product.ID, nil, 1)
	require.Equal(s.T(), math.MaxInt32, full.Quantity)
}

func (s *CartServiceTestSuite) TestGetCart() {
	user := s.createUser("a@example.com", false)

	empty, err := s.cart.GetCart(s.ctx, user.ID)
	require.NoError(s.T(), err)
	require.Empty(s.T(), empty.Items)
	require.Equal(s.T(), "0.00", empty.Total)
	require.Equal(s.T(), "INR", empty.Currency)

	product := s.createProduct("Soap", "10.00")
	variant := s.createVariant(product.ID, "5.50")
	s.addItem(user.ID, product.ID, nil, 2)
	s.addItem(user.ID, product.ID, &variant.ID, 1)

	view, err := s.cart.GetCart(s.ctx, user.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), view.Items, 2)
	require.Equal(s.T(), "10.00", view.Items[0].Price)
	require.Equal(s.T(), "20.00", view.Items[0].Subtotal)
	require.Equal(s.T(), "5.50", view.Items[1].Price)
	require.Equal(s.T(), "Soap", view.Items[1].ProductName)
	require.Equal(s.T(), "25.50", view.Total)
	require.True(s.T(), view.Items[0].Available)
}

func (s *CartServiceTestSuite) TestGetCartWithDeletedProduct() {
	user := s.createUser("a@example.com", false)
	soap := s.createProduct("Soap", "10.00")
	shirt := s.createProduct("Shirt", "99.00")
	variant := s.createVariant(shirt.ID, "5.50")
	s.addItem(user.ID, soap.ID, nil, 2)
	s.addItem(user.ID, shirt.ID, &variant.ID, 1)

	require.NoError(s.T(), s.catalog.DeleteProduct(s.ctx, shirt.ID))

	view, err := s.cart.GetCart(s.ctx, user.ID)
	require.NoError(s.T(), err)
	require.Len(s.T(), view.Items, 2)
	require.True(s.T(), view.Items[0].Available)
	require.Equal(s.T(), "20.00", view.Items[0].Subtotal)

	gone := view.Items[1]
	require.False(s.T(), gone.Available)
	require.Equal(s.T(), shirt.ID, gone.ProductID)
	require.Equal(s.T(), "Unknown Product", gone.ProductName)
	require.Equal(s.T(), "0.00", gone.Subtotal)
	require.Equal(s.T(), "20.00", view.Total)

	// 結帳同樣不接受已下架的商品
	_, err = s.checkout.Checkout(s.ctx, user.ID, 1)
	require.ErrorIs(s.T(), err, ErrProductNotFound)
	require.Zero(s.T(), s.db.countOrders())
	require.Equal(s.T(), 2, s.db.countCartItems(user.ID))
}

func (s *CartServiceTestSuite) TestUpdateItem() {
	owner := s.createUser("a@example.com", false)
	intruder := s.createUser("b@example.com", false)
	product := s.createProduct("Soap", "10.00")
	item := s.addItem(owner.ID, product.ID, nil, 1)

	_, err := s.cart.UpdateItem(s.ctx, owner.ID, item.ID, 0)
	require.ErrorIs(s.T(), err, ErrInvalidQuantity)

	tooMany := int64(math.MaxInt32) + 1
	_, err = s.cart.UpdateItem(s.ctx, owner.ID, item.ID, int(tooMany))
	require.ErrorIs(s.T(), err, ErrInvalidQuantity)
	require.Equal(s.T(), 1, s.db.state.cartItems[item.ID].Quantity)

	_, err = s.cart.UpdateItem(s.ctx, intruder.ID, item.ID, 4)
	require.ErrorIs(s.T(), err, ErrCartItemNotFound)

	_, err = s.cart.UpdateItem(s.ctx, owner.ID, 9999, 4)
	require.ErrorIs(s.T(), err, ErrNotFound)

	updated, err := s.cart.UpdateItem(s.ctx, owner.ID, item.ID, 4)
	require.NoError(s.T(), err)
	require.Equal(s.T(), 4, updated.Quantity)

	view, err := s.cart.GetCart(s.ctx, owner.ID)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "40.00", view.Total)
}

func (s *CartServiceTestSuite) TestDeleteItem() {
	owner := s.createUser("a@example.com", false)
	intruder := s.createUser("b@example.com", false)
	product := s.createProduct("Soap", "10.00")
	item := s.addItem(owner.ID, product.ID, nil, 1)

	require.ErrorIs(s.T(), s.cart.DeleteItem(s.ctx, intruder.ID, item.ID), ErrCartItemNotFound)
	require.Equal(s.T(), 1, s.db.countCartItems(owner.ID))

	require.NoError(s.T(), s.cart.DeleteItem(s.ctx, owner.ID, item.ID))
	require.Equal(s.T(), 0, s.db.countCartItems(owner.ID))
	require.ErrorIs(s.T(), s.cart.DeleteItem(s.ctx, owner.ID, item.ID), ErrCartItemNotFound)
}

func TestCartServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CartServiceTestSuite))
}
