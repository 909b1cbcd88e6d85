package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// fakeState 記憶體內的資料表, ExecTx 失敗時整份還原
type fakeState struct {
	nextID      uint
	users       map[uint]model.User
	products    map[uint]model.Product
	deleted     map[uint]bool
	options     map[uint]model.ProductOption
	optionItems map[uint]model.ProductOptionItem
	variants    map[uint]model.ProductVariant
	carts       map[uint]model.Cart
	cartItems   map[uint]model.CartItem
	orders      map[uint]model.Order
	orderItems  map[uint]model.OrderItem
	payments    map[uint]model.Payment
}

func newFakeState() *fakeState {
	return &fakeState{
		users:       map[uint]model.User{},
		products:    map[uint]model.Product{},
		deleted:     map[uint]bool{},
		options:     map[uint]model.ProductOption{},
		optionItems: map[uint]model.ProductOptionItem{},
		variants:    map[uint]model.ProductVariant{},
		carts:       map[uint]model.Cart{},
		cartItems:   map[uint]model.CartItem{},
		orders:      map[uint]model.Order{},
		orderItems:  map[uint]model.OrderItem{},
		payments:    map[uint]model.Payment{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *fakeState) clone() *fakeState {
	return &fakeState{
		nextID:      s.nextID,
		users:       cloneMap(s.users),
		products:    cloneMap(s.products),
		deleted:     cloneMap(s.deleted),
		options:     cloneMap(s.options),
		optionItems: cloneMap(s.optionItems),
		variants:    cloneMap(s.variants),
		carts:       cloneMap(s.carts),
		cartItems:   cloneMap(s.cartItems),
		orders:      cloneMap(s.orders),
		orderItems:  cloneMap(s.orderItems),
		payments:    cloneMap(s.payments),
	}
}

var fakeEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeDB struct {
	txMu  sync.Mutex
	state *fakeState
	// method name -> 要回傳的錯誤
	failOn map[string]error
}

func newFakeDB() *fakeDB {
	return &fakeDB{state: newFakeState(), failOn: map[string]error{}}
}

func (f *fakeDB) id() uint {
	f.state.nextID++
	return f.state.nextID
}

func (f *fakeDB) fail(method string) error {
	return f.failOn[method]
}

func (f *fakeDB) InitMigrate() error { return nil }

func (f *fakeDB) ExecTx(ctx context.Context, fn func(tx db.UnifiedDB) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	snapshot := f.state.clone()
	if err := fn(f); err != nil {
		f.state = snapshot
		return err
	}
	return nil
}

// ---- product ----

func (f *fakeDB) CreateProduct(ctx context.Context, product *model.Product) error {
	if err := f.fail("CreateProduct"); err != nil {
		return err
	}
	product.ID = f.id()
	product.CreatedAt = fakeEpoch.Add(time.Duration(product.ID) * time.Second)
	stored := *product
	stored.Options, stored.Variants = nil, nil
	f.state.products[product.ID] = stored
	return nil
}

func (f *fakeDB) CreateProductOption(ctx context.Context, option *model.ProductOption) error {
	if err := f.fail("CreateProductOption"); err != nil {
		return err
	}
	option.ID = f.id()
	for i := range option.Items {
		option.Items[i].ID = f.id()
		option.Items[i].OptionID = option.ID
		f.state.optionItems[option.Items[i].ID] = option.Items[i]
	}
	stored := *option
	stored.Items = nil
	f.state.options[option.ID] = stored
	return nil
}

func (f *fakeDB) CreateProductVariants(ctx context.Context, variants []model.ProductVariant) error {
	if err := f.fail("CreateProductVariants"); err != nil {
		return err
	}
	for i := range variants {
		variants[i].ID = f.id()
		f.state.variants[variants[i].ID] = variants[i]
	}
	return nil
}

func (f *fakeDB) GetProductByID(ctx context.Context, id uint) (*model.Product, error) {
	p, ok := f.state.products[id]
	if !ok || f.state.deleted[id] {
		return nil, gorm.ErrRecordNotFound
	}
	for _, opt := range sortedValues(f.state.options, func(o model.ProductOption) uint { return o.ID }) {
		if opt.ProductID != id {
			continue
		}
		for _, item := range sortedValues(f.state.optionItems, func(i model.ProductOptionItem) uint { return i.ID }) {
			if item.OptionID == opt.ID {
				opt.Items = append(opt.Items, item)
			}
		}
		p.Options = append(p.Options, opt)
	}
	for _, v := range sortedValues(f.state.variants, func(v model.ProductVariant) uint { return v.ID }) {
		if v.ProductID == id {
			p.Variants = append(p.Variants, v)
		}
	}
	return &p, nil
}

func (f *fakeDB) ListProducts(ctx context.Context, limit int) ([]model.Product, error) {
	all := sortedValues(f.state.products, func(p model.Product) uint { return p.ID })
	out := make([]model.Product, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if f.state.deleted[all[i].ID] {
			continue
		}
		out = append(out, all[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeDB) GetVariantByID(ctx context.Context, id uint) (*model.ProductVariant, error) {
	v, ok := f.state.variants[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &v, nil
}

func (f *fakeDB) DeleteProduct(ctx context.Context, id uint) error {
	if _, ok := f.state.products[id]; !ok || f.state.deleted[id] {
		return gorm.ErrRecordNotFound
	}
	f.state.deleted[id] = true
	return nil
}

// ---- cart ----

func (f *fakeDB) loadCart(cart model.Cart) *model.Cart {
	for _, item := range sortedValues(f.state.cartItems, func(i model.CartItem) uint { return i.ID }) {
		if item.CartID != cart.ID {
			continue
		}
		if p, ok := f.state.products[item.ProductID]; ok && !f.state.deleted[item.ProductID] {
			p := p
			item.Product = &p
		}
		if item.VariantID != nil {
			if v, ok := f.state.variants[*item.VariantID]; ok {
				v := v
				item.Variant = &v
			}
		}
		cart.Items = append(cart.Items, item)
	}
	return &cart
}

func (f *fakeDB) findCart(userID uint) (model.Cart, bool) {
	for _, c := range f.state.carts {
		if c.UserID == userID {
			return c, true
		}
	}
	return model.Cart{}, false
}

func (f *fakeDB) GetCartByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	cart, ok := f.findCart(userID)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.loadCart(cart), nil
}

func (f *fakeDB) GetOrCreateCart(ctx context.Context, userID uint) (*model.Cart, error) {
	if _, ok := f.findCart(userID); !ok {
		cart := model.Cart{ID: f.id(), UserID: userID}
		f.state.carts[cart.ID] = cart
	}
	return f.LockCartByUserID(ctx, userID)
}

func (f *fakeDB) LockCartByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	if err := f.fail("LockCartByUserID"); err != nil {
		return nil, err
	}
	return f.GetCartByUserID(ctx, userID)
}

func (f *fakeDB) GetUserCartItem(ctx context.Context, userID, itemID uint) (*model.CartItem, error) {
	item, ok := f.state.cartItems[itemID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cart, ok := f.state.carts[item.CartID]
	if !ok || cart.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (f *fakeDB) FindCartItem(ctx context.Context, cartID, productID uint, variantID *uint) (*model.CartItem, error) {
	for _, item := range f.state.cartItems {
		if item.CartID == cartID && item.SameLine(productID, variantID) {
			item := item
			return &item, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDB) CreateCartItem(ctx context.Context, item *model.CartItem) error {
	if err := f.fail("CreateCartItem"); err != nil {
		return err
	}
	for _, existing := range f.state.cartItems {
		if existing.CartID == item.CartID && existing.SameLine(item.ProductID, item.VariantID) {
			return db.ErrDuplicateKey
		}
	}
	item.ID = f.id()
	stored := *item
	stored.Product, stored.Variant = nil, nil
	f.state.cartItems[item.ID] = stored
	return nil
}

func (f *fakeDB) UpdateCartItemQuantity(ctx context.Context, itemID uint, quantity int) error {
	item, ok := f.state.cartItems[itemID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	item.Quantity = quantity
	f.state.cartItems[itemID] = item
	return nil
}

func (f *fakeDB) DeleteCartItem(ctx context.Context, itemID uint) error {
	if _, ok := f.state.cartItems[itemID]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.state.cartItems, itemID)
	return nil
}

func (f *fakeDB) ClearCartItems(ctx context.Context, cartID uint) (int64, error) {
	if err := f.fail("ClearCartItems"); err != nil {
		return 0, err
	}
	var n int64
	for id, item := range f.state.cartItems {
		if item.CartID == cartID {
			delete(f.state.cartItems, id)
			n++
		}
	}
	return n, nil
}

// ---- order ----

func (f *fakeDB) CreateOrder(ctx context.Context, order *model.Order) error {
	if err := f.fail("CreateOrder"); err != nil {
		return err
	}
	order.ID = f.id()
	order.CreatedAt = fakeEpoch.Add(time.Duration(order.ID) * time.Second)
	stored := *order
	stored.Items, stored.Payments, stored.User = nil, nil, nil
	f.state.orders[order.ID] = stored
	return nil
}

func (f *fakeDB) CreateOrderItems(ctx context.Context, items []model.OrderItem) error {
	if err := f.fail("CreateOrderItems"); err != nil {
		return err
	}
	for i := range items {
		items[i].ID = f.id()
		stored := items[i]
		stored.Product = nil
		f.state.orderItems[items[i].ID] = stored
	}
	return nil
}

func (f *fakeDB) UpdateOrderTotal(ctx context.Context, orderID uint, total decimal.Decimal) error {
	order, ok := f.state.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.TotalAmount = total
	f.state.orders[orderID] = order
	return nil
}

func (f *fakeDB) loadOrder(order model.Order) model.Order {
	if u, ok := f.state.users[order.UserID]; ok {
		u := u
		order.User = &u
	}
	for _, item := range sortedValues(f.state.orderItems, func(i model.OrderItem) uint { return i.ID }) {
		if item.OrderID != order.ID {
			continue
		}
		// 訂單顯示不管商品是否已刪除
		if p, ok := f.state.products[item.ProductID]; ok {
			p := p
			item.Product = &p
		}
		order.Items = append(order.Items, item)
	}
	for _, p := range sortedValues(f.state.payments, func(p model.Payment) uint { return p.ID }) {
		if p.OrderID == order.ID {
			order.Payments = append(order.Payments, p)
		}
	}
	return order
}

func (f *fakeDB) GetOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	order, ok := f.state.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := f.loadOrder(order)
	return &loaded, nil
}

func (f *fakeDB) listOrders(match func(model.Order) bool) []model.Order {
	all := sortedValues(f.state.orders, func(o model.Order) uint { return o.ID })
	out := make([]model.Order, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if match(all[i]) {
			out = append(out, f.loadOrder(all[i]))
		}
	}
	return out
}

func (f *fakeDB) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	return f.listOrders(func(o model.Order) bool { return o.UserID == userID }), nil
}

func (f *fakeDB) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return f.listOrders(func(model.Order) bool { return true }), nil
}

func (f *fakeDB) LockOrderByID(ctx context.Context, id uint) (*model.Order, error) {
	order, ok := f.state.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &order, nil
}

func (f *fakeDB) UpdateOrderStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	order, ok := f.state.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = status
	f.state.orders[id] = order
	return nil
}

// ---- payment ----

func (f *fakeDB) CreatePayment(ctx context.Context, payment *model.Payment) error {
	if err := f.fail("CreatePayment"); err != nil {
		return err
	}
	payment.ID = f.id()
	payment.CreatedAt = fakeEpoch
	f.state.payments[payment.ID] = *payment
	return nil
}

func (f *fakeDB) ListPayments(ctx context.Context, offset, limit int) ([]model.Payment, int64, error) {
	if err := f.fail("ListPayments"); err != nil {
		return nil, 0, err
	}
	all := sortedValues(f.state.payments, func(p model.Payment) uint { return p.ID })
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Payment{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ---- user ----

func (f *fakeDB) CreateUser(ctx context.Context, user *model.User) error {
	for _, u := range f.state.users {
		if u.Email == user.Email {
			return db.ErrDuplicateKey
		}
	}
	user.ID = f.id()
	f.state.users[user.ID] = *user
	return nil
}

func (f *fakeDB) GetUserByID(ctx context.Context, id uint) (*model.User, error) {
	u, ok := f.state.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func sortedValues[V any](m map[uint]V, key func(V) uint) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return key(out[i]) < key(out[j]) })
	return out
}

// ---- counts for assertions ----

func (f *fakeDB) countOrders() int     { return len(f.state.orders) }
func (f *fakeDB) countOrderItems() int { return len(f.state.orderItems) }
func (f *fakeDB) countPayments() int   { return len(f.state.payments) }

func (f *fakeDB) countCartItems(userID uint) int {
	cart, ok := f.findCart(userID)
	if !ok {
		return 0
	}
	n := 0
	for _, item := range f.state.cartItems {
		if item.CartID == cart.ID {
			n++
		}
	}
	return n
}

var _ db.UnifiedDB = (*fakeDB)(nil)
