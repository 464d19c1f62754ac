package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"app/internal/apperr"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

type fakeOrderRepo struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]model.Order
	items  map[int64][]model.OrderItem
	//最初のN回のCreateを注文番号衝突として失敗させる
	duplicateFailures int
	createCalls       int
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		nextID: 1,
		orders: make(map[int64]model.Order),
		items:  make(map[int64][]model.OrderItem),
	}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order model.Order, items []model.OrderItem) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.duplicateFailures > 0 {
		r.duplicateFailures--
		return model.Order{}, repo.ErrDuplicateOrderNumber
	}
	for _, o := range r.orders {
		if o.OrderNumber == order.OrderNumber {
			return model.Order{}, repo.ErrDuplicateOrderNumber
		}
	}
	order.ID = r.nextID
	r.nextID++
	order.CreatedAt = time.Now()
	r.orders[order.ID] = order
	for i := range items {
		items[i].OrderID = order.ID
	}
	r.items[order.ID] = items
	return order, nil
}

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) ListItemsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[orderID], nil
}

func (r *fakeOrderRepo) FindByNumberForUser(ctx context.Context, orderNumber string, userID int64) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber && o.UserID == userID {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}

func (r *fakeOrderRepo) FindByNumberForGuest(ctx context.Context, orderNumber string, guestEmail string) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.OrderNumber == orderNumber && o.GuestEmail == guestEmail {
			return o, nil
		}
	}
	return model.Order{}, repo.ErrNotFound
}

func (r *fakeOrderRepo) FindByIDForUser(ctx context.Context, orderID int64, userID int64) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok || o.UserID != userID {
		return model.Order{}, repo.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) SetReturnRequest(ctx context.Context, orderID int64, reason string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok || o.ReturnRequested {
		return repo.ErrNotFound
	}
	o.ReturnRequested = true
	o.ReturnReason = reason
	o.ReturnRequestedAt = &at
	r.orders[orderID] = o
	return nil
}

type orderTestEnv struct {
	uc        *OrderUsecase
	orderRepo *fakeOrderRepo
	cartRepo  *fakeCartRepo
	notifier  *fakeNotifier
}

func newOrderTestEnv(allowPartial bool, products ...model.Product) *orderTestEnv {
	orderRepo := newFakeOrderRepo()
	cartRepo := newFakeCartRepo()
	notifier := newFakeNotifier()
	userRepo := newFakeUserRepo(model.User{ID: 7, Name: "nana", Email: "nana@example.com", IsActive: true})

	uc := NewOrderUsecase(orderRepo, newFakeProductRepo(products...), cartRepo, userRepo, notifier, zap.NewNop(), OrderUsecaseConfig{
		ShippingFlatRate: 50,
		TaxRate:          0.10,
		DefaultCurrency:  "USD",
		AllowPartial:     allowPartial,
		AdminEmail:       "admin@example.com",
	})
	uc.now = fixedNow
	return &orderTestEnv{uc: uc, orderRepo: orderRepo, cartRepo: cartRepo, notifier: notifier}
}

func validAddress() model.ShippingAddress {
	return model.ShippingAddress{
		FullName:     "Nana Tanaka",
		AddressLine1: "1-2-3 Ginza",
		City:         "Tokyo",
		Country:      "JP",
	}
}

func TestPlaceOrderComputesTotalsServerSide(t *testing.T) {
	p := activeProduct(1, 200)
	p.Discount = model.Discount{IsActive: true, Type: model.DiscountTypePercentage, Value: 25}
	env := newOrderTestEnv(true, p)

	out, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail:      "guest@example.com",
		Lines:           []OrderLineInput{{ProductID: 1, Quantity: 2}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "bank_transfer",
	})
	assert.NoError(t, err)

	//単価150（25%引き）×2=300、送料50、税30
	assert.Equal(t, 300.0, out.Subtotal)
	assert.Equal(t, 50.0, out.ShippingCost)
	assert.InDelta(t, 30.0, out.Tax, 1e-9)
	assert.InDelta(t, 380.0, out.Total, 1e-9)
	assert.Equal(t, model.OrderStatusPending, out.OrderStatus)
	assert.Equal(t, model.PaymentStatusPending, out.PaymentStatus)
	assert.Equal(t, "USD", out.Currency)
	assert.Equal(t, 150.0, out.Items[0].Price)
}

func TestPlaceOrderTotalsMultipleLines(t *testing.T) {
	env := newOrderTestEnv(true, activeProduct(1, 100), activeProduct(2, 90))

	out, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail: "guest@example.com",
		Lines: []OrderLineInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 2},
		},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.NoError(t, err)

	assert.Equal(t, 380.0, out.Subtotal)
	assert.Equal(t, 50.0, out.ShippingCost)
	assert.InDelta(t, 38.0, out.Tax, 1e-9)
	assert.InDelta(t, 468.0, out.Total, 1e-9)
}

func TestOrderSnapshotsAreImmutable(t *testing.T) {
	productRepo := newFakeProductRepo(activeProduct(1, 100))
	orderRepo := newFakeOrderRepo()
	uc := NewOrderUsecase(orderRepo, productRepo, newFakeCartRepo(), newFakeUserRepo(), newFakeNotifier(), zap.NewNop(), OrderUsecaseConfig{
		ShippingFlatRate: 50, TaxRate: 0.10, DefaultCurrency: "USD", AllowPartial: true,
	})
	uc.now = fixedNow

	placed, err := uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail:      "guest@example.com",
		Lines:           []OrderLineInput{{ProductID: 1, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.NoError(t, err)

	//後から商品価格が変わっても注文は変わらない
	p := productRepo.products[1]
	p.Price = 999
	productRepo.products[1] = p

	got, err := uc.GetByNumber(context.Background(), placed.OrderNumber, 0, "guest@example.com")
	assert.NoError(t, err)
	assert.Equal(t, 100.0, got.Items[0].Price)
	assert.Equal(t, placed.Total, got.Total)
}

func TestPlaceOrderSkipsStaleLines(t *testing.T) {
	inactive := activeProduct(2, 50)
	inactive.IsActive = false
	env := newOrderTestEnv(true, activeProduct(1, 100), inactive)

	out, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail: "guest@example.com",
		Lines: []OrderLineInput{
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 1},  //非公開
			{ProductID: 99, Quantity: 1}, //存在しない
		},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 100.0, out.Subtotal)
}

func TestPlaceOrderIgnoresStockLevel(t *testing.T) {
	p := activeProduct(1, 100)
	p.Stock = 1
	env := newOrderTestEnv(false, p)

	//在庫は受注を止めない（検品・引当は後工程の仕事）
	out, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail:      "guest@example.com",
		Lines:           []OrderLineInput{{ProductID: 1, Quantity: 5}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(5), out.Items[0].Quantity)
	assert.Equal(t, 500.0, out.Subtotal)
}

func TestPlaceOrderStrictModeFailsOnStaleLine(t *testing.T) {
	env := newOrderTestEnv(false, activeProduct(1, 100))

	_, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail: "guest@example.com",
		Lines: []OrderLineInput{
			{ProductID: 1, Quantity: 1},
			{ProductID: 99, Quantity: 1},
		},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestPlaceOrderFailsWhenNothingResolves(t *testing.T) {
	env := newOrderTestEnv(true)

	_, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail:      "guest@example.com",
		Lines:           []OrderLineInput{{ProductID: 99, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestPlaceOrderValidation(t *testing.T) {
	env := newOrderTestEnv(true, activeProduct(1, 100))
	lines := []OrderLineInput{{ProductID: 1, Quantity: 1}}

	//ユーザーでもゲストメールでもない
	_, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		Lines: lines, ShippingAddress: validAddress(), PaymentMethod: "cod",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	//住所不備
	_, err = env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail: "g@example.com", Lines: lines,
		ShippingAddress: model.ShippingAddress{FullName: "x"}, PaymentMethod: "cod",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	//明細なし
	_, err = env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail: "g@example.com", ShippingAddress: validAddress(), PaymentMethod: "cod",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestPlaceOrderRetriesOnDuplicateOrderNumber(t *testing.T) {
	env := newOrderTestEnv(true, activeProduct(1, 100))
	env.orderRepo.duplicateFailures = 2

	out, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail:      "guest@example.com",
		Lines:           []OrderLineInput{{ProductID: 1, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, env.orderRepo.createCalls)
	assert.True(t, strings.HasPrefix(out.OrderNumber, "VG-"))
}

func TestPlaceOrderGivesUpAfterRepeatedDuplicates(t *testing.T) {
	env := newOrderTestEnv(true, activeProduct(1, 100))
	env.orderRepo.duplicateFailures = 10

	_, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail:      "guest@example.com",
		Lines:           []OrderLineInput{{ProductID: 1, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.True(t, apperr.IsKind(err, apperr.KindDependency))
}

func TestPlaceOrderClearsUserCartAndSendsMail(t *testing.T) {
	env := newOrderTestEnv(true, activeProduct(1, 100))

	//ユーザーカートに事前に入れておく
	owner := model.UserOwner(7)
	cart, err := env.cartRepo.GetOrCreateByOwner(context.Background(), owner)
	assert.NoError(t, err)
	assert.NoError(t, env.cartRepo.UpsertItem(context.Background(), cart.ID, 1, model.Customization{}, 2, 100))

	_, err = env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:          7,
		Lines:           []OrderLineInput{{ProductID: 1, Quantity: 2}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.NoError(t, err)

	items, _ := env.cartRepo.ListItems(context.Background(), cart.ID)
	assert.Empty(t, items)
	//確認メールはユーザーの登録アドレス宛
	assert.Equal(t, []string{"nana@example.com"}, env.notifier.orderMails)
}

func TestPlaceOrderSucceedsWhenMailFails(t *testing.T) {
	env := newOrderTestEnv(true, activeProduct(1, 100))
	env.notifier.fail = true

	out, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail:      "guest@example.com",
		Lines:           []OrderLineInput{{ProductID: 1, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, out.OrderNumber)
}

func TestGetByNumberScoping(t *testing.T) {
	env := newOrderTestEnv(true, activeProduct(1, 100))

	placed, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		GuestEmail:      "guest@example.com",
		Lines:           []OrderLineInput{{ProductID: 1, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.NoError(t, err)

	//本人（ゲストメール一致）は見える
	got, err := env.uc.GetByNumber(context.Background(), placed.OrderNumber, 0, "guest@example.com")
	assert.NoError(t, err)
	assert.Equal(t, placed.OrderNumber, got.OrderNumber)

	//別のメールや別ユーザーには404
	_, err = env.uc.GetByNumber(context.Background(), placed.OrderNumber, 0, "other@example.com")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	_, err = env.uc.GetByNumber(context.Background(), placed.OrderNumber, 7, "")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestRequestReturnOnlyOnce(t *testing.T) {
	env := newOrderTestEnv(true, activeProduct(1, 100))

	placed, err := env.uc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:          7,
		Lines:           []OrderLineInput{{ProductID: 1, Quantity: 1}},
		ShippingAddress: validAddress(),
		PaymentMethod:   "cod",
	})
	assert.NoError(t, err)

	orders, err := env.uc.ListMine(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, placed.OrderNumber, orders[0].OrderNumber)

	orderID := env.orderRepo.nextID - 1
	assert.NoError(t, env.uc.RequestReturn(context.Background(), 7, orderID, "wrong size"))
	//管理者へ通知される
	assert.Equal(t, []string{"admin@example.com"}, env.notifier.returnMails)

	//2回目は弾く
	err = env.uc.RequestReturn(context.Background(), 7, orderID, "changed my mind")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	//他人の注文にも出せない
	err = env.uc.RequestReturn(context.Background(), 8, orderID, "not mine")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestOrderNumberFormatAndUniqueness(t *testing.T) {
	now := fixedNow()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := newOrderNumber(now)
		assert.True(t, strings.HasPrefix(n, "VG-"))
		assert.False(t, seen[n], "order number collided: %s", n)
		seen[n] = true
	}
}
