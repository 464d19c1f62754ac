package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"app/internal/apperr"
	"app/internal/domain/model"
	"app/internal/pricing"
	repo "app/internal/repository"
)

// 注文番号の衝突リトライ上限
const orderNumberMaxAttempts = 3

// OrderUsecase はチェックアウトと注文照会。
type OrderUsecase struct {
	orderRepo   repo.OrderRepository
	productRepo repo.ProductRepository
	cartRepo    repo.CartRepository
	userRepo    repo.UserRepository
	notifier    Notifier
	log         *zap.Logger

	shippingFlatRate float64
	taxRate          float64
	defaultCurrency  string
	//trueなら解決できない明細を黙って落とす。falseなら注文ごと失敗。
	allowPartial bool
	adminEmail   string

	now func() time.Time
}

type OrderUsecaseConfig struct {
	ShippingFlatRate float64
	TaxRate          float64
	DefaultCurrency  string
	AllowPartial     bool
	AdminEmail       string
}

func NewOrderUsecase(
	orderRepo repo.OrderRepository,
	productRepo repo.ProductRepository,
	cartRepo repo.CartRepository,
	userRepo repo.UserRepository,
	notifier Notifier,
	log *zap.Logger,
	cfg OrderUsecaseConfig,
) *OrderUsecase {
	return &OrderUsecase{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		cartRepo:         cartRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		log:              log,
		shippingFlatRate: cfg.ShippingFlatRate,
		taxRate:          cfg.TaxRate,
		defaultCurrency:  cfg.DefaultCurrency,
		allowPartial:     cfg.AllowPartial,
		adminEmail:       cfg.AdminEmail,
		now:              time.Now,
	}
}

type OrderLineInput struct {
	ProductID     int64               `json:"product_id"`
	Quantity      int64               `json:"quantity"`
	Customization model.Customization `json:"customization"`
}

type PlaceOrderInput struct {
	//ログインユーザーならUserID>0、ゲストならGuestEmail必須
	UserID     int64
	GuestEmail string

	Lines           []OrderLineInput
	ShippingAddress model.ShippingAddress
	PaymentMethod   string
	Currency        string
}

type OrderItemResponse struct {
	ProductID     int64               `json:"product_id"`
	Name          string              `json:"name"`
	Price         float64             `json:"price"`
	Quantity      int64               `json:"quantity"`
	Customization model.Customization `json:"customization"`
}

type OrderResponse struct {
	OrderNumber     string                `json:"order_number"`
	Items           []OrderItemResponse   `json:"items"`
	Subtotal        float64               `json:"subtotal"`
	ShippingCost    float64               `json:"shipping_cost"`
	Tax             float64               `json:"tax"`
	Total           float64               `json:"total"`
	Currency        string                `json:"currency"`
	ShippingAddress model.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                `json:"payment_method"`
	PaymentStatus   model.PaymentStatus   `json:"payment_status"`
	OrderStatus     model.OrderStatus     `json:"order_status"`
	TrackingNumber  string                `json:"tracking_number,omitempty"`
	ReturnRequested bool                  `json:"return_requested"`
	CreatedAt       time.Time             `json:"created_at"`
}

// PlaceOrder はチェックアウト。
// クライアントの価格は信用せず、全明細をDBの商品から再解決して金額を計算する。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderResponse, error) {
	if in.UserID <= 0 && in.GuestEmail == "" {
		return OrderResponse{}, apperr.Validation("guest email is required")
	}
	if len(in.Lines) == 0 {
		return OrderResponse{}, apperr.Validation("order has no items")
	}
	if err := validateShippingAddress(in.ShippingAddress); err != nil {
		return OrderResponse{}, err
	}
	if in.PaymentMethod == "" {
		return OrderResponse{}, apperr.Validation("payment method is required")
	}

	currency := in.Currency
	if currency == "" {
		currency = u.defaultCurrency
	}

	now := u.now()

	//明細の再解決。価格は必ずサーバー側で計算し直す。
	var items []model.OrderItem
	var subtotal float64
	for _, line := range in.Lines {
		if line.ProductID <= 0 || line.Quantity < 1 {
			if u.allowPartial {
				continue
			}
			return OrderResponse{}, apperr.Validation("invalid order line")
		}
		p, err := u.productRepo.FindByID(ctx, line.ProductID)
		if err == repo.ErrNotFound {
			if u.allowPartial {
				continue
			}
			return OrderResponse{}, apperr.Validation("product is no longer available")
		}
		if err != nil {
			return OrderResponse{}, apperr.Dependency("failed to resolve order line", err)
		}
		if !p.IsActive {
			if u.allowPartial {
				continue
			}
			return OrderResponse{}, apperr.Validation("product is no longer available")
		}

		unit := pricing.EffectivePrice(p, now)
		items = append(items, model.OrderItem{
			ProductID:           p.ID,
			ProductNameSnapshot: p.Name,
			UnitPriceSnapshot:   unit,
			Quantity:            line.Quantity,
			Customization:       line.Customization,
		})
		subtotal += unit * float64(line.Quantity)
	}
	if len(items) == 0 {
		return OrderResponse{}, apperr.Validation("no items could be ordered")
	}

	tax := subtotal * u.taxRate
	total := subtotal + u.shippingFlatRate + tax

	order := model.Order{
		UserID:          in.UserID,
		GuestEmail:      in.GuestEmail,
		Subtotal:        subtotal,
		ShippingCost:    u.shippingFlatRate,
		Tax:             tax,
		Total:           total,
		Currency:        currency,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   model.PaymentStatusPending,
		OrderStatus:     model.OrderStatusPending,
	}

	//注文番号はunique制約に任せ、衝突したら作り直して再試行する
	var created model.Order
	var err error
	for attempt := 0; attempt < orderNumberMaxAttempts; attempt++ {
		order.OrderNumber = newOrderNumber(u.now())
		created, err = u.orderRepo.Create(ctx, order, items)
		if err == repo.ErrDuplicateOrderNumber {
			continue
		}
		break
	}
	if err == repo.ErrDuplicateOrderNumber {
		return OrderResponse{}, apperr.Dependency("failed to allocate order number", err)
	}
	if err != nil {
		return OrderResponse{}, apperr.Dependency("failed to create order", err)
	}

	//注文後の後始末。失敗してもログに残して注文自体は成功で返す。
	if in.UserID > 0 {
		if cart, err := u.cartRepo.FindByOwner(ctx, model.UserOwner(in.UserID)); err == nil {
			if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
				u.log.Warn("failed to clear cart after order",
					zap.String("order_number", created.OrderNumber), zap.Error(err))
			}
		}
	}
	u.sendConfirmation(ctx, created, items)

	return u.toResponse(created, items), nil
}

func (u *OrderUsecase) sendConfirmation(ctx context.Context, order model.Order, items []model.OrderItem) {
	to := order.GuestEmail
	if to == "" && order.UserID > 0 {
		user, err := u.userRepo.FindByID(ctx, order.UserID)
		if err != nil {
			u.log.Warn("failed to resolve order mail recipient",
				zap.String("order_number", order.OrderNumber), zap.Error(err))
			return
		}
		to = user.Email
	}
	if to == "" {
		return
	}
	if err := u.notifier.OrderConfirmation(ctx, to, order, items); err != nil {
		u.log.Warn("failed to send confirmation mail",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}
}

// ListMine はログインユーザーの注文履歴（新しい順）。
func (u *OrderUsecase) ListMine(ctx context.Context, userID int64) ([]OrderResponse, error) {
	if userID <= 0 {
		return nil, apperr.Auth("login required")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Dependency("failed to list orders", err)
	}

	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		items, err := u.orderRepo.ListItemsByOrderID(ctx, o.ID)
		if err != nil {
			return nil, apperr.Dependency("failed to list order items", err)
		}
		out = append(out, u.toResponse(o, items))
	}
	return out, nil
}

// GetByNumber は注文詳細。本人の注文だけ見える。
// ゲストはメールアドレスの一致で照会する。
func (u *OrderUsecase) GetByNumber(ctx context.Context, orderNumber string, userID int64, guestEmail string) (OrderResponse, error) {
	if orderNumber == "" {
		return OrderResponse{}, apperr.Validation("order number is required")
	}

	var order model.Order
	var err error
	switch {
	case userID > 0:
		order, err = u.orderRepo.FindByNumberForUser(ctx, orderNumber, userID)
	case guestEmail != "":
		order, err = u.orderRepo.FindByNumberForGuest(ctx, orderNumber, guestEmail)
	default:
		return OrderResponse{}, apperr.NotFound("order not found")
	}
	if err == repo.ErrNotFound {
		return OrderResponse{}, apperr.NotFound("order not found")
	}
	if err != nil {
		return OrderResponse{}, apperr.Dependency("failed to find order", err)
	}

	items, err := u.orderRepo.ListItemsByOrderID(ctx, order.ID)
	if err != nil {
		return OrderResponse{}, apperr.Dependency("failed to list order items", err)
	}
	return u.toResponse(order, items), nil
}

// RequestReturn は返品リクエスト。自分の注文に1回だけ。
func (u *OrderUsecase) RequestReturn(ctx context.Context, userID int64, orderID int64, reason string) error {
	if userID <= 0 {
		return apperr.Auth("login required")
	}
	if reason == "" {
		return apperr.Validation("reason is required")
	}

	order, err := u.orderRepo.FindByIDForUser(ctx, orderID, userID)
	if err == repo.ErrNotFound {
		return apperr.NotFound("order not found")
	}
	if err != nil {
		return apperr.Dependency("failed to find order", err)
	}
	if order.ReturnRequested {
		return apperr.Validation("return already requested")
	}

	if err := u.orderRepo.SetReturnRequest(ctx, order.ID, reason, u.now()); err != nil {
		return apperr.Dependency("failed to record return request", err)
	}

	//管理者への通知。失敗してもリクエスト自体は成立。
	if u.adminEmail != "" {
		if err := u.notifier.ReturnRequested(ctx, u.adminEmail, order.OrderNumber, reason); err != nil {
			u.log.Warn("failed to notify return request",
				zap.String("order_number", order.OrderNumber), zap.Error(err))
		}
	}
	return nil
}

func (u *OrderUsecase) toResponse(o model.Order, items []model.OrderItem) OrderResponse {
	out := OrderResponse{
		OrderNumber:     o.OrderNumber,
		Items:           make([]OrderItemResponse, 0, len(items)),
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		Tax:             o.Tax,
		Total:           o.Total,
		Currency:        o.Currency,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		OrderStatus:     o.OrderStatus,
		TrackingNumber:  o.TrackingNumber,
		ReturnRequested: o.ReturnRequested,
		CreatedAt:       o.CreatedAt,
	}
	for _, it := range items {
		out.Items = append(out.Items, OrderItemResponse{
			ProductID:     it.ProductID,
			Name:          it.ProductNameSnapshot,
			Price:         it.UnitPriceSnapshot,
			Quantity:      it.Quantity,
			Customization: it.Customization,
		})
	}
	return out
}

func validateShippingAddress(a model.ShippingAddress) error {
	if a.FullName == "" || a.AddressLine1 == "" || a.City == "" || a.Country == "" {
		return apperr.Validation("shipping address is incomplete")
	}
	return nil
}

// newOrderNumber は VG-<タイムスタンプのbase36>-<ランダム4バイト> を作る。
// 一意性はDBのunique制約で守る（ここでは十分散らすだけ）。
func newOrderNumber(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		//乱数が取れない環境でも注文は止めない
		buf = []byte{byte(now.Nanosecond()), byte(now.Nanosecond() >> 8), byte(now.Nanosecond() >> 16), byte(now.Second())}
	}
	return "VG-" + strings.ToUpper(ts) + "-" + strings.ToUpper(hex.EncodeToString(buf))
}
