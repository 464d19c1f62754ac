package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
)

// 注文番号が衝突した（呼び出し側が番号を作り直して再試行する）
var ErrDuplicateOrderNumber = errors.New("duplicate order number")

type OrderRepository interface {
	//注文と明細をまとめて作成する。order_numberのunique制約違反はErrDuplicateOrderNumberを返す。
	Create(ctx context.Context, order model.Order, items []model.OrderItem) (model.Order, error)

	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)
	ListItemsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)

	FindByNumberForUser(ctx context.Context, orderNumber string, userID int64) (model.Order, error)
	FindByNumberForGuest(ctx context.Context, orderNumber string, guestEmail string) (model.Order, error)
	FindByIDForUser(ctx context.Context, orderID int64, userID int64) (model.Order, error)

	//返品リクエストを1回だけ記録する
	SetReturnRequest(ctx context.Context, orderID int64, reason string, at time.Time) error
}
