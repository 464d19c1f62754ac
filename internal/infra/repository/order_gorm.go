package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQLのunique制約違反
const pgUniqueViolation = "23505"

type OrderGormRepository struct {
	db *gorm.DB
}

// DI
func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// 注文と明細をまとめて作成する。
// order_numberの衝突はErrDuplicateOrderNumberで返し、呼び出し側が番号を作り直す。
func (r *OrderGormRepository) Create(ctx context.Context, order model.Order, items []model.OrderItem) (model.Order, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		return nil
	})

	if err != nil {
		if isUniqueViolation(err) {
			return model.Order{}, repo.ErrDuplicateOrderNumber
		}
		return model.Order{}, err
	}
	return order, nil
}

// 自分の注文を新しい順で返す
func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	var orders []model.Order

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Order("id desc").
		Find(&orders).Error
	if err != nil {
		return []model.Order{}, err
	}
	return orders, nil
}

// 注文の明細一覧
func (r *OrderGormRepository) ListItemsByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	var items []model.OrderItem

	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

// 注文番号＋ユーザーで取得（他人の注文は見えない）
func (r *OrderGormRepository) FindByNumberForUser(ctx context.Context, orderNumber string, userID int64) (model.Order, error) {
	var o model.Order

	err := r.db.WithContext(ctx).
		Where("order_number = ? AND user_id = ?", orderNumber, userID).
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 注文番号＋ゲストメールで取得
func (r *OrderGormRepository) FindByNumberForGuest(ctx context.Context, orderNumber string, guestEmail string) (model.Order, error) {
	var o model.Order

	err := r.db.WithContext(ctx).
		Where("order_number = ? AND guest_email = ?", orderNumber, guestEmail).
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// ID＋ユーザーで取得
func (r *OrderGormRepository) FindByIDForUser(ctx context.Context, orderID int64, userID int64) (model.Order, error) {
	var o model.Order

	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return o, nil
}

// 返品リクエストを記録（未リクエストの注文にだけ効く）
func (r *OrderGormRepository) SetReturnRequest(ctx context.Context, orderID int64, reason string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ? AND return_requested = ?", orderID, false).
		Updates(map[string]interface{}{
			"return_requested":    true,
			"return_reason":       reason,
			"return_requested_at": at,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}
