package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
)

type PaymentMethodGormRepository struct {
	db *gorm.DB
}

// DI
func NewPaymentMethodGormRepository(db *gorm.DB) *PaymentMethodGormRepository {
	return &PaymentMethodGormRepository{db: db}
}

func (r *PaymentMethodGormRepository) ListActive(ctx context.Context) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod

	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id asc").
		Find(&methods).Error
	if err != nil {
		return []model.PaymentMethod{}, err
	}
	return methods, nil
}
