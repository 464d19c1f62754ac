package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type GiftCardGormRepository struct {
	db *gorm.DB
}

// DI
func NewGiftCardGormRepository(db *gorm.DB) *GiftCardGormRepository {
	return &GiftCardGormRepository{db: db}
}

func (r *GiftCardGormRepository) Create(ctx context.Context, gc model.GiftCard) (model.GiftCard, error) {
	if err := r.db.WithContext(ctx).Create(&gc).Error; err != nil {
		if isUniqueViolation(err) {
			return model.GiftCard{}, repo.ErrDuplicateGiftCardCode
		}
		return model.GiftCard{}, err
	}
	return gc, nil
}

// 有効かつ期限内のカードだけ返す
func (r *GiftCardGormRepository) FindActiveByCode(ctx context.Context, code string) (model.GiftCard, error) {
	var gc model.GiftCard

	err := r.db.WithContext(ctx).
		Where("code = ? AND is_active = ? AND expires_at > ?", code, true, time.Now()).
		First(&gc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.GiftCard{}, repo.ErrNotFound
	}
	if err != nil {
		return model.GiftCard{}, err
	}
	return gc, nil
}
