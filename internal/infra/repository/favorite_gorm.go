package repository

import (
	"context"

	"app/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteGormRepository struct {
	db *gorm.DB
}

// DI
func NewFavoriteGormRepository(db *gorm.DB) *FavoriteGormRepository {
	return &FavoriteGormRepository{db: db}
}

// お気に入りの商品本体を返す（非公開になった商品は除く）
func (r *FavoriteGormRepository) ListProductsByUserID(ctx context.Context, userID int64) ([]model.Product, error) {
	var products []model.Product

	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Joins("join favorites on favorites.product_id = products.id").
		Where("favorites.user_id = ? AND products.is_active = ?", userID, true).
		Order("favorites.id desc").
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 既にあっても失敗しない
func (r *FavoriteGormRepository) Add(ctx context.Context, userID int64, productID int64) error {
	fav := model.Favorite{UserID: userID, ProductID: productID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
}

func (r *FavoriteGormRepository) Remove(ctx context.Context, userID int64, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.Favorite{}).Error
}
