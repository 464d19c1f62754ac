package repository

import (
	"context"

	"app/internal/domain/model"
)

type FavoriteRepository interface {
	ListProductsByUserID(ctx context.Context, userID int64) ([]model.Product, error)
	//既にあっても失敗しない
	Add(ctx context.Context, userID int64, productID int64) error
	Remove(ctx context.Context, userID int64, productID int64) error
}
