package repository

import (
	"context"

	"app/internal/domain/model"
)

type AddressRepository interface {
	ListByUserID(ctx context.Context, userID int64) ([]model.Address, error)
	FindByID(ctx context.Context, id int64) (model.Address, error)
	//isDefaultなら既存のデフォルトを外してから保存する
	Create(ctx context.Context, a model.Address) (model.Address, error)
	Update(ctx context.Context, a model.Address) error
	Delete(ctx context.Context, id int64) error
}
