package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	//プロフィール項目だけ更新
	UpdateProfile(ctx context.Context, id int64, name string, phone string, currency string) error
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	TouchLastLogin(ctx context.Context, id int64, at time.Time) error
}
