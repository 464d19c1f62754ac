package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	//所有者のカートを取得し、無ければ作成
	GetOrCreateByOwner(ctx context.Context, owner model.CartOwner) (model.Cart, error)
	FindByOwner(ctx context.Context, owner model.CartOwner) (model.Cart, error)

	ListItems(ctx context.Context, cartID int64) ([]model.CartItem, error)
	FindItem(ctx context.Context, itemID int64) (model.CartItem, error)
	//同じ（商品, カスタマイズ）の行があれば数量加算、無ければ追加
	UpsertItem(ctx context.Context, cartID int64, productID int64, custom model.Customization, addQty int64, priceAtAdd float64) error
	UpdateItemQuantity(ctx context.Context, itemID int64, qty int64) error
	DeleteItem(ctx context.Context, itemID int64) error
	//明細を全削除
	Clear(ctx context.Context, cartID int64) error
}
