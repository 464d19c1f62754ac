package usecase

import (
	"context"
	"time"

	"app/internal/apperr"
	"app/internal/domain/model"
	"app/internal/pricing"
	repo "app/internal/repository"
)

// CartUsecase はカートの業務ロジック。
// 所有者はログインユーザーか匿名セッションのどちらか（model.CartOwner）。
type CartUsecase struct {
	cartRepo    repo.CartRepository
	productRepo repo.ProductRepository
	now         func() time.Time
}

func NewCartUsecase(cartRepo repo.CartRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		now:         time.Now,
	}
}

type CartItemResponse struct {
	ID            int64               `json:"id"`
	ProductID     int64               `json:"product_id"`
	Name          string              `json:"name"`
	Slug          string              `json:"slug"`
	Price         float64             `json:"price"`
	CurrentPrice  float64             `json:"current_price"`
	Quantity      int64               `json:"quantity"`
	Customization model.Customization `json:"customization"`
	Stock         int64               `json:"stock"`
}

type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal float64            `json:"subtotal"`
}

type AddCartItemInput struct {
	ProductID     int64               `json:"product_id"`
	Quantity      int64               `json:"quantity"`
	Customization model.Customization `json:"customization"`
}

// /cart/sync で送られてくるゲストカートの1行
type SyncCartLine struct {
	ProductID     int64               `json:"product_id"`
	Quantity      int64               `json:"quantity"`
	Customization model.Customization `json:"customization"`
	Price         float64             `json:"price"`
}

// Get はカートを取得。無ければ空を返すだけで、行の作成は変更系に任せる。
// 商品が消えた・非公開になった明細はレスポンスから外す（行自体は消さない）。
func (u *CartUsecase) Get(ctx context.Context, owner model.CartOwner) (CartResponse, error) {
	cart, err := u.cartRepo.FindByOwner(ctx, owner)
	if err == repo.ErrNotFound {
		return CartResponse{Items: []CartItemResponse{}}, nil
	}
	if err != nil {
		return CartResponse{}, apperr.Dependency("failed to load cart", err)
	}
	return u.buildResponse(ctx, cart.ID)
}

// AddItem はカートへ追加。同じ（商品, カスタマイズ）の行は数量加算。
func (u *CartUsecase) AddItem(ctx context.Context, owner model.CartOwner, in AddCartItemInput) (CartResponse, error) {
	if in.ProductID <= 0 {
		return CartResponse{}, apperr.Validation("invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, apperr.Validation("quantity must be at least 1")
	}

	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, apperr.NotFound("product not found")
	}
	if err != nil {
		return CartResponse{}, apperr.Dependency("failed to find product", err)
	}
	if !p.IsActive {
		return CartResponse{}, apperr.NotFound("product not found")
	}

	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, apperr.Dependency("failed to load cart", err)
	}

	//追加時点の割引後価格を凍結して保存する
	priceAtAdd := pricing.EffectivePrice(p, u.now())
	if err := u.cartRepo.UpsertItem(ctx, cart.ID, p.ID, in.Customization, in.Quantity, priceAtAdd); err != nil {
		return CartResponse{}, apperr.Dependency("failed to add cart item", err)
	}

	return u.buildResponse(ctx, cart.ID)
}

// UpdateQuantity は数量変更。0以下は削除扱い。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, owner model.CartOwner, itemID int64, qty int64) (CartResponse, error) {
	cart, err := u.cartRepo.FindByOwner(ctx, owner)
	if err == repo.ErrNotFound {
		return CartResponse{}, apperr.NotFound("cart item not found")
	}
	if err != nil {
		return CartResponse{}, apperr.Dependency("failed to load cart", err)
	}

	item, err := u.cartRepo.FindItem(ctx, itemID)
	if err == repo.ErrNotFound || (err == nil && item.CartID != cart.ID) {
		return CartResponse{}, apperr.NotFound("cart item not found")
	}
	if err != nil {
		return CartResponse{}, apperr.Dependency("failed to find cart item", err)
	}

	if qty <= 0 {
		if err := u.cartRepo.DeleteItem(ctx, itemID); err != nil {
			return CartResponse{}, apperr.Dependency("failed to remove cart item", err)
		}
	} else {
		if err := u.cartRepo.UpdateItemQuantity(ctx, itemID, qty); err != nil {
			return CartResponse{}, apperr.Dependency("failed to update cart item", err)
		}
	}

	return u.buildResponse(ctx, cart.ID)
}

// RemoveItem は明細削除。既に無くてもエラーにしない。
func (u *CartUsecase) RemoveItem(ctx context.Context, owner model.CartOwner, itemID int64) (CartResponse, error) {
	cart, err := u.cartRepo.FindByOwner(ctx, owner)
	if err == repo.ErrNotFound {
		return CartResponse{Items: []CartItemResponse{}}, nil
	}
	if err != nil {
		return CartResponse{}, apperr.Dependency("failed to load cart", err)
	}

	item, err := u.cartRepo.FindItem(ctx, itemID)
	if err == repo.ErrNotFound {
		return u.buildResponse(ctx, cart.ID)
	}
	if err != nil {
		return CartResponse{}, apperr.Dependency("failed to find cart item", err)
	}
	//他人のカートの明細は触らせない
	if item.CartID != cart.ID {
		return CartResponse{}, apperr.NotFound("cart item not found")
	}

	if err := u.cartRepo.DeleteItem(ctx, itemID); err != nil {
		return CartResponse{}, apperr.Dependency("failed to remove cart item", err)
	}

	return u.buildResponse(ctx, cart.ID)
}

// Clear はカートを空にする。
func (u *CartUsecase) Clear(ctx context.Context, owner model.CartOwner) error {
	cart, err := u.cartRepo.FindByOwner(ctx, owner)
	if err == repo.ErrNotFound {
		return nil
	}
	if err != nil {
		return apperr.Dependency("failed to load cart", err)
	}
	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return apperr.Dependency("failed to clear cart", err)
	}
	return nil
}

// Sync はゲストカートをログインユーザーのカートへマージする。
// 一致する（商品, カスタマイズ）行は数量加算、無ければゲスト側の価格で追加。
// 解決できない行は黙って飛ばす。マージ後、セッションカートは空にする。
func (u *CartUsecase) Sync(ctx context.Context, userID int64, sessionID string, lines []SyncCartLine) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, apperr.Auth("login required")
	}

	owner := model.UserOwner(userID)
	cart, err := u.cartRepo.GetOrCreateByOwner(ctx, owner)
	if err != nil {
		return CartResponse{}, apperr.Dependency("failed to load cart", err)
	}

	for _, line := range lines {
		if line.ProductID <= 0 || line.Quantity < 1 {
			continue
		}
		p, err := u.productRepo.FindByID(ctx, line.ProductID)
		if err == repo.ErrNotFound {
			continue
		}
		if err != nil {
			return CartResponse{}, apperr.Dependency("failed to find product", err)
		}
		if !p.IsActive {
			continue
		}

		price := line.Price
		if price <= 0 {
			price = pricing.EffectivePrice(p, u.now())
		}
		if err := u.cartRepo.UpsertItem(ctx, cart.ID, p.ID, line.Customization, line.Quantity, price); err != nil {
			return CartResponse{}, apperr.Dependency("failed to merge cart item", err)
		}
	}

	//マージ済みのセッションカートは空にする
	if sessionID != "" {
		sessOwner := model.SessionOwner(sessionID)
		if sessCart, err := u.cartRepo.FindByOwner(ctx, sessOwner); err == nil {
			if err := u.cartRepo.Clear(ctx, sessCart.ID); err != nil {
				return CartResponse{}, apperr.Dependency("failed to clear session cart", err)
			}
		} else if err != repo.ErrNotFound {
			return CartResponse{}, apperr.Dependency("failed to load session cart", err)
		}
	}

	return u.buildResponse(ctx, cart.ID)
}

func (u *CartUsecase) buildResponse(ctx context.Context, cartID int64) (CartResponse, error) {
	items, err := u.cartRepo.ListItems(ctx, cartID)
	if err != nil {
		return CartResponse{}, apperr.Dependency("failed to list cart items", err)
	}

	now := u.now()
	resp := CartResponse{Items: []CartItemResponse{}}
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if err == repo.ErrNotFound {
			continue
		}
		if err != nil {
			return CartResponse{}, apperr.Dependency("failed to find product", err)
		}
		if !p.IsActive {
			continue
		}

		resp.Items = append(resp.Items, CartItemResponse{
			ID:            it.ID,
			ProductID:     it.ProductID,
			Name:          p.Name,
			Slug:          p.Slug,
			Price:         it.PriceAtAdd,
			CurrentPrice:  pricing.EffectivePrice(p, now),
			Quantity:      it.Quantity,
			Customization: it.Customization,
			Stock:         p.Stock,
		})
		resp.Subtotal += it.PriceAtAdd * float64(it.Quantity)
	}
	return resp, nil
}
