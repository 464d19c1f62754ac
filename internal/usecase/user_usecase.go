package usecase

import (
	"context"
	"time"

	"app/internal/apperr"
	"app/internal/domain/model"
	"app/internal/pricing"
	repo "app/internal/repository"
)

// UserUsecase はプロフィール・住所・お気に入り。
type UserUsecase struct {
	userRepo     repo.UserRepository
	addressRepo  repo.AddressRepository
	favoriteRepo repo.FavoriteRepository
	productRepo  repo.ProductRepository
}

func NewUserUsecase(
	userRepo repo.UserRepository,
	addressRepo repo.AddressRepository,
	favoriteRepo repo.FavoriteRepository,
	productRepo repo.ProductRepository,
) *UserUsecase {
	return &UserUsecase{
		userRepo:     userRepo,
		addressRepo:  addressRepo,
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

type UpdateProfileInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Currency string `json:"currency"`
}

// GetProfile はプロフィール取得。
func (u *UserUsecase) GetProfile(ctx context.Context, userID int64) (UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err == repo.ErrNotFound {
		return UserResponse{}, apperr.Auth("unauthorized")
	}
	if err != nil {
		return UserResponse{}, apperr.Dependency("failed to find user", err)
	}
	return toUserResponse(user), nil
}

// UpdateProfile は名前・電話・表示通貨の更新。
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID int64, in UpdateProfileInput) (UserResponse, error) {
	if in.Name == "" {
		return UserResponse{}, apperr.Validation("name is required")
	}
	if in.Currency == "" {
		in.Currency = "USD"
	}

	if err := u.userRepo.UpdateProfile(ctx, userID, in.Name, in.Phone, in.Currency); err != nil {
		if err == repo.ErrNotFound {
			return UserResponse{}, apperr.Auth("unauthorized")
		}
		return UserResponse{}, apperr.Dependency("failed to update profile", err)
	}
	return u.GetProfile(ctx, userID)
}

type AddressInput struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	PostalCode   string `json:"postal_code"`
	IsDefault    bool   `json:"is_default"`
}

func (in AddressInput) validate() error {
	if in.FullName == "" || in.AddressLine1 == "" || in.City == "" || in.Country == "" {
		return apperr.Validation("full_name, address_line1, city and country are required")
	}
	return nil
}

// ListAddresses は登録住所の一覧。
func (u *UserUsecase) ListAddresses(ctx context.Context, userID int64) ([]model.Address, error) {
	addrs, err := u.addressRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Dependency("failed to list addresses", err)
	}
	return addrs, nil
}

// AddAddress は住所追加。is_defaultなら既存のデフォルトを外す。
func (u *UserUsecase) AddAddress(ctx context.Context, userID int64, in AddressInput) (model.Address, error) {
	if err := in.validate(); err != nil {
		return model.Address{}, err
	}

	created, err := u.addressRepo.Create(ctx, model.Address{
		UserID:       userID,
		FullName:     in.FullName,
		Phone:        in.Phone,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		Country:      in.Country,
		PostalCode:   in.PostalCode,
		IsDefault:    in.IsDefault,
	})
	if err != nil {
		return model.Address{}, apperr.Dependency("failed to create address", err)
	}
	return created, nil
}

// UpdateAddress は自分の住所だけ更新できる。
func (u *UserUsecase) UpdateAddress(ctx context.Context, userID int64, addressID int64, in AddressInput) (model.Address, error) {
	if err := in.validate(); err != nil {
		return model.Address{}, err
	}

	addr, err := u.addressRepo.FindByID(ctx, addressID)
	if err == repo.ErrNotFound || (err == nil && addr.UserID != userID) {
		return model.Address{}, apperr.NotFound("address not found")
	}
	if err != nil {
		return model.Address{}, apperr.Dependency("failed to find address", err)
	}

	addr.FullName = in.FullName
	addr.Phone = in.Phone
	addr.AddressLine1 = in.AddressLine1
	addr.AddressLine2 = in.AddressLine2
	addr.City = in.City
	addr.State = in.State
	addr.Country = in.Country
	addr.PostalCode = in.PostalCode
	addr.IsDefault = in.IsDefault

	if err := u.addressRepo.Update(ctx, addr); err != nil {
		return model.Address{}, apperr.Dependency("failed to update address", err)
	}
	return addr, nil
}

// DeleteAddress は自分の住所だけ削除できる。
func (u *UserUsecase) DeleteAddress(ctx context.Context, userID int64, addressID int64) error {
	addr, err := u.addressRepo.FindByID(ctx, addressID)
	if err == repo.ErrNotFound || (err == nil && addr.UserID != userID) {
		return apperr.NotFound("address not found")
	}
	if err != nil {
		return apperr.Dependency("failed to find address", err)
	}

	if err := u.addressRepo.Delete(ctx, addressID); err != nil {
		return apperr.Dependency("failed to delete address", err)
	}
	return nil
}

// ListFavorites はお気に入り商品の一覧。
func (u *UserUsecase) ListFavorites(ctx context.Context, userID int64) ([]ProductResponse, error) {
	products, err := u.favoriteRepo.ListProductsByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Dependency("failed to list favorites", err)
	}

	now := time.Now()
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		final := pricing.EffectivePrice(p, now)
		out = append(out, ProductResponse{
			ID:         p.ID,
			Name:       p.Name,
			Slug:       p.Slug,
			Category:   p.Category,
			Price:      p.Price,
			FinalPrice: final,
			Currency:   p.Currency,
			OnSale:     final < p.Price,
			Stock:      p.Stock,
			IsFeatured: p.IsFeatured,
		})
	}
	return out, nil
}

// AddFavorite はお気に入り登録。二重登録してもエラーにしない。
func (u *UserUsecase) AddFavorite(ctx context.Context, userID int64, productID int64) error {
	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return apperr.NotFound("product not found")
	}
	if err != nil {
		return apperr.Dependency("failed to find product", err)
	}
	if !p.IsActive {
		return apperr.NotFound("product not found")
	}

	if err := u.favoriteRepo.Add(ctx, userID, productID); err != nil {
		return apperr.Dependency("failed to add favorite", err)
	}
	return nil
}

// RemoveFavorite はお気に入り解除。無くてもエラーにしない。
func (u *UserUsecase) RemoveFavorite(ctx context.Context, userID int64, productID int64) error {
	if err := u.favoriteRepo.Remove(ctx, userID, productID); err != nil {
		return apperr.Dependency("failed to remove favorite", err)
	}
	return nil
}
