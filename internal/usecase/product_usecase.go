package usecase

import (
	"context"
	"time"

	"app/internal/apperr"
	"app/internal/domain/model"
	"app/internal/pricing"
	repo "app/internal/repository"
)

// ProductUsecase は商品カタログの読み取り。
type ProductUsecase struct {
	productRepo repo.ProductRepository
	now         func() time.Time
}

func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		now:         time.Now,
	}
}

// ProductResponse はカタログAPIのレスポンス。
// final_priceは割引適用後の単価（割引なしならpriceと同じ）。
type ProductResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	SKU         string  `json:"sku,omitempty"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	MetalType   string  `json:"metal_type,omitempty"`
	Karat       int     `json:"karat,omitempty"`
	MetalColor  string  `json:"metal_color,omitempty"`
	StoneType   string  `json:"stone_type,omitempty"`
	StoneColor  string  `json:"stone_color,omitempty"`
	Gender      string  `json:"gender,omitempty"`
	Price       float64 `json:"price"`
	FinalPrice  float64 `json:"final_price"`
	Currency    string  `json:"currency"`
	OnSale      bool    `json:"on_sale"`
	Stock       int64   `json:"stock"`
	IsFeatured  bool    `json:"is_featured"`
}

type ProductListResponse struct {
	Products   []ProductResponse `json:"products"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

func (u *ProductUsecase) toResponse(p model.Product, now time.Time) ProductResponse {
	final := pricing.EffectivePrice(p, now)
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		SKU:         p.SKU,
		Description: p.Description,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		MetalType:   p.MetalType,
		Karat:       p.Karat,
		MetalColor:  p.MetalColor,
		StoneType:   p.StoneType,
		StoneColor:  p.StoneColor,
		Gender:      p.Gender,
		Price:       p.Price,
		FinalPrice:  final,
		Currency:    p.Currency,
		OnSale:      final < p.Price,
		Stock:       p.Stock,
		IsFeatured:  p.IsFeatured,
	}
}

// List は公開商品の検索付き一覧。
func (u *ProductUsecase) List(ctx context.Context, q repo.ProductListQuery) (ProductListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 100 {
		q.Limit = 20
	}

	products, total, err := u.productRepo.ListPublic(ctx, q)
	if err != nil {
		return ProductListResponse{}, apperr.Dependency("failed to list products", err)
	}

	now := u.now()
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, u.toResponse(p, now))
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return ProductListResponse{
		Products:   out,
		Total:      total,
		Page:       q.Page,
		TotalPages: totalPages,
	}, nil
}

// GetBySlug は商品詳細。非公開商品は404扱い。
func (u *ProductUsecase) GetBySlug(ctx context.Context, slug string) (ProductResponse, error) {
	if slug == "" {
		return ProductResponse{}, apperr.Validation("slug is required")
	}

	p, err := u.productRepo.FindBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return ProductResponse{}, apperr.NotFound("product not found")
	}
	if err != nil {
		return ProductResponse{}, apperr.Dependency("failed to find product", err)
	}
	if !p.IsActive {
		return ProductResponse{}, apperr.NotFound("product not found")
	}

	return u.toResponse(p, u.now()), nil
}

// Featured はトップページ用のおすすめ商品。
func (u *ProductUsecase) Featured(ctx context.Context, limit int) ([]ProductResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 8
	}

	products, err := u.productRepo.ListFeatured(ctx, limit)
	if err != nil {
		return nil, apperr.Dependency("failed to list featured products", err)
	}

	now := u.now()
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, u.toResponse(p, now))
	}
	return out, nil
}

// FilterOptions は絞り込みUIの選択肢。
func (u *ProductUsecase) FilterOptions(ctx context.Context) (repo.FilterOptions, error) {
	opts, err := u.productRepo.FilterOptions(ctx)
	if err != nil {
		return repo.FilterOptions{}, apperr.Dependency("failed to load filter options", err)
	}
	return opts, nil
}
