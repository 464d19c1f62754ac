package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page        int
	Limit       int
	Search      string
	Category    string
	Subcategory string
	MetalType   string
	Karat       *int
	MetalColor  string
	StoneType   string
	Gender      string
	Featured    bool
	MinPrice    *float64
	MaxPrice    *float64
	Sort        string
}

// 絞り込みUI用の選択肢
type FilterOptions struct {
	Categories  []string `json:"categories"`
	MetalTypes  []string `json:"metal_types"`
	MetalColors []string `json:"metal_colors"`
	StoneTypes  []string `json:"stone_types"`
}

// 商品の取得だけを約束。作成・編集は管理側プロセスの仕事なのでここには無い。
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindBySlug(ctx context.Context, slug string) (model.Product, error)
	ListFeatured(ctx context.Context, limit int) ([]model.Product, error)
	FilterOptions(ctx context.Context) (FilterOptions, error)
}
