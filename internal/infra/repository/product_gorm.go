package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 公開商品のみを、検索/フィルター/価格帯/ソート/ページング付きで返す。
func (r *ProductGormRepository) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	//公開（is_active=true）だけ
	tx = tx.Where("is_active = ?", true)

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Subcategory != "" {
		tx = tx.Where("subcategory = ?", q.Subcategory)
	}
	if q.MetalType != "" {
		tx = tx.Where("metal_type = ?", q.MetalType)
	}
	if q.Karat != nil {
		tx = tx.Where("karat = ?", *q.Karat)
	}
	if q.MetalColor != "" {
		tx = tx.Where("metal_color = ?", q.MetalColor)
	}
	if q.StoneType != "" {
		tx = tx.Where("stone_type = ?", q.StoneType)
	}
	if q.Gender != "" {
		tx = tx.Where("gender = ?", q.Gender)
	}
	if q.Featured {
		tx = tx.Where("is_featured = ?", true)
	}

	//検索はnameとdescriptionを対象
	if strings.TrimSpace(q.Search) != "" {
		like := "%" + strings.TrimSpace(q.Search) + "%"
		tx = tx.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	//sort
	switch q.Sort {
	case "price-asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price-desc":
		tx = tx.Order("price desc").Order("id desc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}

	return products, total, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// slugで公開商品を取得
func (r *ProductGormRepository) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_active = ?", slug, true).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// おすすめ商品を新しい順で返す
func (r *ProductGormRepository) ListFeatured(ctx context.Context, limit int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("is_featured = ? AND is_active = ?", true, true).
		Order("created_at desc").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

// 絞り込みUI用のdistinct値を集める
func (r *ProductGormRepository) FilterOptions(ctx context.Context) (repo.FilterOptions, error) {
	var opts repo.FilterOptions

	cols := []struct {
		column string
		dest   *[]string
	}{
		{"category", &opts.Categories},
		{"metal_type", &opts.MetalTypes},
		{"metal_color", &opts.MetalColors},
		{"stone_type", &opts.StoneTypes},
	}

	for _, c := range cols {
		err := r.db.WithContext(ctx).
			Model(&model.Product{}).
			Where("is_active = ?", true).
			Where(c.column+" <> ''").
			Distinct().
			Pluck(c.column, c.dest).Error
		if err != nil {
			return repo.FilterOptions{}, err
		}
	}

	return opts, nil
}
