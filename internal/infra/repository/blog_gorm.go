package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type BlogGormRepository struct {
	db *gorm.DB
}

// DI
func NewBlogGormRepository(db *gorm.DB) *BlogGormRepository {
	return &BlogGormRepository{db: db}
}

// 公開済みの記事を新しい順（公開日時降順）で返す。
// タグはカンマ区切りのtextで保持しているため部分一致で絞る。
func (r *BlogGormRepository) ListPublished(ctx context.Context, q repo.BlogListQuery) ([]model.BlogPost, int64, error) {
	var posts []model.BlogPost
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.BlogPost{}).
		Where("is_published = ?", true)

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Tag != "" {
		tx = tx.Where("',' || tags || ',' LIKE ?", "%,"+q.Tag+",%")
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.BlogPost{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	err := tx.Order("published_at desc").Order("id desc").
		Offset(offset).Limit(q.Limit).
		Find(&posts).Error
	if err != nil {
		return []model.BlogPost{}, 0, err
	}

	return posts, total, nil
}

// slugで公開済み記事を取得
func (r *BlogGormRepository) FindPublishedBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	var post model.BlogPost
	err := r.db.WithContext(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BlogPost{}, repo.ErrNotFound
	}
	if err != nil {
		return model.BlogPost{}, err
	}
	return post, nil
}
