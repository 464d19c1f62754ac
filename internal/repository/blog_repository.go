package repository

import (
	"context"

	"app/internal/domain/model"
)

// ブログ記事の一覧検索
type BlogListQuery struct {
	Page     int
	Limit    int
	Category string
	Tag      string
}

// 公開済み記事の取得だけを約束。執筆・公開は管理側プロセスの仕事。
type BlogRepository interface {
	ListPublished(ctx context.Context, q BlogListQuery) ([]model.BlogPost, int64, error)
	FindPublishedBySlug(ctx context.Context, slug string) (model.BlogPost, error)
}
