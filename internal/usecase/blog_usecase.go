package usecase

import (
	"context"
	"strings"
	"time"

	"app/internal/apperr"
	"app/internal/domain/model"
	repo "app/internal/repository"
)

// BlogUsecase はブログ記事の読み取り。
type BlogUsecase struct {
	blogRepo repo.BlogRepository
}

func NewBlogUsecase(blogRepo repo.BlogRepository) *BlogUsecase {
	return &BlogUsecase{blogRepo: blogRepo}
}

type BlogPostResponse struct {
	ID            int64      `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content,omitempty"`
	Excerpt       string     `json:"excerpt,omitempty"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Category      string     `json:"category,omitempty"`
	Tags          []string   `json:"tags"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
}

type BlogListResponse struct {
	Posts      []BlogPostResponse `json:"posts"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

// 一覧では本文を落として概要だけ返す。
func toBlogPostResponse(p model.BlogPost, withContent bool) BlogPostResponse {
	out := BlogPostResponse{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		FeaturedImage: p.FeaturedImage,
		Category:      p.Category,
		Tags:          splitTags(p.Tags),
		PublishedAt:   p.PublishedAt,
	}
	if withContent {
		out.Content = p.Content
	}
	return out
}

func splitTags(tags string) []string {
	out := []string{}
	for _, t := range strings.Split(tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// List は公開済み記事の一覧（カテゴリ・タグ絞り込み付き）。
func (u *BlogUsecase) List(ctx context.Context, q repo.BlogListQuery) (BlogListResponse, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 || q.Limit > 50 {
		q.Limit = 10
	}

	posts, total, err := u.blogRepo.ListPublished(ctx, q)
	if err != nil {
		return BlogListResponse{}, apperr.Dependency("failed to list blog posts", err)
	}

	out := make([]BlogPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toBlogPostResponse(p, false))
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return BlogListResponse{
		Posts:      out,
		Total:      total,
		Page:       q.Page,
		TotalPages: totalPages,
	}, nil
}

// GetBySlug は記事詳細。未公開は404扱い。
func (u *BlogUsecase) GetBySlug(ctx context.Context, slug string) (BlogPostResponse, error) {
	if slug == "" {
		return BlogPostResponse{}, apperr.Validation("slug is required")
	}

	p, err := u.blogRepo.FindPublishedBySlug(ctx, slug)
	if err == repo.ErrNotFound {
		return BlogPostResponse{}, apperr.NotFound("blog post not found")
	}
	if err != nil {
		return BlogPostResponse{}, apperr.Dependency("failed to find blog post", err)
	}

	return toBlogPostResponse(p, true), nil
}
