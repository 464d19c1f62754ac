package model

import "time"

// ブログ記事。管理側プロセスが作成・公開し、この系からは読み取り専用。
// Tagsはカンマ区切りで保持する。
type BlogPost struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title         string     `gorm:"type:varchar(255);not null" json:"title"`
	Slug          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Content       string     `gorm:"type:text;not null" json:"content"`
	Excerpt       string     `gorm:"type:text" json:"excerpt"`
	FeaturedImage string     `gorm:"type:varchar(500)" json:"featured_image"`
	Category      string     `gorm:"type:varchar(50);index" json:"category"`
	Tags          string     `gorm:"type:text" json:"tags"`
	IsPublished   bool       `gorm:"not null;default:false;index" json:"is_published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}
