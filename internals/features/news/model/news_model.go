package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsModel struct {
	NewsID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:news_id" json:"news_id"`

	NewsTitle string `gorm:"type:varchar(200);not null;column:news_title" json:"news_title"`
	NewsSlug  string `gorm:"type:varchar(220);not null;uniqueIndex:uq_news_slug;column:news_slug" json:"news_slug"`
	NewsBody  string `gorm:"type:text;not null;column:news_body" json:"news_body"`

	NewsIsPublished bool       `gorm:"not null;default:false;column:news_is_published" json:"news_is_published"`
	NewsPublishedAt *time.Time `gorm:"column:news_published_at" json:"news_published_at,omitempty"`

	NewsAuthorID uuid.UUID `gorm:"type:uuid;not null;column:news_author_id" json:"news_author_id"`

	NewsCreatedAt time.Time      `gorm:"column:news_created_at;autoCreateTime" json:"news_created_at"`
	NewsUpdatedAt time.Time      `gorm:"column:news_updated_at;autoUpdateTime" json:"news_updated_at"`
	NewsDeletedAt gorm.DeletedAt `gorm:"column:news_deleted_at;index" json:"news_deleted_at,omitempty"`
}

func (NewsModel) TableName() string { return "news" }
