package models

import "time"

// ContentItem is the common read surface of the five content models, used
// wherever code works with content generically.
type ContentItem interface {
	GetID() uint
	GetTitle() string
	Free() bool
	GetPrice() int64
}

// ContentTypeEntry is the live catalog of content type names. Request
// validation consults this table instead of a hardcoded list so types can be
// retired without a deploy.
type ContentTypeEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ContentType string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"contentType"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
