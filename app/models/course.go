package models

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	Description   string         `gorm:"type:text" json:"description"`
	ThumbnailURL  string         `gorm:"type:varchar(255)" json:"thumbnailUrl"`
	Level         string         `gorm:"type:varchar(30);default:'beginner'" json:"level"`
	DurationHours int            `gorm:"default:0" json:"durationHours"`
	IsFree        bool           `gorm:"default:false;index" json:"isFree"`
	Price         int64          `gorm:"not null;default:0" json:"price"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (c *Course) GetID() uint      { return c.ID }
func (c *Course) GetTitle() string { return c.Title }
func (c *Course) Free() bool       { return c.IsFree }
func (c *Course) GetPrice() int64  { return c.Price }
