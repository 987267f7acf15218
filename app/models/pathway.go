package models

import (
	"time"

	"gorm.io/gorm"
)

// Pathway is a curated sequence of courses toward a goal.
type Pathway struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	Description  string         `gorm:"type:text" json:"description"`
	ThumbnailURL string         `gorm:"type:varchar(255)" json:"thumbnailUrl"`
	CourseCount  int            `gorm:"default:0" json:"courseCount"`
	IsFree       bool           `gorm:"default:false;index" json:"isFree"`
	Price        int64          `gorm:"not null;default:0" json:"price"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Pathway) GetID() uint      { return p.ID }
func (p *Pathway) GetTitle() string { return p.Title }
func (p *Pathway) Free() bool       { return p.IsFree }
func (p *Pathway) GetPrice() int64  { return p.Price }
