package models

import (
	"time"

	"gorm.io/gorm"
)

type Podcast struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	Description  string         `gorm:"type:text" json:"description"`
	AudioURL     string         `gorm:"type:varchar(255)" json:"audioUrl"`
	DurationMins int            `gorm:"default:0" json:"durationMins"`
	IsFree       bool           `gorm:"default:false;index" json:"isFree"`
	Price        int64          `gorm:"not null;default:0" json:"price"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Podcast) GetID() uint      { return p.ID }
func (p *Podcast) GetTitle() string { return p.Title }
func (p *Podcast) Free() bool       { return p.IsFree }
func (p *Podcast) GetPrice() int64  { return p.Price }
