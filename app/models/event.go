package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"type:varchar(200)" json:"location"`
	StartsAt    *time.Time     `gorm:"type:timestamp;default:null;index" json:"startsAt,omitempty"`
	EndsAt      *time.Time     `gorm:"type:timestamp;default:null" json:"endsAt,omitempty"`
	IsFree      bool           `gorm:"default:false;index" json:"isFree"`
	Price       int64          `gorm:"not null;default:0" json:"price"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (e *Event) GetID() uint      { return e.ID }
func (e *Event) GetTitle() string { return e.Title }
func (e *Event) Free() bool       { return e.IsFree }
func (e *Event) GetPrice() int64  { return e.Price }
