package models

import (
	"time"

	"gorm.io/gorm"
)

type QuizModule struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"type:varchar(200);not null" json:"title" validate:"required,max=200"`
	Description   string         `gorm:"type:text" json:"description"`
	QuestionCount int            `gorm:"default:0" json:"questionCount"`
	TimeLimitMins int            `gorm:"default:0" json:"timeLimitMins"`
	IsFree        bool           `gorm:"default:false;index" json:"isFree"`
	Price         int64          `gorm:"not null;default:0" json:"price"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *QuizModule) GetID() uint      { return q.ID }
func (q *QuizModule) GetTitle() string { return q.Title }
func (q *QuizModule) Free() bool       { return q.IsFree }
func (q *QuizModule) GetPrice() int64  { return q.Price }
