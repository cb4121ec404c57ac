package entity

import (
	"time"
)

// Video представляет учебное видео
type Video struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	URL         string    `gorm:"size:255;not null" json:"url"`
	Description string    `gorm:"size:500;not null;default:''" json:"description"`
	Thumbnail   string    `gorm:"size:255;not null;default:''" json:"thumbnail,omitempty"`
	Category    string    `gorm:"size:50;not null;default:'';index" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Video) TableName() string {
	return "videos"
}
