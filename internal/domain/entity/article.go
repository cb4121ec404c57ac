package entity

import (
	"time"
)

// Article представляет учебную статью
type Article struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Author    string    `gorm:"size:100;not null" json:"author"`
	Category  string    `gorm:"size:50;not null;default:'';index" json:"category"`
	ImageURL  string    `gorm:"size:255;not null;default:''" json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Article) TableName() string {
	return "articles"
}
