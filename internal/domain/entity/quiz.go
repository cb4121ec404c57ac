package entity

import (
	"time"
)

// Quiz представляет викторину портала.
// Questions упорядочены по Position; порядок показа совпадает с порядком хранения.
type Quiz struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"size:500;not null;default:''" json:"description"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// QuestionCount возвращает количество вопросов викторины
func (q *Quiz) QuestionCount() int {
	return len(q.Questions)
}

// IsEmpty возвращает true для вырожденной викторины без вопросов.
// Такая викторина допустима: сессия по ней сразу завершается со счетом 0/0.
func (q *Quiz) IsEmpty() bool {
	return len(q.Questions) == 0
}
