package repository

import (
	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// ArticleRepository определяет методы для работы со статьями
type ArticleRepository interface {
	Create(article *entity.Article) error
	GetByID(id uint) (*entity.Article, error)
	Update(article *entity.Article) error
	Delete(id uint) error
	List(limit, offset int) ([]entity.Article, int64, error)
}
