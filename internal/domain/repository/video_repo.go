package repository

import (
	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// VideoRepository определяет методы для работы с видео
type VideoRepository interface {
	Create(video *entity.Video) error
	GetByID(id uint) (*entity.Video, error)
	Update(video *entity.Video) error
	Delete(id uint) error
	List(limit, offset int) ([]entity.Video, int64, error)
}
