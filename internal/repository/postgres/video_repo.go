package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
)

// VideoRepo реализует repository.VideoRepository
type VideoRepo struct {
	db *gorm.DB
}

// NewVideoRepo создает новый репозиторий видео
func NewVideoRepo(db *gorm.DB) *VideoRepo {
	return &VideoRepo{db: db}
}

// Create создает новое видео
func (r *VideoRepo) Create(video *entity.Video) error {
	return r.db.Create(video).Error
}

// GetByID возвращает видео по ID
func (r *VideoRepo) GetByID(id uint) (*entity.Video, error) {
	var video entity.Video
	err := r.db.First(&video, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

// Update обновляет видео
func (r *VideoRepo) Update(video *entity.Video) error {
	result := r.db.Model(&entity.Video{}).
		Where("id = ?", video.ID).
		Updates(map[string]interface{}{
			"title":       video.Title,
			"url":         video.URL,
			"description": video.Description,
			"thumbnail":   video.Thumbnail,
			"category":    video.Category,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет видео
func (r *VideoRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Video{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List возвращает видео с пагинацией и общим количеством
func (r *VideoRepo) List(limit, offset int) ([]entity.Video, int64, error) {
	var videos []entity.Video
	var total int64

	if err := r.db.Model(&entity.Video{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error
	if err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}
