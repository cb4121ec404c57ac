package service

import (
	"fmt"
	"net/url"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	"github.com/yourusername/ecg-portal/internal/domain/repository"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
)

// VideoService предоставляет методы для работы с учебными видео
type VideoService struct {
	videoRepo repository.VideoRepository
}

// NewVideoService создает новый сервис видео
func NewVideoService(videoRepo repository.VideoRepository) *VideoService {
	return &VideoService{videoRepo: videoRepo}
}

func validateVideo(video *entity.Video) error {
	if video.Title == "" {
		return fmt.Errorf("%w: video title is required", apperrors.ErrValidation)
	}
	u, err := url.Parse(video.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: video url must be absolute", apperrors.ErrValidation)
	}
	return nil
}

// CreateVideo создает новое видео
func (s *VideoService) CreateVideo(video *entity.Video) error {
	if err := validateVideo(video); err != nil {
		return err
	}
	return s.videoRepo.Create(video)
}

// GetVideo возвращает видео по ID
func (s *VideoService) GetVideo(id uint) (*entity.Video, error) {
	return s.videoRepo.GetByID(id)
}

// UpdateVideo обновляет видео
func (s *VideoService) UpdateVideo(video *entity.Video) error {
	if err := validateVideo(video); err != nil {
		return err
	}
	return s.videoRepo.Update(video)
}

// DeleteVideo удаляет видео
func (s *VideoService) DeleteVideo(id uint) error {
	return s.videoRepo.Delete(id)
}

// ListVideos возвращает видео с пагинацией
func (s *VideoService) ListVideos(limit, offset int) ([]entity.Video, int64, error) {
	return s.videoRepo.List(limit, offset)
}
