package service

import (
	"fmt"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	"github.com/yourusername/ecg-portal/internal/domain/repository"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
)

// ArticleService предоставляет методы для работы с учебными статьями
type ArticleService struct {
	articleRepo repository.ArticleRepository
}

// NewArticleService создает новый сервис статей
func NewArticleService(articleRepo repository.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// CreateArticle создает новую статью
func (s *ArticleService) CreateArticle(article *entity.Article) error {
	if article.Title == "" || article.Content == "" {
		return fmt.Errorf("%w: article title and content are required", apperrors.ErrValidation)
	}
	return s.articleRepo.Create(article)
}

// GetArticle возвращает статью по ID
func (s *ArticleService) GetArticle(id uint) (*entity.Article, error) {
	return s.articleRepo.GetByID(id)
}

// UpdateArticle обновляет статью
func (s *ArticleService) UpdateArticle(article *entity.Article) error {
	if article.Title == "" || article.Content == "" {
		return fmt.Errorf("%w: article title and content are required", apperrors.ErrValidation)
	}
	return s.articleRepo.Update(article)
}

// DeleteArticle удаляет статью
func (s *ArticleService) DeleteArticle(id uint) error {
	return s.articleRepo.Delete(id)
}

// ListArticles возвращает статьи с пагинацией
func (s *ArticleService) ListArticles(limit, offset int) ([]entity.Article, int64, error) {
	return s.articleRepo.List(limit, offset)
}
