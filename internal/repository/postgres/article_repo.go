package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
	apperrors "github.com/yourusername/ecg-portal/internal/pkg/errors"
)

// ArticleRepo реализует repository.ArticleRepository
type ArticleRepo struct {
	db *gorm.DB
}

// NewArticleRepo создает новый репозиторий статей
func NewArticleRepo(db *gorm.DB) *ArticleRepo {
	return &ArticleRepo{db: db}
}

// Create создает новую статью
func (r *ArticleRepo) Create(article *entity.Article) error {
	return r.db.Create(article).Error
}

// GetByID возвращает статью по ID
func (r *ArticleRepo) GetByID(id uint) (*entity.Article, error) {
	var article entity.Article
	err := r.db.First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Update обновляет статью
func (r *ArticleRepo) Update(article *entity.Article) error {
	result := r.db.Model(&entity.Article{}).
		Where("id = ?", article.ID).
		Updates(map[string]interface{}{
			"title":     article.Title,
			"content":   article.Content,
			"author":    article.Author,
			"category":  article.Category,
			"image_url": article.ImageURL,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete удаляет статью
func (r *ArticleRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.Article{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// List возвращает статьи с пагинацией и общим количеством
func (r *ArticleRepo) List(limit, offset int) ([]entity.Article, int64, error) {
	var articles []entity.Article
	var total int64

	if err := r.db.Model(&entity.Article{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}

	return articles, total, nil
}
