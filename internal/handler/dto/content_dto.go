package dto

import (
	"time"

	"github.com/yourusername/ecg-portal/internal/domain/entity"
)

// ArticleRequest - запрос на создание или обновление статьи
type ArticleRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required"`
	Author   string `json:"author" binding:"required,max=100"`
	Category string `json:"category" binding:"max=50"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=255"`
}

// ArticleResponse представляет статью в формате для ответа клиенту
type ArticleResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Category  string    `json:"category,omitempty"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaginatedArticlesResponse представляет пагинированный список статей
type PaginatedArticlesResponse struct {
	Articles []*ArticleResponse `json:"articles"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PerPage  int                `json:"per_page"`
}

// VideoRequest - запрос на создание или обновление видео
type VideoRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	URL         string `json:"url" binding:"required,url,max=255"`
	Description string `json:"description" binding:"max=500"`
	Thumbnail   string `json:"thumbnail" binding:"omitempty,url,max=255"`
	Category    string `json:"category" binding:"max=50"`
}

// VideoResponse представляет видео в формате для ответа клиенту
type VideoResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PaginatedVideosResponse представляет пагинированный список видео
type PaginatedVideosResponse struct {
	Videos  []*VideoResponse `json:"videos"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	PerPage int              `json:"per_page"`
}

// ToArticleEntity преобразует запрос в сущность статьи
func (r *ArticleRequest) ToArticleEntity() *entity.Article {
	return &entity.Article{
		Title:    r.Title,
		Content:  r.Content,
		Author:   r.Author,
		Category: r.Category,
		ImageURL: r.ImageURL,
	}
}

// ToVideoEntity преобразует запрос в сущность видео
func (r *VideoRequest) ToVideoEntity() *entity.Video {
	return &entity.Video{
		Title:       r.Title,
		URL:         r.URL,
		Description: r.Description,
		Thumbnail:   r.Thumbnail,
		Category:    r.Category,
	}
}

// NewArticleResponse создает DTO для статьи
func NewArticleResponse(article *entity.Article) *ArticleResponse {
	if article == nil {
		return nil
	}
	return &ArticleResponse{
		ID:        article.ID,
		Title:     article.Title,
		Content:   article.Content,
		Author:    article.Author,
		Category:  article.Category,
		ImageURL:  article.ImageURL,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}

// NewPaginatedArticlesResponse создает DTO для пагинированного списка статей
func NewPaginatedArticlesResponse(articles []entity.Article, total int64, page, perPage int) *PaginatedArticlesResponse {
	list := make([]*ArticleResponse, len(articles))
	for i := range articles {
		list[i] = NewArticleResponse(&articles[i])
	}
	return &PaginatedArticlesResponse{
		Articles: list,
		Total:    total,
		Page:     page,
		PerPage:  perPage,
	}
}

// NewVideoResponse создает DTO для видео
func NewVideoResponse(video *entity.Video) *VideoResponse {
	if video == nil {
		return nil
	}
	return &VideoResponse{
		ID:          video.ID,
		Title:       video.Title,
		URL:         video.URL,
		Description: video.Description,
		Thumbnail:   video.Thumbnail,
		Category:    video.Category,
		CreatedAt:   video.CreatedAt,
		UpdatedAt:   video.UpdatedAt,
	}
}

// NewPaginatedVideosResponse создает DTO для пагинированного списка видео
func NewPaginatedVideosResponse(videos []entity.Video, total int64, page, perPage int) *PaginatedVideosResponse {
	list := make([]*VideoResponse, len(videos))
	for i := range videos {
		list[i] = NewVideoResponse(&videos[i])
	}
	return &PaginatedVideosResponse{
		Videos:  list,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}
