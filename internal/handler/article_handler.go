package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ecg-portal/internal/handler/dto"
	"github.com/yourusername/ecg-portal/internal/service"
)

// ArticleHandler обрабатывает запросы учебных статей
type ArticleHandler struct {
	articleService *service.ArticleService
}

// NewArticleHandler создает новый обработчик статей
func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// Create обрабатывает запрос на создание статьи
func (h *ArticleHandler) Create(c *gin.Context) {
	var req dto.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article := req.ToArticleEntity()
	if err := h.articleService.CreateArticle(article); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewArticleResponse(article))
}

// Get обрабатывает запрос на одну статью
func (h *ArticleHandler) Get(c *gin.Context) {
	articleID := c.MustGet("article_id").(uint)

	article, err := h.articleService.GetArticle(articleID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewArticleResponse(article))
}

// List обрабатывает запрос на список статей
func (h *ArticleHandler) List(c *gin.Context) {
	page, perPage, offset := pagination(c)

	articles, total, err := h.articleService.ListArticles(perPage, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedArticlesResponse(articles, total, page, perPage))
}

// Update обрабатывает запрос на обновление статьи
func (h *ArticleHandler) Update(c *gin.Context) {
	articleID := c.MustGet("article_id").(uint)

	var req dto.ArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article := req.ToArticleEntity()
	article.ID = articleID
	if err := h.articleService.UpdateArticle(article); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewArticleResponse(article))
}

// Delete обрабатывает запрос на удаление статьи
func (h *ArticleHandler) Delete(c *gin.Context) {
	articleID := c.MustGet("article_id").(uint)

	if err := h.articleService.DeleteArticle(articleID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}
