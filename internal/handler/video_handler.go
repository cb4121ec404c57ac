package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/ecg-portal/internal/handler/dto"
	"github.com/yourusername/ecg-portal/internal/service"
)

// VideoHandler обрабатывает запросы учебных видео
type VideoHandler struct {
	videoService *service.VideoService
}

// NewVideoHandler создает новый обработчик видео
func NewVideoHandler(videoService *service.VideoService) *VideoHandler {
	return &VideoHandler{videoService: videoService}
}

// Create обрабатывает запрос на создание видео
func (h *VideoHandler) Create(c *gin.Context) {
	var req dto.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video := req.ToVideoEntity()
	if err := h.videoService.CreateVideo(video); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewVideoResponse(video))
}

// Get обрабатывает запрос на одно видео
func (h *VideoHandler) Get(c *gin.Context) {
	videoID := c.MustGet("video_id").(uint)

	video, err := h.videoService.GetVideo(videoID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewVideoResponse(video))
}

// List обрабатывает запрос на список видео
func (h *VideoHandler) List(c *gin.Context) {
	page, perPage, offset := pagination(c)

	videos, total, err := h.videoService.ListVideos(perPage, offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedVideosResponse(videos, total, page, perPage))
}

// Update обрабатывает запрос на обновление видео
func (h *VideoHandler) Update(c *gin.Context) {
	videoID := c.MustGet("video_id").(uint)

	var req dto.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video := req.ToVideoEntity()
	video.ID = videoID
	if err := h.videoService.UpdateVideo(video); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewVideoResponse(video))
}

// Delete обрабатывает запрос на удаление видео
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID := c.MustGet("video_id").(uint)

	if err := h.videoService.DeleteVideo(videoID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}
