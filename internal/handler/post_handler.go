package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"comment-service/internal/response"
	"comment-service/internal/service"
)

type PostHandler struct {
	postService service.PostService
	logger      *zap.Logger
}

func NewPostHandler(postService service.PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		postService: postService,
		logger:      logger,
	}
}

// GetPost godoc
// @Summary      Get post
// @Description  Returns a post with its comment id list, newest first
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Post ID (UUID)"
// @Success      200 {object} dto.PostResponse "post"
// @Failure      401 {object} response.ErrorResponse "missing or invalid token"
// @Failure      404 {object} response.MessageResponse "Post not found"
// @Failure      500 {string} string "Server error"
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendJSON(c, http.StatusOK, post)
}
