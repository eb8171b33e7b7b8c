package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"comment-service/internal/dto"
	"comment-service/internal/response"
	"comment-service/internal/service"
	"comment-service/internal/util"
	"comment-service/internal/validation"
)

// maxBodyBytes caps a create request body at 100kb
const maxBodyBytes = 100 << 10

type CommentHandler struct {
	commentService service.CommentService
	logger         *zap.Logger
}

func NewCommentHandler(commentService service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		logger:         logger,
	}
}

// GetComments godoc
// @Summary      List comments
// @Description  Returns every comment, newest first
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array}  dto.CommentResponse "comments"
// @Failure      401 {object} response.ErrorResponse "missing or invalid token"
// @Failure      500 {string} string "Server error"
// @Router       /comments [get]
func (h *CommentHandler) GetComments(c *gin.Context) {
	comments, err := h.commentService.GetComments(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendJSON(c, http.StatusOK, comments)
}

// GetComment godoc
// @Summary      Get comment
// @Description  Returns a single comment by id
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Comment ID (UUID)"
// @Success      200 {object} dto.CommentResponse "comment"
// @Failure      401 {object} response.ErrorResponse "missing or invalid token"
// @Failure      404 {object} response.MessageResponse "Comment not found"
// @Failure      500 {string} string "Server error"
// @Router       /comments/{id} [get]
func (h *CommentHandler) GetComment(c *gin.Context) {
	comment, err := h.commentService.GetComment(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendJSON(c, http.StatusOK, comment)
}

// CreateComment godoc
// @Summary      Create comment
// @Description  Stores a comment and links it first in the post's comment list
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCommentRequest true "comment to create"
// @Success      200 {object} dto.CommentResponse "created comment"
// @Failure      400 {object} response.ValidationErrorResponse{errors=[]validation.FieldError} "validation failed"
// @Failure      401 {object} response.ErrorResponse "missing or invalid token"
// @Failure      404 {object} response.MessageResponse "Post not found"
// @Failure      413 {object} response.MessageResponse "Request entity too large"
// @Failure      500 {string} string "Server error"
// @Router       /comments [post]
func (h *CommentHandler) CreateComment(c *gin.Context) {
	auth, ok := util.ExtractAuthData(c)
	if !ok {
		response.AbortUnauthorized(c, "User ID not found in context", "Authorization denied")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.SendMessage(c, http.StatusRequestEntityTooLarge, "Request entity too large")
			return
		}
		handleServiceError(c, h.logger, err)
		return
	}

	fields := validation.FieldsFromJSON(body)
	if errs := validation.CreateComment.Run(fields); len(errs) > 0 {
		response.SendValidationErrors(c, errs)
		return
	}

	req := &dto.CreateCommentRequest{
		Content: fields.String("content"),
		Post:    fields.String("post"),
	}

	comment, err := h.commentService.CreateComment(c.Request.Context(), auth.UserID, req)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response.SendJSON(c, http.StatusOK, comment)
}
