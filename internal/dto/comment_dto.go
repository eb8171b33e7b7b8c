package dto

import (
	"time"

	"github.com/google/uuid"

	"comment-service/internal/domain"
)

// CreateCommentRequest represents the request to create a new comment
// @Description Request body for creating a comment on a post
// @Description post is the id of the post being commented on
type CreateCommentRequest struct {
	Content string `json:"content" example:"Great write-up"`
	Post    string `json:"post" example:"f47ac10b-58cc-4372-a567-0e02b2c3d479"`
}

// CommentResponse represents the comment response
type CommentResponse struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
	Post    uuid.UUID `json:"post"`
	User    uuid.UUID `json:"user"`
	Date    time.Time `json:"date"`
}

// NewCommentResponse converts a domain comment into its wire form
func NewCommentResponse(comment *domain.Comment) *CommentResponse {
	return &CommentResponse{
		ID:      comment.ID,
		Content: comment.Content,
		Post:    comment.PostID,
		User:    comment.UserID,
		Date:    comment.CreatedAt,
	}
}
