package dto

import (
	"time"

	"github.com/google/uuid"

	"comment-service/internal/domain"
)

// PostResponse represents a post with its linked comment ids, newest first
type PostResponse struct {
	ID        uuid.UUID   `json:"id"`
	User      uuid.UUID   `json:"user"`
	Text      string      `json:"text"`
	Comments  []uuid.UUID `json:"comments"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewPostResponse converts a domain post into its wire form
func NewPostResponse(post *domain.Post) (*PostResponse, error) {
	ids, err := post.Comments()
	if err != nil {
		return nil, err
	}
	return &PostResponse{
		ID:        post.ID,
		User:      post.UserID,
		Text:      post.Text,
		Comments:  ids,
		CreatedAt: post.CreatedAt,
	}, nil
}
