package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"comment-service/internal/dto"
	"comment-service/internal/repository"
	"comment-service/internal/response"
)

// PostService exposes the read side of posts
type PostService interface {
	GetPost(ctx context.Context, postID string) (*dto.PostResponse, error)
}

type postServiceImpl struct {
	store  repository.Store
	logger *zap.Logger
}

// NewPostService creates a new instance of PostService
func NewPostService(store repository.Store, logger *zap.Logger) PostService {
	return &postServiceImpl{store: store, logger: logger}
}

func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*dto.PostResponse, error) {
	id, err := uuid.Parse(postID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeNotFound, msgPostNotFound, err.Error())
	}

	post, err := s.store.Posts().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, msgPostNotFound, "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch post", err.Error())
	}

	resp, err := dto.NewPostResponse(post)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to decode post comments", err.Error())
	}
	return resp, nil
}
