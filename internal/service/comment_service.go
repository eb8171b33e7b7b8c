package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"comment-service/internal/client"
	"comment-service/internal/domain"
	"comment-service/internal/dto"
	"comment-service/internal/event"
	"comment-service/internal/metrics"
	"comment-service/internal/repository"
	"comment-service/internal/response"
)

const (
	msgCommentNotFound = "Comment not found"
	msgPostNotFound    = "Post not found"

	sideEffectTimeout = 3 * time.Second
)

// CommentService defines the interface for comment business logic
type CommentService interface {
	GetComments(ctx context.Context) ([]*dto.CommentResponse, error)
	GetComment(ctx context.Context, commentID string) (*dto.CommentResponse, error)
	CreateComment(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
}

// commentServiceImpl is the implementation of CommentService
type commentServiceImpl struct {
	store     repository.Store
	publisher event.Publisher
	notifier  client.NotificationClient
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewCommentService creates a new instance of CommentService.
// publisher, notifier and m may be nil.
func NewCommentService(
	store repository.Store,
	publisher event.Publisher,
	notifier client.NotificationClient,
	m *metrics.Metrics,
	logger *zap.Logger,
) CommentService {
	if publisher == nil {
		publisher = event.NoOpPublisher{}
	}
	if notifier == nil {
		notifier = client.NewNoOpNotificationClient()
	}
	return &commentServiceImpl{
		store:     store,
		publisher: publisher,
		notifier:  notifier,
		metrics:   m,
		logger:    logger,
	}
}

// GetComments returns every comment, newest first
func (s *commentServiceImpl) GetComments(ctx context.Context) ([]*dto.CommentResponse, error) {
	comments, err := s.store.Comments().FindAll(ctx)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comments", err.Error())
	}

	responses := make([]*dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, dto.NewCommentResponse(comment))
	}
	return responses, nil
}

// GetComment returns one comment. An id that is not a UUID is reported as not found.
func (s *commentServiceImpl) GetComment(ctx context.Context, commentID string) (*dto.CommentResponse, error) {
	id, err := uuid.Parse(commentID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeNotFound, msgCommentNotFound, err.Error())
	}

	comment, err := s.store.Comments().FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, msgCommentNotFound, "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comment", err.Error())
	}

	return dto.NewCommentResponse(comment), nil
}

// CreateComment stores a comment and links it first in its post's comment list.
// The request is expected to have passed validation already.
func (s *commentServiceImpl) CreateComment(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	postID, err := uuid.Parse(req.Post)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeNotFound, msgPostNotFound, err.Error())
	}

	post, err := s.store.Posts().FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, msgPostNotFound, "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to verify post", err.Error())
	}

	comment := &domain.Comment{
		Content: req.Content,
		PostID:  post.ID,
		UserID:  userID,
	}

	if err := s.store.CreateCommentForPost(ctx, comment); err != nil {
		// the post can disappear between the lookup and the link
		if errors.Is(err, repository.ErrNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, msgPostNotFound, "")
		}
		if !s.store.Atomic() && comment.ID != uuid.Nil {
			s.logger.Warn("Comment stored but not linked to post",
				zap.String("comment_id", comment.ID.String()),
				zap.String("post_id", post.ID.String()),
				zap.Error(err),
			)
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", err.Error())
	}

	if s.metrics != nil {
		s.metrics.IncrementCommentCreated()
	}
	s.announce(ctx, comment, post)

	s.logger.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("post_id", post.ID.String()),
		zap.String("user_id", userID.String()),
	)

	return dto.NewCommentResponse(comment), nil
}

// announce runs the best-effort side effects of a new comment. Failures are logged only.
func (s *commentServiceImpl) announce(ctx context.Context, comment *domain.Comment, post *domain.Post) {
	ctx, cancel := context.WithTimeout(ctx, sideEffectTimeout)
	defer cancel()

	if err := s.publisher.PublishCommentCreated(ctx, comment); err != nil {
		s.logger.Warn("Failed to publish comment event",
			zap.String("comment_id", comment.ID.String()),
			zap.Error(err),
		)
	}

	if post.UserID == uuid.Nil || post.UserID == comment.UserID {
		return
	}

	err := s.notifier.SendNotification(ctx, client.NotificationEvent{
		Type:         client.NotificationCommentAdded,
		ActorID:      comment.UserID,
		TargetUserID: post.UserID,
		ResourceType: "post",
		ResourceID:   post.ID,
		Metadata: map[string]interface{}{
			"commentId": comment.ID.String(),
		},
	})
	if err != nil {
		s.logger.Warn("Failed to notify post author",
			zap.String("post_id", post.ID.String()),
			zap.Error(err),
		)
	}
}
