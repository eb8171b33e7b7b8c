package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"comment-service/internal/domain"
	"comment-service/internal/metrics"
)

// ChannelCommentCreated carries one message per created comment
const ChannelCommentCreated = "comments.created"

// TypeCommentCreated is the type field of a comment creation message
const TypeCommentCreated = "comment.created"

// CommentCreated is the message body published after a comment is stored
type CommentCreated struct {
	Type       string    `json:"type"`
	CommentID  uuid.UUID `json:"commentId"`
	PostID     uuid.UUID `json:"postId"`
	UserID     uuid.UUID `json:"userId"`
	Content    string    `json:"content"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher announces domain events to other services
type Publisher interface {
	PublishCommentCreated(ctx context.Context, comment *domain.Comment) error
}

// redisPublishClient is the slice of the redis client the publisher uses
type redisPublishClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

type redisPublisher struct {
	client  redisPublishClient
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewRedisPublisher publishes events with Redis PUBLISH. m may be nil.
func NewRedisPublisher(client *redis.Client, m *metrics.Metrics, logger *zap.Logger) Publisher {
	return newRedisPublisher(client, m, logger)
}

func newRedisPublisher(client redisPublishClient, m *metrics.Metrics, logger *zap.Logger) *redisPublisher {
	return &redisPublisher{client: client, metrics: m, logger: logger}
}

func (p *redisPublisher) PublishCommentCreated(ctx context.Context, comment *domain.Comment) error {
	data, err := json.Marshal(CommentCreated{
		Type:       TypeCommentCreated,
		CommentID:  comment.ID,
		PostID:     comment.PostID,
		UserID:     comment.UserID,
		Content:    comment.Content,
		OccurredAt: comment.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.client.Publish(ctx, ChannelCommentCreated, data).Err()
	if p.metrics != nil {
		p.metrics.RecordEventPublished(ChannelCommentCreated, err)
	}
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", ChannelCommentCreated, err)
	}

	p.logger.Debug("Published comment event",
		zap.String("channel", ChannelCommentCreated),
		zap.String("comment_id", comment.ID.String()),
	)
	return nil
}

// NoOpPublisher drops every event. Used when Redis is not configured.
type NoOpPublisher struct{}

func (NoOpPublisher) PublishCommentCreated(ctx context.Context, comment *domain.Comment) error {
	return nil
}
