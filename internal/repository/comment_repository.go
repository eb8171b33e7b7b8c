package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"comment-service/internal/domain"
)

var (
	// ErrNotFound is returned by every backend when a lookup matches nothing
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a conditional write finds the record changed since it was read
	ErrConflict = errors.New("record changed concurrently")
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindAll(ctx context.Context) ([]*domain.Comment, error)
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	Count(ctx context.Context) (int64, error)
}

// commentRepositoryImpl is the GORM implementation of CommentRepository
type commentRepositoryImpl struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepositoryImpl{db: db}
}

// Create creates a new comment
func (r *commentRepositoryImpl) Create(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a comment by its ID
func (r *commentRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	var comment domain.Comment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

// FindAll returns every comment, newest first
func (r *commentRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Comment, error) {
	comments := []*domain.Comment{}
	if err := r.db.WithContext(ctx).
		Order("date DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// FindByPostID returns the comments of one post, newest first
func (r *commentRepositoryImpl) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	comments := []*domain.Comment{}
	if err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("date DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// Count returns the number of stored comments
func (r *commentRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Comment{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
