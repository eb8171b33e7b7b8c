package repository

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"comment-service/internal/domain"
)

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	FindAll(ctx context.Context) ([]*domain.Post, error)
	// PrependComment puts commentID first in the list. An id already linked is left in place.
	PrependComment(ctx context.Context, postID, commentID uuid.UUID) error
	// ReplaceComments writes commentIDs only while the stored list still equals previous,
	// and returns ErrConflict otherwise.
	ReplaceComments(ctx context.Context, postID uuid.UUID, previous, commentIDs []uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// postRepositoryImpl is the GORM implementation of PostRepository
type postRepositoryImpl struct {
	db *gorm.DB
}

// NewPostRepository creates a new instance of PostRepository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepositoryImpl{db: db}
}

// Create creates a new post
func (r *postRepositoryImpl) Create(ctx context.Context, post *domain.Post) error {
	if len(post.CommentIDs) == 0 {
		if err := post.SetComments(nil); err != nil {
			return err
		}
	}
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID finds a post by its ID
func (r *postRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&post).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// FindAll returns every post
func (r *postRepositoryImpl) FindAll(ctx context.Context) ([]*domain.Post, error) {
	posts := []*domain.Post{}
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// PrependComment puts commentID at the head of the post's comment list.
// The row is locked for the read-modify-write where the dialect supports it.
func (r *postRepositoryImpl) PrependComment(ctx context.Context, postID, commentID uuid.UUID) error {
	post, err := r.findForUpdate(ctx, postID)
	if err != nil {
		return err
	}
	if post.HasComment(commentID) {
		return nil
	}

	if err := post.PrependComment(commentID); err != nil {
		return err
	}

	return r.saveComments(ctx, postID, post)
}

// ReplaceComments overwrites the post's comment list if nobody changed it since previous was read
func (r *postRepositoryImpl) ReplaceComments(ctx context.Context, postID uuid.UUID, previous, commentIDs []uuid.UUID) error {
	post, err := r.findForUpdate(ctx, postID)
	if err != nil {
		return err
	}
	current, err := post.Comments()
	if err != nil {
		return err
	}
	if !slices.Equal(current, previous) {
		return ErrConflict
	}

	if err := post.SetComments(commentIDs); err != nil {
		return err
	}
	return r.saveComments(ctx, postID, post)
}

func (r *postRepositoryImpl) findForUpdate(ctx context.Context, postID uuid.UUID) (*domain.Post, error) {
	var post domain.Post
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", postID).
		First(&post).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepositoryImpl) saveComments(ctx context.Context, postID uuid.UUID, post *domain.Post) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", postID).
		Update("comment_ids", post.CommentIDs)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of stored posts
func (r *postRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
