package repository

import (
	"context"

	"gorm.io/gorm"

	"comment-service/internal/domain"
)

// Store groups the repositories of one backend
type Store interface {
	Comments() CommentRepository
	Posts() PostRepository
	// CreateCommentForPost saves comment and puts its id first in comment.PostID's list
	CreateCommentForPost(ctx context.Context, comment *domain.Comment) error
	// WithinTransaction runs fn against a Store bound to one unit of work.
	// Backends without multi-document transactions run fn directly.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	// Atomic reports whether WithinTransaction rolls back on error
	Atomic() bool
	Ping(ctx context.Context) error
	Backend() string
}

// gormStore is the relational Store
type gormStore struct {
	db       *gorm.DB
	comments CommentRepository
	posts    PostRepository
}

// NewGormStore creates a Store backed by GORM
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{
		db:       db,
		comments: NewCommentRepository(db),
		posts:    NewPostRepository(db),
	}
}

func (s *gormStore) Comments() CommentRepository { return s.comments }

func (s *gormStore) Posts() PostRepository { return s.posts }

func (s *gormStore) Atomic() bool { return true }

func (s *gormStore) Backend() string { return s.db.Dialector.Name() }

// CreateCommentForPost runs both writes in one transaction
func (s *gormStore) CreateCommentForPost(ctx context.Context, comment *domain.Comment) error {
	return s.WithinTransaction(ctx, func(ctx context.Context, tx Store) error {
		return createCommentForPost(ctx, tx, comment)
	})
}

// WithinTransaction commits when fn returns nil and rolls back otherwise
func (s *gormStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewGormStore(tx))
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func createCommentForPost(ctx context.Context, s Store, comment *domain.Comment) error {
	if err := s.Comments().Create(ctx, comment); err != nil {
		return err
	}
	return s.Posts().PrependComment(ctx, comment.PostID, comment.ID)
}
