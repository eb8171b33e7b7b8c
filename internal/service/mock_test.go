package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"comment-service/internal/client"
	"comment-service/internal/domain"
	"comment-service/internal/repository"
)

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	CreateFunc       func(ctx context.Context, comment *domain.Comment) error
	FindByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	FindAllFunc      func(ctx context.Context) ([]*domain.Comment, error)
	FindByPostIDFunc func(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error)
	CountFunc        func(ctx context.Context) (int64, error)
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return nil
}

func (m *MockCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *MockCommentRepository) FindAll(ctx context.Context) ([]*domain.Comment, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []*domain.Comment{}, nil
}

func (m *MockCommentRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*domain.Comment, error) {
	if m.FindByPostIDFunc != nil {
		return m.FindByPostIDFunc(ctx, postID)
	}
	return []*domain.Comment{}, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	CreateFunc          func(ctx context.Context, post *domain.Post) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	FindAllFunc         func(ctx context.Context) ([]*domain.Post, error)
	PrependCommentFunc  func(ctx context.Context, postID, commentID uuid.UUID) error
	ReplaceCommentsFunc func(ctx context.Context, postID uuid.UUID, previous, commentIDs []uuid.UUID) error
	CountFunc           func(ctx context.Context) (int64, error)
}

func (m *MockPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	return nil
}

func (m *MockPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *MockPostRepository) FindAll(ctx context.Context) ([]*domain.Post, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return []*domain.Post{}, nil
}

func (m *MockPostRepository) PrependComment(ctx context.Context, postID, commentID uuid.UUID) error {
	if m.PrependCommentFunc != nil {
		return m.PrependCommentFunc(ctx, postID, commentID)
	}
	return nil
}

func (m *MockPostRepository) ReplaceComments(ctx context.Context, postID uuid.UUID, previous, commentIDs []uuid.UUID) error {
	if m.ReplaceCommentsFunc != nil {
		return m.ReplaceCommentsFunc(ctx, postID, previous, commentIDs)
	}
	return nil
}

func (m *MockPostRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

// MockStore wires the mock repositories into a Store. CreateCommentForPost
// defaults to Create followed by PrependComment.
type MockStore struct {
	CommentRepo              *MockCommentRepository
	PostRepo                 *MockPostRepository
	CreateCommentForPostFunc func(ctx context.Context, comment *domain.Comment) error
	NonAtomic                bool
}

func newMockStore() *MockStore {
	return &MockStore{
		CommentRepo: &MockCommentRepository{},
		PostRepo:    &MockPostRepository{},
	}
}

func (m *MockStore) Comments() repository.CommentRepository { return m.CommentRepo }

func (m *MockStore) Posts() repository.PostRepository { return m.PostRepo }

func (m *MockStore) CreateCommentForPost(ctx context.Context, comment *domain.Comment) error {
	if m.CreateCommentForPostFunc != nil {
		return m.CreateCommentForPostFunc(ctx, comment)
	}
	if err := m.CommentRepo.Create(ctx, comment); err != nil {
		return err
	}
	return m.PostRepo.PrependComment(ctx, comment.PostID, comment.ID)
}

func (m *MockStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	return fn(ctx, m)
}

func (m *MockStore) Atomic() bool { return !m.NonAtomic }

func (m *MockStore) Ping(ctx context.Context) error { return nil }

func (m *MockStore) Backend() string { return "mock" }

// MockPublisher records published comments
type MockPublisher struct {
	PublishFunc func(ctx context.Context, comment *domain.Comment) error
	Published   []*domain.Comment
}

func (m *MockPublisher) PublishCommentCreated(ctx context.Context, comment *domain.Comment) error {
	m.Published = append(m.Published, comment)
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, comment)
	}
	return nil
}

// MockNotificationClient records sent notifications
type MockNotificationClient struct {
	SendFunc func(ctx context.Context, event client.NotificationEvent) error
	Sent     []client.NotificationEvent
}

func (m *MockNotificationClient) SendNotification(ctx context.Context, event client.NotificationEvent) error {
	m.Sent = append(m.Sent, event)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, event)
	}
	return nil
}

var memoryEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// memoryStore is a map-backed Store for property tests
type memoryStore struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*domain.Comment
	posts    map[uuid.UUID]*domain.Post
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		comments: map[uuid.UUID]*domain.Comment{},
		posts:    map[uuid.UUID]*domain.Post{},
	}
}

func (s *memoryStore) addPost(author uuid.UUID) *domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	post := &domain.Post{BaseModel: domain.BaseModel{ID: uuid.New()}, UserID: author}
	_ = post.SetComments(nil)
	s.posts[post.ID] = post
	return post
}

func (s *memoryStore) Comments() repository.CommentRepository {
	return &MockCommentRepository{
		CreateFunc: func(ctx context.Context, comment *domain.Comment) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			comment.ID = uuid.New()
			// strictly increasing dates keep ordering deterministic
			comment.CreatedAt = memoryEpoch.Add(time.Duration(len(s.comments)) * time.Second)
			copied := *comment
			s.comments[comment.ID] = &copied
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := s.comments[id]; ok {
				copied := *c
				return &copied, nil
			}
			return nil, repository.ErrNotFound
		},
		FindAllFunc: func(ctx context.Context) ([]*domain.Comment, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			all := make([]*domain.Comment, 0, len(s.comments))
			for _, c := range s.comments {
				copied := *c
				all = append(all, &copied)
			}
			sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
			return all, nil
		},
	}
}

func (s *memoryStore) Posts() repository.PostRepository {
	return &MockPostRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			if p, ok := s.posts[id]; ok {
				copied := *p
				return &copied, nil
			}
			return nil, repository.ErrNotFound
		},
		PrependCommentFunc: func(ctx context.Context, postID, commentID uuid.UUID) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			p, ok := s.posts[postID]
			if !ok {
				return repository.ErrNotFound
			}
			return p.PrependComment(commentID)
		},
	}
}

func (s *memoryStore) CreateCommentForPost(ctx context.Context, comment *domain.Comment) error {
	if err := s.Comments().Create(ctx, comment); err != nil {
		return err
	}
	return s.Posts().PrependComment(ctx, comment.PostID, comment.ID)
}

func (s *memoryStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	return fn(ctx, s)
}

func (s *memoryStore) Atomic() bool { return true }

func (s *memoryStore) Ping(ctx context.Context) error { return nil }

func (s *memoryStore) Backend() string { return "memory" }
