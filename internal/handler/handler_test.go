package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"comment-service/internal/dto"
	"comment-service/internal/util"
)

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	GetCommentsFunc   func(ctx context.Context) ([]*dto.CommentResponse, error)
	GetCommentFunc    func(ctx context.Context, commentID string) (*dto.CommentResponse, error)
	CreateCommentFunc func(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
}

func (m *MockCommentService) GetComments(ctx context.Context) ([]*dto.CommentResponse, error) {
	if m.GetCommentsFunc != nil {
		return m.GetCommentsFunc(ctx)
	}
	return []*dto.CommentResponse{}, nil
}

func (m *MockCommentService) GetComment(ctx context.Context, commentID string) (*dto.CommentResponse, error) {
	if m.GetCommentFunc != nil {
		return m.GetCommentFunc(ctx, commentID)
	}
	return nil, nil
}

func (m *MockCommentService) CreateComment(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if m.CreateCommentFunc != nil {
		return m.CreateCommentFunc(ctx, userID, req)
	}
	return nil, nil
}

// MockPostService is a mock implementation of PostService
type MockPostService struct {
	GetPostFunc func(ctx context.Context, postID string) (*dto.PostResponse, error)
}

func (m *MockPostService) GetPost(ctx context.Context, postID string) (*dto.PostResponse, error) {
	if m.GetPostFunc != nil {
		return m.GetPostFunc(ctx, postID)
	}
	return nil, nil
}

var testUserID = uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")

// setupTestRouter creates a gin engine that simulates the auth middleware
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		util.SetAuthData(c, util.AuthData{UserID: testUserID, Token: "test-token"})
		c.Next()
	})
	return router
}

func performRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
