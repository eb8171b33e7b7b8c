package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"comment-service/internal/dto"
	"comment-service/internal/response"
	"comment-service/internal/validation"
)

func newCommentRouter(svc *MockCommentService) *gin.Engine {
	handler := NewCommentHandler(svc, zap.NewNop())
	router := setupTestRouter()
	router.GET("/comments", handler.GetComments)
	router.GET("/comments/:id", handler.GetComment)
	router.POST("/comments", handler.CreateComment)
	return router
}

func TestCommentHandler_GetComments(t *testing.T) {
	tests := []struct {
		name           string
		mockService    func(*MockCommentService)
		expectedStatus int
		checkResponse  func(*testing.T, string)
	}{
		{
			name: "success: raw array, no envelope",
			mockService: func(m *MockCommentService) {
				m.GetCommentsFunc = func(ctx context.Context) ([]*dto.CommentResponse, error) {
					return []*dto.CommentResponse{
						{ID: uuid.New(), Content: "newer", Date: time.Now()},
						{ID: uuid.New(), Content: "older", Date: time.Now().Add(-time.Hour)},
					}, nil
				}
			},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body string) {
				var comments []dto.CommentResponse
				require.NoError(t, json.Unmarshal([]byte(body), &comments))
				require.Len(t, comments, 2)
				assert.Equal(t, "newer", comments[0].Content)
			},
		},
		{
			name:           "success: empty list is []",
			mockService:    func(m *MockCommentService) {},
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, body string) {
				assert.JSONEq(t, `[]`, body)
			},
		},
		{
			name: "failure: storage error is plain text",
			mockService: func(m *MockCommentService) {
				m.GetCommentsFunc = func(ctx context.Context) ([]*dto.CommentResponse, error) {
					return nil, response.NewAppError(response.ErrCodeInternal, "Failed to fetch comments", "db down")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, body string) {
				assert.Equal(t, "Server error", body)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockCommentService{}
			tt.mockService(svc)

			w := performRequest(newCommentRouter(svc), http.MethodGet, "/comments", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.checkResponse(t, w.Body.String())
		})
	}
}

func TestCommentHandler_GetComment(t *testing.T) {
	commentID := uuid.New()

	tests := []struct {
		name           string
		id             string
		mockService    func(*MockCommentService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success",
			id:   commentID.String(),
			mockService: func(m *MockCommentService) {
				m.GetCommentFunc = func(ctx context.Context, id string) (*dto.CommentResponse, error) {
					return &dto.CommentResponse{ID: commentID, Content: "hello"}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "failure: not found",
			id:   commentID.String(),
			mockService: func(m *MockCommentService) {
				m.GetCommentFunc = func(ctx context.Context, id string) (*dto.CommentResponse, error) {
					return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "")
				}
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"msg":"Comment not found"}`,
		},
		{
			name: "failure: id passed through unvalidated",
			id:   "abc",
			mockService: func(m *MockCommentService) {
				m.GetCommentFunc = func(ctx context.Context, id string) (*dto.CommentResponse, error) {
					if id != "abc" {
						t.Errorf("id = %q, want abc", id)
					}
					return nil, response.NewAppError(response.ErrCodeNotFound, "Comment not found", "invalid UUID length: 3")
				}
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"msg":"Comment not found"}`,
		},
		{
			name: "failure: unexpected error",
			id:   commentID.String(),
			mockService: func(m *MockCommentService) {
				m.GetCommentFunc = func(ctx context.Context, id string) (*dto.CommentResponse, error) {
					return nil, errors.New("boom")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockCommentService{}
			tt.mockService(svc)

			w := performRequest(newCommentRouter(svc), http.MethodGet, "/comments/"+tt.id, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			if tt.expectedStatus == http.StatusOK {
				var got dto.CommentResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, commentID, got.ID)
			}
		})
	}
}

func TestCommentHandler_CreateComment(t *testing.T) {
	postID := uuid.New()

	tests := []struct {
		name           string
		body           string
		mockService    func(*testing.T, *MockCommentService)
		expectedStatus int
		expectedErrors []string
		expectedBody   string
	}{
		{
			name: "success",
			body: `{"content":"  Nice post ","post":"` + postID.String() + `"}`,
			mockService: func(t *testing.T, m *MockCommentService) {
				m.CreateCommentFunc = func(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
					assert.Equal(t, testUserID, userID)
					assert.Equal(t, "  Nice post ", req.Content, "content is stored as given")
					assert.Equal(t, postID.String(), req.Post)
					return &dto.CommentResponse{ID: uuid.New(), Content: req.Content, Post: postID, User: userID, Date: time.Now()}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "failure: content missing",
			body:           `{"post":"` + postID.String() + `"}`,
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{"Content is required"},
		},
		{
			name:           "failure: both missing keeps rule order",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{"Content is required", "Post is required"},
		},
		{
			name:           "failure: whitespace only",
			body:           `{"content":"   ","post":"\t"}`,
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{"Content is required", "Post is required"},
		},
		{
			name:           "failure: body is not an object",
			body:           `[1,2,3]`,
			expectedStatus: http.StatusBadRequest,
			expectedErrors: []string{"Content is required", "Post is required"},
		},
		{
			name: "failure: post not found",
			body: `{"content":"hi","post":"` + postID.String() + `"}`,
			mockService: func(t *testing.T, m *MockCommentService) {
				m.CreateCommentFunc = func(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
					return nil, response.NewAppError(response.ErrCodeNotFound, "Post not found", "")
				}
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"msg":"Post not found"}`,
		},
		{
			name: "failure: storage error",
			body: `{"content":"hi","post":"` + postID.String() + `"}`,
			mockService: func(t *testing.T, m *MockCommentService) {
				m.CreateCommentFunc = func(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
					return nil, response.NewAppError(response.ErrCodeInternal, "Failed to create comment", "tx aborted")
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			svc := &MockCommentService{}
			if tt.mockService != nil {
				tt.mockService(t, svc)
			}
			inner := svc.CreateCommentFunc
			svc.CreateCommentFunc = func(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
				called = true
				if inner == nil {
					return nil, nil
				}
				return inner(ctx, userID, req)
			}

			w := performRequest(newCommentRouter(svc), http.MethodPost, "/comments", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedErrors != nil {
				assert.False(t, called, "service must not run when validation fails")
				var resp struct {
					Errors []validation.FieldError `json:"errors"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				msgs := make([]string, 0, len(resp.Errors))
				for _, e := range resp.Errors {
					msgs = append(msgs, e.Msg)
					assert.Equal(t, validation.LocationBody, e.Location)
				}
				assert.Equal(t, tt.expectedErrors, msgs)
			}
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
			if tt.expectedStatus == http.StatusInternalServerError {
				assert.Equal(t, "Server error", w.Body.String())
			}
		})
	}
}

func TestCommentHandler_CreateComment_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewCommentHandler(&MockCommentService{}, zap.NewNop())
	router := gin.New()
	router.POST("/comments", handler.CreateComment)

	w := performRequest(router, http.MethodPost, "/comments", `{"content":"x","post":"y"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCommentHandler_CreateComment_BodyTooLarge(t *testing.T) {
	called := false
	svc := &MockCommentService{
		CreateCommentFunc: func(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
			called = true
			return &dto.CommentResponse{ID: uuid.New()}, nil
		},
	}
	router := newCommentRouter(svc)

	oversized := `{"content":"` + strings.Repeat("a", maxBodyBytes) + `","post":"` + uuid.NewString() + `"}`
	w := performRequest(router, http.MethodPost, "/comments", oversized)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"msg":"Request entity too large"}`, w.Body.String())
	assert.False(t, called, "service must not run for an oversized body")

	atLimit := `{"content":"` + strings.Repeat("a", maxBodyBytes/2) + `","post":"` + uuid.NewString() + `"}`
	w = performRequest(router, http.MethodPost, "/comments", atLimit)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}
