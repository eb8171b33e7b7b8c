package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"comment-service/internal/metrics"
)

func TestAuthClient_ValidateToken(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name        string
		status      int
		body        interface{}
		wantUserID  uuid.UUID
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid token",
			status:     http.StatusOK,
			body:       TokenValidationResponse{UserID: userID.String(), Valid: true},
			wantUserID: userID,
		},
		{
			name:        "revoked token",
			status:      http.StatusOK,
			body:        TokenValidationResponse{Valid: false, Message: "blacklisted"},
			wantErr:     true,
			errContains: "blacklisted",
		},
		{
			name:        "non-200 status",
			status:      http.StatusUnauthorized,
			body:        map[string]string{},
			wantErr:     true,
			errContains: "401",
		},
		{
			name:        "bad user id",
			status:      http.StatusOK,
			body:        TokenValidationResponse{UserID: "nope", Valid: true},
			wantErr:     true,
			errContains: "parse user ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/auth/validate", r.URL.Path)
				assert.Equal(t, http.MethodPost, r.Method)

				var req TokenValidationRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "token-abc", req.Token)

				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(tt.body)
			}))
			defer server.Close()

			m := metrics.NewWithRegistry(prometheus.NewRegistry(), nil)
			c := NewAuthClient(server.URL, time.Second, zap.NewNop(), m)

			got, err := c.ValidateToken(context.Background(), "token-abc")
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUserID, got)
		})
	}
}

func TestAuthClient_Unreachable(t *testing.T) {
	c := NewAuthClient("http://127.0.0.1:1", 200*time.Millisecond, zap.NewNop(), nil)

	_, err := c.ValidateToken(context.Background(), "token")
	assert.Error(t, err)
}

func TestNotificationClient_SendNotification(t *testing.T) {
	target := uuid.New()
	received := make(chan NotificationEvent, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/internal/notifications", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-Internal-API-Key"))

		var event NotificationEvent
		require.NoError(t, json.NewDecoder(r.Body).Decode(&event))
		received <- event
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	c := NewNotificationClient(server.URL, "secret", time.Second, zap.NewNop(), nil)
	err := c.SendNotification(context.Background(), NotificationEvent{
		Type:         NotificationCommentAdded,
		TargetUserID: target,
		ResourceType: "post",
	})
	require.NoError(t, err)

	event := <-received
	assert.Equal(t, NotificationCommentAdded, event.Type)
	assert.Equal(t, target, event.TargetUserID)
	assert.NotEmpty(t, event.OccurredAt)
}

func TestNotificationClient_FailuresAreReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewNotificationClient(server.URL, "", time.Second, zap.NewNop(), nil)
	err := c.SendNotification(context.Background(), NotificationEvent{Type: NotificationCommentAdded})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	unreachable := NewNotificationClient("http://127.0.0.1:1", "", 200*time.Millisecond, zap.NewNop(), nil)
	assert.Error(t, unreachable.SendNotification(context.Background(), NotificationEvent{Type: NotificationCommentAdded}))

	assert.NoError(t, NewNoOpNotificationClient().SendNotification(context.Background(), NotificationEvent{}))
}
