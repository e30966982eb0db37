package notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFCMSender_Send(t *testing.T) {
	var got fcmMessage
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":1,"failure":0,"results":[{}]}`))
	}))
	defer srv.Close()

	sender := NewFCMSender(srv.URL, "server-key", "ic_launcher", time.Second)
	err := sender.Send(context.Background(), "device-token", "Title", "Body")

	require.NoError(t, err)
	assert.Equal(t, "key=server-key", auth)
	assert.Equal(t, []string{"device-token"}, got.RegistrationIDs)
	assert.Equal(t, "high", got.Priority)
	assert.Equal(t, "Title", got.Notification.Title)
	assert.Equal(t, "Body", got.Notification.Body)
	assert.Equal(t, "ic_launcher", got.Notification.Icon)
}

func TestFCMSender_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"unauthorized", http.StatusUnauthorized, `{}`},
		{"token rejected", http.StatusOK, `{"success":0,"failure":1,"results":[{"error":"NotRegistered"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewFCMSender(srv.URL, "k", "", time.Second).Send(context.Background(), "t", "a", "b")
			assert.Error(t, err)
		})
	}
}

func TestTwilioService_LogsWithoutSender(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	svc := NewTwilioService("", "", "", zap.New(core))

	err := svc.SendSMS(context.Background(), "+919876543210", "Your code is 123456")

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "+919876543210", entry.ContextMap()["to"])
}
