package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookNotifierPostsPayload(t *testing.T) {
	var received map[string]interface{}
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	notifier := NewWebhookNotifier(server.URL)

	err := notifier.NotifyAssignment(context.Background(), AssignmentNotification{
		Recipient:   "assignee@example.com",
		TaskName:    "Quarterly report",
		DueDate:     &due,
		Description: "Compile Q3 numbers",
		Assignor:    "manager",
	})
	require.NoError(t, err)
	require.Equal(t, 1, requests)

	assert.Equal(t, "TaskActivity", received["category"])
	assert.Equal(t, "Task", received["object_type"])
	assert.Equal(t, "Quarterly report", received["name"])
	assert.Equal(t, "Assigned", received["action"])
	assert.Equal(t, "Task Quarterly report Assigned Successfully", received["event"])
	assert.Equal(t, "assignee@example.com", received["recipient"])
	assert.Equal(t, "manager", received["assignor"])
}

func TestWebhookNotifierErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := NewWebhookNotifier(server.URL)
	err := notifier.NotifyAssignment(context.Background(), AssignmentNotification{TaskName: "x"})
	assert.Error(t, err)
}

func TestWebhookNotifierDisabledWithoutURL(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	notifier := NewWebhookNotifier("")
	err := notifier.NotifyAssignment(context.Background(), AssignmentNotification{TaskName: "x"})
	assert.NoError(t, err)
	assert.Zero(t, requests)
}
