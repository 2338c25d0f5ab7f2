package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// AssignmentNotification carries everything the external notification
// collaborator needs to tell an assignee about a task.
type AssignmentNotification struct {
	Recipient   string     `json:"recipient"`
	TaskName    string     `json:"task_name"`
	DueDate     *time.Time `json:"due_date"`
	Description string     `json:"description"`
	Assignor    string     `json:"assignor"`
}

// AssignmentNotifier notifies an assignee that a task was created for or
// reassigned to them. Implementations are external collaborators (email,
// webhook); delivery failures must not abort the task mutation.
type AssignmentNotifier interface {
	NotifyAssignment(ctx context.Context, n AssignmentNotification) error
}

// WebhookNotifier posts assignment events to a configured webhook URL.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// NewWebhookNotifier creates a WebhookNotifier. An empty URL disables
// delivery, which keeps local setups working without a webhook endpoint.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type webhookPayload struct {
	Category   string `json:"category"`
	ObjectType string `json:"object_type"`
	Name       string `json:"name"`
	Action     string `json:"action"`
	Event      string `json:"event"`

	AssignmentNotification
}

// NotifyAssignment posts the assignment event as JSON.
func (w *WebhookNotifier) NotifyAssignment(ctx context.Context, n AssignmentNotification) error {
	if w.url == "" {
		return nil
	}

	payload := webhookPayload{
		Category:               "TaskActivity",
		ObjectType:             "Task",
		Name:                   n.TaskName,
		Action:                 "Assigned",
		Event:                  fmt.Sprintf("Task %s Assigned Successfully", n.TaskName),
		AssignmentNotification: n,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook endpoint returned status %d", resp.StatusCode)
	}

	return nil
}
