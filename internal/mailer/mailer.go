package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const resendAPI = "https://api.resend.com"

type Message struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// SendError is a non-2xx answer from the email API.
type SendError struct {
	Status  int
	Name    string
	Message string
}

func (e *SendError) Error() string {
	return fmt.Sprintf("email api: %d %s: %s", e.Status, e.Name, e.Message)
}

// ===============================
// Resend
// ===============================

type ResendSender struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewResendSender(apiKey string, hc *http.Client) *ResendSender {
	if hc == nil {
		hc = &http.Client{}
	}
	return &ResendSender{apiKey: apiKey, baseURL: resendAPI, http: hc}
}

// WithBaseURL points the sender at another host, e.g. a test server.
func (s *ResendSender) WithBaseURL(u string) *ResendSender {
	s.baseURL = strings.TrimRight(u, "/")
	return s
}

func (s *ResendSender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("email api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Name    string `json:"name"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload)
		return &SendError{Status: resp.StatusCode, Name: payload.Name, Message: payload.Message}
	}
	return nil
}

// ===============================
// Log only
// ===============================

// LogSender replaces the email API when no key is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info("email_not_sent",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}

var (
	_ Sender = (*ResendSender)(nil)
	_ Sender = (*LogSender)(nil)
)
