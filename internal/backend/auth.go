package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// AuthAPI is the subset of the managed auth server this code calls.
type AuthAPI interface {
	GetUser(ctx context.Context, accessToken string) (*User, error)
	RefreshSession(ctx context.Context, refreshToken string) (*Session, error)
}

// AuthError is a non-2xx answer from the auth server.
type AuthError struct {
	Status  int
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth server: %d %s: %s", e.Status, e.Code, e.Message)
}

// GoTrue talks to the platform's auth server under <project>/auth/v1.
type GoTrue struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewGoTrue(projectURL, apiKey string, hc *http.Client) *GoTrue {
	if hc == nil {
		hc = &http.Client{}
	}
	return &GoTrue{
		baseURL: strings.TrimRight(projectURL, "/") + "/auth/v1",
		apiKey:  apiKey,
		http:    hc,
	}
}

func (g *GoTrue) GetUser(ctx context.Context, accessToken string) (*User, error) {
	req, err := g.newRequest(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var u User
	if err := g.do(req, &u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, ErrNoSession
	}
	return &u, nil
}

func (g *GoTrue) RefreshSession(ctx context.Context, refreshToken string) (*Session, error) {
	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return nil, err
	}
	req, err := g.newRequest(ctx, http.MethodPost, "/token?grant_type=refresh_token", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var s Session
	if err := g.do(req, &s); err != nil {
		return nil, err
	}
	if s.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

func (g *GoTrue) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", g.apiKey)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (g *GoTrue) do(req *http.Request, out any) error {
	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("auth server request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Code             any    `json:"code"`
			ErrorCode        string `json:"error_code"`
			Error            string `json:"error"`
			Msg              string `json:"msg"`
			ErrorDescription string `json:"error_description"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload)

		ae := &AuthError{Status: resp.StatusCode, Code: payload.ErrorCode, Message: payload.Msg}
		if ae.Code == "" {
			ae.Code = payload.Error
		}
		if ae.Message == "" {
			ae.Message = payload.ErrorDescription
		}
		return ae
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode auth server response: %w", err)
	}
	return nil
}

var _ AuthAPI = (*GoTrue)(nil)
