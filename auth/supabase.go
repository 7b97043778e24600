package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Supabase is a client for the Supabase auth REST API.
type Supabase struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSupabase(baseURL, apiKey string) *Supabase {
	return &Supabase{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Verify resolves a bearer token to the user id it belongs to.
func (s *Supabase) Verify(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return "", err
	}
	s.setHeaders(req, token)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ErrInvalidToken
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return "", fmt.Errorf("decode user: %w", err)
	}
	if user.ID == "" {
		return "", ErrInvalidToken
	}

	return user.ID, nil
}

// Register creates a new account.
func (s *Supabase) Register(ctx context.Context, email, password string) (*Session, error) {
	return s.postCredentials(ctx, "/auth/v1/signup", email, password)
}

// Login exchanges credentials for a session.
func (s *Supabase) Login(ctx context.Context, email, password string) (*Session, error) {
	return s.postCredentials(ctx, "/auth/v1/token?grant_type=password", email, password)
}

// Logout revokes the session behind the token.
func (s *Supabase) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	s.setHeaders(req, token)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("logout: %s", errorMessage(resp.Body))
	}

	return nil
}

// ResetPassword asks the provider to mail a password reset link.
func (s *Supabase) ResetPassword(ctx context.Context, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/v1/recover", bytes.NewReader(body))
	if err != nil {
		return err
	}
	s.setHeaders(req, "")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("reset password: %s", errorMessage(resp.Body))
	}

	return nil
}

func (s *Supabase) postCredentials(ctx context.Context, path, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	s.setHeaders(req, "")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("identity provider: %s", errorMessage(resp.Body))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return nil, err
	}

	session := &Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if session.User.ID == "" {
		// signup without autoconfirm returns the bare user object
		if err := json.Unmarshal(raw, &session.User); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
	}

	return session, nil
}

func (s *Supabase) setHeaders(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.apiKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// errorMessage digs the human-readable message out of the provider's
// several error body shapes.
func errorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64*1024))
	if err != nil {
		return "unknown error"
	}

	var parsed struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		ErrorDescription string `json:"error_description"`
		Error            string `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "unknown error"
	}
	for _, msg := range []string{parsed.Msg, parsed.Message, parsed.ErrorDescription, parsed.Error} {
		if msg != "" {
			return msg
		}
	}

	return "unknown error"
}
