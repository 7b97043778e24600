package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/exp/slog"

	"ewintr.nl/vidsum/auth"
)

// IdentityProvider is the slice of the external identity service the
// forwarding routes need.
type IdentityProvider interface {
	Register(ctx context.Context, email, password string) (*auth.Session, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	Logout(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, email string) error
}

type AuthAPI struct {
	provider IdentityProvider
	logger   *slog.Logger
}

func NewAuthAPI(provider IdentityProvider, logger *slog.Logger) *AuthAPI {
	return &AuthAPI{
		provider: provider,
		logger:   logger,
	}
}

func (api *AuthAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		Error(w, http.StatusNotFound, "not found")
		return
	}

	head, _ := ShiftPath(r.URL.Path)
	switch head {
	case "register":
		api.Register(w, r)
	case "login":
		api.Login(w, r)
	case "logout":
		api.Logout(w, r)
	case "reset-password":
		api.ResetPassword(w, r)
	default:
		Error(w, http.StatusNotFound, "not found")
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (api *AuthAPI) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := api.provider.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	Success(w, http.StatusCreated, sessionData(session))
}

func (api *AuthAPI) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := api.provider.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	Success(w, http.StatusOK, sessionData(session))
}

func (api *AuthAPI) Logout(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		Error(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
		return
	}

	if err := api.provider.Logout(r.Context(), strings.TrimPrefix(header, "Bearer ")); err != nil {
		api.logger.Error("logout failed", err)
		Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	Message(w, http.StatusOK, "logged out successfully")
}

func (api *AuthAPI) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" {
		Error(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := api.provider.ResetPassword(r.Context(), req.Email); err != nil {
		Error(w, http.StatusBadRequest, err.Error())
		return
	}

	Message(w, http.StatusOK, "password reset email sent")
}

// sessionData splits the provider response into a user and an optional
// session. Registration without autoconfirm yields a user but no tokens.
func sessionData(session *auth.Session) map[string]any {
	data := map[string]any{
		"user":    session.User,
		"session": nil,
	}
	if session.AccessToken != "" {
		data["session"] = session
	}

	return data
}
