package services

import (
	"context"
	"encoding/json"

	"github.com/awsomeshop/awsomeshop/internal/api"
	"github.com/awsomeshop/awsomeshop/internal/model"
	"github.com/awsomeshop/awsomeshop/internal/session"
)

type AuthService struct {
	api   *api.Client
	store *session.Store
}

func NewAuth(c *api.Client, store *session.Store) *AuthService {
	return &AuthService{api: c, store: store}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and, on success, writes token and user into the store
// as one operation.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, model.User, error) {
	const path = "/auth/login"
	data, err := s.api.Post(ctx, path, LoginRequest{Email: email, Password: password})
	if err != nil {
		return "", model.User{}, err
	}

	var resp struct {
		Token string      `json:"token"`
		User  *model.User `json:"user"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", model.User{}, &api.ShapeError{Path: path, Field: "token", Err: err}
	}
	if resp.Token == "" || resp.User == nil {
		return "", model.User{}, &api.ShapeError{Path: path, Field: "token"}
	}

	s.store.SetSession(resp.Token, *resp.User)
	return resp.Token, *resp.User, nil
}

// Logout tells the backend best-effort and clears the store regardless of the
// outcome; local cleanup is never skipped on a network failure.
func (s *AuthService) Logout(ctx context.Context) error {
	defer s.store.Clear()
	_, err := s.api.Post(ctx, "/auth/logout", nil)
	return err
}

func (s *AuthService) Me(ctx context.Context) (model.User, error) {
	const path = "/auth/me"
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return model.User{}, err
	}
	return unwrap[model.User](data, path, "user")
}
