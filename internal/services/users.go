package services

import (
	"context"

	"github.com/awsomeshop/awsomeshop/internal/api"
	"github.com/awsomeshop/awsomeshop/internal/model"
)

type UserService struct {
	api *api.Client
}

func NewUsers(c *api.Client) *UserService {
	return &UserService{api: c}
}

func (s *UserService) Profile(ctx context.Context) (model.User, error) {
	const path = "/users/profile"
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return model.User{}, err
	}
	return unwrap[model.User](data, path, "user")
}

type updatePhoneRequest struct {
	Phone string `json:"phone"`
}

func (s *UserService) UpdatePhone(ctx context.Context, phone string) error {
	_, err := s.api.Put(ctx, "/users/phone", updatePhoneRequest{Phone: phone})
	return err
}
