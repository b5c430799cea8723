package services

import (
	"context"
	"fmt"

	"github.com/awsomeshop/awsomeshop/internal/api"
	"github.com/awsomeshop/awsomeshop/internal/model"
)

type ProductService struct {
	api *api.Client
}

func NewProducts(c *api.Client) *ProductService {
	return &ProductService{api: c}
}

// List returns the active catalog.
func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	const path = "/products"
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return unwrap[[]model.Product](data, path, "products")
}

func (s *ProductService) Get(ctx context.Context, id uint) (model.Product, error) {
	path := fmt.Sprintf("/products/%d", id)
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return model.Product{}, err
	}
	return unwrap[model.Product](data, path, "product")
}
