package services

import (
	"context"
	"fmt"

	"github.com/awsomeshop/awsomeshop/internal/api"
	"github.com/awsomeshop/awsomeshop/internal/model"
)

type RedemptionService struct {
	api *api.Client
}

func NewRedemptions(c *api.Client) *RedemptionService {
	return &RedemptionService{api: c}
}

type redeemRequest struct {
	ProductID uint `json:"product_id"`
}

func (s *RedemptionService) Redeem(ctx context.Context, productID uint) (model.RedemptionOrder, error) {
	const path = "/redemptions"
	data, err := s.api.Post(ctx, path, redeemRequest{ProductID: productID})
	if err != nil {
		return model.RedemptionOrder{}, err
	}
	return unwrap[model.RedemptionOrder](data, path, "order")
}

func (s *RedemptionService) History(ctx context.Context) ([]model.RedemptionOrder, error) {
	const path = "/redemptions"
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return unwrap[[]model.RedemptionOrder](data, path, "orders")
}

func (s *RedemptionService) Get(ctx context.Context, id uint) (model.RedemptionOrder, error) {
	path := fmt.Sprintf("/redemptions/%d", id)
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return model.RedemptionOrder{}, err
	}
	return unwrap[model.RedemptionOrder](data, path, "order")
}
