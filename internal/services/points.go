package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/awsomeshop/awsomeshop/internal/api"
	"github.com/awsomeshop/awsomeshop/internal/model"
)

type PointsService struct {
	api *api.Client
}

func NewPoints(c *api.Client) *PointsService {
	return &PointsService{api: c}
}

func (s *PointsService) Balance(ctx context.Context) (int, error) {
	const path = "/points/balance"
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return 0, err
	}
	return unwrap[int](data, path, "balance")
}

// Transactions returns one page of the points ledger, newest first.
func (s *PointsService) Transactions(ctx context.Context, page, pageSize int) (model.TransactionsPage, error) {
	path := fmt.Sprintf("/points/transactions?page=%d&page_size=%d", page, pageSize)
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return model.TransactionsPage{}, err
	}

	var resp model.TransactionsPage
	if err := json.Unmarshal(data, &resp); err != nil {
		return model.TransactionsPage{}, &api.ShapeError{Path: "/points/transactions", Field: "transactions", Err: err}
	}
	if resp.Transactions == nil {
		resp.Transactions = []model.PointsTransaction{}
	}
	return resp, nil
}
