package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/awsomeshop/awsomeshop/internal/api"
	"github.com/awsomeshop/awsomeshop/internal/model"
)

// AdminService covers the /admin surface: user, product, points and order
// management plus the three reports.
type AdminService struct {
	api *api.Client
}

func NewAdmin(c *api.Client) *AdminService {
	return &AdminService{api: c}
}

// --- users ---

type CreateEmployeeRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

func (s *AdminService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (model.User, error) {
	const path = "/admin/users"
	data, err := s.api.Post(ctx, path, req)
	if err != nil {
		return model.User{}, err
	}
	return unwrap[model.User](data, path, "user")
}

type setStatusRequest struct {
	IsActive bool `json:"is_active"`
}

func (s *AdminService) SetEmployeeStatus(ctx context.Context, userID uint, isActive bool) error {
	_, err := s.api.Put(ctx, fmt.Sprintf("/admin/users/%d/status", userID), setStatusRequest{IsActive: isActive})
	return err
}

// ListEmployees filters on is_active when the pointer is set.
func (s *AdminService) ListEmployees(ctx context.Context, isActive *bool) ([]model.User, error) {
	path := "/admin/users"
	if isActive != nil {
		path += "?is_active=" + strconv.FormatBool(*isActive)
	}
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return unwrap[[]model.User](data, path, "users")
}

// --- products ---

type CreateProductRequest struct {
	Name           string `json:"name"`
	ImageURL       string `json:"image_url,omitempty"`
	PointsRequired int    `json:"points_required"`
	StockQuantity  int    `json:"stock_quantity"`
}

func (s *AdminService) CreateProduct(ctx context.Context, req CreateProductRequest) (model.Product, error) {
	const path = "/admin/products"
	data, err := s.api.Post(ctx, path, req)
	if err != nil {
		return model.Product{}, err
	}
	return unwrap[model.Product](data, path, "product")
}

type UpdateProductRequest struct {
	Name           *string `json:"name,omitempty"`
	ImageURL       *string `json:"image_url,omitempty"`
	PointsRequired *int    `json:"points_required,omitempty"`
	StockQuantity  *int    `json:"stock_quantity,omitempty"`
}

func (s *AdminService) UpdateProduct(ctx context.Context, productID uint, req UpdateProductRequest) (model.Product, error) {
	path := fmt.Sprintf("/admin/products/%d", productID)
	data, err := s.api.Put(ctx, path, req)
	if err != nil {
		return model.Product{}, err
	}
	return unwrap[model.Product](data, path, "product")
}

type setProductStatusRequest struct {
	Status string `json:"status"`
}

func (s *AdminService) SetProductStatus(ctx context.Context, productID uint, status string) error {
	_, err := s.api.Put(ctx, fmt.Sprintf("/admin/products/%d/status", productID), setProductStatusRequest{Status: status})
	return err
}

type markdownRequest struct {
	Markdown string `json:"markdown"`
}

// BatchImportProducts sends one markdown table; the backend creates all rows
// or none. Safe to re-invoke manually after a transport failure.
func (s *AdminService) BatchImportProducts(ctx context.Context, markdown string) ([]model.Product, error) {
	const path = "/admin/products/batch"
	data, err := s.api.Post(ctx, path, markdownRequest{Markdown: markdown})
	if err != nil {
		return nil, err
	}
	return unwrap[[]model.Product](data, path, "products")
}

func (s *AdminService) ListProducts(ctx context.Context, status string) ([]model.Product, error) {
	path := "/admin/products"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return unwrap[[]model.Product](data, path, "products")
}

// --- points ---

type PointsChangeRequest struct {
	UserID uint   `json:"user_id"`
	Amount int    `json:"amount"`
	Reason string `json:"reason"`
}

func (s *AdminService) GrantPoints(ctx context.Context, req PointsChangeRequest) error {
	_, err := s.api.Post(ctx, "/admin/points/grant", req)
	return err
}

func (s *AdminService) DeductPoints(ctx context.Context, req PointsChangeRequest) error {
	_, err := s.api.Post(ctx, "/admin/points/deduct", req)
	return err
}

func (s *AdminService) BatchGrantPoints(ctx context.Context, markdown string) error {
	_, err := s.api.Post(ctx, "/admin/points/batch-grant", markdownRequest{Markdown: markdown})
	return err
}

// --- orders ---

func (s *AdminService) ListOrders(ctx context.Context, status string, userID *uint) ([]model.RedemptionOrder, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", status)
	}
	if userID != nil {
		q.Set("user_id", strconv.FormatUint(uint64(*userID), 10))
	}
	path := "/admin/orders"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return unwrap[[]model.RedemptionOrder](data, path, "orders")
}

type batchOrderStatusRequest struct {
	OrderNumbers string `json:"order_numbers"`
	Status       string `json:"status"`
}

// BatchUpdateOrderStatus accepts order numbers separated by newlines, commas
// or spaces and returns how many the backend updated.
func (s *AdminService) BatchUpdateOrderStatus(ctx context.Context, orderNumbers, status string) (int, error) {
	const path = "/admin/orders/batch-status"
	data, err := s.api.Put(ctx, path, batchOrderStatusRequest{OrderNumbers: orderNumbers, Status: status})
	if err != nil {
		return 0, err
	}
	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, &api.ShapeError{Path: path, Field: "count", Err: err}
	}
	return resp.Count, nil
}

// --- reports ---

func (s *AdminService) PointsGrantsReport(ctx context.Context) ([]model.GrantReportRow, error) {
	const path = "/admin/reports/points-grants"
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return unwrap[[]model.GrantReportRow](data, path, "grants")
}

func (s *AdminService) PointsBalancesReport(ctx context.Context) ([]model.BalanceReportRow, error) {
	const path = "/admin/reports/points-balances"
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return unwrap[[]model.BalanceReportRow](data, path, "balances")
}

func (s *AdminService) RedemptionsReport(ctx context.Context) ([]model.RedemptionReportRow, error) {
	const path = "/admin/reports/redemptions"
	data, err := s.api.Get(ctx, path)
	if err != nil {
		return nil, err
	}
	return unwrap[[]model.RedemptionReportRow](data, path, "redemptions")
}
