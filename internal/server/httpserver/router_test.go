package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/awsomeshop/awsomeshop/internal/server/db"
	"github.com/awsomeshop/awsomeshop/internal/server/models"
	"github.com/awsomeshop/awsomeshop/internal/server/repo"
	"github.com/awsomeshop/awsomeshop/internal/server/service"
)

type testServer struct {
	e   *echo.Echo
	gdb *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	gdb, err := db.Open(context.Background(), "", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))

	repos := repo.New(gdb)
	authSvc := &service.AuthService{Repos: repos, DB: gdb, JWTSecret: []byte("test-secret"), ExpirationHours: 24}
	userSvc := &service.UserService{Repos: repos, DB: gdb}
	productSvc := &service.ProductService{Repos: repos, DB: gdb}
	pointsSvc := &service.PointsService{Repos: repos, DB: gdb}
	redemptionSvc := &service.RedemptionService{Repos: repos, DB: gdb}

	e := echo.New()
	Register(e, &Deps{
		Auth:                &Auth{Svc: authSvc},
		AuthHandler:         &AuthHTTP{Svc: authSvc},
		ProductHandler:      &ProductHTTP{Svc: productSvc},
		RedemptionHandler:   &RedemptionHTTP{Svc: redemptionSvc},
		PointsHandler:       &PointsHTTP{Svc: pointsSvc},
		UserHandler:         &UserHTTP{Svc: userSvc},
		AdminUserHandler:    &AdminUserHTTP{Svc: userSvc},
		AdminProductHandler: &AdminProductHTTP{Svc: productSvc},
		AdminPointsHandler:  &AdminPointsHTTP{Svc: pointsSvc},
		AdminOrderHandler:   &AdminOrderHTTP{Svc: redemptionSvc},
		AdminReportHandler:  &AdminReportHTTP{Points: pointsSvc, RedemptionSvc: redemptionSvc},
	})

	return &testServer{e: e, gdb: gdb}
}

func (ts *testServer) seedUser(t *testing.T, u models.User, password string) models.User {
	t.Helper()

	hash, err := service.HashPassword(password)
	require.NoError(t, err)
	u.PasswordHash = hash
	if u.Role == "" {
		u.Role = "employee"
	}
	require.NoError(t, ts.gdb.Create(&u).Error)
	return u
}

func (ts *testServer) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) login(t *testing.T, email, password string) (string, models.User) {
	t.Helper()

	rec := ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec := ts.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin_SuccessAndErrorShape(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.seedUser(t, models.User{FullName: "Ann", Email: "ann@x.com", Phone: "13800138000", IsActive: true, IsFirstLogin: true}, "pw123456")

	token, user := ts.login(t, "ann@x.com", "pw123456")
	assert.NotEmpty(t, token)
	assert.Equal(t, 1000, user.PointsBalance) // first-login bonus

	// error responses carry {"error": ...}
	rec := ts.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email": "ann@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["error"])
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.seedUser(t, models.User{FullName: "Ann", Email: "ann@x.com", Phone: "13800138000", IsActive: true}, "pw123456")

	rec := ts.request(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/v1/products", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _ := ts.login(t, "ann@x.com", "pw123456")
	rec = ts.request(t, http.MethodGet, "/api/v1/products", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// employees cannot reach the admin surface
	rec = ts.request(t, http.MethodGet, "/api/v1/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRedeemFlow_EndToEnd(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.seedUser(t, models.User{FullName: "Ann", Email: "ann@x.com", Phone: "13800138000", IsActive: true, IsFirstLogin: true}, "pw123456")
	ts.seedUser(t, models.User{FullName: "Boss", Email: "boss@x.com", Phone: "13900139000", Role: "admin", IsActive: true}, "adminpw1")
	require.NoError(t, ts.gdb.Create(&models.Product{Name: "Mug", PointsRequired: 400, StockQuantity: 2, Status: "active"}).Error)

	token, user := ts.login(t, "ann@x.com", "pw123456")
	require.Equal(t, 1000, user.PointsBalance)

	// redeem
	rec := ts.request(t, http.MethodPost, "/api/v1/redemptions", token, map[string]uint{"product_id": 1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Order models.RedemptionOrder `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 600, created.Order.PointsBalanceAfter)
	assert.Equal(t, "preparing", created.Order.Status)

	// balance reflects the cost
	rec = ts.request(t, http.MethodGet, "/api/v1/points/balance", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var balance struct {
		Balance int `json:"balance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &balance))
	assert.Equal(t, 600, balance.Balance)

	// the order shows up in history
	rec = ts.request(t, http.MethodGet, "/api/v1/redemptions", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history struct {
		Orders []models.RedemptionOrder `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.Orders, 1)

	// admin delivers it
	adminToken, _ := ts.login(t, "boss@x.com", "adminpw1")
	rec = ts.request(t, http.MethodPut, "/api/v1/admin/orders/batch-status", adminToken, map[string]string{
		"order_numbers": created.Order.OrderNumber,
		"status":        "delivered",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 1, updated.Count)

	rec = ts.request(t, http.MethodGet, "/api/v1/redemptions", token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history.Orders, 1)
	assert.Equal(t, "delivered", history.Orders[0].Status)
}

func TestRedeem_InsufficientPointsIs400(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.seedUser(t, models.User{FullName: "Ann", Email: "ann@x.com", Phone: "13800138000", IsActive: true}, "pw123456")
	require.NoError(t, ts.gdb.Create(&models.Product{Name: "Laptop", PointsRequired: 99999, StockQuantity: 1, Status: "active"}).Error)

	token, _ := ts.login(t, "ann@x.com", "pw123456")
	rec := ts.request(t, http.MethodPost, "/api/v1/redemptions", token, map[string]uint{"product_id": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "insufficient points")
}

func TestAdminEmployeeLifecycle(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.seedUser(t, models.User{FullName: "Boss", Email: "boss@x.com", Phone: "13900139000", Role: "admin", IsActive: true}, "adminpw1")
	adminToken, _ := ts.login(t, "boss@x.com", "adminpw1")

	// create
	rec := ts.request(t, http.MethodPost, "/api/v1/admin/users", adminToken, map[string]string{
		"full_name": "New Hire", "email": "hire@x.com", "phone": "13812345678",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	// the new hire can log in with the last 6 phone digits
	token, user := ts.login(t, "hire@x.com", "345678")
	assert.Equal(t, 1000, user.PointsBalance)

	// duplicate email conflicts
	rec = ts.request(t, http.MethodPost, "/api/v1/admin/users", adminToken, map[string]string{
		"full_name": "Clone", "email": "hire@x.com", "phone": "13812345678",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// departure deactivates and invalidates points
	rec = ts.request(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/users/%d/status", created.User.ID), adminToken,
		map[string]bool{"is_active": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// the departed employee's token no longer works
	rec = ts.request(t, http.MethodGet, "/api/v1/products", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// reactivation is refused
	rec = ts.request(t, http.MethodPut, fmt.Sprintf("/api/v1/admin/users/%d/status", created.User.ID), adminToken,
		map[string]bool{"is_active": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminPointsAndReports(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ann := ts.seedUser(t, models.User{FullName: "Ann", Email: "ann@x.com", Phone: "13800138000", IsActive: true}, "pw123456")
	ts.seedUser(t, models.User{FullName: "Boss", Email: "boss@x.com", Phone: "13900139000", Role: "admin", IsActive: true}, "adminpw1")
	adminToken, _ := ts.login(t, "boss@x.com", "adminpw1")

	rec := ts.request(t, http.MethodPost, "/api/v1/admin/points/grant", adminToken, map[string]any{
		"user_id": ann.ID, "amount": 500, "reason": "award",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.request(t, http.MethodPost, "/api/v1/admin/points/deduct", adminToken, map[string]any{
		"user_id": ann.ID, "amount": 200, "reason": "correction",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.request(t, http.MethodGet, "/api/v1/admin/reports/points-balances", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var balances struct {
		Balances []repo.BalanceStats `json:"balances"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &balances))
	require.NotEmpty(t, balances.Balances)
	assert.Equal(t, "ann@x.com", balances.Balances[0].UserEmail)
	assert.Equal(t, 300, balances.Balances[0].PointsBalance)

	rec = ts.request(t, http.MethodGet, "/api/v1/admin/reports/points-grants", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var grants struct {
		Grants []repo.GrantStats `json:"grants"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &grants))
	require.Len(t, grants.Grants, 1)
	assert.Equal(t, 500, grants.Grants[0].Amount)
}

func TestAdminProductBatchImport(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	ts.seedUser(t, models.User{FullName: "Boss", Email: "boss@x.com", Phone: "13900139000", Role: "admin", IsActive: true}, "adminpw1")
	adminToken, _ := ts.login(t, "boss@x.com", "adminpw1")

	markdown := "| name | image | stock | points |\n|---|---|---|---|\n| Mug | https://img/m.png | 10 | 500 |\n| Pen | https://img/p.png | 50 | 100 |"
	rec := ts.request(t, http.MethodPost, "/api/v1/admin/products/batch", adminToken, map[string]string{"markdown": markdown})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Products []models.Product `json:"products"`
		Count    int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Products, 2)

	// broken table creates nothing
	rec = ts.request(t, http.MethodPost, "/api/v1/admin/products/batch", adminToken, map[string]string{"markdown": "| just | a | header | row |"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var count int64
	require.NoError(t, ts.gdb.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}
