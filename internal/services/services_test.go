package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsomeshop/awsomeshop/internal/api"
	"github.com/awsomeshop/awsomeshop/internal/model"
	"github.com/awsomeshop/awsomeshop/internal/session"
)

func newFixture(t *testing.T, handler http.Handler) (*api.Client, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	store := session.NewStore(t.TempDir(), nil)
	return api.New(store, api.WithBaseURL(srv.URL)), store
}

func TestAuthLogin_StoresSession(t *testing.T) {
	t.Parallel()

	user := model.User{ID: 3, FullName: "Li Na", Email: "li.na@example.com", Role: "employee", PointsBalance: 1000}
	client, store := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "li.na@example.com", req.Email)

		json.NewEncoder(w).Encode(map[string]any{"token": "tok-xyz", "user": user})
	}))

	token, got, err := NewAuth(client, store).Login(context.Background(), "li.na@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-xyz", token)
	assert.Equal(t, user, got)

	storedTok, ok := store.Token()
	require.True(t, ok)
	assert.Equal(t, "tok-xyz", storedTok)
	storedUser, ok := store.User()
	require.True(t, ok)
	assert.Equal(t, user, storedUser)
}

func TestAuthLogin_MissingTokenIsShapeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "no token", body: `{"user":{"id":1}}`},
		{name: "no user", body: `{"token":"tok"}`},
		{name: "not json", body: `<html>proxy error</html>`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, store := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))

			_, _, err := NewAuth(client, store).Login(context.Background(), "a@b.c", "pw")
			var she *api.ShapeError
			require.ErrorAs(t, err, &she)

			// a malformed success must never half-create a session
			_, ok := store.Token()
			assert.False(t, ok)
		})
	}
}

func TestAuthLogout_ClearsStoreEvenWhenBackendFails(t *testing.T) {
	t.Parallel()

	client, store := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	}))
	store.SetSession("tok", model.User{ID: 1})

	err := NewAuth(client, store).Logout(context.Background())
	require.Error(t, err)

	_, ok := store.Token()
	assert.False(t, ok)
}

func TestProductsList_UnwrapsEnvelope(t *testing.T) {
	t.Parallel()

	client, _ := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		w.Write([]byte(`{"products":[{"id":1,"name":"Mug","points_required":500,"stock_quantity":3,"status":"active"}]}`))
	}))

	products, err := NewProducts(client).List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Mug", products[0].Name)
	assert.Equal(t, 500, products[0].PointsRequired)
}

func TestProductsList_WrongEnvelopeField(t *testing.T) {
	t.Parallel()

	client, _ := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))

	_, err := NewProducts(client).List(context.Background())
	var she *api.ShapeError
	require.ErrorAs(t, err, &she)
	assert.Equal(t, "products", she.Field)
}

func TestRedeem_ReturnsOrder(t *testing.T) {
	t.Parallel()

	client, _ := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/redemptions", r.URL.Path)

		var req struct {
			ProductID uint `json:"product_id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, uint(9), req.ProductID)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"order":{"id":1,"order_number":"RD2026010112000039","points_cost":500,"points_balance_after":500,"status":"preparing"}}`))
	}))

	order, err := NewRedemptions(client).Redeem(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "RD2026010112000039", order.OrderNumber)
	assert.Equal(t, 500, order.PointsBalanceAfter)
}

func TestRedeem_BackendErrorPropagates(t *testing.T) {
	t.Parallel()

	client, _ := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"insufficient points: balance 100, required 500"}`))
	}))

	_, err := NewRedemptions(client).Redeem(context.Background(), 9)
	var se *api.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Contains(t, se.Message, "insufficient points")
}

func TestPointsBalance(t *testing.T) {
	t.Parallel()

	client, _ := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/points/balance", r.URL.Path)
		w.Write([]byte(`{"balance":730}`))
	}))

	balance, err := NewPoints(client).Balance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 730, balance)
}

func TestPointsTransactions_NullListBecomesEmpty(t *testing.T) {
	t.Parallel()

	client, _ := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("page_size"))
		w.Write([]byte(`{"transactions":null,"total":0,"page":2,"page_size":10}`))
	}))

	page, err := NewPoints(client).Transactions(context.Background(), 2, 10)
	require.NoError(t, err)
	assert.NotNil(t, page.Transactions)
	assert.Empty(t, page.Transactions)
	assert.Equal(t, 2, page.Page)
}

func TestAdminBatchUpdateOrderStatus(t *testing.T) {
	t.Parallel()

	client, _ := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/admin/orders/batch-status", r.URL.Path)

		var req struct {
			OrderNumbers string `json:"order_numbers"`
			Status       string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "RD1,RD2", req.OrderNumbers)
		assert.Equal(t, "delivered", req.Status)

		w.Write([]byte(`{"message":"order status updated","count":2}`))
	}))

	count, err := NewAdmin(client).BatchUpdateOrderStatus(context.Background(), "RD1,RD2", "delivered")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAdminListEmployees_Filter(t *testing.T) {
	t.Parallel()

	client, _ := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("is_active"))
		w.Write([]byte(`{"users":[{"id":1,"full_name":"Zhang Wei","is_active":true}]}`))
	}))

	active := true
	users, err := NewAdmin(client).ListEmployees(context.Background(), &active)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Zhang Wei", users[0].FullName)
}
