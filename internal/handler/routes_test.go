package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ashecone/expense-tracker-api/internal/middleware"
	"github.com/ashecone/expense-tracker-api/internal/service"
	"github.com/ashecone/expense-tracker-api/internal/testutil"
	"github.com/ashecone/expense-tracker-api/internal/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *echo.Echo {
	t.Helper()
	users := testutil.NewMockUserRepository()
	categories := testutil.NewMockCategoryRepository()
	transactions := testutil.NewMockTransactionRepository(categories)

	accounts := service.NewAccountService(users, service.NewBcryptHasher(bcrypt.MinCost))
	ledger := service.NewTransactionService(transactions, service.NewCategoryService(categories))
	hub := websocket.NewHub()
	ledger.SetEventPublisher(hub)
	t.Cleanup(hub.CloseAll)
	t.Cleanup(limiter.Stop)

	e := echo.New()
	RegisterRoutes(e, limiter,
		NewUserHandler(accounts),
		NewTransactionHandler(ledger),
		NewWebSocketHandler(hub, accounts, nil))
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = jsonRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set(echo.HeaderXRealIP, "198.51.100.7")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_LedgerFlow(t *testing.T) {
	e := newTestServer(t, middleware.NewRateLimiter())

	rec := serve(e, http.MethodPost, "/users/signup", `{"name":"Ada","email":"ada@example.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(e, http.MethodPost, "/users/transactions", `{"userId":1,"type":"income","amount":100,"category":"Salary","date":"2024-01-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = serve(e, http.MethodPost, "/users/transactions", `{"userId":1,"type":"expense","amount":30,"category":"Food","date":"2024-01-02"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// static segments win over the :id parameter
	rec = serve(e, http.MethodGet, "/users/transactions/all?userId=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all AllTransactionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Equal(t, "70.00", all.Summary.Balance.String())

	rec = serve(e, http.MethodGet, "/users/transactions/filter?userId=1&type=income", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	rec = serve(e, http.MethodGet, "/users/transactions/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"category":"Salary"`)

	rec = serve(e, http.MethodDelete, "/users/transactions/2?userId=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, "/users/transactions?userId=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"balance":100.00`)

	rec = serve(e, http.MethodPut, "/users/1", `{"name":"Ada L.","email":"ada.l@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodPut, "/users/1/change-password", `{"password":"newsecret1","currentPassword":"secret123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodPost, "/users/signin", `{"email":"ada.l@example.com","password":"newsecret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, http.MethodGet, "/users", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, strings.Contains(rec.Body.String(), "$2a$"), "password hash leaked")
}

func TestRoutes_AuthEndpointsAreRateLimited(t *testing.T) {
	e := newTestServer(t, middleware.NewRateLimiterWithConfig(1, 2))

	body := `{"email":"ghost@example.com","password":"secret123"}`
	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodPost, "/users/signin", body).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodPost, "/users/signin", body).Code)

	rec := serve(e, http.MethodPost, "/users/signin", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// ledger reads are not limited
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/users/transactions/all?userId=1", "").Code)
	}
}
