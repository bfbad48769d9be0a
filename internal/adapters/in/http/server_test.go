package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	adapter "ordering/internal/adapters/in/http"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/account"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *adapter.Server {
	return adapter.NewServer(
		commands.PlaceOrderCommandHandler{},
		commands.UpdateOrderStatusCommandHandler{},
		commands.RequestCancelOrderCommandHandler{},
		queries.ListOrdersQueryHandler{},
		queries.ListCustomerOrdersQueryHandler{},
		queries.GetOrderByIDQueryHandler{},
		adapter.NewCustomerResolver(new(MockResolverUserRepository)),
	)
}

func TestRegisterRoutes_ExposesOrderEndpoints(t *testing.T) {
	e := echo.New()
	newTestServer().RegisterRoutes(e, adapter.NewTokenAuthenticator("signing-secret"))

	registered := make(map[string]bool)
	for _, route := range e.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /api/orders",
		"GET /api/orders/admin-paging",
		"GET /api/orders/user-paging",
		"GET /api/orders/:id",
		"PUT /api/orders/:id/status",
		"PUT /api/orders/cancel",
	} {
		assert.True(t, registered[want], "route %s not registered", want)
	}
}

func TestRegisterRoutes_AdminPagingRejectsCustomers(t *testing.T) {
	auth := adapter.NewTokenAuthenticator("signing-secret")
	e := echo.New()
	newTestServer().RegisterRoutes(e, auth)

	token, err := auth.Issue(customerIdentity(), time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/admin-paging", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegisterRoutes_UserPagingRejectsStaff(t *testing.T) {
	auth := adapter.NewTokenAuthenticator("signing-secret")
	e := echo.New()
	newTestServer().RegisterRoutes(e, auth)

	admin := adapter.Identity{
		UserID: customerIdentity().UserID,
		Roles:  []account.Role{account.RoleAdmin},
	}
	token, err := auth.Issue(admin, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/user-paging", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
