package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwtpizza/pizza-service/internal/core/domain"
	"github.com/jwtpizza/pizza-service/internal/core/ports"
	"github.com/jwtpizza/pizza-service/internal/core/service"
	"github.com/jwtpizza/pizza-service/internal/infrastructure/http/handlers"
	"github.com/jwtpizza/pizza-service/internal/pkg/config"
)

// --- fakes ---

type memSessions struct {
	mu     sync.Mutex
	active map[string]int64
}

func (s *memSessions) Register(_ context.Context, sig string, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[sig] = userID
	return nil
}

func (s *memSessions) Revoke(_ context.Context, sig string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, sig)
	return nil
}

func (s *memSessions) IsRevoked(_ context.Context, sig string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.active[sig]
	return !ok, nil
}

func (s *memSessions) RevokeUser(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sig, id := range s.active {
		if id == userID {
			delete(s.active, sig)
		}
	}
	return nil
}

type fakeAuth struct {
	tokens *service.TokenService
}

func (f *fakeAuth) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	u := &domain.User{ID: 2, Name: in.Name, Email: in.Email, Roles: []domain.RoleAssignment{{Role: domain.RoleDiner}}}
	return f.session(ctx, u)
}

func (f *fakeAuth) Login(context.Context, string, string) (*ports.AuthResult, error) {
	return nil, domain.ErrUnknownUser
}

func (f *fakeAuth) Logout(ctx context.Context, token string) error {
	return f.tokens.Revoke(ctx, token)
}

func (f *fakeAuth) session(ctx context.Context, u *domain.User) (*ports.AuthResult, error) {
	token, err := f.tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	if err := f.tokens.Activate(ctx, u.ID, token); err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: u, Token: token}, nil
}

type fakeUsers struct {
	auth       *fakeAuth
	lastFilter ports.ListUsersFilter
	deletes    int
}

func (f *fakeUsers) Update(ctx context.Context, actor domain.Identity, userID int64, in ports.UpdateUserInput) (*ports.AuthResult, error) {
	if actor.ID != userID && !domain.HasRole(actor, domain.RoleAdmin) {
		return nil, domain.Forbidden("unauthorized")
	}
	return f.auth.session(ctx, &domain.User{ID: userID, Name: in.Name, Email: actor.Email, Roles: actor.Roles})
}

func (f *fakeUsers) Delete(context.Context, int64) error {
	f.deletes++
	return nil
}

func (f *fakeUsers) List(_ context.Context, filter ports.ListUsersFilter) (*domain.UserPage, error) {
	f.lastFilter = filter
	return &domain.UserPage{Users: []domain.User{}, More: false}, nil
}

type fakeFranchises struct {
	lastFilter ports.ListFranchisesFilter
	lastActor  *domain.Identity
	creates    int
}

func (f *fakeFranchises) List(_ context.Context, actor *domain.Identity, filter ports.ListFranchisesFilter) (*domain.FranchisePage, error) {
	f.lastActor = actor
	f.lastFilter = filter
	return &domain.FranchisePage{Franchises: []domain.Franchise{}, More: true}, nil
}

func (f *fakeFranchises) ListForUser(context.Context, domain.Identity, int64) ([]domain.Franchise, error) {
	return []domain.Franchise{}, nil
}

func (f *fakeFranchises) Create(_ context.Context, in ports.CreateFranchiseInput) (*domain.Franchise, error) {
	f.creates++
	return &domain.Franchise{ID: 1, Name: in.Name, Stores: []domain.Store{}}, nil
}

func (f *fakeFranchises) Delete(context.Context, int64) error { return nil }

func (f *fakeFranchises) CreateStore(context.Context, domain.Identity, int64, string) (*domain.Store, error) {
	return nil, domain.Forbidden("unable to create a store")
}

func (f *fakeFranchises) DeleteStore(context.Context, domain.Identity, int64, int64) error {
	return domain.Forbidden("unable to delete a store")
}

type fakeOrders struct {
	menuAdds int
	createFn func(diner domain.Identity, in ports.CreateOrderInput) (*ports.OrderReceipt, error)
}

func (f *fakeOrders) Menu(context.Context) ([]domain.MenuItem, error) {
	return []domain.MenuItem{{ID: 1, Title: "Veggie", Image: "pizza1.png", Price: 0.0038, Description: "A garden of delight"}}, nil
}

func (f *fakeOrders) AddMenuItem(_ context.Context, item domain.MenuItem) ([]domain.MenuItem, error) {
	f.menuAdds++
	item.ID = 2
	return []domain.MenuItem{item}, nil
}

func (f *fakeOrders) Orders(_ context.Context, diner domain.Identity, page int) (*domain.OrderPage, error) {
	return &domain.OrderPage{DinerID: diner.ID, Orders: []domain.Order{}, Page: page}, nil
}

func (f *fakeOrders) Create(_ context.Context, diner domain.Identity, in ports.CreateOrderInput) (*ports.OrderReceipt, error) {
	return f.createFn(diner, in)
}

// --- harness ---

type testServer struct {
	e          *echo.Echo
	auth       *fakeAuth
	users      *fakeUsers
	franchises *fakeFranchises
	orders     *fakeOrders
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens := service.NewTokenService("test-secret", &memSessions{active: map[string]int64{}})
	auth := &fakeAuth{tokens: tokens}
	s := &testServer{
		auth:       auth,
		users:      &fakeUsers{auth: auth},
		franchises: &fakeFranchises{},
		orders:     &fakeOrders{},
	}
	s.e = NewRouter(Deps{
		Config: &config.Config{
			Version:          "20240518.154317",
			CORSAllowOrigins: []string{"*"},
			Mongo:            config.MongoConfig{URI: "mongodb://user:pw@db.internal:27017/?tls=true"},
			Factory:          config.FactoryConfig{URL: "https://pizza-factory.cs329.click"},
		},
		Log:             zerolog.Nop(),
		Tokens:          tokens,
		Auth:            auth,
		Users:           s.users,
		Franchises:      s.franchises,
		Orders:          s.orders,
		ReadinessChecks: map[string]handlers.Check{},
	})
	return s
}

// login issues an active token for a user holding roles.
func (s *testServer) login(t *testing.T, id int64, roles ...domain.RoleAssignment) string {
	t.Helper()
	res, err := s.auth.session(context.Background(), &domain.User{ID: id, Name: "pizza diner", Email: "d@jwt.com", Roles: roles})
	require.NoError(t, err)
	return res.Token
}

func (s *testServer) do(t *testing.T, method, path, token, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec.Code, out
}

var (
	dinerRole = domain.RoleAssignment{Role: domain.RoleDiner}
	adminRole = domain.RoleAssignment{Role: domain.RoleAdmin}
)

// --- tests ---

func TestRouter_AuthenticatedRoutesRejectAnonymousCallers(t *testing.T) {
	s := newTestServer(t)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/user/me"},
		{http.MethodGet, "/api/order"},
		{http.MethodPost, "/api/order"},
		{http.MethodDelete, "/api/auth"},
		{http.MethodPut, "/api/user/2"},
		{http.MethodPost, "/api/franchise/1/store"},
	}
	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			code, body := s.do(t, r.method, r.path, "", "")
			assert.Equal(t, http.StatusUnauthorized, code)
			assert.Equal(t, map[string]any{"message": "unauthorized"}, body)
		})
	}
}

func TestRouter_ForgedTokenIsAnonymous(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, 2, dinerRole)

	code, _ := s.do(t, http.MethodGet, "/api/user/me", token[:len(token)-2]+"zz", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodGet, "/api/user/me", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_AdminGuardsDoNotReachServices(t *testing.T) {
	s := newTestServer(t)
	dinerToken := s.login(t, 2, dinerRole)

	code, body := s.do(t, http.MethodPost, "/api/franchise", "", `{"name":"pizzaPocket","admins":[{"email":"f@jwt.com"}]}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "unable to create a franchise", body["message"])

	code, body = s.do(t, http.MethodPost, "/api/franchise", dinerToken, `{"name":"pizzaPocket","admins":[{"email":"f@jwt.com"}]}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "unable to create a franchise", body["message"])

	code, body = s.do(t, http.MethodPut, "/api/order/menu", dinerToken, `{"title":"Student","price":0.0001}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "unable to add menu item", body["message"])

	code, _ = s.do(t, http.MethodDelete, "/api/user/3", dinerToken, "")
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodGet, "/api/user", dinerToken, "")
	assert.Equal(t, http.StatusForbidden, code)

	assert.Zero(t, s.franchises.creates)
	assert.Zero(t, s.orders.menuAdds)
	assert.Zero(t, s.users.deletes)
}

func TestRouter_AdminRoutes(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.login(t, 1, adminRole)

	code, body := s.do(t, http.MethodPost, "/api/franchise", adminToken, `{"name":"pizzaPocket","admins":[{"email":"f@jwt.com"}]}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pizzaPocket", body["name"])

	code, _ = s.do(t, http.MethodDelete, "/api/user/3", adminToken, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, s.users.deletes)
}

func TestRouter_StoreDenialShape(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, 2, dinerRole)

	code, body := s.do(t, http.MethodPost, "/api/franchise/1/store", token, `{"name":"SLC"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, map[string]any{"message": "unable to create a store"}, body)
}

func TestRouter_RegisterAndLogout(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/auth", "", `{"name":"pizza diner","email":"d@jwt.com","password":"diner"}`)
	require.Equal(t, http.StatusOK, code)
	user := body["user"].(map[string]any)
	assert.Equal(t, []any{map[string]any{"role": "diner"}}, user["roles"])
	token := body["token"].(string)

	code, me := s.do(t, http.MethodGet, "/api/user/me", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "d@jwt.com", me["email"])

	code, body = s.do(t, http.MethodDelete, "/api/auth", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "logout successful", body["message"])

	code, _ = s.do(t, http.MethodGet, "/api/user/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, code, "revoked token must not authenticate")
}

func TestRouter_UpdateUserReissuesToken(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, 2, dinerRole)

	code, body := s.do(t, http.MethodPut, "/api/user/2", token, `{"name":"renamed diner"}`)
	require.Equal(t, http.StatusOK, code)
	reissued := body["token"].(string)
	assert.NotEqual(t, token, reissued)

	_, me := s.do(t, http.MethodGet, "/api/user/me", reissued, "")
	assert.Equal(t, "renamed diner", me["name"])

	code, body = s.do(t, http.MethodPut, "/api/user/3", token, `{"name":"hijack"}`)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "unauthorized", body["message"])

	code, body = s.do(t, http.MethodPut, "/api/user/abc", token, `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "unknown user", body["message"])
}

func TestRouter_Pagination(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/api/franchise?page=3&limit=2&name=pizza*", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, ports.ListFranchisesFilter{Page: 3, Limit: 2, Name: "pizza*"}, s.franchises.lastFilter)
	assert.Nil(t, s.franchises.lastActor)
	assert.Equal(t, true, body["more"])

	adminToken := s.login(t, 1, adminRole)
	code, _ = s.do(t, http.MethodGet, "/api/user?page=x&limit=0", adminToken, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, ports.ListUsersFilter{Page: 1, Limit: 10, Name: "*"}, s.users.lastFilter)

	code, _ = s.do(t, http.MethodGet, "/api/user?page=9223372036854775807", adminToken, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1_000_000, s.users.lastFilter.Page)

	dinerToken := s.login(t, 4, dinerRole)
	code, body = s.do(t, http.MethodGet, "/api/order?page=9223372036854775807", dinerToken, "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1_000_000, body["page"])
}

func TestRouter_CreateOrder(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, 4, dinerRole)
	order := `{"franchiseId":1,"storeId":1,"items":[{"menuId":1,"description":"Veggie","price":0.05}]}`

	t.Run("accepted", func(t *testing.T) {
		s.orders.createFn = func(diner domain.Identity, in ports.CreateOrderInput) (*ports.OrderReceipt, error) {
			assert.Equal(t, int64(4), diner.ID)
			return &ports.OrderReceipt{
				Order:     &domain.Order{ID: 1, FranchiseID: in.FranchiseID, StoreID: in.StoreID, Items: in.Items},
				ReportURL: "https://pizza-factory.cs329.click/report/1",
				JWT:       "1111111111",
			}, nil
		}
		code, body := s.do(t, http.MethodPost, "/api/order", token, order)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, "1111111111", body["jwt"])
		assert.Equal(t, "https://pizza-factory.cs329.click/report/1", body["followLinkToEndChaos"])
		assert.Contains(t, body, "order")
	})

	t.Run("rejected", func(t *testing.T) {
		s.orders.createFn = func(domain.Identity, ports.CreateOrderInput) (*ports.OrderReceipt, error) {
			return nil, domain.Upstream("Failed to fulfill order at factory").With("followLinkToEndChaos", "https://chaos")
		}
		code, body := s.do(t, http.MethodPost, "/api/order", token, order)
		assert.Equal(t, http.StatusInternalServerError, code)
		assert.Equal(t, map[string]any{
			"message":              "Failed to fulfill order at factory",
			"followLinkToEndChaos": "https://chaos",
		}, body)
	})

	t.Run("invalid", func(t *testing.T) {
		code, _ := s.do(t, http.MethodPost, "/api/order", token, `{"items":[]}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})
}

func TestRouter_PublicRoutes(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "welcome to JWT Pizza", body["message"])
	assert.Equal(t, "20240518.154317", body["version"])

	code, body = s.do(t, http.MethodGet, "/api/docs", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["endpoints"])
	assert.Equal(t, map[string]any{"factory": "https://pizza-factory.cs329.click", "db": "db.internal:27017"}, body["config"])

	code, _ = s.do(t, http.MethodGet, "/api/order/menu", "", "")
	assert.Equal(t, http.StatusOK, code)

	code, body = s.do(t, http.MethodDelete, "/api/franchise/1", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "franchise deleted", body["message"])
}

func TestRouter_UnknownEndpoint(t *testing.T) {
	s := newTestServer(t)

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/api/nope"},
		{http.MethodGet, "/nope"},
		{http.MethodPatch, "/api/auth"},
	} {
		code, body := s.do(t, r.method, r.path, "", "")
		assert.Equal(t, http.StatusNotFound, code, r.path)
		assert.Equal(t, map[string]any{"message": "unknown endpoint"}, body, r.path)
	}
}
