package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pharmaflow/pharmaflow-backend/internal/auth"
	"github.com/pharmaflow/pharmaflow-backend/internal/orders"
	pkgauth "github.com/pharmaflow/pharmaflow-backend/pkg/auth"
	"github.com/pharmaflow/pharmaflow-backend/pkg/config"
	"github.com/pharmaflow/pharmaflow-backend/pkg/db/models"
	"github.com/pharmaflow/pharmaflow-backend/pkg/enums"
	"github.com/pharmaflow/pharmaflow-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResult, error) {
	return &auth.LoginResult{Token: "stub", TokenID: "stub"}, nil
}

func (stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.UserDTO, error) {
	return &auth.UserDTO{}, nil
}

func (stubAuthService) Logout(ctx context.Context, tokenID string) error {
	return nil
}

func (stubAuthService) Me(ctx context.Context, userID uuid.UUID) (*auth.UserDTO, error) {
	return &auth.UserDTO{ID: userID}, nil
}

type stubOrdersService struct{}

func (stubOrdersService) Create(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error) {
	return &models.Order{ID: uuid.New()}, nil
}

func (stubOrdersService) Edit(ctx context.Context, input orders.EditOrderInput) (*models.Order, error) {
	return &models.Order{ID: input.OrderID}, nil
}

func (stubOrdersService) Cancel(ctx context.Context, input orders.CancelOrderInput) error {
	return nil
}

func (stubOrdersService) AdvanceStatus(ctx context.Context, input orders.AdvanceStatusInput) (*models.Order, error) {
	return &models.Order{ID: input.OrderID}, nil
}

func (stubOrdersService) List(ctx context.Context, actor orders.Actor) ([]models.Order, error) {
	return []models.Order{}, nil
}

func (stubOrdersService) Get(ctx context.Context, actor orders.Actor, orderID uuid.UUID) (*models.Order, error) {
	return &models.Order{ID: orderID}, nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(context.Context, string) (bool, error) {
	return true, nil
}

type stubActorLoader struct {
	users map[uuid.UUID]*models.User
}

func (s *stubActorLoader) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return &models.User{ID: id, Role: enums.UserRolePharmacyOwner}, nil
}

type stubDistributorLister struct{}

func (stubDistributorLister) List(context.Context) ([]models.Distributor, error) {
	return []models.Distributor{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", LogLevel: "error"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "pharmaflow-test",
			ExpirationMinutes: 60,
			CookieName:        "pharmaflow_token",
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func newTestRouter(cfg *config.Config, loader *stubActorLoader) http.Handler {
	return NewRouter(RouterParams{
		Config:         cfg,
		Logger:         logger.New(logger.Options{ServiceName: "router-test"}),
		DB:             stubPinger{},
		SessionChecker: stubSessionChecker{},
		ActorLoader:    loader,
		AuthService:    stubAuthService{},
		OrdersService:  stubOrdersService{},
		Distributors:   stubDistributorLister{},
	})
}

func mintToken(t *testing.T, cfg *config.Config, user *models.User) string {
	t.Helper()
	token, err := pkgauth.MintIdentityToken(cfg.JWT, time.Now(), pkgauth.IdentityPayload{
		UserID: user.ID,
		Role:   user.Role,
		Email:  "router@test.local",
		Name:   "Router Test",
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return token
}

func seededLoader(user *models.User) *stubActorLoader {
	return &stubActorLoader{users: map[uuid.UUID]*models.User{user.ID: user}}
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig(), seededLoader(&models.User{ID: uuid.New()}))

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestOrdersRejectsMissingToken(t *testing.T) {
	router := newTestRouter(testConfig(), seededLoader(&models.User{ID: uuid.New()}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestOrdersListWithPharmacyToken(t *testing.T) {
	cfg := testConfig()
	pharmacyID := uuid.New()
	user := &models.User{ID: uuid.New(), Role: enums.UserRolePharmacyOwner, PharmacyID: &pharmacyID}
	router := newTestRouter(cfg, seededLoader(user))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: mintToken(t, cfg, user)})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestOrdersCreateRequiresPharmacyRole(t *testing.T) {
	cfg := testConfig()
	distributorID := uuid.New()
	user := &models.User{ID: uuid.New(), Role: enums.UserRoleDistributor, DistributorID: &distributorID}
	router := newTestRouter(cfg, seededLoader(user))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", nil)
	req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: mintToken(t, cfg, user)})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestStatusRouteRequiresDistributorRole(t *testing.T) {
	cfg := testConfig()
	pharmacyID := uuid.New()
	user := &models.User{ID: uuid.New(), Role: enums.UserRolePharmacyOwner, PharmacyID: &pharmacyID}
	router := newTestRouter(cfg, seededLoader(user))

	target := "/api/v1/orders/" + uuid.NewString() + "/status"
	req := httptest.NewRequest(http.MethodPatch, target, nil)
	req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: mintToken(t, cfg, user)})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestAgentGroupRequiresAgentRole(t *testing.T) {
	cfg := testConfig()
	pharmacyID := uuid.New()
	user := &models.User{ID: uuid.New(), Role: enums.UserRolePharmacyOwner, PharmacyID: &pharmacyID}
	router := newTestRouter(cfg, seededLoader(user))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/agent/performance", nil)
	req.AddCookie(&http.Cookie{Name: cfg.JWT.CookieName, Value: mintToken(t, cfg, user)})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}

func TestLoginSetsAuthCookie(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg, seededLoader(&models.User{ID: uuid.New()}))

	body := `{"email":"owner@pharmacy.test","password":"orange-crate-41"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var found bool
	for _, c := range resp.Result().Cookies() {
		if c.Name == cfg.JWT.CookieName && c.Value != "" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie to be set")
	}
}
