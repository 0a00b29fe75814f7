package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"admin-console/internal/config"
	"admin-console/internal/models"
	"admin-console/internal/repository"
	"admin-console/internal/service"
	"admin-console/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ---- Service Mocks ----

type mockAuthorization struct {
	loginToken  string
	loginUser   models.SafeUser
	loginErr    error
	parseClaims *token.Claims
	parseErr    error
	currentUser models.SafeUser
	currentErr  error

	lastLoginUsername string
	lastLoginPassword string
	lastParsedToken   string
	lastCurrentID     string
}

func (m *mockAuthorization) Login(ctx context.Context, username, password string) (string, models.SafeUser, error) {
	m.lastLoginUsername = username
	m.lastLoginPassword = password
	return m.loginToken, m.loginUser, m.loginErr
}

func (m *mockAuthorization) ParseToken(raw string) (*token.Claims, error) {
	m.lastParsedToken = raw
	return m.parseClaims, m.parseErr
}

func (m *mockAuthorization) CurrentUser(ctx context.Context, userID string) (models.SafeUser, error) {
	m.lastCurrentID = userID
	return m.currentUser, m.currentErr
}

type mockUsers struct {
	listResp   []models.SafeUser
	listErr    error
	createResp models.SafeUser
	createErr  error
	updateResp models.SafeUser
	updateErr  error
	deleteResp models.SafeUser
	deleteErr  error

	lastCreate   repository.CreateInput
	lastUpdateID string
	lastPatch    repository.UpdatePatch
	lastDeleteID string
}

func (m *mockUsers) List(ctx context.Context) ([]models.SafeUser, error) {
	return m.listResp, m.listErr
}

func (m *mockUsers) Create(ctx context.Context, in repository.CreateInput) (models.SafeUser, error) {
	m.lastCreate = in
	return m.createResp, m.createErr
}

func (m *mockUsers) Update(ctx context.Context, id string, patch repository.UpdatePatch) (models.SafeUser, error) {
	m.lastUpdateID = id
	m.lastPatch = patch
	return m.updateResp, m.updateErr
}

func (m *mockUsers) Delete(ctx context.Context, id string) (models.SafeUser, error) {
	m.lastDeleteID = id
	return m.deleteResp, m.deleteErr
}

// ---- Shared Test Helpers ----

func testConfig() *config.Config {
	return &config.Config{
		APIPrefix:   "/api",
		AllowOrigin: "http://localhost:5173,http://127.0.0.1:5173",
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, testConfig(), nil)
	return h.InitRoutes()
}

func claimsFor(sub, username, role string) *token.Claims {
	return &token.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
		Username:         username,
		Role:             role,
	}
}

// doRequest performs a request against the router with an optional JSON body
// and bearer token, returning the recorder.
func doRequest(r *gin.Engine, method, path, body, bearer string) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	r.ServeHTTP(w, req)
	return w
}

type envelopeBody struct {
	Code    int             `json:"code"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var env envelopeBody
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal envelope: %v (body=%s)", err, w.Body.String())
	}
	return env
}
