package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Negocio-api/internal/application/session"
	"github.com/jhoicas/Negocio-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Negocio-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Negocio-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "negocio-pro-test"
	testExpMin    = 60
)

type fakeGateway struct{}

func (fakeGateway) Save(_ context.Context, _ string, _ *entity.Snapshot) error { return nil }
func (fakeGateway) Load(_ context.Context, _ string) (*entity.Snapshot, error) {
	return entity.EmptySnapshot(), nil
}

// buildTestApp construye una app Fiber con una ruta protegida que además
// exige sesión viva (GET /api/sync/status vía el handler real).
func buildTestApp(t *testing.T) (*fiber.App, *session.Manager) {
	t.Helper()
	mgr := session.NewManager(fakeGateway{}, nil, false, nil)
	app := fiber.New()
	syncHandler := apphttp.NewSyncHandler(mgr)
	app.Get("/api/sync/status", apphttp.AuthMiddleware(testJWTSecret), syncHandler.Status)
	return app, mgr
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/sync/status", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Sin header Authorization → 401 MISSING_TOKEN.
func TestAuthMiddleware_SinHeader(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doRequest(t, app, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))
}

// Header sin el esquema Bearer → 401 INVALID_TOKEN.
func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doRequest(t, app, "Token abc123")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

// Token firmado con otro secret → 401 INVALID_TOKEN.
func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	app, _ := buildTestApp(t)
	tok, err := pkgjwt.Generate("otro-secret", testUserID, testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

// Token expirado → 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	app, _ := buildTestApp(t)
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, -5)
	require.NoError(t, err)
	resp := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de sesión
// ──────────────────────────────────────────────────────────────────────────────

// Token válido pero sin sesión viva (servidor reiniciado o logout previo)
// → 401 NO_SESSION: el cliente debe volver a hacer login.
func TestSesion_TokenValidoSinSesion(t *testing.T) {
	app, _ := buildTestApp(t)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "NO_SESSION", errorCode(t, resp))
}

// Token válido con sesión viva → 200 con el estado del sync.
func TestSesion_TokenValidoConSesion(t *testing.T) {
	app, mgr := buildTestApp(t)
	_, err := mgr.OnSignedIn(context.Background(), testUserID)
	require.NoError(t, err)

	resp := doRequest(t, app, tokenFor(t, testUserID))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		AutoSync bool `json:"auto_sync"`
		Products int  `json:"products"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.False(t, body.AutoSync)
	assert.Zero(t, body.Products)
}

// Tras el sign-out la misma petición vuelve a 401 NO_SESSION.
func TestSesion_DespuesDeSignOut(t *testing.T) {
	app, mgr := buildTestApp(t)
	_, err := mgr.OnSignedIn(context.Background(), testUserID)
	require.NoError(t, err)
	mgr.OnSignedOut(testUserID)

	resp := doRequest(t, app, tokenFor(t, testUserID))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "NO_SESSION", errorCode(t, resp))
}
