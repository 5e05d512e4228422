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

	"github.com/tu-usuario/docflow-api/internal/domain/entity"
	apphttp "github.com/tu-usuario/docflow-api/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/docflow-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testSessionID = "s0000000-0000-0000-0000-000000000001"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "docflow-test"
	testExpMin    = 60
)

// stubSessions responde si la sesión del token sigue viva.
type stubSessions struct {
	alive bool
}

func (s stubSessions) IsAuthenticated(_ context.Context, sessionID string) bool {
	return s.alive && sessionID != ""
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT, verificar la sesión y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(sessionsAlive bool, allowedRoles ...string) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, stubSessions{alive: sessionsAlive}),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenForRole genera un JWT con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testSessionID, testUserID, "usuario-"+role, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeError deserializa el cuerpo de error para inspeccionar code y redirect.
func decodeError(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole — matriz rol × vista
// ──────────────────────────────────────────────────────────────────────────────

// manager entra a la vista de gestión.
func TestRequireRole_ManagerAccedeVistaGestion(t *testing.T) {
	app := buildTestApp(true, entity.RoleManager, entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"manager debe poder acceder a la vista de gestión")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleManager, body["role"])
}

// admin entra a todo: vista de gestión y vista contable.
func TestRequireRole_AdminAccedeATodo(t *testing.T) {
	gestion := buildTestApp(true, entity.RoleManager, entity.RoleAdmin)
	resp := doRequest(t, gestion, tokenForRole(t, entity.RoleAdmin))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	contable := buildTestApp(true, entity.RoleAccountant, entity.RoleAdmin)
	resp = doRequest(t, contable, tokenForRole(t, entity.RoleAdmin))
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// accountant bloqueado en la vista de gestión → 403 con redirect a SU vista
// por defecto, no al login.
func TestRequireRole_AccountantBloqueadoEnGestion(t *testing.T) {
	app := buildTestApp(true, entity.RoleManager, entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAccountant))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"accountant no debe acceder a la vista de gestión")

	body := decodeError(t, resp)
	assert.Equal(t, "FORBIDDEN", body["code"])
	assert.Equal(t, "/accountant-dashboard", body["redirect"],
		"el redirect debe ser la vista por defecto del rol accountant")
}

// manager bloqueado en la vista contable → 403 con redirect a /dashboard.
func TestRequireRole_ManagerBloqueadoEnContable(t *testing.T) {
	app := buildTestApp(true, entity.RoleAccountant, entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, "/dashboard", body["redirect"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware — token y sesión
// ──────────────────────────────────────────────────────────────────────────────

// Sin header Authorization → 401 con redirect al login.
func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildTestApp(true, entity.RoleAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "/login", body["redirect"],
		"un cliente sin sesión debe ser mandado al login")
}

// Token malformado → 401 INVALID_TOKEN.
func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(true, entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "INVALID_TOKEN")
}

// Token firmado pero con la sesión cerrada (logout) → 401: el almacén de
// sesiones manda sobre la expiración del JWT.
func TestAuthMiddleware_SesionCerrada_Retorna401(t *testing.T) {
	app := buildTestApp(false, entity.RoleAdmin)
	resp := doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decodeError(t, resp)
	assert.Equal(t, "SESSION_CLOSED", body["code"])
	assert.Equal(t, "/login", body["redirect"])
}

// El middleware extrae los claims a locals para los handlers.
func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, stubSessions{alive: true}), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"session_id": apphttp.GetSessionID(c),
			"user_id":    apphttp.GetUserID(c),
			"username":   apphttp.GetUsername(c),
			"role":       apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenForRole(t, entity.RoleAccountant))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testSessionID, body["session_id"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "usuario-accountant", body["username"])
	assert.Equal(t, entity.RoleAccountant, body["role"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg — generate/parse con sesión y rol
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testSessionID, testUserID, "manager", entity.RoleManager, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testSessionID, claims.SessionID)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, "manager", claims.Username)
	assert.Equal(t, entity.RoleManager, claims.Role)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Token con expiración -1 minuto (ya expirado)
	tok, err := pkgjwt.Generate(testJWTSecret, testSessionID, testUserID, "admin", entity.RoleAdmin, testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testSessionID, testUserID, "admin", entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err, "firma con otro secret debe retornar error")
}
