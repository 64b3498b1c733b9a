package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	apphttp "github.com/lop-gin/nexus-backoffice/internal/interfaces/http"
	pkgjwt "github.com/lop-gin/nexus-backoffice/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testEmail     = "ana@acme.co"
	testIssuer    = "nexus-test"
	testExpMin    = 60
)

// fakeResolver devuelve siempre el mismo empleado o error.
type fakeResolver struct {
	employee *entity.Employee
	err      error
}

func (f fakeResolver) ResolveEmployee(_ context.Context, _ string) (*entity.Employee, error) {
	return f.employee, f.err
}

// fakeChecker concede solo las parejas módulo:acción de allowed.
type fakeChecker struct {
	allowed map[string]bool
}

func (f fakeChecker) Check(_ context.Context, _ *entity.Employee, module string, action authz.Action) bool {
	return f.allowed[module+":"+string(action)]
}

func activeEmployee() *entity.Employee {
	uid := testUserID
	return &entity.Employee{ID: "emp-1", UserID: &uid, CompanyID: testCompanyID, Status: entity.EmployeeStatusActive}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar locals
//   - EmployeeMiddleware para resolver el empleado
//   - RequirePermission(sales, view) para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(resolver fakeResolver, checker fakeChecker) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.EmployeeMiddleware(resolver),
		apphttp.RequirePermission(entity.ModuleSales, authz.ActionView, checker),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":          true,
				"company_id":  apphttp.GetCompanyID(c),
				"employee_id": apphttp.GetEmployee(c).ID,
			})
		},
	)
	return app
}

// bearer genera un JWT válido para la identidad de test.
func bearer(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testIssuer, testExpMin)
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

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: el empleado tiene el permiso → HTTP 200 con el empleado en locals.
func TestRequirePermission_ConPermisoAccede(t *testing.T) {
	app := buildTestApp(fakeResolver{employee: activeEmployee()}, fakeChecker{allowed: map[string]bool{"sales:view": true}})
	resp := doRequest(t, app, bearer(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testCompanyID, body["company_id"], "la empresa sale del empleado, no del token")
	assert.Equal(t, "emp-1", body["employee_id"])
}

// Caso 2: sin permiso para la acción → HTTP 403 PERMISSION_DENIED.
func TestRequirePermission_SinPermisoRetorna403(t *testing.T) {
	app := buildTestApp(fakeResolver{employee: activeEmployee()}, fakeChecker{allowed: map[string]bool{"sales:create": true}})
	resp := doRequest(t, app, bearer(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "PERMISSION_DENIED")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests EmployeeMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestEmployeeMiddleware_SinEmpleadoRetorna403(t *testing.T) {
	app := buildTestApp(fakeResolver{err: domain.ErrEmployeeNotFound}, fakeChecker{})
	resp := doRequest(t, app, bearer(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "NO_EMPLOYEE")
}

func TestEmployeeMiddleware_EmpleadoInactivoRetorna403(t *testing.T) {
	e := activeEmployee()
	e.Status = entity.EmployeeStatusInactive
	app := buildTestApp(fakeResolver{employee: e}, fakeChecker{allowed: map[string]bool{"sales:view": true}})
	resp := doRequest(t, app, bearer(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "EMPLOYEE_INACTIVE")
}

func TestEmployeeMiddleware_FalloDeInfraestructuraRetorna503(t *testing.T) {
	app := buildTestApp(fakeResolver{err: errors.New("pool agotado")}, fakeChecker{})
	resp := doRequest(t, app, bearer(t))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(fakeResolver{employee: activeEmployee()}, fakeChecker{})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

func TestAuthMiddleware_FormatoInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(fakeResolver{employee: activeEmployee()}, fakeChecker{})
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(fakeResolver{employee: activeEmployee()}, fakeChecker{})
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testEmail, testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp(fakeResolver{employee: activeEmployee()}, fakeChecker{})
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"email":   apphttp.GetEmail(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testEmail, body["email"])
}
