package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lop-gin/nexus-backoffice/internal/application/auth"
	"github.com/lop-gin/nexus-backoffice/internal/application/dto"
	"github.com/lop-gin/nexus-backoffice/internal/application/usecase"
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/infrastructure/pdf"
	apphttp "github.com/lop-gin/nexus-backoffice/internal/interfaces/http"
	"github.com/lop-gin/nexus-backoffice/internal/testutil/memstore"
	pkgjwt "github.com/lop-gin/nexus-backoffice/pkg/jwt"
	"github.com/lop-gin/nexus-backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor completo sobre memstore
// ──────────────────────────────────────────────────────────────────────────────

type testServer struct {
	app         *fiber.App
	store       *memstore.Store
	modules     map[string]string
	adminRoleID string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memstore.New()
	log := logger.Nop()
	cache := memstore.NewPermissionCache()
	srv := &testServer{store: store, modules: store.SeedModules(), adminRoleID: store.AddRole(authz.RoleAdmin, true)}

	authzSvc := usecase.NewAuthorizationService(store.Employees(), store.Modules(), store.Permissions(), cache, log)
	deps := apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(store.Users(), store.Employees(), store.Tx(), pkgjwt.NewIssuer(testJWTSecret, testIssuer, testExpMin), log),
		Authz:        authzSvc,
		CompanyUC:    usecase.NewCompanyUseCase(store.Companies()),
		EmployeeUC:   usecase.NewEmployeeUseCase(store.Employees(), store.Roles()),
		RoleUC:       usecase.NewRoleUseCase(store.Roles(), store.Permissions(), store.Modules(), store.Employees(), cache, log),
		ModuleSvc:    usecase.NewModuleService(store.Modules()),
		RoleReportUC: usecase.NewRoleReportUseCase(store.Roles(), store.Permissions(), store.Modules(), store.Companies(), pdf.NewMarotoRoleReportGenerator()),
		InvitationUC: usecase.NewInvitationUseCase(store.Tx(), store.Invitations(), store.Employees(), store.Roles(), nil, 0, log),
		CustomerUC:   usecase.NewCustomerUseCase(store.Customers()),
		ProductUC:    usecase.NewProductUseCase(store.Products()),
		JWTSecret:    testJWTSecret,
	}
	srv.app = fiber.New()
	apphttp.Router(srv.app, deps)
	return srv
}

// call ejecuta la petición con cuerpo JSON opcional y decodifica la respuesta en out (si no es nil).
func (s *testServer) call(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// signup registra una empresa por la API y devuelve la respuesta.
func (s *testServer) signup(t *testing.T, email string) dto.SignupResponse {
	t.Helper()
	var out dto.SignupResponse
	status := s.call(t, http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{
		Email: email, Password: "s3cret-pass", FullName: "Dueña", CompanyName: "Acme", CompanyType: entity.CompanyTypeBoth,
	}, &out)
	require.Equal(t, http.StatusCreated, status)
	return out
}

// identity crea un usuario sin empleado y devuelve su id y token.
func (s *testServer) identity(t *testing.T, email string) (string, string) {
	t.Helper()
	user := &entity.User{ID: "user-" + email, Email: email, CreatedAt: time.Now()}
	require.NoError(t, s.store.Users().Create(context.Background(), user))
	tok, err := pkgjwt.Generate(testJWTSecret, user.ID, email, testIssuer, testExpMin)
	require.NoError(t, err)
	return user.ID, tok
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_SignupAdministradorGestionaRoles(t *testing.T) {
	s := newTestServer(t)
	owner := s.signup(t, "duena@acme.co")

	var me dto.MeResponse
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/me", owner.Token, nil, &me))
	assert.True(t, me.Employee.IsAdmin)
	assert.Equal(t, owner.Company.ID, me.Employee.CompanyID)

	var role dto.RoleResponse
	status := s.call(t, http.MethodPost, "/api/roles", owner.Token, dto.CreateRoleRequest{
		Name:        "Cajero",
		Permissions: dto.PermissionGrid{s.modules[entity.ModuleSales]: {Edit: true}},
	}, &role)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, role.Permissions[s.modules[entity.ModuleSales]].Create, "la cascada se aplica al crear")

	// Sin value el PATCH se rechaza y el grid queda intacto.
	var errBody dto.ErrorResponse
	status = s.call(t, http.MethodPatch, "/api/roles/"+role.ID+"/permissions", owner.Token, map[string]string{
		"module_id": s.modules[entity.ModuleSales], "action": "view",
	}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)

	var unchanged dto.RoleResponse
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/roles/"+role.ID, owner.Token, nil, &unchanged))
	assert.True(t, unchanged.Permissions[s.modules[entity.ModuleSales]].Edit)

	revoke := false
	var changed dto.RoleResponse
	status = s.call(t, http.MethodPatch, "/api/roles/"+role.ID+"/permissions", owner.Token, dto.ChangePermissionRequest{
		ModuleID: s.modules[entity.ModuleSales], Action: "view", Value: &revoke,
	}, &changed)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, authz.Capabilities{}, changed.Permissions[s.modules[entity.ModuleSales]])

	status = s.call(t, http.MethodPut, "/api/roles/"+s.adminRoleID, owner.Token, dto.UpdateRoleRequest{Name: "Jefe"}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "ROLE_LOCKED", errBody.Code)

	status = s.call(t, http.MethodDelete, "/api/roles/"+s.adminRoleID, owner.Token, nil, &errBody)
	assert.Equal(t, http.StatusForbidden, status)

	var modules []dto.ModuleResponse
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/modules", owner.Token, nil, &modules))
	assert.Len(t, modules, len(entity.DefaultModules))
}

func TestRouter_ValidacionDeCuerpo(t *testing.T) {
	s := newTestServer(t)
	var errBody dto.ErrorResponse
	status := s.call(t, http.MethodPost, "/api/auth/signup", "", dto.SignupRequest{Email: "no-es-email"}, &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errBody.Code)
}

func TestRouter_PermisosPorModulo(t *testing.T) {
	s := newTestServer(t)
	owner := s.signup(t, "duena@acme.co")

	roleID := s.store.AddRole("Vendedor", false)
	grid := authz.Grid{s.modules[entity.ModuleCustomers]: {View: true}}
	require.NoError(t, s.store.Permissions().Replace(context.Background(), roleID, grid.Rows(roleID)))
	userID, token := s.identity(t, "vendedor@acme.co")
	s.store.AddEmployee(owner.Company.ID, userID, &roleID, false)

	assert.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/customers", token, nil, nil))

	var errBody dto.ErrorResponse
	status := s.call(t, http.MethodPost, "/api/customers", token, dto.CreateCustomerRequest{Name: "X", TaxID: "1"}, &errBody)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "PERMISSION_DENIED", errBody.Code)

	assert.Equal(t, http.StatusForbidden, s.call(t, http.MethodGet, "/api/roles", token, nil, nil))
	assert.Equal(t, http.StatusForbidden, s.call(t, http.MethodGet, "/api/company", token, nil, nil))

	var perms dto.EffectivePermissionsResponse
	require.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/me/permissions", token, nil, &perms))
	assert.False(t, perms.IsAdmin)
}

func TestRouter_InvitacionYAceptacion(t *testing.T) {
	s := newTestServer(t)
	owner := s.signup(t, "duena@acme.co")

	var inv dto.InvitationResponse
	status := s.call(t, http.MethodPost, "/api/invitations", owner.Token, dto.CreateInvitationRequest{Email: "nuevo@acme.co"}, &inv)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, inv.Token)

	_, token := s.identity(t, "nuevo@acme.co")

	// Sin empleado todavía: las rutas protegidas niegan.
	assert.Equal(t, http.StatusForbidden, s.call(t, http.MethodGet, "/api/me", token, nil, nil))

	var employee dto.EmployeeResponse
	status = s.call(t, http.MethodPost, "/api/invitations/accept", token, dto.AcceptInvitationRequest{Token: inv.Token}, &employee)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, entity.EmployeeStatusActive, employee.Status)
	assert.Equal(t, owner.Company.ID, employee.CompanyID)

	assert.Equal(t, http.StatusOK, s.call(t, http.MethodGet, "/api/me", token, nil, nil))
	assert.Equal(t, http.StatusConflict, s.call(t, http.MethodPost, "/api/invitations/accept", token, dto.AcceptInvitationRequest{Token: inv.Token}, nil))
}

func TestRouter_ReportePDFDelRol(t *testing.T) {
	s := newTestServer(t)
	owner := s.signup(t, "duena@acme.co")

	req := httptest.NewRequest(http.MethodGet, "/api/roles/"+s.adminRoleID+"/report", nil)
	req.Header.Set("Authorization", "Bearer "+owner.Token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "permisos_admin.pdf")
}
