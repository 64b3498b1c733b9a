// Package memstore implementa los puertos de repositorio en memoria para tests de casos de uso.
// Reproduce las reglas de unicidad de la base de datos (email por empresa, nombre de rol, token).
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lop-gin/nexus-backoffice/internal/application/ports"
	"github.com/lop-gin/nexus-backoffice/internal/domain"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
	"github.com/lop-gin/nexus-backoffice/internal/domain/repository"
)

var (
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.CompanyRepository    = (*CompanyRepo)(nil)
	_ repository.EmployeeRepository   = (*EmployeeRepo)(nil)
	_ repository.RoleRepository       = (*RoleRepo)(nil)
	_ repository.ModuleRepository     = (*ModuleRepo)(nil)
	_ repository.PermissionRepository = (*PermissionRepo)(nil)
	_ repository.InvitationRepository = (*InvitationRepo)(nil)
	_ repository.CustomerRepository   = (*CustomerRepo)(nil)
	_ repository.ProductRepository    = (*ProductRepo)(nil)
	_ ports.TxRunner                  = (*TxRunner)(nil)
	_ ports.PermissionCache           = (*PermissionCache)(nil)
)

// Store agrupa todas las tablas. Los campos Err* permiten inyectar fallos.
type Store struct {
	mu sync.Mutex

	users       map[string]entity.User
	companies   map[string]entity.Company
	employees   map[string]entity.Employee
	roles       map[string]entity.Role
	modules     map[string]entity.Module
	permissions map[string]entity.Permission // clave roleID|moduleID
	invitations map[string]entity.Invitation
	customers   map[string]entity.Customer
	products    map[string]entity.Product

	// ErrReplacePermissions hace fallar PermissionRepo.Replace.
	ErrReplacePermissions error
	// ErrGetPermission hace fallar PermissionRepo.Get.
	ErrGetPermission error
	// ErrGetModule hace fallar ModuleRepo.GetByName.
	ErrGetModule error
	// ErrCreateEmployee hace fallar EmployeeRepo.Create.
	ErrCreateEmployee error

	// PermissionReads cuenta las lecturas de PermissionRepo.Get (para verificar la caché).
	PermissionReads int
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		users:       map[string]entity.User{},
		companies:   map[string]entity.Company{},
		employees:   map[string]entity.Employee{},
		roles:       map[string]entity.Role{},
		modules:     map[string]entity.Module{},
		permissions: map[string]entity.Permission{},
		invitations: map[string]entity.Invitation{},
		customers:   map[string]entity.Customer{},
		products:    map[string]entity.Product{},
	}
}

func permKey(roleID, moduleID string) string { return roleID + "|" + moduleID }

// ── Users ────────────────────────────────────────────────────────────────────

// UserRepo vista de usuarios.
type UserRepo struct{ s *Store }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

// ── Companies ────────────────────────────────────────────────────────────────

// CompanyRepo vista de empresas.
type CompanyRepo struct{ s *Store }

// Companies devuelve el repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s} }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.companies[c.ID] = *c
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.companies[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.companies[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.companies[c.ID] = *c
	return nil
}

// ── Employees ────────────────────────────────────────────────────────────────

// EmployeeRepo vista de empleados.
type EmployeeRepo struct{ s *Store }

// Employees devuelve el repositorio de empleados.
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{s} }

func (r *EmployeeRepo) Create(_ context.Context, e *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ErrCreateEmployee != nil {
		return r.s.ErrCreateEmployee
	}
	for _, existing := range r.s.employees {
		if existing.CompanyID == e.CompanyID && strings.EqualFold(existing.Email, e.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) GetByID(_ context.Context, companyID, id string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if e, ok := r.s.employees[id]; ok && e.CompanyID == companyID {
		return &e, nil
	}
	return nil, nil
}

func (r *EmployeeRepo) GetByUserID(_ context.Context, userID string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.UserID != nil && *e.UserID == userID {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *EmployeeRepo) GetByEmailAndCompany(_ context.Context, email, companyID string) (*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.CompanyID == companyID && strings.EqualFold(e.Email, email) {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *EmployeeRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Employee
	for _, e := range r.s.employees {
		if e.CompanyID == companyID {
			e := e
			list = append(list, &e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].FullName < list[j].FullName })
	return page(list, limit, offset), nil
}

func (r *EmployeeRepo) Update(_ context.Context, e *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.employees[e.ID]
	if !ok || existing.CompanyID != e.CompanyID {
		return domain.ErrNotFound
	}
	r.s.employees[e.ID] = *e
	return nil
}

func (r *EmployeeRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.employees[id]
	if !ok || existing.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.employees, id)
	return nil
}

func (r *EmployeeRepo) CountByRole(_ context.Context, roleID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, e := range r.s.employees {
		if e.RoleID != nil && *e.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

// ── Roles ────────────────────────────────────────────────────────────────────

// RoleRepo vista de roles.
type RoleRepo struct{ s *Store }

// Roles devuelve el repositorio de roles.
func (s *Store) Roles() *RoleRepo { return &RoleRepo{s} }

func (r *RoleRepo) Create(_ context.Context, role *entity.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.roles {
		if existing.Name == role.Name {
			return domain.ErrConflict
		}
	}
	r.s.roles[role.ID] = *role
	return nil
}

func (r *RoleRepo) GetByID(_ context.Context, id string) (*entity.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if role, ok := r.s.roles[id]; ok {
		return &role, nil
	}
	return nil, nil
}

func (r *RoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, role := range r.s.roles {
		if role.Name == name {
			return &role, nil
		}
	}
	return nil, nil
}

func (r *RoleRepo) List(_ context.Context) ([]*entity.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Role, 0, len(r.s.roles))
	for _, role := range r.s.roles {
		role := role
		list = append(list, &role)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].IsPredefined != list[j].IsPredefined {
			return list[i].IsPredefined
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

func (r *RoleRepo) Update(_ context.Context, id, name, description string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	role, ok := r.s.roles[id]
	if !ok {
		return domain.ErrNotFound
	}
	for _, other := range r.s.roles {
		if other.ID != id && other.Name == name {
			return domain.ErrConflict
		}
	}
	role.Name = name
	role.Description = description
	role.UpdatedAt = time.Now()
	r.s.roles[id] = role
	return nil
}

func (r *RoleRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.roles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.roles, id)
	for k, p := range r.s.permissions {
		if p.RoleID == id {
			delete(r.s.permissions, k)
		}
	}
	return nil
}

// ── Modules ──────────────────────────────────────────────────────────────────

// ModuleRepo vista de módulos.
type ModuleRepo struct{ s *Store }

// Modules devuelve el repositorio de módulos.
func (s *Store) Modules() *ModuleRepo { return &ModuleRepo{s} }

func (r *ModuleRepo) List(_ context.Context) ([]*entity.Module, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Module, 0, len(r.s.modules))
	for _, m := range r.s.modules {
		m := m
		list = append(list, &m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

func (r *ModuleRepo) GetByID(_ context.Context, id string) (*entity.Module, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.modules[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r *ModuleRepo) GetByName(_ context.Context, name string) (*entity.Module, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ErrGetModule != nil {
		return nil, r.s.ErrGetModule
	}
	for _, m := range r.s.modules {
		if m.Name == name {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *ModuleRepo) Create(_ context.Context, m *entity.Module) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.modules {
		if existing.Name == m.Name {
			return domain.ErrDuplicate
		}
	}
	r.s.modules[m.ID] = *m
	return nil
}

// ── Permissions ─────────────────────────────────────────────────────────────

// PermissionRepo vista de permisos.
type PermissionRepo struct{ s *Store }

// Permissions devuelve el repositorio de permisos.
func (s *Store) Permissions() *PermissionRepo { return &PermissionRepo{s} }

func (r *PermissionRepo) Get(_ context.Context, roleID, moduleID string) (*entity.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.PermissionReads++
	if r.s.ErrGetPermission != nil {
		return nil, r.s.ErrGetPermission
	}
	if p, ok := r.s.permissions[permKey(roleID, moduleID)]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r *PermissionRepo) ListByRole(_ context.Context, roleID string) ([]*entity.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Permission
	for _, p := range r.s.permissions {
		if p.RoleID == roleID {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ModuleID < list[j].ModuleID })
	return list, nil
}

func (r *PermissionRepo) Replace(_ context.Context, roleID string, rows []*entity.Permission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.ErrReplacePermissions != nil {
		return r.s.ErrReplacePermissions
	}
	for k, p := range r.s.permissions {
		if p.RoleID == roleID {
			delete(r.s.permissions, k)
		}
	}
	for _, row := range rows {
		p := *row
		p.RoleID = roleID
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
		r.s.permissions[permKey(roleID, p.ModuleID)] = p
	}
	return nil
}

// ── Invitations ─────────────────────────────────────────────────────────────

// InvitationRepo vista de invitaciones.
type InvitationRepo struct{ s *Store }

// Invitations devuelve el repositorio de invitaciones.
func (s *Store) Invitations() *InvitationRepo { return &InvitationRepo{s} }

func (r *InvitationRepo) Create(_ context.Context, i *entity.Invitation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.invitations {
		if existing.Token == i.Token {
			return domain.ErrDuplicate
		}
	}
	r.s.invitations[i.ID] = *i
	return nil
}

func (r *InvitationRepo) GetByID(_ context.Context, companyID, id string) (*entity.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if i, ok := r.s.invitations[id]; ok && i.CompanyID == companyID {
		return &i, nil
	}
	return nil, nil
}

func (r *InvitationRepo) GetByToken(_ context.Context, token string) (*entity.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, i := range r.s.invitations {
		if i.Token == token {
			return &i, nil
		}
	}
	return nil, nil
}

func (r *InvitationRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Invitation
	for _, i := range r.s.invitations {
		if i.CompanyID == companyID {
			i := i
			list = append(list, &i)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].CreatedAt.After(list[b].CreatedAt) })
	return page(list, limit, offset), nil
}

func (r *InvitationRepo) UpdateStatus(_ context.Context, id, status string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i, ok := r.s.invitations[id]
	if !ok {
		return domain.ErrNotFound
	}
	i.Status = status
	i.UpdatedAt = at
	r.s.invitations[id] = i
	return nil
}

func (r *InvitationRepo) ListExpiredPending(_ context.Context, now time.Time, limit int) ([]*entity.Invitation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Invitation
	for _, i := range r.s.invitations {
		if i.Status == entity.InvitationStatusPending && !now.Before(i.ExpiresAt) {
			i := i
			list = append(list, &i)
		}
	}
	sort.Slice(list, func(a, b int) bool { return list[a].ExpiresAt.Before(list[b].ExpiresAt) })
	return page(list, limit, 0), nil
}

// ── Customers ───────────────────────────────────────────────────────────────

// CustomerRepo vista de clientes.
type CustomerRepo struct{ s *Store }

// Customers devuelve el repositorio de clientes.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s} }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.customers {
		if existing.CompanyID == c.CompanyID && existing.TaxID == c.TaxID {
			return domain.ErrDuplicate
		}
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, companyID, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.customers[id]; ok && c.CompanyID == companyID {
		return &c, nil
	}
	return nil, nil
}

func (r *CustomerRepo) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.customers {
		if c.CompanyID == companyID && c.TaxID == taxID {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CustomerRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Customer
	for _, c := range r.s.customers {
		if c.CompanyID == companyID {
			c := c
			list = append(list, &c)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.customers[c.ID]
	if !ok || existing.CompanyID != c.CompanyID {
		return domain.ErrNotFound
	}
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.customers[id]
	if !ok || existing.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.customers, id)
	return nil
}

// ── Products ────────────────────────────────────────────────────────────────

// ProductRepo vista de productos.
type ProductRepo struct{ s *Store }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.CompanyID == p.CompanyID && existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.products[id]; ok && p.CompanyID == companyID {
		return &p, nil
	}
	return nil, nil
}

func (r *ProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[p.ID]
	if !ok || existing.CompanyID != p.CompanyID {
		return domain.ErrNotFound
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SKU < list[j].SKU })
	return page(list, limit, offset), nil
}

func (r *ProductRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[id]
	if !ok || existing.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

// ── TxRunner ────────────────────────────────────────────────────────────────

// TxRunner ejecuta fn sobre el mismo Store. Sin rollback: Calls y Err permiten verificar el flujo.
type TxRunner struct {
	s     *Store
	Calls int
	Err   error
}

// Tx devuelve un TxRunner sobre el Store.
func (s *Store) Tx() *TxRunner { return &TxRunner{s: s} }

func (t *TxRunner) Run(_ context.Context, fn func(repos ports.TxRepos) error) error {
	t.Calls++
	if t.Err != nil {
		return t.Err
	}
	return fn(ports.TxRepos{
		Users:       t.s.Users(),
		Companies:   t.s.Companies(),
		Employees:   t.s.Employees(),
		Roles:       t.s.Roles(),
		Invitations: t.s.Invitations(),
	})
}

// ── Caché ───────────────────────────────────────────────────────────────────

// PermissionCache caché en memoria con generación por rol. Err hace fallar todas las operaciones.
type PermissionCache struct {
	mu          sync.Mutex
	entries     map[string]*entity.Permission
	generations map[string]int64
	Err         error
	Invalidated []string
	// StaleSets cuenta los Set descartados por generación vencida.
	StaleSets int
}

// NewPermissionCache crea la caché vacía.
func NewPermissionCache() *PermissionCache {
	return &PermissionCache{entries: map[string]*entity.Permission{}, generations: map[string]int64{}}
}

func (c *PermissionCache) Get(_ context.Context, roleID, moduleID string) (*entity.Permission, bool, int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return nil, false, 0, c.Err
	}
	p, ok := c.entries[permKey(roleID, moduleID)]
	return p, ok, c.generations[roleID], nil
}

func (c *PermissionCache) Set(_ context.Context, roleID, moduleID string, gen int64, perm *entity.Permission) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	if c.generations[roleID] != gen {
		c.StaleSets++
		return nil
	}
	c.entries[permKey(roleID, moduleID)] = perm
	return nil
}

func (c *PermissionCache) InvalidateRole(_ context.Context, roleID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Invalidated = append(c.Invalidated, roleID)
	if c.Err != nil {
		return c.Err
	}
	c.generations[roleID]++
	for k := range c.entries {
		if strings.HasPrefix(k, roleID+"|") {
			delete(c.entries, k)
		}
	}
	return nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
