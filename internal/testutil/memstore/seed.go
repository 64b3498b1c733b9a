package memstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// SeedModules siembra entity.DefaultModules y devuelve nombre → id.
func (s *Store) SeedModules() map[string]string {
	ids := make(map[string]string, len(entity.DefaultModules))
	for _, m := range entity.DefaultModules {
		m := m
		m.ID = uuid.New().String()
		m.CreatedAt = time.Now()
		_ = s.Modules().Create(context.Background(), &m)
		ids[m.Name] = m.ID
	}
	return ids
}

// AddRole inserta un rol y devuelve su id.
func (s *Store) AddRole(name string, predefined bool) string {
	role := &entity.Role{ID: uuid.New().String(), Name: name, IsPredefined: predefined, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	_ = s.Roles().Create(context.Background(), role)
	return role.ID
}

// AddEmployee inserta un empleado activo con userID y rol opcionales.
func (s *Store) AddEmployee(companyID, userID string, roleID *string, isAdmin bool) *entity.Employee {
	e := &entity.Employee{
		ID:        uuid.New().String(),
		FullName:  "Empleado " + userID,
		Email:     userID + "@acme.co",
		CompanyID: companyID,
		RoleID:    roleID,
		IsAdmin:   isAdmin,
		Status:    entity.EmployeeStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if userID != "" {
		e.UserID = &userID
	}
	_ = s.Employees().Create(context.Background(), e)
	return e
}

// AddCompany inserta una empresa y devuelve su id.
func (s *Store) AddCompany(name string) string {
	c := &entity.Company{ID: uuid.New().String(), Name: name, Type: entity.CompanyTypeBoth, Status: "active", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	_ = s.Companies().Create(context.Background(), c)
	return c.ID
}
