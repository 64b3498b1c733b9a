package dto

import (
	"github.com/lop-gin/nexus-backoffice/internal/domain/authz"
	"github.com/lop-gin/nexus-backoffice/internal/domain/entity"
)

// CompanyFromEntity convierte la entidad en su salida.
func CompanyFromEntity(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// EmployeeFromEntity convierte la entidad en su salida.
func EmployeeFromEntity(e *entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        e.ID,
		UserID:    e.UserID,
		FullName:  e.FullName,
		Email:     e.Email,
		Phone:     e.Phone,
		Address:   e.Address,
		CompanyID: e.CompanyID,
		RoleID:    e.RoleID,
		IsAdmin:   e.IsAdmin,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// RoleFromEntity convierte el rol; grid puede ser nil en listados.
func RoleFromEntity(r *entity.Role, grid authz.Grid) RoleResponse {
	out := RoleResponse{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		IsPredefined: r.IsPredefined,
		Locked:       authz.IsLocked(r),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if grid != nil {
		out.Permissions = PermissionGrid(grid)
	}
	return out
}

// InvitationFromEntity convierte la invitación sin exponer el token.
func InvitationFromEntity(i *entity.Invitation) InvitationResponse {
	return InvitationResponse{
		ID:         i.ID,
		Email:      i.Email,
		CompanyID:  i.CompanyID,
		RoleID:     i.RoleID,
		EmployeeID: i.EmployeeID,
		InvitedBy:  i.InvitedBy,
		Status:     i.Status,
		ExpiresAt:  i.ExpiresAt,
		CreatedAt:  i.CreatedAt,
	}
}

// CustomerFromEntity convierte el cliente.
func CustomerFromEntity(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ProductFromEntity convierte el producto.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		CompanyID:   p.CompanyID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		UnitMeasure: p.UnitMeasure,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
