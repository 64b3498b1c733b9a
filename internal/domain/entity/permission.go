package entity

// Permission es la fila (role, module) con sus cuatro capacidades independientes.
// El par (RoleID, ModuleID) es único en el almacén.
type Permission struct {
	ID        string
	RoleID    string
	ModuleID  string
	CanView   bool
	CanCreate bool
	CanEdit   bool
	CanDelete bool
}
