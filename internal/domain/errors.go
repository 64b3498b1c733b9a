package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmployeeNotFound   = errors.New("empleado no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvitationExpired  = errors.New("la invitación ha expirado")
	ErrInvalidAction      = errors.New("acción de permiso inválida")
	// ErrPartialFailure: la primera escritura se aplicó y la segunda falló; no hay rollback.
	ErrPartialFailure = errors.New("actualización parcial")
)

// ErrRoleLocked se devuelve al intentar modificar un rol predefinido. Envuelve ErrForbidden.
var ErrRoleLocked = fmt.Errorf("%w: el rol es predefinido y no puede modificarse", ErrForbidden)
