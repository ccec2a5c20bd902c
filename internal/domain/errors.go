package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Ciclo de vida de empresas.
	ErrInvalidState       = errors.New("la operación no es válida en el estado actual")
	ErrPreconditionFailed = errors.New("no se cumplen las condiciones previas")
	ErrSelfDelete         = errors.New("no puedes eliminar tu propia cuenta")
	ErrNoCompanyLinked    = errors.New("el usuario no tiene empresa asignada")
)
