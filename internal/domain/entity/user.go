package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Roles válidos para User. RoleNone representa un usuario registrado sin rol asignado.
const (
	RoleAdmin   = "admin"
	RoleAsesor  = "asesor"
	RoleCliente = "cliente"
	RoleNone    = ""
)

// User credencial de acceso. CompanyID solo aplica a usuarios cliente ("" = sin empresa).
type User struct {
	ID           string
	Email        string // normalizado (case-folded) antes de persistir
	Name         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string
	CompanyID    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsStaff informa si el usuario es personal interno (admin o asesor).
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleAsesor
}

// ValidRole informa si role es asignable (incluye RoleNone).
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAsesor, RoleCliente, RoleNone:
		return true
	}
	return false
}

// NormalizeEmail forma canónica usada para guardar y buscar emails (sin distinguir mayúsculas).
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}
