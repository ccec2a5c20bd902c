package entity

import "time"

// Estados comerciales de la empresa. Solo cambian mediante la decisión del diagnóstico.
const (
	CompanyStatusLead       = "lead"
	CompanyStatusApta       = "apta"
	CompanyStatusDescartada = "descartada"
)

// Estado de recepción del cuestionario de alta (intake).
const (
	IntakeStatusPendiente = "pendiente"
	IntakeStatusRecibida  = "recibida"
)

// Company empresa candidata a incorporarse al espacio de datos. Raíz del agregado:
// Diagnostic, Project y ClientIntake cuelgan de ella y se eliminan en cascada.
type Company struct {
	ID           string
	Name         string
	NIF          string // identificador fiscal, único
	Sector       string
	SizeRange    string
	Country      string
	ContactName  string
	ContactRole  string
	ContactPhone string
	ContactEmail string
	Status       string
	IntakeStatus string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CompanyFilter criterios de listado de empresas.
type CompanyFilter struct {
	Status string // "" = todos
	Search string // subcadena case-insensitive sobre nombre, NIF y contacto
	Limit  int
	Offset int
}
