package entity

import "time"

// Valores fijos del proyecto creado al declarar apta una empresa.
const (
	ProjectPhaseIncorporation = 2
	ProjectStatusIniciado     = "iniciado"
)

// Rol objetivo de la empresa dentro del espacio de datos.
const (
	TargetRoleParticipante = "participante"
	TargetRoleProveedor    = "proveedor"
)

// Estado de la incorporación efectiva.
const (
	IncorporationPendiente  = "pendiente"
	IncorporationEnProgreso = "en_progreso"
	IncorporationCompletada = "completada"
)

// IncorporationChecklist los cuatro pasos requeridos para completar la incorporación.
type IncorporationChecklist struct {
	EspacioSeleccionado bool `json:"espacio_seleccionado"`
	RolDefinido         bool `json:"rol_definido"`
	CasoUsoDefinido     bool `json:"caso_uso_definido"`
	ValidacionRGPD      bool `json:"validacion_rgpd"`
}

// Complete informa si los cuatro pasos están cumplidos.
func (c IncorporationChecklist) Complete() bool {
	return c.EspacioSeleccionado && c.RolDefinido && c.CasoUsoDefinido && c.ValidacionRGPD
}

// Project proyecto de incorporación (0 o 1 por empresa).
type Project struct {
	ID                  string
	CompanyID           string
	Title               string
	Phase               int
	Status              string
	TargetRole          string
	SpaceName           string
	UseCase             string
	RGPDChecked         bool
	IncorporationStatus string
	Checklist           IncorporationChecklist
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
