package dto

import "time"

// UpdateDiagnosticRequest actualización parcial del diagnóstico. legal_risk "" borra el
// riesgo; el resto de valores se validan en el dominio.
type UpdateDiagnosticRequest struct {
	EligibilityOK   *bool   `json:"eligibility_ok"`
	SpaceIdentified *bool   `json:"space_identified"`
	DataPotential   *bool   `json:"data_potential"`
	LegalRisk       *string `json:"legal_risk"`
	Notes           *string `json:"notes" validate:"omitempty,max=4000"`
}

// DecideRequest decisión final del diagnóstico.
type DecideRequest struct {
	Result string `json:"result" validate:"required,oneof=apta no_apta"`
}

// DiagnosticResponse salida del diagnóstico.
type DiagnosticResponse struct {
	ID              string     `json:"id"`
	CompanyID       string     `json:"company_id"`
	EligibilityOK   bool       `json:"eligibility_ok"`
	SpaceIdentified bool       `json:"space_identified"`
	DataPotential   bool       `json:"data_potential"`
	LegalRisk       string     `json:"legal_risk"`
	Notes           string     `json:"notes"`
	Result          string     `json:"result"`
	DecidedBy       *string    `json:"decided_by"`
	DecidedAt       *time.Time `json:"decided_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DecideResponse estado resultante tras decidir; Project solo para "apta".
type DecideResponse struct {
	Diagnostic DiagnosticResponse `json:"diagnostic"`
	Company    CompanyResponse    `json:"company"`
	Project    *ProjectResponse   `json:"project"`
}

// UpdateProjectRequest actualización parcial del proyecto. Los valores de target_role e
// incorporation_status se validan en el dominio para responder con el mensaje adecuado.
type UpdateProjectRequest struct {
	TargetRole          *string `json:"target_role"`
	SpaceName           *string `json:"space_name" validate:"omitempty,max=200"`
	UseCase             *string `json:"use_case" validate:"omitempty,max=4000"`
	RGPDChecked         *bool   `json:"rgpd_checked"`
	IncorporationStatus *string `json:"incorporation_status"`
}

// ChecklistResponse pasos de incorporación.
type ChecklistResponse struct {
	EspacioSeleccionado bool `json:"espacio_seleccionado"`
	RolDefinido         bool `json:"rol_definido"`
	CasoUsoDefinido     bool `json:"caso_uso_definido"`
	ValidacionRGPD      bool `json:"validacion_rgpd"`
}

// ProjectResponse salida del proyecto de incorporación.
type ProjectResponse struct {
	ID                     string            `json:"id"`
	CompanyID              string            `json:"company_id"`
	CompanyName            string            `json:"company_name,omitempty"`
	Title                  string            `json:"title"`
	Phase                  int               `json:"phase"`
	Status                 string            `json:"status"`
	TargetRole             string            `json:"target_role"`
	SpaceName              string            `json:"space_name"`
	UseCase                string            `json:"use_case"`
	RGPDChecked            bool              `json:"rgpd_checked"`
	IncorporationStatus    string            `json:"incorporation_status"`
	IncorporationChecklist ChecklistResponse `json:"incorporation_checklist"`
	CreatedAt              time.Time         `json:"created_at"`
	UpdatedAt              time.Time         `json:"updated_at"`
}

// IntakeRequest contenido del cuestionario (reemplaza el existente). Los elementos vacíos
// de las listas se descartan al guardar.
type IntakeRequest struct {
	DataTypes        []string `json:"data_types" validate:"max=50,dive,max=120"`
	UsagePattern     string   `json:"usage_pattern" validate:"max=2000"`
	Interests        []string `json:"interests" validate:"max=50,dive,max=120"`
	SensitivityLevel string   `json:"sensitivity_level" validate:"omitempty,oneof=bajo medio alto"`
	Notes            string   `json:"notes" validate:"max=4000"`
}

// IntakeResponse salida del cuestionario.
type IntakeResponse struct {
	ID               string     `json:"id"`
	CompanyID        string     `json:"company_id"`
	DataTypes        []string   `json:"data_types"`
	UsagePattern     string     `json:"usage_pattern"`
	Interests        []string   `json:"interests"`
	SensitivityLevel string     `json:"sensitivity_level"`
	Notes            string     `json:"notes"`
	Submitted        bool       `json:"submitted"`
	SubmittedAt      *time.Time `json:"submitted_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
