package entity

import "time"

// Resultado del diagnóstico.
const (
	DiagnosticPendiente = "pendiente"
	DiagnosticApta      = "apta"
	DiagnosticNoApta    = "no_apta"
)

// Nivel de riesgo legal (también usado como nivel de sensibilidad del intake).
const (
	RiskBajo  = "bajo"
	RiskMedio = "medio"
	RiskAlto  = "alto"
)

// Diagnostic cualificación de una empresa (exactamente uno por empresa).
type Diagnostic struct {
	ID              string
	CompanyID       string
	EligibilityOK   bool
	SpaceIdentified bool
	DataPotential   bool
	LegalRisk       string // "" mientras no se evalúa
	Notes           string
	Result          string
	DecidedBy       string
	DecidedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsDecided informa si el diagnóstico ya tiene resultado (y por tanto está congelado).
func (d *Diagnostic) IsDecided() bool {
	return d.Result != DiagnosticPendiente
}

// ValidRisk informa si level es un nivel de riesgo reconocido.
func ValidRisk(level string) bool {
	return level == RiskBajo || level == RiskMedio || level == RiskAlto
}
