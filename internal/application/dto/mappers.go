package dto

import "github.com/jhoicas/EspacioDatos-api/internal/domain/entity"

// UserFromEntity convierte a la salida pública (sin hash). Rol y empresa vacíos → null.
func UserFromEntity(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      optional(u.Role),
		CompanyID: optional(u.CompanyID),
		CreatedAt: u.CreatedAt.UTC(),
		UpdatedAt: u.UpdatedAt.UTC(),
	}
}

// CompanyFromEntity convierte una empresa a su salida.
func CompanyFromEntity(c *entity.Company) *CompanyResponse {
	if c == nil {
		return nil
	}
	return &CompanyResponse{
		ID:           c.ID,
		Name:         c.Name,
		NIF:          c.NIF,
		Sector:       c.Sector,
		SizeRange:    c.SizeRange,
		Country:      c.Country,
		ContactName:  c.ContactName,
		ContactRole:  c.ContactRole,
		ContactPhone: c.ContactPhone,
		ContactEmail: c.ContactEmail,
		Status:       c.Status,
		IntakeStatus: c.IntakeStatus,
		CreatedAt:    c.CreatedAt.UTC(),
		UpdatedAt:    c.UpdatedAt.UTC(),
	}
}

// DiagnosticFromEntity convierte un diagnóstico a su salida.
func DiagnosticFromEntity(d *entity.Diagnostic) *DiagnosticResponse {
	if d == nil {
		return nil
	}
	out := &DiagnosticResponse{
		ID:              d.ID,
		CompanyID:       d.CompanyID,
		EligibilityOK:   d.EligibilityOK,
		SpaceIdentified: d.SpaceIdentified,
		DataPotential:   d.DataPotential,
		LegalRisk:       d.LegalRisk,
		Notes:           d.Notes,
		Result:          d.Result,
		DecidedBy:       optional(d.DecidedBy),
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
	if d.DecidedAt != nil {
		t := d.DecidedAt.UTC()
		out.DecidedAt = &t
	}
	return out
}

// ProjectFromEntity convierte un proyecto a su salida.
func ProjectFromEntity(p *entity.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:                  p.ID,
		CompanyID:           p.CompanyID,
		Title:               p.Title,
		Phase:               p.Phase,
		Status:              p.Status,
		TargetRole:          p.TargetRole,
		SpaceName:           p.SpaceName,
		UseCase:             p.UseCase,
		RGPDChecked:         p.RGPDChecked,
		IncorporationStatus: p.IncorporationStatus,
		IncorporationChecklist: ChecklistResponse{
			EspacioSeleccionado: p.Checklist.EspacioSeleccionado,
			RolDefinido:         p.Checklist.RolDefinido,
			CasoUsoDefinido:     p.Checklist.CasoUsoDefinido,
			ValidacionRGPD:      p.Checklist.ValidacionRGPD,
		},
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}

// IntakeFromEntity convierte un intake a su salida; las listas nunca salen como null.
func IntakeFromEntity(in *entity.ClientIntake) *IntakeResponse {
	if in == nil {
		return nil
	}
	out := &IntakeResponse{
		ID:               in.ID,
		CompanyID:        in.CompanyID,
		DataTypes:        nonNil(in.DataTypes),
		UsagePattern:     in.UsagePattern,
		Interests:        nonNil(in.Interests),
		SensitivityLevel: in.SensitivityLevel,
		Notes:            in.Notes,
		Submitted:        in.Submitted,
		CreatedAt:        in.CreatedAt.UTC(),
		UpdatedAt:        in.UpdatedAt.UTC(),
	}
	if in.SubmittedAt != nil {
		t := in.SubmittedAt.UTC()
		out.SubmittedAt = &t
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
