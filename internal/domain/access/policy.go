// Package access define qué puede hacer cada rol. La política se construye una vez y
// se inyecta en el router; no hay listas de roles globales repartidas por los handlers.
package access

import "github.com/jhoicas/EspacioDatos-api/internal/domain/entity"

// Capability operación protegida de la API.
type Capability string

const (
	ManageUsers     Capability = "users.manage"
	ReadCompanies   Capability = "companies.read"   // listado y detalle de cualquier empresa
	WriteCompanies  Capability = "companies.write"  // alta/edición de empresas y su usuario cliente
	DeleteCompanies Capability = "companies.delete" // borrado en cascada
	WriteLifecycle  Capability = "lifecycle.write"  // diagnóstico, decisión y proyecto
	ReviewIntake    Capability = "intake.review"    // reabrir intakes enviados
	ReadOwnCompany  Capability = "company.read_own" // detalle de la propia empresa
	WriteOwnIntake  Capability = "intake.write_own" // rellenar y enviar el propio intake
	ViewDashboard   Capability = "dashboard.view"   // panel del cliente
	GenerateReports Capability = "companies.report" // informe PDF
)

// Policy mapa rol → capacidades.
type Policy struct {
	grants map[string]map[Capability]bool
}

// NewPolicy construye una política a partir de un mapa explícito.
func NewPolicy(grants map[string][]Capability) *Policy {
	p := &Policy{grants: make(map[string]map[Capability]bool, len(grants))}
	for role, caps := range grants {
		set := make(map[Capability]bool, len(caps))
		for _, c := range caps {
			set[c] = true
		}
		p.grants[role] = set
	}
	return p
}

// DefaultPolicy admin gestiona todo; asesor todo salvo usuarios y borrado de empresas;
// cliente solo su empresa. Un usuario sin rol no tiene capacidades.
func DefaultPolicy() *Policy {
	staff := []Capability{ReadCompanies, WriteCompanies, WriteLifecycle, ReviewIntake, ReadOwnCompany, WriteOwnIntake, GenerateReports}
	return NewPolicy(map[string][]Capability{
		entity.RoleAdmin:   append([]Capability{ManageUsers, DeleteCompanies}, staff...),
		entity.RoleAsesor:  staff,
		entity.RoleCliente: {ReadOwnCompany, WriteOwnIntake, ViewDashboard},
	})
}

// Allows informa si role tiene la capacidad.
func (p *Policy) Allows(role string, c Capability) bool {
	return p.grants[role][c]
}

// AllowsAny informa si role tiene al menos una de las capacidades.
func (p *Policy) AllowsAny(role string, caps ...Capability) bool {
	for _, c := range caps {
		if p.Allows(role, c) {
			return true
		}
	}
	return false
}

// CanAccessCompany aplica el alcance por empresa: el personal interno ve todas, el
// cliente únicamente la referenciada en su propio registro.
func CanAccessCompany(u *entity.User, companyID string) bool {
	if u.IsStaff() {
		return true
	}
	return u.Role == entity.RoleCliente && u.CompanyID != "" && u.CompanyID == companyID
}
