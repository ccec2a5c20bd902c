package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/EspacioDatos-api/internal/domain/access"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

func TestDefaultPolicy_MatrizDeRoles(t *testing.T) {
	p := access.DefaultPolicy()

	cases := []struct {
		role string
		cap  access.Capability
		want bool
	}{
		{entity.RoleAdmin, access.ManageUsers, true},
		{entity.RoleAdmin, access.DeleteCompanies, true},
		{entity.RoleAdmin, access.WriteLifecycle, true},
		{entity.RoleAsesor, access.ManageUsers, false},
		{entity.RoleAsesor, access.DeleteCompanies, false},
		{entity.RoleAsesor, access.WriteCompanies, true},
		{entity.RoleAsesor, access.ReviewIntake, true},
		{entity.RoleCliente, access.ReadCompanies, false},
		{entity.RoleCliente, access.WriteLifecycle, false},
		{entity.RoleCliente, access.ReadOwnCompany, true},
		{entity.RoleCliente, access.ViewDashboard, true},
		{entity.RoleAsesor, access.ViewDashboard, false},
		{entity.RoleNone, access.ReadOwnCompany, false},
		{"superuser", access.ReadCompanies, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, p.Allows(tc.role, tc.cap), "%q → %s", tc.role, tc.cap)
	}
}

func TestAllowsAny(t *testing.T) {
	p := access.DefaultPolicy()
	assert.True(t, p.AllowsAny(entity.RoleCliente, access.ReadCompanies, access.ReadOwnCompany))
	assert.False(t, p.AllowsAny(entity.RoleNone, access.ReadCompanies, access.ReadOwnCompany))
}

func TestCanAccessCompany(t *testing.T) {
	cliente := &entity.User{Role: entity.RoleCliente, CompanyID: "X"}
	sinEmpresa := &entity.User{Role: entity.RoleCliente}
	asesor := &entity.User{Role: entity.RoleAsesor}
	pendiente := &entity.User{Role: entity.RoleNone, CompanyID: "X"}

	assert.True(t, access.CanAccessCompany(cliente, "X"))
	assert.False(t, access.CanAccessCompany(cliente, "Y"))
	assert.False(t, access.CanAccessCompany(sinEmpresa, ""))
	assert.True(t, access.CanAccessCompany(asesor, "Y"))
	assert.False(t, access.CanAccessCompany(pendiente, "X"))
}
