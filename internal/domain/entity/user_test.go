package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "admin@espaciodatos.com", entity.NormalizeEmail("  Admin@EspacioDatos.COM "))
	assert.Equal(t, entity.NormalizeEmail("ÁNGEL@x.es"), entity.NormalizeEmail("ángel@X.ES"))
}

func TestIncorporationChecklist_Complete(t *testing.T) {
	c := entity.IncorporationChecklist{EspacioSeleccionado: true, RolDefinido: true, CasoUsoDefinido: true}
	assert.False(t, c.Complete())
	c.ValidacionRGPD = true
	assert.True(t, c.Complete())
}

func TestUser_IsStaffYValidRole(t *testing.T) {
	assert.True(t, (&entity.User{Role: entity.RoleAdmin}).IsStaff())
	assert.True(t, (&entity.User{Role: entity.RoleAsesor}).IsStaff())
	assert.False(t, (&entity.User{Role: entity.RoleCliente}).IsStaff())
	assert.False(t, (&entity.User{}).IsStaff())

	assert.True(t, entity.ValidRole(""))
	assert.False(t, entity.ValidRole("root"))
}
