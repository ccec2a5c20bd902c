package leadimport_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/EspacioDatos-api/internal/infrastructure/leadimport"
)

func TestRead_PuntoYComaYTildes(t *testing.T) {
	in := "Nombre;NIF;Teléfono;País;Email\n" +
		"Acme;b12345678;600111222;España;info@acme.es\n" +
		"\n" +
		"Sin NIF;;;;\n" +
		"Beta;B2;;;correo-malo\n"

	rows, rejected, err := leadimport.Read(strings.NewReader(in), leadimport.UTF8)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Request.Name)
	assert.Equal(t, "B12345678", rows[0].Request.NIF)
	assert.Equal(t, "600111222", rows[0].Request.ContactPhone)
	assert.Equal(t, "España", rows[0].Request.Country)
	assert.Equal(t, 2, rows[0].Line)

	require.Len(t, rejected, 2)
	assert.Equal(t, 4, rejected[0].Line)
	assert.Contains(t, rejected[0].Reason, "nif")
	assert.Equal(t, 5, rejected[1].Line)
	assert.Contains(t, rejected[1].Reason, "contactemail")
}

func TestRead_Latin1(t *testing.T) {
	utf := "empresa,cif,sector\nCerámicas Ñandú,A1,Industria\n"
	latin, err := charmap.ISO8859_1.NewEncoder().String(utf)
	require.NoError(t, err)

	rows, rejected, err := leadimport.Read(strings.NewReader(latin), leadimport.Latin1)
	require.NoError(t, err)
	assert.Empty(t, rejected)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cerámicas Ñandú", rows[0].Request.Name)
	assert.Equal(t, "Industria", rows[0].Request.Sector)
}

func TestRead_BOM(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})
	buf.WriteString("name,nif\nAcme,B1\n")

	rows, _, err := leadimport.Read(&buf, leadimport.UTF8)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Request.Name)
}

func TestRead_CabeceraIncompleta(t *testing.T) {
	_, _, err := leadimport.Read(strings.NewReader("nombre,sector\nAcme,TIC\n"), leadimport.UTF8)
	assert.ErrorIs(t, err, leadimport.ErrMissingColumns)
}
