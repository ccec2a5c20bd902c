// Package pdf genera el informe de incorporación de una empresa con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + NIF        │  Estado + Fecha del informe   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS: sector / tamaño / país / contacto                    │
//	│  DIAGNÓSTICO: criterios + riesgo legal + resultado           │
//	│  PROYECTO: rol / espacio / caso de uso + checklist (4 pasos) │
//	│  INTAKE: tipos de datos / intereses / sensibilidad           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/EspacioDatos-api/internal/application/report"
	"github.com/jhoicas/EspacioDatos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorOK      = &props.Color{Red: 30, Green: 130, Blue: 76}
	colorKO      = &props.Color{Red: 180, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ report.Generator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa report.Generator usando Maroto v2.
type MarotoReportGenerator struct {
	now func() time.Time
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{now: time.Now}
}

// GenerateCompanyReport genera el PDF y devuelve sus bytes. diag, project e intake pueden ser nil.
func (g *MarotoReportGenerator) GenerateCompanyReport(
	_ context.Context,
	company *entity.Company,
	diag *entity.Diagnostic,
	project *entity.Project,
	intake *entity.ClientIntake,
) ([]byte, error) {
	if company == nil {
		return nil, fmt.Errorf("pdf: empresa requerida")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de incorporación", true).
		WithAuthor("Espacio de Datos", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(company, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(companyRows(company)...)

	m.AddRows(sectionTitle("DIAGNÓSTICO"))
	m.AddRows(diagnosticRows(diag)...)

	m.AddRows(sectionTitle("PROYECTO DE INCORPORACIÓN"))
	m.AddRows(projectRows(project)...)

	m.AddRows(sectionTitle("CUESTIONARIO DEL CLIENTE"))
	m.AddRows(intakeRows(intake)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("Documento interno generado a partir del estado actual del expediente. "+
			"Los datos del cuestionario son declarados por la empresa.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre + NIF (izq) y estado + fecha (der).
func headerRow(c *entity.Company, at time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(c.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIF: "+c.NIF, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE INCORPORACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(strings.ToUpper(c.Status), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+at.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func companyRows(c *entity.Company) []core.Row {
	return []core.Row{
		keyValueRow("Sector", nonEmpty(c.Sector, "-"), "Tamaño", nonEmpty(c.SizeRange, "-")),
		keyValueRow("País", nonEmpty(c.Country, "-"), "Intake", c.IntakeStatus),
		row.New(7).Add(col.New(12).Add(
			text.New(fmt.Sprintf("Contacto: %s (%s)   |   Tel: %s   |   Email: %s",
				nonEmpty(c.ContactName, "-"),
				nonEmpty(c.ContactRole, "-"),
				nonEmpty(c.ContactPhone, "-"),
				nonEmpty(c.ContactEmail, "-"),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
		)),
	}
}

func diagnosticRows(d *entity.Diagnostic) []core.Row {
	if d == nil {
		return []core.Row{emptyRow("Sin diagnóstico registrado.")}
	}
	decided := "-"
	if d.DecidedAt != nil {
		decided = d.DecidedAt.UTC().Format("02/01/2006 15:04")
	}
	rows := []core.Row{
		checkRow("Elegibilidad", d.EligibilityOK),
		checkRow("Espacio de datos identificado", d.SpaceIdentified),
		checkRow("Potencial de datos", d.DataPotential),
		keyValueRow("Riesgo legal", nonEmpty(d.LegalRisk, "sin evaluar"), "Resultado", strings.ToUpper(d.Result)),
		keyValueRow("Decidido por", nonEmpty(d.DecidedBy, "-"), "Fecha decisión", decided),
	}
	if d.Notes != "" {
		rows = append(rows, noteRow(d.Notes))
	}
	return rows
}

func projectRows(p *entity.Project) []core.Row {
	if p == nil {
		return []core.Row{emptyRow("La empresa no tiene proyecto de incorporación.")}
	}
	return []core.Row{
		keyValueRow("Título", p.Title, "Fase", fmt.Sprintf("%d (%s)", p.Phase, p.Status)),
		keyValueRow("Rol objetivo", nonEmpty(p.TargetRole, "-"), "Estado", p.IncorporationStatus),
		keyValueRow("Espacio", nonEmpty(p.SpaceName, "-"), "Caso de uso", nonEmpty(p.UseCase, "-")),
		checkRow("Espacio seleccionado", p.Checklist.EspacioSeleccionado),
		checkRow("Rol definido", p.Checklist.RolDefinido),
		checkRow("Caso de uso definido", p.Checklist.CasoUsoDefinido),
		checkRow("Validación RGPD", p.Checklist.ValidacionRGPD),
	}
}

func intakeRows(in *entity.ClientIntake) []core.Row {
	if in == nil {
		return []core.Row{emptyRow("El cliente aún no ha rellenado el cuestionario.")}
	}
	sent := "No enviado"
	if in.Submitted && in.SubmittedAt != nil {
		sent = "Enviado el " + in.SubmittedAt.UTC().Format("02/01/2006")
	}
	rows := []core.Row{
		keyValueRow("Tipos de datos", nonEmpty(strings.Join(in.DataTypes, ", "), "-"), "Uso", nonEmpty(in.UsagePattern, "-")),
		keyValueRow("Intereses", nonEmpty(strings.Join(in.Interests, ", "), "-"), "Sensibilidad", nonEmpty(in.SensitivityLevel, "-")),
		keyValueRow("Estado", sent, "", ""),
	}
	if in.Notes != "" {
		rows = append(rows, noteRow(in.Notes))
	}
	return rows
}

// ── Componentes ───────────────────────────────────────────────────────────────

func sectionTitle(label string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 4,
		}),
	))
}

func keyValueRow(k1, v1, k2, v2 string) core.Row {
	key := func(s string) core.Col {
		return col.New(2).Add(text.New(s, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}))
	}
	val := func(s string) core.Col {
		return col.New(4).Add(text.New(s, props.Text{Size: 8, Top: 1}))
	}
	return row.New(6).Add(key(k1), val(v1), key(k2), val(v2))
}

func checkRow(label string, ok bool) core.Row {
	mark, color := "NO", colorKO
	if ok {
		mark, color = "SÍ", colorOK
	}
	return row.New(5).Add(
		col.New(1).Add(text.New(mark, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Center, Color: color, Top: 0.5,
		})),
		col.New(11).Add(text.New(label, props.Text{Size: 8, Top: 0.5, Left: 1})),
	)
}

func noteRow(notes string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Notas: "+notes, props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
