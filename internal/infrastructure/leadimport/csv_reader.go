// Package leadimport lee altas masivas de empresas (leads) desde CSV exportado por hojas de cálculo.
package leadimport

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/EspacioDatos-api/internal/application/dto"
)

// Encoding codificación del fichero de entrada.
type Encoding string

const (
	UTF8   Encoding = "utf-8"
	Latin1 Encoding = "iso-8859-1" // Excel en Windows con configuración regional española
)

// ErrMissingColumns la cabecera no trae nombre y NIF.
var ErrMissingColumns = errors.New("leadimport: la cabecera debe incluir nombre y nif")

// Row fila válida lista para dar de alta.
type Row struct {
	Line    int
	Request dto.CreateCompanyRequest
}

// RowError fila descartada.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string { return fmt.Sprintf("línea %d: %s", e.Line, e.Reason) }

type setter func(*dto.CreateCompanyRequest, string)

// columns cabeceras aceptadas, ya normalizadas (minúsculas, sin tildes).
var columns = map[string]setter{
	"nombre":        func(r *dto.CreateCompanyRequest, v string) { r.Name = v },
	"name":          func(r *dto.CreateCompanyRequest, v string) { r.Name = v },
	"empresa":       func(r *dto.CreateCompanyRequest, v string) { r.Name = v },
	"nif":           func(r *dto.CreateCompanyRequest, v string) { r.NIF = v },
	"cif":           func(r *dto.CreateCompanyRequest, v string) { r.NIF = v },
	"sector":        func(r *dto.CreateCompanyRequest, v string) { r.Sector = v },
	"tamano":        func(r *dto.CreateCompanyRequest, v string) { r.SizeRange = v },
	"size_range":    func(r *dto.CreateCompanyRequest, v string) { r.SizeRange = v },
	"pais":          func(r *dto.CreateCompanyRequest, v string) { r.Country = v },
	"country":       func(r *dto.CreateCompanyRequest, v string) { r.Country = v },
	"contacto":      func(r *dto.CreateCompanyRequest, v string) { r.ContactName = v },
	"contact_name":  func(r *dto.CreateCompanyRequest, v string) { r.ContactName = v },
	"cargo":         func(r *dto.CreateCompanyRequest, v string) { r.ContactRole = v },
	"contact_role":  func(r *dto.CreateCompanyRequest, v string) { r.ContactRole = v },
	"telefono":      func(r *dto.CreateCompanyRequest, v string) { r.ContactPhone = v },
	"contact_phone": func(r *dto.CreateCompanyRequest, v string) { r.ContactPhone = v },
	"email":         func(r *dto.CreateCompanyRequest, v string) { r.ContactEmail = v },
	"contact_email": func(r *dto.CreateCompanyRequest, v string) { r.ContactEmail = v },
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Read decodifica el CSV. El separador (coma o punto y coma) se deduce de la cabecera.
// Las filas inválidas no abortan la lectura: se devuelven aparte en RowError.
func Read(r io.Reader, enc Encoding) ([]Row, []RowError, error) {
	if enc == Latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, nil, fmt.Errorf("leadimport: leer cabecera: %w", err)
	}
	if bytes.HasPrefix(head, utf8BOM) {
		_, _ = br.Discard(3)
		head = head[3:]
	}

	cr := csv.NewReader(br)
	cr.Comma = detectComma(head)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("leadimport: leer cabecera: %w", err)
	}
	setters := make([]setter, len(header))
	var hasName, hasNIF bool
	for i, h := range header {
		key := normalizeHeader(h)
		setters[i] = columns[key]
		switch key {
		case "nombre", "name", "empresa":
			hasName = true
		case "nif", "cif":
			hasNIF = true
		}
	}
	if !hasName || !hasNIF {
		return nil, nil, ErrMissingColumns
	}

	var rows []Row
	var rejected []RowError
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("leadimport: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		var req dto.CreateCompanyRequest
		for i, v := range rec {
			if i < len(setters) && setters[i] != nil {
				setters[i](&req, strings.TrimSpace(v))
			}
		}
		req.NIF = strings.ToUpper(req.NIF)
		if err := validate.Struct(req); err != nil {
			rejected = append(rejected, RowError{Line: line, Reason: reason(err)})
			continue
		}
		rows = append(rows, Row{Line: line, Request: req})
	}
	return rows, rejected, nil
}

func detectComma(head []byte) rune {
	first := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		first = head[:i]
	}
	if bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		return ';'
	}
	return ','
}

// normalizeHeader "Teléfono " -> "telefono".
func normalizeHeader(h string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(h))
	if err != nil {
		out = h
	}
	return strings.ToLower(strings.ReplaceAll(out, " ", "_"))
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func reason(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return "campos inválidos: " + strings.Join(fields, ", ")
}
