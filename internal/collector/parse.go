package collector

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"Premiacao/internal/model"
)

// ErrEmptySheet is returned when the sheet has no data rows.
var ErrEmptySheet = errors.New("sheet needs a header and at least one row")

// Row is one parsed spreadsheet line.
type Row struct {
	Name        string
	Role        model.EmployeeRole
	BaseSalary  float64
	Performance model.EmployeePerformance
}

// Sheet is the result of parsing a spreadsheet.
type Sheet struct {
	Rows    []Row
	Skipped int
}

type columns struct {
	name, role, salary  int
	bsc, gerencial, mat int
	ebitda              int
}

// Parse reads a CSV roster. Legacy spreadsheets are exported as ISO-8859-1, so payloads that are not
// valid UTF-8 are decoded as Latin-1. The delimiter is ';' when the header has one, ',' otherwise.
func Parse(r io.Reader) (*Sheet, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	text, err := decode(raw)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) < 2 {
		return nil, ErrEmptySheet
	}

	delimiter := ","
	if strings.Contains(lines[0], ";") {
		delimiter = ";"
	}
	headers := strings.Split(lines[0], delimiter)
	for i := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(headers[i]))
	}
	idx := columns{
		name:      findColumn(headers, "nome"),
		role:      findColumn(headers, "perfil", "cargo"),
		salary:    findColumn(headers, "salário", "salario", "base"),
		bsc:       findColumn(headers, "bsc", "vendas"),
		gerencial: findColumn(headers, "gerencial", "orçamento"),
		mat:       findColumn(headers, "mat"),
		ebitda:    findColumn(headers, "ebitda", "anual"),
	}

	sheet := &Sheet{}
	for _, line := range lines[1:] {
		parts := strings.Split(line, delimiter)
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if len(parts) < 2 {
			sheet.Skipped++
			continue
		}
		name := strings.ToUpper(field(parts, idx.name))
		if name == "" {
			sheet.Skipped++
			continue
		}
		role := model.RoleEquipe
		if idx.role != -1 {
			role = model.ParseRole(field(parts, idx.role))
		}
		sheet.Rows = append(sheet.Rows, Row{
			Name:       name,
			Role:       role,
			BaseSalary: ParseNumber(field(parts, idx.salary)),
			Performance: model.EmployeePerformance{
				model.KPIMonthlyBSC:         ParseNumber(field(parts, idx.bsc)),
				model.KPIQuarterlyGerencial: ParseNumber(field(parts, idx.gerencial)),
				model.KPIMonthlyMAT:         ParseNumber(field(parts, idx.mat)),
				model.KPIAnnualEBITDA:       ParseNumber(field(parts, idx.ebitda)),
			},
		})
	}
	return sheet, nil
}

// ParseNumber reads Brazilian-formatted numbers ("R$ 1.234,56", "97,5", "97.5"). Invalid input yields 0.
func ParseNumber(s string) float64 {
	clean := strings.NewReplacer("R$", "", " ", "", "\u00a0", "", "%", "").Replace(s)
	if clean == "" || clean == "0" {
		return 0
	}
	switch {
	case strings.Contains(clean, ",") && strings.Contains(clean, "."):
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	case strings.Contains(clean, ","):
		clean = strings.Replace(clean, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func decode(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode latin-1: %w", err)
	}
	return string(out), nil
}

// findColumn returns the first header containing any keyword, or -1.
func findColumn(headers []string, keywords ...string) int {
	for i, h := range headers {
		for _, k := range keywords {
			if strings.Contains(h, k) {
				return i
			}
		}
	}
	return -1
}

func field(parts []string, i int) string {
	if i < 0 || i >= len(parts) {
		return ""
	}
	return parts[i]
}
