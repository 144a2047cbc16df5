// Package tabular parses uploaded analysis results into row-ordered tables
// and converts them between display (markdown) and transport (JSON) forms.
package tabular

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
)

// ErrEmpty is returned when the input holds no records at all.
var ErrEmpty = errors.New("tabular: empty input")

// Table is an ordered tabular dataset. The first parsed record is the
// header; rows are normalised to the header width (short rows padded with
// empty cells, extra cells dropped).
type Table struct {
	Header []string
	Rows   [][]string
}

// Source turns raw file content into tables and tables into the strings the
// dialogue layer needs: a displayable rendering and a transport encoding.
type Source interface {
	Parse(r io.Reader, delim rune) (*Table, error)
	Render(t *Table) string
	Serialize(t *Table) (string, error)
}

// CSV reads delimiter-separated values. It is the only Source the
// application ships; the delimiter is chosen per file by InferDelimiter.
type CSV struct{}

// Parse reads all records from r using the given delimiter. Records may be
// ragged; the header defines the table width.
func (CSV) Parse(r io.Reader, delim rune) (*Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("tabular: parse: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	header := records[0]
	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]string, len(header))
		copy(row, rec)
		rows = append(rows, row)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// Render produces a GitHub-style markdown pipe table.
func (CSV) Render(t *Table) string {
	var buf bytes.Buffer

	w := tablewriter.NewWriter(&buf)
	w.SetHeader(t.Header)
	w.SetAutoFormatHeaders(false)
	w.SetAutoWrapText(false)
	w.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	w.SetAlignment(tablewriter.ALIGN_LEFT)
	w.SetCenterSeparator("|")
	w.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	w.AppendBulk(t.Rows)
	w.Render()

	return buf.String()
}

// Serialize encodes the table column-oriented, column order preserved:
// {"col":{"0":"v0","1":"v1",...},...}. Row indices are the stringified
// positions, which keeps the encoding stable for the backend prompt.
func (CSV) Serialize(t *Table) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for ci, col := range t.Header {
		if ci > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(col)
		if err != nil {
			return "", fmt.Errorf("tabular: serialize header: %w", err)
		}
		buf.Write(name)
		buf.WriteString(":{")
		for ri, row := range t.Rows {
			if ri > 0 {
				buf.WriteByte(',')
			}
			cell, err := json.Marshal(row[ci])
			if err != nil {
				return "", fmt.Errorf("tabular: serialize cell: %w", err)
			}
			buf.WriteString(strconv.Quote(strconv.Itoa(ri)))
			buf.WriteByte(':')
			buf.Write(cell)
		}
		buf.WriteByte('}')
	}

	buf.WriteByte('}')
	return buf.String(), nil
}

var _ Source = CSV{}
