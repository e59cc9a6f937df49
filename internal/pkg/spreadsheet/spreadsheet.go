// Package spreadsheet reads and writes tabular files as CSV (RFC 4180) or XLSX.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"roboshop/internal/pkg/errs"

	"github.com/xuri/excelize/v2"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
)

// sheetName is the worksheet written to and read from XLSX files.
const sheetName = "Sheet1"

// MaxFileSize bounds uploads accepted by Read.
const MaxFileSize = 10 << 20

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", CSV:
		return CSV, nil
	case XLSX:
		return XLSX, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("format", fmt.Errorf("%q is not csv or xlsx", s))
	}
}

// FormatOf picks the format from a file name's extension.
func FormatOf(filename string) (Format, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return "", errs.NewValueIsInvalidErrorWithCause("file", errors.New("file name has no extension"))
	}
	return ParseFormat(ext)
}

func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Extension() string {
	return string(f)
}

// Write encodes header and rows.
func Write(w io.Writer, f Format, header []string, rows [][]string) error {
	if f == XLSX {
		return writeXLSX(w, header, rows)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}

// Encode is Write into a buffer.
func Encode(f Format, header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, header, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeXLSX(w io.Writer, header []string, rows [][]string) error {
	file := excelize.NewFile()
	defer func() { _ = file.Close() }()

	sw, err := file.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}
	if err = sw.SetRow("A1", toCells(header), excelize.RowOpts{}); err != nil {
		return err
	}
	for i, row := range rows {
		cell, cellErr := excelize.CoordinatesToCellName(1, i+2)
		if cellErr != nil {
			return cellErr
		}
		if err = sw.SetRow(cell, toCells(row)); err != nil {
			return err
		}
	}
	if err = sw.Flush(); err != nil {
		return err
	}
	return file.Write(w)
}

// toCells writes every value as a string cell so SKUs like "0042" keep their zeros.
func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

// Read decodes every row including the header. Trailing empty rows are dropped.
func Read(r io.Reader, f Format) ([][]string, error) {
	limited := io.LimitReader(r, MaxFileSize+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxFileSize {
		return nil, errs.NewValueIsOutOfRangeError("file size", len(raw), 1, MaxFileSize)
	}

	var rows [][]string
	switch f {
	case XLSX:
		rows, err = readXLSX(raw)
	default:
		rows, err = readCSV(raw)
	}
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("file", err)
	}
	for len(rows) > 0 && isBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows, nil
}

func readCSV(raw []byte) ([][]string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return cr.ReadAll()
}

func readXLSX(raw []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	return file.GetRows(sheets[0])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
