// Package export renders batches of extraction results as CSV or XLSX
// downloads, one row per line item.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"billscan/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Entry is one extracted document tagged with its batch ID.
type Entry struct {
	ID       string
	Document domain.ParsedDocument
}

// columns defines the export header row (15 columns).
var columns = []string{
	"Document ID",
	"Document Number",
	"Document Date",
	"Party Name",
	"Party Phone",
	"Party Address",
	"Item Description",
	"Quantity",
	"Rate",
	"Tax %",
	"Amount",
	"Subtotal",
	"Total Tax",
	"Total",
	"Notes",
}

// Writer wraps csv.Writer for exporting extraction results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the 15-column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteEntries converts extraction results to CSV rows and writes them.
func (w *Writer) WriteEntries(entries []Entry) error {
	for i := range entries {
		for _, row := range entryRows(&entries[i]) {
			if err := w.csv.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// entryRows flattens one document into string rows, one per line item.
// Documents without items still get a single row carrying the header fields.
func entryRows(e *Entry) [][]string {
	base := func() []string {
		row := make([]string, len(columns))
		row[0] = e.ID
		row[1] = e.Document.DocumentNumber
		row[2] = e.Document.DocumentDate
		row[3] = e.Document.PartyName
		row[4] = e.Document.PartyPhone
		row[5] = e.Document.PartyAddress
		row[11] = formatMoney(e.Document.Subtotal)
		row[12] = formatMoney(e.Document.TotalTax)
		row[13] = formatMoney(e.Document.Total)
		row[14] = e.Document.Notes
		return row
	}

	if len(e.Document.Items) == 0 {
		return [][]string{base()}
	}

	rows := make([][]string, 0, len(e.Document.Items))
	for _, item := range e.Document.Items {
		row := base()
		row[6] = item.Description
		row[7] = strconv.FormatFloat(item.Quantity, 'f', -1, 64)
		row[8] = formatMoney(item.Rate)
		row[9] = strconv.FormatFloat(item.TaxPct, 'f', -1, 64)
		row[10] = formatMoney(item.Amount)
		rows = append(rows, row)
	}
	return rows
}

// WriteXLSX renders the entries as a single-sheet XLSX workbook.
func WriteXLSX(w io.Writer, entries []Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
	}

	rowIdx := 2
	for i := range entries {
		for _, row := range entryRows(&entries[i]) {
			for col, val := range row {
				cell, err := excelize.CoordinatesToCellName(col+1, rowIdx)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(sheet, cell, val); err != nil {
					return err
				}
			}
			rowIdx++
		}
	}

	return f.Write(w)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized download filename with today's date and
// the given extension.
func BuildFilename(name, ext string) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "extractions"
	}
	date := time.Now().Format("2006-01-02")
	return fmt.Sprintf("%s_%s.%s", sanitized, date, ext)
}
