package export

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"lexbrief/internal/domain"
)

// BOM is the UTF-8 byte order mark, for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{"Section", "Position", "Kind", "Title", "Content"}

// Writer wraps csv.Writer for exporting an analysis one row per entry.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteAnalysis writes key points, clauses, recommendations and the summary,
// in display order.
func (w *Writer) WriteAnalysis(a *domain.Analysis) error {
	for _, row := range analysisRows(a) {
		if err := w.csv.Write(row); err != nil {
			return err
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

// formulaPrefixes start a formula when a spreadsheet opens the CSV.
const formulaPrefixes = "=+-@\t\r"

// SafeCell quotes text a spreadsheet would otherwise evaluate as a formula.
func SafeCell(s string) string {
	if s != "" && strings.ContainsRune(formulaPrefixes, rune(s[0])) {
		return "'" + s
	}
	return s
}

func analysisRows(a *domain.Analysis) [][]string {
	var rows [][]string
	for i, p := range a.KeyPoints {
		rows = append(rows, []string{string(domain.SectionKeyPoints), strconv.Itoa(i + 1), "", "", SafeCell(p)})
	}
	for i, c := range a.CriticalClauses {
		rows = append(rows, []string{string(domain.SectionCriticalClauses), strconv.Itoa(i + 1), string(c.Kind), SafeCell(c.Title), SafeCell(c.Content)})
	}
	for i, r := range a.Recommendations {
		rows = append(rows, []string{string(domain.SectionRecommendations), strconv.Itoa(i + 1), "", "", SafeCell(r)})
	}
	if a.FullSummary != "" {
		rows = append(rows, []string{string(domain.SectionFullSummary), "1", "", "", SafeCell(a.FullSummary)})
	}
	return rows
}

// CSV renders the whole analysis as a BOM-prefixed CSV file.
func CSV(a *domain.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(BOM)
	w := NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, err
	}
	if err := w.WriteAnalysis(a); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
