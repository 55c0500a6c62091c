// Package export renders a normalized analysis as downloadable files.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"lexbrief/internal/domain"
)

const (
	ContentTypeText     = "text/plain; charset=utf-8"
	ContentTypeCSV      = "text/csv; charset=utf-8"
	ContentTypeWorkbook = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Disclaimer closes every export.
const Disclaimer = "This analysis was generated automatically and is not legal advice. " +
	"Consult a qualified attorney before relying on it."

const (
	untitledDocument = "Untitled Document"
	defaultDocType   = "Legal Document"
	noneIdentified   = "None identified."
	timestampLayout  = "January 2, 2006 at 15:04 MST"
	fallbackFileStem = "legal_document"
)

// BulletPrefix starts every list entry in copied and exported text.
const BulletPrefix = "• "

// nonFilenameChars matches runs of characters that are not alphanumeric, hyphen, or underscore.
var nonFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// SanitizeFilename turns a document title into a file stem. Runs of other
// characters become a single "_", and leading or trailing "_" are trimmed.
// An empty result falls back to "legal_document".
func SanitizeFilename(title string) string {
	s := nonFilenameChars.ReplaceAllString(title, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = strings.TrimRight(s[:100], "_")
	}
	if s == "" {
		return fallbackFileStem
	}
	return s
}

// BuildFilename returns "<sanitized title>_analysis.<ext>".
func BuildFilename(title, ext string) string {
	return fmt.Sprintf("%s_analysis.%s", SanitizeFilename(title), ext)
}

// JoinBullets joins list entries with the bullet separator, prefixing the
// first entry too.
func JoinBullets(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return BulletPrefix + strings.Join(items, "\n"+BulletPrefix)
}

// ClauseLine renders a clause as "Title: Content".
func ClauseLine(c domain.Clause) string {
	return c.Title + ": " + c.Content
}

// FormatTimestamp renders an RFC 3339 upload time for display. Values that do
// not parse are shown as-is; an empty value uses now.
func FormatTimestamp(uploadedAt string, now time.Time) string {
	if uploadedAt == "" {
		return now.UTC().Format(timestampLayout)
	}
	t, err := time.Parse(time.RFC3339, uploadedAt)
	if err != nil {
		return uploadedAt
	}
	return t.UTC().Format(timestampLayout)
}

// FormatTimestampNow is FormatTimestamp against the current time.
func FormatTimestampNow(uploadedAt string) string {
	return FormatTimestamp(uploadedAt, time.Now())
}

// Percent renders a 0..1 confidence score as a whole percentage.
func Percent(score float64) string {
	return fmt.Sprintf("%.0f%%", score*100)
}

// Text renders the plain-text export.
func Text(a *domain.Analysis, now time.Time) []byte {
	var b strings.Builder

	heading(&b, "LEGAL DOCUMENT ANALYSIS", "=")
	fmt.Fprintf(&b, "Document: %s\n", orDefault(a.Title, untitledDocument))
	fmt.Fprintf(&b, "Type: %s\n", orDefault(a.DocumentType, defaultDocType))
	fmt.Fprintf(&b, "Analyzed: %s\n", FormatTimestamp(a.UploadedAt, now))
	if a.Validation != nil {
		fmt.Fprintf(&b, "Legal document check: %s (confidence %s)\n",
			yesNo(a.Validation.IsLegalDocument), Percent(a.Validation.ConfidenceScore))
		if a.Validation.Message != "" {
			fmt.Fprintf(&b, "Note: %s\n", a.Validation.Message)
		}
	}
	b.WriteString("\n")

	heading(&b, "KEY POINTS", "-")
	listBody(&b, a.KeyPoints)

	heading(&b, "CRITICAL CLAUSES", "-")
	if len(a.CriticalClauses) == 0 {
		b.WriteString(noneIdentified + "\n\n")
	}
	for _, c := range a.CriticalClauses {
		fmt.Fprintf(&b, "[%s] %s\n%s\n\n", strings.ToUpper(string(c.Kind)), c.Title, c.Content)
	}

	heading(&b, "RECOMMENDATIONS", "-")
	listBody(&b, a.Recommendations)

	heading(&b, "FULL SUMMARY", "-")
	b.WriteString(orDefault(a.FullSummary, noneIdentified))
	b.WriteString("\n\n")

	heading(&b, "DISCLAIMER", "-")
	b.WriteString(Disclaimer)
	b.WriteString("\n")

	return []byte(b.String())
}

func heading(b *strings.Builder, title, underline string) {
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat(underline, len(title)))
	b.WriteString("\n")
}

func listBody(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString(noneIdentified)
	} else {
		b.WriteString(JoinBullets(items))
	}
	b.WriteString("\n\n")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
