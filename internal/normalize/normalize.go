// Package normalize turns the loosely-structured JSON returned by the analysis
// service into a render-ready domain.Analysis.
//
// The service has shipped several response shapes over time, so every logical
// field is resolved from an ordered list of candidate keys and the first key
// that yields usable data wins. Normalization never fails: missing or
// malformed fields come back empty.
package normalize

import (
	"sort"
	"strings"

	"lexbrief/internal/domain"
)

// FieldTable maps each logical field to its candidate keys in precedence order.
type FieldTable struct {
	Title           []string
	DocumentType    []string
	KeyPoints       []string
	CriticalClauses []string
	Recommendations []string
	FullSummary     []string
	UploadedAt      []string
	Validation      []string
}

// DefaultFields covers every response shape the analysis service is known to produce.
var DefaultFields = FieldTable{
	Title:           []string{"title", "originalFileName", "original_file_name"},
	DocumentType:    []string{"documentType", "document_type"},
	KeyPoints:       []string{"keyPoints", "key_points"},
	CriticalClauses: []string{"criticalClauses", "critical_clauses", "clauses"},
	Recommendations: []string{"recommendations", "recommendation", "Recommendations"},
	FullSummary:     []string{"fullSummary", "full_summary", "summary"},
	UploadedAt:      []string{"uploadedAt", "uploaded_at"},
	Validation:      []string{"validation"},
}

// RiskKeywords mark a clause title as a warning (case-insensitive substring).
var RiskKeywords = []string{"non-compete", "termination", "liability"}

// Normalizer resolves records against a FieldTable.
type Normalizer struct {
	fields FieldTable
}

// New creates a Normalizer over the given field table.
func New(fields FieldTable) *Normalizer {
	return &Normalizer{fields: fields}
}

var defaultNormalizer = New(DefaultFields)

// Normalize resolves rec with DefaultFields.
func Normalize(rec map[string]interface{}) domain.Analysis {
	return defaultNormalizer.Normalize(rec)
}

// Normalize resolves every logical field of rec.
func (n *Normalizer) Normalize(rec map[string]interface{}) domain.Analysis {
	return domain.Analysis{
		Title:           ExtractText(rec, n.fields.Title...),
		DocumentType:    ExtractText(rec, n.fields.DocumentType...),
		KeyPoints:       ExtractList(rec, n.fields.KeyPoints...),
		CriticalClauses: extractClauses(rec, n.fields.CriticalClauses),
		Recommendations: ExtractList(rec, n.fields.Recommendations...),
		FullSummary:     ExtractText(rec, n.fields.FullSummary...),
		UploadedAt:      ExtractText(rec, n.fields.UploadedAt...),
		Validation:      extractValidation(rec, n.fields.Validation),
	}
}

// ExtractText returns the trimmed value of the first candidate key holding
// non-empty text, or "".
func ExtractText(rec map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s := asText(rec[key]); s != "" {
			return s
		}
	}
	return ""
}

// ExtractList returns the first candidate key's value as a list of non-empty
// trimmed strings. A bare string is a one-element list. Keys whose value
// yields nothing are skipped.
func ExtractList(rec map[string]interface{}, keys ...string) []string {
	for _, key := range keys {
		if items := asList(rec[key]); len(items) > 0 {
			return items
		}
	}
	return []string{}
}

// ExtractClauses resolves critical clauses with DefaultFields.
func ExtractClauses(rec map[string]interface{}) []domain.Clause {
	return extractClauses(rec, DefaultFields.CriticalClauses)
}

// InferKind classifies a clause by its title.
func InferKind(title string) domain.ClauseKind {
	lower := strings.ToLower(title)
	for _, kw := range RiskKeywords {
		if strings.Contains(lower, kw) {
			return domain.ClauseKindWarning
		}
	}
	return domain.ClauseKindInfo
}

func extractClauses(rec map[string]interface{}, keys []string) []domain.Clause {
	for _, key := range keys {
		var clauses []domain.Clause
		switch v := rec[key].(type) {
		case []interface{}:
			clauses = clausesFromList(v)
		case map[string]interface{}:
			clauses = clausesFromMap(v)
		}
		if len(clauses) > 0 {
			return clauses
		}
	}
	return []domain.Clause{}
}

func clausesFromList(items []interface{}) []domain.Clause {
	var out []domain.Clause
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		title := ExtractText(m, "title", "name")
		body := ExtractText(m, "content", "description")
		if title == "" || body == "" {
			continue
		}
		kind := domain.ClauseKind(strings.ToLower(ExtractText(m, "kind", "type")))
		if kind != domain.ClauseKindWarning && kind != domain.ClauseKindInfo {
			kind = InferKind(title)
		}
		out = append(out, domain.Clause{Kind: kind, Title: title, Content: body})
	}
	return out
}

// clausesFromMap handles {"Clause title": "text"} and {"Clause title": ["line", ...]}.
// Entries come out in title order since map order is random.
func clausesFromMap(m map[string]interface{}) []domain.Clause {
	titles := make([]string, 0, len(m))
	for k := range m {
		titles = append(titles, k)
	}
	sort.Strings(titles)

	var out []domain.Clause
	for _, raw := range titles {
		title := strings.TrimSpace(raw)
		if title == "" {
			continue
		}
		body := asText(m[raw])
		if body == "" {
			body = strings.Join(asList(m[raw]), "\n")
		}
		if body == "" {
			continue
		}
		out = append(out, domain.Clause{Kind: InferKind(title), Title: title, Content: body})
	}
	return out
}

func extractValidation(rec map[string]interface{}, keys []string) *domain.Validation {
	for _, key := range keys {
		m, ok := rec[key].(map[string]interface{})
		if !ok {
			continue
		}
		legal, hasLegal := firstBool(m, "is_legal_document", "isLegalDocument")
		if !hasLegal {
			continue
		}
		score, _ := firstNumber(m, "confidence_score", "confidenceScore")
		return &domain.Validation{
			IsLegalDocument: legal,
			ConfidenceScore: score,
			Message:         ExtractText(m, "validation_message", "validationMessage", "message", "reason"),
		}
	}
	return nil
}

func asText(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func asList(v interface{}) []string {
	var out []string
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			out = append(out, s)
		}
	case []string:
		for _, item := range t {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	case []interface{}:
		for _, item := range t {
			if s := asText(item); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func firstBool(m map[string]interface{}, keys ...string) (bool, bool) {
	for _, k := range keys {
		if b, ok := m[k].(bool); ok {
			return b, true
		}
	}
	return false, false
}

func firstNumber(m map[string]interface{}, keys ...string) (float64, bool) {
	for _, k := range keys {
		switch n := m[k].(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		}
	}
	return 0, false
}
