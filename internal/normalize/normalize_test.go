package normalize_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexbrief/internal/domain"
	"lexbrief/internal/normalize"
)

func decode(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

func TestExtractText_FirstNonEmptyKeyWins(t *testing.T) {
	rec := map[string]interface{}{
		"title":              "   ",
		"originalFileName":   "lease.pdf",
		"original_file_name": "other.pdf",
	}
	assert.Equal(t, "lease.pdf", normalize.ExtractText(rec, "title", "originalFileName", "original_file_name"))
}

func TestExtractText_NonTextIgnored(t *testing.T) {
	rec := map[string]interface{}{"summary": 42.0, "full_summary": []interface{}{"x"}}
	assert.Equal(t, "", normalize.ExtractText(rec, "summary", "full_summary"))
}

func TestExtractList_BareStringBecomesSingleton(t *testing.T) {
	rec := map[string]interface{}{"keyPoints": "  Salary is paid monthly.  "}
	assert.Equal(t, []string{"Salary is paid monthly."}, normalize.ExtractList(rec, "keyPoints", "key_points"))
}

func TestExtractList_FiltersBlankAndNonText(t *testing.T) {
	rec := decode(t, `{"key_points": ["one", "", "  ", 3, null, " two "]}`)
	assert.Equal(t, []string{"one", "two"}, normalize.ExtractList(rec, "keyPoints", "key_points"))
}

func TestExtractList_WrongTypeYieldsEmpty(t *testing.T) {
	rec := decode(t, `{"recommendations": {"a": "b"}}`)
	got := normalize.ExtractList(rec, "recommendations")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractClauses_MappingInfersKind(t *testing.T) {
	tests := []struct {
		title string
		want  domain.ClauseKind
	}{
		{"Non-Compete Clause", domain.ClauseKindWarning},
		{"Confidentiality", domain.ClauseKindInfo},
		{"TERMINATION for cause", domain.ClauseKindWarning},
		{"Limitation of Liability", domain.ClauseKindWarning},
		{"Governing Law", domain.ClauseKindInfo},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			rec := map[string]interface{}{
				"critical_clauses": map[string]interface{}{tt.title: "text"},
			}
			clauses := normalize.ExtractClauses(rec)
			require.Len(t, clauses, 1)
			assert.Equal(t, tt.want, clauses[0].Kind)
			assert.Equal(t, tt.title, clauses[0].Title)
			assert.Equal(t, "text", clauses[0].Content)
		})
	}
}

func TestExtractClauses_MappingWithLineLists(t *testing.T) {
	rec := decode(t, `{"critical_clauses": {
		"Non-Compete Agreement": ["a point", " ", "another"],
		"Confidentiality Agreement": "keep secrets",
		"Empty": []
	}}`)
	clauses := normalize.ExtractClauses(rec)
	require.Len(t, clauses, 2)
	assert.Equal(t, "Confidentiality Agreement", clauses[0].Title)
	assert.Equal(t, domain.ClauseKindInfo, clauses[0].Kind)
	assert.Equal(t, "Non-Compete Agreement", clauses[1].Title)
	assert.Equal(t, "a point\nanother", clauses[1].Content)
	assert.Equal(t, domain.ClauseKindWarning, clauses[1].Kind)
}

func TestExtractClauses_ListRequiresTitleAndBody(t *testing.T) {
	rec := decode(t, `{"criticalClauses": [
		{"title": "Termination", "description": "30 days notice"},
		{"title": "No body"},
		{"content": "no title"},
		{"title": "Payment", "content": "net 30", "kind": "warning"},
		"not an object"
	]}`)
	clauses := normalize.ExtractClauses(rec)
	require.Len(t, clauses, 2)
	assert.Equal(t, domain.Clause{Kind: domain.ClauseKindWarning, Title: "Termination", Content: "30 days notice"}, clauses[0])
	assert.Equal(t, domain.Clause{Kind: domain.ClauseKindWarning, Title: "Payment", Content: "net 30"}, clauses[1])
}

func TestExtractClauses_FallsThroughUnusableKeys(t *testing.T) {
	rec := decode(t, `{
		"criticalClauses": [{"title": "only title"}],
		"critical_clauses": "garbage",
		"clauses": {"Confidentiality": "text"}
	}`)
	clauses := normalize.ExtractClauses(rec)
	require.Len(t, clauses, 1)
	assert.Equal(t, "Confidentiality", clauses[0].Title)
}

func TestNormalize_SnakeCaseShape(t *testing.T) {
	rec := decode(t, `{
		"full_summary": "The agreement covers employment.",
		"key_points": ["Start date 1 May", "Salary 50k"],
		"critical_clauses": [{"title": "Non-compete", "description": "12 months"}],
		"recommendations": ["Negotiate the non-compete"],
		"validation": {"is_legal_document": true, "confidence_score": 0.82, "validation_message": "ok"},
		"originalFileName": "offer.pdf",
		"uploadedAt": "2026-10-18T10:00:00Z"
	}`)
	a := normalize.Normalize(rec)

	assert.Equal(t, "offer.pdf", a.Title)
	assert.Equal(t, []string{"Start date 1 May", "Salary 50k"}, a.KeyPoints)
	assert.Equal(t, "The agreement covers employment.", a.FullSummary)
	assert.Equal(t, []string{"Negotiate the non-compete"}, a.Recommendations)
	assert.Equal(t, "2026-10-18T10:00:00Z", a.UploadedAt)
	require.NotNil(t, a.Validation)
	assert.True(t, a.Validation.IsLegalDocument)
	assert.InDelta(t, 0.82, a.Validation.ConfidenceScore, 1e-9)
	assert.False(t, a.IsEmpty())
}

func TestNormalize_CamelCaseShape(t *testing.T) {
	rec := decode(t, `{
		"title": "NDA",
		"documentType": "Non-Disclosure Agreement",
		"keyPoints": "Mutual NDA",
		"criticalClauses": {"Confidentiality": "Two years"},
		"recommendation": "Sign it",
		"fullSummary": "Short NDA."
	}`)
	a := normalize.Normalize(rec)

	assert.Equal(t, "NDA", a.Title)
	assert.Equal(t, "Non-Disclosure Agreement", a.DocumentType)
	assert.Equal(t, []string{"Mutual NDA"}, a.KeyPoints)
	assert.Equal(t, []string{"Sign it"}, a.Recommendations)
	assert.Nil(t, a.Validation)
}

func TestNormalize_CapitalisedRecommendations(t *testing.T) {
	rec := decode(t, `{"Recommendations": ["a recom", "b recom"], "summary": "a full summary"}`)
	a := normalize.Normalize(rec)
	assert.Equal(t, []string{"a recom", "b recom"}, a.Recommendations)
	assert.Equal(t, "a full summary", a.FullSummary)
}

func TestNormalize_EmptyRecord(t *testing.T) {
	for _, raw := range []string{`{}`, `{"title": "x", "key_points": [], "summary": "  ", "clauses": {}}`} {
		a := normalize.Normalize(decode(t, raw))
		assert.True(t, a.IsEmpty(), raw)
	}
	a := normalize.Normalize(nil)
	assert.True(t, a.IsEmpty())
}

func TestNormalizer_CustomTable(t *testing.T) {
	fields := normalize.DefaultFields
	fields.FullSummary = append([]string{"abstract"}, fields.FullSummary...)
	n := normalize.New(fields)

	a := n.Normalize(map[string]interface{}{"abstract": "A", "summary": "B"})
	assert.Equal(t, "A", a.FullSummary)
}
