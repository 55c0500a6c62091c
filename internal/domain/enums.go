package domain

import "strings"

// ClauseKind classifies a critical clause for display.
type ClauseKind string

const (
	ClauseKindWarning ClauseKind = "warning"
	ClauseKindInfo    ClauseKind = "info"
)

// Section identifies one card of the results page.
type Section string

const (
	SectionKeyPoints       Section = "key_points"
	SectionCriticalClauses Section = "critical_clauses"
	SectionRecommendations Section = "recommendations"
	SectionFullSummary     Section = "full_summary"
)

// Sections lists the result sections in display order.
var Sections = []Section{
	SectionKeyPoints,
	SectionCriticalClauses,
	SectionRecommendations,
	SectionFullSummary,
}

// ParseSection accepts both snake_case and kebab-case section names.
func ParseSection(s string) (Section, error) {
	normalized := Section(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	for _, sec := range Sections {
		if sec == normalized {
			return sec, nil
		}
	}
	return "", ErrUnknownSection
}

// Upload profile names.
const (
	ProfileSummarize = "summarize"
	ProfileLegal     = "legal"
)
