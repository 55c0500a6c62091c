package domain

import (
	"time"
)

// Handoff metadata keys attached to an AnalysisRecord by the upload flow.
const (
	RecordKeyOriginalFileName = "originalFileName"
	RecordKeyUploadedAt       = "uploadedAt"
	RecordKeyArchiveKey       = "archiveKey"
)

// AnalysisRecord is the JSON object returned by the analysis service, merged
// with the handoff metadata. It has no fixed schema.
type AnalysisRecord map[string]interface{}

// NewAnalysisRecord copies payload and attaches the original file name and
// upload time (RFC 3339, UTC).
func NewAnalysisRecord(payload map[string]interface{}, fileName string, uploadedAt time.Time) AnalysisRecord {
	rec := make(AnalysisRecord, len(payload)+2)
	for k, v := range payload {
		rec[k] = v
	}
	rec[RecordKeyOriginalFileName] = fileName
	rec[RecordKeyUploadedAt] = uploadedAt.UTC().Format(time.RFC3339)
	return rec
}

// OriginalFileName returns the attached file name, or "".
func (r AnalysisRecord) OriginalFileName() string {
	s, _ := r[RecordKeyOriginalFileName].(string)
	return s
}

// ArchiveKey returns the object-storage key of the original document, or "".
func (r AnalysisRecord) ArchiveKey() string {
	s, _ := r[RecordKeyArchiveKey].(string)
	return s
}

// SetArchiveKey records where the original document was archived.
func (r AnalysisRecord) SetArchiveKey(key string) {
	r[RecordKeyArchiveKey] = key
}

// Clause is a critical clause flagged by the analysis service.
type Clause struct {
	Kind    ClauseKind `json:"kind"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
}

// Validation is the optional legal-document check reported by the service.
type Validation struct {
	IsLegalDocument bool    `json:"isLegalDocument"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Message         string  `json:"message,omitempty"`
}

// Analysis is the normalized, render-ready form of an AnalysisRecord.
type Analysis struct {
	Title           string      `json:"title"`
	DocumentType    string      `json:"documentType"`
	KeyPoints       []string    `json:"keyPoints"`
	CriticalClauses []Clause    `json:"criticalClauses"`
	Recommendations []string    `json:"recommendations"`
	FullSummary     string      `json:"fullSummary"`
	UploadedAt      string      `json:"uploadedAt,omitempty"`
	Validation      *Validation `json:"validation,omitempty"`
}

// IsEmpty reports whether no section has content. Title and type alone do
// not make an analysis renderable.
func (a *Analysis) IsEmpty() bool {
	return len(a.KeyPoints) == 0 &&
		len(a.CriticalClauses) == 0 &&
		len(a.Recommendations) == 0 &&
		a.FullSummary == ""
}

// HasSection reports whether the given section has content.
func (a *Analysis) HasSection(s Section) bool {
	switch s {
	case SectionKeyPoints:
		return len(a.KeyPoints) > 0
	case SectionCriticalClauses:
		return len(a.CriticalClauses) > 0
	case SectionRecommendations:
		return len(a.Recommendations) > 0
	case SectionFullSummary:
		return a.FullSummary != ""
	}
	return false
}

// UploadProfile is one configured upload flow: the remote path it posts to
// and the file extensions it accepts.
type UploadProfile struct {
	Name              string   `json:"name"`
	Path              string   `json:"path"`
	AllowedExtensions []string `json:"allowedExtensions"`
}

// Allows reports whether ext (lower-case, without dot) is accepted.
func (p UploadProfile) Allows(ext string) bool {
	for _, e := range p.AllowedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}
