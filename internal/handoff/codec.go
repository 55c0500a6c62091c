// Package handoff holds the record encoding shared by the session mailbox implementations.
package handoff

import (
	"encoding/json"
	"errors"
	"fmt"

	"lexbrief/internal/domain"
)

// ErrEmptySessionID is returned when a mailbox is addressed without a session.
var ErrEmptySessionID = errors.New("handoff: empty session id")

// Encode serializes a record once for storage.
func Encode(rec domain.AnalysisRecord) ([]byte, error) {
	if rec == nil {
		rec = domain.AnalysisRecord{}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding analysis record: %w", err)
	}
	return data, nil
}

// Decode parses a stored record. Anything that is not a JSON object is
// reported as domain.ErrCorruptAnalysis.
func Decode(data []byte) (domain.AnalysisRecord, error) {
	var rec domain.AnalysisRecord
	if err := json.Unmarshal(data, &rec); err != nil || rec == nil {
		return nil, domain.ErrCorruptAnalysis
	}
	return rec, nil
}
