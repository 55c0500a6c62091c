package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"lexbrief/internal/domain"
	"lexbrief/internal/export"
	"lexbrief/internal/logger"
	"lexbrief/internal/normalize"
	"lexbrief/internal/port"
)

// CopyAckWindow is how long a copied section is reported as copied.
const CopyAckWindow = 2 * time.Second

// ResultView is the render model of the results page.
type ResultView struct {
	Analysis      domain.Analysis `json:"analysis"`
	FileName      string          `json:"fileName,omitempty"`
	Empty         bool            `json:"empty"`
	CopiedSection domain.Section  `json:"copiedSection,omitempty"`
	DocxAvailable bool            `json:"docxAvailable"`
}

// Copied reports whether section is inside its copy acknowledgement window.
func (v *ResultView) Copied(section string) bool {
	return v.CopiedSection != "" && string(v.CopiedSection) == section
}

// Export is a rendered download.
type Export struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ResultsService defines the results page contract.
type ResultsService interface {
	Current(ctx context.Context, sessionID string) (*ResultView, error)
	Copy(ctx context.Context, sessionID string, section domain.Section) (string, error)
	ExportText(ctx context.Context, sessionID string) (*Export, error)
	ExportCSV(ctx context.Context, sessionID string) (*Export, error)
	ExportWorkbook(ctx context.Context, sessionID string) (*Export, error)
	ExportDocx(ctx context.Context, sessionID string) (*port.DocxStream, error)
	AnalyzeAnother(ctx context.Context, sessionID string) error
}

type copyMark struct {
	section domain.Section
	at      time.Time
}

type resultsService struct {
	mailbox    port.Mailbox
	summarizer port.Summarizer
	storage    port.ObjectStorage
	bucket     string
	now        func() time.Time

	mu     sync.Mutex
	copies map[string]copyMark
}

// NewResultsService creates a new ResultsService. A nil storage makes the
// DOCX export unavailable.
func NewResultsService(
	mailbox port.Mailbox,
	summarizer port.Summarizer,
	storage port.ObjectStorage,
	bucket string,
) ResultsService {
	return NewResultsServiceWithClock(mailbox, summarizer, storage, bucket, time.Now)
}

// NewResultsServiceWithClock creates a ResultsService with an injected clock (for testing).
func NewResultsServiceWithClock(
	mailbox port.Mailbox,
	summarizer port.Summarizer,
	storage port.ObjectStorage,
	bucket string,
	now func() time.Time,
) ResultsService {
	return &resultsService{
		mailbox:    mailbox,
		summarizer: summarizer,
		storage:    storage,
		bucket:     bucket,
		now:        now,
		copies:     make(map[string]copyMark),
	}
}

func (s *resultsService) load(ctx context.Context, sessionID string) (domain.AnalysisRecord, *domain.Analysis, error) {
	rec, err := s.mailbox.Peek(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptAnalysis) {
			logger.WarnWithFields("stored analysis is corrupt", logger.Fields{"session_id": sessionID})
		}
		return nil, nil, err
	}
	a := normalize.Normalize(rec)
	return rec, &a, nil
}

func (s *resultsService) Current(ctx context.Context, sessionID string) (*ResultView, error) {
	rec, a, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &ResultView{
		Analysis:      *a,
		FileName:      rec.OriginalFileName(),
		Empty:         a.IsEmpty(),
		CopiedSection: s.copiedSection(sessionID),
		DocxAvailable: s.storage != nil && rec.ArchiveKey() != "",
	}, nil
}

func (s *resultsService) Copy(ctx context.Context, sessionID string, section domain.Section) (string, error) {
	_, a, err := s.load(ctx, sessionID)
	if err != nil {
		return "", err
	}

	var text string
	switch section {
	case domain.SectionKeyPoints:
		text = export.JoinBullets(a.KeyPoints)
	case domain.SectionCriticalClauses:
		lines := make([]string, 0, len(a.CriticalClauses))
		for _, c := range a.CriticalClauses {
			lines = append(lines, export.ClauseLine(c))
		}
		text = export.JoinBullets(lines)
	case domain.SectionRecommendations:
		text = export.JoinBullets(a.Recommendations)
	case domain.SectionFullSummary:
		text = a.FullSummary
	default:
		return "", domain.ErrUnknownSection
	}

	s.markCopied(sessionID, section)
	return text, nil
}

func (s *resultsService) ExportText(ctx context.Context, sessionID string) (*Export, error) {
	_, a, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &Export{
		FileName:    export.BuildFilename(a.Title, "txt"),
		ContentType: export.ContentTypeText,
		Content:     export.Text(a, s.now()),
	}, nil
}

func (s *resultsService) ExportCSV(ctx context.Context, sessionID string) (*Export, error) {
	_, a, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	data, err := export.CSV(a)
	if err != nil {
		return nil, fmt.Errorf("rendering csv export: %w", err)
	}
	return &Export{
		FileName:    export.BuildFilename(a.Title, "csv"),
		ContentType: export.ContentTypeCSV,
		Content:     data,
	}, nil
}

func (s *resultsService) ExportWorkbook(ctx context.Context, sessionID string) (*Export, error) {
	_, a, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	data, err := export.Workbook(a, s.now())
	if err != nil {
		return nil, fmt.Errorf("rendering workbook export: %w", err)
	}
	return &Export{
		FileName:    export.BuildFilename(a.Title, "xlsx"),
		ContentType: export.ContentTypeWorkbook,
		Content:     data,
	}, nil
}

func (s *resultsService) ExportDocx(ctx context.Context, sessionID string) (*port.DocxStream, error) {
	rec, a, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	key := rec.ArchiveKey()
	if s.storage == nil || key == "" {
		return nil, domain.ErrArchiveUnavailable
	}

	content, err := s.storage.Download(ctx, s.bucket, key)
	if err != nil {
		logger.WarnWithFields("archived document unavailable", logger.Fields{
			"session_id": sessionID,
			"key":        key,
			"error":      err.Error(),
		})
		return nil, domain.ErrArchiveUnavailable
	}

	fileName := rec.OriginalFileName()
	stream, err := s.summarizer.SummarizeDocx(ctx, port.FileInput{
		FileName:    fileName,
		ContentType: contentTypeForName(fileName),
		Content:     content,
	})
	if err != nil {
		return nil, err
	}
	if stream.FileName == "" {
		stream.FileName = export.BuildFilename(a.Title, "docx")
	}
	return stream, nil
}

func (s *resultsService) AnalyzeAnother(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.copies, sessionID)
	s.mu.Unlock()

	rec, err := s.mailbox.TakeOnce(ctx, sessionID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNoAnalysis), errors.Is(err, domain.ErrCorruptAnalysis):
		return nil
	default:
		return fmt.Errorf("clearing analysis: %w", err)
	}

	if key := rec.ArchiveKey(); key != "" && s.storage != nil {
		if err := s.storage.Delete(ctx, s.bucket, key); err != nil {
			logger.WarnWithFields("deleting archived document failed", logger.Fields{
				"session_id": sessionID,
				"key":        key,
				"error":      err.Error(),
			})
		}
	}
	return nil
}

func (s *resultsService) markCopied(sessionID string, section domain.Section) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for sid, m := range s.copies {
		if now.Sub(m.at) >= CopyAckWindow {
			delete(s.copies, sid)
		}
	}
	s.copies[sessionID] = copyMark{section: section, at: now}
}

func (s *resultsService) copiedSection(sessionID string) domain.Section {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.copies[sessionID]
	if !ok {
		return ""
	}
	if s.now().Sub(m.at) >= CopyAckWindow {
		delete(s.copies, sessionID)
		return ""
	}
	return m.section
}

func contentTypeForName(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ct, ok := extensionContentTypes[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
