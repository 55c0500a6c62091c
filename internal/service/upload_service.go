package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"lexbrief/internal/config"
	"lexbrief/internal/domain"
	"lexbrief/internal/logger"
	"lexbrief/internal/port"
)

// SubmitInput is the DTO for a document submission.
type SubmitInput struct {
	SessionID string
	Profile   string
	File      multipart.File
	Header    *multipart.FileHeader
}

// SubmitResult describes a stored analysis.
type SubmitResult struct {
	FileName   string    `json:"fileName"`
	Profile    string    `json:"profile"`
	UploadedAt time.Time `json:"uploadedAt"`
	Archived   bool      `json:"archived"`
}

// UploadStatus is the session's submission state.
type UploadStatus struct {
	Submitting bool       `json:"submitting"`
	FileName   string     `json:"fileName,omitempty"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
}

// UploadService defines the upload flow contract.
type UploadService interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
	Reset(ctx context.Context, sessionID string) error
	Status(ctx context.Context, sessionID string) (UploadStatus, error)
	Profiles() []domain.UploadProfile
}

type uploadService struct {
	summarizer port.Summarizer
	mailbox    port.Mailbox
	tracker    port.SubmissionTracker
	storage    port.ObjectStorage
	cfg        *config.UploadConfig
	bucket     string
	now        func() time.Time
}

// NewUploadService creates a new UploadService. A nil storage disables the
// document archive.
func NewUploadService(
	summarizer port.Summarizer,
	mailbox port.Mailbox,
	tracker port.SubmissionTracker,
	storage port.ObjectStorage,
	cfg *config.UploadConfig,
	bucket string,
) UploadService {
	return NewUploadServiceWithClock(summarizer, mailbox, tracker, storage, cfg, bucket, time.Now)
}

// NewUploadServiceWithClock creates an UploadService with an injected clock (for testing).
func NewUploadServiceWithClock(
	summarizer port.Summarizer,
	mailbox port.Mailbox,
	tracker port.SubmissionTracker,
	storage port.ObjectStorage,
	cfg *config.UploadConfig,
	bucket string,
	now func() time.Time,
) UploadService {
	return &uploadService{
		summarizer: summarizer,
		mailbox:    mailbox,
		tracker:    tracker,
		storage:    storage,
		cfg:        cfg,
		bucket:     bucket,
		now:        now,
	}
}

func (s *uploadService) Profiles() []domain.UploadProfile {
	out := make([]domain.UploadProfile, len(s.cfg.Profiles))
	copy(out, s.cfg.Profiles)
	return out
}

func (s *uploadService) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	profile, ok := s.cfg.Profile(input.Profile)
	if !ok {
		return nil, domain.ErrUnknownProfile
	}
	if input.File == nil || input.Header == nil || input.Header.Filename == "" {
		return nil, domain.ErrMissingFile
	}

	fileName := filepath.Base(input.Header.Filename)
	if input.Header.Size > s.cfg.MaxFileSizeBytes {
		return nil, domain.NewFileTooLargeError(s.cfg.MaxFileSizeBytes)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	if !profile.Allows(ext) {
		return nil, domain.ErrUnsupportedFileType
	}

	// Header.Size comes from the client; the read is bounded regardless.
	content, err := io.ReadAll(io.LimitReader(input.File, s.cfg.MaxFileSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading upload: %w", err)
	}
	if int64(len(content)) > s.cfg.MaxFileSizeBytes {
		return nil, domain.NewFileTooLargeError(s.cfg.MaxFileSizeBytes)
	}

	// Once sent, the request runs to completion even if the page request goes away.
	remoteCtx := context.WithoutCancel(ctx)

	sub := port.Submission{ID: uuid.NewString(), FileName: fileName, StartedAt: s.now().UTC()}
	if err := s.tracker.Begin(remoteCtx, input.SessionID, sub); err != nil {
		return nil, err
	}
	defer s.finish(remoteCtx, input.SessionID, sub.ID)

	logger.InfoWithFields("submitting document", logger.Fields{
		"session_id":    input.SessionID,
		"submission_id": sub.ID,
		"profile":       profile.Name,
		"file_name":     fileName,
		"size":          len(content),
	})

	file := port.FileInput{
		FileName:    fileName,
		ContentType: contentTypeFor(input.Header, ext),
		Content:     content,
	}

	payload, err := s.summarizer.Summarize(remoteCtx, profile, file)
	if err != nil {
		logger.WarnWithFields("analysis request failed", logger.Fields{
			"session_id": input.SessionID,
			"profile":    profile.Name,
			"error":      err.Error(),
		})
		if !s.isCurrent(remoteCtx, input.SessionID, sub.ID) {
			return nil, domain.ErrSubmissionAbandoned
		}
		return nil, err
	}

	uploadedAt := s.now().UTC()
	rec := domain.NewAnalysisRecord(payload, fileName, uploadedAt)
	archiveKey := s.archive(remoteCtx, input.SessionID, file)
	if archiveKey != "" {
		rec.SetArchiveKey(archiveKey)
	}

	prev, err := s.tracker.Commit(remoteCtx, input.SessionID, sub.ID, rec)
	if err != nil {
		if archiveKey != "" {
			s.deleteArchive(remoteCtx, archiveKey)
		}
		if errors.Is(err, domain.ErrSubmissionAbandoned) {
			logger.InfoWithFields("discarding abandoned analysis", logger.Fields{"session_id": input.SessionID})
			return nil, err
		}
		return nil, fmt.Errorf("storing analysis: %w", err)
	}
	if prevArchive := prev.ArchiveKey(); prevArchive != "" && prevArchive != archiveKey {
		s.deleteArchive(remoteCtx, prevArchive)
	}

	logger.InfoWithFields("analysis stored", logger.Fields{
		"session_id": input.SessionID,
		"file_name":  fileName,
		"archived":   archiveKey != "",
	})

	return &SubmitResult{
		FileName:   fileName,
		Profile:    profile.Name,
		UploadedAt: uploadedAt,
		Archived:   archiveKey != "",
	}, nil
}

// Reset abandons the in-flight submission before clearing the slot, so a
// result that lands afterwards is refused by the tracker.
func (s *uploadService) Reset(ctx context.Context, sessionID string) error {
	if err := s.tracker.Abandon(ctx, sessionID); err != nil {
		return fmt.Errorf("abandoning submission: %w", err)
	}

	rec, err := s.mailbox.TakeOnce(ctx, sessionID)
	switch {
	case err == nil:
		if key := rec.ArchiveKey(); key != "" {
			s.deleteArchive(ctx, key)
		}
	case errors.Is(err, domain.ErrNoAnalysis), errors.Is(err, domain.ErrCorruptAnalysis):
	default:
		return fmt.Errorf("clearing analysis: %w", err)
	}

	logger.DebugWithFields("upload reset", logger.Fields{"session_id": sessionID})
	return nil
}

func (s *uploadService) Status(ctx context.Context, sessionID string) (UploadStatus, error) {
	sub, err := s.tracker.Current(ctx, sessionID)
	if err != nil {
		return UploadStatus{}, fmt.Errorf("reading submission state: %w", err)
	}
	if sub == nil {
		return UploadStatus{}, nil
	}
	started := sub.StartedAt
	return UploadStatus{Submitting: true, FileName: sub.FileName, StartedAt: &started}, nil
}

func (s *uploadService) finish(ctx context.Context, sessionID, submissionID string) {
	if err := s.tracker.Finish(ctx, sessionID, submissionID); err != nil {
		logger.WarnWithFields("clearing submission state failed", logger.Fields{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}
}

// isCurrent reports whether submissionID is still in flight. A tracker error
// counts as current so the remote error reaches the caller.
func (s *uploadService) isCurrent(ctx context.Context, sessionID, submissionID string) bool {
	sub, err := s.tracker.Current(ctx, sessionID)
	if err != nil {
		return true
	}
	return sub != nil && sub.ID == submissionID
}

// archive stores the original document for the DOCX export. Failures are
// logged and leave the export unavailable.
func (s *uploadService) archive(ctx context.Context, sessionID string, file port.FileInput) string {
	if s.storage == nil {
		return ""
	}
	key := fmt.Sprintf("sessions/%s/%s/%s", sessionID, uuid.New(), file.FileName)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.bucket,
		Key:         key,
		Body:        bytes.NewReader(file.Content),
		ContentType: file.ContentType,
		Size:        int64(len(file.Content)),
	})
	if err != nil {
		logger.WarnWithFields("archiving original document failed", logger.Fields{
			"session_id": sessionID,
			"key":        key,
			"error":      err.Error(),
		})
		return ""
	}
	return key
}

func (s *uploadService) deleteArchive(ctx context.Context, key string) {
	if s.storage == nil {
		return
	}
	if err := s.storage.Delete(ctx, s.bucket, key); err != nil {
		logger.WarnWithFields("deleting archived document failed", logger.Fields{
			"key":   key,
			"error": err.Error(),
		})
	}
}

var extensionContentTypes = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"doc":  "application/msword",
	"txt":  "text/plain",
}

func contentTypeFor(header *multipart.FileHeader, ext string) string {
	if ct, ok := extensionContentTypes[ext]; ok {
		return ct
	}
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
