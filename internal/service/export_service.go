package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ngx/coaching/internal/domain"
	"ngx/coaching/internal/export"
	"ngx/coaching/internal/repository"
	"ngx/coaching/internal/storage"
)

var (
	ErrExportNotFound     = errors.New("export not found")
	ErrExportAccessDenied = errors.New("access denied to this export")
	ErrNoExportFormats    = errors.New("at least one export format is required")
)

// ExportResult is a stored export together with a temporary download link.
type ExportResult struct {
	Record *domain.ExportRecord `json:"export"`
	URL    string               `json:"url"`
}

type ExportService interface {
	// ExportProgram validates the program, renders it in every format and
	// uploads the files.
	ExportProgram(ctx context.Context, trainerID, programID primitive.ObjectID, formats []export.Format) ([]ExportResult, error)
	ExportTemplate(ctx context.Context, trainerID, templateID primitive.ObjectID, formats []export.Format) ([]ExportResult, error)
	ListExports(ctx context.Context, trainerID, sourceID primitive.ObjectID) ([]domain.ExportRecord, error)
	DownloadURL(ctx context.Context, trainerID, exportID primitive.ObjectID) (string, error)
}

// ExportOptions holds the storage settings of the export service.
type ExportOptions struct {
	KeyPrefix string
	URLExpiry time.Duration
	Now       func() time.Time // defaults to time.Now
}

// exportService implements the ExportService interface.
type exportService struct {
	exportRepo repository.ExportRepository
	programs   ProgramService
	templates  TemplateService
	storage    storage.FileStorage
	opts       ExportOptions
	logger     *slog.Logger
}

func NewExportService(exportRepo repository.ExportRepository, programs ProgramService, templates TemplateService, fileStorage storage.FileStorage, opts ExportOptions, logger *slog.Logger) ExportService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = "exports"
	}
	return &exportService{
		exportRepo: exportRepo,
		programs:   programs,
		templates:  templates,
		storage:    fileStorage,
		opts:       opts,
		logger:     logger,
	}
}

func (s *exportService) ExportProgram(ctx context.Context, trainerID, programID primitive.ObjectID, formats []export.Format) ([]ExportResult, error) {
	p, err := s.programs.GetProgram(ctx, trainerID, programID)
	if err != nil {
		return nil, err
	}
	if err := checkProgram(*p); err != nil {
		return nil, err
	}
	doc := export.FromProgram(*p, s.opts.Now())
	return s.export(ctx, trainerID, programID, domain.ExportSourceProgram, doc, formats)
}

func (s *exportService) ExportTemplate(ctx context.Context, trainerID, templateID primitive.ObjectID, formats []export.Format) ([]ExportResult, error) {
	t, err := s.templates.GetTemplate(ctx, trainerID, templateID)
	if err != nil {
		return nil, err
	}
	doc := export.FromTemplate(*t, s.opts.Now())
	return s.export(ctx, trainerID, templateID, domain.ExportSourceTemplate, doc, formats)
}

func (s *exportService) export(ctx context.Context, trainerID, sourceID primitive.ObjectID, kind domain.ExportSource, doc export.Document, formats []export.Format) ([]ExportResult, error) {
	if len(formats) == 0 {
		return nil, ErrNoExportFormats
	}
	artifacts, err := export.RenderAll(ctx, doc, formats...)
	if err != nil {
		return nil, err
	}

	results := make([]ExportResult, 0, len(artifacts))
	for _, a := range artifacts {
		key := s.objectKey(trainerID, sourceID, a.Format)
		if err := s.storage.PutObject(ctx, key, a.Format.ContentType(), bytes.NewReader(a.Data), int64(len(a.Data))); err != nil {
			return nil, fmt.Errorf("upload %s export: %w", a.Format, err)
		}

		record := &domain.ExportRecord{
			TrainerID:  trainerID,
			SourceID:   sourceID,
			SourceKind: kind,
			Format:     string(a.Format),
			ObjectKey:  key,
			FileName:   doc.FileName(a.Format),
			Size:       int64(len(a.Data)),
			CreatedAt:  s.opts.Now(),
		}
		if _, err := s.exportRepo.Create(ctx, record); err != nil {
			// Leave no orphaned file behind when the metadata cannot be stored.
			if delErr := s.storage.DeleteObject(ctx, key); delErr != nil {
				s.logger.WarnContext(ctx, "Failed to clean up export object", slog.String("key", key), slog.Any("error", delErr))
			}
			return nil, err
		}

		url, err := s.storage.GeneratePresignedDownloadURL(ctx, key, s.opts.URLExpiry)
		if err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "Export stored",
			slog.String("source_id", sourceID.Hex()),
			slog.String("format", string(a.Format)),
			slog.Int64("size", record.Size))
		results = append(results, ExportResult{Record: record, URL: url})
	}
	return results, nil
}

func (s *exportService) objectKey(trainerID, sourceID primitive.ObjectID, f export.Format) string {
	return path.Join(s.opts.KeyPrefix, trainerID.Hex(), sourceID.Hex(), uuid.NewString()+f.Extension())
}

func (s *exportService) ListExports(ctx context.Context, trainerID, sourceID primitive.ObjectID) ([]domain.ExportRecord, error) {
	records, err := s.exportRepo.ListBySource(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	owned := make([]domain.ExportRecord, 0, len(records))
	for _, r := range records {
		if r.TrainerID == trainerID {
			owned = append(owned, r)
		}
	}
	return owned, nil
}

func (s *exportService) DownloadURL(ctx context.Context, trainerID, exportID primitive.ObjectID) (string, error) {
	record, err := s.exportRepo.GetByID(ctx, exportID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrExportNotFound
		}
		return "", err
	}
	if record.TrainerID != trainerID {
		return "", ErrExportAccessDenied
	}
	return s.storage.GeneratePresignedDownloadURL(ctx, record.ObjectKey, s.opts.URLExpiry)
}
