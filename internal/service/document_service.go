package service

import (
	"context"
	"io"
	"strings"
	"time"

	"vaultguard/internal/entity"
	"vaultguard/internal/repository"
	"vaultguard/internal/storage"

	"github.com/google/uuid"
)

const downloadURLTTL = 15 * time.Minute

type UploadInput struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
	UserAgent   string
	IPAddress   *string
}

type RequestMeta struct {
	UserAgent string
	IPAddress *string
}

type DocumentService struct {
	documents repository.DocumentRepository
	store     storage.ObjectStore
	activity  ActivityRecorder
	clock     Clock
}

func NewDocumentService(
	documents repository.DocumentRepository,
	store storage.ObjectStore,
	activity ActivityRecorder,
	clock Clock,
) *DocumentService {
	return &DocumentService{
		documents: documents,
		store:     store,
		activity:  activity,
		clock:     clock,
	}
}

func (s *DocumentService) Upload(ctx context.Context, userID uuid.UUID, input UploadInput) (*entity.Document, error) {
	if strings.TrimSpace(input.Name) == "" || input.Body == nil {
		return nil, NewValidationError("No file uploaded", map[string]string{
			"file": "File is required",
		})
	}

	key := storage.StorageKey(userID)
	if err := s.store.Put(ctx, key, input.ContentType, input.Body); err != nil {
		return nil, err
	}

	doc := &entity.Document{
		UserID:      userID,
		Name:        input.Name,
		StorageKey:  key,
		ContentType: input.ContentType,
		Size:        input.Size,
		UploadedAt:  s.now(),
	}
	if err := s.documents.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.record(ctx, userID, entity.ActivityUpload, &doc.ID, input.UserAgent, input.IPAddress)
	return doc, nil
}

func (s *DocumentService) List(ctx context.Context, userID uuid.UUID) ([]entity.Document, error) {
	return s.documents.ListByUser(ctx, userID)
}

func (s *DocumentService) Search(ctx context.Context, userID uuid.UUID, query string) ([]entity.Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, NewValidationError("Search query is required", map[string]string{
			"query": "Search query is required",
		})
	}
	return s.documents.SearchByName(ctx, userID, query)
}

// DownloadURL returns a presigned URL for the caller to fetch the blob
// directly from object storage.
func (s *DocumentService) DownloadURL(ctx context.Context, userID uuid.UUID, docID uuid.UUID, meta RequestMeta) (string, error) {
	doc, err := s.documents.FindByIDAndUser(ctx, docID, userID)
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", ErrDocumentNotFound
	}
	url, err := s.store.PresignGet(ctx, doc.StorageKey, downloadURLTTL)
	if err != nil {
		return "", err
	}
	s.record(ctx, userID, entity.ActivityDownload, &doc.ID, meta.UserAgent, meta.IPAddress)
	return url, nil
}

func (s *DocumentService) Rename(ctx context.Context, userID uuid.UUID, docID uuid.UUID, name string, meta RequestMeta) (*entity.Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("New name is required", map[string]string{
			"name": "New name is required",
		})
	}
	doc, err := s.documents.FindByIDAndUser(ctx, docID, userID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	if err := s.documents.Rename(ctx, doc.ID, name); err != nil {
		return nil, err
	}
	doc.Name = name

	s.record(ctx, userID, entity.ActivityRename, &doc.ID, meta.UserAgent, meta.IPAddress)
	return doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, userID uuid.UUID, docID uuid.UUID, meta RequestMeta) error {
	doc, err := s.documents.FindByIDAndUser(ctx, docID, userID)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrDocumentNotFound
	}
	if err := s.store.Delete(ctx, doc.StorageKey); err != nil {
		return err
	}
	if err := s.documents.Delete(ctx, doc.ID); err != nil {
		return err
	}

	s.record(ctx, userID, entity.ActivityDelete, &doc.ID, meta.UserAgent, meta.IPAddress)
	return nil
}

func (s *DocumentService) record(ctx context.Context, userID uuid.UUID, activityType entity.ActivityType, docID *uuid.UUID, userAgent string, ip *string) {
	if s.activity == nil {
		return
	}
	s.activity.Record(ctx, userID, activityType, docID, userAgent, ip)
}

func (s *DocumentService) now() time.Time {
	if s.clock == nil {
		return time.Now()
	}
	return s.clock.Now()
}
