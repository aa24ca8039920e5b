package service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"vaultguard/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type memObjectStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: make(map[string][]byte)}
}

func (s *memObjectStore) Put(_ context.Context, key string, _ string, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *memObjectStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *memObjectStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.example.com/" + key + "?signed=1", nil
}

type memDocumentRepo struct {
	mu   sync.Mutex
	docs map[uuid.UUID]*entity.Document
}

func newMemDocumentRepo() *memDocumentRepo {
	return &memDocumentRepo{docs: make(map[uuid.UUID]*entity.Document)}
}

func (r *memDocumentRepo) Create(_ context.Context, doc *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc.ID = uuid.New()
	clone := *doc
	r.docs[doc.ID] = &clone
	return nil
}

func (r *memDocumentRepo) FindByIDAndUser(_ context.Context, id uuid.UUID, userID uuid.UUID) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.docs[id]; ok && doc.UserID == userID {
		clone := *doc
		return &clone, nil
	}
	return nil, nil
}

func (r *memDocumentRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var docs []entity.Document
	for _, doc := range r.docs {
		if doc.UserID == userID {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (r *memDocumentRepo) SearchByName(_ context.Context, userID uuid.UUID, query string) ([]entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var docs []entity.Document
	for _, doc := range r.docs {
		if doc.UserID == userID && strings.Contains(strings.ToLower(doc.Name), strings.ToLower(query)) {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

func (r *memDocumentRepo) Rename(_ context.Context, id uuid.UUID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.docs[id]; ok {
		doc.Name = name
	}
	return nil
}

func (r *memDocumentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, id)
	return nil
}

// --- tests ---

func newTestDocumentService() (*DocumentService, *memDocumentRepo, *memObjectStore) {
	repo := newMemDocumentRepo()
	store := newMemObjectStore()
	return NewDocumentService(repo, store, nil, RealClock{}), repo, store
}

func uploadTestDocument(t *testing.T, svc *DocumentService, userID uuid.UUID, name string) *entity.Document {
	t.Helper()
	doc, err := svc.Upload(context.Background(), userID, UploadInput{
		Name:        name,
		ContentType: "application/pdf",
		Size:        4,
		Body:        bytes.NewReader([]byte("data")),
	})
	require.NoError(t, err)
	return doc
}

func TestUploadAndList(t *testing.T) {
	svc, _, store := newTestDocumentService()
	userID := uuid.New()

	doc := uploadTestDocument(t, svc, userID, "report.pdf")
	assert.Equal(t, "report.pdf", doc.Name)
	assert.Contains(t, doc.StorageKey, "users/"+userID.String()+"/")
	assert.Contains(t, store.objects, doc.StorageKey)

	docs, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, doc.ID, docs[0].ID)
}

func TestUploadRequiresFile(t *testing.T) {
	svc, _, _ := newTestDocumentService()

	_, err := svc.Upload(context.Background(), uuid.New(), UploadInput{Name: ""})
	var validation *ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestSearchScopedToOwner(t *testing.T) {
	svc, _, _ := newTestDocumentService()
	owner := uuid.New()
	other := uuid.New()

	uploadTestDocument(t, svc, owner, "tax-return.pdf")
	uploadTestDocument(t, svc, other, "tax-return-copy.pdf")

	docs, err := svc.Search(context.Background(), owner, "tax")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "tax-return.pdf", docs[0].Name)
}

func TestDownloadURLOwnership(t *testing.T) {
	svc, _, _ := newTestDocumentService()
	owner := uuid.New()

	doc := uploadTestDocument(t, svc, owner, "report.pdf")

	url, err := svc.DownloadURL(context.Background(), owner, doc.ID, RequestMeta{})
	require.NoError(t, err)
	assert.Contains(t, url, doc.StorageKey)

	_, err = svc.DownloadURL(context.Background(), uuid.New(), doc.ID, RequestMeta{})
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestRename(t *testing.T) {
	svc, repo, _ := newTestDocumentService()
	owner := uuid.New()

	doc := uploadTestDocument(t, svc, owner, "old.pdf")
	renamed, err := svc.Rename(context.Background(), owner, doc.ID, "new.pdf", RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "new.pdf", renamed.Name)

	stored, err := repo.FindByIDAndUser(context.Background(), doc.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "new.pdf", stored.Name)
}

func TestDeleteRemovesBlobAndRecord(t *testing.T) {
	svc, repo, store := newTestDocumentService()
	owner := uuid.New()

	doc := uploadTestDocument(t, svc, owner, "report.pdf")
	require.NoError(t, svc.Delete(context.Background(), owner, doc.ID, RequestMeta{}))

	assert.NotContains(t, store.objects, doc.StorageKey)
	stored, err := repo.FindByIDAndUser(context.Background(), doc.ID, owner)
	require.NoError(t, err)
	assert.Nil(t, stored)

	err = svc.Delete(context.Background(), owner, doc.ID, RequestMeta{})
	assert.ErrorIs(t, err, ErrDocumentNotFound)
}
