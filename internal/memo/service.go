package memo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/picmemo/service/internal/config"
	"github.com/picmemo/service/internal/storage"
)

// metadataStore is the slice of Repository the service depends on.
type metadataStore interface {
	Create(ctx context.Context, ownerID, title, description, objectKey string) (*Memo, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*Memo, error)
	ListByOwner(ctx context.Context, ownerID string, offset, limit int) ([]*Memo, error)
	CountByOwner(ctx context.Context, ownerID string) (int64, error)
	Delete(ctx context.Context, id, ownerID string) error
}

// Page is one page of a memo listing.
type Page struct {
	Content       []*Memo `json:"content"`
	Page          int     `json:"page"`
	Size          int     `json:"size"`
	TotalElements int64   `json:"totalElements"`
	TotalPages    int     `json:"totalPages"`
}

// Service coordinates memo lifecycle across the metadata store and the
// object store. Creation stores the object first and records metadata only
// on success; deletion removes the object first and forgets the row only
// after, so a failed delete always leaves a retryable row behind.
type Service struct {
	repo   metadataStore
	store  storage.Storage
	policy config.UploadPolicy
}

// NewService creates a new memo Service.
func NewService(repo metadataStore, store storage.Storage, policy config.UploadPolicy) *Service {
	return &Service{repo: repo, store: store, policy: policy}
}

// Create validates the upload, streams it to the object store under a fresh
// per-owner key, and persists the memo. No metadata row exists for an
// object that was never stored.
func (s *Service) Create(ctx context.Context, ownerID, title, description string, upload *Upload, content io.Reader, contentType string) (*Memo, error) {
	if err := ValidateUpload(upload, s.policy); err != nil {
		return nil, err
	}

	ext, err := fileExtension(upload.Filename)
	if err != nil {
		return nil, err
	}
	key := storage.ObjectKey(ownerID, ext)

	if err := s.store.Upload(ctx, key, content, upload.Size, contentType); err != nil {
		return nil, err
	}

	m, err := s.repo.Create(ctx, ownerID, title, description, key)
	if err != nil {
		// The object is already durable; remove it so it cannot leak.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			log.Printf("memo: orphaned object %q after failed insert: %v", key, delErr)
		}
		return nil, fmt.Errorf("persist memo: %w", err)
	}

	log.Printf("memo: created id=%s ownerId=%s title=%q", m.ID, ownerID, m.Title)
	return m, nil
}

// List returns one page of the owner's memos, newest first.
func (s *Service) List(ctx context.Context, ownerID string, page, size int) (*Page, error) {
	memos, err := s.repo.ListByOwner(ctx, ownerID, page*size, size)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}

	return &Page{
		Content:       memos,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// Get returns the memo scoped to its owner. A memo belonging to another
// owner is reported exactly like a nonexistent one.
func (s *Service) Get(ctx context.Context, id, ownerID string) (*Memo, error) {
	return s.repo.GetByIDAndOwner(ctx, id, ownerID)
}

// Delete removes the memo's object and then its row, in that order. If the
// object delete fails the row stays intact so the delete can be retried;
// the metadata row is the source of truth for pending cleanup.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	m, err := s.repo.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.store.Delete(ctx, m.ObjectKey); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	log.Printf("memo: deleted id=%s ownerId=%s key=%s", id, ownerID, m.ObjectKey)
	return nil
}

// Serve resolves ownership of the memo and opens its object as a stream.
// The caller owns the returned body and must close it on every exit path.
func (s *Service) Serve(ctx context.Context, callerID, memoID string) (*storage.DownloadResult, error) {
	m, err := s.repo.GetByIDAndOwner(ctx, memoID, callerID)
	if err != nil {
		return nil, err
	}
	return s.store.Download(ctx, m.ObjectKey)
}

// IsNotFound returns true when the error indicates a missing (or not owned)
// memo or object.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, storage.ErrNotFound)
}
