package service

import (
	"context"
	"errors"
	"io"

	"github.com/klyamkin/memehub/internal/domain"
	"github.com/klyamkin/memehub/internal/logger"
	"github.com/klyamkin/memehub/internal/repository"
)

// ImageUploader stores image bytes with the media service and returns the
// opaque key the blob was stored under.
type ImageUploader interface {
	Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error)
}

// UploadError marks a create/update that failed in the upload phase.
// No record has been written or modified when this is returned.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return "image upload failed: " + e.Err.Error()
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PersistError marks a create/update that failed in the persistence phase,
// after the blob was already stored. The blob stays behind, orphaned; there
// is no rollback of the upload.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return "meme persistence failed: " + e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// MemeInput carries the validated fields of a create or update request.
type MemeInput struct {
	Title       string
	Description string
	Filename    string
	ContentType string
	Image       io.Reader
}

// MemeService orchestrates the two-step write path: upload the image to the
// media service first, then persist the record with the returned key. The
// two steps are never atomic across the services and no compensation is
// attempted on partial failure.
type MemeService struct {
	repo     *repository.MemeRepository
	uploader ImageUploader
}

// NewMemeService creates a new MemeService.
// Parameters:
//   - repo: meme repository.
//   - uploader: media service client.
// Returns:
//   - *MemeService: initialized service.
func NewMemeService(repo *repository.MemeRepository, uploader ImageUploader) *MemeService {
	return &MemeService{
		repo:     repo,
		uploader: uploader,
	}
}

// Create uploads the image and persists a new meme record referencing it.
// Failure in the upload phase returns *UploadError and writes nothing.
// Failure in the persistence phase returns *PersistError; the already
// stored blob is left behind.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - in: validated request fields.
// Returns:
//   - *domain.Meme: persisted record with its assigned ID.
//   - error: *UploadError, *PersistError, or nil.
func (s *MemeService) Create(ctx context.Context, in *MemeInput) (*domain.Meme, error) {
	imageURL, err := s.uploader.Upload(ctx, in.Filename, in.ContentType, in.Image)
	if err != nil {
		logger.CtxError(ctx, "Upload phase failed for create: filename=%s, err=%v", in.Filename, err)
		return nil, &UploadError{Err: err}
	}

	meme := &domain.Meme{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    imageURL,
	}
	if err := s.repo.Create(ctx, meme); err != nil {
		// Blob imageURL is now orphaned. Accepted cost of the two-step write.
		logger.CtxError(ctx, "Persist phase failed for create: image_url=%s, err=%v", imageURL, err)
		return nil, &PersistError{Err: err}
	}

	logger.CtxInfo(ctx, "Created meme: id=%d, image_url=%s", meme.ID, meme.ImageURL)
	return meme, nil
}

// Update uploads the new image, then overwrites the existing record's
// fields. A failed upload leaves the record completely unmodified. The
// previously referenced blob is never deleted.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: ID of the record to update.
//   - in: validated request fields.
// Returns:
//   - *domain.Meme: updated record.
//   - error: *UploadError, *PersistError, repository.ErrNotFound, or nil.
func (s *MemeService) Update(ctx context.Context, id uint, in *MemeInput) (*domain.Meme, error) {
	imageURL, err := s.uploader.Upload(ctx, in.Filename, in.ContentType, in.Image)
	if err != nil {
		logger.CtxError(ctx, "Upload phase failed for update: id=%d, err=%v", id, err)
		return nil, &UploadError{Err: err}
	}

	meme, err := s.repo.Update(ctx, id, &domain.Meme{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    imageURL,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The fresh blob is orphaned; not-found must stay distinct
			// from upload failure for the caller.
			return nil, err
		}
		logger.CtxError(ctx, "Persist phase failed for update: id=%d, err=%v", id, err)
		return nil, &PersistError{Err: err}
	}

	logger.CtxInfo(ctx, "Updated meme: id=%d, image_url=%s", meme.ID, meme.ImageURL)
	return meme, nil
}

// Get returns the meme for id. Pure delegation, no blob interaction.
func (s *MemeService) Get(ctx context.Context, id uint) (*domain.Meme, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns memes in store order sliced by skip/limit. The limit is not
// capped; callers pass whatever the request asked for.
func (s *MemeService) List(ctx context.Context, skip, limit int) ([]domain.Meme, error) {
	return s.repo.List(ctx, skip, limit)
}

// Delete removes the record and returns it as it was before removal.
// The referenced blob is left untouched and becomes orphaned.
func (s *MemeService) Delete(ctx context.Context, id uint) (*domain.Meme, error) {
	return s.repo.Delete(ctx, id)
}
