package repository

import (
	"context"
	"errors"

	"github.com/klyamkin/memehub/internal/domain"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no meme exists for the requested ID.
// Callers translate it into a 404; it is never a hard failure.
var ErrNotFound = errors.New("meme not found")

// MemeRepository handles meme data operations.
type MemeRepository struct {
	db *gorm.DB
}

// NewMemeRepository creates a new MemeRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MemeRepository: repository instance bound to db.
func NewMemeRepository(db *gorm.DB) *MemeRepository {
	return &MemeRepository{db: db}
}

// Create inserts a new meme record and assigns its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - meme: meme record to persist; ID is populated on success.
// Returns:
//   - error: non-nil if the insert fails.
func (r *MemeRepository) Create(ctx context.Context, meme *domain.Meme) error {
	return r.db.WithContext(ctx).Create(meme).Error
}

// GetByID retrieves a meme by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: meme ID.
// Returns:
//   - *domain.Meme: meme record if found.
//   - error: ErrNotFound if absent, otherwise the underlying failure.
func (r *MemeRepository) GetByID(ctx context.Context, id uint) (*domain.Meme, error) {
	var meme domain.Meme
	if err := r.db.WithContext(ctx).First(&meme, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &meme, nil
}

// List retrieves memes in primary-key order with offset/limit pagination.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - skip: number of records to skip.
//   - limit: maximum number of records to return.
// Returns:
//   - []domain.Meme: matching meme records.
//   - error: non-nil if the query fails.
func (r *MemeRepository) List(ctx context.Context, skip, limit int) ([]domain.Meme, error) {
	memes := []domain.Meme{}
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&memes).Error; err != nil {
		return nil, err
	}
	return memes, nil
}

// Update overwrites title, description and image URL of an existing record.
// It never creates a record for an unknown ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: ID of the record to overwrite.
//   - meme: field values to apply.
// Returns:
//   - *domain.Meme: the updated record.
//   - error: ErrNotFound if no record exists for id.
func (r *MemeRepository) Update(ctx context.Context, id uint, meme *domain.Meme) (*domain.Meme, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Title = meme.Title
	existing.Description = meme.Description
	existing.ImageURL = meme.ImageURL

	if err := r.db.WithContext(ctx).Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a meme by ID and returns the record as it was before removal.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: meme ID to delete.
// Returns:
//   - *domain.Meme: the deleted record.
//   - error: ErrNotFound if no record exists for id.
func (r *MemeRepository) Delete(ctx context.Context, id uint) (*domain.Meme, error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Delete(&domain.Meme{}, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

// Count returns the total number of meme records.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - int64: number of records.
//   - error: non-nil if the query fails.
func (r *MemeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Meme{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
