package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/klyamkin/memehub/internal/repository"
)

// fakeUploader records the upload it receives and returns a canned result.
type fakeUploader struct {
	key   string
	err   error
	calls int

	gotFilename    string
	gotContentType string
	gotBody        []byte
}

func (f *fakeUploader) Upload(ctx context.Context, filename, contentType string, data io.Reader) (string, error) {
	f.calls++
	f.gotFilename = filename
	f.gotContentType = contentType
	if data != nil {
		f.gotBody, _ = io.ReadAll(data)
	}
	if f.err != nil {
		return "", f.err
	}
	return f.key, nil
}

func newTestService(t *testing.T, uploader ImageUploader) (*MemeService, *repository.MemeRepository) {
	t.Helper()
	repo := repository.NewMemeRepository(repository.NewTestDB(t))
	return NewMemeService(repo, uploader), repo
}

func testInput() *MemeInput {
	return &MemeInput{
		Title:       "Test Meme",
		Description: "A test meme description",
		Filename:    "test_image.jpg",
		ContentType: "image/jpeg",
		Image:       strings.NewReader("This is a test image content."),
	}
}

func TestMemeService_Create_Success(t *testing.T) {
	uploader := &fakeUploader{key: "test_image_url"}
	svc, _ := newTestService(t, uploader)

	meme, err := svc.Create(context.Background(), testInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if meme.ID == 0 {
		t.Error("expected a freshly assigned ID")
	}
	if meme.Title != "Test Meme" || meme.Description != "A test meme description" {
		t.Errorf("unexpected record: %+v", meme)
	}
	if meme.ImageURL != "test_image_url" {
		t.Errorf("expected image_url to equal the uploader's reference, got %q", meme.ImageURL)
	}

	if uploader.calls != 1 {
		t.Errorf("expected exactly one upload call, got %d", uploader.calls)
	}
	if uploader.gotFilename != "test_image.jpg" || uploader.gotContentType != "image/jpeg" {
		t.Errorf("upload received filename=%q contentType=%q", uploader.gotFilename, uploader.gotContentType)
	}
	if !bytes.Equal(uploader.gotBody, []byte("This is a test image content.")) {
		t.Errorf("upload received wrong bytes: %q", uploader.gotBody)
	}
}

func TestMemeService_Create_UploadFailureWritesNothing(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("boom")}
	svc, repo := newTestService(t, uploader)

	_, err := svc.Create(context.Background(), testInput())

	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("expected *UploadError, got %v", err)
	}

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("no record may be persisted after a failed upload, count=%d", count)
	}
}

func TestMemeService_Create_PersistFailureIsTaggedDistinctly(t *testing.T) {
	uploader := &fakeUploader{key: "orphaned_key"}
	repo := repository.NewMemeRepository(repository.NewTestDB(t))
	svc := NewMemeService(repo, uploader)

	// Cancelled context fails the insert after the upload already succeeded.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Create(ctx, testInput())

	var persistErr *PersistError
	if !errors.As(err, &persistErr) {
		t.Fatalf("expected *PersistError, got %v", err)
	}
	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		t.Error("persist failure must not be tagged as an upload failure")
	}
	if uploader.calls != 1 {
		t.Errorf("expected the upload to have completed, calls=%d", uploader.calls)
	}
}

func TestMemeService_Update_Success(t *testing.T) {
	uploader := &fakeUploader{key: "test_image_url"}
	svc, _ := newTestService(t, uploader)
	ctx := context.Background()

	created, err := svc.Create(ctx, testInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	uploader.key = "updated_image_url"
	updated, err := svc.Update(ctx, created.ID, &MemeInput{
		Title:       "Updated Title",
		Description: "Updated Description",
		Filename:    "updated_image.jpg",
		ContentType: "image/jpeg",
		Image:       strings.NewReader("This is updated image content."),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("ID must not change on update: got %d, want %d", updated.ID, created.ID)
	}
	if updated.Title != "Updated Title" || updated.Description != "Updated Description" {
		t.Errorf("unexpected updated record: %+v", updated)
	}
	if updated.ImageURL != "updated_image_url" {
		t.Errorf("expected the new blob reference, got %q", updated.ImageURL)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != "Updated Title" || got.ImageURL != "updated_image_url" {
		t.Errorf("update not visible on read: %+v", got)
	}
}

func TestMemeService_Update_UploadFailureLeavesRecordIntact(t *testing.T) {
	uploader := &fakeUploader{key: "test_image_url"}
	svc, _ := newTestService(t, uploader)
	ctx := context.Background()

	created, err := svc.Create(ctx, testInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	uploader.err = errors.New("media service down")
	_, err = svc.Update(ctx, created.ID, testInput())

	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("expected *UploadError, got %v", err)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Title != created.Title || got.ImageURL != created.ImageURL {
		t.Errorf("record modified despite failed upload: %+v", got)
	}
}

func TestMemeService_Update_NotFound(t *testing.T) {
	uploader := &fakeUploader{key: "test_image_url"}
	svc, repo := newTestService(t, uploader)
	ctx := context.Background()

	_, err := svc.Update(ctx, 123, testInput())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected repository.ErrNotFound, got %v", err)
	}

	var uploadErr *UploadError
	if errors.As(err, &uploadErr) {
		t.Error("not-found must be signaled distinctly from upload failure")
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Update on missing ID must not create a record, count=%d", count)
	}
}

func TestMemeService_DeleteThenGet(t *testing.T) {
	uploader := &fakeUploader{key: "test_image_url"}
	svc, _ := newTestService(t, uploader)
	ctx := context.Background()

	created, err := svc.Create(ctx, testInput())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	deleted, err := svc.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if deleted.ID != created.ID || deleted.ImageURL != created.ImageURL {
		t.Errorf("expected pre-delete record back, got %+v", deleted)
	}

	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected not-found after delete, got %v", err)
	}
}

func TestMemeService_List(t *testing.T) {
	uploader := &fakeUploader{key: "k"}
	svc, _ := newTestService(t, uploader)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if _, err := svc.Create(ctx, testInput()); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}

	memes, err := svc.List(ctx, 0, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(memes) != 10 {
		t.Errorf("expected at most 10 memes, got %d", len(memes))
	}

	rest, err := svc.List(ctx, 10, 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rest) != 2 {
		t.Errorf("expected 2 remaining memes, got %d", len(rest))
	}
	if len(rest) > 0 && rest[0].ID != memes[len(memes)-1].ID+1 {
		t.Errorf("skip must exclude the first records in store order, got first ID %d", rest[0].ID)
	}
}
