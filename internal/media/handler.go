package media

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klyamkin/memehub/internal/logger"
	"github.com/klyamkin/memehub/internal/storage"
)

// Handler exposes the blob upload/download endpoints. It owns no business
// data; everything passes straight through to object storage.
type Handler struct {
	store storage.ObjectStorage
}

// NewHandler creates a new media handler.
// Parameters:
//   - store: object storage backend.
// Returns:
//   - *Handler: initialized handler.
func NewHandler(store storage.ObjectStorage) *Handler {
	return &Handler{store: store}
}

// uploadResponse is the body returned by POST /upload.
type uploadResponse struct {
	Filename string `json:"filename"`
}

// Upload handles POST /upload.
// The raw uploaded filename is used verbatim as the object key, so two
// uploads sharing a filename overwrite each other. Known weakness, kept
// as documented behavior.
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "file is required",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read upload: " + err.Error(),
		})
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	contentType := fileHeader.Header.Get("Content-Type")
	start := time.Now()

	if err := h.store.Upload(ctx, fileHeader.Filename, file, fileHeader.Size, contentType); err != nil {
		logger.CtxError(ctx, "Object store rejected upload: key=%s, err=%v", fileHeader.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store file: " + err.Error(),
		})
		return
	}

	logger.With(logger.Fields{
		logger.FieldSize:       fileHeader.Size,
		logger.FieldDurationMs: time.Since(start).Milliseconds(),
	}).Info(ctx, "Stored object: key=%s", fileHeader.Filename)

	c.JSON(http.StatusOK, uploadResponse{Filename: fileHeader.Filename})
}

// GetFile handles GET /files/:filename and streams the object back.
func (h *Handler) GetFile(c *gin.Context) {
	filename := c.Param("filename")

	ctx := c.Request.Context()
	obj, err := h.store.Download(ctx, filename)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "File not found",
			})
			return
		}
		logger.CtxError(ctx, "Object store read failed: key=%s, err=%v", filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read file: " + err.Error(),
		})
		return
	}
	defer obj.Close()

	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", obj, nil)
}
