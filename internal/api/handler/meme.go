package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/klyamkin/memehub/internal/repository"
	"github.com/klyamkin/memehub/internal/service"
)

// MemeHandler handles meme CRUD endpoints.
type MemeHandler struct {
	memeService *service.MemeService
}

// NewMemeHandler creates a new meme handler.
// Parameters:
//   - memeService: meme workflow service.
// Returns:
//   - *MemeHandler: initialized handler.
func NewMemeHandler(memeService *service.MemeService) *MemeHandler {
	return &MemeHandler{
		memeService: memeService,
	}
}

// ListMemes handles GET /memes/.
// Query parameters: skip (default 0), limit (default 10, uncapped).
func (h *MemeHandler) ListMemes(c *gin.Context) {
	skip, ok := parseQueryInt(c, "skip", 0)
	if !ok {
		return
	}
	limit, ok := parseQueryInt(c, "limit", 10)
	if !ok {
		return
	}

	memes, err := h.memeService.List(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list memes: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, memes)
}

// GetMeme handles GET /memes/:id.
func (h *MemeHandler) GetMeme(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	meme, err := h.memeService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Meme not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get meme: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, meme)
}

// CreateMeme handles POST /memes/.
// Expects multipart form fields title, description and file image_file.
func (h *MemeHandler) CreateMeme(c *gin.Context) {
	in, file, ok := bindMemeForm(c)
	if !ok {
		return
	}
	defer file.Close()

	meme, err := h.memeService.Create(c.Request.Context(), in)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, meme)
}

// UpdateMeme handles PUT /memes/:id.
// Expects the same multipart form as CreateMeme.
func (h *MemeHandler) UpdateMeme(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	in, file, ok := bindMemeForm(c)
	if !ok {
		return
	}
	defer file.Close()

	meme, err := h.memeService.Update(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Meme not found",
			})
			return
		}
		writeWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, meme)
}

// DeleteMeme handles DELETE /memes/:id. The referenced blob is not removed.
func (h *MemeHandler) DeleteMeme(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	meme, err := h.memeService.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Meme not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to delete meme: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, meme)
}

// parseQueryInt reads an integer query parameter. Non-integer values are a
// malformed request, not a silent zero.
func parseQueryInt(c *gin.Context, name string, defaultVal int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return defaultVal, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": name + " must be an integer",
		})
		return 0, false
	}
	return v, true
}

// parseID reads the :id path parameter. Non-numeric IDs are a malformed
// request, not a missing record.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Meme ID must be an integer",
		})
		return 0, false
	}
	return uint(id), true
}

// bindMemeForm validates the multipart form before any orchestration runs.
// Missing fields are rejected with 422 so a half-formed request never
// reaches the upload step.
func bindMemeForm(c *gin.Context) (*service.MemeInput, multipart.File, bool) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "title is required",
		})
		return nil, nil, false
	}

	description := c.PostForm("description")
	if description == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "description is required",
		})
		return nil, nil, false
	}

	fileHeader, err := c.FormFile("image_file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "image_file is required",
		})
		return nil, nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read upload: " + err.Error(),
		})
		return nil, nil, false
	}

	return &service.MemeInput{
		Title:       title,
		Description: description,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Image:       file,
	}, file, true
}

// writeWorkflowError maps the workflow's phase-tagged errors to responses.
func writeWorkflowError(c *gin.Context, err error) {
	var uploadErr *service.UploadError
	if errors.As(err, &uploadErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to upload image",
		})
		return
	}

	var persistErr *service.PersistError
	if errors.As(err, &persistErr) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save meme",
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": err.Error(),
	})
}
