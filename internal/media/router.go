package media

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/klyamkin/memehub/internal/api/middleware"
	"github.com/klyamkin/memehub/internal/storage"
)

// SetupRouter configures the Gin router for the media service.
// Parameters:
//   - store: object storage backend.
//   - mode: gin mode (debug, release, test).
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(store storage.ObjectStorage, mode string) *gin.Engine {
	switch mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger("media"))

	h := NewHandler(store)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/upload", h.Upload)
	r.GET("/files/:filename", h.GetFile)

	return r
}
