package api

import (
	"github.com/gin-gonic/gin"
	"github.com/klyamkin/memehub/internal/api/handler"
	"github.com/klyamkin/memehub/internal/api/middleware"
	"github.com/klyamkin/memehub/internal/service"
)

// SetupRouter configures the Gin router for the meme API service.
// Parameters:
//   - memeService: meme workflow service.
//   - mode: gin mode (debug, release, test).
//   - cors: CORS configuration.
// Returns:
//   - *gin.Engine: configured router.
func SetupRouter(memeService *service.MemeService, mode string, cors middleware.CORSConfig) *gin.Engine {
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
	r.Use(middleware.RequestLogger("api"))
	r.Use(middleware.CORS(cors))

	memeHandler := handler.NewMemeHandler(memeService)

	r.GET("/health", handler.Health)

	memes := r.Group("/memes")
	{
		memes.GET("/", memeHandler.ListMemes)
		memes.GET("/:id", memeHandler.GetMeme)
		memes.POST("/", memeHandler.CreateMeme)
		memes.PUT("/:id", memeHandler.UpdateMeme)
		memes.DELETE("/:id", memeHandler.DeleteMeme)
	}

	return r
}
