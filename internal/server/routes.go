package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/xpanvictor/vidquiz/internal/config"
	"github.com/xpanvictor/vidquiz/internal/domains/video"
	"github.com/xpanvictor/vidquiz/internal/handlers"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
)

// Dependencies holds what the HTTP surface needs.
type Dependencies struct {
	VideoService video.VideoService
	Logger       *Logger.Logger
	Configs      *config.Settings
}

func NewServerDependencies(
	videoService video.VideoService,
	config *config.Settings,
	logger *Logger.Logger,
) Dependencies {
	return Dependencies{
		VideoService: videoService,
		Configs:      config,
		Logger:       logger,
	}
}

func InitializeRoutes(cfg *config.Settings, r *gin.Engine, dep Dependencies) {
	r.Use(handlers.ErrorHandlerMiddleware(dep.Logger))
	r.Use(handlers.RequestLoggerMiddleware(dep.Logger))
	r.Use(handlers.CORSMiddleware())

	// multipart parts beyond this spill to temp files
	r.MaxMultipartMemory = 32 << 20

	r.GET("/", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"message": "Server healthy"}) })
	r.GET("/health", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, handlers.HealthResponse{Status: "ok"}) })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	vh := handlers.NewVideoHandler(dep.VideoService, dep.Logger)
	vh.MaxUploadBytes = cfg.Storage.MaxUploadBytes
	ss := handlers.NewStatusStream(dep.VideoService, cfg.Server.StatusPollInterval, dep.Logger)

	api := r.Group("/api")
	{
		videos := api.Group("/videos")
		videos.POST("", vh.UploadVideo)
		videos.GET("", vh.ListVideos)
		videos.GET("/:id", vh.GetVideo)
		videos.DELETE("/:id", vh.DeleteVideo)

		videos.GET("/:id/status", vh.GetStatus)
		videos.GET("/:id/status/ws", ss.Handle)
		videos.POST("/:id/reprocess", vh.Reprocess)
		videos.POST("/:id/cancel", vh.Cancel)

		videos.GET("/:id/transcript", vh.GetTranscript)
		videos.GET("/:id/transcript/export", vh.ExportTranscript)

		videos.GET("/:id/questions", vh.GetQuestions)
		videos.POST("/:id/questions/regenerate", vh.RegenerateQuestions)
		videos.PUT("/:id/questions/:index", vh.UpdateQuestion)
		videos.DELETE("/:id/questions/:index", vh.DeleteQuestion)

		videos.POST("/:id/quiz", vh.AssembleQuiz)
		videos.POST("/:id/quiz/submit", vh.SubmitQuiz)

		api.GET("/llm/test", vh.TestLLM)
	}
}
