package app

import (
	"fmt"

	"github.com/go-redis/redis"
	"github.com/xpanvictor/vidquiz/internal/config"
	"github.com/xpanvictor/vidquiz/internal/domains/pipeline"
	"github.com/xpanvictor/vidquiz/internal/domains/questions"
	"github.com/xpanvictor/vidquiz/internal/domains/quiz"
	"github.com/xpanvictor/vidquiz/internal/domains/scheduler"
	"github.com/xpanvictor/vidquiz/internal/domains/video"
	videoRepo "github.com/xpanvictor/vidquiz/internal/repository/video"
	"github.com/xpanvictor/vidquiz/internal/server"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
	"github.com/xpanvictor/vidquiz/pkg/assistant/router"
	"github.com/xpanvictor/vidquiz/pkg/io/stt"
	"github.com/xpanvictor/vidquiz/pkg/io/stt/whisper"
	"gorm.io/gorm"
)

// App represents the application with all its dependencies
type App struct {
	Config    *config.Settings
	Logger    *Logger.Logger
	DB        *gorm.DB
	RC        *redis.Client
	LLMRouter *router.Mux
	// pipeline
	Queue       scheduler.Queue
	Transcriber stt.Transcriber
	Processor   *pipeline.Processor
	// repos
	VideoRepo  video.VideoRepository
	ServerDeps server.Dependencies

	llmFactory *LLMRouterFactory
}

// NewApp creates a new application instance with all dependencies properly
// wired. db may be nil when database.driver is memory and rc may be nil when
// neither the queue nor the quiz store use redis.
func NewApp(cfg *config.Settings, logger *Logger.Logger, db *gorm.DB, rc *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		RC:     rc,
	}

	if err := app.setupDependencies(); err != nil {
		return nil, err
	}

	return app, nil
}

// setupDependencies initializes all application dependencies
func (a *App) setupDependencies() error {
	// 1. LLM providers and router
	if err := a.setupLLMRouter(); err != nil {
		return err
	}

	// 2. repositories
	repo, err := a.videoRepository()
	if err != nil {
		return err
	}
	a.VideoRepo = repo

	sessions, err := a.sessionStore()
	if err != nil {
		return err
	}

	// 3. background processing
	queue, err := a.jobQueue()
	if err != nil {
		return err
	}
	a.Queue = queue

	transcriber, err := a.transcriber()
	if err != nil {
		return err
	}
	a.Transcriber = transcriber

	generator := questions.NewGenerator(a.LLMRouter, a.Config.Questions, a.Logger)
	a.Processor = pipeline.NewProcessor(a.VideoRepo, a.Transcriber, generator, a.Logger)
	a.Processor.Register(a.Queue)

	// 4. services
	svc := video.NewVideoService(video.ServiceDeps{
		Repository: a.VideoRepo,
		Files:      video.NewFileStore(a.Config.Storage),
		Queue:      a.Queue,
		Generator:  generator,
		Assembler:  quiz.NewAssembler(nil),
		Sessions:   sessions,
		LLM:        a.LLMRouter,
	}, a.Logger)

	a.ServerDeps = server.NewServerDependencies(svc, a.Config, a.Logger)
	return nil
}

// setupLLMRouter configures the LLM providers and creates the router
func (a *App) setupLLMRouter() error {
	factory := NewLLMRouterFactory(a.Config.LLM, a.Logger)

	mux, err := factory.CreateRouter()
	if err != nil {
		return err
	}

	a.llmFactory = factory
	a.LLMRouter = mux
	return nil
}

func (a *App) videoRepository() (video.VideoRepository, error) {
	switch a.Config.DB.Driver {
	case "memory":
		a.Logger.Warn("using in-memory video repository, records are lost on restart")
		return videoRepo.NewMemoryVideoRepo(), nil
	case "mysql", "":
		if a.DB == nil {
			return nil, fmt.Errorf("database driver mysql requires a database connection")
		}
		return videoRepo.NewGormVideoRepo(a.DB), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", a.Config.DB.Driver)
	}
}

func (a *App) sessionStore() (quiz.SessionStore, error) {
	switch a.Config.Quiz.Store {
	case "memory":
		return quiz.NewMemorySessionStore(a.Config.Quiz.TTL), nil
	case "redis", "":
		if a.RC == nil {
			return nil, fmt.Errorf("quiz store redis requires a redis connection")
		}
		return quiz.NewRedisSessionStore(a.RC, a.Config.Quiz.TTL), nil
	default:
		return nil, fmt.Errorf("unknown quiz store %q", a.Config.Quiz.Store)
	}
}

func (a *App) jobQueue() (scheduler.Queue, error) {
	switch a.Config.Queue.Driver {
	case "local":
		lq := scheduler.NewLocalQueue(a.Config.Queue.Concurrency, a.Config.Queue.JobTimeout, a.Logger)
		if a.Config.Queue.Retention > 0 {
			lq.Retention = a.Config.Queue.Retention
		}
		return lq, nil
	case "asynq", "":
		return scheduler.NewAsynqQueue(a.Config.Redis, a.Config.Queue, a.Logger), nil
	default:
		return nil, fmt.Errorf("unknown queue driver %q", a.Config.Queue.Driver)
	}
}

func (a *App) transcriber() (stt.Transcriber, error) {
	w := a.Config.Whisper
	switch w.Mode {
	case "http":
		return whisper.NewWhisperClient(w.URL, w.Language, w.HTTPTimeout, a.Logger), nil
	case "cli", "":
		cli := whisper.NewCLI(w.Binary, w.Model, w.Language, "", a.Logger)
		cli.Timeout = w.CLITimeout
		return cli, nil
	default:
		return nil, fmt.Errorf("unknown whisper mode %q", w.Mode)
	}
}

// GetServerDependencies returns the server dependencies
func (a *App) GetServerDependencies() server.Dependencies {
	return a.ServerDeps
}

// Close releases LLM provider clients.
func (a *App) Close() error {
	if a.llmFactory == nil {
		return nil
	}
	return a.llmFactory.Close()
}
