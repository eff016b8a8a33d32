package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/gearcast-api/internal/config"
	"github.com/phrazzld/gearcast-api/internal/events"
	"github.com/phrazzld/gearcast-api/internal/generation"
	"github.com/phrazzld/gearcast-api/internal/platform/blob"
	"github.com/phrazzld/gearcast-api/internal/platform/postgres"
	"github.com/phrazzld/gearcast-api/internal/platform/runware"
	"github.com/phrazzld/gearcast-api/internal/platform/veo"
	"github.com/phrazzld/gearcast-api/internal/service"
	"github.com/phrazzld/gearcast-api/internal/store"
	"github.com/phrazzld/gearcast-api/internal/task"
)

// storageRequestTimeout bounds a single blob store call.
const storageRequestTimeout = 60 * time.Second

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// files is set when assets live on local disk and are served by this process.
	files *blob.FileStore

	equipmentService service.EquipmentService
	videoService     service.VideoService

	taskRunner *task.TaskRunner
}

// newApplication builds every component from cfg and starts the task runner.
// db is owned by the application from here on and closed by cleanup.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	equipmentStore := postgres.NewPostgresEquipmentStore(db, logger)
	videoStore := postgres.NewPostgresVideoStore(db, logger)

	blobs, files, err := newBlobStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}
	app.files = files

	provider, err := newProvider(ctx, cfg.Provider, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize video provider: %w", err)
	}
	logger.Info("Video provider initialized", "provider", provider.Name())

	app.equipmentService, err = service.NewEquipmentService(
		equipmentStore,
		blobs,
		service.Buckets{Manuals: cfg.Storage.ManualsBucket, Images: cfg.Storage.ImagesBucket},
		db,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create equipment service: %w", err)
	}

	emitter := events.NewDispatcher(logger)

	app.videoService, err = service.NewVideoService(
		app.equipmentService,
		videoStore,
		provider,
		generationParams(cfg.Provider),
		emitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %w", err)
	}

	factory := task.NewVideoGenerationTaskFactory(app.videoService, logger)

	var recovery task.RecoverySource
	if cfg.Task.RecoverQueued {
		recovery = task.NewQueuedVideoRecovery(videoStore, factory, logger)
	}
	app.taskRunner = task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, recovery, logger)

	emitter.Subscribe(task.NewDispatchHandler(factory, app.taskRunner, logger))

	if err := app.taskRunner.Start(); err != nil {
		return nil, fmt.Errorf("failed to start task runner: %w", err)
	}

	logger.Info("Application initialized successfully",
		"workers", cfg.Task.WorkerCount,
		"queue_size", cfg.Task.QueueSize,
		"recover_queued", cfg.Task.RecoverQueued)
	return app, nil
}

// newBlobStore selects the configured blob backend. The FileStore is also
// returned when it is in use so the router can serve its files.
func newBlobStore(cfg *config.Config, logger *slog.Logger) (store.BlobStore, *blob.FileStore, error) {
	switch cfg.Storage.Backend {
	case config.StorageBackendFilesystem:
		publicBase := cfg.Storage.PublicBaseURL
		if publicBase == "" {
			publicBase = fmt.Sprintf("http://localhost:%d%s", cfg.Server.Port, filesRoute)
		}
		fs, err := blob.NewFileStore(cfg.Storage.LocalPath, publicBase)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Using local blob storage", "path", fs.BasePath(), "public_base_url", publicBase)
		return fs, fs, nil

	case config.StorageBackendSupabase:
		s, err := blob.NewSupabaseStore(
			cfg.Storage.SupabaseURL,
			cfg.Storage.SupabaseKey,
			logger,
			blob.WithHTTPClient(&http.Client{Timeout: storageRequestTimeout}),
		)
		if err != nil {
			return nil, nil, err
		}
		return s, nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// newProvider selects the configured video provider. Provider calls have no
// client-side timeout: synchronous generations can take minutes.
func newProvider(ctx context.Context, cfg config.ProviderConfig, logger *slog.Logger) (generation.Provider, error) {
	switch cfg.Name {
	case config.ProviderRunware:
		client, err := runware.NewClient(cfg.RunwareAPIKey, logger, runware.WithBaseURL(cfg.RunwareBaseURL))
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderVeo:
		p, err := veo.NewProvider(ctx, veo.Config{APIKey: cfg.GoogleAPIKey, Model: cfg.VeoModel}, nil, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Name)
	}
}

// generationParams maps provider configuration onto the parameters sent
// with every generation request.
func generationParams(cfg config.ProviderConfig) generation.Params {
	p := generation.DefaultParams()
	p.Model = cfg.Model
	p.DurationSecs = cfg.DurationSecs
	p.FPS = cfg.FPS
	p.Width = cfg.Width
	p.Height = cfg.Height
	p.OutputFormat = cfg.OutputFormat
	p.OutputQuality = cfg.OutputQuality
	p.DeliveryMethod = cfg.DeliveryMethod
	p.GenerateAudio = cfg.GenerateAudio
	p.EnhancePrompt = cfg.EnhancePrompt
	return p
}

// Run serves HTTP until ctx is canceled, then shuts everything down.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	// Queued generations still run; their results need the database.
	if app.taskRunner != nil {
		app.taskRunner.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
