// Package server initializes and runs the blog backend: it opens the
// database, runs migrations, wires the entity services into the HTTP API
// and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"inkwell/internal/filex"
	"inkwell/internal/logging"
	"inkwell/internal/server/categories"
	"inkwell/internal/server/comments"
	"inkwell/internal/server/config"
	"inkwell/internal/server/httpapi"
	"inkwell/internal/server/posts"
	"inkwell/internal/server/shared/db"
	"inkwell/internal/server/uploads"
	"inkwell/internal/server/users"
)

type App struct {
	config *config.Config
	logger logging.Logger
	api    *httpapi.Server
}

func NewApp(c *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	m, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	us := users.NewService(m.Users(), c)
	cs := categories.NewService(m.Categories())
	ps := posts.NewService(m.Posts(), m.Categories())
	ms := comments.NewService(m.Comments())

	images, uploadsDir, err := newImageStore(c)
	if err != nil {
		return nil, fmt.Errorf("image store init error: %w", err)
	}

	api := httpapi.NewServer(c.EndpointAddr, logger, us, cs, ps, ms, images, uploadsDir, c.SecretKey)

	return &App{config: c, logger: logger, api: api}, nil
}

// newImageStore picks the featured-image backend. The local backend also
// yields the directory to serve under /uploads/.
func newImageStore(c *config.Config) (uploads.ImageStore, string, error) {
	switch c.UploadBackend {
	case config.UploadBackendS3:
		store, err := uploads.NewS3Store(context.Background(), c)
		return store, "", err
	default:
		dir, err := filex.EnsureDir("", c.UploadDir)
		if err != nil {
			return nil, "", err
		}
		return uploads.NewLocalStore(dir), dir, nil
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.api.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
