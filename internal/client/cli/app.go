package cli

import (
	"bufio"
	"context"
	"log"
	"os"

	"inkwell/internal/client/api"
	"inkwell/internal/client/config"
	"inkwell/internal/client/localdb"
	"inkwell/internal/client/services"
	"inkwell/internal/client/state"
)

type App struct {
	config      *config.Config
	api         *api.Client
	store       *state.Store
	authService *services.AuthService
	blogService *services.BlogService
	reader      *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	repos, err := localdb.InitDatabase(ctx, c.DatabaseFile)
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	apiClient := api.NewClient(c.ServerBaseURL)
	store := state.NewStore()

	as := services.NewAuthService(apiClient, repos.Tokens, store)
	bs := services.NewBlogService(apiClient, store)

	return &App{
		config:      c,
		api:         apiClient,
		store:       store,
		authService: as,
		blogService: bs,
		reader:      bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.store.Get().User != nil
}

func (a *App) Run(ctx context.Context) {
	if err := a.authService.Restore(ctx); err != nil {
		log.Printf("error restoring session: %s", err.Error())
	}
	a.Root(ctx)
}
