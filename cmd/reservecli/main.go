package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reservekit/reserve-client/internal/api"
	"github.com/reservekit/reserve-client/internal/auth"
	"github.com/reservekit/reserve-client/internal/cart"
	"github.com/reservekit/reserve-client/internal/config"
	"github.com/reservekit/reserve-client/internal/observability"
	"github.com/reservekit/reserve-client/internal/service"
	"github.com/reservekit/reserve-client/internal/storage"
	"github.com/reservekit/reserve-client/internal/token"
)

var rootCmd = &cobra.Command{
	Use:           "reservecli",
	Short:         "Command-line client for the reserve marketplace",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// app is the composition root: one storage, one token store, one gateway,
// shared by the session manager, the cart, and the resource services.
// Nothing in the SDK is a singleton; every command builds an app and hands
// the instances around explicitly.
type app struct {
	storage      storage.Storage
	tokens       *token.Store
	client       *api.Client
	sessions     *auth.Manager
	cart         *cart.Manager
	stores       *service.StoreService
	menus        *service.MenuService
	reservations *service.ReservationService
	users        *service.UserService

	close func()
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var closers []func()

	var st storage.Storage
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		redisStore := storage.NewRedis(cfg.Redis, cfg.Storage.KeyPrefix, logger)
		closers = append(closers, redisStore.Close)
		st = redisStore
	case config.StorageMemory:
		st = storage.NewMemory()
	default:
		fileStore, err := storage.NewFile(cfg.Storage.StateFile())
		if err != nil {
			return nil, err
		}
		st = fileStore
	}

	tokens := token.NewStore(st)
	client, err := api.NewClient(cfg.API, tokens, st, logger)
	if err != nil {
		return nil, err
	}
	sessions := auth.NewManager(client, tokens, logger)
	closers = append(closers, sessions.Close)

	return &app{
		storage:      st,
		tokens:       tokens,
		client:       client,
		sessions:     sessions,
		cart:         cart.NewManager(st, logger),
		stores:       service.NewStoreService(client),
		menus:        service.NewMenuService(client),
		reservations: service.NewReservationService(client),
		users:        service.NewUserService(client),
		close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
			_ = logger.Sync()
		},
	}, nil
}
