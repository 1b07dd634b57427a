package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/webstarter/webstarter/modules/web"
	"github.com/webstarter/webstarter/pkg/apiclient"
	"github.com/webstarter/webstarter/pkg/authsession"
	"github.com/webstarter/webstarter/pkg/config"
	"github.com/webstarter/webstarter/pkg/credstore"
	"github.com/webstarter/webstarter/pkg/httpserver"
	"github.com/webstarter/webstarter/pkg/logger"
)

type appConfig struct {
	AppName    string `env:"APP_NAME" envDefault:"Bootstrap Starter"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":3000"`
	APIBaseURL string `env:"API_URL" envDefault:"http://localhost:8000/api"`

	// CredentialsFile overrides where the file store keeps tokens; empty
	// means a credentials.json under the user config directory.
	CredentialsFile string `env:"CREDENTIALS_FILE"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithFormat(logger.Format(cfg.LogFormat)),
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithAttr(slog.String("service", "web")),
	)

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	api := apiclient.NewHTTP(cfg.APIBaseURL)
	mgr := authsession.New(store, api, authsession.WithLogger(log))

	// Revalidate any persisted session before serving the first request, so
	// the guard never sees the initializing state.
	if mgr.CheckAuth(ctx) {
		log.Info("persisted session restored")
	} else {
		log.Info("no valid persisted session")
	}

	handler, err := web.NewHandler(mgr, api,
		web.WithLogger(log),
		web.WithAppName(cfg.AppName),
	)
	if err != nil {
		return err
	}

	srv := httpserver.New(
		httpserver.WithAddr(cfg.ListenAddr),
		httpserver.WithLogger(log),
	)
	return srv.Run(ctx, handler.Router())
}

// openStore picks the credential store backend: Redis when REDIS_URL is set,
// otherwise a JSON file under the user config directory.
func openStore(ctx context.Context, cfg appConfig) (credstore.Store, error) {
	var redisCfg credstore.RedisConfig
	if err := config.Load(&redisCfg); err != nil {
		return nil, err
	}
	if redisCfg.ConnectionURL != "" {
		return credstore.NewRedisStore(ctx, redisCfg)
	}

	path := cfg.CredentialsFile
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "webstarter", "credentials.json")
	}
	return credstore.NewFileStore(path)
}
