package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	l4doc "github.com/goliatone/go-l4doc"
	"github.com/goliatone/go-l4doc/internal/config"
	"github.com/goliatone/go-l4doc/pkg/client"
	pkgopenapi "github.com/goliatone/go-l4doc/pkg/openapi"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitInvalid  = 3
	userAgentCLI = "l4doc-cli"

	// contractLive selects the contract published by the resolved API.
	contractLive = "live"
)

// commonFlags are shared by every command.
type commonFlags struct {
	configPath string
	apiURL     string
	host       string
	logLevel   string
	contract   string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&c.apiURL, "api-url", "", "API base URL (overrides config and "+config.EnvAPIURL+")")
	fs.StringVar(&c.host, "host", "", "host used to pick the local or production API when no URL is set")
	fs.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&c.contract, "contract", "", `OpenAPI file or URL for the forms, or "live" for the API's own`)
}

// app bundles what a command needs after configuration is resolved.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	api    *client.Client
}

func newApp(flags commonFlags, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if flags.apiURL != "" {
		cfg.API.BaseURL = flags.apiURL
	}
	if flags.host != "" {
		cfg.API.Host = flags.host
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if flags.contract != "" {
		cfg.API.Contract = flags.contract
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return nil, err
	}

	api, err := client.New(cfg.ResolveAPIURL(),
		client.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		client.WithLogger(logger),
		client.WithUserAgent(userAgentCLI),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("api resolved", slog.String("url", api.BaseURL()), slog.String("host", cfg.API.Host))
	return &app{cfg: cfg, logger: logger, api: api}, nil
}

func (a *app) loadForms(ctx context.Context) (l4doc.Forms, error) {
	var (
		src pkgopenapi.Source
		err error
	)
	switch a.cfg.API.Contract {
	case "":
		return l4doc.LoadForms(ctx)
	case contractLive:
		src, err = pkgopenapi.LiveSource(a.api.BaseURL())
	default:
		src, err = pkgopenapi.ParseSource(a.cfg.API.Contract)
	}
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loading contract", slog.String("source", src.Location()))
	return l4doc.LoadForms(ctx,
		l4doc.WithSource(src),
		l4doc.WithLoaderOptions(pkgopenapi.WithRemoteContracts(a.cfg.API.Timeout)),
	)
}

func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK, false
		}
		return exitUsage, false
	}
	return exitOK, true
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "l4doc: %v\n", err)
	return exitFailure
}
