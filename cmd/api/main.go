package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"whd.healthtrends.org/internal/app"
	"whd.healthtrends.org/internal/appconf"
	"whd.healthtrends.org/internal/dataset"
	"whd.healthtrends.org/internal/llm"
	"whd.healthtrends.org/internal/logging"
	"whd.healthtrends.org/internal/restapi"
	"whd.healthtrends.org/internal/webui"
)

func main() {
	cfg, logLevel, err := parseConfig(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.NewStructuredLogger(os.Stdout, logging.ParseLevel(logLevel))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err, slog.String("component", "main"))
		os.Exit(1)
	}
}

// parseConfig reads the flags and, when -config is given, the YAML file.
// Flags set explicitly on the command line win over the file.
func parseConfig(args []string, output io.Writer) (appconf.Config, string, error) {
	var cfg appconf.Config
	var env, apiKeys, configPath, logLevel string

	fs := flag.NewFlagSet("api", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&cfg.Port, "port", 4000, "API server port")
	fs.StringVar(&env, "env", "development", "Environment (development|test|production)")
	fs.StringVar(&apiKeys, "api-keys", "", "Comma separated API keys; empty leaves the API open")
	fs.StringVar(&cfg.DataSource, "data", "testdata/health_sample.csv", "Path or http(s) URL of the .csv or .xlsx dataset")
	fs.StringVar(&cfg.DBPath, "db", ":memory:", "SQLite catalog path")
	fs.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per API key (0 disables)")
	fs.DurationVar(&cfg.RefreshInterval, "refresh", 24*time.Hour, "Reload interval for URL datasets")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Log catalog imports in detail")
	fs.StringVar(&configPath, "config", "", "Optional YAML configuration file")
	fs.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return cfg, logLevel, err
	}
	cfg.Env = appconf.EnvFlagToEnvironment(env)
	cfg.ApiKeys = appconf.SplitKeys(apiKeys)

	if configPath != "" {
		explicit := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

		file, err := appconf.LoadFile(configPath)
		if err != nil {
			return cfg, logLevel, err
		}
		if err := file.Apply(&cfg, explicit); err != nil {
			return cfg, logLevel, err
		}
	}

	return cfg, logLevel, nil
}

// newApplication wires the dataset manager and the model client.
func newApplication(ctx context.Context, cfg appconf.Config, logger *slog.Logger) (*app.Application, error) {
	manager, err := dataset.InitManager(ctx, dataset.Config{
		Source:          cfg.DataSource,
		DBPath:          cfg.DBPath,
		Env:             cfg.Env,
		RefreshInterval: cfg.RefreshInterval,
		Verbose:         cfg.Verbose,
	}, logging.Component(logger, "dataset_manager"))
	if err != nil {
		return nil, fmt.Errorf("initialize dataset: %w", err)
	}

	llmConfig := llm.LoadConfig()
	var observer llm.Observer = llm.NoopObserver{}
	if llmConfig.LogCalls {
		observer = llm.NewLogObserver(logging.Component(logger, "llm"))
	}
	if !llmConfig.HasCredential() {
		logger.Warn("OPENAI_API_KEY is not set; /api/llm-summary will report the missing credential")
	}

	return &app.Application{
		Config:    cfg,
		Logger:    logger,
		Manager:   manager,
		LLM:       llm.NewOpenAIClient(llmConfig, observer),
		LLMConfig: llmConfig,
	}, nil
}

// newHandler mounts the API and the debug pages on one router.
func newHandler(api *restapi.RestAPI) http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)
	if api.Config.Env != appconf.Production {
		webUI := &webui.WebUI{Application: api.Application}
		webUI.SetWebUIRoutes(router)
	}
	return api.Handler(router)
}

func run(cfg appconf.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer application.Manager.Shutdown()

	api := restapi.NewRestAPI(application)
	defer api.Shutdown()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      newHandler(api),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env.String(), "data", cfg.DataSource)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
