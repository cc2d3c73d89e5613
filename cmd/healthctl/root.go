package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"whd.healthtrends.org/internal/appconf"
	"whd.healthtrends.org/internal/dataset"
	"whd.healthtrends.org/internal/llm"
	"whd.healthtrends.org/internal/logging"
	"whd.healthtrends.org/internal/session"
)

// App holds what the commands share. Fields left nil get defaults.
type App struct {
	LLMConfig     llm.Config
	LLM           llm.Client
	IsInteractive func() bool

	dataSource string
	indicator  string
	countryA   string
	countryB   string
	username   string
	verbose    bool
}

// NewRootCmd creates the "healthctl" command and registers its subcommands.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "healthctl",
		Short:         "Explore health indicator trends from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&app.dataSource, "data", "testdata/health_sample.csv", "Path or http(s) URL of the .csv or .xlsx dataset")
	flags.StringVar(&app.indicator, "indicator", "", "Indicator (Series Name)")
	flags.StringVar(&app.countryA, "country-a", "", "Primary country or region")
	flags.StringVar(&app.countryB, "country-b", "", "Optional comparison country or region")
	flags.StringVar(&app.username, "user", "", "Name shown in the greeting")
	flags.BoolVar(&app.verbose, "verbose", false, "Log to stderr")

	root.AddCommand(
		newIndicatorsCmd(app),
		newCountriesCmd(app),
		newNarrativeCmd(app, "summary", "Print the local summary"),
		newNarrativeCmd(app, "notes", "Print the report notes"),
		newNarrativeCmd(app, "prompt", "Print the prompt for an external model"),
		newLLMSummaryCmd(app),
		newChartCmd(app),
		newChatCmd(app),
	)

	return root
}

func (app *App) logger(cmd *cobra.Command) *slog.Logger {
	if app.verbose {
		return logging.NewStructuredLogger(cmd.ErrOrStderr(), slog.LevelDebug)
	}
	return logging.NewStructuredLogger(io.Discard, slog.LevelError)
}

// openDataset loads the dataset. Callers must Shutdown the manager.
func (app *App) openDataset(ctx context.Context, cmd *cobra.Command) (*dataset.Manager, error) {
	return dataset.InitManager(ctx, dataset.Config{
		Source: app.dataSource,
		Env:    appconf.Development,
	}, app.logger(cmd))
}

// state returns a generated session for the flag selection.
func (app *App) state() *session.State {
	state := session.New(app.username)
	state.SelectIndicator(app.indicator)
	state.SelectCountryA(app.countryA)
	state.SelectCountryB(app.countryB)
	state.Generate()
	return state
}

func (app *App) llmClient() llm.Client {
	if app.LLM != nil {
		return app.LLM
	}
	return llm.NewOpenAIClient(app.LLMConfig, llm.NewLogObserver(slog.Default()))
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}
