package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"whd.healthtrends.org/internal/chart"
	"whd.healthtrends.org/internal/chatui"
	"whd.healthtrends.org/internal/llm"
	"whd.healthtrends.org/internal/logging"
	"whd.healthtrends.org/internal/narrative"
)

var errNoIndicator = errors.New("an indicator is required (--indicator or argument)")

func newIndicatorsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "indicators",
		Short: "List the indicators in the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := app.openDataset(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer manager.Shutdown()

			indicators, err := manager.Indicators(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range indicators {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newCountriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "countries [indicator]",
		Short: "List the countries that have data rows for an indicator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			indicator := app.indicator
			if len(args) == 1 {
				indicator = args[0]
			}
			if indicator == "" {
				return errNoIndicator
			}

			manager, err := app.openDataset(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer manager.Shutdown()

			countries, err := manager.Countries(cmd.Context(), indicator)
			if err != nil {
				return err
			}
			for _, name := range countries {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

var renderers = map[string]func(narrative.Context) string{
	"summary": narrative.LocalSummary,
	"notes":   narrative.ReportNotes,
	"prompt":  narrative.LLMPrompt,
}

func newNarrativeCmd(app *App, use, short string) *cobra.Command {
	render := renderers[use]
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := app.openDataset(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer manager.Shutdown()

			fmt.Fprintln(cmd.OutOrStdout(), render(app.state().Context(manager.Table())))
			return nil
		},
	}
}

func newLLMSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "llm-summary",
		Short: "Ask the configured model for a narrative (needs OPENAI_API_KEY)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := app.openDataset(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer manager.Shutdown()

			c := app.state().Context(manager.Table())
			if !c.Ready() {
				fmt.Fprintln(cmd.OutOrStdout(), narrative.PromptGuidance)
				return nil
			}

			resp, err := app.llmClient().Complete(cmd.Context(), llm.Request{
				SystemPrompt: narrative.SystemPrompt,
				UserPrompt:   narrative.LLMPrompt(c),
			})
			if err != nil {
				return fmt.Errorf("llm summary: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
			return nil
		},
	}
}

func newChartCmd(app *App) *cobra.Command {
	var output, kindName string
	var width, height int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the selection as a PNG chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			kind, err := chart.ParseKind(kindName)
			if err != nil {
				return err
			}
			if app.indicator == "" {
				return errNoIndicator
			}

			manager, err := app.openDataset(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer manager.Shutdown()

			state := app.state()
			state.SetChartKind(kind)
			c := state.Context(manager.Table())

			var buf bytes.Buffer
			err = chart.Render(&buf, state.ChartKind, chart.Spec{
				Title:    state.Selection.Indicator,
				CountryA: state.Selection.CountryA,
				CountryB: state.Selection.CountryB,
				Rows:     c.Rows,
				Width:    width,
				Height:   height,
			})
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer logging.HandleDeferredError(&err, f.Close, app.logger(cmd), "close_chart_file")

			if _, err = buf.WriteTo(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s chart to %s\n", state.ChartKind, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "chart.png", "Output file")
	cmd.Flags().StringVar(&kindName, "type", "line", "Chart type (line|bar|area|heatmap)")
	cmd.Flags().IntVar(&width, "width", 0, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Image height in pixels")
	return cmd
}

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the rule-based assistant about the selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manager, err := app.openDataset(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			defer manager.Shutdown()

			conv := chatui.NewConversation(app.state(), manager.Table())
			if !app.interactive() {
				return chatui.RunLines(conv, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			_, err = tea.NewProgram(chatui.New(conv), tea.WithAltScreen()).Run()
			return err
		},
	}
}
