package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"whd.healthtrends.org/internal/llm"
)

func main() {
	app := &App{
		LLMConfig: llm.LoadConfig(),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	if err := NewRootCmd(app).Execute(); err != nil {
		os.Exit(1)
	}
}
