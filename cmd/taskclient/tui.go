package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/td0m/taskclient/internal/tui"
)

func newTUICmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive terminal page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, f)
		},
	}
}

func runTUI(cmd *cobra.Command, f *flags) error {
	// the screen belongs to the page, logs only go to a configured file
	a, err := newApp(cmd, f, io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p := tea.NewProgram(tui.New(ctx, a.page))

	// enable full terminal mode
	p.EnterAltScreen()
	defer p.ExitAltScreen()

	return p.Start()
}
