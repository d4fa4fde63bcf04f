package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/conciergeelvirad/ELVIRA-sub003/internal/cmd"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/config"
	"github.com/conciergeelvirad/ELVIRA-sub003/internal/ui"
)

type tuiOptions struct {
	local bool
	debug string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts tuiOptions
	root := &cobra.Command{
		Use:   "elvira",
		Short: "ELVIRA - hotel concierge dashboard",
		Long:  "ELVIRA: manage guests, staff, amenities, orders, emergency contacts and places for one hotel.",
		RunE: func(c *cobra.Command, _ []string) error {
			return runTUI(c.Context(), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.Flags().BoolVar(&opts.local, "local", false, "run without a backend; changes live in memory only (theme and vim_keys still come from config)")
	root.Flags().StringVar(&opts.debug, "debug", "", "write a debug log to this file")

	root.AddCommand(cmd.LoginCmd())
	root.AddCommand(cmd.ServeCmd())
	root.AddCommand(cmd.ListCmd())
	root.AddCommand(cmd.MediaCmd())
	return root
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func runTUI(ctx context.Context, opts tuiOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		if !opts.local {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Println("not logged in. run 'elvira login' first, or pass --local.")
			}
			return err
		}
		// Local mode needs no login; a saved config only adds preferences.
		cfg = nil
	}
	if cfg != nil {
		ui.ApplyTheme(cfg.Theme)
	}
	if !isInteractiveTerminal(os.Stdin) || !isInteractiveTerminal(os.Stdout) {
		return fmt.Errorf("the dashboard needs an interactive terminal")
	}

	logger := slog.New(slog.DiscardHandler)
	if opts.debug != "" {
		f, err := tea.LogToFile(opts.debug, "elvira")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := ui.NewApp(ctx, cmd.DashboardEnv(ctx, cfg, opts.local, logger))
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

func isInteractiveTerminal(file *os.File) bool {
	if file == nil {
		return false
	}
	info, err := file.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
