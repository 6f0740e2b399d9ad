package main

// Must be first import - fixes Warp terminal delay before lipgloss loads
import _ "github.com/wahlandcase/attuned.prwatch/internal/termfix"

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wahlandcase/attuned.prwatch/internal/app"
	"github.com/wahlandcase/attuned.prwatch/internal/config"
	"github.com/wahlandcase/attuned.prwatch/internal/github"
	"github.com/wahlandcase/attuned.prwatch/internal/logging"
	"github.com/wahlandcase/attuned.prwatch/internal/snapshot"
	"github.com/wahlandcase/attuned.prwatch/internal/watch"
)

// version is set at build time via -ldflags
var version = "dev"

var (
	once      bool
	debug     bool
	debugFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "prwatch",
		Short: "Watch GitHub PRs from the terminal",
		Long: "prwatch polls your authored and watched pull requests, shows a\n" +
			"consolidated status per PR and writes the latest state to\n" +
			"prs.json for agents and scripts.",
		RunE: run,
	}

	rootCmd.Flags().BoolVar(&once, "once", false, "Fetch once, write the snapshot and exit")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Write debug logs")
	rootCmd.Flags().StringVar(&debugFile, "debug-file", "", "Write debug logs to a specific file")
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logging.Initialize(debug || cfg.Debug.Enabled, firstNonEmpty(debugFile, cfg.Debug.File), cfg.Debug.MaxLogFiles); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if err := github.CheckAuth(); err != nil {
		return err
	}

	dataDir := cfg.DataPath()
	cfgStore := watch.NewConfigStore(dataDir)
	watchCfg, err := cfgStore.Load()
	if err != nil {
		return fmt.Errorf("failed to load watch config: %w", err)
	}

	builder := watch.NewBuilder(github.NewClient())
	snapStore := snapshot.NewStore(dataDir)

	if once {
		return runOnce(builder, watchCfg, snapStore)
	}

	model := app.New(cfg, cfgStore, watchCfg, builder, snapStore, version)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}

// runOnce performs a single fetch cycle and prints a plain summary,
// for cron jobs and agents that only want the snapshot refreshed.
func runOnce(builder *watch.Builder, watchCfg *watch.Config, snapStore *snapshot.Store) error {
	rs := builder.Build(context.Background(), watchCfg)
	if err := snapStore.Write(&rs); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	for _, pr := range rs.All() {
		fmt.Printf("%s  %s#%d: %s\n", pr.StatusIcon.Glyph(), pr.RepoShort, pr.Number, pr.Title)
	}
	fmt.Printf("%d open, snapshot written to %s\n", rs.OpenCount(), snapStore.Path())
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
