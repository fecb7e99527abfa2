// Command planetview is a terminal 3D viewer for the planets of the solar system.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/planetview/internal/catalog"
	"github.com/litescript/planetview/internal/config"
	"github.com/litescript/planetview/internal/logging"
	"github.com/litescript/planetview/internal/presenter"
	"github.com/litescript/planetview/internal/texture"
	"github.com/litescript/planetview/internal/ui"
	"github.com/litescript/planetview/internal/version"
)

// Fallback snapshot size when stdout is not a terminal.
const (
	defaultCols = 80
	defaultRows = 24
)

var configFile string

func main() {
	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "planetview",
		Short:         "Explore the planets in 3D from the terminal",
		Long:          "planetview shows a textured, orbitable 3D planet. Pick planets from the Terrestrial and Jovian menus.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	root.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./planetview.toml)")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newRenderCmd(), newListCmd(), newVersionCmd())
	return root
}

// setup loads config and builds the logger. Interactive sessions own the
// terminal, so they log to the log file only.
func setup(cmd *cobra.Command, interactive bool) (config.Config, *logging.Logger, func(), error) {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	var outputs []io.Writer
	closeLog := func() {}
	if !interactive {
		outputs = append(outputs, cmd.ErrOrStderr())
	}
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return config.Config{}, nil, nil, err
		}
		outputs = append(outputs, f)
		closeLog = func() { _ = f.Close() }
	}

	logger := logging.Discard()
	if len(outputs) > 0 {
		logger = logging.New(logging.ParseLevel(cfg.LogLevel), outputs...)
	}
	return cfg, logger, closeLog, nil
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	cfg, logger, closeLog, err := setup(cmd, true)
	if err != nil {
		return err
	}
	defer closeLog()

	cat, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}
	logger.Info("planetview %s: %d planets, assets in %s", version.Version, cat.Len(), cfg.Assets)

	loader := texture.NewLoader(cfg.Assets, cfg.MaxTexture)
	model := ui.New(presenter.NewScene(cat), loader, logger, cfg.FrameInterval(), cfg.Planet)

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return errors.Wrap(err, "run TUI")
	}
	return nil
}

func newRenderCmd() *cobra.Command {
	var cols, rows int

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame of a planet to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, closeLog, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer closeLog()

			cat, err := cfg.LoadCatalog()
			if err != nil {
				return err
			}

			if cols <= 0 || rows <= 0 {
				w, h := terminalSize()
				if cols <= 0 {
					cols = w
				}
				if rows <= 0 {
					rows = h
				}
			}

			loader := texture.NewLoader(cfg.Assets, cfg.MaxTexture)
			return ui.WriteSnapshot(cmd.Context(), cmd.OutOrStdout(), presenter.NewScene(cat), loader, logger, cfg.Planet, cols, rows)
		},
	}

	cmd.Flags().IntVar(&cols, "width", 0, "Width in columns (default: terminal width)")
	cmd.Flags().IntVar(&rows, "height", 0, "Height in rows (default: terminal height)")
	return cmd
}

// terminalSize returns the size of stdout, or a fallback when it is not a
// terminal.
func terminalSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultCols, defaultRows
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 1 {
		return defaultCols, defaultRows
	}
	// Leave a row for the shell prompt.
	return w, h - 1
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the planets in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, closeLog, err := setup(cmd, false)
			if err != nil {
				return err
			}
			defer closeLog()

			cat, err := cfg.LoadCatalog()
			if err != nil {
				return err
			}
			catalog.WriteTable(cmd.OutOrStdout(), cat)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}
