package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/stickylist/internal/catalog"
	"github.com/charmbracelet/stickylist/internal/config"
	"github.com/charmbracelet/stickylist/internal/log"
	"github.com/charmbracelet/stickylist/internal/ui/common"
	"github.com/charmbracelet/stickylist/internal/ui/model"
	"github.com/charmbracelet/stickylist/internal/ui/sticky"
	"github.com/charmbracelet/stickylist/internal/ui/styles"
	"github.com/charmbracelet/stickylist/internal/version"
	"github.com/charmbracelet/stickylist/internal/watch"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file, read after the global one")
	rootCmd.PersistentFlags().StringP("data", "d", "", "Catalog file to show (.txt, .yaml or .json)")
	rootCmd.PersistentFlags().String("title", "", "Title row shown above the list")
	rootCmd.PersistentFlags().Bool("no-sticky", false, "Disable the sticky header")
	rootCmd.PersistentFlags().Bool("no-draw-under", false, "Keep rows from drawing beneath the sticky header")
	rootCmd.PersistentFlags().Bool("no-clip", false, "Draw rows into the padding")
	rootCmd.PersistentFlags().IntSlice("padding", nil, "List padding as top,right,bottom,left")
	rootCmd.PersistentFlags().Bool("debug", false, "Debug logging")

	rootCmd.Flags().BoolP("watch", "w", false, "Reload the catalog file when it changes")

	rootCmd.AddCommand(dumpCmd, logsCmd)
}

var rootCmd = &cobra.Command{
	Use:   "stickylist",
	Short: "Browse a sectioned list with a sticky header",
	Long: heredoc.Doc(`
		Browse a catalog of names grouped by initial letter. The header of the
		section at the top of the list stays pinned while its rows scroll
		beneath it, and is pushed up by the next section's header.

		Without --data the built-in list of countries is shown. Catalog files
		hold one name per line, or an "entries" list in YAML or JSON.
	`),
	Example: heredoc.Doc(`
		# Browse the built-in countries
		stickylist

		# Browse a file and reload it when it changes
		stickylist --data names.yaml --watch

		# Leave a line of padding above the list
		stickylist --padding 1,0,0,0
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		closeLog, err := log.Setup(cfg.LogFile(), cfg.Log.Debug)
		if err != nil {
			return err
		}
		defer func() { _ = closeLog() }()

		st := styles.DefaultStyles()
		cat, err := loadCatalog(cfg, &st)
		if err != nil {
			return err
		}
		com := &common.Common{Config: cfg, Styles: &st}
		title := catalogTitle(cmd, cfg)

		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			// Not a terminal, print a single frame instead.
			slog.Info("Stdout is not a terminal, rendering a single frame")
			return writeFrame(cmd.OutOrStdout(), frameOptions{com: com, catalog: cat, title: title, section: -1}, false)
		}

		return run(cmd.Context(), cfg, com, cat, title)
	},
}

// run runs the UI until it quits, with the watcher alongside when enabled.
func run(ctx context.Context, cfg *config.Config, com *common.Common, cat *catalog.Catalog, title string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, egctx := errgroup.WithContext(ctx)

	ui := model.New(com, cat, title)
	program := tea.NewProgram(ui, tea.WithContext(egctx))

	if cfg.Watch && cfg.Data != "" {
		eg.Go(func() error {
			defer log.RecoverPanic("watch", cancel)
			return watch.Watch(egctx, cfg.Data, func(msg watch.ReloadMsg) {
				program.Send(msg)
			})
		})
	}

	eg.Go(func() error {
		// Stop the watcher once the UI is gone.
		defer cancel()
		if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			slog.Error("TUI run error", "error", err)
			return fmt.Errorf("failed to run the list: %w", err)
		}
		return ui.Err()
	})

	return eg.Wait()
}

// loadConfig reads the global config, then the --config file, then applies
// flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")
	cfg, err := config.Load(config.GlobalConfig(), path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("data") {
		cfg.Data, _ = flags.GetString("data")
	}
	if flags.Lookup("watch") != nil && flags.Changed("watch") {
		cfg.Watch, _ = flags.GetBool("watch")
	}
	if noSticky, _ := flags.GetBool("no-sticky"); noSticky {
		cfg.Sticky = false
	}
	if noDrawUnder, _ := flags.GetBool("no-draw-under"); noDrawUnder {
		cfg.DrawUnderStickyHeader = false
	}
	if noClip, _ := flags.GetBool("no-clip"); noClip {
		cfg.ClipToPadding = false
	}
	if flags.Changed("padding") {
		values, _ := flags.GetIntSlice("padding")
		p, err := parsePadding(values)
		if err != nil {
			return nil, err
		}
		cfg.Padding = p
	}
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Log.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parsePadding reads padding given CSS style: one value for every side, two
// for vertical and horizontal, or four for top, right, bottom and left.
func parsePadding(values []int) (sticky.Padding, error) {
	switch len(values) {
	case 1:
		v := values[0]
		return sticky.Padding{Top: v, Right: v, Bottom: v, Left: v}, nil
	case 2:
		return sticky.Padding{Top: values[0], Right: values[1], Bottom: values[0], Left: values[1]}, nil
	case 4:
		return sticky.Padding{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
	default:
		return sticky.Padding{}, fmt.Errorf("invalid padding %v: expected 1, 2 or 4 values", values)
	}
}

func loadCatalog(cfg *config.Config, st *styles.Styles) (*catalog.Catalog, error) {
	if cfg.Data == "" {
		return catalog.Default(st), nil
	}
	return catalog.Load(cfg.Data, st)
}

func catalogTitle(cmd *cobra.Command, cfg *config.Config) string {
	if title, _ := cmd.Flags().GetString("title"); title != "" {
		return title
	}
	if cfg.Data == "" {
		return "Countries"
	}
	name := filepath.Base(cfg.Data)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
