package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/MakeNowJust/heredoc"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/stickylist/internal/catalog"
	"github.com/charmbracelet/stickylist/internal/log"
	"github.com/charmbracelet/stickylist/internal/ui/common"
	"github.com/charmbracelet/stickylist/internal/ui/model"
	"github.com/charmbracelet/stickylist/internal/ui/styles"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

const (
	defaultDumpWidth  = 80
	defaultDumpHeight = 24
)

func init() {
	dumpCmd.Flags().Int("width", 0, "Frame width, defaults to the terminal width")
	dumpCmd.Flags().Int("height", 0, "Frame height, defaults to the terminal height")
	dumpCmd.Flags().Int("scroll", 0, "Lines to scroll before rendering")
	dumpCmd.Flags().String("section", "", "Jump to the section with this label before scrolling")
	dumpCmd.Flags().Bool("plain", false, "Strip colors and styles")
}

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print a single frame of the list",
	Long:  "Render the list once at a given size and scroll position, and print it.",
	Example: heredoc.Doc(`
		# Print the frame at the current terminal size
		stickylist dump

		# Print 12 lines with the header of the C section pinned
		stickylist dump --height 12 --section C --scroll 2

		# Print the frame without colors
		stickylist dump --plain > frame.txt
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log.SetupConsole(cmd.ErrOrStderr(), cfg.Log.Debug)

		st := styles.DefaultStyles()
		cat, err := loadCatalog(cfg, &st)
		if err != nil {
			return err
		}

		width, height := terminalSize()
		if w, _ := cmd.Flags().GetInt("width"); w > 0 {
			width = w
		}
		if h, _ := cmd.Flags().GetInt("height"); h > 0 {
			height = h
		}
		scroll, _ := cmd.Flags().GetInt("scroll")
		plain, _ := cmd.Flags().GetBool("plain")

		opts := frameOptions{
			com:     &common.Common{Config: cfg, Styles: &st},
			catalog: cat,
			title:   catalogTitle(cmd, cfg),
			width:   width,
			height:  height,
			scroll:  scroll,
			section: -1,
		}
		if label, _ := cmd.Flags().GetString("section"); label != "" {
			opts.section = sectionIndex(cat, label)
			if opts.section < 0 {
				return fmt.Errorf("no section %q in catalog", label)
			}
		}
		return writeFrame(cmd.OutOrStdout(), opts, plain)
	},
}

type frameOptions struct {
	com     *common.Common
	catalog *catalog.Catalog
	title   string

	width, height int
	scroll        int
	// section is the section jumped to before scrolling, or -1.
	section int
}

// renderFrame renders one frame of the UI.
func renderFrame(opts frameOptions) (string, error) {
	if opts.width <= 0 || opts.height <= 0 {
		opts.width, opts.height = defaultDumpWidth, defaultDumpHeight
	}

	ui := model.New(opts.com, opts.catalog, opts.title)
	ui.Update(tea.WindowSizeMsg{Width: opts.width, Height: opts.height})
	if err := ui.Err(); err != nil {
		return "", err
	}

	l := ui.List()
	if opts.section >= 0 {
		if _, err := l.JumpToSection(opts.section); err != nil {
			return "", err
		}
	}
	if opts.scroll != 0 {
		if err := l.ScrollBy(opts.scroll); err != nil {
			return "", err
		}
	}
	slog.Debug("Rendering frame", "width", opts.width, "height", opts.height, "scroll", opts.scroll)
	return ui.View().Content + "\n", nil
}

// writeFrame renders a frame and writes it to w, downsampling colors to what
// w supports.
func writeFrame(w io.Writer, opts frameOptions, plain bool) error {
	frame, err := renderFrame(opts)
	if err != nil {
		return err
	}
	cw := colorprofile.NewWriter(w, os.Environ())
	if plain {
		cw.Profile = colorprofile.NoTTY
	}
	_, err = io.WriteString(cw, frame)
	return err
}

func sectionIndex(cat *catalog.Catalog, label string) int {
	for i, s := range cat.Sections() {
		if s == label || s == catalog.SectionLabel(label) {
			return i
		}
	}
	return -1
}

func terminalSize() (int, int) {
	width, height, err := term.GetSize(os.Stdout.Fd())
	if err != nil || width <= 0 || height <= 0 {
		return defaultDumpWidth, defaultDumpHeight
	}
	return width, height
}
