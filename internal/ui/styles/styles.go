package styles

import (
	"image/color"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

const (
	CheckIcon   string = "✓"
	ErrorIcon   string = "×"
	WarningIcon string = "⚠"
	InfoIcon    string = "ⓘ"
	PinIcon     string = "▲"

	BorderThick string = "▌"

	SectionSeparator string = "─"
)

type Styles struct {
	WindowTooSmall lipgloss.Style

	// Reusable text styles
	Base   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style

	// Tags
	TagBase  lipgloss.Style
	TagError lipgloss.Style

	// Inputs
	TextInput textinput.Styles

	// Help
	Help help.Styles

	// Background
	Background color.Color

	// Rows and section headers of the sticky list.
	List struct {
		Item        lipgloss.Style
		ItemFocused lipgloss.Style
		ItemBlurred lipgloss.Style
		Header      lipgloss.Style
		Title       lipgloss.Style
		Footer      lipgloss.Style
	}

	// Status line
	Status struct {
		Base    lipgloss.Style
		Section lipgloss.Style
		Info    lipgloss.Style
		Error   lipgloss.Style
		Key     lipgloss.Style
	}
}

func DefaultStyles() Styles {
	var (
		primary   = charmtone.Charple
		secondary = charmtone.Dolly
		tertiary  = charmtone.Bok

		// Backgrounds
		bgBase        = charmtone.Pepper
		bgBaseLighter = charmtone.BBQ

		// Foregrounds
		fgBase      = charmtone.Ash
		fgMuted     = charmtone.Squid
		fgHalfMuted = charmtone.Smoke
		fgSubtle    = charmtone.Oyster

		// Borders
		border      = charmtone.Charcoal
		borderFocus = charmtone.Charple

		// Colors
		white     = charmtone.Butter
		greenDark = charmtone.Guac
		redDark   = charmtone.Sriracha
	)

	base := lipgloss.NewStyle().Foreground(fgBase)

	s := Styles{}

	s.Background = bgBase

	s.TextInput = textinput.Styles{
		Focused: textinput.StyleState{
			Text:        base,
			Placeholder: base.Foreground(fgSubtle),
			Prompt:      base.Foreground(tertiary),
			Suggestion:  base.Foreground(fgSubtle),
		},
		Blurred: textinput.StyleState{
			Text:        base.Foreground(fgMuted),
			Placeholder: base.Foreground(fgSubtle),
			Prompt:      base.Foreground(fgMuted),
			Suggestion:  base.Foreground(fgSubtle),
		},
		Cursor: textinput.CursorStyle{
			Color: secondary,
			Shape: tea.CursorBar,
			Blink: true,
		},
	}

	s.Help = help.Styles{
		ShortKey:       base.Foreground(fgMuted),
		ShortDesc:      base.Foreground(fgSubtle),
		ShortSeparator: base.Foreground(border),
		Ellipsis:       base.Foreground(border),
		FullKey:        base.Foreground(fgMuted),
		FullDesc:       base.Foreground(fgSubtle),
		FullSeparator:  base.Foreground(border),
	}

	// text presets
	s.Base = lipgloss.NewStyle().Foreground(fgBase)
	s.Muted = lipgloss.NewStyle().Foreground(fgMuted)
	s.Subtle = lipgloss.NewStyle().Foreground(fgSubtle)

	s.WindowTooSmall = s.Muted

	// tag presets
	s.TagBase = lipgloss.NewStyle().Padding(0, 1).Foreground(white)
	s.TagError = s.TagBase.Background(redDark)

	// list
	focusedBorder := lipgloss.Border{Left: BorderThick}
	s.List.Item = s.Base.PaddingLeft(2)
	s.List.ItemBlurred = s.List.Item
	s.List.ItemFocused = s.Base.PaddingLeft(1).BorderLeft(true).
		BorderForeground(borderFocus).BorderStyle(focusedBorder)
	s.List.Header = lipgloss.NewStyle().Foreground(primary).Background(bgBaseLighter).Bold(true).PaddingLeft(1)
	s.List.Title = s.Subtle.PaddingLeft(1)
	s.List.Footer = s.Muted.PaddingLeft(1)

	// status
	s.Status.Base = s.Muted.Background(bgBaseLighter)
	s.Status.Section = s.TagBase.Background(primary)
	s.Status.Info = s.Base.Foreground(fgHalfMuted)
	s.Status.Error = s.TagError
	s.Status.Key = s.Base.Foreground(greenDark)

	return s
}
