package model

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/stickylist/internal/catalog"
	"github.com/charmbracelet/stickylist/internal/ui/common"
	"github.com/charmbracelet/stickylist/internal/ui/list"
	"github.com/charmbracelet/stickylist/internal/ui/sticky"
	"github.com/charmbracelet/stickylist/internal/ui/styles"
	"github.com/charmbracelet/stickylist/internal/uiutil"
	"github.com/charmbracelet/stickylist/internal/watch"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/ultraviolet/screen"
)

const (
	minWidth  = 20
	minHeight = 5

	// wheelLines is how far one mouse wheel step scrolls.
	wheelLines = 3
)

// uiFocusState represents the current focus state of the UI.
type uiFocusState uint8

// Possible uiFocusState values.
const (
	uiFocusList uiFocusState = iota
	uiFocusFilter
)

// UI represents the main user interface model.
type UI struct {
	com *common.Common

	// The width and height of the terminal in cells.
	width  int
	height int
	layout layout

	focus  uiFocusState
	keyMap KeyMap
	help   help.Model
	filter textinput.Model

	catalog *catalog.Catalog
	list    *sticky.List

	// status is the info message shown in the status line, if any.
	status *uiutil.InfoMsg

	// err is the error that ended the program.
	err error
}

// New creates a new instance of the [UI] model showing cat.
func New(com *common.Common, cat *catalog.Catalog, title string) *UI {
	ti := textinput.New()
	ti.SetVirtualCursor(false)
	ti.Prompt = "/ "
	ti.Placeholder = "Type to filter"
	ti.SetStyles(com.Styles.TextInput)

	h := help.New()
	h.Styles = com.Styles.Help

	l := sticky.New(cat, com.Config.Options(slog.Default())...)
	if title != "" {
		l.AddHeaderRow(list.NewStringItem(title).WithStyle(com.Styles.List.Title))
	}
	l.AddFooterRow(list.NewStringItem(styles.SectionSeparator + " end").WithStyle(com.Styles.List.Footer))
	l.Host().Focus()

	return &UI{
		com:     com,
		keyMap:  DefaultKeyMap(),
		help:    h,
		filter:  ti,
		catalog: cat,
		list:    l,
	}
}

// Init implements [tea.Model].
func (m *UI) Init() tea.Cmd {
	return nil
}

// List returns the sticky list the UI shows.
func (m *UI) List() *sticky.List {
	return m.list
}

// Err returns the error that ended the program, if any.
func (m *UI) Err() error {
	return m.err
}

// Update handles updates to the UI model.
func (m *UI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.updateLayoutAndSize()
		cmds = append(cmds, m.relayout())
	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			cmds = append(cmds, m.check(m.list.ScrollBy(-wheelLines)))
		case tea.MouseWheelDown:
			cmds = append(cmds, m.check(m.list.ScrollBy(wheelLines)))
		}
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKeyPressMsg(msg))
	case watch.ReloadMsg:
		cmds = append(cmds, m.reload(msg.Path))
	case uiutil.InfoMsg:
		m.status = &msg
		cmds = append(cmds, uiutil.ClearStatus(msg))
	case uiutil.ClearStatusMsg:
		if m.status != nil && *m.status == msg.Msg {
			m.status = nil
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *UI) handleKeyPressMsg(msg tea.KeyPressMsg) tea.Cmd {
	k := &m.keyMap
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.focus == uiFocusFilter {
		switch {
		case key.Matches(msg, k.Filter.Accept):
			m.blurFilter()
			return nil
		case key.Matches(msg, k.Filter.Clear):
			m.filter.Reset()
			m.blurFilter()
			return m.applyFilter("")
		}

		prev := m.filter.Value()
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		if value := m.filter.Value(); value != prev {
			return tea.Batch(cmd, m.applyFilter(value))
		}
		return cmd
	}

	opts := m.list.Options()
	switch {
	case key.Matches(msg, k.Quit):
		return tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateLayoutAndSize()
		return m.relayout()
	case key.Matches(msg, k.Filter.Open):
		m.focus = uiFocusFilter
		m.updateLayoutAndSize()
		return tea.Batch(m.filter.Focus(), m.relayout())
	case key.Matches(msg, k.Filter.Clear):
		if m.catalog.Query() == "" {
			return nil
		}
		m.filter.Reset()
		return m.applyFilter("")
	case key.Matches(msg, k.List.Up):
		return m.check(m.list.ScrollBy(-1))
	case key.Matches(msg, k.List.Down):
		return m.check(m.list.ScrollBy(1))
	case key.Matches(msg, k.List.PageUp):
		return m.check(m.list.ScrollBy(-m.layout.main.Dy()))
	case key.Matches(msg, k.List.PageDown):
		return m.check(m.list.ScrollBy(m.layout.main.Dy()))
	case key.Matches(msg, k.List.Home):
		return m.check(m.list.ScrollToTop())
	case key.Matches(msg, k.List.End):
		return m.check(m.list.ScrollToBottom())
	case key.Matches(msg, k.List.PrevSection):
		_, err := m.list.PrevSection()
		return m.check(err)
	case key.Matches(msg, k.List.NextSection):
		_, err := m.list.NextSection()
		return m.check(err)
	case key.Matches(msg, k.List.SelectNext):
		_, err := m.list.SelectNext()
		return m.check(err)
	case key.Matches(msg, k.List.SelectPrev):
		_, err := m.list.SelectPrev()
		return m.check(err)
	case key.Matches(msg, k.List.Choose):
		if pos := m.list.Selected(); pos >= 0 {
			name := m.catalog.Name(pos)
			slog.Info("Chose entry", "name", name)
			return uiutil.ReportInfo("Chose " + name)
		}
		return nil
	case key.Matches(msg, k.Toggle.Sticky):
		m.list.SetSticky(!opts.Sticky)
		return tea.Batch(m.relayout(), uiutil.ReportInfo("Sticky headers "+onOff(!opts.Sticky)))
	case key.Matches(msg, k.Toggle.DrawUnder):
		m.list.SetDrawUnderStickyHeader(!opts.DrawUnderStickyHeader)
		return tea.Batch(m.relayout(), uiutil.ReportInfo("Drawing under sticky header "+onOff(!opts.DrawUnderStickyHeader)))
	case key.Matches(msg, k.Toggle.Clip):
		m.list.SetClipToPadding(!opts.ClipToPadding)
		return tea.Batch(m.relayout(), uiutil.ReportInfo("Clip to padding "+onOff(!opts.ClipToPadding)))
	}
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (m *UI) blurFilter() {
	m.focus = uiFocusList
	m.filter.Blur()
	m.updateLayoutAndSize()
}

// applyFilter filters the catalog. Positions change, so the list is
// invalidated and starts over from the top.
func (m *UI) applyFilter(query string) tea.Cmd {
	n := m.catalog.Filter(query)
	m.updateLayoutAndSize()
	if err := m.list.DataInvalidated(); err != nil {
		return m.check(err)
	}
	if query != "" && n == 0 {
		return uiutil.ReportWarn(fmt.Sprintf("Nothing matches %q", query))
	}
	return nil
}

// reload replaces the catalog with the file at path, keeping the filter.
func (m *UI) reload(path string) tea.Cmd {
	cat, err := catalog.Load(path, m.com.Styles)
	if err != nil {
		return uiutil.ReportError(err)
	}
	if query := m.catalog.Query(); query != "" {
		cat.Filter(query)
	}
	m.catalog = cat
	m.list.SetSource(cat)
	if err := m.list.Layout(); err != nil {
		return m.check(err)
	}
	slog.Info("Reloaded catalog", "path", path, "entries", cat.Total())
	return uiutil.ReportSuccess("Reloaded " + filepath.Base(path))
}

func (m *UI) relayout() tea.Cmd {
	return m.check(m.list.Layout())
}

// check reports err. Errors from a source breaking its contract end the
// program.
func (m *UI) check(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	if sticky.IsMissingHeader(err) || errors.Is(err, list.ErrNilItem) {
		slog.Error("Sticky list layout failed", "error", err)
		m.err = err
		return tea.Quit
	}
	return uiutil.ReportError(err)
}

// Draw implements [tea.Layer] and draws the UI model.
func (m *UI) Draw(scr uv.Screen, area uv.Rectangle) {
	// Clear the screen first
	screen.Clear(scr)

	if m.layout.tooSmall {
		msg := m.com.Styles.WindowTooSmall.Render("Window too small")
		uv.NewStyledString(msg).Draw(scr, common.CenterRect(area, lipgloss.Width(msg), 1))
		return
	}

	m.list.Draw(scr, m.layout.main)

	if !m.layout.filter.Empty() {
		filter := uv.NewStyledString(m.filter.View())
		filter.Draw(scr, m.layout.filter)
	}

	status := uv.NewStyledString(m.statusView(m.layout.status.Dx()))
	status.Draw(scr, m.layout.status)

	help := uv.NewStyledString(m.help.View(m))
	help.Draw(scr, m.layout.help)
}

func (m *UI) statusView(width int) string {
	t := m.com.Styles
	opts := common.StatusOpts{
		Description: m.catalog.Summary(),
	}
	if label, _, ok := m.list.CurrentSection(); ok && label != "" {
		opts.Title = t.Status.Section.Render(label)
	}

	position := "0/0"
	if n := m.catalog.Len(); n > 0 {
		idx, _ := m.list.Host().Offset()
		idx -= m.list.Host().HeaderRowsBeforeData()
		position = fmt.Sprintf("%d/%d", min(max(idx, 0), n-1)+1, n)
	}
	if _, _, pinned := m.list.Pinned(); pinned {
		position = styles.PinIcon + " " + position
	}
	opts.ExtraContent = t.Status.Key.Render(position)

	if m.status != nil {
		opts.Description = m.status.Msg
		switch m.status.Type {
		case uiutil.InfoTypeError:
			opts.Icon = t.Status.Error.Render(styles.ErrorIcon)
		case uiutil.InfoTypeWarn:
			opts.Icon = styles.WarningIcon
		case uiutil.InfoTypeSuccess:
			opts.Icon = styles.CheckIcon
		default:
			opts.Icon = styles.InfoIcon
		}
		opts.DescriptionColor = t.Status.Info.GetForeground()
	}

	return t.Status.Base.Width(width).MaxWidth(width).Render(common.Status(t, opts, width))
}

// Cursor returns the cursor position and properties for the UI model. It
// returns nil if the cursor should not be shown.
func (m *UI) Cursor() *tea.Cursor {
	if m.focus != uiFocusFilter || m.layout.filter.Empty() {
		return nil
	}
	cur := m.filter.Cursor()
	if cur == nil {
		return nil
	}
	cur.X += m.layout.filter.Min.X
	cur.Y += m.layout.filter.Min.Y
	return cur
}

// View renders the UI model's view.
func (m *UI) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.BackgroundColor = m.com.Styles.Background
	v.Cursor = m.Cursor()
	v.MouseMode = tea.MouseModeCellMotion

	canvas := uv.NewScreenBuffer(m.width, m.height)
	m.Draw(canvas, canvas.Bounds())

	content := strings.ReplaceAll(canvas.Render(), "\r\n", "\n") // normalize newlines
	contentLines := strings.Split(content, "\n")
	for i, line := range contentLines {
		// Trim trailing spaces for concise rendering
		contentLines[i] = strings.TrimRight(line, " ")
	}

	v.Content = strings.Join(contentLines, "\n")
	return v
}

// ShortHelp implements [help.KeyMap].
func (m *UI) ShortHelp() []key.Binding {
	k := &m.keyMap
	if m.focus == uiFocusFilter {
		return []key.Binding{k.Filter.Accept, k.Filter.Clear}
	}
	return []key.Binding{
		k.List.UpDown,
		k.List.Sections,
		k.Filter.Open,
		k.Toggle.Sticky,
		k.Quit,
		k.Help,
	}
}

// FullHelp implements [help.KeyMap].
func (m *UI) FullHelp() [][]key.Binding {
	k := &m.keyMap
	if m.focus == uiFocusFilter {
		return [][]key.Binding{{k.Filter.Accept, k.Filter.Clear}}
	}
	helpKey := k.Help
	helpKey.SetHelp("?", "less")
	return [][]key.Binding{
		{k.List.Up, k.List.Down, k.List.PageUp, k.List.PageDown},
		{k.List.Home, k.List.End, k.List.PrevSection, k.List.NextSection},
		{k.List.SelectNext, k.List.SelectPrev, k.List.Choose},
		{k.Filter.Open, k.Filter.Clear},
		{k.Toggle.Sticky, k.Toggle.DrawUnder, k.Toggle.Clip},
		{helpKey, k.Quit},
	}
}

// updateLayoutAndSize updates the layout and sizes of UI components.
func (m *UI) updateLayoutAndSize() {
	m.layout = m.generateLayout(m.width, m.height)
	m.help.SetWidth(m.layout.help.Dx())
	m.filter.SetWidth(max(0, m.layout.filter.Dx()-lipgloss.Width(m.filter.Prompt)-1)) // (1) cursor padding
	m.list.SetSize(m.layout.main.Dx(), m.layout.main.Dy())
}

// generateLayout calculates the layout rectangles for all UI components based
// on the current UI state and terminal dimensions.
func (m *UI) generateLayout(w, h int) layout {
	// The screen area we're working with
	area := image.Rect(0, 0, w, h)
	if w < minWidth || h < minHeight {
		return layout{area: area, tooSmall: true}
	}

	// The help height
	helpHeight := 1
	var helpKeyMap help.KeyMap = m
	if m.help.ShowAll {
		for _, row := range helpKeyMap.FullHelp() {
			helpHeight = max(helpHeight, len(row))
		}
	}
	helpHeight = min(helpHeight, h-minHeight+1)

	// Layout
	//
	// main
	// ------
	// filter (while filtering)
	// ------
	// status
	// ------
	// help
	appRect, helpRect := uv.SplitVertical(area, uv.Fixed(area.Dy()-helpHeight))
	mainRect, statusRect := uv.SplitVertical(appRect, uv.Fixed(appRect.Dy()-1))

	layout := layout{
		area:   area,
		status: statusRect,
		help:   helpRect,
	}
	if m.focus == uiFocusFilter || m.catalog.Query() != "" {
		mainRect, layout.filter = uv.SplitVertical(mainRect, uv.Fixed(mainRect.Dy()-1))
	}
	layout.main = mainRect
	return layout
}

// layout defines the positioning of UI elements.
type layout struct {
	// area is the overall available area.
	area uv.Rectangle

	// main is the area for the sticky list.
	main uv.Rectangle

	// filter is the area for the filter input, empty when hidden.
	filter uv.Rectangle

	// status is the area for the status line.
	status uv.Rectangle

	// help is the area for the help view.
	help uv.Rectangle

	// tooSmall is set when the terminal can't fit the UI.
	tooSmall bool
}
