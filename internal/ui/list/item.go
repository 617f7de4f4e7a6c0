package list

import (
	"strings"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/ultraviolet/screen"
)

// Item represents a list item that can draw itself to a UV buffer.
// Items implement the uv.Drawable interface.
type Item interface {
	uv.Drawable

	// Height returns the item's height in lines for the given width.
	// This allows items to calculate height based on text wrapping and available space.
	Height(width int) int
}

// Focusable is an optional interface for items that support focus.
// When implemented, items can change appearance when focused (borders, colors, etc).
type Focusable interface {
	Focus()
	Blur()
	IsFocused() bool
}

// BaseFocusable provides common focus state and styling for items.
// Embed this type to add focus behavior to any item.
type BaseFocusable struct {
	focused    bool
	focusStyle *lipgloss.Style
	blurStyle  *lipgloss.Style
}

// Focus implements Focusable interface.
func (b *BaseFocusable) Focus() {
	b.focused = true
}

// Blur implements Focusable interface.
func (b *BaseFocusable) Blur() {
	b.focused = false
}

// IsFocused implements Focusable interface.
func (b *BaseFocusable) IsFocused() bool {
	return b.focused
}

// HasFocusStyles returns true if both focus and blur styles are configured.
func (b *BaseFocusable) HasFocusStyles() bool {
	return b.focusStyle != nil && b.blurStyle != nil
}

// CurrentStyle returns the current style based on focus state.
// Returns nil if no styles are configured, or if the current state's style is nil.
func (b *BaseFocusable) CurrentStyle() *lipgloss.Style {
	if b.focused {
		return b.focusStyle
	}
	return b.blurStyle
}

// SetFocusStyles sets the focus and blur styles.
func (b *BaseFocusable) SetFocusStyles(focusStyle, blurStyle *lipgloss.Style) {
	b.focusStyle = focusStyle
	b.blurStyle = blurStyle
}

// StringItem is a simple string-based item with optional text wrapping.
// It caches wrapped content by width, so rebinding it to new content through
// SetContent is cheap and lets adapters recycle it across positions.
type StringItem struct {
	BaseFocusable
	content string // Raw content string (may contain ANSI styles)
	wrap    bool

	// Cache for wrapped content at specific widths
	cache map[int]string
}

var _ Item = (*StringItem)(nil)

// NewStringItem creates a new string item with the given content.
func NewStringItem(content string) *StringItem {
	return &StringItem{
		content: content,
		cache:   make(map[int]string),
	}
}

// NewWrappingStringItem creates a new string item that wraps text to fit width.
func NewWrappingStringItem(content string) *StringItem {
	s := NewStringItem(content)
	s.wrap = true
	return s
}

// WithFocusStyles sets the focus and blur styles for the string item.
func (s *StringItem) WithFocusStyles(focusStyle, blurStyle *lipgloss.Style) *StringItem {
	s.SetFocusStyles(focusStyle, blurStyle)
	return s
}

// WithStyle uses the same style whether or not the item is focused.
func (s *StringItem) WithStyle(style lipgloss.Style) *StringItem {
	s.SetFocusStyles(&style, &style)
	return s
}

// Content returns the raw content of the item.
func (s *StringItem) Content() string {
	return s.content
}

// SetContent replaces the content of the item and drops the wrap cache.
func (s *StringItem) SetContent(content string) {
	if content == s.content {
		return
	}
	s.content = content
	clear(s.cache)
}

// Height implements Item.
func (s *StringItem) Height(width int) int {
	contentWidth := width
	style := s.CurrentStyle()
	if style != nil {
		contentWidth -= style.GetHorizontalFrameSize()
	}

	lines := strings.Count(s.wrapped(contentWidth), "\n") + 1
	if style != nil {
		lines += style.GetVerticalFrameSize()
	}
	return lines
}

// Draw implements Item and uv.Drawable.
func (s *StringItem) Draw(scr uv.Screen, area uv.Rectangle) {
	width := area.Dx()
	style := s.CurrentStyle()

	contentWidth := width
	if style != nil {
		contentWidth -= style.GetHorizontalFrameSize()
	}
	content := s.wrapped(contentWidth)

	if style != nil {
		content = style.Width(width).Render(content)
	}

	styled := uv.NewStyledString(content)
	styled.Draw(scr, area)
}

func (s *StringItem) wrapped(width int) string {
	if !s.wrap || width <= 0 {
		return s.content
	}
	if content, ok := s.cache[width]; ok {
		return content
	}
	content := lipgloss.Wrap(s.content, width, "")
	s.cache[width] = content
	return content
}

// SpacerItem is an empty item that takes up vertical space.
// Useful for adding gaps between items in a list.
type SpacerItem struct {
	height int
}

var _ Item = (*SpacerItem)(nil)

// NewSpacerItem creates a new spacer item with the given height in lines.
func NewSpacerItem(height int) *SpacerItem {
	return &SpacerItem{
		height: height,
	}
}

// Height implements Item.
func (s *SpacerItem) Height(int) int {
	return s.height
}

// Draw implements Item.
// Spacer items don't draw anything, they just take up space.
func (s *SpacerItem) Draw(scr uv.Screen, area uv.Rectangle) {
	screen.ClearArea(scr, area)
}
