package sticky

import (
	"github.com/charmbracelet/stickylist/internal/ui/list"
	uv "github.com/charmbracelet/ultraviolet"
)

// List is a sectioned list with a sticky header. It ties a [list.List] host,
// the [Adapter] binding its rows and the [Controller] pinning headers over
// it. Every operation that moves rows finishes with a layout pass.
type List struct {
	host       *list.List
	adapter    *Adapter
	controller *Controller
	opts       *Options
}

// New creates a sticky list over src, which may be nil.
func New(src Source, opts ...Option) *List {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	l := &List{
		host: list.New(nil),
		opts: &o,
	}
	l.host.SetClipToPadding(o.ClipToPadding)
	l.host.SetPadding(o.Padding.Top, o.Padding.Right, o.Padding.Bottom, o.Padding.Left)
	l.SetSource(src)
	return l
}

// SetSource replaces the source. The pinned header and every cached view
// are dropped. A nil source leaves the list empty.
func (l *List) SetSource(src Source) {
	if l.controller != nil {
		l.controller.Clear()
	}
	if src == nil {
		l.adapter = nil
		l.controller = nil
		l.host.SetAdapter(nil)
		return
	}

	l.adapter = Wrap(src)
	l.controller = NewController(l.host, l.adapter, l.opts)
	l.adapter.Observe(l.host)
	l.adapter.Observe(l.controller)
	l.host.SetAdapter(l.adapter)
}

// Host returns the underlying list.
func (l *List) Host() *list.List {
	return l.host
}

// Adapter returns the adapter, or nil without a source.
func (l *List) Adapter() *Adapter {
	return l.adapter
}

// Controller returns the controller, or nil without a source.
func (l *List) Controller() *Controller {
	return l.controller
}

// Options returns a copy of the current options.
func (l *List) Options() Options {
	return *l.opts
}

// SetSize sets the viewport size. It takes effect on the next layout.
func (l *List) SetSize(width, height int) {
	l.host.SetSize(width, height)
}

// SetPadding sets the padding. It takes effect on the next layout.
func (l *List) SetPadding(p Padding) {
	l.opts.Padding = p
	l.host.SetPadding(p.Top, p.Right, p.Bottom, p.Left)
}

// SetClipToPadding sets whether rows are clipped to the padded area. It
// takes effect on the next layout.
func (l *List) SetClipToPadding(clip bool) {
	l.opts.ClipToPadding = clip
	l.host.SetClipToPadding(clip)
}

// SetSticky enables or disables pinning. It takes effect on the next layout.
func (l *List) SetSticky(sticky bool) {
	l.opts.Sticky = sticky
}

// SetDrawUnderStickyHeader sets whether rows draw beneath the pinned header.
// It takes effect on the next layout.
func (l *List) SetDrawUnderStickyHeader(draw bool) {
	l.opts.DrawUnderStickyHeader = draw
}

// AddHeaderRow adds a fixed row above the data rows.
func (l *List) AddHeaderRow(item list.Item) {
	l.host.AddHeaderRow(item)
}

// AddFooterRow adds a fixed row below the data rows. Footer rows push the
// pinned header up like section headers do.
func (l *List) AddFooterRow(item list.Item) {
	l.host.AddFooterRow(item)
}

// Layout lays out the visible rows and recomputes the pinned header.
func (l *List) Layout() error {
	if err := l.host.Layout(); err != nil {
		return err
	}
	if l.controller == nil {
		return nil
	}
	l.controller.Measure()
	return l.controller.Update(l.host.FirstVisiblePosition())
}

// ScrollBy scrolls by the given number of lines.
func (l *List) ScrollBy(lines int) error {
	if err := l.host.ScrollBy(lines); err != nil {
		return err
	}
	return l.Layout()
}

// ScrollToTop scrolls to the first row.
func (l *List) ScrollToTop() error {
	l.host.ScrollToTop()
	return l.Layout()
}

// ScrollToBottom scrolls to the last row.
func (l *List) ScrollToBottom() error {
	if err := l.host.ScrollToBottom(); err != nil {
		return err
	}
	return l.Layout()
}

// ScrollToPosition scrolls the data row at position to the top.
func (l *List) ScrollToPosition(position int) error {
	if err := l.host.ScrollToPosition(position + l.host.HeaderRowsBeforeData()); err != nil {
		return err
	}
	return l.Layout()
}

// JumpToSection scrolls to the first row of a section. It needs a source
// implementing [SectionIndexer] and reports whether it moved.
func (l *List) JumpToSection(section int) (bool, error) {
	if l.adapter == nil || l.adapter.Kind() != KindIndexed {
		return false, nil
	}
	if section < 0 || section >= len(l.adapter.Sections()) {
		return false, nil
	}
	return true, l.ScrollToPosition(l.adapter.PositionForSection(section))
}

// NextSection scrolls to the start of the section after the current one.
func (l *List) NextSection() (bool, error) {
	pos, ok := l.currentPosition()
	if !ok {
		return false, nil
	}
	for p := pos + 1; p < l.adapter.Len(); p++ {
		if l.adapter.NeedsHeader(p) {
			return true, l.ScrollToPosition(p)
		}
	}
	return false, nil
}

// PrevSection scrolls to the start of the current section, or to the start
// of the previous one when the current section's first row is already at
// the top.
func (l *List) PrevSection() (bool, error) {
	pos, ok := l.currentPosition()
	if !ok {
		return false, nil
	}
	start := l.sectionStart(pos)
	if top, ok := l.topDataPosition(); ok && top == start && l.atRowTop() {
		if start == 0 {
			return false, nil
		}
		start = l.sectionStart(start - 1)
	}
	return true, l.ScrollToPosition(start)
}

func (l *List) sectionStart(pos int) int {
	for pos > 0 && !l.adapter.NeedsHeader(pos) {
		pos--
	}
	return pos
}

// topDataPosition returns the data position of the anchor row.
func (l *List) topDataPosition() (int, bool) {
	idx, _ := l.host.Offset()
	pos := idx - l.host.HeaderRowsBeforeData()
	if l.adapter == nil || pos < 0 || pos >= l.adapter.Len() {
		return 0, false
	}
	return pos, true
}

func (l *List) atRowTop() bool {
	_, line := l.host.Offset()
	return line == 0
}

// currentPosition returns the data position whose section is current: the
// pinned header's, else the first visible data row's.
func (l *List) currentPosition() (int, bool) {
	if l.adapter == nil || l.adapter.Len() == 0 {
		return 0, false
	}
	if pos, _, ok := l.controller.Pinned(); ok {
		return pos, true
	}
	pos := l.host.FirstVisiblePosition() - l.host.HeaderRowsBeforeData()
	return min(max(pos, 0), l.adapter.Len()-1), true
}

// Selected returns the selected data position, or -1.
func (l *List) Selected() int {
	return l.host.Selected()
}

// SelectNext selects the next enabled row and scrolls it into view. It
// reports whether the selection moved.
func (l *List) SelectNext() (bool, error) {
	if !l.host.SelectNext() {
		return false, nil
	}
	return true, l.revealSelected()
}

// SelectPrev selects the previous enabled row and scrolls it into view. It
// reports whether the selection moved.
func (l *List) SelectPrev() (bool, error) {
	if !l.host.SelectPrev() {
		return false, nil
	}
	return true, l.revealSelected()
}

// revealSelected scrolls the selected row into view, then out from under the
// pinned header.
func (l *List) revealSelected() error {
	if err := l.host.ScrollToSelected(); err != nil {
		return err
	}
	if err := l.Layout(); err != nil {
		return err
	}
	if l.controller == nil {
		return nil
	}
	offset, ok := l.controller.PinnedOffset()
	if !ok {
		return nil
	}
	covered := offset + l.controller.pinned.height

	position := l.host.Selected() + l.host.HeaderRowsBeforeData()
	for i := range l.host.ChildCount() {
		child := l.host.ChildAt(i)
		if child.Position != position {
			continue
		}
		top := child.Top
		if cell, ok := child.Item.(*Cell); ok {
			top += cell.headerHeight(l.host.ContentWidth())
		}
		if top >= covered {
			return nil
		}
		return l.ScrollBy(top - covered)
	}
	return nil
}

// CurrentSection returns the label and index of the current section. Plain
// sources have no labels and report index -1.
func (l *List) CurrentSection() (label string, index int, ok bool) {
	pos, ok := l.currentPosition()
	if !ok {
		return "", -1, false
	}
	index = l.adapter.SectionForPosition(pos)
	if sections := l.adapter.Sections(); index >= 0 && index < len(sections) {
		label = sections[index]
	}
	return label, index, true
}

// Pinned returns the position and id of the pinned header.
func (l *List) Pinned() (position int, id HeaderID, ok bool) {
	if l.controller == nil {
		return 0, 0, false
	}
	return l.controller.Pinned()
}

// DataChanged tells the list the source's rows changed in place.
func (l *List) DataChanged() error {
	if l.adapter == nil {
		return nil
	}
	l.adapter.DataChanged()
	return l.Layout()
}

// DataInvalidated tells the list the source's positions are no longer
// meaningful. Cached views, pooled headers and the pinned header are
// dropped.
func (l *List) DataInvalidated() error {
	if l.adapter == nil {
		return nil
	}
	l.adapter.DataInvalidated()
	return l.Layout()
}

// Draw implements uv.Drawable. It draws the frame computed by the last
// layout.
func (l *List) Draw(scr uv.Screen, area uv.Rectangle) {
	l.host.Draw(scr, area)
}

// View renders the frame computed by the last layout.
func (l *List) View() string {
	return l.host.Render()
}
