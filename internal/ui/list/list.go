package list

import (
	"errors"
	"fmt"
	"slices"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/ultraviolet/screen"
	"github.com/charmbracelet/x/exp/ordered"
)

// ErrNilItem is returned by [List.Layout] when an adapter binds a nil item.
var ErrNilItem = errors.New("list: adapter returned a nil item")

// Adapter supplies the data rows of a [List]. Rows are addressed by their
// position in the data set, which does not include the list's fixed header
// and footer rows.
type Adapter interface {
	// Len returns the number of data rows.
	Len() int

	// ItemAt binds the row at position. recycled is a view previously
	// returned for a row of the same view type, or nil; adapters should
	// rebind and return it when they can.
	ItemAt(position int, recycled Item) (Item, error)

	// ViewType classifies the view returned for position. Only views of
	// the same type are offered back as recycled.
	ViewType(position int) int

	// ItemID returns the id of the row at position.
	ItemID(position int) int64

	// HasStableIDs reports whether ItemID is stable across data changes.
	HasStableIDs() bool

	// Enabled reports whether the row at position can be selected.
	Enabled(position int) bool
}

// Child describes a laid-out row in viewport coordinates. Top is inclusive
// and Bottom exclusive; both may lie outside the viewport for partially
// visible rows.
type Child struct {
	// Position is the list position, counting fixed header rows.
	Position int
	Top      int
	Bottom   int
	Item     Item
	// Header and Footer mark the list's fixed non-data rows.
	Header bool
	Footer bool
}

// Height returns the number of lines the child occupies.
func (c Child) Height() int {
	return c.Bottom - c.Top
}

// boundItem is a data view together with the view type it was bound as.
type boundItem struct {
	item     Item
	viewType int
}

type overlay struct {
	item Item
	y    int
}

// List is a virtual list backed by an [Adapter]. Only visible rows are bound
// and laid out; views of rows that scroll out of the viewport are kept as
// scrap and offered back to the adapter for reuse.
//
// The list is scrolled by an anchor: the position of the first visible row
// and the number of its lines scrolled above the top padding.
type List struct {
	// Viewport size
	width, height int

	padTop, padRight, padBottom, padLeft int
	clipToPadding                        bool

	adapter Adapter

	// Fixed rows around the data rows
	headers []Item
	footers []Item

	// offsetIdx is the list position of the anchor row.
	offsetIdx int
	// offsetLine is the number of lines of the anchor row that are
	// scrolled above the top padding. It must always be >= 0.
	offsetLine int

	// Layout state, rebuilt by Layout.
	children []Child
	active   map[int]boundItem // list position -> bound view
	scrap    map[int][]Item    // view type -> detached views
	heights  map[int]int       // list position -> measured height
	dirty    bool              // active views must be rebound

	// clipMargin is the number of leading viewport lines rows are not
	// drawn into.
	clipMargin int
	overlays   []*overlay

	focused     bool
	selectedIdx int // data position, -1 means no selection
	selectedID  int64
}

// New creates a new list backed by the given adapter, which may be nil.
func New(adapter Adapter) *List {
	l := &List{
		clipToPadding: true,
		selectedIdx:   -1,
	}
	l.reset()
	l.adapter = adapter
	return l
}

// SetAdapter replaces the adapter. Scroll position, selection and every
// cached view are dropped.
func (l *List) SetAdapter(adapter Adapter) {
	l.adapter = adapter
	l.reset()
	l.offsetIdx = 0
	l.offsetLine = 0
	l.selectedIdx = -1
}

// Adapter returns the list's adapter.
func (l *List) Adapter() Adapter {
	return l.adapter
}

func (l *List) reset() {
	l.children = nil
	l.active = make(map[int]boundItem)
	l.scrap = make(map[int][]Item)
	l.heights = make(map[int]int)
	l.dirty = false
}

// SetSize sets the size of the list viewport.
func (l *List) SetSize(width, height int) {
	if width != l.width {
		clear(l.heights)
	}
	l.width = width
	l.height = height
}

// SetPadding sets the padding around the rows, in cells.
func (l *List) SetPadding(top, right, bottom, left int) {
	if right+left != l.padRight+l.padLeft {
		clear(l.heights)
	}
	l.padTop = max(0, top)
	l.padRight = max(0, right)
	l.padBottom = max(0, bottom)
	l.padLeft = max(0, left)
}

// SetClipToPadding sets whether rows are clipped to the padded area. When
// false, rows scroll through the top and bottom padding.
func (l *List) SetClipToPadding(clip bool) {
	l.clipToPadding = clip
}

// ClipToPadding returns whether rows are clipped to the padded area.
func (l *List) ClipToPadding() bool {
	return l.clipToPadding
}

// Width returns the width of the list viewport.
func (l *List) Width() int {
	return l.width
}

// Height returns the height of the list viewport.
func (l *List) Height() int {
	return l.height
}

// ContentWidth returns the width rows are measured and drawn at.
func (l *List) ContentWidth() int {
	return max(0, l.width-l.padLeft-l.padRight)
}

// PaddingTop returns the top padding.
func (l *List) PaddingTop() int {
	return l.padTop
}

// AddHeaderRow adds a fixed row before the data rows.
func (l *List) AddHeaderRow(item Item) {
	l.headers = append(l.headers, item)
	l.shiftPositions(len(l.headers)-1, 1)
}

// AddFooterRow adds a fixed row after the data rows.
func (l *List) AddFooterRow(item Item) {
	l.footers = append(l.footers, item)
}

// HeaderRowsBeforeData returns the number of fixed rows before the data rows.
func (l *List) HeaderRowsBeforeData() int {
	return len(l.headers)
}

// Len returns the number of rows in the list, fixed rows included.
func (l *List) Len() int {
	return len(l.headers) + l.dataLen() + len(l.footers)
}

func (l *List) dataLen() int {
	if l.adapter == nil {
		return 0
	}
	return l.adapter.Len()
}

// shiftPositions moves cached state at or after from by delta positions.
func (l *List) shiftPositions(from, delta int) {
	active := make(map[int]boundItem, len(l.active))
	for pos, b := range l.active {
		if pos >= from {
			pos += delta
		}
		active[pos] = b
	}
	l.active = active
	heights := make(map[int]int, len(l.heights))
	for pos, h := range l.heights {
		if pos >= from {
			pos += delta
		}
		heights[pos] = h
	}
	l.heights = heights
	if l.offsetIdx >= from && (l.offsetIdx > 0 || l.offsetLine > 0) {
		l.offsetIdx += delta
	}
}

// DataChanged tells the list the adapter's rows changed in place. Bound
// views are rebound on the next layout and scrap is kept for reuse.
func (l *List) DataChanged() {
	var id int64
	follow := l.adapter != nil && l.adapter.HasStableIDs() && l.selectedIdx >= 0
	if follow {
		id = l.selectedID
	}
	l.dirty = true
	clear(l.heights)
	l.clampAnchor()
	if follow {
		l.selectedIdx = l.positionForID(id)
	}
	l.SetSelected(l.selectedIdx)
}

// DataInvalidated tells the list the adapter's rows are no longer valid.
// Every bound and scrapped view is dropped and the list scrolls to the top.
func (l *List) DataInvalidated() {
	l.reset()
	l.offsetIdx = 0
	l.offsetLine = 0
	l.selectedIdx = -1
}

func (l *List) positionForID(id int64) int {
	for i := range l.dataLen() {
		if l.adapter.ItemID(i) == id {
			return i
		}
	}
	return -1
}

// itemAt binds (if needed) and returns the view for the given list
// position. prev holds the views bound by the previous layout; a view taken
// from it is removed.
func (l *List) itemAt(pos int, prev map[int]boundItem) (Item, error) {
	nh := len(l.headers)
	if pos < nh {
		return l.headers[pos], nil
	}
	dp := pos - nh
	if dp >= l.dataLen() {
		return l.footers[dp-l.dataLen()], nil
	}

	viewType := l.adapter.ViewType(dp)
	var recycled Item
	if b, ok := prev[pos]; ok {
		delete(prev, pos)
		if !l.dirty && b.viewType == viewType {
			l.active[pos] = b
			return b.item, nil
		}
		if b.viewType == viewType {
			recycled = b.item
		} else {
			l.pushScrap(b)
		}
	}
	if recycled == nil {
		recycled = l.popScrap(viewType)
	}

	item, err := l.adapter.ItemAt(dp, recycled)
	if err != nil {
		return nil, fmt.Errorf("bind position %d: %w", dp, err)
	}
	if item == nil {
		return nil, fmt.Errorf("bind position %d: %w", dp, ErrNilItem)
	}
	l.active[pos] = boundItem{item: item, viewType: viewType}
	return item, nil
}

func (l *List) pushScrap(b boundItem) {
	l.scrap[b.viewType] = append(l.scrap[b.viewType], b.item)
}

func (l *List) popScrap(viewType int) Item {
	views := l.scrap[viewType]
	if len(views) == 0 {
		return nil
	}
	item := views[len(views)-1]
	l.scrap[viewType] = views[:len(views)-1]
	return item
}

// heightOf returns the height of the row at pos, binding a scrap view to
// measure it when it has not been measured yet.
func (l *List) heightOf(pos int) (int, error) {
	if h, ok := l.heights[pos]; ok {
		return h, nil
	}
	if b, ok := l.active[pos]; ok && !l.dirty {
		h := b.item.Height(l.ContentWidth())
		l.heights[pos] = h
		return h, nil
	}

	nh := len(l.headers)
	if pos < nh || pos-nh >= l.dataLen() {
		item, err := l.itemAt(pos, nil)
		if err != nil {
			return 0, err
		}
		h := item.Height(l.ContentWidth())
		l.heights[pos] = h
		return h, nil
	}

	dp := pos - nh
	viewType := l.adapter.ViewType(dp)
	item, err := l.adapter.ItemAt(dp, l.popScrap(viewType))
	if err != nil {
		return 0, fmt.Errorf("measure position %d: %w", dp, err)
	}
	if item == nil {
		return 0, fmt.Errorf("measure position %d: %w", dp, ErrNilItem)
	}
	h := item.Height(l.ContentWidth())
	l.pushScrap(boundItem{item: item, viewType: viewType})
	l.heights[pos] = h
	return h, nil
}

// windowHeight returns the number of lines between the top and bottom
// padding.
func (l *List) windowHeight() int {
	return max(0, l.height-l.padTop-l.padBottom)
}

// visibleRange returns the first and last list positions the current anchor
// brings into view, based on measured heights.
func (l *List) visibleRange() (first, last int, err error) {
	bottom := l.height
	if l.clipToPadding {
		bottom -= l.padBottom
	}
	first, last = l.offsetIdx, l.offsetIdx
	top := l.padTop - l.offsetLine
	for pos := l.offsetIdx; pos < l.Len() && top < bottom; pos++ {
		h, err := l.heightOf(pos)
		if err != nil {
			return 0, 0, err
		}
		last = pos
		top += h
	}
	if !l.clipToPadding {
		top = l.padTop - l.offsetLine
		for pos := l.offsetIdx - 1; pos >= 0 && top > 0; pos-- {
			h, err := l.heightOf(pos)
			if err != nil {
				return 0, 0, err
			}
			first = pos
			top -= h
		}
	}
	return first, last, nil
}

// Layout binds and measures the visible rows and records their geometry.
// It must run after any scroll, resize or data change and before Draw.
func (l *List) Layout() error {
	total := l.Len()
	if total == 0 || l.width <= 0 || l.height <= 0 {
		for _, b := range l.active {
			l.pushScrap(b)
		}
		clear(l.active)
		l.children = l.children[:0]
		l.dirty = false
		return nil
	}
	l.clampAnchor()

	first, last, err := l.visibleRange()
	if err != nil {
		return err
	}
	// Views of rows leaving the viewport are scrapped up front so the rows
	// entering it can reuse them.
	prev := l.active
	for pos, b := range prev {
		if pos < first || pos > last {
			delete(prev, pos)
			l.pushScrap(b)
		}
	}
	l.active = make(map[int]boundItem, len(prev))
	l.children = l.children[:0]
	defer func() {
		for _, b := range prev {
			l.pushScrap(b)
		}
		l.dirty = false
	}()

	width := l.ContentWidth()
	focusedPos := -1
	if l.selectedIdx >= 0 {
		focusedPos = l.selectedIdx + len(l.headers)
	}
	bind := func(pos int) (Item, int, error) {
		item, err := l.itemAt(pos, prev)
		if err != nil {
			return nil, 0, err
		}
		if f, ok := item.(Focusable); ok && pos >= len(l.headers) && pos < len(l.headers)+l.dataLen() {
			if l.focused && pos == focusedPos {
				f.Focus()
			} else {
				f.Blur()
			}
		}
		h := item.Height(width)
		l.heights[pos] = h
		return item, h, nil
	}

	bottom := l.height
	if l.clipToPadding {
		bottom -= l.padBottom
	}
	top := l.padTop - l.offsetLine
	for pos := l.offsetIdx; pos < total && top < bottom; pos++ {
		item, h, err := bind(pos)
		if err != nil {
			return err
		}
		l.children = append(l.children, l.child(pos, top, h, item))
		top += h
	}

	// Without clipping the rows above the anchor are visible through the
	// top padding.
	if !l.clipToPadding && len(l.children) > 0 {
		first := l.children[0].Top
		var above []Child
		for pos := l.offsetIdx - 1; pos >= 0 && first > 0; pos-- {
			item, h, err := bind(pos)
			if err != nil {
				return err
			}
			first -= h
			above = append(above, l.child(pos, first, h, item))
		}
		slices.Reverse(above)
		l.children = append(above, l.children...)
	}
	return nil
}

func (l *List) child(pos, top, height int, item Item) Child {
	nh := len(l.headers)
	return Child{
		Position: pos,
		Top:      top,
		Bottom:   top + height,
		Item:     item,
		Header:   pos < nh,
		Footer:   pos >= nh+l.dataLen(),
	}
}

// ChildCount returns the number of laid-out rows.
func (l *List) ChildCount() int {
	return len(l.children)
}

// ChildAt returns the laid-out row at index i, top to bottom.
func (l *List) ChildAt(i int) Child {
	return l.children[i]
}

// Children returns the laid-out rows, top to bottom.
func (l *List) Children() []Child {
	return l.children
}

// FirstVisiblePosition returns the list position of the topmost laid-out
// row.
func (l *List) FirstVisiblePosition() int {
	if len(l.children) == 0 {
		return l.offsetIdx
	}
	return l.children[0].Position
}

// SetLeadingClipMargin sets the number of leading viewport lines rows are
// not drawn into.
func (l *List) SetLeadingClipMargin(lines int) {
	l.clipMargin = max(0, lines)
}

// LeadingClipMargin returns the leading clip margin.
func (l *List) LeadingClipMargin() int {
	return l.clipMargin
}

// AttachOverlay adds an item drawn above the rows. Attaching an attached
// item is a no-op.
func (l *List) AttachOverlay(item Item) {
	if l.overlayFor(item) != nil {
		return
	}
	l.overlays = append(l.overlays, &overlay{item: item})
}

// DetachOverlay removes an overlay item.
func (l *List) DetachOverlay(item Item) {
	l.overlays = slices.DeleteFunc(l.overlays, func(o *overlay) bool {
		return o.item == item
	})
}

// SetVerticalOffset sets the viewport line an overlay item is drawn at.
func (l *List) SetVerticalOffset(item Item, y int) {
	if o := l.overlayFor(item); o != nil {
		o.y = y
	}
}

// Overlays returns the attached overlay items in drawing order.
func (l *List) Overlays() []Item {
	items := make([]Item, 0, len(l.overlays))
	for _, o := range l.overlays {
		items = append(items, o.item)
	}
	return items
}

// VerticalOffset returns the offset of an overlay item and whether it is
// attached.
func (l *List) VerticalOffset(item Item) (int, bool) {
	if o := l.overlayFor(item); o != nil {
		return o.y, true
	}
	return 0, false
}

func (l *List) overlayFor(item Item) *overlay {
	for _, o := range l.overlays {
		if o.item == item {
			return o
		}
	}
	return nil
}

// Offset returns the scroll anchor: the list position of the first row and
// the number of its lines scrolled out of view.
func (l *List) Offset() (idx, line int) {
	return l.offsetIdx, l.offsetLine
}

// clampAnchor keeps the anchor on an existing row.
func (l *List) clampAnchor() {
	total := l.Len()
	if total == 0 {
		l.offsetIdx, l.offsetLine = 0, 0
		return
	}
	if l.offsetIdx >= total {
		l.offsetIdx, l.offsetLine = total-1, 0
	}
	if l.offsetIdx < 0 {
		l.offsetIdx, l.offsetLine = 0, 0
	}
}

// maxAnchor returns the anchor at which the last row's bottom rests on the
// bottom padding.
func (l *List) maxAnchor() (idx, line int, err error) {
	window := l.windowHeight()
	var total int
	for i := l.Len() - 1; i >= 0; i-- {
		h, err := l.heightOf(i)
		if err != nil {
			return 0, 0, err
		}
		total += h
		if total >= window {
			return i, total - window, nil
		}
	}
	return 0, 0, nil
}

// ScrollBy scrolls the list by the given number of lines.
func (l *List) ScrollBy(lines int) error {
	if l.Len() == 0 || lines == 0 {
		return nil
	}
	l.clampAnchor()

	if lines > 0 {
		maxIdx, maxLine, err := l.maxAnchor()
		if err != nil {
			return err
		}
		l.offsetLine += lines
		for l.offsetIdx < maxIdx {
			h, err := l.heightOf(l.offsetIdx)
			if err != nil {
				return err
			}
			if l.offsetLine < h {
				break
			}
			l.offsetLine -= h
			l.offsetIdx++
		}
		if l.offsetIdx > maxIdx || (l.offsetIdx == maxIdx && l.offsetLine > maxLine) {
			l.offsetIdx, l.offsetLine = maxIdx, maxLine
		}
		return nil
	}

	l.offsetLine += lines // lines is negative
	for l.offsetLine < 0 {
		if l.offsetIdx <= 0 {
			l.ScrollToTop()
			break
		}
		l.offsetIdx--
		h, err := l.heightOf(l.offsetIdx)
		if err != nil {
			return err
		}
		l.offsetLine += h
	}
	return nil
}

// ScrollToTop scrolls the list to the top.
func (l *List) ScrollToTop() {
	l.offsetIdx = 0
	l.offsetLine = 0
}

// ScrollToBottom scrolls the list so the last row rests on the bottom.
func (l *List) ScrollToBottom() error {
	idx, line, err := l.maxAnchor()
	if err != nil {
		return err
	}
	l.offsetIdx, l.offsetLine = idx, line
	return nil
}

// ScrollToPosition scrolls the row at the given list position to the top,
// or as close to it as the end of the list allows.
func (l *List) ScrollToPosition(pos int) error {
	total := l.Len()
	if total == 0 {
		return nil
	}
	pos = ordered.Clamp(pos, 0, total-1)
	maxIdx, maxLine, err := l.maxAnchor()
	if err != nil {
		return err
	}
	l.offsetIdx, l.offsetLine = pos, 0
	if pos > maxIdx {
		l.offsetIdx, l.offsetLine = maxIdx, maxLine
	}
	return nil
}

// AtTop returns whether the list is scrolled to the top.
func (l *List) AtTop() bool {
	return l.offsetIdx == 0 && l.offsetLine == 0
}

// AtBottom returns whether the list is scrolled to the bottom.
func (l *List) AtBottom() bool {
	idx, line, err := l.maxAnchor()
	if err != nil {
		return false
	}
	return l.offsetIdx > idx || (l.offsetIdx == idx && l.offsetLine >= line)
}

// Focus sets the focus state of the list.
func (l *List) Focus() {
	l.focused = true
}

// Blur removes the focus state from the list.
func (l *List) Blur() {
	l.focused = false
}

// Focused returns whether the list is focused.
func (l *List) Focused() bool {
	return l.focused
}

// SetSelected sets the selected data position. Out of range positions clear
// the selection.
func (l *List) SetSelected(position int) {
	if position < 0 || position >= l.dataLen() {
		l.selectedIdx = -1
		l.selectedID = 0
		return
	}
	l.selectedIdx = position
	l.selectedID = l.adapter.ItemID(position)
}

// Selected returns the selected data position, or -1 if nothing is selected.
func (l *List) Selected() int {
	return l.selectedIdx
}

// SelectedID returns the id of the selected row and whether there is one.
func (l *List) SelectedID() (int64, bool) {
	if l.selectedIdx < 0 {
		return 0, false
	}
	return l.selectedID, true
}

// SelectNext selects the next enabled row.
// It returns whether the selection changed.
func (l *List) SelectNext() bool {
	for i := l.selectedIdx + 1; i < l.dataLen(); i++ {
		if l.adapter.Enabled(i) {
			l.SetSelected(i)
			return true
		}
	}
	return false
}

// SelectPrev selects the previous enabled row.
// It returns whether the selection changed.
func (l *List) SelectPrev() bool {
	start := l.selectedIdx - 1
	if l.selectedIdx < 0 {
		start = l.dataLen() - 1
	}
	for i := start; i >= 0; i-- {
		if l.adapter.Enabled(i) {
			l.SetSelected(i)
			return true
		}
	}
	return false
}

// ScrollToSelected scrolls the list so the selected row is fully visible.
func (l *List) ScrollToSelected() error {
	if l.selectedIdx < 0 {
		return nil
	}
	pos := l.selectedIdx + len(l.headers)
	if pos < l.offsetIdx || (pos == l.offsetIdx && l.offsetLine > 0) {
		l.offsetIdx, l.offsetLine = pos, 0
		return nil
	}

	// Scroll so the selected row's bottom rests on the bottom padding.
	window := l.windowHeight()
	var total int
	for i := pos; i >= l.offsetIdx; i-- {
		h, err := l.heightOf(i)
		if err != nil {
			return err
		}
		if i == l.offsetIdx {
			total -= l.offsetLine
		}
		total += h
	}
	if total <= window {
		return nil
	}
	return l.ScrollBy(total - window)
}

// Draw implements uv.Drawable. It draws the rows recorded by the last
// [List.Layout] and then the overlays.
func (l *List) Draw(scr uv.Screen, area uv.Rectangle) {
	screen.ClearArea(scr, area)
	if area.Dx() <= 0 || area.Dy() <= 0 {
		return
	}

	minY, maxY := l.clipMargin, l.height
	if l.clipToPadding {
		minY = max(minY, l.padTop)
		maxY -= l.padBottom
	}
	for _, c := range l.children {
		l.drawItem(scr, area, c.Item, c.Top, c.Height(), minY, maxY)
	}

	minY = 0
	if l.clipToPadding {
		minY = l.padTop
	}
	width := l.ContentWidth()
	for _, o := range l.overlays {
		l.drawItem(scr, area, o.item, o.y, o.item.Height(width), minY, l.height)
	}
}

// drawItem renders item into its own buffer and copies the lines that fall
// within [minY, maxY) of the viewport into the screen.
func (l *List) drawItem(scr uv.Screen, area uv.Rectangle, item Item, y, height, minY, maxY int) {
	width := l.ContentWidth()
	if height <= 0 || width <= 0 || y >= maxY || y+height <= minY {
		return
	}

	buf := uv.NewScreenBuffer(width, height)
	item.Draw(&buf, uv.Rect(0, 0, width, height))

	for srcY := 0; srcY < height; srcY++ {
		dstY := y + srcY
		if dstY < minY || dstY >= maxY || area.Min.Y+dstY >= area.Max.Y {
			continue
		}
		if srcY >= buf.Height() {
			break
		}

		line := buf.Line(srcY)
		destX := area.Min.X + l.padLeft
		for x := 0; x < len(line) && x < width && destX < area.Max.X; x++ {
			scr.SetCell(destX, area.Min.Y+dstY, line.At(x))
			destX++
		}
	}
}

// Render draws the list into a buffer of its own size and returns the
// result.
func (l *List) Render() string {
	if l.width <= 0 || l.height <= 0 {
		return ""
	}
	buf := uv.NewScreenBuffer(l.width, l.height)
	l.Draw(&buf, buf.Bounds())
	return buf.Render()
}
