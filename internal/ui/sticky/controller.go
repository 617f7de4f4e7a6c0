package sticky

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/stickylist/internal/ui/list"
)

// Host is the list the controller pins headers over. [*list.List]
// satisfies it.
type Host interface {
	ContentWidth() int
	PaddingTop() int
	ClipToPadding() bool

	ChildCount() int
	ChildAt(i int) list.Child
	FirstVisiblePosition() int
	HeaderRowsBeforeData() int

	SetLeadingClipMargin(lines int)
	AttachOverlay(item list.Item)
	DetachOverlay(item list.Item)
	SetVerticalOffset(item list.Item, y int)
}

var _ Host = (*list.List)(nil)

// pinnedHeader is the header currently pinned. The controller holds a nil
// *pinnedHeader when nothing is pinned.
type pinnedHeader struct {
	position int
	id       HeaderID
	view     list.Item
	height   int

	offset int
	// offsetValid is false when the offset must be applied to the host even
	// if it did not change.
	offsetValid bool
}

// Controller pins the header of the section at the top of the host's
// viewport and pushes it up as the next section's header arrives.
type Controller struct {
	host    Host
	adapter *Adapter
	opts    *Options
	logger  *slog.Logger

	pinned *pinnedHeader
}

var _ Observer = (*Controller)(nil)

// NewController creates a controller for the host's rows, which must be
// bound by adapter. opts is read on every pass, so changes to it apply on
// the next [Controller.Update].
func NewController(host Host, adapter *Adapter, opts *Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		host:    host,
		adapter: adapter,
		opts:    opts,
		logger:  logger,
	}
}

// StickyTop returns the line a pinned header rests on.
func (c *Controller) StickyTop() int {
	if c.host.ClipToPadding() {
		return c.host.PaddingTop()
	}
	return 0
}

// Pinned returns the position and id of the pinned header.
func (c *Controller) Pinned() (position int, id HeaderID, ok bool) {
	if c.pinned == nil {
		return 0, 0, false
	}
	return c.pinned.position, c.pinned.id, true
}

// PinnedView returns the pinned header view, or nil.
func (c *Controller) PinnedView() list.Item {
	if c.pinned == nil {
		return nil
	}
	return c.pinned.view
}

// PinnedOffset returns the line the pinned header is drawn at.
func (c *Controller) PinnedOffset() (int, bool) {
	if c.pinned == nil || !c.pinned.offsetValid {
		return 0, false
	}
	return c.pinned.offset, true
}

// Measure measures the pinned header against the host's content width.
func (c *Controller) Measure() {
	if c.pinned == nil {
		return
	}
	h := c.pinned.view.Height(c.host.ContentWidth())
	if h != c.pinned.height {
		c.pinned.height = h
		c.pinned.offsetValid = false
	}
}

// Update recomputes the pinned header for the current host geometry.
// firstVisible is the list position of the first visible row.
//
// A source producing no header for the section to pin returns a
// [*MissingHeaderError]; the pinned header is then left as it was.
func (c *Controller) Update(firstVisible int) error {
	count := c.adapter.Len()
	if count == 0 || !c.opts.Sticky {
		c.Clear()
		return nil
	}
	if c.host.ChildCount() == 0 {
		c.Clear()
		return nil
	}

	stickyTop := c.StickyTop()
	first := c.host.ChildAt(0)
	headerPosition := firstVisible - c.host.HeaderRowsBeforeData()
	if first.Bottom < stickyTop {
		// The first row is about to leave, the next row's section is
		// already current.
		headerPosition++
	}

	if c.host.FirstVisiblePosition() == 0 && first.Top >= stickyTop {
		c.Clear()
		return nil
	}
	if headerPosition < 0 || headerPosition >= count {
		err := &InvalidSectionRangeError{Position: headerPosition, Count: count}
		c.logger.Debug("Clearing sticky header", "error", err)
		c.Clear()
		return nil
	}

	return c.updateHeader(headerPosition)
}

func (c *Controller) updateHeader(position int) error {
	if c.pinned == nil || c.pinned.position != position {
		id := c.adapter.HeaderID(position)
		if c.pinned == nil || c.pinned.id != id {
			if err := c.swap(position, id); err != nil {
				return err
			}
		}
		c.pinned.position = position
	}

	stickyTop := c.StickyTop()
	offset := stickyTop
	for i := range c.host.ChildCount() {
		child := c.host.ChildAt(i)
		cell, _ := child.Item.(*Cell)
		hasHeader := cell != nil && cell.HasHeader()
		if child.Top >= stickyTop && (hasHeader || child.Footer) {
			offset = min(offset, child.Top-c.pinned.height)
			break
		}
	}
	c.setOffset(offset)

	if c.opts.DrawUnderStickyHeader {
		c.host.SetLeadingClipMargin(0)
	} else {
		c.host.SetLeadingClipMargin(c.pinned.height + c.pinned.offset)
	}

	c.updateHeaderVisibilities()
	return nil
}

// swap pins the header for position, reusing the current pinned view when
// the source rebinds it.
func (c *Controller) swap(position int, id HeaderID) error {
	var prev list.Item
	if c.pinned != nil {
		prev = c.pinned.view
	}
	view, err := c.adapter.HeaderAt(position, prev)
	if err != nil {
		return err
	}
	if view != prev {
		if prev != nil {
			c.host.DetachOverlay(prev)
		}
		c.host.AttachOverlay(view)
	}
	c.logger.Debug("Pinned sticky header", "position", position, "id", uint64(id))

	c.pinned = &pinnedHeader{
		position: position,
		id:       id,
		view:     view,
		height:   view.Height(c.host.ContentWidth()),
	}
	return nil
}

func (c *Controller) setOffset(offset int) {
	if c.pinned.offsetValid && c.pinned.offset == offset {
		return
	}
	c.pinned.offset = offset
	c.pinned.offsetValid = true
	c.host.SetVerticalOffset(c.pinned.view, offset)
}

// Clear unpins the header, releases the clip margin and shows every in-row
// header again.
func (c *Controller) Clear() {
	if c.pinned != nil {
		c.host.DetachOverlay(c.pinned.view)
		c.pinned = nil
	}
	c.host.SetLeadingClipMargin(0)
	c.updateHeaderVisibilities()
}

// updateHeaderVisibilities hides the in-row headers covered by the pinned
// header and shows the others.
func (c *Controller) updateHeaderVisibilities() {
	stickyTop := c.StickyTop()
	for i := range c.host.ChildCount() {
		child := c.host.ChildAt(i)
		cell, ok := child.Item.(*Cell)
		if !ok || !cell.HasHeader() {
			continue
		}
		cell.SetHeaderVisible(c.pinned == nil || child.Top >= stickyTop)
	}
}

// DataChanged implements Observer.
func (c *Controller) DataChanged() {
	c.Clear()
}

// DataInvalidated implements Observer.
func (c *Controller) DataInvalidated() {
	c.Clear()
}

// IsMissingHeader reports whether err is caused by a source producing no
// header view.
func IsMissingHeader(err error) bool {
	return errors.Is(err, ErrMissingHeader)
}
