package sticky

import (
	"github.com/charmbracelet/stickylist/internal/ui/list"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/ultraviolet/screen"
)

// Cell is the view the list shows for a row: the row's content, preceded by
// a header when the row starts a section. A hidden header keeps its lines so
// toggling it never moves the content.
type Cell struct {
	content      list.Item
	header       list.Item
	headerHidden bool
}

var (
	_ list.Item      = (*Cell)(nil)
	_ list.Focusable = (*Cell)(nil)
)

// Content returns the row content.
func (c *Cell) Content() list.Item {
	return c.content
}

// Header returns the header view, or nil when the row shares the header of
// the row above.
func (c *Cell) Header() list.Item {
	return c.header
}

// HasHeader reports whether the cell owns a header.
func (c *Cell) HasHeader() bool {
	return c.header != nil
}

// HeaderVisible reports whether the header is drawn.
func (c *Cell) HeaderVisible() bool {
	return c.header != nil && !c.headerHidden
}

// SetHeaderVisible shows or hides the header.
func (c *Cell) SetHeaderVisible(visible bool) {
	c.headerHidden = !visible
}

func (c *Cell) setHeader(header list.Item) {
	c.header = header
	c.headerHidden = false
}

// detachHeader removes the header from the cell, resets its visibility and
// returns it.
func (c *Cell) detachHeader() list.Item {
	header := c.header
	c.header = nil
	c.headerHidden = false
	return header
}

func (c *Cell) headerHeight(width int) int {
	if c.header == nil {
		return 0
	}
	return c.header.Height(width)
}

// Height implements list.Item.
func (c *Cell) Height(width int) int {
	h := c.headerHeight(width)
	if c.content != nil {
		h += c.content.Height(width)
	}
	return h
}

// Draw implements list.Item.
func (c *Cell) Draw(scr uv.Screen, area uv.Rectangle) {
	y := area.Min.Y
	if c.header != nil {
		h := c.header.Height(area.Dx())
		headerArea := uv.Rect(area.Min.X, y, area.Dx(), h)
		if c.headerHidden {
			screen.ClearArea(scr, headerArea)
		} else {
			c.header.Draw(scr, headerArea)
		}
		y += h
	}
	if c.content != nil && y < area.Max.Y {
		c.content.Draw(scr, uv.Rect(area.Min.X, y, area.Dx(), area.Max.Y-y))
	}
}

// Focus implements list.Focusable by focusing the content.
func (c *Cell) Focus() {
	if f, ok := c.content.(list.Focusable); ok {
		f.Focus()
	}
}

// Blur implements list.Focusable by blurring the content.
func (c *Cell) Blur() {
	if f, ok := c.content.(list.Focusable); ok {
		f.Blur()
	}
}

// IsFocused implements list.Focusable.
func (c *Cell) IsFocused() bool {
	if f, ok := c.content.(list.Focusable); ok {
		return f.IsFocused()
	}
	return false
}
