package sticky

import "github.com/charmbracelet/stickylist/internal/ui/list"

// Pool is a FIFO free list of header views detached from cells. Header views
// are interchangeable, so the pool does not track which section a view last
// showed.
type Pool struct {
	views []list.Item
}

// Get removes and returns the oldest pooled view, or nil if the pool is
// empty.
func (p *Pool) Get() list.Item {
	if len(p.views) == 0 {
		return nil
	}
	v := p.views[0]
	p.views[0] = nil
	p.views = p.views[1:]
	return v
}

// Put returns a view to the pool. Nil views are ignored.
func (p *Pool) Put(v list.Item) {
	if v == nil {
		return
	}
	p.views = append(p.views, v)
}

// Len returns the number of pooled views.
func (p *Pool) Len() int {
	return len(p.views)
}

// Clear drops every pooled view.
func (p *Pool) Clear() {
	clear(p.views)
	p.views = nil
}
