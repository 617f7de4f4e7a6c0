package sticky

import (
	"fmt"

	"github.com/charmbracelet/stickylist/internal/ui/list"
)

// Kind tells whether the wrapped source can index its sections.
type Kind int

const (
	KindPlain Kind = iota
	KindIndexed
)

func (k Kind) String() string {
	switch k {
	case KindIndexed:
		return "indexed"
	default:
		return "plain"
	}
}

// Observer receives the adapter's data notifications.
type Observer interface {
	// DataChanged means rows changed in place and positions are stable.
	DataChanged()
	// DataInvalidated means positions may no longer be meaningful.
	DataInvalidated()
}

// Adapter wraps a [Source] as a [list.Adapter]. Every row is returned as a
// [*Cell]; rows that start a section get a header view, rows that share the
// section of the row above do not. Header views released by coalesced rows
// are pooled for reuse.
type Adapter struct {
	src       Source
	indexer   SectionIndexer
	kind      Kind
	pool      Pool
	observers []Observer
}

var _ list.Adapter = (*Adapter)(nil)

// Wrap wraps a source. Sources implementing [SectionIndexer] give an adapter
// of [KindIndexed].
func Wrap(src Source) *Adapter {
	a := &Adapter{src: src}
	if idx, ok := src.(SectionIndexer); ok {
		a.indexer = idx
		a.kind = KindIndexed
	}
	return a
}

// Kind returns the adapter kind.
func (a *Adapter) Kind() Kind {
	return a.kind
}

// Pool returns the header pool.
func (a *Adapter) Pool() *Pool {
	return &a.pool
}

// Observe registers an observer. Observers are notified in registration
// order.
func (a *Adapter) Observe(o Observer) {
	a.observers = append(a.observers, o)
}

// Len implements list.Adapter.
func (a *Adapter) Len() int {
	return a.src.Len()
}

// ItemID implements list.Adapter.
func (a *Adapter) ItemID(position int) int64 {
	return a.src.ItemID(position)
}

// HasStableIDs implements list.Adapter.
func (a *Adapter) HasStableIDs() bool {
	return a.src.HasStableIDs()
}

// ViewType implements list.Adapter.
func (a *Adapter) ViewType(position int) int {
	return a.src.ViewType(position)
}

// Enabled implements list.Adapter.
func (a *Adapter) Enabled(position int) bool {
	return a.src.Enabled(position)
}

// HeaderID returns the section id of the row at position.
func (a *Adapter) HeaderID(position int) HeaderID {
	return a.src.HeaderID(position)
}

// NeedsHeader reports whether the row at position starts a section.
func (a *Adapter) NeedsHeader(position int) bool {
	return position == 0 || a.src.HeaderID(position) != a.src.HeaderID(position-1)
}

// ItemAt implements list.Adapter. It binds the row at position into the
// recycled cell, or a new one.
func (a *Adapter) ItemAt(position int, recycled list.Item) (list.Item, error) {
	cell, _ := recycled.(*Cell)
	if cell == nil {
		cell = &Cell{}
	}

	if a.NeedsHeader(position) {
		if err := a.configureHeader(cell, position); err != nil {
			return nil, err
		}
	} else {
		a.pool.Put(cell.detachHeader())
	}

	content := a.src.ItemAt(position, cell.content)
	if content == nil {
		return nil, fmt.Errorf("sticky: content for position %d: %w", position, list.ErrNilItem)
	}
	cell.content = content
	return cell, nil
}

// configureHeader binds the header for position into the cell, preferring
// the cell's own header view, then a pooled one.
func (a *Adapter) configureHeader(cell *Cell, position int) error {
	recycled := cell.detachHeader()
	if recycled == nil {
		recycled = a.pool.Get()
	}

	header := a.src.HeaderAt(position, recycled)
	if header == nil {
		a.pool.Put(recycled)
		return &MissingHeaderError{Position: position}
	}
	if recycled != nil && header != recycled {
		a.pool.Put(recycled)
	}
	cell.setHeader(header)
	return nil
}

// HeaderAt binds a header view for position outside of any cell.
func (a *Adapter) HeaderAt(position int, recycled list.Item) (list.Item, error) {
	header := a.src.HeaderAt(position, recycled)
	if header == nil {
		return nil, &MissingHeaderError{Position: position}
	}
	return header, nil
}

// Sections returns the section labels, or nil for a plain source.
func (a *Adapter) Sections() []string {
	if a.indexer == nil {
		return nil
	}
	return a.indexer.Sections()
}

// PositionForSection returns the first position of a section, or 0 for a
// plain source.
func (a *Adapter) PositionForSection(section int) int {
	if a.indexer == nil {
		return 0
	}
	return a.indexer.PositionForSection(section)
}

// SectionForPosition returns the section containing position, or -1 for a
// plain source.
func (a *Adapter) SectionForPosition(position int) int {
	if a.indexer == nil {
		return -1
	}
	return a.indexer.SectionForPosition(position)
}

// DataChanged notifies observers that rows changed in place. Pooled headers
// are kept.
func (a *Adapter) DataChanged() {
	for _, o := range a.observers {
		o.DataChanged()
	}
}

// DataInvalidated drops the pooled headers and notifies observers that
// positions are no longer meaningful.
func (a *Adapter) DataInvalidated() {
	a.pool.Clear()
	for _, o := range a.observers {
		o.DataInvalidated()
	}
}
