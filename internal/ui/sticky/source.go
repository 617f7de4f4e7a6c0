// Package sticky implements a list whose rows are grouped in sections, with
// the header of the section at the top of the viewport pinned while rows
// scroll beneath it.
package sticky

import (
	"github.com/charmbracelet/stickylist/internal/ui/list"
	"github.com/zeebo/xxh3"
)

// HeaderID identifies the section a row belongs to. Consecutive rows with the
// same id form one section.
type HeaderID uint64

// HeaderIDFor derives a header id from a section label.
func HeaderIDFor(label string) HeaderID {
	return HeaderID(xxh3.HashString(label))
}

// Source supplies sectioned rows. HeaderID must be a stable function of
// position until the next data invalidation.
type Source interface {
	// Len returns the number of rows.
	Len() int

	// HeaderID returns the section id of the row at position.
	HeaderID(position int) HeaderID

	// ItemAt binds the content of the row at position. recycled is a view
	// previously returned for a row of the same view type, or nil.
	ItemAt(position int, recycled list.Item) list.Item

	// HeaderAt binds the header of the section starting at position.
	// recycled is a header view no longer in use, or nil. It must not
	// return nil.
	HeaderAt(position int, recycled list.Item) list.Item

	ItemID(position int) int64
	HasStableIDs() bool
	ViewType(position int) int
	Enabled(position int) bool
}

// SectionIndexer is implemented by sources that can map between sections
// and positions.
type SectionIndexer interface {
	// Sections returns the section labels in order.
	Sections() []string

	// PositionForSection returns the first position of a section.
	PositionForSection(section int) int

	// SectionForPosition returns the section containing a position.
	SectionForPosition(position int) int
}

// BaseSource can be embedded in a [Source] for the optional defaults: ids are
// positions, there is one view type and every row is enabled.
type BaseSource struct{}

func (BaseSource) ItemID(position int) int64 { return int64(position) }

func (BaseSource) HasStableIDs() bool { return false }

func (BaseSource) ViewType(int) int { return 0 }

func (BaseSource) Enabled(int) bool { return true }
