package sticky

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/stickylist/internal/ui/list"
)

// testSource groups rows by the keys it is created with. Header views are
// StringItems showing "[key]" followed by blank lines up to headerLines.
type testSource struct {
	BaseSource
	keys        []string
	headerLines int
	nilHeaders  map[int]bool

	headersMade []list.Item
	headerCalls int
	recycledIn  []list.Item
}

func newTestSource(headerLines int, keys ...string) *testSource {
	return &testSource{keys: keys, headerLines: max(1, headerLines)}
}

func (s *testSource) Len() int { return len(s.keys) }

func (s *testSource) HeaderID(position int) HeaderID {
	return HeaderIDFor(s.keys[position])
}

func (s *testSource) ItemAt(position int, recycled list.Item) list.Item {
	item, ok := recycled.(*list.StringItem)
	if !ok {
		item = list.NewStringItem("")
	}
	item.SetContent(fmt.Sprintf("%s%d", strings.ToLower(s.keys[position]), position))
	return item
}

func (s *testSource) HeaderAt(position int, recycled list.Item) list.Item {
	s.headerCalls++
	s.recycledIn = append(s.recycledIn, recycled)
	if s.nilHeaders[position] {
		return nil
	}
	item, ok := recycled.(*list.StringItem)
	if !ok {
		item = list.NewStringItem("")
		s.headersMade = append(s.headersMade, item)
	}
	item.SetContent("[" + s.keys[position] + "]" + strings.Repeat("\n", s.headerLines-1))
	return item
}

// indexedSource adds section lookups to testSource.
type indexedSource struct {
	*testSource
}

func (s indexedSource) Sections() []string {
	var sections []string
	for i, k := range s.keys {
		if i == 0 || s.keys[i-1] != k {
			sections = append(sections, k)
		}
	}
	return sections
}

func (s indexedSource) PositionForSection(section int) int {
	n := -1
	for i, k := range s.keys {
		if i == 0 || s.keys[i-1] != k {
			n++
			if n == section {
				return i
			}
		}
	}
	return len(s.keys) - 1
}

func (s indexedSource) SectionForPosition(position int) int {
	n := -1
	for i := 0; i <= position && i < len(s.keys); i++ {
		if i == 0 || s.keys[i-1] != s.keys[i] {
			n++
		}
	}
	return n
}

// fakeHost records what the controller does to it and serves hand-made
// geometry.
type fakeHost struct {
	width    int
	padTop   int
	noClip   bool
	children []list.Child
	first    int
	fixed    int

	clipMargin  int
	overlays    []list.Item
	offsets     map[list.Item]int
	offsetCalls int
	attachCalls int
	detachCalls int
}

func newFakeHost(padTop int) *fakeHost {
	return &fakeHost{width: 20, padTop: padTop, offsets: make(map[list.Item]int)}
}

func (h *fakeHost) ContentWidth() int         { return h.width }
func (h *fakeHost) PaddingTop() int           { return h.padTop }
func (h *fakeHost) ClipToPadding() bool       { return !h.noClip }
func (h *fakeHost) ChildCount() int           { return len(h.children) }
func (h *fakeHost) ChildAt(i int) list.Child  { return h.children[i] }
func (h *fakeHost) FirstVisiblePosition() int { return h.first }
func (h *fakeHost) HeaderRowsBeforeData() int { return h.fixed }

func (h *fakeHost) SetLeadingClipMargin(lines int) {
	h.clipMargin = lines
}

func (h *fakeHost) AttachOverlay(item list.Item) {
	h.attachCalls++
	h.overlays = append(h.overlays, item)
}

func (h *fakeHost) DetachOverlay(item list.Item) {
	h.detachCalls++
	h.overlays = slices.DeleteFunc(h.overlays, func(o list.Item) bool { return o == item })
}

func (h *fakeHost) SetVerticalOffset(item list.Item, y int) {
	h.offsetCalls++
	h.offsets[item] = y
}

// place sets the laid-out rows and the first visible position.
func (h *fakeHost) place(first int, children ...list.Child) {
	h.first = first
	h.children = children
}

// content returns the text of a StringItem view.
func content(item list.Item) string {
	if s, ok := item.(*list.StringItem); ok {
		return s.Content()
	}
	return ""
}
