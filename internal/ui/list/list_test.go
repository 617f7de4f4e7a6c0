package list

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/require"
)

// labelAdapter binds StringItems to a slice of labels, reusing recycled
// views and counting how many it had to create.
type labelAdapter struct {
	labels   []string
	disabled map[int]bool
	nilRows  map[int]bool
	created  int
	bound    int
}

func newLabelAdapter(n int) *labelAdapter {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("Item %d", i)
	}
	return &labelAdapter{labels: labels}
}

func (a *labelAdapter) Len() int { return len(a.labels) }

func (a *labelAdapter) ItemAt(position int, recycled Item) (Item, error) {
	if a.nilRows[position] {
		return nil, nil
	}
	a.bound++
	s, ok := recycled.(*StringItem)
	if !ok {
		s = NewStringItem("")
		a.created++
	}
	s.SetContent(a.labels[position])
	return s, nil
}

func (a *labelAdapter) ViewType(int) int { return 0 }

func (a *labelAdapter) ItemID(position int) int64 { return int64(position) }

func (a *labelAdapter) HasStableIDs() bool { return false }

func (a *labelAdapter) Enabled(position int) bool { return !a.disabled[position] }

func renderLines(l *List) []string {
	out := strings.ReplaceAll(l.Render(), "\r\n", "\n")
	lines := strings.Split(out, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

func lineAt(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}

func tops(l *List) []int {
	var out []int
	for _, c := range l.Children() {
		out = append(out, c.Top)
	}
	return out
}

func positions(l *List) []int {
	var out []int
	for _, c := range l.Children() {
		out = append(out, c.Position)
	}
	return out
}

func TestNewList(t *testing.T) {
	t.Parallel()

	l := New(NewSliceAdapter(
		NewStringItem("Item 1"),
		NewStringItem("Item 2"),
		NewStringItem("Item 3"),
	))
	l.SetSize(80, 24)

	if l.Len() != 3 {
		t.Errorf("expected 3 items, got %d", l.Len())
	}
	if l.Width() != 80 || l.Height() != 24 {
		t.Errorf("expected size 80x24, got %dx%d", l.Width(), l.Height())
	}
	if l.Selected() != -1 {
		t.Errorf("expected no selection, got %d", l.Selected())
	}
}

func TestListLayout(t *testing.T) {
	t.Parallel()

	l := New(newLabelAdapter(5))
	l.SetSize(20, 3)
	require.NoError(t, l.Layout())

	require.Equal(t, []int{0, 1, 2}, positions(l))
	require.Equal(t, []int{0, 1, 2}, tops(l))
	for _, c := range l.Children() {
		require.Equal(t, 1, c.Height())
		require.Equal(t, c.Top+1, c.Bottom)
		require.False(t, c.Header)
		require.False(t, c.Footer)
	}

	lines := renderLines(l)
	require.Equal(t, "Item 0", lineAt(lines, 0))
	require.Equal(t, "Item 2", lineAt(lines, 2))
}

func TestListLayoutEmpty(t *testing.T) {
	t.Parallel()

	l := New(nil)
	l.SetSize(20, 3)
	require.NoError(t, l.Layout())
	require.Zero(t, l.ChildCount())
	require.Equal(t, 0, l.FirstVisiblePosition())
}

func TestListScrollBy(t *testing.T) {
	t.Parallel()

	l := New(newLabelAdapter(5))
	l.SetSize(20, 2)
	require.NoError(t, l.Layout())

	idx, line := l.Offset()
	require.Equal(t, 0, idx)
	require.Equal(t, 0, line)
	require.True(t, l.AtTop())

	require.NoError(t, l.ScrollBy(2))
	idx, _ = l.Offset()
	require.Equal(t, 2, idx)

	// Clamped so the last row rests on the bottom.
	require.NoError(t, l.ScrollBy(100))
	idx, line = l.Offset()
	require.Equal(t, 3, idx)
	require.Equal(t, 0, line)
	require.True(t, l.AtBottom())

	require.NoError(t, l.Layout())
	require.Equal(t, []int{3, 4}, positions(l))
	require.Equal(t, 3, l.FirstVisiblePosition())

	require.NoError(t, l.ScrollBy(-1))
	idx, _ = l.Offset()
	require.Equal(t, 2, idx)

	require.NoError(t, l.ScrollBy(-100))
	require.True(t, l.AtTop())
}

func TestListScrollPartialRows(t *testing.T) {
	t.Parallel()

	l := New(NewSliceAdapter(
		NewStringItem("a1\na2\na3"),
		NewStringItem("b1\nb2"),
		NewStringItem("c1\nc2"),
		NewStringItem("d1"),
	))
	l.SetSize(20, 4)

	require.NoError(t, l.ScrollBy(2))
	idx, line := l.Offset()
	require.Equal(t, 0, idx)
	require.Equal(t, 2, line)

	require.NoError(t, l.Layout())
	require.Equal(t, []int{0, 1, 2}, positions(l))
	require.Equal(t, []int{-2, 1, 3}, tops(l))

	lines := renderLines(l)
	require.Equal(t, "a3", lineAt(lines, 0))
	require.Equal(t, "b1", lineAt(lines, 1))

	require.NoError(t, l.ScrollBy(2))
	idx, line = l.Offset()
	require.Equal(t, 1, idx)
	require.Equal(t, 1, line)
}

func TestListScrollToPosition(t *testing.T) {
	t.Parallel()

	l := New(newLabelAdapter(20))
	l.SetSize(20, 5)

	require.NoError(t, l.ScrollToPosition(7))
	idx, line := l.Offset()
	require.Equal(t, 7, idx)
	require.Equal(t, 0, line)

	require.NoError(t, l.ScrollToPosition(19))
	idx, _ = l.Offset()
	require.Equal(t, 15, idx)

	require.NoError(t, l.ScrollToBottom())
	require.True(t, l.AtBottom())
	l.ScrollToTop()
	require.True(t, l.AtTop())
}

func TestListRecyclesViews(t *testing.T) {
	t.Parallel()

	a := newLabelAdapter(100)
	l := New(a)
	l.SetSize(20, 5)
	require.NoError(t, l.Layout())
	require.Equal(t, 5, a.created)

	for range 20 {
		require.NoError(t, l.ScrollBy(3))
		require.NoError(t, l.Layout())
	}
	require.LessOrEqual(t, a.created, 7, "views should be recycled while scrolling")

	lines := renderLines(l)
	idx, _ := l.Offset()
	require.Equal(t, fmt.Sprintf("Item %d", idx), lineAt(lines, 0))
}

func TestListKeepsBoundViewsWithoutChanges(t *testing.T) {
	t.Parallel()

	a := newLabelAdapter(10)
	l := New(a)
	l.SetSize(20, 5)
	require.NoError(t, l.Layout())
	bound := a.bound

	require.NoError(t, l.Layout())
	require.Equal(t, bound, a.bound, "unchanged rows must not be rebound")

	a.labels[0] = "Changed"
	l.DataChanged()
	require.NoError(t, l.Layout())
	require.Greater(t, a.bound, bound)
	require.Equal(t, "Changed", lineAt(renderLines(l), 0))
}

func TestListDataInvalidated(t *testing.T) {
	t.Parallel()

	a := newLabelAdapter(30)
	l := New(a)
	l.SetSize(20, 5)
	l.SetSelected(3)
	require.NoError(t, l.ScrollBy(10))
	require.NoError(t, l.Layout())

	a.labels = a.labels[:8]
	l.DataInvalidated()
	require.True(t, l.AtTop())
	require.Equal(t, -1, l.Selected())

	created := a.created
	require.NoError(t, l.Layout())
	require.Equal(t, created+5, a.created, "scrap must be dropped")
}

func TestListDataChangedClampsAnchor(t *testing.T) {
	t.Parallel()

	a := newLabelAdapter(30)
	l := New(a)
	l.SetSize(20, 5)
	require.NoError(t, l.ScrollToPosition(20))

	a.labels = a.labels[:10]
	l.DataChanged()
	require.NoError(t, l.Layout())
	idx, _ := l.Offset()
	require.Less(t, idx, 10)
	require.Equal(t, idx, l.FirstVisiblePosition())
}

func TestListNilItem(t *testing.T) {
	t.Parallel()

	a := newLabelAdapter(5)
	a.nilRows = map[int]bool{1: true}
	l := New(a)
	l.SetSize(20, 5)

	err := l.Layout()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNilItem))
}

func TestListPadding(t *testing.T) {
	t.Parallel()

	l := New(newLabelAdapter(10))
	l.SetSize(20, 6)
	l.SetPadding(1, 0, 1, 2)
	require.NoError(t, l.Layout())

	require.Equal(t, 1, l.PaddingTop())
	require.Equal(t, 18, l.ContentWidth())
	require.Equal(t, []int{1, 2, 3, 4}, tops(l))

	lines := renderLines(l)
	require.Equal(t, "", lineAt(lines, 0))
	require.Equal(t, "  Item 0", lineAt(lines, 1))
	require.Equal(t, "", lineAt(lines, 5))
}

func TestListWithoutClipToPadding(t *testing.T) {
	t.Parallel()

	l := New(newLabelAdapter(10))
	l.SetSize(20, 6)
	l.SetPadding(2, 0, 1, 0)
	l.SetClipToPadding(false)
	require.NoError(t, l.ScrollBy(3))
	require.NoError(t, l.Layout())

	// Rows above the anchor show through the top padding and rows below
	// the bottom padding are laid out too.
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, positions(l))
	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, tops(l))

	lines := renderLines(l)
	require.Equal(t, "Item 1", lineAt(lines, 0))
	require.Equal(t, "Item 6", lineAt(lines, 5))
}

func TestListLeadingClipMargin(t *testing.T) {
	t.Parallel()

	l := New(newLabelAdapter(10))
	l.SetSize(20, 4)
	require.NoError(t, l.Layout())

	l.SetLeadingClipMargin(2)
	lines := renderLines(l)
	require.Equal(t, "", lineAt(lines, 0))
	require.Equal(t, "", lineAt(lines, 1))
	require.Equal(t, "Item 2", lineAt(lines, 2))

	l.SetLeadingClipMargin(-3)
	require.Equal(t, 0, l.LeadingClipMargin())
}

func TestListOverlays(t *testing.T) {
	t.Parallel()

	l := New(newLabelAdapter(10))
	l.SetSize(20, 4)
	require.NoError(t, l.Layout())

	banner := NewStringItem("Banner")
	l.AttachOverlay(banner)
	l.AttachOverlay(banner)
	require.Len(t, l.Overlays(), 1)

	l.SetVerticalOffset(banner, -1)
	y, ok := l.VerticalOffset(banner)
	require.True(t, ok)
	require.Equal(t, -1, y)

	l.SetVerticalOffset(banner, 1)
	l.SetLeadingClipMargin(2)
	lines := renderLines(l)
	require.Equal(t, "", lineAt(lines, 0))
	require.Equal(t, "Banner", lineAt(lines, 1))
	require.Equal(t, "Item 2", lineAt(lines, 2))

	l.DetachOverlay(banner)
	require.Empty(t, l.Overlays())
	_, ok = l.VerticalOffset(banner)
	require.False(t, ok)
}

func TestListHeaderAndFooterRows(t *testing.T) {
	t.Parallel()

	l := New(newLabelAdapter(3))
	l.AddHeaderRow(NewStringItem("Top"))
	l.AddFooterRow(NewStringItem("Bottom"))
	l.SetSize(20, 10)
	require.NoError(t, l.Layout())

	require.Equal(t, 1, l.HeaderRowsBeforeData())
	require.Equal(t, 5, l.Len())
	require.Equal(t, 5, l.ChildCount())
	require.True(t, l.ChildAt(0).Header)
	require.False(t, l.ChildAt(1).Header)
	require.True(t, l.ChildAt(4).Footer)

	lines := renderLines(l)
	require.Equal(t, "Top", lineAt(lines, 0))
	require.Equal(t, "Item 0", lineAt(lines, 1))
	require.Equal(t, "Bottom", lineAt(lines, 4))
}

func TestListSelection(t *testing.T) {
	t.Parallel()

	a := newLabelAdapter(5)
	a.disabled = map[int]bool{1: true}
	l := New(a)
	l.SetSelected(0)

	if l.Selected() != 0 {
		t.Errorf("expected selected index 0, got %d", l.Selected())
	}

	require.True(t, l.SelectNext())
	if l.Selected() != 2 {
		t.Errorf("expected disabled row to be skipped, got %d", l.Selected())
	}

	require.True(t, l.SelectPrev())
	if l.Selected() != 0 {
		t.Errorf("expected selected index 0 after SelectPrev, got %d", l.Selected())
	}
	require.False(t, l.SelectPrev())

	l.SetSelected(42)
	require.Equal(t, -1, l.Selected())
	_, ok := l.SelectedID()
	require.False(t, ok)
}

func TestListScrollToSelected(t *testing.T) {
	t.Parallel()

	l := New(newLabelAdapter(20))
	l.SetSize(20, 5)
	l.SetSelected(9)
	require.NoError(t, l.ScrollToSelected())
	require.NoError(t, l.Layout())

	last := l.ChildAt(l.ChildCount() - 1)
	require.Equal(t, 9, last.Position)
	require.Equal(t, 5, last.Bottom)

	l.SetSelected(2)
	require.NoError(t, l.ScrollToSelected())
	idx, line := l.Offset()
	require.Equal(t, 2, idx)
	require.Equal(t, 0, line)
}

// FocusableTestItem is a test item that implements Focusable.
type FocusableTestItem struct {
	content string
	focused bool
}

func (f *FocusableTestItem) Height(int) int {
	return 1
}

func (f *FocusableTestItem) Draw(scr uv.Screen, area uv.Rectangle) {
	prefix := "[ ]"
	if f.focused {
		prefix = "[X]"
	}
	styled := uv.NewStyledString(prefix + " " + f.content)
	styled.Draw(scr, area)
}

func (f *FocusableTestItem) Focus() {
	f.focused = true
}

func (f *FocusableTestItem) Blur() {
	f.focused = false
}

func (f *FocusableTestItem) IsFocused() bool {
	return f.focused
}

func TestListFocus(t *testing.T) {
	t.Parallel()

	first := &FocusableTestItem{content: "Item 1"}
	second := &FocusableTestItem{content: "Item 2"}
	l := New(NewSliceAdapter(first, second))
	l.SetSize(80, 10)
	l.SetSelected(0)
	l.Focus()
	require.NoError(t, l.Layout())

	if !l.Focused() {
		t.Error("expected list to be focused")
	}
	if !first.IsFocused() {
		t.Error("expected selected item to be focused")
	}

	l.SelectNext()
	require.NoError(t, l.Layout())
	if first.IsFocused() {
		t.Error("expected previous item to be blurred")
	}
	if !second.IsFocused() {
		t.Error("expected new selected item to be focused")
	}
	require.Equal(t, "[X] Item 2", lineAt(renderLines(l), 1))

	l.Blur()
	require.NoError(t, l.Layout())
	if l.Focused() {
		t.Error("expected list to be blurred")
	}
	require.False(t, second.IsFocused())
}
