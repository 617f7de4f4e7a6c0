package list

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/require"
)

func TestRenderHelper(t *testing.T) {
	l := New(NewSliceAdapter(
		NewStringItem("Item 1"),
		NewStringItem("Item 2"),
		NewStringItem("Item 3"),
	))
	l.SetSize(80, 10)
	require.NoError(t, l.Layout())

	output := l.Render()
	if len(output) == 0 {
		t.Error("expected non-empty output from Render()")
	}
	for _, want := range []string{"Item 1", "Item 2", "Item 3"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestRenderWithScrolling(t *testing.T) {
	l := New(NewSliceAdapter(
		NewStringItem("Item 1"),
		NewStringItem("Item 2"),
		NewStringItem("Item 3"),
		NewStringItem("Item 4"),
		NewStringItem("Item 5"),
	))
	l.SetSize(80, 2)
	require.NoError(t, l.Layout())

	output := l.Render()
	if !strings.Contains(output, "Item 1") {
		t.Error("expected output to contain 'Item 1'")
	}
	if strings.Contains(output, "Item 3") {
		t.Error("expected output to NOT contain 'Item 3' in initial view")
	}

	require.NoError(t, l.ScrollBy(2))
	require.NoError(t, l.Layout())
	output = l.Render()

	if strings.Contains(output, "Item 1") {
		t.Error("expected output to NOT contain 'Item 1' after scrolling")
	}
	if !strings.Contains(output, "Item 3") {
		t.Error("expected output to contain 'Item 3' after scrolling")
	}
	if !strings.Contains(output, "Item 4") {
		t.Error("expected output to contain 'Item 4' after scrolling")
	}
}

func TestRenderEmptyList(t *testing.T) {
	l := New(nil)
	l.SetSize(80, 10)
	require.NoError(t, l.Layout())

	if strings.TrimSpace(l.Render()) != "" {
		t.Errorf("expected blank output for empty list, got: %q", l.Render())
	}
}

func TestRenderVsDrawConsistency(t *testing.T) {
	l := New(NewSliceAdapter(
		NewStringItem("Item 1"),
		NewStringItem("Item 2"),
	))
	l.SetSize(80, 10)
	require.NoError(t, l.Layout())

	renderOutput := l.Render()

	screen := uv.NewScreenBuffer(80, 10)
	l.Draw(&screen, uv.Rect(0, 0, 80, 10))
	drawOutput := screen.Render()

	if renderOutput != drawOutput {
		t.Errorf("Render() and Draw() produced different outputs:\nRender():\n%q\n\nDraw():\n%q",
			renderOutput, drawOutput)
	}
}

func BenchmarkRenderWithScrolling(b *testing.B) {
	a := newLabelAdapter(1000)
	l := New(a)
	l.SetSize(80, 24)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if l.AtBottom() {
			l.ScrollToTop()
		}
		_ = l.ScrollBy(1)
		_ = l.Layout()
		_ = l.Render()
	}
}

func TestStringItemCache(t *testing.T) {
	item := NewWrappingStringItem("Test content")

	screen1 := uv.NewScreenBuffer(80, 5)
	item.Draw(&screen1, uv.Rect(0, 0, 80, 5))

	if len(item.cache) != 1 {
		t.Errorf("expected cache to have 1 entry after first draw, got %d", len(item.cache))
	}
	if _, ok := item.cache[80]; !ok {
		t.Error("expected cache to have entry for width 80")
	}

	screen2 := uv.NewScreenBuffer(40, 5)
	item.Draw(&screen2, uv.Rect(0, 0, 40, 5))
	if len(item.cache) != 2 {
		t.Errorf("expected cache to have 2 entries after draw at different width, got %d", len(item.cache))
	}

	// Rebinding drops the cache.
	item.SetContent("Other content")
	require.Empty(t, item.cache)
	require.Equal(t, "Other content", item.Content())
}

func TestWrappingItemHeight(t *testing.T) {
	item1 := NewWrappingStringItem("Short")
	if h := item1.Height(80); h != 1 {
		t.Errorf("expected height 1 for short text, got %d", h)
	}

	longText := "This is a very long line that will definitely wrap when constrained to a narrow width"
	item2 := NewWrappingStringItem(longText)

	height80 := item2.Height(80)
	height20 := item2.Height(20)
	if height20 <= height80 {
		t.Errorf("expected more lines at narrow width (20: %d lines) than wide width (80: %d lines)",
			height20, height80)
	}

	// Non-wrapping version should always be 1 line
	item3 := NewStringItem(longText)
	if h := item3.Height(20); h != 1 {
		t.Errorf("expected height 1 for non-wrapping item, got %d", h)
	}
}

func TestStringItemFocusStyles(t *testing.T) {
	focusStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("86"))
	blurStyle := lipgloss.NewStyle().
		Padding(0, 1)

	item := NewStringItem("Test Item").WithFocusStyles(&focusStyle, &blurStyle)
	require.True(t, item.HasFocusStyles())
	require.Equal(t, 1, item.Height(20))

	item.Focus()
	require.True(t, item.IsFocused())
	require.Equal(t, 3, item.Height(20), "border adds a line above and below")

	item.Blur()
	require.Equal(t, &blurStyle, item.CurrentStyle())
}

func TestSpacerItem(t *testing.T) {
	spacer := NewSpacerItem(3)

	if h := spacer.Height(80); h != 3 {
		t.Errorf("expected height 3, got %d", h)
	}
	if h := spacer.Height(20); h != 3 {
		t.Errorf("expected height 3 for width 20, got %d", h)
	}

	screen := uv.NewScreenBuffer(20, 3)
	spacer.Draw(&screen, uv.Rect(0, 0, 20, 3))

	for _, line := range strings.Split(screen.Render(), "\n") {
		if strings.TrimSpace(line) != "" {
			t.Errorf("expected empty spacer output, got: %q", line)
		}
	}
}

func TestSpacerItemInList(t *testing.T) {
	l := New(NewSliceAdapter(
		NewStringItem("Item 1"),
		NewSpacerItem(1),
		NewStringItem("Item 2"),
		NewSpacerItem(2),
		NewStringItem("Item 3"),
	))
	l.SetSize(20, 10)
	require.NoError(t, l.Layout())

	lines := renderLines(l)
	require.Equal(t, "Item 1", lineAt(lines, 0))
	require.Equal(t, "", lineAt(lines, 1))
	require.Equal(t, "Item 2", lineAt(lines, 2))
	require.Equal(t, "Item 3", lineAt(lines, 5))

	last := l.ChildAt(l.ChildCount() - 1)
	require.Equal(t, 6, last.Bottom)
}

func TestListDoesNotEatLastLine(t *testing.T) {
	l := New(NewSliceAdapter(
		NewStringItem("Line 1"),
		NewStringItem("Line 2"),
		NewStringItem("Line 3"),
		NewStringItem("Line 4"),
		NewStringItem("Line 5"),
	))
	l.SetSize(20, 5)
	require.NoError(t, l.Layout())

	output := l.Render()
	for _, want := range []string{"Line 1", "Line 2", "Line 3", "Line 4", "Line 5"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}

func TestListWithScrollDoesNotEatLastLine(t *testing.T) {
	l := New(newLabelAdapter(7))
	l.SetSize(20, 3)

	require.NoError(t, l.ScrollToBottom())
	require.NoError(t, l.Layout())
	output := l.Render()

	t.Logf("Output:\n%s", output)

	for _, want := range []string{"Item 4", "Item 5", "Item 6"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(output, "Item 0") {
		t.Error("expected output to NOT contain 'Item 0' when scrolled to bottom")
	}
}
