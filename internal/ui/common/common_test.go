package common

import (
	"image"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/stickylist/internal/ui/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestCenterRect(t *testing.T) {
	t.Parallel()

	r := CenterRect(image.Rect(0, 0, 20, 10), 6, 2)
	require.Equal(t, 7, r.Min.X)
	require.Equal(t, 4, r.Min.Y)
	require.Equal(t, 6, r.Dx())
	require.Equal(t, 2, r.Dy())
}

func TestStatus(t *testing.T) {
	t.Parallel()

	st := styles.DefaultStyles()
	opts := StatusOpts{
		Icon:         styles.InfoIcon,
		Title:        "C",
		Description:  "Chad, Chile, China, Christmas Island",
		ExtraContent: "12/239",
	}

	full := ansi.Strip(Status(&st, opts, 80))
	require.Equal(t, "ⓘ C Chad, Chile, China, Christmas Island 12/239", full)

	short := Status(&st, opts, 20)
	require.LessOrEqual(t, lipgloss.Width(short), 20)
	require.Contains(t, ansi.Strip(short), "…")
	require.Contains(t, ansi.Strip(short), "12/239")
}
