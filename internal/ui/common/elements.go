package common

import (
	"cmp"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/stickylist/internal/ui/styles"
	"github.com/charmbracelet/x/ansi"
)

type StatusOpts struct {
	Icon             string // if empty no icon will be shown
	Title            string
	TitleColor       color.Color
	Description      string
	DescriptionColor color.Color
	ExtraContent     string // additional content to append after the description
}

// Status renders a single status line no wider than width. The description
// is truncated to make room for the other parts.
func Status(t *styles.Styles, opts StatusOpts, width int) string {
	icon := opts.Icon
	title := opts.Title
	description := opts.Description

	titleColor := cmp.Or(opts.TitleColor, t.Muted.GetForeground())
	descriptionColor := cmp.Or(opts.DescriptionColor, t.Subtle.GetForeground())

	if title != "" {
		title = t.Base.Foreground(titleColor).Render(title)
	}

	if description != "" {
		used := lipgloss.Width(icon) + lipgloss.Width(title) + lipgloss.Width(opts.ExtraContent)
		for _, part := range []string{icon, title, opts.ExtraContent} {
			if part != "" {
				used++
			}
		}
		description = ansi.Truncate(description, max(0, width-used), "…")
		description = t.Base.Foreground(descriptionColor).Render(description)
	}

	content := []string{}
	if icon != "" {
		content = append(content, icon)
	}
	if title != "" {
		content = append(content, title)
	}
	if description != "" {
		content = append(content, description)
	}
	if opts.ExtraContent != "" {
		content = append(content, opts.ExtraContent)
	}

	return ansi.Truncate(strings.Join(content, " "), width, "…")
}
