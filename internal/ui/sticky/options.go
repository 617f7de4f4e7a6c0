package sticky

import "log/slog"

// Padding is the inset between the viewport edges and the rows, in cells.
type Padding struct {
	Top    int `yaml:"top"`
	Right  int `yaml:"right"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
}

// Options configures a sticky list.
type Options struct {
	// Sticky enables pinning. When false no header is ever pinned.
	Sticky bool
	// DrawUnderStickyHeader lets rows draw beneath the pinned header. When
	// false the list reserves the pinned header's lines as a clip margin.
	DrawUnderStickyHeader bool
	// ClipToPadding clips rows to the padded area and rests the pinned
	// header on the top padding instead of the viewport top.
	ClipToPadding bool
	Padding       Padding
	Logger        *slog.Logger
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Sticky:                true,
		DrawUnderStickyHeader: true,
		ClipToPadding:         true,
	}
}

// Option modifies [Options].
type Option func(*Options)

// WithSticky enables or disables pinning.
func WithSticky(sticky bool) Option {
	return func(o *Options) {
		o.Sticky = sticky
	}
}

// WithDrawUnderStickyHeader sets whether rows draw beneath the pinned header.
func WithDrawUnderStickyHeader(draw bool) Option {
	return func(o *Options) {
		o.DrawUnderStickyHeader = draw
	}
}

// WithClipToPadding sets whether rows are clipped to the padded area.
func WithClipToPadding(clip bool) Option {
	return func(o *Options) {
		o.ClipToPadding = clip
	}
}

// WithPadding sets the padding.
func WithPadding(p Padding) Option {
	return func(o *Options) {
		o.Padding = p
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
