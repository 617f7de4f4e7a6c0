// Package catalog provides a sectioned row source of names grouped by their
// initial letter.
package catalog

import (
	"cmp"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/stickylist/internal/ui/list"
	"github.com/charmbracelet/stickylist/internal/ui/sticky"
	"github.com/charmbracelet/stickylist/internal/ui/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/ordered"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/sahilm/fuzzy"
	"github.com/zeebo/xxh3"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed countries.txt
var countries []byte

// OtherSection labels names that do not start with a letter.
const OtherSection = "#"

// Catalog is a sorted list of names. Every name belongs to the section of
// its initial letter, diacritics removed and upper-cased.
type Catalog struct {
	sticky.BaseSource

	styles *styles.Styles

	names  []string
	labels []string
	ids    []sticky.HeaderID

	query string
	rows  []int
	// matched holds the byte offsets of the runes matching the query, by
	// name index.
	matched  map[int][]int
	sections []string
	starts   []int
}

var (
	_ sticky.Source         = (*Catalog)(nil)
	_ sticky.SectionIndexer = (*Catalog)(nil)
)

// New creates a catalog of names. Duplicates are dropped. st styles the row
// and header views and may be nil.
func New(names []string, st *styles.Styles) *Catalog {
	type entry struct {
		name, label string
	}
	entries := make([]entry, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			entries = append(entries, entry{name, SectionLabel(name)})
		}
	}

	col := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	slices.SortStableFunc(entries, func(a, b entry) int {
		return cmp.Or(
			strings.Compare(a.label, b.label),
			col.CompareString(a.name, b.name),
			strings.Compare(a.name, b.name),
		)
	})
	entries = slices.CompactFunc(entries, func(a, b entry) bool {
		return a.name == b.name
	})

	c := &Catalog{
		styles: st,
		names:  make([]string, len(entries)),
		labels: make([]string, len(entries)),
		ids:    make([]sticky.HeaderID, len(entries)),
	}
	for i, e := range entries {
		c.names[i] = e.name
		c.labels[i] = e.label
		c.ids[i] = sticky.HeaderIDFor(e.label)
	}
	c.Restore()
	return c
}

// Default returns the built-in catalog of countries.
func Default(st *styles.Styles) *Catalog {
	return New(ParseText(countries), st)
}

// Load reads a catalog file. Files ending in .yaml, .yml or .json hold an
// entries list, anything else is read as one name per line.
func Load(path string, st *styles.Styles) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var names []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		names, err = ParseYAML(data)
		if err != nil {
			return nil, err
		}
	default:
		names = ParseText(data)
	}
	return New(names, st), nil
}

// ParseText returns the non-blank lines of data.
func ParseText(data []byte) []string {
	var names []string
	for line := range strings.Lines(string(data)) {
		if line = strings.TrimSpace(line); line != "" {
			names = append(names, line)
		}
	}
	return names
}

// ParseYAML returns the entries of a YAML document of the form:
//
//	entries:
//	  - Argentina
//	  - Brazil
func ParseYAML(data []byte) ([]string, error) {
	var doc struct {
		Entries []string `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return doc.Entries, nil
}

// SectionLabel returns the section a name belongs to.
func SectionLabel(name string) string {
	r, _ := utf8.DecodeRuneInString(norm.NFD.String(strings.TrimSpace(name)))
	if !unicode.IsLetter(r) {
		return OtherSection
	}
	return cases.Upper(language.Und).String(string(r))
}

// Filter keeps the names fuzzily matching query, in catalog order, and
// returns how many matched. An empty query restores every name. Positions
// change, so the list showing the catalog must be invalidated.
func (c *Catalog) Filter(query string) int {
	c.query = query
	if query == "" {
		c.Restore()
		return len(c.rows)
	}

	matches := fuzzy.Find(query, c.names)
	rows := make([]int, 0, len(matches))
	matched := make(map[int][]int, len(matches))
	for _, m := range matches {
		rows = append(rows, m.Index)
		matched[m.Index] = m.MatchedIndexes
	}
	slices.Sort(rows)
	c.rows = rows
	c.matched = matched
	c.reindex()
	return len(c.rows)
}

// Query returns the current filter.
func (c *Catalog) Query() string {
	return c.query
}

// Clear hides every name.
func (c *Catalog) Clear() {
	c.query = ""
	c.rows = nil
	c.matched = nil
	c.reindex()
}

// Restore shows every name and drops the filter.
func (c *Catalog) Restore() {
	c.query = ""
	c.matched = nil
	c.rows = make([]int, len(c.names))
	for i := range c.rows {
		c.rows[i] = i
	}
	c.reindex()
}

func (c *Catalog) reindex() {
	c.sections = nil
	c.starts = nil
	for pos, i := range c.rows {
		if pos == 0 || c.labels[i] != c.labels[c.rows[pos-1]] {
			c.sections = append(c.sections, c.labels[i])
			c.starts = append(c.starts, pos)
		}
	}
}

// Total returns the number of names, filtered or not.
func (c *Catalog) Total() int {
	return len(c.names)
}

// Name returns the name shown at position.
func (c *Catalog) Name(position int) string {
	return c.names[c.rows[position]]
}

// Display returns the name shown at position with the runes matching the
// filter underlined.
func (c *Catalog) Display(position int) string {
	i := c.rows[position]
	return underline(c.names[i], c.matched[i])
}

func underline(name string, matched []int) string {
	if len(matched) == 0 {
		return name
	}
	var sb strings.Builder
	var last int
	for _, rng := range matchedRanges(matched) {
		start := rng[0]
		_, size := utf8.DecodeRuneInString(name[rng[1]:])
		stop := rng[1] + size
		sb.WriteString(name[last:start])
		sb.WriteString(ansi.NewStyle().Underline(true).String())
		sb.WriteString(name[start:stop])
		sb.WriteString(ansi.NewStyle().Underline(false).String())
		last = stop
	}
	sb.WriteString(name[last:])
	return sb.String()
}

// matchedRanges groups adjacent byte offsets. Offsets of multi-byte runes
// are never adjacent, so each of those makes a range of its own.
func matchedRanges(in []int) [][2]int {
	var out [][2]int
	for _, i := range in {
		if n := len(out); n > 0 && out[n-1][1]+1 == i {
			out[n-1][1] = i
			continue
		}
		out = append(out, [2]int{i, i})
	}
	return out
}

// Summary describes the shown names for a status line.
func (c *Catalog) Summary() string {
	total := len(c.names)
	if c.query == "" {
		return fmt.Sprintf("%s %s in %s %s",
			humanize.Comma(int64(total)), english.PluralWord(total, "entry", "entries"),
			humanize.Comma(int64(len(c.sections))), english.PluralWord(len(c.sections), "section", "sections"),
		)
	}
	return fmt.Sprintf("%s of %s %s match %q",
		humanize.Comma(int64(len(c.rows))), humanize.Comma(int64(total)),
		english.PluralWord(total, "entry", "entries"), c.query,
	)
}

// Len implements sticky.Source.
func (c *Catalog) Len() int {
	return len(c.rows)
}

// HeaderID implements sticky.Source.
func (c *Catalog) HeaderID(position int) sticky.HeaderID {
	return c.ids[c.rows[position]]
}

// ItemID implements sticky.Source. Ids follow names across filters.
func (c *Catalog) ItemID(position int) int64 {
	return int64(xxh3.HashString(c.Name(position)))
}

// HasStableIDs implements sticky.Source.
func (c *Catalog) HasStableIDs() bool {
	return true
}

// ItemAt implements sticky.Source.
func (c *Catalog) ItemAt(position int, recycled list.Item) list.Item {
	name := c.Display(position)
	if item, ok := recycled.(*list.StringItem); ok {
		item.SetContent(name)
		return item
	}
	item := list.NewStringItem(name)
	if c.styles != nil {
		item.WithFocusStyles(&c.styles.List.ItemFocused, &c.styles.List.ItemBlurred)
	}
	return item
}

// HeaderAt implements sticky.Source.
func (c *Catalog) HeaderAt(position int, recycled list.Item) list.Item {
	label := c.labels[c.rows[position]]
	if item, ok := recycled.(*list.StringItem); ok {
		item.SetContent(label)
		return item
	}
	item := list.NewStringItem(label)
	if c.styles != nil {
		item.WithStyle(c.styles.List.Header)
	}
	return item
}

// Sections implements sticky.SectionIndexer.
func (c *Catalog) Sections() []string {
	return c.sections
}

// PositionForSection implements sticky.SectionIndexer. Out of range sections
// are clamped.
func (c *Catalog) PositionForSection(section int) int {
	if len(c.starts) == 0 {
		return 0
	}
	return c.starts[ordered.Clamp(section, 0, len(c.starts)-1)]
}

// SectionForPosition implements sticky.SectionIndexer.
func (c *Catalog) SectionForPosition(position int) int {
	i, found := slices.BinarySearch(c.starts, position)
	if found {
		return i
	}
	return i - 1
}
