package list

// SliceAdapter is an [Adapter] over a fixed set of items. Every row is its
// own view, so recycled views are ignored.
type SliceAdapter struct {
	items []Item
}

var _ Adapter = (*SliceAdapter)(nil)

// NewSliceAdapter creates an adapter over the given items.
func NewSliceAdapter(items ...Item) *SliceAdapter {
	return &SliceAdapter{items: items}
}

// SetItems replaces the items. The list must be told through
// [List.DataInvalidated].
func (a *SliceAdapter) SetItems(items ...Item) {
	a.items = items
}

// Append adds items to the end. The list must be told through
// [List.DataChanged].
func (a *SliceAdapter) Append(items ...Item) {
	a.items = append(a.items, items...)
}

// Items returns the items.
func (a *SliceAdapter) Items() []Item {
	return a.items
}

// Len implements Adapter.
func (a *SliceAdapter) Len() int {
	return len(a.items)
}

// ItemAt implements Adapter.
func (a *SliceAdapter) ItemAt(position int, _ Item) (Item, error) {
	return a.items[position], nil
}

// ViewType implements Adapter. Each position is its own type so a view is
// only ever offered back to its own row.
func (a *SliceAdapter) ViewType(position int) int {
	return position
}

// ItemID implements Adapter.
func (a *SliceAdapter) ItemID(position int) int64 {
	return int64(position)
}

// HasStableIDs implements Adapter.
func (a *SliceAdapter) HasStableIDs() bool {
	return false
}

// Enabled implements Adapter.
func (a *SliceAdapter) Enabled(int) bool {
	return true
}
