package crud

import (
	"cmp"
	"slices"
	"strings"
)

// SortDirection orders a projection.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ViewMode is the display layout. It never affects the projection.
type ViewMode string

const (
	ModeGrid ViewMode = "grid"
	ModeList ViewMode = "list"
)

// Comparator orders two field values.
type Comparator func(a, b any) int

// ViewConfig configures a View. Predicate, when set, replaces the free-text
// search stage and receives both the search term and the filter value.
type ViewConfig[T Entity] struct {
	SearchFields     []string
	FilterField      string
	Predicate        func(item T, term, filterValue string) bool
	Comparators      map[string]Comparator
	InitialSortKey   string
	InitialDirection SortDirection
	InitialFilter    string
	InitialMode      ViewMode
}

// View derives a read-only search, filter and sort projection of a
// collection. It holds parameters only; the projection is recomputed on
// every Apply.
type View[T Entity] struct {
	cfg ViewConfig[T]

	term        string
	filterField string
	filterValue string
	sortKey     string
	direction   SortDirection
	mode        ViewMode
}

// NewView builds a view in its initial configuration.
func NewView[T Entity](cfg ViewConfig[T]) *View[T] {
	if cfg.InitialMode == "" {
		cfg.InitialMode = ModeGrid
	}
	v := &View[T]{cfg: cfg}
	v.Reset()
	return v
}

func (v *View[T]) SearchTerm() string { return v.term }
func (v *View[T]) FilterField() string { return v.filterField }
func (v *View[T]) FilterValue() string { return v.filterValue }
func (v *View[T]) SortKey() string { return v.sortKey }
func (v *View[T]) Direction() SortDirection { return v.direction }
func (v *View[T]) Mode() ViewMode { return v.mode }
func (v *View[T]) SearchFields() []string { return v.cfg.SearchFields }
func (v *View[T]) SetSearchTerm(term string) { v.term = term }
func (v *View[T]) SetFilterValue(value string) { v.filterValue = value }
func (v *View[T]) SetFilterField(field string) { v.filterField = field }
func (v *View[T]) SetMode(mode ViewMode) { v.mode = mode }

// SetSort sets the sort key and direction. An empty key disables sorting.
func (v *View[T]) SetSort(key string, dir SortDirection) {
	v.sortKey = key
	v.direction = dir
}

// ToggleSort sorts by key ascending, or flips the direction when key is
// already the sort key.
func (v *View[T]) ToggleSort(key string) {
	if v.sortKey == key {
		if v.direction == Ascending {
			v.direction = Descending
		} else {
			v.direction = Ascending
		}
		return
	}
	v.sortKey = key
	v.direction = Ascending
}

// ToggleMode switches between grid and list.
func (v *View[T]) ToggleMode() {
	if v.mode == ModeGrid {
		v.mode = ModeList
	} else {
		v.mode = ModeGrid
	}
}

// HasActiveFilters reports whether search or filter narrows the projection.
func (v *View[T]) HasActiveFilters() bool {
	return strings.TrimSpace(v.term) != "" || v.filterValue != ""
}

// ClearAll restores search, filter and sort to their initial configuration.
func (v *View[T]) ClearAll() {
	v.term = ""
	v.filterField = v.cfg.FilterField
	v.filterValue = v.cfg.InitialFilter
	v.sortKey = v.cfg.InitialSortKey
	v.direction = v.cfg.InitialDirection
}

// Reset is ClearAll plus restoring the initial view mode.
func (v *View[T]) Reset() {
	v.ClearAll()
	v.mode = v.cfg.InitialMode
}

// Apply runs search, then filter, then sort over items. The input slice is
// never modified; the result is always a new slice.
func (v *View[T]) Apply(items []T) []T {
	var out []T
	if v.cfg.Predicate != nil {
		out = make([]T, 0, len(items))
		for _, item := range items {
			if v.cfg.Predicate(item, v.term, v.filterValue) {
				out = append(out, item)
			}
		}
	} else {
		out = FilterBySearch(items, v.term, v.cfg.SearchFields)
	}
	out = FilterByField(out, v.filterField, v.filterValue)
	if v.sortKey != "" {
		out = SortBy(out, v.sortKey, v.direction, v.cfg.Comparators[v.sortKey])
	}
	return out
}

// --- Pipeline stages ---

// FilterBySearch keeps items where any of fields, stringified and
// lower-cased, contains the trimmed lower-cased term. A blank term keeps
// everything.
func FilterBySearch[T any](items []T, term string, fields []string) []T {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]T, 0, len(items))
	if needle == "" {
		return append(out, items...)
	}
	for _, item := range items {
		values, err := Fields(item)
		if err != nil {
			continue
		}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(Stringify(values[f])), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// FilterByField keeps items whose stringified field equals value exactly.
// An empty field or value keeps everything.
func FilterByField[T any](items []T, field, value string) []T {
	out := make([]T, 0, len(items))
	if field == "" || value == "" {
		return append(out, items...)
	}
	for _, item := range items {
		if Stringify(FieldValue(item, field)) == value {
			out = append(out, item)
		}
	}
	return out
}

type sortRow[T any] struct {
	item  T
	value any
}

// SortBy returns a stably sorted copy ordered by key. Absent values sort
// last in either direction. A nil cmp uses Compare.
func SortBy[T any](items []T, key string, dir SortDirection, cmpFn Comparator) []T {
	if cmpFn == nil {
		cmpFn = Compare
	}
	rows := make([]sortRow[T], len(items))
	for i, item := range items {
		rows[i] = sortRow[T]{item: item, value: FieldValue(item, key)}
	}
	slices.SortStableFunc(rows, func(a, b sortRow[T]) int {
		switch {
		case a.value == nil && b.value == nil:
			return 0
		case a.value == nil:
			return 1
		case b.value == nil:
			return -1
		}
		c := cmpFn(a.value, b.value)
		if dir == Descending {
			return -c
		}
		return c
	})
	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.item
	}
	return out
}

// Compare orders numbers numerically, bools false before true and strings
// case-sensitively. Values of different kinds compare by their string form.
func Compare(a, b any) int {
	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			return cmp.Compare(av, bv)
		}
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case !av:
				return -1
			default:
				return 1
			}
		}
	}
	return strings.Compare(Stringify(a), Stringify(b))
}
