package components

// Cursor tracks a selected row and the visible window over a list whose
// rows live elsewhere. The list may shrink or grow between renders; the
// cursor stays on the same index when it can.
type Cursor struct {
	Index    int
	Offset   int
	PageSize int
	n        int
}

// NewCursor creates a cursor showing pageSize rows at a time.
func NewCursor(pageSize int) *Cursor {
	return &Cursor{PageSize: max(pageSize, 1)}
}

// SetLen updates the row count and clamps the cursor into range.
func (c *Cursor) SetLen(n int) {
	c.n = max(n, 0)
	if c.Index >= c.n {
		c.Index = max(c.n-1, 0)
	}
	c.follow()
}

// Len returns the row count.
func (c *Cursor) Len() int { return c.n }

// Down moves one row down.
func (c *Cursor) Down() {
	if c.Index < c.n-1 {
		c.Index++
		c.follow()
	}
}

// Up moves one row up.
func (c *Cursor) Up() {
	if c.Index > 0 {
		c.Index--
		c.follow()
	}
}

// Top jumps to the first row.
func (c *Cursor) Top() {
	c.Index = 0
	c.follow()
}

// Bottom jumps to the last row.
func (c *Cursor) Bottom() {
	c.Index = max(c.n-1, 0)
	c.follow()
}

// Window returns the half-open range of visible rows.
func (c *Cursor) Window() (start, end int) {
	return c.Offset, min(c.Offset+c.PageSize, c.n)
}

func (c *Cursor) follow() {
	if c.Index < c.Offset {
		c.Offset = c.Index
	}
	if c.Index >= c.Offset+c.PageSize {
		c.Offset = c.Index - c.PageSize + 1
	}
	if maxOffset := max(c.n-c.PageSize, 0); c.Offset > maxOffset {
		c.Offset = maxOffset
	}
}
