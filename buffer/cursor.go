// Package buffer implements the position-tracked cursor over an immutable
// byte buffer that the match engine advances and backtracks.
//
// A Cursor never copies the underlying buffer; it only tracks an offset
// into it plus the derived line and column. Save/Location/Restore give the
// node kinds that backtrack (Sequence, Repeat, Not) a constant-time way to
// snapshot and rewind.
package buffer

import "github.com/CausticLang/CausticLexer/internal/pegerr"

// Location is an opaque snapshot of a Cursor's position, returned by Save
// and consumed by Restore. It round-trips exactly: Restore(Save()) is the
// identity.
type Location struct {
	offset int
	line   int
	column int
}

// Cursor is a position-tracked view over an immutable byte buffer.
//
// Two ways of tracking line/column are offered: NewCursor maintains them
// incrementally as Step/apply advance the offset (the authoritative,
// performance-sensitive form); NewComputingCursor recomputes them on demand
// from the byte prefix. Both report identical Location values for the same
// offset.
type Cursor struct {
	buf    []byte
	offset int
	line   int
	column int

	// incremental is false for a computing Cursor: line/column are
	// recalculated from buf[:offset] on every Tell instead of being kept
	// up to date by consume.
	incremental bool
}

// NewCursor returns a Cursor that tracks line/column incrementally as the
// authoritative, performance-sensitive form described in spec §4.1.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf, incremental: true}
}

// NewComputingCursor returns a Cursor that recomputes line/column from the
// byte prefix on every Tell rather than maintaining them incrementally.
// Both forms must agree; this one exists for implementations that would
// rather trade CPU for simplicity.
func NewComputingCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf, incremental: false}
}

// Len returns the length of the underlying buffer.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Offset returns the current byte offset, always in [0, Len()].
func (c *Cursor) Offset() int {
	return c.offset
}

// Bytes returns the full underlying buffer. Callers must not mutate it.
func (c *Cursor) Bytes() []byte {
	return c.buf
}

// Tell returns the current line (1-based) and column (0-based), per
// spec §4.1: line count is the number of 0x0A bytes in buf[:offset] plus
// one; column is offset minus the offset just past the most recent
// newline (or offset itself if no newline precedes), so the byte right
// after a newline is column 0.
func (c *Cursor) Tell() (line, column int) {
	if c.incremental {
		return c.line + 1, c.column
	}
	return c.computeLineColumn(c.offset)
}

func (c *Cursor) computeLineColumn(offset int) (line, column int) {
	nl := 0
	last := -1
	for i := 0; i < offset; i++ {
		if c.buf[i] == '\n' {
			nl++
			last = i
		}
	}
	return nl + 1, offset - last - 1
}

// Peek returns the next n bytes without advancing the cursor. Near the end
// of the buffer it returns a shorter slice. Peek() with no argument (n<0)
// returns the next single byte, or an empty slice at end of buffer.
func (c *Cursor) Peek(n int) []byte {
	if n < 0 {
		n = 1
	}
	end := c.offset + n
	if end > len(c.buf) {
		end = len(c.buf)
	}
	if end < c.offset {
		end = c.offset
	}
	return c.buf[c.offset:end]
}

// Step advances the cursor by n bytes (negative allowed) and returns the
// consumed slice. Stepping out of [0, Len()] raises an out-of-range error
// unless permitOverrun is set, in which case the move clamps to the bound.
func (c *Cursor) Step(n int, permitOverrun bool) ([]byte, error) {
	target := c.offset + n
	if target < 0 || target > len(c.buf) {
		if !permitOverrun {
			return nil, pegerr.OutOfRange(c.offset, n, len(c.buf))
		}
		if target < 0 {
			target = 0
		} else {
			target = len(c.buf)
		}
	}

	var span []byte
	if n >= 0 {
		span = c.buf[c.offset:target]
	} else {
		span = c.buf[target:c.offset]
	}
	c.consumeTo(target)
	return span, nil
}

// Apply applies f to buf[offset:]; on a successful match it advances the
// cursor by the match's length and returns the match, otherwise it leaves
// the cursor untouched and returns ok=false.
func (c *Cursor) Apply(f func(tail []byte) (n int, ok bool)) (n int, ok bool) {
	n, ok = f(c.buf[c.offset:])
	if !ok {
		return 0, false
	}
	c.consumeTo(c.offset + n)
	return n, true
}

// Save snapshots the current position as an opaque Location.
func (c *Cursor) Save() Location {
	line, column := c.Tell()
	return Location{offset: c.offset, line: line, column: column}
}

// Restore rewinds the cursor to a previously saved Location in constant
// time; Restore(Save()) is the identity.
func (c *Cursor) Restore(loc Location) {
	c.offset = loc.offset
	c.line = loc.line - 1
	c.column = loc.column
}

func (c *Cursor) consumeTo(target int) {
	if c.incremental {
		if target >= c.offset {
			for i := c.offset; i < target; i++ {
				if c.buf[i] == '\n' {
					c.line++
					c.column = 0
				} else {
					c.column++
				}
			}
		} else {
			// Backing up (negative Step): recompute from scratch, it is
			// the uncommon path and staying correct matters more than
			// staying incremental here.
			c.line, c.column = 0, 0
			for i := 0; i < target; i++ {
				if c.buf[i] == '\n' {
					c.line++
					c.column = 0
				} else {
					c.column++
				}
			}
		}
	}
	c.offset = target
}
