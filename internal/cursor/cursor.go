// Package cursor provides bounded reading of a raw binary image.
package cursor

// Cursor owns a byte buffer and a read position. All reads are bounded:
// reading past the end of the buffer reports exhaustion instead of
// failing hard, and the position never moves backwards.
type Cursor struct {
	data []byte
	pos  int
}

// New creates a new cursor over the given data.
func New(data []byte) *Cursor {
	return &Cursor{data: data}
}

// ReadByte reads a single byte and advances the position.
// It returns false if the buffer is exhausted.
func (c *Cursor) ReadByte() (byte, bool) {
	if c.pos >= len(c.data) {
		return 0, false
	}
	b := c.data[c.pos]
	c.pos++
	return b, true
}

// ReadWord reads a little-endian 16 bit word and advances the position
// by two bytes. If fewer than two bytes remain the position is left
// unchanged and false is returned.
func (c *Cursor) ReadWord() (uint16, bool) {
	if c.pos+1 >= len(c.data) {
		return 0, false
	}
	low := c.data[c.pos]
	high := c.data[c.pos+1]
	c.pos += 2
	return uint16(low) | uint16(high)<<8, true
}

// PeekByte returns the byte at the given offset from the current
// position without advancing. It returns false if the offset lies
// outside the buffer.
func (c *Cursor) PeekByte(offset int) (byte, bool) {
	index := c.pos + offset
	if index < 0 || index >= len(c.data) {
		return 0, false
	}
	return c.data[index], true
}

// Skip advances the position by count bytes, capped at the buffer end.
func (c *Cursor) Skip(count int) {
	c.pos += count
	if c.pos > len(c.data) {
		c.pos = len(c.data)
	}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// AtEnd returns whether the cursor has consumed the whole buffer.
func (c *Cursor) AtEnd() bool {
	return c.pos >= len(c.data)
}
