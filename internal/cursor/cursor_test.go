package cursor

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCursorReadByte(t *testing.T) {
	cur := New([]byte{0x12, 0x34})

	b, ok := cur.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte(0x12), b)
	assert.Equal(t, 1, cur.Pos())

	b, ok = cur.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte(0x34), b)
	assert.True(t, cur.AtEnd())

	_, ok = cur.ReadByte()
	assert.False(t, ok)
	assert.Equal(t, 2, cur.Pos())
}

func TestCursorReadWord(t *testing.T) {
	cur := New([]byte{0x34, 0x12})

	w, ok := cur.ReadWord()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x1234), w)
	assert.Equal(t, 2, cur.Pos())
}

func TestCursorReadWordShortInput(t *testing.T) {
	cur := New([]byte{0x34})

	// a failed word read must not consume the remaining byte
	_, ok := cur.ReadWord()
	assert.False(t, ok)
	assert.Equal(t, 0, cur.Pos())

	b, ok := cur.ReadByte()
	assert.True(t, ok)
	assert.Equal(t, byte(0x34), b)
}

func TestCursorPeekByte(t *testing.T) {
	cur := New([]byte{0x01, 0x02, 0x03})

	b, ok := cur.PeekByte(0)
	assert.True(t, ok)
	assert.Equal(t, byte(0x01), b)
	assert.Equal(t, 0, cur.Pos())

	b, ok = cur.PeekByte(2)
	assert.True(t, ok)
	assert.Equal(t, byte(0x03), b)

	_, ok = cur.PeekByte(3)
	assert.False(t, ok)
}

func TestCursorSkip(t *testing.T) {
	cur := New([]byte{0x01, 0x02, 0x03})

	cur.Skip(2)
	assert.Equal(t, 2, cur.Pos())
	assert.Equal(t, 1, cur.Remaining())

	// skipping past the end caps at the buffer length
	cur.Skip(5)
	assert.Equal(t, 3, cur.Pos())
	assert.True(t, cur.AtEnd())
}

func TestCursorEmptyInput(t *testing.T) {
	cur := New(nil)

	assert.True(t, cur.AtEnd())
	assert.Equal(t, 0, cur.Remaining())

	_, ok := cur.ReadByte()
	assert.False(t, ok)
	_, ok = cur.ReadWord()
	assert.False(t, ok)
	_, ok = cur.PeekByte(0)
	assert.False(t, ok)
}
