package symbols

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestLabelName(t *testing.T) {
	tests := []struct {
		address  uint16
		expected string
	}{
		{0x0000, "L0000"},
		{0x0005, "L0005"},
		{0x38A2, "L38A2"},
		{0xFFFF, "LFFFF"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, LabelName(tt.address))
		})
	}
}

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	name := registry.Register(0x1234)
	assert.Equal(t, "L1234", name)
	assert.True(t, registry.Has(0x1234))
	assert.Equal(t, 1, registry.Len())

	// registration is idempotent
	name = registry.Register(0x1234)
	assert.Equal(t, "L1234", name)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistryName(t *testing.T) {
	registry := NewRegistry()
	registry.Register(0x8000)

	name, ok := registry.Name(0x8000)
	assert.True(t, ok)
	assert.Equal(t, "L8000", name)

	_, ok = registry.Name(0x8001)
	assert.False(t, ok)
	assert.False(t, registry.Has(0x8001))
}
