package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCNPJ(t *testing.T) {
	t.Run("valid formatted number", func(t *testing.T) {
		c, err := NewCNPJ("11.222.333/0001-81")
		require.NoError(t, err)
		assert.Equal(t, "11222333000181", c.String())
		assert.Equal(t, "11.222.333/0001-81", c.Formatted())
		assert.False(t, c.IsEmpty())
	})

	t.Run("valid digits only", func(t *testing.T) {
		_, err := NewCNPJ("11222333000181")
		assert.NoError(t, err)
	})

	invalid := map[string]string{
		"wrong check digit": "11.222.333/0001-82",
		"too short":         "1122233300018",
		"repeated digits":   "00000000000000",
		"empty":             "",
	}
	for name, raw := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := NewCNPJ(raw)
			assert.ErrorIs(t, err, ErrInvalidCNPJ)
		})
	}
}
