package kernel_test

import (
	"testing"

	"quickbite/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("accepts zero and positive amounts", func(t *testing.T) {
		zero, err := kernel.NewMoney(0)
		require.NoError(t, err)
		assert.True(t, zero.IsZero())
		assert.False(t, zero.IsPositive())

		m, err := kernel.NewMoney(1500)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), m.Amount())
		assert.True(t, m.IsPositive())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)
		require.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a, err := kernel.NewMoney(1500)
	require.NoError(t, err)
	b, err := kernel.NewMoney(1000)
	require.NoError(t, err)

	t.Run("add", func(t *testing.T) {
		assert.Equal(t, int64(2500), a.Add(b).Amount())
	})

	t.Run("sub within balance", func(t *testing.T) {
		rest, subErr := a.Sub(b)
		require.NoError(t, subErr)
		assert.Equal(t, int64(500), rest.Amount())
	})

	t.Run("sub below zero fails", func(t *testing.T) {
		_, subErr := b.Sub(a)
		require.Error(t, subErr)
	})
}

func TestMoney_MultiplyRounded(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		rate   float64
		want   int64
	}{
		{"fifteen percent of 1000", 1000, 0.15, 150},
		{"rounds up", 999, 0.15, 150},   // 149.85
		{"rounds down", 333, 0.15, 50},  // 49.95 rounds to 50
		{"small amount", 3, 0.15, 0},    // 0.45 rounds to 0
		{"rounds half up", 10, 0.15, 2}, // 1.5 rounds to 2
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := kernel.NewMoney(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.MultiplyRounded(tt.rate).Amount())
		})
	}
}
