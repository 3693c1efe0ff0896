package courier_test

import (
	"testing"

	"quickbite/internal/core/domain/model/courier"
	"quickbite/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return p
}

func TestNewCourier(t *testing.T) {
	t.Run("starts offline and unverified", func(t *testing.T) {
		c, err := courier.NewCourier(kernel.NewUUID(), "Ali", point(t, 31.52, 74.35))
		require.NoError(t, err)
		assert.False(t, c.IsOnline())
		assert.False(t, c.IsVerified())
		assert.False(t, c.IsDispatchable())
		require.NoError(t, c.Validate())
	})

	t.Run("requires a name", func(t *testing.T) {
		_, err := courier.NewCourier(kernel.NewUUID(), "", point(t, 31.52, 74.35))
		require.ErrorIs(t, err, courier.ErrNameIsRequired)
	})

	t.Run("requires a constructed location", func(t *testing.T) {
		var zero kernel.GeoPoint
		_, err := courier.NewCourier(kernel.NewUUID(), "Ali", zero)
		require.Error(t, err)
	})
}

func TestCourier_IsDispatchable(t *testing.T) {
	tests := []struct {
		name     string
		online   bool
		verified bool
		want     bool
	}{
		{"online and verified", true, true, true},
		{"online but unverified", true, false, false},
		{"verified but offline", false, true, false},
		{"offline and unverified", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := courier.RestoreCourier(
				kernel.NewUUID(), "Ali", point(t, 31.52, 74.35), tt.online, tt.verified)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.IsDispatchable())
		})
	}
}

func TestCourier_SetLocation(t *testing.T) {
	c, err := courier.NewCourier(kernel.NewUUID(), "Ali", point(t, 31.52, 74.35))
	require.NoError(t, err)

	next := point(t, 31.53, 74.36)
	require.NoError(t, c.SetLocation(next))
	equal, err := c.Location().IsEqual(next)
	require.NoError(t, err)
	assert.True(t, equal)

	var zero kernel.GeoPoint
	require.Error(t, c.SetLocation(zero))
}

func TestCourier_Toggles(t *testing.T) {
	c, err := courier.NewCourier(kernel.NewUUID(), "Ali", point(t, 31.52, 74.35))
	require.NoError(t, err)

	c.SetOnline(true)
	c.MarkVerified(true)
	assert.True(t, c.IsDispatchable())

	c.SetOnline(false)
	assert.False(t, c.IsDispatchable())
}
