package kernel_test

import (
	"testing"

	"quickbite/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"valid point", 31.5204, 74.3587, false},
		{"boundary north pole", 90, 0, false},
		{"boundary date line", 0, -180, false},
		{"latitude too large", 90.01, 0, true},
		{"latitude too small", -90.5, 0, true},
		{"longitude too large", 0, 180.1, true},
		{"longitude too small", 0, -181, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := kernel.NewGeoPoint(tt.lat, tt.lon)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lat, p.Latitude())
			assert.Equal(t, tt.lon, p.Longitude())
			require.NoError(t, p.Validate())
		})
	}
}

func TestGeoPoint_Validate_ZeroValue(t *testing.T) {
	var p kernel.GeoPoint
	require.Error(t, p.Validate())
}

func TestGeoPoint_DistanceKm(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(31.5204, 74.3587)
		require.NoError(t, err)

		d, err := p.DistanceKm(p)
		require.NoError(t, err)
		assert.Equal(t, 0.0, d)
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(31.5204, 74.3587)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(31.5497, 74.3436)
		require.NoError(t, err)

		ab, err := a.DistanceKm(b)
		require.NoError(t, err)
		ba, err := b.DistanceKm(a)
		require.NoError(t, err)
		assert.InDelta(t, ab, ba, 1e-12)
	})

	t.Run("known distance between city centres", func(t *testing.T) {
		// Lahore to Islamabad, roughly 265 km great-circle.
		lahore, err := kernel.NewGeoPoint(31.5204, 74.3587)
		require.NoError(t, err)
		islamabad, err := kernel.NewGeoPoint(33.6844, 73.0479)
		require.NoError(t, err)

		d, err := lahore.DistanceKm(islamabad)
		require.NoError(t, err)
		assert.InDelta(t, 265, d, 10)
	})

	t.Run("unconstructed point is rejected", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(1, 1)
		require.NoError(t, err)

		var zero kernel.GeoPoint
		_, err = p.DistanceKm(zero)
		require.Error(t, err)
	})
}

func TestGeoPoint_DistanceMeters(t *testing.T) {
	a, err := kernel.NewGeoPoint(31.5204, 74.3587)
	require.NoError(t, err)
	b, err := kernel.NewGeoPoint(31.5250, 74.3587)
	require.NoError(t, err)

	km, err := a.DistanceKm(b)
	require.NoError(t, err)
	m, err := a.DistanceMeters(b)
	require.NoError(t, err)
	assert.InDelta(t, km*1000, m, 1e-9)
}

func TestGeoPoint_IsEqual(t *testing.T) {
	a, err := kernel.NewGeoPoint(10, 20)
	require.NoError(t, err)
	b, err := kernel.NewGeoPoint(10, 20)
	require.NoError(t, err)
	c, err := kernel.NewGeoPoint(10, 21)
	require.NoError(t, err)

	equal, err := a.IsEqual(b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = a.IsEqual(c)
	require.NoError(t, err)
	assert.False(t, equal)
}
