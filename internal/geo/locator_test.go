package geo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire(t *testing.T) {
	t.Run("returns coordinates", func(t *testing.T) {
		loc := LocatorFunc(func(context.Context) (Coordinates, error) {
			return Coordinates{Latitude: 41.3, Longitude: 69.2}, nil
		})

		got, err := Acquire(context.Background(), loc, time.Second)

		require.NoError(t, err)
		assert.Equal(t, 41.3, got.Latitude)
		assert.Equal(t, 69.2, got.Longitude)
	})

	t.Run("permission denied passes through", func(t *testing.T) {
		loc := LocatorFunc(func(context.Context) (Coordinates, error) {
			return Coordinates{}, ErrPermissionDenied
		})

		_, err := Acquire(context.Background(), loc, time.Second)

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("slow locator times out", func(t *testing.T) {
		loc := LocatorFunc(func(ctx context.Context) (Coordinates, error) {
			select {
			case <-time.After(5 * time.Second):
				return Coordinates{Latitude: 1, Longitude: 1}, nil
			case <-ctx.Done():
				return Coordinates{}, ctx.Err()
			}
		})

		start := time.Now()
		_, err := Acquire(context.Background(), loc, 50*time.Millisecond)

		assert.ErrorIs(t, err, ErrLocateTimeout)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("zero timeout uses default", func(t *testing.T) {
		loc := LocatorFunc(func(context.Context) (Coordinates, error) {
			return Coordinates{Latitude: 2, Longitude: 3}, nil
		})

		got, err := Acquire(context.Background(), loc, 0)

		require.NoError(t, err)
		assert.Equal(t, Coordinates{Latitude: 2, Longitude: 3}, got)
	})
}
