package geo

import (
	"context"
	"errors"
	"time"
)

// DefaultLocateTimeout bounds a single position request.
const DefaultLocateTimeout = 10 * time.Second

var (
	ErrPermissionDenied = errors.New("location permission denied")
	ErrLocateTimeout    = errors.New("location request timed out")
)

// Locator resolves the caller's current position once. Failure is an
// expected outcome: callers fall back to an unranked view and may re-invoke
// on demand. There is no retry policy here.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (Coordinates, error)

func (f LocatorFunc) Locate(ctx context.Context) (Coordinates, error) {
	return f(ctx)
}

// Acquire runs a single position request against loc with a hard timeout.
// A result arriving after the deadline is discarded.
func Acquire(ctx context.Context, loc Locator, timeout time.Duration) (Coordinates, error) {
	if timeout <= 0 {
		timeout = DefaultLocateTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		coords Coordinates
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		c, err := loc.Locate(ctx)
		ch <- result{coords: c, err: err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			if errors.Is(res.err, context.DeadlineExceeded) {
				return Coordinates{}, ErrLocateTimeout
			}
			return Coordinates{}, res.err
		}
		return res.coords, nil
	case <-ctx.Done():
		return Coordinates{}, ErrLocateTimeout
	}
}
