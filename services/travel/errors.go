package travel

import (
	"errors"
	"fmt"
)

var (
	// ErrTryNext is returned by a Strategy that cannot answer and defers to the next one.
	ErrTryNext = errors.New("travel: try next strategy")
	// ErrOutOfRange matches every *OutOfRangeError.
	ErrOutOfRange = errors.New("travel: location outside service radius")
	// ErrUpstreamUnavailable wraps every routing provider failure.
	ErrUpstreamUnavailable = errors.New("travel: routing provider unavailable")
	// ErrNoEstimate means no strategy produced an estimate.
	ErrNoEstimate = errors.New("travel: no strategy produced an estimate")
)

// OutOfRangeError reports a destination beyond the vendor's travel radius.
type OutOfRangeError struct {
	VendorID   string
	DistanceKm float64
	RadiusKm   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("location is %.2f km away, vendor %s travels at most %.2f km", e.DistanceKm, e.VendorID, e.RadiusKm)
}

func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
