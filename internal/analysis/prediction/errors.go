package prediction

import "errors"

var (
	// ErrInvalidSnapshot is returned when a snapshot has a non-positive price or a non-finite field
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	// ErrNumericOverflow is returned when a simulation step produces a non-finite price
	ErrNumericOverflow = errors.New("numeric overflow in simulation")
	// ErrInvalidConfig is returned for horizons, steps or presets that cannot produce a path
	ErrInvalidConfig = errors.New("invalid forecast config")
)
