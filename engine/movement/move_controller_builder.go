package movement

import (
	"github.com/Carmen-Shannon/oxy-move/common"
	"go.uber.org/zap"
)

// MoveControllerOption is a functional option for configuring a MoveController.
type MoveControllerOption func(*moveControllerImpl)

// WithMoveSpeed sets the movement speed in units per second.
// Zero selects the default.
//
// Parameters:
//   - speed: movement speed
//
// Returns:
//   - MoveControllerOption: functional option to set the move speed
func WithMoveSpeed(speed float64) MoveControllerOption {
	return func(mc *moveControllerImpl) {
		mc.moveSpeed = common.Coalesce(speed, DefaultMoveSpeed)
	}
}

// WithRotationSpeed sets the rotation speed in radians per second.
// Zero selects the default.
//
// Parameters:
//   - speed: rotation speed
//
// Returns:
//   - MoveControllerOption: functional option to set the rotation speed
func WithRotationSpeed(speed float64) MoveControllerOption {
	return func(mc *moveControllerImpl) {
		mc.rotationSpeed = common.Coalesce(speed, DefaultRotationSpeed)
	}
}

// WithMinVerticalRotation sets the smallest polar angle, measured from straight up,
// the vertical target may face.
//
// Parameters:
//   - rad: lower bound in radians
//
// Returns:
//   - MoveControllerOption: functional option to set the lower bound
func WithMinVerticalRotation(rad float64) MoveControllerOption {
	return func(mc *moveControllerImpl) {
		mc.minVerticalRotation = &rad
	}
}

// WithMaxVerticalRotation sets the largest polar angle, measured from straight up,
// the vertical target may face.
//
// Parameters:
//   - rad: upper bound in radians
//
// Returns:
//   - MoveControllerOption: functional option to set the upper bound
func WithMaxVerticalRotation(rad float64) MoveControllerOption {
	return func(mc *moveControllerImpl) {
		mc.maxVerticalRotation = &rad
	}
}

// WithVerticalRotationBounds sets both polar-angle bounds. A min greater than max is
// accepted and leaves vertical rotation unreachable.
//
// Parameters:
//   - min: lower bound in radians
//   - max: upper bound in radians
//
// Returns:
//   - MoveControllerOption: functional option to set both bounds
func WithVerticalRotationBounds(min, max float64) MoveControllerOption {
	return func(mc *moveControllerImpl) {
		mc.minVerticalRotation = &min
		mc.maxVerticalRotation = &max
	}
}

// WithInterval sets the minimum accumulated time before Tick applies anything.
// Unlike the speeds, zero is honored and makes every Tick apply.
//
// Parameters:
//   - seconds: interval in seconds
//
// Returns:
//   - MoveControllerOption: functional option to set the tick interval
func WithInterval(seconds float64) MoveControllerOption {
	return func(mc *moveControllerImpl) {
		mc.interval = seconds
	}
}

// WithEnabled sets the initial enabled state. A controller constructed disabled
// registers no listeners until SetEnabled(true).
//
// Parameters:
//   - enabled: initial state
//
// Returns:
//   - MoveControllerOption: functional option to set the initial state
func WithEnabled(enabled bool) MoveControllerOption {
	return func(mc *moveControllerImpl) {
		mc.enabled = enabled
	}
}

// WithMoveEnabled sets whether movement starts enabled.
//
// Parameters:
//   - enabled: initial state
//
// Returns:
//   - MoveControllerOption: functional option
func WithMoveEnabled(enabled bool) MoveControllerOption {
	return func(mc *moveControllerImpl) {
		mc.moveEnabled = enabled
	}
}

// WithRotationEnabled sets whether rotation starts enabled.
//
// Parameters:
//   - enabled: initial state
//
// Returns:
//   - MoveControllerOption: functional option
func WithRotationEnabled(enabled bool) MoveControllerOption {
	return func(mc *moveControllerImpl) {
		mc.rotationEnabled = enabled
	}
}

// WithVerticalRotationEnabled sets whether vertical rotation starts enabled.
//
// Parameters:
//   - enabled: initial state
//
// Returns:
//   - MoveControllerOption: functional option
func WithVerticalRotationEnabled(enabled bool) MoveControllerOption {
	return func(mc *moveControllerImpl) {
		mc.verticalRotationEnabled = enabled
	}
}

// WithLogger sets the logger used for debug output. Nil keeps the no-op logger.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - MoveControllerOption: functional option
func WithLogger(logger *zap.Logger) MoveControllerOption {
	return func(mc *moveControllerImpl) {
		if logger != nil {
			mc.logger = logger
		}
	}
}
