// Package movement maps keyboard and pointer gestures onto scene-graph nodes:
// directional movement relative to a horizontal facing, horizontal look rotation,
// and bounded vertical look rotation, applied on a fixed-interval tick.
package movement

import "github.com/go-gl/mathgl/mgl64"

// Target is the slice of a scene-graph node the controller drives. The controller
// mutates targets but never owns them. game_object.GameObject satisfies it.
type Target interface {
	// Position returns the local position.
	Position() (x, y, z float64)

	// SetPosition sets the local position.
	SetPosition(x, y, z float64)

	// Rotation returns the local XYZ Euler rotation in radians. Y is yaw.
	Rotation() (rx, ry, rz float64)

	// SetRotation sets the local XYZ Euler rotation in radians.
	SetRotation(rx, ry, rz float64)

	// WorldPosition returns the world-space position.
	WorldPosition() mgl64.Vec3

	// WorldQuaternion returns the world-space orientation.
	WorldQuaternion() mgl64.Quat

	// LookAt points the node's +Z axis at a world-space point.
	LookAt(x, y, z float64)
}

// MoveController translates input gestures into movement and rotation of its targets.
// Listener registration follows the enabled state; Tick must be driven externally.
type MoveController interface {
	// Enabled returns whether the controller is listening for input and responding to Tick.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled attaches the controller's input listeners when switching to true and
	// detaches them when switching to false. Setting the current value is a no-op.
	// Disabling also drops any in-progress gesture.
	//
	// Parameters:
	//   - enabled: the new state
	SetEnabled(enabled bool)

	// Dispose detaches all input listeners. Equivalent to SetEnabled(false); safe to call
	// repeatedly, and the controller may be re-enabled afterwards.
	Dispose()

	// MoveEnabled returns whether movement gestures are applied on Tick.
	//
	// Returns:
	//   - bool: true if movement is enabled
	MoveEnabled() bool

	// SetMoveEnabled sets whether movement gestures are applied on Tick.
	//
	// Parameters:
	//   - enabled: the new state
	SetMoveEnabled(enabled bool)

	// RotationEnabled returns whether rotation gestures are applied on Tick.
	//
	// Returns:
	//   - bool: true if rotation is enabled
	RotationEnabled() bool

	// SetRotationEnabled sets whether rotation gestures are applied on Tick.
	//
	// Parameters:
	//   - enabled: the new state
	SetRotationEnabled(enabled bool)

	// VerticalRotationEnabled returns whether vertical rotation gestures are applied on Tick.
	//
	// Returns:
	//   - bool: true if vertical rotation is enabled
	VerticalRotationEnabled() bool

	// SetVerticalRotationEnabled sets whether vertical rotation gestures are applied on Tick.
	//
	// Parameters:
	//   - enabled: the new state
	SetVerticalRotationEnabled(enabled bool)

	// MoveSpeed returns the movement speed in units per second.
	//
	// Returns:
	//   - float64: movement speed
	MoveSpeed() float64

	// SetMoveSpeed sets the movement speed in units per second.
	//
	// Parameters:
	//   - speed: movement speed
	SetMoveSpeed(speed float64)

	// RotationSpeed returns the rotation speed in radians per second.
	//
	// Returns:
	//   - float64: rotation speed
	RotationSpeed() float64

	// SetRotationSpeed sets the rotation speed in radians per second.
	//
	// Parameters:
	//   - speed: rotation speed
	SetRotationSpeed(speed float64)

	// MinVerticalRotation returns the lower polar-angle bound, if any.
	//
	// Returns:
	//   - float64: the bound in radians
	//   - bool: false when unbounded
	MinVerticalRotation() (float64, bool)

	// MaxVerticalRotation returns the upper polar-angle bound, if any.
	//
	// Returns:
	//   - float64: the bound in radians
	//   - bool: false when unbounded
	MaxVerticalRotation() (float64, bool)

	// Interval returns the minimum accumulated time, in seconds, before Tick applies anything.
	//
	// Returns:
	//   - float64: interval in seconds
	Interval() float64

	// Moving reports whether a movement gesture is active.
	//
	// Returns:
	//   - bool: true while a movement key is held
	Moving() bool

	// Rotating reports whether a rotation gesture is active.
	//
	// Returns:
	//   - bool: true while a pointer drag over the surface is in progress
	Rotating() bool

	// MoveDirection returns the current unit move direction in the mover's local frame.
	//
	// Returns:
	//   - mgl64.Vec3: one of the four horizontal unit vectors, or zero
	MoveDirection() mgl64.Vec3

	// RotationAxis returns the committed drag axis. At most one component is non-zero.
	//
	// Returns:
	//   - x: +1 dragging right, -1 dragging left, 0 otherwise
	//   - y: +1 dragging up, -1 dragging down, 0 otherwise
	RotationAxis() (x, y float64)

	// Tick advances the controller by deltaSeconds of real time. Effects are applied only
	// once the accumulated time reaches the configured interval, and then the whole
	// accumulated time is used as the step.
	//
	// Parameters:
	//   - deltaSeconds: elapsed time since the previous call
	Tick(deltaSeconds float64)
}
