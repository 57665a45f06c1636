package game_object

import "github.com/go-gl/mathgl/mgl64"

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID overrides the automatically assigned ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the display name of the GameObject.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithEnabled sets whether the GameObject starts enabled.
//
// Parameters:
//   - enabled: true to enable the object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.enabled.Store(enabled)
	}
}

// WithPosition sets the initial local position of the GameObject.
//
// Parameters:
//   - x: the x position
//   - y: the y position
//   - z: the z position
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial position
func WithPosition(x, y, z float64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.position = mgl64.Vec3{x, y, z}
	}
}

// WithRotation sets the initial local rotation as XYZ Euler angles in radians.
//
// Parameters:
//   - rx: the x rotation angle
//   - ry: the y rotation angle (yaw)
//   - rz: the z rotation angle
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(rx, ry, rz float64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.setRotation(rx, ry, rz)
	}
}

// WithScale sets the initial local scale of the GameObject.
//
// Parameters:
//   - sx: the x scale factor
//   - sy: the y scale factor
//   - sz: the z scale factor
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(sx, sy, sz float64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.scale = mgl64.Vec3{sx, sy, sz}
	}
}
