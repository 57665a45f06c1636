package movement

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-move/common"
	"github.com/Carmen-Shannon/oxy-move/engine/input"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const (
	// DefaultMoveSpeed is the movement speed used when none is configured.
	DefaultMoveSpeed = 2.0
	// DefaultRotationSpeed is the rotation speed used when none is configured.
	DefaultRotationSpeed = 1.0
	// DefaultInterval is the default tick interval (60 updates per second).
	DefaultInterval = 1.0 / 60
	// MinDragDistance is how far, in device-independent pixels, a drag must travel along
	// its dominant axis before a rotation axis is committed.
	MinDragDistance = 20.0
)

// keyDirections maps movement keys to their local move direction. Forward is -Z.
var keyDirections = map[uint32]mgl64.Vec3{
	common.KeyW:          {0, 0, -1},
	common.KeyArrowUp:    {0, 0, -1},
	common.KeyS:          {0, 0, 1},
	common.KeyArrowDown:  {0, 0, 1},
	common.KeyA:          {-1, 0, 0},
	common.KeyArrowLeft:  {-1, 0, 0},
	common.KeyD:          {1, 0, 0},
	common.KeyArrowRight: {1, 0, 0},
}

type subscription struct {
	eventType input.EventType
	id        input.ListenerID
}

// moveControllerImpl is the single implementation of MoveController.
// Input callbacks and Tick may arrive on different goroutines (window thread vs engine
// tick loop), so all state is guarded by mu.
type moveControllerImpl struct {
	mu     *sync.Mutex
	logger *zap.Logger
	source input.Source

	moveTarget               Target
	horizontalRotationTarget Target
	verticalRotationTarget   Target

	enabled                 bool
	moveEnabled             bool
	rotationEnabled         bool
	verticalRotationEnabled bool

	moveSpeed           float64
	rotationSpeed       float64
	minVerticalRotation *float64
	maxVerticalRotation *float64
	interval            float64

	// accumulated time since the last applied tick
	elapsed float64

	// gesture state
	isMoving       bool
	isRotating     bool
	moveDirection  mgl64.Vec3
	rotationAxis   mgl64.Vec2
	rotationStartX float64
	rotationStartY float64

	subscriptions []subscription
}

// Compile-time interface compliance check
var _ MoveController = &moveControllerImpl{}

// NewMoveController creates a controller driving the given targets from source.
// If the controller starts enabled (the default) its listeners are registered immediately.
//
// Parameters:
//   - source: input surface to subscribe to
//   - moveTarget: node translated by movement keys
//   - horizontalRotationTarget: node yawed by horizontal drags; its heading orients movement
//   - verticalRotationTarget: node pitched by vertical drags, or nil to disable pitching
//   - options: functional options to configure the controller
//
// Returns:
//   - MoveController: the newly created controller
func NewMoveController(
	source input.Source,
	moveTarget Target,
	horizontalRotationTarget Target,
	verticalRotationTarget Target,
	options ...MoveControllerOption,
) MoveController {
	mc := &moveControllerImpl{
		mu:     &sync.Mutex{},
		logger: zap.NewNop(),
		source: source,

		moveTarget:               moveTarget,
		horizontalRotationTarget: horizontalRotationTarget,
		verticalRotationTarget:   verticalRotationTarget,

		enabled:                 true,
		moveEnabled:             true,
		rotationEnabled:         true,
		verticalRotationEnabled: true,

		moveSpeed:     DefaultMoveSpeed,
		rotationSpeed: DefaultRotationSpeed,
		interval:      DefaultInterval,
	}

	for _, option := range options {
		option(mc)
	}

	if mc.enabled {
		mc.attach()
	}
	return mc
}

// --- listener lifecycle ---

// attach registers all input listeners. Caller must hold the mutex (or own mc exclusively).
func (mc *moveControllerImpl) attach() {
	if mc.source == nil || len(mc.subscriptions) > 0 {
		return
	}
	handlers := []struct {
		t  input.EventType
		fn input.Listener
	}{
		{input.EventKeyUp, mc.onKeyUp},
		{input.EventKeyDown, mc.onKeyDown},
		{input.EventPointerDown, mc.onPointerDown},
		{input.EventPointerUp, mc.onPointerEnd},
		{input.EventPointerCancel, mc.onPointerEnd},
		{input.EventPointerMove, mc.onPointerMove},
		{input.EventContextMenu, mc.onPointerEnd},
	}
	for _, h := range handlers {
		id := mc.source.AddListener(h.t, h.fn)
		mc.subscriptions = append(mc.subscriptions, subscription{eventType: h.t, id: id})
	}
	mc.logger.Debug("move controller listeners attached", zap.Int("listeners", len(mc.subscriptions)))
}

// detach removes every registered listener. Caller must hold the mutex.
func (mc *moveControllerImpl) detach() {
	if len(mc.subscriptions) == 0 {
		return
	}
	for _, s := range mc.subscriptions {
		mc.source.RemoveListener(s.eventType, s.id)
	}
	mc.logger.Debug("move controller listeners detached", zap.Int("listeners", len(mc.subscriptions)))
	mc.subscriptions = nil
}

// clearGesture drops movement and rotation state. Caller must hold the mutex.
func (mc *moveControllerImpl) clearGesture() {
	mc.isMoving = false
	mc.isRotating = false
	mc.moveDirection = mgl64.Vec3{}
	mc.rotationAxis = mgl64.Vec2{}
}

// --- input handlers ---

func (mc *moveControllerImpl) onKeyDown(e input.Event) {
	dir, ok := keyDirections[e.Key]
	if !ok {
		return
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if !mc.enabled {
		return
	}
	mc.moveDirection = dir
	mc.isMoving = true
}

// onKeyUp clears every gesture, including an unrelated pointer drag.
func (mc *moveControllerImpl) onKeyUp(_ input.Event) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.clearGesture()
}

func (mc *moveControllerImpl) onPointerDown(e input.Event) {
	if e.Target != input.TargetSurface {
		return
	}
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if !mc.enabled {
		return
	}
	mc.isRotating = true
	mc.rotationStartX = e.X
	mc.rotationStartY = e.Y
}

func (mc *moveControllerImpl) onPointerMove(e input.Event) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if !mc.isRotating {
		return
	}

	prev := mc.rotationAxis
	diffX := math.Abs(mc.rotationStartX - e.X)
	diffY := math.Abs(mc.rotationStartY - e.Y)
	if diffX > diffY {
		if diffX > MinDragDistance {
			mc.rotationAxis[1] = 0
			if mc.rotationStartX < e.X {
				mc.rotationAxis[0] = 1
			} else {
				mc.rotationAxis[0] = -1
			}
		}
	} else if diffY > MinDragDistance {
		mc.rotationAxis[0] = 0
		if mc.rotationStartY < e.Y {
			mc.rotationAxis[1] = -1
		} else {
			mc.rotationAxis[1] = 1
		}
	}

	if mc.rotationAxis != prev {
		mc.logger.Debug("rotation axis committed",
			zap.Float64("axis_x", mc.rotationAxis[0]),
			zap.Float64("axis_y", mc.rotationAxis[1]),
		)
	}
}

func (mc *moveControllerImpl) onPointerEnd(_ input.Event) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.clearGesture()
}

// --- tick ---

func (mc *moveControllerImpl) Tick(deltaSeconds float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if !mc.enabled {
		return
	}
	mc.elapsed += deltaSeconds
	if mc.elapsed < mc.interval {
		return
	}
	dt := mc.elapsed
	mc.elapsed = 0

	if mc.isRotating && mc.rotationEnabled {
		if mc.rotationAxis[0] != 0 {
			mc.rotateHorizontal(dt)
		} else if mc.rotationAxis[1] != 0 && mc.verticalRotationEnabled && mc.verticalRotationTarget != nil {
			mc.rotateVertical(dt)
		}
	}
	if mc.isMoving && mc.moveEnabled {
		mc.move(dt)
	}
}

// rotateHorizontal yaws the horizontal target. Dragging right turns clockwise seen from
// above (yaw decreases). Caller must hold the mutex.
func (mc *moveControllerImpl) rotateHorizontal(dt float64) {
	t := mc.horizontalRotationTarget
	rx, ry, rz := t.Rotation()
	step := mc.rotationSpeed * dt
	if mc.rotationAxis[0] > 0 {
		ry -= step
	} else {
		ry += step
	}
	t.SetRotation(rx, common.WrapAngle(ry), rz)
}

// rotateVertical pitches the vertical target by re-aiming it at a point one unit ahead,
// rotated about its local X axis. The step is discarded, not clamped, when the resulting
// polar angle leaves the configured bounds. Caller must hold the mutex.
func (mc *moveControllerImpl) rotateVertical(dt float64) {
	t := mc.verticalRotationTarget
	angle := mc.rotationSpeed * dt * mc.rotationAxis[1]

	direction := common.RotateAboutX(common.AxisZ, angle)
	position := t.WorldPosition()
	lookAt := position.Add(t.WorldQuaternion().Rotate(direction))

	phi := common.SphericalPhi(lookAt.Sub(position))
	if !mc.withinVerticalBounds(phi) {
		mc.logger.Debug("vertical rotation out of bounds", zap.Float64("phi", phi))
		return
	}
	t.LookAt(lookAt.X(), lookAt.Y(), lookAt.Z())
}

func (mc *moveControllerImpl) withinVerticalBounds(phi float64) bool {
	if mc.minVerticalRotation != nil && phi < *mc.minVerticalRotation {
		return false
	}
	if mc.maxVerticalRotation != nil && phi > *mc.maxVerticalRotation {
		return false
	}
	return true
}

// move translates the move target along the stored direction, oriented by the horizontal
// target's heading only. The heading is renormalized after pitch and roll are dropped, so a
// tilted horizontal target does not shorten the step. Y is never modified. Caller must hold the mutex.
func (mc *moveControllerImpl) move(dt float64) {
	heading := common.HorizontalHeading(mc.horizontalRotationTarget.WorldQuaternion())
	direction := heading.Rotate(mc.moveDirection)

	x, y, z := mc.moveTarget.Position()
	mc.moveTarget.SetPosition(
		x+mc.moveSpeed*direction.X()*dt,
		y,
		z+mc.moveSpeed*direction.Z()*dt,
	)
}

// --- MoveController accessors ---

func (mc *moveControllerImpl) Enabled() bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.enabled
}

func (mc *moveControllerImpl) SetEnabled(enabled bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.enabled == enabled {
		return
	}
	mc.enabled = enabled
	if enabled {
		mc.attach()
		return
	}
	mc.detach()
	mc.clearGesture()
}

func (mc *moveControllerImpl) Dispose() {
	mc.SetEnabled(false)
}

func (mc *moveControllerImpl) MoveEnabled() bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.moveEnabled
}

func (mc *moveControllerImpl) SetMoveEnabled(enabled bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.moveEnabled = enabled
}

func (mc *moveControllerImpl) RotationEnabled() bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.rotationEnabled
}

func (mc *moveControllerImpl) SetRotationEnabled(enabled bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.rotationEnabled = enabled
}

func (mc *moveControllerImpl) VerticalRotationEnabled() bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.verticalRotationEnabled
}

func (mc *moveControllerImpl) SetVerticalRotationEnabled(enabled bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.verticalRotationEnabled = enabled
}

func (mc *moveControllerImpl) MoveSpeed() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.moveSpeed
}

func (mc *moveControllerImpl) SetMoveSpeed(speed float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.moveSpeed = speed
}

func (mc *moveControllerImpl) RotationSpeed() float64 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.rotationSpeed
}

func (mc *moveControllerImpl) SetRotationSpeed(speed float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.rotationSpeed = speed
}

func (mc *moveControllerImpl) MinVerticalRotation() (float64, bool) {
	if mc.minVerticalRotation == nil {
		return 0, false
	}
	return *mc.minVerticalRotation, true
}

func (mc *moveControllerImpl) MaxVerticalRotation() (float64, bool) {
	if mc.maxVerticalRotation == nil {
		return 0, false
	}
	return *mc.maxVerticalRotation, true
}

func (mc *moveControllerImpl) Interval() float64 {
	return mc.interval
}

func (mc *moveControllerImpl) Moving() bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.isMoving
}

func (mc *moveControllerImpl) Rotating() bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.isRotating
}

func (mc *moveControllerImpl) MoveDirection() mgl64.Vec3 {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.moveDirection
}

func (mc *moveControllerImpl) RotationAxis() (x, y float64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.rotationAxis[0], mc.rotationAxis[1]
}
