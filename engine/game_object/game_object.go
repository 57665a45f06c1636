package game_object

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-move/common"
	"github.com/go-gl/mathgl/mgl64"
)

// objectCount is an atomic counter used to hand out default object IDs.
var objectCount atomic.Uint64

type gameObject struct {
	mu *sync.RWMutex

	id      uint64
	name    string
	enabled atomic.Bool

	// local transform, relative to parent
	position   mgl64.Vec3
	rotation   [3]float64 // Euler XYZ, kept in sync with quaternion
	quaternion mgl64.Quat
	scale      mgl64.Vec3

	parent   *gameObject
	children []*gameObject
}

// GameObject defines the interface for a node in the scene graph.
// A node carries a local transform relative to its parent; world-space queries walk
// the parent chain. All methods are safe for concurrent use.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object is enabled.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Position returns the local position.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float64)

	// SetPosition sets the local position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float64)

	// Rotation returns the local rotation as XYZ Euler angles in radians. Y is yaw.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float64)

	// SetRotation sets the local rotation from XYZ Euler angles and updates the quaternion.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles in radians
	SetRotation(rx, ry, rz float64)

	// Quaternion returns the local orientation.
	//
	// Returns:
	//   - mgl64.Quat: the local orientation
	Quaternion() mgl64.Quat

	// SetQuaternion sets the local orientation and updates the Euler rotation.
	//
	// Parameters:
	//   - q: the new orientation (normalized on write)
	SetQuaternion(q mgl64.Quat)

	// Scale returns the local scale.
	//
	// Returns:
	//   - sx, sy, sz: scale factors
	Scale() (sx, sy, sz float64)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float64)

	// Parent returns the parent node, or nil for a root.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Children returns a snapshot of the direct children.
	//
	// Returns:
	//   - []GameObject: the children in insertion order
	Children() []GameObject

	// AddChild attaches child under this node, detaching it from any previous parent.
	// The child's local transform is kept as-is. Adding a node to itself or to one of its
	// own descendants is ignored.
	//
	// Parameters:
	//   - child: the node to attach
	AddChild(child GameObject)

	// RemoveChild detaches child if it is a direct child of this node.
	//
	// Parameters:
	//   - child: the node to detach
	RemoveChild(child GameObject)

	// WorldPosition returns the node's position in world space.
	//
	// Returns:
	//   - mgl64.Vec3: world-space position
	WorldPosition() mgl64.Vec3

	// WorldQuaternion returns the node's orientation in world space.
	//
	// Returns:
	//   - mgl64.Quat: world-space orientation
	WorldQuaternion() mgl64.Quat

	// LookAt rotates the node so its +Z axis points at the given world-space point,
	// using +Y as the up reference. The parent's world rotation is factored out so the
	// result is stored as a local rotation.
	//
	// Parameters:
	//   - x, y, z: world-space point to face
	LookAt(x, y, z float64)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// Defaults: enabled, identity rotation, unit scale, and a process-unique ID.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		mu:         &sync.RWMutex{},
		id:         objectCount.Add(1),
		quaternion: mgl64.QuatIdent(),
		scale:      mgl64.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Position() (x, y, z float64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.position[0], g.position[1], g.position[2]
}

func (g *gameObject) SetPosition(x, y, z float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.position = mgl64.Vec3{x, y, z}
}

func (g *gameObject) Rotation() (rx, ry, rz float64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rotation[0], g.rotation[1], g.rotation[2]
}

func (g *gameObject) SetRotation(rx, ry, rz float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setRotation(rx, ry, rz)
}

func (g *gameObject) Quaternion() mgl64.Quat {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.quaternion
}

func (g *gameObject) SetQuaternion(q mgl64.Quat) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.setQuaternion(q)
}

func (g *gameObject) Scale() (sx, sy, sz float64) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scale[0], g.scale[1], g.scale[2]
}

func (g *gameObject) SetScale(sx, sy, sz float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scale = mgl64.Vec3{sx, sy, sz}
}

func (g *gameObject) Parent() GameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.parent == nil {
		return nil
	}
	return g.parent
}

func (g *gameObject) Children() []GameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]GameObject, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

func (g *gameObject) AddChild(child GameObject) {
	c, ok := child.(*gameObject)
	if !ok || c == nil || c == g || c.isAncestorOf(g) {
		return
	}
	if old := c.parentNode(); old != nil {
		old.RemoveChild(c)
	}

	g.mu.Lock()
	g.children = append(g.children, c)
	g.mu.Unlock()

	c.mu.Lock()
	c.parent = g
	c.mu.Unlock()
}

func (g *gameObject) RemoveChild(child GameObject) {
	c, ok := child.(*gameObject)
	if !ok || c == nil {
		return
	}

	g.mu.Lock()
	found := false
	for i, existing := range g.children {
		if existing == c {
			g.children = append(g.children[:i], g.children[i+1:]...)
			found = true
			break
		}
	}
	g.mu.Unlock()

	if found {
		c.mu.Lock()
		c.parent = nil
		c.mu.Unlock()
	}
}

func (g *gameObject) WorldPosition() mgl64.Vec3 {
	g.mu.RLock()
	local := g.position
	parent := g.parent
	g.mu.RUnlock()

	if parent == nil {
		return local
	}

	sx, sy, sz := parent.Scale()
	scaled := mgl64.Vec3{local[0] * sx, local[1] * sy, local[2] * sz}
	return parent.WorldPosition().Add(parent.WorldQuaternion().Rotate(scaled))
}

func (g *gameObject) WorldQuaternion() mgl64.Quat {
	g.mu.RLock()
	local := g.quaternion
	parent := g.parent
	g.mu.RUnlock()

	if parent == nil {
		return local
	}
	return parent.WorldQuaternion().Mul(local)
}

func (g *gameObject) LookAt(x, y, z float64) {
	target := mgl64.Vec3{x, y, z}
	q := common.LookRotation(target.Sub(g.WorldPosition()), common.AxisY)

	if parent := g.parentNode(); parent != nil {
		q = parent.WorldQuaternion().Inverse().Mul(q)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.setQuaternion(q)
}

// setRotation updates Euler angles and the derived quaternion. Caller must hold the lock.
func (g *gameObject) setRotation(rx, ry, rz float64) {
	g.rotation = [3]float64{rx, ry, rz}
	g.quaternion = common.EulerToQuat(rx, ry, rz)
}

// setQuaternion updates the quaternion and the derived Euler angles. Caller must hold the lock.
func (g *gameObject) setQuaternion(q mgl64.Quat) {
	g.quaternion = q.Normalize()
	rx, ry, rz := common.QuatToEuler(g.quaternion)
	g.rotation = [3]float64{rx, ry, rz}
}

func (g *gameObject) parentNode() *gameObject {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.parent
}

// isAncestorOf reports whether g appears in other's parent chain.
func (g *gameObject) isAncestorOf(other *gameObject) bool {
	for p := other.parentNode(); p != nil; p = p.parentNode() {
		if p == g {
			return true
		}
	}
	return false
}
