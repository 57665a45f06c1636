package game_object

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVec(t *testing.T, expected, actual mgl64.Vec3) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, expected[i], actual[i], 1e-9, "component %d: expected %v, got %v", i, expected, actual)
	}
}

func TestNewGameObjectDefaults(t *testing.T) {
	obj := NewGameObject(WithName("person"))

	assert.Equal(t, "person", obj.Name())
	assert.NotZero(t, obj.ID())
	assert.True(t, obj.Enabled())
	assert.Equal(t, mgl64.QuatIdent(), obj.Quaternion())

	sx, sy, sz := obj.Scale()
	assert.Equal(t, [3]float64{1, 1, 1}, [3]float64{sx, sy, sz})
	assert.Nil(t, obj.Parent())
	assert.Empty(t, obj.Children())
}

func TestGameObjectUniqueIDs(t *testing.T) {
	a := NewGameObject()
	b := NewGameObject()
	assert.NotEqual(t, a.ID(), b.ID())

	c := NewGameObject(WithID(42), WithEnabled(false))
	assert.Equal(t, uint64(42), c.ID())
	assert.False(t, c.Enabled())
}

func TestSetRotationSyncsQuaternion(t *testing.T) {
	obj := NewGameObject()
	obj.SetRotation(0, math.Pi/2, 0)

	rx, ry, rz := obj.Rotation()
	assert.Equal(t, [3]float64{0, math.Pi / 2, 0}, [3]float64{rx, ry, rz})
	assertVec(t, mgl64.Vec3{1, 0, 0}, obj.Quaternion().Rotate(mgl64.Vec3{0, 0, 1}))
}

func TestSetQuaternionSyncsEuler(t *testing.T) {
	obj := NewGameObject()
	obj.SetQuaternion(mgl64.QuatRotate(0.4, mgl64.Vec3{1, 0, 0}))

	rx, ry, rz := obj.Rotation()
	assert.InDelta(t, 0.4, rx, 1e-9)
	assert.InDelta(t, 0, ry, 1e-9)
	assert.InDelta(t, 0, rz, 1e-9)
}

func TestParentChild(t *testing.T) {
	parent := NewGameObject(WithName("parent"))
	child := NewGameObject(WithName("child"))

	parent.AddChild(child)
	require.Len(t, parent.Children(), 1)
	assert.Equal(t, child, parent.Children()[0])
	assert.Equal(t, parent, child.Parent())

	// reparenting detaches from the previous parent
	other := NewGameObject()
	other.AddChild(child)
	assert.Empty(t, parent.Children())
	assert.Equal(t, other, child.Parent())

	other.RemoveChild(child)
	assert.Nil(t, child.Parent())
	assert.Empty(t, other.Children())
}

func TestAddChildRejectsCycles(t *testing.T) {
	root := NewGameObject()
	mid := NewGameObject()
	leaf := NewGameObject()
	root.AddChild(mid)
	mid.AddChild(leaf)

	leaf.AddChild(root)
	assert.Nil(t, root.Parent())

	root.AddChild(root)
	assert.Len(t, root.Children(), 1)
}

func TestWorldTransformWalksParents(t *testing.T) {
	parent := NewGameObject(
		WithPosition(10, 0, 0),
		WithRotation(0, math.Pi/2, 0),
		WithScale(2, 2, 2),
	)
	child := NewGameObject(WithPosition(0, 1, 1))
	parent.AddChild(child)

	// local (0,1,1) scaled to (0,2,2), yawed +90deg: z -> x
	assertVec(t, mgl64.Vec3{12, 2, 0}, child.WorldPosition())

	wq := child.WorldQuaternion()
	assertVec(t, mgl64.Vec3{1, 0, 0}, wq.Rotate(mgl64.Vec3{0, 0, 1}))
}

func TestLookAtRootNode(t *testing.T) {
	obj := NewGameObject(WithPosition(1, 2, 3))
	obj.LookAt(1, 2, 10)
	assertVec(t, mgl64.Vec3{0, 0, 1}, obj.WorldQuaternion().Rotate(mgl64.Vec3{0, 0, 1}))

	obj.LookAt(5, 2, 3)
	assertVec(t, mgl64.Vec3{1, 0, 0}, obj.WorldQuaternion().Rotate(mgl64.Vec3{0, 0, 1}))

	_, ry, _ := obj.Rotation()
	assert.InDelta(t, math.Pi/2, ry, 1e-9)
}

func TestLookAtFactorsOutParentRotation(t *testing.T) {
	parent := NewGameObject(WithRotation(0, math.Pi/2, 0))
	child := NewGameObject()
	parent.AddChild(child)

	a := 0.2
	target := mgl64.Vec3{math.Cos(a), -math.Sin(a), 0}
	child.LookAt(target[0], target[1], target[2])

	// world facing hits the target
	assertVec(t, target, child.WorldQuaternion().Rotate(mgl64.Vec3{0, 0, 1}))

	// local rotation is a pure pitch because the parent already supplies the yaw
	rx, ry, rz := child.Rotation()
	assert.InDelta(t, a, rx, 1e-9)
	assert.InDelta(t, 0, ry, 1e-9)
	assert.InDelta(t, 0, rz, 1e-9)
}
