package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-move/common"
	"github.com/Carmen-Shannon/oxy-move/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(w *engineWindow) *[]input.Event {
	var got []input.Event
	for _, t := range []input.EventType{
		input.EventKeyDown, input.EventKeyUp,
		input.EventPointerDown, input.EventPointerMove, input.EventPointerUp,
		input.EventPointerCancel, input.EventContextMenu,
	} {
		w.Input().AddListener(t, func(e input.Event) { got = append(got, e) })
	}
	return &got
}

func TestBuilderOptions(t *testing.T) {
	w := newEngineWindow(WithTitle("demo"), WithSize(800, 0), WithSizeLimits(100, 100, 900, 900), WithLogger(nil))
	assert.Equal(t, "demo", w.title)
	assert.Equal(t, 800, w.Width())
	assert.Equal(t, 720, w.Height())
	assert.Equal(t, [4]int{100, 100, 900, 900}, [4]int{w.minWidth, w.minHeight, w.maxWidth, w.maxHeight})
	assert.NotNil(t, w.logger)
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
}

func TestKeyTranslation(t *testing.T) {
	w := newEngineWindow()
	got := record(w)

	w.keyChanged(common.KeyW, true)
	w.keyChanged(common.KeyW, false)

	require.Len(t, *got, 2)
	assert.Equal(t, input.Event{Type: input.EventKeyDown, Key: common.KeyW}, (*got)[0])
	assert.Equal(t, input.Event{Type: input.EventKeyUp, Key: common.KeyW}, (*got)[1])
}

func TestPointerTranslation(t *testing.T) {
	w := newEngineWindow()
	got := record(w)

	w.cursorMoved(10, 20)
	w.buttonChanged(common.MouseButtonLeft, true)
	w.buttonChanged(common.MouseButtonLeft, false)

	require.Len(t, *got, 3)
	assert.Equal(t, input.Event{Type: input.EventPointerMove, X: 10, Y: 20, Target: input.TargetSurface}, (*got)[0])
	assert.Equal(t, input.Event{Type: input.EventPointerDown, X: 10, Y: 20, Target: input.TargetSurface}, (*got)[1])
	assert.Equal(t, input.EventPointerUp, (*got)[2].Type)
}

func TestRightButtonOpensContextMenu(t *testing.T) {
	w := newEngineWindow()
	got := record(w)

	w.buttonChanged(common.MouseButtonRight, true)

	require.Len(t, *got, 2)
	assert.Equal(t, input.EventPointerDown, (*got)[0].Type)
	assert.Equal(t, input.EventContextMenu, (*got)[1].Type)
}

func TestPointerLostCancels(t *testing.T) {
	w := newEngineWindow()
	got := record(w)

	w.cursorMoved(5, 6)
	w.pointerLost()

	require.Len(t, *got, 2)
	assert.Equal(t, input.Event{Type: input.EventPointerCancel, X: 5, Y: 6}, (*got)[1])
}

func TestResizedUpdatesSizeAndNotifies(t *testing.T) {
	w := newEngineWindow()
	var width, height int
	w.SetResizeCallback(func(wd, ht int) { width, height = wd, ht })

	w.resized(640, 480)
	assert.Equal(t, 640, w.Width())
	assert.Equal(t, 480, w.Height())
	assert.Equal(t, [2]int{640, 480}, [2]int{width, height})
}
