package square

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/go-playground/assert/v2"
)

type fakeRenderer struct {
	creates   int
	size      float32
	clear     [4]float32
	viewports [][2]int
	draws     [][2]float32
	fail      error
}

func (r *fakeRenderer) CreateResources(size float32, clear [4]float32) error {
	r.creates++
	r.size = size
	r.clear = clear
	return r.fail
}

func (r *fakeRenderer) SetViewport(width, height int) {
	r.viewports = append(r.viewports, [2]int{width, height})
}

func (r *fakeRenderer) Draw(x, y float32) {
	r.draws = append(r.draws, [2]float32{x, y})
}

type fakeHost struct {
	touch TouchFunc
	logs  []string
}

func (h *fakeHost) RegisterTouch(fn TouchFunc) { h.touch = fn }

func (h *fakeHost) Logf(format string, args ...any) {
	h.logs = append(h.logs, fmt.Sprintf(format, args...))
}

func newTestController(p Platform) (*Controller, *fakeHost, *fakeRenderer) {
	cfg := DefaultConfig()
	cfg.Platform = p
	h := &fakeHost{}
	r := &fakeRenderer{}
	return NewController(cfg, h, r, nil), h, r
}

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

// driveTo runs the documented hook order until ctrl reaches state.
func driveTo(t *testing.T, ctrl *Controller, state State) {
	t.Helper()
	steps := []func() error{
		ctrl.OnInitialize,
		func() error { return ctrl.OnVisible(true, 800, 600) },
		ctrl.OnActive,
	}
	for i := 0; i < int(state); i++ {
		if err := steps[i](); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	assert.Equal(t, ctrl.State(), state)
}

func TestDocumentedSequence(t *testing.T) {
	ctrl, h, r := newTestController(PlatformDesktop)

	assert.Equal(t, ctrl.OnInitialize(), nil)
	assert.Equal(t, ctrl.State(), StateInitializedNotVisible)
	assert.Equal(t, h.touch != nil, true)

	assert.Equal(t, ctrl.OnVisible(true, 800, 600), nil)
	assert.Equal(t, ctrl.State(), StateVisibleNotActive)
	assert.Equal(t, r.creates, 1)
	assert.Equal(t, approx(r.size, SquareSize), true)
	assert.Equal(t, r.clear, DefaultClearColor)

	assert.Equal(t, ctrl.OnActive(), nil)
	assert.Equal(t, ctrl.State(), StateVisibleActive)

	assert.Equal(t, ctrl.OnRender(), nil)
	assert.Equal(t, len(r.draws), 1)
	assert.Equal(t, approx(r.draws[0][0], SquareDefaultX), true)
	assert.Equal(t, approx(r.draws[0][1], SquareDefaultY), true)

	assert.Equal(t, ctrl.OnInactive(), nil)
	assert.Equal(t, ctrl.State(), StateVisibleNotActive)

	assert.Equal(t, ctrl.OnHidden(), nil)
	assert.Equal(t, ctrl.State(), StateInitializedNotVisible)

	// Showing the same surface again must not recreate resources.
	assert.Equal(t, ctrl.OnVisible(false, 1024, 768), nil)
	assert.Equal(t, r.creates, 1)
	assert.Equal(t, r.viewports, [][2]int{{800, 600}, {1024, 768}})

	assert.Equal(t, h.logs, []string{
		"initialize",
		"visible, newSurface=true, screen w=800 h=600",
		"active",
		"inactive",
		"hidden",
		"visible, newSurface=false, screen w=1024 h=768",
	})
}

func TestOutOfOrderHooks(t *testing.T) {
	tests := []struct {
		name  string
		from  State
		hook  func(*Controller) error
		op    string
		state State
	}{
		{"initialize twice", StateInitializedNotVisible, (*Controller).OnInitialize, "OnInitialize", StateInitializedNotVisible},
		{"visible before initialize", StateNotInitialized, func(c *Controller) error { return c.OnVisible(true, 10, 10) }, "OnVisible", StateNotInitialized},
		{"visible twice", StateVisibleNotActive, func(c *Controller) error { return c.OnVisible(true, 10, 10) }, "OnVisible", StateVisibleNotActive},
		{"visible while active", StateVisibleActive, func(c *Controller) error { return c.OnVisible(false, 10, 10) }, "OnVisible", StateVisibleActive},
		{"active before visible", StateInitializedNotVisible, (*Controller).OnActive, "OnActive", StateInitializedNotVisible},
		{"active twice", StateVisibleActive, (*Controller).OnActive, "OnActive", StateVisibleActive},
		{"inactive while not active", StateVisibleNotActive, (*Controller).OnInactive, "OnInactive", StateVisibleNotActive},
		{"hidden while active", StateVisibleActive, (*Controller).OnHidden, "OnHidden", StateVisibleActive},
		{"hidden while not visible", StateInitializedNotVisible, (*Controller).OnHidden, "OnHidden", StateInitializedNotVisible},
		{"render before initialize", StateNotInitialized, (*Controller).OnRender, "OnRender", StateNotInitialized},
		{"render while hidden", StateInitializedNotVisible, (*Controller).OnRender, "OnRender", StateInitializedNotVisible},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, h, r := newTestController(PlatformDesktop)
			driveTo(t, ctrl, tt.from)
			logs, creates, viewports := len(h.logs), r.creates, len(r.viewports)

			err := tt.hook(ctrl)

			var herr *Error
			assert.Equal(t, errors.As(err, &herr), true)
			assert.Equal(t, herr.Kind, KindPrecondition)
			assert.Equal(t, herr.Op, tt.op)
			assert.Equal(t, errors.Is(err, ErrOutOfOrder), true)
			assert.Equal(t, ctrl.State(), tt.state)
			assert.Equal(t, len(h.logs), logs)
			assert.Equal(t, r.creates, creates)
			assert.Equal(t, len(r.viewports), viewports)
			assert.Equal(t, len(r.draws), 0)
		})
	}
}

func TestSaveStatePerPlatform(t *testing.T) {
	tests := []struct {
		platform Platform
		state    State
		ok       bool
	}{
		{PlatformAndroid, StateVisibleNotActive, true},
		{PlatformAndroid, StateVisibleActive, false},
		{PlatformAndroid, StateInitializedNotVisible, false},
		{PlatformIOS, StateInitializedNotVisible, true},
		{PlatformIOS, StateVisibleNotActive, false},
		{PlatformDesktop, StateInitializedNotVisible, true},
		{PlatformDesktop, StateVisibleNotActive, true},
		{PlatformDesktop, StateVisibleActive, true},
		{PlatformDesktop, StateNotInitialized, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.platform, tt.state), func(t *testing.T) {
			ctrl, h, _ := newTestController(tt.platform)
			driveTo(t, ctrl, tt.state)
			logs := len(h.logs)

			err := ctrl.OnSaveState()
			if tt.ok {
				assert.Equal(t, err, nil)
				assert.Equal(t, h.logs[len(h.logs)-1], "save_state")
			} else {
				assert.Equal(t, errors.Is(err, ErrOutOfOrder), true)
				assert.Equal(t, len(h.logs), logs)
			}
			assert.Equal(t, ctrl.State(), tt.state)
		})
	}
}

func TestVisibleGPUFailure(t *testing.T) {
	ctrl, _, r := newTestController(PlatformDesktop)
	r.fail = fmt.Errorf("%w: 0:1: syntax error", ErrShaderCompile)
	assert.Equal(t, ctrl.OnInitialize(), nil)

	err := ctrl.OnVisible(true, 800, 600)

	var herr *Error
	assert.Equal(t, errors.As(err, &herr), true)
	assert.Equal(t, herr.Kind, KindGPU)
	assert.Equal(t, errors.Is(err, ErrShaderCompile), true)
	assert.Equal(t, ctrl.State(), StateInitializedNotVisible)
	assert.Equal(t, len(r.viewports), 0)
}

func TestRenderIsIdempotent(t *testing.T) {
	ctrl, _, r := newTestController(PlatformDesktop)
	driveTo(t, ctrl, StateVisibleActive)

	for i := 0; i < 3; i++ {
		assert.Equal(t, ctrl.OnRender(), nil)
	}
	assert.Equal(t, len(r.draws), 3)
	assert.Equal(t, r.draws[1], r.draws[0])
	assert.Equal(t, r.draws[2], r.draws[0])
}

func TestRenderFollowsDrag(t *testing.T) {
	ctrl, h, r := newTestController(PlatformDesktop)
	driveTo(t, ctrl, StateVisibleNotActive)

	assert.Equal(t, h.touch(TouchDown, 260, 495), nil)
	assert.Equal(t, h.touch(TouchMove, 400, 300), nil)
	assert.Equal(t, ctrl.OnRender(), nil)

	assert.Equal(t, approx(r.draws[0][0], -0.15), true)
	assert.Equal(t, approx(r.draws[0][1], -0.15), true)
}

func TestTouchUsesLatestViewport(t *testing.T) {
	ctrl, h, _ := newTestController(PlatformDesktop)
	driveTo(t, ctrl, StateVisibleNotActive)
	assert.Equal(t, ctrl.OnHidden(), nil)
	assert.Equal(t, ctrl.OnVisible(false, 400, 300), nil)

	w, hgt := ctrl.Viewport()
	assert.Equal(t, w, 400)
	assert.Equal(t, hgt, 300)

	// (130, 247) on 400x300 is NDC (-0.35, 0.6466...), inside the square.
	// On the old 800x600 viewport it would be far outside.
	assert.Equal(t, h.touch(TouchDown, 130, 247), nil)
	assert.Equal(t, ctrl.Dragging(), true)
}

func TestTouchBeforeVisibleIgnored(t *testing.T) {
	ctrl, h, _ := newTestController(PlatformDesktop)
	assert.Equal(t, ctrl.OnInitialize(), nil)

	assert.Equal(t, h.touch(TouchDown, 260, 495), nil)
	assert.Equal(t, ctrl.Dragging(), false)
	assert.Equal(t, ctrl.Square(), NewSquare(SquareDefaultX, SquareDefaultY, SquareSize))
}

func TestControllerEmitsEvents(t *testing.T) {
	bus := NewEventBus()
	var got []EventType
	var states []State
	bus.SubscribeAll(func(e Event) {
		got = append(got, e.Type)
		if e.Type == EventStateChanged {
			states = append(states, e.State)
		}
	}, EventStateChanged, EventDragStart, EventDragMove, EventDragEnd)

	h := &fakeHost{}
	ctrl := NewController(nil, h, &fakeRenderer{}, bus)
	driveTo(t, ctrl, StateVisibleActive)
	assert.Equal(t, h.touch(TouchDown, 260, 495), nil)
	assert.Equal(t, h.touch(TouchMove, 270, 500), nil)
	assert.Equal(t, h.touch(TouchUp, 270, 500), nil)

	assert.Equal(t, got, []EventType{
		EventStateChanged, EventStateChanged, EventStateChanged,
		EventDragStart, EventDragMove, EventDragEnd,
	})
	assert.Equal(t, states, []State{StateInitializedNotVisible, StateVisibleNotActive, StateVisibleActive})
}

func TestErrorString(t *testing.T) {
	err := preconditionError("OnActive", StateNotInitialized, StateVisibleNotActive)
	assert.Equal(t, err.Error(), "OnActive [precondition] in state not-initialized: hook called out of order: want [visible-not-active]")
}
