package square

import "fmt"

// Renderer is the GPU collaborator. All calls happen on the host thread
// that owns the GPU context.
type Renderer interface {
	// CreateResources compiles and links the shader program, uploads the
	// vertex and index buffers for a square of the given size, binds the
	// position attribute and sets the clear color.
	CreateResources(size float32, clear [4]float32) error
	SetViewport(width, height int)
	// Draw clears the framebuffer and draws the square at offset (x, y).
	Draw(x, y float32)
}

// TouchFunc receives touch events in surface pixels, origin bottom-left.
type TouchFunc func(kind TouchKind, x, y int) error

// Host is the windowing/lifecycle environment the controller runs in.
type Host interface {
	RegisterTouch(fn TouchFunc)
	Logf(format string, args ...any)
}

// Controller drives the lifecycle state machine. It is not safe for
// concurrent use; the host delivers every hook on one thread.
type Controller struct {
	host     Host
	renderer Renderer
	platform Platform
	bus      *EventBus

	state  State
	drag   *DragModel
	clear  [4]float32
	width  int
	height int
}

// NewController builds a controller from cfg. bus may be nil.
func NewController(cfg *Config, host Host, renderer Renderer, bus *EventBus) *Controller {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Controller{
		host:     host,
		renderer: renderer,
		platform: cfg.Platform,
		bus:      bus,
		state:    StateNotInitialized,
		drag:     NewDragModel(NewSquare(cfg.Square.X, cfg.Square.Y, cfg.Square.Size)),
		clear:    cfg.ClearColor,
	}
}

func (c *Controller) State() State { return c.state }

func (c *Controller) Square() Square { return c.drag.Square }

func (c *Controller) Dragging() bool { return c.drag.Dragging() }

// Viewport returns the dimensions recorded by the last OnVisible.
func (c *Controller) Viewport() (int, int) { return c.width, c.height }

func (c *Controller) expect(op string, want ...State) error {
	for _, s := range want {
		if c.state == s {
			return nil
		}
	}
	return preconditionError(op, c.state, want...)
}

func (c *Controller) setState(s State) {
	c.state = s
	c.bus.Emit(Event{Type: EventStateChanged, X: c.drag.Square.X, Y: c.drag.Square.Y, State: s})
}

func (c *Controller) OnInitialize() error {
	if err := c.expect("OnInitialize", StateNotInitialized); err != nil {
		return err
	}
	c.host.Logf("initialize")
	c.host.RegisterTouch(c.OnTouch)
	c.setState(StateInitializedNotVisible)
	return nil
}

// OnVisible is called when a surface of width x height pixels is shown.
// newSurface means the GPU context is fresh and resources must be created.
func (c *Controller) OnVisible(newSurface bool, width, height int) error {
	if err := c.expect("OnVisible", StateInitializedNotVisible); err != nil {
		return err
	}
	c.host.Logf("visible, newSurface=%t, screen w=%d h=%d", newSurface, width, height)

	if newSurface {
		if err := c.renderer.CreateResources(c.drag.Square.Size, c.clear); err != nil {
			return &Error{Op: "OnVisible", Kind: KindGPU, State: c.state, Err: err}
		}
	}

	c.width = width
	c.height = height
	c.renderer.SetViewport(width, height)
	c.setState(StateVisibleNotActive)
	return nil
}

func (c *Controller) OnActive() error {
	if err := c.expect("OnActive", StateVisibleNotActive); err != nil {
		return err
	}
	c.host.Logf("active")
	c.setState(StateVisibleActive)
	return nil
}

func (c *Controller) OnInactive() error {
	if err := c.expect("OnInactive", StateVisibleActive); err != nil {
		return err
	}
	c.host.Logf("inactive")
	c.setState(StateVisibleNotActive)
	return nil
}

// OnSaveState accepts the states allowed by the configured platform.
// Nothing is persisted.
func (c *Controller) OnSaveState() error {
	if !c.platform.canSave(c.state) {
		return preconditionError("OnSaveState", c.state, c.platform.SaveStates()...)
	}
	c.host.Logf("save_state")
	return nil
}

func (c *Controller) OnHidden() error {
	if err := c.expect("OnHidden", StateVisibleNotActive); err != nil {
		return err
	}
	c.host.Logf("hidden")
	c.setState(StateInitializedNotVisible)
	return nil
}

func (c *Controller) OnRender() error {
	if err := c.expect("OnRender", StateVisibleNotActive, StateVisibleActive); err != nil {
		return err
	}
	c.renderer.Draw(c.drag.Square.X, c.drag.Square.Y)
	return nil
}

// OnTouch feeds one touch event into the drag model. Events arriving before
// any viewport is known are dropped.
func (c *Controller) OnTouch(kind TouchKind, screenX, screenY int) error {
	if c.width <= 0 || c.height <= 0 {
		return nil
	}
	x, y := ToNDC(screenX, screenY, c.width, c.height)
	typ, ok := c.drag.Touch(kind, x, y)
	if !ok {
		return nil
	}
	sq := c.drag.Square
	c.bus.Emit(Event{Type: typ, X: sq.X, Y: sq.Y, State: c.state})
	return nil
}

// String is used in host diagnostics.
func (c *Controller) String() string {
	sq := c.drag.Square
	return fmt.Sprintf("state=%s square=(%.3f,%.3f) viewport=%dx%d", c.state, sq.X, sq.Y, c.width, c.height)
}
