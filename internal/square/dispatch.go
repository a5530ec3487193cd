package square

import (
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
)

// AttachFunc binds the draw context carried by a lifecycle event that
// makes the app visible.
type AttachFunc func(drawContext any)

// Dispatcher turns x/mobile events into Controller hooks in the order the
// lifecycle table requires. Both the mobile and the desktop host feed it.
type Dispatcher struct {
	ctrl   *Controller
	host   *LogHost
	attach AttachFunc
	shown  func()

	width, height  int
	attached       bool
	newSurface     bool
	pendingVisible bool
	pendingActive  bool
}

func NewDispatcher(ctrl *Controller, host *LogHost, attach AttachFunc) *Dispatcher {
	return &Dispatcher{ctrl: ctrl, host: host, attach: attach}
}

// OnShow registers fn to run each time a deferred visibility completes and
// the controller becomes visible. Hosts use it to start their paint loop.
func (d *Dispatcher) OnShow(fn func()) { d.shown = fn }

// Handle dispatches one event. Unknown event types are ignored. Any error
// is a broken lifecycle contract and should end the process.
func (d *Dispatcher) Handle(e any) error {
	switch e := e.(type) {
	case lifecycle.Event:
		return d.handleLifecycle(e)
	case size.Event:
		return d.handleSize(e.WidthPx, e.HeightPx)
	case paint.Event:
		if !d.ctrl.State().Visible() {
			return nil
		}
		return d.ctrl.OnRender()
	case touch.Event:
		return d.handleTouch(e)
	}
	return nil
}

func (d *Dispatcher) handleLifecycle(e lifecycle.Event) error {
	// Going up: alive, then visible, then focused.
	if e.Crosses(lifecycle.StageAlive) == lifecycle.CrossOn {
		if err := d.ctrl.OnInitialize(); err != nil {
			return err
		}
	}
	if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOn {
		d.bindSurface(e.DrawContext)
		d.pendingVisible = true
		if d.width > 0 && d.height > 0 {
			if err := d.show(); err != nil {
				return err
			}
		}
	}
	if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOn {
		if d.pendingVisible {
			d.pendingActive = true
		} else if err := d.ctrl.OnActive(); err != nil {
			return err
		}
	}

	// Going down: focused, then visible.
	if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff {
		if d.pendingActive {
			d.pendingActive = false
		} else if err := d.ctrl.OnInactive(); err != nil {
			return err
		}
	}
	if e.Crosses(lifecycle.StageVisible) == lifecycle.CrossOff {
		if d.pendingVisible {
			// Never shown: no size arrived while visible.
			d.pendingVisible = false
			return nil
		}
		return d.hide()
	}
	return nil
}

// hide saves state where the platform expects it relative to losing the
// surface: Android saves while still visible, iOS after hiding.
func (d *Dispatcher) hide() error {
	if d.ctrl.platform.canSave(d.ctrl.State()) {
		if err := d.ctrl.OnSaveState(); err != nil {
			return err
		}
		return d.ctrl.OnHidden()
	}
	if err := d.ctrl.OnHidden(); err != nil {
		return err
	}
	return d.ctrl.OnSaveState()
}

// bindSurface decides whether the surface becoming visible needs fresh GPU
// resources. Mobile platforms get a new EGL context every time the window
// comes back, even though the gl.Context value stays the same. The desktop
// window keeps its context for the life of the process.
func (d *Dispatcher) bindSurface(drawContext any) {
	if d.attach != nil {
		d.attach(drawContext)
	}
	d.newSurface = d.ctrl.platform != PlatformDesktop || !d.attached
	d.attached = true
}

func (d *Dispatcher) show() error {
	d.pendingVisible = false
	if err := d.ctrl.OnVisible(d.newSurface, d.width, d.height); err != nil {
		return err
	}
	d.newSurface = false
	if d.pendingActive {
		d.pendingActive = false
		if err := d.ctrl.OnActive(); err != nil {
			return err
		}
	}
	if d.shown != nil {
		d.shown()
	}
	return nil
}

func (d *Dispatcher) handleSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	d.width, d.height = w, h
	if d.pendingVisible {
		return d.show()
	}
	if !d.ctrl.State().Visible() {
		return nil
	}
	if vw, vh := d.ctrl.Viewport(); vw == w && vh == h {
		return nil
	}

	// The viewport only changes on a visibility transition, so cycle one.
	wasActive := d.ctrl.State() == StateVisibleActive
	if wasActive {
		if err := d.ctrl.OnInactive(); err != nil {
			return err
		}
	}
	if err := d.ctrl.OnHidden(); err != nil {
		return err
	}
	if err := d.ctrl.OnVisible(false, w, h); err != nil {
		return err
	}
	if wasActive {
		return d.ctrl.OnActive()
	}
	return nil
}

func (d *Dispatcher) handleTouch(e touch.Event) error {
	_, h := d.ctrl.Viewport()
	if h <= 0 {
		return nil
	}
	var kind TouchKind
	switch e.Type {
	case touch.TypeBegin:
		kind = TouchDown
	case touch.TypeMove:
		kind = TouchMove
	case touch.TypeEnd:
		kind = TouchUp
	default:
		return nil
	}
	// x/mobile measures from the top-left corner.
	return d.host.Touch(kind, int(e.X), int(float32(h)-e.Y))
}
