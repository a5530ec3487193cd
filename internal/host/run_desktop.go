//go:build !android

package host

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/golang/glog"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"square/internal/render"
	"square/internal/square"
)

func initWindow(cfg square.WindowConfig) (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Decorated, glfw.True)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// desktop adapts glfw window callbacks to x/mobile events so the desktop
// build goes through the same Dispatcher as the mobile one.
type desktop struct {
	window   *glfw.Window
	dispatch *square.Dispatcher
	ctrl     *square.Controller
	stage    lifecycle.Stage
	pressed  bool
}

func (d *desktop) send(e any) {
	if err := d.dispatch.Handle(e); err != nil {
		glog.Fatalf("[square] %v (%s)", err, d.ctrl)
	}
}

func (d *desktop) moveTo(stage lifecycle.Stage) {
	if stage == d.stage {
		return
	}
	from := d.stage
	d.stage = stage
	d.send(lifecycle.Event{From: from, To: stage})
}

// cursor returns the cursor position in framebuffer pixels, origin top-left.
func (d *desktop) cursor() (float32, float32) {
	cx, cy := d.window.GetCursorPos()
	winW, winH := d.window.GetSize()
	fbW, fbH := d.window.GetFramebufferSize()
	if winW <= 0 || winH <= 0 {
		return float32(cx), float32(cy)
	}
	scaleX := float64(fbW) / float64(winW)
	scaleY := float64(fbH) / float64(winH)
	return float32(cx * scaleX), float32(cy * scaleY)
}

func (d *desktop) touch(t touch.Type) {
	x, y := d.cursor()
	d.send(touch.Event{X: x, Y: y, Type: t})
}

func (d *desktop) installCallbacks() {
	d.window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		d.send(size.Event{WidthPx: w, HeightPx: h})
	})
	d.window.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		switch {
		case focused && d.stage == lifecycle.StageVisible:
			d.moveTo(lifecycle.StageFocused)
		case !focused && d.stage == lifecycle.StageFocused:
			d.moveTo(lifecycle.StageVisible)
		}
	})
	d.window.SetIconifyCallback(func(w *glfw.Window, iconified bool) {
		if iconified {
			d.moveTo(lifecycle.StageAlive)
			return
		}
		d.moveTo(lifecycle.StageVisible)
		if w.GetAttrib(glfw.Focused) == glfw.True {
			d.moveTo(lifecycle.StageFocused)
		}
	})
	d.window.SetMouseButtonCallback(func(_ *glfw.Window, btn glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if btn != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			d.pressed = true
			d.touch(touch.TypeBegin)
		case glfw.Release:
			d.pressed = false
			d.touch(touch.TypeEnd)
		}
	})
	d.window.SetCursorPosCallback(func(_ *glfw.Window, _, _ float64) {
		if d.pressed {
			d.touch(touch.TypeMove)
		}
	})
}

// RunDesktop opens a window and runs the example until it is closed.
// configPath may be empty to use the default lookup.
func RunDesktop(configPath string) {
	runtime.LockOSThread()

	cfg, err := square.LoadOptional(configPath)
	if err != nil {
		glog.Fatalf("[square] config: %v", err)
	}

	window, err := initWindow(cfg.Window)
	if err != nil {
		glog.Fatalf("[square] %v", err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		glog.Fatalf("[square] gl init: %v", err)
	}
	glog.Infof("[square] OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	bus := square.NewEventBus()
	logStateChanges(bus)
	newFeedback(cfg, bus)

	host := &square.LogHost{}
	ctrl := square.NewController(cfg, host, &render.Core{}, bus)
	d := &desktop{
		window:   window,
		dispatch: square.NewDispatcher(ctrl, host, nil),
		ctrl:     ctrl,
		stage:    lifecycle.StageDead,
	}
	d.installCallbacks()

	d.moveTo(lifecycle.StageVisible)
	if window.GetAttrib(glfw.Focused) == glfw.True {
		d.moveTo(lifecycle.StageFocused)
	}
	fbW, fbH := window.GetFramebufferSize()
	d.send(size.Event{WidthPx: fbW, HeightPx: fbH})

	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if !ctrl.State().Visible() {
			glfw.WaitEvents()
			continue
		}
		d.send(paint.Event{})
		window.SwapBuffers()
		glfw.PollEvents()
	}

	d.moveTo(lifecycle.StageDead)
}
