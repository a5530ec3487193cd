//go:build android

package host

import (
	"github.com/golang/glog"
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/asset"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/gl"

	"square/internal/render"
	"square/internal/square"
)

// loadAssetConfig reads square.yaml from the APK assets, falling back to
// the defaults when it is not packaged.
func loadAssetConfig() *square.Config {
	cfg := square.DefaultConfig()
	if f, err := asset.Open(square.ConfigFile); err == nil {
		parsed, err := square.ParseConfig(f)
		f.Close()
		if err != nil {
			glog.Fatalf("[square] config: %v", err)
		}
		cfg = parsed
	}
	cfg.Platform = square.PlatformAndroid
	return cfg
}

// RunAndroid runs the example inside the x/mobile app loop.
func RunAndroid() {
	cfg := loadAssetConfig()

	bus := square.NewEventBus()
	logStateChanges(bus)
	newFeedback(cfg, bus)

	gles := &render.GLES{}
	host := &square.LogHost{}
	ctrl := square.NewController(cfg, host, gles, bus)
	dispatch := square.NewDispatcher(ctrl, host, func(drawContext any) {
		glctx, ok := drawContext.(gl.Context)
		if !ok {
			glog.Fatalf("[square] visible without a GL context: %T", drawContext)
		}
		gles.Bind(glctx)
	})

	app.Main(func(a app.App) {
		// Visibility may wait for the size event, so start painting once
		// the controller is actually visible.
		dispatch.OnShow(func() { a.Send(paint.Event{}) })
		for e := range a.Events() {
			e = a.Filter(e)
			if p, ok := e.(paint.Event); ok && p.External {
				// We paint continuously; skip paint requests from the system.
				continue
			}
			if err := dispatch.Handle(e); err != nil {
				glog.Fatalf("[square] %v (%s)", err, ctrl)
			}
			switch e := e.(type) {
			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					glog.Flush()
					return
				}
			case paint.Event:
				if ctrl.State().Visible() {
					a.Publish()
					a.Send(paint.Event{})
				}
			}
		}
	})
}
