package host

import (
	"github.com/golang/glog"

	"square/internal/square"
)

func logStateChanges(bus *square.EventBus) {
	bus.SubscribeAll(func(e square.Event) {
		if glog.V(1) {
			glog.Infof("[square] %s state=%s square=(%.3f,%.3f)", e.Type, e.State, e.X, e.Y)
		}
	}, square.EventStateChanged, square.EventDragStart, square.EventDragEnd)
}

// newFeedback returns nil when audio is disabled or unavailable.
func newFeedback(cfg *square.Config, bus *square.EventBus) *Feedback {
	if !cfg.Audio {
		return nil
	}
	fb, err := NewFeedback()
	if err != nil {
		glog.Warningf("[square] audio init failed (continuing without sound): %v", err)
		return nil
	}
	fb.Subscribe(bus)
	return fb
}
