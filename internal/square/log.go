package square

import "github.com/golang/glog"

const logTag = "[square]"

// LogHost is a Host that logs through glog and stores the registered touch
// callback for the host event loop to call.
type LogHost struct {
	touch TouchFunc
}

func (h *LogHost) RegisterTouch(fn TouchFunc) {
	h.touch = fn
}

// Touch forwards to the registered callback, if any.
func (h *LogHost) Touch(kind TouchKind, x, y int) error {
	if h.touch == nil {
		return nil
	}
	return h.touch(kind, x, y)
}

func (h *LogHost) Logf(format string, args ...any) {
	glog.Infof(logTag+" "+format, args...)
}
