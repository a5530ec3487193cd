//go:build audio_stub

package host

import "square/internal/square"

// Feedback is silent in audio_stub builds.
type Feedback struct{}

func NewFeedback() (*Feedback, error) { return &Feedback{}, nil }

func (f *Feedback) Subscribe(bus *square.EventBus) {}
