package square

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Platform selects the host-specific parts of the lifecycle contract.
type Platform int

const (
	PlatformDesktop Platform = iota
	PlatformAndroid
	PlatformIOS
)

func (p Platform) String() string {
	switch p {
	case PlatformAndroid:
		return "android"
	case PlatformIOS:
		return "ios"
	default:
		return "desktop"
	}
}

// ParsePlatform maps a config name to a Platform. The empty string is desktop.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "desktop":
		return PlatformDesktop, nil
	case "android":
		return PlatformAndroid, nil
	case "ios":
		return PlatformIOS, nil
	}
	return PlatformDesktop, fmt.Errorf("unknown platform %q", name)
}

func (p *Platform) UnmarshalText(text []byte) error {
	v, err := ParsePlatform(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// SaveStates returns the states in which the host may call OnSaveState.
// Android saves after pausing, iOS after the surface is gone. Other hosts
// make no promise, so any initialized state is accepted.
func (p Platform) SaveStates() []State {
	switch p {
	case PlatformAndroid:
		return []State{StateVisibleNotActive}
	case PlatformIOS:
		return []State{StateInitializedNotVisible}
	default:
		return []State{StateInitializedNotVisible, StateVisibleNotActive, StateVisibleActive}
	}
}

func (p Platform) canSave(s State) bool {
	return lo.Contains(p.SaveStates(), s)
}
