package square

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfOrder    = errors.New("hook called out of order")
	ErrShaderCompile = errors.New("error compiling shader")
	ErrProgramLink   = errors.New("error linking program")
)

// ErrorKind identifies the category of an Error.
type ErrorKind int

const (
	// KindPrecondition means the host called a hook in a state the
	// lifecycle table does not allow.
	KindPrecondition ErrorKind = iota
	// KindGPU means GPU resource creation failed.
	KindGPU
)

func (k ErrorKind) String() string {
	switch k {
	case KindPrecondition:
		return "precondition"
	case KindGPU:
		return "gpu"
	default:
		return "unknown"
	}
}

// Error is returned by every Controller hook. Hosts treat it as fatal.
type Error struct {
	// Op is the hook that failed (e.g. "OnVisible").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// State is the lifecycle state at the time of the call.
	State State
	// Err is the underlying error.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s [%s] in state %s: %v", e.Op, e.Kind, e.State, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func preconditionError(op string, state State, want ...State) *Error {
	return &Error{
		Op:    op,
		Kind:  KindPrecondition,
		State: state,
		Err:   fmt.Errorf("%w: want %v", ErrOutOfOrder, want),
	}
}
