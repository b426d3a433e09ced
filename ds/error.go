package ds

import (
	"fmt"
)

type (
	// ErrUnreachableCode marks a switch that met a state its caller never produces.
	ErrUnreachableCode struct {
		Caller string
		State  any
	}
)

func (r ErrUnreachableCode) Error() string {
	if r.State == nil {
		return fmt.Sprintf("%s: unreachable code", r.Caller)
	}
	return fmt.Sprintf("%s: unreachable code for state %#v", r.Caller, r.State)
}
