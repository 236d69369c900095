package orion

import "fmt"

type flow uint8

const (
	flowNone flow = iota
	flowContinue
	flowExit
)

// Signal is returned by window callbacks to control the event loop.
// The zero value leaves the loop as it is.
type Signal struct {
	flow flow
	err  error
}

var (
	// None does not change the loop.
	None = Signal{}

	// Continue keeps the loop running as before.
	Continue = Signal{flow: flowContinue}
)

// Exit stops the loop. A nil err is a clean shutdown.
func Exit(err error) Signal {
	return Signal{flow: flowExit, err: err}
}

func (s Signal) IsExit() bool {
	return s.flow == flowExit
}

// Err returns the outcome of an exit signal.
func (s Signal) Err() error {
	return s.err
}

func (s Signal) String() string {
	switch s.flow {
	case flowContinue:
		return "Continue"

	case flowExit:
		if s.err != nil {
			return fmt.Sprintf("Exit(%s)", s.err)
		}

		return "Exit"

	default:
		return "None"
	}
}
