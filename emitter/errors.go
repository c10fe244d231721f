package emitter

import "fmt"

// invariantError marks a fatal condition the emitter treats as a bug in the
// upstream graph or in the emitter itself: a missing required operand, an
// attribute shape the spec does not allow, or an operator kind the lowerer
// does not implement. None of these are recoverable; Emit returns them to
// the caller wrapped with the model's name.
type invariantError struct {
	msg string
}

func (e *invariantError) Error() string { return e.msg }

func errInvariant(format string, args ...any) error {
	return &invariantError{msg: fmt.Sprintf(format, args...)}
}

// errUnsupported reports a feature the emitter explicitly declines to
// lower: non-unit dilation, a reverse RNN direction, a non-constant pad
// mode, custom RNN activations, or a Loop with no termination condition.
func errUnsupported(format string, args ...any) error {
	return &invariantError{msg: "unsupported: " + fmt.Sprintf(format, args...)}
}
