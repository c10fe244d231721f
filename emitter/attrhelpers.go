package emitter

import "github.com/NERVsystems/gflow/graph"

// padsBegin returns the begin-half of a pads attribute. An empty pads
// attribute defaults to [0,0]. A non-empty one is expected to concatenate
// per-axis begin and end padding; begin must equal end per axis, and only
// the begin half is returned (the VM infers symmetric padding from it).
func padsBegin(a graph.Attrs) ([]int64, error) {
	pads := a.Ints("pads")
	if len(pads) == 0 {
		return []int64{0, 0}, nil
	}
	if len(pads)%2 != 0 {
		return nil, errInvariant("pads attribute has odd length %d", len(pads))
	}
	half := len(pads) / 2
	begin := pads[:half]
	end := pads[half:]
	for i := range begin {
		if begin[i] != end[i] {
			return nil, errInvariant("asymmetric pads not supported: begin=%v end=%v", begin, end)
		}
	}
	return append([]int64(nil), begin...), nil
}

// strides returns the strides attribute, defaulting to [1,1] if unset.
func strides(a graph.Attrs) []int64 {
	s := a.Ints("strides")
	if len(s) == 0 {
		return []int64{1, 1}
	}
	return s
}

// dilations returns the dilations attribute and an error if it requests
// anything other than the all-1s identity dilation, which the emitter
// does not lower.
func dilations(a graph.Attrs) ([]int64, error) {
	d := a.Ints("dilations")
	for _, v := range d {
		if v != 1 {
			return nil, errUnsupported("non-unit dilation %v", d)
		}
	}
	return d, nil
}

// direction maps an RNN-family direction string to its integer code.
// rejectReverse rejects "reverse"/"reversed" for ops the spec calls out as
// not supporting it (RNN, GRU, LSTM all reject it per §7).
func direction(a graph.Attrs, rejectReverse bool) (int64, error) {
	switch a.String("direction", "") {
	case "", "forward":
		return 0, nil
	case "reverse", "reversed":
		if rejectReverse {
			return 0, errUnsupported("reverse direction not supported")
		}
		return 1, nil
	case "bidirectional":
		return 2, nil
	default:
		return 0, errInvariant("unknown direction %q", a.String("direction", ""))
	}
}

// softmaxAxis returns the axis attribute for the softmax-family ops,
// defaulting a negative (unset-by-convention) axis to 1.
func softmaxAxis(a graph.Attrs) int64 {
	axis := a.Int("axis", -1)
	if axis < 0 {
		return 1
	}
	return axis
}

// rejectCustomActivations fails if an RNN-family node attaches explicit
// activation overrides: the emitter only supports each cell's default
// activation set.
func rejectCustomActivations(a graph.Attrs) error {
	if len(a.Ints("activations_present")) > 0 || a.Bool("custom_activations", false) {
		return errUnsupported("custom RNN activations not supported")
	}
	return nil
}
