/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/

package charset

// probe is the tagged-variant family described in spec.md's "Polymorphic
// probes" design note: the escape-sequence probe and the multi-byte and
// single-byte scoring probes are all just implementations of this
// interface. The orchestrator (detectCore) calls each of the three
// explicitly at its own pipeline step; it does not iterate over a list of
// probes. The encoding profiles inside the multi-byte and single-byte probes
// are data (multiByteProfiles, singleByteProfiles).
type probe interface {
	// run inspects data and returns a candidate plus true if it has
	// positive evidence, or the zero value and false otherwise.
	run(data []byte) (candidate, bool)
}

type probeFunc func(data []byte) (candidate, bool)

func (f probeFunc) run(data []byte) (candidate, bool) { return f(data) }
