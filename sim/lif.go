package sim

// LIFRule is the leaky integrate-and-fire update rule. It is a pure value:
// applying it to a potential has no effect beyond the returned values, so the
// same rule can be shared by any number of neurons and applied in any order
// within a timestep.
type LIFRule struct {
	UTh   int
	URest int
	Tau   int
}

// Step advances one neuron by one timestep. The potential integrates the
// input current and loses u/tau to leak. The leak term uses truncating
// integer division, matching the reference model: for 0 <= u < tau the leak
// is zero, so sub-threshold potentials do not decay between inputs. This is
// likely an artifact of the integer formulation rather than a deliberate
// leak model, but it is preserved exactly for compatibility.
//
// When the updated potential reaches UTh, the neuron spikes and the
// potential resets to URest.
func (r LIFRule) Step(u, in int) (newU int, spiked bool) {
	u = u + in - u/r.Tau

	if u >= r.UTh {
		return r.URest, true
	}

	return u, false
}
