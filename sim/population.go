package sim

// A Population is an ordered, fixed-size collection of neuron membrane
// potentials. Neuron indices are stable for the lifetime of the run. A
// Population is exclusively owned by the Runner that drives it; independent
// simulations each own their own instance.
type Population struct {
	u     []int
	uRest int
}

// NewPopulation creates a population of n neurons, all at the resting
// potential.
func NewPopulation(n, uRest int) *Population {
	p := &Population{
		u:     make([]int, n),
		uRest: uRest,
	}

	p.Reset()

	return p
}

// Size returns the number of neurons in the population.
func (p *Population) Size() int {
	return len(p.u)
}

// Potential returns the membrane potential of the i-th neuron.
func (p *Population) Potential(i int) int {
	return p.u[i]
}

// Potentials returns a copy of all membrane potentials, ordered by neuron
// index.
func (p *Population) Potentials() []int {
	out := make([]int, len(p.u))
	copy(out, p.u)
	return out
}

// Reset returns every neuron to the resting potential.
func (p *Population) Reset() {
	for i := range p.u {
		p.u[i] = p.uRest
	}
}
