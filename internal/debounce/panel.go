package debounce

// Panel holds one debounce counter per monitored input, in a fixed order.
type Panel struct {
	floor  Floor
	states []State
}

func NewPanel(floor Floor, size int) *Panel {
	states := make([]State, size)
	for i := range states {
		states[i] = NewState(floor)
	}
	return &Panel{
		floor:  floor,
		states: states,
	}
}

func (p *Panel) Floor() Floor {
	return p.floor
}

func (p *Panel) Len() int {
	return len(p.states)
}

// Step advances every counter by one sample, in index order, writing the transitions into out.
// Samples beyond the panel size are ignored and missing samples count as released.
func (p *Panel) Step(asserted []bool, out []Transition) {
	for i := range p.states {
		sample := i < len(asserted) && asserted[i]
		transition := Step(sample, &p.states[i], p.floor)
		if i < len(out) {
			out[i] = transition
		}
	}
}

// Active reports whether the input at index is currently held.
func (p *Panel) Active(index int) bool {
	if index < 0 || index >= len(p.states) {
		return false
	}
	return p.states[index].Active(p.floor)
}
