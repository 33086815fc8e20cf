// Package command turns button press edges observed in device snapshots
// into discrete command emissions.
package command

// Command is what a button press ultimately resolves to.
type Command struct {
	ID    int
	Label string
}

// Binding ties a physical button index to a command. The set of bindings is
// configuration; the edge-detection logic never inspects it beyond lookup.
type Binding struct {
	Button int    `mapstructure:"button"`
	ID     int    `mapstructure:"id"`
	Label  string `mapstructure:"label"`
}

// Mapping resolves button indices to commands. Buttons without a binding
// resolve to nothing.
type Mapping map[int]Command

// NewMapping builds a Mapping from bindings. Later bindings for the same
// button win.
func NewMapping(bindings []Binding) Mapping {
	m := make(Mapping, len(bindings))
	for _, b := range bindings {
		m[b.Button] = Command{ID: b.ID, Label: b.Label}
	}
	return m
}

// DefaultBindings is the built-in button layout: the face buttons of a
// generic pad in the X/A/B/Y order the command consumer expects.
func DefaultBindings() []Binding {
	return []Binding{
		{Button: 0, ID: 3, Label: "X"},
		{Button: 1, ID: 1, Label: "A"},
		{Button: 2, ID: 2, Label: "B"},
		{Button: 3, ID: 4, Label: "Y"},
	}
}

// Lookup returns the command bound to a button index, if any.
func (m Mapping) Lookup(button int) (Command, bool) {
	c, ok := m[button]
	return c, ok
}
