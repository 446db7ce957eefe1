package class

// Mirror is the editable view of the currently selected class. It duplicates
// the selected class's fields so a UI can bind to a single stable record, and
// writes every edit through to the registry entry it mirrors.
//
// Every operation resolves the name in the registry first and rejects edits
// when the name is absent (for example a stale selection after a delete);
// a failed resolve never mutates the mirror or any registry entry.
type Mirror struct {
	registry *Registry

	current     string
	color       Color
	objects     string
	isInstances bool
}

// NewMirror creates a mirror over the given registry with no selection.
func NewMirror(r *Registry) *Mirror {
	return &Mirror{registry: r}
}

// Selectable returns the names available for selection, in registry order.
// The list is recomputed on every call so it tracks registry edits.
func (m *Mirror) Selectable() []string {
	return m.registry.Names()
}

// Current returns the name of the selected class ("" when nothing is selected).
func (m *Mirror) Current() string { return m.current }

// Color returns the shadow mask color of the selected class.
func (m *Mirror) Color() Color { return m.color }

// Objects returns the shadow objects-collection reference of the selected class.
func (m *Mirror) Objects() string { return m.objects }

// IsInstances returns the shadow instance flag of the selected class.
func (m *Mirror) IsInstances() bool { return m.isInstances }

// Select makes the named class current and copies its fields into the mirror.
func (m *Mirror) Select(name string) error {
	c, err := m.registry.Lookup(name)
	if err != nil {
		return err
	}
	m.current = c.Name
	m.color = c.MaskColor
	m.objects = c.Objects
	m.isInstances = c.IsInstances
	return nil
}

// Clear drops the selection and resets the shadow fields.
func (m *Mirror) Clear() {
	*m = Mirror{registry: m.registry}
}

// SetColor writes a new mask color through to the selected class.
func (m *Mirror) SetColor(c Color) error {
	target, err := m.registry.Lookup(m.current)
	if err != nil {
		return err
	}
	target.MaskColor = c
	m.color = c
	return nil
}

// SetObjects writes a new objects-collection reference through to the selected class.
func (m *Mirror) SetObjects(ref string) error {
	target, err := m.registry.Lookup(m.current)
	if err != nil {
		return err
	}
	target.Objects = ref
	m.objects = ref
	return nil
}

// SetInstances writes the instance flag through to the selected class.
func (m *Mirror) SetInstances(v bool) error {
	target, err := m.registry.Lookup(m.current)
	if err != nil {
		return err
	}
	target.IsInstances = v
	m.isInstances = v
	return nil
}
