package schema

// Graph is the process-wide, immutable-once-built root of the schema
// meta-model: the set of Models, the enum definitions, a single active
// connector builder, and a host URL (§3). It is built once via GraphBuilder
// and never mutated afterwards.
//
// ConnectorBuilder is held as an opaque value rather than a schema-level
// interface: the object package's richer ConnectorBuilder interface
// operates on runtime objects, which would pull object/connector
// dependencies into the pure meta-model. Callers type-assert it back with
// the concrete interface they expect (see object.BuilderFrom).
type Graph struct {
	HostURL          string
	ConnectorBuilder interface{}

	models map[string]*Model
	enums  map[string]*Enum

	modelOrder []string
}

// Model looks up a model by name.
func (g *Graph) Model(name string) (*Model, bool) {
	m, ok := g.models[name]
	return m, ok
}

// MustModel looks up a model by name, panicking if absent. Graph lookups by
// a name that was validated at build() time are expected to always
// succeed; this is for call sites downstream of that validation.
func (g *Graph) MustModel(name string) *Model {
	m, ok := g.models[name]
	if !ok {
		panic("schema: unknown model " + name)
	}
	return m
}

// Models returns all models in declaration order.
func (g *Graph) Models() []*Model {
	out := make([]*Model, 0, len(g.modelOrder))
	for _, name := range g.modelOrder {
		out = append(out, g.models[name])
	}
	return out
}

// Enum looks up an enum definition by name.
func (g *Graph) Enum(name string) (*Enum, bool) {
	e, ok := g.enums[name]
	return e, ok
}

func (g *Graph) build() error {
	for _, m := range g.models {
		if err := m.build(); err != nil {
			return err
		}
	}
	for _, m := range g.models {
		for _, r := range m.Relations {
			if _, ok := g.models[r.Model]; !ok {
				return xoErrf("model %q: relation %q targets unknown model %q", m.Name, r.Name, r.Model)
			}
		}
	}
	return nil
}
