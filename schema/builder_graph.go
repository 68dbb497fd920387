package schema

// GraphBuilder is the fluent builder surface for a Graph, per §6's schema
// DSL: Graph{data_source, host_url, model(name, ...), enum(name, ...)}.
type GraphBuilder struct {
	graph *Graph
	err   error
}

// NewGraphBuilder starts building a graph.
func NewGraphBuilder() *GraphBuilder {
	return &GraphBuilder{graph: &Graph{
		models: map[string]*Model{},
		enums:  map[string]*Enum{},
	}}
}

// HostURL sets the graph's host URL.
func (b *GraphBuilder) HostURL(url string) *GraphBuilder {
	b.graph.HostURL = url
	return b
}

// ConnectorBuilder sets the graph's active connector builder. The argument
// is expected to satisfy object.ConnectorBuilder; see Graph's doc.
func (b *GraphBuilder) ConnectorBuilder(cb interface{}) *GraphBuilder {
	b.graph.ConnectorBuilder = cb
	return b
}

// Model declares a model, built by fn, in declaration order.
func (b *GraphBuilder) Model(name string, fn func(*ModelBuilder)) *GraphBuilder {
	if b.err != nil {
		return b
	}
	if _, exists := b.graph.models[name]; exists {
		b.err = xoErrf("graph: duplicate model name %q", name)
		return b
	}
	mb := NewModelBuilder(name)
	if fn != nil {
		fn(mb)
	}
	m, err := mb.Build()
	if err != nil {
		b.err = err
		return b
	}
	b.graph.models[name] = m
	b.graph.modelOrder = append(b.graph.modelOrder, name)
	return b
}

// Enum declares an enum with an ordered set of string values.
func (b *GraphBuilder) Enum(name string, values ...string) *GraphBuilder {
	if b.err != nil {
		return b
	}
	if _, exists := b.graph.enums[name]; exists {
		b.err = xoErrf("graph: duplicate enum name %q", name)
		return b
	}
	b.graph.enums[name] = &Enum{Name: name, Values: values}
	return b
}

// Build finalizes the graph: every model must already be free of errors
// (caught eagerly by Model above), and every relation target must resolve
// to a declared model.
func (b *GraphBuilder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.graph.build(); err != nil {
		return nil, err
	}
	return b.graph, nil
}
