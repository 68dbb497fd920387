package pipeline

// Pipeline is an ordered composition of Modifiers attached to a lifecycle
// hook of a Field (on_set, on_save, on_output) or used as a default-value
// provider. Pipelines are stateless and safe to run concurrently from
// multiple goroutines against distinct Contexts.
type Pipeline struct {
	Modifiers []Modifier
}

// New builds a Pipeline from the given modifiers, in order.
func New(modifiers ...Modifier) Pipeline {
	return Pipeline{Modifiers: modifiers}
}

// Append returns a new Pipeline with the given modifiers appended.
func (p Pipeline) Append(modifiers ...Modifier) Pipeline {
	out := make([]Modifier, 0, len(p.Modifiers)+len(modifiers))
	out = append(out, p.Modifiers...)
	out = append(out, modifiers...)
	return Pipeline{Modifiers: out}
}

// Empty reports whether the pipeline has no modifiers.
func (p Pipeline) Empty() bool { return len(p.Modifiers) == 0 }

// Process feeds ctx through the pipeline's modifiers in strict order. If a
// modifier sets the stage to Invalid, no later modifier runs and the
// Invalid stage is returned as the pipeline's result (the short-circuit
// property tested in §8).
func (p Pipeline) Process(ctx *Context) *Context {
	for _, m := range p.Modifiers {
		if ctx.Stage.IsInvalid() {
			return ctx
		}
		select {
		case <-ctx.Done():
			return ctx.With(Invalid("context cancelled"))
		default:
		}
		ctx = m.Call(ctx)
	}
	return ctx
}
