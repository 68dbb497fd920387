package pipeline

// Modifier is an addressable unit of a Pipeline: a stable name plus an
// asynchronous call over a Context. Implementations may suspend on I/O
// (e.g. get_identity, bcrypt_hash) by observing ctx.Done(). All built-in
// modifiers and any user-supplied Extension must be safe for concurrent use
// across goroutines, since pipelines are re-entrant and stateless across
// invocations.
type Modifier interface {
	Name() string
	Call(ctx *Context) *Context
}

// Capability is the minimal shape a user-supplied modifier object must
// implement to be wrapped as an Extension, per the open-set design in §9.
type Capability interface {
	Name() string
	Call(ctx *Context) *Context
}

// Extension wraps a user-provided modifier object, keeping the built-in set
// closed while allowing callers to plug in their own capability.
type Extension struct {
	Capability Capability
}

// Name implements Modifier.
func (e *Extension) Name() string { return e.Capability.Name() }

// Call implements Modifier.
func (e *Extension) Call(ctx *Context) *Context { return e.Capability.Call(ctx) }

// ModifierFunc adapts a plain function to the Modifier interface, the usual
// way built-ins below are defined.
type ModifierFunc struct {
	FuncName string
	Fn       func(ctx *Context) *Context
}

// Name implements Modifier.
func (m *ModifierFunc) Name() string { return m.FuncName }

// Call implements Modifier.
func (m *ModifierFunc) Call(ctx *Context) *Context { return m.Fn(ctx) }
