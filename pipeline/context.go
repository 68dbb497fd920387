package pipeline

import (
	"context"

	"github.com/Crackersssss/teo/value"
)

// Context is threaded through every modifier in a pipeline. It embeds a
// standard context.Context so modifiers performing I/O (get_identity,
// bcrypt_hash, ...) are cancellable at any suspension point, matching the
// cooperative scheduling model described in §5.
type Context struct {
	context.Context

	// Object is the record the running pipeline is attached to (nil for
	// default-provider pipelines evaluated before an object exists).
	Object value.Record

	// KeyPath is the dotted/bracketed location within the incoming JSON
	// this pipeline is validating or transforming, used to build error
	// paths without the pipeline itself knowing about decode.Path.
	KeyPath string

	// Env carries the request-scoped data described in §3.
	Env Env

	// Stage is the current carrier value and control disposition.
	Stage Stage
}

// NewContext builds a root Context for running a pipeline against a value.
func NewContext(parent context.Context, obj value.Record, keyPath string, env Env, v value.Value) *Context {
	return &Context{
		Context: parent,
		Object:  obj,
		KeyPath: keyPath,
		Env:     env,
		Stage:   Val(v),
	}
}

// With returns a shallow copy of the context carrying a new stage, used by
// modifiers that only need to replace the carried value/disposition.
func (c *Context) With(stage Stage) *Context {
	next := *c
	next.Stage = stage
	return &next
}
