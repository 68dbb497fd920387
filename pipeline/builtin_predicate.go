package pipeline

import "github.com/Crackersssss/teo/value"

// ModelOf is implemented by a value.Record that knows its own model name,
// used by IsInstanceOf. Objects in package object satisfy this.
type ModelOf interface {
	ModelName() string
}

// IsInstanceOf sets ConditionTrue when ctx.Object's model name matches name,
// grounded in original_source/src/core/modifiers/is_instance_of.rs.
func IsInstanceOf(name string) Modifier {
	return &ModifierFunc{FuncName: "is_instance_of", Fn: func(ctx *Context) *Context {
		mo, ok := ctx.Object.(ModelOf)
		if !ok || mo.ModelName() != name {
			return ctx.With(False(ctx.Stage.Value))
		}
		return ctx.With(True(ctx.Stage.Value))
	}}
}

// Eq sets ConditionTrue when the carried value equals other.
func Eq(other value.Value) Modifier {
	return &ModifierFunc{FuncName: "eq", Fn: func(ctx *Context) *Context {
		if value.Equal(ctx.Stage.Value, other) {
			return ctx.With(True(ctx.Stage.Value))
		}
		return ctx.With(False(ctx.Stage.Value))
	}}
}

// Neq sets ConditionTrue when the carried value does not equal other.
func Neq(other value.Value) Modifier {
	return &ModifierFunc{FuncName: "neq", Fn: func(ctx *Context) *Context {
		if !value.Equal(ctx.Stage.Value, other) {
			return ctx.With(True(ctx.Stage.Value))
		}
		return ctx.With(False(ctx.Stage.Value))
	}}
}

// In sets ConditionTrue when the carried value equals one of options.
func In(options ...value.Value) Modifier {
	return &ModifierFunc{FuncName: "in", Fn: func(ctx *Context) *Context {
		for _, opt := range options {
			if value.Equal(ctx.Stage.Value, opt) {
				return ctx.With(True(ctx.Stage.Value))
			}
		}
		return ctx.With(False(ctx.Stage.Value))
	}}
}

// NotIn sets ConditionTrue when the carried value equals none of options.
func NotIn(options ...value.Value) Modifier {
	return &ModifierFunc{FuncName: "not_in", Fn: func(ctx *Context) *Context {
		for _, opt := range options {
			if value.Equal(ctx.Stage.Value, opt) {
				return ctx.With(False(ctx.Stage.Value))
			}
		}
		return ctx.With(True(ctx.Stage.Value))
	}}
}
