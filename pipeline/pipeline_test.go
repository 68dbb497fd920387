package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Crackersssss/teo/value"
)

func newCtx(v value.Value) *Context {
	return NewContext(context.Background(), nil, "", NewEnv("Create"), v)
}

func TestShortCircuitOnInvalid(t *testing.T) {
	var ranThird bool
	p := New(
		Required(),
		&ModifierFunc{FuncName: "force_invalid", Fn: func(ctx *Context) *Context {
			return ctx.With(Invalid("boom"))
		}},
		&ModifierFunc{FuncName: "third", Fn: func(ctx *Context) *Context {
			ranThird = true
			return ctx
		}},
	)

	result := p.Process(newCtx(value.Of.String("x")))
	assert.True(t, result.Stage.IsInvalid())
	assert.Equal(t, "boom", result.Stage.Reason)
	assert.False(t, ranThird)
}

func TestRequiredRejectsNull(t *testing.T) {
	p := New(Required())
	result := p.Process(newCtx(value.Of.Null()))
	assert.True(t, result.Stage.IsInvalid())
	assert.Equal(t, "Value is required.", result.Stage.Reason)
}

func TestUpperTransform(t *testing.T) {
	p := New(Upper())
	result := p.Process(newCtx(value.Of.String("abc")))
	assert.False(t, result.Stage.IsInvalid())
	assert.Equal(t, "ABC", result.Stage.Value.Str())
}

func TestIfThenElse(t *testing.T) {
	p := New(If(
		New(Eq(value.Of.String("yes"))),
		New(Literal(value.Of.String("matched"))),
		New(Literal(value.Of.String("not-matched"))),
	))

	result := p.Process(newCtx(value.Of.String("yes")))
	assert.Equal(t, "matched", result.Stage.Value.Str())

	result = p.Process(newCtx(value.Of.String("no")))
	assert.Equal(t, "not-matched", result.Stage.Value.Str())
}

func TestBcryptHashRoundTrip(t *testing.T) {
	p := New(BcryptHash())
	result := p.Process(newCtx(value.Of.String("s3cret")))
	assert.False(t, result.Stage.IsInvalid())
	assert.NotEqual(t, "s3cret", result.Stage.Value.Str())
}

func TestIsEmailValidation(t *testing.T) {
	p := New(IsEmail())
	result := p.Process(newCtx(value.Of.String("not-an-email")))
	assert.True(t, result.Stage.IsInvalid())

	result = p.Process(newCtx(value.Of.String("a@b.com")))
	assert.False(t, result.Stage.IsInvalid())
}

func TestRandomUUIDProducesValue(t *testing.T) {
	p := New(RandomUUID())
	result := p.Process(newCtx(value.Of.Null()))
	assert.Equal(t, value.String, result.Stage.Value.Kind())
	assert.Len(t, result.Stage.Value.Str(), 36)
}
