package pipeline

import (
	"github.com/golang-jwt/jwt/v4"

	"github.com/Crackersssss/teo/value"
)

// GetIdentity resolves ctx.Env.Source into a value, grounded in
// original_source/src/core/pipeline/modifiers/identity/get_identity.rs.
//
// When the source already carries a resolved identity record (SignIn ran
// earlier in the same request, or the caller was authenticated upstream),
// that record is returned as a value.Object. When the source is a bearer
// token, the token's "sub" claim is read without verifying the signature —
// verifying against an external identity provider is the concern of the
// (out-of-scope) HTTP/auth adapter, not this core.
func GetIdentity() Modifier {
	return &ModifierFunc{FuncName: "get_identity", Fn: func(ctx *Context) *Context {
		switch ctx.Env.Source.Kind {
		case SourceIdentity:
			if ctx.Env.Source.Identity == nil {
				return ctx.With(Invalid("get_identity: no identity in context"))
			}
			return ctx.With(Val(value.Of.Object(ctx.Env.Source.Identity)))
		case SourceToken:
			sub, err := subjectOf(ctx.Env.Source.Token)
			if err != nil {
				return ctx.With(Invalid("get_identity: " + err.Error()))
			}
			return ctx.With(Val(value.Of.String(sub)))
		default:
			return ctx.With(Invalid("get_identity: no identity in context"))
		}
	}}
}

func subjectOf(token string) (string, error) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	_, _, err := parser.ParseUnverified(token, claims)
	if err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}

// GetObject replaces the stage with the entire object as a value.Object,
// used by pipelines that need to hand the whole record to a later
// predicate/transform.
func GetObject() Modifier {
	return &ModifierFunc{FuncName: "get_object", Fn: func(ctx *Context) *Context {
		if ctx.Object == nil {
			return ctx.With(Invalid("get_object: no object in context"))
		}
		return ctx.With(Val(value.Of.Object(ctx.Object)))
	}}
}

// GetEnv replaces the stage with the named Env.Extra entry, or Invalid if
// absent.
func GetEnv(key string) Modifier {
	return &ModifierFunc{FuncName: "get_env", Fn: func(ctx *Context) *Context {
		v, ok := ctx.Env.Get(key)
		if !ok {
			return ctx.With(Invalid("get_env: missing key " + key))
		}
		return ctx.With(Val(value.Of.String(v)))
	}}
}
