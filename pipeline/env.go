package pipeline

import "github.com/Crackersssss/teo/value"

// SourceKind identifies the origin of the request driving an action.
type SourceKind uint8

// The closed set of env sources.
const (
	// SourceUnknown marks an action with no resolved caller identity.
	SourceUnknown SourceKind = iota
	// SourceIdentity marks an action driven by an already loaded record
	// (e.g. a prior SignIn), carried as a value.Record.
	SourceIdentity
	// SourceToken marks an action driven by a bearer token string that a
	// context modifier (get_identity) may resolve further.
	SourceToken
)

// Source is the tagged union backing Env.Source.
type Source struct {
	Kind     SourceKind
	Identity value.Record
	Token    string
}

// Identity builds a Source wrapping an already-resolved identity record.
func Identity(rec value.Record) Source { return Source{Kind: SourceIdentity, Identity: rec} }

// Token builds a Source wrapping a bearer token string.
func Token(token string) Source { return Source{Kind: SourceToken, Token: token} }

// Unknown is the zero Source, used when no caller identity is available.
var Unknown = Source{Kind: SourceUnknown}

// Env carries request-scoped context through an action: who is calling, what
// they are trying to do, where in the input JSON the current operation sits,
// and a free-form string bag for connector/transport specific data.
type Env struct {
	Source Source
	Intent string // the ActionType name driving the current action
	Path   string // dotted/bracketed key path, see package decode
	Extra  map[string]string
}

// NewEnv returns an Env with an initialized Extra map.
func NewEnv(intent string) Env {
	return Env{Intent: intent, Source: Unknown, Extra: map[string]string{}}
}

// Get returns a value from the free-form Extra map.
func (e Env) Get(key string) (string, bool) {
	v, ok := e.Extra[key]
	return v, ok
}

// With returns a copy of the Env with key set in Extra.
func (e Env) With(key, val string) Env {
	next := Env{Source: e.Source, Intent: e.Intent, Path: e.Path, Extra: make(map[string]string, len(e.Extra)+1)}
	for k, v := range e.Extra {
		next.Extra[k] = v
	}
	next.Extra[key] = val
	return next
}

// AtPath returns a copy of the Env with Path replaced, used when descending
// into a nested key while running a pipeline.
func (e Env) AtPath(path string) Env {
	next := e
	next.Path = path
	return next
}
