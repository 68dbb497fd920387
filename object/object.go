// Package object implements the runtime model instance: staged values,
// dirty tracking, and the orchestration of pipelines and connector calls
// that together make up the object lifecycle (§3, §4.4).
package object

import (
	"github.com/Crackersssss/teo/pipeline"
	"github.com/Crackersssss/teo/schema"
	"github.com/Crackersssss/teo/value"
)

// Object is a single in-memory model instance, exclusively owned by the
// task handling the current action between its creation and its next
// suspension point, per §3's ownership note.
type Object struct {
	model *schema.Model
	graph *schema.Graph

	values         map[string]value.Value
	previousValues map[string]value.Value

	selectedFields map[string]bool // nil means "all fields selected"
	included       map[string][]*Object

	isNew      bool
	isModified bool
	isDeleted  bool

	dirtyFields map[string]bool

	env pipeline.Env
}

// New builds a new Object in the *new* lifecycle state, per Model.new_object.
func New(model *schema.Model, graph *schema.Graph, env pipeline.Env) *Object {
	return &Object{
		model:          model,
		graph:          graph,
		values:         map[string]value.Value{},
		previousValues: map[string]value.Value{},
		included:       map[string][]*Object{},
		isNew:          true,
		dirtyFields:    map[string]bool{},
		env:            env,
	}
}

// FromStorage builds an Object in the *persisted* lifecycle state: a
// connector hands back a row it already holds, so unlike New it starts
// with is_new=false and values already mirrored into previous_values,
// matching the post-save invariant that previous_values == values with no
// dirty fields.
func FromStorage(model *schema.Model, graph *schema.Graph, values map[string]value.Value, env pipeline.Env) *Object {
	o := New(model, graph, env)
	o.isNew = false
	o.values = values
	o.previousValues = make(map[string]value.Value, len(values))
	for k, v := range values {
		o.previousValues[k] = v
	}
	return o
}

// Model returns the object's model.
func (o *Object) Model() *schema.Model { return o.model }

// ModelName implements pipeline.ModelOf, backing the is_instance_of
// predicate modifier.
func (o *Object) ModelName() string { return o.model.Name }

// Field implements value.Record, giving pipelines and other objects access
// to this object's current staged value for a field.
func (o *Object) Field(name string) (value.Value, bool) {
	v, ok := o.values[name]
	return v, ok
}

// IsNew reports whether the object has never been saved.
func (o *Object) IsNew() bool { return o.isNew }

// IsModified reports whether any field has a pending, unsaved change.
func (o *Object) IsModified() bool { return o.isModified }

// IsDeleted reports whether delete() has already been called.
func (o *Object) IsDeleted() bool { return o.isDeleted }

// DirtyFields returns the set of field names with pending unsaved changes.
func (o *Object) DirtyFields() map[string]bool {
	out := make(map[string]bool, len(o.dirtyFields))
	for k := range o.dirtyFields {
		out[k] = true
	}
	return out
}

// PreviousValue returns the last persisted value of a field, if any.
func (o *Object) PreviousValue(name string) (value.Value, bool) {
	v, ok := o.previousValues[name]
	return v, ok
}

// Select restricts to_json output to exactly the given field names.
func (o *Object) Select(fields map[string]bool) { o.selectedFields = fields }

// Include attaches a loaded relation's object set, surfaced by to_json.
func (o *Object) Include(relation string, objs []*Object) {
	o.included[relation] = objs
}

// Env returns the object's request-scoped environment.
func (o *Object) Env() pipeline.Env { return o.env }
