package object

import (
	"context"
	"fmt"

	"dario.cat/mergo"
	"github.com/Crackersssss/teo/errs"
	"github.com/Crackersssss/teo/pipeline"
	"github.com/Crackersssss/teo/schema"
	"github.com/Crackersssss/teo/value"
)

// SetValue implements §4.4's set_value: write-rule gating, the field's
// on_set pipeline, and dirty tracking.
func (o *Object) SetValue(ctx context.Context, name string, v value.Value) error {
	if o.isDeleted {
		return &errs.ActionError{Kind: errs.ObjectIsDeleted, Path: name}
	}
	f, ok := o.model.Fields[name]
	if !ok {
		return errs.New(errs.InternalServerError, name, "unknown field %q on model %q", name, o.model.Name)
	}
	if reason, denied := o.writeRuleViolation(f, v); denied {
		return errs.New(errs.PermissionDenied, name, "%s", reason)
	}

	result := o.runFieldPipeline(ctx, f.OnSet, name, v)
	if result.Stage.IsInvalid() {
		return errs.Validation(map[string]string{name: result.Stage.Reason})
	}

	o.values[name] = result.Stage.Value
	o.dirtyFields[name] = true
	o.isModified = true
	return nil
}

func (o *Object) writeRuleViolation(f *schema.Field, v value.Value) (string, bool) {
	switch f.WriteRule {
	case schema.NoWrite:
		return fmt.Sprintf("field %q is not writable", f.Name), true
	case schema.WriteOnce:
		if prev, ok := o.previousValues[f.Name]; ok && !prev.IsNull() {
			return fmt.Sprintf("field %q can only be written once", f.Name), true
		}
	case schema.WriteOnCreate:
		if !o.isNew {
			return fmt.Sprintf("field %q can only be written on create", f.Name), true
		}
	case schema.WriteNonNull:
		if v.IsNull() {
			return fmt.Sprintf("field %q cannot be set to null", f.Name), true
		}
	}
	return "", false
}

// Set implements §4.4's set: bulk set_value that accumulates all failures
// into a single ValidationFailed error rather than short-circuiting on the
// first one.
func (o *Object) Set(ctx context.Context, values map[string]value.Value) error {
	fieldErrs := map[string]string{}
	for name, v := range values {
		if err := o.SetValue(ctx, name, v); err != nil {
			if ae, ok := errs.As(err); ok {
				if ae.Kind == errs.ValidationFailed {
					for k, reason := range ae.Fields {
						fieldErrs[k] = reason
					}
					continue
				}
				fieldErrs[name] = ae.Reason
				continue
			}
			fieldErrs[name] = err.Error()
		}
	}
	if len(fieldErrs) > 0 {
		return errs.Validation(fieldErrs)
	}
	return nil
}

func (o *Object) runFieldPipeline(ctx context.Context, p pipeline.Pipeline, path string, v value.Value) *pipeline.Context {
	pctx := pipeline.NewContext(ctx, o, path, o.env.AtPath(path), v)
	return p.Process(pctx)
}

// Save implements §4.4's save: on_save per dirty (or, if new, every)
// non-Temp field; default application for unset fields; the connector
// call; and, on success, the values -> previous_values commit.
func (o *Object) Save(ctx context.Context, conn Connector) error {
	if o.isDeleted {
		return &errs.ActionError{Kind: errs.ObjectIsDeleted}
	}

	if err := o.applyDefaults(ctx); err != nil {
		return err
	}

	fieldErrs := map[string]string{}
	for _, f := range o.model.OrderedFields {
		if f.StoreKind == schema.Temp || f.StoreKind == schema.Calculated {
			continue
		}
		if !o.isNew && !o.dirtyFields[f.Name] {
			continue
		}
		v, ok := o.values[f.Name]
		if !ok {
			continue
		}
		result := o.runFieldPipeline(ctx, f.OnSave, f.Name, v)
		if result.Stage.IsInvalid() {
			fieldErrs[f.Name] = result.Stage.Reason
			continue
		}
		o.values[f.Name] = result.Stage.Value
	}
	if len(fieldErrs) > 0 {
		return errs.Validation(fieldErrs)
	}

	if err := conn.SaveObject(ctx, o); err != nil {
		return err
	}

	o.commitSave()
	return nil
}

// commitSave applies the post-save bookkeeping common to Save and SaveMany:
// values -> previous_values, Temp field eviction, and clearing dirty/new
// state.
func (o *Object) commitSave() {
	o.previousValues = make(map[string]value.Value, len(o.values))
	for k, v := range o.values {
		o.previousValues[k] = v
	}
	for _, f := range o.model.OrderedFields {
		if f.StoreKind == schema.Temp {
			delete(o.values, f.Name)
			delete(o.previousValues, f.Name)
		}
	}
	o.dirtyFields = map[string]bool{}
	o.isNew = false
	o.isModified = false
}

// SaveMany runs save across a batch of objects of the same model, the
// *_Many counterpart to Save. Per field it fans the on_save pipeline out
// across every object that needs it with pipeline.RunMany rather than
// running field-by-field, object-by-object in sequence, since distinct
// objects' per-field pipelines never share state. Field validation failures
// are collected per object and reported together, keyed "<index>.<field>"
// so a caller can tell which object in the batch failed.
func SaveMany(ctx context.Context, conn Connector, objs []*Object) error {
	if len(objs) == 0 {
		return nil
	}

	for _, o := range objs {
		if o.isDeleted {
			return &errs.ActionError{Kind: errs.ObjectIsDeleted}
		}
		if err := o.applyDefaults(ctx); err != nil {
			return err
		}
	}

	model := objs[0].model
	fieldErrs := map[string]string{}

	for _, f := range model.OrderedFields {
		if f.StoreKind == schema.Temp || f.StoreKind == schema.Calculated {
			continue
		}

		var participants []*Object
		var contexts []*pipeline.Context
		for _, o := range objs {
			if !o.isNew && !o.dirtyFields[f.Name] {
				continue
			}
			v, ok := o.values[f.Name]
			if !ok {
				continue
			}
			participants = append(participants, o)
			contexts = append(contexts, pipeline.NewContext(ctx, o, f.Name, o.env.AtPath(f.Name), v))
		}
		if len(participants) == 0 {
			continue
		}

		results := pipeline.RunMany(ctx, f.OnSave, contexts)
		for i, o := range participants {
			result := results[i]
			if result.Stage.IsInvalid() {
				fieldErrs[fmt.Sprintf("%d.%s", indexOf(objs, o), f.Name)] = result.Stage.Reason
				continue
			}
			o.values[f.Name] = result.Stage.Value
		}
	}

	if len(fieldErrs) > 0 {
		return errs.Validation(fieldErrs)
	}

	for _, o := range objs {
		if err := conn.SaveObject(ctx, o); err != nil {
			return err
		}
	}
	for _, o := range objs {
		o.commitSave()
	}
	return nil
}

func indexOf(objs []*Object, target *Object) int {
	for i, o := range objs {
		if o == target {
			return i
		}
	}
	return -1
}

// applyDefaults evaluates Argument defaults for unset required fields and
// merges them into o.values without disturbing already-staged values,
// mirroring mergo.Merge's "fill only missing keys" semantics.
func (o *Object) applyDefaults(ctx context.Context) error {
	defaults := map[string]value.Value{}
	for _, f := range o.model.OrderedFields {
		if f.Default == nil || f.Availability != schema.Required {
			continue
		}
		if _, ok := o.values[f.Name]; ok {
			continue
		}
		pctx := pipeline.NewContext(ctx, o, f.Name, o.env.AtPath(f.Name), value.Of.Null())
		v, err := f.Default.Evaluate(pctx)
		if err != nil {
			return errs.New(errs.InternalServerError, f.Name, "default evaluation failed: %v", err)
		}
		defaults[f.Name] = v
	}
	if len(defaults) == 0 {
		return nil
	}
	if err := mergo.Merge(&o.values, defaults); err != nil {
		return errs.Wrap(errs.InternalServerError, err, "merging defaults")
	}
	return nil
}

// Delete implements §4.4's delete.
func (o *Object) Delete(ctx context.Context, conn Connector) error {
	if o.isDeleted {
		return &errs.ActionError{Kind: errs.ObjectIsDeleted}
	}
	if err := conn.DeleteObject(ctx, o); err != nil {
		return err
	}
	o.isDeleted = true
	return nil
}

// ToJSON implements §4.4's to_json: local_output_keys filtered by any
// active select, each run through on_output, plus any included relations.
func (o *Object) ToJSON(ctx context.Context) (map[string]interface{}, error) {
	out := map[string]interface{}{}

	for _, key := range o.model.LocalOutputKeys {
		if o.selectedFields != nil && !o.selectedFields[key] {
			continue
		}
		f := o.model.Fields[key]
		v := o.values[key]
		if !f.OnOutput.Empty() {
			result := o.runFieldPipeline(ctx, f.OnOutput, key, v)
			if result.Stage.IsInvalid() {
				return nil, errs.Validation(map[string]string{key: result.Stage.Reason})
			}
			v = result.Stage.Value
		}
		jv, err := value.ToJSON(v)
		if err != nil {
			return nil, errs.Wrap(errs.InternalServerError, err, "encoding field %q", key)
		}
		out[key] = jv
	}

	for _, rel := range o.model.RelationOutputKeys {
		if o.selectedFields != nil && !o.selectedFields[rel] {
			continue
		}
		objs, ok := o.included[rel]
		if !ok {
			continue
		}
		items := make([]map[string]interface{}, 0, len(objs))
		for _, related := range objs {
			item, err := related.ToJSON(ctx)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		out[rel] = items
	}

	return out, nil
}
