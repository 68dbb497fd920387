// Package memory implements an in-memory reference Connector, grounded in
// coal.Tester's save/find-all/find-last/update/delete surface, intended for
// tests the way coal.Tester serves the teacher's acceptance tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Crackersssss/teo/decode"
	"github.com/Crackersssss/teo/errs"
	"github.com/Crackersssss/teo/object"
	"github.com/Crackersssss/teo/schema"
	"github.com/Crackersssss/teo/value"
)

// Builder is a ConnectorBuilder that hands out in-memory Connectors,
// one table (keyed by primary key) per model.
type Builder struct{}

// NewBuilder returns a memory connector builder.
func NewBuilder() *Builder { return &Builder{} }

// BuildConnector implements object.ConnectorBuilder.
func (b *Builder) BuildConnector(models []*schema.Model, resetDatabase bool) (object.Connector, error) {
	c := &Connector{tables: map[string]*table{}}
	for _, m := range models {
		c.tables[m.Name] = newTable()
	}
	return c, nil
}

type table struct {
	mu   sync.RWMutex
	rows map[string]*object.Object
	seq  []string // insertion order, for stable FindMany iteration
}

func newTable() *table { return &table{rows: map[string]*object.Object{}} }

// Connector is the in-memory reference implementation of object.Connector.
type Connector struct {
	tables map[string]*table
}

// Clean removes every row from every table, mirroring coal.Tester.Clean.
func (c *Connector) Clean() {
	for _, t := range c.tables {
		t.mu.Lock()
		t.rows = map[string]*object.Object{}
		t.seq = nil
		t.mu.Unlock()
	}
}

func (c *Connector) tableFor(model *schema.Model) (*table, error) {
	t, ok := c.tables[model.Name]
	if !ok {
		return nil, errs.New(errs.InternalServerError, "", "no table registered for model %q", model.Name)
	}
	return t, nil
}

// primaryKeyOf builds a stable lookup key from an object's primary key
// field values.
func primaryKeyOf(model *schema.Model, fields func(name string) (value.Value, bool)) (string, bool) {
	key := ""
	for _, name := range model.PrimaryKey() {
		v, ok := fields(name)
		if !ok {
			return "", false
		}
		enc, err := value.ToJSON(v)
		if err != nil {
			return "", false
		}
		key += "|" + toKeyString(enc)
	}
	return key, true
}

// toKeyString renders any JSON-encoded primary-key component (string,
// bool, or any of the numeric types value.ToJSON produces) into a stable
// table-key fragment. A type-generic render is required here: an
// auto_increment integer id or any other non-ObjectId, non-String primary
// key must not collapse onto the same key as every other row of its type.
func toKeyString(v interface{}) string {
	return fmt.Sprintf("%v", v)
}

// SaveObject implements object.Connector: it checks single-field unique
// constraints before inserting/updating the row keyed by primary key.
// Compound unique indexes are not checked.
func (c *Connector) SaveObject(ctx context.Context, obj *object.Object) error {
	t, err := c.tableFor(obj.Model())
	if err != nil {
		return err
	}

	key, ok := primaryKeyOf(obj.Model(), obj.Field)
	if !ok {
		return errs.New(errs.InternalServerError, "", "object missing primary key value(s)")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := checkUniqueConstraints(t, obj); err != nil {
		return err
	}

	if _, exists := t.rows[key]; !exists {
		t.seq = append(t.seq, key)
	}
	t.rows[key] = obj
	return nil
}

func checkUniqueConstraints(t *table, obj *object.Object) error {
	for _, f := range obj.Model().OrderedFields {
		if f.Index.Kind != schema.IndexUnique {
			continue
		}
		v, ok := obj.Field(f.Name)
		if !ok || v.IsNull() {
			continue
		}
		for key, other := range t.rows {
			if other == obj {
				continue
			}
			ov, ok := other.Field(f.Name)
			if ok && value.Equal(v, ov) {
				return errs.New(errs.UniqueConstraintViolation, f.Name, "unique constraint %q violated", f.Name)
			}
			_ = key
		}
	}
	return nil
}

// DeleteObject implements object.Connector.
func (c *Connector) DeleteObject(ctx context.Context, obj *object.Object) error {
	t, err := c.tableFor(obj.Model())
	if err != nil {
		return err
	}
	key, ok := primaryKeyOf(obj.Model(), obj.Field)
	if !ok {
		return errs.New(errs.InternalServerError, "", "object missing primary key value(s)")
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.rows, key)
	for i, k := range t.seq {
		if k == key {
			t.seq = append(t.seq[:i], t.seq[i+1:]...)
			break
		}
	}
	return nil
}

// FindUnique implements object.Connector.
func (c *Connector) FindUnique(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) (*object.Object, error) {
	t, err := c.tableFor(model)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, row := range t.rows {
		if matchesWhereUnique(row, finder.WhereUnique) {
			return row, nil
		}
	}
	return nil, errs.New(errs.NotFound, "", "no %s matches whereUnique", model.Name)
}

// FindFirst implements object.Connector.
func (c *Connector) FindFirst(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) (*object.Object, error) {
	results, err := c.FindMany(ctx, graph, model, finder)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, errs.New(errs.NotFound, "", "no %s matches where", model.Name)
	}
	return results[0], nil
}

// FindMany implements object.Connector, honoring where (equals filters and
// the AND/OR/NOT connectives; other filter operators and relation selectors
// are ignored), orderBy, skip and take.
func (c *Connector) FindMany(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) ([]*object.Object, error) {
	t, err := c.tableFor(model)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	var matched []*object.Object
	for _, key := range t.seq {
		row := t.rows[key]
		if matchesWhere(row, finder.Where) {
			matched = append(matched, row)
		}
	}

	if len(finder.OrderBy) > 0 {
		sortRows(matched, finder.OrderBy)
	}

	if finder.Skip != nil && int(*finder.Skip) < len(matched) {
		matched = matched[*finder.Skip:]
	}
	if finder.Take != nil && int(*finder.Take) < len(matched) {
		matched = matched[:*finder.Take]
	}
	return matched, nil
}

// Count implements object.Connector.
func (c *Connector) Count(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) (uint64, error) {
	rows, err := c.FindMany(ctx, graph, model, finder)
	if err != nil {
		return 0, err
	}
	return uint64(len(rows)), nil
}

// Close implements object.Connector.
func (c *Connector) Close() error { return nil }

func matchesWhereUnique(row *object.Object, unique map[string]value.Value) bool {
	if unique == nil {
		return false
	}
	for name, want := range unique {
		got, ok := row.Field(name)
		if !ok || !value.Equal(got, want) {
			return false
		}
	}
	return true
}

func matchesWhere(row *object.Object, w *decode.Where) bool {
	if w == nil {
		return true
	}
	for name, filter := range w.Fields {
		got, ok := row.Field(name)
		if !ok {
			got = value.Of.Null()
		}
		if eq, ok := filter.Filters["equals"]; ok && !value.Equal(got, eq) {
			return false
		}
	}
	for _, sub := range w.And {
		if !matchesWhere(row, sub) {
			return false
		}
	}
	if len(w.Or) > 0 {
		any := false
		for _, sub := range w.Or {
			if matchesWhere(row, sub) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	if w.Not != nil && matchesWhere(row, w.Not) {
		return false
	}
	return true
}

func sortRows(rows []*object.Object, orderBy []decode.OrderByEntry) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, entry := range orderBy {
			a, _ := rows[i].Field(entry.Field)
			b, _ := rows[j].Field(entry.Field)
			if value.Equal(a, b) {
				continue
			}
			less := value.Less(a, b)
			if entry.Sort == schema.Desc {
				return !less
			}
			return less
		}
		return false
	})
}
