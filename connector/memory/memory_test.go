package memory

import (
	"context"
	"testing"

	"github.com/Crackersssss/teo/decode"
	"github.com/Crackersssss/teo/errs"
	"github.com/Crackersssss/teo/object"
	"github.com/Crackersssss/teo/pipeline"
	"github.com/Crackersssss/teo/schema"
	"github.com/Crackersssss/teo/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(t *testing.T) *schema.Model {
	t.Helper()
	m, err := schema.NewModelBuilder("Simple").
		Field("id", func(f *schema.FieldBuilder) { f.Type(schema.T.String()).Primary() }).
		Field("email", func(f *schema.FieldBuilder) { f.Type(schema.T.String()).Unique() }).
		Field("age", func(f *schema.FieldBuilder) { f.Type(schema.T.I64()).Optional() }).
		Build()
	require.NoError(t, err)
	return m
}

func newSaved(t *testing.T, m *schema.Model, id, email string) *object.Object {
	t.Helper()
	o := object.New(m, nil, pipeline.NewEnv("Create"))
	require.NoError(t, o.SetValue(context.Background(), "id", value.Of.String(id)))
	require.NoError(t, o.SetValue(context.Background(), "email", value.Of.String(email)))
	return o
}

func TestMemorySaveAndFindUnique(t *testing.T) {
	m := testModel(t)
	conn, err := NewBuilder().BuildConnector([]*schema.Model{m}, false)
	require.NoError(t, err)

	o := newSaved(t, m, "1", "a@example.com")
	require.NoError(t, conn.SaveObject(context.Background(), o))

	found, err := conn.FindUnique(context.Background(), nil, m, &decode.Decoded{
		WhereUnique: map[string]value.Value{"email": value.Of.String("a@example.com")},
	})
	require.NoError(t, err)
	assert.Same(t, o, found)
}

func TestMemoryUniqueConstraintViolation(t *testing.T) {
	m := testModel(t)
	conn, err := NewBuilder().BuildConnector([]*schema.Model{m}, false)
	require.NoError(t, err)

	require.NoError(t, conn.SaveObject(context.Background(), newSaved(t, m, "1", "dup@example.com")))

	err = conn.SaveObject(context.Background(), newSaved(t, m, "2", "dup@example.com"))
	require.Error(t, err)
	ae, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.UniqueConstraintViolation, ae.Kind)
}

func TestMemoryFindManyOrderSkipTake(t *testing.T) {
	m := testModel(t)
	conn, err := NewBuilder().BuildConnector([]*schema.Model{m}, false)
	require.NoError(t, err)

	for i, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		o := newSaved(t, m, string(rune('1'+i)), email)
		require.NoError(t, conn.SaveObject(context.Background(), o))
	}

	one := uint64(1)
	two := uint64(2)
	results, err := conn.FindMany(context.Background(), nil, m, &decode.Decoded{
		OrderBy: []decode.OrderByEntry{{Field: "email", Sort: schema.Desc}},
		Skip:    &one,
		Take:    &two,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	e0, _ := results[0].Field("email")
	e1, _ := results[1].Field("email")
	assert.Equal(t, "b@x.com", e0.Str())
	assert.Equal(t, "a@x.com", e1.Str())
}

func TestMemoryDeleteObject(t *testing.T) {
	m := testModel(t)
	conn, err := NewBuilder().BuildConnector([]*schema.Model{m}, false)
	require.NoError(t, err)

	o := newSaved(t, m, "1", "gone@example.com")
	require.NoError(t, conn.SaveObject(context.Background(), o))
	require.NoError(t, conn.DeleteObject(context.Background(), o))

	_, err = conn.FindUnique(context.Background(), nil, m, &decode.Decoded{
		WhereUnique: map[string]value.Value{"email": value.Of.String("gone@example.com")},
	})
	require.Error(t, err)
	ae, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.NotFound, ae.Kind)
}

func intKeyedModel(t *testing.T) *schema.Model {
	t.Helper()
	m, err := schema.NewModelBuilder("Counter").
		Field("id", func(f *schema.FieldBuilder) { f.Type(schema.T.I64()).Primary() }).
		Field("label", func(f *schema.FieldBuilder) { f.Type(schema.T.String()).Optional() }).
		Build()
	require.NoError(t, err)
	return m
}

func TestMemoryIntegerPrimaryKeysDoNotCollapse(t *testing.T) {
	m := intKeyedModel(t)
	conn, err := NewBuilder().BuildConnector([]*schema.Model{m}, false)
	require.NoError(t, err)

	o1 := object.New(m, nil, pipeline.NewEnv("Create"))
	require.NoError(t, o1.SetValue(context.Background(), "id", value.Of.Int(value.I64, 1)))
	require.NoError(t, o1.SetValue(context.Background(), "label", value.Of.String("first")))
	require.NoError(t, conn.SaveObject(context.Background(), o1))

	o2 := object.New(m, nil, pipeline.NewEnv("Create"))
	require.NoError(t, o2.SetValue(context.Background(), "id", value.Of.Int(value.I64, 2)))
	require.NoError(t, o2.SetValue(context.Background(), "label", value.Of.String("second")))
	require.NoError(t, conn.SaveObject(context.Background(), o2))

	rows, err := conn.FindMany(context.Background(), nil, m, &decode.Decoded{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	labels := map[string]bool{}
	for _, row := range rows {
		l, _ := row.Field("label")
		labels[l.Str()] = true
	}
	assert.True(t, labels["first"])
	assert.True(t, labels["second"])
}

func TestMemoryCount(t *testing.T) {
	m := testModel(t)
	conn, err := NewBuilder().BuildConnector([]*schema.Model{m}, false)
	require.NoError(t, err)

	require.NoError(t, conn.SaveObject(context.Background(), newSaved(t, m, "1", "a@x.com")))
	require.NoError(t, conn.SaveObject(context.Background(), newSaved(t, m, "2", "b@x.com")))

	n, err := conn.Count(context.Background(), nil, m, &decode.Decoded{})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)
}
