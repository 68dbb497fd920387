package object

import (
	"context"
	"testing"

	"github.com/Crackersssss/teo/decode"
	"github.com/Crackersssss/teo/errs"
	"github.com/Crackersssss/teo/pipeline"
	"github.com/Crackersssss/teo/schema"
	"github.com/Crackersssss/teo/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConnector struct {
	saveErr error
	saved   int
}

func (f *fakeConnector) SaveObject(ctx context.Context, obj *Object) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved++
	return nil
}
func (f *fakeConnector) DeleteObject(ctx context.Context, obj *Object) error { return nil }
func (f *fakeConnector) FindUnique(ctx context.Context, g *schema.Graph, m *schema.Model, finder *decode.Decoded) (*Object, error) {
	return nil, nil
}
func (f *fakeConnector) FindFirst(ctx context.Context, g *schema.Graph, m *schema.Model, finder *decode.Decoded) (*Object, error) {
	return nil, nil
}
func (f *fakeConnector) FindMany(ctx context.Context, g *schema.Graph, m *schema.Model, finder *decode.Decoded) ([]*Object, error) {
	return nil, nil
}
func (f *fakeConnector) Count(ctx context.Context, g *schema.Graph, m *schema.Model, finder *decode.Decoded) (uint64, error) {
	return 0, nil
}
func (f *fakeConnector) Close() error { return nil }

func testModel(t *testing.T) *schema.Model {
	t.Helper()
	m, err := schema.NewModelBuilder("Simple").
		Field("id", func(f *schema.FieldBuilder) { f.Type(schema.T.ObjectID()).Primary().NoWrite() }).
		Field("uniqueString", func(f *schema.FieldBuilder) { f.Type(schema.T.String()) }).
		Field("createOnly", func(f *schema.FieldBuilder) { f.Type(schema.T.String()).Optional().WriteOnCreate() }).
		Field("locked", func(f *schema.FieldBuilder) { f.Type(schema.T.String()).Optional().WriteOnce() }).
		Build()
	require.NoError(t, err)
	return m
}

func TestSetValueRejectsNoWrite(t *testing.T) {
	m := testModel(t)
	o := New(m, nil, pipeline.NewEnv("Create"))
	err := o.SetValue(context.Background(), "id", value.Of.String("x"))
	require.Error(t, err)
	ae, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.PermissionDenied, ae.Kind)
}

func TestSetValueRejectsWriteOnCreateAfterCreate(t *testing.T) {
	m := testModel(t)
	o := New(m, nil, pipeline.NewEnv("Update"))
	o.isNew = false
	err := o.SetValue(context.Background(), "createOnly", value.Of.String("x"))
	require.Error(t, err)
	ae, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.PermissionDenied, ae.Kind)
}

func TestSetValueRejectsWriteOnceAfterPersisted(t *testing.T) {
	m := testModel(t)
	o := New(m, nil, pipeline.NewEnv("Update"))
	o.previousValues["locked"] = value.Of.String("already-set")

	err := o.SetValue(context.Background(), "locked", value.Of.String("again"))
	require.Error(t, err)
	ae, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.PermissionDenied, ae.Kind)
}

func TestSaveAtomicity(t *testing.T) {
	m := testModel(t)
	o := New(m, nil, pipeline.NewEnv("Create"))
	require.NoError(t, o.SetValue(context.Background(), "uniqueString", value.Of.String("1")))

	conn := &fakeConnector{}
	require.NoError(t, o.Save(context.Background(), conn))

	assert.Empty(t, o.dirtyFields)
	assert.False(t, o.IsNew())
	prev, ok := o.PreviousValue("uniqueString")
	require.True(t, ok)
	assert.Equal(t, "1", prev.Str())
}

func TestSaveFailureLeavesPreviousValuesUnchanged(t *testing.T) {
	m := testModel(t)
	o := New(m, nil, pipeline.NewEnv("Create"))
	require.NoError(t, o.SetValue(context.Background(), "uniqueString", value.Of.String("1")))

	conn := &fakeConnector{saveErr: errs.New(errs.ConnectorError, "", "boom")}
	err := o.Save(context.Background(), conn)
	require.Error(t, err)
	assert.Empty(t, o.previousValues)
}

func TestSaveManyCommitsEveryObjectAndFansOutPerField(t *testing.T) {
	m := testModel(t)
	o1 := New(m, nil, pipeline.NewEnv("Create"))
	require.NoError(t, o1.SetValue(context.Background(), "uniqueString", value.Of.String("1")))
	o2 := New(m, nil, pipeline.NewEnv("Create"))
	require.NoError(t, o2.SetValue(context.Background(), "uniqueString", value.Of.String("2")))

	conn := &fakeConnector{}
	require.NoError(t, SaveMany(context.Background(), conn, []*Object{o1, o2}))

	assert.Equal(t, 2, conn.saved)
	assert.False(t, o1.IsNew())
	assert.False(t, o2.IsNew())
	prev1, ok := o1.PreviousValue("uniqueString")
	require.True(t, ok)
	assert.Equal(t, "1", prev1.Str())
	prev2, ok := o2.PreviousValue("uniqueString")
	require.True(t, ok)
	assert.Equal(t, "2", prev2.Str())
}

func TestSaveManyReportsFieldErrorsKeyedByIndex(t *testing.T) {
	m, err := schema.NewModelBuilder("Contact").
		Field("id", func(f *schema.FieldBuilder) { f.Type(schema.T.ObjectID()).Primary().NoWrite() }).
		Field("email", func(f *schema.FieldBuilder) {
			f.Type(schema.T.String()).OnSave(pipeline.New(pipeline.IsEmail()))
		}).
		Build()
	require.NoError(t, err)

	o1 := New(m, nil, pipeline.NewEnv("Create"))
	require.NoError(t, o1.SetValue(context.Background(), "email", value.Of.String("not-an-email")))
	o2 := New(m, nil, pipeline.NewEnv("Create"))
	require.NoError(t, o2.SetValue(context.Background(), "email", value.Of.String("ok@example.com")))

	conn := &fakeConnector{}
	err = SaveMany(context.Background(), conn, []*Object{o1, o2})
	require.Error(t, err)
	ae, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.ValidationFailed, ae.Kind)
	assert.Contains(t, ae.Fields, "0.email")
	assert.NotContains(t, ae.Fields, "1.email")
	assert.Equal(t, 0, conn.saved)
}

func TestSetAccumulatesAllErrors(t *testing.T) {
	m := testModel(t)
	o := New(m, nil, pipeline.NewEnv("Create"))
	err := o.Set(context.Background(), map[string]value.Value{
		"id":           value.Of.String("x"),
		"uniqueString": value.Of.String("ok"),
	})
	require.Error(t, err)
	ae, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.ValidationFailed, ae.Kind)
	assert.Contains(t, ae.Fields, "id")
	assert.NotContains(t, ae.Fields, "uniqueString")
}
