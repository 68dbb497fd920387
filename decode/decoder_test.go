package decode

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Crackersssss/teo/errs"
	"github.com/Crackersssss/teo/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseJSON(t *testing.T, s string) interface{} {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v interface{}
	require.NoError(t, dec.Decode(&v))
	return v
}

func simpleGraph(t *testing.T) (*schema.Graph, *schema.Model) {
	t.Helper()
	g, err := schema.NewGraphBuilder().
		Enum("Color", "red", "green", "blue").
		Model("Simple", func(m *schema.ModelBuilder) {
			m.Field("id", func(f *schema.FieldBuilder) { f.Type(schema.T.ObjectID()).Primary().NoWrite() })
			m.Field("uniqueString", func(f *schema.FieldBuilder) { f.Type(schema.T.String()).Unique() })
			m.Field("requiredString", func(f *schema.FieldBuilder) { f.Type(schema.T.String()) })
			m.Field("optionalString", func(f *schema.FieldBuilder) { f.Type(schema.T.String()).Optional() })
			m.Field("kind", func(f *schema.FieldBuilder) { f.Type(schema.T.Enum("Color")).Optional() })
		}).
		Build()
	require.NoError(t, err)
	model, _ := g.Model("Simple")
	return g, model
}

func TestDecodeClosedInputKeys(t *testing.T) {
	g, m := simpleGraph(t)
	raw := parseJSON(t, `{"create":{"uniqueString":"1","requiredString":"1"},"bogus":true}`)
	_, err := Decode(g, m, Create, raw)
	require.Error(t, err)
	ae, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnexpectedInputKey, ae.Kind)
}

func TestDecodeCreateSuccess(t *testing.T) {
	g, m := simpleGraph(t)
	raw := parseJSON(t, `{"create":{"uniqueString":"1","requiredString":"1"}}`)
	d, err := Decode(g, m, Create, raw)
	require.NoError(t, err)
	assert.Equal(t, "1", d.Create["uniqueString"].Str())
	assert.Equal(t, "1", d.Create["requiredString"].Str())
}

func TestDecodeWhereScalarEqualsObjectEquivalence(t *testing.T) {
	g, m := simpleGraph(t)

	bare := parseJSON(t, `{"where":{"requiredString":"1"}}`)
	d1, err := Decode(g, m, FindMany, bare)
	require.NoError(t, err)

	explicit := parseJSON(t, `{"where":{"requiredString":{"equals":"1"}}}`)
	d2, err := Decode(g, m, FindMany, explicit)
	require.NoError(t, err)

	assert.Equal(t, d1.Where.Fields["requiredString"].Filters["equals"].Str(),
		d2.Where.Fields["requiredString"].Filters["equals"].Str())
}

func TestDecodeOrderBySingletonEnforcement(t *testing.T) {
	g, m := simpleGraph(t)

	bad := parseJSON(t, `{"orderBy":{"uniqueString":"asc","requiredString":"desc"}}`)
	_, err := Decode(g, m, FindMany, bad)
	require.Error(t, err)
	ae, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnexpectedObjectLength, ae.Kind)

	good := parseJSON(t, `{"orderBy":[{"uniqueString":"asc"},{"requiredString":"desc"}]}`)
	d, err := Decode(g, m, FindMany, good)
	require.NoError(t, err)
	require.Len(t, d.OrderBy, 2)
	assert.Equal(t, "uniqueString", d.OrderBy[0].Field)
	assert.Equal(t, schema.Asc, d.OrderBy[0].Sort)
	assert.Equal(t, schema.Desc, d.OrderBy[1].Sort)
}

func TestDecodeEnumRejection(t *testing.T) {
	g, m := simpleGraph(t)
	raw := parseJSON(t, `{"create":{"uniqueString":"1","requiredString":"1","kind":"yellow"}}`)
	_, err := Decode(g, m, Create, raw)
	require.Error(t, err)
	ae, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnexpectedInputType, ae.Kind)
}

func TestDecodeWhereUniqueExactMatch(t *testing.T) {
	g, m := simpleGraph(t)

	ok := parseJSON(t, `{"where":{"uniqueString":"x"}}`)
	d, err := Decode(g, m, FindUnique, ok)
	require.NoError(t, err)
	assert.Equal(t, "x", d.WhereUnique["uniqueString"].Str())

	bad := parseJSON(t, `{"where":{"requiredString":"x"}}`)
	_, err = Decode(g, m, FindUnique, bad)
	require.Error(t, err)
}

func TestDecodeRootMustBeObject(t *testing.T) {
	g, m := simpleGraph(t)
	raw := parseJSON(t, `[1,2,3]`)
	_, err := Decode(g, m, FindMany, raw)
	require.Error(t, err)
	ae, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.UnexpectedInputRootType, ae.Kind)
}
