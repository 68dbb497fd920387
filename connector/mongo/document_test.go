package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/Crackersssss/teo/object"
	"github.com/Crackersssss/teo/pipeline"
	"github.com/Crackersssss/teo/schema"
	"github.com/Crackersssss/teo/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func documentModel(t *testing.T) *schema.Model {
	t.Helper()
	m, err := schema.NewModelBuilder("Article").
		Field("id", func(f *schema.FieldBuilder) { f.Type(schema.T.ObjectID()).Primary() }).
		Field("title", func(f *schema.FieldBuilder) { f.Type(schema.T.String()) }).
		Field("views", func(f *schema.FieldBuilder) { f.Type(schema.T.I64()) }).
		Field("rating", func(f *schema.FieldBuilder) { f.Type(schema.T.F64()) }).
		Field("published", func(f *schema.FieldBuilder) { f.Type(schema.T.Bool()) }).
		Field("tags", func(f *schema.FieldBuilder) { f.Type(schema.T.Vec(schema.T.String())) }).
		Field("createdAt", func(f *schema.FieldBuilder) { f.Type(schema.T.DateTime()) }).
		Build()
	require.NoError(t, err)
	return m
}

// roundTripDoc simulates what a driver round trip does to a bson.M: encode
// to BSON bytes and decode back, so values observed by objectFrom are the
// same driver-native Go types a real find would hand it (int64 instead of
// the json.Number-shaped types decode.DecodeValueForFieldType expects).
func roundTripDoc(t *testing.T, doc bson.M) bson.M {
	t.Helper()
	raw, err := bson.Marshal(doc)
	require.NoError(t, err)
	var out bson.M
	require.NoError(t, bson.Unmarshal(raw, &out))
	return out
}

func TestObjectFromRoundTripsDocumentOf(t *testing.T) {
	m := documentModel(t)
	ctx := context.Background()

	oid := primitive.NewObjectID()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	o := object.New(m, nil, pipeline.NewEnv("Create"))
	require.NoError(t, o.SetValue(ctx, "id", value.Of.ObjectID(oid)))
	require.NoError(t, o.SetValue(ctx, "title", value.Of.String("hello")))
	require.NoError(t, o.SetValue(ctx, "views", value.Of.Int(value.I64, 42)))
	require.NoError(t, o.SetValue(ctx, "rating", value.Of.F64(4.5)))
	require.NoError(t, o.SetValue(ctx, "published", value.Of.Bool(true)))
	require.NoError(t, o.SetValue(ctx, "tags", value.Of.Vec([]value.Value{value.Of.String("a"), value.Of.String("b")})))
	require.NoError(t, o.SetValue(ctx, "createdAt", value.Of.DateTime(now)))

	doc, err := documentOf(o)
	require.NoError(t, err)

	doc = roundTripDoc(t, doc)

	found, err := objectFrom(m, nil, doc)
	require.NoError(t, err)
	assert.False(t, found.IsNew())

	title, _ := found.Field("title")
	assert.Equal(t, "hello", title.Str())

	views, _ := found.Field("views")
	assert.Equal(t, int64(42), views.Int())

	rating, _ := found.Field("rating")
	assert.Equal(t, 4.5, rating.F64())

	published, _ := found.Field("published")
	assert.True(t, published.Bool())

	tags, _ := found.Field("tags")
	require.Len(t, tags.List(), 2)
	assert.Equal(t, "a", tags.List()[0].Str())
	assert.Equal(t, "b", tags.List()[1].Str())

	createdAt, _ := found.Field("createdAt")
	assert.True(t, now.Equal(createdAt.Time()))

	id, _ := found.Field("id")
	assert.Equal(t, oid, id.ObjectIDValue())
}

func TestObjectFromFillsMissingFieldsWithNull(t *testing.T) {
	m := documentModel(t)
	doc := bson.M{"title": "partial"}

	found, err := objectFrom(m, nil, doc)
	require.NoError(t, err)

	views, ok := found.Field("views")
	require.True(t, ok)
	assert.True(t, views.IsNull())
}
