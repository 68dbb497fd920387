package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildUserModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModelBuilder("User").
		Field("id", func(f *FieldBuilder) { f.Type(T.ObjectID()).Primary().NoWrite() }).
		Field("email", func(f *FieldBuilder) { f.Type(T.String()).Unique().AuthIdentity() }).
		Field("password", func(f *FieldBuilder) { f.Type(T.String()).NoRead() }).
		Field("nickname", func(f *FieldBuilder) { f.Type(T.String()).Optional() }).
		Field("internalNotes", func(f *FieldBuilder) { f.Type(T.String()).NoRead().Unqueryable() }).
		Field("sessionToken", func(f *FieldBuilder) { f.Type(T.String()).Temp() }).
		Build()
	require.NoError(t, err)
	return m
}

func TestModelDerivedKeySets(t *testing.T) {
	m := buildUserModel(t)

	assert.ElementsMatch(t, []string{"id", "email", "password", "nickname", "internalNotes"}, m.ScalarKeys)
	assert.ElementsMatch(t, []string{"id", "email", "password", "nickname"}, m.QueryKeys)
	assert.ElementsMatch(t, []string{"id", "email", "nickname"}, m.LocalOutputKeys)
	assert.NotContains(t, m.ScalarKeys, "sessionToken")
}

func TestModelRequiresPrimaryKey(t *testing.T) {
	_, err := NewModelBuilder("Orphan").
		Field("name", func(f *FieldBuilder) { f.Type(T.String()) }).
		Build()
	require.Error(t, err)
}

func TestModelRelationValidation(t *testing.T) {
	_, err := NewModelBuilder("Post").
		Field("id", func(f *FieldBuilder) { f.Type(T.ObjectID()).Primary() }).
		Relation("author", func(r *RelationBuilder) {
			r.Fields("missingField").References("id").Model("User")
		}).
		Build()
	require.Error(t, err)
}

func TestModelRelationOutputKeys(t *testing.T) {
	m, err := NewModelBuilder("Post").
		Field("id", func(f *FieldBuilder) { f.Type(T.ObjectID()).Primary() }).
		Field("authorId", func(f *FieldBuilder) { f.Type(T.ObjectID()).LocalKey() }).
		Relation("author", func(r *RelationBuilder) {
			r.Fields("authorId").References("id").Model("User")
		}).
		Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"author"}, m.RelationOutputKeys)
	_, ok := m.RelationsByName["author"]
	assert.True(t, ok)
}

func TestFindUniqueIndex(t *testing.T) {
	m, err := NewModelBuilder("Account").
		Field("id", func(f *FieldBuilder) { f.Type(T.ObjectID()).Primary() }).
		Field("org", func(f *FieldBuilder) { f.Type(T.String()) }).
		Field("slug", func(f *FieldBuilder) { f.Type(T.String()) }).
		Index(true, IndexField{Field: "org"}, IndexField{Field: "slug"}).
		Build()
	require.NoError(t, err)

	idx := m.FindUniqueIndex([]string{"org", "slug"})
	require.NotNil(t, idx)
	assert.True(t, idx.Unique)

	assert.Nil(t, m.FindUniqueIndex([]string{"slug", "org"}))
	assert.Nil(t, m.FindUniqueIndex([]string{"org"}))
}
