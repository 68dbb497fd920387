package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraphBuilder().
		HostURL("http://localhost:8080").
		Enum("Role", "ADMIN", "MEMBER").
		Model("User", func(m *ModelBuilder) {
			m.Field("id", func(f *FieldBuilder) { f.Type(T.ObjectID()).Primary() })
			m.Field("role", func(f *FieldBuilder) { f.Type(T.Enum("Role")) })
		}).
		Model("Post", func(m *ModelBuilder) {
			m.Field("id", func(f *FieldBuilder) { f.Type(T.ObjectID()).Primary() })
			m.Field("authorId", func(f *FieldBuilder) { f.Type(T.ObjectID()).LocalKey() })
			m.Relation("author", func(r *RelationBuilder) {
				r.Fields("authorId").References("id").Model("User")
			})
		}).
		Build()
	require.NoError(t, err)
	return g
}

func TestGraphBuildsModelsAndEnums(t *testing.T) {
	g := buildTestGraph(t)

	_, ok := g.Model("User")
	assert.True(t, ok)
	_, ok = g.Model("Post")
	assert.True(t, ok)

	e, ok := g.Enum("Role")
	require.True(t, ok)
	assert.True(t, e.Contains("ADMIN"))
	assert.False(t, e.Contains("OWNER"))

	assert.Equal(t, []string{"User", "Post"}, namesOf(g.Models()))
}

func TestGraphRejectsDuplicateModelName(t *testing.T) {
	_, err := NewGraphBuilder().
		Model("User", func(m *ModelBuilder) {
			m.Field("id", func(f *FieldBuilder) { f.Type(T.ObjectID()).Primary() })
		}).
		Model("User", func(m *ModelBuilder) {
			m.Field("id", func(f *FieldBuilder) { f.Type(T.ObjectID()).Primary() })
		}).
		Build()
	require.Error(t, err)
}

func TestGraphRejectsUnresolvedRelationTarget(t *testing.T) {
	_, err := NewGraphBuilder().
		Model("Post", func(m *ModelBuilder) {
			m.Field("id", func(f *FieldBuilder) { f.Type(T.ObjectID()).Primary() })
			m.Field("authorId", func(f *FieldBuilder) { f.Type(T.ObjectID()).LocalKey() })
			m.Relation("author", func(r *RelationBuilder) {
				r.Fields("authorId").References("id").Model("Ghost")
			})
		}).
		Build()
	require.Error(t, err)
}

func namesOf(models []*Model) []string {
	names := make([]string, len(models))
	for i, m := range models {
		names[i] = m.Name
	}
	return names
}
