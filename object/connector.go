package object

import (
	"context"

	"github.com/Crackersssss/teo/decode"
	"github.com/Crackersssss/teo/schema"
)

// Connector is the storage driver contract the core requires, per §4.5.
// save_object/delete_object mutate the storage backend; the finder-taking
// operations translate an already-decoded finder into the backend's native
// query form.
type Connector interface {
	SaveObject(ctx context.Context, obj *Object) error
	DeleteObject(ctx context.Context, obj *Object) error
	FindUnique(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) (*Object, error)
	FindFirst(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) (*Object, error)
	FindMany(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) ([]*Object, error)
	Count(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) (uint64, error)
	Close() error
}

// ConnectorBuilder yields a Connector bound to a concrete schema, per §4.5.
// resetDatabase requests a destructive re-provisioning of backing storage,
// used by test tooling.
type ConnectorBuilder interface {
	BuildConnector(models []*schema.Model, resetDatabase bool) (Connector, error)
}

// BuilderFrom type-asserts a Graph's opaque ConnectorBuilder field back to
// the typed interface, since schema.Graph cannot import this package
// without creating an import cycle (see schema.Graph's doc).
func BuilderFrom(g *schema.Graph) (ConnectorBuilder, bool) {
	cb, ok := g.ConnectorBuilder.(ConnectorBuilder)
	return cb, ok
}
