// Package mongo implements the document-store reference Connector on top of
// the official mongo-driver, grounded in coal's index.go (index compilation
// against mongo.IndexModel) and store.go (dial-once, copy-per-request
// session pattern, adapted here to the driver's pooled *mongo.Client).
package mongo

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/tomb.v2"

	"github.com/Crackersssss/teo/decode"
	"github.com/Crackersssss/teo/errs"
	"github.com/Crackersssss/teo/object"
	"github.com/Crackersssss/teo/pipeline"
	"github.com/Crackersssss/teo/schema"
	"github.com/Crackersssss/teo/value"
)

// Builder dials a mongo deployment and hands out Connectors bound to a
// concrete schema, per object.ConnectorBuilder.
type Builder struct {
	URI      string
	Database string
}

// NewBuilder returns a mongo connector builder.
func NewBuilder(uri, database string) *Builder {
	return &Builder{URI: uri, Database: database}
}

// BuildConnector implements object.ConnectorBuilder. When resetDatabase is
// true the target database is dropped before indexes are (re)built, the
// mongo-flavored equivalent of coal.Tester.Clean.
func (b *Builder) BuildConnector(models []*schema.Model, resetDatabase bool) (object.Connector, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(b.URI))
	if err != nil {
		return nil, errs.Wrap(errs.ConnectorError, err, "connecting to mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errs.Wrap(errs.ConnectorError, err, "pinging mongo")
	}

	db := client.Database(b.Database)
	if resetDatabase {
		if err := db.Drop(ctx); err != nil {
			return nil, errs.Wrap(errs.ConnectorError, err, "dropping database")
		}
	}

	c := &Connector{client: client, db: db, models: map[string]*schema.Model{}}
	for _, m := range models {
		c.models[m.Name] = m
	}

	var tmb tomb.Tomb
	tmb.Go(func() error {
		return c.ensureIndexes(tmb.Context(context.Background()), models)
	})
	c.indexTomb = &tmb

	return c, nil
}

// Connector is the document-store reference implementation of
// object.Connector.
type Connector struct {
	client    *mongo.Client
	db        *mongo.Database
	models    map[string]*schema.Model
	indexTomb *tomb.Tomb
}

func (c *Connector) collection(model *schema.Model) *mongo.Collection {
	return c.db.Collection(model.Name)
}

// ensureIndexes builds every model-level index (Model.Indexes) for every
// model in the background, mirroring coal.EnsureIndexes but run once as a
// tomb-managed goroutine rather than blocking BuildConnector's caller.
// Field-level index declarations (Index, Unique, CompoundIndex,
// CompoundUnique on a FieldBuilder) are not turned into mongo indexes.
func (c *Connector) ensureIndexes(ctx context.Context, models []*schema.Model) error {
	for _, m := range models {
		indexModels := make([]mongo.IndexModel, 0, len(m.Indexes))
		for _, idx := range m.Indexes {
			keys := bson.D{}
			for _, f := range idx.Fields {
				dir := 1
				if f.Sort == schema.Desc {
					dir = -1
				}
				keys = append(keys, bson.E{Key: f.Field, Value: dir})
			}
			indexModels = append(indexModels, mongo.IndexModel{
				Keys:    keys,
				Options: options.Index().SetUnique(idx.Unique),
			})
		}
		if len(indexModels) == 0 {
			continue
		}
		_, err := c.collection(m).Indexes().CreateMany(ctx, indexModels)
		if err != nil {
			return errs.Wrap(errs.ConnectorError, err, "building indexes for %q", m.Name)
		}
	}
	return nil
}

// withRetry retries a transient connector operation with exponential
// backoff, grounded in axe's backoff-driven task retry pattern.
func withRetry(ctx context.Context, op func() error) error {
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, op()
	}, backoff.WithMaxTries(3), backoff.WithBackOff(backoff.NewExponentialBackOff()))
	return err
}

// SaveObject implements object.Connector.
func (c *Connector) SaveObject(ctx context.Context, obj *object.Object) error {
	doc, err := documentOf(obj)
	if err != nil {
		return err
	}
	filter, ok := primaryKeyFilter(obj)
	if !ok {
		return errs.New(errs.InternalServerError, "", "object missing primary key value(s)")
	}

	return withRetry(ctx, func() error {
		_, err := c.collection(obj.Model()).ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
		if mongo.IsDuplicateKeyError(err) {
			return backoff.Permanent(errs.New(errs.UniqueConstraintViolation, "", "unique constraint violated"))
		}
		if err != nil {
			return errs.Wrap(errs.ConnectorError, err, "saving %q", obj.Model().Name)
		}
		return nil
	})
}

// DeleteObject implements object.Connector.
func (c *Connector) DeleteObject(ctx context.Context, obj *object.Object) error {
	filter, ok := primaryKeyFilter(obj)
	if !ok {
		return errs.New(errs.InternalServerError, "", "object missing primary key value(s)")
	}
	return withRetry(ctx, func() error {
		_, err := c.collection(obj.Model()).DeleteOne(ctx, filter)
		if err != nil {
			return errs.Wrap(errs.ConnectorError, err, "deleting %q", obj.Model().Name)
		}
		return nil
	})
}

// FindUnique implements object.Connector.
func (c *Connector) FindUnique(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) (*object.Object, error) {
	filter := bson.M{}
	for name, v := range finder.WhereUnique {
		enc, err := value.ToJSON(v)
		if err != nil {
			return nil, errs.Wrap(errs.InternalServerError, err, "encoding %q", name)
		}
		filter[name] = enc
	}

	var doc bson.M
	err := c.collection(model).FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errs.New(errs.NotFound, "", "no %s matches whereUnique", model.Name)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ConnectorError, err, "finding %q", model.Name)
	}
	return objectFrom(model, graph, doc)
}

// FindFirst implements object.Connector.
func (c *Connector) FindFirst(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) (*object.Object, error) {
	opts := options.FindOne().SetSort(sortDoc(finder))
	filter := whereFilter(finder.Where)

	var doc bson.M
	err := c.collection(model).FindOne(ctx, filter, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, errs.New(errs.NotFound, "", "no %s matches where", model.Name)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ConnectorError, err, "finding %q", model.Name)
	}
	return objectFrom(model, graph, doc)
}

// FindMany implements object.Connector, honoring where (equals filters and
// the AND/OR/NOT connectives; other filter operators and relation selectors
// are not translated), orderBy, skip and take; select/include projection and
// distinct are left to the caller to post-process on the returned objects.
func (c *Connector) FindMany(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) ([]*object.Object, error) {
	opts := options.Find().SetSort(sortDoc(finder))
	if finder.Skip != nil {
		opts.SetSkip(int64(*finder.Skip))
	}
	if finder.Take != nil {
		opts.SetLimit(int64(*finder.Take))
	}

	cur, err := c.collection(model).Find(ctx, whereFilter(finder.Where), opts)
	if err != nil {
		return nil, errs.Wrap(errs.ConnectorError, err, "finding %q", model.Name)
	}
	defer cur.Close(ctx)

	var out []*object.Object
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, errs.Wrap(errs.ConnectorError, err, "decoding %q", model.Name)
		}
		obj, err := objectFrom(model, graph, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, nil
}

// Count implements object.Connector.
func (c *Connector) Count(ctx context.Context, graph *schema.Graph, model *schema.Model, finder *decode.Decoded) (uint64, error) {
	n, err := c.collection(model).CountDocuments(ctx, whereFilter(finder.Where))
	if err != nil {
		return 0, errs.Wrap(errs.ConnectorError, err, "counting %q", model.Name)
	}
	return uint64(n), nil
}

// Close implements object.Connector, stopping the background index builder
// and waiting for it to exit before disconnecting.
func (c *Connector) Close() error {
	if c.indexTomb != nil {
		c.indexTomb.Kill(nil)
		_ = c.indexTomb.Wait()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return c.client.Disconnect(ctx)
}

func primaryKeyFilter(obj *object.Object) (bson.M, bool) {
	filter := bson.M{}
	for _, name := range obj.Model().PrimaryKey() {
		v, ok := obj.Field(name)
		if !ok {
			return nil, false
		}
		enc, err := value.ToJSON(v)
		if err != nil {
			return nil, false
		}
		filter[name] = enc
	}
	return filter, true
}

func documentOf(obj *object.Object) (bson.M, error) {
	doc := bson.M{}
	for _, name := range obj.Model().ScalarKeys {
		f, ok := obj.Model().Fields[name]
		if !ok || f.StoreKind == schema.Calculated {
			continue
		}
		v, ok := obj.Field(name)
		if !ok {
			continue
		}
		enc, err := value.ToJSON(v)
		if err != nil {
			return nil, errs.Wrap(errs.InternalServerError, err, "encoding field %q", name)
		}
		doc[name] = enc
	}
	return doc, nil
}

// objectFrom rehydrates a persisted Object from a raw bson document,
// decoding each scalar field per its declared type (the inverse of
// documentOf). Calculated fields are never persisted (§4.4), so they are
// left unset here and recomputed by on_output on the next to_json.
func objectFrom(model *schema.Model, graph *schema.Graph, doc bson.M) (*object.Object, error) {
	values := make(map[string]value.Value, len(doc))
	for _, name := range model.ScalarKeys {
		f, ok := model.Fields[name]
		if !ok || f.StoreKind == schema.Calculated {
			continue
		}
		raw, present := doc[name]
		if !present {
			values[name] = value.Of.Null()
			continue
		}
		v, err := valueFromBSON(graph, f.Type, raw)
		if err != nil {
			return nil, errs.Wrap(errs.InternalServerError, err, "decoding field %q", name)
		}
		values[name] = v
	}
	return object.FromStorage(model, graph, values, pipeline.NewEnv("Find")), nil
}

func whereFilter(w *decode.Where) bson.M {
	if w == nil {
		return bson.M{}
	}
	filter := bson.M{}
	for name, ff := range w.Fields {
		if eq, ok := ff.Filters["equals"]; ok {
			enc, err := value.ToJSON(eq)
			if err == nil {
				filter[name] = enc
			}
		}
	}
	if len(w.And) > 0 {
		var clauses []bson.M
		for _, sub := range w.And {
			clauses = append(clauses, whereFilter(sub))
		}
		filter["$and"] = clauses
	}
	if len(w.Or) > 0 {
		var clauses []bson.M
		for _, sub := range w.Or {
			clauses = append(clauses, whereFilter(sub))
		}
		filter["$or"] = clauses
	}
	if w.Not != nil {
		filter["$nor"] = []bson.M{whereFilter(w.Not)}
	}
	return filter
}

func sortDoc(finder *decode.Decoded) bson.D {
	sortDoc := bson.D{}
	for _, entry := range finder.OrderBy {
		dir := 1
		if entry.Sort == schema.Desc {
			dir = -1
		}
		sortDoc = append(sortDoc, bson.E{Key: entry.Field, Value: dir})
	}
	return sortDoc
}
