package pricegraph

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/pricegraph/kv"
	"go.uber.org/zap"
)

// DefaultKey is the store key holding the persisted graphs.
const DefaultKey = "graphs"

// ErrNotFound is returned when no stored graph has the requested id.
var ErrNotFound = errors.New("graph not found")

// Repository owns the persisted graphs.
//
// The whole collection is stored as a single JSON array under one key of a
// kv.Store, and every write rewrites it entirely. The sample graph is merged
// in on reads but never written.
//
// There is no locking: two repositories on the same store overwrite each
// other, the last write wins.
type Repository struct {
	store  kv.Store
	key    string
	ids    IDGenerator
	logger *zap.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithIDGenerator sets the id source, a ClockIDs by default.
func WithIDGenerator(ids IDGenerator) Option { return func(r *Repository) { r.ids = ids } }

// WithLogger sets the logger, a no-op logger by default.
func WithLogger(l *zap.Logger) Option { return func(r *Repository) { r.logger = l } }

// WithKey sets the store key, DefaultKey by default.
func WithKey(key string) Option { return func(r *Repository) { r.key = key } }

// NewRepository returns a Repository persisting into store.
func NewRepository(store kv.Store, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		key:    DefaultKey,
		ids:    &ClockIDs{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// decodeGraphs parses the stored payload.
func decodeGraphs(data []byte) ([]Graph, error) {
	var graphs []Graph
	if err := json.Unmarshal(data, &graphs); err != nil {
		return nil, err
	}
	return graphs, nil
}

// load reads the persisted graphs.
//
// A missing key is an empty collection. So is a payload that cannot be
// parsed: it is reported in the log, never to the caller, and the next write
// replaces it.
func (r *Repository) load(ctx context.Context) ([]Graph, error) {
	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read graphs from %q: %w", r.key, err)
	}
	graphs, err := decodeGraphs(data)
	if err != nil {
		r.logger.Warn("stored graphs are unreadable, using an empty collection",
			zap.String("key", r.key), zap.Int("bytes", len(data)), zap.Error(err))
		return nil, nil
	}
	return graphs, nil
}

// save rewrites the whole persisted collection.
func (r *Repository) save(ctx context.Context, graphs []Graph) error {
	if graphs == nil {
		graphs = []Graph{}
	}
	data, err := json.Marshal(graphs)
	if err != nil {
		return fmt.Errorf("cannot encode graphs: %w", err)
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return fmt.Errorf("cannot write graphs to %q: %w", r.key, err)
	}
	r.logger.Debug("graphs saved", zap.String("key", r.key), zap.Int("count", len(graphs)))
	return nil
}

// List returns the sample graph followed by the persisted graphs in their
// stored order.
func (r *Repository) List(ctx context.Context) ([]Graph, error) {
	graphs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	return append([]Graph{Seed()}, graphs...), nil
}

// Persisted returns the persisted graphs only.
func (r *Repository) Persisted(ctx context.Context) ([]Graph, error) {
	graphs, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if graphs == nil {
		graphs = []Graph{}
	}
	return graphs, nil
}

// Get returns the graph with the given id, looking into the persisted graphs
// first then the sample graph.
func (r *Repository) Get(ctx context.Context, id int64) (Graph, error) {
	graphs, err := r.load(ctx)
	if err != nil {
		return Graph{}, err
	}
	if i := index(graphs, id); i >= 0 {
		return graphs[i], nil
	}
	if IsSeed(id) {
		return Seed(), nil
	}
	return Graph{}, fmt.Errorf("graph %d: %w", id, ErrNotFound)
}

// Create stores d as a new graph with a fresh id and returns it.
//
// d is not validated, callers use Validate first.
func (r *Repository) Create(ctx context.Context, d Draft) (Graph, error) {
	graphs, err := r.load(ctx)
	if err != nil {
		return Graph{}, err
	}
	g := Graph{
		ID:          r.nextID(graphs),
		Title:       d.Title,
		Description: d.Description,
		Rows:        slices.Clone(d.Rows),
	}
	if err := r.save(ctx, append(graphs, g)); err != nil {
		return Graph{}, err
	}
	r.logger.Info("graph created", zap.Int64("id", g.ID), zap.String("title", g.Title))
	return g.Clone(), nil
}

// nextID draws ids until one is free.
func (r *Repository) nextID(graphs []Graph) int64 {
	for {
		id := r.ids.NextID()
		if !IsSeed(id) && index(graphs, id) < 0 {
			return id
		}
		r.logger.Debug("id already in use, drawing another", zap.Int64("id", id))
	}
}

// Update replaces the content of the graph id with d, all fields at once.
//
// The sample graph cannot be updated: like any id absent from the store it
// fails with ErrNotFound.
func (r *Repository) Update(ctx context.Context, id int64, d Draft) (Graph, error) {
	if IsSeed(id) {
		return Graph{}, fmt.Errorf("graph %d is the sample graph: %w", id, ErrNotFound)
	}
	graphs, err := r.load(ctx)
	if err != nil {
		return Graph{}, err
	}
	i := index(graphs, id)
	if i < 0 {
		return Graph{}, fmt.Errorf("graph %d: %w", id, ErrNotFound)
	}
	graphs[i] = Graph{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		Rows:        slices.Clone(d.Rows),
	}
	if err := r.save(ctx, graphs); err != nil {
		return Graph{}, err
	}
	r.logger.Info("graph updated", zap.Int64("id", id))
	return graphs[i].Clone(), nil
}

// Remove deletes the graph id. Removing an absent id, or the sample graph,
// changes nothing and is not an error.
func (r *Repository) Remove(ctx context.Context, id int64) error {
	graphs, err := r.load(ctx)
	if err != nil {
		return err
	}
	kept := slices.DeleteFunc(graphs, func(g Graph) bool { return g.ID == id })
	if err := r.save(ctx, kept); err != nil {
		return err
	}
	r.logger.Info("graph removed", zap.Int64("id", id))
	return nil
}

func index(graphs []Graph, id int64) int {
	return slices.IndexFunc(graphs, func(g Graph) bool { return g.ID == id })
}
