// Package registry deduplicates named entities by normalized key during an
// import run.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"comicsdb/pkg/models"
	"comicsdb/pkg/normalize"
)

// ErrBlankName is returned for names whose key is empty or all spaces.
var ErrBlankName = errors.New("name has an empty key")

// Store is the persistence the registry needs.
type Store interface {
	FindNamed(ctx context.Context, kind models.Kind, key string) (*models.NamedEntity, error)
	CreateNamed(ctx context.Context, e *models.NamedEntity) error
}

// Registry hands out one entity per (kind, key). Calls are serialized, so
// two callers racing on the same key never both create it.
type Registry struct {
	store Store
	log   *zap.Logger

	mu    sync.Mutex
	cache map[models.Kind]map[string]models.NamedEntity
}

func New(store Store, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		store: store,
		log:   log,
		cache: make(map[models.Kind]map[string]models.NamedEntity),
	}
}

// GetOrCreate returns the entity of kind whose key matches name, creating it
// with attrs when none exists. Attributes of an existing entity are left as
// they are. The returned entity is identity only: Attrs is always nil,
// whether it came from the cache, the store or a fresh insert.
func (r *Registry) GetOrCreate(ctx context.Context, kind models.Kind, name string, attrs models.Attrs) (models.NamedEntity, bool, error) {
	key := normalize.Key(name)
	if strings.TrimSpace(key) == "" {
		return models.NamedEntity{}, false, fmt.Errorf("%s %q: %w", kind, name, ErrBlankName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.cached(kind, key); ok {
		return e, false, nil
	}

	found, err := r.store.FindNamed(ctx, kind, key)
	if err != nil {
		return models.NamedEntity{}, false, err
	}
	if found != nil {
		r.remember(*found)
		return *found, false, nil
	}

	e, err := r.create(ctx, kind, name, key, attrs)
	if err != nil {
		return models.NamedEntity{}, false, err
	}
	return e, true, nil
}

// Register always creates a new entity, for rows that carry their own
// identity. The key is cached only when it was not seen before, so later
// GetOrCreate calls keep resolving to the first entity.
func (r *Registry) Register(ctx context.Context, kind models.Kind, name string, attrs models.Attrs) (models.NamedEntity, error) {
	key := normalize.Key(name)
	if strings.TrimSpace(key) == "" {
		return models.NamedEntity{}, fmt.Errorf("%s %q: %w", kind, name, ErrBlankName)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cached(kind, key); !ok {
		found, err := r.store.FindNamed(ctx, kind, key)
		if err != nil {
			return models.NamedEntity{}, err
		}
		if found != nil {
			r.remember(*found)
		}
	}
	return r.create(ctx, kind, name, key, attrs)
}

// create inserts and caches the entity unless the key is already cached.
// Callers hold mu.
func (r *Registry) create(ctx context.Context, kind models.Kind, name, key string, attrs models.Attrs) (models.NamedEntity, error) {
	e := models.NamedEntity{Kind: kind, Name: name, Key: key, Attrs: attrs}
	if err := r.store.CreateNamed(ctx, &e); err != nil {
		return models.NamedEntity{}, err
	}
	e.Attrs = nil
	if _, ok := r.cached(kind, key); !ok {
		r.remember(e)
	}
	r.log.Debug("created entity",
		zap.String("kind", string(kind)),
		zap.Int64("id", e.ID),
		zap.String("name", name),
	)
	return e, nil
}

func (r *Registry) cached(kind models.Kind, key string) (models.NamedEntity, bool) {
	e, ok := r.cache[kind][key]
	return e, ok
}

func (r *Registry) remember(e models.NamedEntity) {
	e.Attrs = nil
	byKey, ok := r.cache[e.Kind]
	if !ok {
		byKey = make(map[string]models.NamedEntity)
		r.cache[e.Kind] = byKey
	}
	byKey[e.Key] = e
}
