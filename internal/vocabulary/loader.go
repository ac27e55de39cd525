package vocabulary

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

// LoadError reports a dataset that could not be read or parsed.
// It is fatal for the session and is shown to the user as is.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader builds stores from sources and keeps each one for the lifetime of the process,
// keyed by Source.Key. Failed loads are not remembered.
type Loader struct {
	stores *cache.Cache
	group  singleflight.Group
}

func NewLoader() *Loader {
	return &Loader{
		stores: cache.New(cache.NoExpiration, 0),
	}
}

func (l *Loader) Load(ctx context.Context, source Source) (*Store, error) {
	key := source.Key()
	if store, ok := l.stores.Get(key); ok {
		slog.Default().Debug("dataset cache hit", "source", key)
		return store.(*Store), nil
	}

	result, err, _ := l.group.Do(key, func() (interface{}, error) {
		if store, ok := l.stores.Get(key); ok {
			return store, nil
		}
		table, err := source.Load(ctx)
		if err != nil {
			return nil, &LoadError{Source: key, Err: err}
		}
		store := NewStore(NewEntries(table))
		l.stores.Set(key, store, cache.NoExpiration)
		slog.Default().Info("dataset loaded", "source", key, "entries", store.Len())
		return store, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Store), nil
}
