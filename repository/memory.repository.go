package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/go-arrower/kernel/alog"
	"github.com/go-arrower/kernel/entity"
)

// Option configures a MemoryRepository.
type Option func(config *repoConfig)

type repoConfig struct {
	store    Store
	filename string
	logger   *slog.Logger
}

const defaultFileName = "KeyValue.json"

// WithStore sets a Store used to persist the MemoryRepository.
//
// There are no transactions or any consistency guarantees across processes!
// If the store fails, the change is rolled back in memory and the operation returns an error.
func WithStore(store Store) Option {
	return func(config *repoConfig) {
		config.store = store
	}
}

// WithStoreFilename overwrites the file name a Store should use to persist the repository.
// Use it, if more than one repository shares the same Store.
func WithStoreFilename(name string) Option {
	return func(config *repoConfig) {
		config.filename = name
	}
}

// WithLogger sets the logger all changes to the repository are reported to,
// at the level alog.LevelKernelDebug.
func WithLogger(logger *slog.Logger) Option {
	return func(config *repoConfig) {
		config.logger = logger
	}
}

var _ Repository[entity.KeyValue] = (*MemoryRepository)(nil)

// NewMemoryRepository returns a Repository backed by a map.
// The repository owns a copy of data, so changes of the caller to data are not reflected.
//
// If a Store is given via WithStore, the persisted data is loaded first and data only seeds the
// keys that are not persisted yet. If loading fails for any other reason than the data not
// existing yet, NewMemoryRepository panics.
func NewMemoryRepository(data map[string]any, opts ...Option) *MemoryRepository {
	repo := &MemoryRepository{
		Mutex: &sync.Mutex{},
		data:  make(map[string]any, len(data)),
		keys:  make([]string, 0, len(data)),
		repoConfig: repoConfig{
			store:    noopStore{},
			filename: defaultFileName,
			logger:   alog.NewNoop(),
		},
	}

	for _, opt := range opts {
		opt(&repo.repoConfig)
	}

	persisted := map[string]any{}

	err := repo.store.Load(repo.filename, &persisted)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(fmt.Errorf("%w: could not load data for memory repository from store: %w", errLoadFailed, err))
	}

	// the order of a decoded map is lost, sort it to be deterministic
	for _, k := range slices.Sorted(maps.Keys(persisted)) {
		repo.set(k, persisted[k])
	}

	// the order of a map given by the caller is unknown as well
	for _, k := range slices.Sorted(maps.Keys(data)) {
		if _, exists := repo.data[k]; !exists {
			repo.set(k, data[k])
		}
	}

	return repo
}

// MemoryRepository implements Repository for entity.KeyValue over a map.
// GetAll returns the entities in the order they were inserted.
//
// Each method is safe to be called concurrently, but a sequence of calls is not atomic.
type MemoryRepository struct {
	// Mutex is embedded, so that repositories who extend MemoryRepository can lock the same mutex as other methods.
	*sync.Mutex

	data map[string]any
	// keys keeps the insertion order of data.
	keys []string

	repoConfig
}

func (repo *MemoryRepository) GetOne(_ context.Context, key string) (entity.KeyValue, bool, error) {
	repo.Lock()
	defer repo.Unlock()

	v, ok := repo.data[key]
	if !ok {
		return entity.KeyValue{}, false, nil
	}

	return entity.NewKeyValue(key, v), true, nil
}

// GetAll returns all entities. The page is ignored.
func (repo *MemoryRepository) GetAll(_ context.Context, _ Page) ([]entity.KeyValue, error) {
	repo.Lock()
	defer repo.Unlock()

	result := make([]entity.KeyValue, 0, len(repo.keys))

	for _, k := range repo.keys {
		result = append(result, entity.NewKeyValue(k, repo.data[k]))
	}

	return result, nil
}

func (repo *MemoryRepository) Insert(ctx context.Context, e entity.KeyValue) (entity.KeyValue, error) {
	repo.Lock()
	defer repo.Unlock()

	if _, found := repo.data[e.ID]; found {
		return entity.KeyValue{}, fmt.Errorf("%w: %s", ErrAlreadyExists, e.ID)
	}

	repo.set(e.ID, e.Value)

	err := repo.store.Store(repo.filename, repo.data)
	if err != nil {
		repo.unset(e.ID)
		return entity.KeyValue{}, fmt.Errorf("%w: %w", errInsertFailed, err)
	}

	repo.logger.Log(ctx, alog.LevelKernelDebug, "inserted entity", slog.String("key", e.ID))

	return e, nil
}

func (repo *MemoryRepository) Update(ctx context.Context, e entity.KeyValue) (entity.KeyValue, error) {
	repo.Lock()
	defer repo.Unlock()

	old, found := repo.data[e.ID]
	if !found {
		return entity.KeyValue{}, fmt.Errorf("%w: %s", ErrNotFound, e.ID)
	}

	repo.data[e.ID] = e.Value

	err := repo.store.Store(repo.filename, repo.data)
	if err != nil {
		repo.data[e.ID] = old
		return entity.KeyValue{}, fmt.Errorf("%w: %w", errUpdateFailed, err)
	}

	repo.logger.Log(ctx, alog.LevelKernelDebug, "updated entity", slog.String("key", e.ID))

	return e, nil
}

func (repo *MemoryRepository) Delete(ctx context.Context, key string) (bool, error) {
	repo.Lock()
	defer repo.Unlock()

	old, found := repo.data[key]
	if !found {
		return false, nil
	}

	pos := slices.Index(repo.keys, key)
	repo.unset(key)

	err := repo.store.Store(repo.filename, repo.data)
	if err != nil {
		repo.data[key] = old
		repo.keys = slices.Insert(repo.keys, pos, key)

		return false, fmt.Errorf("%w: %w", errDeleteFailed, err)
	}

	repo.logger.Log(ctx, alog.LevelKernelDebug, "deleted entity", slog.String("key", key))

	return true, nil
}

// Count returns the number of entities in the repository.
func (repo *MemoryRepository) Count(_ context.Context) (int, error) {
	repo.Lock()
	defer repo.Unlock()

	return len(repo.data), nil
}

func (repo *MemoryRepository) set(key string, value any) {
	if _, exists := repo.data[key]; !exists {
		repo.keys = append(repo.keys, key)
	}

	repo.data[key] = value
}

func (repo *MemoryRepository) unset(key string) {
	delete(repo.data, key)
	repo.keys = slices.DeleteFunc(repo.keys, func(k string) bool { return k == key })
}
