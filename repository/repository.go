package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/kernel/entity"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrStorage       = errors.New("storage error")
)

// Page limits the entities returned by GetAll.
// A zero Limit means no limit.
//
// The repositories of this package accept a Page but do not apply it,
// they always return all entities. Use Paginate if you need a slice of the result.
type Page struct {
	Limit  int
	Offset int
}

// ViewRepository is the read only way of working with a backing store.
type ViewRepository[E entity.Entity] interface {
	// GetOne returns the entity identified by key. If there is none, ok is false.
	GetOne(ctx context.Context, key string) (e E, ok bool, err error)
	// GetAll returns all entities of the backing store.
	GetAll(ctx context.Context, page Page) ([]E, error)
}

// Repository is the way of working with a manageable backing store.
type Repository[E entity.Entity] interface {
	ViewRepository[E]

	// Insert adds the entity. It returns ErrAlreadyExists if the key is taken.
	Insert(ctx context.Context, e E) (E, error)
	// Update replaces the entity. It returns ErrNotFound if the key does not exist.
	Update(ctx context.Context, e E) (E, error)
	// Delete removes the entity identified by key and reports if anything was removed.
	// Deleting a key that does not exist is not an error.
	Delete(ctx context.Context, key string) (bool, error)
}

// FindOne returns the first entity of repo.GetAll that is identified by key.
// It is the reference behaviour every GetOne implementation has to be equivalent to,
// and can be used by a ViewRepository that has no faster way to look up a single entity.
func FindOne[E entity.Entity](ctx context.Context, repo ViewRepository[E], key string) (E, bool, error) { //nolint:ireturn,lll // valid use of generics
	all, err := repo.GetAll(ctx, Page{})
	if err != nil {
		return *new(E), false, fmt.Errorf("could not find %s: %w", key, err)
	}

	for _, e := range all {
		if e.Identity() == key {
			return e, true, nil
		}
	}

	return *new(E), false, nil
}

// Paginate applies page to entities.
func Paginate[E any](entities []E, page Page) []E {
	if page.Offset < 0 {
		page.Offset = 0
	}

	if page.Offset >= len(entities) {
		return []E{}
	}

	entities = entities[page.Offset:]

	if page.Limit > 0 && page.Limit < len(entities) {
		entities = entities[:page.Limit]
	}

	return entities
}

var (
	errInsertFailed = fmt.Errorf("%w: insert failed", ErrStorage)
	errUpdateFailed = fmt.Errorf("%w: update failed", ErrStorage)
	errDeleteFailed = fmt.Errorf("%w: delete failed", ErrStorage)
	errLoadFailed   = fmt.Errorf("%w: load failed", ErrStorage)
)
