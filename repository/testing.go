package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/kernel/entity"
)

// TestSuite runs the behaviour every Repository of entity.KeyValue has to fulfil.
// newRepo has to return a new and independent repository seeded with data, each time it is called.
func TestSuite(
	t *testing.T,
	newRepo func(t *testing.T, data map[string]any) Repository[entity.KeyValue],
) { //nolint:tparallel // t.Parallel can only be called ones! The caller decides
	t.Helper()

	if newRepo == nil {
		t.Fatal("repository constructor is nil")
	}

	ctx := context.Background()

	t.Run("new", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t, nil)
		assert.NotNil(t, repo)

		all, err := repo.GetAll(ctx, Page{})
		assert.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("GetOne", func(t *testing.T) {
		t.Parallel()

		t.Run("missing key returns nothing", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, map[string]any{"key": "val"})

			_, ok, err := repo.GetOne(ctx, gofakeit.UUID())
			assert.NoError(t, err)
			assert.False(t, ok)
		})

		t.Run("existing key", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, map[string]any{"key": "val"})

			e, ok, err := repo.GetOne(ctx, "key")
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, entity.NewKeyValue("key", "val"), e)
		})

		t.Run("same as FindOne", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, map[string]any{"a": "1", "b": "2", "c": "3"})

			for _, key := range []string{"a", "b", "c", "d"} {
				got, gotOK, err := repo.GetOne(ctx, key)
				assert.NoError(t, err)

				want, wantOK, err := FindOne[entity.KeyValue](ctx, repo, key)
				assert.NoError(t, err)

				assert.Equal(t, wantOK, gotOK)
				assert.Equal(t, want, got)
			}
		})
	})

	t.Run("GetAll", func(t *testing.T) {
		t.Parallel()

		t.Run("seeded data", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, map[string]any{"key": "val"})

			all, err := repo.GetAll(ctx, Page{})
			assert.NoError(t, err)
			assert.Equal(t, []entity.KeyValue{entity.NewKeyValue("key", "val")}, all)
		})

		t.Run("page is ignored", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, map[string]any{"a": "1", "b": "2", "c": "3"})

			all, err := repo.GetAll(ctx, Page{Limit: 1, Offset: 1})
			assert.NoError(t, err)
			assert.Len(t, all, 3)
		})

		t.Run("insertion order", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, nil)

			keys := []string{"c", "a", "b"}
			for _, k := range keys {
				_, err := repo.Insert(ctx, entity.NewKeyValue(k, k))
				require.NoError(t, err)
			}

			all, err := repo.GetAll(ctx, Page{})
			assert.NoError(t, err)
			require.Len(t, all, len(keys))

			for i, k := range keys {
				assert.Equal(t, k, all[i].ID)
			}
		})
	})

	t.Run("Insert", func(t *testing.T) {
		t.Parallel()

		t.Run("insert into empty", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, nil)
			kv := entity.NewKeyValue(gofakeit.UUID(), gofakeit.Name())

			got, err := repo.Insert(ctx, kv)
			assert.NoError(t, err)
			assert.Equal(t, kv, got)

			e, ok, err := repo.GetOne(ctx, kv.ID)
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, kv.Value, e.Value)

			all, err := repo.GetAll(ctx, Page{})
			assert.NoError(t, err)
			assert.Len(t, all, 1)
		})

		t.Run("insert same key again", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, map[string]any{"key": "original"})

			_, err := repo.Insert(ctx, entity.NewKeyValue("key", "other"))
			assert.ErrorIs(t, err, ErrAlreadyExists)

			e, ok, err := repo.GetOne(ctx, "key")
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "original", e.Value)
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Parallel()

		t.Run("update", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, map[string]any{"key": "val"})
			kv := entity.NewKeyValue("key", gofakeit.Name())

			got, err := repo.Update(ctx, kv)
			assert.NoError(t, err)
			assert.Equal(t, kv, got)

			e, ok, err := repo.GetOne(ctx, "key")
			assert.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, kv.Value, e.Value)
		})

		t.Run("does not exist", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, map[string]any{"key": "val"})

			_, err := repo.Update(ctx, entity.NewKeyValue("missing", "val"))
			assert.ErrorIs(t, err, ErrNotFound)

			all, err := repo.GetAll(ctx, Page{})
			assert.NoError(t, err)
			assert.Equal(t, []entity.KeyValue{entity.NewKeyValue("key", "val")}, all)
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Parallel()

		t.Run("existing key", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, map[string]any{"key": "val", "other": "val"})

			deleted, err := repo.Delete(ctx, "key")
			assert.NoError(t, err)
			assert.True(t, deleted)

			all, err := repo.GetAll(ctx, Page{})
			assert.NoError(t, err)
			assert.Len(t, all, 1)

			_, ok, _ := repo.GetOne(ctx, "key")
			assert.False(t, ok)
		})

		t.Run("missing key", func(t *testing.T) {
			t.Parallel()

			repo := newRepo(t, map[string]any{"key": "val"})

			deleted, err := repo.Delete(ctx, "missing")
			assert.NoError(t, err)
			assert.False(t, deleted)

			all, err := repo.GetAll(ctx, Page{})
			assert.NoError(t, err)
			assert.Len(t, all, 1)
		})
	})

	t.Run("lifecycle of a key", func(t *testing.T) {
		t.Parallel()

		repo := newRepo(t, map[string]any{})

		_, err := repo.Insert(ctx, entity.NewKeyValue("a", 1))
		require.NoError(t, err)
		assertValue(t, repo, "a", 1)
		assertLength(t, repo, 1)

		_, err = repo.Insert(ctx, entity.NewKeyValue("a", 2))
		assert.ErrorIs(t, err, ErrAlreadyExists)
		assertValue(t, repo, "a", 1)

		_, err = repo.Update(ctx, entity.NewKeyValue("a", 2))
		require.NoError(t, err)
		assertValue(t, repo, "a", 2)

		deleted, err := repo.Delete(ctx, "a")
		require.NoError(t, err)
		assert.True(t, deleted)
		assertLength(t, repo, 0)

		deleted, err = repo.Delete(ctx, "a")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func assertValue(t *testing.T, repo ViewRepository[entity.KeyValue], key string, want any) {
	t.Helper()

	e, ok, err := repo.GetOne(context.Background(), key)
	assert.NoError(t, err)
	assert.True(t, ok, "key %s not found", key)
	assert.Equal(t, want, e.Value)
}

func assertLength(t *testing.T, repo ViewRepository[entity.KeyValue], want int) {
	t.Helper()

	all, err := repo.GetAll(context.Background(), Page{})
	assert.NoError(t, err)
	assert.Len(t, all, want)
}

// Test returns a MemoryRepository tuned for unit testing.
// It exposes repository specific assertions for the use in tests.
// The interface follows stretchr/testify as close as possible.
func Test(t *testing.T, data map[string]any, opts ...Option) *TestRepository {
	if t == nil {
		panic("t is nil")
	}

	repo := NewMemoryRepository(data, opts...)

	return &TestRepository{
		MemoryRepository: repo,
		TestAssertions:   TestAssert(t, repo),
	}
}

// TestRepository is a MemoryRepository with additional assertions.
type TestRepository struct {
	*MemoryRepository
	*TestAssertions
}

// TestAssert returns assertions for any ViewRepository of entity.KeyValue.
func TestAssert(t *testing.T, repo ViewRepository[entity.KeyValue]) *TestAssertions {
	if t == nil {
		panic("t is nil")
	}

	return &TestAssertions{t: t, repo: repo}
}

// TestAssertions are assertions that work on a repository,
// to make testing easier and more convenient.
//
// Every assert func returns a bool indicating whether the assertion was successful or not,
// this is useful for if you want to go on making further assertions under certain conditions.
type TestAssertions struct {
	t    *testing.T
	repo ViewRepository[entity.KeyValue]
}

// Empty asserts that the repository has no entities.
func (a *TestAssertions) Empty(msgAndArgs ...any) bool {
	a.t.Helper()

	n := a.count()
	if n != 0 {
		return assert.Fail(a.t, fmt.Sprintf("repository is not empty, it has %d entities", n), msgAndArgs...)
	}

	return true
}

// NotEmpty asserts that the repository has at least one entity.
func (a *TestAssertions) NotEmpty(msgAndArgs ...any) bool {
	a.t.Helper()

	if a.count() == 0 {
		return assert.Fail(a.t, "repository is empty, should not be", msgAndArgs...)
	}

	return true
}

// Total asserts that the repository has exactly total number of entities.
func (a *TestAssertions) Total(total int, msgAndArgs ...any) bool {
	a.t.Helper()

	n := a.count()
	if n != total {
		return assert.Fail(a.t, fmt.Sprintf("repository does not have %d entities, it has: %d", total, n), msgAndArgs...)
	}

	return true
}

// Contains asserts that the repository has an entity identified by key.
func (a *TestAssertions) Contains(key string, msgAndArgs ...any) bool {
	a.t.Helper()

	_, ok, err := a.repo.GetOne(context.Background(), key)
	if err != nil || !ok {
		return assert.Fail(a.t, "repository does not contain: "+key, msgAndArgs...)
	}

	return true
}

// NotContains asserts that the repository has no entity identified by key.
func (a *TestAssertions) NotContains(key string, msgAndArgs ...any) bool {
	a.t.Helper()

	_, ok, err := a.repo.GetOne(context.Background(), key)
	if err != nil || ok {
		return assert.Fail(a.t, "repository contains: "+key+", should not", msgAndArgs...)
	}

	return true
}

func (a *TestAssertions) count() int {
	all, err := a.repo.GetAll(context.Background(), Page{})
	if err != nil {
		a.t.Errorf("could not read repository: %v", err)
		return 0
	}

	return len(all)
}
