package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errStoreFailed = errors.New("store failed")

var ctx = context.Background()

type testStore struct {
	load  func(filename string, data any) error
	store func(filename string, data any) error
}

func (s testStore) Load(filename string, data any) error {
	return s.load(filename, data)
}

func (s testStore) Store(filename string, data any) error {
	return s.store(filename, data)
}

func testStoreLoadFails() testStore {
	return testStore{
		load: func(_ string, _ any) error {
			return errStoreFailed
		},
		store: func(_ string, _ any) error {
			return nil
		},
	}
}

func testStoreStoreFails() testStore {
	return testStore{
		load: func(_ string, _ any) error {
			return nil
		},
		store: func(_ string, _ any) error {
			return errStoreFailed
		},
	}
}

func testStoreSuccess(t *testing.T, wantFilename string) testStore {
	t.Helper()

	return testStore{
		load: func(filename string, data any) error {
			assert.Equal(t, wantFilename, filename)
			assert.NotNil(t, data)

			return nil
		},
		store: func(filename string, data any) error {
			assert.Equal(t, wantFilename, filename)
			assert.NotNil(t, data)

			return nil
		},
	}
}
