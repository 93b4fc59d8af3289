package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	berrors "go.etcd.io/bbolt/errors"

	"github.com/go-arrower/kernel"
	"github.com/go-arrower/kernel/repository"
)

var ErrUnknownDriver = errors.New("unknown store driver")

var noopCloser = closerFunc(func() error { return nil })

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// boltFileName is the database file inside Store.Path.
const boltFileName = "kernel.db"

// NewStore returns the repository.Store configured by conf.
// Close the returned io.Closer, once the store is no longer used.
//
// The bolt database is locked by one process at a time. If it is locked,
// opening is retried until ctx is done or the retries are used up.
func NewStore(ctx context.Context, conf kernel.Store) (repository.Store, io.Closer, error) {
	switch conf.Driver {
	case kernel.MemoryDriver, "":
		return nil, noopCloser, nil
	case kernel.JSONDriver:
		if err := os.MkdirAll(conf.Path, os.ModePerm); err != nil {
			return nil, nil, fmt.Errorf("could not create store path: %w", err)
		}

		return repository.NewJSONStore(conf.Path), noopCloser, nil
	case kernel.BoltDriver:
		if err := os.MkdirAll(conf.Path, os.ModePerm); err != nil {
			return nil, nil, fmt.Errorf("could not create store path: %w", err)
		}

		const maxElapsedTime = 10 * time.Second

		policy := backoff.NewExponentialBackOff(backoff.WithMaxElapsedTime(maxElapsedTime))

		store, err := backoff.RetryWithData(func() (*repository.BoltStore, error) {
			store, err := repository.NewBoltStore(filepath.Join(conf.Path, boltFileName), 0o600)
			if err != nil && !errors.Is(err, berrors.ErrTimeout) {
				return nil, backoff.Permanent(err)
			}

			return store, err
		}, backoff.WithContext(policy, ctx))
		if err != nil {
			return nil, nil, fmt.Errorf("could not open store: %w", err)
		}

		return store, store, nil
	}

	return nil, nil, fmt.Errorf("%w: %s", ErrUnknownDriver, conf.Driver)
}
