package repository

import (
	"context"
	"os"
	"runtime"
	"strings"

	"github.com/go-arrower/kernel/entity"
)

// EnvOption configures an EnvRepository.
type EnvOption func(repo *EnvRepository)

// WithEnvironment makes the repository read from env instead of the process environment.
func WithEnvironment(env map[string]string) EnvOption {
	return func(repo *EnvRepository) {
		repo.lookup = func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		}
		repo.environ = func() []string {
			all := make([]string, 0, len(env))
			for k, v := range env {
				all = append(all, k+"="+v)
			}

			return all
		}
	}
}

// WithCaseInsensitiveKeys overwrites if keys are upper-cased before they are looked up.
// By default, this is only the case on platforms with case-insensitive environment variables (windows).
func WithCaseInsensitiveKeys(insensitive bool) EnvOption {
	return func(repo *EnvRepository) {
		repo.caseInsensitive = insensitive
	}
}

var _ ViewRepository[entity.KeyValue] = (*EnvRepository)(nil)

func NewEnvRepository(opts ...EnvOption) *EnvRepository {
	repo := &EnvRepository{
		lookup:          os.LookupEnv,
		environ:         os.Environ,
		caseInsensitive: runtime.GOOS == "windows",
	}

	for _, opt := range opts {
		opt(repo)
	}

	return repo
}

// EnvRepository is a read only repository of the environment variables.
//
// It reads the environment without any synchronisation. If the environment is changed concurrently,
// GetOne and GetAll can observe different states of it.
type EnvRepository struct {
	lookup  func(key string) (string, bool)
	environ func() []string

	caseInsensitive bool
}

func (repo *EnvRepository) GetOne(_ context.Context, key string) (entity.KeyValue, bool, error) {
	if repo.caseInsensitive {
		key = strings.ToUpper(key)
	}

	val, ok := repo.lookup(key)
	if !ok {
		return entity.KeyValue{}, false, nil
	}

	return entity.NewKeyValue(key, val), true, nil
}

// GetAll returns a snapshot of all environment variables. The page is ignored.
func (repo *EnvRepository) GetAll(_ context.Context, _ Page) ([]entity.KeyValue, error) {
	env := repo.environ()
	result := make([]entity.KeyValue, 0, len(env))

	for _, kv := range env {
		k, v, _ := strings.Cut(kv, "=")
		if k == "" { // e.g. windows' per drive variables like =C:=C:\
			continue
		}

		result = append(result, entity.NewKeyValue(k, v))
	}

	return result, nil
}
