package kv_test

import (
	"context"
	"errors"

	"github.com/go-arrower/kernel/entity"
	"github.com/go-arrower/kernel/repository"
)

var (
	ctx        = context.Background()
	errStorage = errors.New("storage unavailable")
)

// failingRepository fails every call with errStorage.
type failingRepository struct{}

var _ repository.Repository[entity.KeyValue] = failingRepository{}

func (failingRepository) GetOne(context.Context, string) (entity.KeyValue, bool, error) {
	return entity.KeyValue{}, false, errStorage
}

func (failingRepository) GetAll(context.Context, repository.Page) ([]entity.KeyValue, error) {
	return nil, errStorage
}

func (failingRepository) Insert(context.Context, entity.KeyValue) (entity.KeyValue, error) {
	return entity.KeyValue{}, errStorage
}

func (failingRepository) Update(context.Context, entity.KeyValue) (entity.KeyValue, error) {
	return entity.KeyValue{}, errStorage
}

func (failingRepository) Delete(context.Context, string) (bool, error) {
	return false, errStorage
}
