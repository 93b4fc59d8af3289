package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/kernel/app"
	"github.com/go-arrower/kernel/entity"
	"github.com/go-arrower/kernel/repository"
)

var ErrGetFailed = errors.New("get key value failed")

// NewGetQueryHandler returns the key value identified by GetQuery.Key.
// If there is none, it returns an error wrapping repository.ErrNotFound.
func NewGetQueryHandler(repo repository.ViewRepository[entity.KeyValue]) app.Query[GetQuery, app.Output[entity.KeyValue]] {
	return app.NewValidatedQuery[GetQuery, app.Output[entity.KeyValue]](nil, &getQueryHandler{repo: repo})
}

type getQueryHandler struct {
	repo repository.ViewRepository[entity.KeyValue]
}

type GetQuery struct {
	Key string `validate:"required"`
}

func (query GetQuery) TargetKey() string { return query.Key }

func (h *getQueryHandler) H(ctx context.Context, query GetQuery) (app.Output[entity.KeyValue], error) {
	e, ok, err := h.repo.GetOne(ctx, query.Key)
	if err != nil {
		return app.Output[entity.KeyValue]{}, fmt.Errorf("%w: %w", ErrGetFailed, err)
	}

	if !ok {
		return app.Output[entity.KeyValue]{}, fmt.Errorf("%w: %w: %s", ErrGetFailed, repository.ErrNotFound, query.Key)
	}

	return app.NewOutput(e), nil
}
