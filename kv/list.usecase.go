package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/kernel/app"
	"github.com/go-arrower/kernel/entity"
	"github.com/go-arrower/kernel/repository"
)

var ErrListFailed = errors.New("list key values failed")

// NewListQueryHandler returns the key values of the repository.
// The repositories ignore a page, so the use case applies it.
func NewListQueryHandler(repo repository.ViewRepository[entity.KeyValue]) app.Query[ListQuery, app.Output[entity.KeyValue]] {
	return app.NewValidatedQuery[ListQuery, app.Output[entity.KeyValue]](nil, &listQueryHandler{repo: repo})
}

type listQueryHandler struct {
	repo repository.ViewRepository[entity.KeyValue]
}

// ListQuery returns all key values, if Limit is zero.
type ListQuery struct {
	Limit  int `validate:"gte=0"`
	Offset int `validate:"gte=0"`
}

func (h *listQueryHandler) H(ctx context.Context, query ListQuery) (app.Output[entity.KeyValue], error) {
	page := repository.Page{Limit: query.Limit, Offset: query.Offset}

	all, err := h.repo.GetAll(ctx, page)
	if err != nil {
		return app.Output[entity.KeyValue]{}, fmt.Errorf("%w: %w", ErrListFailed, err)
	}

	return app.NewOutput(repository.Paginate(all, page)...), nil
}
