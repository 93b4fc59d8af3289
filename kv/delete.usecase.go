package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/kernel/app"
	"github.com/go-arrower/kernel/entity"
	"github.com/go-arrower/kernel/repository"
)

var ErrDeleteFailed = errors.New("delete key value failed")

// NewDeleteRequestHandler removes a key value.
// Deleting a key that does not exist is not an error, DeleteResult reports it.
func NewDeleteRequestHandler(repo repository.Repository[entity.KeyValue]) app.Request[DeleteCommand, DeleteResult] {
	return app.NewValidatedRequest[DeleteCommand, DeleteResult](nil, &deleteRequestHandler{repo: repo})
}

type deleteRequestHandler struct {
	repo repository.Repository[entity.KeyValue]
}

type (
	DeleteCommand struct {
		Key string `validate:"required"`
	}
	DeleteResult struct {
		Deleted bool `json:"deleted"`
	}
)

func (cmd DeleteCommand) TargetKey() string { return cmd.Key }

func (h *deleteRequestHandler) H(ctx context.Context, cmd DeleteCommand) (DeleteResult, error) {
	deleted, err := h.repo.Delete(ctx, cmd.Key)
	if err != nil {
		return DeleteResult{}, fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	return DeleteResult{Deleted: deleted}, nil
}
