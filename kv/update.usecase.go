package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/kernel/app"
	"github.com/go-arrower/kernel/entity"
	"github.com/go-arrower/kernel/repository"
)

var ErrUpdateFailed = errors.New("update key value failed")

// NewUpdateCommandHandler replaces the value of an existing key.
// If the key does not exist, it returns an error wrapping repository.ErrNotFound.
func NewUpdateCommandHandler(repo repository.Repository[entity.KeyValue]) app.Command[UpdateCommand] {
	return app.NewValidatedCommand[UpdateCommand](nil, &updateCommandHandler{repo: repo})
}

type updateCommandHandler struct {
	repo repository.Repository[entity.KeyValue]
}

type UpdateCommand struct {
	Key   string `json:"key"   validate:"required"`
	Value any    `json:"value"`
}

func (cmd UpdateCommand) TargetKey() string { return cmd.Key }

func (h *updateCommandHandler) H(ctx context.Context, cmd UpdateCommand) error {
	_, err := h.repo.Update(ctx, entity.NewKeyValue(cmd.Key, cmd.Value))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUpdateFailed, err)
	}

	return nil
}
