package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-arrower/kernel/app"
	"github.com/go-arrower/kernel/entity"
	"github.com/go-arrower/kernel/repository"
)

var ErrInsertFailed = errors.New("insert key value failed")

// NewInsertCommandHandler adds a new key value.
// If the key exists already, it returns an error wrapping repository.ErrAlreadyExists.
func NewInsertCommandHandler(repo repository.Repository[entity.KeyValue]) app.Command[InsertCommand] {
	return app.NewValidatedCommand[InsertCommand](nil, &insertCommandHandler{repo: repo})
}

type insertCommandHandler struct {
	repo repository.Repository[entity.KeyValue]
}

type InsertCommand struct {
	Key   string `json:"key"   validate:"required"`
	Value any    `json:"value"`
}

func (cmd InsertCommand) TargetKey() string { return cmd.Key }

func (h *insertCommandHandler) H(ctx context.Context, cmd InsertCommand) error {
	_, err := h.repo.Insert(ctx, entity.NewKeyValue(cmd.Key, cmd.Value))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInsertFailed, err)
	}

	return nil
}
