package alog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/go-arrower/kernel/entity"
)

// KeyValueInserter is the part of a repository the RepositoryHandler writes to.
// Each repository.Repository of entity.KeyValue satisfies it.
type KeyValueInserter interface {
	Insert(ctx context.Context, e entity.KeyValue) (entity.KeyValue, error)
}

// RepositoryHandlerOptions configures the RepositoryHandler.
type RepositoryHandlerOptions struct {
	// Name is reported as entity.LogRecord.Name. Groups are appended to it, separated by a dot.
	// Defaults to "kernel".
	Name string
}

// NewRepositoryHandler returns a slog.Handler that inserts each record as entity.LogRecord into repo,
// identified by a ULID, so the keys sort in the order the records were created.
//
// Use it in low traffic situations, to inspect logs through the same repository contract
// as any other data. Attributes of the record are not kept.
func NewRepositoryHandler(repo KeyValueInserter, opt *RepositoryHandlerOptions) *RepositoryHandler {
	name := "kernel"
	if opt != nil && opt.Name != "" {
		name = opt.Name
	}

	return &RepositoryHandler{repo: repo, name: name}
}

// RepositoryHandler is a slog.Handler writing to a repository.
type RepositoryHandler struct {
	repo KeyValueInserter
	name string
}

var _ slog.Handler = (*RepositoryHandler)(nil)

// Enabled is always true, the level is controlled by the logger's level instead.
func (h *RepositoryHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *RepositoryHandler) Handle(ctx context.Context, record slog.Record) error {
	rec := entity.LogRecord{
		Msg:     record.Message,
		Level:   EntityLevel(record.Level),
		Name:    h.name,
		Created: record.Time,
	}

	_, err := h.repo.Insert(ctx, entity.NewKeyValue(ulid.Make().String(), rec))
	if err != nil {
		return fmt.Errorf("could not save log record: %w", err)
	}

	return nil
}

func (h *RepositoryHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *RepositoryHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return &RepositoryHandler{repo: h.repo, name: strings.Join([]string{h.name, name}, ".")}
}
