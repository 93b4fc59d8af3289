// Package kv contains the use cases of working with key values.
// They are independent of the repository implementation and transport.
package kv

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-arrower/kernel/alog"
	"github.com/go-arrower/kernel/app"
	"github.com/go-arrower/kernel/entity"
	"github.com/go-arrower/kernel/repository"
)

// ViewApp is a dependency injection container of the read only use cases.
type ViewApp struct {
	Get  app.Query[GetQuery, app.Output[entity.KeyValue]]
	List app.Query[ListQuery, app.Output[entity.KeyValue]]
}

// App is a dependency injection container of all use cases.
type App struct {
	ViewApp

	Insert app.Command[InsertCommand]
	Update app.Command[UpdateCommand]
	Delete app.Request[DeleteCommand, DeleteResult]
}

// NewViewApp returns the read only use cases working on repo.
func NewViewApp(repo repository.ViewRepository[entity.KeyValue]) ViewApp {
	return ViewApp{
		Get:  NewGetQueryHandler(repo),
		List: NewListQueryHandler(repo),
	}
}

// NewApp returns all use cases working on repo.
func NewApp(repo repository.Repository[entity.KeyValue]) App {
	return App{
		ViewApp: NewViewApp(repo),
		Insert:  NewInsertCommandHandler(repo),
		Update:  NewUpdateCommandHandler(repo),
		Delete:  NewDeleteRequestHandler(repo),
	}
}

// Instrumented returns a copy of the use cases, with tracing, metrics and logging added.
func (a ViewApp) Instrumented(tp trace.TracerProvider, mp metric.MeterProvider, logger alog.Logger) ViewApp {
	return ViewApp{
		Get:  app.NewInstrumentedQuery(tp, mp, logger, a.Get),
		List: app.NewInstrumentedQuery(tp, mp, logger, a.List),
	}
}

// Instrumented returns a copy of the use cases, with tracing, metrics and logging added.
func (a App) Instrumented(tp trace.TracerProvider, mp metric.MeterProvider, logger alog.Logger) App {
	return App{
		ViewApp: a.ViewApp.Instrumented(tp, mp, logger),
		Insert:  app.NewInstrumentedCommand(tp, mp, logger, a.Insert),
		Update:  app.NewInstrumentedCommand(tp, mp, logger, a.Update),
		Delete:  app.NewInstrumentedRequest(tp, mp, logger, a.Delete),
	}
}
