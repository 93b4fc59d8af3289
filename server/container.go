// Package server wires all dependencies of a running kernel and serves them over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	prometheusSDK "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"golang.org/x/sync/errgroup"

	"github.com/go-arrower/kernel"
	"github.com/go-arrower/kernel/alog"
	"github.com/go-arrower/kernel/kv"
	"github.com/go-arrower/kernel/repository"
	"github.com/go-arrower/kernel/web"
)

var ErrMissingConfig = errors.New("missing config")

const (
	metricPath = "/metrics"
	statusPath = "/status"
	logsPath   = "/logs"
)

// Container holds all dependencies of a kernel.
type Container struct {
	Config *kernel.Config

	Logger        *alog.Adapter
	TraceProvider *trace.TracerProvider
	MeterProvider *metric.MeterProvider
	// Registry is owned by the Container, so more than one can exist in the same process.
	Registry *prometheusSDK.Registry

	Repository *repository.MemoryRepository
	// Logs keeps the records of Logger in memory, if the environment is local.
	Logs *repository.MemoryRepository

	KeyValues   kv.App
	Environment kv.ViewApp

	WebRouter *echo.Echo

	store     io.Closer
	startedAt time.Time
}

// Option configures a Container.
type Option func(*options)

type options struct {
	logWriter      io.Writer
	environ        map[string]string
	spanProcessors []trace.SpanProcessor
}

// WithLogWriter sets the output of the logger, instead of os.Stdout.
func WithLogWriter(w io.Writer) Option {
	return func(o *options) {
		o.logWriter = w
	}
}

// WithSpanProcessor adds p to the TraceProvider, next to the otlp exporter.
func WithSpanProcessor(p trace.SpanProcessor) Option {
	return func(o *options) {
		o.spanProcessors = append(o.spanProcessors, p)
	}
}

// WithEnvironment serves env instead of the process environment.
func WithEnvironment(env map[string]string) Option {
	return func(o *options) {
		o.environ = env
	}
}

// New initialises all dependencies as configured by conf.
// Call Shutdown to release them, once the Container is no longer used.
//
//nolint:funlen // allow length because of init work
func New(ctx context.Context, conf *kernel.Config, opts ...Option) (*Container, error) {
	if conf == nil {
		return nil, ErrMissingConfig
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	dc := &Container{
		Config:    conf,
		Registry:  prometheusSDK.NewRegistry(),
		startedAt: time.Now(),
	}

	{ // observability
		res := resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(conf.ApplicationName),
			attribute.String("environment", string(conf.Environment)),
		)

		{ // traces
			traceOpts := []trace.TracerProviderOption{trace.WithResource(res)}

			if conf.OTEL.Enabled {
				exporterOpts := []otlptracegrpc.Option{
					otlptracegrpc.WithEndpoint(fmt.Sprintf("%s:%d", conf.OTEL.Host, conf.OTEL.Port)),
					otlptracegrpc.WithInsecure(),
				}

				if conf.Environment == kernel.TestEnv {
					// no collector is running while testing, so the shutdown would block until ctx expires.
					exporterOpts = append(exporterOpts, otlptracegrpc.WithTimeout(10*time.Millisecond))
				}

				traceExporter, err := otlptracegrpc.New(ctx, exporterOpts...)
				if err != nil {
					return nil, fmt.Errorf("could not connect to trace exporter: %w", err)
				}

				traceOpts = append(traceOpts, trace.WithBatcher(traceExporter))
			}

			for _, p := range o.spanProcessors {
				traceOpts = append(traceOpts, trace.WithSpanProcessor(p))
			}

			if conf.Environment == kernel.LocalEnv {
				traceOpts = append(traceOpts, trace.WithSampler(trace.AlwaysSample()))
			} else {
				// set the sampling rate based on the parent span to 60%
				traceOpts = append(traceOpts, trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(0.6))))
			}

			dc.TraceProvider = trace.NewTracerProvider(traceOpts...)
		}

		{ // metrics
			exporter, err := prometheus.New(prometheus.WithRegisterer(dc.Registry))
			if err != nil {
				return nil, fmt.Errorf("could not create prometheus exporter: %w", err)
			}

			dc.MeterProvider = metric.NewMeterProvider(
				metric.WithResource(res),
				metric.WithReader(exporter),
			)

			dc.Registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}
	}

	{ // logger
		loggerOpts := []alog.LoggerOpt{alog.WithLevel(alog.SlogLevel(conf.Log.Level))}
		if o.logWriter != nil {
			loggerOpts = append(loggerOpts, alog.WithWriter(o.logWriter))
		}

		if conf.Environment == kernel.LocalEnv {
			// the logs repository has no logger itself, otherwise each insert would log again.
			dc.Logs = repository.NewMemoryRepository(nil)

			if o.logWriter == nil {
				loggerOpts = append(loggerOpts, alog.WithWriter(os.Stdout))
			}

			loggerOpts = append(loggerOpts, alog.WithHandler(
				alog.NewRepositoryHandler(dc.Logs, &alog.RepositoryHandlerOptions{Name: conf.ApplicationName}),
			))
		}

		dc.Logger = alog.New(loggerOpts...).With(
			slog.String("application_name", conf.ApplicationName),
			slog.String("environment", string(conf.Environment)),
		)
	}

	{ // repositories
		store, closer, err := NewStore(ctx, conf.Store)
		if err != nil {
			return nil, errors.Join(
				fmt.Errorf("could not create store: %w", err),
				dc.shutdownProviders(ctx),
			)
		}

		dc.store = closer

		repoOpts := []repository.Option{repository.WithLogger(dc.Logger.Slog())}
		if store != nil {
			repoOpts = append(repoOpts, repository.WithStore(store))
		}

		dc.Repository = repository.NewMemoryRepository(nil, repoOpts...)

		envOpts := []repository.EnvOption{}
		if o.environ != nil {
			envOpts = append(envOpts, repository.WithEnvironment(o.environ))
		}

		dc.KeyValues = kv.NewApp(dc.Repository).Instrumented(dc.TraceProvider, dc.MeterProvider, dc.Logger)
		dc.Environment = kv.NewViewApp(repository.NewEnvRepository(envOpts...)).
			Instrumented(dc.TraceProvider, dc.MeterProvider, dc.Logger)
	}

	{ // web router
		router := echo.New()
		router.HideBanner = true
		router.HidePort = true
		router.Logger.SetOutput(io.Discard)
		router.IPExtractor = echo.ExtractIPFromXFFHeader() // see: https://echo.labstack.com/docs/ip-address

		router.Use(otelecho.Middleware(conf.ApplicationName, otelecho.WithTracerProvider(dc.TraceProvider)))
		router.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  metricName(conf.ApplicationName),
			Registerer: dc.Registry,
		}))
		router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			TargetHeader: "Request-Id",
			RequestIDHandler: func(c echo.Context, rid string) {
				c.SetRequest(c.Request().WithContext(alog.AddAttr(
					c.Request().Context(),
					slog.String("request_id", rid)),
				))
			},
		}))

		router.GET(metricPath, echo.WrapHandler(promhttp.HandlerFor(
			dc.Registry,
			promhttp.HandlerOpts{ //nolint:exhaustruct
				EnableOpenMetrics: true, // to enable Examplars in the export format
			},
		)))
		router.GET(statusPath, dc.statusHandler)

		routes := router.Group("")
		controller := web.NewKeyValueController(dc.Logger, dc.KeyValues, dc.Environment)
		controller.RegisterRoutes(routes)

		if dc.Logs != nil {
			controller.RegisterViewRoutes(routes, logsPath, kv.NewViewApp(dc.Logs))
		}

		dc.WebRouter = router
	}

	return dc, nil
}

// Run serves the WebRouter until ctx is done, then it shuts the Container down.
func (c *Container) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", c.Config.HTTP.Port)

	c.Logger.Info(ctx, "starting server", slog.String("addr", addr))

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		err := c.WebRouter.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("could not serve http: %w", err)
		}

		return nil
	})

	group.Go(func() error {
		<-gctx.Done()

		const shutdownTimeout = 10 * time.Second

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		return c.Shutdown(shutdownCtx)
	})

	return group.Wait() //nolint:wrapcheck // errors are wrapped in the group
}

// Shutdown stops the WebRouter and releases all dependencies.
func (c *Container) Shutdown(ctx context.Context) error {
	c.Logger.Info(ctx, "shutting down")

	var errs []error

	if err := c.WebRouter.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("could not shutdown web router: %w", err))
	}

	if err := c.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("could not close store: %w", err))
	}

	errs = append(errs, c.shutdownProviders(ctx))

	return errors.Join(errs...)
}

// shutdownProviders flushes and stops the TraceProvider and MeterProvider.
func (c *Container) shutdownProviders(ctx context.Context) error {
	var errs []error

	if err := c.TraceProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("could not shutdown trace provider: %w", err))
	}

	if err := c.MeterProvider.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("could not shutdown meter provider: %w", err))
	}

	return errors.Join(errs...)
}

// metricName returns name as a valid prometheus metric name.
func metricName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}

		return '_'
	}, name)
}
