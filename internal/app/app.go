// Package app wires configuration, logging, the sampler, and the optional
// metrics endpoint into a runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/heapwatch/internal/config"
	apperrors "github.com/agbru/heapwatch/internal/errors"
	"github.com/agbru/heapwatch/internal/logging"
	"github.com/agbru/heapwatch/internal/sampler"
	"github.com/agbru/heapwatch/internal/server"
)

// Application represents the heapwatch application instance.
type Application struct {
	Config    config.Config
	Logger    logging.Logger
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger sets a custom logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "heapwatch"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application: a single oneshot snapshot, or the full
// scheduled sampler plus the optional metrics endpoint, until interrupted.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log := a.Logger
	if log == nil {
		log = logging.NewLogger(out, "heapwatch")
	}

	var metrics *server.Metrics
	samplerOpts := []sampler.Option{}
	if a.Config.MetricsAddr != "" {
		metrics = server.NewMetrics()
		samplerOpts = append(samplerOpts, sampler.WithRecorder(metrics))
	}

	smp := sampler.New(a.Config, log, samplerOpts...)

	if a.Config.Oneshot {
		smp.TakeSnapshot(ctx)
		return apperrors.ExitSuccess
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return smp.Run(ctx) })
	if metrics != nil {
		addr := a.Config.MetricsAddr
		g.Go(func() error { return server.Serve(ctx, addr, metrics, log) })
	}

	if err := g.Wait(); err != nil && !apperrors.IsContextError(err) {
		log.Error("sampler terminated", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
