// Package sampler implements the diagnostic heap sampler: it observes process
// heap usage and conditionally persists full heap snapshots, triggered by a
// fixed interval or by SIGUSR2.
package sampler

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sys/unix"

	"github.com/agbru/heapwatch/internal/config"
	"github.com/agbru/heapwatch/internal/logging"
	"github.com/agbru/heapwatch/internal/metrics"
	"github.com/agbru/heapwatch/internal/snapshot"
	"github.com/agbru/heapwatch/internal/sysmon"
)

// HeapReader reads the current process heap statistics.
type HeapReader interface {
	Snapshot() metrics.MemorySnapshot
}

// SnapshotWriter persists a heap snapshot named after the given wall-clock
// time and returns the path it produced.
type SnapshotWriter interface {
	Write(now time.Time) (string, error)
}

// Recorder receives sampler observations for export. Implemented by
// server.Metrics; optional.
type Recorder interface {
	SetHeapUsedBytes(b uint64)
	SnapshotWritten()
	SnapshotSkipped()
	SnapshotFailed()
}

// Sampler owns the three scheduled triggers and the guarded snapshot
// operation. All triggers dispatch into a single run loop, so TakeSnapshot
// never executes concurrently with itself.
type Sampler struct {
	cfg       config.Config
	log       logging.Logger
	heap      HeapReader
	writer    SnapshotWriter
	now       func() time.Time
	sysSample func() sysmon.Stats
	signals   chan os.Signal
	rec       Recorder
	tracer    trace.Tracer
}

// Option configures a Sampler during construction.
type Option func(*Sampler)

// WithHeapReader sets a custom heap statistics source.
func WithHeapReader(r HeapReader) Option {
	return func(s *Sampler) { s.heap = r }
}

// WithSnapshotWriter sets a custom snapshot writer.
func WithSnapshotWriter(w SnapshotWriter) Option {
	return func(s *Sampler) { s.writer = w }
}

// WithNow sets the wall-clock source used for snapshot filenames.
func WithNow(now func() time.Time) Option {
	return func(s *Sampler) { s.now = now }
}

// WithSystemSampler sets the system-wide memory sampler used by the
// usage heartbeat.
func WithSystemSampler(fn func() sysmon.Stats) Option {
	return func(s *Sampler) { s.sysSample = fn }
}

// WithSignals sets the channel the run loop receives operator signals on.
// When unset, Run subscribes to SIGUSR2 itself.
func WithSignals(ch chan os.Signal) Option {
	return func(s *Sampler) { s.signals = ch }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Sampler) { s.rec = r }
}

// New creates a Sampler with production defaults: runtime heap statistics,
// a pprof snapshot writer under cfg.SnapshotDir, and the system clock.
func New(cfg config.Config, log logging.Logger, opts ...Option) *Sampler {
	s := &Sampler{
		cfg:       cfg,
		log:       log,
		heap:      metrics.NewMemoryCollector(),
		writer:    snapshot.NewWriter(cfg.SnapshotDir),
		now:       time.Now,
		sysSample: sysmon.Sample,
		tracer:    otel.Tracer("github.com/agbru/heapwatch/internal/sampler"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TakeSnapshot reads heap usage and, if it is at or under the safe threshold,
// serializes a full heap snapshot to a timestamped file. Every failure mode
// is logged and absorbed here: the method never panics and never returns an
// error, because it runs from timer and signal contexts where an escaped
// failure could destabilize the host.
func (s *Sampler) TakeSnapshot(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Snapshot failed", fmt.Errorf("panic: %v", r))
		}
	}()

	ctx, span := s.tracer.Start(ctx, "sampler.TakeSnapshot")
	defer span.End()

	snap := s.heap.Snapshot()
	usedMB := snap.HeapUsedMB()
	span.SetAttributes(attribute.Float64("heap.used_mb", usedMB))
	if s.rec != nil {
		s.rec.SetHeapUsedBytes(snap.HeapAlloc)
	}

	s.log.Info(fmt.Sprintf("Current heap used: %.1f MB", usedMB))

	// The one correctness-critical guard: serializing the heap graph is
	// itself allocation-heavy and blocking, so refuse to start it while
	// the process is already memory-constrained.
	if usedMB > s.cfg.SafeHeapThresholdMB {
		span.SetAttributes(attribute.Bool("heap.snapshot_skipped", true))
		if s.rec != nil {
			s.rec.SnapshotSkipped()
		}
		s.log.Error(fmt.Sprintf("Snapshot skipped: heap %.1f MB > safe %.1f MB",
			usedMB, s.cfg.SafeHeapThresholdMB), nil)
		return
	}

	path, err := s.writer.Write(s.now())
	if err != nil {
		span.RecordError(err)
		if s.rec != nil {
			s.rec.SnapshotFailed()
		}
		s.log.Error("Snapshot failed", err)
		return
	}

	if s.rec != nil {
		s.rec.SnapshotWritten()
	}
	s.log.Info(fmt.Sprintf("Heap snapshot written to %s (heap %.1f MB)", path, usedMB),
		logging.String("path", path),
		logging.Float64("heap_used_mb", usedMB))
}

// reportUsage logs the lightweight heap heartbeat without attempting a
// snapshot.
func (s *Sampler) reportUsage() {
	snap := s.heap.Snapshot()
	sys := s.sysSample()
	if s.rec != nil {
		s.rec.SetHeapUsedBytes(snap.HeapAlloc)
	}
	s.log.Info(fmt.Sprintf("Current heap used: %.1f MB", snap.HeapUsedMB()),
		logging.Uint64("heap_objects", snap.HeapObjects),
		logging.Uint64("gc_cycles", uint64(snap.NumGC)),
		logging.Float64("system_mem_percent", sys.MemPercent))
}

// Run executes the sampler's scheduled triggers until ctx is canceled:
// a snapshot attempt every cfg.SnapshotInterval, a usage heartbeat every
// cfg.UsageReportInterval, a one-time operator reminder after
// cfg.ReminderDelay, and an immediate snapshot attempt on SIGUSR2.
//
// The OS signal is translated into a message on a channel consumed by this
// single loop, so trigger handling always runs to completion before the next
// trigger is serviced.
func (s *Sampler) Run(ctx context.Context) error {
	sigCh := s.signals
	if sigCh == nil {
		sigCh = make(chan os.Signal, 1)
		signal.Notify(sigCh, unix.SIGUSR2)
		defer signal.Stop(sigCh)
	}

	snapshotTicker := time.NewTicker(s.cfg.SnapshotInterval)
	defer snapshotTicker.Stop()
	usageTicker := time.NewTicker(s.cfg.UsageReportInterval)
	defer usageTicker.Stop()
	reminder := time.NewTimer(s.cfg.ReminderDelay)
	defer reminder.Stop()

	s.log.Info("heap sampler started",
		logging.String("snapshot_interval", s.cfg.SnapshotInterval.String()),
		logging.Float64("safe_threshold_mb", s.cfg.SafeHeapThresholdMB),
		logging.String("snapshot_dir", s.cfg.SnapshotDir))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sig := <-sigCh:
			s.log.Info(fmt.Sprintf("Received %s, taking heap snapshot", sig))
			s.TakeSnapshot(ctx)
		case <-snapshotTicker.C:
			s.log.Info("Periodic heap snapshot check")
			s.TakeSnapshot(ctx)
		case <-usageTicker.C:
			s.reportUsage()
		case <-reminder.C:
			s.log.Warn("Heap sampler is active; send SIGUSR2 to this process to trigger an immediate snapshot, and see the snapshot inspection guide before analyzing the files")
		}
	}
}
