// Package scanner is the public API of the route extraction engine. It
// wires the file collector, matcher registry, extraction engine, and
// snapshot reconciler behind a single facade.
package scanner

import (
	"context"
	"fmt"

	"github.com/kyawyelin284/zeus-core/internal/collector"
	"github.com/kyawyelin284/zeus-core/internal/engine"
	"github.com/kyawyelin284/zeus-core/internal/logger"
	"github.com/kyawyelin284/zeus-core/internal/matcher"
	"github.com/kyawyelin284/zeus-core/internal/metrics"
	"github.com/kyawyelin284/zeus-core/internal/report"
	"github.com/kyawyelin284/zeus-core/internal/snapshot"
)

// Scanner orchestrates a source-tree scan.
type Scanner struct {
	config   *Config
	registry []matcher.Matcher
	fs       collector.FileSystem
	logger   *logger.Logger
	metrics  *metrics.Collector
}

// New creates a scanner with the given options.
func New(opts ...Option) (*Scanner, error) {
	s := &Scanner{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if err := s.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if s.logger == nil {
		logLevel := logger.InfoLevel
		if s.config.Debug {
			logLevel = logger.DebugLevel
		} else if !s.config.Verbose {
			logLevel = logger.WarnLevel
		}
		s.logger = logger.New(logger.Config{
			Level:     logLevel,
			Pretty:    true,
			Component: "scanner",
		})
	}

	if s.registry == nil {
		s.registry = matcher.DefaultRegistry()
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}

	return s, nil
}

// Config returns the scanner's configuration.
func (s *Scanner) Config() *Config {
	return s.config
}

// Metrics returns the scanner's metrics collector.
func (s *Scanner) Metrics() *metrics.Collector {
	return s.metrics
}

// Scan walks the configured root and extracts endpoint descriptors from
// every matching source file.
func (s *Scanner) Scan(ctx context.Context) (*report.ScanResult, error) {
	coll := collector.New(s.fs, s.config.Extensions, s.logger.WithComponent("collector"))

	files, err := coll.Collect(ctx, s.config.Root)
	if err != nil {
		return nil, err
	}

	eng := engine.New(s.registry, s.metrics, s.logger.WithComponent("engine"))
	result := eng.Run(s.config.Root, files)

	stats := s.metrics.Snapshot()
	s.logger.ScanSummary(map[string]interface{}{
		"files":     stats.FilesCollected,
		"endpoints": stats.EndpointsFound,
		"warnings":  stats.WarningsTotal,
	})

	return result, nil
}

// Persist writes the scan result to the snapshot file under the scanned
// root, reconciling against the prior snapshot in incremental mode.
func (s *Scanner) Persist(result *report.ScanResult) (*snapshot.Report, error) {
	rec := snapshot.NewReconciler(s.logger.WithComponent("snapshot"), s.config.Archive)
	return rec.Persist(result, s.config.Incremental)
}

// ScanAndPersist runs a scan and persists the result in one step.
func (s *Scanner) ScanAndPersist(ctx context.Context) (*report.ScanResult, *snapshot.Report, error) {
	result, err := s.Scan(ctx)
	if err != nil {
		return nil, nil, err
	}

	rep, err := s.Persist(result)
	if err != nil {
		return result, nil, err
	}

	return result, rep, nil
}
