// Package engine runs the extraction pipeline: every collected file is
// offered to every applicable matcher, sequentially and in a fixed order,
// so endpoint and warning order are reproducible for identical inputs.
package engine

import (
	"fmt"
	"time"

	"github.com/kyawyelin284/zeus-core/internal/collector"
	"github.com/kyawyelin284/zeus-core/internal/logger"
	"github.com/kyawyelin284/zeus-core/internal/matcher"
	"github.com/kyawyelin284/zeus-core/internal/metrics"
	"github.com/kyawyelin284/zeus-core/internal/report"
)

// Engine aggregates matcher output into a ScanResult.
type Engine struct {
	registry []matcher.Matcher
	metrics  *metrics.Collector
	log      *logger.Logger
}

// New creates an engine. A nil registry selects the built-in matchers.
func New(registry []matcher.Matcher, m *metrics.Collector, log *logger.Logger) *Engine {
	if registry == nil {
		registry = matcher.DefaultRegistry()
	}
	if m == nil {
		m = metrics.New()
	}
	if log == nil {
		log = logger.Global().WithComponent("engine")
	}
	return &Engine{registry: registry, metrics: m, log: log}
}

// Run extracts endpoints from the given files. A failure of one matcher on
// one file is downgraded to a warning and the scan continues; Run itself
// never fails. The result carries a single scan-wide timestamp stamped at
// completion.
func (e *Engine) Run(rootDir string, files []collector.SourceFile) *report.ScanResult {
	result := report.NewScanResult(rootDir)

	for _, file := range files {
		e.metrics.RecordFileCollected()
		matched := false

		for _, m := range e.registry {
			if !m.Applies(file.Path, file.Content) {
				continue
			}

			endpoints, err := m.Extract(file.Path, file.Content)
			if err != nil {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s: %s matcher failed: %v", file.Path, m.Name(), err))
				e.metrics.RecordWarning()
				e.log.ExtractionWarning(file.Path, m.Name(), err)
				continue
			}

			for _, ep := range endpoints {
				e.metrics.RecordEndpoint(ep.Framework)
				e.log.MatchEvent(ep.SourceFile, ep.Framework, ep.Method, ep.Path)
			}
			if len(endpoints) > 0 {
				matched = true
			}
			result.Endpoints = append(result.Endpoints, endpoints...)
		}

		if matched {
			e.metrics.RecordFileMatched()
		}
	}

	result.ScannedAt = time.Now()
	return result
}

// Metrics returns the engine's metrics collector.
func (e *Engine) Metrics() *metrics.Collector {
	return e.metrics
}
