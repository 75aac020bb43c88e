package scanner

import (
	"github.com/kyawyelin284/zeus-core/internal/collector"
	"github.com/kyawyelin284/zeus-core/internal/logger"
	"github.com/kyawyelin284/zeus-core/internal/matcher"
	"github.com/kyawyelin284/zeus-core/internal/metrics"
)

// Option is a functional option for configuring the Scanner.
type Option func(*Scanner) error

// WithRoot sets the root directory to scan.
func WithRoot(root string) Option {
	return func(s *Scanner) error {
		s.config.Root = root
		return nil
	}
}

// WithExtensions sets the file extensions considered source files.
func WithExtensions(exts ...string) Option {
	return func(s *Scanner) error {
		s.config.Extensions = exts
		return nil
	}
}

// WithIncremental enables/disables incremental reconciliation.
func WithIncremental(incremental bool) Option {
	return func(s *Scanner) error {
		s.config.Incremental = incremental
		return nil
	}
}

// WithArchive enables/disables snapshot history archiving.
func WithArchive(archive bool) Option {
	return func(s *Scanner) error {
		s.config.Archive = archive
		return nil
	}
}

// WithMatchers replaces the default matcher registry.
func WithMatchers(matchers ...matcher.Matcher) Option {
	return func(s *Scanner) error {
		s.registry = matchers
		return nil
	}
}

// WithFileSystem sets a custom filesystem implementation.
func WithFileSystem(fsys collector.FileSystem) Option {
	return func(s *Scanner) error {
		s.fs = fsys
		return nil
	}
}

// WithVerbose enables/disables verbose logging.
func WithVerbose(verbose bool) Option {
	return func(s *Scanner) error {
		s.config.Verbose = verbose
		return nil
	}
}

// WithDebug enables/disables debug mode.
func WithDebug(debug bool) Option {
	return func(s *Scanner) error {
		s.config.Debug = debug
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Scanner) error {
		s.logger = l
		return nil
	}
}

// WithMetrics sets a custom metrics collector.
func WithMetrics(m *metrics.Collector) Option {
	return func(s *Scanner) error {
		s.metrics = m
		return nil
	}
}

// WithConfig sets the entire configuration.
func WithConfig(config *Config) Option {
	return func(s *Scanner) error {
		s.config = config
		return nil
	}
}
