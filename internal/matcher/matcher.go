// Package matcher provides framework-specific route declaration matchers.
//
// Each matcher recognizes one declaration style over raw source text using
// lexical pattern matching only; there is no language parsing. The registry
// is an ordered list of matchers, extensible by appending new ones without
// touching the extraction engine. A single file may be matched by more than
// one matcher; results are concatenated without dedup.
package matcher

import (
	"strings"

	"github.com/kyawyelin284/zeus-core/internal/docblock"
	"github.com/kyawyelin284/zeus-core/internal/report"
)

// Matcher recognizes one route declaration style.
type Matcher interface {
	// Name returns the framework name stamped on extracted endpoints.
	Name() string

	// Applies reports whether this matcher should run against the file.
	Applies(path, content string) bool

	// Extract scans the file for route declarations and returns one
	// endpoint per recognized declaration.
	Extract(path, content string) ([]report.Endpoint, error)
}

// DefaultRegistry returns the built-in matchers in their fixed run order.
func DefaultRegistry() []Matcher {
	return []Matcher{
		NewExpressMatcher(),
		NewFastifyMatcher(),
		NewSpringMatcher(),
	}
}

// canonicalMethod maps a captured method token to its uppercase form,
// reporting false for verbs outside the supported set.
func canonicalMethod(raw string) (string, bool) {
	m := strings.ToUpper(raw)
	switch m {
	case report.MethodGet, report.MethodPost, report.MethodPut, report.MethodDelete:
		return m, true
	default:
		return "", false
	}
}

// endpointAt builds an endpoint for a declaration match, attaching the
// nearest preceding documentation block.
func endpointAt(framework, path, content string, offset int, method, route string) report.Endpoint {
	doc := docblock.Doc{Parameters: make([]report.Parameter, 0)}
	if block, ok := docblock.Preceding(content, offset); ok {
		doc = docblock.Parse(block)
	}

	return report.Endpoint{
		Method:            method,
		Path:              route,
		Description:       doc.Description,
		Parameters:        doc.Parameters,
		RequestBodySchema: doc.RequestBodySchema,
		Response:          doc.Response,
		Framework:         framework,
		SourceFile:        path,
		Line:              lineAt(content, offset),
	}
}

// lineAt returns the 1-based line number of a byte offset.
func lineAt(content string, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}
	return 1 + strings.Count(content[:offset], "\n")
}
