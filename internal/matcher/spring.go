package matcher

import (
	"regexp"
	"strings"

	"github.com/kyawyelin284/zeus-core/internal/report"
)

// springMappingRe matches per-verb mapping annotations, with an optional
// quoted path argument, e.g. @GetMapping("/users") or @PostMapping.
var springMappingRe = regexp.MustCompile(`@(Get|Post|Put|Delete)Mapping\s*(?:\(\s*(?:value\s*=\s*)?"([^"]*)"\s*\))?`)

// SpringMatcher recognizes declarative mapping annotations on Java
// controller files.
type SpringMatcher struct{}

// NewSpringMatcher creates the declarative-annotation matcher.
func NewSpringMatcher() *SpringMatcher {
	return &SpringMatcher{}
}

// Name returns the framework name.
func (m *SpringMatcher) Name() string {
	return "spring"
}

// Applies restricts the matcher to Java files carrying the class-level
// controller annotation.
func (m *SpringMatcher) Applies(path, content string) bool {
	return strings.HasSuffix(path, ".java") && strings.Contains(content, "@RestController")
}

// Extract returns one endpoint per mapping annotation. An absent path
// argument defaults to the root path.
func (m *SpringMatcher) Extract(path, content string) ([]report.Endpoint, error) {
	endpoints := make([]report.Endpoint, 0)

	for _, idx := range springMappingRe.FindAllStringSubmatchIndex(content, -1) {
		method, ok := canonicalMethod(content[idx[2]:idx[3]])
		if !ok {
			continue
		}

		route := "/"
		if idx[4] >= 0 && idx[5] > idx[4] {
			route = content[idx[4]:idx[5]]
		}

		endpoints = append(endpoints, endpointAt(m.Name(), path, content, idx[0], method, route))
	}

	return endpoints, nil
}
