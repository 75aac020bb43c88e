package matcher

import (
	"regexp"
	"strings"

	"github.com/kyawyelin284/zeus-core/internal/report"
)

var (
	// fastifyRouteRe captures the argument object of a .route({...}) call.
	// The non-greedy body stops at the first closing brace, so options
	// declared after a nested object are not seen; accepted lexical edge.
	fastifyRouteRe = regexp.MustCompile(`(?is)\.route\s*\(\s*\{(.*?)\}`)

	fastifyMethodRe = regexp.MustCompile(`(?i)method\s*:\s*['"](\w+)['"]`)
	fastifyURLRe    = regexp.MustCompile(`(?i)url\s*:\s*['"]([^'"]+)['"]`)
)

// FastifyMatcher recognizes object-literal route registrations.
type FastifyMatcher struct{}

// NewFastifyMatcher creates the object-literal matcher.
func NewFastifyMatcher() *FastifyMatcher {
	return &FastifyMatcher{}
}

// Name returns the framework name.
func (m *FastifyMatcher) Name() string {
	return "fastify"
}

// Applies requires the framework marker plus at least one registration.
func (m *FastifyMatcher) Applies(path, content string) bool {
	return strings.Contains(content, "fastify") && fastifyRouteRe.MatchString(content)
}

// Extract returns one endpoint per registration whose argument object
// carries both a supported method and a url field, in any field order.
func (m *FastifyMatcher) Extract(path, content string) ([]report.Endpoint, error) {
	endpoints := make([]report.Endpoint, 0)

	for _, idx := range fastifyRouteRe.FindAllStringSubmatchIndex(content, -1) {
		body := content[idx[2]:idx[3]]

		methodMatch := fastifyMethodRe.FindStringSubmatch(body)
		urlMatch := fastifyURLRe.FindStringSubmatch(body)
		if methodMatch == nil || urlMatch == nil {
			continue
		}

		method, ok := canonicalMethod(methodMatch[1])
		if !ok {
			continue
		}
		endpoints = append(endpoints, endpointAt(m.Name(), path, content, idx[0], method, urlMatch[1]))
	}

	return endpoints, nil
}
