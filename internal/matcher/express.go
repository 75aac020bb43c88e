package matcher

import (
	"regexp"
	"strings"

	"github.com/kyawyelin284/zeus-core/internal/report"
)

// expressCallRe matches fluent route registrations such as
// app.get("/users", ...) or router.post('/login', ...). Quoted paths
// containing escaped quotes are cut short; a known lexical edge.
var expressCallRe = regexp.MustCompile(`(?i)\b(get|post|put|delete)\s*\(\s*['"` + "`" + `]([^'"` + "`" + `]+)['"` + "`" + `]`)

// ExpressMatcher recognizes Express-style fluent route calls.
type ExpressMatcher struct{}

// NewExpressMatcher creates the fluent-call matcher.
func NewExpressMatcher() *ExpressMatcher {
	return &ExpressMatcher{}
}

// Name returns the framework name.
func (m *ExpressMatcher) Name() string {
	return "express"
}

// Applies requires the routing-library marker to appear in the file.
func (m *ExpressMatcher) Applies(path, content string) bool {
	return strings.Contains(content, "express")
}

// Extract returns one endpoint per fluent route call in the file.
func (m *ExpressMatcher) Extract(path, content string) ([]report.Endpoint, error) {
	endpoints := make([]report.Endpoint, 0)

	for _, idx := range expressCallRe.FindAllStringSubmatchIndex(content, -1) {
		method, ok := canonicalMethod(content[idx[2]:idx[3]])
		if !ok {
			continue
		}
		route := content[idx[4]:idx[5]]
		endpoints = append(endpoints, endpointAt(m.Name(), path, content, idx[0], method, route))
	}

	return endpoints, nil
}
