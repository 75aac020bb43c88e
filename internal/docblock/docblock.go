// Package docblock locates documentation comment blocks and parses their
// annotations. Matching is purely lexical: a block is any /** ... */
// delimited substring, and "the documentation for a declaration" is
// approximated as the last block ending before the declaration's offset.
// An unrelated block sitting between the real one and the declaration wins
// instead; that is an accepted limitation of lexical matching, not a bug.
package docblock

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/kyawyelin284/zeus-core/internal/report"
)

var (
	blockRe    = regexp.MustCompile(`(?s)/\*\*.*?\*/`)
	paramRe    = regexp.MustCompile(`@param\s+\{([^}]*)\}[ \t]*(\S*)`)
	bodyRe     = regexp.MustCompile(`@body[ \t]+(.+)`)
	responseRe = regexp.MustCompile(`@responseExample[ \t]+(\d{3})[ \t]+(.+)`)
)

// Preceding returns the last documentation block ending before offset in
// content, or false if no block exists anywhere in the prefix. Pure
// function of (content, offset).
func Preceding(content string, offset int) (string, bool) {
	if offset < 0 {
		return "", false
	}
	if offset > len(content) {
		offset = len(content)
	}

	matches := blockRe.FindAllString(content[:offset], -1)
	if len(matches) == 0 {
		return "", false
	}
	return matches[len(matches)-1], true
}

// Doc is the parsed form of one documentation block.
type Doc struct {
	Description       string
	Parameters        []report.Parameter
	RequestBodySchema interface{}
	Response          *report.Response
}

// Parse extracts the description, parameters, request body schema and
// response example from a documentation block. It never fails: malformed
// embedded JSON degrades to a raw-text representation.
func Parse(block string) Doc {
	doc := Doc{
		Parameters: make([]report.Parameter, 0),
	}
	if block == "" {
		return doc
	}

	var descParts []string
	for _, raw := range strings.Split(block, "\n") {
		line := stripDecoration(raw)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "@") {
			continue
		}
		descParts = append(descParts, line)
	}
	doc.Description = strings.Join(descParts, " ")

	for _, m := range paramRe.FindAllStringSubmatch(block, -1) {
		name := m[2]
		if name == "" {
			continue
		}
		doc.Parameters = append(doc.Parameters, report.Parameter{
			Name:     name,
			Type:     classifyType(m[1]),
			Required: !strings.Contains(m[1], "="),
		})
	}

	if m := bodyRe.FindStringSubmatch(block); m != nil {
		doc.RequestBodySchema = parseLoose(strings.TrimSpace(m[1]))
	}

	// Only the first response annotation in a block is honored.
	if m := responseRe.FindStringSubmatch(block); m != nil {
		status, _ := strconv.Atoi(m[1])
		doc.Response = &report.Response{
			Status:  status,
			Example: parseExample(strings.TrimSpace(m[2])),
		}
	}

	return doc
}

// stripDecoration removes the block's line-prefix decoration: the /** and
// */ delimiters and the conventional leading asterisk.
func stripDecoration(line string) string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "/**")
	line = strings.TrimSuffix(line, "*/")
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "*")
	return strings.TrimSpace(line)
}

// classifyType maps a raw type annotation to one of the six parameter
// types by case-insensitive keyword match.
func classifyType(raw string) string {
	t := strings.ToLower(raw)
	switch {
	case strings.Contains(t, "string"):
		return "string"
	case strings.Contains(t, "number"), strings.Contains(t, "int"), strings.Contains(t, "float"):
		return "number"
	case strings.Contains(t, "bool"):
		return "boolean"
	case strings.Contains(t, "array"), strings.Contains(t, "[]"):
		return "array"
	case strings.Contains(t, "object"):
		return "object"
	default:
		return "unknown"
	}
}

// parseLoose parses raw as JSON; on failure the raw text is preserved
// under a "schema" key rather than discarded.
func parseLoose(raw string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return map[string]interface{}{"schema": raw}
	}
	return v
}

// parseExample parses raw as JSON, keeping the raw text when it does not
// parse.
func parseExample(raw string) interface{} {
	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}
