// Package report defines the scan result types and the persisted JSON shape.
package report

import (
	"time"
)

// Supported HTTP methods. Declarations using any other verb are dropped
// during extraction, never emitted with a placeholder method.
const (
	MethodGet    = "GET"
	MethodPost   = "POST"
	MethodPut    = "PUT"
	MethodDelete = "DELETE"
)

// Parameter is one documented route parameter.
type Parameter struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // string, number, boolean, object, array, unknown
	Required bool   `json:"required"`
}

// Response holds a documented response example.
type Response struct {
	Status  int         `json:"status"`
	Example interface{} `json:"example"`
}

// Endpoint is one recognized route declaration paired with its documentation.
//
// RequestBodySchema and Response are always-present JSON keys, serialized
// as explicit null when absent, so downstream consumers can rely on key
// existence.
type Endpoint struct {
	Method            string      `json:"method"`
	Path              string      `json:"path"`
	Description       string      `json:"description,omitempty"`
	Parameters        []Parameter `json:"parameters"`
	RequestBodySchema interface{} `json:"requestBodySchema"`
	Response          *Response   `json:"response"`
	Framework         string      `json:"framework"`
	SourceFile        string      `json:"sourceFile"`
	Line              int         `json:"line,omitempty"`
}

// Key returns the reconciliation identity for the endpoint. It is not
// guaranteed unique: two endpoints may share a key when the same route is
// declared in two files or matched by two frameworks.
func (e *Endpoint) Key() string {
	return e.Method + " " + e.Path
}

// ScanResult is the full artifact of one scan. Endpoint order is
// file-discovery order, then within-file match order. Warnings contain one
// entry per recoverable extraction failure; a file that simply matched
// nothing produces no warning.
type ScanResult struct {
	ScannedAt time.Time  `json:"scannedAt"`
	RootDir   string     `json:"rootDir"`
	Endpoints []Endpoint `json:"endpoints"`
	Warnings  []string   `json:"warnings"`
}

// NewScanResult creates an empty result for the given root.
func NewScanResult(rootDir string) *ScanResult {
	return &ScanResult{
		RootDir:   rootDir,
		Endpoints: make([]Endpoint, 0),
		Warnings:  make([]string, 0),
	}
}
