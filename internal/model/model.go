// Package model defines the canonical in-memory representation of a
// documented API: a Project plus its Endpoints. Exporters read these values,
// importers produce new candidate instances; nothing in this package performs
// I/O or mutation of existing records.
package model

import (
	"fmt"
	"regexp"
	"strings"
)

// Method is an HTTP method supported by documented endpoints.
type Method string

const (
	GET     Method = "GET"
	POST    Method = "POST"
	PUT     Method = "PUT"
	DELETE  Method = "DELETE"
	PATCH   Method = "PATCH"
	HEAD    Method = "HEAD"
	OPTIONS Method = "OPTIONS"
)

// Methods lists every supported method in documentation order.
var Methods = []Method{GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS}

// ParseMethod normalizes s to upper case and returns the matching Method.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Methods {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("model: unsupported HTTP method %q", s)
}

// HasRequestBody reports whether the method carries a request body in
// generated documentation.
func (m Method) HasRequestBody() bool {
	return m == POST || m == PUT || m == PATCH
}

// Project is the documented API a set of endpoints belongs to.
type Project struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	BaseURL     string `json:"baseUrl,omitempty"`
	Version     string `json:"version"`
	IsPublic    bool   `json:"isPublic"`
}

var versionRe = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// Validate checks project-level invariants. An empty version is allowed and
// treated as DefaultVersion by exporters.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("model: project name is required")
	}
	if p.Version != "" && !versionRe.MatchString(p.Version) {
		return fmt.Errorf("model: project version %q is not semver x.y.z", p.Version)
	}
	return nil
}

// ProjectPatch carries optional project fields extracted by an importer.
// Only non-nil fields are applied.
type ProjectPatch struct {
	Name        *string
	Description *string
	BaseURL     *string
	Version     *string
}

// Apply copies the present patch fields onto the project.
func (p *Project) Apply(patch *ProjectPatch) {
	if patch == nil {
		return
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.BaseURL != nil {
		p.BaseURL = *patch.BaseURL
	}
	if patch.Version != nil {
		p.Version = *patch.Version
	}
}

// Parameter locations.
const (
	InQuery  = "query"
	InPath   = "path"
	InHeader = "header"
	InBody   = "body"
)

// Parameter describes one request parameter of an endpoint.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // string|number|integer|boolean|array|object|file
	In          string `json:"in"`   // query|path|header|body
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
	Example     any    `json:"example,omitempty"`
}

// RequestBody describes the body of a POST/PUT/PATCH endpoint.
type RequestBody struct {
	ContentType string         `json:"contentType"`
	Required    bool           `json:"required"`
	Description string         `json:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty"`
	Example     any            `json:"example,omitempty"`
}

// Header documents a response header.
type Header struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Response describes one documented response of an endpoint.
type Response struct {
	StatusCode  int               `json:"statusCode"`
	Description string            `json:"description"`
	Headers     map[string]Header `json:"headers,omitempty"`
	Schema      map[string]any    `json:"schema,omitempty"`
	Example     any               `json:"example,omitempty"`
}

// Endpoint is one documented HTTP operation within a project. The pair
// (Method, Path) identifies it; uniqueness is enforced by the storage layer.
type Endpoint struct {
	Method      Method       `json:"method"`
	Path        string       `json:"path"`
	Summary     string       `json:"summary"`
	Description string       `json:"description,omitempty"`
	OperationID string       `json:"operationId,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Deprecated  bool         `json:"deprecated,omitempty"`
	Parameters  []Parameter  `json:"parameters,omitempty"`
	RequestBody *RequestBody `json:"requestBody,omitempty"`
	Responses   []Response   `json:"responses"`
	Security    []string     `json:"security,omitempty"`
	Order       int          `json:"order"`
}

// Key returns the dedup identity of the endpoint, e.g. "GET /users".
func (e *Endpoint) Key() string {
	return string(e.Method) + " " + e.Path
}

// ID returns a stable identifier usable as an anchor or operationId:
// the lower-cased method followed by the alphanumeric runes of the path.
func (e *Endpoint) ID() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(string(e.Method)))
	for _, r := range e.Path {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// EffectiveOperationID returns the declared operationId or the derived one.
func (e *Endpoint) EffectiveOperationID() string {
	if strings.TrimSpace(e.OperationID) != "" {
		return e.OperationID
	}
	return e.ID()
}

// Validate checks endpoint invariants: known method, rooted path, and a
// non-empty response list with in-range status codes.
func (e *Endpoint) Validate() error {
	if _, err := ParseMethod(string(e.Method)); err != nil {
		return err
	}
	if !strings.HasPrefix(e.Path, "/") {
		return fmt.Errorf("model: path %q must start with /", e.Path)
	}
	if len(e.Responses) == 0 {
		return fmt.Errorf("model: endpoint %s has no responses", e.Key())
	}
	for _, r := range e.Responses {
		if r.StatusCode < 100 || r.StatusCode > 599 {
			return fmt.Errorf("model: endpoint %s has invalid status code %d", e.Key(), r.StatusCode)
		}
	}
	return nil
}
