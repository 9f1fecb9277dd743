package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/apidoc-dev/apidoc/internal/model"
)

// OpenAPIOptions controls the generated document.
type OpenAPIOptions struct {
	// SpecVersion is the value of the top-level "openapi" field.
	// Defaults to model.DefaultSpecVersion.
	SpecVersion string
}

// OpenAPIExporter renders an OpenAPI 3 JSON document.
type OpenAPIExporter struct {
	Options OpenAPIOptions
}

// NewOpenAPIExporter returns an exporter emitting the default spec version.
func NewOpenAPIExporter() *OpenAPIExporter { return &OpenAPIExporter{} }

// Format returns "openapi".
func (e *OpenAPIExporter) Format() string { return "openapi" }

// Export writes the document as indented JSON.
func (e *OpenAPIExporter) Export(p *model.Project, endpoints []model.Endpoint, w io.Writer) error {
	doc := BuildOpenAPI(p, endpoints, e.Options)
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("export: marshal openapi document: %w", err)
	}
	out = append(out, '\n')
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("export: write openapi document: %w", err)
	}
	return nil
}

// BuildOpenAPI assembles the OpenAPI document as a nested mapping ready for
// JSON serialization. Path keys appear in first-seen endpoint order; tag
// order is first-seen across endpoints. No sorting is applied.
func BuildOpenAPI(p *model.Project, endpoints []model.Endpoint, opts OpenAPIOptions) *orderedMap {
	specVersion := strings.TrimSpace(opts.SpecVersion)
	if specVersion == "" {
		specVersion = model.DefaultSpecVersion
	}

	doc := newOrderedMap()
	doc.Set("openapi", specVersion)
	doc.Set("info", buildInfo(p))
	doc.Set("servers", []any{map[string]any{"url": effectiveBaseURL(p)}})

	if tags := collectTags(endpoints); len(tags) > 0 {
		doc.Set("tags", tags)
	}

	paths := newOrderedMap()
	for i := range endpoints {
		ep := &endpoints[i]
		item, _ := paths.Get(ep.Path)
		pathItem, ok := item.(*orderedMap)
		if !ok {
			pathItem = newOrderedMap()
			paths.Set(ep.Path, pathItem)
		}
		// Each method is a distinct key under the path, so two endpoints
		// sharing a path never collide.
		pathItem.Set(strings.ToLower(string(ep.Method)), buildOperation(ep))
	}
	doc.Set("paths", paths)
	doc.Set("components", map[string]any{"schemas": map[string]any{}})

	return doc
}

func buildInfo(p *model.Project) *orderedMap {
	info := newOrderedMap()
	info.Set("title", p.Name)
	description := p.Description
	if strings.TrimSpace(description) == "" {
		description = fmt.Sprintf("API documentation for %s", p.Name)
	}
	info.Set("description", description)
	version := p.Version
	if strings.TrimSpace(version) == "" {
		version = model.DefaultVersion
	}
	info.Set("version", version)
	return info
}

func effectiveBaseURL(p *model.Project) string {
	if strings.TrimSpace(p.BaseURL) != "" {
		return p.BaseURL
	}
	return model.DefaultBaseURL
}

// collectTags returns the distinct tag names in first-seen order.
func collectTags(endpoints []model.Endpoint) []any {
	seen := make(map[string]struct{})
	var tags []any
	for _, ep := range endpoints {
		for _, tag := range ep.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, map[string]any{"name": tag})
		}
	}
	return tags
}

func buildOperation(ep *model.Endpoint) *orderedMap {
	op := newOrderedMap()
	op.Set("operationId", ep.EffectiveOperationID())
	op.Set("summary", ep.Summary)
	if ep.Description != "" {
		op.Set("description", ep.Description)
	}
	if len(ep.Tags) > 0 {
		op.Set("tags", ep.Tags)
	}
	if ep.Deprecated {
		op.Set("deprecated", true)
	}

	if len(ep.Parameters) > 0 {
		params := make([]any, 0, len(ep.Parameters))
		for _, p := range ep.Parameters {
			params = append(params, buildParameter(p))
		}
		op.Set("parameters", params)
	}

	if ep.RequestBody != nil && ep.Method.HasRequestBody() {
		op.Set("requestBody", buildRequestBody(ep.RequestBody))
	}

	op.Set("responses", buildResponses(ep.Responses))

	if len(ep.Security) > 0 {
		security := make([]any, 0, len(ep.Security))
		for _, name := range ep.Security {
			security = append(security, map[string]any{name: []any{}})
		}
		op.Set("security", security)
	}

	return op
}

func buildParameter(p model.Parameter) *orderedMap {
	out := newOrderedMap()
	out.Set("name", p.Name)
	out.Set("in", p.In)
	out.Set("required", p.Required)
	if p.Description != "" {
		out.Set("description", p.Description)
	}
	schema := map[string]any{"type": p.Type}
	if p.Example != nil {
		schema["example"] = p.Example
	}
	out.Set("schema", schema)
	return out
}

func buildRequestBody(rb *model.RequestBody) *orderedMap {
	out := newOrderedMap()
	if rb.Description != "" {
		out.Set("description", rb.Description)
	}
	out.Set("required", rb.Required)

	entry := newOrderedMap()
	if rb.Schema != nil {
		entry.Set("schema", rb.Schema)
	}
	if rb.Example != nil {
		entry.Set("example", rb.Example)
	}
	content := newOrderedMap()
	content.Set(rb.ContentType, entry)
	out.Set("content", content)
	return out
}

func buildResponses(responses []model.Response) *orderedMap {
	out := newOrderedMap()
	for _, r := range responses {
		entry := newOrderedMap()
		entry.Set("description", r.Description)
		if len(r.Headers) > 0 {
			entry.Set("headers", r.Headers)
		}
		if r.Schema != nil || r.Example != nil {
			media := newOrderedMap()
			if r.Schema != nil {
				media.Set("schema", r.Schema)
			}
			if r.Example != nil {
				media.Set("example", r.Example)
			}
			content := newOrderedMap()
			content.Set("application/json", media)
			entry.Set("content", content)
		}
		out.Set(strconv.Itoa(r.StatusCode), entry)
	}
	// The endpoint invariant guarantees at least one response, but a
	// defensive default keeps the document valid if a caller violates it.
	if out.Len() == 0 {
		entry := newOrderedMap()
		entry.Set("description", model.DefaultResponseDescription)
		out.Set("200", entry)
	}
	return out
}
