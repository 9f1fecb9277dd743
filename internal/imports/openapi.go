package imports

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/apidoc-dev/apidoc/internal/model"
)

// OpenAPIImporter parses OpenAPI 3.x and Swagger 2.0 documents, in JSON or
// YAML. Swagger 2.0 input is converted to v3 before mapping. Parsing is
// permissive: the goal is to recover as many endpoint candidates as the
// document describes, not to validate it.
type OpenAPIImporter struct{}

// NewOpenAPIImporter returns an OpenAPI/Swagger importer.
func NewOpenAPIImporter() *OpenAPIImporter { return &OpenAPIImporter{} }

// Format returns "openapi".
func (im *OpenAPIImporter) Format() string { return "openapi" }

// Import parses a spec document. It fails with InvalidFormat when the text
// parses as neither JSON nor YAML and MissingPaths when the document has no
// paths key.
func (im *OpenAPIImporter) Import(raw []byte, projectID string) (*Result, error) {
	root, err := sniffDocument(raw)
	if err != nil {
		return nil, err
	}
	if _, ok := root["paths"]; !ok {
		return nil, &ImportError{Code: MissingPaths, Message: "openapi: document has no paths"}
	}

	doc, err := loadDocument(raw, root)
	if err != nil {
		return nil, err
	}

	result := &Result{ProjectPatch: projectPatch(doc)}

	// Sort path keys so repeated imports of the same document yield
	// candidates in the same order.
	pathKeys := make([]string, 0, len(doc.Paths))
	for p := range doc.Paths {
		pathKeys = append(pathKeys, p)
	}
	sort.Strings(pathKeys)

	for _, path := range pathKeys {
		item := doc.Paths[path]
		if item == nil {
			continue
		}
		for _, pair := range orderedOperations(item) {
			ep := buildCandidate(pair.method, path, pair.op)
			ep.Order = len(result.Endpoints)
			result.Endpoints = append(result.Endpoints, ep)
		}
	}

	return result, nil
}

// sniffDocument parses the raw text into a generic mapping, trying JSON
// first and falling back to YAML.
func sniffDocument(raw []byte) (map[string]any, error) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err == nil {
		return root, nil
	}
	if err := yaml.Unmarshal(raw, &root); err != nil || root == nil {
		return nil, &ImportError{Code: InvalidFormat, Message: "openapi: document is neither valid JSON nor YAML", Cause: err}
	}
	return root, nil
}

// loadDocument builds the v3 document, converting Swagger 2.0 when the
// version marker says so.
func loadDocument(raw []byte, root map[string]any) (*openapi3.T, error) {
	if v, ok := root["swagger"].(string); ok && strings.HasPrefix(strings.TrimSpace(v), "2.") {
		var v2 openapi2.T
		if err := yaml.Unmarshal(raw, &v2); err != nil {
			return nil, &ImportError{Code: InvalidFormat, Message: "openapi: cannot parse swagger 2.0 document", Cause: err}
		}
		doc, err := openapi2conv.ToV3(&v2)
		if err != nil {
			return nil, &ImportError{Code: InvalidFormat, Message: fmt.Sprintf("openapi: convert swagger 2.0 to v3: %v", err), Cause: err}
		}
		return doc, nil
	}

	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, &ImportError{Code: InvalidFormat, Message: fmt.Sprintf("openapi: parse document: %v", err), Cause: err}
	}
	return doc, nil
}

// projectPatch extracts project metadata present in the document. Absent
// fields stay nil so the caller only patches what the document provides.
func projectPatch(doc *openapi3.T) *model.ProjectPatch {
	patch := &model.ProjectPatch{}
	present := false

	if doc.Info != nil {
		if title := strings.TrimSpace(doc.Info.Title); title != "" {
			patch.Name = &title
			present = true
		}
		if description := strings.TrimSpace(doc.Info.Description); description != "" {
			patch.Description = &description
			present = true
		}
		if version := strings.TrimSpace(doc.Info.Version); version != "" {
			patch.Version = &version
			present = true
		}
	}
	if len(doc.Servers) > 0 && doc.Servers[0] != nil {
		if url := strings.TrimSpace(doc.Servers[0].URL); url != "" {
			patch.BaseURL = &url
			present = true
		}
	}

	if !present {
		return nil
	}
	return patch
}

type methodOp struct {
	method model.Method
	op     *openapi3.Operation
}

// orderedOperations enumerates the operations of a path item in a stable
// method order, covering only the methods the model supports.
func orderedOperations(item *openapi3.PathItem) []methodOp {
	all := []methodOp{
		{model.GET, item.Get},
		{model.POST, item.Post},
		{model.PUT, item.Put},
		{model.DELETE, item.Delete},
		{model.PATCH, item.Patch},
		{model.HEAD, item.Head},
		{model.OPTIONS, item.Options},
	}
	out := all[:0]
	for _, pair := range all {
		if pair.op != nil {
			out = append(out, pair)
		}
	}
	return out
}

func buildCandidate(method model.Method, path string, op *openapi3.Operation) model.Endpoint {
	summary := strings.TrimSpace(op.Summary)
	if summary == "" {
		summary = fmt.Sprintf("%s %s", method, path)
	}

	ep := model.Endpoint{
		Method:      method,
		Path:        path,
		Summary:     summary,
		Description: strings.TrimSpace(op.Description),
		OperationID: strings.TrimSpace(op.OperationID),
		Deprecated:  op.Deprecated,
	}
	for _, tag := range op.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			ep.Tags = append(ep.Tags, tag)
		}
	}

	for _, pref := range op.Parameters {
		if pm := importParameter(pref); pm != nil {
			ep.Parameters = append(ep.Parameters, *pm)
		}
	}

	if method.HasRequestBody() && op.RequestBody != nil && op.RequestBody.Value != nil {
		ep.RequestBody = importRequestBody(op.RequestBody.Value)
	}

	ep.Responses = importResponses(op.Responses)

	if op.Security != nil {
		ep.Security = securityNames(*op.Security)
	}

	return ep
}

func importParameter(pref *openapi3.ParameterRef) *model.Parameter {
	if pref == nil || pref.Value == nil {
		return nil
	}
	p := pref.Value

	pm := &model.Parameter{
		Name:        p.Name,
		Type:        "string",
		In:          p.In,
		Required:    p.Required,
		Description: strings.TrimSpace(p.Description),
		Example:     p.Example,
	}
	if p.Schema != nil && p.Schema.Value != nil {
		if t := p.Schema.Value.Type; t != "" {
			pm.Type = t
		}
		if pm.Example == nil {
			pm.Example = p.Schema.Value.Example
		}
	}
	return pm
}

// importRequestBody picks one content entry: application/json when present,
// otherwise the lexicographically first key, since the underlying content
// map carries no order.
func importRequestBody(rb *openapi3.RequestBody) *model.RequestBody {
	contentType, media := pickContent(rb.Content)
	if media == nil {
		return nil
	}
	return &model.RequestBody{
		ContentType: contentType,
		Required:    rb.Required,
		Description: strings.TrimSpace(rb.Description),
		Schema:      schemaToMap(media.Schema),
		Example:     mediaExample(media),
	}
}

func importResponses(responses openapi3.Responses) []model.Response {
	if len(responses) == 0 {
		return []model.Response{{StatusCode: 200, Description: model.DefaultResponseDescription}}
	}

	codes := make([]string, 0, len(responses))
	for code := range responses {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]model.Response, 0, len(codes))
	for _, code := range codes {
		rref := responses[code]
		if rref == nil || rref.Value == nil {
			continue
		}

		status, err := strconv.Atoi(code)
		if err != nil || status < 100 || status > 599 {
			status = 200 // "default" and range keys like 2XX
		}

		resp := model.Response{StatusCode: status, Description: model.DefaultResponseDescription}
		if rref.Value.Description != nil && strings.TrimSpace(*rref.Value.Description) != "" {
			resp.Description = strings.TrimSpace(*rref.Value.Description)
		}
		if _, media := pickContent(rref.Value.Content); media != nil {
			resp.Schema = schemaToMap(media.Schema)
			resp.Example = mediaExample(media)
		}
		out = append(out, resp)
	}

	if len(out) == 0 {
		return []model.Response{{StatusCode: 200, Description: model.DefaultResponseDescription}}
	}
	return out
}

func pickContent(content openapi3.Content) (string, *openapi3.MediaType) {
	if len(content) == 0 {
		return "", nil
	}
	if media, ok := content["application/json"]; ok && media != nil {
		return "application/json", media
	}
	keys := make([]string, 0, len(content))
	for k := range content {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if content[k] != nil {
			return k, content[k]
		}
	}
	return "", nil
}

// mediaExample returns the inline example, or the "default" named example,
// or the first named example.
func mediaExample(media *openapi3.MediaType) any {
	if media.Example != nil {
		return media.Example
	}
	if len(media.Examples) == 0 {
		if media.Schema != nil && media.Schema.Value != nil {
			return media.Schema.Value.Example
		}
		return nil
	}
	if ref, ok := media.Examples["default"]; ok && ref != nil && ref.Value != nil {
		return ref.Value.Value
	}
	names := make([]string, 0, len(media.Examples))
	for name := range media.Examples {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if ref := media.Examples[name]; ref != nil && ref.Value != nil {
			return ref.Value.Value
		}
	}
	return nil
}

// schemaToMap renders a schema as a generic mapping by round-tripping it
// through JSON. kin-openapi marshals either the $ref or the inline value.
func schemaToMap(ref *openapi3.SchemaRef) map[string]any {
	if ref == nil {
		return nil
	}
	data, err := json.Marshal(ref)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func securityNames(reqs openapi3.SecurityRequirements) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, req := range reqs {
		keys := make([]string, 0, len(req))
		for name := range req {
			keys = append(keys, name)
		}
		sort.Strings(keys)
		for _, name := range keys {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}
