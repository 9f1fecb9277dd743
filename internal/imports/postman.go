package imports

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/apidoc-dev/apidoc/internal/model"
)

// PostmanImporter parses Postman Collection v2 JSON exports. Folders become
// tags (nested folders join with "/"), requests become endpoint candidates.
// Postman collections carry no response schemas, so every candidate gets a
// single default 200 response.
type PostmanImporter struct{}

// NewPostmanImporter returns a Postman collection importer.
func NewPostmanImporter() *PostmanImporter { return &PostmanImporter{} }

// Format returns "postman".
func (im *PostmanImporter) Format() string { return "postman" }

// Import parses a collection. It fails with InvalidFormat when the text is
// not JSON and MalformedInput when the info/item keys are absent; on failure
// no partial candidates are returned.
func (im *PostmanImporter) Import(raw []byte, projectID string) (*Result, error) {
	var root map[string]any
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, &ImportError{Code: InvalidFormat, Message: "postman: collection is not valid JSON", Cause: err}
	}
	if _, ok := root["info"]; !ok {
		return nil, &ImportError{Code: MalformedInput, Message: "postman: collection is missing the info key"}
	}
	items, ok := root["item"].([]any)
	if !ok {
		return nil, &ImportError{Code: MalformedInput, Message: "postman: collection is missing the item array"}
	}

	// Explicit worklist instead of recursion: collections nest folders to
	// arbitrary depth. Nodes are processed in document order.
	type workItem struct {
		node    map[string]any
		tagPath string
	}
	var work []workItem
	push := func(nodes []any, tagPath string) {
		queued := make([]workItem, 0, len(nodes))
		for _, n := range nodes {
			if m, ok := n.(map[string]any); ok {
				queued = append(queued, workItem{node: m, tagPath: tagPath})
			}
		}
		work = append(queued, work...)
	}
	push(items, "")

	var endpoints []model.Endpoint
	for len(work) > 0 {
		cur := work[0]
		work = work[1:]

		name, _ := cur.node["name"].(string)

		if children, ok := cur.node["item"].([]any); ok {
			tagPath := cur.tagPath
			if strings.TrimSpace(name) != "" {
				if tagPath != "" {
					tagPath = tagPath + "/" + name
				} else {
					tagPath = name
				}
			}
			push(children, tagPath)
			continue
		}

		request, ok := cur.node["request"].(map[string]any)
		if !ok {
			continue
		}

		ep := buildPostmanEndpoint(name, cur.tagPath, request)
		ep.Order = len(endpoints)
		endpoints = append(endpoints, ep)
	}

	return &Result{Endpoints: endpoints}, nil
}

func buildPostmanEndpoint(name, tagPath string, request map[string]any) model.Endpoint {
	method := model.GET
	if raw, _ := request["method"].(string); raw != "" {
		if parsed, err := model.ParseMethod(raw); err == nil {
			method = parsed
		}
	}

	path, queryParams := postmanURL(request["url"])

	summary := strings.TrimSpace(name)
	if summary == "" {
		summary = fmt.Sprintf("%s %s", method, path)
	}

	var tags []string
	if tagPath != "" {
		tags = []string{tagPath}
	}

	params := queryParams
	params = append(params, postmanHeaders(request["header"])...)

	ep := model.Endpoint{
		Method:     method,
		Path:       path,
		Summary:    summary,
		Tags:       tags,
		Parameters: params,
		Responses: []model.Response{
			{StatusCode: 200, Description: model.DefaultResponseDescription},
		},
	}

	if method.HasRequestBody() {
		ep.RequestBody = postmanBody(request["body"])
	}

	return ep
}

// postmanURL extracts the path and query parameters from a request URL,
// which Postman stores either as a plain string or as a structured object.
func postmanURL(v any) (string, []model.Parameter) {
	switch u := v.(type) {
	case string:
		return pathFromRawURL(u), nil
	case map[string]any:
		path := ""
		if raw, _ := u["raw"].(string); raw != "" {
			path = pathFromRawURL(raw)
		} else if segments, ok := u["path"].([]any); ok {
			parts := make([]string, 0, len(segments))
			for _, s := range segments {
				if str, ok := s.(string); ok {
					parts = append(parts, str)
				}
			}
			path = "/" + strings.Join(parts, "/")
		}
		if path == "" {
			path = "/"
		}

		var params []model.Parameter
		if query, ok := u["query"].([]any); ok {
			for _, q := range query {
				entry, ok := q.(map[string]any)
				if !ok {
					continue
				}
				key, _ := entry["key"].(string)
				if key == "" {
					continue
				}
				description, _ := entry["description"].(string)
				param := model.Parameter{
					Name:        key,
					Type:        "string",
					In:          model.InQuery,
					Required:    false,
					Description: description,
				}
				if value, ok := entry["value"].(string); ok && value != "" {
					param.Example = value
				}
				params = append(params, param)
			}
		}
		return path, params
	default:
		return "/", nil
	}
}

// pathFromRawURL extracts the path component of a raw URL string. Postman
// URLs may contain template braces ({{id}}), so this avoids net/url and cuts
// the string directly.
func pathFromRawURL(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
		if j := strings.IndexByte(s, '/'); j >= 0 {
			s = s[j:]
		} else {
			s = "/"
		}
	} else if !strings.HasPrefix(s, "/") {
		// Scheme-less URL like "api.x.com/pets": a dotted first segment is a
		// host, not a path segment.
		if j := strings.IndexByte(s, '/'); j >= 0 && strings.Contains(s[:j], ".") {
			s = s[j:]
		}
	}
	if !strings.HasPrefix(s, "/") {
		s = "/" + s
	}
	return s
}

// postmanHeaders maps request headers to header parameters. Authorization
// and Content-Type are protocol concerns, not documentation parameters, and
// are skipped.
func postmanHeaders(v any) []model.Parameter {
	headers, ok := v.([]any)
	if !ok {
		return nil
	}
	var params []model.Parameter
	for _, h := range headers {
		entry, ok := h.(map[string]any)
		if !ok {
			continue
		}
		key, _ := entry["key"].(string)
		if key == "" {
			continue
		}
		switch strings.ToLower(key) {
		case "authorization", "content-type":
			continue
		}
		description, _ := entry["description"].(string)
		param := model.Parameter{
			Name:        key,
			Type:        "string",
			In:          model.InHeader,
			Required:    false,
			Description: description,
		}
		if value, ok := entry["value"].(string); ok && value != "" {
			param.Example = value
		}
		params = append(params, param)
	}
	return params
}

func postmanBody(v any) *model.RequestBody {
	body, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	mode, _ := body["mode"].(string)
	switch mode {
	case "raw":
		raw, _ := body["raw"].(string)
		if strings.TrimSpace(raw) == "" {
			return nil
		}
		var example any
		if err := json.Unmarshal([]byte(raw), &example); err == nil {
			return &model.RequestBody{ContentType: "application/json", Example: example}
		}
		return &model.RequestBody{ContentType: "text/plain", Example: raw}
	case "formdata":
		return &model.RequestBody{
			ContentType: "multipart/form-data",
			Example:     postmanFormExample(body["formdata"]),
		}
	case "urlencoded":
		return &model.RequestBody{
			ContentType: "application/x-www-form-urlencoded",
			Example:     postmanFormExample(body["urlencoded"]),
		}
	default:
		return nil
	}
}

// postmanFormExample builds an example object from form fields. File fields
// carry their source path under src instead of a value.
func postmanFormExample(v any) map[string]any {
	fields, ok := v.([]any)
	if !ok {
		return nil
	}
	example := make(map[string]any)
	for _, f := range fields {
		entry, ok := f.(map[string]any)
		if !ok {
			continue
		}
		key, _ := entry["key"].(string)
		if key == "" {
			continue
		}
		if src, ok := entry["src"].(string); ok && src != "" {
			example[key] = src
			continue
		}
		value, _ := entry["value"].(string)
		example[key] = value
	}
	if len(example) == 0 {
		return nil
	}
	return example
}
