package imports

import (
	"errors"
	"testing"

	"github.com/apidoc-dev/apidoc/internal/model"
)

const sampleCollection = `{
  "info": {"name": "Demo", "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"},
  "item": [
    {
      "name": "Users",
      "item": [
        {
          "name": "Get user",
          "request": {
            "method": "GET",
            "url": {
              "raw": "https://api.x.com/users/{{id}}?active=true",
              "query": [
                {"key": "active", "value": "true", "description": "Filter by state"}
              ]
            }
          }
        },
        {
          "name": "Admin",
          "item": [
            {
              "name": "Create user",
              "request": {
                "method": "POST",
                "url": "https://api.x.com/users",
                "header": [
                  {"key": "Authorization", "value": "Bearer x"},
                  {"key": "Content-Type", "value": "application/json"},
                  {"key": "X-Request-Id", "value": "abc", "description": "Trace id"}
                ],
                "body": {
                  "mode": "raw",
                  "raw": "{\"name\": \"Ada\"}"
                }
              }
            }
          ]
        }
      ]
    },
    {
      "request": {
        "url": "https://api.x.com/health"
      }
    }
  ]
}`

func importCollection(t *testing.T, raw string) []model.Endpoint {
	t.Helper()
	result, err := NewPostmanImporter().Import([]byte(raw), "p1")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	return result.Endpoints
}

func TestPostmanImport_FolderExample(t *testing.T) {
	t.Parallel()
	endpoints := importCollection(t, sampleCollection)

	if len(endpoints) != 3 {
		t.Fatalf("endpoints: got %d", len(endpoints))
	}

	get := endpoints[0]
	if get.Method != model.GET || get.Path != "/users/{{id}}" {
		t.Fatalf("first endpoint: got %s %s", get.Method, get.Path)
	}
	if get.Summary != "Get user" {
		t.Errorf("summary: got %q", get.Summary)
	}
	if len(get.Tags) != 1 || get.Tags[0] != "Users" {
		t.Errorf("tags: got %v", get.Tags)
	}
	if len(get.Parameters) != 1 {
		t.Fatalf("parameters: got %v", get.Parameters)
	}
	p := get.Parameters[0]
	if p.Name != "active" || p.In != model.InQuery || p.Type != "string" || p.Required {
		t.Errorf("query parameter: got %+v", p)
	}
	if p.Example != "true" || p.Description != "Filter by state" {
		t.Errorf("query parameter detail: got %+v", p)
	}
	if len(get.Responses) != 1 || get.Responses[0].StatusCode != 200 ||
		get.Responses[0].Description != model.DefaultResponseDescription {
		t.Errorf("default response: got %v", get.Responses)
	}
}

func TestPostmanImport_NestedFolderTagsAndHeaders(t *testing.T) {
	t.Parallel()
	endpoints := importCollection(t, sampleCollection)

	post := endpoints[1]
	if post.Method != model.POST || post.Path != "/users" {
		t.Fatalf("second endpoint: got %s %s", post.Method, post.Path)
	}
	if len(post.Tags) != 1 || post.Tags[0] != "Users/Admin" {
		t.Errorf("nested folder tag: got %v", post.Tags)
	}

	// Authorization and Content-Type are dropped; X-Request-Id survives.
	if len(post.Parameters) != 1 {
		t.Fatalf("header parameters: got %+v", post.Parameters)
	}
	h := post.Parameters[0]
	if h.Name != "X-Request-Id" || h.In != model.InHeader || h.Description != "Trace id" {
		t.Errorf("header parameter: got %+v", h)
	}

	if post.RequestBody == nil || post.RequestBody.ContentType != "application/json" {
		t.Fatalf("request body: got %+v", post.RequestBody)
	}
	example, ok := post.RequestBody.Example.(map[string]any)
	if !ok || example["name"] != "Ada" {
		t.Errorf("body example: got %+v", post.RequestBody.Example)
	}
}

func TestPostmanImport_DefaultsForBareRequest(t *testing.T) {
	t.Parallel()
	endpoints := importCollection(t, sampleCollection)

	bare := endpoints[2]
	if bare.Method != model.GET {
		t.Errorf("method default: got %s", bare.Method)
	}
	if bare.Path != "/health" {
		t.Errorf("path: got %q", bare.Path)
	}
	if bare.Summary != "GET /health" {
		t.Errorf("synthesized summary: got %q", bare.Summary)
	}
	if len(bare.Tags) != 0 {
		t.Errorf("root-level request must have no tags: %v", bare.Tags)
	}
}

func TestPostmanImport_BodyModes(t *testing.T) {
	t.Parallel()
	collection := `{
  "info": {"name": "Bodies"},
  "item": [
    {
      "name": "Plain",
      "request": {
        "method": "POST",
        "url": "https://x.example/plain",
        "body": {"mode": "raw", "raw": "not json"}
      }
    },
    {
      "name": "Upload",
      "request": {
        "method": "PUT",
        "url": "https://x.example/upload",
        "body": {
          "mode": "formdata",
          "formdata": [
            {"key": "title", "value": "hello"},
            {"key": "file", "type": "file", "src": "/tmp/a.png"}
          ]
        }
      }
    },
    {
      "name": "Form",
      "request": {
        "method": "PATCH",
        "url": "https://x.example/form",
        "body": {
          "mode": "urlencoded",
          "urlencoded": [{"key": "q", "value": "1"}]
        }
      }
    },
    {
      "name": "BodyOnGet",
      "request": {
        "method": "GET",
        "url": "https://x.example/get",
        "body": {"mode": "raw", "raw": "{}"}
      }
    }
  ]
}`
	endpoints := importCollection(t, collection)
	if len(endpoints) != 4 {
		t.Fatalf("endpoints: got %d", len(endpoints))
	}

	plain := endpoints[0].RequestBody
	if plain == nil || plain.ContentType != "text/plain" || plain.Example != "not json" {
		t.Errorf("raw non-JSON body: got %+v", plain)
	}

	upload := endpoints[1].RequestBody
	if upload == nil || upload.ContentType != "multipart/form-data" {
		t.Fatalf("formdata body: got %+v", upload)
	}
	form := upload.Example.(map[string]any)
	if form["title"] != "hello" || form["file"] != "/tmp/a.png" {
		t.Errorf("formdata example: got %v", form)
	}

	enc := endpoints[2].RequestBody
	if enc == nil || enc.ContentType != "application/x-www-form-urlencoded" {
		t.Errorf("urlencoded body: got %+v", enc)
	}

	if endpoints[3].RequestBody != nil {
		t.Errorf("GET must not carry a request body")
	}
}

func TestPostmanImport_Errors(t *testing.T) {
	t.Parallel()
	im := NewPostmanImporter()

	_, err := im.Import([]byte("not json at all"), "p1")
	var ie *ImportError
	if !errors.As(err, &ie) || ie.Code != InvalidFormat {
		t.Fatalf("expected InvalidFormat, got %v", err)
	}

	_, err = im.Import([]byte(`{"item": []}`), "p1")
	if !errors.As(err, &ie) || ie.Code != MalformedInput {
		t.Fatalf("expected MalformedInput for missing info, got %v", err)
	}

	_, err = im.Import([]byte(`{"info": {}}`), "p1")
	if !errors.As(err, &ie) || ie.Code != MalformedInput {
		t.Fatalf("expected MalformedInput for missing item, got %v", err)
	}
}

func TestPathFromRawURL(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw  string
		want string
	}{
		{"https://api.x.com/users/{{id}}?active=true", "/users/{{id}}"},
		{"https://api.x.com", "/"},
		{"api.x.com/pets", "/pets"},
		{"/already/rooted", "/already/rooted"},
	}
	for _, tc := range cases {
		if got := pathFromRawURL(tc.raw); got != tc.want {
			t.Errorf("pathFromRawURL(%q): got %q, want %q", tc.raw, got, tc.want)
		}
	}
}
