package validate

import (
	"strings"
	"testing"

	"github.com/apidoc-dev/apidoc/internal/model"
)

func TestEvaluate_PerfectDocumentation(t *testing.T) {
	t.Parallel()
	p := &model.Project{
		Name:        "Petstore",
		Description: "Everything about pets",
		BaseURL:     "https://pets.example",
		Version:     "1.0.0",
	}
	eps := []model.Endpoint{
		{
			Method:      model.GET,
			Path:        "/pets/{id}",
			Summary:     "Get a pet",
			Description: "Fetch one pet by id",
			Tags:        []string{"pets"},
			Parameters: []model.Parameter{
				{Name: "id", Type: "string", In: model.InPath, Required: true},
			},
			Responses: []model.Response{
				{StatusCode: 200, Description: "ok", Example: map[string]any{"id": 1}},
			},
		},
	}

	r := Evaluate(p, eps)

	if r.Score != 100 || r.Status != StatusExcellent {
		t.Fatalf("score: got %d (%s), issues=%v warnings=%v", r.Score, r.Status, r.Issues, r.Warnings)
	}
	if len(r.Issues) != 0 || len(r.Warnings) != 0 {
		t.Errorf("unexpected findings: %v / %v", r.Issues, r.Warnings)
	}
	s := r.Statistics
	if s.Endpoints != 1 || s.Tagged != 1 || s.Documented != 1 || s.WithExamples != 1 {
		t.Errorf("statistics: got %+v", s)
	}
}

func TestEvaluate_IssueAndWarningWeights(t *testing.T) {
	t.Parallel()
	p := &model.Project{
		Name:        "Petstore",
		Description: "described",
		BaseURL:     "https://pets.example",
	}
	// Two issues (missing summary, undeclared path parameter) and three
	// warnings (no tags, request body without example, responses without
	// examples): 100 - 20 - 6 = 74.
	eps := []model.Endpoint{
		{
			Method:      model.POST,
			Path:        "/users/{id}",
			Description: "updates a user",
			RequestBody: &model.RequestBody{ContentType: "application/json"},
			Responses:   []model.Response{{StatusCode: 200, Description: "ok"}},
		},
	}

	r := Evaluate(p, eps)

	if len(r.Issues) != 2 {
		t.Fatalf("issues: got %v", r.Issues)
	}
	if len(r.Warnings) != 3 {
		t.Fatalf("warnings: got %v", r.Warnings)
	}
	if r.Score != 74 || r.Status != StatusGood {
		t.Errorf("score: got %d (%s)", r.Score, r.Status)
	}

	var mismatch bool
	for _, issue := range r.Issues {
		if strings.Contains(issue, "path parameter count mismatch (1 in path, 0 declared)") {
			mismatch = true
		}
	}
	if !mismatch {
		t.Errorf("expected a path parameter mismatch issue, got %v", r.Issues)
	}
}

func TestEvaluate_ProjectLevelWarnings(t *testing.T) {
	t.Parallel()
	r := Evaluate(&model.Project{Name: "Bare"}, nil)

	if len(r.Warnings) != 2 {
		t.Fatalf("warnings: got %v", r.Warnings)
	}
	if r.Score != 96 || r.Status != StatusExcellent {
		t.Errorf("score: got %d (%s)", r.Score, r.Status)
	}
	if r.Statistics.Endpoints != 0 {
		t.Errorf("statistics: got %+v", r.Statistics)
	}
}

func TestEvaluate_ScoreFloorsAtZero(t *testing.T) {
	t.Parallel()
	p := &model.Project{Name: "Empty"}
	var eps []model.Endpoint
	for _, path := range []string{"/a/{x}", "/b/{x}", "/c/{x}", "/d/{x}"} {
		eps = append(eps, model.Endpoint{Method: model.GET, Path: path})
	}

	r := Evaluate(p, eps)

	// 12 endpoint issues alone push the deductions past 100.
	if len(r.Issues) != 12 {
		t.Fatalf("issues: got %d: %v", len(r.Issues), r.Issues)
	}
	if r.Score != 0 || r.Status != StatusPoor {
		t.Errorf("score: got %d (%s)", r.Score, r.Status)
	}
}

func TestEvaluate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	eps := []model.Endpoint{{Method: model.GET, Path: "/a", Summary: "A",
		Responses: []model.Response{{StatusCode: 200, Description: "ok"}}}}

	_ = Evaluate(&model.Project{Name: "X"}, eps)

	if eps[0].Summary != "A" || len(eps[0].Responses) != 1 {
		t.Fatalf("input mutated: %+v", eps[0])
	}
}
