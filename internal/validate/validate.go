// Package validate scores documentation completeness for a project and its
// endpoints. Issues are blocking quality problems, warnings are advisory;
// both only describe the input and never mutate it.
package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/apidoc-dev/apidoc/internal/model"
)

// Status buckets for the completeness score.
const (
	StatusExcellent = "excellent" // score >= 80
	StatusGood      = "good"      // score >= 60
	StatusFair      = "fair"      // score >= 40
	StatusPoor      = "poor"      // below 40
)

// Statistics summarizes the evaluated endpoint set.
type Statistics struct {
	Endpoints    int `json:"endpoints"`
	Tagged       int `json:"tagged"`
	Documented   int `json:"documented"` // endpoints with a description
	WithExamples int `json:"withExamples"`
}

// Report is the outcome of one evaluation.
type Report struct {
	Score      int        `json:"score"` // 0..100
	Status     string     `json:"status"`
	Issues     []string   `json:"issues"`
	Warnings   []string   `json:"warnings"`
	Statistics Statistics `json:"statistics"`
}

var pathParamRe = regexp.MustCompile(`\{([^}]+)\}`)

// Evaluate scores the project documentation. Each issue costs 10 points and
// each warning 2, floored at zero.
func Evaluate(p *model.Project, endpoints []model.Endpoint) *Report {
	r := &Report{}

	if strings.TrimSpace(p.Description) == "" {
		r.Warnings = append(r.Warnings, "project has no description")
	}
	if strings.TrimSpace(p.BaseURL) == "" {
		r.Warnings = append(r.Warnings, "project has no base URL")
	}

	for i := range endpoints {
		ep := &endpoints[i]
		key := ep.Key()

		if strings.TrimSpace(ep.Summary) == "" {
			r.Issues = append(r.Issues, fmt.Sprintf("%s: missing summary", key))
		}
		if len(ep.Responses) == 0 {
			r.Issues = append(r.Issues, fmt.Sprintf("%s: no responses defined", key))
		}

		declared := 0
		for _, param := range ep.Parameters {
			if param.In == model.InPath {
				declared++
			}
		}
		if tokens := len(pathParamRe.FindAllString(ep.Path, -1)); tokens != declared {
			r.Issues = append(r.Issues, fmt.Sprintf(
				"%s: path parameter count mismatch (%d in path, %d declared)", key, tokens, declared))
		}

		documented := strings.TrimSpace(ep.Description) != ""
		if !documented {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: missing description", key))
		} else {
			r.Statistics.Documented++
		}
		if len(ep.Tags) == 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: no tags", key))
		} else {
			r.Statistics.Tagged++
		}
		if ep.RequestBody != nil && ep.Method.HasRequestBody() && ep.RequestBody.Example == nil {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: request body has no example", key))
		}

		hasExample := false
		for _, resp := range ep.Responses {
			if resp.Example != nil {
				hasExample = true
				break
			}
		}
		if hasExample {
			r.Statistics.WithExamples++
		} else if len(ep.Responses) > 0 {
			r.Warnings = append(r.Warnings, fmt.Sprintf("%s: responses have no examples", key))
		}
	}

	r.Statistics.Endpoints = len(endpoints)

	r.Score = 100 - 10*len(r.Issues) - 2*len(r.Warnings)
	if r.Score < 0 {
		r.Score = 0
	}
	switch {
	case r.Score >= 80:
		r.Status = StatusExcellent
	case r.Score >= 60:
		r.Status = StatusGood
	case r.Score >= 40:
		r.Status = StatusFair
	default:
		r.Status = StatusPoor
	}

	return r
}
