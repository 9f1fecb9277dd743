package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/apidoc-dev/apidoc/internal/model"
)

// MarkdownExporter renders the documentation as a single Markdown file.
type MarkdownExporter struct{}

// NewMarkdownExporter returns a Markdown exporter.
func NewMarkdownExporter() *MarkdownExporter { return &MarkdownExporter{} }

// Format returns "markdown".
func (e *MarkdownExporter) Format() string { return "markdown" }

// Export writes the Markdown document.
func (e *MarkdownExporter) Export(p *model.Project, endpoints []model.Endpoint, w io.Writer) error {
	if _, err := io.WriteString(w, GenerateMarkdown(p, endpoints)); err != nil {
		return fmt.Errorf("export: write markdown document: %w", err)
	}
	return nil
}

// methodEmoji keys a colored marker to each HTTP method.
func methodEmoji(m model.Method) string {
	switch m {
	case model.GET:
		return "🟢"
	case model.POST:
		return "🔵"
	case model.PUT:
		return "🟠"
	case model.DELETE:
		return "🔴"
	case model.PATCH:
		return "🟡"
	default:
		return "⚪"
	}
}

// GenerateMarkdown builds the full Markdown document. The table of contents
// and the body sections are produced from the same GroupByTag pass, so the
// anchors always match.
func GenerateMarkdown(p *model.Project, endpoints []model.Endpoint) string {
	var sb strings.Builder

	sb.WriteString("# " + p.Name + "\n\n")
	if p.Description != "" {
		sb.WriteString(p.Description + "\n\n")
	}

	version := p.Version
	if version == "" {
		version = model.DefaultVersion
	}
	sb.WriteString("**Version:** " + version + "\n\n")
	sb.WriteString("**Base URL:** `" + effectiveBaseURL(p) + "`\n\n")

	groups := GroupByTag(endpoints)

	sb.WriteString("## Table of Contents\n\n")
	for _, tag := range groups.Tags() {
		sb.WriteString("- " + tag + "\n")
		for _, ep := range groups.Endpoints(tag) {
			sb.WriteString(fmt.Sprintf("  - [%s %s](#%s)\n", ep.Method, ep.Path, anchorSlug(&ep)))
		}
	}
	sb.WriteString("\n")

	for _, tag := range groups.Tags() {
		sb.WriteString("## " + tag + "\n\n")
		for _, ep := range groups.Endpoints(tag) {
			writeMarkdownEndpoint(&sb, &ep)
		}
	}

	return sb.String()
}

func writeMarkdownEndpoint(sb *strings.Builder, ep *model.Endpoint) {
	sb.WriteString(fmt.Sprintf("### %s %s %s\n\n", methodEmoji(ep.Method), ep.Method, ep.Path))

	if ep.Summary != "" {
		sb.WriteString(ep.Summary + "\n\n")
	}
	if ep.Description != "" {
		sb.WriteString(ep.Description + "\n\n")
	}

	if len(ep.Parameters) > 0 {
		sb.WriteString("#### Parameters\n\n")
		sb.WriteString("| Name | Type | In | Required | Description |\n")
		sb.WriteString("|------|------|----|----------|-------------|\n")
		for _, param := range ep.Parameters {
			required := "No"
			if param.Required {
				required = "Yes"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				param.Name, param.Type, param.In, required, param.Description))
		}
		sb.WriteString("\n")
	}

	if ep.RequestBody != nil && ep.Method.HasRequestBody() && ep.RequestBody.Example != nil {
		sb.WriteString("#### Request Body\n\n")
		sb.WriteString("Content-Type: `" + ep.RequestBody.ContentType + "`\n\n")
		sb.WriteString("```json\n" + prettyJSON(ep.RequestBody.Example) + "\n```\n\n")
	}

	for _, resp := range ep.Responses {
		sb.WriteString(fmt.Sprintf("#### Response %d\n\n", resp.StatusCode))
		if resp.Description != "" {
			sb.WriteString(resp.Description + "\n\n")
		}
		if resp.Example != nil {
			sb.WriteString("```json\n" + prettyJSON(resp.Example) + "\n```\n\n")
		}
	}

	if ep.Deprecated {
		sb.WriteString("> ⚠️ **Deprecated.** This endpoint is deprecated and may be removed in a future version.\n\n")
	}

	sb.WriteString("---\n\n")
}

// prettyJSON renders an example value as indented JSON. Values that cannot
// be marshaled (which the model does not produce) fall back to %v.
func prettyJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
