package export

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/apidoc-dev/apidoc/internal/model"
)

// HTMLOptions controls HTML rendering.
type HTMLOptions struct {
	// Theme names the stylesheet. Only "default" exists today; the option is
	// kept as an extension point and unknown names fall back to the default.
	Theme string
}

// HTMLExporter renders a single self-contained HTML page with a fixed
// sidebar and one card per endpoint. All user-supplied text is HTML-escaped
// before interpolation.
type HTMLExporter struct {
	Options HTMLOptions
}

// NewHTMLExporter returns an exporter using the default theme.
func NewHTMLExporter() *HTMLExporter { return &HTMLExporter{} }

// Format returns "html".
func (e *HTMLExporter) Format() string { return "html" }

// Export writes the HTML document.
func (e *HTMLExporter) Export(p *model.Project, endpoints []model.Endpoint, w io.Writer) error {
	if _, err := io.WriteString(w, GenerateHTML(p, endpoints, e.Options)); err != nil {
		return fmt.Errorf("export: write html document: %w", err)
	}
	return nil
}

const htmlStylesheet = `    body { margin: 0; font-family: -apple-system, "Segoe UI", Roboto, sans-serif; color: #1f2933; }
    .sidebar { position: fixed; top: 0; bottom: 0; left: 0; width: 260px; overflow-y: auto; background: #102a43; color: #d9e2ec; padding: 16px; box-sizing: border-box; }
    .sidebar h2 { font-size: 14px; text-transform: uppercase; letter-spacing: 0.05em; color: #829ab1; }
    .sidebar a { display: block; color: #d9e2ec; text-decoration: none; padding: 4px 0; font-size: 13px; }
    .sidebar a:hover { color: #ffffff; }
    .content { margin-left: 280px; padding: 24px 32px; max-width: 920px; }
    .endpoint { border: 1px solid #d9e2ec; border-radius: 6px; padding: 16px 20px; margin-bottom: 24px; }
    .endpoint h3 { margin-top: 0; }
    .badge { display: inline-block; padding: 2px 10px; border-radius: 4px; color: #ffffff; font-size: 12px; font-weight: 600; margin-right: 8px; }
    .badge.get { background: #2f855a; }
    .badge.post { background: #2b6cb0; }
    .badge.put { background: #c05621; }
    .badge.delete { background: #c53030; }
    .badge.patch { background: #b7791f; }
    .badge.head, .badge.options { background: #718096; }
    .path { font-family: "SFMono-Regular", Consolas, monospace; font-size: 15px; }
    .deprecated { color: #c53030; font-weight: 600; }
    table { border-collapse: collapse; width: 100%; margin: 12px 0; }
    th, td { border: 1px solid #d9e2ec; padding: 6px 10px; text-align: left; font-size: 13px; }
    th { background: #f0f4f8; }
    pre { background: #f0f4f8; padding: 12px; border-radius: 4px; overflow-x: auto; font-size: 13px; }
`

// GenerateHTML builds the full HTML document.
func GenerateHTML(p *model.Project, endpoints []model.Endpoint, opts HTMLOptions) string {
	_ = opts.Theme // recognized but inert; only the default stylesheet exists

	var sb strings.Builder

	version := p.Version
	if version == "" {
		version = model.DefaultVersion
	}

	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	sb.WriteString("  <meta charset=\"utf-8\">\n")
	sb.WriteString("  <title>" + html.EscapeString(p.Name) + "</title>\n")
	sb.WriteString("  <style>\n" + htmlStylesheet + "  </style>\n")
	sb.WriteString("</head>\n<body>\n")

	sb.WriteString("  <nav class=\"sidebar\">\n")
	sb.WriteString("    <h2>" + html.EscapeString(p.Name) + "</h2>\n")
	for i := range endpoints {
		ep := &endpoints[i]
		sb.WriteString(fmt.Sprintf("    <a href=\"#%s\">%s %s</a>\n",
			ep.ID(), ep.Method, html.EscapeString(ep.Path)))
	}
	sb.WriteString("  </nav>\n")

	sb.WriteString("  <main class=\"content\">\n")
	sb.WriteString("    <h1>" + html.EscapeString(p.Name) + "</h1>\n")
	if p.Description != "" {
		sb.WriteString("    <p>" + html.EscapeString(p.Description) + "</p>\n")
	}
	sb.WriteString("    <p>Version " + html.EscapeString(version) +
		" &middot; <code>" + html.EscapeString(effectiveBaseURL(p)) + "</code></p>\n")

	for i := range endpoints {
		writeHTMLEndpoint(&sb, &endpoints[i])
	}

	sb.WriteString("  </main>\n</body>\n</html>\n")
	return sb.String()
}

func writeHTMLEndpoint(sb *strings.Builder, ep *model.Endpoint) {
	method := string(ep.Method)

	sb.WriteString(fmt.Sprintf("    <div class=\"endpoint\" id=\"%s\">\n", ep.ID()))
	sb.WriteString(fmt.Sprintf("      <h3><span class=\"badge %s\">%s</span><span class=\"path\">%s</span></h3>\n",
		strings.ToLower(method), method, html.EscapeString(ep.Path)))

	if ep.Deprecated {
		sb.WriteString("      <p class=\"deprecated\">Deprecated</p>\n")
	}
	if ep.Summary != "" {
		sb.WriteString("      <p>" + html.EscapeString(ep.Summary) + "</p>\n")
	}
	if ep.Description != "" {
		sb.WriteString("      <p>" + html.EscapeString(ep.Description) + "</p>\n")
	}

	if len(ep.Parameters) > 0 {
		sb.WriteString("      <h4>Parameters</h4>\n")
		sb.WriteString("      <table>\n")
		sb.WriteString("        <tr><th>Name</th><th>Type</th><th>In</th><th>Required</th><th>Description</th></tr>\n")
		for _, param := range ep.Parameters {
			required := "No"
			if param.Required {
				required = "Yes"
			}
			sb.WriteString(fmt.Sprintf("        <tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				html.EscapeString(param.Name), html.EscapeString(param.Type),
				html.EscapeString(param.In), required, html.EscapeString(param.Description)))
		}
		sb.WriteString("      </table>\n")
	}

	for _, resp := range ep.Responses {
		sb.WriteString(fmt.Sprintf("      <h4>Response %d</h4>\n", resp.StatusCode))
		if resp.Description != "" {
			sb.WriteString("      <p>" + html.EscapeString(resp.Description) + "</p>\n")
		}
		if resp.Example != nil {
			sb.WriteString("      <pre>" + html.EscapeString(prettyJSON(resp.Example)) + "</pre>\n")
		}
	}

	sb.WriteString("    </div>\n")
}
