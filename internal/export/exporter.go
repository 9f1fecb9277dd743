// Package export renders a project and its endpoints into external
// documentation formats: an OpenAPI 3 document, Markdown, and a
// self-contained HTML page. Exporters are pure: they read the model, write
// one artifact, and keep no state between calls, so the same input always
// produces byte-identical output.
package export

import (
	"io"

	"github.com/apidoc-dev/apidoc/internal/model"
)

// Exporter renders one documentation format.
type Exporter interface {
	// Export writes the artifact for the project and its endpoints. Endpoints
	// are expected in caller-supplied (storage) order; exporters preserve it.
	Export(p *model.Project, endpoints []model.Endpoint, w io.Writer) error

	// Format returns the format name (e.g. "openapi", "markdown", "html").
	Format() string
}
