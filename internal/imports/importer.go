// Package imports parses external API description formats — Postman
// Collection v2 and OpenAPI/Swagger — into endpoint candidates shaped like
// the internal model. Importers are stateless: they never look at existing
// records, and deduplication against storage is the caller's job.
package imports

import (
	"github.com/apidoc-dev/apidoc/internal/model"
)

// ErrorCode categorizes import failures for clearer handling and messaging.
type ErrorCode string

const (
	// InvalidFormat: the raw text parses as neither JSON nor YAML, or is not
	// a document of the expected kind.
	InvalidFormat ErrorCode = "InvalidFormat"
	// MalformedInput: the document parsed but lacks required top-level keys.
	MalformedInput ErrorCode = "MalformedInput"
	// MissingPaths: an OpenAPI document without a paths key.
	MissingPaths ErrorCode = "MissingPaths"
)

// ImportError is a structured parse-stage failure. Import is all-or-nothing
// at this stage: when an ImportError is returned no candidates are.
type ImportError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *ImportError) Error() string { return e.Message }
func (e *ImportError) Unwrap() error { return e.Cause }

// Result is the output of one import: endpoint candidates plus, for formats
// that carry project metadata, a patch the caller may apply to the project.
type Result struct {
	ProjectPatch *model.ProjectPatch
	Endpoints    []model.Endpoint
}

// Importer parses one external format into endpoint candidates.
type Importer interface {
	// Import parses raw into candidates for the given project. Candidates
	// are not persisted or deduplicated here.
	Import(raw []byte, projectID string) (*Result, error)

	// Format returns the source format name (e.g. "postman", "openapi").
	Format() string
}

// ForFormat returns the importer registered for the given format name.
func ForFormat(name string) (Importer, bool) {
	switch name {
	case "postman":
		return NewPostmanImporter(), true
	case "openapi", "swagger":
		return NewOpenAPIImporter(), true
	default:
		return nil, false
	}
}
