package model

// Shared fallback values applied by exporters and importers when a project or
// endpoint omits a field. Centralized here so the formats cannot drift.
const (
	// DefaultVersion is used when a project carries no version.
	DefaultVersion = "1.0.0"

	// DefaultBaseURL is the server placeholder when a project has no base URL.
	DefaultBaseURL = "https://api.example.com"

	// DefaultSpecVersion is the OpenAPI document version emitted by default.
	DefaultSpecVersion = "3.0.0"

	// DefaultResponseDescription is used for synthesized 200 responses.
	DefaultResponseDescription = "Successful response"

	// DefaultTagGroup collects endpoints that declare no tags.
	DefaultTagGroup = "General"
)
