package api

import "github.com/danielgtaylor/huma/v2"

// NewConfig returns the Huma configuration shared by the server and handler
// tests. It mirrors huma.DefaultConfig minus the schema link transformer so
// response bodies carry only the documented fields.
func NewConfig(title, version string) huma.Config {
	return huma.Config{
		OpenAPI: &huma.OpenAPI{
			OpenAPI: "3.1.0",
			Info: &huma.Info{
				Title:   title,
				Version: version,
			},
			Components: &huma.Components{
				Schemas: huma.NewMapRegistry("#/components/schemas/", huma.DefaultSchemaNamer),
			},
		},
		OpenAPIPath:   "/openapi",
		DocsPath:      "/api-docs",
		Formats:       huma.DefaultFormats,
		DefaultFormat: "application/json",
	}
}
