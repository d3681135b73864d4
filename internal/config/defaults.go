// Package config provides configuration handling for csboot.
package config

// DefaultTypeMappings returns C# to TypeScript type mappings that replace the
// built-in mapping. Keys are C# type names as written in source.
func DefaultTypeMappings() map[string]string {
	return map[string]string{
		// Well-known framework types
		"JsonElement":  "unknown",
		"JsonDocument": "unknown",
		"Uri":          "string",
		"DateOnly":     "string", // ISO 8601 date
		"TimeOnly":     "string",
		"byte[]":       "string", // Base64 encoded by System.Text.Json
	}
}

// DefaultFrontend returns the default client model settings.
func DefaultFrontend() Frontend {
	return Frontend{
		FileNameCase: "camel",
	}
}

// DefaultBackend returns the default CRUD stack settings.
func DefaultBackend() Backend {
	return Backend{
		DbContext: DbContext{Name: "DBContext"},
	}
}

// DefaultGolang returns the default Go model settings.
func DefaultGolang() Golang {
	return Golang{
		Package: "models",
	}
}
