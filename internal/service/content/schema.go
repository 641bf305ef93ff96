package content

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"portfolio/internal/domain"
)

//go:embed schema/content.schema.json
var contentSchemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(contentSchemaJSON))
	})
	return compiledSchema, schemaErr
}

// ValidateSchema checks raw against the document JSON Schema. Violations are
// returned as a *domain.ValidationError keyed by field path.
func ValidateSchema(raw []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("compile content schema: %w", err)
	}

	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		// The loader fails on malformed JSON before any rule runs
		return &domain.ValidationError{
			Message: "request body is not valid JSON",
			Fields:  map[string]string{"(root)": err.Error()},
		}
	}
	if res.Valid() {
		return nil
	}

	fields := make(map[string]string, len(res.Errors()))
	for _, e := range res.Errors() {
		field := e.Field()
		if prev, ok := fields[field]; ok {
			fields[field] = prev + "; " + e.Description()
			continue
		}
		fields[field] = e.Description()
	}

	return &domain.ValidationError{
		Message: "content does not match the document schema",
		Fields:  fields,
	}
}
