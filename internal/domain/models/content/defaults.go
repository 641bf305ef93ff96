package content

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/content.yaml
var defaultYAML []byte

var (
	defaultOnce sync.Once
	defaultDoc  *Document
	defaultErr  error
)

// Default returns a fresh copy of the built-in document. It panics if the
// embedded file is malformed, which is a build defect rather than a runtime
// condition.
func Default() *Document {
	defaultOnce.Do(func() {
		defaultDoc, defaultErr = decodeDefault(defaultYAML)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultDoc.Clone()
}

func decodeDefault(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal default content: %w", err)
	}
	return &doc, nil
}
