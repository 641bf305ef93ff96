package content

import (
	"bytes"
	"encoding/json"
)

// MarshalReadable encodes d as two-space indented JSON for storage that
// people edit by hand. Unlike json.MarshalIndent, "&", "<" and ">" are
// written literally. There is no trailing newline.
func MarshalReadable(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
