package content

import (
	"errors"
	"html"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var errMarkup = errors.New("must not contain HTML markup")

// MarkupDetector reports text that carries HTML elements. The document is
// rendered by a client that may inject it as HTML, so tags are rejected on
// write rather than stripped, keeping stored text byte-for-byte as submitted.
//
// Only names HTML defines count as tags: "List<T>", "Map<String, Object>"
// and "x<y" are ordinary text.
//
// Thread-safe for concurrent use.
type MarkupDetector struct {
	policy *bluemonday.Policy
}

// NewMarkupDetector creates a detector backed by bluemonday's strict policy,
// which strips every element and attribute.
func NewMarkupDetector() *MarkupDetector {
	return &MarkupDetector{policy: bluemonday.StrictPolicy()}
}

// HasMarkup reports whether s changes when its HTML elements, comments and
// doctypes are stripped.
func (d *MarkupDetector) HasMarkup(s string) bool {
	if s == "" || !strings.ContainsRune(s, '<') {
		return false
	}
	// the tokenizer normalizes line endings
	s = newlines.Replace(s)

	prepared, found := escapeNonMarkup(s)
	if !found {
		return false
	}
	return html.UnescapeString(d.policy.Sanitize(prepared)) != html.UnescapeString(s)
}

// escapeNonMarkup rewrites s so that only real HTML survives as markup:
// elements with a known name, comments and doctypes are kept raw, everything
// else (text and generic-looking tags such as <T>) is entity-escaped.
// found reports whether any markup was kept.
func escapeNonMarkup(s string) (prepared string, found bool) {
	var b strings.Builder
	z := xhtml.NewTokenizer(strings.NewReader(s))
	consumed := 0

	for {
		tt := z.Next()
		if tt == xhtml.ErrorToken {
			if z.Err() == io.EOF && consumed < len(s) {
				// an unterminated "<y" at the end is text
				b.WriteString(html.EscapeString(html.UnescapeString(s[consumed:])))
			}
			return b.String(), found
		}

		raw := string(z.Raw())
		consumed += len(raw)

		switch tt {
		case xhtml.StartTagToken, xhtml.EndTagToken, xhtml.SelfClosingTagToken:
			name, _ := z.TagName()
			if atom.Lookup(name) != 0 {
				found = true
				b.WriteString(raw)
				continue
			}
		case xhtml.CommentToken, xhtml.DoctypeToken:
			found = true
			b.WriteString(raw)
			continue
		}
		b.WriteString(html.EscapeString(html.UnescapeString(raw)))
	}
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Rule is an ozzo-validation rule function for string values.
func (d *MarkupDetector) Rule(value interface{}) error {
	s, _ := value.(string)
	if d.HasMarkup(s) {
		return errMarkup
	}
	return nil
}
