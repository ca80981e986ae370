package utils

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	// strict strips every tag and attribute; used for stored titles/bodies and chat.
	strict = bluemonday.StrictPolicy()
	// userHTML is the restricted subset allowed in rendered post bodies.
	userHTML = newUserHTMLPolicy()
)

func newUserHTMLPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"strong", "b", "i", "em",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
	return p
}

// SanitizeText reduces input to trimmed plain text with all markup removed.
func SanitizeText(input string) string {
	return strings.TrimSpace(strict.Sanitize(input))
}

// RenderUserHTML converts a stored post body (markdown) to HTML, then filters
// the result down to the allowed tag subset.
func RenderUserHTML(body string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		return strict.Sanitize(body)
	}
	return userHTML.Sanitize(buf.String())
}
