package site

import (
	"strings"
	"unicode"

	"github.com/microcosm-cc/bluemonday"
	g "maragu.dev/gomponents"

	"github.com/agentic-research/vitrine/internal/content"
)

// Titles and paragraphs in the document may carry inline markup
// (<br>, <strong>, <span>). It is passed through the UGC policy before it
// reaches the page.
var policy = bluemonday.UGCPolicy()

// rich renders a content string as sanitized HTML.
func rich(v content.Value) g.Node {
	return g.Raw(policy.Sanitize(content.Text(v)))
}

// css turns a style object with camelCase keys into an inline style
// declaration. Values that could break out of the attribute are dropped.
func css(style content.Value) string {
	obj, ok := style.(content.Object)
	if !ok {
		return ""
	}
	var b strings.Builder
	for _, k := range obj.Keys() {
		val := cssValue(obj[k])
		if val == "" || !safeCSS(val) {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(kebab(k))
		b.WriteString(": ")
		b.WriteString(val)
	}
	return b.String()
}

func cssValue(v content.Value) string {
	switch x := v.(type) {
	case content.String:
		return strings.TrimSpace(string(x))
	case content.Number:
		return x.String()
	default:
		return ""
	}
}

func safeCSS(v string) bool {
	lower := strings.ToLower(v)
	if strings.ContainsAny(v, ";<>{}\"\\") {
		return false
	}
	return !strings.Contains(lower, "expression(") && !strings.Contains(lower, "javascript:") && !strings.Contains(lower, "url(")
}

func kebab(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// safeURL keeps http(s), mailto, tel, fragment and relative links.
// Protocol-relative links (//host) are dropped.
func safeURL(s string) string {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch {
	case s == "":
		return ""
	case strings.HasPrefix(s, "//"), strings.HasPrefix(s, "/\\"):
		return ""
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "mailto:"), strings.HasPrefix(lower, "tel:"),
		strings.HasPrefix(s, "#"), strings.HasPrefix(s, "/"):
		return s
	case strings.Contains(lower, ":"):
		return ""
	default:
		return s
	}
}
