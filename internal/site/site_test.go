package site

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/agentic-research/vitrine/internal/content"
)

func render(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func decode(t *testing.T, s string) content.Value {
	t.Helper()
	v, err := content.Decode([]byte(s))
	require.NoError(t, err)
	return v
}

const doc = `{
  "siteTitle": "Acme",
  "sectionOrder": ["hero", "about", "faq", "ghost", "team"],
  "header": {
    "logoUrl": "/logo.png",
    "navLinks": [{"name": "About", "href": "#about"}, {"name": "Evil", "href": "javascript:alert(1)"}],
    "backgroundColor": "#ffffff"
  },
  "hero": {
    "show": true,
    "title": "Hi <script>alert(1)</script><b>there</b>",
    "subtitle": "Sub",
    "ctaButton": {"text": "Contact", "href": "#contact"},
    "backgroundColor": "#000"
  },
  "about": {"show": false, "title": "Hidden section"},
  "faq": {
    "show": true,
    "title": "FAQ",
    "items": [{"question": "Q1", "answer": "A1"}, {"question": "Q2", "answer": "A2"}],
    "customBlocks": [
      {"type": "heading", "text": "Block title", "style": {"fontSize": "2rem", "color": "red"}},
      {"type": "image", "imageUrl": "/img.png", "style": {"width": "100%"}},
      {"type": "video", "text": "ignored"}
    ]
  },
  "team": {"title": "No show flag"},
  "footer": {
    "socialLinks": [{"name": "Instagram", "href": "https://instagram.com/acme"}],
    "contact": {"email": "hi@acme.test", "phone": "123"},
    "legal": {"privacyPolicyText": "Privacy", "privacyPolicyLink": "/privacy"}
  }
}`

func TestPage_Public(t *testing.T) {
	html := render(t, Page(decode(t, doc), Options{Title: "fallback"}))

	assert.Contains(t, html, "<title>Acme</title>")
	assert.Contains(t, html, "Hi <b>there</b></h1>")
	assert.NotContains(t, html, "<script>alert")
	assert.NotContains(t, html, "alert(1)")
	assert.NotContains(t, html, "Hidden section", "show=false is skipped")
	assert.NotContains(t, html, "No show flag", "a missing show flag counts as hidden")
	assert.NotContains(t, html, "data-path", "public pages carry no edit hooks")
	assert.NotContains(t, html, "editor.js")

	assert.Less(t, strings.Index(html, `id="hero"`), strings.Index(html, `id="faq"`))
	assert.Contains(t, html, `style="background-color: #000"`)
	assert.Contains(t, html, `href="#contact"`)
	assert.Contains(t, html, "Q2")
	assert.Contains(t, html, `mailto:hi@acme.test`)
	assert.Contains(t, html, `href="https://instagram.com/acme"`)
	assert.Contains(t, html, `href=""`, "unsafe nav links are blanked")
}

func TestPage_EditMode(t *testing.T) {
	html := render(t, Page(decode(t, doc), Options{EditMode: true}))

	assert.Contains(t, html, "Hidden section", "edit mode shows hidden sections")
	assert.Contains(t, html, `data-hidden="true"`)
	assert.Contains(t, html, `data-path="faq.items[1].question"`)
	assert.Contains(t, html, `data-path="faq.customBlocks[0].text"`)
	assert.Contains(t, html, `data-path="header.navLinks[0]"`)
	assert.Contains(t, html, `data-path="footer.contact.email"`)
	assert.Contains(t, html, `data-action="move-up" disabled data-section="hero"`)
	assert.Contains(t, html, `data-action="show" data-section="about"`)
	assert.Contains(t, html, "/static/editor.js")
	assert.Contains(t, html, `href="/admin/export"`)
}

func TestPage_MoveControlsFollowRawOrder(t *testing.T) {
	tree := decode(t, `{
	  "sectionOrder": [1, "hero", "faq", null],
	  "hero": {"show": true, "title": "Hi"},
	  "faq": {"show": true, "title": "FAQ"}
	}`)
	html := render(t, Page(tree, Options{EditMode: true}))

	assert.Contains(t, html, `data-action="move-up" data-section="hero"`)
	assert.Contains(t, html, `data-action="move-down" data-section="faq"`)
	assert.NotContains(t, html, `disabled data-section="hero"`)
	assert.NotContains(t, html, `disabled data-section="faq"`)
}

func TestPage_CustomBlocks(t *testing.T) {
	html := render(t, Page(decode(t, doc), Options{}))

	assert.Contains(t, html, `<h2 style="color: red; font-size: 2rem; white-space: pre-line">Block title</h2>`)
	assert.Contains(t, html, `src="/img.png"`)
	assert.Contains(t, html, `style="width: 100%"`)
	assert.NotContains(t, html, "ignored")
}

func TestPage_NotAnObject(t *testing.T) {
	html := render(t, Page(content.List{}, Options{Title: "Empty"}))
	assert.Contains(t, html, "<title>Empty</title>")
	assert.Contains(t, html, "<main></main>")
}

func TestCSS(t *testing.T) {
	style := content.Object{
		"backgroundColor": content.String("#fff"),
		"zIndex":          content.Number(3),
		"color":           content.String("red; background: url(x)"),
		"backgroundImage": content.String("url(javascript:alert(1))"),
		"border":          content.Bool(true),
	}
	assert.Equal(t, "background-color: #fff; z-index: 3", css(style))
	assert.Equal(t, "", css(content.String("x")))
}

func TestSafeURL(t *testing.T) {
	for in, want := range map[string]string{
		"https://a.test":        "https://a.test",
		"/path":                 "/path",
		"#section":              "#section",
		"mailto:x@y.z":          "mailto:x@y.z",
		"page.html":             "page.html",
		"javascript:alert(1)":   "",
		" JavaScript:alert(1) ": "",
		"data:text/html,x":      "",
		"//evil.test/x":         "",
		"/\\evil.test":          "",
	} {
		assert.Equal(t, want, safeURL(in), in)
	}
}

func TestLoadingPage(t *testing.T) {
	html := render(t, LoadingPage("Acme"))
	assert.Contains(t, html, "Loading content")
	assert.Contains(t, html, `role="status"`)
}

func TestExportPage(t *testing.T) {
	html := render(t, ExportPage("Acme", []byte(`{"hero":{"title":"<b>x</b>"}}`)))
	assert.Contains(t, html, "<textarea")
	assert.Contains(t, html, "readonly")
	assert.Contains(t, html, "&lt;b&gt;x&lt;/b&gt;")
	assert.NotContains(t, html, "<b>x</b>")
}
