package site

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/agentic-research/vitrine/internal/content"
)

// Edit-mode controls are plain buttons with data-action attributes; the
// editor script maps them onto the JSON API.

func actionButton(action, label string, disabled bool, attrs ...g.Node) g.Node {
	return Button(
		Type("button"),
		g.Attr("data-action", action),
		g.If(disabled, g.Attr("disabled")),
		g.Group(attrs),
		g.Text(label),
	)
}

func (r renderer) sectionControls(key string, hidden, first, last bool) g.Node {
	section := g.Attr("data-section", key)
	visibility := actionButton("hide", "Hide", false, section)
	if hidden {
		visibility = actionButton("show", "Show", false, section)
	}
	return Div(
		Class("section-controls"),
		actionButton("move-up", "↑", first, section),
		actionButton("move-down", "↓", last, section),
		visibility,
		actionButton("add-block", "+ Heading", false, section, g.Attr("data-kind", "heading")),
		actionButton("add-block", "+ Paragraph", false, section, g.Attr("data-kind", "paragraph")),
		actionButton("add-block", "+ Image", false, section, g.Attr("data-kind", "image")),
	)
}

func (r renderer) itemControls(p content.Path, i, n int) g.Node {
	item := g.Attr("data-item", p.String())
	list := g.Attr("data-list", p.Parent().String())
	return Div(
		Class("item-controls"),
		actionButton("clone", "Duplicate", false, item),
		actionButton("delete", "Delete", false, item),
		actionButton("move-item", "↑", i == 0, list, g.Attr("data-from", strconv.Itoa(i)), g.Attr("data-to", strconv.Itoa(i-1))),
		actionButton("move-item", "↓", i == n-1, list, g.Attr("data-from", strconv.Itoa(i)), g.Attr("data-to", strconv.Itoa(i+1))),
	)
}

func (r renderer) toolbar() g.Node {
	return Div(
		Class("admin-toolbar"),
		Span(g.Text("Edit mode")),
		A(Href("/admin/export"), g.Text("Export")),
		A(Href("/"), g.Text("Exit")),
	)
}
