// Package site renders the marketing page and its edit-mode affordances as
// HTML. Every editable element carries a data-path attribute holding the
// mutation path that changes it.
package site

import (
	"embed"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

//go:embed static
var Static embed.FS

type PageConfig struct {
	Title       string
	Description string
	EditMode    bool
}

func Layout(config PageConfig, children ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Vitrine"
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				g.If(config.Description != "", Meta(Name("description"), Content(config.Description))),
				Link(Rel("stylesheet"), Href("/static/site.css")),
			),
			Body(
				g.If(config.EditMode, Class("edit-mode")),
				g.Group(children),
				g.If(config.EditMode, Script(Type("module"), Src("/static/editor.js"))),
			),
		),
	})
}

// LoadingPage is shown until the content resource has been loaded. If the
// load failed it stays up; there is no retry.
func LoadingPage(title string) g.Node {
	return Layout(PageConfig{Title: title},
		Div(
			Class("loading"),
			g.Attr("role", "status"),
			P(g.Text("Loading content…")),
		),
	)
}

// ExportPage is the manual fallback when the export cannot be copied
// automatically: the JSON text in a read-only, pre-selected textarea.
func ExportPage(title string, json []byte) g.Node {
	return Layout(PageConfig{Title: title + " · export"},
		Main(
			Class("export"),
			H1(g.Text("Exported content")),
			P(g.Text("Copy the JSON below and hand it to the save process.")),
			Textarea(
				ID("export"),
				Name("content"),
				Rows("30"),
				g.Attr("readonly"),
				g.Attr("onfocus", "this.select()"),
				g.Attr("autofocus"),
				g.Text(string(json)),
			),
			P(A(Href("/api/export"), g.Attr("download", "content.json"), g.Text("Download content.json"))),
		),
	)
}
