package site

import (
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/agentic-research/vitrine/internal/content"
)

// customBlocks renders the heading, paragraph and image blocks an editor
// appended to a section. Blocks of unknown type render nothing.
func (r renderer) customBlocks(p content.Path, v content.Value) g.Node {
	blocks, ok := v.(content.List)
	if !ok || len(blocks) == 0 {
		return nil
	}
	out := make([]g.Node, 0, len(blocks))
	for i, b := range blocks {
		if n := r.block(p.Append(content.Index(i)), b, i, len(blocks)); n != nil {
			out = append(out, n)
		}
	}
	return Div(Class("custom-blocks"), r.path(p), g.Group(out))
}

func (r renderer) block(p content.Path, b content.Value, i, n int) g.Node {
	style := content.Field(b, "style")
	var inner g.Node
	switch content.Text(content.Field(b, "type")) {
	case "heading":
		inner = H2(styled(withPreLine(style)), r.path(p.Append(content.Key("text"))), rich(content.Field(b, "text")))
	case "paragraph":
		inner = P(styled(withPreLine(style)), r.path(p.Append(content.Key("text"))), rich(content.Field(b, "text")))
	case "image":
		inner = r.image(p.Append(content.Key("imageUrl")), content.Text(content.Field(b, "imageUrl")), "Custom content", style)
	default:
		return nil
	}
	return Div(
		Class("custom-block"),
		r.path(p),
		g.If(r.opt.EditMode, g.Attr("data-index", strconv.Itoa(i))),
		inner,
		g.If(r.opt.EditMode, r.itemControls(p, i, n)),
	)
}

func withPreLine(style content.Value) content.Value {
	out := content.Object{"whiteSpace": content.String("pre-line")}
	if obj, ok := style.(content.Object); ok {
		for k, v := range obj {
			out[k] = v
		}
	}
	return out
}
