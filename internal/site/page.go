package site

import (
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/agentic-research/vitrine/internal/content"
)

// Options control how a page is rendered.
type Options struct {
	Title    string
	EditMode bool
}

type renderer struct {
	opt Options
}

// Page renders the whole site: header, the sections named in sectionOrder,
// and footer. Outside edit mode, sections whose show flag is falsy are left
// out; keys without section content are always skipped.
func Page(tree content.Value, opt Options) g.Node {
	r := renderer{opt: opt}
	root, _ := tree.(content.Object)

	title := opt.Title
	if t := content.Text(content.Field(root, "siteTitle")); t != "" {
		title = t
	}

	order, _ := root["sectionOrder"].(content.List)
	var sections []g.Node
	for i, e := range order {
		key := content.Text(e)
		sec, ok := root[key].(content.Object)
		if key == "" || !ok {
			continue
		}
		if !opt.EditMode && !content.Truthy(sec["show"]) {
			continue
		}
		// Move controls follow the raw order, non-string entries included,
		// since that is the list MoveSection swaps in.
		sections = append(sections, r.section(key, sec, i == 0, i == len(order)-1))
	}

	return Layout(PageConfig{Title: title, EditMode: opt.EditMode},
		r.header(content.Field(root, "header")),
		Main(g.Group(sections)),
		r.footer(content.Field(root, "footer")),
		g.If(opt.EditMode, r.toolbar()),
	)
}

// path marks an element as editable in edit mode.
func (r renderer) path(p content.Path) g.Node {
	return g.If(r.opt.EditMode, g.Attr("data-path", p.String()))
}

func (r renderer) section(key string, sec content.Object, first, last bool) g.Node {
	base := content.Path{content.Key(key)}
	hidden := !content.Truthy(sec["show"])

	heading := H2
	if key == "hero" {
		heading = H1
	}

	return Section(
		ID(key),
		Class("section section-"+key),
		g.If(r.opt.EditMode && hidden, g.Attr("data-hidden", "true")),
		r.path(base),
		g.If(sectionStyle(sec) != "", Style(sectionStyle(sec))),

		g.If(r.opt.EditMode, r.sectionControls(key, hidden, first, last)),

		g.If(content.Text(sec["title"]) != "",
			heading(r.path(base.Append(content.Key("title"))), styled(sec["titleStyle"]), rich(sec["title"]))),
		g.If(content.Text(sec["subtitle"]) != "",
			P(Class("subtitle"), r.path(base.Append(content.Key("subtitle"))), rich(sec["subtitle"]))),
		g.If(content.Text(sec["description"]) != "",
			P(Class("description"), r.path(base.Append(content.Key("description"))), rich(sec["description"]))),
		g.If(content.Text(sec["imageUrl"]) != "",
			r.image(base.Append(content.Key("imageUrl")), content.Text(sec["imageUrl"]), content.Text(sec["title"]), nil)),

		r.button(base, sec),
		r.lists(base, sec),
		r.customBlocks(base.Append(content.Key("customBlocks")), sec["customBlocks"]),
	)
}

func sectionStyle(sec content.Object) string {
	style := content.Object{}
	if bg := sec["backgroundColor"]; bg != nil {
		style["backgroundColor"] = bg
	}
	if fg := sec["textColor"]; fg != nil {
		style["color"] = fg
	}
	return css(style)
}

func styled(style content.Value) g.Node {
	s := css(style)
	return g.If(s != "", Style(s))
}

// button renders a call to action stored as {text, href} under ctaButton
// or button.
func (r renderer) button(base content.Path, sec content.Object) g.Node {
	for _, k := range []string{"ctaButton", "button"} {
		b, ok := sec[k].(content.Object)
		if !ok || content.Text(b["text"]) == "" {
			continue
		}
		return A(
			Class("button"),
			Href(safeURL(content.Text(b["href"]))),
			r.path(base.Append(content.Key(k))),
			styled(sec[k+"Style"]),
			g.Text(content.Text(b["text"])),
		)
	}
	return nil
}

// lists renders every list of objects in the section (services, members,
// items, posts...) except customBlocks.
func (r renderer) lists(base content.Path, sec content.Object) g.Node {
	var out []g.Node
	for _, k := range sec.Keys() {
		if k == "customBlocks" {
			continue
		}
		l, ok := sec[k].(content.List)
		if !ok || !allObjects(l) {
			continue
		}
		lp := base.Append(content.Key(k))
		items := make([]g.Node, 0, len(l))
		for i, item := range l {
			items = append(items, r.item(lp.Append(content.Index(i)), item.(content.Object), i, len(l)))
		}
		out = append(out, Ul(Class("items items-"+k), r.path(lp), g.Group(items)))
	}
	return g.Group(out)
}

func allObjects(l content.List) bool {
	if len(l) == 0 {
		return false
	}
	for _, v := range l {
		if _, ok := v.(content.Object); !ok {
			return false
		}
	}
	return true
}

var headingFields = []string{"title", "name", "question"}

func (r renderer) item(p content.Path, item content.Object, i, n int) g.Node {
	var (
		head   g.Node
		fields []g.Node
	)
	used := map[string]bool{}
	for _, k := range headingFields {
		if s := content.Text(item[k]); s != "" {
			head = H3(r.path(p.Append(content.Key(k))), rich(item[k]))
			used[k] = true
			break
		}
	}
	href := safeURL(content.Text(item["href"]))
	used["href"] = true

	for _, k := range item.Keys() {
		if used[k] {
			continue
		}
		s, ok := item[k].(content.String)
		if !ok || s == "" || strings.HasSuffix(strings.ToLower(k), "color") {
			continue
		}
		fp := p.Append(content.Key(k))
		if isImageField(k) {
			fields = append(fields, r.image(fp, string(s), content.Text(item["name"]), item["imageStyle"]))
			continue
		}
		fields = append(fields, P(Class("field-"+k), r.path(fp), rich(s)))
	}

	body := []g.Node{head, g.Group(fields)}
	if href != "" {
		body = []g.Node{A(Href(href), g.Group(body))}
	}
	return Li(
		r.path(p),
		g.If(r.opt.EditMode, g.Group([]g.Node{
			g.Attr("draggable", "true"),
			g.Attr("data-index", strconv.Itoa(i)),
		})),
		g.Group(body),
		g.If(r.opt.EditMode, r.itemControls(p, i, n)),
	)
}

func isImageField(k string) bool {
	k = strings.ToLower(k)
	return strings.Contains(k, "image") || strings.Contains(k, "logo") || strings.HasSuffix(k, "src") || k == "photo" || k == "avatar"
}

func (r renderer) image(p content.Path, src, alt string, style content.Value) g.Node {
	src = safeURL(src)
	if src == "" {
		return nil
	}
	return Img(Src(src), Alt(alt), g.Attr("loading", "lazy"), r.path(p), styled(style))
}
