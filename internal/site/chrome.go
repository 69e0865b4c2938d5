package site

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/agentic-research/vitrine/internal/content"
)

func (r renderer) header(v content.Value) g.Node {
	h, ok := v.(content.Object)
	if !ok {
		return nil
	}
	base := content.Path{content.Key("header")}

	links := content.List{}
	if l, ok := h["navLinks"].(content.List); ok {
		links = l
	}
	nav := make([]g.Node, 0, len(links))
	for i, l := range links {
		p := base.Append(content.Key("navLinks"), content.Index(i))
		nav = append(nav, Li(A(
			Href(safeURL(content.Text(content.Field(l, "href")))),
			r.path(p),
			g.If(content.Text(h["navLinkColor"]) != "", Style(css(content.Object{"color": h["navLinkColor"]}))),
			g.Text(content.Text(content.Field(l, "name"))),
		)))
	}

	return Header(
		Class("site-header"),
		r.path(base),
		g.If(css(content.Object{"backgroundColor": h["backgroundColor"]}) != "",
			Style(css(content.Object{"backgroundColor": h["backgroundColor"]}))),
		r.image(base.Append(content.Key("logoUrl")), content.Text(h["logoUrl"]), "Logo", h["logoStyle"]),
		Nav(styled(h["navStyle"]), Ul(g.Group(nav))),
		r.button(base, h),
	)
}

func (r renderer) footer(v content.Value) g.Node {
	f, ok := v.(content.Object)
	if !ok {
		return nil
	}
	base := content.Path{content.Key("footer")}

	var social []g.Node
	if l, ok := f["socialLinks"].(content.List); ok {
		for i, s := range l {
			social = append(social, Li(A(
				Href(safeURL(content.Text(content.Field(s, "href")))),
				g.Attr("rel", "noopener"),
				r.path(base.Append(content.Key("socialLinks"), content.Index(i))),
				g.Text(content.Text(content.Field(s, "name"))),
			)))
		}
	}

	contact := content.Field(f, "contact")
	legal := content.Field(f, "legal")
	contactPath := base.Append(content.Key("contact"))
	legalPath := base.Append(content.Key("legal"))

	return Footer(
		Class("site-footer"),
		r.path(base),
		g.If(sectionStyle(f) != "", Style(sectionStyle(f))),
		r.image(base.Append(content.Key("logoUrl")), content.Text(f["logoUrl"]), "Logo", f["logoStyle"]),
		g.If(len(social) > 0, Ul(Class("social"), g.Group(social))),
		g.If(content.Truthy(contact), g.El("address",
			styled(f["contactStyle"]),
			g.If(content.Text(content.Field(contact, "email")) != "", A(
				Href("mailto:"+content.Text(content.Field(contact, "email"))),
				r.path(contactPath.Append(content.Key("email"))),
				g.Text(content.Text(content.Field(contact, "email"))),
			)),
			g.If(content.Text(content.Field(contact, "phone")) != "", Span(
				r.path(contactPath.Append(content.Key("phone"))),
				g.Text(content.Text(content.Field(contact, "phone"))),
			)),
		)),
		g.If(content.Truthy(legal), Div(
			Class("legal"),
			styled(f["legalStyle"]),
			g.If(content.Text(content.Field(legal, "privacyPolicyText")) != "", A(
				Href(safeURL(content.Text(content.Field(legal, "privacyPolicyLink")))),
				r.path(legalPath.Append(content.Key("privacyPolicyText"))),
				g.Text(content.Text(content.Field(legal, "privacyPolicyText"))),
			)),
			g.If(content.Text(content.Field(legal, "cnpj")) != "", Span(
				r.path(legalPath.Append(content.Key("cnpj"))),
				g.Text(content.Text(content.Field(legal, "cnpj"))),
			)),
		)),
	)
}
