// Package linter reports soft problems in a content document: things that
// render, but probably not the way the editor intended.
package linter

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/agentic-research/vitrine/internal/content"
)

type Diagnostic struct {
	Path    string
	Message string
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return d.Message
	}
	return fmt.Sprintf("%s: %s", d.Path, d.Message)
}

var (
	hexColor  = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	funcColor = regexp.MustCompile(`^(rgb|rgba|hsl|hsla)\([^()]*\)$`)
	namedish  = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// BlockTypes are the custom block kinds the page knows how to render.
var BlockTypes = []string{"heading", "paragraph", "image"}

// Lint checks tree and returns diagnostics ordered by path.
func Lint(tree content.Value) []Diagnostic {
	root, ok := tree.(content.Object)
	if !ok {
		return []Diagnostic{{Message: "document root is not an object"}}
	}

	var diags []Diagnostic
	diags = append(diags, lintSectionOrder(root)...)
	diags = append(diags, lintTemplates(root)...)
	walk(root, nil, func(p content.Path, v content.Value) {
		diags = append(diags, lintNode(p, v)...)
	})

	sort.SliceStable(diags, func(i, j int) bool { return diags[i].Path < diags[j].Path })
	return diags
}

func lintSectionOrder(root content.Object) []Diagnostic {
	order, ok := root["sectionOrder"].(content.List)
	if !ok {
		return []Diagnostic{{Path: "sectionOrder", Message: "missing; no sections will render"}}
	}

	var diags []Diagnostic
	seen := make(map[string]bool, len(order))
	for i, e := range order {
		p := fmt.Sprintf("sectionOrder[%d]", i)
		key := content.Text(e)
		if key == "" {
			diags = append(diags, Diagnostic{Path: p, Message: "empty section key"})
			continue
		}
		if seen[key] {
			diags = append(diags, Diagnostic{Path: p, Message: fmt.Sprintf("section %q listed twice", key)})
		}
		seen[key] = true
		if _, isObject := root[key].(content.Object); !isObject {
			diags = append(diags, Diagnostic{Path: p, Message: fmt.Sprintf("section %q has no content", key)})
		}
	}
	return diags
}

func lintTemplates(root content.Object) []Diagnostic {
	defaults, ok := root["_newContentDefaults"].(content.Object)
	if !ok {
		return []Diagnostic{{Path: "_newContentDefaults", Message: "missing; new items and custom blocks cannot be added"}}
	}
	var diags []Diagnostic
	for _, kind := range BlockTypes {
		name := "customBlock" + strings.ToUpper(kind[:1]) + kind[1:]
		if _, ok := defaults[name]; !ok {
			diags = append(diags, Diagnostic{
				Path:    "_newContentDefaults." + name,
				Message: fmt.Sprintf("no template; %s blocks cannot be added", kind),
			})
		}
	}
	return diags
}

func lintNode(p content.Path, v content.Value) []Diagnostic {
	var diags []Diagnostic
	if len(p) > 0 && !p[len(p)-1].IsIndex {
		key := p[len(p)-1].Key
		if s, ok := v.(content.String); ok && strings.HasSuffix(strings.ToLower(key), "color") && !validColor(string(s)) {
			diags = append(diags, Diagnostic{Path: p.String(), Message: fmt.Sprintf("%q is not a CSS color", string(s))})
		}
		if key == "customBlocks" {
			if l, ok := v.(content.List); ok {
				for i, b := range l {
					t := content.Text(content.Field(b, "type"))
					if !knownBlock(t) {
						diags = append(diags, Diagnostic{
							Path:    p.Append(content.Index(i), content.Key("type")).String(),
							Message: fmt.Sprintf("unknown block type %q", t),
						})
					}
				}
			}
		}
	}
	// Top-level sections: a visible section with an empty title renders a gap.
	if len(p) == 1 && !strings.HasPrefix(p[0].Key, "_") {
		if obj, ok := v.(content.Object); ok {
			if title, ok := obj["title"].(content.String); ok && strings.TrimSpace(string(title)) == "" && visible(obj) {
				diags = append(diags, Diagnostic{Path: p.Append(content.Key("title")).String(), Message: "empty title"})
			}
		}
	}
	return diags
}

func walk(v content.Value, p content.Path, fn func(content.Path, content.Value)) {
	fn(p, v)
	switch x := v.(type) {
	case content.Object:
		for _, k := range x.Keys() {
			walk(x[k], p.Append(content.Key(k)), fn)
		}
	case content.List:
		for i, e := range x {
			walk(e, p.Append(content.Index(i)), fn)
		}
	}
}

// visible matches the page: outside edit mode a section renders only when
// its show flag is truthy.
func visible(section content.Object) bool {
	return content.Truthy(section["show"])
}

func validColor(s string) bool {
	s = strings.TrimSpace(s)
	return hexColor.MatchString(s) || funcColor.MatchString(s) || namedish.MatchString(s)
}

func knownBlock(t string) bool {
	for _, k := range BlockTypes {
		if t == k {
			return true
		}
	}
	return false
}
