package editor

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agentic-research/vitrine/api"
	"github.com/agentic-research/vitrine/internal/content"
)

var (
	ErrNoTemplate = errors.New("no such template")
	ErrDirection  = errors.New("direction must be up or down")
	ErrBlockKind  = errors.New("unknown block kind")
)

// SectionOrderKey lists the page's section keys in display order.
const SectionOrderKey = "sectionOrder"

// MoveSection swaps key with its neighbour in sectionOrder. Moving past
// either end, or a key not in the order, is a no-op.
func (d *Document) MoveSection(ctx context.Context, key string, dir api.Direction) (uint64, error) {
	step := 0
	switch dir {
	case api.Up:
		step = -1
	case api.Down:
		step = 1
	default:
		return d.Revision(), fmt.Errorf("move section %q: %w", key, ErrDirection)
	}

	orderPath := content.Path{content.Key(SectionOrderKey)}
	return d.commit(ctx, SectionOrderKey, "MOVE_"+strings.ToUpper(string(dir)), strconv.Quote(key), func(tree content.Value) (content.Value, error) {
		v, _ := content.Get(tree, orderPath)
		order, ok := v.(content.List)
		if !ok {
			return nil, errUnchanged
		}
		i := indexOfString(order, key)
		j := i + step
		if i < 0 || j < 0 || j >= len(order) {
			return nil, errUnchanged
		}
		moved := content.Clone(order).(content.List)
		moved[i], moved[j] = moved[j], moved[i]
		return content.Apply(tree, orderPath, moved, content.Update)
	})
}

// HideSection soft-deletes a section: it stays in the document and in
// sectionOrder but is not rendered outside edit mode.
func (d *Document) HideSection(ctx context.Context, key string) (uint64, error) {
	return d.setShow(ctx, key, false)
}

// ShowSection undoes HideSection.
func (d *Document) ShowSection(ctx context.Context, key string) (uint64, error) {
	return d.setShow(ctx, key, true)
}

func (d *Document) setShow(ctx context.Context, key string, show bool) (uint64, error) {
	p := content.Path{content.Key(key), content.Key("show")}
	return d.commit(ctx, p.String(), string(content.Update), strconv.FormatBool(show), func(tree content.Value) (content.Value, error) {
		return content.Apply(tree, p, content.Bool(show), content.Update)
	})
}

// AddCustomBlock appends a new heading, paragraph or image block to a
// section's customBlocks, copied from the customBlock<Kind> template.
func (d *Document) AddCustomBlock(ctx context.Context, section string, kind api.BlockKind) (uint64, error) {
	switch kind {
	case api.BlockHeading, api.BlockParagraph, api.BlockImage:
	default:
		return d.Revision(), fmt.Errorf("add block to %q: %w %q", section, ErrBlockKind, kind)
	}
	name := "customBlock" + strings.ToUpper(string(kind[:1])) + string(kind[1:])
	list := content.Path{content.Key(section), content.Key("customBlocks")}
	return d.addTemplate(ctx, list, name)
}

// AddFromTemplate appends a copy of the named scaffold template to the list
// at listPath.
func (d *Document) AddFromTemplate(ctx context.Context, listPath, template string) (uint64, error) {
	p, err := content.ParsePath(listPath)
	if err != nil {
		return d.Revision(), &content.MutationError{Path: listPath, Action: content.AddItem, Err: err}
	}
	return d.addTemplate(ctx, p, template)
}

func (d *Document) addTemplate(ctx context.Context, list content.Path, template string) (uint64, error) {
	return d.commit(ctx, list.String(), string(content.AddItem), strconv.Quote(template), func(tree content.Value) (content.Value, error) {
		tpl, ok := d.template(tree, template)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrNoTemplate, template)
		}
		return content.Apply(tree, list, tpl, content.AddItem)
	})
}

// template looks name up under the first scaffold key that has it.
func (d *Document) template(tree content.Value, name string) (content.Value, bool) {
	for _, k := range d.scaffold {
		if v, ok := content.Get(tree, content.Path{content.Key(k), content.Key(name)}); ok {
			if _, isNull := v.(content.Null); !isNull {
				return v, true
			}
		}
	}
	return nil, false
}

// CloneItem appends a copy of the list element at itemPath to the same list.
func (d *Document) CloneItem(ctx context.Context, itemPath string) (uint64, error) {
	p, err := content.ParsePath(itemPath)
	if err != nil {
		return d.Revision(), &content.MutationError{Path: itemPath, Action: content.AddItem, Err: err}
	}
	if len(p) == 0 || !p[len(p)-1].IsIndex {
		return d.Revision(), &content.MutationError{Path: itemPath, Action: content.AddItem, Err: content.ErrNotList}
	}
	return d.commit(ctx, itemPath, string(content.AddItem), "", func(tree content.Value) (content.Value, error) {
		item, ok := content.Get(tree, p)
		if !ok {
			return nil, &content.MutationError{Path: itemPath, Action: content.AddItem, Err: content.ErrIndexRange}
		}
		return content.Apply(tree, p.Parent(), item, content.AddItem)
	})
}

// MoveItem moves the element at from so that it ends up at index to,
// shifting the elements in between.
func (d *Document) MoveItem(ctx context.Context, listPath string, from, to int) (uint64, error) {
	p, err := content.ParsePath(listPath)
	if err != nil {
		return d.Revision(), &content.MutationError{Path: listPath, Action: content.Update, Err: err}
	}
	detail := fmt.Sprintf("[%d,%d]", from, to)
	return d.commit(ctx, listPath, "MOVE_ITEM", detail, func(tree content.Value) (content.Value, error) {
		v, _ := content.Get(tree, p)
		l, ok := v.(content.List)
		if !ok {
			return nil, &content.MutationError{Path: listPath, Action: content.Update, Err: content.ErrNotList}
		}
		if from < 0 || from >= len(l) || to < 0 || to >= len(l) {
			return nil, &content.MutationError{Path: listPath, Action: content.Update, Err: content.ErrIndexRange}
		}
		if from == to {
			return nil, errUnchanged
		}
		return content.Apply(tree, p, reorder(l, from, to), content.Update)
	})
}

func reorder(l content.List, from, to int) content.List {
	out := make(content.List, 0, len(l))
	item := l[from]
	for i, v := range l {
		if i == from {
			continue
		}
		if len(out) == to {
			out = append(out, item)
		}
		out = append(out, v)
	}
	if len(out) == to {
		out = append(out, item)
	}
	return out
}

func indexOfString(l content.List, s string) int {
	for i, v := range l {
		if str, ok := v.(content.String); ok && string(str) == s {
			return i
		}
	}
	return -1
}

// SectionKeys returns the keys in sectionOrder, skipping non-string entries.
func SectionKeys(tree content.Value) []string {
	v, _ := content.Get(tree, content.Path{content.Key(SectionOrderKey)})
	l, _ := v.(content.List)
	keys := make([]string, 0, len(l))
	for _, e := range l {
		if s, ok := e.(content.String); ok {
			keys = append(keys, string(s))
		}
	}
	return keys
}
