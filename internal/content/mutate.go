package content

import (
	"errors"
	"fmt"
	"strings"
)

// Action is one of the three supported mutation kinds.
type Action string

const (
	Update     Action = "UPDATE"
	AddItem    Action = "ADD_ITEM"
	DeleteItem Action = "DELETE_ITEM"
)

var (
	ErrInvalidPath   = errors.New("invalid path")
	ErrMissingKey    = errors.New("path has no target key")
	ErrNotList       = errors.New("target is not a list")
	ErrNotContainer  = errors.New("cannot address into value")
	ErrIndexRange    = errors.New("index out of range")
	ErrUnknownAction = errors.New("unknown action")
)

// ParseAction maps the wire name of an action to an Action. The empty
// string means UPDATE.
func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToUpper(strings.TrimSpace(s))); a {
	case "":
		return Update, nil
	case Update, AddItem, DeleteItem:
		return a, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownAction, s)
	}
}

// MutationError describes a rejected mutation.
type MutationError struct {
	Path   string
	Action Action
	Err    error
}

func (e *MutationError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Action, e.Path, e.Err)
}

func (e *MutationError) Unwrap() error { return e.Err }

// Mutate parses path and applies action to a deep copy of tree. The caller's
// tree and value are never modified or aliased by the result.
//
// On error the returned tree is a fresh copy of the input, so callers can
// always keep the result.
func Mutate(tree Value, path string, value Value, action Action) (Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return Clone(tree), &MutationError{Path: path, Action: action, Err: err}
	}
	return apply(tree, p, path, value, action)
}

// Apply is Mutate for an already parsed path.
func Apply(tree Value, p Path, value Value, action Action) (Value, error) {
	return apply(tree, p, p.String(), value, action)
}

func apply(tree Value, p Path, raw string, value Value, action Action) (Value, error) {
	if action == "" {
		action = Update
	}
	fail := func(err error) (Value, error) {
		return Clone(tree), &MutationError{Path: raw, Action: action, Err: err}
	}

	var (
		out Value
		err error
	)
	switch action {
	case Update:
		if len(p) == 0 {
			return fail(ErrMissingKey)
		}
		out, err = descend(Clone(tree), p, 0, func(parent Value, target Segment) (Value, error) {
			return set(parent, target, Clone(value))
		})
	case AddItem:
		out, err = addItem(Clone(tree), p, Clone(value))
	case DeleteItem:
		out, err = deleteItem(Clone(tree), p, value)
	default:
		return fail(fmt.Errorf("%w %q", ErrUnknownAction, string(action)))
	}
	if err != nil {
		return fail(err)
	}
	return out, nil
}

// leafFunc mutates the parent container at its target segment and returns
// the (possibly replaced) parent.
type leafFunc func(parent Value, target Segment) (Value, error)

// descend walks p[i:len(p)-1] from node, creating missing containers, and
// calls leaf on the container holding the final segment. node is a private
// copy and is modified in place where possible.
func descend(node Value, p Path, i int, leaf leafFunc) (Value, error) {
	if isAbsent(node) {
		node = containerFor(p[i])
	}
	if i == len(p)-1 {
		return leaf(node, p[i])
	}
	child, ok, err := get(node, p[i])
	if err != nil {
		return nil, err
	}
	if !ok || isAbsent(child) {
		// The kind of a new container follows the segment that will index it.
		child = containerFor(p[i+1])
	}
	child, err = descend(child, p, i+1, leaf)
	if err != nil {
		return nil, err
	}
	return set(node, p[i], child)
}

func addItem(root Value, p Path, value Value) (Value, error) {
	if len(p) == 0 {
		l, ok := root.(List)
		if !ok {
			return nil, ErrNotList
		}
		return append(l, value), nil
	}
	return descend(root, p, 0, func(parent Value, target Segment) (Value, error) {
		slot, ok, err := get(parent, target)
		if err != nil {
			return nil, err
		}
		if !ok || isAbsent(slot) {
			return set(parent, target, List{value})
		}
		l, isList := slot.(List)
		if !isList {
			return nil, fmt.Errorf("%w (%s)", ErrNotList, slot.Kind())
		}
		return set(parent, target, append(l, value))
	})
}

// deleteItem removes one list element. The canonical call addresses the
// element itself (items[1]); the list-plus-index form (path "items", value 1)
// is rewritten to it first.
func deleteItem(root Value, p Path, value Value) (Value, error) {
	if num, isNum := value.(Number); isNum {
		if v, found := Get(root, p); found {
			if l, isList := v.(List); isList {
				n, ok := indexValue(num)
				if !ok {
					return nil, fmt.Errorf("%w: %s of %d", ErrIndexRange, num, len(l))
				}
				p = p.Append(Index(n))
			}
		}
	}
	if len(p) == 0 || !p[len(p)-1].IsIndex {
		return nil, ErrNotList
	}
	target := p[len(p)-1]
	listPath := p.Parent()
	list, found := Get(root, listPath)
	if !found {
		return nil, ErrNotList
	}
	l, ok := list.(List)
	if !ok {
		return nil, fmt.Errorf("%w (%s)", ErrNotList, list.Kind())
	}
	if target.Index >= len(l) {
		return nil, fmt.Errorf("%w: %d of %d", ErrIndexRange, target.Index, len(l))
	}
	shrunk := append(l[:target.Index:target.Index], l[target.Index+1:]...)
	if len(listPath) == 0 {
		return shrunk, nil
	}
	return descend(root, listPath, 0, func(parent Value, t Segment) (Value, error) {
		return set(parent, t, shrunk)
	})
}

// Get returns the value at p, or false when any step is missing.
func Get(tree Value, p Path) (Value, bool) {
	node := orNull(tree)
	for _, seg := range p {
		next, ok, err := get(node, seg)
		if err != nil || !ok {
			return nil, false
		}
		node = next
	}
	return node, true
}

// Lookup parses path and returns a copy of the value found there.
func Lookup(tree Value, path string) (Value, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	v, ok := Get(tree, p)
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", path, ErrNotFound)
	}
	return Clone(v), nil
}

// ErrNotFound is returned by Lookup for a path that does not resolve.
var ErrNotFound = errors.New("no value at path")

func get(node Value, seg Segment) (Value, bool, error) {
	switch n := node.(type) {
	case Object:
		v, ok := n[seg.String()]
		return v, ok, nil
	case List:
		if !seg.IsIndex {
			return nil, false, fmt.Errorf("%w: key %q on list", ErrNotContainer, seg.Key)
		}
		if seg.Index >= len(n) {
			return nil, false, nil
		}
		return n[seg.Index], true, nil
	case Null, nil:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("%w: %q on %s", ErrNotContainer, seg.String(), node.Kind())
	}
}

func set(node Value, seg Segment, v Value) (Value, error) {
	switch n := node.(type) {
	case Object:
		n[seg.String()] = v
		return n, nil
	case List:
		if !seg.IsIndex {
			return nil, fmt.Errorf("%w: key %q on list", ErrNotContainer, seg.Key)
		}
		switch {
		case seg.Index < len(n):
			n[seg.Index] = v
		case seg.Index == len(n):
			n = append(n, v)
		default:
			return nil, fmt.Errorf("%w: %d of %d", ErrIndexRange, seg.Index, len(n))
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: %q on %s", ErrNotContainer, seg.String(), node.Kind())
	}
}

func containerFor(next Segment) Value {
	if next.IsIndex {
		return List{}
	}
	return Object{}
}

func isAbsent(v Value) bool {
	if v == nil {
		return true
	}
	_, null := v.(Null)
	return null
}

func indexValue(v Value) (int, bool) {
	n, ok := v.(Number)
	if !ok {
		return 0, false
	}
	i, ok := n.Int()
	if !ok || i < 0 {
		return 0, false
	}
	return i, true
}
