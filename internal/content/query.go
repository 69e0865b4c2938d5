package content

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
)

// Query evaluates a JSONPath selector (e.g. "$.team.members[*].name")
// against tree and returns copies of the matching nodes in document order.
func Query(tree Value, selector string) ([]Value, error) {
	x, err := jp.ParseString(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
	}

	results := x.Get(Native(tree))

	matches := make([]Value, 0, len(results))
	for _, r := range results {
		v, err := From(r)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", selector, err)
		}
		matches = append(matches, v)
	}
	return matches, nil
}

// Expr converts p into the equivalent ojg JSONPath expression.
func (p Path) Expr() jp.Expr {
	x := jp.R()
	for _, s := range p {
		if s.IsIndex {
			x = x.N(s.Index)
		} else {
			x = x.C(s.Key)
		}
	}
	return x
}
