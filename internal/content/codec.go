package content

import (
	"fmt"

	"github.com/ohler55/ojg/oj"
)

// Decode parses JSON text into a content tree.
func Decode(data []byte) (Value, error) {
	raw, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return From(raw)
}

// Encode writes v as JSON with object keys sorted. indent <= 0 produces
// compact output. HTML characters in strings are written as-is, since
// content fragments routinely carry markup.
func Encode(v Value, indent int) []byte {
	opts := oj.Options{
		Indent:     indent,
		Sort:       true,
		HTMLUnsafe: true,
	}
	if indent < 0 {
		opts.Indent = 0
	}
	return []byte(oj.JSON(Native(v), &opts))
}
