package writeback

import (
	"fmt"

	"github.com/agentic-research/vitrine/internal/content"
)

// ValidationError locates a structural problem in a content document.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "document: " + e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// Validate returns the first structural problem in tree, or nil. A document
// that fails validation cannot be rendered or exported faithfully.
func Validate(tree content.Value) error {
	if errs := Problems(tree); len(errs) > 0 {
		return &errs[0]
	}
	return nil
}

// Problems returns every structural problem in tree.
func Problems(tree content.Value) []ValidationError {
	root, ok := tree.(content.Object)
	if !ok {
		return []ValidationError{{Message: fmt.Sprintf("root must be an object, got %s", kindOf(tree))}}
	}

	var errs []ValidationError
	if order, ok := root["sectionOrder"]; ok {
		l, isList := order.(content.List)
		if !isList {
			errs = append(errs, ValidationError{Path: "sectionOrder", Message: "must be a list of section keys"})
		}
		for i, e := range l {
			if _, isString := e.(content.String); !isString {
				errs = append(errs, ValidationError{
					Path:    fmt.Sprintf("sectionOrder[%d]", i),
					Message: fmt.Sprintf("section key must be a string, got %s", kindOf(e)),
				})
			}
		}
	}
	if defaults, ok := root["_newContentDefaults"]; ok {
		if _, isObject := defaults.(content.Object); !isObject {
			errs = append(errs, ValidationError{Path: "_newContentDefaults", Message: "templates must be an object"})
		}
	}
	for _, key := range root.Keys() {
		section, isObject := root[key].(content.Object)
		if !isObject {
			continue
		}
		blocks, ok := section["customBlocks"]
		if !ok {
			continue
		}
		switch blocks.(type) {
		case content.List, content.Null:
		default:
			errs = append(errs, ValidationError{
				Path:    key + ".customBlocks",
				Message: fmt.Sprintf("must be a list, got %s", kindOf(blocks)),
			})
		}
	}
	return errs
}

func kindOf(v content.Value) string {
	if v == nil {
		return content.KindNull.String()
	}
	return v.Kind().String()
}
