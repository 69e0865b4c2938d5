package editor

import "github.com/agentic-research/vitrine/internal/content"

// Export returns the current document as indented JSON text, without the
// top-level scaffold keys. With no arguments the document's configured keys
// are stripped.
func (d *Document) Export(scaffoldKeys ...string) []byte {
	if len(scaffoldKeys) == 0 {
		scaffoldKeys = d.scaffold
	}
	return content.Encode(Strip(d.Snapshot(), scaffoldKeys...), 2)
}

// Strip removes keys from the top level of an object tree. Other trees are
// returned as is.
func Strip(tree content.Value, keys ...string) content.Value {
	obj, ok := tree.(content.Object)
	if !ok {
		return tree
	}
	out := make(content.Object, len(obj))
	for k, v := range obj {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}
