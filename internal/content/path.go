package content

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: either an object key or a list index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a segment addressing an object key.
func Key(k string) Segment { return Segment{Key: k} }

// Index returns a segment addressing a list index.
func Index(i int) Segment { return Segment{Index: i, IsIndex: true} }

// String returns the key, or the decimal index. It is the key used when the
// segment addresses an object, so "01" stays "01".
func (s Segment) String() string {
	if s.IsIndex && s.Key == "" {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path is a parsed location in a content tree.
type Path []Segment

// String renders the path in dotted/bracketed form, e.g. team.members[2].name.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		switch {
		case s.IsIndex:
			b.WriteByte('[')
			b.WriteString(s.String())
			b.WriteByte(']')
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			b.WriteString(s.Key)
		}
	}
	return b.String()
}

// Parent returns the path without its last segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Append returns a new path with segs added. p is not modified.
func (p Path) Append(segs ...Segment) Path {
	out := make(Path, 0, len(p)+len(segs))
	out = append(out, p...)
	return append(out, segs...)
}

// ParsePath splits a dotted/bracketed path such as "a.b[3].c[0]" into
// segments. Parts are separated by '.', each part is an optional name
// followed by any number of [N] groups. Empty parts are skipped, and a part
// made only of digits is an index.
func ParsePath(s string) (Path, error) {
	var p Path
	for _, part := range strings.Split(s, ".") {
		if part == "" {
			continue
		}
		segs, err := parsePart(part)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidPath, s, err)
		}
		p = append(p, segs...)
	}
	return p, nil
}

func parsePart(part string) ([]Segment, error) {
	open := strings.IndexByte(part, '[')
	name := part
	if open >= 0 {
		name = part[:open]
	}
	if strings.IndexByte(name, ']') >= 0 {
		return nil, fmt.Errorf("unexpected ']' in %q", part)
	}

	var segs []Segment
	if name != "" {
		if isDigits(name) {
			seg, err := digits(name)
			if err != nil {
				return nil, err
			}
			segs = append(segs, seg)
		} else {
			segs = append(segs, Key(name))
		}
	}
	if open < 0 {
		return segs, nil
	}

	rest := part[open:]
	for rest != "" {
		if rest[0] != '[' {
			return nil, fmt.Errorf("unexpected %q after index", rest)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, fmt.Errorf("missing ']' in %q", part)
		}
		inner := rest[1:end]
		if !isDigits(inner) {
			return nil, fmt.Errorf("index %q is not a number", inner)
		}
		seg, err := digits(inner)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
		rest = rest[end+1:]
	}
	return segs, nil
}

// digits builds an index segment. Text that does not round-trip through
// the int (leading zeros) is kept as the key used on objects.
func digits(s string) (Segment, error) {
	i, err := atoi(s)
	if err != nil {
		return Segment{}, err
	}
	seg := Index(i)
	if s != strconv.Itoa(i) {
		seg.Key = s
	}
	return seg, nil
}

func atoi(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("index %q out of range", s)
	}
	return i, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
