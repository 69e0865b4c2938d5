package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
	}{
		{"hero.title", Path{Key("hero"), Key("title")}},
		{"team.members[2].achievements[0]", Path{Key("team"), Key("members"), Index(2), Key("achievements"), Index(0)}},
		{"a.b[3].c[0][1]", Path{Key("a"), Key("b"), Index(3), Key("c"), Index(0), Index(1)}},
		{"items.0.name", Path{Key("items"), Index(0), Key("name")}},
		{"items", Path{Key("items")}},
		{"a..b", Path{Key("a"), Key("b")}},
		{".a.", Path{Key("a")}},
		{"[0].x", Path{Index(0), Key("x")}},
		{"007", Path{{Key: "007", Index: 7, IsIndex: true}}},
		{"a[01]", Path{Key("a"), {Key: "01", Index: 1, IsIndex: true}}},
		{"v2.label", Path{Key("v2"), Key("label")}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePath_Invalid(t *testing.T) {
	for _, in := range []string{
		"a[b]",
		"a[1",
		"a]",
		"a[1]x",
		"a[-1]",
		"a[]",
		"a[99999999999999999999999]",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePath(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidPath))
		})
	}
}

func TestPathString_RoundTrip(t *testing.T) {
	for _, in := range []string{
		"hero.title",
		"team.members[2].achievements[0]",
		"a.b[3].c[0][1]",
		"[0].x",
		"years[01]",
	} {
		p, err := ParsePath(in)
		require.NoError(t, err)
		assert.Equal(t, in, p.String())

		again, err := ParsePath(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, again)
	}
}

func TestPath_ParentAndAppend(t *testing.T) {
	p := Path{Key("a"), Index(1)}
	assert.Equal(t, Path{Key("a")}, p.Parent())
	assert.Nil(t, Path{}.Parent())

	q := p.Append(Key("b"))
	assert.Equal(t, "a[1].b", q.String())
	assert.Equal(t, "a[1]", p.String(), "Append must not modify the receiver")
}
