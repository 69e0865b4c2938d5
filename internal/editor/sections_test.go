package editor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/vitrine/api"
	"github.com/agentic-research/vitrine/internal/content"
)

const page = `{
  "sectionOrder": ["hero", "faq", "team"],
  "hero": {"title": "Hi"},
  "faq": {"items": [{"q": "1"}, {"q": "2"}, {"q": "3"}]},
  "team": {"members": []},
  "_newContentDefaults": {
    "customBlockHeading": {"type": "heading", "text": "New heading"},
    "customBlockParagraph": {"type": "paragraph", "text": "New paragraph"},
    "faqItem": {"q": "Question?", "a": "Answer."}
  }
}`

func TestMoveSection(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		key  string
		dir  api.Direction
		want []string
		rev  uint64
	}{
		{"down", "hero", api.Down, []string{"faq", "hero", "team"}, 1},
		{"up", "team", api.Up, []string{"hero", "team", "faq"}, 1},
		{"top edge", "hero", api.Up, []string{"hero", "faq", "team"}, 0},
		{"bottom edge", "team", api.Down, []string{"hero", "faq", "team"}, 0},
		{"unknown key", "nope", api.Down, []string{"hero", "faq", "team"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newDoc(t, page)
			rev, err := d.MoveSection(ctx, tt.key, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.rev, rev)
			assert.Equal(t, tt.want, SectionKeys(d.Snapshot()))
		})
	}

	t.Run("bad direction", func(t *testing.T) {
		d, _ := newDoc(t, page)
		_, err := d.MoveSection(ctx, "hero", "sideways")
		assert.ErrorIs(t, err, ErrDirection)
	})
}

func TestHideShowSection(t *testing.T) {
	d, _ := newDoc(t, page)
	ctx := context.Background()

	_, err := d.HideSection(ctx, "faq")
	require.NoError(t, err)
	show, err := d.Get("faq.show")
	require.NoError(t, err)
	assert.Equal(t, content.Bool(false), show)
	assert.Equal(t, []string{"hero", "faq", "team"}, SectionKeys(d.Snapshot()), "hiding keeps the order")

	_, err = d.ShowSection(ctx, "faq")
	require.NoError(t, err)
	show, err = d.Get("faq.show")
	require.NoError(t, err)
	assert.Equal(t, content.Bool(true), show)

	// A section without an object yet gets one.
	_, err = d.HideSection(ctx, "media")
	require.NoError(t, err)
	show, err = d.Get("media.show")
	require.NoError(t, err)
	assert.Equal(t, content.Bool(false), show)
}

func TestAddCustomBlock(t *testing.T) {
	d, _ := newDoc(t, page)
	ctx := context.Background()

	_, err := d.AddCustomBlock(ctx, "hero", api.BlockHeading)
	require.NoError(t, err)
	_, err = d.AddCustomBlock(ctx, "hero", api.BlockParagraph)
	require.NoError(t, err)

	blocks, err := d.Get("hero.customBlocks")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, content.String("heading"), content.Field(blocks.(content.List)[0], "type"))
	assert.Equal(t, content.String("paragraph"), content.Field(blocks.(content.List)[1], "type"))

	t.Run("missing template", func(t *testing.T) {
		_, err := d.AddCustomBlock(ctx, "hero", api.BlockImage)
		assert.ErrorIs(t, err, ErrNoTemplate)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := d.AddCustomBlock(ctx, "hero", "video")
		assert.ErrorIs(t, err, ErrBlockKind)
	})

	t.Run("template is copied", func(t *testing.T) {
		tpl, err := d.Get("_newContentDefaults.customBlockHeading.text")
		require.NoError(t, err)
		assert.Equal(t, content.String("New heading"), tpl)

		_, err = d.Apply(ctx, api.Edit{Path: "hero.customBlocks[0].text", Value: raw(t, "Edited")})
		require.NoError(t, err)
		tpl, err = d.Get("_newContentDefaults.customBlockHeading.text")
		require.NoError(t, err)
		assert.Equal(t, content.String("New heading"), tpl)
	})
}

func TestAddFromTemplate(t *testing.T) {
	d, _ := newDoc(t, page)
	ctx := context.Background()

	_, err := d.AddFromTemplate(ctx, "faq.items", "faqItem")
	require.NoError(t, err)
	last, err := d.Get("faq.items[3].q")
	require.NoError(t, err)
	assert.Equal(t, content.String("Question?"), last)

	_, err = d.AddFromTemplate(ctx, "hero.title", "faqItem")
	assert.True(t, errors.Is(err, content.ErrNotList))

	_, err = d.AddFromTemplate(ctx, "faq.items", "nothing")
	assert.ErrorIs(t, err, ErrNoTemplate)
}

func TestCloneItem(t *testing.T) {
	d, _ := newDoc(t, page)
	ctx := context.Background()

	_, err := d.CloneItem(ctx, "faq.items[0]")
	require.NoError(t, err)
	items, err := d.Get("faq.items")
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, content.String("1"), content.Field(items.(content.List)[3], "q"))

	_, err = d.CloneItem(ctx, "faq.items[9]")
	assert.ErrorIs(t, err, content.ErrIndexRange)

	_, err = d.CloneItem(ctx, "faq.items")
	assert.ErrorIs(t, err, content.ErrNotList)
}

func TestMoveItem(t *testing.T) {
	ctx := context.Background()
	qs := func(d *Document) []string {
		v, err := d.Get("faq.items")
		require.NoError(t, err)
		var out []string
		for _, it := range v.(content.List) {
			out = append(out, content.Text(content.Field(it, "q")))
		}
		return out
	}

	tests := []struct {
		from, to int
		want     []string
	}{
		{0, 2, []string{"2", "3", "1"}},
		{2, 0, []string{"3", "1", "2"}},
		{1, 2, []string{"1", "3", "2"}},
		{1, 1, []string{"1", "2", "3"}},
	}
	for _, tt := range tests {
		d, _ := newDoc(t, page)
		_, err := d.MoveItem(ctx, "faq.items", tt.from, tt.to)
		require.NoError(t, err)
		assert.Equal(t, tt.want, qs(d), "move %d -> %d", tt.from, tt.to)
	}

	d, _ := newDoc(t, page)
	_, err := d.MoveItem(ctx, "faq.items", 0, 3)
	assert.ErrorIs(t, err, content.ErrIndexRange)
	_, err = d.MoveItem(ctx, "hero", 0, 0)
	assert.ErrorIs(t, err, content.ErrNotList)
}

func TestExport(t *testing.T) {
	d, _ := newDoc(t, page)

	out, err := content.Decode(d.Export())
	require.NoError(t, err)
	_, has := out.(content.Object)[DefaultScaffoldKey]
	assert.False(t, has)
	assert.Equal(t, content.String("Hi"), content.Field(content.Field(out, "hero"), "title"))

	// The live document keeps its scaffolding.
	_, err = d.Get(DefaultScaffoldKey)
	assert.NoError(t, err)

	stripped, err := content.Decode(d.Export("hero", DefaultScaffoldKey))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sectionOrder", "faq", "team"}, stripped.(content.Object).Keys())
}
