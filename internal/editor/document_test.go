package editor

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/vitrine/api"
	"github.com/agentic-research/vitrine/internal/content"
	"github.com/agentic-research/vitrine/internal/journal"
)

type memRecorder struct {
	mu      sync.Mutex
	entries []journal.Entry
}

func (m *memRecorder) Record(_ context.Context, e journal.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *memRecorder) failures() []journal.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []journal.Entry
	for _, e := range m.entries {
		if e.Failed() {
			out = append(out, e)
		}
	}
	return out
}

func newDoc(t *testing.T, src string) (*Document, *memRecorder) {
	t.Helper()
	tree, err := content.Decode([]byte(src))
	require.NoError(t, err)
	rec := &memRecorder{}
	d := New(tree,
		WithRecorder(rec),
		WithSession("test"),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return d, rec
}

func raw(t *testing.T, v any) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestDocument_Apply(t *testing.T) {
	d, rec := newDoc(t, `{"hero":{"title":"Old"}}`)
	ctx := context.Background()

	res, err := d.Apply(ctx, api.Edit{Path: "hero.title", Value: raw(t, "New")})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Revision)
	assert.Equal(t, 1, res.Applied)

	got, err := d.Get("hero.title")
	require.NoError(t, err)
	assert.Equal(t, content.String("New"), got)

	require.Len(t, rec.entries, 1)
	assert.Equal(t, "UPDATE", rec.entries[0].Action)
	assert.Equal(t, "test", rec.entries[0].Session)
	assert.False(t, rec.entries[0].Failed())
}

func TestDocument_ApplyRejected(t *testing.T) {
	d, rec := newDoc(t, `{"hero":{"title":"Old"}}`)
	ctx := context.Background()
	before := d.Snapshot()

	t.Run("type mismatch", func(t *testing.T) {
		res, err := d.Apply(ctx, api.Edit{Path: "hero.title", Value: raw(t, "x"), Action: "ADD_ITEM"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, content.ErrNotList))
		assert.Equal(t, uint64(0), res.Revision)
		assert.Len(t, res.Errors, 1)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := d.Apply(ctx, api.Edit{Path: "hero.title", Action: "UPSERT"})
		assert.True(t, errors.Is(err, content.ErrUnknownAction))
	})

	t.Run("bad value json", func(t *testing.T) {
		_, err := d.Apply(ctx, api.Edit{Path: "hero.title", Value: json.RawMessage(`{"x":`)})
		assert.Error(t, err)
	})

	assert.True(t, content.Equal(before, d.Snapshot()), "rejected edits leave the document untouched")
	assert.Equal(t, uint64(0), d.Revision())
	assert.Len(t, rec.failures(), 3)
}

func TestDocument_ApplyDeleteShim(t *testing.T) {
	d, _ := newDoc(t, `{"team":{"members":[{"n":"a"},{"n":"b"},{"n":"c"}]}}`)

	_, err := d.Apply(context.Background(), api.Edit{Path: "team.members", Value: raw(t, 1), Action: "DELETE_ITEM"})
	require.NoError(t, err)

	got, err := d.Get("team.members")
	require.NoError(t, err)
	assert.Equal(t, content.MustFrom([]any{map[string]any{"n": "a"}, map[string]any{"n": "c"}}), got)
}

func TestDocument_ApplyBatch(t *testing.T) {
	d, rec := newDoc(t, `{"hero":{"title":"T","subtitle":"S"}}`)

	res := d.ApplyBatch(context.Background(), []api.Edit{
		{Path: "hero.title", Value: raw(t, "T2")},
		{Path: "hero.title.deep[", Value: raw(t, "bad")},
		{Path: "hero.subtitle", Value: raw(t, "S2")},
	})

	assert.Equal(t, 2, res.Applied)
	assert.Len(t, res.Errors, 1)
	assert.Equal(t, uint64(1), res.Revision, "one save, one revision")

	snap := d.Snapshot()
	assert.Equal(t, content.String("T2"), content.Field(content.Field(snap, "hero"), "title"))
	assert.Equal(t, content.String("S2"), content.Field(content.Field(snap, "hero"), "subtitle"))
	assert.Len(t, rec.entries, 3)
	assert.Len(t, rec.failures(), 1)
}

func TestDocument_ApplyBatchAllFailed(t *testing.T) {
	d, _ := newDoc(t, `{"a":1}`)
	res := d.ApplyBatch(context.Background(), []api.Edit{{Path: "a", Action: "ADD_ITEM", Value: raw(t, 2)}})
	assert.Equal(t, 0, res.Applied)
	assert.Equal(t, uint64(0), res.Revision)
}

func TestDocument_SnapshotIsPrivate(t *testing.T) {
	d, _ := newDoc(t, `{"list":[1,2]}`)

	snap := d.Snapshot().(content.Object)
	snap["list"].(content.List)[0] = content.String("changed")

	got, err := d.Get("list[0]")
	require.NoError(t, err)
	assert.Equal(t, content.Number(1), got)
}

func TestDocument_ConcurrentWriters(t *testing.T) {
	d, rec := newDoc(t, `{}`)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := d.Apply(ctx, api.Edit{Path: "items", Value: raw(t, i), Action: "ADD_ITEM"})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	items, err := d.Get("items")
	require.NoError(t, err)
	assert.Len(t, items, n)
	assert.Equal(t, uint64(n), d.Revision())
	assert.Len(t, rec.entries, n)
}

func TestDocument_Replace(t *testing.T) {
	d, _ := newDoc(t, `{"a":1}`)
	rev := d.Replace(content.Object{"b": content.Number(2)})
	assert.Equal(t, uint64(1), rev)

	_, err := d.Get("a")
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestDocument_Query(t *testing.T) {
	d, _ := newDoc(t, `{"faq":{"items":[{"q":"a"},{"q":"b"}]}}`)
	got, err := d.Query("$.faq.items[*].q")
	require.NoError(t, err)
	assert.Equal(t, []content.Value{content.String("a"), content.String("b")}, got)
}
