// Package editor owns the live content document. All writes go through a
// Document, which serializes them, swaps in the tree produced by the
// mutation engine, and reports rejected edits to the journal.
package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/agentic-research/vitrine/api"
	"github.com/agentic-research/vitrine/internal/content"
	"github.com/agentic-research/vitrine/internal/journal"
)

// DefaultScaffoldKey is the top-level key holding templates for new items.
// It is editing scaffolding and never part of an export.
const DefaultScaffoldKey = "_newContentDefaults"

// Recorder receives one entry per attempted edit.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// errUnchanged lets a commit function report a successful no-op.
var errUnchanged = errors.New("unchanged")

// Document is a thread-safe holder of the current content tree.
type Document struct {
	mu       sync.RWMutex
	tree     content.Value
	revision uint64

	session  string
	log      *slog.Logger
	rec      Recorder
	scaffold []string
}

// Option configures a Document.
type Option func(*Document)

// WithLogger sets the logger used for rejected edits.
func WithLogger(l *slog.Logger) Option {
	return func(d *Document) { d.log = l }
}

// WithRecorder sets the journal every edit is written to.
func WithRecorder(r Recorder) Option {
	return func(d *Document) { d.rec = r }
}

// WithSession tags journal entries with id.
func WithSession(id string) Option {
	return func(d *Document) { d.session = id }
}

// WithScaffoldKeys replaces the top-level keys Export leaves out.
func WithScaffoldKeys(keys ...string) Option {
	return func(d *Document) { d.scaffold = keys }
}

// New wraps a copy of tree.
func New(tree content.Value, opts ...Option) *Document {
	d := &Document{
		tree:     content.Clone(tree),
		log:      slog.Default(),
		scaffold: []string{DefaultScaffoldKey},
	}
	for _, o := range opts {
		o(d)
	}
	if d.session == "" {
		d.session = journal.NewSession()
	}
	return d
}

// Session returns the id journal entries are tagged with.
func (d *Document) Session() string { return d.session }

// Snapshot returns a private copy of the current tree.
func (d *Document) Snapshot() content.Value {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return content.Clone(d.tree)
}

// Revision increments on every successful change.
func (d *Document) Revision() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.revision
}

// Get returns a copy of the value at path.
func (d *Document) Get(path string) (content.Value, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return content.Lookup(d.tree, path)
}

// Query evaluates a JSONPath selector against the current tree.
func (d *Document) Query(selector string) ([]content.Value, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return content.Query(d.tree, selector)
}

// Replace swaps in a whole new tree, as after a reload.
func (d *Document) Replace(tree content.Value) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tree = content.Clone(tree)
	d.revision++
	return d.revision
}

// Apply is the mutation entry point. A rejected edit leaves the document
// untouched; the error is logged, journaled and returned.
func (d *Document) Apply(ctx context.Context, e api.Edit) (api.EditResult, error) {
	action, value, err := decodeEdit(e)
	if err != nil {
		rev := d.Revision()
		d.report(ctx, e.Path, e.Action, string(e.Value), rev, err)
		return api.EditResult{Revision: rev, Errors: []string{err.Error()}}, err
	}

	rev, err := d.commit(ctx, e.Path, string(action), string(e.Value), func(tree content.Value) (content.Value, error) {
		return content.Mutate(tree, e.Path, value, action)
	})
	if err != nil {
		return api.EditResult{Revision: rev, Errors: []string{err.Error()}}, err
	}
	return api.EditResult{Revision: rev, Applied: 1}, nil
}

// ApplyBatch applies edits in order as one save. Failed edits are reported
// and skipped; the rest still apply, and the revision moves once.
func (d *Document) ApplyBatch(ctx context.Context, edits []api.Edit) api.EditResult {
	type outcome struct {
		edit api.Edit
		err  error
	}
	outcomes := make([]outcome, 0, len(edits))

	d.mu.Lock()
	tree := d.tree
	applied := 0
	for _, e := range edits {
		action, value, err := decodeEdit(e)
		if err == nil {
			var next content.Value
			next, err = content.Mutate(tree, e.Path, value, action)
			if err == nil {
				tree = next
				applied++
			}
		}
		outcomes = append(outcomes, outcome{edit: e, err: err})
	}
	if applied > 0 {
		d.tree = tree
		d.revision++
	}
	rev := d.revision
	d.mu.Unlock()

	res := api.EditResult{Revision: rev, Applied: applied}
	for _, o := range outcomes {
		d.report(ctx, o.edit.Path, o.edit.Action, string(o.edit.Value), rev, o.err)
		if o.err != nil {
			res.Errors = append(res.Errors, o.err.Error())
		}
	}
	return res
}

// commit runs fn on the current tree under the write lock and swaps in its
// result. fn must not modify its argument.
func (d *Document) commit(ctx context.Context, path, action, value string, fn func(content.Value) (content.Value, error)) (uint64, error) {
	d.mu.Lock()
	next, err := fn(d.tree)
	switch {
	case errors.Is(err, errUnchanged):
		rev := d.revision
		d.mu.Unlock()
		return rev, nil
	case err == nil:
		d.tree = next
		d.revision++
	}
	rev := d.revision
	d.mu.Unlock()

	d.report(ctx, path, action, value, rev, err)
	return rev, err
}

func (d *Document) report(ctx context.Context, path, action, value string, rev uint64, err error) {
	if action == "" {
		action = string(content.Update)
	}
	entry := journal.Entry{
		Session:  d.session,
		Revision: rev,
		Path:     path,
		Action:   action,
		Value:    value,
	}
	if err != nil {
		entry.Error = err.Error()
		d.log.Warn("edit rejected",
			slog.String("path", path),
			slog.String("action", action),
			slog.Any("error", err),
		)
	}
	if d.rec == nil {
		return
	}
	if rerr := d.rec.Record(ctx, entry); rerr != nil {
		d.log.Error("journal write failed", slog.Any("error", rerr))
	}
}

func decodeEdit(e api.Edit) (content.Action, content.Value, error) {
	action, err := content.ParseAction(e.Action)
	if err != nil {
		return "", nil, &content.MutationError{Path: e.Path, Action: content.Action(e.Action), Err: err}
	}
	if len(e.Value) == 0 {
		return action, content.Null{}, nil
	}
	v, err := content.Decode(e.Value)
	if err != nil {
		return "", nil, fmt.Errorf("decode value for %q: %w", e.Path, err)
	}
	return action, v, nil
}
