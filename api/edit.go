package api

import "encoding/json"

// Edit is one call to the mutation entry point.
type Edit struct {
	// Path addresses the location to change, e.g. "team.members[2].name".
	Path string `json:"path"`
	// Value is the JSON value to write, append, or (for DELETE_ITEM with a
	// list path) the index to remove.
	Value json.RawMessage `json:"value,omitempty"`
	// Action is UPDATE, ADD_ITEM or DELETE_ITEM. Empty means UPDATE.
	Action string `json:"action,omitempty"`
}

// EditResult reports the outcome of an edit or a batch of edits.
type EditResult struct {
	Revision uint64   `json:"revision"`
	Applied  int      `json:"applied"`
	Errors   []string `json:"errors,omitempty"`
}

// Direction moves a section one slot up or down in sectionOrder.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// BlockKind is the type of a custom block appended to a section.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockImage     BlockKind = "image"
)

// MoveSectionRequest is the body of POST /api/sections/{key}/move.
type MoveSectionRequest struct {
	Direction Direction `json:"direction"`
}

// AddBlockRequest is the body of POST /api/sections/{key}/blocks.
type AddBlockRequest struct {
	Kind BlockKind `json:"kind"`
}

// ItemRequest addresses a list element, as in POST /api/items/clone.
type ItemRequest struct {
	Path string `json:"path"`
}

// MoveItemRequest reorders a list: the element at From ends up at To.
type MoveItemRequest struct {
	Path string `json:"path"`
	From int    `json:"from"`
	To   int    `json:"to"`
}

// TemplateRequest appends a copy of a named template to the list at Path.
type TemplateRequest struct {
	Path     string `json:"path"`
	Template string `json:"template"`
}

// JournalEntry is the wire form of a recorded edit.
type JournalEntry struct {
	Session  string `json:"session"`
	Revision uint64 `json:"revision"`
	Path     string `json:"path"`
	Action   string `json:"action"`
	Value    string `json:"value,omitempty"`
	Error    string `json:"error,omitempty"`
	At       string `json:"at"`
}
