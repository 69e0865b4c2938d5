// Package agent exposes a content document to tool-driven save processes
// over the Model Context Protocol.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/agentic-research/vitrine/api"
	"github.com/agentic-research/vitrine/internal/content"
	"github.com/agentic-research/vitrine/internal/editor"
	"github.com/agentic-research/vitrine/internal/linter"
	"github.com/agentic-research/vitrine/internal/writeback"
)

const guideURI = "vitrine://guide"

const guide = `# Editing site content

The site is one JSON document. Every change goes through mutate_content.

## Paths

Dot-separated keys with bracketed list indices:

  hero.title
  team.members[2].name
  sectionOrder[0]

A segment made only of digits (items.0) is also a list index. Missing
objects and lists along the path are created; the next segment decides
which (digits make a list).

## Actions

- UPDATE (default): set the value at the path.
- ADD_ITEM: append the value to the list at the path. A missing list is
  created.
- DELETE_ITEM: remove the list element the path ends in (faq.items[1]).
  Passing the list path with the index as value (path faq.items, value 1)
  works too.

Values are JSON text: "\"New title\"", "42", "{\"name\": \"Ana\"}".

A rejected edit changes nothing and returns an error.

## Sections

sectionOrder lists section keys in display order. A section with
show=false is hidden but kept. Templates for new items live under
_newContentDefaults and are left out of exports.
`

// Agent serves one document. When Path is set, every successful mutation
// is saved back to it.
type Agent struct {
	doc  *editor.Document
	path string
	log  *slog.Logger
}

func New(doc *editor.Document, path string, log *slog.Logger) *Agent {
	if log == nil {
		log = slog.Default()
	}
	return &Agent{doc: doc, path: path, log: log}
}

// Server builds the MCP server with all tools and the guide resource.
func (a *Agent) Server(version string) *server.MCPServer {
	s := server.NewMCPServer("vitrine", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.AddTool(mcp.NewTool("get_content",
		mcp.WithDescription("Read the value at a path, or the whole document when path is empty."),
		mcp.WithString("path", mcp.Description("Content path, e.g. team.members[0].name")),
	), a.handleGet)

	s.AddTool(mcp.NewTool("mutate_content",
		mcp.WithDescription("Change the document. See "+guideURI+" for path syntax and actions."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Content path to change")),
		mcp.WithString("value", mcp.Description("JSON text of the value; for DELETE_ITEM on a list path, the index")),
		mcp.WithString("action", mcp.Description("Mutation kind"), mcp.Enum("UPDATE", "ADD_ITEM", "DELETE_ITEM")),
	), a.handleMutate)

	s.AddTool(mcp.NewTool("query_content",
		mcp.WithDescription("Evaluate a JSONPath selector against the document."),
		mcp.WithString("selector", mcp.Required(), mcp.Description("JSONPath, e.g. $.faq.items[*].question")),
	), a.handleQuery)

	s.AddTool(mcp.NewTool("export_content",
		mcp.WithDescription("Return the document as formatted JSON without editing scaffolding."),
	), a.handleExport)

	s.AddTool(mcp.NewTool("lint_content",
		mcp.WithDescription("List likely problems: unknown sections, bad colors, missing templates."),
	), a.handleLint)

	s.AddResource(mcp.NewResource(guideURI, "Content editing guide",
		mcp.WithResourceDescription("Path syntax and mutation actions"),
		mcp.WithMIMEType("text/markdown"),
	), func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: guideURI, MIMEType: "text/markdown", Text: guide},
		}, nil
	})

	return s
}

// ServeStdio runs the MCP server on stdin/stdout until the client leaves.
func (a *Agent) ServeStdio(version string) error {
	return server.ServeStdio(a.Server(version))
}

func (a *Agent) handleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultText(string(content.Encode(a.doc.Snapshot(), 2))), nil
	}
	v, err := a.doc.Get(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(content.Encode(v, 2))), nil
}

func (a *Agent) handleMutate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	edit := api.Edit{Path: path, Action: req.GetString("action", "")}
	if raw := strings.TrimSpace(req.GetString("value", "")); raw != "" {
		edit.Value = json.RawMessage(raw)
	}

	res, err := a.doc.Apply(ctx, edit)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if a.path != "" {
		if err := writeback.Save(a.path, a.doc.Snapshot()); err != nil {
			a.log.Error("save content", slog.String("file", a.path), slog.Any("error", err))
			return mcp.NewToolResultError(fmt.Sprintf("applied at revision %d but not saved: %v", res.Revision, err)), nil
		}
	}
	return mcp.NewToolResultText(fmt.Sprintf("applied; revision %d", res.Revision)), nil
}

func (a *Agent) handleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	selector, err := req.RequireString("selector")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	matches, err := a.doc.Query(selector)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(content.Encode(content.List(matches), 2))), nil
}

func (a *Agent) handleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(string(a.doc.Export())), nil
}

func (a *Agent) handleLint(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	diags := linter.Lint(a.doc.Snapshot())
	if len(diags) == 0 {
		return mcp.NewToolResultText("no problems found"), nil
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = d.String()
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}
