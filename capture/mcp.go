// CLAUDE:SUMMARY Registers the pageproof MCP tools — capture, snapshot, history, hints, pages.
package capture

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/pageproof/kit"
)

// RegisterMCP registers the pageproof tools on an MCP server.
func (c *Capturer) RegisterMCP(srv *mcp.Server) {
	c.registerCaptureTool(srv)
	c.registerSnapshotTool(srv)
	c.registerHistoryTool(srv)
	c.registerHintsTool(srv)
	c.registerPagesTool(srv)
}

// inputSchema builds a JSON Schema object with type "object".
func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func decodeInto[T any](req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	var r T
	if len(req.Params.Arguments) > 0 {
		if err := json.Unmarshal(req.Params.Arguments, &r); err != nil {
			return nil, err
		}
	}
	return &kit.MCPDecodeResult{Request: &r}, nil
}

// --- capture ---

type captureRequest struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (c *Capturer) registerCaptureTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "pageproof_capture",
		Description: "Navigate to a URL and store its HTML under a logical page name. Returns the capture result.",
		InputSchema: inputSchema(map[string]any{
			"name": map[string]any{"type": "string", "description": "Logical page name, used as the snapshot filename"},
			"url":  map[string]any{"type": "string", "description": "URL to open"},
		}, []string{"name", "url"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*captureRequest)
		return c.CapturePage(ctx, r.Name, r.URL)
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[captureRequest])
}

// --- snapshot ---

type snapshotRequest struct {
	Name string `json:"name"`
}

type snapshotResponse struct {
	Page   string `json:"page"`
	Path   string `json:"path"`
	Markup string `json:"markup"`
}

func (c *Capturer) registerSnapshotTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "pageproof_snapshot",
		Description: "Return the latest stored HTML for a page name.",
		InputSchema: inputSchema(map[string]any{
			"name": map[string]any{"type": "string", "description": "Logical page name"},
		}, []string{"name"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*snapshotRequest)
		markup, err := c.Latest(r.Name)
		if err != nil {
			return nil, err
		}
		return &snapshotResponse{
			Page:   r.Name,
			Path:   c.store.CanonicalPath(r.Name),
			Markup: string(markup),
		}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[snapshotRequest])
}

// --- history ---

type historyRequest struct {
	Name string `json:"name"`
}

func (c *Capturer) registerHistoryTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "pageproof_history",
		Description: "List the archived snapshot copies of a page, oldest first.",
		InputSchema: inputSchema(map[string]any{
			"name": map[string]any{"type": "string", "description": "Logical page name"},
		}, []string{"name"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*historyRequest)
		entries, err := c.History(r.Name)
		if err != nil {
			return nil, err
		}
		return map[string]any{"page": r.Name, "entries": entries}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[historyRequest])
}

// --- hints ---

type hintsRequest struct {
	Name string `json:"name"`
}

func (c *Capturer) registerHintsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "pageproof_hints",
		Description: "Extract interactive elements and suggested CSS selectors from the latest snapshot of a page. Use this to author locator tables.",
		InputSchema: inputSchema(map[string]any{
			"name": map[string]any{"type": "string", "description": "Logical page name"},
		}, []string{"name"}),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		r := req.(*hintsRequest)
		hs, err := c.Hints(r.Name)
		if err != nil {
			return nil, err
		}
		return map[string]any{"page": r.Name, "hints": hs}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[hintsRequest])
}

// --- pages ---

type pagesRequest struct{}

func (c *Capturer) registerPagesTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "pageproof_pages",
		Description: "List the page names with a stored snapshot.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	endpoint := func(ctx context.Context, req any) (any, error) {
		pages, err := c.Pages()
		if err != nil {
			return nil, err
		}
		if pages == nil {
			pages = []string{}
		}
		return map[string]any{"pages": pages}, nil
	}

	kit.RegisterMCPTool(srv, tool, endpoint, decodeInto[pagesRequest])
}
