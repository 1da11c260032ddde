package capture

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var testImpl = &mcp.Implementation{Name: "pageproof-test", Version: "0.1.0"}

// mcpSession registers the tools and returns a connected client session
// that can call them end-to-end over the in-memory transport.
func mcpSession(t *testing.T) (*Capturer, *mcp.ClientSession) {
	t.Helper()
	c := testCapturer(t)

	srv := mcp.NewServer(testImpl, nil)
	c.RegisterMCP(srv)

	serverT, clientT := mcp.NewInMemoryTransports()
	ctx := context.Background()

	go func() {
		_ = srv.Run(ctx, serverT)
	}()

	client := mcp.NewClient(testImpl, nil)
	session, err := client.Connect(ctx, clientT, nil)
	if err != nil {
		t.Fatalf("client connect: %v", err)
	}
	t.Cleanup(func() { session.Close() })

	return c, session
}

// callTool invokes a tool and returns the JSON text from the first
// TextContent.
func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) string {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	if result.IsError {
		t.Fatalf("CallTool(%s) tool error: %v", name, result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatalf("CallTool(%s): empty content", name)
	}
	tc, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s): expected TextContent, got %T", name, result.Content[0])
	}
	return tc.Text
}

func TestMCPSnapshotAndPages(t *testing.T) {
	c, session := mcpSession(t)
	if _, err := c.CaptureMarkup(context.Background(), "Home", []byte("<html>home</html>")); err != nil {
		t.Fatal(err)
	}

	var snap struct {
		Page   string `json:"page"`
		Markup string `json:"markup"`
	}
	if err := json.Unmarshal([]byte(callTool(t, session, "pageproof_snapshot",
		map[string]any{"name": "Home"})), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Markup != "<html>home</html>" {
		t.Errorf("markup: got %q", snap.Markup)
	}

	var pages struct {
		Pages []string `json:"pages"`
	}
	if err := json.Unmarshal([]byte(callTool(t, session, "pageproof_pages", nil)), &pages); err != nil {
		t.Fatal(err)
	}
	if len(pages.Pages) != 1 || pages.Pages[0] != "Home" {
		t.Errorf("pages: got %v", pages.Pages)
	}
}

func TestMCPHints(t *testing.T) {
	c, session := mcpSession(t)
	if _, err := c.CaptureMarkup(context.Background(), "Login",
		[]byte(`<html><input type="password" placeholder="Password"></html>`)); err != nil {
		t.Fatal(err)
	}

	var out struct {
		Hints []struct {
			Selector string `json:"selector"`
			Label    string `json:"label"`
		} `json:"hints"`
	}
	if err := json.Unmarshal([]byte(callTool(t, session, "pageproof_hints",
		map[string]any{"name": "Login"})), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Hints) != 1 {
		t.Fatalf("hints: got %d, want 1", len(out.Hints))
	}
	if out.Hints[0].Label != "Password" {
		t.Errorf("hint label: got %q", out.Hints[0].Label)
	}
}

func TestMCPSnapshotMissingPage(t *testing.T) {
	_, session := mcpSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "pageproof_snapshot",
		Arguments: map[string]any{"name": "Nope"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsError {
		t.Error("snapshot of uncaptured page: want tool error")
	}
}
