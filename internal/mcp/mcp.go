// Package mcp provides the witness-build MCP server, exposing the contract
// build step and its results as tools.
package mcp

import (
	"context"
	_ "embed"
	"net/url"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/swishlabsco/witness"
	"github.com/swishlabsco/witness/internal/config"
	"github.com/swishlabsco/witness/internal/report"
	"github.com/swishlabsco/witness/internal/runner"
	"github.com/swishlabsco/witness/internal/solc"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	// mu serialises builds: the output directory is overwritten on every run.
	mu       sync.Mutex
	compiler *solc.Compiler
	runner   *runner.Runner
	store    report.Store
	root     string
}

// NewServer creates an MCP server with all witness-build tools registered.
func NewServer(cfg *config.Config, r *runner.Runner, store report.Store) *mcp.Server {
	h := &handler{
		compiler: solc.New(cfg, r),
		runner:   r,
		store:    store,
		root:     r.Workspace,
	}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
		InitializedHandler: func(ctx context.Context, req *mcp.InitializedRequest) {
			h.updateWorkspaceFromRoots(ctx, req.Session)
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "witness-build", Version: witness.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "witness_workspace",
		Description: "Show the contract build layout: repo root, compiler binary, contract source, ABI output directory and the exact solc command line.",
	}, h.workspaceHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "witness_compile",
		Description: `Compile the bridge contract into ABI artifacts with solc.

Runs solc --abi --optimize --output-dir <dir> --overwrite <source> and reports how it terminated.
Existing ABI files in the output directory are overwritten. Results are stored for drill-down via witness_inspect.`,
	}, h.compileHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "witness_inspect",
		Description: `Show the result of a witness_compile run: outcome, compiler stderr and the parsed ABI artifacts.

Pass the run_id from witness_compile, and optionally a contract name (e.g. Peggy) to show a single ABI.`,
	}, h.inspectHandler)

	return s
}

// updateWorkspaceFromRoots queries the client for MCP roots and reloads the
// configuration from the first file root, if any.
func (h *handler) updateWorkspaceFromRoots(ctx context.Context, session *mcp.ServerSession) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	roots, err := session.ListRoots(ctx, &mcp.ListRootsParams{})
	if err != nil || len(roots.Roots) == 0 {
		return
	}

	u, err := url.Parse(roots.Roots[0].URI)
	if err != nil || u.Scheme != "file" {
		return
	}

	loaded, err := config.Load(u.Path)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.runner.Workspace = loaded.RepoRoot
	h.runner.Timeout = loaded.Config.Timeout()
	h.runner.MaxOutput = loaded.Config.MaxOutputBytes()
	h.compiler = solc.New(loaded.Config, h.runner)
	h.root = loaded.RepoRoot
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
