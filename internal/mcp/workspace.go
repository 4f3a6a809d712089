package mcp

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type workspaceParams struct{}

func (h *handler) workspaceHandler(ctx context.Context, req *mcp.CallToolRequest, _ workspaceParams) (*mcp.CallToolResult, any, error) {
	h.mu.Lock()
	c, root := h.compiler, h.root
	h.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Root: %s\n", root)
	fmt.Fprintf(&b, "Source: %s\n", c.Source)
	fmt.Fprintf(&b, "Output: %s\n", c.OutputPath(root))
	if path, err := exec.LookPath(c.Solc); err == nil {
		fmt.Fprintf(&b, "Compiler: %s\n", path)
	} else {
		fmt.Fprintf(&b, "Compiler: %s (not found in $PATH)\n", c.Solc)
	}
	fmt.Fprintf(&b, "Command: %s\n", strings.Join(c.Argv(), " "))
	fmt.Fprintf(&b, "Directive: %s\n", c.Directive())

	return textResult(b.String())
}
