package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/swishlabsco/witness/internal/artifact"
	"github.com/swishlabsco/witness/internal/report"
)

type compileParams struct{}

func (h *handler) compileHandler(ctx context.Context, req *mcp.CallToolRequest, _ compileParams) (*mcp.CallToolResult, any, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	started := time.Now()
	out := h.compiler.Compile(ctx)
	rec := report.NewRecord(uuid.New().String(), h.compiler, out, started)

	if rec.Succeeded() {
		arts, err := artifact.Load(h.compiler.OutputPath(h.root))
		if err != nil {
			return errorResult(fmt.Sprintf("solc succeeded but the ABI output is invalid: %v", err))
		}
		rec.Artifacts = arts
	}

	// Save results for witness_inspect.
	_ = h.store.Save(rec)

	return textResult(formatCompile(rec))
}

func formatCompile(rec *report.Record) string {
	var b strings.Builder

	status := "PASS"
	if !rec.Succeeded() {
		status = "FAIL"
	}
	fmt.Fprintf(&b, "Status: %s\n", status)
	fmt.Fprintf(&b, "Run: %s\n", rec.ID)
	fmt.Fprintf(&b, "Command: %s\n", strings.Join(rec.Argv, " "))
	fmt.Fprintf(&b, "Directive: %s\n", rec.Directive)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, rec.Message)

	if len(rec.Artifacts) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "Artifacts (%d):\n", len(rec.Artifacts))
		for _, a := range rec.Artifacts {
			fmt.Fprintf(&b, "  %s: %d methods, %d events\n", a.Contract, len(a.Methods), len(a.Events))
		}
	}

	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Inspect with witness_inspect(run_id=%q).\n", rec.ID)
	return b.String()
}
