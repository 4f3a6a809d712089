package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/swishlabsco/witness/internal/report"
)

type inspectParams struct {
	RunID    string `json:"run_id" jsonschema:"the run ID from a witness_compile result"`
	Contract string `json:"contract,omitempty" jsonschema:"contract name to show (e.g. Peggy); defaults to all ABIs in the run"`
}

func (h *handler) inspectHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}

	rec, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load run %s: %v", params.RunID, err))
	}

	if params.Contract != "" && rec.Contract(params.Contract) == nil {
		return textResult(fmt.Sprintf("No ABI for contract %s in run %s.", params.Contract, params.RunID))
	}

	return textResult(formatInspect(rec, params.Contract))
}

func formatInspect(rec *report.Record, contract string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s (%s)\n", rec.ID, rec.Outcome)
	fmt.Fprintf(&b, "Source: %s\n", rec.Source)
	fmt.Fprintf(&b, "Duration: %s\n", rec.Duration)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, rec.Message)

	if rec.Stderr != "" {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Stderr:")
		for _, line := range strings.Split(strings.TrimRight(rec.Stderr, "\n"), "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}

	for _, a := range rec.Artifacts {
		if contract != "" && a.Contract != contract {
			continue
		}
		fmt.Fprintln(&b)
		fmt.Fprint(&b, a.String())
	}

	return b.String()
}
