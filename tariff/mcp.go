package tariff

import (
	"context"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ExtractInput is the input schema for the tariff_extract tool.
type ExtractInput struct {
	Path string `json:"path" jsonschema:"path to a tariff PDF to extract"`
}

// ExtractOutput is the output schema for the tariff_extract tool.
type ExtractOutput struct {
	Rows  []Row `json:"rows"`
	Count int   `json:"count"`
}

// NormalizeInput is the input schema for the tariff_normalize_plan tool.
type NormalizeInput struct {
	Plan string `json:"plan" jsonschema:"meal plan token to normalize"`
}

// NormalizeOutput is the output schema for the tariff_normalize_plan tool.
type NormalizeOutput struct {
	Plan string `json:"plan"`
}

// RegisterMCP registers tariff tools on an MCP server.
func (e *Extractor) RegisterMCP(srv *mcp.Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "tariff_extract",
		Description: "Extract normalized hotel tariff rows from a tariff PDF.",
	}, e.handleExtract)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "tariff_normalize_plan",
		Description: "Normalize a meal plan token to its canonical code (CP, MAP, AP, EP).",
	}, handleNormalizePlan)
}

func (e *Extractor) handleExtract(ctx context.Context, _ *mcp.CallToolRequest, in ExtractInput) (*mcp.CallToolResult, ExtractOutput, error) {
	data, err := os.ReadFile(in.Path)
	if err != nil {
		return nil, ExtractOutput{}, err
	}
	rows := e.Extract(ctx, Document{Name: filepath.Base(in.Path), Data: data})
	return nil, ExtractOutput{Rows: rows, Count: len(rows)}, nil
}

func handleNormalizePlan(_ context.Context, _ *mcp.CallToolRequest, in NormalizeInput) (*mcp.CallToolResult, NormalizeOutput, error) {
	return nil, NormalizeOutput{Plan: NormalizeMealPlan(in.Plan)}, nil
}
