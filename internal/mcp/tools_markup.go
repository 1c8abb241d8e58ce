package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/devbench/internal/markup"
)

// ConvertInput is the input for the convert_markup tool.
type ConvertInput struct {
	Text string `json:"text"         jsonschema:"Markdown or HTML to convert"`
	To   string `json:"to,omitempty" jsonschema:"html (default) or markdown"`
}

// ConvertOutput is the output for the convert_markup tool.
type ConvertOutput struct {
	Direction string `json:"direction" jsonschema:"markdown-to-html or html-to-markdown"`
	Output    string `json:"output"    jsonschema:"converted text"`
}

func handleConvert() mcp.ToolHandlerFor[ConvertInput, ConvertOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in ConvertInput) (*mcp.CallToolResult, ConvertOutput, error) {
		dir, err := markup.ParseDirection(in.To)
		if err != nil {
			return nil, ConvertOutput{}, err
		}
		return nil, ConvertOutput{
			Direction: string(dir),
			Output:    markup.Convert(in.Text, dir),
		}, nil
	}
}
