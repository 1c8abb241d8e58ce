package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/devbench/internal/config"
	"github.com/gorewood/devbench/internal/rsync"
)

// --- rsync_command tool ---

// RsyncCommandInput is the input for the rsync_command tool.
type RsyncCommandInput struct {
	Direction  string   `json:"direction,omitempty"   jsonschema:"local-to-remote (push), remote-to-local (pull) or server-to-server"`
	Local      string   `json:"local,omitempty"       jsonschema:"local path"`
	Remote     string   `json:"remote,omitempty"      jsonschema:"remote endpoint as user@host:path"`
	Port       string   `json:"port,omitempty"        jsonschema:"ssh port of the remote (default 22)"`
	Source     string   `json:"source,omitempty"      jsonschema:"server-to-server source as user@host:path"`
	SourcePort string   `json:"source_port,omitempty" jsonschema:"ssh port of the source server"`
	Dest       string   `json:"dest,omitempty"        jsonschema:"server-to-server destination as user@host:path"`
	DestPort   string   `json:"dest_port,omitempty"   jsonschema:"ssh port of the destination server"`
	Options    []string `json:"options,omitempty"     jsonschema:"catalog flags such as a, v, z, P, n, e, --delete; omit for the configured defaults"`
	Excludes   []string `json:"excludes,omitempty"    jsonschema:"exclude patterns; enables --exclude"`
}

// RsyncCommandOutput is the output for the rsync_command tool.
type RsyncCommandOutput struct {
	Command   string   `json:"command"   jsonschema:"the rsync command line"`
	Direction string   `json:"direction" jsonschema:"resolved direction"`
	Options   []string `json:"options"   jsonschema:"options in effect"`
}

func handleRsyncCommand(cfg *config.Config) mcp.ToolHandlerFor[RsyncCommandInput, RsyncCommandOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in RsyncCommandInput) (*mcp.CallToolResult, RsyncCommandOutput, error) {
		spec := rsync.Spec{
			Direction:  in.Direction,
			Local:      in.Local,
			Remote:     in.Remote,
			Port:       withDefault(in.Port, cfg.Rsync.Port),
			Source:     in.Source,
			SourcePort: withDefault(in.SourcePort, cfg.Rsync.Port),
			Dest:       in.Dest,
			DestPort:   withDefault(in.DestPort, cfg.Rsync.Port),
			Options:    in.Options,
			Excludes:   in.Excludes,
		}
		if spec.Options == nil {
			spec.Options = cfg.Rsync.Options
		}
		if spec.Excludes == nil {
			spec.Excludes = cfg.Rsync.Excludes
		}

		rc, err := spec.Config()
		if err != nil {
			return nil, RsyncCommandOutput{}, err
		}
		return nil, RsyncCommandOutput{
			Command:   rsync.BuildCommand(rc),
			Direction: string(rc.Direction),
			Options:   rc.Options,
		}, nil
	}
}

// --- rsync_preview tool ---

// RsyncPreviewInput is the input for the rsync_preview tool.
type RsyncPreviewInput struct {
	From     string   `json:"from"               jsonschema:"source directory"`
	To       string   `json:"to"                 jsonschema:"destination directory (may not exist yet)"`
	Delete   bool     `json:"delete,omitempty"   jsonschema:"also list destination files missing from the source"`
	Excludes []string `json:"excludes,omitempty" jsonschema:"exclude patterns"`
}

// PreviewItem is one file in the preview.
type PreviewItem struct {
	Name   string `json:"name"   jsonschema:"path relative to the directory"`
	Action string `json:"action" jsonschema:"create, update or delete"`
	Size   string `json:"size"   jsonschema:"human-readable size"`
}

// RsyncPreviewOutput is the output for the rsync_preview tool.
type RsyncPreviewOutput struct {
	Items    []PreviewItem  `json:"items"              jsonschema:"files the transfer would touch"`
	Excluded []string       `json:"excluded,omitempty" jsonschema:"source files skipped by exclude patterns"`
	Counts   map[string]int `json:"counts"             jsonschema:"items per action"`
	Transfer string         `json:"transfer"           jsonschema:"total size to transfer"`
}

func handleRsyncPreview(cfg *config.Config) mcp.ToolHandlerFor[RsyncPreviewInput, RsyncPreviewOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, in RsyncPreviewInput) (*mcp.CallToolResult, RsyncPreviewOutput, error) {
		if in.From == "" || in.To == "" {
			return nil, RsyncPreviewOutput{}, fmt.Errorf("from and to are required")
		}
		excludes := in.Excludes
		if excludes == nil {
			excludes = cfg.Rsync.Excludes
		}
		plan, err := rsync.Preview(in.From, in.To, rsync.PlanOptions{Delete: in.Delete, Excludes: excludes})
		if err != nil {
			return nil, RsyncPreviewOutput{}, err
		}
		return nil, toPreviewOutput(plan), nil
	}
}

func toPreviewOutput(plan rsync.Plan) RsyncPreviewOutput {
	out := RsyncPreviewOutput{
		Items:    make([]PreviewItem, 0, len(plan.Items)),
		Excluded: plan.Excluded,
		Counts:   make(map[string]int),
		Transfer: plan.HumanBytes(),
	}
	for _, item := range plan.Items {
		out.Items = append(out.Items, PreviewItem{
			Name:   item.File.Name,
			Action: string(item.Action),
			Size:   item.File.HumanSize(),
		})
	}
	for action, n := range plan.Counts() {
		out.Counts[string(action)] = n
	}
	return out
}
