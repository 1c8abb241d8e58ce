package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  []string
	}{
		{
			name:  "markdown from stdin",
			stdin: "# Title\n\nSome **bold** text.",
			want:  []string{"<h1>Title</h1>", "<p>Some <strong>bold</strong> text.</p>"},
		},
		{
			name:  "html to markdown",
			stdin: "<h2>Sub</h2><p>A <a href=\"https://x.dev\">link</a></p>",
			args:  []string{"--to", "markdown"},
			want:  []string{"## Sub", "[link](https://x.dev)"},
		},
		{
			name:  "standalone document",
			stdin: "# Report",
			args:  []string{"--standalone"},
			want:  []string{"<!DOCTYPE html>", "<title>Report</title>", "<style>"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := executeCmd(t, tt.stdin, append([]string{"convert"}, tt.args...)...)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout, want) {
					t.Errorf("output missing %q:\n%s", want, stdout)
				}
			}
		})
	}
}

func TestConvert_FileAndOut(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "notes.md")
	css := filepath.Join(dir, "theme.css")
	out := filepath.Join(dir, "notes.html")
	writeTestFile(t, in, "# Notes\n\n- one\n- two\n")
	writeTestFile(t, css, "body { color: teal; }")

	stdout, _, err := executeCmd(t, "", "convert", in, "--css", css, "--title", "My Notes", "--out", out)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "Wrote "+out) {
		t.Errorf("stdout = %q", stdout)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	for _, want := range []string{"<title>My Notes</title>", "color: teal", "<li>one</li>"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("document missing %q:\n%s", want, data)
		}
	}
}

func TestConvert_JSON(t *testing.T) {
	stdout, _, err := executeCmd(t, "*hi*", "--json", "convert")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	result := decodeJSON(t, stdout)
	if result["direction"] != "markdown-to-html" {
		t.Errorf("direction = %v", result["direction"])
	}
	if !strings.Contains(result["output"].(string), "<em>hi</em>") {
		t.Errorf("output = %v", result["output"])
	}
}

func TestConvert_Rules(t *testing.T) {
	stdout, _, err := executeCmd(t, "", "convert", "--rules", "--to", "markdown")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, " 1. ") {
		t.Errorf("rules should be numbered:\n%s", stdout)
	}
}

func TestConvert_Errors(t *testing.T) {
	if _, _, err := executeCmd(t, "x", "convert", "--to", "pdf"); err == nil {
		t.Error("expected error for unknown target")
	}
	if _, _, err := executeCmd(t, "", "convert", filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Error("expected error for missing input file")
	}
}
