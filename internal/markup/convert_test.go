package markup

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"heading", "# Title", "<h1>Title</h1>"},
		{"heading levels", "### Third ###", "<h3>Third</h3>"},
		{
			"emphasis",
			"Some **bold** and *italic* text.",
			"<p>Some <strong>bold</strong> and <em>italic</em> text.</p>",
		},
		{"strikethrough", "~~gone~~", "<p><del>gone</del></p>"},
		{
			"inline code is escaped",
			"Use `a*b*c` here",
			"<p>Use <code>a&#42;b&#42;c</code> here</p>",
		},
		{
			"lists",
			"- one\n- two\n\n1. first\n2. second",
			"<ul>\n<li>one</li>\n<li>two</li>\n</ul>\n<ol>\n<li value=\"1\">first</li>\n<li value=\"2\">second</li>\n</ol>",
		},
		{
			"bullet with emphasis",
			"* More *emphasis*",
			"<ul>\n<li>More <em>emphasis</em></li>\n</ul>",
		},
		{
			"links and images",
			"See [docs](https://x.io/a_b) and ![logo](img.png).",
			`<p>See <a href="https://x.io/a_b">docs</a> and <img src="img.png" alt="logo">.</p>`,
		},
		{
			"fenced code keeps blank lines",
			"```go\nx := 1 * 2\n\n# not a heading\n```",
			"<pre><code>x := 1 &#42; 2\n\n&#35; not a heading</code></pre>",
		},
		{"blockquote and rule", "> quoted\n\n---", "<blockquote>quoted</blockquote>\n<hr>"},
		{"unclosed emphasis passes through", "**unclosed", "<p>**unclosed</p>"},
		{"crlf", "a\r\n\r\nb", "<p>a</p>\n<p>b</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTML(tt.in); got != tt.want {
				t.Errorf("ToHTML(%q) =\n%q\nwant\n%q", tt.in, got, tt.want)
			}
		})
	}
}

func TestToMarkdown(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{
			"heading and paragraph",
			"<h1>Title</h1><p>Some <strong>bold</strong> and <em>it</em>.</p>",
			"# Title\n\nSome **bold** and *it*.",
		},
		{
			"lists",
			"<ul>\n  <li>one</li>\n  <li>two</li>\n</ul>\n<ol><li>a</li><li>b</li></ol>",
			"* one\n* two\n\n1. a\n2. b",
		},
		{
			"inline elements",
			`<p>Go <a href="https://go.dev">home</a> <img src="g.png" alt="gopher"> <code>x &lt; y</code></p>`,
			"Go [home](https://go.dev) ![gopher](g.png) `x < y`",
		},
		{
			"preformatted",
			"<pre><code>if a &amp;&amp; b {\n}</code></pre>",
			"```\nif a && b {\n}\n```",
		},
		{
			"blockquote rule and break",
			"<blockquote><p>wise words</p></blockquote><hr><p>a<br>b</p>",
			"> wise words\n\n---\n\na\nb",
		},
		{
			"invisible content dropped",
			"<!-- c --><script>alert(1)</script><p>ok</p>",
			"ok",
		},
		{"strikethrough", "<del>old</del> <s>older</s>", "~~old~~ ~~older~~"},
		{"unclosed tag stripped", "<p>unclosed <b>bold", "unclosed bold"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToMarkdown(tt.in); got != tt.want {
				t.Errorf("ToMarkdown(%q) =\n%q\nwant\n%q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	md := "## Sub\n\nA **b** *c* `d`"
	if got := ToMarkdown(ToHTML(md)); got != md {
		t.Errorf("round trip = %q, want %q", got, md)
	}
}

func TestConvert(t *testing.T) {
	if got := Convert("# x", MarkdownToHTML); got != "<h1>x</h1>" {
		t.Errorf("Convert(md) = %q", got)
	}
	if got := Convert("<h1>x</h1>", HTMLToMarkdown); got != "# x" {
		t.Errorf("Convert(html) = %q", got)
	}
	if got := Convert("# x", Direction("sideways")); got != "# x" {
		t.Errorf("Convert(unknown) = %q, want input unchanged", got)
	}
	if len(Rules(MarkdownToHTML)) == 0 || len(Rules(HTMLToMarkdown)) == 0 {
		t.Error("Rules() returned no names")
	}
	if Rules(Direction("x")) != nil {
		t.Error("Rules(unknown) should be nil")
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"", MarkdownToHTML, false},
		{"html", MarkdownToHTML, false},
		{"HTML", MarkdownToHTML, false},
		{"markdown", HTMLToMarkdown, false},
		{"md", HTMLToMarkdown, false},
		{"pdf", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseDirection(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDocument(t *testing.T) {
	page := Document(ToHTML("# Hello & bye\n\ntext"), Page{})
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Hello &amp; bye</title>",
		"<style>\nbody {",
		"<p>text</p>\n</body>",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("Document() missing %q:\n%s", want, page)
		}
	}

	custom := Document("<p>x</p>", Page{Title: "T", CSS: "p { color: red; }"})
	if !strings.Contains(custom, "<title>T</title>") || !strings.Contains(custom, "p { color: red; }") {
		t.Errorf("Document() ignored page settings:\n%s", custom)
	}
	if strings.Contains(custom, "font-family") {
		t.Error("Document() embedded default stylesheet alongside custom CSS")
	}

	if got := ToMarkdown(Document(ToHTML("# Hi\n\ntext"), Page{})); got != "# Hi\n\ntext" {
		t.Errorf("ToMarkdown(Document()) = %q", got)
	}
}

func TestTitle(t *testing.T) {
	if got := Title("<p>none</p>"); got != "Document" {
		t.Errorf("Title() = %q, want Document", got)
	}
	if got := Title("<h1><em>Big</em> news</h1>"); got != "Big news" {
		t.Errorf("Title() = %q, want Big news", got)
	}
}
