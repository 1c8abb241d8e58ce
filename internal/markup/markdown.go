package markup

import (
	"fmt"
	"regexp"
	"strings"
)

// codeEscaper neutralizes characters inside code spans so that later rules
// leave the code alone. The entities render identically in a browser.
var codeEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"*", "&#42;",
	"_", "&#95;",
	"~", "&#126;",
	"[", "&#91;",
	"]", "&#93;",
	"!", "&#33;",
	"#", "&#35;",
	"-", "&#45;",
	".", "&#46;",
	"`", "&#96;",
)

var blockTag = regexp.MustCompile(`^<(?:h[1-6]|ul|ol|li|pre|blockquote|hr|p|div|table)\b`)

// markdownRules converts Markdown to HTML. Order matters: code is escaped
// first, line-level constructs are matched before inline emphasis so that
// list bullets are not read as italics, and the wrapping passes run last.
var markdownRules = Pipeline{
	rule("newlines", `\r\n?`, "\n"),
	funcRule("fenced code", "(?s)```[\\w+-]*\\n(.*?)\\n?```", func(m []string) string {
		return "<pre><code>" + codeEscaper.Replace(m[1]) + "</code></pre>"
	}),
	funcRule("inline code", "`([^`\\n]+)`", func(m []string) string {
		return "<code>" + codeEscaper.Replace(m[1]) + "</code>"
	}),
	heading(6), heading(5), heading(4), heading(3), heading(2), heading(1),
	rule("horizontal rule", `(?m)^[ \t]*(?:(?:-[ \t]*){3,}|(?:\*[ \t]*){3,})$`, "<hr>"),
	rule("blockquote", `(?m)^>[ \t]?(.*)$`, "<blockquote>$1</blockquote>"),
	rule("unordered item", `(?m)^[ \t]*[*+-][ \t]+(.*)$`, "<li>$1</li>"),
	rule("ordered item", `(?m)^[ \t]*(\d+)\.[ \t]+(.*)$`, `<li value="$1">$2</li>`),
	rule("bold", `\*\*(.+?)\*\*`, "<strong>$1</strong>"),
	rule("bold underscore", `__(.+?)__`, "<strong>$1</strong>"),
	rule("italic", `\*([^*\n]+?)\*`, "<em>$1</em>"),
	rule("italic underscore", `(^|[^\w])_([^_\n]+?)_([^\w]|$)`, "$1<em>$2</em>$3"),
	rule("strikethrough", `~~(.+?)~~`, "<del>$1</del>"),
	rule("image", `!\[([^\]]*)\]\(([^)\s]*)[^)]*\)`, `<img src="$2" alt="$1">`),
	rule("link", `\[([^\]]+)\]\(([^)\s]*)[^)]*\)`, `<a href="$2">$1</a>`),
	funcRule("ordered list", `(?m)(?:^<li value="\d+">.*</li>(?:\n|\z))+`, wrapList("ol")),
	funcRule("unordered list", `(?m)(?:^<li>.*</li>(?:\n|\z))+`, wrapList("ul")),
	funcRule("paragraphs", `(?s)\A.*\z`, func(m []string) string {
		return wrapParagraphs(m[0])
	}),
}

func heading(level int) Rule {
	return rule(
		fmt.Sprintf("heading %d", level),
		fmt.Sprintf(`(?m)^#{%d}[ \t]+(.+?)[ \t#]*$`, level),
		fmt.Sprintf("<h%d>$1</h%d>", level, level),
	)
}

// wrapList returns a replacement that encloses a run of <li> lines in tag.
func wrapList(tag string) func(m []string) string {
	return func(m []string) string {
		body := strings.TrimSuffix(m[0], "\n")
		trailer := m[0][len(body):]
		return "<" + tag + ">\n" + body + "\n</" + tag + ">" + trailer
	}
}

// wrapParagraphs wraps blank-line separated blocks in <p> unless they already
// start with a block-level element. Blank lines inside <pre> do not split.
func wrapParagraphs(text string) string {
	blocks := regexp.MustCompile(`\n{2,}`).Split(strings.Trim(text, "\n"), -1)
	var out []string
	for i := 0; i < len(blocks); i++ {
		block := blocks[i]
		for strings.Count(block, "<pre>") > strings.Count(block, "</pre>") && i+1 < len(blocks) {
			i++
			block += "\n\n" + blocks[i]
		}
		block = strings.TrimSpace(block)
		switch {
		case block == "":
			continue
		case blockTag.MatchString(block):
			out = append(out, block)
		default:
			out = append(out, "<p>"+block+"</p>")
		}
	}
	return strings.Join(out, "\n")
}
