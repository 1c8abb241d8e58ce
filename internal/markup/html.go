package markup

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

var (
	attrPattern   = regexp.MustCompile(`(?i)\b(src|alt)\s*=\s*"([^"]*)"`)
	itemPattern   = regexp.MustCompile(`(?is)<li(?:\s[^>]*)?>(.*?)</li>`)
	anyTagPattern = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
)

// htmlRules converts HTML to Markdown. Invisible sections and comments are
// dropped first; leftover tags are stripped and entities decoded at the end.
var htmlRules = Pipeline{
	rule("newlines", `\r\n?`, "\n"),
	rule("comments", `(?s)<!--.*?-->`, ""),
	rule("invisible", `(?is)<head(?:\s[^>]*)?>.*?</head>|<script[^>]*>.*?</script>|<style[^>]*>.*?</style>`, ""),
	rule("preformatted", `(?is)<pre[^>]*>\s*<code[^>]*>(.*?)</code>\s*</pre>`, "\n```\n$1\n```\n\n"),
	funcRule("headings", `(?is)<h([1-6])(?:\s[^>]*)?>(.*?)</h[1-6]>`, func(m []string) string {
		level, _ := strconv.Atoi(m[1])
		return "\n" + strings.Repeat("#", level) + " " + strings.TrimSpace(m[2]) + "\n\n"
	}),
	rule("bold", `(?is)<(?:strong|b)(?:\s[^>]*)?>(.*?)</(?:strong|b)>`, "**$1**"),
	rule("italic", `(?is)<(?:em|i)(?:\s[^>]*)?>(.*?)</(?:em|i)>`, "*$1*"),
	rule("strikethrough", `(?is)<(?:del|s|strike)(?:\s[^>]*)?>(.*?)</(?:del|s|strike)>`, "~~$1~~"),
	rule("inline code", `(?is)<code(?:\s[^>]*)?>(.*?)</code>`, "`$1`"),
	funcRule("image", `(?i)<img\s[^>]*>`, func(m []string) string {
		var src, alt string
		for _, attr := range attrPattern.FindAllStringSubmatch(m[0], -1) {
			if strings.EqualFold(attr[1], "src") {
				src = attr[2]
			} else {
				alt = attr[2]
			}
		}
		return "![" + alt + "](" + src + ")"
	}),
	rule("link", `(?is)<a\s[^>]*?href\s*=\s*"([^"]*)"[^>]*>(.*?)</a>`, "[$2]($1)"),
	funcRule("blockquote", `(?is)<blockquote(?:\s[^>]*)?>(.*?)</blockquote>`, func(m []string) string {
		body := strings.TrimSpace(anyTagPattern.ReplaceAllString(m[1], ""))
		lines := strings.Split(body, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight("> "+strings.TrimSpace(line), " ")
		}
		return "\n" + strings.Join(lines, "\n") + "\n\n"
	}),
	funcRule("unordered list", `(?is)<ul(?:\s[^>]*)?>(.*?)</ul>`, func(m []string) string {
		return listItems(m[1], func(int) string { return "* " })
	}),
	funcRule("ordered list", `(?is)<ol(?:\s[^>]*)?>(.*?)</ol>`, func(m []string) string {
		return listItems(m[1], func(i int) string { return strconv.Itoa(i+1) + ". " })
	}),
	rule("horizontal rule", `(?i)<hr\s*/?>`, "\n---\n\n"),
	rule("line break", `(?i)<br\s*/?>`, "\n"),
	rule("paragraph", `(?is)<p(?:\s[^>]*)?>(.*?)</p>`, "$1\n\n"),
	rule("strip tags", `</?[a-zA-Z][^>]*>|<!(?i:doctype)[^>]*>`, ""),
	funcRule("entities", `&(?:#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`, func(m []string) string {
		return html.UnescapeString(m[0])
	}),
	rule("trailing space", `(?m)[ \t]+$`, ""),
	rule("blank lines", `\n{3,}`, "\n\n"),
	rule("trim", `\A\s+|\s+\z`, ""),
}

// listItems renders the <li> children of a list body, one per line.
func listItems(body string, marker func(i int) string) string {
	var b strings.Builder
	b.WriteString("\n")
	for i, item := range itemPattern.FindAllStringSubmatch(body, -1) {
		text := strings.TrimSpace(anyTagPattern.ReplaceAllString(item[1], ""))
		text = strings.Join(strings.Fields(text), " ")
		b.WriteString(marker(i) + text + "\n")
	}
	b.WriteString("\n")
	return b.String()
}
