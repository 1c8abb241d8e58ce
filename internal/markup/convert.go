package markup

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Direction selects which way Convert translates.
type Direction string

// Conversion directions.
const (
	MarkdownToHTML Direction = "markdown-to-html"
	HTMLToMarkdown Direction = "html-to-markdown"
)

// ParseDirection maps a target format name to a Direction. "html" means the
// input is Markdown and vice versa.
func ParseDirection(target string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "", "html", "markdown-to-html", "md2html":
		return MarkdownToHTML, nil
	case "markdown", "md", "html-to-markdown", "html2md":
		return HTMLToMarkdown, nil
	default:
		return "", fmt.Errorf("unknown target format %q (want html or markdown)", target)
	}
}

// Convert translates text in the given direction. Unknown directions return
// the text unchanged. Conversion never fails; malformed input produces
// best-effort output.
func Convert(text string, dir Direction) string {
	switch dir {
	case MarkdownToHTML:
		return ToHTML(text)
	case HTMLToMarkdown:
		return ToMarkdown(text)
	default:
		return text
	}
}

// ToHTML renders Markdown as an HTML fragment.
func ToHTML(markdown string) string {
	return markdownRules.Run(markdown)
}

// ToMarkdown renders HTML as Markdown.
func ToMarkdown(markup string) string {
	return htmlRules.Run(markup)
}

// Rules returns the rule names applied for a direction, in order.
func Rules(dir Direction) []string {
	switch dir {
	case MarkdownToHTML:
		return markdownRules.Names()
	case HTMLToMarkdown:
		return htmlRules.Names()
	default:
		return nil
	}
}

// DefaultStylesheet is embedded by Document when no stylesheet is supplied.
const DefaultStylesheet = `body { font-family: -apple-system, "Segoe UI", Helvetica, Arial, sans-serif; line-height: 1.6; max-width: 48em; margin: 2em auto; padding: 0 1em; color: #24292e; }
h1, h2 { border-bottom: 1px solid #eaecef; padding-bottom: .3em; }
pre { background: #f6f8fa; padding: 1em; overflow: auto; border-radius: 6px; }
code { background: #f6f8fa; padding: .2em .4em; border-radius: 3px; font-family: SFMono-Regular, Consolas, monospace; }
pre code { padding: 0; background: none; }
blockquote { margin: 0; padding: 0 1em; color: #6a737d; border-left: .25em solid #dfe2e5; }
img { max-width: 100%; }
hr { border: 0; border-top: 1px solid #eaecef; }`

// Page describes a standalone HTML document.
type Page struct {
	Title string
	CSS   string
}

// Document wraps an HTML fragment in a complete page.
func Document(body string, page Page) string {
	css := page.CSS
	if css == "" {
		css = DefaultStylesheet
	}
	title := page.Title
	if title == "" {
		title = Title(body)
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	fmt.Fprintf(&b, "<style>\n%s\n</style>\n", strings.TrimSpace(css))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(strings.TrimSpace(body))
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

var firstHeading = regexp.MustCompile(`(?is)<h1(?:\s[^>]*)?>(.*?)</h1>`)

// Title returns the text of the first <h1> in an HTML fragment, or
// "Document" when there is none.
func Title(fragment string) string {
	m := firstHeading.FindStringSubmatch(fragment)
	if m == nil {
		return "Document"
	}
	text := strings.TrimSpace(html.UnescapeString(anyTagPattern.ReplaceAllString(m[1], "")))
	if text == "" {
		return "Document"
	}
	return text
}
