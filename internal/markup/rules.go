package markup

import "regexp"

// Rule is one substitution step. Exactly one of Replace or ReplaceFunc is
// used; ReplaceFunc wins when set. Replace follows regexp.Expand syntax.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replace     string
	ReplaceFunc func(match []string) string
}

// Apply runs the rule over text.
func (r Rule) Apply(text string) string {
	if r.ReplaceFunc == nil {
		return r.Pattern.ReplaceAllString(text, r.Replace)
	}
	return r.Pattern.ReplaceAllStringFunc(text, func(m string) string {
		return r.ReplaceFunc(r.Pattern.FindStringSubmatch(m))
	})
}

// Pipeline is an ordered list of rules applied in sequence.
type Pipeline []Rule

// Run applies every rule in order.
func (p Pipeline) Run(text string) string {
	for _, rule := range p {
		text = rule.Apply(text)
	}
	return text
}

// Names returns the rule names in order.
func (p Pipeline) Names() []string {
	names := make([]string, len(p))
	for i, rule := range p {
		names[i] = rule.Name
	}
	return names
}

func rule(name, pattern, replace string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(pattern), Replace: replace}
}

func funcRule(name, pattern string, fn func(match []string) string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(pattern), ReplaceFunc: fn}
}
