// Package markup converts between Markdown and HTML with ordered regular
// expression rules.
//
// The converters are shallow. They handle headings, emphasis,
// code, links, images, lists, blockquotes and rules, and they never fail:
// input they do not understand passes through. Nested lists and tables are
// flattened or left as-is.
package markup
