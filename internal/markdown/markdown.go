// Package markdown renders model output for the result panel. Raw HTML in the
// source is dropped and links are limited to safe schemes, since the text
// comes from a remote model and may echo user input.
package markdown

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

func ToHTML(md string) template.HTML {
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML | html.Safelink,
	})
	// parsers carry state and cannot be reused
	p := parser.NewWithExtensions(parser.CommonExtensions)
	return template.HTML(markdown.ToHTML([]byte(md), p, renderer))
}
