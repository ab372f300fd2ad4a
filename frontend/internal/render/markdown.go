// Package render turns product description markdown into safe HTML.
package render

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New builds the renderer. Raw HTML in the source is rendered (descriptions
// come from admins, not customers) and then sanitized, so script injection
// through a compromised admin account still goes nowhere.
func New() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts markdown to sanitized HTML. On a conversion error the raw
// text is returned escaped rather than dropped.
func (m *Markdown) Render(src string) template.HTML {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(m.policy.SanitizeBytes(buf.Bytes()))
}
