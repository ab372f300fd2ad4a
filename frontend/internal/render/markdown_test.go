package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	m := New()

	t.Run("markdown becomes html", func(t *testing.T) {
		out := string(m.Render("**Breathable** mesh upper"))
		assert.Contains(t, out, "<strong>Breathable</strong>")
	})

	t.Run("gfm tables render", func(t *testing.T) {
		out := string(m.Render("| Size | Stock |\n|------|-------|\n| 42 | 3 |"))
		assert.Contains(t, out, "<table>")
	})

	t.Run("scripts are stripped", func(t *testing.T) {
		out := string(m.Render(`<script>alert("x")</script>regular text`))
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "regular text")
	})

	t.Run("event handlers are stripped", func(t *testing.T) {
		out := string(m.Render(`<img src="x" onerror="alert(1)">`))
		assert.NotContains(t, out, "onerror")
	})

	t.Run("links survive sanitizing", func(t *testing.T) {
		out := string(m.Render("[size guide](https://example.com/sizes)"))
		assert.Contains(t, out, `href="https://example.com/sizes"`)
	})
}
