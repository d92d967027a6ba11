package conv

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

var (
	extensions = parser.CommonExtensions | parser.NoEmptyLineBeforeBlock
	htmlFlags  = html.CommonFlags | html.HrefTargetBlank
	webPolicy  = bluemonday.NewPolicy()
)

func init() {
	// Tags the web chat view is allowed to render
	webPolicy.AllowElements(
		"p", "br", "b", "strong", "i", "em", "u", "s", "del",
		"code", "pre", "blockquote", "ul", "ol", "li",
		"h1", "h2", "h3", "h4", "h5", "h6",
	)
	webPolicy.AllowAttrs("href").OnElements("a")
	webPolicy.AllowAttrs("class").OnElements("code")
}

// MarkdownToHTML renders an assistant reply as sanitized HTML for the
// web interface.
func MarkdownToHTML(md []byte) string {
	p := parser.NewWithExtensions(extensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})
	unsafeHTML := markdown.Render(p.Parse(md), renderer)

	return string(webPolicy.SanitizeBytes(unsafeHTML))
}
