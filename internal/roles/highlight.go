package roles

import (
	"bytes"
	"fmt"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter tokenizes role contents and formats them as HTML spans. It is
// the external primitive the roles delegate to; tokenizer and formatter
// errors are returned to the caller unhandled.
type Highlighter struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
}

// NewHighlighter builds a class-based highlighter (no inline styles, no <pre>
// wrapper). styleName selects the stylesheet the site's CSS is generated
// from; an unknown name falls back to chroma's default style, which only
// matters for class names, not markup shape.
func NewHighlighter(styleName string) *Highlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &Highlighter{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
		style: style,
	}
}

// InlineHTML highlights code with the lexer registered for language and
// returns HTML span markup suitable for embedding inside an inline code
// element.
func (h *Highlighter) InlineHTML(language, code string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		return "", fmt.Errorf("no lexer registered for language %q", language)
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("tokenize %s: %w", language, err)
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", fmt.Errorf("format %s: %w", language, err)
	}
	return buf.String(), nil
}
