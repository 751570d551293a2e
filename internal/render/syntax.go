package render

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/alecthomas/chroma/v2/styles"
)

// SyntaxRenderer highlights a fragment of a line with a chroma lexer
type SyntaxRenderer struct {
	lexerName   string
	syntaxTheme string
}

// NewSyntaxRenderer creates a highlighter for the named lexer and style.
// Unknown names fall back to plain text and monokai.
func NewSyntaxRenderer(lexerName, theme string) *SyntaxRenderer {
	if lexers.Get(lexerName) == nil {
		lexerName = "plaintext"
	}
	if _, ok := styles.Registry[strings.ToLower(theme)]; !ok {
		theme = "monokai"
	}
	return &SyntaxRenderer{
		lexerName:   lexerName,
		syntaxTheme: theme,
	}
}

// Render highlights content, keeping it on a single line
func (r *SyntaxRenderer) Render(content string) string {
	if content == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, r.lexerName, "terminal256", r.syntaxTheme); err != nil {
		return content
	}

	highlighted := strings.ReplaceAll(buf.String(), "\n", "")
	return strings.ReplaceAll(highlighted, "\r", "")
}
