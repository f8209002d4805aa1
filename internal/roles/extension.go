package roles

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindRoleSpan identifies role spans in the goldmark AST.
var KindRoleSpan = ast.NewNodeKind("RoleSpan")

// RoleSpan is the AST node for a recognized :name:`text` span.
type RoleSpan struct {
	ast.BaseInline
	Name  string
	Role  Role
	Value []byte
}

// Kind implements ast.Node.
func (n *RoleSpan) Kind() ast.NodeKind { return KindRoleSpan }

// Dump implements ast.Node.
func (n *RoleSpan) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name":  n.Name,
		"Value": string(n.Value),
	}, nil)
}

// Extension wires the role table into a goldmark pipeline: a :name:`text`
// span whose name is registered becomes a RoleSpan node rendered as
// <code class="…">highlighted</code>. Unregistered names are not consumed;
// the text passes through the normal inline pipeline literally.
func Extension(table *Table, highlighter *Highlighter) goldmark.Extender {
	return &roleExtension{table: table, highlighter: highlighter}
}

// NewMarkdown returns a goldmark instance with the role extension installed,
// ready for rendering content bodies.
func NewMarkdown(table *Table, highlighter *Highlighter) goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(Extension(table, highlighter)))
}

type roleExtension struct {
	table       *Table
	highlighter *Highlighter
}

func (e *roleExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(&roleParser{table: e.table}, 500),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&roleRenderer{highlighter: e.highlighter}, 500),
	))
}

type roleParser struct {
	table *Table
}

func (p *roleParser) Trigger() []byte {
	return []byte{':'}
}

// Parse recognizes :name:`text` on a single line. Anything that does not
// match the full form, or names a role that is not registered, is left for
// the regular inline parsers.
func (p *roleParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 4 || line[0] != ':' {
		return nil
	}

	// Role name between the two colons.
	nameEnd := 1
	for nameEnd < len(line) && isRoleNameByte(line[nameEnd]) {
		nameEnd++
	}
	if nameEnd == 1 || nameEnd >= len(line) || line[nameEnd] != ':' {
		return nil
	}
	name := string(line[1:nameEnd])
	role, ok := p.table.Lookup(name)
	if !ok {
		return nil
	}

	// Backtick-quoted content, closed on the same line.
	contentStart := nameEnd + 1
	if contentStart >= len(line) || line[contentStart] != '`' {
		return nil
	}
	rel := bytes.IndexByte(line[contentStart+1:], '`')
	if rel < 0 {
		return nil
	}
	contentEnd := contentStart + 1 + rel

	value := make([]byte, contentEnd-contentStart-1)
	copy(value, line[contentStart+1:contentEnd])

	block.Advance(contentEnd + 1)
	return &RoleSpan{Name: name, Role: role, Value: value}
}

func isRoleNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.' || b == '+':
		return true
	}
	return false
}

type roleRenderer struct {
	highlighter *Highlighter
}

func (r *roleRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindRoleSpan, r.renderRoleSpan)
}

func (r *roleRenderer) renderRoleSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*RoleSpan)

	highlighted, err := r.highlighter.InlineHTML(n.Role.Language, string(n.Value))
	if err != nil {
		return ast.WalkStop, err
	}

	w.WriteString(`<code class="`)
	w.Write(util.EscapeHTML([]byte(strings.Join(n.Role.Classes, " "))))
	w.WriteString(`">`)
	w.WriteString(highlighted)
	w.WriteString(`</code>`)
	return ast.WalkContinue, nil
}
