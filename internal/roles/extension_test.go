package roles

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func render(t *testing.T, table *Table, markdown string) string {
	t.Helper()
	md := NewMarkdown(table, NewHighlighter("monokai"))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		t.Fatalf("convert: %v", err)
	}
	return buf.String()
}

// findCodeElements returns the class attribute and inner text of every <code>
// element in the fragment.
func findCodeElements(t *testing.T, fragment string) []struct{ Class, Text string } {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parse rendered html: %v", err)
	}

	var found []struct{ Class, Text string }
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "code" {
			var class string
			for _, attr := range n.Attr {
				if attr.Key == "class" {
					class = attr.Val
				}
			}
			found = append(found, struct{ Class, Text string }{class, innerText(n)})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func innerText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(innerText(c))
	}
	return b.String()
}

func TestRoleRendersInlineCode(t *testing.T) {
	out := render(t, DefaultTable(), "Use :py:`print(42)` to debug.")

	codes := findCodeElements(t, out)
	require.Len(t, codes, 1)
	require.Equal(t, "inline-code", codes[0].Class)
	require.Equal(t, "print(42)", codes[0].Text)

	// Highlighting produced class-annotated spans, not inline styles.
	require.Contains(t, out, "<span class=")
	require.NotContains(t, out, "style=")
	require.NotContains(t, out, "<pre")
}

func TestEachDefaultRoleHighlights(t *testing.T) {
	cases := []struct {
		markdown string
		text     string
	}{
		{"run :bash:`ls -la | grep foo` now", "ls -la | grep foo"},
		{"the :html:`<div class=\"x\">` element", `<div class="x">`},
		{"call :py:`dict(a=1)` here", "dict(a=1)"},
	}
	for _, c := range cases {
		out := render(t, DefaultTable(), c.markdown)
		codes := findCodeElements(t, out)
		if len(codes) != 1 {
			t.Errorf("%q: got %d code elements", c.markdown, len(codes))
			continue
		}
		if codes[0].Text != c.text {
			t.Errorf("%q: code text = %q, want %q", c.markdown, codes[0].Text, c.text)
		}
	}
}

func TestUnknownRolePassesThroughLiterally(t *testing.T) {
	out := render(t, DefaultTable(), "a :nosuchrole:`text` b")

	// The backticks still make an ordinary code span; the point is that
	// the role prefix stays literal and no highlighting happens.
	require.NotContains(t, out, "inline-code")
	require.NotContains(t, out, "<span")
	require.Contains(t, out, ":nosuchrole:")
	require.Contains(t, out, "text")
}

func TestIncompleteRoleSyntaxNotConsumed(t *testing.T) {
	cases := []string{
		"a :py: b",                  // no backtick span
		"a :py:`unterminated b",     // no closing backtick
		"ratio 3:4 and time 12:30",  // bare colons
		"see https://example.com/x", // URL colon
	}
	for _, markdown := range cases {
		out := render(t, DefaultTable(), markdown)
		if strings.Contains(out, "<code") {
			t.Errorf("%q: plain text was consumed as a role:\n%s", markdown, out)
		}
	}
}

func TestRoleSpanDoesNotCrossLines(t *testing.T) {
	// The backticks still form a regular code span, but the role must not
	// apply across the line break.
	out := render(t, DefaultTable(), "a :py:`first\nsecond` b")
	require.NotContains(t, out, "inline-code")
	require.Contains(t, out, ":py:")
}

func TestRoleContentIsNotParsedAsMarkdown(t *testing.T) {
	out := render(t, DefaultTable(), "x :bash:`ls *foo* --bar` y")
	codes := findCodeElements(t, out)
	require.Len(t, codes, 1)
	require.Equal(t, "ls *foo* --bar", codes[0].Text)
	require.NotContains(t, out, "<em>")
}

func TestHighlightErrorPropagates(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Register("weird", Role{Language: "no-such-lexer-exists", Classes: []string{"inline-code"}}))

	md := NewMarkdown(table, NewHighlighter("monokai"))
	var buf bytes.Buffer
	err := md.Convert([]byte("a :weird:`stuff` b"), &buf)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no lexer")
}

func TestCustomClassesEscaped(t *testing.T) {
	table := NewTable()
	require.NoError(t, table.Register("x", Role{Language: "python", Classes: []string{`a"b`}}))

	out := render(t, table, ":x:`1`")
	require.Contains(t, out, "&quot;")
}
