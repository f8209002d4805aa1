// Package lint checks content files and URL template configuration before a
// build, so problems surface as readable findings instead of generator
// stack traces. Everything below error severity is advisory.
package lint

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/content"
	"git.home.luguber.info/inful/blogbuilder/internal/roles"
	"git.home.luguber.info/inful/blogbuilder/internal/urls"
)

// Linter validates the content tree and the URL templates of one site.
type Linter struct {
	cfg   *config.Config
	table *roles.Table
	md    goldmark.Markdown
}

func New(cfg *config.Config) *Linter {
	table := roles.DefaultTable()
	return &Linter{
		cfg:   cfg,
		table: table,
		md:    roles.NewMarkdown(table, roles.NewHighlighter(cfg.Theme.Pygments)),
	}
}

// Run lints the URL template configuration and every markup file under the
// content directory.
func (l *Linter) Run() (*Result, error) {
	result := &Result{}
	l.lintTemplates(result)
	if err := l.lintContentDir(l.cfg.ContentDir(), result); err != nil {
		return nil, err
	}
	return result, nil
}

func (l *Linter) lintContentDir(dir string, result *Result) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("content directory: %w", err)
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") || !isMarkupFile(path) {
			return nil
		}
		result.FilesTotal++
		l.lintFile(path, result)
		return nil
	})
}

func (l *Linter) lintFile(path string, result *Result) {
	file, err := content.Load(path)
	if err != nil {
		result.add(Finding{Path: path, Severity: SeverityError, Rule: "frontmatter", Message: err.Error()})
		return
	}

	meta := file.Meta
	if meta.Title == "" {
		result.add(Finding{Path: path, Severity: SeverityWarning, Rule: "metadata",
			Message: "missing title; the generator will derive one from the file name"})
	}
	if meta.Slug != "" && !slug.IsValid(meta.Slug) {
		result.add(Finding{Path: path, Severity: SeverityError, Rule: "slug",
			Message: fmt.Sprintf("explicit slug %q is not URL-safe", meta.Slug)})
	}
	if _, err := meta.ParsedDate(); err != nil {
		result.add(Finding{Path: path, Severity: SeverityWarning, Rule: "metadata", Message: err.Error()})
	}

	for _, ref := range roleRefs(file.Body) {
		if _, ok := l.table.Lookup(ref.name); !ok {
			result.add(Finding{Path: path, Line: file.BodyStart + ref.line, Severity: SeverityWarning, Rule: "role",
				Message: fmt.Sprintf("unknown role %q renders literally; known roles: %s",
					ref.name, strings.Join(l.table.Names(), ", "))})
		}
	}

	if err := l.md.Convert(file.Body, io.Discard); err != nil {
		result.add(Finding{Path: path, Severity: SeverityError, Rule: "render",
			Message: fmt.Sprintf("body does not render: %v", err)})
	}
}

// lintTemplates flags URL/save-as placeholders that cannot be filled from
// item metadata. These stay advisory; configuration loading never rejects a
// template on consistency grounds.
func (l *Linter) lintTemplates(result *Result) {
	pairs := []struct {
		name string
		pair config.TemplatePair
	}{
		{"article", l.cfg.URLs.Article},
		{"page", l.cfg.URLs.Page},
		{"author", l.cfg.URLs.Author},
		{"tag", l.cfg.URLs.Tag},
		{"category", l.cfg.URLs.Category},
	}
	for _, p := range pairs {
		templates := []struct{ field, value string }{
			{"url", p.pair.URL},
			{"save_as", p.pair.SaveAs},
			{"publish_save_as", p.pair.PublishSaveAs},
		}
		for _, tmpl := range templates {
			if tmpl.value == "" {
				continue
			}
			for _, name := range urls.Placeholders(tmpl.value) {
				if !urls.Known(name) {
					result.add(Finding{Severity: SeverityWarning, Rule: "url-templates",
						Message: fmt.Sprintf("urls.%s.%s references {%s}, which cannot be resolved from item metadata",
							p.name, tmpl.field, name)})
				}
			}
		}
	}
}

func isMarkupFile(path string) bool {
	switch filepath.Ext(path) {
	case ".md", ".markdown":
		return true
	}
	return false
}

type roleRef struct {
	name string
	line int
}

// rolePattern mirrors the inline parser's role-name alphabet; lint only needs
// to spot candidates, the table decides whether they exist.
var rolePattern = regexp.MustCompile(":([a-zA-Z][a-zA-Z0-9_.+-]*):`")

func roleRefs(body []byte) []roleRef {
	var refs []roleRef
	for _, idx := range rolePattern.FindAllSubmatchIndex(body, -1) {
		refs = append(refs, roleRef{
			name: string(body[idx[2]:idx[3]]),
			line: 1 + bytes.Count(body[:idx[0]], []byte("\n")),
		})
	}
	return refs
}
