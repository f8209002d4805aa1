package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ScaffoldOptions tune the frontmatter seeded into a new content file.
type ScaffoldOptions struct {
	Category string
	Tags     []string
	Author   string
	// Page scaffolds under pages/ instead of posts/.
	Page bool
	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
}

// Scaffold creates a new draft content file under contentDir and returns its
// path. The filename is the slugified title; an existing file is never
// overwritten.
func Scaffold(contentDir, title string, opts ScaffoldOptions) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", fmt.Errorf("title must not be empty")
	}
	fileSlug, err := slug.Normalize(title)
	if err != nil {
		return "", fmt.Errorf("slugify title %q: %w", title, err)
	}

	subdir := "posts"
	if opts.Page {
		subdir = "pages"
	}
	dir := filepath.Join(contentDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create content directory: %w", err)
	}

	path := filepath.Join(dir, fileSlug+".md")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("content file already exists: %s", path)
	}

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %s\n", cases.Title(language.English).String(title))
	fmt.Fprintf(&b, "slug: %s\n", fileSlug)
	fmt.Fprintf(&b, "date: %s\n", now().Format("2006-01-02 15:04"))
	if opts.Category != "" {
		fmt.Fprintf(&b, "category: %s\n", opts.Category)
	}
	if len(opts.Tags) > 0 {
		fmt.Fprintf(&b, "tags: [%s]\n", strings.Join(opts.Tags, ", "))
	}
	if opts.Author != "" {
		fmt.Fprintf(&b, "author: %s\n", opts.Author)
	}
	b.WriteString("status: draft\n")
	b.WriteString("---\n\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write content file: %w", err)
	}
	return path, nil
}
