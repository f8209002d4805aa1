// Package content reads and scaffolds blog content files. The generator owns
// all rendering; this package only looks at metadata for linting, slug
// derivation and URL resolution.
package content

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/goliatone/go-slug"

	"git.home.luguber.info/inful/blogbuilder/internal/urls"
)

// Metadata is the frontmatter shape of a content file. All fields are
// optional except Title.
type Metadata struct {
	Title    string   `yaml:"title"`
	Slug     string   `yaml:"slug"`
	Date     string   `yaml:"date"`
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Status   string   `yaml:"status"`
	Author   string   `yaml:"author"`
	Lang     string   `yaml:"lang"`
}

// File is one parsed content file: its metadata plus the markup body.
type File struct {
	Path string
	Meta Metadata
	Body []byte
	// BodyStart is the number of file lines the frontmatter block consumed,
	// so positions inside Body can be reported as file line numbers.
	BodyStart int
}

// dateLayouts are accepted frontmatter date forms, most specific first.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse splits source into frontmatter metadata and body.
func Parse(path string, source []byte) (*File, error) {
	var meta Metadata
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	consumed := source[:len(source)-len(body)]
	return &File{Path: path, Meta: meta, Body: body, BodyStart: bytes.Count(consumed, []byte("\n"))}, nil
}

// Load reads and parses the content file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// EffectiveSlug returns the explicit slug when present, otherwise the
// normalized title.
func (m Metadata) EffectiveSlug() (string, error) {
	if m.Slug != "" {
		return m.Slug, nil
	}
	if m.Title == "" {
		return "", fmt.Errorf("no slug and no title to derive one from")
	}
	s, err := slug.Normalize(m.Title)
	if err != nil {
		return "", fmt.Errorf("derive slug from title %q: %w", m.Title, err)
	}
	return s, nil
}

// IsDraft reports whether the item would be excluded from a published site.
// The publish profile defaults missing statuses to draft, so only an explicit
// published status counts.
func (m Metadata) IsDraft() bool {
	return !strings.EqualFold(m.Status, "published")
}

// ParsedDate returns the frontmatter date, or the zero time when absent.
func (m Metadata) ParsedDate() (time.Time, error) {
	if m.Date == "" {
		return time.Time{}, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, m.Date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", m.Date)
}

// URLItem converts metadata into the placeholder source for URL templates.
func (m Metadata) URLItem() (urls.Item, error) {
	s, err := m.EffectiveSlug()
	if err != nil {
		return urls.Item{}, err
	}
	date, err := m.ParsedDate()
	if err != nil {
		return urls.Item{}, err
	}
	item := urls.Item{
		Slug:     s,
		Category: m.Category,
		Author:   m.Author,
		Lang:     m.Lang,
		Date:     date,
	}
	return item, nil
}
