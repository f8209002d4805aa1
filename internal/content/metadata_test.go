package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleSource = `---
title: A First Post
slug: first-post
date: 2014-03-07 16:30
category: go
tags: [testing, blog]
status: published
---

Body with a :py:` + "`print()`" + ` role.
`

func TestParseSplitsFrontmatterAndBody(t *testing.T) {
	f, err := Parse("posts/first.md", []byte(sampleSource))
	require.NoError(t, err)

	require.Equal(t, "A First Post", f.Meta.Title)
	require.Equal(t, "first-post", f.Meta.Slug)
	require.Equal(t, "go", f.Meta.Category)
	require.Equal(t, []string{"testing", "blog"}, f.Meta.Tags)
	require.Contains(t, string(f.Body), "Body with a")
	require.NotContains(t, string(f.Body), "title:")
}

func TestParseRejectsBrokenFrontmatter(t *testing.T) {
	src := "---\ntitle: [unclosed\n---\nbody\n"
	_, err := Parse("broken.md", []byte(src))
	if err == nil {
		t.Fatal("expected error for malformed frontmatter")
	}
}

func TestEffectiveSlug(t *testing.T) {
	cases := []struct {
		name string
		meta Metadata
		want string
	}{
		{"explicit slug wins", Metadata{Title: "Some Title", Slug: "custom"}, "custom"},
		{"derived from title", Metadata{Title: "A First Post"}, "a-first-post"},
		{"mixed case with digits", Metadata{Title: "Shell Tricks Part 2"}, "shell-tricks-part-2"},
	}
	for _, c := range cases {
		got, err := c.meta.EffectiveSlug()
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %q, want %q", c.name, got, c.want)
		}
	}

	if _, err := (Metadata{}).EffectiveSlug(); err == nil {
		t.Error("expected error when neither slug nor title present")
	}
}

func TestIsDraft(t *testing.T) {
	cases := []struct {
		status string
		want   bool
	}{
		{"", true},
		{"draft", true},
		{"published", false},
		{"Published", false},
	}
	for _, c := range cases {
		if got := (Metadata{Status: c.status}).IsDraft(); got != c.want {
			t.Errorf("IsDraft(%q) = %v, want %v", c.status, got, c.want)
		}
	}
}

func TestParsedDate(t *testing.T) {
	m := Metadata{Date: "2014-03-07 16:30"}
	got, err := m.ParsedDate()
	require.NoError(t, err)
	require.Equal(t, time.Date(2014, 3, 7, 16, 30, 0, 0, time.UTC), got)

	m = Metadata{Date: "2014-03-07"}
	got, err = m.ParsedDate()
	require.NoError(t, err)
	require.Equal(t, 2014, got.Year())

	m = Metadata{}
	got, err = m.ParsedDate()
	require.NoError(t, err)
	require.True(t, got.IsZero())

	m = Metadata{Date: "March 7th"}
	_, err = m.ParsedDate()
	require.Error(t, err)
}

func TestURLItem(t *testing.T) {
	f, err := Parse("posts/first.md", []byte(sampleSource))
	require.NoError(t, err)

	item, err := f.Meta.URLItem()
	require.NoError(t, err)
	require.Equal(t, "first-post", item.Slug)
	require.Equal(t, "go", item.Category)
	require.Equal(t, 2014, item.Date.Year())
}
