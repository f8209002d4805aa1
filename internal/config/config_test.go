package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

const minimalConfig = `site:
  title: Test Blog
  author: Tester
  url: https://blog.test.example
output:
  dir: output
  publish_dir: output-publish
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "blog.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMinimalConfig(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Site.Title != "Test Blog" {
		t.Errorf("title = %q, want %q", cfg.Site.Title, "Test Blog")
	}
	if cfg.BaseDir != filepath.Dir(path) {
		t.Errorf("base dir = %q, want %q", cfg.BaseDir, filepath.Dir(path))
	}

	// Defaults fill in everything the file omitted.
	if cfg.Content.Dir != "content" {
		t.Errorf("content dir default = %q, want content", cfg.Content.Dir)
	}
	if cfg.URLs.Pagination != 4 {
		t.Errorf("pagination default = %d, want 4", cfg.URLs.Pagination)
	}
	if cfg.URLs.Article.URL != "posts/{slug}" {
		t.Errorf("article url default = %q", cfg.URLs.Article.URL)
	}
	if cfg.Generator.Binary != "pelican" {
		t.Errorf("generator binary default = %q, want pelican", cfg.Generator.Binary)
	}
	if cfg.Preview.Port != 8000 {
		t.Errorf("preview port default = %d, want 8000", cfg.Preview.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("BLOG_TEST_AUTHOR", "Env Author")
	path := writeConfig(t, `site:
  title: Test Blog
  author: ${BLOG_TEST_AUTHOR}
  url: https://blog.test.example
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Site.Author != "Env Author" {
		t.Errorf("author = %q, want expansion from environment", cfg.Site.Author)
	}
}

func TestLoadEnvFileDoesNotOverrideProcessEnv(t *testing.T) {
	t.Setenv("BLOG_TEST_TITLE", "From Process")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BLOG_TEST_TITLE=From File\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	path := filepath.Join(dir, "blog.yaml")
	body := `site:
  title: ${BLOG_TEST_TITLE}
  author: Tester
  url: https://blog.test.example
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Site.Title != "From Process" {
		t.Errorf("title = %q, process environment must win over .env", cfg.Site.Title)
	}
}

func TestLoadEnvFileFillsMissingVariables(t *testing.T) {
	os.Unsetenv("BLOG_TEST_DISQUS")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BLOG_TEST_DISQUS=envblog\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	path := filepath.Join(dir, "blog.yaml")
	body := `site:
  title: Test Blog
  author: Tester
  url: https://blog.test.example
  disqus: ${BLOG_TEST_DISQUS}
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("BLOG_TEST_DISQUS") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Site.Disqus != "envblog" {
		t.Errorf("disqus = %q, want value from .env", cfg.Site.Disqus)
	}
}

func TestTrueDefaultBooleansPreserveExplicitFalse(t *testing.T) {
	raw := `site:
  title: t
  author: a
  url: https://b.example
theme:
  display_tags_on_sidebar: false
  github_skip_fork: false
plugins:
  enabled: [sitemap]
  responsive_images: false
generator:
  typogrify: false
`
	var cfg Config
	if err := yaml.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := ApplyDefaults(&cfg); err != nil {
		t.Fatalf("defaults: %v", err)
	}

	if cfg.Theme.DisplayTagsOnSidebar == nil || *cfg.Theme.DisplayTagsOnSidebar {
		t.Error("display_tags_on_sidebar: explicit false must be preserved")
	}
	if cfg.Theme.GithubSkipFork == nil || *cfg.Theme.GithubSkipFork {
		t.Error("github_skip_fork: explicit false must be preserved")
	}
	if cfg.Plugins.ResponsiveImages == nil || *cfg.Plugins.ResponsiveImages {
		t.Error("responsive_images: explicit false must be preserved")
	}
	if cfg.Generator.Typogrify == nil || *cfg.Generator.Typogrify {
		t.Error("typogrify: explicit false must be preserved")
	}
}

func TestTrueDefaultBooleansDefaultTrueWhenOmitted(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(minimalConfig), &cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := ApplyDefaults(&cfg); err != nil {
		t.Fatalf("defaults: %v", err)
	}

	if cfg.Theme.DisplayTagsOnSidebar == nil || !*cfg.Theme.DisplayTagsOnSidebar {
		t.Error("display_tags_on_sidebar should default to true")
	}
	if cfg.Generator.Typogrify == nil || !*cfg.Generator.Typogrify {
		t.Error("typogrify should default to true")
	}
}

func TestInitCreatesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blog.yaml")

	if err := Init(path, false); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := Init(path, false); err == nil {
		t.Fatal("expected error when config already exists without --force")
	}
	if err := Init(path, true); err != nil {
		t.Fatalf("init with force: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("generated config must load cleanly: %v", err)
	}
	if cfg.Site.Title == "" || cfg.Site.URL == "" {
		t.Error("generated config missing site identity")
	}
	if cfg.Output.Dir == cfg.Output.PublishDir {
		t.Error("generated config must keep build and publish outputs apart")
	}
}

func TestAbsPathResolution(t *testing.T) {
	cfg := Config{BaseDir: "/srv/blog"}

	cases := []struct {
		in   string
		want string
	}{
		{"content", "/srv/blog/content"},
		{"/abs/path", "/abs/path"},
		{"", ""},
	}
	for _, c := range cases {
		if got := cfg.AbsPath(c.in); got != c.want {
			t.Errorf("AbsPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}

	cfg.Output = OutputConfig{Dir: "output", PublishDir: "output-publish"}
	if got := cfg.OutputDir(); got != "/srv/blog/output" {
		t.Errorf("OutputDir() = %q", got)
	}
	if got := cfg.PublishOutputDir(); got != "/srv/blog/output-publish" {
		t.Errorf("PublishOutputDir() = %q", got)
	}
}
