package tasks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		BaseDir: t.TempDir(),
		Site: config.SiteConfig{
			Title:  "Test Blog",
			Author: "Tester",
			URL:    "https://blog.example.com",
		},
		Content: config.ContentConfig{Dir: "content"},
		Output:  config.OutputConfig{Dir: "output", PublishDir: "output-publish"},
		Deploy:  config.DeployConfig{Host: "web.example.com", Path: "/var/www/blog/", Rsync: "rsync"},
		Generator: config.GeneratorConfig{
			Binary: "pelican", Pip: "pip", Requirements: "requirements.txt",
		},
	}
}

func TestWriteBaseProfile(t *testing.T) {
	cfg := testConfig(t)

	path, cleanup, err := writeBaseProfile(cfg)
	if err != nil {
		t.Fatalf("writeBaseProfile: %v", err)
	}

	if filepath.Base(path) != "pelicanconf.py" {
		t.Errorf("unexpected settings file name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "SITENAME = 'Test Blog'") {
		t.Errorf("base profile missing site name:\n%s", out)
	}
	if !strings.Contains(out, "OUTPUT_PATH = '"+cfg.OutputDir()+"'") {
		t.Errorf("base profile missing output path:\n%s", out)
	}
	if !strings.Contains(out, "RELATIVE_URLS = True") {
		t.Errorf("base profile must use relative URLs:\n%s", out)
	}

	cleanup()
	if _, err := os.Stat(filepath.Dir(path)); !os.IsNotExist(err) {
		t.Errorf("scratch directory survived cleanup: %s", filepath.Dir(path))
	}
}

func TestWritePublishProfileMergesOverrides(t *testing.T) {
	cfg := testConfig(t)

	path, cleanup, err := writePublishProfile(cfg, false)
	if err != nil {
		t.Fatalf("writePublishProfile: %v", err)
	}
	defer cleanup()

	if filepath.Base(path) != "publishconf.py" {
		t.Errorf("unexpected settings file name: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	out := string(data)

	// Base values survive the merge.
	if !strings.Contains(out, "SITENAME = 'Test Blog'") {
		t.Errorf("publish profile lost base site name:\n%s", out)
	}
	// Overrides replace base values.
	for _, want := range []string{
		"SITEURL = 'https://blog.example.com'",
		"RELATIVE_URLS = False",
		"DELETE_OUTPUT_DIRECTORY = True",
		"OUTPUT_PATH = '" + cfg.PublishOutputDir() + "'",
		"DEFAULT_METADATA = {'status': 'draft'}",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("publish profile missing %q:\n%s", want, out)
		}
	}
}

func TestWritePublishProfileIncludeDrafts(t *testing.T) {
	cfg := testConfig(t)

	path, cleanup, err := writePublishProfile(cfg, true)
	if err != nil {
		t.Fatalf("writePublishProfile: %v", err)
	}
	defer cleanup()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if strings.Contains(string(data), "DEFAULT_METADATA") {
		t.Errorf("include-drafts must drop the draft default:\n%s", data)
	}
}
