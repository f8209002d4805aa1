package config

import (
	"path"
	"path/filepath"
	"strings"
)

// PluginsDir returns the resolved plugin directory. When plugins.repo is set,
// `develop` clones into this directory.
func (c *Config) PluginsDir() string {
	if c.Plugins.Path == "" {
		return ""
	}
	return c.AbsPath(c.Plugins.Path)
}

// ThemeCheckoutDir returns the directory `develop` clones theme.repo into:
// themes/<repo-basename> under the config directory. Empty when no repo is
// configured.
func (c *Config) ThemeCheckoutDir() string {
	if c.Theme.Repo == "" {
		return ""
	}
	return c.AbsPath(filepath.Join("themes", RepoBaseName(c.Theme.Repo)))
}

// ThemePath returns the theme value handed to the generator. Without a repo
// the configured name passes through verbatim (builtin theme or pre-existing
// path). With a repo, a checkout whose basename matches the theme name is the
// theme itself; anything else is treated as a theme collection containing the
// named theme as a subdirectory.
func (c *Config) ThemePath() string {
	if c.Theme.Repo == "" {
		return c.Theme.Name
	}
	dir := c.ThemeCheckoutDir()
	if RepoBaseName(c.Theme.Repo) == c.Theme.Name {
		return dir
	}
	return filepath.Join(dir, c.Theme.Name)
}

// RepoBaseName extracts the repository name from a clone URL, handling both
// URL and scp-like forms and trimming a trailing .git.
func RepoBaseName(repo string) string {
	s := strings.TrimSuffix(strings.TrimRight(repo, "/"), ".git")
	if i := strings.LastIndex(s, ":"); i >= 0 && !strings.Contains(s[i:], "/") {
		// scp-like form ending in host:name
		return s[i+1:]
	}
	return path.Base(strings.ReplaceAll(s, "\\", "/"))
}
