package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the blog tool configuration (blog.yaml). It is constructed
// once per invocation by Load and treated as immutable afterwards.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	URLs      URLConfig       `yaml:"urls"`
	Theme     ThemeConfig     `yaml:"theme"`
	Plugins   PluginConfig    `yaml:"plugins"`
	Feeds     FeedConfig      `yaml:"feeds"`
	Output    OutputConfig    `yaml:"output"`
	Generator GeneratorConfig `yaml:"generator"`
	Deploy    DeployConfig    `yaml:"deploy"`
	Preview   PreviewConfig   `yaml:"preview"`
	Serve     ServeConfig     `yaml:"serve"`
	Watch     WatchConfig     `yaml:"watch"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Notify    NotifyConfig    `yaml:"notify"`
	History   HistoryConfig   `yaml:"history"`

	// BaseDir is the directory containing the loaded configuration file.
	// Relative content/output/theme paths resolve against it.
	BaseDir string `yaml:"-"`
}

// SiteConfig describes site identity as consumed by the generator.
type SiteConfig struct {
	Title       string       `yaml:"title"`
	Author      string       `yaml:"author"`
	URL         string       `yaml:"url,omitempty"` // absolute; only emitted in the publish profile
	Timezone    string       `yaml:"timezone,omitempty"`
	Description string       `yaml:"description,omitempty"`
	License     string       `yaml:"license,omitempty"`
	GithubUser  string       `yaml:"github_user,omitempty"`
	Disqus      string       `yaml:"disqus,omitempty"`
	Links       []SocialLink `yaml:"links,omitempty"`
	Social      []SocialLink `yaml:"social,omitempty"`
}

// SocialLink is a single named link rendered in the theme sidebar.
type SocialLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// ContentConfig selects the content tree and non-article files to carry over.
type ContentConfig struct {
	Dir         string            `yaml:"dir"`
	StaticPaths []string          `yaml:"static_paths,omitempty"`
	ExtraPaths  map[string]string `yaml:"extra_paths,omitempty"` // source file -> routed output path
	Favicon     string            `yaml:"favicon,omitempty"`
}

// TemplatePair holds the URL template and the save-as (output path) template
// for one content type. PublishSaveAs, when set, replaces SaveAs in the
// publish profile only.
type TemplatePair struct {
	URL           string `yaml:"url,omitempty"`
	SaveAs        string `yaml:"save_as,omitempty"`
	PublishSaveAs string `yaml:"publish_save_as,omitempty"`
}

// URLConfig groups per-content-type URL/save-as template pairs and listing
// parameters. No cross-consistency validation of template placeholders happens
// here; `blogbuilder lint` reports inconsistent pairs as advisory findings.
type URLConfig struct {
	Pagination    int          `yaml:"pagination,omitempty"`
	SummaryLength int          `yaml:"summary_length,omitempty"`
	Article       TemplatePair `yaml:"article,omitempty"`
	Page          TemplatePair `yaml:"page,omitempty"`
	Author        TemplatePair `yaml:"author,omitempty"`
	Tag           TemplatePair `yaml:"tag,omitempty"`
	Category      TemplatePair `yaml:"category,omitempty"`
}

// ThemeConfig names the generator theme and its presentation knobs.
type ThemeConfig struct {
	Name                    string `yaml:"name,omitempty"`
	Repo                    string `yaml:"repo,omitempty"` // cloned by `develop` when set
	Branch                  string `yaml:"branch,omitempty"`
	Bootstrap               string `yaml:"bootstrap,omitempty"`
	Pygments                string `yaml:"pygments,omitempty"`
	CustomCSS               string `yaml:"custom_css,omitempty"`
	DisplayCategoriesOnMenu bool   `yaml:"display_categories_on_menu,omitempty"`
	DisplayTagsOnSidebar    *bool  `yaml:"display_tags_on_sidebar,omitempty"`
	UseOpenGraph            bool   `yaml:"use_open_graph,omitempty"`
	GithubSkipFork          *bool  `yaml:"github_skip_fork,omitempty"`
}

// PluginConfig names enabled generator plugins and their shared settings.
type PluginConfig struct {
	Path             string   `yaml:"path,omitempty"`
	Repo             string   `yaml:"repo,omitempty"` // cloned by `develop` when set
	Branch           string   `yaml:"branch,omitempty"`
	Enabled          []string `yaml:"enabled,omitempty"`
	RelatedPostsMax  int      `yaml:"related_posts_max,omitempty"`
	ResponsiveImages *bool    `yaml:"responsive_images,omitempty"`
	SitemapFormat    string   `yaml:"sitemap_format,omitempty"`
}

// FeedConfig holds feed output paths. Feeds are disabled entirely in the base
// profile; these values are emitted only by the publish profile.
type FeedConfig struct {
	AllAtom      string `yaml:"all_atom,omitempty"`
	CategoryAtom string `yaml:"category_atom,omitempty"`
}

// OutputConfig selects the generated-site directories for the two profiles.
type OutputConfig struct {
	Dir        string `yaml:"dir"`
	PublishDir string `yaml:"publish_dir"`
}

// GeneratorConfig describes how the external site generator is invoked.
type GeneratorConfig struct {
	Binary       string `yaml:"binary,omitempty"`
	Pip          string `yaml:"pip,omitempty"`
	Requirements string `yaml:"requirements,omitempty"`
	Typogrify    *bool  `yaml:"typogrify,omitempty"`
	// Extra settings are emitted verbatim into both generator profiles.
	Extra map[string]any `yaml:"extra,omitempty"`
}

// DeployConfig names the mirror-sync target for `publish`.
type DeployConfig struct {
	Host      string   `yaml:"host,omitempty"`
	Path      string   `yaml:"path,omitempty"`
	Rsync     string   `yaml:"rsync,omitempty"`
	ExtraArgs []string `yaml:"extra_args,omitempty"`
}

// PreviewConfig configures the local static file server.
type PreviewConfig struct {
	Host       string `yaml:"host,omitempty"`
	Port       int    `yaml:"port,omitempty"`
	LiveReload bool   `yaml:"live_reload,omitempty"`
}

// ServeConfig configures the generator's own watch-and-serve mode.
type ServeConfig struct {
	Bind string `yaml:"bind,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// WatchConfig configures the combined regenerate+preview supervisor.
type WatchConfig struct {
	// RebuildInterval, when set (e.g. "30m"), schedules periodic full rebuilds
	// in addition to the generator's own change-driven regeneration.
	RebuildInterval string `yaml:"rebuild_interval,omitempty"`
}

// MetricsConfig enables the Prometheus endpoint under `watch`.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Listen  string `yaml:"listen,omitempty"`
}

// NotifyConfig enables task outcome events over NATS.
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// HistoryConfig locates the local run log.
type HistoryConfig struct {
	Path     string `yaml:"path,omitempty"`
	Disabled bool   `yaml:"disabled,omitempty"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	cfg.BaseDir = filepath.Dir(abs)

	if err := ApplyDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	tagsOnSidebar := true
	exampleConfig := Config{
		Site: SiteConfig{
			Title:      "My Blog",
			Author:     "Example Author",
			URL:        "https://blog.example.com",
			Timezone:   "Europe/Amsterdam",
			License:    "CC-BY-SA",
			GithubUser: "example",
			Social: []SocialLink{
				{Name: "GitHub", URL: "https://github.com/example"},
			},
		},
		Content: ContentConfig{
			Dir:         "content",
			StaticPaths: []string{"images", "static"},
			ExtraPaths: map[string]string{
				"static/robots.txt":  "robots.txt",
				"static/favicon.ico": "favicon.ico",
			},
			Favicon: "favicon.ico",
		},
		URLs: URLConfig{
			Pagination:    4,
			SummaryLength: 300,
			Article:       TemplatePair{URL: "posts/{slug}", SaveAs: "posts/{slug}/index.html"},
			Page:          TemplatePair{URL: "pages/{slug}", SaveAs: "pages/{slug}/index.html"},
			Author:        TemplatePair{SaveAs: "", PublishSaveAs: "author/{slug}"},
		},
		Theme: ThemeConfig{
			Name:                 "pelican-bootstrap3",
			Repo:                 "https://github.com/getpelican/pelican-themes.git",
			Bootstrap:            "cosmo",
			Pygments:             "monokai",
			CustomCSS:            "static/overrides.css",
			DisplayTagsOnSidebar: &tagsOnSidebar,
		},
		Plugins: PluginConfig{
			Path:            "pelican-plugins",
			Repo:            "https://github.com/getpelican/pelican-plugins.git",
			Enabled:         []string{"better_figures_and_images", "related_posts", "sitemap"},
			RelatedPostsMax: 4,
			SitemapFormat:   "xml",
		},
		Feeds: FeedConfig{
			AllAtom:      "feeds/all.atom.xml",
			CategoryAtom: "feeds/{slug}.atom.xml",
		},
		Output: OutputConfig{
			Dir:        "output",
			PublishDir: "output-publish",
		},
		Deploy: DeployConfig{
			Host: "deploy.example.com",
			Path: "/var/www/blog/",
		},
	}

	data, err := yaml.Marshal(&exampleConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// AbsPath resolves p against the configuration file's directory. Absolute
// paths and empty strings pass through unchanged.
func (c *Config) AbsPath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.BaseDir == "" {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// OutputDir returns the resolved build-profile output directory.
func (c *Config) OutputDir() string { return c.AbsPath(c.Output.Dir) }

// PublishOutputDir returns the resolved publish-profile output directory.
func (c *Config) PublishOutputDir() string { return c.AbsPath(c.Output.PublishDir) }

// ContentDir returns the resolved content directory.
func (c *Config) ContentDir() string { return c.AbsPath(c.Content.Dir) }
