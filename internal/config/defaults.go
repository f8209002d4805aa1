package config

import "fmt"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// ApplyDefaults runs every domain applier against cfg.
func ApplyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{
		&SiteDefaultApplier{},
		&ContentDefaultApplier{},
		&URLDefaultApplier{},
		&ThemeDefaultApplier{},
		&PluginDefaultApplier{},
		&OutputDefaultApplier{},
		&GeneratorDefaultApplier{},
		&DeployDefaultApplier{},
		&RuntimeDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return fmt.Errorf("%s defaults: %w", a.Domain(), err)
		}
	}
	return nil
}

// SiteDefaultApplier handles site identity defaults.
type SiteDefaultApplier struct{}

func (s *SiteDefaultApplier) Domain() string { return "site" }

func (s *SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Title == "" {
		cfg.Site.Title = "My Blog"
	}
	if cfg.Site.Timezone == "" {
		cfg.Site.Timezone = "UTC"
	}
	return nil
}

// ContentDefaultApplier handles content path defaults.
type ContentDefaultApplier struct{}

func (c *ContentDefaultApplier) Domain() string { return "content" }

func (c *ContentDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = "content"
	}
	if len(cfg.Content.StaticPaths) == 0 {
		cfg.Content.StaticPaths = []string{"images", "static"}
	}
	return nil
}

// URLDefaultApplier fills in per-content-type template pairs.
type URLDefaultApplier struct{}

func (u *URLDefaultApplier) Domain() string { return "urls" }

func (u *URLDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.URLs.Pagination <= 0 {
		cfg.URLs.Pagination = 4
	}
	if cfg.URLs.SummaryLength <= 0 {
		cfg.URLs.SummaryLength = 300
	}
	if cfg.URLs.Article.URL == "" && cfg.URLs.Article.SaveAs == "" {
		cfg.URLs.Article = TemplatePair{URL: "posts/{slug}", SaveAs: "posts/{slug}/index.html"}
	}
	if cfg.URLs.Page.URL == "" && cfg.URLs.Page.SaveAs == "" {
		cfg.URLs.Page = TemplatePair{URL: "pages/{slug}", SaveAs: "pages/{slug}/index.html"}
	}
	// Author pages stay disabled during development; the publish profile
	// re-enables them unless overridden.
	if cfg.URLs.Author.PublishSaveAs == "" {
		cfg.URLs.Author.PublishSaveAs = "author/{slug}"
	}
	if cfg.URLs.Tag.URL == "" && cfg.URLs.Tag.SaveAs == "" {
		cfg.URLs.Tag = TemplatePair{URL: "tag/{slug}.html", SaveAs: "tag/{slug}.html"}
	}
	if cfg.URLs.Category.URL == "" && cfg.URLs.Category.SaveAs == "" {
		cfg.URLs.Category = TemplatePair{URL: "category/{slug}.html", SaveAs: "category/{slug}.html"}
	}
	return nil
}

// ThemeDefaultApplier handles theme defaults.
type ThemeDefaultApplier struct{}

func (t *ThemeDefaultApplier) Domain() string { return "theme" }

func (t *ThemeDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Theme.Name == "" {
		cfg.Theme.Name = "pelican-bootstrap3"
	}
	if cfg.Theme.Pygments == "" {
		cfg.Theme.Pygments = "monokai"
	}
	if cfg.Theme.DisplayTagsOnSidebar == nil {
		v := true
		cfg.Theme.DisplayTagsOnSidebar = &v
	}
	if cfg.Theme.GithubSkipFork == nil {
		v := true
		cfg.Theme.GithubSkipFork = &v
	}
	return nil
}

// PluginDefaultApplier handles plugin defaults.
type PluginDefaultApplier struct{}

func (p *PluginDefaultApplier) Domain() string { return "plugins" }

func (p *PluginDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Plugins.Path == "" && (len(cfg.Plugins.Enabled) > 0 || cfg.Plugins.Repo != "") {
		cfg.Plugins.Path = "pelican-plugins"
	}
	if cfg.Plugins.RelatedPostsMax <= 0 {
		cfg.Plugins.RelatedPostsMax = 4
	}
	if cfg.Plugins.ResponsiveImages == nil {
		v := true
		cfg.Plugins.ResponsiveImages = &v
	}
	if cfg.Plugins.SitemapFormat == "" {
		cfg.Plugins.SitemapFormat = "xml"
	}
	return nil
}

// OutputDefaultApplier handles output directory defaults.
type OutputDefaultApplier struct{}

func (o *OutputDefaultApplier) Domain() string { return "output" }

func (o *OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "output"
	}
	if cfg.Output.PublishDir == "" {
		cfg.Output.PublishDir = "output-publish"
	}
	return nil
}

// GeneratorDefaultApplier handles generator invocation defaults.
type GeneratorDefaultApplier struct{}

func (g *GeneratorDefaultApplier) Domain() string { return "generator" }

func (g *GeneratorDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Generator.Binary == "" {
		cfg.Generator.Binary = "pelican"
	}
	if cfg.Generator.Pip == "" {
		cfg.Generator.Pip = "pip"
	}
	if cfg.Generator.Requirements == "" {
		cfg.Generator.Requirements = "requirements.txt"
	}
	if cfg.Generator.Typogrify == nil {
		v := true
		cfg.Generator.Typogrify = &v
	}
	return nil
}

// DeployDefaultApplier handles mirror-sync defaults.
type DeployDefaultApplier struct{}

func (d *DeployDefaultApplier) Domain() string { return "deploy" }

func (d *DeployDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Deploy.Rsync == "" {
		cfg.Deploy.Rsync = "rsync"
	}
	return nil
}

// RuntimeDefaultApplier handles preview/serve/watch/metrics/notify/history defaults.
type RuntimeDefaultApplier struct{}

func (r *RuntimeDefaultApplier) Domain() string { return "runtime" }

func (r *RuntimeDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Preview.Host == "" {
		cfg.Preview.Host = "0.0.0.0"
	}
	if cfg.Preview.Port == 0 {
		cfg.Preview.Port = 8000
	}
	if cfg.Serve.Port == 0 {
		cfg.Serve.Port = 8000
	}
	if cfg.Metrics.Listen == "" {
		cfg.Metrics.Listen = ":9090"
	}
	if cfg.Notify.URL == "" {
		cfg.Notify.URL = "nats://127.0.0.1:4222"
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = "blog.tasks"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = ".blogbuilder/history.db"
	}
	return nil
}
