// Package settings builds and renders generator settings profiles. Two
// profiles exist: the base (development) profile and the publish profile,
// which is the base plus a fixed set of named overrides. Profiles are plain
// values; merging never mutates its inputs.
package settings

import (
	"git.home.luguber.info/inful/blogbuilder/internal/config"
)

// Settings is a flat generator-setting-name → value mapping. Values are
// strings, ints, floats, bools, nil (rendered as None), []any (rendered as a
// tuple) or map[string]any (rendered as a dict).
type Settings map[string]any

// Base builds the development profile: relative URLs, feeds disabled, no
// forced output cleanup, draft statuses untouched.
func Base(cfg *config.Config) Settings {
	s := Settings{
		"AUTHOR":   cfg.Site.Author,
		"SITENAME": cfg.Site.Title,
		"TIMEZONE": cfg.Site.Timezone,

		"DISPLAY_CATEGORIES_ON_MENU": cfg.Theme.DisplayCategoriesOnMenu,
		"DEFAULT_PAGINATION":         cfg.URLs.Pagination,
		"SUMMARY_MAX_LENGTH":         cfg.URLs.SummaryLength,
		"USE_OPEN_GRAPH":             cfg.Theme.UseOpenGraph,

		"PATH":         cfg.ContentDir(),
		"STATIC_PATHS": tuple(cfg.Content.StaticPaths),
		"OUTPUT_PATH":  cfg.OutputDir(),

		// Local builds address everything relatively so the output works
		// from any directory or port.
		"RELATIVE_URLS": true,
		"SITEURL":       "",

		// Feeds are a publish-profile concern.
		"FEED_ALL_ATOM":         nil,
		"FEED_ALL_RSS":          nil,
		"CATEGORY_FEED_ATOM":    nil,
		"TRANSLATION_FEED_ATOM": nil,

		"LINKS":  linkTuple(cfg.Site.Links),
		"SOCIAL": linkTuple(cfg.Site.Social),
	}

	if cfg.Theme.DisplayTagsOnSidebar != nil {
		s["DISPLAY_TAGS_ON_SIDEBAR"] = *cfg.Theme.DisplayTagsOnSidebar
	}
	if cfg.Generator.Typogrify != nil {
		s["TYPOGRIFY"] = *cfg.Generator.Typogrify
	}
	if cfg.Site.License != "" {
		s["CC_LICENSE"] = cfg.Site.License
		s["CC_ATTR_MARKUP"] = false
	}
	if cfg.Site.GithubUser != "" {
		s["GITHUB_USER"] = cfg.Site.GithubUser
		if cfg.Theme.GithubSkipFork != nil {
			s["GITHUB_SKIP_FORK"] = *cfg.Theme.GithubSkipFork
		}
	}

	applyThemeSettings(s, cfg)
	applyPluginSettings(s, cfg)
	applyContentRouting(s, cfg)
	applyURLTemplates(s, cfg)

	// Free-form passthrough wins over everything derived above.
	for k, v := range cfg.Generator.Extra {
		s[k] = v
	}
	return s
}

func applyThemeSettings(s Settings, cfg *config.Config) {
	if theme := cfg.ThemePath(); theme != "" {
		s["THEME"] = theme
	}
	if cfg.Theme.Bootstrap != "" {
		s["BOOTSTRAP_THEME"] = cfg.Theme.Bootstrap
	}
	if cfg.Theme.Pygments != "" {
		s["PYGMENTS_STYLE"] = cfg.Theme.Pygments
	}
	if cfg.Theme.CustomCSS != "" {
		s["CUSTOM_CSS"] = cfg.Theme.CustomCSS
	}
}

func applyPluginSettings(s Settings, cfg *config.Config) {
	if len(cfg.Plugins.Enabled) == 0 {
		return
	}
	s["PLUGIN_PATH"] = cfg.PluginsDir()
	s["PLUGINS"] = tuple(cfg.Plugins.Enabled)
	s["RELATED_POSTS_MAX"] = cfg.Plugins.RelatedPostsMax
	if cfg.Plugins.ResponsiveImages != nil {
		s["RESPONSIVE_IMAGES"] = *cfg.Plugins.ResponsiveImages
	}
	if cfg.Plugins.SitemapFormat != "" {
		s["SITEMAP"] = map[string]any{"format": cfg.Plugins.SitemapFormat}
	}
}

func applyContentRouting(s Settings, cfg *config.Config) {
	if len(cfg.Content.ExtraPaths) > 0 {
		meta := make(map[string]any, len(cfg.Content.ExtraPaths))
		for src, dest := range cfg.Content.ExtraPaths {
			meta[src] = map[string]any{"path": dest}
		}
		s["EXTRA_PATH_METADATA"] = meta
	}
	if cfg.Content.Favicon != "" {
		s["FAVICON"] = cfg.Content.Favicon
	}
}

func applyURLTemplates(s Settings, cfg *config.Config) {
	pairs := []struct {
		prefix string
		pair   config.TemplatePair
	}{
		{"ARTICLE", cfg.URLs.Article},
		{"PAGE", cfg.URLs.Page},
		{"TAG", cfg.URLs.Tag},
		{"CATEGORY", cfg.URLs.Category},
	}
	for _, p := range pairs {
		if p.pair.URL != "" {
			s[p.prefix+"_URL"] = p.pair.URL
		}
		if p.pair.SaveAs != "" {
			s[p.prefix+"_SAVE_AS"] = p.pair.SaveAs
		}
	}
	// Author pages are disabled in the base profile unless configured
	// otherwise; the publish overrides re-enable them.
	s["AUTHOR_SAVE_AS"] = cfg.URLs.Author.SaveAs
}

// PublishOverrides returns the fixed override set applied on top of the base
// profile for publish builds. Every key here is named; nothing else changes
// between the profiles.
func PublishOverrides(cfg *config.Config) Settings {
	o := Settings{
		"SITEURL":       cfg.Site.URL,
		"RELATIVE_URLS": false,

		// Publish rebuilds from scratch into its own directory.
		"DELETE_OUTPUT_DIRECTORY": true,
		"OUTPUT_PATH":             cfg.PublishOutputDir(),

		// Content without an explicit status stays out of the published
		// site.
		"DEFAULT_METADATA": map[string]any{"status": "draft"},
	}
	if cfg.Feeds.AllAtom != "" {
		o["FEED_ALL_ATOM"] = cfg.Feeds.AllAtom
	}
	if cfg.Feeds.CategoryAtom != "" {
		o["CATEGORY_FEED_ATOM"] = cfg.Feeds.CategoryAtom
	}
	if cfg.URLs.Author.PublishSaveAs != "" {
		o["AUTHOR_SAVE_AS"] = cfg.URLs.Author.PublishSaveAs
	}
	if cfg.URLs.Article.PublishSaveAs != "" {
		o["ARTICLE_SAVE_AS"] = cfg.URLs.Article.PublishSaveAs
	}
	if cfg.URLs.Page.PublishSaveAs != "" {
		o["PAGE_SAVE_AS"] = cfg.URLs.Page.PublishSaveAs
	}
	if cfg.Site.Disqus != "" {
		o["DISQUS_SITENAME"] = cfg.Site.Disqus
	}
	return o
}

// Merge layers overrides on top of base and returns a new Settings value.
// Neither input is modified; nested values are copied so the result shares
// no mutable state with its inputs.
func Merge(base, overrides Settings) Settings {
	merged := make(Settings, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = cloneValue(v)
	}
	for k, v := range overrides {
		merged[k] = cloneValue(v)
	}
	return merged
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func tuple(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func linkTuple(links []config.SocialLink) []any {
	out := make([]any, len(links))
	for i, l := range links {
		out[i] = []any{l.Name, l.URL}
	}
	return out
}
