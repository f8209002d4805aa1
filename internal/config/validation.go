package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateConfig validates the complete configuration structure after
// defaults have been applied.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across all configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

// validate runs the domain validators in dependency order.
func (cv *configurationValidator) validate() error {
	if err := cv.validateSite(); err != nil {
		return err
	}
	if err := cv.validateURLs(); err != nil {
		return err
	}
	if err := cv.validateTheme(); err != nil {
		return err
	}
	if err := cv.validateOutput(); err != nil {
		return err
	}
	if err := cv.validateDeploy(); err != nil {
		return err
	}
	if err := cv.validateRuntime(); err != nil {
		return err
	}
	return nil
}

// absoluteHTTPURL accepts only absolute http(s) URLs. The empty string is
// left to validation.Required where presence matters.
func absoluteHTTPURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("URL must be absolute")
	}
	return nil
}

func (cv *configurationValidator) validateSite() error {
	site := &cv.config.Site
	err := validation.ValidateStruct(site,
		validation.Field(&site.Title, validation.Required),
		validation.Field(&site.Author, validation.Required),
		validation.Field(&site.URL, validation.Required, validation.By(absoluteHTTPURL)),
	)
	if err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if _, tzErr := time.LoadLocation(site.Timezone); tzErr != nil {
		return fmt.Errorf("site: invalid timezone %q: %w", site.Timezone, tzErr)
	}
	for i, link := range site.Links {
		if link.Name == "" || link.URL == "" {
			return fmt.Errorf("site: links[%d] must have both name and url", i)
		}
	}
	for i, social := range site.Social {
		if social.Name == "" || social.URL == "" {
			return fmt.Errorf("site: social[%d] must have both name and url", i)
		}
	}
	return nil
}

func (cv *configurationValidator) validateURLs() error {
	u := &cv.config.URLs
	pairs := map[string]TemplatePair{
		"article":  u.Article,
		"page":     u.Page,
		"tag":      u.Tag,
		"category": u.Category,
	}
	for name, pair := range pairs {
		// A URL without a save-as target would generate links to pages
		// that are never written.
		if pair.URL != "" && pair.SaveAs == "" {
			return fmt.Errorf("urls: %s has url but no save_as", name)
		}
	}
	err := validation.ValidateStruct(u,
		validation.Field(&u.Pagination, validation.Min(1)),
		validation.Field(&u.SummaryLength, validation.Min(1)),
	)
	if err != nil {
		return fmt.Errorf("urls: %w", err)
	}
	return nil
}

func (cv *configurationValidator) validateTheme() error {
	theme := &cv.config.Theme
	if theme.Repo != "" && !isGitURL(theme.Repo) {
		return fmt.Errorf("theme: repo %q is not a recognizable git URL", theme.Repo)
	}
	if cv.config.Plugins.Repo != "" && !isGitURL(cv.config.Plugins.Repo) {
		return fmt.Errorf("plugins: repo %q is not a recognizable git URL", cv.config.Plugins.Repo)
	}
	return nil
}

// isGitURL accepts https/http/ssh/git URLs and scp-like git@host:path forms.
func isGitURL(s string) bool {
	if strings.Contains(s, "@") && strings.Contains(s, ":") && !strings.Contains(s, "://") {
		return true
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "git", "ssh", "file":
		return u.Host != "" || u.Scheme == "file"
	}
	return false
}

func (cv *configurationValidator) validateOutput() error {
	out := filepath.Clean(cv.config.Output.Dir)
	pub := filepath.Clean(cv.config.Output.PublishDir)
	if out == pub {
		return fmt.Errorf("output: dir and publish_dir must differ (both %q); publish deletes its output directory", out)
	}
	return nil
}

func (cv *configurationValidator) validateDeploy() error {
	d := &cv.config.Deploy
	// Deploy is optional, but a host without a path (or vice versa) is a
	// misconfiguration that would only surface during publish.
	if d.Host == "" && d.Path == "" {
		return nil
	}
	err := validation.ValidateStruct(d,
		validation.Field(&d.Host, validation.Required),
		validation.Field(&d.Path, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("deploy: %w", err)
	}
	return nil
}

func (cv *configurationValidator) validateRuntime() error {
	if err := validatePort("preview.port", cv.config.Preview.Port); err != nil {
		return err
	}
	if err := validatePort("serve.port", cv.config.Serve.Port); err != nil {
		return err
	}
	if cv.config.Watch.RebuildInterval != "" {
		d, err := time.ParseDuration(cv.config.Watch.RebuildInterval)
		if err != nil {
			return fmt.Errorf("watch: invalid rebuild_interval %q: %w", cv.config.Watch.RebuildInterval, err)
		}
		if d < time.Second {
			return fmt.Errorf("watch: rebuild_interval %s is below 1s", d)
		}
	}
	if cv.config.Notify.Enabled {
		u, err := url.Parse(cv.config.Notify.URL)
		if err != nil || (u.Scheme != "nats" && u.Scheme != "tls" && u.Scheme != "ws" && u.Scheme != "wss") {
			return fmt.Errorf("notify: url %q is not a nats endpoint", cv.config.Notify.URL)
		}
		if cv.config.Notify.Subject == "" {
			return errors.New("notify: subject is required when notify is enabled")
		}
	}
	return nil
}

func validatePort(field string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s: port %d out of range 1-65535", field, port)
	}
	return nil
}
