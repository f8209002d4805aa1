package tasks

import (
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/settings"
	"git.home.luguber.info/inful/blogbuilder/internal/workspace"
)

// Settings profile names recorded with each run.
const (
	ProfileBase    = "base"
	ProfilePublish = "publish"
)

const (
	baseSettingsFile    = "pelicanconf.py"
	publishSettingsFile = "publishconf.py"
)

// writeBaseProfile renders the base profile into a fresh scratch directory
// and returns the settings path plus a cleanup that removes the directory.
// Callers defer the cleanup for the lifetime of the generator invocation.
func writeBaseProfile(cfg *config.Config) (string, func(), error) {
	return writeProfile(baseSettingsFile, settings.Base(cfg))
}

// writePublishProfile renders base plus the publish overrides. includeDrafts
// drops the DEFAULT_METADATA override so content without an explicit status
// is published too.
func writePublishProfile(cfg *config.Config, includeDrafts bool) (string, func(), error) {
	overrides := settings.PublishOverrides(cfg)
	if includeDrafts {
		delete(overrides, "DEFAULT_METADATA")
	}
	return writeProfile(publishSettingsFile, settings.Merge(settings.Base(cfg), overrides))
}

func writeProfile(name string, s settings.Settings) (string, func(), error) {
	scratch, err := workspace.Create("")
	if err != nil {
		return "", nil, err
	}
	path, err := settings.Write(scratch.Dir(), name, s)
	if err != nil {
		_ = scratch.Remove()
		return "", nil, err
	}
	cleanup := func() {
		if err := scratch.Remove(); err != nil {
			slog.Warn("Failed to remove scratch directory", logfields.Error(err))
		}
	}
	return path, cleanup, nil
}
