package integration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/blogbuilder/internal/config"
	"git.home.luguber.info/inful/blogbuilder/internal/settings"
)

// loadFixtureConfig loads a test configuration and returns it.
func loadFixtureConfig(t *testing.T, configPath string) *config.Config {
	t.Helper()

	cfg, err := config.Load(configPath)
	require.NoError(t, err, "failed to load test config")

	return cfg
}

// normalizeBaseDir replaces the config directory in rendered settings with a
// fixed placeholder so golden files do not depend on where the tests run.
func normalizeBaseDir(data []byte, baseDir string) []byte {
	return []byte(strings.ReplaceAll(string(data), baseDir, "/blog"))
}

// verifySettingsProfile renders a settings profile and compares it against a
// golden file. With -update-golden the golden file is rewritten instead.
func verifySettingsProfile(t *testing.T, cfg *config.Config, profile settings.Settings, goldenPath string, updateGolden bool) {
	t.Helper()

	rendered, err := settings.Render(profile)
	require.NoError(t, err, "failed to render settings profile")

	actual := normalizeBaseDir(rendered, cfg.BaseDir)

	if updateGolden {
		err = os.MkdirAll(filepath.Dir(goldenPath), 0o750)
		require.NoError(t, err, "failed to create golden directory")

		err = os.WriteFile(goldenPath, actual, 0o600)
		require.NoError(t, err, "failed to write golden file")

		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	// #nosec G304 -- test utility reading golden file from testdata
	goldenData, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "failed to read golden file: %s", goldenPath)

	require.Equal(t, string(goldenData), string(actual), "settings profile mismatch: %s", goldenPath)
}

// runProfileGoldenTest loads a configuration, builds both settings profiles
// the way the task runner does, and verifies each against its golden file.
// The base profile is verified as pelicanconf.golden.py and the publish
// profile as publishconf.golden.py, mirroring the file names handed to the
// generator.
func runProfileGoldenTest(t *testing.T, configPath, goldenDirPath string, updateGolden bool) {
	t.Helper()

	cfg := loadFixtureConfig(t, configPath)

	base := settings.Base(cfg)
	publish := settings.Merge(base, settings.PublishOverrides(cfg))

	verifySettingsProfile(t, cfg, base, filepath.Join(goldenDirPath, "pelicanconf.golden.py"), updateGolden)
	verifySettingsProfile(t, cfg, publish, filepath.Join(goldenDirPath, "publishconf.golden.py"), updateGolden)
}
