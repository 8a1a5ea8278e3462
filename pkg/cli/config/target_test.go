package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/relpack/pkg/cli/config"
	"github.com/secmon-lab/relpack/pkg/domain/types"
)

func TestTargetLoad(t *testing.T) {
	t.Run("built-in defaults", func(t *testing.T) {
		t.Setenv("RELPACK_CONFIG", "")
		gt.NoError(t, os.Unsetenv("RELPACK_CONFIG"))
		var target config.Target
		parseFlags(t, target.Flags())

		frontend := gt.R1(target.Load(config.TargetFrontend)).NoError(t)
		gt.V(t, frontend.Branch).Equal("main")
		gt.V(t, frontend.CloneDir).Equal(filepath.Join("build", "frontend"))
		gt.V(t, frontend.ReleaseName).Equal("frontend.zip")
		gt.V(t, frontend.CleanFile).Equal(config.DefaultCleanFile)

		backend := gt.R1(target.Load(config.TargetBackend)).NoError(t)
		gt.V(t, backend.CloneDir).Equal(filepath.Join("build", "backend"))
		gt.V(t, backend.ReleaseName).Equal("backend.zip")
	})

	t.Run("file overrides only given keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "relpack.toml")
		gt.NoError(t, os.WriteFile(path, []byte(`
[frontend]
url = "https://github.com/example/web.git"
branch = "release"

[backend]
url = "git@github.com:example/api.git"
release_name = "api.zip"
`), 0644))

		var target config.Target
		parseFlags(t, target.Flags(), "--config", path)

		frontend := gt.R1(target.Load(config.TargetFrontend)).NoError(t)
		gt.V(t, frontend.URL).Equal("https://github.com/example/web.git")
		gt.V(t, frontend.Branch).Equal("release")
		gt.V(t, frontend.ReleaseName).Equal("frontend.zip")

		backend := gt.R1(target.Load(config.TargetBackend)).NoError(t)
		gt.V(t, backend.URL).Equal("git@github.com:example/api.git")
		gt.V(t, backend.Branch).Equal("main")
		gt.V(t, backend.ReleaseName).Equal("api.zip")
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "relpack.toml")
		gt.NoError(t, os.WriteFile(path, []byte("[frontend]\nrepo = \"x\"\n"), 0644))

		var target config.Target
		parseFlags(t, target.Flags(), "--config", path)
		_, err := target.Load(config.TargetFrontend)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
	})

	t.Run("missing file", func(t *testing.T) {
		var target config.Target
		parseFlags(t, target.Flags(), "--config", filepath.Join(t.TempDir(), "missing.toml"))
		_, err := target.Load(config.TargetFrontend)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
	})

	t.Run("unknown target", func(t *testing.T) {
		var target config.Target
		_, err := target.Load("mobile")
		gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
	})
}
