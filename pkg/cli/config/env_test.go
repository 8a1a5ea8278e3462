package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/relpack/pkg/cli/config"
	"github.com/secmon-lab/relpack/pkg/domain/types"
)

func TestEnvLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("load variables without overriding existing ones", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "test.env")
		gt.NoError(t, os.WriteFile(path, []byte("RELPACK_TEST_NEW=from_file\nRELPACK_TEST_SET=from_file\n"), 0600))
		t.Setenv("RELPACK_TEST_NEW", "")
		gt.NoError(t, os.Unsetenv("RELPACK_TEST_NEW"))
		t.Setenv("RELPACK_TEST_SET", "from_env")

		var env config.Env
		parseFlags(t, env.Flags(), "--env-file", path)
		gt.NoError(t, env.Load(ctx))

		gt.V(t, os.Getenv("RELPACK_TEST_NEW")).Equal("from_file")
		gt.V(t, os.Getenv("RELPACK_TEST_SET")).Equal("from_env")
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		var env config.Env
		parseFlags(t, env.Flags(), "--env-file", filepath.Join(t.TempDir(), "missing.env"))
		err := env.Load(ctx)
		gt.True(t, goerr.HasTag(err, types.ErrTagConfiguration))
	})

	t.Run("missing default file is ignored", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("RELPACK_ENV_FILE", "")
		gt.NoError(t, os.Unsetenv("RELPACK_ENV_FILE"))
		var env config.Env
		parseFlags(t, env.Flags(), "--env-file", config.DefaultEnvFile)
		gt.NoError(t, env.Load(ctx))
	})
}
