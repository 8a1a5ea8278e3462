package config

import (
	"context"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/infra/fsutil"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const DefaultEnvFile = ".env"

// Env loads a dotenv file into the process environment. Variables that are already set win.
type Env struct {
	file string
}

func (x *Env) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "env-file",
			Usage:       "Path to a dotenv file. A missing default file is ignored",
			Destination: &x.file,
			Sources:     cli.EnvVars("RELPACK_ENV_FILE"),
			Value:       DefaultEnvFile,
		},
	}
}

func (x *Env) Load(ctx context.Context) error {
	if x.file == "" {
		return nil
	}

	if !fsutil.IsFile(x.file) {
		if x.file == DefaultEnvFile && !fsutil.Exists(x.file) {
			logging.From(ctx).Debug("no env file", slog.String("path", x.file))
			return nil
		}
		return goerr.New("env file not found",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("path", x.file),
		)
	}

	if err := godotenv.Load(x.file); err != nil {
		return goerr.Wrap(err, "failed to load env file",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("path", x.file),
		)
	}

	logging.From(ctx).Debug("env file loaded", slog.String("path", x.file))
	return nil
}
