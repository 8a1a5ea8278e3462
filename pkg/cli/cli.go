package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/relpack/pkg/cli/config"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/errutil"
	"github.com/secmon-lab/relpack/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// ConfigureLogging is exported for testing purposes
var ConfigureLogging = logging.Configure

type CLI struct {
}

func New() *CLI {
	return &CLI{}
}

func (x *CLI) Run(argv []string) error {
	var (
		logLevel  string
		logFormat string
		logOutput string

		env    config.Env
		sentry config.Sentry
	)

	app := &cli.Command{
		Name:    "relpack",
		Usage:   "Clone, clean, archive and publish repository releases",
		Version: types.Version,
		Flags: slice.Flatten([]cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level [debug|info|warn|error]",
				Aliases:     []string{"l"},
				Sources:     cli.EnvVars("RELPACK_LOG_LEVEL"),
				Destination: &logLevel,
				Value:       "info",
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format [text|json]",
				Aliases:     []string{"f"},
				Sources:     cli.EnvVars("RELPACK_LOG_FORMAT"),
				Destination: &logFormat,
				Value:       "text",
			},
			&cli.StringFlag{
				Name:        "log-output",
				Usage:       "Log output [-|stderr|stdout|<file>], '-' is stderr",
				Aliases:     []string{"o"},
				Sources:     cli.EnvVars("RELPACK_LOG_OUTPUT"),
				Destination: &logOutput,
				Value:       logging.DefaultOutput,
			},
		}, env.Flags(), sentry.Flags()),
		Commands: []*cli.Command{
			buildCommand(),
			buildTargetCommand(config.TargetFrontend),
			buildTargetCommand(config.TargetBackend),
			buildAndReleaseCommand(),
			publishCommand(),
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if err := ConfigureLogging(logFormat, logLevel, logOutput); err != nil {
				return ctx, err
			}
			// Loaded before subcommand flags are resolved so that their env sources see it
			if err := env.Load(ctx); err != nil {
				return ctx, err
			}
			if err := sentry.Configure(ctx); err != nil {
				return ctx, err
			}
			logging.Default().Debug("relpack started",
				slog.String("version", types.Version),
				slog.Any("sentry", &sentry),
			)
			return ctx, nil
		},
	}

	// One run ID per invocation, shared by the use case records and the final error report
	_, ctx := logging.CtxRunID(context.Background())
	if err := app.Run(ctx, argv); err != nil {
		errutil.HandleError(ctx, "fatal error", err)
		sentry.Flush()
		return err
	}

	return nil
}
