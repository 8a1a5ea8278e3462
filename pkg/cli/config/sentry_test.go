package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/relpack/pkg/cli/config"
)

func TestSentryFlags(t *testing.T) {
	sentryConfig := &config.Sentry{}
	flags := sentryConfig.Flags()

	gt.V(t, len(flags)).Equal(2)

	// Verify flag names
	flagNames := make(map[string]bool)
	for _, flag := range flags {
		flagNames[flag.Names()[0]] = true
	}

	gt.True(t, flagNames["sentry-dsn"])
	gt.True(t, flagNames["sentry-env"])
}

func TestSentryConfigureWithoutDSN(t *testing.T) {
	t.Setenv("RELPACK_SENTRY_DSN", "")
	gt.NoError(t, os.Unsetenv("RELPACK_SENTRY_DSN"))
	var sentryConfig config.Sentry
	parseFlags(t, sentryConfig.Flags())

	gt.NoError(t, sentryConfig.Configure(context.Background()))
	sentryConfig.Flush()
}
