package config

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/relpack/pkg/domain/types"
	"github.com/secmon-lab/relpack/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// TargetDefaults are the values a build command falls back to when a flag is not given
type TargetDefaults struct {
	URL         string `toml:"url"`
	Branch      string `toml:"branch"`
	CloneDir    string `toml:"clone_dir"`
	ReleaseDir  string `toml:"release_dir"`
	ReleaseName string `toml:"release_name"`
	CleanFile   string `toml:"clean_file"`
}

type TargetName string

const (
	TargetFrontend TargetName = "frontend"
	TargetBackend  TargetName = "backend"
)

const (
	DefaultReleaseDir = "release"
	DefaultCleanFile  = "clean_patterns.txt"
)

var builtinTargets = map[TargetName]TargetDefaults{
	TargetFrontend: {
		Branch:      string(types.DefaultBranch),
		CloneDir:    filepath.Join("build", "frontend"),
		ReleaseDir:  DefaultReleaseDir,
		ReleaseName: "frontend.zip",
		CleanFile:   DefaultCleanFile,
	},
	TargetBackend: {
		Branch:      string(types.DefaultBranch),
		CloneDir:    filepath.Join("build", "backend"),
		ReleaseDir:  DefaultReleaseDir,
		ReleaseName: "backend.zip",
		CleanFile:   DefaultCleanFile,
	},
}

type targetFile struct {
	Frontend TargetDefaults `toml:"frontend"`
	Backend  TargetDefaults `toml:"backend"`
}

// Target resolves the fixed frontend/backend defaults, optionally overridden by a TOML file:
//
//	[frontend]
//	url = "https://github.com/example/web.git"
//	release_name = "web.zip"
type Target struct {
	path string
}

func (x *Target) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to a TOML file overriding the frontend/backend defaults",
			Destination: &x.path,
			Sources:     cli.EnvVars("RELPACK_CONFIG"),
		},
	}
}

// Load returns the defaults of target. Built-in values are kept for keys the file omits.
func (x *Target) Load(target TargetName) (*TargetDefaults, error) {
	base, ok := builtinTargets[target]
	if !ok {
		return nil, goerr.New("unknown target",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("target", target),
		)
	}
	if x.path == "" {
		return &base, nil
	}

	fd, err := os.Open(filepath.Clean(x.path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open config file",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("path", x.path),
		)
	}
	defer safe.Close(fd)

	var file targetFile
	if err := toml.NewDecoder(fd).DisallowUnknownFields().Decode(&file); err != nil {
		return nil, goerr.Wrap(err, "failed to parse config file",
			goerr.T(types.ErrTagConfiguration),
			goerr.V("path", x.path),
		)
	}

	override := file.Frontend
	if target == TargetBackend {
		override = file.Backend
	}
	base.merge(override)
	return &base, nil
}

func (x *TargetDefaults) merge(o TargetDefaults) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&x.URL, o.URL},
		{&x.Branch, o.Branch},
		{&x.CloneDir, o.CloneDir},
		{&x.ReleaseDir, o.ReleaseDir},
		{&x.ReleaseName, o.ReleaseName},
		{&x.CleanFile, o.CleanFile},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}
}

func (x TargetDefaults) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("url", x.URL),
		slog.String("branch", x.Branch),
		slog.String("clone_dir", x.CloneDir),
		slog.String("release_dir", x.ReleaseDir),
		slog.String("release_name", x.ReleaseName),
		slog.String("clean_file", x.CleanFile),
	)
}
