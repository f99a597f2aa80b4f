package commands

import (
	"io"
	"log/slog"

	"github.com/bartekus/vibe/cmd/vibe/internal/clierr"
	"github.com/bartekus/vibe/internal/config"
	"github.com/bartekus/vibe/internal/procexec"
	"github.com/bartekus/vibe/internal/runner"
	"github.com/bartekus/vibe/internal/workspace"
)

type globalOptions struct {
	workspace  string
	configPath string
	verbose    bool
	json       bool

	exec procexec.Executor
}

// session is what a command needs once flags and config are resolved.
type session struct {
	dir    string
	cfg    *config.Config
	logger *slog.Logger
}

func (o *globalOptions) setup(stderr io.Writer) (*session, error) {
	dir, err := workspace.Resolve(o.workspace)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitGeneric, "", err)
	}

	cfg, err := config.Load(dir, o.configPath)
	if err != nil {
		return nil, clierr.Wrap(clierr.ExitGeneric, "", err)
	}

	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	if cfg.Source != "" {
		logger.Debug("loaded config", "path", cfg.Source)
	}

	return &session{dir: dir, cfg: cfg, logger: logger}, nil
}

func (s *session) inspector(exec procexec.Executor) *workspace.Inspector {
	return workspace.NewInspector(exec,
		workspace.WithLayout(s.cfg.Layout),
		workspace.WithToolchain(s.cfg.Toolchain),
		workspace.WithLogger(s.logger),
	)
}

func (s *session) runner(exec procexec.Executor) *runner.Runner {
	return runner.NewRunner(exec,
		runner.WithLayout(s.cfg.Layout),
		runner.WithToolchain(s.cfg.Toolchain),
		runner.WithTimeout(s.cfg.Timeout),
		runner.WithLogger(s.logger),
	)
}
