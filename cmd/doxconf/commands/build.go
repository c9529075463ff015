package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/doxconf/internal/config"
	"git.home.luguber.info/inful/doxconf/internal/diagnostics"
	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
	"git.home.luguber.info/inful/doxconf/internal/host"
	"git.home.luguber.info/inful/doxconf/internal/logfields"
	"git.home.luguber.info/inful/doxconf/internal/metrics"
	"git.home.luguber.info/inful/doxconf/internal/observability"
	"git.home.luguber.info/inful/doxconf/internal/watch"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	DryRun      bool   `name:"dry-run" help:"Emit configuration but do not start the generator"`
	Watch       bool   `short:"w" help:"Rebuild whenever the configuration file changes"`
	MetricsFile string `name:"metrics-file" help:"Write Prometheus text metrics to this file after each build (overrides metrics.file)"`

	runner host.Runner
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := b.buildOnce(ctx, root); err != nil {
		if !b.Watch {
			return err
		}
		slog.Error("Build failed", logfields.Error(err))
	}
	if !b.Watch {
		return nil
	}

	cw, err := watch.NewConfigWatcher(root.Config, watch.DefaultDebounce, func(ctx context.Context) error {
		return b.buildOnce(ctx, root)
	})
	if err != nil {
		return ferrors.RuntimeError("failed to watch configuration").WithCause(err).Build()
	}
	return cw.Run(ctx)
}

// buildOnce reloads the configuration so watch mode always builds the latest file.
func (b *BuildCmd) buildOnce(ctx context.Context, root *CLI) error {
	cfg, rules, err := root.loadConfig()
	if err != nil {
		return err
	}
	ctx = observability.WithBuildID(ctx, uuid.NewString())

	reg := prom.NewRegistry()
	recorder := metrics.Recorder(metrics.NoopRecorder{})
	metricsFile := b.metricsFile(cfg)
	if metricsFile != "" {
		recorder = metrics.NewPrometheusRecorder(reg)
	}
	recorder.SetActiveRules(rules.Len())

	confFile, err := filepath.Abs(cfg.Output.ConfFile)
	if err != nil {
		return ferrors.FileSystemError("failed to resolve conf file").WithCause(err).Build()
	}
	emitCtx := observability.WithStage(ctx, "emit")
	if err := writeConf(cfg, confFile, root.Config); err != nil {
		return err
	}
	observability.DebugContext(emitCtx, "Configuration emitted", logfields.Path(confFile))

	runCtx := observability.WithStage(ctx, "generate")
	observability.InfoContext(runCtx, "Starting documentation build",
		logfields.Command(cfg.Host.Command),
		logfields.RuleCount(rules.Len()))

	res, runErr := b.runnerFor(recorder).Run(runCtx, invocation(cfg, rules, confFile, root))
	observability.InfoContext(runCtx, "Documentation build finished",
		logfields.Emitted(res.Stats.Emitted),
		logfields.Suppressed(res.Stats.Suppressed),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))

	if metricsFile != "" {
		if err := metrics.WriteTextfile(metricsFile, reg); err != nil {
			slog.Warn("Failed to write metrics file", logfields.Path(metricsFile), logfields.Error(err))
		}
	}
	return runErr
}

func (b *BuildCmd) metricsFile(cfg *config.Config) string {
	if b.MetricsFile != "" {
		return b.MetricsFile
	}
	return cfg.Metrics.File
}

func (b *BuildCmd) runnerFor(recorder metrics.Recorder) host.Runner {
	switch {
	case b.runner != nil:
		return b.runner
	case b.DryRun:
		return host.NoopRunner{}
	default:
		return host.NewBinaryRunner().WithRecorder(recorder)
	}
}

func invocation(cfg *config.Config, rules *diagnostics.RuleSet, confFile string, root *CLI) host.Invocation {
	return host.Invocation{
		Command:  cfg.Host.Command,
		Args:     cfg.Host.Args,
		Dir:      cfg.Host.Dir,
		ConfFile: confFile,
		Rules:    rules,
		Stdout:   root.out(),
		Stderr:   root.errOut(),
	}
}
