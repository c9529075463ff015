// Package host starts the external documentation generator and passes its
// output through the diagnostic filter.
package host

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/doxconf/internal/diagnostics"
	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
	"git.home.luguber.info/inful/doxconf/internal/logfields"
	"git.home.luguber.info/inful/doxconf/internal/metrics"
)

var (
	// ErrBinaryNotFound indicates the generator executable was not found on PATH.
	ErrBinaryNotFound = errors.New("documentation generator not found")
	// ErrExecutionFailed indicates the generator exited with a non-zero status.
	ErrExecutionFailed = errors.New("documentation generator failed")
)

// ConfPlaceholder in an argument is replaced by the configuration file path.
const ConfPlaceholder = "{conf}"

// Invocation describes one generator run.
type Invocation struct {
	Command  string
	Args     []string
	Dir      string
	ConfFile string
	Rules    *diagnostics.RuleSet
	Stdout   io.Writer
	Stderr   io.Writer
}

// Result summarises a run.
type Result struct {
	Stats    diagnostics.Stats
	Duration time.Duration
}

// Runner abstracts how the generator is executed so tests and dry runs can
// swap in NoopRunner.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// BinaryRunner executes the generator as a subprocess.
type BinaryRunner struct {
	recorder metrics.Recorder
}

// NewBinaryRunner returns a runner with metrics disabled.
func NewBinaryRunner() *BinaryRunner {
	return &BinaryRunner{recorder: metrics.NoopRecorder{}}
}

// WithRecorder injects a metrics recorder.
func (b *BinaryRunner) WithRecorder(r metrics.Recorder) *BinaryRunner {
	if r != nil {
		b.recorder = r
	}
	return b
}

func (b *BinaryRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	path, err := exec.LookPath(inv.Command)
	if err != nil {
		return Result{}, ferrors.HostError("documentation generator not found on PATH").
			WithCause(fmt.Errorf("%w: %w", ErrBinaryNotFound, err)).
			WithContext("command", inv.Command).
			Build()
	}

	args := ExpandArgs(inv.Args, inv.ConfFile)
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = inv.Dir

	// Both streams share one lock so a writer passed as Stdout and Stderr
	// never sees concurrent writes.
	mu := &sync.Mutex{}
	stdout := diagnostics.NewStream(inv.Rules, &lockedWriter{mu: mu, w: orDiscard(inv.Stdout)}, b.recorder)
	stderr := diagnostics.NewStream(inv.Rules, &lockedWriter{mu: mu, w: orDiscard(inv.Stderr)}, b.recorder)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	slog.Debug("Starting documentation generator",
		logfields.Command(path),
		slog.String("args", strings.Join(args, " ")),
		logfields.Path(inv.Dir))

	start := time.Now()
	runErr := cmd.Run()
	duration := time.Since(start)

	// Flush errors are write failures on our own outputs.
	flushErr := errors.Join(stdout.Flush(), stderr.Flush())
	res := Result{Stats: stdout.Stats().Add(stderr.Stats()), Duration: duration}
	b.recorder.ObserveBuildDuration(duration)

	switch {
	case runErr != nil && ctx.Err() != nil:
		b.recorder.IncBuildOutcome(metrics.OutcomeCanceled)
		return res, ferrors.HostError("documentation generator interrupted").
			WithCause(ctx.Err()).
			WithContext("command", inv.Command).
			Build()
	case runErr != nil:
		b.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		return res, ferrors.HostError("documentation generator failed").
			WithCause(fmt.Errorf("%w: %w", ErrExecutionFailed, runErr)).
			WithContext("command", inv.Command).
			Build()
	case flushErr != nil:
		b.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		return res, ferrors.FileSystemError("failed to write generator output").WithCause(flushErr).Build()
	}

	b.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	return res, nil
}

// ExpandArgs substitutes ConfPlaceholder. When no argument contains it, the
// configuration path is appended.
func ExpandArgs(args []string, confFile string) []string {
	out := make([]string, 0, len(args)+1)
	replaced := false
	for _, a := range args {
		if strings.Contains(a, ConfPlaceholder) {
			a = strings.ReplaceAll(a, ConfPlaceholder, confFile)
			replaced = true
		}
		out = append(out, a)
	}
	if !replaced && confFile != "" {
		out = append(out, confFile)
	}
	return out
}

type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func orDiscard(w io.Writer) io.Writer {
	if w == nil {
		return io.Discard
	}
	return w
}

// NoopRunner performs no generation; useful in tests or for --dry-run.
type NoopRunner struct{}

func (NoopRunner) Run(_ context.Context, inv Invocation) (Result, error) {
	slog.Debug("NoopRunner skipping documentation generator", logfields.Command(inv.Command))
	return Result{Stats: diagnostics.Stats{SuppressedBy: map[diagnostics.Category]int{}}}, nil
}
