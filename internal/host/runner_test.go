package host

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doxconf/internal/diagnostics"
	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
	"git.home.luguber.info/inful/doxconf/internal/metrics"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

const script = `
echo "Processing 12 files"
echo "WARNING:root:Image foo.png was not found in XML_OUTPUT"
echo "doxygen.py:1280: DeprecationWarning: Testing an element's truth value will change" >&2
echo "  if not compound:" >&2
echo "conf is $0" >&2
`

func TestBinaryRunner_FiltersOutput(t *testing.T) {
	requireShell(t)
	var stdout, stderr bytes.Buffer
	reg := prom.NewRegistry()
	runner := NewBinaryRunner().WithRecorder(metrics.NewPrometheusRecorder(reg))

	res, err := runner.Run(context.Background(), Invocation{
		Command:  "sh",
		Args:     []string{"-c", script, ConfPlaceholder},
		ConfFile: "conf.py",
		Rules:    diagnostics.Default(),
		Stdout:   &stdout,
		Stderr:   &stderr,
	})
	require.NoError(t, err)

	require.Equal(t, "Processing 12 files\n", stdout.String())
	require.Equal(t, "conf is conf.py\n", stderr.String())
	require.Equal(t, 2, res.Stats.Emitted)
	require.Equal(t, 2, res.Stats.Suppressed)
	require.Equal(t, 1, res.Stats.SuppressedBy[diagnostics.CategoryDeprecation])

	count, err := testutil.GatherAndCount(reg, "doxconf_build_outcomes_total")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestBinaryRunner_SharedWriter(t *testing.T) {
	requireShell(t)
	var out bytes.Buffer
	loop := `i=0; while [ $i -lt 200 ]; do echo "out $i"; echo "err $i" >&2; i=$((i+1)); done`

	res, err := NewBinaryRunner().Run(context.Background(), Invocation{
		Command: "sh",
		Args:    []string{"-c", loop},
		Rules:   diagnostics.Default(),
		Stdout:  &out,
		Stderr:  &out,
	})
	require.NoError(t, err)
	require.Equal(t, 400, res.Stats.Emitted)

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 400)
	valid := regexp.MustCompile(`^(out|err) \d+$`)
	for _, line := range lines {
		require.Regexp(t, valid, line)
	}
}

func TestBinaryRunner_NonZeroExit(t *testing.T) {
	requireShell(t)
	var stderr bytes.Buffer

	_, err := NewBinaryRunner().Run(context.Background(), Invocation{
		Command: "sh",
		Args:    []string{"-c", "echo broken >&2; exit 3"},
		Stderr:  &stderr,
	})

	require.Error(t, err)
	require.True(t, errors.Is(err, ErrExecutionFailed))
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryHost))
	require.Equal(t, "broken\n", stderr.String())
}

func TestBinaryRunner_MissingBinary(t *testing.T) {
	_, err := NewBinaryRunner().Run(context.Background(), Invocation{Command: "doxconf-no-such-generator"})

	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBinaryNotFound))
}

func TestBinaryRunner_Canceled(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBinaryRunner().Run(ctx, Invocation{Command: "sh", Args: []string{"-c", "sleep 5"}})

	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestExpandArgs(t *testing.T) {
	require.Equal(t, []string{"conf.py"}, ExpandArgs(nil, "conf.py"))
	require.Equal(t, []string{"--debug", "conf.py"}, ExpandArgs([]string{"--debug"}, "conf.py"))
	require.Equal(t, []string{"--config=conf.py", "--x"}, ExpandArgs([]string{"--config={conf}", "--x"}, "conf.py"))
	require.Equal(t, []string{"--debug"}, ExpandArgs([]string{"--debug"}, ""))
}

func TestNoopRunner(t *testing.T) {
	var r Runner = NoopRunner{}
	res, err := r.Run(context.Background(), Invocation{Command: "doxygen.py"})
	require.NoError(t, err)
	require.Zero(t, res.Stats.Emitted)
}
