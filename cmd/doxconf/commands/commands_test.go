package commands

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/doxconf/internal/diagnostics"
	ferrors "git.home.luguber.info/inful/doxconf/internal/foundation/errors"
	"git.home.luguber.info/inful/doxconf/internal/host"
)

type harness struct {
	cli    *CLI
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newHarness(t *testing.T, stdin string) *harness {
	t.Helper()
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	h := &harness{}
	h.cli = &CLI{stdin: strings.NewReader(stdin), stdout: &h.stdout, stderr: &h.stderr}
	return h
}

func (h *harness) parse(t *testing.T, args ...string) *kong.Context {
	t.Helper()
	parser, err := kong.New(h.cli,
		kong.Name("doxconf"),
		kong.Exit(func(int) { t.Fatalf("unexpected exit") }),
		kong.Vars{"version": "test"},
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	return h.parse(t, args...).Run(&Global{Logger: slog.Default()}, h.cli)
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doxconf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFilter_Stdin(t *testing.T) {
	h := newHarness(t, strings.Join([]string{
		"DeprecationWarning: Testing an element's truth value will change",
		"RuntimeWarning: Image foo.png was not found in XML_OUTPUT",
		"WARNING:root:Image foo.png was not found in XML_OUTPUT",
		"Unrelated build note: 3 files processed",
	}, "\n")+"\n")

	require.NoError(t, h.run(t, "filter", "--stats"))

	require.Equal(t, "Unrelated build note: 3 files processed\n", h.stdout.String())
	require.Contains(t, h.stderr.String(), "emitted 1, suppressed 3")
	require.Contains(t, h.stderr.String(), "deprecation: 1")
}

func TestFilter_Files(t *testing.T) {
	dir := t.TempDir()
	log := filepath.Join(dir, "build.log")
	require.NoError(t, os.WriteFile(log, []byte("keep me\nImage a.png was not found in XML_OUTPUT\n"), 0o600))

	h := newHarness(t, "")
	require.NoError(t, h.run(t, "filter", log))
	require.Equal(t, "keep me\n", h.stdout.String())
}

func TestFilter_BuiltinsDisabled(t *testing.T) {
	cfg := writeConfig(t, "builtin_suppressions: false\n")
	h := newHarness(t, "Image a.png was not found in XML_OUTPUT\n")

	require.NoError(t, h.run(t, "-c", cfg, "filter"))
	require.Equal(t, "Image a.png was not found in XML_OUTPUT\n", h.stdout.String())
}

func TestNavbar_Formats(t *testing.T) {
	h := newHarness(t, "")
	require.NoError(t, h.run(t, "navbar"))
	require.Equal(t, "primary:\n  Pages (pages)\n    About (about)\n  Namespaces (namespaces)\n", h.stdout.String())

	h = newHarness(t, "")
	require.NoError(t, h.run(t, "navbar", "-f", "mcss"))
	require.Contains(t, h.stdout.String(), "(None, 'pages', [(None, 'about')]),")

	h = newHarness(t, "")
	require.NoError(t, h.run(t, "navbar", "--format", "json"))
	require.JSONEq(t, `{"primary":[
		{"title":null,"target":"pages","children":[{"title":null,"target":"about"}]},
		{"title":null,"target":"namespaces","children":[]}
	]}`, h.stdout.String())

	h = newHarness(t, "")
	require.NoError(t, h.run(t, "navbar", "--format", "yaml"))
	require.Contains(t, h.stdout.String(), "target: namespaces")
}

func TestRules_ListsBuiltinsAndDeclared(t *testing.T) {
	cfg := writeConfig(t, "suppressions:\n  - pattern: Unable to resolve\n    category: log\n")
	h := newHarness(t, "")

	require.NoError(t, h.run(t, "--config", cfg, "rules"))

	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, len(diagnostics.DefaultRules())+2)
	require.Contains(t, lines[0], "CATEGORY")
	require.Contains(t, lines[len(lines)-1], "Unable to resolve")
}

func TestRules_InvalidConfig(t *testing.T) {
	cfg := writeConfig(t, "suppressions:\n  - pattern: \"\"\n    category: log\n")
	h := newHarness(t, "")

	err := h.run(t, "-c", cfg, "rules")
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestRules_MissingExplicitConfig(t *testing.T) {
	h := newHarness(t, "")
	err := h.run(t, "-c", filepath.Join(t.TempDir(), "absent.yaml"), "rules")
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestInit_ThenEmit(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "doxconf.yaml")

	h := newHarness(t, "")
	require.NoError(t, h.run(t, "-c", cfg, "init"))
	require.Contains(t, h.stdout.String(), "Wrote "+cfg)

	conf := filepath.Join(dir, "conf.py")
	h = newHarness(t, "")
	require.NoError(t, h.run(t, "-c", cfg, "emit", "-o", conf))

	data, err := os.ReadFile(conf)
	require.NoError(t, err)
	require.Contains(t, string(data), "DOXYFILE = 'Doxyfile'")
	require.Contains(t, string(data), "LINKS_NAVBAR1 = [")

	h = newHarness(t, "")
	require.NoError(t, h.run(t, "-c", cfg, "emit", "--stdout"))
	require.Equal(t, string(data), h.stdout.String())
}

type fakeRunner struct {
	inv host.Invocation
}

func (f *fakeRunner) Run(_ context.Context, inv host.Invocation) (host.Result, error) {
	f.inv = inv
	_, _ = inv.Stdout.Write([]byte("generated\n"))
	return host.Result{Stats: diagnostics.Stats{Emitted: 1, SuppressedBy: map[diagnostics.Category]int{}}}, nil
}

func TestBuild_EmitsAndRuns(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "out.py")
	metricsFile := filepath.Join(dir, "doxconf.prom")
	cfg := writeConfig(t, "doxyfile: Doxyfile-mcss\nhost:\n  command: doxygen.py\n  args: [--debug]\noutput:\n  conf_file: "+conf+"\n")

	h := newHarness(t, "")
	kctx := h.parse(t, "-c", cfg, "build", "--metrics-file", metricsFile)
	runner := &fakeRunner{}
	h.cli.Build.runner = runner
	require.NoError(t, kctx.Run(&Global{}, h.cli))

	require.Equal(t, "doxygen.py", runner.inv.Command)
	require.Equal(t, []string{"--debug"}, runner.inv.Args)
	require.Equal(t, conf, runner.inv.ConfFile)
	require.NotNil(t, runner.inv.Rules)
	require.Equal(t, "generated\n", h.stdout.String())

	data, err := os.ReadFile(conf)
	require.NoError(t, err)
	require.Contains(t, string(data), "DOXYFILE = 'Doxyfile-mcss'")

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(prom), "doxconf_suppression_rules 4")

	require.Contains(t, h.stderr.String(), "Documentation build finished")
	require.Contains(t, h.stderr.String(), "build_id=")
}

func TestBuild_DryRun(t *testing.T) {
	dir := t.TempDir()
	conf := filepath.Join(dir, "conf.py")
	cfg := writeConfig(t, "host:\n  command: doxconf-no-such-generator\noutput:\n  conf_file: "+conf+"\n")

	h := newHarness(t, "")
	require.NoError(t, h.run(t, "-c", cfg, "build", "--dry-run"))

	_, err := os.Stat(conf)
	require.NoError(t, err)
}

func TestBuild_MissingGenerator(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, "host:\n  command: doxconf-no-such-generator\noutput:\n  conf_file: "+filepath.Join(dir, "conf.py")+"\n")

	h := newHarness(t, "")
	err := h.run(t, "-c", cfg, "build")
	require.Error(t, err)
	require.ErrorIs(t, err, host.ErrBinaryNotFound)
	require.Equal(t, 11, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}
