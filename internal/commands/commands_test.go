package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/critic/internal/core/config"
	"github.com/hay-kot/critic/internal/core/review"
	"github.com/hay-kot/critic/internal/core/styles"
	"github.com/hay-kot/critic/internal/core/workspace"
	"github.com/hay-kot/critic/internal/printer"
)

type fakeReviewer struct {
	outcome review.Outcome
	got     string
	opts    review.Options
}

func (f *fakeReviewer) Request(_ context.Context, code string) review.Outcome {
	f.got = code
	return f.outcome
}

func testFlags(t *testing.T) *Flags {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Export.DownloadDir = t.TempDir()
	return &Flags{
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
		Config:     &cfg,
	}
}

func runApp(t *testing.T, register func(app *cli.Command), args ...string) (string, string, error) {
	t.Helper()
	prev := styles.Current()
	t.Cleanup(func() { styles.SetTheme(prev) })

	var stdout, stderr bytes.Buffer
	app := &cli.Command{Name: "critic", Writer: &stdout, ErrWriter: &stderr}
	register(app)

	ctx := printer.NewContext(context.Background(), printer.New(&stderr))
	err := app.Run(ctx, append([]string{"critic"}, args...))
	return stdout.String(), stderr.String(), err
}

func TestReadSource(t *testing.T) {
	file := filepath.Join(t.TempDir(), "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main\n"), 0o644))

	tests := []struct {
		name string
		path string
		in   stdinInput
		want source
	}{
		{
			name: "file argument",
			path: file,
			in:   stdinInput{r: strings.NewReader("ignored"), terminal: false},
			want: source{Code: "package main\n", Filename: file},
		},
		{
			name: "piped stdin",
			in:   stdinInput{r: strings.NewReader("x := 1"), terminal: false},
			want: source{Code: "x := 1", Piped: true},
		},
		{
			name: "dash reads stdin even on a terminal",
			path: "-",
			in:   stdinInput{r: strings.NewReader("y"), terminal: true},
			want: source{Code: "y", Piped: true},
		},
		{
			name: "terminal without file",
			in:   stdinInput{r: strings.NewReader("never read"), terminal: true},
			want: source{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readSource(tt.path, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSource_MissingFile(t *testing.T) {
	_, err := readSource(filepath.Join(t.TempDir(), "nope.go"), stdinInput{terminal: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nope.go")
}

func TestFlagsSettings_Overrides(t *testing.T) {
	f := testFlags(t)
	f.Endpoint = "https://review.example.com/ai/get-review"
	f.Theme = "light"
	f.Timeout = 10 * time.Second
	f.DownloadDir = "/tmp/out"

	cfg, err := f.Settings()
	require.NoError(t, err)

	assert.Equal(t, "https://review.example.com/ai/get-review", cfg.Review.Endpoint)
	assert.Equal(t, styles.ThemeLight, cfg.ThemeValue())
	assert.Equal(t, 10*time.Second, cfg.Review.Timeout)
	assert.Equal(t, "/tmp/out", cfg.Export.DownloadDir)
	assert.Equal(t, config.DefaultEndpoint, f.Config.Review.Endpoint, "loaded config is not mutated")
}

func TestFlagsSettings_NilConfigUsesDefaults(t *testing.T) {
	cfg, err := (&Flags{}).Settings()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultEndpoint, cfg.Review.Endpoint)
}

func TestFlagsSettings_InvalidTheme(t *testing.T) {
	f := testFlags(t)
	f.Theme = "neon"

	_, err := f.Settings()
	require.Error(t, err)
}

func TestNewResolver_UsesConfigRules(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Editor.Languages = []config.LanguageRule{{Pattern: "*.tmpl", Language: "go"}}

	r := newResolver(&cfg)
	assert.Equal(t, "go", r.Resolve("page.tmpl"))
	assert.Equal(t, "javascript", r.Resolve(""))
}

func newTestReviewCmd(t *testing.T, fake *fakeReviewer, stdin string) *ReviewCmd {
	t.Helper()
	cmd := NewReviewCmd(testFlags(t))
	cmd.stdin = func() stdinInput { return stdinInput{r: strings.NewReader(stdin)} }
	cmd.reviewer = func(opts review.Options) review.Reviewer {
		fake.opts = opts
		return fake
	}
	cmd.isTTY = func(io.Writer) (bool, int) { return false, 0 }
	return cmd
}

func TestReviewCmd_PrintsReview(t *testing.T) {
	fake := &fakeReviewer{outcome: review.Success("## Looks good")}
	cmd := newTestReviewCmd(t, fake, "function sum() {}")

	stdout, _, err := runApp(t, func(app *cli.Command) { cmd.Register(app) }, "review")
	require.NoError(t, err)

	assert.Equal(t, "## Looks good\n", stdout)
	assert.Equal(t, "function sum() {}", fake.got)
	assert.Equal(t, config.DefaultEndpoint, fake.opts.Endpoint)
}

func TestReviewCmd_RendersOnTerminal(t *testing.T) {
	fake := &fakeReviewer{outcome: review.Success("# Title\n\nSome **bold** text.")}
	cmd := newTestReviewCmd(t, fake, "x")
	cmd.isTTY = func(io.Writer) (bool, int) { return true, 60 }

	stdout, _, err := runApp(t, func(app *cli.Command) { cmd.Register(app) }, "review")
	require.NoError(t, err)

	assert.NotContains(t, stdout, "**bold**")
	assert.Contains(t, stdout, "bold")
}

func TestReviewCmd_RawOnTerminal(t *testing.T) {
	fake := &fakeReviewer{outcome: review.Success("Some **bold** text.")}
	cmd := newTestReviewCmd(t, fake, "x")
	cmd.isTTY = func(io.Writer) (bool, int) { return true, 60 }

	stdout, _, err := runApp(t, func(app *cli.Command) { cmd.Register(app) }, "review", "--raw")
	require.NoError(t, err)
	assert.Equal(t, "Some **bold** text.\n", stdout)
}

func TestReviewCmd_SentinelOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		outcome review.Outcome
	}{
		{name: "empty", outcome: review.Empty(review.ErrEmptyBody)},
		{name: "failed", outcome: review.Failed(context.DeadlineExceeded)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outDir := filepath.Join(t.TempDir(), "out")
			cmd := newTestReviewCmd(t, &fakeReviewer{outcome: tt.outcome}, "x")

			stdout, _, err := runApp(t, func(app *cli.Command) { cmd.Register(app) }, "review", "-o", outDir)
			require.ErrorIs(t, err, ErrNoReview)

			assert.Equal(t, tt.outcome.Text+"\n", stdout)
			assert.NoDirExists(t, outDir, "sentinel text is never saved")
		})
	}
}

func TestReviewCmd_OutputWritesFile(t *testing.T) {
	outDir := t.TempDir()
	cmd := newTestReviewCmd(t, &fakeReviewer{outcome: review.Success("## Review\n")}, "x")

	_, stderr, err := runApp(t, func(app *cli.Command) { cmd.Register(app) }, "review", "--output", outDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(outDir, "review.txt"))
	require.NoError(t, err)
	assert.Equal(t, "## Review\n", string(data))
	assert.Contains(t, stderr, "Saved")
}

func TestReviewCmd_FileArgument(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sum.js")
	require.NoError(t, os.WriteFile(file, []byte("return 1 + 1;"), 0o644))

	fake := &fakeReviewer{outcome: review.Success("ok")}
	cmd := newTestReviewCmd(t, fake, "stdin ignored")

	_, _, err := runApp(t, func(app *cli.Command) { cmd.Register(app) }, "review", file)
	require.NoError(t, err)
	assert.Equal(t, "return 1 + 1;", fake.got)
}

func TestReviewCmd_NoCode(t *testing.T) {
	fake := &fakeReviewer{outcome: review.Success("ok")}
	cmd := newTestReviewCmd(t, fake, "   \n")

	_, _, err := runApp(t, func(app *cli.Command) { cmd.Register(app) }, "review")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no code")
	assert.Empty(t, fake.got, "endpoint is not called")
}

func TestTuiCmd_Options(t *testing.T) {
	prev := styles.Current()
	t.Cleanup(func() { styles.SetTheme(prev) })

	f := testFlags(t)
	f.Theme = "light"
	cfg, err := f.Settings()
	require.NoError(t, err)

	cmd := NewTuiCmd(f)
	opts := cmd.options(cfg, source{Code: "package main", Filename: "main.go"})

	assert.Equal(t, "package main", opts.State.Code())
	assert.Equal(t, styles.ThemeLight, opts.State.Theme())
	assert.Equal(t, styles.ThemeLight, styles.Current())
	assert.Equal(t, "Go", opts.Language)
	assert.Equal(t, cfg.Export.DownloadDir, opts.DownloadDir)
	assert.True(t, opts.Animate)
	assert.NotNil(t, opts.Reviewer)
}

func TestTuiCmd_OptionsSource(t *testing.T) {
	prev := styles.Current()
	t.Cleanup(func() { styles.SetTheme(prev) })

	empty := filepath.Join(t.TempDir(), "empty.js")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))

	src, err := readSource(empty, stdinInput{terminal: true})
	require.NoError(t, err)

	f := testFlags(t)
	cfg, err := f.Settings()
	require.NoError(t, err)
	cmd := NewTuiCmd(f)

	assert.Empty(t, cmd.options(cfg, src).State.Code(), "an empty file is not replaced by the sample")
	assert.Empty(t, cmd.options(cfg, source{Piped: true}).State.Code())
	assert.Equal(t, workspace.SampleCode, cmd.options(cfg, source{}).State.Code())
	assert.Equal(t, "a\nb", cmd.options(cfg, source{Code: "a\r\nb", Piped: true}).State.Code())
}

func TestConfigValidateCmd_JSON(t *testing.T) {
	cmd := NewConfigValidateCmd(testFlags(t))

	stdout, _, err := runApp(t, func(app *cli.Command) { cmd.Register(app) }, "config", "validate", "--format", "json")
	require.NoError(t, err)

	var out struct {
		Valid  bool `json:"valid"`
		Errors []validationError
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.True(t, out.Valid)
	assert.Empty(t, out.Errors)
}

func TestConfigValidateCmd_InvalidEndpoint(t *testing.T) {
	f := testFlags(t)
	f.Endpoint = "ftp://example.com/review"
	cmd := NewConfigValidateCmd(f)

	_, stderr, err := runApp(t, func(app *cli.Command) { cmd.Register(app) }, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 error(s)")
	assert.Contains(t, stderr, "review.endpoint")
}

func TestInitCmd_Yes(t *testing.T) {
	f := testFlags(t)
	cmd := NewInitCmd(f)

	_, _, err := runApp(t, func(app *cli.Command) { cmd.Register(app) }, "init", "--yes")
	require.NoError(t, err)
	assert.FileExists(t, f.ConfigPath)

	_, _, err = runApp(t, func(app *cli.Command) { cmd.Register(app) }, "init", "-y")
	require.Error(t, err, "existing config needs --force")

	_, _, err = runApp(t, func(app *cli.Command) { cmd.Register(app) }, "init", "-y", "-f")
	require.NoError(t, err)
	assert.FileExists(t, f.ConfigPath+".bak")
}

func TestReportWarnings_Deferred(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Review.Endpoint = "http://review.example.com/ai/get-review"

	var buf bytes.Buffer
	reportWarnings(printer.New(&buf), &cfg)
	assert.Contains(t, buf.String(), "unencrypted")
}
