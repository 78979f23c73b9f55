package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockgrid/pkg/cache"
	"github.com/matzehuels/dockgrid/pkg/errors"
	"github.com/matzehuels/dockgrid/pkg/render"
)

const solitaire = "../../examples/solitaire.toml"

func newTestCLI() *CLI { return New(io.Discard, log.DebugLevel) }

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newTestCLI().RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	root := newTestCLI().RootCommand()
	want := []string{"layout", "fit", "pack", "preview", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"layout without scene", []string{"layout"}, ""},
		{"layout unknown format", []string{"layout", solitaire, "-f", "pdf", "--no-cache"}, errors.ErrCodeInvalidInput},
		{"layout missing scene", []string{"layout", "nowhere.toml", "--no-cache"}, errors.ErrCodeFileNotFound},
		{"layout unknown font", []string{"layout", solitaire, "--font", "comic", "--no-cache", "-o", "-"}, errors.ErrCodeNotFound},
		{"fit empty text", []string{"fit", "  ", "--no-cache"}, errors.ErrCodeInvalidInput},
		{"pack zero width", []string{"pack", "--width", "0"}, errors.ErrCodeInvalidInput},
		{"pack bad count", []string{"pack", "two"}, errors.ErrCodeInvalidInput},
		{"completion unknown shell", []string{"completion", "tcsh"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLayoutCommand(t *testing.T) {
	dir := t.TempDir()

	out := filepath.Join(dir, "solitaire.json")
	if _, err := execute(t, "layout", solitaire, "-f", "json", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("layout error = %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var snap render.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("output is not a snapshot: %v", err)
	}
	if snap.Width != 1024 || len(snap.Containers) != 3 || len(snap.Items) != 7 {
		t.Errorf("snapshot %vx%v with %d containers and %d items", snap.Width, snap.Height, len(snap.Containers), len(snap.Items))
	}
	for _, it := range snap.Items {
		if it.Label != "" && it.Text == nil {
			t.Errorf("%s has no fitted label", it.ID)
		}
	}

	svg := filepath.Join(dir, "solitaire.svg")
	if _, err := execute(t, "layout", solitaire, "-o", svg, "--width", "2048", "--no-cache"); err != nil {
		t.Fatalf("layout error = %v", err)
	}
	data, err = os.ReadFile(svg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<svg")) || !bytes.Contains(data, []byte(`viewBox="0 0 2048.0 768.0"`)) {
		t.Errorf("unexpected SVG header: %.120s", data)
	}
}

func TestValidateLayoutOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    layoutOptions
		wantErr bool
	}{
		{"svg", layoutOptions{Format: formatSVG}, false},
		{"json", layoutOptions{Format: formatJSON}, false},
		{"text", layoutOptions{Format: formatText, Cols: 80, Rows: 24}, false},
		{"text without rows", layoutOptions{Format: formatText, Cols: 80}, true},
		{"dot", layoutOptions{Format: formatDOT}, false},
		{"unknown format", layoutOptions{Format: "png"}, true},
		{"negative width", layoutOptions{Format: formatSVG, Width: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLayoutOptions(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateLayoutOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLayoutKeyFormat(t *testing.T) {
	a := layoutKeyFormat(layoutOptions{Format: formatText, Cols: 80, Rows: 24})
	b := layoutKeyFormat(layoutOptions{Format: formatText, Cols: 100, Rows: 24})
	if a == b {
		t.Errorf("canvas size not part of the key: %q", a)
	}
	if got := layoutKeyFormat(layoutOptions{Format: formatJSON, Cols: 80}); got != formatJSON {
		t.Errorf("json key = %q", got)
	}
}

func TestExportText(t *testing.T) {
	c := newTestCLI()
	reg, m, err := c.loadScene(solitaire, 0, 0, "mono")
	if err != nil {
		t.Fatal(err)
	}
	data, err := c.exportLayout(context.Background(), reg, m, layoutOptions{Format: formatText, Cols: 64, Rows: 24})
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != 24 {
		t.Errorf("got %d lines, want 24", len(lines))
	}
	if !strings.Contains(string(data), "hand") {
		t.Errorf("container name missing:\n%s", data)
	}
}

func TestLoadSceneSurfaceOverride(t *testing.T) {
	reg, _, err := newTestCLI().loadScene(solitaire, 0, 384, "regular")
	if err != nil {
		t.Fatal(err)
	}
	if s := reg.Surface(); s.W != 1024 || s.H != 384 {
		t.Errorf("surface = %vx%v, want 1024x384", s.W, s.H)
	}
}

func TestNewCache(t *testing.T) {
	c := newTestCLI()

	store, err := c.newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(cache.NullCache); !ok {
		t.Errorf("--no-cache gave %T", store)
	}

	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	store, err = c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*cache.Instrumented); !ok {
		t.Errorf("newCache(false) = %T, want an instrumented file cache", store)
	}
}

func TestCachePathCommand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out), filepath.Join(home, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, appName) {
		t.Error("bash completion does not mention the program")
	}
}

func TestExtension(t *testing.T) {
	for format, want := range map[string]string{
		formatSVG: "svg", formatJSON: "json", formatText: "txt", formatDOT: "dot", formatTree: "tree.svg",
	} {
		if got := extension(format); got != want {
			t.Errorf("extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestRenderError(t *testing.T) {
	got := renderError(errors.New(errors.ErrCodeDegenerateGeometry, "surface %gx%g", 0.0, 768.0))
	if !strings.Contains(got, "surface 0x768") || !strings.Contains(got, "(DEGENERATE_GEOMETRY)") {
		t.Errorf("renderError() = %q", got)
	}
	if strings.Contains(got, "DEGENERATE_GEOMETRY:") {
		t.Errorf("renderError() = %q repeats the code prefix", got)
	}

	got = renderError(io.ErrUnexpectedEOF)
	if !strings.Contains(got, io.ErrUnexpectedEOF.Error()) || strings.Contains(got, "(") {
		t.Errorf("renderError(plain) = %q", got)
	}
}
