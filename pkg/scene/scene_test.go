package scene

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/dockgrid/pkg/dock"
	"github.com/matzehuels/dockgrid/pkg/errors"
	"github.com/matzehuels/dockgrid/pkg/geom"
	"github.com/matzehuels/dockgrid/pkg/layout"
)

const tableTOML = `
[surface]
width = 800
height = 600

[[containers]]
name = "hand"
rect = { x = 0, y = 0.75, w = 1, h = 0.25 }
type = "uniform"
margin = 0.0
padding = 0.0
flags = ["dock-in-place"]

[[containers]]
name = "table"
rect = { x = 0, y = 0, w = 1, h = 0.75 }
flags = ["dock-stack"]
capacity = 1

[[items]]
id = "ace"
container = "hand"
key = 2

[[items]]
id = "king"
container = "hand"
key = 1

[[items]]
label = "Joker"
rect = { x = 0.5, y = -0.5, w = 0.3, h = 0.4 }

[[items]]
id = "badge"
parent = "ace"
rect = { x = 0.5, y = 0.2, w = 0.4, h = 0.2 }
`

const tableYAML = `
surface: { width: 800, height: 600 }
containers:
  - name: hand
    rect: { x: 0, y: 0.75, w: 1, h: 0.25 }
    type: uniform
    margin: 0
    padding: 0
    flags: [dock-stack]
items:
  - { id: bee, container: hand, key: b }
  - { id: ant, container: hand, key: a }
  - { id: fly, rect: { x: 400, y: 300, w: 60, h: 60, flavor: absolute } }
`

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestDecodeTOML(t *testing.T) {
	s, err := Decode(strings.NewReader(tableTOML), FormatTOML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if s.Surface != (Surface{Width: 800, Height: 600}) {
		t.Errorf("surface = %+v", s.Surface)
	}
	if len(s.Containers) != 2 || len(s.Items) != 4 {
		t.Fatalf("got %d containers, %d items", len(s.Containers), len(s.Items))
	}
	if got := s.Containers[0].Flags; !cmp.Equal(got, []string{"dock-in-place"}) {
		t.Errorf("flags = %v", got)
	}
	if m := s.Containers[0].Margin; m == nil || *m != 0 {
		t.Errorf("margin = %v, want explicit 0", m)
	}

	joker := s.Items[2]
	if len(joker.ID) != 36 || joker.Label != "Joker" {
		t.Errorf("anonymous item id=%q label=%q, want a uuid and Joker", joker.ID, joker.Label)
	}
	if s.Items[0].Label != "ace" {
		t.Errorf("label defaulted to %q, want the id", s.Items[0].Label)
	}
}

func TestBuild(t *testing.T) {
	s, err := Decode(strings.NewReader(tableTOML), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	reg, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	hand, table := reg.Container("hand"), reg.Container("table")
	if hand == nil || table == nil {
		t.Fatal("containers missing")
	}
	if !hand.Flags.DockInPlace || hand.Type != layout.Uniform || hand.Margin != 0 {
		t.Errorf("hand = %+v", hand)
	}
	if table.Margin != layout.DefaultMargin {
		t.Errorf("table margin = %v, want default", table.Margin)
	}

	// Sorted by key: king (1) before ace (2).
	ace, king := reg.Item("ace"), reg.Item("king")
	for _, tc := range []struct {
		it *layout.Item
		x  float64
	}{{king, 75}, {ace, 225}} {
		r, err := reg.Resolve(tc.it)
		if err != nil {
			t.Fatal(err)
		}
		if !near(r.X, tc.x) || !near(r.Y, 525) {
			t.Errorf("%s at %v, want x=%v y=525", tc.it.ID, r, tc.x)
		}
	}

	badge := reg.Item("badge")
	if badge.Parent != ace || badge.Container() != nil {
		t.Errorf("badge parent=%v container=%v", badge.Parent, badge.Container())
	}
	if r, _ := reg.Resolve(badge); !near(r.X, 225) || !near(r.Y, 480) {
		t.Errorf("badge at %v, want 225,480", r)
	}

	var joker *layout.Item
	for _, it := range reg.Items() {
		if it.Label == "Joker" {
			joker = it
		}
	}
	if joker == nil || !joker.Floating() || joker.Rect.Flavor != geom.Normalized {
		t.Errorf("joker = %+v, want a floating normalized item", joker)
	}
}

func TestBuildCapacity(t *testing.T) {
	s, err := Decode(strings.NewReader(tableTOML), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	reg, err := s.Build()
	if err != nil {
		t.Fatal(err)
	}
	ace, king := reg.Item("ace"), reg.Item("king")

	reg.Detach(ace)
	if !reg.AttemptDock(ace, 400, 200) {
		t.Fatal("empty table declined the ace")
	}
	reg.Detach(king)
	if reg.AttemptDock(king, 400, 200) {
		t.Error("full table accepted the king")
	}
	if !reg.CancelDetach(king) || king.Container() != reg.Container("hand") {
		t.Error("king did not return to the hand")
	}
}

func TestBuildSurfaceOverride(t *testing.T) {
	s, err := Decode(strings.NewReader(tableTOML), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}
	reg, err := s.Build(dock.WithSurface(1600, 1200))
	if err != nil {
		t.Fatal(err)
	}
	if got := reg.Surface(); got.W != 1600 || got.H != 1200 {
		t.Errorf("surface = %vx%v, want 1600x1200", got.W, got.H)
	}
	if r, _ := reg.Resolve(reg.Item("king")); !near(r.X, 150) {
		t.Errorf("king at %v after override, want x=150", r)
	}
}

func TestDecodeYAML(t *testing.T) {
	s, err := Decode(strings.NewReader(tableYAML), FormatYAML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	reg, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	ant, bee := reg.Item("ant"), reg.Item("bee")
	if k, ok := ant.Key.Text(); !ok || k != "a" {
		t.Errorf("ant key = %v", ant.Key)
	}
	ra, _ := reg.Resolve(ant)
	rb, _ := reg.Resolve(bee)
	if ra.X >= rb.X {
		t.Errorf("ant at x=%v not left of bee at x=%v", ra.X, rb.X)
	}

	fly := reg.Item("fly")
	if fly.Rect.Flavor != geom.Normalized || !near(fly.Rect.X, 0) || !near(fly.Rect.W, 0.2) {
		t.Errorf("fly rect = %v, want normalized center with w=0.2", fly.Rect)
	}
}

func TestAreaTypeCodes(t *testing.T) {
	const scene = `
[surface]
width = 800
height = 600

[[containers]]
name = "fill"
type = -1

[[containers]]
name = "grid"
type = 4

[[containers]]
name = "grid-explicit"
type = 4
min_count = 6

[[containers]]
name = "named"
type = "uniform"
`
	s, err := Decode(strings.NewReader(scene), FormatTOML)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	reg, err := s.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tests := []struct {
		name     string
		typ      layout.AreaType
		minCount int
	}{
		{"fill", layout.Fill, 0},
		{"grid", layout.UniformMin, 4},
		{"grid-explicit", layout.UniformMin, 6},
		{"named", layout.Uniform, 0},
	}
	for _, tt := range tests {
		c := reg.Container(tt.name)
		if c.Type != tt.typ || c.MinCount != tt.minCount {
			t.Errorf("%s: type=%v min=%d, want %v min=%d", tt.name, c.Type, c.MinCount, tt.typ, tt.minCount)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	const surface = "[surface]\nwidth = 800\nheight = 600\n"
	tests := []struct {
		name   string
		format Format
		input  string
		want   errors.Code
	}{
		{"malformed toml", FormatTOML, "[surface\n", errors.ErrCodeInvalidFormat},
		{"unknown format", Format("ini"), surface, errors.ErrCodeInvalidFormat},
		{"unknown yaml field", FormatYAML, "surface: {width: 1, height: 1}\ncolour: red\n", errors.ErrCodeInvalidFormat},
		{"missing surface", FormatTOML, "", errors.ErrCodeInvalidInput},
		{"unknown container", FormatTOML, surface + "[[items]]\nid = \"a\"\ncontainer = \"nowhere\"\n", errors.ErrCodeInvalidScene},
		{"duplicate item", FormatTOML, surface + "[[items]]\nid = \"a\"\n[[items]]\nid = \"a\"\n", errors.ErrCodeInvalidScene},
		{"duplicate container", FormatTOML, surface + "[[containers]]\nname = \"c\"\n[[containers]]\nname = \"c\"\n", errors.ErrCodeInvalidScene},
		{"bad container name", FormatTOML, surface + "[[containers]]\nname = \"has space\"\n", errors.ErrCodeInvalidScene},
		{"bad flag", FormatTOML, surface + "[[containers]]\nname = \"c\"\nflags = [\"sideways\"]\n", errors.ErrCodeInvalidScene},
		{"bad type", FormatTOML, surface + "[[containers]]\nname = \"c\"\ntype = \"spiral\"\n", errors.ErrCodeInvalidScene},
		{"fractional type code", FormatTOML, surface + "[[containers]]\nname = \"c\"\ntype = 1.5\n", errors.ErrCodeInvalidScene},
		{"bad flavor", FormatTOML, surface + "[[containers]]\nname = \"c\"\nrect = { x = 0, y = 0, w = 1, h = 1, flavor = \"polar\" }\n", errors.ErrCodeInvalidScene},
		{"margin too large", FormatTOML, surface + "[[containers]]\nname = \"c\"\nmargin = 1.5\n", errors.ErrCodeInvalidInput},
		{"list key", FormatTOML, surface + "[[items]]\nid = \"a\"\nkey = [1, 2]\n", errors.ErrCodeInvalidScene},
		{"unknown parent", FormatTOML, surface + "[[items]]\nid = \"a\"\nparent = \"b\"\nrect = { x = 0, y = 0, w = 1, h = 1 }\n", errors.ErrCodeInvalidScene},
		{"nested without rect", FormatTOML, surface + "[[items]]\nid = \"a\"\n[[items]]\nid = \"b\"\nparent = \"a\"\n", errors.ErrCodeInvalidScene},
		{
			"parent cycle", FormatTOML,
			surface + "[[items]]\nid = \"a\"\nparent = \"b\"\nrect = { x = 0, y = 0, w = 1, h = 1 }\n" +
				"[[items]]\nid = \"b\"\nparent = \"a\"\nrect = { x = 0, y = 0, w = 1, h = 1 }\n",
			errors.ErrCodeInvalidScene,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode() error = %v, want code %s", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	for _, name := range []string{"solitaire.toml", "dashboard.yaml"} {
		t.Run(name, func(t *testing.T) {
			s, err := Load(filepath.Join("testdata", name))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			reg, err := s.Build()
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if len(reg.Items()) != len(s.Items) || len(reg.Containers()) != len(s.Containers) {
				t.Errorf("registry has %d items and %d containers", len(reg.Items()), len(reg.Containers()))
			}
		})
	}

	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v", err)
	}
	ini := filepath.Join(dir, "scene.ini")
	if err := os.WriteFile(ini, []byte("x=1"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(ini); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(.ini) error = %v", err)
	}
}
