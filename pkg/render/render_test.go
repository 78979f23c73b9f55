package render

import (
	"encoding/json"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/matzehuels/dockgrid/pkg/dock"
	"github.com/matzehuels/dockgrid/pkg/fonts"
	"github.com/matzehuels/dockgrid/pkg/geom"
	"github.com/matzehuels/dockgrid/pkg/layout"
	"github.com/matzehuels/dockgrid/pkg/textfit"
)

var halfEm = textfit.MeasureFunc(func(word string, h float64) float64 {
	return 0.5 * h * float64(utf8.RuneCountInString(word))
})

// newRegistry returns an 800x600 surface with two cards docked along the
// bottom and a joker floating in the middle.
func newRegistry(t *testing.T) *dock.Registry {
	t.Helper()
	reg := dock.New(dock.WithSurface(800, 600))
	hand := layout.NewContainer("hand",
		layout.WithRect(geom.Rect{X: 0, Y: 0.75, W: 1, H: 0.25, Flavor: geom.AreaRelative}),
		layout.WithType(layout.Uniform), layout.WithMargin(0), layout.WithPadding(0),
		layout.WithFlags(layout.Flags{DockStack: true}))
	reg.AddContainer(hand)

	for i, label := range []string{"Ace", "<King & Queen>"} {
		it := layout.NewItem([]string{"ace", "king"}[i], geom.Rect{})
		it.Label = label
		it.Key = layout.NumberKey(float64(i + 1))
		reg.Add(it)
		reg.Reassign(it, hand)
	}
	joker := layout.NewItem("joker", geom.Rect{X: 0, Y: 0, W: 0.6, H: 0.6, Flavor: geom.Normalized})
	reg.Add(joker)

	if err := reg.Settle(); err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestCapture(t *testing.T) {
	snap := Capture(newRegistry(t))

	if snap.Width != 800 || snap.Height != 600 {
		t.Errorf("surface = %vx%v", snap.Width, snap.Height)
	}
	wantContainers := []ContainerBox{{
		Box:     Box{X: 0, Y: 450, W: 800, H: 150},
		Name:    "hand",
		Type:    "uniform",
		Flags:   []string{"dock-stack"},
		Members: []string{"ace", "king"},
	}}
	if diff := cmp.Diff(wantContainers, snap.Containers, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("containers mismatch (-want +got):\n%s", diff)
	}

	wantItems := []ItemBox{
		{Box: Box{X: 0, Y: 450, W: 150, H: 150}, ID: "ace", Label: "Ace", Container: "hand", Key: "1"},
		{Box: Box{X: 150, Y: 450, W: 150, H: 150}, ID: "king", Label: "<King & Queen>", Container: "hand", Key: "2"},
		{Box: Box{X: 310, Y: 210, W: 180, H: 180}, ID: "joker", Label: "joker", Floating: true},
	}
	if diff := cmp.Diff(wantItems, snap.Items, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestLabeler(t *testing.T) {
	l := NewLabeler(halfEm)

	res := l.Fit("ace", "Ace", 150, 150)
	if res == nil {
		t.Fatal("Fit() = nil for a short label")
	}
	// The label area is 127.5 x 90 and the font is capped at half of it.
	if res.FontHeight < 1 || res.FontHeight > 45 || res.Height > 90 {
		t.Errorf("result = %+v", res)
	}
	if l.Fit("blank", "", 150, 150) != nil {
		t.Error("Fit() of an empty label is not nil")
	}

	// A renamed item refits under the same id.
	if again := l.Fit("ace", "Ace of spades", 150, 150); again == nil || cmp.Equal(again.Lines, res.Lines) {
		t.Errorf("renamed label kept the old lines: %+v", again)
	}
	l.Forget("ace")
	if len(l.blocks) != 1 {
		t.Errorf("Forget left %d blocks, want 1", len(l.blocks))
	}
}

func TestCaptureWithLabels(t *testing.T) {
	snap := Capture(newRegistry(t), WithLabeler(NewLabeler(halfEm)))
	for _, it := range snap.Items {
		if it.Text == nil {
			t.Errorf("%s has no fitted label", it.ID)
			continue
		}
		if it.Text.Height > it.H {
			t.Errorf("%s label is taller than its box", it.ID)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(Capture(newRegistry(t)))
	if err != nil {
		t.Fatal(err)
	}
	var back Snapshot
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(back.Items) != 3 || back.Items[2].ID != "joker" || !back.Items[2].Floating {
		t.Errorf("decoded items = %+v", back.Items)
	}
	if !strings.Contains(string(data), `"members": [`) {
		t.Errorf("members missing:\n%s", data)
	}
}

func TestRenderSVG(t *testing.T) {
	snap := Capture(newRegistry(t), WithLabeler(NewLabeler(fonts.Default())))

	svg := string(RenderSVG(snap, WithFont(fonts.Default())))
	for _, want := range []string{
		`viewBox="0 0 800.0 600.0"`,
		`id="container-hand"`,
		`id="item-ace"`,
		`class="item floating" id="item-joker"`,
		`&lt;King`,
		`&amp;`,
		`font-family: 'Go', sans-serif`,
		`<tspan`,
	} {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG lacks %q", want)
		}
	}
	if strings.Contains(svg, "@font-face") {
		t.Error("font embedded without WithEmbeddedFont")
	}

	bare := string(RenderSVG(snap, WithoutContainers(), WithFont(fonts.Default()), WithEmbeddedFont()))
	if strings.Contains(bare, "container-hand") {
		t.Error("WithoutContainers still drew containers")
	}
	if !strings.Contains(bare, "@font-face") || !strings.Contains(bare, "base64,") {
		t.Error("WithEmbeddedFont did not embed the face")
	}
}

func TestRenderText(t *testing.T) {
	c := RenderText(Capture(newRegistry(t)), 80, 24)

	if lines := c.Lines(); len(lines) != 24 || utf8.RuneCountInString(lines[0]) != 80 {
		t.Fatalf("canvas is %d rows of %d", len(lines), utf8.RuneCountInString(lines[0]))
	}
	// ace covers columns 0-14 and rows 18-23; the joker floats at 31-48, 8-15.
	tests := []struct {
		col, row int
		want     rune
	}{
		{0, 18, '┌'},
		{14, 23, '┘'},
		{15, 18, '┌'},
		{31, 8, '╔'},
		{48, 15, '╝'},
		{79, 23, '·'},
		{-1, 0, ' '},
	}
	for _, tt := range tests {
		if got := c.At(tt.col, tt.row); got != tt.want {
			t.Errorf("At(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
	if !strings.Contains(c.String(), "Ace") {
		t.Errorf("label missing:\n%s", c)
	}

	x, y := c.ToSurface(0, 0)
	if math.Abs(x-5) > 1e-9 || math.Abs(y-12.5) > 1e-9 {
		t.Errorf("ToSurface(0, 0) = %v, %v; want 5, 12.5", x, y)
	}
}
