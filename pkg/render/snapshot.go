package render

import (
	"github.com/matzehuels/dockgrid/pkg/dock"
	"github.com/matzehuels/dockgrid/pkg/geom"
	"github.com/matzehuels/dockgrid/pkg/textfit"
)

// Snapshot is a resolved frame of a registry in surface pixels. Rectangles
// are in top-left form so exporters need no further math.
type Snapshot struct {
	Width      float64        `json:"width"`
	Height     float64        `json:"height"`
	Containers []ContainerBox `json:"containers"`
	Items      []ItemBox      `json:"items"`
}

// Box is an axis-aligned rectangle with its top-left corner at (X, Y).
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// ContainerBox is a resolved container.
type ContainerBox struct {
	Box
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Flags   []string `json:"flags,omitempty"`
	Members []string `json:"members"`
}

// ItemBox is a resolved item in draw order.
type ItemBox struct {
	Box
	ID        string          `json:"id"`
	Label     string          `json:"label"`
	Container string          `json:"container,omitempty"`
	Parent    string          `json:"parent,omitempty"`
	Key       string          `json:"key,omitempty"`
	Floating  bool            `json:"floating,omitempty"`
	Selected  bool            `json:"selected,omitempty"`
	Text      *textfit.Result `json:"text,omitempty"`
}

// CaptureOption configures Capture.
type CaptureOption func(*capture)

type capture struct {
	labeler *Labeler
}

// WithLabeler fits every item label into its box.
func WithLabeler(l *Labeler) CaptureOption {
	return func(c *capture) { c.labeler = l }
}

// Capture resolves every container and item of reg. Items whose rectangle
// cannot be resolved are left out.
func Capture(reg *dock.Registry, opts ...CaptureOption) Snapshot {
	var c capture
	for _, opt := range opts {
		opt(&c)
	}

	s := reg.Surface()
	snap := Snapshot{Width: s.W, Height: s.H}

	for _, ct := range reg.Containers() {
		r, err := reg.ContainerRect(ct)
		if err != nil {
			continue
		}
		box := ContainerBox{
			Box:     topLeft(r),
			Name:    ct.Name,
			Type:    ct.Type.String(),
			Flags:   ct.Flags.Names(),
			Members: []string{},
		}
		for _, it := range reg.Members(ct) {
			box.Members = append(box.Members, it.ID)
		}
		snap.Containers = append(snap.Containers, box)
	}

	for _, it := range reg.Items() {
		r, err := reg.Resolve(it)
		if err != nil {
			continue
		}
		box := ItemBox{
			Box:      topLeft(r),
			ID:       it.ID,
			Label:    it.Label,
			Key:      it.Key.String(),
			Floating: it.Floating() && it.Parent == nil,
			Selected: it.Selected,
		}
		if ct := it.Container(); ct != nil {
			box.Container = ct.Name
		}
		if it.Parent != nil {
			box.Parent = it.Parent.ID
		}
		if c.labeler != nil {
			box.Text = c.labeler.Fit(it.ID, it.Label, box.W, box.H)
		}
		snap.Items = append(snap.Items, box)
	}
	return snap
}

// topLeft converts a center-form pixel rect, whose extents may be negative
// after a flip, to a Box.
func topLeft(r geom.Rect) Box {
	w, h := abs(r.W), abs(r.H)
	return Box{X: r.X - w*0.5, Y: r.Y - h*0.5, W: w, H: h}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
