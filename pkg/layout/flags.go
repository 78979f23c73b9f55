package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/dockgrid/pkg/errors"
)

// AreaType selects how a container sizes its cells.
type AreaType int

const (
	// Fill grows the grid so every cell holds an item. The first row may be
	// partial and its cells stretch across the full width.
	Fill AreaType = -1
	// MinimizeWaste stretches the packed grid over the whole container.
	MinimizeWaste AreaType = 0
	// Uniform keeps the cell size dictated by ratio and padding.
	Uniform AreaType = 1
	// UniformMin is Uniform with the item count padded up to the
	// container's MinCount before packing, so cells do not grow when only
	// a few items are present.
	UniformMin AreaType = 2
)

// AreaTypeFromCode decodes the numeric area type encoding: negative is Fill,
// 0 MinimizeWaste, 1 Uniform and anything above is UniformMin with the code
// as the minimum count.
func AreaTypeFromCode(code int) (AreaType, int) {
	switch {
	case code < 0:
		return Fill, 0
	case code == 0:
		return MinimizeWaste, 0
	case code == 1:
		return Uniform, 0
	}
	return UniformMin, code
}

// ParseAreaType parses the names used in scene files.
func ParseAreaType(s string) (AreaType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fill":
		return Fill, nil
	case "", "minimize-waste", "waste":
		return MinimizeWaste, nil
	case "uniform":
		return Uniform, nil
	case "uniform-min":
		return UniformMin, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown area type %q", s)
}

func (t AreaType) String() string {
	switch t {
	case Fill:
		return "fill"
	case MinimizeWaste:
		return "minimize-waste"
	case Uniform:
		return "uniform"
	case UniformMin:
		return "uniform-min"
	}
	return fmt.Sprintf("area-type(%d)", int(t))
}

// Flags are the per-container placement and docking switches.
type Flags struct {
	FlipH          bool // mirror order within a row
	FlipV          bool // mirror order within a column
	CenterH        bool
	CenterV        bool
	NoMarginLeft   bool
	NoMarginRight  bool
	NoMarginTop    bool
	NoMarginBottom bool
	DockInPlace    bool // members ordered by their position along the long axis
	DockStack      bool
	DockAux1       bool
	DockAux2       bool
}

// Bit values of the packed flag word.
const (
	BitFlipH          uint32 = 0x1
	BitFlipV          uint32 = 0x2
	BitCenterH        uint32 = 0x4
	BitCenterV        uint32 = 0x8
	BitNoMarginLeft   uint32 = 0x10
	BitNoMarginRight  uint32 = 0x20
	BitNoMarginTop    uint32 = 0x40
	BitNoMarginBottom uint32 = 0x80
	BitDockInPlace    uint32 = 0x100
	BitDockStack      uint32 = 0x200
	BitDockAux1       uint32 = 0x400
	BitDockAux2       uint32 = 0x800

	dockMask uint32 = 0xF00
)

// flagTable ties each field to its bit and its scene-file name.
var flagTable = []struct {
	bit  uint32
	name string
	get  func(*Flags) *bool
}{
	{BitFlipH, "flip-h", func(f *Flags) *bool { return &f.FlipH }},
	{BitFlipV, "flip-v", func(f *Flags) *bool { return &f.FlipV }},
	{BitCenterH, "center-h", func(f *Flags) *bool { return &f.CenterH }},
	{BitCenterV, "center-v", func(f *Flags) *bool { return &f.CenterV }},
	{BitNoMarginLeft, "no-margin-left", func(f *Flags) *bool { return &f.NoMarginLeft }},
	{BitNoMarginRight, "no-margin-right", func(f *Flags) *bool { return &f.NoMarginRight }},
	{BitNoMarginTop, "no-margin-top", func(f *Flags) *bool { return &f.NoMarginTop }},
	{BitNoMarginBottom, "no-margin-bottom", func(f *Flags) *bool { return &f.NoMarginBottom }},
	{BitDockInPlace, "dock-in-place", func(f *Flags) *bool { return &f.DockInPlace }},
	{BitDockStack, "dock-stack", func(f *Flags) *bool { return &f.DockStack }},
	{BitDockAux1, "dock-aux1", func(f *Flags) *bool { return &f.DockAux1 }},
	{BitDockAux2, "dock-aux2", func(f *Flags) *bool { return &f.DockAux2 }},
}

// FlagsFromBits unpacks a flag word. Unknown bits are ignored.
func FlagsFromBits(bits uint32) Flags {
	var f Flags
	for _, e := range flagTable {
		*e.get(&f) = bits&e.bit != 0
	}
	return f
}

// Bits packs f into the flag word.
func (f Flags) Bits() uint32 {
	var bits uint32
	for _, e := range flagTable {
		if *e.get(&f) {
			bits |= e.bit
		}
	}
	return bits
}

// Dockable reports whether floating items may dock into the container.
func (f Flags) Dockable() bool { return f.Bits()&dockMask != 0 }

// ParseFlags builds Flags from scene-file names such as "flip-h" or
// "dock-in-place". "no-margin" sets all four margin suppressions.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "no-margin" {
			f.NoMarginLeft, f.NoMarginRight, f.NoMarginTop, f.NoMarginBottom = true, true, true, true
			continue
		}
		found := false
		for _, e := range flagTable {
			if e.name == name {
				*e.get(&f) = true
				found = true
				break
			}
		}
		if !found {
			return Flags{}, errors.New(errors.ErrCodeInvalidInput, "unknown container flag %q", raw)
		}
	}
	return f, nil
}

// Names lists the set flags by their scene-file names, in bit order.
func (f Flags) Names() []string {
	var names []string
	for _, e := range flagTable {
		if *e.get(&f) {
			names = append(names, e.name)
		}
	}
	return names
}
