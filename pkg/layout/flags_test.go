package layout

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/dockgrid/pkg/errors"
)

func TestFlagsBits(t *testing.T) {
	tests := []struct {
		name  string
		flags Flags
		bits  uint32
	}{
		{"none", Flags{}, 0},
		{"flip both", Flags{FlipH: true, FlipV: true}, 0x3},
		{"center both", Flags{CenterH: true, CenterV: true}, 0xC},
		{"no horizontal margin", Flags{NoMarginLeft: true, NoMarginRight: true}, 0x30},
		{"no vertical margin", Flags{NoMarginTop: true, NoMarginBottom: true}, 0xC0},
		{"in place", Flags{DockInPlace: true}, 0x100},
		{"stack", Flags{DockStack: true}, 0x200},
		{"aux", Flags{DockAux1: true, DockAux2: true}, 0xC00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.flags.Bits(); got != tt.bits {
				t.Errorf("Bits() = %#x, want %#x", got, tt.bits)
			}
			if got := FlagsFromBits(tt.bits); got != tt.flags {
				t.Errorf("FlagsFromBits(%#x) = %+v, want %+v", tt.bits, got, tt.flags)
			}
		})
	}
}

func TestFlagsRoundTripAllBits(t *testing.T) {
	for bits := uint32(0); bits <= 0xFFF; bits++ {
		if got := FlagsFromBits(bits).Bits(); got != bits {
			t.Fatalf("FlagsFromBits(%#x).Bits() = %#x", bits, got)
		}
	}
	if got := FlagsFromBits(0xF000).Bits(); got != 0 {
		t.Errorf("unknown bits survived: %#x", got)
	}
}

func TestFlagsDockable(t *testing.T) {
	if (Flags{FlipH: true, CenterV: true}).Dockable() {
		t.Error("placement flags alone must not make a container dockable")
	}
	for _, f := range []Flags{{DockInPlace: true}, {DockStack: true}, {DockAux1: true}, {DockAux2: true}} {
		if !f.Dockable() {
			t.Errorf("%+v should be dockable", f)
		}
	}
}

func TestParseFlags(t *testing.T) {
	f, err := ParseFlags([]string{"flip-h", " Center-V ", "dock-in-place", "no-margin"})
	if err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	want := Flags{
		FlipH: true, CenterV: true, DockInPlace: true,
		NoMarginLeft: true, NoMarginRight: true, NoMarginTop: true, NoMarginBottom: true,
	}
	if diff := cmp.Diff(want, f); diff != "" {
		t.Errorf("ParseFlags() mismatch (-want +got):\n%s", diff)
	}

	names := f.Names()
	back, err := ParseFlags(names)
	if err != nil || back != f {
		t.Errorf("ParseFlags(Names()) = %+v, %v; want %+v", back, err, f)
	}

	if _, err := ParseFlags([]string{"sideways"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ParseFlags(unknown) error = %v, want invalid input", err)
	}
}

func TestAreaTypeFromCode(t *testing.T) {
	tests := []struct {
		code int
		typ  AreaType
		min  int
	}{
		{-1, Fill, 0},
		{-7, Fill, 0},
		{0, MinimizeWaste, 0},
		{1, Uniform, 0},
		{2, UniformMin, 2},
		{12, UniformMin, 12},
	}
	for _, tt := range tests {
		typ, min := AreaTypeFromCode(tt.code)
		if typ != tt.typ || min != tt.min {
			t.Errorf("AreaTypeFromCode(%d) = %v, %d; want %v, %d", tt.code, typ, min, tt.typ, tt.min)
		}
	}
}

func TestParseAreaType(t *testing.T) {
	for _, typ := range []AreaType{Fill, MinimizeWaste, Uniform, UniformMin} {
		got, err := ParseAreaType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseAreaType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if _, err := ParseAreaType("spiral"); err == nil {
		t.Error("ParseAreaType(spiral) should fail")
	}
}
