package textfit

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/dockgrid/pkg/errors"
)

// halfEm renders every rune, spaces included, half as wide as the font is
// tall.
var halfEm = MeasureFunc(func(word string, h float64) float64 {
	return 0.5 * h * float64(utf8.RuneCountInString(word))
})

type countingMeasurer struct {
	calls int
}

func (c *countingMeasurer) Measure(word string, h float64) float64 {
	c.calls++
	return halfEm(word, h)
}

func TestFit(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		w, h      float64
		opts      []Option
		wantFont  int
		wantLines []string
	}{
		{
			name:      "two lines",
			text:      "The quick brown fox",
			w:         300,
			h:         100,
			wantFont:  45,
			wantLines: []string{"The quick", "brown fox"},
		},
		{
			name:      "max height fraction",
			text:      "The quick brown fox",
			w:         300,
			h:         100,
			opts:      []Option{WithMaxHeight(0.2)},
			wantFont:  20,
			wantLines: []string{"The quick brown fox"},
		},
		{
			name:      "leading",
			text:      "The quick brown fox",
			w:         300,
			h:         100,
			opts:      []Option{WithLeading(1.5)},
			wantFont:  40,
			wantLines: []string{"The quick", "brown fox"},
		},
		{
			name:      "hard break",
			text:      "one\ntwo",
			w:         200,
			h:         100,
			opts:      []Option{WithMaxHeight(10)},
			wantFont:  10,
			wantLines: []string{"one", "two"},
		},
		{
			name:      "unbalanced",
			text:      "aaaa bbbb cccc dd",
			w:         80,
			h:         100,
			opts:      []Option{WithMaxHeight(10)},
			wantFont:  10,
			wantLines: []string{"aaaa bbbb cccc", "dd"},
		},
		{
			name:      "balanced",
			text:      "aaaa bbbb cccc dd",
			w:         80,
			h:         100,
			opts:      []Option{WithMaxHeight(10), WithBalance()},
			wantFont:  10,
			wantLines: []string{"aaaa bbbb", "cccc dd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Fit(tt.text, halfEm, tt.w, tt.h, tt.opts...)
			if err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			if res.FontHeight != tt.wantFont {
				t.Errorf("FontHeight = %d, want %d", res.FontHeight, tt.wantFont)
			}
			if diff := cmp.Diff(tt.wantLines, res.Lines); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
			if res.Height > tt.h {
				t.Errorf("Height = %v exceeds box %v", res.Height, tt.h)
			}
		})
	}
}

func TestFitTakesLargestHeight(t *testing.T) {
	texts := []string{
		"mammoth mammoth",
		"The quick brown fox jumps over the lazy dog",
		"a bb ccc dddd eeeee ffffff ggggggg",
		"Queen of hearts\nplayed face down",
	}
	boxes := [][2]float64{{178.6, 169.6}, {300, 100}, {123.4, 77.7}, {61, 250}, {999, 37.5}}

	for _, text := range texts {
		for _, box := range boxes {
			res, err := Fit(text, halfEm, box[0], box[1])
			if err != nil {
				t.Errorf("Fit(%q, %v) error = %v", text, box, err)
				continue
			}
			next := float64(res.FontHeight + 1)
			if next > float64(int(DefaultMaxHeight*box[1])) {
				continue
			}
			b := NewBlock(text, halfEm)
			b.measure(next, 0)
			if th := b.defineLines(box[0], next); b.fits(th, box[1]) {
				t.Errorf("Fit(%q, %v) font=%d, but %vpx also fits", text, box, res.FontHeight, next)
			}
		}
	}
}

func TestFitStaysInsideBox(t *testing.T) {
	texts := []string{
		"The quick brown fox jumps over the lazy dog",
		"Ace",
		"Queen of hearts\nplayed face down",
		"a bb ccc dddd eeeee ffffff ggggggg",
	}
	boxes := [][2]float64{{300, 100}, {120, 200}, {640, 48}, {90, 90}, {1000, 1000}}

	for _, text := range texts {
		words, _ := Tokenize(text)
		for _, box := range boxes {
			res, err := Fit(text, halfEm, box[0], box[1], WithBalance())
			if err != nil {
				t.Errorf("Fit(%q, %v) error = %v", text, box, err)
				continue
			}
			if res.FontHeight < 1 || res.Height > box[1] {
				t.Errorf("Fit(%q, %v) font=%d height=%v", text, box, res.FontHeight, res.Height)
			}
			for _, line := range res.Lines {
				if w := halfEm(line, float64(res.FontHeight)); w > box[0] {
					t.Errorf("Fit(%q, %v) line %q is %vpx wide", text, box, line, w)
				}
			}
			if got := strings.Fields(strings.Join(res.Lines, " ")); !cmp.Equal(got, words) {
				t.Errorf("Fit(%q, %v) lost words: %q", text, box, res.Lines)
			}
		}
	}
}

func TestFitPadding(t *testing.T) {
	res, err := Fit("aaaa bbbb cccc dd", halfEm, 80, 100, WithMaxHeight(10))
	if err != nil {
		t.Fatal(err)
	}
	if res.Padding != 0.125 {
		t.Errorf("Padding = %v, want 0.125", res.Padding)
	}

	res, err = Fit("aaaa bbbb cccc dd", halfEm, 80, 100, WithMaxHeight(10), WithBalance(), WithPadding())
	if err != nil {
		t.Fatal(err)
	}
	if res.Padding != 0.4375 {
		t.Errorf("balanced Padding = %v, want 0.4375", res.Padding)
	}
}

func TestFitErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		w, h float64
		want errors.Code
	}{
		{"empty", "", 300, 100, errors.ErrCodeInvalidInput},
		{"blank", " \n ", 300, 100, errors.ErrCodeInvalidInput},
		{"zero width", "ace", 0, 100, errors.ErrCodeInvalidInput},
		{"negative height", "ace", 100, -1, errors.ErrCodeInvalidInput},
		{"word wider than box", "supercalifragilistic", 5, 100, errors.ErrCodeTextOverflow},
		{"box under a pixel", "The quick brown fox", 300, 0.5, errors.ErrCodeTextOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.text, halfEm, tt.w, tt.h)
			if !errors.Is(err, tt.want) {
				t.Errorf("Fit() error = %v, want code %v", err, tt.want)
			}
		})
	}
}

type recordingFitHooks struct {
	fits, reused int
	lastFont     int
}

func (r *recordingFitHooks) OnFit(_, fontHeight, _, _ int, _ time.Duration, _ error) {
	r.fits++
	r.lastFont = fontHeight
}

func (r *recordingFitHooks) OnFitReused(int) { r.reused++ }

func TestBlockReusesResult(t *testing.T) {
	m := &countingMeasurer{}
	hooks := &recordingFitHooks{}
	b := NewBlock("The quick brown fox", m, WithHooks(hooks))

	first, err := b.Fit(300, 100)
	if err != nil {
		t.Fatal(err)
	}
	calls := m.calls
	if calls == 0 {
		t.Fatal("Fit() never measured")
	}

	again, err := b.Fit(300.6, 100.9)
	if err != nil {
		t.Fatal(err)
	}
	if m.calls != calls {
		t.Errorf("sub-pixel change measured %d more words", m.calls-calls)
	}
	if diff := cmp.Diff(first, again); diff != "" {
		t.Errorf("reused result differs (-first +again):\n%s", diff)
	}

	// Callers may not corrupt the cache through the returned slice.
	again.Lines[0] = "mangled"
	third, _ := b.Fit(300, 100)
	if third.Lines[0] != "The quick" {
		t.Errorf("cached lines changed to %q", third.Lines)
	}

	if _, err := b.Fit(301, 100); err != nil {
		t.Fatal(err)
	}
	if m.calls == calls {
		t.Error("a one-pixel change reused the cached result")
	}
	if hooks.fits != 2 || hooks.reused != 2 || hooks.lastFont != 45 {
		t.Errorf("hooks fits=%d reused=%d font=%d, want 2, 2, 45", hooks.fits, hooks.reused, hooks.lastFont)
	}
}

func TestBlockSetText(t *testing.T) {
	b := NewBlock("Ace", halfEm)
	if _, err := b.Fit(300, 100); err != nil {
		t.Fatal(err)
	}

	b.SetText("The quick brown fox")
	if b.Text() != "The quick brown fox" {
		t.Errorf("Text() = %q", b.Text())
	}
	res, err := b.Fit(300, 100)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"The quick", "brown fox"}, res.Lines); diff != "" {
		t.Errorf("lines after SetText (-want +got):\n%s", diff)
	}

	b.SetText("")
	if _, err := b.Fit(300, 100); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Fit() after clearing text error = %v", err)
	}
}
