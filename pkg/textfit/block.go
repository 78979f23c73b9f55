package textfit

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/matzehuels/dockgrid/pkg/errors"
	"github.com/matzehuels/dockgrid/pkg/observability"
)

const (
	// DefaultLeading is the line pitch as a multiple of the font height.
	DefaultLeading = 1.2

	// DefaultMaxHeight caps the font height at half the box height.
	DefaultMaxHeight = 0.5

	// goldenRatio is the assumed width-to-height density of wrapped text,
	// used for the first height guess.
	goldenRatio = 1.618

	searchSteps = 4
	bracketEps  = 0.5

	// Heights above smallFont skip re-measuring when the first word's
	// width scales unchanged at the requested precision.
	smallFont = 16

	fallbackSteps = 64
	fitTolerance  = 1e-9
)

// Measurer reports the pixel width of a word rendered at a font height in
// pixels. Widths must not decrease as the height grows.
type Measurer interface {
	Measure(word string, height float64) float64
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(word string, height float64) float64

// Measure calls f.
func (f MeasureFunc) Measure(word string, height float64) float64 { return f(word, height) }

// Result is the geometry of a fitted block.
type Result struct {
	// FontHeight is the chosen font height in whole pixels.
	FontHeight int `json:"font_height"`

	// Lines holds the wrapped lines in order, words joined by single spaces.
	Lines []string `json:"lines"`

	// Padding is the unused fraction of the box width on the widest line.
	// Renderers use it for justification.
	Padding float64 `json:"padding"`

	// Height is the pixel height of the wrapped block.
	Height float64 `json:"height"`
}

// Option configures a Block.
type Option func(*Block)

// WithBalance evens out a two-line result by moving words from a much
// longer first line to the second.
func WithBalance() Option {
	return func(b *Block) { b.balance = true }
}

// WithPadding recomputes Result.Padding from the final lines at the final
// font height.
func WithPadding() Option {
	return func(b *Block) { b.pad = true }
}

// WithLeading sets the line pitch as a multiple of the font height.
func WithLeading(f float64) Option {
	return func(b *Block) {
		if f > 0 {
			b.leading = f
		}
	}
}

// WithMaxHeight caps the font height. Values up to 1 are a fraction of the
// box height; larger values are pixels.
func WithMaxHeight(h float64) Option {
	return func(b *Block) {
		if h > 0 {
			b.maxHeight = h
		}
	}
}

// WithHooks sets the fit hooks.
func WithHooks(h observability.FitHooks) Option {
	return func(b *Block) {
		if h != nil {
			b.hooks = h
		}
	}
}

// Block wraps one text to the largest font that fits a box. A Block keeps
// word widths between calls and reuses its last result while the box
// changes by less than a pixel. It is not safe for concurrent use.
type Block struct {
	m         Measurer
	balance   bool
	pad       bool
	leading   float64
	maxHeight float64
	hooks     observability.FitHooks

	text    string
	words   []string
	breaks  []bool
	textLen int

	// Word widths measured at measuredAt.
	widths     []float64
	space      float64
	measuredAt float64

	// ends[i] is the index of the last word on line i.
	ends    []int
	padding float64

	fitted     bool
	fitW, fitH float64
	last       Result
}

// NewBlock returns a block for text measured with m.
func NewBlock(text string, m Measurer, opts ...Option) *Block {
	b := &Block{
		m:         m,
		leading:   DefaultLeading,
		maxHeight: DefaultMaxHeight,
		hooks:     observability.NoopFitHooks{},
	}
	for _, opt := range opts {
		opt(b)
	}
	b.setText(text)
	return b
}

// Fit wraps text into a w x h box with a new block.
func Fit(text string, m Measurer, w, h float64, opts ...Option) (Result, error) {
	return NewBlock(text, m, opts...).Fit(w, h)
}

// Text returns the block's text as given.
func (b *Block) Text() string { return b.text }

// SetText replaces the text. The next Fit recomputes from scratch.
func (b *Block) SetText(text string) {
	if text == b.text {
		return
	}
	b.setText(text)
}

func (b *Block) setText(text string) {
	b.text = text
	b.words, b.breaks = Tokenize(text)
	b.textLen = utf8.RuneCountInString(strings.Join(b.words, " "))
	b.widths = make([]float64, len(b.words))
	b.space = 0
	b.measuredAt = 0
	b.ends = b.ends[:0]
	b.fitted = false
	b.last = Result{}
}

// Fit finds the largest whole-pixel font height at which the text, wrapped
// to width w, is no taller than h and has no line wider than w.
//
// The search brackets the height between bounds derived from the sign of
// the height error, steps with a square-root correction first and secant
// updates after, and keeps the best candidate that fits. A word wider than
// the box shrinks the height proportionally before the search continues.
//
// Fit returns an ErrCodeInvalidInput error for empty text or a non-positive
// box, and ErrCodeTextOverflow when no height of at least one pixel fits.
func (b *Block) Fit(w, h float64) (Result, error) {
	if len(b.words) == 0 {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "text is empty")
	}
	if !(w > 0) || !(h > 0) {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "box %gx%g", w, h)
	}
	if b.fitted && math.Abs(w-b.fitW) < 1 && math.Abs(h-b.fitH) < 1 {
		b.hooks.OnFitReused(b.textLen)
		return b.last.clone(), nil
	}

	start := time.Now()
	res, iterations, err := b.fit(w, h)
	b.hooks.OnFit(b.textLen, res.FontHeight, len(res.Lines), iterations, time.Since(start), err)
	if err != nil {
		b.fitted = false
		return Result{}, err
	}
	b.fitted, b.fitW, b.fitH, b.last = true, w, h, res
	return res.clone(), nil
}

func (b *Block) fit(w, h float64) (Result, int, error) {
	best, iterations := b.search(w, h)
	if best < 1 {
		best = b.descend(w, h)
	}

	limit := math.Floor(b.maxFont(h))
	fh := min(math.Round(best), limit)
	for ; fh >= 1; fh-- {
		b.measure(fh, 0)
		if th := b.defineLines(w, fh); b.fits(th, h) {
			break
		}
	}
	if fh < 1 {
		return Result{}, iterations, errors.New(errors.ErrCodeTextOverflow,
			"%d characters do not fit %gx%g", b.textLen, w, h)
	}
	// The search may stop a pixel or two short of the largest fit.
	for fh+1 <= limit {
		b.measure(fh+1, 0)
		if th := b.defineLines(w, fh+1); !b.fits(th, h) {
			b.measure(fh, 0)
			b.defineLines(w, fh)
			break
		}
		fh++
	}

	if b.balance && len(b.ends) == 2 {
		b.balanceLines(w)
	}
	if b.pad {
		widest := 0.0
		for i := range b.ends {
			widest = max(widest, b.lineWidth(i))
		}
		b.padding = 1 - widest/w
	}

	return Result{
		FontHeight: int(fh),
		Lines:      b.lines(),
		Padding:    b.padding,
		Height:     fh * (b.leading*float64(len(b.ends)-1) + 1),
	}, iterations, nil
}

func (b *Block) fits(th, h float64) bool {
	return b.padding >= -fitTolerance && th <= h+fitTolerance
}

// search runs the bracketed secant search and returns the best fitting
// height found, or zero.
func (b *Block) search(w, desired float64) (best float64, iterations int) {
	hh := math.Sqrt(w * desired * goldenRatio / float64(b.textLen))
	if hh < 1 {
		return 0, 0
	}
	minh, maxh := 0.0, b.maxFont(desired)
	hh = min(hh, maxh)
	b.measure(hh, 128)
	th := b.defineLines(w, hh)

	minErr := desired
	sqrtStep := true
	var e, e0, h0 float64

	for i := searchSteps; ; i-- {
		iterations++

		// A word wider than the box: shrink by the overflow and retry.
		if b.padding < 0 {
			hh /= 1 - b.padding
			if hh < 1 {
				break
			}
			hh = min(hh, maxh)
			b.measure(hh, 1024)
			th = b.defineLines(w, hh)

			if th <= desired {
				if b.padding < 0 {
					hh--
					b.measure(hh, 1024)
					th = b.defineLines(w, hh)
				} else if hh <= smallFont {
					// The proportional shrink overshoots for small fonts.
					hh = min(hh+1, maxh)
					b.measure(hh, 1024)
					th = b.defineLines(w, hh)
					if b.padding < 0 || th > desired {
						hh--
						b.measure(hh, 1024)
						th = b.defineLines(w, hh)
					}
				}
				if b.fits(th, desired) {
					best = hh
				}
				break
			}
			maxh = hh - bracketEps
		}

		e0 = e
		e = th - desired
		if e <= 0 && b.padding >= 0 && -e < minErr {
			best, minErr = hh, -e
			if e == 0 {
				break
			}
		}
		if i <= 0 {
			break
		}

		if e < 0 {
			minh = hh + bracketEps
		}
		if e > 0 {
			maxh = hh - bracketEps
		}
		if minh >= maxh {
			break
		}

		if sqrtStep {
			h0 = hh
			hh = clamp(hh*math.Sqrt(desired/th), minh, maxh)
			sqrtStep = false
		} else {
			dh, de := hh-h0, e-e0
			h0 = hh
			if de == 0 {
				// Flat error: take whichever of the bracket midpoint and a
				// repeat of the last step lies nearer.
				mid := (minh + maxh) * 0.5
				step := hh + math.Abs(dh)
				if e > 0 {
					step = hh - math.Abs(dh)
				}
				step = clamp(step, minh, maxh)
				if math.Abs(mid-hh) < math.Abs(step-hh) {
					hh = mid
				} else {
					hh = step
				}
			} else {
				hh = clamp(hh-e*(dh/de), minh, maxh)
			}
		}
		b.measure(hh, 8192>>(i*2))
		th = b.defineLines(w, hh)
	}
	return best, iterations
}

// descend walks down from the initial guess when the search found nothing
// that fits.
func (b *Block) descend(w, desired float64) float64 {
	hh := math.Sqrt(w * desired * goldenRatio / float64(b.textLen))
	hh = math.Floor(min(hh, b.maxFont(desired)))
	for step := 0; step < fallbackSteps && hh >= 1; step++ {
		b.measure(hh, 0)
		if b.fits(b.defineLines(w, hh), desired) {
			return hh
		}
		next := math.Floor(hh * 0.9)
		if next >= hh {
			next = hh - 1
		}
		hh = next
	}
	return 0
}

// maxFont is the font height cap for a box of height h.
func (b *Block) maxFont(h float64) float64 {
	if b.maxHeight <= 1 {
		return b.maxHeight * h
	}
	return b.maxHeight
}

// measure refreshes word widths at height h. A precision of zero forces a
// full measurement; otherwise large fonts whose first word scales the same
// at that precision keep their widths and defineLines rescales.
func (b *Block) measure(h float64, precision int) {
	if precision > 0 && b.measuredAt > 0 && math.Abs(h-b.measuredAt) < 0.1 {
		return
	}
	if precision == 0 && b.measuredAt == h {
		return
	}
	sample := b.m.Measure(b.words[0], h)
	if precision > 0 && b.measuredAt > smallFont && h > smallFont {
		p := float64(precision)
		if math.Floor(p*b.widths[0]/b.measuredAt) == math.Floor(p*sample/h) {
			return
		}
	}
	b.widths[0] = sample
	for i := 1; i < len(b.words); i++ {
		b.widths[i] = b.m.Measure(b.words[i], h)
	}
	b.space = b.m.Measure(" ", h)
	b.measuredAt = h
}

// defineLines wraps the words greedily at font height h and returns the
// block height. It records line ends and the width padding; a negative
// padding means some word is wider than maxWidth.
func (b *Block) defineLines(maxWidth, h float64) float64 {
	// Widths were measured at measuredAt; scale the limit instead.
	maxWidth *= b.measuredAt / h

	b.ends = b.ends[:0]
	widest := 0.0
	n := len(b.words)
	done := false
	for base := 0; base < n; {
		width, prev := 0.0, 0.0
		used := 0
		for {
			prev = width
			if used > 0 && b.breaks[base+used-1] {
				break
			}
			if base+used >= n {
				done = true
				break
			}
			if used > 0 {
				width += b.space
			}
			width += b.widths[base+used]
			used++
			if width >= maxWidth {
				break
			}
		}
		if used > 1 && !done && width >= maxWidth {
			width = prev
			used--
		}
		b.ends = append(b.ends, base+used-1)
		base += used
		widest = max(widest, width)
	}

	b.padding = 1 - widest/maxWidth
	return h * (b.leading*float64(len(b.ends)-1) + 1)
}

// balanceLines moves words from a first line much wider than the second
// while the first stays the wider one.
func (b *Block) balanceLines(w float64) {
	for b.ends[0] >= 1 && !b.breaks[b.ends[0]] {
		if b.lineWidth(0) <= b.lineWidth(1)*1.5 {
			return
		}
		b.ends[0]--
		if b.lineWidth(0) > b.lineWidth(1)*0.8 && b.lineWidth(1) <= w {
			continue
		}
		b.ends[0]++
		return
	}
}

// lineWidth returns the width of line i at the measured height.
func (b *Block) lineWidth(i int) float64 {
	first := 0
	if i > 0 {
		first = b.ends[i-1] + 1
	}
	width := 0.0
	for j := first; j <= b.ends[i]; j++ {
		if j > first {
			width += b.space
		}
		width += b.widths[j]
	}
	return width
}

func (b *Block) lines() []string {
	out := make([]string, len(b.ends))
	first := 0
	for i, end := range b.ends {
		out[i] = strings.Join(b.words[first:end+1], " ")
		first = end + 1
	}
	return out
}

func (r Result) clone() Result {
	r.Lines = append([]string(nil), r.Lines...)
	return r
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
