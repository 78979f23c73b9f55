// Package textfit wraps text to the largest font height that fits a box.
//
// The package decides geometry only: a [Result] lists the wrapped lines, the
// whole-pixel font height and the unused width fraction a renderer uses for
// justification. Glyph widths come from a [Measurer], usually
// fonts.Measurer over a real OpenType face.
//
// # Wrapping
//
// [Tokenize] splits on whitespace and remembers hard line breaks. Lines are
// filled greedily: a word joins the line while the line stays narrower than
// the box, a hard break always ends the line, and a single word wider than
// the box gets a line of its own and marks the block as overflowing.
//
// # Height search
//
// The first guess assumes golden-ratio text density over the box area. The
// search then brackets the height by the sign of the height error and
// refines with a square-root correction followed by secant steps, for at
// most five rounds. The best fitting candidate wins, and the rounded height
// is checked once more against exact measurements.
//
// # Reuse
//
// A [Block] keeps word widths and its last [Result]. Repeated calls to
// [Block.Fit] with a box that moved by less than a pixel return the cached
// result without measuring.
//
//	block := textfit.NewBlock("Ace of spades", fonts.Default(), textfit.WithBalance())
//	res, err := block.Fit(140, 60)
package textfit
