package layout

import "math"

// Grid is a computed placement. Pack reports cell sizes in the units it was
// given; Redistribute reports them as fractions of the container and adds
// the padding fractions of a cell.
type Grid struct {
	Cols, Rows   int
	CellW, CellH float64
	PadW, PadH   float64
}

// Cells returns Cols*Rows.
func (g Grid) Cells() int { return g.Cols * g.Rows }

const eps = 1e-9

// floorEps and ceilEps absorb rounding noise in exact divisions such as
// 3*(800/600)*0.75.
func floorEps(v float64) int { return int(math.Floor(v + eps)) }
func ceilEps(v float64) int  { return int(math.Ceil(v - eps)) }

// Pack finds the grid of cells with aspect cellRatio (width/height) that
// holds n cells inside w×h with the largest cells. Trailing rows and columns
// that would stay empty are dropped afterwards.
//
// A degenerate box or count yields a 1×1 grid with zero-sized cells.
func Pack(w, h, cellRatio float64, n int) Grid {
	if cellRatio <= 0 {
		cellRatio = 1
	}
	cols, rows, cell := squareDist(w/cellRatio, h, n)
	return Grid{Cols: cols, Rows: rows, CellW: cell * cellRatio, CellH: cell}
}

// squareDist packs n square cells into w×h.
//
// Either the height or the width limits the best square. For the height
// case, try the fewest rows r whose cell h/r lets floor(w/(h/r)) columns
// hold n; the width case is symmetric. The larger cell wins.
func squareDist(w, h float64, n int) (cols, rows int, cell float64) {
	if w <= 0 || h <= 0 || n <= 0 {
		return 1, 1, 0
	}
	hw, wh := h/w, w/h

	hRows, hCols := fitAxis(hw, wh, n)
	lh := h / float64(hRows)

	wCols, wRows := fitAxis(wh, hw, n)
	lw := w / float64(wCols)

	cols, rows, cell = wCols, wRows, lw
	if lw < lh {
		cols, rows, cell = hCols, hRows, lh
	}

	cols = min(cols, packCeilDiv(n, rows))
	rows = min(rows, packCeilDiv(n, cols))
	return cols, rows, cell
}

func packCeilDiv(a, b int) int { return (a + b - 1) / b }

// fitAxis returns the smallest count a along one axis, and the matching
// count b across, such that a*b >= n when the cell is 1/a of that axis.
// along is the ratio of that axis to the other, across its inverse.
func fitAxis(along, across float64, n int) (a, b int) {
	a = ceilEps(math.Sqrt(float64(n) * along))
	a = max(a, 1)
	b = floorEps(float64(a) * across)
	for a*b < n {
		if b < 1 {
			b = 1
			a = max(ceilEps(along), 1)
			if a*b >= n {
				break
			}
			a++
		} else {
			a++
		}
		b = max(floorEps(float64(a)*across), 1)
	}
	return a, b
}
