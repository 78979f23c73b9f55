package render

import (
	"github.com/matzehuels/dockgrid/pkg/textfit"
)

// Labels use this share of an item's box, leaving a border.
const (
	labelWidthRatio  = 0.85
	labelHeightRatio = 0.6
)

// Labeler fits item labels and keeps one text block per item, so repeated
// captures of an unchanged frame do not measure again. It is not safe for
// concurrent use.
type Labeler struct {
	m      textfit.Measurer
	opts   []textfit.Option
	blocks map[string]*textfit.Block
}

// NewLabeler returns a labeler measuring with m. The options are applied
// to every block.
func NewLabeler(m textfit.Measurer, opts ...textfit.Option) *Labeler {
	return &Labeler{m: m, opts: opts, blocks: make(map[string]*textfit.Block)}
}

// Fit fits label into the label area of a w x h item box. It returns nil
// when the label is empty or does not fit.
func (l *Labeler) Fit(id, label string, w, h float64) *textfit.Result {
	b, ok := l.blocks[id]
	if !ok {
		b = textfit.NewBlock(label, l.m, l.opts...)
		l.blocks[id] = b
	}
	b.SetText(label)
	res, err := b.Fit(w*labelWidthRatio, h*labelHeightRatio)
	if err != nil {
		return nil
	}
	return &res
}

// Forget drops the block kept for id.
func (l *Labeler) Forget(id string) { delete(l.blocks, id) }
