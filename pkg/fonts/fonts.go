// Package fonts measures text with real OpenType faces.
//
// The Go font family is compiled into the binary, so measurements are the
// same on every machine and SVG output can embed the exact face it was
// measured with.
package fonts

import (
	"encoding/base64"
	"slices"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/dockgrid/pkg/errors"
)

// DefaultName is the face used when no font is requested.
const DefaultName = "regular"

// referenceSize is the em size in pixels at which advances are measured.
// Widths at other heights scale linearly since hinting is off.
const referenceSize = 64

// maxCachedWords bounds the per-face width cache.
const maxCachedWords = 4096

// Face describes one compiled-in font.
type Face struct {
	Name   string
	Family string // CSS font-family
	Weight string // CSS font-weight
	ttf    []byte
}

var faces = []Face{
	{Name: "regular", Family: "Go", Weight: "normal", ttf: goregular.TTF},
	{Name: "bold", Family: "Go", Weight: "bold", ttf: gobold.TTF},
	{Name: "mono", Family: "Go Mono", Weight: "normal", ttf: gomono.TTF},
}

// Names lists the available faces.
func Names() []string {
	names := make([]string, len(faces))
	for i, f := range faces {
		names[i] = f.Name
	}
	return names
}

// Measurer reports word widths for one face. It is safe for concurrent use.
type Measurer struct {
	Face

	mu     sync.Mutex
	face   font.Face
	widths map[string]float64

	b64Once sync.Once
	b64     string
}

var (
	loadedMu sync.Mutex
	loaded   = map[string]*Measurer{}
)

// Lookup returns the shared measurer for a named face. An empty name
// selects DefaultName.
func Lookup(name string) (*Measurer, error) {
	if name == "" {
		name = DefaultName
	}
	i := slices.IndexFunc(faces, func(f Face) bool { return f.Name == name })
	if i < 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "font %q (available: %v)", name, Names())
	}

	loadedMu.Lock()
	defer loadedMu.Unlock()
	if m, ok := loaded[name]; ok {
		return m, nil
	}
	m, err := newMeasurer(faces[i])
	if err != nil {
		return nil, err
	}
	loaded[name] = m
	return m, nil
}

// Default returns the measurer for DefaultName.
func Default() *Measurer {
	m, err := Lookup(DefaultName)
	if err != nil {
		// The compiled-in face always parses.
		panic(err)
	}
	return m
}

func newMeasurer(f Face) (*Measurer, error) {
	parsed, err := opentype.Parse(f.ttf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse font %s", f.Name)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    referenceSize,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open font %s", f.Name)
	}
	return &Measurer{Face: f, face: face, widths: make(map[string]float64)}, nil
}

// Measure returns the advance width of word in pixels at a font height of
// height pixels.
func (m *Measurer) Measure(word string, height float64) float64 {
	if word == "" || height <= 0 {
		return 0
	}
	m.mu.Lock()
	w, ok := m.widths[word]
	if !ok {
		w = float64(font.MeasureString(m.face, word)) / 64
		if len(m.widths) >= maxCachedWords {
			clear(m.widths)
		}
		m.widths[word] = w
	}
	m.mu.Unlock()
	return w * height / referenceSize
}

// TTF returns the raw font data.
func (m *Measurer) TTF() []byte { return m.ttf }

// TTFBase64 returns the font data base64-encoded for an SVG @font-face
// rule. The encoding is computed once.
func (m *Measurer) TTFBase64() string {
	m.b64Once.Do(func() {
		m.b64 = base64.StdEncoding.EncodeToString(m.ttf)
	})
	return m.b64
}
