package cache

import "strings"

// Keyer derives cache keys from the inputs of a computation.
type Keyer interface {
	// FitKey identifies a text fit result.
	FitKey(text string, opts FitKeyOpts) string

	// LayoutKey identifies a rendered scene.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string
}

// FitKeyOpts holds every option that changes a fit result.
type FitKeyOpts struct {
	Font      string  `json:"font"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	Leading   float64 `json:"leading"`
	MaxHeight float64 `json:"max_height"`
	Balance   bool    `json:"balance"`
	Padding   bool    `json:"padding"`
}

// LayoutKeyOpts holds every option that changes a rendered scene.
type LayoutKeyOpts struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Format string  `json:"format"`
	Font   string  `json:"font"`
}

// DefaultKeyer hashes inputs into prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// FitKey returns "fit:<sha256>" over the text and options.
func (DefaultKeyer) FitKey(text string, opts FitKeyOpts) string {
	return digest("fit", text, opts)
}

// LayoutKey returns "layout:<sha256>" over the scene hash and options.
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return digest("layout", sceneHash, opts)
}

// ScopedKeyer prefixes every key of an inner Keyer, so results of
// incompatible program versions never collide.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v2:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// FitKey returns the prefixed fit key.
func (k *ScopedKeyer) FitKey(text string, opts FitKeyOpts) string {
	return k.prefix + k.inner.FitKey(text, opts)
}

// LayoutKey returns the prefixed layout key.
func (k *ScopedKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(sceneHash, opts)
}

// KeyType returns the kind of a key: the last colon-separated segment
// before the hash, such as "fit" for "v2:fit:ab12...".
func KeyType(key string) string {
	parts := strings.Split(key, ":")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}
