// Package scene reads declarative scene files and builds docking registries
// from them.
//
// A scene names a surface size, a list of containers and a list of items.
// Items either sit in a container or float at a given rectangle; an item
// with a parent is positioned inside that parent. Files are TOML or YAML:
//
//	[surface]
//	width = 800
//	height = 600
//
//	[[containers]]
//	name = "hand"
//	rect = { x = 0, y = 0.75, w = 1, h = 0.25 }
//	type = "uniform"
//	flags = ["center-h", "dock-in-place"]
//
//	[[items]]
//	id = "ace"
//	container = "hand"
//	key = 1
package scene

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dockgrid/pkg/errors"
)

// Format is a scene file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown scene extension %q (want .toml, .yaml or .yml)", filepath.Ext(path))
}

// Scene is the decoded form of a scene file.
type Scene struct {
	Surface    Surface         `toml:"surface" yaml:"surface" json:"surface"`
	Containers []ContainerSpec `toml:"containers" yaml:"containers" json:"containers"`
	Items      []ItemSpec      `toml:"items" yaml:"items" json:"items"`
}

// Surface is the initial surface size in pixels.
type Surface struct {
	Width  float64 `toml:"width" yaml:"width" json:"width"`
	Height float64 `toml:"height" yaml:"height" json:"height"`
}

// RectSpec is a rectangle with a named flavor. An empty flavor means
// area-relative for containers, dock-relative for nested items and
// normalized for floating items.
type RectSpec struct {
	X      float64 `toml:"x" yaml:"x" json:"x"`
	Y      float64 `toml:"y" yaml:"y" json:"y"`
	W      float64 `toml:"w" yaml:"w" json:"w"`
	H      float64 `toml:"h" yaml:"h" json:"h"`
	Flavor string  `toml:"flavor" yaml:"flavor" json:"flavor,omitempty"`
}

// ContainerSpec describes one container. Type is an area type name or its
// numeric code: negative for fill, 0 minimize-waste, 1 uniform and any
// larger number uniform-min with that minimum count.
type ContainerSpec struct {
	Name     string    `toml:"name" yaml:"name" json:"name"`
	Rect     *RectSpec `toml:"rect" yaml:"rect" json:"rect,omitempty"`
	Type     any       `toml:"type" yaml:"type" json:"type,omitempty"`
	Ratio    float64   `toml:"ratio" yaml:"ratio" json:"ratio,omitempty"`
	MinCount int       `toml:"min_count" yaml:"min_count" json:"min_count,omitempty"`
	Margin   *float64  `toml:"margin" yaml:"margin" json:"margin,omitempty"`
	Padding  *float64  `toml:"padding" yaml:"padding" json:"padding,omitempty"`
	Flags    []string  `toml:"flags" yaml:"flags" json:"flags,omitempty"`

	// Capacity declines docks once the container holds this many items.
	// Zero means unlimited.
	Capacity int `toml:"capacity" yaml:"capacity" json:"capacity,omitempty"`
}

// ItemSpec describes one item.
type ItemSpec struct {
	ID            string    `toml:"id" yaml:"id" json:"id"`
	Label         string    `toml:"label" yaml:"label" json:"label,omitempty"`
	Container     string    `toml:"container" yaml:"container" json:"container,omitempty"`
	Parent        string    `toml:"parent" yaml:"parent" json:"parent,omitempty"`
	Key           any       `toml:"key" yaml:"key" json:"key,omitempty"`
	Rect          *RectSpec `toml:"rect" yaml:"rect" json:"rect,omitempty"`
	Selected      bool      `toml:"selected" yaml:"selected" json:"selected,omitempty"`
	DisableSelect bool      `toml:"disable_select" yaml:"disable_select" json:"disable_select,omitempty"`
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read scene %s", path)
	}
	s, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "scene %s", path)
	}
	return s, nil
}

// Decode parses a scene, fills defaults and validates it.
func Decode(r io.Reader, format Format) (*Scene, error) {
	var s Scene
	switch format {
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene format %q", format)
	}

	s.fillDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// fillDefaults gives anonymous items a random id and every item a label.
func (s *Scene) fillDefaults() {
	for i := range s.Items {
		it := &s.Items[i]
		if it.ID == "" {
			it.ID = uuid.NewString()
		}
		if it.Label == "" {
			it.Label = it.ID
		}
	}
}
