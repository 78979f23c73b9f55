package scene

import (
	"math"

	"github.com/matzehuels/dockgrid/pkg/errors"
	"github.com/matzehuels/dockgrid/pkg/geom"
	"github.com/matzehuels/dockgrid/pkg/layout"
)

// Validate checks names, references and numeric ranges. The first problem
// found is returned as an ErrCodeInvalidScene or ErrCodeInvalidInput error.
func (s *Scene) Validate() error {
	if err := errors.ValidatePositive("surface.width", s.Surface.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive("surface.height", s.Surface.Height); err != nil {
		return err
	}

	containers := make(map[string]bool, len(s.Containers))
	for _, c := range s.Containers {
		if err := validateContainer(c); err != nil {
			return err
		}
		if containers[c.Name] {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate container %q", c.Name)
		}
		containers[c.Name] = true
	}

	parents := make(map[string]string, len(s.Items))
	for _, it := range s.Items {
		if err := errors.ValidateName("item", it.ID); err != nil {
			return err
		}
		if _, ok := parents[it.ID]; ok {
			return errors.New(errors.ErrCodeInvalidScene, "duplicate item %q", it.ID)
		}
		parents[it.ID] = it.Parent

		if it.Container != "" && !containers[it.Container] {
			return errors.New(errors.ErrCodeInvalidScene, "item %q: unknown container %q", it.ID, it.Container)
		}
		if it.Container != "" && it.Parent != "" {
			return errors.New(errors.ErrCodeInvalidScene, "item %q: set container or parent, not both", it.ID)
		}
		if it.Parent != "" && it.Rect == nil {
			return errors.New(errors.ErrCodeInvalidScene, "item %q: nested items need a rect", it.ID)
		}
		if _, err := keyOf(it.Key); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "item %q", it.ID)
		}
		if it.Rect != nil {
			if _, err := it.Rect.rect(defaultItemFlavor(it)); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidScene, err, "item %q", it.ID)
			}
		}
	}

	for id, parent := range parents {
		if parent == "" {
			continue
		}
		if _, ok := parents[parent]; !ok {
			return errors.New(errors.ErrCodeInvalidScene, "item %q: unknown parent %q", id, parent)
		}
		// Walk up; a chain longer than the item count is a cycle.
		seen := 0
		for p := parent; p != ""; p = parents[p] {
			if seen++; seen > len(parents) {
				return errors.New(errors.ErrCodeInvalidScene, "item %q: parent cycle", id)
			}
		}
	}
	return nil
}

func validateContainer(c ContainerSpec) error {
	if err := errors.ValidateName("container", c.Name); err != nil {
		return err
	}
	if c.Rect != nil {
		if _, err := c.Rect.rect(geom.AreaRelative); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidScene, err, "container %q", c.Name)
		}
	}
	if _, _, err := areaTypeOf(c.Type); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "container %q", c.Name)
	}
	if _, err := layout.ParseFlags(c.Flags); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScene, err, "container %q", c.Name)
	}
	if c.Ratio != 0 {
		if err := errors.ValidatePositive(c.Name+".ratio", c.Ratio); err != nil {
			return err
		}
	}
	if c.Margin != nil {
		if err := errors.ValidateFraction(c.Name+".margin", *c.Margin, 1); err != nil {
			return err
		}
	}
	if c.Padding != nil {
		if err := errors.ValidateFraction(c.Name+".padding", *c.Padding, 1); err != nil {
			return err
		}
	}
	if c.MinCount < 0 || c.Capacity < 0 {
		return errors.New(errors.ErrCodeInvalidScene, "container %q: negative count", c.Name)
	}
	return nil
}

func defaultItemFlavor(it ItemSpec) geom.Flavor {
	if it.Parent != "" {
		return geom.DockRelative
	}
	return geom.Normalized
}

func (r RectSpec) rect(def geom.Flavor) (geom.Rect, error) {
	flavor := def
	if r.Flavor != "" {
		f, err := geom.ParseFlavor(r.Flavor)
		if err != nil {
			return geom.Rect{}, err
		}
		flavor = f
	}
	return geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H, Flavor: flavor}, nil
}

// areaTypeOf converts a decoded container type. A numeric code may carry a
// minimum count.
func areaTypeOf(v any) (typ layout.AreaType, minCount int, err error) {
	switch t := v.(type) {
	case nil:
		return layout.MinimizeWaste, 0, nil
	case string:
		typ, err = layout.ParseAreaType(t)
		return typ, 0, err
	case int:
		typ, minCount = layout.AreaTypeFromCode(t)
		return typ, minCount, nil
	case int64:
		typ, minCount = layout.AreaTypeFromCode(int(t))
		return typ, minCount, nil
	case uint64:
		typ, minCount = layout.AreaTypeFromCode(int(t))
		return typ, minCount, nil
	case float64:
		if t == math.Trunc(t) {
			typ, minCount = layout.AreaTypeFromCode(int(t))
			return typ, minCount, nil
		}
	}
	return 0, 0, errors.New(errors.ErrCodeInvalidInput, "type must be a name or an integer code, got %v", v)
}

// keyOf converts a decoded key: integers and floats become number keys,
// strings become string keys and a missing key stays zero.
func keyOf(v any) (layout.Key, error) {
	switch k := v.(type) {
	case nil:
		return layout.Key{}, nil
	case int:
		return layout.NumberKey(float64(k)), nil
	case int64:
		return layout.NumberKey(float64(k)), nil
	case uint64:
		return layout.NumberKey(float64(k)), nil
	case float64:
		return layout.NumberKey(k), nil
	case string:
		return layout.StringKey(k), nil
	}
	return layout.Key{}, errors.New(errors.ErrCodeInvalidInput, "key must be a number or a string, got %T", v)
}
