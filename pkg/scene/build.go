package scene

import (
	"github.com/matzehuels/dockgrid/pkg/dock"
	"github.com/matzehuels/dockgrid/pkg/errors"
	"github.com/matzehuels/dockgrid/pkg/geom"
	"github.com/matzehuels/dockgrid/pkg/layout"
)

// defaultFloat is where floating items without a rect appear.
var defaultFloat = geom.Rect{W: 0.2, H: 0.2, Flavor: geom.Normalized}

// Build creates a registry holding the scene's containers and items and
// settles it. Options are applied after the scene's own surface, so a
// dock.WithSurface option overrides it.
func (s *Scene) Build(opts ...dock.Option) (*dock.Registry, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	reg := dock.New(append([]dock.Option{dock.WithSurface(s.Surface.Width, s.Surface.Height)}, opts...)...)

	for _, spec := range s.Containers {
		c, err := spec.container()
		if err != nil {
			return nil, err
		}
		reg.AddContainer(c)
	}

	byID := make(map[string]*layout.Item, len(s.Items))
	for _, spec := range s.Items {
		it, err := spec.item(reg.Surface())
		if err != nil {
			return nil, err
		}
		byID[it.ID] = it
		reg.Add(it)
		if spec.Container != "" {
			reg.Reassign(it, reg.Container(spec.Container))
		}
	}
	for _, spec := range s.Items {
		if spec.Parent != "" {
			byID[spec.ID].Parent = byID[spec.Parent]
		}
	}

	if err := reg.Settle(); err != nil {
		return nil, err
	}
	return reg, nil
}

func (spec ContainerSpec) container() (*layout.Container, error) {
	typ, codeMin, err := areaTypeOf(spec.Type)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "container %q", spec.Name)
	}
	minCount := spec.MinCount
	if minCount == 0 {
		minCount = codeMin
	}
	flags, err := layout.ParseFlags(spec.Flags)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "container %q", spec.Name)
	}

	opts := []layout.ContainerOption{layout.WithType(typ), layout.WithFlags(flags), layout.WithMinCount(minCount)}
	if spec.Rect != nil {
		r, err := spec.Rect.rect(geom.AreaRelative)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "container %q", spec.Name)
		}
		opts = append(opts, layout.WithRect(r))
	}
	if spec.Ratio > 0 {
		opts = append(opts, layout.WithRatio(spec.Ratio))
	}
	if spec.Margin != nil {
		opts = append(opts, layout.WithMargin(*spec.Margin))
	}
	if spec.Padding != nil {
		opts = append(opts, layout.WithPadding(*spec.Padding))
	}

	c := layout.NewContainer(spec.Name, opts...)
	if limit := spec.Capacity; limit > 0 {
		c.OnPlaceDock = func(*layout.Item) bool { return c.Len() < limit }
	}
	return c, nil
}

func (spec ItemSpec) item(s geom.Surface) (*layout.Item, error) {
	key, err := keyOf(spec.Key)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "item %q", spec.ID)
	}

	rect := defaultFloat
	if spec.Rect != nil {
		if rect, err = spec.Rect.rect(defaultItemFlavor(spec)); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "item %q", spec.ID)
		}
	}
	// Floating items must be translatable, which needs Normalized.
	if spec.Container == "" && spec.Parent == "" && rect.Flavor == geom.Absolute {
		if rect, err = rect.Normalized(s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "item %q", spec.ID)
		}
	}

	it := layout.NewItem(spec.ID, rect)
	if spec.Label != "" {
		it.Label = spec.Label
	}
	it.Key = key
	it.Selected = spec.Selected
	it.DisableSelect = spec.DisableSelect
	return it, nil
}
