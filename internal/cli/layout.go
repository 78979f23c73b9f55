package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockgrid/pkg/cache"
	"github.com/matzehuels/dockgrid/pkg/dock"
	"github.com/matzehuels/dockgrid/pkg/errors"
	"github.com/matzehuels/dockgrid/pkg/fonts"
	"github.com/matzehuels/dockgrid/pkg/render"
	"github.com/matzehuels/dockgrid/pkg/scene"
	"github.com/matzehuels/dockgrid/pkg/textfit"
)

// Output formats of the layout command.
const (
	formatJSON = "json"
	formatSVG  = "svg"
	formatText = "text"
	formatDOT  = "dot"
	formatTree = "tree"
)

// layoutOptions holds the flags of the layout command.
type layoutOptions struct {
	Format       string
	Output       string
	Width        float64
	Height       float64
	Font         string
	Cols         int
	Rows         int
	EmbedFont    bool
	NoContainers bool
	NoCache      bool
}

// layoutCommand creates the layout command for resolving a scene file.
func (c *CLI) layoutCommand() *cobra.Command {
	opts := layoutOptions{Format: formatSVG, Font: fonts.DefaultName, Cols: 100, Rows: 32}

	cmd := &cobra.Command{
		Use:   "layout [scene.toml|scene.yaml]",
		Short: "Resolve a scene and export it as SVG, JSON or text",
		Long: `Resolve a scene and export it as SVG, JSON or text.

The layout command loads a scene file, places every item in its container,
fits the item labels with the chosen font and writes the resolved frame.
The dot and tree formats instead draw which container holds which item, as
Graphviz source or as an SVG laid out by Graphviz.
Use --width and --height to lay the scene out on a different surface than
the one it declares.

Results are cached locally for faster subsequent runs.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeSceneFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", opts.Format, "output format: svg, json, text, dot, tree")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file, - for stdout (default: <scene>.<format>)")
	cmd.Flags().Float64Var(&opts.Width, "width", 0, "surface width in pixels (default: from scene)")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "surface height in pixels (default: from scene)")
	cmd.Flags().StringVar(&opts.Font, "font", opts.Font, "label font: "+strings.Join(fonts.Names(), ", "))
	cmd.Flags().IntVar(&opts.Cols, "cols", opts.Cols, "text canvas columns")
	cmd.Flags().IntVar(&opts.Rows, "rows", opts.Rows, "text canvas rows")
	cmd.Flags().BoolVar(&opts.EmbedFont, "embed-font", false, "embed the font in SVG output")
	cmd.Flags().BoolVar(&opts.NoContainers, "no-containers", false, "omit container outlines from SVG output")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the scene, resolves it and writes the export.
func (c *CLI) runLayout(ctx context.Context, input string, opts layoutOptions) error {
	logger := loggerFromContext(ctx)
	if err := validateLayoutOptions(opts); err != nil {
		return err
	}

	raw, err := os.ReadFile(input)
	if os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", input)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "read scene %s", input)
	}

	store, err := c.newCache(opts.NoCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	key := newKeyer().LayoutKey(cache.Hash(raw), cache.LayoutKeyOpts{
		Width:  opts.Width,
		Height: opts.Height,
		Format: layoutKeyFormat(opts),
		Font:   opts.Font,
	})

	prog := newProgress(logger)
	data, cached, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}

	var stats []string
	if !cached {
		reg, m, err := c.loadScene(input, opts.Width, opts.Height, opts.Font)
		if err != nil {
			return err
		}
		stats = []string{
			fmt.Sprintf("%d containers", len(reg.Containers())),
			fmt.Sprintf("%d items", len(reg.Items())),
		}
		if data, err = c.exportLayout(ctx, reg, m, opts); err != nil {
			return err
		}
		if err := store.Set(ctx, key, data, resultTTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	if opts.Output == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	outputPath := opts.Output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + "." + extension(opts.Format)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done("Layout written")

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(cached, stats...)
	printNextStep("Preview", appName+" preview "+input)
	return nil
}

// loadScene reads and builds a scene, wiring the CLI logger and hooks into
// the registry. Non-zero width and height replace the scene's surface.
func (c *CLI) loadScene(path string, width, height float64, font string) (*dock.Registry, *fonts.Measurer, error) {
	m, err := fonts.Lookup(font)
	if err != nil {
		return nil, nil, err
	}
	s, err := scene.Load(path)
	if err != nil {
		return nil, nil, err
	}

	hooks := logHooks{c.Logger}
	opts := []dock.Option{dock.WithLogger(c.Logger), dock.WithHooks(hooks, hooks)}
	if width > 0 || height > 0 {
		w, h := s.Surface.Width, s.Surface.Height
		if width > 0 {
			w = width
		}
		if height > 0 {
			h = height
		}
		opts = append(opts, dock.WithSurface(w, h))
	}
	reg, err := s.Build(opts...)
	if err != nil {
		return nil, nil, err
	}
	return reg, m, nil
}

// exportLayout captures reg with fitted labels and encodes it.
func (c *CLI) exportLayout(ctx context.Context, reg *dock.Registry, m *fonts.Measurer, opts layoutOptions) ([]byte, error) {
	labeler := render.NewLabeler(m, textfit.WithBalance(), textfit.WithHooks(logHooks{c.Logger}))
	snap := render.Capture(reg, render.WithLabeler(labeler))

	switch opts.Format {
	case formatJSON:
		return render.RenderJSON(snap)
	case formatText:
		return []byte(render.RenderText(snap, opts.Cols, opts.Rows).String() + "\n"), nil
	case formatDOT:
		return []byte(render.ToDOT(snap)), nil
	case formatTree:
		return render.RenderTreeSVG(ctx, render.ToDOT(snap))
	}
	svgOpts := []render.SVGOption{render.WithFont(m)}
	if opts.EmbedFont {
		svgOpts = append(svgOpts, render.WithEmbeddedFont())
	}
	if opts.NoContainers {
		svgOpts = append(svgOpts, render.WithoutContainers())
	}
	return render.RenderSVG(snap, svgOpts...), nil
}

func validateLayoutOptions(opts layoutOptions) error {
	switch opts.Format {
	case formatJSON, formatSVG, formatText, formatDOT, formatTree:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want svg, json, text, dot or tree)", opts.Format)
	}
	if opts.Width < 0 || opts.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "surface size must not be negative")
	}
	if opts.Format == formatText && (opts.Cols < 1 || opts.Rows < 1) {
		return errors.New(errors.ErrCodeInvalidInput, "text canvas must be at least 1x1")
	}
	return nil
}

// layoutKeyFormat folds the format-specific flags into the cache key.
func layoutKeyFormat(opts layoutOptions) string {
	switch opts.Format {
	case formatText:
		return fmt.Sprintf("%s:%dx%d", opts.Format, opts.Cols, opts.Rows)
	case formatSVG:
		return fmt.Sprintf("%s:embed=%t:containers=%t", opts.Format, opts.EmbedFont, !opts.NoContainers)
	}
	return opts.Format
}

func extension(format string) string {
	switch format {
	case formatText:
		return "txt"
	case formatTree:
		return "tree.svg"
	}
	return format
}
