package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockgrid/pkg/cache"
	"github.com/matzehuels/dockgrid/pkg/fonts"
	"github.com/matzehuels/dockgrid/pkg/textfit"
)

// fitOptions holds the flags of the fit command.
type fitOptions struct {
	Width     float64
	Height    float64
	Font      string
	Leading   float64
	MaxHeight float64
	Balance   bool
	Padding   bool
	JSON      bool
	NoCache   bool
}

// fitCommand creates the fit command for sizing text to a box.
func (c *CLI) fitCommand() *cobra.Command {
	opts := fitOptions{
		Width:     300,
		Height:    100,
		Font:      fonts.DefaultName,
		Leading:   textfit.DefaultLeading,
		MaxHeight: textfit.DefaultMaxHeight,
	}

	cmd := &cobra.Command{
		Use:   "fit [text]",
		Short: "Find the largest font height at which text fits a box",
		Long: `Find the largest font height at which text fits a box.

The text is wrapped at spaces and at newlines; a blank line keeps an empty
line in the output. Use "-" to read the text from stdin.

A max height of at most 1 is a fraction of the box height, anything larger
is a pixel cap.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			if text == "-" {
				data, err := readAll(cmd)
				if err != nil {
					return err
				}
				text = data
			}
			return c.runFit(cmd.Context(), text, opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.Width, "width", "W", opts.Width, "box width in pixels")
	cmd.Flags().Float64VarP(&opts.Height, "height", "H", opts.Height, "box height in pixels")
	cmd.Flags().StringVar(&opts.Font, "font", opts.Font, "font: "+strings.Join(fonts.Names(), ", "))
	cmd.Flags().Float64Var(&opts.Leading, "leading", opts.Leading, "line pitch as a multiple of the font height")
	cmd.Flags().Float64Var(&opts.MaxHeight, "max-height", opts.MaxHeight, "font height cap: fraction of the box (<=1) or pixels")
	cmd.Flags().BoolVar(&opts.Balance, "balance", false, "even out two-line results")
	cmd.Flags().BoolVar(&opts.Padding, "padding", false, "report the unused share of the box width")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "disable caching")

	return cmd
}

// runFit fits text, consulting the result cache first.
func (c *CLI) runFit(ctx context.Context, text string, opts fitOptions) error {
	logger := loggerFromContext(ctx)

	m, err := fonts.Lookup(opts.Font)
	if err != nil {
		return err
	}
	store, err := c.newCache(opts.NoCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer store.Close()

	key := newKeyer().FitKey(text, cache.FitKeyOpts{
		Font:      opts.Font,
		Width:     opts.Width,
		Height:    opts.Height,
		Leading:   opts.Leading,
		MaxHeight: opts.MaxHeight,
		Balance:   opts.Balance,
		Padding:   opts.Padding,
	})

	var res textfit.Result
	cached, err := cache.GetJSON(ctx, store, key, &res)
	if err != nil {
		logger.Warn("cache read failed", "err", err)
	}
	if !cached {
		if res, err = c.fitText(text, m, opts); err != nil {
			return err
		}
		if err := cache.SetJSON(ctx, store, key, res, resultTTL); err != nil {
			logger.Warn("cache write failed", "err", err)
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printFit(res, cached)
	return nil
}

func (c *CLI) fitText(text string, m textfit.Measurer, opts fitOptions) (textfit.Result, error) {
	fitOpts := []textfit.Option{
		textfit.WithLeading(opts.Leading),
		textfit.WithMaxHeight(opts.MaxHeight),
		textfit.WithHooks(logHooks{c.Logger}),
	}
	if opts.Balance {
		fitOpts = append(fitOpts, textfit.WithBalance())
	}
	if opts.Padding {
		fitOpts = append(fitOpts, textfit.WithPadding())
	}
	return textfit.Fit(text, m, opts.Width, opts.Height, fitOpts...)
}

func printFit(res textfit.Result, cached bool) {
	printSuccess("Fits at %s", StyleNumber.Render(strconv.Itoa(res.FontHeight)+"px"))
	for _, line := range res.Lines {
		printDetail("%q", line)
	}
	printKeyValue("height", fmt.Sprintf("%.1fpx", res.Height))
	if res.Padding > 0 {
		printKeyValue("padding", fmt.Sprintf("%.1f%%", res.Padding*100))
	}
	printStats(cached, fmt.Sprintf("%d lines", len(res.Lines)))
}

func readAll(cmd *cobra.Command) (string, error) {
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
