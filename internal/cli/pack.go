package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dockgrid/pkg/errors"
	"github.com/matzehuels/dockgrid/pkg/layout"
)

// packOptions holds the flags of the pack command.
type packOptions struct {
	Width  float64
	Height float64
	Ratio  float64
	Max    int
}

// packCommand creates the pack command for inspecting grid packing.
func (c *CLI) packCommand() *cobra.Command {
	opts := packOptions{Width: 800, Height: 600, Ratio: layout.DefaultRatio, Max: 12}

	cmd := &cobra.Command{
		Use:   "pack [count...]",
		Short: "Show the grids chosen for item counts in a box",
		Long: `Show the grids chosen for item counts in a box.

For every count, pack prints the columns and rows of the grid with the
largest cells of the given aspect ratio, the cell size in pixels and the
share of the box the cells cover. Without counts, 1 through --max are shown.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			counts, err := packCounts(args, opts.Max)
			if err != nil {
				return err
			}
			if err := errors.ValidatePositive("width", opts.Width); err != nil {
				return err
			}
			if err := errors.ValidatePositive("height", opts.Height); err != nil {
				return err
			}
			if err := errors.ValidatePositive("ratio", opts.Ratio); err != nil {
				return err
			}
			fmt.Println(renderTable(
				[]string{"Items", "Grid", "Cell", "Coverage"},
				packRows(opts, counts),
				0, 3,
			))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&opts.Width, "width", "W", opts.Width, "box width in pixels")
	cmd.Flags().Float64VarP(&opts.Height, "height", "H", opts.Height, "box height in pixels")
	cmd.Flags().Float64Var(&opts.Ratio, "ratio", opts.Ratio, "cell aspect ratio (width/height)")
	cmd.Flags().IntVar(&opts.Max, "max", opts.Max, "largest count shown when no counts are given")

	return cmd
}

func packCounts(args []string, upTo int) ([]int, error) {
	if len(args) == 0 {
		if upTo < 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--max must be at least 1")
		}
		counts := make([]int, upTo)
		for i := range counts {
			counts[i] = i + 1
		}
		return counts, nil
	}
	counts := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "count %q is not a positive integer", arg)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

func packRows(opts packOptions, counts []int) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, n := range counts {
		g := layout.Pack(opts.Width, opts.Height, opts.Ratio, n)
		coverage := float64(n) * g.CellW * g.CellH / (opts.Width * opts.Height)
		rows = append(rows, []string{
			strconv.Itoa(n),
			fmt.Sprintf("%d × %d", g.Cols, g.Rows),
			fmt.Sprintf("%.1f × %.1f", g.CellW, g.CellH),
			fmt.Sprintf("%.1f%%", coverage*100),
		})
	}
	return rows
}
