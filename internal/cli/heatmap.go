package cli

import (
	"fmt"
	"io"

	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/grid"
	"github.com/jmorneau/fizzlab/internal/ui"
)

// RenderGrid draws the run's heatmap as a square of colored cells followed by
// a legend, mirroring the studio's grid panel. Cells read left to right, top
// to bottom in run order. Without colors each cell shows its scale index
// instead, and the legend lists the index for each label.
//
// Parameters:
//   - results: The evaluated numbers in run order.
//   - blocks: The rule set behind the run.
//   - colors: Hex colors keyed by block ID.
//   - out: The writer for standard output.
func RenderGrid(results []fizzbuzz.Result, blocks []fizzbuzz.Block, colors map[string]string, out io.Writer) {
	rows, cols := grid.Layout(len(results))
	if rows == 0 {
		return
	}

	scale := grid.ColorScale(blocks, colors)
	useColor := ui.ColorReset() != ""

	fmt.Fprintf(out, "\n--- Heatmap (%dx%d) ---\n", rows, cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx := row*cols + col
			if idx >= len(results) {
				break
			}
			v := grid.CellValue(results[idx].Type, blocks)
			if useColor {
				fmt.Fprintf(out, "%s██%s", ui.HexForeground(scale[v]), ui.ColorReset())
			} else {
				fmt.Fprintf(out, "%2d", v)
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out)
	for _, entry := range grid.Legend(blocks, colors) {
		if useColor {
			fmt.Fprintf(out, "  %s██%s %s\n", ui.HexForeground(entry.Hex), ui.ColorReset(), entry.Label)
		} else if idx := scaleIndex(scale, entry.Hex); idx >= 0 {
			fmt.Fprintf(out, "  %2d %s\n", idx, entry.Label)
		} else {
			fmt.Fprintf(out, "     %s\n", entry.Label)
		}
	}
}

// scaleIndex finds the cell value rendered with the given hex color.
func scaleIndex(scale []string, hex string) int {
	for i, s := range scale {
		if s == hex {
			return i
		}
	}
	return -1
}
