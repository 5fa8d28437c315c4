package tui

import (
	"fmt"
	"strings"

	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/grid"
)

// HeatmapModel renders the finished batch as a square of colored cells
// with a legend, the studio counterpart of the CLI heatmap.
type HeatmapModel struct {
	values []int
	scale  []string
	legend []grid.LegendEntry
	rows   int
	cols   int
	width  int
	height int
}

// NewHeatmapModel creates an empty heatmap panel.
func NewHeatmapModel() HeatmapModel {
	return HeatmapModel{}
}

// SetSize updates dimensions.
func (h *HeatmapModel) SetSize(w, ht int) {
	h.width = w
	h.height = ht
}

// SetData recomputes the cell values, color scale and legend from a
// finished batch.
func (h *HeatmapModel) SetData(results []fizzbuzz.Result, blocks []fizzbuzz.Block, colors map[string]string) {
	h.rows, h.cols = grid.Layout(len(results))
	h.values = make([]int, len(results))
	for i, r := range results {
		h.values[i] = grid.CellValue(r.Type, blocks)
	}
	h.scale = grid.ColorScale(blocks, colors)
	h.legend = grid.Legend(blocks, colors)
}

// Reset clears the panel.
func (h *HeatmapModel) Reset() {
	h.values = nil
	h.scale = nil
	h.legend = nil
	h.rows, h.cols = 0, 0
}

// View renders the panel.
func (h HeatmapModel) View() string {
	var rows strings.Builder

	if len(h.values) == 0 {
		rows.WriteString(panelTitleStyle.Render("Heatmap"))
		rows.WriteString("\n")
		rows.WriteString(dimStyle.Render(" Run a batch to fill the grid."))
		return panelStyle.Width(h.width - 2).Height(h.height - 2).Render(rows.String())
	}

	rows.WriteString(panelTitleStyle.Render(fmt.Sprintf("Heatmap %dx%d", h.rows, h.cols)))
	rows.WriteString("\n")

	innerWidth := h.width - 4
	innerHeight := h.height - 3 // border rows plus the title line
	if innerHeight < 1 {
		innerHeight = 1
	}

	// Wide cells when they fit, single columns otherwise.
	cell := "██"
	if h.cols*2 > innerWidth {
		cell = "█"
	}

	gridRows := h.rows
	legendLines := h.wrapLegend(innerWidth)
	maxGridRows := innerHeight - len(legendLines)
	if maxGridRows < 1 {
		maxGridRows = 1
	}
	if gridRows > maxGridRows {
		gridRows = maxGridRows
	}

	for row := 0; row < gridRows; row++ {
		for col := 0; col < h.cols; col++ {
			idx := row*h.cols + col
			if idx >= len(h.values) {
				break
			}
			rows.WriteString(hexStyle(h.scale[h.values[idx]]).Render(cell))
		}
		rows.WriteString("\n")
	}

	for i, line := range legendLines {
		rows.WriteString(line)
		if i < len(legendLines)-1 {
			rows.WriteString("\n")
		}
	}

	return panelStyle.Width(h.width - 2).Height(h.height - 2).Render(rows.String())
}

// wrapLegend lays the legend entries out over as few lines as fit the
// panel width.
func (h HeatmapModel) wrapLegend(innerWidth int) []string {
	if len(h.legend) == 0 {
		return nil
	}
	var lines []string
	var line strings.Builder
	lineLen := 0
	for _, entry := range h.legend {
		entryLen := 3 + len(entry.Label) // swatch, space, label
		if lineLen > 0 && lineLen+2+entryLen > innerWidth {
			lines = append(lines, line.String())
			line.Reset()
			lineLen = 0
		}
		if lineLen > 0 {
			line.WriteString("  ")
			lineLen += 2
		}
		line.WriteString(hexStyle(entry.Hex).Render("██"))
		line.WriteString(" ")
		line.WriteString(dimStyle.Render(entry.Label))
		lineLen += entryLen
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
