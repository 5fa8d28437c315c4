package tui

import (
	"fmt"
	"strings"

	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/grid"
)

// ResultsModel is the scrollable output panel showing one line per
// evaluated number, colored by its classification.
type ResultsModel struct {
	results []fizzbuzz.Result
	blocks  []fizzbuzz.Block
	colors  map[string]string
	offset  int
	width   int
	height  int
	focused bool
}

// NewResultsModel creates an empty results panel.
func NewResultsModel() ResultsModel {
	return ResultsModel{colors: map[string]string{}}
}

// SetSize updates dimensions.
func (r *ResultsModel) SetSize(w, h int) {
	r.width = w
	r.height = h
}

// SetFocused marks the panel as the keyboard focus target.
func (r *ResultsModel) SetFocused(focused bool) {
	r.focused = focused
}

// SetResults replaces the displayed batch. The rule set and color
// registry travel along so every line can be colored by the block that
// produced it. Scrolling restarts at the top.
func (r *ResultsModel) SetResults(results []fizzbuzz.Result, blocks []fizzbuzz.Block, colors map[string]string) {
	r.results = results
	r.blocks = blocks
	r.colors = colors
	r.offset = 0
}

// Reset clears the panel.
func (r *ResultsModel) Reset() {
	r.results = nil
	r.blocks = nil
	r.colors = map[string]string{}
	r.offset = 0
}

// Len returns the number of displayed results.
func (r *ResultsModel) Len() int { return len(r.results) }

// ScrollUp moves the window one line towards the start.
func (r *ResultsModel) ScrollUp() { r.scrollBy(-1) }

// ScrollDown moves the window one line towards the end.
func (r *ResultsModel) ScrollDown() { r.scrollBy(1) }

// PageUp moves the window one page towards the start.
func (r *ResultsModel) PageUp() { r.scrollBy(-r.visibleLines()) }

// PageDown moves the window one page towards the end.
func (r *ResultsModel) PageDown() { r.scrollBy(r.visibleLines()) }

func (r *ResultsModel) scrollBy(delta int) {
	r.offset += delta
	max := len(r.results) - r.visibleLines()
	if r.offset > max {
		r.offset = max
	}
	if r.offset < 0 {
		r.offset = 0
	}
}

func (r *ResultsModel) visibleLines() int {
	lines := r.height - 3 // border rows plus the title line
	if lines < 1 {
		lines = 1
	}
	return lines
}

// View renders the panel.
func (r ResultsModel) View() string {
	var rows strings.Builder
	title := fmt.Sprintf("Results (%d)", len(r.results))
	if len(r.results) > r.visibleLines() {
		title += fmt.Sprintf("  %d-%d", r.offset+1, r.lastVisible())
	}
	rows.WriteString(panelTitleStyle.Render(title))
	rows.WriteString("\n")

	if len(r.results) == 0 {
		rows.WriteString(dimStyle.Render(" No results yet. Press g to run."))
	} else {
		last := r.lastVisible()
		for i := r.offset; i < last; i++ {
			res := r.results[i]
			hex := grid.ColorForResult(res.Type, r.blocks, r.colors)
			line := truncate(fmt.Sprintf("%4d: %s", res.Number, res.Text), r.width-4)
			rows.WriteString(hexStyle(hex).Render(line))
			if i < last-1 {
				rows.WriteString("\n")
			}
		}
	}

	style := panelStyle
	if r.focused {
		style = panelFocusedStyle
	}
	return style.Width(r.width - 2).Height(r.height - 2).Render(rows.String())
}

func (r ResultsModel) lastVisible() int {
	last := r.offset + r.visibleLines()
	if last > len(r.results) {
		last = len(r.results)
	}
	return last
}
