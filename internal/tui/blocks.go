package tui

import (
	"fmt"
	"strings"

	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
)

// BlocksModel is the rule editor panel: a cursor list of the workspace
// blocks in evaluation order, each with its color swatch, word and
// condition description.
type BlocksModel struct {
	blocks  []fizzbuzz.Block
	colors  map[string]string
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

// NewBlocksModel creates an empty blocks panel.
func NewBlocksModel() BlocksModel {
	return BlocksModel{colors: map[string]string{}}
}

// SetSize updates dimensions.
func (b *BlocksModel) SetSize(w, h int) {
	b.width = w
	b.height = h
}

// SetFocused marks the panel as the keyboard focus target.
func (b *BlocksModel) SetFocused(focused bool) {
	b.focused = focused
}

// Refresh replaces the displayed rule set. The cursor is clamped so it
// always points at a valid row after removals.
func (b *BlocksModel) Refresh(blocks []fizzbuzz.Block, colors map[string]string) {
	b.blocks = blocks
	b.colors = colors
	if b.cursor >= len(blocks) {
		b.cursor = len(blocks) - 1
	}
	if b.cursor < 0 {
		b.cursor = 0
	}
}

// CursorUp moves the selection one row up.
func (b *BlocksModel) CursorUp() {
	if b.cursor > 0 {
		b.cursor--
	}
}

// CursorDown moves the selection one row down.
func (b *BlocksModel) CursorDown() {
	if b.cursor < len(b.blocks)-1 {
		b.cursor++
	}
}

// Selected returns the block under the cursor.
func (b *BlocksModel) Selected() (fizzbuzz.Block, bool) {
	if len(b.blocks) == 0 {
		return fizzbuzz.Block{}, false
	}
	return b.blocks[b.cursor], true
}

// View renders the panel.
func (b BlocksModel) View() string {
	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render(fmt.Sprintf("Blocks (%d)", len(b.blocks))))
	rows.WriteString("\n")

	innerWidth := b.width - 4
	innerHeight := b.height - 3 // border rows plus the title line
	if innerHeight < 1 {
		innerHeight = 1
	}

	if len(b.blocks) == 0 {
		rows.WriteString(dimStyle.Render(" No rules. Press a to add one."))
	} else {
		b.scrollToCursor(innerHeight)
		last := b.offset + innerHeight
		if last > len(b.blocks) {
			last = len(b.blocks)
		}
		for i := b.offset; i < last; i++ {
			rows.WriteString(b.renderRow(i, innerWidth))
			if i < last-1 {
				rows.WriteString("\n")
			}
		}
	}

	style := panelStyle
	if b.focused {
		style = panelFocusedStyle
	}
	return style.Width(b.width - 2).Height(b.height - 2).Render(rows.String())
}

// renderRow renders one rule line: cursor, order, swatch, word, condition.
func (b BlocksModel) renderRow(i, innerWidth int) string {
	blk := b.blocks[i]

	marker := "  "
	if b.focused && i == b.cursor {
		marker = cursorStyle.Render("▸ ")
	}

	swatch := hexStyle(b.colors[blk.ID]).Render("██")

	describe := ""
	if blk.Cond != nil {
		describe = blk.Cond.Describe()
	}
	text := fmt.Sprintf("%d %s %s", blk.Order, blk.Word, describe)
	text = truncate(text, innerWidth-5)

	style := rowStyle
	if i == b.cursor {
		style = rowSelectedStyle
	}
	return marker + swatch + " " + style.Render(text)
}

// scrollToCursor keeps the cursor row inside the visible window.
func (b *BlocksModel) scrollToCursor(visible int) {
	if b.cursor < b.offset {
		b.offset = b.cursor
	}
	if b.cursor >= b.offset+visible {
		b.offset = b.cursor - visible + 1
	}
	if b.offset < 0 {
		b.offset = 0
	}
}

// truncate shortens s to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
