// Package grid maps evaluated results onto a square heatmap: a cell
// value per result, a color scale indexed by those values, and a legend
// describing the active rule set. It is pure data mapping; rendering
// belongs to the terminal layers that consume it.
package grid

import (
	"fmt"
	"math"

	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/ui"
)

// LegendEntry is one swatch of the heatmap legend.
type LegendEntry struct {
	Label string
	Hex   string
}

// Layout returns the dimensions of the square grid holding total cells.
// The side is ceil(sqrt(total)), so the last row may be partially empty.
func Layout(total int) (rows, cols int) {
	if total <= 0 {
		return 0, 0
	}
	side := int(math.Ceil(math.Sqrt(float64(total))))
	return side, side
}

// CellValue maps a result classification to its slot on the color scale.
//
// Plain numbers occupy slot 0. A single-match result takes 1 plus the
// position of its block in ascending evaluation order. FizzBuzz takes
// len(blocks)+1 when divisor rules worded Fizz and Buzz are both
// present; every other combination, and any result no block accounts
// for, takes len(blocks)+2.
func CellValue(t fizzbuzz.ResultType, blocks []fizzbuzz.Block) int {
	if t == fizzbuzz.TypeNumber {
		return 0
	}
	value := 1
	for _, b := range fizzbuzz.SortBlocks(blocks) {
		if blockProducesType(b, t) {
			return value
		}
		value++
	}
	if t == fizzbuzz.TypeFizzBuzz && hasFizzAndBuzz(blocks) {
		return len(blocks) + 1
	}
	return len(blocks) + 2
}

// ColorScale returns the hex color for every possible cell value, indexed
// by CellValue: numbers first, one slot per block in evaluation order,
// then FizzBuzz and combinations. Its length is always len(blocks)+3 so
// renderers never need range clamping.
func ColorScale(blocks []fizzbuzz.Block, colors map[string]string) []string {
	scale := make([]string, 0, len(blocks)+3)
	scale = append(scale, ui.HexNumber)
	for _, b := range fizzbuzz.SortBlocks(blocks) {
		hex, ok := colors[b.ID]
		if !ok {
			hex = ui.HexNeutral
		}
		scale = append(scale, hex)
	}
	scale = append(scale, ui.HexFizzBuzz, ui.HexCombination)
	return scale
}

// Legend describes the active rule set for display beside the heatmap.
// Entry 0 is always plain numbers. Blocks follow in evaluation order,
// labeled by their word (prime and fibonacci rules carry a kind prefix
// so "Prime (Zap)" stays readable). A FizzBuzz entry appears only when
// the classic pair is present, and a Combinations entry only when more
// than one block could overlap.
func Legend(blocks []fizzbuzz.Block, colors map[string]string) []LegendEntry {
	entries := []LegendEntry{{Label: "Numbers", Hex: ui.HexNumber}}
	for _, b := range fizzbuzz.SortBlocks(blocks) {
		hex, ok := colors[b.ID]
		if b.Word == "" || !ok {
			continue
		}
		label := b.Word
		switch b.Kind() {
		case fizzbuzz.KindPrime:
			label = fmt.Sprintf("Prime (%s)", b.Word)
		case fizzbuzz.KindFibonacci:
			label = fmt.Sprintf("Fib (%s)", b.Word)
		}
		entries = append(entries, LegendEntry{Label: label, Hex: hex})
	}
	if hasFizzAndBuzz(blocks) {
		entries = append(entries, LegendEntry{Label: "FizzBuzz", Hex: ui.HexFizzBuzz})
	}
	if len(blocks) > 1 {
		entries = append(entries, LegendEntry{Label: "Combinations", Hex: ui.HexCombination})
	}
	return entries
}

// ColorForResult picks the line color for one result. The classic types
// use their fixed colors; other single matches borrow the color assigned
// to the block whose word names the type; combinations and plain numbers
// fall back to their shared hues.
func ColorForResult(t fizzbuzz.ResultType, blocks []fizzbuzz.Block, colors map[string]string) string {
	switch t {
	case fizzbuzz.TypeFizz:
		return ui.HexFizz
	case fizzbuzz.TypeBuzz:
		return ui.HexBuzz
	case fizzbuzz.TypeFizzBuzz:
		return ui.HexFizzBuzz
	}
	for _, b := range blocks {
		if b.Word != string(t) {
			continue
		}
		if hex, ok := colors[b.ID]; ok {
			return hex
		}
	}
	switch t {
	case fizzbuzz.TypeCombination:
		return ui.HexCombination
	case fizzbuzz.TypeNumber:
		return ui.HexNumber
	}
	return ui.HexNeutral
}

// blockProducesType reports whether a single match of b yields result
// type t. Fizz and Buzz bind to divisor rules with those exact words;
// the custom divisor slot covers every other divisor word.
func blockProducesType(b fizzbuzz.Block, t fizzbuzz.ResultType) bool {
	switch t {
	case fizzbuzz.TypeFizz:
		return b.Kind() == fizzbuzz.KindDivisor && b.Word == "Fizz"
	case fizzbuzz.TypeBuzz:
		return b.Kind() == fizzbuzz.KindDivisor && b.Word == "Buzz"
	case fizzbuzz.TypePrime:
		return b.Kind() == fizzbuzz.KindPrime
	case fizzbuzz.TypeFib:
		return b.Kind() == fizzbuzz.KindFibonacci
	case fizzbuzz.TypeDivisorCustom:
		return b.Kind() == fizzbuzz.KindDivisor && b.Word != "Fizz" && b.Word != "Buzz"
	case fizzbuzz.TypeRangeCustom:
		return b.Kind() == fizzbuzz.KindRange
	}
	return false
}

func hasFizzAndBuzz(blocks []fizzbuzz.Block) bool {
	var fizz, buzz bool
	for _, b := range blocks {
		if b.Kind() != fizzbuzz.KindDivisor {
			continue
		}
		switch b.Word {
		case "Fizz":
			fizz = true
		case "Buzz":
			buzz = true
		}
	}
	return fizz && buzz
}
