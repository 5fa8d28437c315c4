package server

import (
	"fmt"

	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
	"github.com/jmorneau/fizzlab/internal/orchestration"
)

// blockWire is the JSON shape of one rule. Kind discriminates which of the
// optional condition fields apply: divisor rules carry "divisor", range
// rules carry "start" and "end", prime and fibonacci rules carry neither.
type blockWire struct {
	Kind    string `json:"kind"`
	Name    string `json:"name,omitempty"`
	Word    string `json:"word"`
	Order   int    `json:"order,omitempty"`
	Divisor int    `json:"divisor,omitempty"`
	Start   int    `json:"start,omitempty"`
	End     int    `json:"end,omitempty"`
}

// sequenceRequest is the body of POST /api/v1/sequence. An empty block list
// selects the classic Fizz/Buzz preset.
type sequenceRequest struct {
	Start  int         `json:"start"`
	End    int         `json:"end"`
	Blocks []blockWire `json:"blocks,omitempty"`
}

// resultWire is one classified number in a response.
type resultWire struct {
	Number  int      `json:"number"`
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Matches []string `json:"matches,omitempty"`
}

// summaryWire aggregates one run for the response.
type summaryWire struct {
	Total      int            `json:"total"`
	Matched    int            `json:"matched"`
	DurationMS int64          `json:"duration_ms"`
	Counts     map[string]int `json:"counts"`
}

// sequenceResponse is the body of a successful sequence call.
type sequenceResponse struct {
	Results []resultWire `json:"results"`
	Summary summaryWire  `json:"summary"`
}

// defaultsResponse is the body of GET /api/v1/defaults.
type defaultsResponse struct {
	Start  int         `json:"start"`
	End    int         `json:"end"`
	Blocks []blockWire `json:"blocks"`
}

// errorResponse carries a client-facing failure message.
type errorResponse struct {
	Error string `json:"error"`
}

// decodeBlock maps one wire object to a core block. Unknown kinds are
// rejected rather than skipped so a typo never silently drops a rule.
func decodeBlock(w blockWire) (fizzbuzz.Block, error) {
	switch fizzbuzz.Kind(w.Kind) {
	case fizzbuzz.KindDivisor:
		return fizzbuzz.NewDivisorBlock(w.Name, w.Word, w.Divisor, w.Order), nil
	case fizzbuzz.KindPrime:
		return fizzbuzz.NewPrimeBlock(w.Name, w.Word, w.Order), nil
	case fizzbuzz.KindFibonacci:
		return fizzbuzz.NewFibonacciBlock(w.Name, w.Word, w.Order), nil
	case fizzbuzz.KindRange:
		return fizzbuzz.NewRangeBlock(w.Name, w.Word, w.Start, w.End, w.Order), nil
	default:
		return fizzbuzz.Block{}, fmt.Errorf("unknown block kind %q", w.Kind)
	}
}

// decodeBlocks maps a wire block list to core blocks, failing on the first
// invalid entry.
func decodeBlocks(wire []blockWire) ([]fizzbuzz.Block, error) {
	blocks := make([]fizzbuzz.Block, 0, len(wire))
	for i, w := range wire {
		b, err := decodeBlock(w)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// encodeBlock maps a core block to its wire shape.
func encodeBlock(b fizzbuzz.Block) blockWire {
	w := blockWire{Kind: string(b.Kind()), Name: b.Name, Word: b.Word, Order: b.Order}
	switch cond := b.Cond.(type) {
	case fizzbuzz.Divisor:
		w.Divisor = cond.Divisor
	case fizzbuzz.Range:
		w.Start = cond.Start
		w.End = cond.End
	}
	return w
}

// encodeResults maps generated results to their wire shape.
func encodeResults(results []fizzbuzz.Result) []resultWire {
	wire := make([]resultWire, 0, len(results))
	for _, r := range results {
		rw := resultWire{Number: r.Number, Text: r.Text, Type: string(r.Type)}
		for _, b := range r.Matched {
			rw.Matches = append(rw.Matches, b.Name)
		}
		wire = append(wire, rw)
	}
	return wire
}

// encodeSummary maps a run summary to its wire shape.
func encodeSummary(sum orchestration.Summary) summaryWire {
	counts := make(map[string]int, len(sum.Counts))
	for t, n := range sum.Counts {
		counts[string(t)] = n
	}
	return summaryWire{
		Total:      sum.Total,
		Matched:    sum.Matched,
		DurationMS: sum.Duration.Milliseconds(),
		Counts:     counts,
	}
}
