package fizzbuzz

import (
	"fmt"
	"sort"

	apperrors "github.com/jmorneau/fizzlab/internal/errors"
)

// Kind identifies which condition variant a block carries. The set is closed:
// these four kinds are the only ones the engine evaluates.
type Kind string

const (
	KindDivisor   Kind = "divisor"
	KindPrime     Kind = "prime"
	KindFibonacci Kind = "fibonacci"
	KindRange     Kind = "range"
)

// Condition is the kind-specific part of a rule block. Each variant carries
// exactly the fields its kind needs, statically typed, so a block can never
// be missing a property at evaluation time.
type Condition interface {
	// Kind reports which variant this is.
	Kind() Kind
	// Matches reports whether the condition holds for n. The Fibonacci set
	// is precomputed by the caller and ignored by every other variant.
	Matches(n int, fib Set) bool
	// Describe returns a short human-readable form of the condition.
	Describe() string
}

// Divisor matches numbers evenly divisible by Divisor.
type Divisor struct {
	Divisor int
}

func (d Divisor) Kind() Kind { return KindDivisor }

func (d Divisor) Matches(n int, _ Set) bool {
	return d.Divisor > 0 && n%d.Divisor == 0
}

func (d Divisor) Describe() string { return fmt.Sprintf("divisible by %d", d.Divisor) }

// Prime matches prime numbers.
type Prime struct{}

func (Prime) Kind() Kind { return KindPrime }

func (Prime) Matches(n int, _ Set) bool { return IsPrime(n) }

func (Prime) Describe() string { return "prime number" }

// Fibonacci matches members of the Fibonacci sequence.
type Fibonacci struct{}

func (Fibonacci) Kind() Kind { return KindFibonacci }

func (Fibonacci) Matches(n int, fib Set) bool { return fib.Contains(n) }

func (Fibonacci) Describe() string { return "fibonacci number" }

// Range matches numbers in the inclusive interval [Start, End].
type Range struct {
	Start int
	End   int
}

func (r Range) Kind() Kind { return KindRange }

func (r Range) Matches(n int, _ Set) bool { return n >= r.Start && n <= r.End }

func (r Range) Describe() string { return fmt.Sprintf("between %d and %d", r.Start, r.End) }

// Block is one rule in a rule set: a condition plus the word it contributes
// on a match and its position in the evaluation order.
type Block struct {
	// ID uniquely identifies the block. The engine treats it as opaque;
	// the workspace layer assigns UUIDs.
	ID string
	// Name is the human-readable label shown in listings.
	Name string
	// Word is the text emitted when the condition matches.
	Word string
	// Order positions the block in the evaluation sequence. Lower runs
	// first; equal orders keep their relative listing position.
	Order int
	// Cond is the kind-specific matching condition.
	Cond Condition
}

// Kind reports the block's condition kind, or the empty Kind when no
// condition is set.
func (b Block) Kind() Kind {
	if b.Cond == nil {
		return Kind("")
	}
	return b.Cond.Kind()
}

// Validate checks the block invariants: a word must be present, a condition
// must be set, divisors must be positive and ranges must be ascending.
// Violations are reported as ValidationError naming the offending field.
func (b Block) Validate() error {
	if b.Word == "" {
		return apperrors.ValidationError{Field: "word", Message: "a word is required"}
	}
	if b.Cond == nil {
		return apperrors.ValidationError{Field: "kind", Message: "a rule condition is required"}
	}
	switch cond := b.Cond.(type) {
	case Divisor:
		if cond.Divisor <= 0 {
			return apperrors.ValidationError{Field: "divisor", Message: "must be positive"}
		}
	case Range:
		if cond.Start >= cond.End {
			return apperrors.NewValidationError("range", "start %d must be below end %d", cond.Start, cond.End)
		}
	}
	return nil
}

// NewDivisorBlock builds a divisor rule. An empty name defaults to the word.
func NewDivisorBlock(name, word string, divisor, order int) Block {
	return Block{Name: defaultName(name, word), Word: word, Order: order, Cond: Divisor{Divisor: divisor}}
}

// NewPrimeBlock builds a primality rule. An empty name defaults to the word.
func NewPrimeBlock(name, word string, order int) Block {
	return Block{Name: defaultName(name, word), Word: word, Order: order, Cond: Prime{}}
}

// NewFibonacciBlock builds a Fibonacci membership rule. An empty name
// defaults to the word.
func NewFibonacciBlock(name, word string, order int) Block {
	return Block{Name: defaultName(name, word), Word: word, Order: order, Cond: Fibonacci{}}
}

// NewRangeBlock builds an inclusive range rule. An empty name defaults to
// the word.
func NewRangeBlock(name, word string, start, end, order int) Block {
	return Block{Name: defaultName(name, word), Word: word, Order: order, Cond: Range{Start: start, End: end}}
}

func defaultName(name, word string) string {
	if name == "" {
		return word
	}
	return name
}

// SortBlocks returns a copy of blocks sorted by ascending Order. Ties keep
// their relative input position, which makes evaluation order fully
// deterministic.
func SortBlocks(blocks []Block) []Block {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return sorted
}
