package fizzbuzz

import (
	"strconv"
	"strings"
)

// ResultType classifies the outcome of evaluating one number. The values are
// part of the output contract (they appear in JSON responses and saved runs)
// and must not be renamed.
type ResultType string

const (
	// TypeNumber marks a number no rule matched.
	TypeNumber ResultType = "number"
	// TypeFizz marks a single match by a divisor rule worded exactly "Fizz".
	TypeFizz ResultType = "Fizz"
	// TypeBuzz marks a single match by a divisor rule worded exactly "Buzz".
	TypeBuzz ResultType = "Buzz"
	// TypeDivisorCustom marks a single match by any other divisor rule.
	TypeDivisorCustom ResultType = "divisor_custom"
	// TypePrime marks a single match by a prime rule.
	TypePrime ResultType = "Prime"
	// TypeFib marks a single match by a Fibonacci rule.
	TypeFib ResultType = "Fib"
	// TypeRangeCustom marks a single match by a range rule.
	TypeRangeCustom ResultType = "range_custom"
	// TypeFizzBuzz marks a multi-match that includes divisor rules worded
	// "Fizz" and "Buzz".
	TypeFizzBuzz ResultType = "FizzBuzz"
	// TypeCombination marks any other multi-match.
	TypeCombination ResultType = "combination"
)

// Result is the outcome of evaluating a single number.
type Result struct {
	// Number is the evaluated integer.
	Number int
	// Text is the concatenated words of the matching rules, or the decimal
	// rendering of Number when nothing matched.
	Text string
	// Type classifies the outcome.
	Type ResultType
	// Matched lists the matching blocks in evaluation order. Empty when
	// nothing matched.
	Matched []Block
}

// Evaluate runs every block against n and assembles the annotated result.
// Blocks are evaluated in ascending Order with stable ties; matching words
// concatenate in that order. The fib set must cover n when any Fibonacci
// block is present (Generate precomputes it once per batch).
func Evaluate(n int, blocks []Block, fib Set) Result {
	return evaluateOrdered(n, SortBlocks(blocks), fib)
}

// evaluateOrdered is Evaluate without the sort, for callers that already
// hold blocks in evaluation order.
func evaluateOrdered(n int, ordered []Block, fib Set) Result {
	var matched []Block
	var text strings.Builder
	for _, b := range ordered {
		if b.Cond != nil && b.Cond.Matches(n, fib) {
			matched = append(matched, b)
			text.WriteString(b.Word)
		}
	}

	if len(matched) == 0 {
		return Result{Number: n, Text: strconv.Itoa(n), Type: TypeNumber}
	}
	return Result{Number: n, Text: text.String(), Type: classify(matched), Matched: matched}
}

// classify maps the matched blocks to a ResultType. A single match
// classifies by its kind (with the Fizz/Buzz words singled out among divisor
// rules); multiple matches are FizzBuzz only when divisor rules worded
// exactly "Fizz" and "Buzz" both matched, and a combination otherwise.
// Words decide, never names or IDs.
func classify(matched []Block) ResultType {
	if len(matched) == 1 {
		b := matched[0]
		switch b.Kind() {
		case KindDivisor:
			switch b.Word {
			case "Fizz":
				return TypeFizz
			case "Buzz":
				return TypeBuzz
			default:
				return TypeDivisorCustom
			}
		case KindPrime:
			return TypePrime
		case KindFibonacci:
			return TypeFib
		case KindRange:
			return TypeRangeCustom
		}
		return TypeCombination
	}

	hasFizz, hasBuzz := false, false
	for _, b := range matched {
		if b.Kind() != KindDivisor {
			continue
		}
		switch b.Word {
		case "Fizz":
			hasFizz = true
		case "Buzz":
			hasBuzz = true
		}
	}
	if hasFizz && hasBuzz {
		return TypeFizzBuzz
	}
	return TypeCombination
}
