// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package incr

// ResultPair is one committed result together with the pushback tail
// that was fed past the commit point.
type ResultPair[S, R any] struct {
	Value R
	Tail  []S
}

// Results harvests the committed results discoverable without feeding
// more input, left to right. Under a committed choice the left branch
// shadows the right one as soon as it yields anything.
func Results[S, R any](p Parser[S, R]) []ResultPair[S, R] {
	switch p := p.(type) {
	case *result[S, R]:
		return []ResultPair[S, R]{{Value: p.value, Tail: p.tail}}
	case *resultPart[S, R]:
		rs := Results(p.rest)
		out := make([]ResultPair[S, R], len(rs))
		for i, r := range rs {
			out[i] = ResultPair[S, R]{Value: p.f(r.Value), Tail: r.Tail}
		}
		return out
	case *choice[S, R]:
		return append(Results(p.left), Results(p.right)...)
	case *commitChoice[S, R]:
		if left := Results(p.left); len(left) != 0 {
			return left
		}
		return Results(p.right)
	default:
		return nil
	}
}

// HasResult reports whether any committed result is discoverable
// without feeding more input.
func HasResult[S, R any](p Parser[S, R]) bool {
	switch p := p.(type) {
	case *result[S, R]:
		return true
	case *resultPart[S, R]:
		return HasResult(p.rest)
	case *choice[S, R]:
		return HasResult(p.left) || HasResult(p.right)
	case *commitChoice[S, R]:
		return HasResult(p.left) || HasResult(p.right)
	default:
		return false
	}
}

// ResultPrefix extracts the pending partial result from the head of a
// resultPart chain. It returns the accumulated prefix, the parser that
// will produce the remainder, and whether a prefix was pending at all.
func ResultPrefix[S, R any](m Monoid[R], p Parser[S, R]) (R, Parser[S, R], bool) {
	if rp, ok := p.(*resultPart[S, R]); ok {
		return rp.f(m.Empty()), rp.rest, true
	}
	return m.Empty(), p, false
}

// Partial is one reachable partial result paired with the parser that
// produces the remainder.
type Partial[S, R any] struct {
	Value R
	Rest  Parser[S, R]
}

// PartialResults enumerates every reachable partial result. Committed
// results count as partials whose remainder is the identity; under a
// committed choice the left branch is preferred when it yields
// anything.
func PartialResults[S, R any](m Monoid[R], p Parser[S, R]) []Partial[S, R] {
	switch p := p.(type) {
	case *result[S, R]:
		return []Partial[S, R]{{
			Value: p.value,
			Rest:  &result[S, R]{tail: p.tail, value: m.Empty()},
		}}
	case *resultPart[S, R]:
		return []Partial[S, R]{{Value: p.f(m.Empty()), Rest: p.rest}}
	case *choice[S, R]:
		return append(PartialResults(m, p.left), PartialResults(m, p.right)...)
	case *commitChoice[S, R]:
		if left := PartialResults(m, p.left); len(left) != 0 {
			return left
		}
		return PartialResults(m, p.right)
	default:
		return nil
	}
}
