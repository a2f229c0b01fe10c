// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package incr

// Parser term invariants
//
// A parser over token type S producing result type R is a tree built
// from the variants below. The tree is rewritten on every feed; the
// smart constructors in normalize.go keep it in canonical reduced form.
//
// Invariants (must always hold after any smart-constructor call):
//
//  1. A result node never appears directly underneath a resultPart
//     node; part() collapses the pair into a single result.
//
//  2. The left argument of a choice node is either a result (or a
//     choice whose left is a result), or neither argument leads with
//     a result. Alt() pushes results leftward so that Results is a
//     simple left-to-right traversal.
//
//  3. failure is absorbing in sequencing and an identity in
//     alternation; Alt and AltCommit eliminate failure branches.
//
//  4. The tail of a result node records tokens fed past the point
//     where the parser committed. Those tokens are replayed when the
//     result is sequenced with another parser.
//
//  5. Two nested resultPart nodes collapse into one with the composed
//     transformation; the pending transformation is always a left
//     mappend, so composition is ordinary function composition.
//
//  6. The left argument of a commitChoice node never has a committed
//     result; AltCommit collapses the node to its left argument the
//     moment the left shows any result.

// Parser is an immutable parser state over token type S producing
// results of type R. Feeding a token returns a new value; the old one
// stays valid. Parser values may be shared across goroutines.
type Parser[S, R any] interface {
	// variant seals the interface; all parser nodes live in this
	// package.
	variant(S, R)
}

// failure admits no success, ever.
type failure[S, R any] struct{}

// result is a committed parse. tail holds the tokens that were fed
// after the parser committed; they are replayed when this result is
// sequenced with another parser.
type result[S, R any] struct {
	tail  []S
	value R
}

// resultPart holds a pending left transformation over the results of
// the remaining parser. For monoidal R the transformation is always
// mappend(prefix, _), which makes f(mempty) the partial result
// available so far.
type resultPart[S, R any] struct {
	f    func(R) R
	rest Parser[S, R]
}

// choice is nondeterministic alternation; both branches stay live.
type choice[S, R any] struct {
	left, right Parser[S, R]
}

// commitChoice is committed alternation: as soon as the left branch
// shows any result, the right branch is discarded.
type commitChoice[S, R any] struct {
	left, right Parser[S, R]
}

// more awaits exactly one token.
type more[S, R any] struct {
	g func(S) Parser[S, R]
}

// lookAhead runs inner without consuming input, then continues with
// k(inner finalized). Feed keeps the continuation honest by composing
// every fed token into k, so the continuation replays exactly the
// tokens the inner parser peeked at.
type lookAhead[S, R any] struct {
	inner Parser[S, R]
	k     func(Parser[S, R]) Parser[S, R]
}

// lookIgnore is a lookahead whose inner parser may have an unrelated
// result type; only its success or failure is observable through the
// scout handle.
type lookIgnore[S, R any] struct {
	inner scout[S]
	k     func(scout[S]) Parser[S, R]
}

func (*failure[S, R]) variant(S, R) {}
func (*result[S, R]) variant(S, R) {}
func (*resultPart[S, R]) variant(S, R) {}
func (*choice[S, R]) variant(S, R) {}
func (*commitChoice[S, R]) variant(S, R) {}
func (*more[S, R]) variant(S, R) {}
func (*lookAhead[S, R]) variant(S, R) {}
func (*lookIgnore[S, R]) variant(S, R) {}

// scout is a heap-erased parser handle: it exposes feeding and the
// success/failure of the underlying parser while hiding its result
// type.
type scout[S any] interface {
	feed(S) scout[S]
	finish() scout[S]
	failed() bool
	settled() bool
}

// probe adapts a Parser to the scout interface.
type probe[S, R any] struct {
	p Parser[S, R]
}

func (pr probe[S, R]) feed(x S) scout[S] { return probe[S, R]{Feed(x, pr.p)} }

func (pr probe[S, R]) finish() scout[S] { return probe[S, R]{FeedEOF(pr.p)} }

func (pr probe[S, R]) failed() bool { return isFailure(pr.p) }

func (pr probe[S, R]) settled() bool { return HasResult(pr.p) }

// Fail returns the parser that admits no success.
func Fail[S, R any]() Parser[S, R] { return &failure[S, R]{} }

// Return returns a parser that succeeds immediately with r, consuming
// nothing.
func Return[S, R any](r R) Parser[S, R] { return &result[S, R]{value: r} }

func isFailure[S, R any](p Parser[S, R]) bool {
	_, ok := p.(*failure[S, R])
	return ok
}

// snoc returns tail with x appended, never aliasing the input slice.
func snoc[S any](tail []S, x S) []S {
	out := make([]S, len(tail)+1)
	copy(out, tail)
	out[len(tail)] = x
	return out
}
