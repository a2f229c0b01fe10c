// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package incr

// Primitive and derived parsers. These are the library's surface
// vocabulary; all of them are ordinary values built from the variants
// in terms.go.
//
// The self-referential ones (While, Many0, AcceptAll, ManyTill) tie
// the knot through closures: the recursive occurrence is rebuilt
// inside a token continuation, so construction terminates as long as
// the repeated parser needs a token before it can succeed, and
// repeated feeding never copies a growing tree. Many0, Many1 and
// ManyTill over a parser that succeeds without consuming (such as
// While) recurse without bound when built.

// AnyToken consumes one token and yields it.
func AnyToken[S any]() Parser[S, S] {
	return &more[S, S]{g: func(x S) Parser[S, S] {
		return &result[S, S]{value: x}
	}}
}

// Token consumes one token and succeeds iff it equals want.
func Token[S comparable](want S) Parser[S, S] {
	return Satisfy(func(x S) bool { return x == want })
}

// Satisfy consumes one token iff pred accepts it.
func Satisfy[S any](pred func(S) bool) Parser[S, S] {
	return &more[S, S]{g: func(x S) Parser[S, S] {
		if pred(x) {
			return &result[S, S]{value: x}
		}
		return Fail[S, S]()
	}}
}

// EOF succeeds with the empty result only if no further token arrives.
func EOF[S, R any](m Monoid[R]) Parser[S, R] {
	return LookAheadNot[S, R](m, AnyToken[S]())
}

// Count consumes exactly n tokens into a slice. A non-positive n
// succeeds immediately with an empty slice.
func Count[S any](n int) Parser[S, []S] {
	if n <= 0 {
		return &result[S, []S]{value: []S{}}
	}
	return &more[S, []S]{g: func(x S) Parser[S, []S] {
		return part(consToken(x), Count[S](n-1))
	}}
}

// Literal consumes exactly the token sequence want; any mismatch
// fails. The committed result is want itself.
func Literal[S comparable](want []S) Parser[S, []S] {
	return literalFrom(want, 0)
}

func literalFrom[S comparable](want []S, i int) Parser[S, []S] {
	if i == len(want) {
		return &result[S, []S]{value: want}
	}
	return &more[S, []S]{g: func(x S) Parser[S, []S] {
		if x == want[i] {
			return literalFrom(want, i+1)
		}
		return Fail[S, []S]()
	}}
}

// PrefixOf consumes the longest input prefix that matches a prefix of
// list element-wise; it may succeed empty.
func PrefixOf[S comparable](list []S) Parser[S, []S] {
	preds := make([]func(S) bool, len(list))
	for i, want := range list {
		want := want
		preds[i] = func(x S) bool { return x == want }
	}
	return WhilePrefixOf(preds)
}

// WhilePrefixOf is PrefixOf with a predicate per position; the match
// length is capped at len(preds).
func WhilePrefixOf[S any](preds []func(S) bool) Parser[S, []S] {
	if len(preds) == 0 {
		return &result[S, []S]{value: []S{}}
	}
	pred, rest := preds[0], preds[1:]
	step := &more[S, []S]{g: func(x S) Parser[S, []S] {
		if pred(x) {
			return part(consToken(x), WhilePrefixOf(rest))
		}
		return Fail[S, []S]()
	}}
	return AltCommit[S, []S](step, Return[S, []S]([]S{}))
}

// While consumes the maximal prefix of tokens satisfying pred; it may
// succeed empty.
func While[S any](pred func(S) bool) Parser[S, []S] {
	return AltCommit(While1(pred), Return[S, []S]([]S{}))
}

// While1 is While but must consume at least one token.
func While1[S any](pred func(S) bool) Parser[S, []S] {
	return &more[S, []S]{g: func(x S) Parser[S, []S] {
		if pred(x) {
			return part(consToken(x), While(pred))
		}
		return Fail[S, []S]()
	}}
}

// Optional tries p but also succeeds empty; both branches stay live.
func Optional[S, R any](m Monoid[R], p Parser[S, R]) Parser[S, R] {
	return Alt(p, Return[S, R](m.Empty()))
}

// Maybe yields a pointer to p's result, or nil if p is abandoned; the
// p branch is committed as soon as it shows anything.
func Maybe[S, R any](p Parser[S, R]) Parser[S, *R] {
	return AltCommit(
		Map(func(r R) *R { return &r }, p),
		Return[S, *R](nil),
	)
}

// Skip runs p and discards its result, succeeding with the empty
// element of m.
func Skip[S, R, T any](m Monoid[R], p Parser[S, T]) Parser[S, R] {
	return Then(p, Return[S, R](m.Empty()))
}

// Many0 applies p zero or more times, concatenating results.
func Many0[S, R any](m Monoid[R], p Parser[S, R]) Parser[S, R] {
	return AltCommit(Many1(m, p), Return[S, R](m.Empty()))
}

// Many1 applies p one or more times, concatenating results.
func Many1[S, R any](m Monoid[R], p Parser[S, R]) Parser[S, R] {
	return conc(m, p, func() Parser[S, R] { return Many0(m, p) }, true)
}

// ManyTill applies p until end matches; end's own result is discarded.
func ManyTill[S, R, T any](m Monoid[R], p Parser[S, R], end Parser[S, T]) Parser[S, R] {
	return AltCommit(
		Skip[S, R](m, end),
		conc(m, p, func() Parser[S, R] { return ManyTill(m, p, end) }, true),
	)
}

// AcceptAll commits every token as it arrives; the partial result
// grows with the input and is complete at any point.
func AcceptAll[S any]() Parser[S, []S] {
	return While(func(S) bool { return true })
}

// LookAhead runs p speculatively: it succeeds with the empty element
// exactly where p would succeed, and the peeked-at tokens are pushed
// back for whatever is sequenced after it.
func LookAhead[S, R any](m Monoid[R], p Parser[S, R]) Parser[S, R] {
	return lookAheadInto(p, func(q Parser[S, R]) Parser[S, R] {
		return Then(q, Return[S, R](m.Empty()))
	})
}

// LookAheadNot succeeds with the empty element iff p fails; it
// consumes nothing.
func LookAheadNot[S, R, T any](m Monoid[R], p Parser[S, T]) Parser[S, R] {
	return lookIgnoreInto[S, R](probe[S, T]{p: p}, func(e scout[S]) Parser[S, R] {
		if e.failed() {
			return Return[S, R](m.Empty())
		}
		return Fail[S, R]()
	})
}

// consToken prepends one token to a slice result, never aliasing.
func consToken[S any](x S) func([]S) []S {
	return func(rest []S) []S {
		out := make([]S, 0, 1+len(rest))
		out = append(out, x)
		return append(out, rest...)
	}
}
