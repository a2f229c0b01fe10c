// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package incr

// Derivation engine. Feed rewrites the parser tree for one token;
// FeedEOF finalizes it. Both return new values and leave the argument
// untouched.
//
// Recursion depth here is bounded by the depth of the parser tree, not
// by the length of the input: the batch feeders below are plain loops,
// and the smart constructors keep resultPart chains and failed
// branches collapsed, so long inputs do not grow the tree.

// Feed consumes one token, returning the derivative of p with respect
// to x.
func Feed[S, R any](x S, p Parser[S, R]) Parser[S, R] {
	switch p := p.(type) {
	case *failure[S, R]:
		return p
	case *result[S, R]:
		// committed; buffer the token for replay
		return &result[S, R]{tail: snoc(p.tail, x), value: p.value}
	case *resultPart[S, R]:
		return part(p.f, Feed(x, p.rest))
	case *choice[S, R]:
		return Alt(Feed(x, p.left), Feed(x, p.right))
	case *commitChoice[S, R]:
		return AltCommit(Feed(x, p.left), Feed(x, p.right))
	case *more[S, R]:
		return p.g(x)
	case *lookAhead[S, R]:
		// the token goes into the inner parser and into the
		// continuation, so a later commit replays it
		k := p.k
		return lookAheadInto(Feed(x, p.inner), func(q Parser[S, R]) Parser[S, R] {
			return Feed(x, k(q))
		})
	case *lookIgnore[S, R]:
		k := p.k
		return lookIgnoreInto(p.inner.feed(x), func(e scout[S]) Parser[S, R] {
			return Feed(x, k(e))
		})
	}
	panic("assert(feed: known variant)")
}

// FeedEOF signals that no more tokens will arrive. Parsers still
// awaiting input become failure; pending partial transformations are
// pushed into the surviving result leaves.
func FeedEOF[S, R any](p Parser[S, R]) Parser[S, R] {
	switch p := p.(type) {
	case *failure[S, R]:
		return p
	case *result[S, R]:
		return p
	case *resultPart[S, R]:
		return prepend(p.f, FeedEOF(p.rest))
	case *choice[S, R]:
		return Alt(FeedEOF(p.left), FeedEOF(p.right))
	case *commitChoice[S, R]:
		return AltCommit(FeedEOF(p.left), FeedEOF(p.right))
	case *more[S, R]:
		return Fail[S, R]()
	case *lookAhead[S, R]:
		inner := FeedEOF(p.inner)
		if isFailure(inner) {
			return Fail[S, R]()
		}
		return FeedEOF(p.k(inner))
	case *lookIgnore[S, R]:
		return FeedEOF(p.k(p.inner.finish()))
	}
	panic("assert(feedEOF: known variant)")
}

// FeedAll folds Feed over xs.
func FeedAll[S, R any](xs []S, p Parser[S, R]) Parser[S, R] {
	for _, x := range xs {
		p = Feed(x, p)
	}
	return p
}

// FeedListPrefix feeds tokens from chunk until p becomes a committed
// result, then stops. It returns the rewritten parser and the leftover
// tokens: whatever remains of chunk plus the unfed tail.
func FeedListPrefix[S, R any](chunk, tail []S, p Parser[S, R]) (Parser[S, R], []S) {
	for i, x := range chunk {
		if _, done := p.(*result[S, R]); done {
			leftover := make([]S, 0, len(chunk)-i+len(tail))
			leftover = append(leftover, chunk[i:]...)
			return p, append(leftover, tail...)
		}
		p = Feed(x, p)
	}
	if len(tail) == 0 {
		return p, nil
	}
	leftover := make([]S, len(tail))
	copy(leftover, tail)
	return p, leftover
}

// FeedShortestPrefix feeds tokens until p first shows any committed
// result, then buffers the rest as unconsumed input.
func FeedShortestPrefix[S, R any](xs []S, p Parser[S, R]) (Parser[S, R], []S) {
	for i, x := range xs {
		if HasResult(p) {
			leftover := make([]S, len(xs)-i)
			copy(leftover, xs[i:])
			return p, leftover
		}
		p = Feed(x, p)
	}
	return p, nil
}

// FeedLongestPrefix feeds the whole input, finalizes, and extracts the
// committed result that consumed the most tokens. On success it
// returns the committed parser and the unconsumed leftover; if no
// result survives it returns failure and the original input.
func FeedLongestPrefix[S, R any](xs []S, p Parser[S, R]) (Parser[S, R], []S) {
	fed := FeedEOF(FeedAll(xs, p))
	rs := Results(fed)
	if len(rs) == 0 {
		leftover := make([]S, len(xs))
		copy(leftover, xs)
		return Fail[S, R](), leftover
	}
	best := rs[0]
	for _, r := range rs[1:] {
		if len(r.Tail) < len(best.Tail) {
			best = r
		}
	}
	return &result[S, R]{value: best.Value}, best.Tail
}
