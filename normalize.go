// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package incr

// Normalization helpers. Every rewrite in feed.go and combinators.go
// funnels through these so the term invariants in terms.go keep
// holding without any caller having to think about them.

// part pushes a pending transformation under an existing resultPart or
// result instead of nesting a second resultPart (invariants 1 and 5).
func part[S, R any](f func(R) R, p Parser[S, R]) Parser[S, R] {
	switch p := p.(type) {
	case *failure[S, R]:
		return p
	case *result[S, R]:
		return &result[S, R]{tail: p.tail, value: f(p.value)}
	case *resultPart[S, R]:
		g := p.f
		return &resultPart[S, R]{
			f:    func(r R) R { return f(g(r)) },
			rest: p.rest,
		}
	default:
		return &resultPart[S, R]{f: f, rest: p}
	}
}

// prepend pushes a pending transformation into every surviving result
// leaf. feedEOF calls it after finalizing the parser underneath a
// resultPart. It covers every variant, not just the ones that can
// appear at end of input, so it stays total if a caller hands it a
// live tree.
func prepend[S, R any](f func(R) R, p Parser[S, R]) Parser[S, R] {
	switch p := p.(type) {
	case *failure[S, R]:
		return p
	case *result[S, R]:
		return &result[S, R]{tail: p.tail, value: f(p.value)}
	case *resultPart[S, R]:
		g := p.f
		return part(func(r R) R { return f(g(r)) }, p.rest)
	case *choice[S, R]:
		return Alt(prepend(f, p.left), prepend(f, p.right))
	case *commitChoice[S, R]:
		return AltCommit(prepend(f, p.left), prepend(f, p.right))
	case *more[S, R]:
		g := p.g
		return &more[S, R]{g: func(x S) Parser[S, R] { return prepend(f, g(x)) }}
	case *lookAhead[S, R]:
		k := p.k
		return &lookAhead[S, R]{
			inner: p.inner,
			k:     func(q Parser[S, R]) Parser[S, R] { return prepend(f, k(q)) },
		}
	case *lookIgnore[S, R]:
		k := p.k
		return &lookIgnore[S, R]{
			inner: p.inner,
			k:     func(e scout[S]) Parser[S, R] { return prepend(f, k(e)) },
		}
	}
	panic("assert(prepend: known variant)")
}

// leadsWithResult reports whether p is a result, or a choice whose
// left branch leads with a result (the canonical position, invariant 2).
func leadsWithResult[S, R any](p Parser[S, R]) bool {
	switch p := p.(type) {
	case *result[S, R]:
		return true
	case *choice[S, R]:
		return leadsWithResult(p.left)
	default:
		return false
	}
}

// lookAheadInto pushes a lookahead continuation inward through
// resultPart, choice, and nested lookaheads, resolving as soon as the
// inner parser commits or fails. Resolution has to happen the moment a
// result appears: the continuation has already been composed with
// every fed token, so applying it then replays exactly the peeked-at
// tokens into the continuation's pushback.
func lookAheadInto[S, R any](q Parser[S, R], k func(Parser[S, R]) Parser[S, R]) Parser[S, R] {
	switch q := q.(type) {
	case *failure[S, R]:
		return q
	case *result[S, R]:
		return k(q)
	case *resultPart[S, R]:
		f := q.f
		return lookAheadInto(q.rest, func(p Parser[S, R]) Parser[S, R] {
			return k(part(f, p))
		})
	case *choice[S, R]:
		return Alt(lookAheadInto(q.left, k), lookAheadInto(q.right, k))
	case *lookAhead[S, R]:
		k2 := q.k
		return &lookAhead[S, R]{
			inner: q.inner,
			k: func(p Parser[S, R]) Parser[S, R] {
				return lookAheadInto(k2(p), k)
			},
		}
	default:
		return &lookAhead[S, R]{inner: q, k: k}
	}
}

// lookIgnoreInto is the erased-inner counterpart of lookAheadInto. The
// inner parser's outcome is determined once it has failed or shows a
// committed result; either way the continuation takes over.
func lookIgnoreInto[S, R any](e scout[S], k func(scout[S]) Parser[S, R]) Parser[S, R] {
	if e.failed() || e.settled() {
		return k(e)
	}
	return &lookIgnore[S, R]{inner: e, k: k}
}

// whenEOF guards q so that it only fires if no further token arrives.
// Any fed token turns the guard into failure; feedEOF unwraps it to q.
func whenEOF[S, R any](q Parser[S, R]) Parser[S, R] {
	return lookIgnoreInto[S, R](probe[S, S]{p: AnyToken[S]()}, func(e scout[S]) Parser[S, R] {
		if e.failed() {
			return q
		}
		return Fail[S, R]()
	})
}

// resolve rewrites p through trans when trans cannot pattern-match p
// directly (resultPart, commitChoice, lookaheads). It produces one
// branch that waits for a token and one, guarded by whenEOF, that
// applies trans to the finalized parser. For a committed choice the
// committed alternation is used so pruning behavior carries over.
func resolve[S, R, T any](trans func(Parser[S, R]) Parser[S, T], p Parser[S, R]) Parser[S, T] {
	consume := &more[S, T]{g: func(x S) Parser[S, T] { return trans(Feed(x, p)) }}
	atEnd := whenEOF(trans(FeedEOF(p)))
	if _, ok := p.(*commitChoice[S, R]); ok {
		return AltCommit[S, T](consume, atEnd)
	}
	return Alt[S, T](consume, atEnd)
}
