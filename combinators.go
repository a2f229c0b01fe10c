// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package incr

// Combinator algebra. Alt and AltCommit double as the smart
// constructors for the two alternation variants; everything else is
// structural recursion over the term, falling back to resolve for the
// variants that cannot be matched through (see normalize.go).

// Alt is nondeterministic alternation: both branches stay live and all
// of their results are reported. Failure is an identity, two token
// continuations merge, and committed results are pulled leftward so
// Results stays a cheap prefix walk (invariant 2). Canonicalization
// reaches one level deep at every call; deeper trees are normalized
// incrementally as feeding rebuilds them.
func Alt[S, R any](p, q Parser[S, R]) Parser[S, R] {
	if isFailure(p) {
		return q
	}
	if isFailure(q) {
		return p
	}
	if pm, ok := p.(*more[S, R]); ok {
		if qm, ok := q.(*more[S, R]); ok {
			pg, qg := pm.g, qm.g
			return &more[S, R]{g: func(x S) Parser[S, R] { return Alt(pg(x), qg(x)) }}
		}
	}
	if !leadsWithResult(p) {
		switch q := q.(type) {
		case *result[S, R]:
			return &choice[S, R]{left: q, right: p}
		case *choice[S, R]:
			if leadsWithResult(q.left) {
				return &choice[S, R]{left: q.left, right: Alt(p, q.right)}
			}
		}
	}
	return &choice[S, R]{left: p, right: q}
}

// AltCommit is committed alternation: if p ever shows a result, q is
// discarded. Failure is an identity, an existing committed choice
// absorbs the new right branch into its own right, and two token
// continuations merge.
func AltCommit[S, R any](p, q Parser[S, R]) Parser[S, R] {
	if isFailure(p) {
		return q
	}
	if isFailure(q) {
		return p
	}
	if HasResult(p) {
		return p
	}
	if pc, ok := p.(*commitChoice[S, R]); ok {
		return &commitChoice[S, R]{left: pc.left, right: AltCommit(pc.right, q)}
	}
	if pm, ok := p.(*more[S, R]); ok {
		if qm, ok := q.(*more[S, R]); ok {
			pg, qg := pm.g, qm.g
			return &more[S, R]{g: func(x S) Parser[S, R] { return AltCommit(pg(x), qg(x)) }}
		}
	}
	return &commitChoice[S, R]{left: p, right: q}
}

// Map applies g to every committed result of p.
func Map[S, R, T any](g func(R) T, p Parser[S, R]) Parser[S, T] {
	switch p := p.(type) {
	case *failure[S, R]:
		return Fail[S, T]()
	case *result[S, R]:
		return &result[S, T]{tail: p.tail, value: g(p.value)}
	case *choice[S, R]:
		return Alt(Map(g, p.left), Map(g, p.right))
	case *commitChoice[S, R]:
		return AltCommit(Map(g, p.left), Map(g, p.right))
	case *more[S, R]:
		h := p.g
		return &more[S, T]{g: func(x S) Parser[S, T] { return Map(g, h(x)) }}
	default:
		return resolve(func(q Parser[S, R]) Parser[S, T] { return Map(g, q) }, p)
	}
}

// MapMonoid translates results from monoid A to monoid B. Unlike Map
// it streams through pending partials: g must be a monoid
// homomorphism (g(empty) = empty, g(a1 <> a2) = g(a1) <> g(a2)), which
// lets the pending prefix be translated as g(f(empty)) and re-pended
// on the B side.
func MapMonoid[S, A, B any](ma Monoid[A], mb Monoid[B], g func(A) B, p Parser[S, A]) Parser[S, B] {
	switch p := p.(type) {
	case *failure[S, A]:
		return Fail[S, B]()
	case *result[S, A]:
		return &result[S, B]{tail: p.tail, value: g(p.value)}
	case *resultPart[S, A]:
		prefix := g(p.f(ma.Empty()))
		return part(func(b B) B { return mb.Append(prefix, b) }, MapMonoid(ma, mb, g, p.rest))
	case *choice[S, A]:
		return Alt(MapMonoid(ma, mb, g, p.left), MapMonoid(ma, mb, g, p.right))
	case *commitChoice[S, A]:
		return AltCommit(MapMonoid(ma, mb, g, p.left), MapMonoid(ma, mb, g, p.right))
	case *more[S, A]:
		h := p.g
		return &more[S, B]{g: func(x S) Parser[S, B] { return MapMonoid(ma, mb, g, h(x)) }}
	case *lookAhead[S, A]:
		inner, k := p.inner, p.k
		return lookIgnoreInto[S, B](probe[S, A]{p: inner}, func(e scout[S]) Parser[S, B] {
			return MapMonoid(ma, mb, g, k(e.(probe[S, A]).p))
		})
	case *lookIgnore[S, A]:
		k := p.k
		return lookIgnoreInto[S, B](p.inner, func(e scout[S]) Parser[S, B] {
			return MapMonoid(ma, mb, g, k(e))
		})
	}
	panic("assert(mapMonoid: known variant)")
}

// Apply is applicative sequencing: pf parses a function, pa parses its
// argument, and the committed function is applied to the committed
// argument after replaying pf's pushback into pa.
func Apply[S, A, B any](pf Parser[S, func(A) B], pa Parser[S, A]) Parser[S, B] {
	switch pf := pf.(type) {
	case *failure[S, func(A) B]:
		return Fail[S, B]()
	case *result[S, func(A) B]:
		return Map(pf.value, FeedAll(pf.tail, pa))
	case *choice[S, func(A) B]:
		return Alt(Apply(pf.left, pa), Apply(pf.right, pa))
	case *more[S, func(A) B]:
		g := pf.g
		return &more[S, B]{g: func(x S) Parser[S, B] { return Apply(g(x), pa) }}
	default:
		return resolve(func(q Parser[S, func(A) B]) Parser[S, B] { return Apply(q, pa) }, pf)
	}
}

// Bind is monadic sequencing: once p commits with r, its pushback is
// replayed into k(r).
func Bind[S, R, T any](p Parser[S, R], k func(R) Parser[S, T]) Parser[S, T] {
	switch p := p.(type) {
	case *failure[S, R]:
		return Fail[S, T]()
	case *result[S, R]:
		return FeedAll(p.tail, k(p.value))
	case *choice[S, R]:
		return Alt(Bind(p.left, k), Bind(p.right, k))
	case *more[S, R]:
		g := p.g
		return &more[S, T]{g: func(x S) Parser[S, T] { return Bind(g(x), k) }}
	default:
		return resolve(func(q Parser[S, R]) Parser[S, T] { return Bind(q, k) }, p)
	}
}

// Then sequences p before q and discards p's result. A pending partial
// on the left collapses outright since its value is thrown away, and a
// lookahead on the left degrades to its ignored form.
func Then[S, R, T any](p Parser[S, R], q Parser[S, T]) Parser[S, T] {
	switch p := p.(type) {
	case *failure[S, R]:
		return Fail[S, T]()
	case *result[S, R]:
		return FeedAll(p.tail, q)
	case *resultPart[S, R]:
		return Then(p.rest, q)
	case *choice[S, R]:
		return Alt(Then(p.left, q), Then(p.right, q))
	case *commitChoice[S, R]:
		return AltCommit(Then(p.left, q), Then(p.right, q))
	case *more[S, R]:
		g := p.g
		return &more[S, T]{g: func(x S) Parser[S, T] { return Then(g(x), q) }}
	case *lookAhead[S, R]:
		inner, k := p.inner, p.k
		return lookIgnoreInto[S, T](probe[S, R]{p: inner}, func(e scout[S]) Parser[S, T] {
			return Then(k(e.(probe[S, R]).p), q)
		})
	case *lookIgnore[S, R]:
		k := p.k
		return lookIgnoreInto[S, T](p.inner, func(e scout[S]) Parser[S, T] {
			return Then(k(e), q)
		})
	}
	panic("assert(then: known variant)")
}

// conc is the shared engine for Concat and ConcatCommit. q is supplied
// lazily so self-referential grammars (Many0 and friends) can tie the
// knot without forcing an infinite tree at construction time.
//
// With split set, a committed choice on the left is pulled apart on
// the next token: the committed path keeps feeding the left parser,
// in committed preference over finalizing the left and letting the
// right side advance on the same token.
func conc[S, R any](m Monoid[R], p Parser[S, R], q func() Parser[S, R], split bool) Parser[S, R] {
	switch p := p.(type) {
	case *failure[S, R]:
		return p
	case *result[S, R]:
		r1 := p.value
		return part(func(r R) R { return m.Append(r1, r) }, FeedAll(p.tail, q()))
	case *resultPart[S, R]:
		// sound because the pending transformation is a left
		// mappend (invariant 5): f(r1) <> r2 == f(r1 <> r2)
		return part(p.f, conc(m, p.rest, q, split))
	case *choice[S, R]:
		return Alt(conc(m, p.left, q, split), conc(m, p.right, q, split))
	case *commitChoice[S, R]:
		if !split {
			return AltCommit(conc(m, p.left, q, split), conc(m, p.right, q, split))
		}
		var node Parser[S, R] = p
		consume := &more[S, R]{g: func(x S) Parser[S, R] {
			return AltCommit(
				conc(m, Feed(x, node), q, true),
				conc(m, FeedEOF(node), func() Parser[S, R] { return Feed(x, q()) }, true),
			)
		}}
		return AltCommit[S, R](consume, whenEOF(conc(m, FeedEOF(node), q, true)))
	case *more[S, R]:
		g := p.g
		return &more[S, R]{g: func(x S) Parser[S, R] { return conc(m, g(x), q, split) }}
	case *lookAhead[S, R]:
		k := p.k
		return &lookAhead[S, R]{
			inner: p.inner,
			k:     func(p2 Parser[S, R]) Parser[S, R] { return conc(m, k(p2), q, split) },
		}
	case *lookIgnore[S, R]:
		k := p.k
		return &lookIgnore[S, R]{
			inner: p.inner,
			k:     func(e scout[S]) Parser[S, R] { return conc(m, k(e), q, split) },
		}
	}
	panic("assert(conc: known variant)")
}

// Concat is greedy monoidal concatenation: once p commits with r1 and
// pushback t, it emits a pending mappend(r1, _) over q fed with t.
func Concat[S, R any](m Monoid[R], p, q Parser[S, R]) Parser[S, R] {
	return conc(m, p, func() Parser[S, R] { return q }, false)
}

// ConcatCommit is like Concat but keeps committed choices on the left
// incremental: the right side may start consuming on the token that
// ends the left side, with the still-consuming left preferred.
func ConcatCommit[S, R any](m Monoid[R], p, q Parser[S, R]) Parser[S, R] {
	return conc(m, p, func() Parser[S, R] { return q }, true)
}

// And is parallel conjunction: both parsers see every token and the
// conjunction succeeds only where both succeed. Partial results
// combine component-wise.
func And[S, A, B any](ma Monoid[A], mb Monoid[B], p Parser[S, A], q Parser[S, B]) Parser[S, Pair[A, B]] {
	pm := PairMonoid[A, B]{A: ma, B: mb}
	if isFailure(p) || isFailure(q) {
		return Fail[S, Pair[A, B]]()
	}
	if pr, ok := p.(*result[S, A]); ok {
		if qr, ok := q.(*result[S, B]); ok {
			// both saw the same stream; the later commit point
			// decides the pushback
			tail := pr.tail
			if len(qr.tail) < len(tail) {
				tail = qr.tail
			}
			return &result[S, Pair[A, B]]{tail: tail, value: Pair[A, B]{First: pr.value, Second: qr.value}}
		}
		r1 := pr.value
		second := MapMonoid[S, B, Pair[A, B]](mb, pm, func(b B) Pair[A, B] {
			return Pair[A, B]{First: ma.Empty(), Second: b}
		}, q)
		return part(func(v Pair[A, B]) Pair[A, B] {
			return Pair[A, B]{First: ma.Append(r1, v.First), Second: v.Second}
		}, second)
	}
	if qr, ok := q.(*result[S, B]); ok {
		r2 := qr.value
		first := MapMonoid[S, A, Pair[A, B]](ma, pm, func(a A) Pair[A, B] {
			return Pair[A, B]{First: a, Second: mb.Empty()}
		}, p)
		return part(func(v Pair[A, B]) Pair[A, B] {
			return Pair[A, B]{First: v.First, Second: mb.Append(r2, v.Second)}
		}, first)
	}
	if pp, ok := p.(*resultPart[S, A]); ok {
		f := pp.f
		return part(func(v Pair[A, B]) Pair[A, B] {
			return Pair[A, B]{First: f(v.First), Second: v.Second}
		}, And(ma, mb, pp.rest, q))
	}
	if qp, ok := q.(*resultPart[S, B]); ok {
		f := qp.f
		return part(func(v Pair[A, B]) Pair[A, B] {
			return Pair[A, B]{First: v.First, Second: f(v.Second)}
		}, And(ma, mb, p, qp.rest))
	}
	if pc, ok := p.(*choice[S, A]); ok {
		return Alt(And(ma, mb, pc.left, q), And(ma, mb, pc.right, q))
	}
	if qc, ok := q.(*choice[S, B]); ok {
		return Alt(And(ma, mb, p, qc.left), And(ma, mb, p, qc.right))
	}
	if pmr, ok := p.(*more[S, A]); ok {
		if qmr, ok := q.(*more[S, B]); ok {
			pg, qg := pmr.g, qmr.g
			return &more[S, Pair[A, B]]{g: func(x S) Parser[S, Pair[A, B]] {
				return And(ma, mb, pg(x), qg(x))
			}}
		}
	}
	pHeld, qHeld := p, q
	consume := &more[S, Pair[A, B]]{g: func(x S) Parser[S, Pair[A, B]] {
		return And(ma, mb, Feed(x, pHeld), Feed(x, qHeld))
	}}
	return Alt[S, Pair[A, B]](consume, whenEOF(And(ma, mb, FeedEOF(pHeld), FeedEOF(qHeld))))
}

// AndThen is ordered conjunction: p's result fills the first slot of
// the pair the moment it commits, then q's results fill the second.
func AndThen[S, A, B any](ma Monoid[A], mb Monoid[B], p Parser[S, A], q Parser[S, B]) Parser[S, Pair[A, B]] {
	pm := PairMonoid[A, B]{A: ma, B: mb}
	switch p := p.(type) {
	case *failure[S, A]:
		return Fail[S, Pair[A, B]]()
	case *result[S, A]:
		r1 := p.value
		second := MapMonoid[S, B, Pair[A, B]](mb, pm, func(b B) Pair[A, B] {
			return Pair[A, B]{First: ma.Empty(), Second: b}
		}, FeedAll(p.tail, q))
		return part(func(v Pair[A, B]) Pair[A, B] {
			return Pair[A, B]{First: ma.Append(r1, v.First), Second: v.Second}
		}, second)
	case *resultPart[S, A]:
		f := p.f
		return part(func(v Pair[A, B]) Pair[A, B] {
			return Pair[A, B]{First: f(v.First), Second: v.Second}
		}, AndThen(ma, mb, p.rest, q))
	case *choice[S, A]:
		return Alt(AndThen(ma, mb, p.left, q), AndThen(ma, mb, p.right, q))
	case *commitChoice[S, A]:
		return AltCommit(AndThen(ma, mb, p.left, q), AndThen(ma, mb, p.right, q))
	case *more[S, A]:
		g := p.g
		return &more[S, Pair[A, B]]{g: func(x S) Parser[S, Pair[A, B]] {
			return AndThen(ma, mb, g(x), q)
		}}
	case *lookAhead[S, A]:
		inner, k := p.inner, p.k
		return lookIgnoreInto[S, Pair[A, B]](probe[S, A]{p: inner}, func(e scout[S]) Parser[S, Pair[A, B]] {
			return AndThen(ma, mb, k(e.(probe[S, A]).p), q)
		})
	case *lookIgnore[S, A]:
		k := p.k
		return lookIgnoreInto[S, Pair[A, B]](p.inner, func(e scout[S]) Parser[S, Pair[A, B]] {
			return AndThen(ma, mb, k(e), q)
		})
	}
	panic("assert(andThen: known variant)")
}

// Longest biases p toward consuming more input: while a token keeps p
// live the consuming path is preferred, and only at end of input does
// the committed fallback fire. Choices that lead with a result or a
// lookahead are converted to committed choices in the reverse
// direction so the consuming branch wins.
func Longest[S, R any](p Parser[S, R]) Parser[S, R] {
	switch p := p.(type) {
	case *failure[S, R]:
		return p
	case *result[S, R]:
		return p
	case *resultPart[S, R]:
		return part(p.f, Longest(p.rest))
	case *choice[S, R]:
		left, right := p.left, p.right
		if leadsWithResult(left) && !leadsWithResult(right) {
			return AltCommit(Longest(right), left)
		}
		if leadsWithResult(right) && !leadsWithResult(left) {
			return AltCommit(Longest(left), right)
		}
		if isLookNode(right) && !isLookNode(left) {
			return AltCommit(Longest(left), right)
		}
		if isLookNode(left) && !isLookNode(right) {
			return AltCommit(Longest(right), left)
		}
		return Alt(Longest(left), Longest(right))
	case *commitChoice[S, R]:
		return AltCommit(Longest(p.left), Longest(p.right))
	case *more[S, R]:
		g := p.g
		return &more[S, R]{g: func(x S) Parser[S, R] { return Longest(g(x)) }}
	case *lookAhead[S, R]:
		k := p.k
		return &lookAhead[S, R]{
			inner: p.inner,
			k:     func(q Parser[S, R]) Parser[S, R] { return Longest(k(q)) },
		}
	case *lookIgnore[S, R]:
		k := p.k
		return &lookIgnore[S, R]{
			inner: p.inner,
			k:     func(e scout[S]) Parser[S, R] { return Longest(k(e)) },
		}
	}
	panic("assert(longest: known variant)")
}

func isLookNode[S, R any](p Parser[S, R]) bool {
	switch p.(type) {
	case *lookAhead[S, R], *lookIgnore[S, R]:
		return true
	default:
		return false
	}
}
