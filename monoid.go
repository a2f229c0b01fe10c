// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package incr

// Monoid supplies an identity element and an associative combine for
// result type R. All monoid-parameterized combinators (Concat,
// ConcatCommit, Many0, And, AndThen, EOF, ...) take one explicitly.
type Monoid[R any] interface {
	Empty() R
	Append(a, b R) R
}

// SliceMonoid is the monoid of slices under concatenation.
type SliceMonoid[T any] struct{}

func (SliceMonoid[T]) Empty() []T { return nil }

func (SliceMonoid[T]) Append(a, b []T) []T {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make([]T, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// StringMonoid is the monoid of strings under concatenation.
type StringMonoid struct{}

func (StringMonoid) Empty() string { return "" }

func (StringMonoid) Append(a, b string) string { return a + b }

// Pair is the result type of And and AndThen.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairMonoid combines pairs component-wise.
type PairMonoid[A, B any] struct {
	A Monoid[A]
	B Monoid[B]
}

func (m PairMonoid[A, B]) Empty() Pair[A, B] {
	return Pair[A, B]{First: m.A.Empty(), Second: m.B.Empty()}
}

func (m PairMonoid[A, B]) Append(a, b Pair[A, B]) Pair[A, B] {
	return Pair[A, B]{
		First:  m.A.Append(a.First, b.First),
		Second: m.B.Append(a.Second, b.Second),
	}
}
