// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package incr implements an incremental parser combinator core.
//
// A parser is a first-class immutable value that consumes input tokens
// one at a time. Feeding a token to a parser yields a new parser that
// represents whatever remains to be parsed after that token (the
// Brzozowski derivative of the parser). Partial results accumulate
// monoidally, so long outputs can stream out while the input is still
// arriving.
//
// The package is generic over the token type S and the result type R.
// Combinators that concatenate or repeat results require a Monoid[R];
// parsers over non-monoidal results simply do not admit those
// combinators.
//
// Overview
//
// A user composes parsers with the combinators (Alt, AltCommit, Concat,
// Bind, Many0, ...), feeds input through Feed / FeedAll / FeedEOF, and
// reads results out at any point with Results, ResultPrefix, or
// PartialResults. There is no global state; every parser value is a
// pure tree that may be cloned and shared freely.
package incr
