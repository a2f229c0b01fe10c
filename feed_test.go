// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package incr_test

import (
	"testing"
	"unicode"

	"github.com/mdhender/incr"
)

var runes = incr.SliceMonoid[rune]{}

// feedStr feeds every rune of s into p.
func feedStr[R any](p incr.Parser[rune, R], s string) incr.Parser[rune, R] {
	return incr.FeedAll([]rune(s), p)
}

// finish feeds every rune of s into p and finalizes.
func finish[R any](p incr.Parser[rune, R], s string) incr.Parser[rune, R] {
	return incr.FeedEOF(incr.FeedAll([]rune(s), p))
}

// strResults flattens committed results into (value, tail) strings for
// comparison.
func strResults(rs []incr.ResultPair[rune, []rune]) [][2]string {
	out := make([][2]string, len(rs))
	for i, r := range rs {
		out[i] = [2]string{string(r.Value), string(r.Tail)}
	}
	return out
}

func TestFeed_ResultBuffersTail(t *testing.T) {
	p := incr.Return[rune]([]rune("r"))

	rs := strResults(incr.Results(feedStr(p, "ab")))
	if len(rs) != 1 {
		t.Fatalf("results = %d, want 1", len(rs))
	}
	if got, want := rs[0], [2]string{"r", "ab"}; got != want {
		t.Fatalf("result = %v, want %v", got, want)
	}
}

func TestFeed_FailureIsAbsorbing(t *testing.T) {
	p := finish(incr.Fail[rune, []rune](), "abc")
	if rs := incr.Results(p); len(rs) != 0 {
		t.Fatalf("results = %d, want 0", len(rs))
	}
}

func TestFeedEOF_AnyToken(t *testing.T) {
	// finalizing first starves the parser
	p := incr.Feed('x', incr.FeedEOF(incr.AnyToken[rune]()))
	if rs := incr.Results(p); len(rs) != 0 {
		t.Fatalf("results after eof-then-feed = %d, want 0", len(rs))
	}

	// feeding first commits the token
	q := incr.FeedEOF(incr.Feed('x', incr.AnyToken[rune]()))
	rs := incr.Results(q)
	if len(rs) != 1 {
		t.Fatalf("results = %d, want 1", len(rs))
	}
	if got, want := rs[0].Value, 'x'; got != want {
		t.Fatalf("value = %q, want %q", got, want)
	}
	if len(rs[0].Tail) != 0 {
		t.Fatalf("tail = %q, want empty", string(rs[0].Tail))
	}
}

func TestFeedListPrefix_StopsAtCommit(t *testing.T) {
	p, leftover := incr.FeedListPrefix([]rune("abcd"), []rune("ef"), incr.Literal([]rune("ab")))
	rs := strResults(incr.Results(p))
	if len(rs) != 1 || rs[0][0] != "ab" {
		t.Fatalf("results = %v, want [[ab ]]", rs)
	}
	if got, want := string(leftover), "cdef"; got != want {
		t.Fatalf("leftover = %q, want %q", got, want)
	}
}

func TestFeedShortestPrefix(t *testing.T) {
	p, leftover := incr.FeedShortestPrefix([]rune("12x"), incr.While1(unicode.IsDigit))
	if !incr.HasResult(p) {
		t.Fatalf("HasResult = false, want true")
	}
	if got, want := string(leftover), "2x"; got != want {
		t.Fatalf("leftover = %q, want %q", got, want)
	}
}

func TestFeedLongestPrefix(t *testing.T) {
	// greedy repetition consumes the run of a's and pushes back the b
	p, leftover := incr.FeedLongestPrefix([]rune("aaab"), incr.Many0(runes, incr.Literal([]rune("a"))))
	rs := strResults(incr.Results(p))
	if len(rs) != 1 || rs[0][0] != "aaa" {
		t.Fatalf("results = %v, want [[aaa ]]", rs)
	}
	if got, want := string(leftover), "b"; got != want {
		t.Fatalf("leftover = %q, want %q", got, want)
	}
}

func TestFeedLongestPrefix_Failure(t *testing.T) {
	p, leftover := incr.FeedLongestPrefix([]rune("xyz"), incr.Literal([]rune("ab")))
	if rs := incr.Results(p); len(rs) != 0 {
		t.Fatalf("results = %d, want 0", len(rs))
	}
	if got, want := string(leftover), "xyz"; got != want {
		t.Fatalf("leftover = %q, want %q", got, want)
	}
}

func TestResultPrefix_DrainsPartial(t *testing.T) {
	p := feedStr(incr.While(unicode.IsDigit), "12")
	prefix, rest, ok := incr.ResultPrefix(runes, p)
	if !ok {
		t.Fatalf("ok = false, want true")
	}
	if got, want := string(prefix), "12"; got != want {
		t.Fatalf("prefix = %q, want %q", got, want)
	}

	// the remainder picks up where the prefix left off
	rs := strResults(incr.Results(finish(rest, "3")))
	if len(rs) != 1 || rs[0][0] != "3" {
		t.Fatalf("rest results = %v, want [[3 ]]", rs)
	}
}

func TestPartialResults(t *testing.T) {
	p := feedStr(incr.While(unicode.IsDigit), "12")
	ps := incr.PartialResults(runes, p)
	if len(ps) != 1 {
		t.Fatalf("partials = %d, want 1", len(ps))
	}
	if got, want := string(ps[0].Value), "12"; got != want {
		t.Fatalf("partial = %q, want %q", got, want)
	}

	// a committed result counts as a partial with an identity remainder
	q := finish(incr.Literal([]rune("ab")), "abx")
	qs := incr.PartialResults(runes, q)
	if len(qs) != 1 {
		t.Fatalf("partials = %d, want 1", len(qs))
	}
	if got, want := string(qs[0].Value), "ab"; got != want {
		t.Fatalf("partial = %q, want %q", got, want)
	}
}

func TestHasResult(t *testing.T) {
	if incr.HasResult(incr.AnyToken[rune]()) {
		t.Fatalf("HasResult(anyToken) = true, want false")
	}
	if !incr.HasResult(incr.Return[rune]([]rune(""))) {
		t.Fatalf("HasResult(return) = false, want true")
	}
	if !incr.HasResult(incr.Many0(runes, incr.Literal([]rune("a")))) {
		t.Fatalf("HasResult(many0) = false, want true")
	}
}
