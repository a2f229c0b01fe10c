// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package incr_test

import (
	"sort"
	"testing"
	"unicode"

	"github.com/mdhender/incr"
)

// sortedValues collects committed result values in sorted order so
// alternation laws can be compared up to result multiset.
func sortedValues(p incr.Parser[rune, []rune]) []string {
	rs := incr.Results(p)
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r.Value) + "/" + string(r.Tail)
	}
	sort.Strings(out)
	return out
}

func sameValues(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAlt_FailureIsIdentity(t *testing.T) {
	p := incr.Literal([]rune("ab"))
	left := finish(incr.Alt(p, incr.Fail[rune, []rune]()), "abx")
	right := finish(incr.Alt(incr.Fail[rune, []rune](), p), "abx")
	bare := finish(p, "abx")

	if !sameValues(sortedValues(left), sortedValues(bare)) {
		t.Fatalf("p<|>empty = %v, want %v", sortedValues(left), sortedValues(bare))
	}
	if !sameValues(sortedValues(right), sortedValues(bare)) {
		t.Fatalf("empty<|>p = %v, want %v", sortedValues(right), sortedValues(bare))
	}
}

func TestAlt_Associative(t *testing.T) {
	p := incr.Literal([]rune("a"))
	q := incr.Literal([]rune("ab"))
	r := incr.Literal([]rune("abc"))

	lhs := finish(incr.Alt(incr.Alt(p, q), r), "abc")
	rhs := finish(incr.Alt(p, incr.Alt(q, r)), "abc")
	if !sameValues(sortedValues(lhs), sortedValues(rhs)) {
		t.Fatalf("(p<|>q)<|>r = %v, want %v", sortedValues(lhs), sortedValues(rhs))
	}
	if got := sortedValues(lhs); len(got) != 3 {
		t.Fatalf("results = %v, want 3 entries", got)
	}
}

func TestAlt_TwoBranches(t *testing.T) {
	p := incr.Alt(incr.Token('a'), incr.Token('b'))
	rs := incr.Results(finish(p, "b"))
	if len(rs) != 1 {
		t.Fatalf("results = %d, want 1", len(rs))
	}
	if got, want := rs[0].Value, 'b'; got != want {
		t.Fatalf("value = %q, want %q", got, want)
	}
	if len(rs[0].Tail) != 0 {
		t.Fatalf("tail = %q, want empty", string(rs[0].Tail))
	}
}

func TestAltCommit_PrunesOnResult(t *testing.T) {
	// the left side already has a result, so the right side is gone
	p := incr.AltCommit(incr.Return[rune]([]rune("a")), incr.Literal([]rune("b")))
	rs := strResults(incr.Results(finish(p, "b")))
	if len(rs) != 1 {
		t.Fatalf("results = %v, want exactly one", rs)
	}
	if got, want := rs[0], [2]string{"a", "b"}; got != want {
		t.Fatalf("result = %v, want %v", got, want)
	}
}

func TestConcat_MonoidLaws(t *testing.T) {
	p := incr.While(unicode.IsDigit)
	unit := incr.Return[rune]([]rune(nil))

	bare := sortedValues(finish(p, "12x"))
	left := sortedValues(finish(incr.Concat(runes, unit, p), "12x"))
	right := sortedValues(finish(incr.Concat(runes, p, unit), "12x"))

	if !sameValues(left, bare) {
		t.Fatalf("return empty >< p = %v, want %v", left, bare)
	}
	if !sameValues(right, bare) {
		t.Fatalf("p >< return empty = %v, want %v", right, bare)
	}
}

func TestConcat_SequencesWithPushback(t *testing.T) {
	p := incr.Concat(runes, incr.Literal([]rune("ab")), incr.Literal([]rune("cd")))
	rs := strResults(incr.Results(finish(p, "abcdx")))
	if len(rs) != 1 {
		t.Fatalf("results = %v, want one", rs)
	}
	if got, want := rs[0], [2]string{"abcd", "x"}; got != want {
		t.Fatalf("result = %v, want %v", got, want)
	}
}

func TestConcatCommit_RightAdvancesAtBoundary(t *testing.T) {
	// the left side could stop at any point; the right side starts on
	// the very token that ends it
	p := incr.ConcatCommit(runes, incr.While(unicode.IsDigit), incr.Literal([]rune("ab")))
	rs := strResults(incr.Results(finish(p, "12ab")))
	if len(rs) != 1 {
		t.Fatalf("results = %v, want one", rs)
	}
	if got, want := rs[0], [2]string{"12ab", ""}; got != want {
		t.Fatalf("result = %v, want %v", got, want)
	}

	// an empty left match is fine too
	rs = strResults(incr.Results(finish(p, "ab")))
	if len(rs) != 1 || rs[0][0] != "ab" {
		t.Fatalf("results = %v, want [[ab ]]", rs)
	}
}

func TestMap_AppliesToResults(t *testing.T) {
	double := func(xs []rune) []rune {
		out := append([]rune{}, xs...)
		return append(out, xs...)
	}
	p := incr.Map(double, incr.Literal([]rune("ab")))
	rs := strResults(incr.Results(finish(p, "ab")))
	if len(rs) != 1 || rs[0][0] != "abab" {
		t.Fatalf("results = %v, want [[abab ]]", rs)
	}
}

func TestMap_ThroughPendingPartial(t *testing.T) {
	// the partial chain is opaque to Map; resolve has to carry it
	started := feedStr(incr.While(unicode.IsDigit), "12")
	counted := incr.Map(func(xs []rune) int { return len(xs) }, started)
	p := finish(counted, "3")
	rs := incr.Results(p)
	if len(rs) != 1 {
		t.Fatalf("results = %d, want 1", len(rs))
	}
	if got, want := rs[0].Value, 3; got != want {
		t.Fatalf("value = %d, want %d", got, want)
	}
}

func TestMapMonoid_StreamsPartials(t *testing.T) {
	p := incr.MapMonoid[rune, []rune, string](runes, incr.StringMonoid{}, func(xs []rune) string { return string(xs) }, incr.While(unicode.IsDigit))
	fed := feedStr(p, "12")

	prefix, _, ok := incr.ResultPrefix[rune, string](incr.StringMonoid{}, fed)
	if !ok {
		t.Fatalf("ok = false, want a pending partial")
	}
	if got, want := prefix, "12"; got != want {
		t.Fatalf("prefix = %q, want %q", got, want)
	}

	rs := incr.Results(finish(fed, "3x"))
	if len(rs) != 1 {
		t.Fatalf("results = %d, want 1", len(rs))
	}
	if got, want := rs[0].Value, "123"; got != want {
		t.Fatalf("value = %q, want %q", got, want)
	}
	if got, want := string(rs[0].Tail), "x"; got != want {
		t.Fatalf("tail = %q, want %q", got, want)
	}
}

func TestBind_ReplaysPushback(t *testing.T) {
	// parse one token, then require the next token to repeat it
	p := incr.Bind(incr.Count[rune](1), func(xs []rune) incr.Parser[rune, []rune] {
		return incr.Literal(xs)
	})
	rs := strResults(incr.Results(finish(p, "aa")))
	if len(rs) != 1 || rs[0][0] != "a" {
		t.Fatalf("results = %v, want [[a ]]", rs)
	}
	if rs := incr.Results(finish(p, "ab")); len(rs) != 0 {
		t.Fatalf("mismatch results = %d, want 0", len(rs))
	}
}

func TestThen_DiscardsLeft(t *testing.T) {
	p := incr.Then(incr.Literal([]rune("ab")), incr.Literal([]rune("cd")))
	rs := strResults(incr.Results(finish(p, "abcd")))
	if len(rs) != 1 || rs[0][0] != "cd" {
		t.Fatalf("results = %v, want [[cd ]]", rs)
	}
}

func TestApply_Sequences(t *testing.T) {
	reverse := func(xs []rune) []rune {
		out := make([]rune, len(xs))
		for i, x := range xs {
			out[len(xs)-1-i] = x
		}
		return out
	}
	pf := incr.Return[rune](reverse)
	p := incr.Apply(pf, incr.Count[rune](2))
	rs := strResults(incr.Results(finish(p, "ab")))
	if len(rs) != 1 || rs[0][0] != "ba" {
		t.Fatalf("results = %v, want [[ba ]]", rs)
	}
}

func TestAnd_BothMustSucceed(t *testing.T) {
	p := incr.And(runes, runes, incr.While(unicode.IsDigit), incr.Count[rune](3))
	rs := incr.Results(finish(p, "123"))
	if len(rs) == 0 {
		t.Fatalf("results empty, want a pair")
	}
	if got, want := string(rs[0].Value.First), "123"; got != want {
		t.Fatalf("First = %q, want %q", got, want)
	}
	if got, want := string(rs[0].Value.Second), "123"; got != want {
		t.Fatalf("Second = %q, want %q", got, want)
	}

	// one side failing kills the conjunction
	q := incr.And(runes, runes, incr.While1(unicode.IsDigit), incr.Literal([]rune("ab")))
	if rs := incr.Results(finish(q, "12")); len(rs) != 0 {
		t.Fatalf("results = %d, want 0", len(rs))
	}
}

func TestAndThen_FillsSlotsInOrder(t *testing.T) {
	p := incr.AndThen(runes, runes, incr.Literal([]rune("ab")), incr.While(unicode.IsDigit))

	// after the first half commits, the partial already carries it
	fed := feedStr(p, "ab")
	pm := incr.PairMonoid[[]rune, []rune]{A: runes, B: runes}
	prefix, _, ok := incr.ResultPrefix[rune, incr.Pair[[]rune, []rune]](pm, fed)
	if !ok {
		t.Fatalf("ok = false, want a pending partial")
	}
	if got, want := string(prefix.First), "ab"; got != want {
		t.Fatalf("partial First = %q, want %q", got, want)
	}
	if len(prefix.Second) != 0 {
		t.Fatalf("partial Second = %q, want empty", string(prefix.Second))
	}

	rs := incr.Results(finish(fed, "12"))
	if len(rs) != 1 {
		t.Fatalf("results = %d, want 1", len(rs))
	}
	if got, want := string(rs[0].Value.First), "ab"; got != want {
		t.Fatalf("First = %q, want %q", got, want)
	}
	if got, want := string(rs[0].Value.Second), "12"; got != want {
		t.Fatalf("Second = %q, want %q", got, want)
	}
}

func TestLongest_PrefersConsuming(t *testing.T) {
	p := incr.Longest(incr.Alt(incr.Literal([]rune("a")), incr.Literal([]rune("ab"))))

	rs := strResults(incr.Results(finish(p, "ab")))
	if len(rs) != 1 {
		t.Fatalf("results = %v, want exactly one", rs)
	}
	if got, want := rs[0][0], "ab"; got != want {
		t.Fatalf("value = %q, want %q", got, want)
	}

	// with only the short input available, the fallback still fires
	rs = strResults(incr.Results(finish(p, "a")))
	if len(rs) != 1 || rs[0][0] != "a" {
		t.Fatalf("results = %v, want [[a ]]", rs)
	}
}
