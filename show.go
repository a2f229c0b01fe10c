// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package incr

import (
	"fmt"
	"strings"
)

// showMaxDepth bounds the probe depth so self-referential grammars
// (While, Many0, AcceptAll) print finitely.
const showMaxDepth = 12

// ShowWithDefault renders the parser tree for diagnostics. More nodes
// are probed with the supplied default token; the rendering is for
// humans only and carries no stability guarantee.
func ShowWithDefault[S, R any](def S, p Parser[S, R]) string {
	var sb strings.Builder
	showTerm(&sb, def, p, 0)
	return sb.String()
}

func showTerm[S, R any](sb *strings.Builder, def S, p Parser[S, R], depth int) {
	if depth >= showMaxDepth {
		sb.WriteString("...")
		return
	}
	switch p := p.(type) {
	case *failure[S, R]:
		sb.WriteString("Failure")
	case *result[S, R]:
		fmt.Fprintf(sb, "Result(%v, %v)", p.tail, p.value)
	case *resultPart[S, R]:
		sb.WriteString("ResultPart(_, ")
		showTerm(sb, def, p.rest, depth+1)
		sb.WriteString(")")
	case *choice[S, R]:
		sb.WriteString("Choice(")
		showTerm(sb, def, p.left, depth+1)
		sb.WriteString(", ")
		showTerm(sb, def, p.right, depth+1)
		sb.WriteString(")")
	case *commitChoice[S, R]:
		sb.WriteString("CommittedLeftChoice(")
		showTerm(sb, def, p.left, depth+1)
		sb.WriteString(", ")
		showTerm(sb, def, p.right, depth+1)
		sb.WriteString(")")
	case *more[S, R]:
		fmt.Fprintf(sb, "More(%v -> ", def)
		showTerm(sb, def, p.g(def), depth+1)
		sb.WriteString(")")
	case *lookAhead[S, R]:
		sb.WriteString("LookAhead(")
		showTerm(sb, def, p.inner, depth+1)
		sb.WriteString(", _)")
	case *lookIgnore[S, R]:
		switch {
		case p.inner.failed():
			sb.WriteString("LookAheadIgnore(failed, _)")
		case p.inner.settled():
			sb.WriteString("LookAheadIgnore(settled, _)")
		default:
			sb.WriteString("LookAheadIgnore(live, _)")
		}
	default:
		sb.WriteString("?")
	}
}
