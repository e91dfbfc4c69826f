package matcher

// Matches reports whether s satisfies the glob pattern p, where '*' is
// the only wildcard and matches any run of bytes, including none.
//
// Algorithm: the classic single-wildcard backtracking scan — walk p
// and s byte by byte; on a literal mismatch, retry from the most
// recent '*' one byte further into s. This is O(|p|·|s|) worst case
// (a pathological "a*a*a*a*b" against "aaaa...a") and allocates
// nothing: both inputs are read by index, never copied or re-sliced.
//
// Multiple '*' enforce segment order but not adjacency: "*a*b*"
// matches "xaXbY" because the segments "a" and "b" appear in order,
// with arbitrary bytes — including zero — between, before and after
// them.
func Matches(p, s string) bool {
	pi, si := 0, 0
	pn, sn := len(p), len(s)

	// starAt remembers the most recent '*' in p; matchFrom remembers
	// how far into s we had already committed when we took it. On a
	// literal mismatch we rewind to just after that '*' and retry
	// with one more byte of s absorbed into it.
	starAt, matchFrom := -1, 0

	for si < sn {
		switch {
		case pi < pn && p[pi] == s[si]:
			pi++
			si++
		case pi < pn && p[pi] == '*':
			starAt = pi
			matchFrom = si
			pi++
		case starAt != -1:
			pi = starAt + 1
			matchFrom++
			si = matchFrom
		default:
			return false
		}
	}

	// Any trailing run of '*' in p matches the empty remainder of s.
	for pi < pn && p[pi] == '*' {
		pi++
	}

	return pi == pn
}

// HasLiteral reports whether p contains at least one non-'*' byte.
// Every pattern PatternForge emits must satisfy this (spec invariant:
// "no bare wildcard").
func HasLiteral(p string) bool {
	for i := 0; i < len(p); i++ {
		if p[i] != '*' {
			return true
		}
	}
	return false
}
