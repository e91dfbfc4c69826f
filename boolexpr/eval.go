package boolexpr

import (
	"fmt"

	"github.com/patternforge/patternforge/matcher"
)

// ErrUnknownLabel is returned by Eval when a leaf names a label absent
// from the catalog.
type ErrUnknownLabel struct {
	Label string
}

func (e *ErrUnknownLabel) Error() string {
	return fmt.Sprintf("boolexpr: unknown label %q", e.Label)
}

// Eval evaluates n against s, resolving each leaf label through
// catalog (label -> glob pattern) and combining results with
// short-circuit boolean logic, matching Go's own && and ||: the right
// operand of And is never evaluated once the left is false, nor the
// right operand of Or once the left is true.
func Eval(n *Node, catalog map[string]string, s string) (bool, error) {
	switch n.Kind {
	case KindLeaf:
		pattern, ok := catalog[n.Label]
		if !ok {
			return false, &ErrUnknownLabel{Label: n.Label}
		}
		return matcher.Matches(pattern, s), nil
	case KindNot:
		v, err := Eval(n.Left, catalog, s)
		if err != nil {
			return false, err
		}
		return !v, nil
	case KindAnd:
		left, err := Eval(n.Left, catalog, s)
		if err != nil {
			return false, err
		}
		if !left {
			return false, nil
		}
		return Eval(n.Right, catalog, s)
	case KindOr:
		left, err := Eval(n.Left, catalog, s)
		if err != nil {
			return false, err
		}
		if left {
			return true, nil
		}
		return Eval(n.Right, catalog, s)
	default:
		return false, fmt.Errorf("boolexpr: unknown node kind %d", n.Kind)
	}
}

// Labels returns every distinct leaf label referenced by n, in
// first-occurrence order, useful for validating a catalog before Eval.
func Labels(n *Node) []string {
	var out []string
	seen := make(map[string]struct{})
	var walk func(*Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		switch n.Kind {
		case KindLeaf:
			if _, ok := seen[n.Label]; !ok {
				seen[n.Label] = struct{}{}
				out = append(out, n.Label)
			}
		case KindNot:
			walk(n.Left)
		case KindAnd, KindOr:
			walk(n.Left)
			walk(n.Right)
		}
	}
	walk(n)
	return out
}
