package boolexpr

// Kind distinguishes the four node shapes the grammar produces.
type Kind int

const (
	KindLeaf Kind = iota
	KindNot
	KindAnd
	KindOr
)

// Node is one AST node. Leaf carries Label; Not carries Left only;
// And/Or carry both Left and Right.
type Node struct {
	Kind  Kind
	Label string
	Left  *Node
	Right *Node
}

// Leaf builds a label reference node.
func Leaf(label string) *Node { return &Node{Kind: KindLeaf, Label: label} }

// Not builds a negation node.
func Not(e *Node) *Node { return &Node{Kind: KindNot, Left: e} }

// And builds a conjunction node.
func And(a, b *Node) *Node { return &Node{Kind: KindAnd, Left: a, Right: b} }

// Or builds a disjunction node.
func Or(a, b *Node) *Node { return &Node{Kind: KindOr, Left: a, Right: b} }

// String renders n back into the raw expression syntax it was parsed
// from (or an equivalent of it, for a tree built by hand), fully
// parenthesizing And/Or so the result re-parses unambiguously.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case KindLeaf:
		return n.Label
	case KindNot:
		return "!" + parenthesize(n.Left)
	case KindAnd:
		return parenthesize(n.Left) + " & " + parenthesize(n.Right)
	case KindOr:
		return parenthesize(n.Left) + " | " + parenthesize(n.Right)
	default:
		return ""
	}
}

func parenthesize(n *Node) string {
	if n.Kind == KindLeaf || n.Kind == KindNot {
		return n.String()
	}
	return "(" + n.String() + ")"
}
