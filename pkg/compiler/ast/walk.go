package ast

// Children returns the direct child sequences of n in source order.
// VarDecl values and ForthCreate sizes are not reported; they are fields,
// not body elements.
func Children(n Node) [][]Node {
	switch n := n.(type) {
	case *ForthProgram:
		return [][]Node{n.Forms}
	case *ProcedureDef:
		return [][]Node{n.Body}
	case *Conditional:
		if n.Alternate != nil {
			return [][]Node{n.Consequent, n.Alternate}
		}
		return [][]Node{n.Consequent}
	case *PostTestLoop:
		return [][]Node{n.Body}
	case *CountedLoop:
		return [][]Node{n.Body}
	}
	return nil
}

// Inspect traverses the tree depth-first, calling f for every node. If f
// returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, seq := range Children(n) {
		for _, child := range seq {
			Inspect(child, f)
		}
	}
}

// Count returns the number of nodes of kind k in the tree rooted at n.
func Count(n Node, k Kind) int {
	total := 0
	Inspect(n, func(c Node) bool {
		if c.Kind() == k {
			total++
		}
		return true
	})
	return total
}
