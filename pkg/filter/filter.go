// Package filter defines an abstract query expression tree. The report query
// builder emits these nodes; storage adapters lower them to their concrete
// query language. Keeping the tree store-agnostic lets the builder's branching
// be tested without a live database.
package filter

// Node is a single expression in the tree.
type Node interface {
	node()
}

// All matches every document.
type All struct{}

// Eq matches documents whose field equals Value.
type Eq struct {
	Field string
	Value any
}

// In matches documents whose field equals any of Values.
type In struct {
	Field  string
	Values []any
}

// Range matches documents whose field lies within [From, To]. Either bound may
// be nil, meaning unbounded on that side. Bounds are inclusive.
type Range struct {
	Field string
	From  any
	To    any
}

// And matches documents satisfying every child node.
type And struct {
	Nodes []Node
}

// Or matches documents satisfying at least one child node.
type Or struct {
	Nodes []Node
}

func (All) node()   {}
func (Eq) node()    {}
func (In) node()    {}
func (Range) node() {}
func (And) node()   {}
func (Or) node()    {}

// NewAnd flattens the common single-child case so callers can accumulate
// clauses without emitting a degenerate one-element $and.
func NewAnd(nodes ...Node) Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	return And{Nodes: nodes}
}
