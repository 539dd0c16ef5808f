package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range children(node) {
		Walk(v, child)
	}
}

// Inspect traverses an AST in depth-first order, calling f for each node.
// Children are skipped when f returns false.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}

// children returns the non-nil direct children of a node in source order.
func children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	switch n := node.(type) {
	case *Program:
		for _, d := range n.Decls {
			add(d)
		}

	// Declarations
	case *Constant:
		add(n.Value)
	case *Record:
		for _, f := range n.Fields {
			add(f)
		}
	case *Function:
		for _, p := range n.Params {
			add(p)
		}
		if n.Result != nil {
			add(n.Result)
		}
		for _, s := range n.Body {
			add(s)
		}
	case *Param:
		add(n.Type)

	// Statements
	case *Return:
		add(n.Value)
	case *ExprStmt:
		add(n.X)
	case *VarDecl:
		if n.Type != nil {
			add(n.Type)
		}
		if n.Value != nil {
			add(n.Value)
		}
	case *Assign:
		add(n.Value)
	case *If:
		add(n.Cond)
		for _, s := range n.Body {
			add(s)
		}
	case *While:
		add(n.Cond)
		for _, s := range n.Body {
			add(s)
		}

	// Expressions
	case *Unary:
		add(n.X)
	case *Binary:
		add(n.X)
		add(n.Y)
	case *Call:
		for _, arg := range n.Args {
			add(arg)
		}

	// Types
	case *PointerType:
		add(n.Elem)
	}
	return out
}
