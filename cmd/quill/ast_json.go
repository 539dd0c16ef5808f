package main

import (
	"encoding/json"
	"reflect"

	"github.com/hokaccha/go-prettyjson"

	"github.com/deepnoodle-ai/quill/ast"
)

// ASTNode represents a node in the JSON AST output
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Pos      string     `json:"pos,omitempty"`
	Children []*ASTNode `json:"children,omitempty"`
}

func marshalAST(program *ast.Program, colorize bool) ([]byte, error) {
	return marshalJSON(nodeToJSON(program), colorize)
}

func marshalJSON(value any, colorize bool) ([]byte, error) {
	if colorize {
		return prettyjson.Marshal(value)
	}
	return json.MarshalIndent(value, "", "  ")
}

func nodeToJSON(node ast.Node) *ASTNode {
	if node == nil || reflect.ValueOf(node).IsNil() {
		return nil
	}

	result := &ASTNode{Type: reflect.TypeOf(node).Elem().Name()}
	if _, ok := node.(*ast.Program); !ok {
		result.Pos = node.Pos().String()
	}
	add := func(n ast.Node) {
		if child := nodeToJSON(n); child != nil {
			result.Children = append(result.Children, child)
		}
	}
	group := func(name string, nodes ...ast.Node) {
		g := &ASTNode{Type: name}
		for _, n := range nodes {
			if child := nodeToJSON(n); child != nil {
				g.Children = append(g.Children, child)
			}
		}
		result.Children = append(result.Children, g)
	}

	switch n := node.(type) {
	case *ast.Program:
		for _, decl := range n.Decls {
			add(decl)
		}

	case *ast.Constant:
		result.Value = n.Name.Literal
		add(n.Value)

	case *ast.Record:
		result.Value = n.Name.Literal
		for _, field := range n.Fields {
			add(field)
		}

	case *ast.Function:
		result.Value = n.Name.Literal
		params := make([]ast.Node, 0, len(n.Params))
		for _, param := range n.Params {
			params = append(params, param)
		}
		group("Params", params...)
		if n.Result != nil {
			group("Result", n.Result)
		}
		group("Body", stmtNodes(n.Body)...)

	case *ast.Param:
		result.Value = n.Name.Literal
		add(n.Type)

	case *ast.Return:
		add(n.Value)

	case *ast.ExprStmt:
		add(n.X)

	case *ast.VarDecl:
		result.Value = n.Name.Literal
		if n.Type != nil {
			add(n.Type)
		}
		if n.Value != nil {
			add(n.Value)
		}

	case *ast.Assign:
		result.Value = n.Name.Literal
		add(n.Value)

	case *ast.If:
		group("Condition", n.Cond)
		group("Then", stmtNodes(n.Body)...)

	case *ast.While:
		group("Condition", n.Cond)
		group("Body", stmtNodes(n.Body)...)

	case *ast.Binary:
		result.Value = n.Op.String()
		add(n.X)
		add(n.Y)

	case *ast.Unary:
		result.Value = n.Op.String()
		add(n.X)

	case *ast.Call:
		result.Value = n.Name.Literal
		for _, arg := range n.Args {
			add(arg)
		}

	case *ast.Ident:
		result.Value = n.Name.Literal

	case *ast.Int:
		result.Value = n.Value

	case *ast.Float:
		result.Value = n.Value

	case *ast.Bool:
		result.Value = n.Value

	case *ast.String:
		result.Value = n.Value

	case *ast.BasicType:
		result.Value = n.Name.Literal

	case *ast.PointerType:
		add(n.Elem)
	}
	return result
}

func stmtNodes(stmts []ast.Stmt) []ast.Node {
	nodes := make([]ast.Node, 0, len(stmts))
	for _, s := range stmts {
		nodes = append(nodes, s)
	}
	return nodes
}
