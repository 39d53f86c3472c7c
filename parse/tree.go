// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"
	"strings"

	"numpyviz.dev/npviz/value"
)

// tree formats a node in an unambiguous form for debugging.
// It generates the output for the parse debug flag.
func tree(e interface{}) string {
	switch e := e.(type) {
	case nil:
		return "<nil>"
	case *Name:
		return fmt.Sprintf("<name %s>", e.ID)
	case *Number:
		if e.Imag {
			return fmt.Sprintf("<imag %s>", e.Text)
		}
		return fmt.Sprintf("<%s %s>", kindOf(e), e.Value)
	case *Str:
		return fmt.Sprintf("<str %q>", e.Value)
	case *Const:
		return fmt.Sprintf("<const %s>", e.Value)
	case *Unary:
		return fmt.Sprintf("(%s %s)", e.Op, tree(e.X))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", tree(e.X), e.Op, tree(e.Y))
	case *BoolOp:
		return "(" + treeList(e.Values, " "+e.Op+" ") + ")"
	case *Compare:
		s := "(" + tree(e.X)
		for i, op := range e.Ops {
			s += " " + op + " " + tree(e.Ys[i])
		}
		return s + ")"
	case *IfExp:
		return fmt.Sprintf("<if %s; %s; %s>", tree(e.Test), tree(e.Body), tree(e.Else))
	case *List:
		if e.Tuple {
			return "(" + treeList(e.Elems, " ") + ",)"
		}
		return "[" + treeList(e.Elems, " ") + "]"
	case *Dict:
		return fmt.Sprintf("<dict %s>", e)
	case *Attribute:
		return fmt.Sprintf("(%s.%s)", tree(e.X), e.Name)
	case *Call:
		s := tree(e.Func) + "("
		s += treeList(e.Args, " ")
		for _, kw := range e.Keywords {
			s += fmt.Sprintf(" %s=%s", kw.Name, tree(kw.Value))
		}
		return s + ")"
	case *Subscript:
		return fmt.Sprintf("(%s[%s])", tree(e.X), tree(e.Index))
	case *Slice:
		return fmt.Sprintf("<%s : %s : %s>", tree(e.Lo), tree(e.Hi), tree(e.Step))
	case *Assign:
		s := ""
		for _, t := range e.Targets {
			s += tree(t) + " = "
		}
		return s + tree(e.Value)
	case *AugAssign:
		return fmt.Sprintf("%s %s= %s", tree(e.Target), e.Op, tree(e.Value))
	case *ExprStmt:
		return tree(e.X)
	case *Import:
		return fmt.Sprintf("<import %s as %s>", e.Module, e.Alias)
	default:
		return fmt.Sprintf("%T", e)
	}
}

func treeList(list []Expr, sep string) string {
	strs := make([]string, len(list))
	for i, e := range list {
		strs[i] = tree(e)
	}
	return strings.Join(strs, sep)
}

func kindOf(n *Number) string {
	if _, ok := n.Value.(value.Float); ok {
		return "float"
	}
	return "int"
}
