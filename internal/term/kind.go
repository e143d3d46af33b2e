// Package term defines the fixed grammar of the optimization problem
// language: node kinds, their arity, and the textual S-expression syntax
// used to read and print them (spec §3, §6).
package term

import "fmt"

// Kind identifies the operator of a term node. Every Kind has a fixed
// arity except Constraints, which is variadic.
type Kind int

const (
	Prob Kind = iota
	ObjFun
	Constraints

	Var
	VecVar
	MatVar
	Param

	Symbol
	Constant

	Eq
	NEq
	Le

	Neg
	Sqrt
	Log
	Exp

	Add
	Sub
	Mul
	Div
	Pow

	VecSum
	MatVecMul
	MatDiag
	MatDiagonal
)

// Variadic marks an arity that accepts any number of children (including
// zero).
const Variadic = -1

type kindInfo struct {
	name  string
	arity int
}

var kindTable = [...]kindInfo{
	Prob:        {"prob", 2},
	ObjFun:      {"objFun", 1},
	Constraints: {"constraints", Variadic},

	Var:    {"var", 1},
	VecVar: {"vecVar", 1},
	MatVar: {"matVar", 1},
	Param:  {"param", 1},

	Symbol:   {"Symbol", 0},
	Constant: {"Constant", 0},

	Eq:  {"eq", 2},
	NEq: {"neq", 2},
	Le:  {"le", 2},

	Neg:  {"neg", 1},
	Sqrt: {"sqrt", 1},
	Log:  {"log", 1},
	Exp:  {"exp", 1},

	Add: {"add", 2},
	Sub: {"sub", 2},
	Mul: {"mul", 2},
	Div: {"div", 2},
	Pow: {"pow", 2},

	VecSum:      {"vecSum", 1},
	MatVecMul:   {"matVecMul", 2},
	MatDiag:     {"matDiag", 1},
	MatDiagonal: {"matDiagonal", 1},
}

// byName maps operator spelling (as it appears in S-expressions, e.g.
// "(add 1 2)") to its Kind. Symbol and Constant are not looked up by name:
// they are recognized structurally by the S-expression reader (bare
// identifiers and numeric literals respectively).
var byName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindTable))
	for k, info := range kindTable {
		kind := Kind(k)
		if kind == Symbol || kind == Constant {
			continue
		}
		m[info.name] = kind
	}
	return m
}()

// String returns the operator's spelling, e.g. "add", "objFun".
func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindTable) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindTable[k].name
}

// Arity returns the fixed number of children for k, or Variadic.
func (k Kind) Arity() int {
	return kindTable[k].arity
}

// KindByName resolves an operator name to its Kind. ok is false for names
// that are not operators (including "Symbol" and "Constant", which are
// never spelled out explicitly in source text).
func KindByName(name string) (Kind, bool) {
	k, ok := byName[name]
	return k, ok
}
