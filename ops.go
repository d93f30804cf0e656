package dice

import (
	"sync"

	"github.com/zephyrtronium/dice/pratt"
)

type fixity int8

const (
	fixNone fixity = iota
	fixPrefix
	fixPostfix
	fixInfix
)

// operator describes how an operator parses and renders.
type operator struct {
	// symbol is the operator's token text. Labels have no fixed symbol.
	symbol string
	// kind is the node kind the operator builds. Unary plus builds nothing.
	kind   Kind
	fixity fixity
	// power is the binding power for parsing. Higher is more binding.
	power pratt.Power
	// class is the precedence class for rendering. Lower is more binding.
	class int8
	// nonassoc is whether a right operand of the same class must be
	// parenthesized.
	nonassoc bool
}

// opTable holds every operator of the language.
type opTable struct {
	// kinds gives the rendering information for each node kind, including
	// leaves.
	kinds   [kindCount]operator
	prefix  map[string]operator
	infix   map[string]operator
	postfix operator
}

// operators returns the operator table. It is built once and never modified.
var operators = sync.OnceValue(func() *opTable {
	all := []operator{
		{symbol: "", kind: KindInt, class: 0},
		{symbol: "", kind: KindDice, class: 0},
		{symbol: "[]", kind: KindLabel, fixity: fixPostfix, power: 19, class: 10},
		{symbol: "-", kind: KindNeg, fixity: fixPrefix, power: 18, class: 20},
		{symbol: "+", kind: kindNone, fixity: fixPrefix, power: 18},
		{symbol: "*", kind: KindMul, fixity: fixInfix, power: 16, class: 30},
		{symbol: "/", kind: KindDiv, fixity: fixInfix, power: 16, class: 30, nonassoc: true},
		{symbol: "+", kind: KindAdd, fixity: fixInfix, power: 14, class: 40},
		{symbol: "-", kind: KindSub, fixity: fixInfix, power: 14, class: 40, nonassoc: true},
	}
	t := opTable{
		prefix: make(map[string]operator),
		infix:  make(map[string]operator),
	}
	for _, op := range all {
		switch op.fixity {
		case fixPrefix:
			t.prefix[op.symbol] = op
		case fixInfix:
			t.infix[op.symbol] = op
		case fixPostfix:
			t.postfix = op
		}
		if op.kind != kindNone {
			t.kinds[op.kind] = op
		}
	}
	return &t
})

// symbol returns the operator text for k.
func (k Kind) symbol() string {
	if k >= kindCount {
		return "?"
	}
	return operators().kinds[k].symbol
}
