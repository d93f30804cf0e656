package dice

import (
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Equation = Term { Op Term }
// Term     = { "+" | "-" } Primary { Label }
// Primary  = Dice | Int | "(" Equation ")"

// equation is the syntax tree of a whole expression or a parenthesized group.
type equation struct {
	Head *term   `parser:"@@"`
	Tail []*infix `parser:"@@*"`
}

type infix struct {
	Op   lexer.Token `parser:"@Op"`
	Term *term       `parser:"@@"`
}

// Repeated captures into a []lexer.Token keep only the last match, so each
// sign and label gets its own node.
type term struct {
	Signs   []*sign  `parser:"@@*"`
	Primary *primary `parser:"@@"`
	Labels  []*label `parser:"@@*"`
}

type sign struct {
	Tok lexer.Token `parser:"@(\"+\" | \"-\")"`
}

type label struct {
	Tok lexer.Token `parser:"@Label"`
}

type primary struct {
	Dice  *lexer.Token `parser:"  @Dice"`
	Int   *lexer.Token `parser:"| @Int"`
	Open  *lexer.Token `parser:"| @\"(\""`
	Group *equation    `parser:"  @@"`
	Close *lexer.Token `parser:"  @\")\""`
}

// grammar returns the parser for the syntax of dice expressions.
var grammar = sync.OnceValue(func() *participle.Parser[equation] {
	return participle.MustBuild[equation](
		participle.Lexer(lexDef),
		participle.Elide("whitespace"),
	)
})

// flatten converts a syntax tree back to the sequence of tokens it was parsed
// from. Groups nest no deeper than the nesting check in Parse allows.
func (e *equation) flatten(toks []lexToken) []lexToken {
	toks = e.Head.flatten(toks)
	for _, in := range e.Tail {
		toks = append(toks, fromLexer(in.Op))
		toks = in.Term.flatten(toks)
	}
	return toks
}

func (t *term) flatten(toks []lexToken) []lexToken {
	for _, s := range t.Signs {
		toks = append(toks, fromLexer(s.Tok))
	}
	p := t.Primary
	switch {
	case p.Dice != nil:
		toks = append(toks, fromLexer(*p.Dice))
	case p.Int != nil:
		toks = append(toks, fromLexer(*p.Int))
	default:
		toks = append(toks, fromLexer(*p.Open))
		toks = p.Group.flatten(toks)
		toks = append(toks, fromLexer(*p.Close))
	}
	for _, l := range t.Labels {
		toks = append(toks, fromLexer(l.Tok))
	}
	return toks
}
