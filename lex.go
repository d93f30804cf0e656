package dice

import (
	"errors"
	"strconv"
	"sync"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// lexDef is the lexical grammar of dice expressions. Labels are ASCII text
// without brackets or backslashes between square brackets.
var lexDef = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Dice", Pattern: `[0-9]+[dD][0-9]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Label", Pattern: `\[[^\[\]\\\x{80}-\x{10FFFF}]*\]`},
	{Name: "Op", Pattern: `[-+*/]`},
	{Name: "Paren", Pattern: `[()]`},
	{Name: "whitespace", Pattern: `\s+`},
})

type lexToken struct {
	text string
	kind tokenKind
	// pos is the 1-based column of the first rune of the token.
	pos int
	// end is the byte offset just past the token.
	end int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenInt is an integer literal.
	tokenInt
	// tokenDice is a dice term like 3d6.
	tokenDice
	// tokenLabel is a bracketed label, brackets included.
	tokenLabel
	// tokenOp is an arithmetic operator.
	tokenOp
	// tokenOpen and tokenClose are parentheses.
	tokenOpen
	tokenClose
)

func (k tokenKind) String() string {
	switch k {
	case tokenInt:
		return "Int"
	case tokenDice:
		return "Dice"
	case tokenLabel:
		return "Label"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	default:
		return "None"
	}
}

// symbolKinds maps the lexer's token types to token kinds.
var symbolKinds = sync.OnceValue(func() map[lexer.TokenType]tokenKind {
	sym := lexDef.Symbols()
	return map[lexer.TokenType]tokenKind{
		sym["Int"]:   tokenInt,
		sym["Dice"]:  tokenDice,
		sym["Label"]: tokenLabel,
		sym["Op"]:    tokenOp,
		sym["Paren"]: tokenOpen,
	}
})

// fromLexer converts a participle token. Whitespace and EOF convert to
// tokenNone. Every rule matches only ASCII, so positions count bytes; the
// lexer's own column restarts at each newline.
func fromLexer(t lexer.Token) lexToken {
	tok := lexToken{
		text: t.Value,
		kind: symbolKinds()[t.Type],
		pos:  t.Pos.Offset + 1,
		end:  t.Pos.Offset + len(t.Value),
	}
	if tok.kind == tokenOpen && t.Value == ")" {
		tok.kind = tokenClose
	}
	return tok
}

// lex scans src into tokens, dropping whitespace.
func lex(src string) ([]lexToken, error) {
	l, err := lexDef.LexString("", src)
	if err != nil {
		return nil, syntaxError(err)
	}
	raw, err := lexer.ConsumeAll(l)
	if err != nil {
		return nil, syntaxError(err)
	}
	toks := make([]lexToken, 0, len(raw))
	for _, t := range raw {
		tok := fromLexer(t)
		if tok.kind == tokenNone {
			continue
		}
		toks = append(toks, tok)
	}
	return toks, nil
}

// tokens is a pratt.Input over scanned tokens.
type tokens struct {
	toks []lexToken
	i    int
	// eof is the position just past the input.
	eof int
}

func (t *tokens) Peek() (lexToken, bool) {
	if t.i >= len(t.toks) {
		return lexToken{}, false
	}
	return t.toks[t.i], true
}

func (t *tokens) Next() { t.i++ }

// pos is the position of the next token, or the end of input.
func (t *tokens) pos() int {
	if t.i >= len(t.toks) {
		return t.eof
	}
	return t.toks[t.i].pos
}

// syntaxError converts an error from participle to a SyntaxError.
func syntaxError(err error) error {
	var perr participle.Error
	if errors.As(err, &perr) {
		p := perr.Position()
		return &SyntaxError{Col: p.Offset + 1, Offset: p.Offset, Msg: perr.Message(), err: err}
	}
	return &SyntaxError{Msg: err.Error(), err: err}
}
