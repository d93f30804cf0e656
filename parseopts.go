package dice

import (
	"log/slog"
	"strconv"
)

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	shuntopt  bool
	digitsopt int
	nestopt   int
	arenaopt  struct{ a *Arena }
	loggeropt struct{ l *slog.Logger }
)

// parsectx holds general data for parsing. It is also a ParseOption.
type parsectx struct {
	// shunt selects the iterative engine instead of precedence climbing.
	shunt bool
	// digits is the maximum number of digits in a number.
	digits int
	// nesting is the maximum depth of parentheses and operators.
	nesting int
	// arena is the arena to allocate nodes from, or nil for the heap.
	arena *Arena
	// log receives debug events.
	log *slog.Logger
	// preset indicates that the context came from ParsingPreset.
	preset bool
}

func newParsectx(opts []ParseOption) parsectx {
	p := parsectx{
		digits:  MaxLiteralDigits,
		nesting: MaxNestingDepth,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	if p.log == nil {
		p.log = slog.Default()
	}
	return p
}

// UseShuntingYard parses with explicit stacks instead of recursive precedence
// climbing. The results are identical.
func UseShuntingYard() ParseOption {
	return shuntopt(true)
}

func (o shuntopt) parseOption(p parsectx) parsectx {
	p.shunt = bool(o)
	return p
}

// MaxDigits sets the maximum number of digits in a number, including each
// half of a dice term. Panics if n is not positive.
func MaxDigits(n int) ParseOption {
	if n <= 0 {
		panic("dice: invalid maximum digits " + strconv.Itoa(n))
	}
	return digitsopt(n)
}

func (o digitsopt) parseOption(p parsectx) parsectx {
	p.digits = int(o)
	return p
}

// MaxNesting sets the maximum depth of parentheses and operators. Panics if n
// is not positive.
func MaxNesting(n int) ParseOption {
	if n <= 0 {
		panic("dice: invalid maximum nesting " + strconv.Itoa(n))
	}
	return nestopt(n)
}

func (o nestopt) parseOption(p parsectx) parsectx {
	p.nesting = int(o)
	return p
}

// InArena allocates parsed expressions from an arena.
func InArena(a *Arena) ParseOption {
	return arenaopt{a}
}

func (o arenaopt) parseOption(p parsectx) parsectx {
	p.arena = o.a
	return p
}

// Logger sets a logger to receive debug events from parsing. The default is
// slog.Default().
func Logger(l *slog.Logger) ParseOption {
	return loggeropt{l}
}

func (o loggeropt) parseOption(p parsectx) parsectx {
	p.log = o.l
	return p
}

// ParsingPreset combines options into one for reuse across many calls to
// Parse. A preset panics when it would replace any option already changed
// from the default, but it is safe to apply other options after a preset.
func ParsingPreset(opts ...ParseOption) ParseOption {
	p := parsectx{
		digits:  MaxLiteralDigits,
		nesting: MaxNestingDepth,
	}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	p.preset = true
	return &p
}

func (o *parsectx) parseOption(p parsectx) parsectx {
	if p.shunt || p.digits != MaxLiteralDigits || p.nesting != MaxNestingDepth || p.arena != nil || p.log != nil || p.preset {
		panic("dice: preset applied to non-default parse config")
	}
	return *o
}
