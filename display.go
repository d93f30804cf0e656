package dice

import (
	"strconv"
	"strings"
)

// Render formats an expression as text that parses to an expression with the
// same value, using as few parentheses as possible.
func Render(e *Expr) string {
	var b strings.Builder
	Collapse(e, layout).write(&b)
	return b.String()
}

// Render formats the expression. It is the same as the package-level Render.
func (e *Expr) Render() string {
	return Render(e)
}

// doc is rendered text in pieces, so that rendering deep expressions does not
// copy their text once per level.
type doc struct {
	segs []seg
	// class is the rendering precedence class of the root node.
	class int8
	// unit is whether the doc is a leaf, possibly negated or labeled.
	unit bool
	// kind is the kind of the root node.
	kind Kind
}

// seg is either literal text or a nested doc.
type seg struct {
	s string
	d *doc
}

func text(s string) seg { return seg{s: s} }
func sub(d *doc) seg    { return seg{d: d} }

// layout computes the doc for one node.
func layout(f Frame[*doc]) *doc {
	d := layoutFrame(f)
	d.kind = f.Kind
	return d
}

func layoutFrame(f Frame[*doc]) *doc {
	op := operators().kinds[f.Kind]
	switch f.Kind {
	case KindInt:
		return &doc{segs: []seg{text(strconv.FormatInt(int64(f.Value), 10))}, unit: true}
	case KindDice:
		s := strconv.FormatInt(int64(f.Count), 10) + "d" + strconv.FormatInt(int64(f.Sides), 10)
		return &doc{segs: []seg{text(s)}, unit: true}
	case KindNeg:
		if f.L.unit {
			return &doc{segs: []seg{text("-"), sub(f.L)}, class: op.class, unit: true}
		}
		return &doc{segs: []seg{text("-("), sub(f.L), text(")")}, class: op.class}
	case KindLabel:
		t := "[" + f.Text + "]"
		if f.L.unit {
			return &doc{segs: []seg{sub(f.L), text(t)}, class: op.class, unit: true}
		}
		return &doc{segs: []seg{text("("), sub(f.L), text(")" + t)}, class: op.class}
	case KindAdd, KindSub, KindMul, KindDiv:
		adj := int8(0)
		if op.nonassoc {
			adj = 1
		}
		// Truncating division does not reassociate with multiplication:
		// 4 * (3 / 2) is not 4 * 3 / 2.
		trunc := f.Kind == KindMul && f.R.kind == KindDiv
		d := &doc{class: op.class, segs: make([]seg, 0, 7)}
		d.segs = paren(d.segs, f.L, op.class < f.L.class)
		d.segs = append(d.segs, text(" "+op.symbol+" "))
		d.segs = paren(d.segs, f.R, op.class < f.R.class+adj || trunc)
		return d
	default:
		panic("dice: invalid expression kind " + f.Kind.String())
	}
}

func paren(segs []seg, d *doc, p bool) []seg {
	if p {
		return append(segs, text("("), sub(d), text(")"))
	}
	return append(segs, sub(d))
}

// write writes the doc's text to b.
func (d *doc) write(b *strings.Builder) {
	type pos struct {
		d *doc
		i int
	}
	stack := []pos{{d, 0}}
	for len(stack) > 0 {
		p := &stack[len(stack)-1]
		if p.i == len(p.d.segs) {
			stack = stack[:len(stack)-1]
			continue
		}
		s := p.d.segs[p.i]
		p.i++
		if s.d != nil {
			stack = append(stack, pos{s.d, 0})
			continue
		}
		b.WriteString(s.s)
	}
}
