package extract

import (
	"convdup/internal/decl"
	"convdup/internal/diag"
	"convdup/internal/token"
)

var typeKeywords = map[string]struct{}{
	"void": {}, "char": {}, "short": {}, "int": {}, "long": {}, "float": {},
	"double": {}, "signed": {}, "unsigned": {}, "_Bool": {}, "_Complex": {},
	"_Imaginary": {},
}

var qualifierKeywords = map[string]struct{}{
	"const": {}, "volatile": {}, "restrict": {}, "static": {}, "extern": {},
	"auto": {}, "register": {}, "inline": {}, "_Noreturn": {}, "_Thread_local": {},
}

// GNU/MSVC extensions spelled as identifiers and followed by a group.
var attributeNames = map[string]struct{}{
	"__attribute__": {}, "__attribute": {}, "__declspec": {}, "__asm__": {},
	"__asm": {}, "asm": {}, "__extension__": {},
}

var typeofNames = map[string]struct{}{
	"typeof": {}, "__typeof__": {}, "__typeof": {}, "typeof_unqual": {},
}

func hasKey(m map[string]struct{}, k string) bool {
	_, ok := m[k]
	return ok
}

// specs is what the declaration specifiers told us.
type specs struct {
	sawType bool
	tag     string // struct/union/enum tag defined or referenced here
	pending []int  // members of a body defined here, waiting for their enclosing name
}

type declarator struct {
	name     token.Token
	function bool // a parameter list follows the name directly
}

// parseDeclaration handles "specifiers declarator [= init], ... ;" and
// function definitions. Names are only committed once the statement is
// known to be well formed.
func (p *parser) parseDeclaration(sc scope, fields *slot, isTypedef bool) {
	first := p.peek()
	if isTypedef {
		p.pos++
	}
	sp := p.parseSpecifiers()
	if !sp.sawType {
		p.skipStatement()
		return
	}

	if p.isPunct(";") {
		p.pos++
		if isTypedef {
			diag.ReportInfo(p.rep, diag.SynAmbiguousDeclaration, first.Span,
				"typedef without a name; skipped").Emit()
		}
		p.resolve(sp.pending, sp.tag, fields)
		return
	}

	var names []declarator
	commit := func() {
		typedefName := ""
		for _, d := range names {
			kind, ok := kindFor(sc, isTypedef, d.function)
			if !ok {
				continue
			}
			idx := p.emit(d.name, kind)
			if kind == decl.StructFieldName {
				fields.add(idx)
			}
			if isTypedef && typedefName == "" {
				typedefName = d.name.Text
			}
		}
		enclosing := typedefName
		if enclosing == "" {
			enclosing = sp.tag
		}
		p.resolve(sp.pending, enclosing, fields)
	}
	abandon := func(at token.Token) {
		if at.Kind != token.EOF {
			diag.ReportInfo(p.rep, diag.SynAmbiguousDeclaration, first.Span.Cover(at.Span),
				"cannot resolve declaration; skipped").Emit()
		}
		p.resolve(sp.pending, sp.tag, fields)
		p.skipStatement()
	}

	for {
		if sc == scopeStruct && p.isPunct(":") {
			// безымянное битовое поле
			p.pos++
			p.skipExpression()
		} else {
			d, ok := p.parseDeclarator()
			if !ok {
				abandon(p.peek())
				return
			}
			names = append(names, d)

			if d.function && sc == scopeFile && !isTypedef && !p.isPunct(",") && !p.isPunct(";") {
				// определение функции, возможно с K&R объявлениями параметров
				if p.skipToBody() {
					commit()
					p.parseBlockBody()
					return
				}
			}
			switch {
			case p.isPunct("="):
				p.pos++
				p.skipExpression()
			case p.isPunct(":") && sc == scopeStruct:
				p.pos++
				p.skipExpression()
			}
		}

		switch tok := p.peek(); {
		case tok.IsPunct(","):
			p.pos++
		case tok.IsPunct(";"):
			p.pos++
			commit()
			return
		case tok.IsPunct("}") && sc == scopeStruct:
			// последнее поле без ';' (расширение GNU)
			commit()
			return
		default:
			abandon(tok)
			return
		}
	}
}

// skipToBody advances to the '{' of a function definition, stepping over
// K&R parameter declarations. It gives up at '}' or '=' and restores the position.
func (p *parser) skipToBody() bool {
	start := p.pos
	for !p.eof() {
		tok := p.peek()
		switch {
		case tok.IsPunct("{"):
			return true
		case tok.IsPunct("}"), tok.IsPunct("="):
			p.pos = start
			return false
		}
		p.step()
	}
	p.pos = start
	return false
}

func (p *parser) parseSpecifiers() specs {
	var sp specs
	for !p.eof() {
		tok := p.peek()
		switch tok.Kind {
		case token.Keyword:
			switch {
			case hasKey(typeKeywords, tok.Text):
				sp.sawType = true
				p.pos++
			case hasKey(qualifierKeywords, tok.Text):
				p.pos++
			case tok.Text == "_Atomic":
				p.pos++
				if p.isPunct("(") {
					sp.sawType = true
					p.skipGroup()
				}
			case tok.Text == "_Alignas":
				p.pos++
				if p.isPunct("(") {
					p.skipGroup()
				}
			case tok.Text == "struct" || tok.Text == "union":
				sp.sawType = true
				sp.tag, sp.pending = p.parseRecord()
			case tok.Text == "enum":
				sp.sawType = true
				sp.tag, sp.pending = p.parseEnum()
			default:
				return sp
			}

		case token.Identifier:
			next := p.at(p.pos + 1)
			switch {
			case hasKey(attributeNames, tok.Text):
				p.pos++
				if p.isPunct("(") {
					p.skipGroup()
				}
			case hasKey(typeofNames, tok.Text) && next.IsPunct("("):
				sp.sawType = true
				p.pos++
				p.skipGroup()
			case sp.sawType:
				// начало декларатора
				return sp
			case next.IsIdent(), next.IsPunct("*"),
				next.Kind == token.Keyword && (hasKey(qualifierKeywords, next.Text) || hasKey(typeKeywords, next.Text)):
				// имя typedef'а в роли типа: company_info myCompany
				sp.sawType = true
				p.pos++
			default:
				return sp
			}

		default:
			return sp
		}
	}
	return sp
}

// parseDeclarator reads pointers, an optional parenthesised inner
// declarator, the name and array/parameter suffixes.
func (p *parser) parseDeclarator() (declarator, bool) {
	for !p.eof() {
		tok := p.peek()
		if tok.IsPunct("*") ||
			(tok.Kind == token.Keyword && (hasKey(qualifierKeywords, tok.Text) || tok.Text == "_Atomic")) {
			p.pos++
			continue
		}
		if tok.IsIdent() && hasKey(attributeNames, tok.Text) {
			p.pos++
			if p.isPunct("(") {
				p.skipGroup()
			}
			continue
		}
		break
	}

	var d declarator
	switch tok := p.peek(); {
	case tok.IsPunct("("):
		open := p.pos
		p.pos++
		inner, ok := p.parseDeclarator()
		if !ok || !p.isPunct(")") {
			p.pos = open
			return declarator{}, false
		}
		p.pos++
		d = inner
		p.skipSuffixes()
		return d, true

	case tok.IsIdent():
		d.name = tok
		p.pos++
		d.function = p.isPunct("(")
		p.skipSuffixes()
		return d, true

	default:
		return declarator{}, false
	}
}

func (p *parser) skipSuffixes() {
	for !p.eof() {
		tok := p.peek()
		switch {
		case tok.IsPunct("(") || tok.IsPunct("["):
			p.skipGroup()
		case tok.IsIdent() && hasKey(attributeNames, tok.Text):
			p.pos++
			if p.isPunct("(") {
				p.skipGroup()
			}
		default:
			return
		}
	}
}
