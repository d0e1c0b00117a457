package extract

import (
	"convdup/internal/decl"
	"convdup/internal/token"
)

var controlKeywords = map[string]struct{}{
	"if": {}, "else": {}, "for": {}, "while": {}, "do": {}, "switch": {},
	"case": {}, "default": {}, "return": {}, "goto": {}, "break": {}, "continue": {},
}

// parseScope parses statements until the closing '}' of the current body
// (left unconsumed) or the end of input. At file scope stray '}' are skipped.
func (p *parser) parseScope(sc scope, fields *slot) {
	for !p.eof() {
		if p.isPunct("}") {
			if sc != scopeFile {
				return
			}
			p.pos++
			continue
		}
		before := p.pos
		p.parseStatement(sc, fields)
		if p.pos == before {
			// защита от зацикливания на неожиданном токене
			p.pos++
		}
	}
}

func (p *parser) parseStatement(sc scope, fields *slot) {
	tok := p.peek()
	switch {
	case tok.IsPunct(";"):
		p.pos++

	case tok.IsPunct("{"):
		if sc != scopeBlock {
			p.skipGroup()
			return
		}
		p.pos++
		p.parseScope(scopeBlock, nil)
		if p.isPunct("}") {
			p.pos++
		}

	case tok.Kind == token.Keyword && isControl(tok.Text):
		p.parseControl(tok.Text)

	case tok.IsKeyword("typedef"):
		p.parseDeclaration(sc, fields, true)

	case tok.IsKeyword("_Static_assert") || (tok.IsIdent() && tok.Text == "static_assert"):
		p.skipStatement()

	case sc == scopeBlock && tok.IsIdent() && p.at(p.pos+1).IsPunct(":"):
		// метка
		p.pos += 2

	case sc == scopeFile && tok.IsKeyword("extern") && p.at(p.pos+1).Kind == token.Literal:
		// extern "C" { ... }: содержимое остаётся на уровне файла
		p.pos += 2
		if p.isPunct("{") {
			p.pos++
		}

	default:
		p.parseDeclaration(sc, fields, false)
	}
}

func isControl(kw string) bool {
	_, ok := controlKeywords[kw]
	return ok
}

// parseControl steps over the head of a control statement. The body is an
// ordinary statement and is parsed by the caller's loop.
func (p *parser) parseControl(kw string) {
	p.pos++
	switch kw {
	case "if", "while", "switch":
		if p.isPunct("(") {
			p.skipGroup()
		}
	case "for":
		if !p.isPunct("(") {
			return
		}
		open := p.pos
		closer := p.match[open]
		// for (int i = 0; ...): объявление в первой части заголовка
		savedEnd := p.end
		if closer >= 0 && closer < p.end {
			p.end = closer
		}
		p.pos = open + 1
		if !p.isPunct(";") {
			p.parseDeclaration(scopeBlock, nil, false)
		}
		p.end = savedEnd
		p.pos = open
		p.skipGroup()
	case "case", "default":
		for !p.eof() && !p.isPunct(":") && !p.isPunct("}") {
			p.step()
		}
		if p.isPunct(":") {
			p.pos++
		}
	case "return", "goto", "break", "continue":
		p.skipStatement()
	}
}

// step advances by one token, or by a whole group at an opener.
func (p *parser) step() {
	tok := p.peek()
	if tok.IsPunct("(") || tok.IsPunct("[") || tok.IsPunct("{") {
		p.skipGroup()
		return
	}
	p.pos++
}

// skipStatement moves past the next ';' at this nesting level. A closing
// '}' ends the statement without being consumed; a braced group ends it too
// (macro-generated definitions such as FOO(x) { ... }).
func (p *parser) skipStatement() {
	for !p.eof() {
		tok := p.peek()
		switch {
		case tok.IsPunct(";"):
			p.pos++
			return
		case tok.IsPunct("}"):
			return
		case tok.IsPunct("{"):
			p.skipGroup()
			if p.isPunct(";") {
				p.pos++
			}
			return
		default:
			p.step()
		}
	}
}

// skipExpression moves to the next ',' or ';' at this nesting level (or the
// closing '}' of an enum or struct body) without consuming it.
func (p *parser) skipExpression() {
	for !p.eof() {
		tok := p.peek()
		if tok.IsPunct(",") || tok.IsPunct(";") || tok.IsPunct("}") {
			return
		}
		p.step()
	}
}

// parseBlockBody parses a function body starting at '{'.
func (p *parser) parseBlockBody() {
	p.pos++
	p.parseScope(scopeBlock, nil)
	if p.isPunct("}") {
		p.pos++
	}
}

func kindFor(sc scope, isTypedef, function bool) (decl.Kind, bool) {
	switch {
	case isTypedef:
		return decl.TypedefName, true
	case function:
		// прототипы внутри функций и структур не учитываем
		return decl.FunctionName, sc == scopeFile
	case sc == scopeStruct:
		return decl.StructFieldName, true
	default:
		return decl.Variable, true
	}
}
